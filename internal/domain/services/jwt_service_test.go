package services

import (
	"testing"

	"hrlink-http-service/internal/domain/models"
)

func TestGenerateAndExtractToken(t *testing.T) {
	db := newTestDB(t)
	svc := NewJWTService(testConfig(), db)

	token, err := svc.GenerateToken(42, models.RoleAdmin)
	if err != nil {
		t.Fatalf("生成令牌失败: %v", err)
	}

	claims, err := svc.ExtractClaims(token)
	if err != nil {
		t.Fatalf("解析令牌失败: %v", err)
	}
	if claims.EmployeeID != 42 || claims.Role != models.RoleAdmin {
		t.Errorf("令牌声明错误: %+v", claims)
	}

	if _, err := svc.ExtractClaims(token + "tampered"); err == nil {
		t.Error("被篡改的令牌应校验失败")
	}
}

func TestLoginByCodeAndEmail(t *testing.T) {
	db := newTestDB(t)
	svc := NewJWTService(testConfig(), db)
	emp := seedEmployee(t, db, "EMP001", "secret123")

	// 按工号登录
	result, err := svc.Login("EMP001", "secret123")
	if err != nil {
		t.Fatalf("按工号登录失败: %v", err)
	}
	if result.Token == "" || result.EmployeeID != emp.ID {
		t.Errorf("登录结果错误: %+v", result)
	}

	// 按邮箱登录
	if _, err := svc.Login(emp.Email, "secret123"); err != nil {
		t.Errorf("按邮箱登录失败: %v", err)
	}

	// 密码错误
	if _, err := svc.Login("EMP001", "wrong"); err == nil {
		t.Error("密码错误应登录失败")
	}
	// 用户不存在
	if _, err := svc.Login("NOBODY", "secret123"); err == nil {
		t.Error("用户不存在应登录失败")
	}
}
