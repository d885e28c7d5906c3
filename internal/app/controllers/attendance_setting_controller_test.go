package controllers

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"hrlink-http-service/internal/domain/models"
	"hrlink-http-service/internal/domain/services/container"
	"hrlink-http-service/internal/infrastructure/config"

	"github.com/gin-gonic/gin"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var ctrlTestDBSeq int64

// newControllerTestDB 创建一个隔离的内存数据库并迁移考勤配置相关模型
func newControllerTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:ctrltestdb%d?mode=memory&cache=shared", atomic.AddInt64(&ctrlTestDBSeq, 1))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("打开测试数据库失败: %v", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("获取底层连接失败: %v", err)
	}
	// 内存库只允许单连接，避免连接间看不到彼此的表
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })

	if err := db.AutoMigrate(
		&models.Department{},
		&models.Position{},
		&models.Employee{},
		&models.AttendanceSetting{},
		&models.Attendance{},
	); err != nil {
		t.Fatalf("迁移测试数据库失败: %v", err)
	}
	return db
}

// asEmployee 模拟认证中间件向上下文写入当前员工ID
func asEmployee(id uint) gin.HandlerFunc {
	return func(c *gin.Context) {
		// JWT声明中的数字以float64存放
		c.Set("employeeID", float64(id))
	}
}

// newSettingRouter 构建挂载考勤配置路由的测试引擎
func newSettingRouter(t *testing.T) (*gin.Engine, *gorm.DB, *models.Employee) {
	t.Helper()

	gin.SetMode(gin.TestMode)

	db := newControllerTestDB(t)
	admin := &models.Employee{
		EmployeeCode: "ADMIN1",
		Name:         "测试管理员",
		Email:        "admin1@example.com",
		Password:     "correct-horse",
		Role:         models.RoleAdmin,
	}
	if err := db.Create(admin).Error; err != nil {
		t.Fatalf("创建测试管理员失败: %v", err)
	}

	// MQTT与Redis均未配置，容器初始化时只记录日志即返回
	cfg := &config.Config{JWTSecretKey: "test-secret"}
	c := container.NewServiceContainer(db, cfg)

	r := gin.New()
	r.POST("/attendance-settings", asEmployee(admin.ID), HandleAttendanceSettingFunc(c, "createSetting"))
	r.PUT("/attendance-settings/:id", asEmployee(admin.ID), HandleAttendanceSettingFunc(c, "updateSetting"))
	return r, db, admin
}

// settingEnvelope 解析统一响应体
type settingEnvelope struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Data    struct {
		Errors map[string]string `json:"errors"`
	} `json:"data"`
}

func postSetting(r *gin.Engine, body map[string]interface{}) *httptest.ResponseRecorder {
	raw, _ := json.Marshal(body)
	req := httptest.NewRequest(http.MethodPost, "/attendance-settings", bytes.NewReader(raw))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestCreateSettingWithoutPasswordReturns422(t *testing.T) {
	r, db, _ := newSettingRouter(t)

	// 请求体不带password字段
	w := postSetting(r, map[string]interface{}{
		"required_time_in":       "08:00",
		"required_time_out":      "17:00",
		"break_duration_minutes": 60,
	})

	if w.Code != http.StatusUnprocessableEntity {
		t.Fatalf("缺失密码应返回422，实际 %d，响应 %s", w.Code, w.Body.String())
	}

	var resp settingEnvelope
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("解析响应失败: %v", err)
	}
	if resp.Data.Errors["password"] == "" {
		t.Errorf("响应应包含password字段错误，实际 %s", w.Body.String())
	}

	var count int64
	db.Model(&models.AttendanceSetting{}).Count(&count)
	if count != 0 {
		t.Errorf("缺失密码时不应落配置，实际存在 %d 条", count)
	}
}

func TestCreateSettingWithWrongPasswordReturns422(t *testing.T) {
	r, db, _ := newSettingRouter(t)

	w := postSetting(r, map[string]interface{}{
		"required_time_in":       "08:00",
		"required_time_out":      "17:00",
		"break_duration_minutes": 60,
		"password":               "wrong-password",
	})

	if w.Code != http.StatusUnprocessableEntity {
		t.Fatalf("密码错误应返回422，实际 %d，响应 %s", w.Code, w.Body.String())
	}

	var resp settingEnvelope
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("解析响应失败: %v", err)
	}
	if resp.Data.Errors["password"] == "" {
		t.Errorf("响应应包含password字段错误，实际 %s", w.Body.String())
	}

	var count int64
	db.Model(&models.AttendanceSetting{}).Count(&count)
	if count != 0 {
		t.Errorf("密码错误时不应落配置，实际存在 %d 条", count)
	}
}

func TestCreateSettingWithCorrectPassword(t *testing.T) {
	r, db, _ := newSettingRouter(t)

	w := postSetting(r, map[string]interface{}{
		"required_time_in":       "08:00",
		"required_time_out":      "17:00",
		"break_duration_minutes": 60,
		"password":               "correct-horse",
	})

	if w.Code != http.StatusCreated {
		t.Fatalf("密码正确应返回201，实际 %d，响应 %s", w.Code, w.Body.String())
	}

	var count int64
	db.Model(&models.AttendanceSetting{}).Count(&count)
	if count != 1 {
		t.Errorf("应存在1条配置，实际 %d 条", count)
	}
}

func TestUpdateSettingWithoutPasswordReturns422(t *testing.T) {
	r, db, _ := newSettingRouter(t)

	seed := &models.AttendanceSetting{
		RequiredTimeIn:  "08:00",
		RequiredTimeOut: "17:00",
	}
	if err := db.Create(seed).Error; err != nil {
		t.Fatalf("创建测试配置失败: %v", err)
	}

	raw, _ := json.Marshal(map[string]interface{}{
		"required_time_in":  "09:00",
		"required_time_out": "18:00",
	})
	req := httptest.NewRequest(http.MethodPut, fmt.Sprintf("/attendance-settings/%d", seed.ID), bytes.NewReader(raw))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusUnprocessableEntity {
		t.Fatalf("缺失密码应返回422，实际 %d，响应 %s", w.Code, w.Body.String())
	}

	// 原配置保持不变
	var stored models.AttendanceSetting
	if err := db.First(&stored, seed.ID).Error; err != nil {
		t.Fatalf("查询配置失败: %v", err)
	}
	if stored.RequiredTimeIn != "08:00" || stored.RequiredTimeOut != "17:00" {
		t.Errorf("确认失败时配置不应被修改，实际 %s-%s", stored.RequiredTimeIn, stored.RequiredTimeOut)
	}
}
