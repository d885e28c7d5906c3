package services

import (
	"fmt"
	"sync/atomic"
	"testing"

	"hrlink-http-service/internal/domain/models"
	"hrlink-http-service/internal/infrastructure/config"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var testDBSeq int64

// newTestDB 创建一个隔离的内存数据库并迁移全部模型
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:testdb%d?mode=memory&cache=shared", atomic.AddInt64(&testDBSeq, 1))
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
		&models.BiometricLog{},
		&models.EmployeeOvertime{},
		&models.Memo{},
		&models.EventCategory{},
		&models.CalendarEvent{},
		&models.ChatMessage{},
		&models.Document{},
	); err != nil {
		t.Fatalf("迁移测试数据库失败: %v", err)
	}
	return db
}

func testConfig() *config.Config {
	return &config.Config{
		JWTSecretKey:       "test-secret",
		ExtractionQueueKey: "extraction:queue",
		ExtractionWorkers:  1,
	}
}

// seedEmployee 插入一名测试员工并返回其记录
func seedEmployee(t *testing.T, db *gorm.DB, code, password string) *models.Employee {
	t.Helper()

	emp := &models.Employee{
		EmployeeCode: code,
		Name:         "测试员工" + code,
		Email:        code + "@example.com",
		Password:     password,
		Role:         models.RoleEmployee,
	}
	if err := db.Create(emp).Error; err != nil {
		t.Fatalf("创建测试员工失败: %v", err)
	}
	return emp
}

// seedSetting 插入一条考勤配置
func seedSetting(t *testing.T, db *gorm.DB, timeIn, timeOut string, breakMinutes int, breakCounted bool) *models.AttendanceSetting {
	t.Helper()

	setting := &models.AttendanceSetting{
		RequiredTimeIn:       timeIn,
		RequiredTimeOut:      timeOut,
		BreakDurationMinutes: breakMinutes,
		BreakIsCounted:       breakCounted,
	}
	if err := db.Create(setting).Error; err != nil {
		t.Fatalf("创建考勤配置失败: %v", err)
	}
	return setting
}
