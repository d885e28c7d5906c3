package services

import (
	"errors"
	"testing"

	"hrlink-http-service/internal/domain/models"
)

func TestCreateSettingRequiresPasswordConfirmation(t *testing.T) {
	db := newTestDB(t)
	svc := NewAttendanceSettingService(db, testConfig())
	actor := seedEmployee(t, db, "ADMIN1", "correct-horse")

	input := SettingInput{RequiredTimeIn: "08:00", RequiredTimeOut: "17:00"}

	// 密码错误
	if _, err := svc.CreateSetting(actor.ID, "wrong-password", input); !errors.Is(err, ErrInvalidCredential) {
		t.Errorf("密码错误应返回 ErrInvalidCredential，实际 %v", err)
	}
	// 密码缺失
	if _, err := svc.CreateSetting(actor.ID, "", input); !errors.Is(err, ErrInvalidCredential) {
		t.Errorf("密码缺失应返回 ErrInvalidCredential，实际 %v", err)
	}
	// 操作者不存在
	if _, err := svc.CreateSetting(9999, "correct-horse", input); !errors.Is(err, ErrInvalidCredential) {
		t.Errorf("操作者不存在应返回 ErrInvalidCredential，实际 %v", err)
	}

	// 确认失败时不落任何配置
	var count int64
	db.Model(&models.AttendanceSetting{}).Count(&count)
	if count != 0 {
		t.Errorf("确认失败后不应写入配置，实际 %d 条", count)
	}
}

func TestCreateSettingValidatesTimeRange(t *testing.T) {
	db := newTestDB(t)
	svc := NewAttendanceSettingService(db, testConfig())
	actor := seedEmployee(t, db, "ADMIN1", "correct-horse")

	cases := []SettingInput{
		{RequiredTimeIn: "17:00", RequiredTimeOut: "08:00"},
		{RequiredTimeIn: "09:00", RequiredTimeOut: "09:00"},
		{RequiredTimeIn: "not-a-time", RequiredTimeOut: "17:00"},
	}
	for _, input := range cases {
		if _, err := svc.CreateSetting(actor.ID, "correct-horse", input); !errors.Is(err, ErrInvalidTimeRange) {
			t.Errorf("input=%+v: 期望 ErrInvalidTimeRange，实际 %v", input, err)
		}
	}
}

func TestCreateAndUpdateSetting(t *testing.T) {
	db := newTestDB(t)
	svc := NewAttendanceSettingService(db, testConfig())
	actor := seedEmployee(t, db, "ADMIN1", "correct-horse")

	created, err := svc.CreateSetting(actor.ID, "correct-horse", SettingInput{
		RequiredTimeIn:       "08:00",
		RequiredTimeOut:      "17:00",
		BreakDurationMinutes: 60,
	})
	if err != nil {
		t.Fatalf("创建配置失败: %v", err)
	}

	updated, err := svc.UpdateSetting(actor.ID, created.ID, "correct-horse", SettingInput{
		RequiredTimeIn:       "09:00",
		RequiredTimeOut:      "18:00",
		BreakDurationMinutes: 30,
		BreakIsCounted:       true,
	})
	if err != nil {
		t.Fatalf("更新配置失败: %v", err)
	}
	if updated.RequiredTimeIn != "09:00" || !updated.BreakIsCounted {
		t.Errorf("更新未生效: %+v", updated)
	}

	active, err := svc.GetActiveSetting()
	if err != nil {
		t.Fatalf("获取生效配置失败: %v", err)
	}
	if active.ID != created.ID {
		t.Errorf("生效配置应为最新一条，期望ID %d，实际 %d", created.ID, active.ID)
	}
}

func TestGetActiveSettingWhenEmpty(t *testing.T) {
	db := newTestDB(t)
	svc := NewAttendanceSettingService(db, testConfig())

	if _, err := svc.GetActiveSetting(); !errors.Is(err, ErrMissingConfiguration) {
		t.Errorf("无配置时应返回 ErrMissingConfiguration，实际 %v", err)
	}
}
