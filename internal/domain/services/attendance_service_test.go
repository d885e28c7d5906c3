package services

import (
	"errors"
	"math"
	"testing"

	"hrlink-http-service/internal/domain/models"
)

func TestRecordScanRejectsOutsideWindow(t *testing.T) {
	db := newTestDB(t)
	svc := NewAttendanceService(db, testConfig())
	seedEmployee(t, db, "EMP001", "secret123")
	seedSetting(t, db, "08:00", "17:00", 60, false)

	for _, scanTime := range []string{"05:59:59", "20:00:01", "23:30:00", "00:15:00"} {
		_, err := svc.RecordScan("EMP001", "2026-09-01", scanTime, models.ScanSourceBiometric)
		if !errors.Is(err, ErrScanOutOfWindow) {
			t.Errorf("scanTime=%s: 期望 ErrScanOutOfWindow，实际 %v", scanTime, err)
		}
	}

	// 窗口外拒绝时不落任何数据
	var logCount int64
	db.Model(&models.BiometricLog{}).Count(&logCount)
	if logCount != 0 {
		t.Errorf("窗口外打卡不应留存原始记录，实际 %d 条", logCount)
	}
}

func TestRecordScanAcceptsWindowBoundaries(t *testing.T) {
	db := newTestDB(t)
	svc := NewAttendanceService(db, testConfig())
	seedEmployee(t, db, "EMP001", "secret123")
	seedSetting(t, db, "08:00", "17:00", 0, true)

	if _, err := svc.RecordScan("EMP001", "2026-09-01", "06:00:00", models.ScanSourceBiometric); err != nil {
		t.Fatalf("06:00:00 应在窗口内: %v", err)
	}
	if _, err := svc.RecordScan("EMP001", "2026-09-01", "20:00:00", models.ScanSourceBiometric); err != nil {
		t.Fatalf("20:00:00 应在窗口内: %v", err)
	}
}

func TestRecordScanUnmatchedCodeIsTerminal(t *testing.T) {
	db := newTestDB(t)
	svc := NewAttendanceService(db, testConfig())
	seedSetting(t, db, "08:00", "17:00", 60, false)

	result, err := svc.RecordScan("GHOST42", "2026-09-01", "08:10:00", models.ScanSourceBiometric)
	if err != nil {
		t.Fatalf("未匹配工号不应返回错误: %v", err)
	}
	if result.Matched {
		t.Error("未匹配工号的结果 Matched 应为 false")
	}
	if result.Log == nil || result.Log.ID == 0 {
		t.Error("未匹配工号仍应落库原始打卡记录")
	}
	if result.Attendance != nil {
		t.Error("未匹配工号不应产生考勤记录")
	}

	var attCount int64
	db.Model(&models.Attendance{}).Count(&attCount)
	if attCount != 0 {
		t.Errorf("考勤表应为空，实际 %d 条", attCount)
	}
}

func TestRecordScanCheckInOnTime(t *testing.T) {
	db := newTestDB(t)
	svc := NewAttendanceService(db, testConfig())
	seedEmployee(t, db, "EMP001", "secret123")
	seedSetting(t, db, "08:00", "17:00", 60, false)

	result, err := svc.RecordScan("EMP001", "2026-09-01", "07:55:00", models.ScanSourceBiometric)
	if err != nil {
		t.Fatalf("上班打卡失败: %v", err)
	}
	att := result.Attendance
	if att.Status != models.StatusPresent {
		t.Errorf("准点打卡状态应为 %s，实际 %s", models.StatusPresent, att.Status)
	}
	if att.Remarks != models.RemarksIncomplete {
		t.Errorf("仅有上班打卡时备注应为 %s，实际 %s", models.RemarksIncomplete, att.Remarks)
	}
	if att.TimeIn == nil || *att.TimeIn != "07:55:00" {
		t.Errorf("time_in 记录错误: %v", att.TimeIn)
	}
}

func TestRecordScanLateCheckInAndCheckOut(t *testing.T) {
	db := newTestDB(t)
	svc := NewAttendanceService(db, testConfig())
	seedEmployee(t, db, "EMP001", "secret123")
	// 8点上班，一小时休息不计入工时
	seedSetting(t, db, "08:00", "17:00", 60, false)

	first, err := svc.RecordScan("EMP001", "2026-09-01", "08:05:00", models.ScanSourceBiometric)
	if err != nil {
		t.Fatalf("上班打卡失败: %v", err)
	}
	if first.Attendance.Status != models.StatusLate {
		t.Errorf("迟到打卡状态应为 %s，实际 %s", models.StatusLate, first.Attendance.Status)
	}

	second, err := svc.RecordScan("EMP001", "2026-09-01", "18:30:00", models.ScanSourceBiometric)
	if err != nil {
		t.Fatalf("下班打卡失败: %v", err)
	}
	att := second.Attendance
	if att.Remarks != models.RemarksComplete {
		t.Errorf("完成一天打卡后备注应为 %s，实际 %s", models.RemarksComplete, att.Remarks)
	}
	if att.Status != models.StatusLate {
		t.Errorf("晚走不应改变迟到状态，实际 %s", att.Status)
	}
	// 08:05 -> 18:30 共10小时25分，扣除60分钟休息后为9.42小时
	if math.Abs(att.TotalHours-9.42) > 0.001 {
		t.Errorf("工时计算错误: 期望 9.42，实际 %v", att.TotalHours)
	}
}

func TestRecordScanBreakCountedInHours(t *testing.T) {
	db := newTestDB(t)
	svc := NewAttendanceService(db, testConfig())
	seedEmployee(t, db, "EMP001", "secret123")
	seedSetting(t, db, "09:00", "18:00", 60, true)

	if _, err := svc.RecordScan("EMP001", "2026-09-01", "09:00:00", models.ScanSourceBiometric); err != nil {
		t.Fatalf("上班打卡失败: %v", err)
	}
	result, err := svc.RecordScan("EMP001", "2026-09-01", "18:00:00", models.ScanSourceBiometric)
	if err != nil {
		t.Fatalf("下班打卡失败: %v", err)
	}
	if math.Abs(result.Attendance.TotalHours-9.0) > 0.001 {
		t.Errorf("休息计入工时时应为 9.0，实际 %v", result.Attendance.TotalHours)
	}
}

func TestRecordScanThirdScanRejected(t *testing.T) {
	db := newTestDB(t)
	svc := NewAttendanceService(db, testConfig())
	emp := seedEmployee(t, db, "EMP001", "secret123")
	seedSetting(t, db, "08:00", "17:00", 0, true)

	if _, err := svc.RecordScan("EMP001", "2026-09-01", "08:00:00", models.ScanSourceBiometric); err != nil {
		t.Fatalf("上班打卡失败: %v", err)
	}
	if _, err := svc.RecordScan("EMP001", "2026-09-01", "17:00:00", models.ScanSourceBiometric); err != nil {
		t.Fatalf("下班打卡失败: %v", err)
	}

	_, err := svc.RecordScan("EMP001", "2026-09-01", "18:00:00", models.ScanSourceBiometric)
	if !errors.Is(err, ErrAttendanceComplete) {
		t.Fatalf("第三次打卡应返回 ErrAttendanceComplete，实际 %v", err)
	}

	// 第三次打卡的原始记录仍然留存，审计优先
	var logCount int64
	db.Model(&models.BiometricLog{}).Count(&logCount)
	if logCount != 3 {
		t.Errorf("原始打卡记录应为 3 条，实际 %d", logCount)
	}

	var att models.Attendance
	if err := db.Where("employee_id = ?", emp.ID).First(&att).Error; err != nil {
		t.Fatalf("读取考勤记录失败: %v", err)
	}
	if att.TimeOut == nil || *att.TimeOut != "17:00:00" {
		t.Errorf("第三次打卡不应改变已完成的考勤记录: %v", att.TimeOut)
	}
}

func TestRecordScanWithoutSetting(t *testing.T) {
	db := newTestDB(t)
	svc := NewAttendanceService(db, testConfig())
	seedEmployee(t, db, "EMP001", "secret123")

	_, err := svc.RecordScan("EMP001", "2026-09-01", "08:00:00", models.ScanSourceBiometric)
	if !errors.Is(err, ErrMissingConfiguration) {
		t.Fatalf("无考勤配置时应返回 ErrMissingConfiguration，实际 %v", err)
	}
}

func TestRecordScanResolvesNumericID(t *testing.T) {
	db := newTestDB(t)
	svc := NewAttendanceService(db, testConfig())
	emp := seedEmployee(t, db, "EMP001", "secret123")
	seedSetting(t, db, "08:00", "17:00", 0, true)

	result, err := svc.RecordScan("1", "2026-09-01", "08:00:00", models.ScanSourceManual)
	if err != nil {
		t.Fatalf("按数字ID打卡失败: %v", err)
	}
	if !result.Matched || result.Attendance.EmployeeID != emp.ID {
		t.Errorf("数字ID应匹配到员工 %d", emp.ID)
	}
}

func TestMarkAbsentees(t *testing.T) {
	db := newTestDB(t)
	svc := NewAttendanceService(db, testConfig())
	present := seedEmployee(t, db, "EMP001", "secret123")
	absent := seedEmployee(t, db, "EMP002", "secret123")
	seedSetting(t, db, "08:00", "17:00", 0, true)

	if _, err := svc.RecordScan(present.EmployeeCode, "2026-09-01", "08:00:00", models.ScanSourceBiometric); err != nil {
		t.Fatalf("上班打卡失败: %v", err)
	}

	marked, err := svc.MarkAbsentees("2026-09-01")
	if err != nil {
		t.Fatalf("补记缺勤失败: %v", err)
	}
	if marked != 1 {
		t.Errorf("应补记 1 人缺勤，实际 %d", marked)
	}

	var att models.Attendance
	if err := db.Where("employee_id = ? AND date = ?", absent.ID, "2026-09-01").First(&att).Error; err != nil {
		t.Fatalf("读取缺勤记录失败: %v", err)
	}
	if att.Status != models.StatusAbsent {
		t.Errorf("缺勤状态应为 %s，实际 %s", models.StatusAbsent, att.Status)
	}

	// 重复执行不应重复补记
	marked, err = svc.MarkAbsentees("2026-09-01")
	if err != nil {
		t.Fatalf("重复补记失败: %v", err)
	}
	if marked != 0 {
		t.Errorf("重复执行不应再补记，实际 %d", marked)
	}
}
