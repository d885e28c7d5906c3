package services

import (
	"errors"
	"testing"

	"hrlink-http-service/internal/domain/models"
)

func TestCreateOvertimeValidation(t *testing.T) {
	db := newTestDB(t)
	svc := NewOvertimeService(db, testConfig())
	emp := seedEmployee(t, db, "EMP001", "secret123")

	// 员工不存在
	if _, err := svc.CreateOvertime(&OvertimeInput{EmployeeID: 9999, Date: "2026-09-01", Hours: 2}); err == nil {
		t.Error("员工不存在应被拒绝")
	}
	// 时长非法
	for _, hours := range []float64{0, -1, 25} {
		if _, err := svc.CreateOvertime(&OvertimeInput{EmployeeID: emp.ID, Date: "2026-09-01", Hours: hours}); err == nil {
			t.Errorf("hours=%v 应被拒绝", hours)
		}
	}
	// 日期格式非法
	if _, err := svc.CreateOvertime(&OvertimeInput{EmployeeID: emp.ID, Date: "01/09/2026", Hours: 2}); err == nil {
		t.Error("非法日期格式应被拒绝")
	}

	ot, err := svc.CreateOvertime(&OvertimeInput{EmployeeID: emp.ID, Date: "2026-09-01", Hours: 2.5, Reason: "版本上线"})
	if err != nil {
		t.Fatalf("创建加班申请失败: %v", err)
	}
	if ot.Status != models.OvertimePending {
		t.Errorf("新申请状态应为 pending，实际 %s", ot.Status)
	}
}

func TestOvertimeDecidedOnlyOnce(t *testing.T) {
	db := newTestDB(t)
	svc := NewOvertimeService(db, testConfig())
	emp := seedEmployee(t, db, "EMP001", "secret123")
	approver := seedEmployee(t, db, "ADMIN1", "secret123")

	ot, err := svc.CreateOvertime(&OvertimeInput{EmployeeID: emp.ID, Date: "2026-09-01", Hours: 3})
	if err != nil {
		t.Fatalf("创建加班申请失败: %v", err)
	}

	approved, err := svc.ApproveOvertime(ot.ID, approver.ID)
	if err != nil {
		t.Fatalf("审批失败: %v", err)
	}
	if approved.Status != models.OvertimeApproved {
		t.Errorf("审批后状态应为 approved，实际 %s", approved.Status)
	}
	if approved.DecidedBy == nil || *approved.DecidedBy != approver.ID || approved.DecidedAt == nil {
		t.Error("审批应记录审批人与时间")
	}

	// 已审批的申请不可再次处理
	if _, err := svc.RejectOvertime(ot.ID, approver.ID); !errors.Is(err, ErrOvertimeDecided) {
		t.Errorf("重复处理应返回 ErrOvertimeDecided，实际 %v", err)
	}
	if _, err := svc.ApproveOvertime(ot.ID, approver.ID); !errors.Is(err, ErrOvertimeDecided) {
		t.Errorf("重复审批应返回 ErrOvertimeDecided，实际 %v", err)
	}
}

func TestOvertimeFilters(t *testing.T) {
	db := newTestDB(t)
	svc := NewOvertimeService(db, testConfig())
	a := seedEmployee(t, db, "EMP001", "secret123")
	b := seedEmployee(t, db, "EMP002", "secret123")
	approver := seedEmployee(t, db, "ADMIN1", "secret123")

	ot1, _ := svc.CreateOvertime(&OvertimeInput{EmployeeID: a.ID, Date: "2026-09-01", Hours: 2})
	svc.CreateOvertime(&OvertimeInput{EmployeeID: b.ID, Date: "2026-09-01", Hours: 4})
	if _, err := svc.ApproveOvertime(ot1.ID, approver.ID); err != nil {
		t.Fatalf("审批失败: %v", err)
	}

	pending, err := svc.GetOvertimes(0, models.OvertimePending)
	if err != nil {
		t.Fatalf("查询失败: %v", err)
	}
	if len(pending) != 1 || pending[0].EmployeeID != b.ID {
		t.Errorf("pending过滤结果错误: %+v", pending)
	}

	byEmployee, err := svc.GetOvertimes(a.ID, "")
	if err != nil {
		t.Fatalf("查询失败: %v", err)
	}
	if len(byEmployee) != 1 || byEmployee[0].ID != ot1.ID {
		t.Errorf("按员工过滤结果错误: %+v", byEmployee)
	}
}
