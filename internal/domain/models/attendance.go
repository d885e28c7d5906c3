package models

import "time"

// 考勤状态
const (
	StatusPresent    = "Present"
	StatusLate       = "Late"
	StatusAbsent     = "Absent"
	StatusIncomplete = "Incomplete"
)

// 考勤备注
const (
	RemarksComplete   = "Complete"
	RemarksIncomplete = "Incomplete"
)

// Attendance 每个员工每天最多一条考勤记录
type Attendance struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	EmployeeID uint      `gorm:"not null;uniqueIndex:idx_employee_date" json:"employee_id"`
	Date       string    `gorm:"type:varchar(10);not null;uniqueIndex:idx_employee_date" json:"date"` // YYYY-MM-DD
	TimeIn     *string   `gorm:"type:varchar(8)" json:"time_in"`                                      // HH:MM:SS
	TimeOut    *string   `gorm:"type:varchar(8)" json:"time_out"`
	Status     string    `gorm:"type:varchar(20);not null" json:"status"`
	Remarks    string    `gorm:"type:varchar(20);not null" json:"remarks"`
	TotalHours float64   `gorm:"type:decimal(5,2);not null;default:0" json:"total_hours"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`

	Employee *Employee `gorm:"foreignKey:EmployeeID" json:"employee,omitempty"`
}

// State 根据入离场时间推导考勤记录所处的状态机状态
type AttendanceState int

const (
	// AttendanceEmpty 当日尚无记录
	AttendanceEmpty AttendanceState = iota
	// AttendanceCheckedIn 已记录上班打卡，等待下班打卡
	AttendanceCheckedIn
	// AttendanceComplete 上下班打卡均已记录
	AttendanceComplete
)

// State 返回当前记录的状态机状态
func (a *Attendance) State() AttendanceState {
	switch {
	case a == nil || a.TimeIn == nil:
		return AttendanceEmpty
	case a.TimeOut == nil:
		return AttendanceCheckedIn
	default:
		return AttendanceComplete
	}
}
