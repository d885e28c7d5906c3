package models

import "time"

// 加班审批状态
const (
	OvertimePending  = "pending"
	OvertimeApproved = "approved"
	OvertimeRejected = "rejected"
)

// EmployeeOvertime 加班申请记录
type EmployeeOvertime struct {
	ID         uint       `gorm:"primaryKey" json:"id"`
	EmployeeID uint       `gorm:"not null;index" json:"employee_id"`
	Date       string     `gorm:"type:varchar(10);not null" json:"date"`
	Hours      float64    `gorm:"type:decimal(4,2);not null" json:"hours"`
	Reason     string     `gorm:"type:varchar(255)" json:"reason"`
	Status     string     `gorm:"type:varchar(20);not null;default:pending" json:"status"`
	DecidedBy  *uint      `json:"decided_by"`
	DecidedAt  *time.Time `json:"decided_at"`
	CreatedAt  time.Time  `json:"created_at"`
	UpdatedAt  time.Time  `json:"updated_at"`

	Employee *Employee `gorm:"foreignKey:EmployeeID" json:"employee,omitempty"`
	Approver *Employee `gorm:"foreignKey:DecidedBy" json:"approver,omitempty"`
}
