package models

import "time"

// Memo 纪律处分备忘录
type Memo struct {
	ID             uint      `gorm:"primaryKey" json:"id"`
	EmployeeID     uint      `gorm:"not null;index" json:"employee_id"`
	Subject        string    `gorm:"type:varchar(200);not null" json:"subject"`
	Body           string    `gorm:"type:text" json:"body"`
	ViolationCount int       `gorm:"not null;default:1" json:"violation_count"`
	IssuedBy       uint      `gorm:"not null" json:"issued_by"`
	IssuedAt       time.Time `json:"issued_at"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`

	Employee *Employee `gorm:"foreignKey:EmployeeID" json:"employee,omitempty"`
	Issuer   *Employee `gorm:"foreignKey:IssuedBy" json:"issuer,omitempty"`
}
