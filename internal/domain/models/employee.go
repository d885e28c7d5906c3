package models

import (
	"time"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// 员工角色
const (
	RoleAdmin    = "admin"
	RoleEmployee = "employee"
)

// Employee represents a company employee account
type Employee struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	EmployeeCode string    `gorm:"type:varchar(30);uniqueIndex;not null" json:"employee_code"` // 工号，生物识别设备上报的编码
	Name         string    `gorm:"type:varchar(100);not null" json:"name"`
	Email        string    `gorm:"type:varchar(100)" json:"email"`
	Phone        string    `gorm:"type:varchar(20)" json:"phone"`
	Password     string    `gorm:"type:varchar(100);not null" json:"-"` // 不在JSON中暴露密码
	Role         string    `gorm:"type:varchar(20);not null;default:employee" json:"role"`
	DepartmentID *uint     `json:"department_id"`
	PositionID   *uint     `json:"position_id"`
	HireDate     *time.Time `gorm:"type:date" json:"hire_date,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`

	// Relations
	Department  *Department  `gorm:"foreignKey:DepartmentID" json:"department,omitempty"`
	Position    *Position    `gorm:"foreignKey:PositionID" json:"position,omitempty"`
	Attendances []Attendance `gorm:"foreignKey:EmployeeID" json:"attendances,omitempty"`
	Overtimes   []EmployeeOvertime `gorm:"foreignKey:EmployeeID" json:"overtimes,omitempty"`
	Memos       []Memo       `gorm:"foreignKey:EmployeeID" json:"memos,omitempty"`
}

// HashPassword 使用bcrypt哈希密码
func HashPassword(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(bytes), nil
}

// CheckPassword 校验明文密码与存储哈希
func (e *Employee) CheckPassword(password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(e.Password), []byte(password)) == nil
}

// BeforeCreate 是一个GORM钩子，在创建新记录前运行
func (e *Employee) BeforeCreate(tx *gorm.DB) error {
	// 如果提供了密码，对其进行哈希处理
	if e.Password != "" && len(e.Password) < 60 {
		hashedPassword, err := HashPassword(e.Password)
		if err != nil {
			return err
		}
		e.Password = hashedPassword
	}
	return nil
}

// BeforeSave 是一个GORM钩子，在保存记录前运行
func (e *Employee) BeforeSave(tx *gorm.DB) error {
	// 如果提供了密码且不是已哈希的，对其进行哈希处理
	if e.Password != "" && len(e.Password) < 60 {
		hashedPassword, err := HashPassword(e.Password)
		if err != nil {
			return err
		}
		e.Password = hashedPassword
	}
	return nil
}
