package models

import "time"

// BiometricLog 生物识别设备上报的原始打卡记录，只增不改。
// 即使工号无法匹配到员工也会落库，审计优先于引用完整性。
type BiometricLog struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	EmployeeCode string    `gorm:"type:varchar(30);index;not null" json:"employee_code"`
	ScanDate     string    `gorm:"type:varchar(10);not null" json:"scan_date"` // YYYY-MM-DD
	ScanTime     string    `gorm:"type:varchar(8);not null" json:"scan_time"`  // HH:MM:SS
	Source       string    `gorm:"type:varchar(20);not null;default:biometric" json:"source"`
	CreatedAt    time.Time `json:"created_at"`
}

// 打卡来源
const (
	ScanSourceBiometric = "biometric"
	ScanSourceManual    = "manual"
)
