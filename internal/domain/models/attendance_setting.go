package models

// AttendanceSetting 考勤规则配置，取最新一条作为当前生效配置
type AttendanceSetting struct {
	BaseModel
	RequiredTimeIn       string `gorm:"type:varchar(5);not null" json:"required_time_in"`  // HH:MM
	RequiredTimeOut      string `gorm:"type:varchar(5);not null" json:"required_time_out"` // HH:MM
	BreakDurationMinutes int    `gorm:"not null;default:0" json:"break_duration_minutes"`
	BreakIsCounted       bool   `gorm:"not null;default:false" json:"break_is_counted"` // 休息时间是否计入工时
}
