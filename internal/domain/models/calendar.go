package models

import "time"

// EventCategory 日历事件分类
type EventCategory struct {
	BaseModel
	Name  string `gorm:"type:varchar(100);uniqueIndex;not null" json:"name"`
	Color string `gorm:"type:varchar(7)" json:"color"` // 十六进制颜色，如 #3788d8

	Events []CalendarEvent `gorm:"foreignKey:CategoryID" json:"events,omitempty"`
}

// CalendarEvent 日历事件
type CalendarEvent struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Title       string    `gorm:"type:varchar(200);not null" json:"title"`
	Description string    `gorm:"type:text" json:"description"`
	CategoryID  uint      `gorm:"not null;index" json:"category_id"`
	StartAt     time.Time `gorm:"not null" json:"start_at"`
	EndAt       time.Time `gorm:"not null" json:"end_at"`
	AllDay      bool      `gorm:"not null;default:false" json:"all_day"`
	CreatedBy   *uint     `json:"created_by"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`

	Category *EventCategory `gorm:"foreignKey:CategoryID" json:"category,omitempty"`
}
