package models

import "time"

// ChatMessage 聊天消息，按房间归档
type ChatMessage struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Room      string    `gorm:"type:varchar(100);index;not null" json:"room"`
	SenderID  uint      `gorm:"not null" json:"sender_id"`
	Body      string    `gorm:"type:text;not null" json:"body"`
	SentAt    time.Time `gorm:"not null" json:"sent_at"`
	CreatedAt time.Time `json:"created_at"`

	Sender *Employee `gorm:"foreignKey:SenderID" json:"sender,omitempty"`
}
