package models

import (
	"time"

	"gorm.io/datatypes"
)

// 文档审批状态
const (
	DocumentPending  = "pending"
	DocumentApproved = "approved"
	DocumentRejected = "rejected"
)

// 文本抽取状态机: "" -> processing -> completed | failed
const (
	ExtractionProcessing = "processing"
	ExtractionCompleted  = "completed"
	ExtractionFailed     = "failed"
)

// Document 上传的文档及其抽取结果
type Document struct {
	ID               uint           `gorm:"primaryKey" json:"id"`
	FileName         string         `gorm:"type:varchar(255);not null" json:"file_name"`
	FilePath         string         `gorm:"type:varchar(500);not null" json:"file_path"`
	MimeType         string         `gorm:"type:varchar(100);not null" json:"mime_type"`
	Status           string         `gorm:"type:varchar(20);not null;default:pending" json:"status"`
	ExtractionStatus string         `gorm:"type:varchar(20);not null;default:''" json:"extraction_status"`
	Content          *string        `gorm:"type:longtext" json:"content,omitempty"`
	Embedding        datatypes.JSON `gorm:"type:json" json:"embedding,omitempty"` // 序列化的向量
	UploadedBy       *uint          `json:"uploaded_by"`
	CreatedAt        time.Time      `json:"created_at"`
	UpdatedAt        time.Time      `json:"updated_at"`

	Uploader *Employee `gorm:"foreignKey:UploadedBy" json:"uploader,omitempty"`
}
