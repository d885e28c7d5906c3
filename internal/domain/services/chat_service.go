package services

import (
	"errors"
	"time"

	"hrlink-http-service/internal/domain/models"
	"hrlink-http-service/internal/infrastructure/config"
	"hrlink-http-service/pkg/logger"

	"gorm.io/gorm"
)

// ChatMessageInput 聊天消息输入
type ChatMessageInput struct {
	Room string `json:"room" binding:"required"`
	Body string `json:"body" binding:"required"`
}

// ChatMessagePayload MQTT聊天频道的广播载荷
type ChatMessagePayload struct {
	ID         uint   `json:"id"`
	Room       string `json:"room"`
	SenderID   uint   `json:"sender_id"`
	SenderName string `json:"sender_name"`
	Body       string `json:"body"`
	SentAt     int64  `json:"sent_at"`
}

// InterfaceChatService defines the chat service interface
type InterfaceChatService interface {
	GetMessages(room string, limit int, beforeID uint) ([]models.ChatMessage, error)
	SendMessage(input *ChatMessageInput, senderID uint) (*models.ChatMessage, error)
	GetRooms() ([]string, error)
}

// ChatService 提供聊天消息的归档与广播
type ChatService struct {
	DB           *gorm.DB
	Config       *config.Config
	Notification InterfaceNotificationService
}

// NewChatService 创建一个新的聊天服务
func NewChatService(db *gorm.DB, cfg *config.Config, notification InterfaceNotificationService) InterfaceChatService {
	return &ChatService{
		DB:           db,
		Config:       cfg,
		Notification: notification,
	}
}

// 1 GetMessages 获取房间历史消息，按时间倒序分页
func (s *ChatService) GetMessages(room string, limit int, beforeID uint) ([]models.ChatMessage, error) {
	if limit <= 0 || limit > 200 {
		limit = 50
	}

	var messages []models.ChatMessage
	query := s.DB.Preload("Sender").Where("room = ?", room).Order("id DESC").Limit(limit)
	if beforeID > 0 {
		query = query.Where("id < ?", beforeID)
	}
	if err := query.Find(&messages).Error; err != nil {
		return nil, err
	}
	return messages, nil
}

// 2 SendMessage 归档消息并向房间主题广播，广播失败不影响归档结果
func (s *ChatService) SendMessage(input *ChatMessageInput, senderID uint) (*models.ChatMessage, error) {
	var sender models.Employee
	if err := s.DB.First(&sender, senderID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.New("sender not found")
		}
		return nil, err
	}

	message := &models.ChatMessage{
		Room:     input.Room,
		SenderID: senderID,
		Body:     input.Body,
		SentAt:   time.Now(),
	}
	if err := s.DB.Create(message).Error; err != nil {
		return nil, err
	}

	if s.Notification != nil {
		payload := ChatMessagePayload{
			ID:         message.ID,
			Room:       message.Room,
			SenderID:   senderID,
			SenderName: sender.Name,
			Body:       message.Body,
			SentAt:     message.SentAt.UnixMilli(),
		}
		if err := s.Notification.PublishChatMessage(message.Room, payload); err != nil {
			logger.Warning("[Chat] 广播消息失败 room=%s: %v", message.Room, err)
		}
	}

	return message, nil
}

// 3 GetRooms 获取所有存在过消息的房间
func (s *ChatService) GetRooms() ([]string, error) {
	var rooms []string
	if err := s.DB.Model(&models.ChatMessage{}).Distinct("room").Order("room ASC").Pluck("room", &rooms).Error; err != nil {
		return nil, err
	}
	return rooms, nil
}
