package services

import (
	"errors"
	"time"

	"hrlink-http-service/internal/domain/models"
	"hrlink-http-service/internal/infrastructure/config"

	"gorm.io/gorm"
)

// ErrCategoryInUse 分类仍被事件引用，不允许删除
var ErrCategoryInUse = errors.New("event category is in use")

// EventInput 日历事件输入
type EventInput struct {
	Title       string    `json:"title" binding:"required"`
	Description string    `json:"description"`
	CategoryID  uint      `json:"category_id" binding:"required"`
	StartAt     time.Time `json:"start_at" binding:"required"`
	EndAt       time.Time `json:"end_at" binding:"required"`
	AllDay      bool      `json:"all_day"`
}

// InterfaceCalendarService defines the calendar service interface
type InterfaceCalendarService interface {
	GetCategories() ([]models.EventCategory, error)
	CreateCategory(category *models.EventCategory) error
	UpdateCategory(id uint, updates map[string]interface{}) (*models.EventCategory, error)
	DeleteCategory(id uint) error
	GetEvents(from, to *time.Time, categoryID uint) ([]models.CalendarEvent, error)
	GetEventByID(id uint) (*models.CalendarEvent, error)
	CreateEvent(input *EventInput, createdBy *uint) (*models.CalendarEvent, error)
	UpdateEvent(id uint, updates map[string]interface{}) (*models.CalendarEvent, error)
	DeleteEvent(id uint) error
}

// CalendarService 提供日历分类和事件相关的服务
type CalendarService struct {
	DB     *gorm.DB
	Config *config.Config
}

// NewCalendarService 创建一个新的日历服务
func NewCalendarService(db *gorm.DB, cfg *config.Config) InterfaceCalendarService {
	return &CalendarService{
		DB:     db,
		Config: cfg,
	}
}

// 1 GetCategories 获取所有事件分类
func (s *CalendarService) GetCategories() ([]models.EventCategory, error) {
	var categories []models.EventCategory
	if err := s.DB.Order("name ASC").Find(&categories).Error; err != nil {
		return nil, err
	}
	return categories, nil
}

// 2 CreateCategory 创建事件分类
func (s *CalendarService) CreateCategory(category *models.EventCategory) error {
	var count int64
	if err := s.DB.Model(&models.EventCategory{}).Where("name = ?", category.Name).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return errors.New("category name already exists")
	}
	return s.DB.Create(category).Error
}

// 3 UpdateCategory 更新事件分类
func (s *CalendarService) UpdateCategory(id uint, updates map[string]interface{}) (*models.EventCategory, error) {
	var category models.EventCategory
	if err := s.DB.First(&category, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.New("category not found")
		}
		return nil, err
	}
	if err := s.DB.Model(&category).Updates(updates).Error; err != nil {
		return nil, err
	}
	return &category, nil
}

// 4 DeleteCategory 删除事件分类，仍被事件引用时返回 ErrCategoryInUse
func (s *CalendarService) DeleteCategory(id uint) error {
	var category models.EventCategory
	if err := s.DB.First(&category, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return errors.New("category not found")
		}
		return err
	}

	var count int64
	if err := s.DB.Model(&models.CalendarEvent{}).Where("category_id = ?", id).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return ErrCategoryInUse
	}

	return s.DB.Delete(&category).Error
}

// 5 GetEvents 获取事件列表，支持时间区间与分类过滤
func (s *CalendarService) GetEvents(from, to *time.Time, categoryID uint) ([]models.CalendarEvent, error) {
	var events []models.CalendarEvent
	query := s.DB.Preload("Category").Order("start_at ASC")
	if from != nil {
		query = query.Where("end_at >= ?", *from)
	}
	if to != nil {
		query = query.Where("start_at <= ?", *to)
	}
	if categoryID > 0 {
		query = query.Where("category_id = ?", categoryID)
	}
	if err := query.Find(&events).Error; err != nil {
		return nil, err
	}
	return events, nil
}

// 6 GetEventByID 根据ID获取事件
func (s *CalendarService) GetEventByID(id uint) (*models.CalendarEvent, error) {
	var event models.CalendarEvent
	if err := s.DB.Preload("Category").First(&event, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.New("event not found")
		}
		return nil, err
	}
	return &event, nil
}

// 7 CreateEvent 创建日历事件
func (s *CalendarService) CreateEvent(input *EventInput, createdBy *uint) (*models.CalendarEvent, error) {
	if input.EndAt.Before(input.StartAt) {
		return nil, errors.New("end time must not be before start time")
	}

	var category models.EventCategory
	if err := s.DB.First(&category, input.CategoryID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.New("category not found")
		}
		return nil, err
	}

	event := &models.CalendarEvent{
		Title:       input.Title,
		Description: input.Description,
		CategoryID:  input.CategoryID,
		StartAt:     input.StartAt,
		EndAt:       input.EndAt,
		AllDay:      input.AllDay,
		CreatedBy:   createdBy,
	}
	if err := s.DB.Create(event).Error; err != nil {
		return nil, err
	}
	return event, nil
}

// 8 UpdateEvent 更新日历事件
func (s *CalendarService) UpdateEvent(id uint, updates map[string]interface{}) (*models.CalendarEvent, error) {
	var event models.CalendarEvent
	if err := s.DB.First(&event, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.New("event not found")
		}
		return nil, err
	}

	if categoryID, ok := updates["category_id"]; ok {
		var category models.EventCategory
		if err := s.DB.First(&category, categoryID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, errors.New("category not found")
			}
			return nil, err
		}
	}

	if err := s.DB.Model(&event).Updates(updates).Error; err != nil {
		return nil, err
	}
	return &event, nil
}

// 9 DeleteEvent 删除日历事件
func (s *CalendarService) DeleteEvent(id uint) error {
	result := s.DB.Delete(&models.CalendarEvent{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return errors.New("event not found")
	}
	return nil
}
