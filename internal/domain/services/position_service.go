package services

import (
	"errors"

	"hrlink-http-service/internal/domain/models"
	"hrlink-http-service/internal/infrastructure/config"

	"gorm.io/gorm"
)

// InterfacePositionService defines the position service interface
type InterfacePositionService interface {
	GetAllPositions() ([]models.Position, error)
	GetPositionByID(id uint) (*models.Position, error)
	CreatePosition(position *models.Position) error
	UpdatePosition(id uint, updates map[string]interface{}) (*models.Position, error)
	DeletePosition(id uint) error
}

// PositionService 提供职位相关的服务
type PositionService struct {
	DB     *gorm.DB
	Config *config.Config
}

// NewPositionService 创建一个新的职位服务
func NewPositionService(db *gorm.DB, cfg *config.Config) InterfacePositionService {
	return &PositionService{
		DB:     db,
		Config: cfg,
	}
}

// 1 GetAllPositions 获取所有职位
func (s *PositionService) GetAllPositions() ([]models.Position, error) {
	var positions []models.Position
	if err := s.DB.Preload("Department").Order("title ASC").Find(&positions).Error; err != nil {
		return nil, err
	}
	return positions, nil
}

// 2 GetPositionByID 根据ID获取职位
func (s *PositionService) GetPositionByID(id uint) (*models.Position, error) {
	var position models.Position
	if err := s.DB.Preload("Department").First(&position, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.New("position not found")
		}
		return nil, err
	}
	return &position, nil
}

// 3 CreatePosition 创建新职位
func (s *PositionService) CreatePosition(position *models.Position) error {
	return s.DB.Create(position).Error
}

// 4 UpdatePosition 更新职位信息
func (s *PositionService) UpdatePosition(id uint, updates map[string]interface{}) (*models.Position, error) {
	var position models.Position
	if err := s.DB.First(&position, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.New("position not found")
		}
		return nil, err
	}

	if err := s.DB.Model(&position).Updates(updates).Error; err != nil {
		return nil, err
	}
	return &position, nil
}

// 5 DeletePosition 删除职位，仍有员工时拒绝
func (s *PositionService) DeletePosition(id uint) error {
	var position models.Position
	if err := s.DB.First(&position, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return errors.New("position not found")
		}
		return err
	}

	var count int64
	if err := s.DB.Model(&models.Employee{}).Where("position_id = ?", id).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return errors.New("position still has employees")
	}

	return s.DB.Delete(&position).Error
}
