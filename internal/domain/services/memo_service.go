package services

import (
	"errors"
	"time"

	"hrlink-http-service/internal/domain/models"
	"hrlink-http-service/internal/infrastructure/config"

	"gorm.io/gorm"
)

// MemoInput 备忘录输入
type MemoInput struct {
	EmployeeID uint   `json:"employee_id" binding:"required"`
	Subject    string `json:"subject" binding:"required"`
	Body       string `json:"body"`
}

// InterfaceMemoService defines the memo service interface
type InterfaceMemoService interface {
	GetMemos(employeeID uint) ([]models.Memo, error)
	GetMemoByID(id uint) (*models.Memo, error)
	CreateMemo(input *MemoInput, issuerID uint) (*models.Memo, error)
	UpdateMemo(id uint, updates map[string]interface{}) (*models.Memo, error)
	DeleteMemo(id uint) error
}

// MemoService 提供纪律备忘录相关的服务
type MemoService struct {
	DB     *gorm.DB
	Config *config.Config
}

// NewMemoService 创建一个新的备忘录服务
func NewMemoService(db *gorm.DB, cfg *config.Config) InterfaceMemoService {
	return &MemoService{
		DB:     db,
		Config: cfg,
	}
}

// 1 GetMemos 获取备忘录列表，支持按员工过滤
func (s *MemoService) GetMemos(employeeID uint) ([]models.Memo, error) {
	var memos []models.Memo
	query := s.DB.Preload("Employee").Order("issued_at DESC")
	if employeeID > 0 {
		query = query.Where("employee_id = ?", employeeID)
	}
	if err := query.Find(&memos).Error; err != nil {
		return nil, err
	}
	return memos, nil
}

// 2 GetMemoByID 根据ID获取备忘录
func (s *MemoService) GetMemoByID(id uint) (*models.Memo, error) {
	var memo models.Memo
	if err := s.DB.Preload("Employee").Preload("Issuer").First(&memo, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.New("memo not found")
		}
		return nil, err
	}
	return &memo, nil
}

// 3 CreateMemo 创建备忘录，违规次数为该员工历史备忘录数量加一
func (s *MemoService) CreateMemo(input *MemoInput, issuerID uint) (*models.Memo, error) {
	var employee models.Employee
	if err := s.DB.First(&employee, input.EmployeeID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.New("employee not found")
		}
		return nil, err
	}

	var count int64
	if err := s.DB.Model(&models.Memo{}).Where("employee_id = ?", input.EmployeeID).Count(&count).Error; err != nil {
		return nil, err
	}

	memo := &models.Memo{
		EmployeeID:     input.EmployeeID,
		Subject:        input.Subject,
		Body:           input.Body,
		ViolationCount: int(count) + 1,
		IssuedBy:       issuerID,
		IssuedAt:       time.Now(),
	}
	if err := s.DB.Create(memo).Error; err != nil {
		return nil, err
	}
	return memo, nil
}

// 4 UpdateMemo 更新备忘录内容
func (s *MemoService) UpdateMemo(id uint, updates map[string]interface{}) (*models.Memo, error) {
	var memo models.Memo
	if err := s.DB.First(&memo, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.New("memo not found")
		}
		return nil, err
	}

	// 违规次数由创建时计算得出，不允许修改
	delete(updates, "violation_count")

	if err := s.DB.Model(&memo).Updates(updates).Error; err != nil {
		return nil, err
	}
	return &memo, nil
}

// 5 DeleteMemo 删除备忘录
func (s *MemoService) DeleteMemo(id uint) error {
	result := s.DB.Delete(&models.Memo{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return errors.New("memo not found")
	}
	return nil
}
