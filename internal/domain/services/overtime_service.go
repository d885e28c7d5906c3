package services

import (
	"errors"
	"time"

	"hrlink-http-service/internal/domain/models"
	"hrlink-http-service/internal/infrastructure/config"

	"gorm.io/gorm"
)

// ErrOvertimeDecided 加班申请已审批，不可重复处理
var ErrOvertimeDecided = errors.New("overtime request already decided")

// OvertimeInput 加班申请输入
type OvertimeInput struct {
	EmployeeID uint    `json:"employee_id" binding:"required"`
	Date       string  `json:"date" binding:"required"`
	Hours      float64 `json:"hours" binding:"required"`
	Reason     string  `json:"reason"`
}

// InterfaceOvertimeService defines the overtime service interface
type InterfaceOvertimeService interface {
	GetOvertimes(employeeID uint, status string) ([]models.EmployeeOvertime, error)
	GetOvertimeByID(id uint) (*models.EmployeeOvertime, error)
	CreateOvertime(input *OvertimeInput) (*models.EmployeeOvertime, error)
	ApproveOvertime(id uint, deciderID uint) (*models.EmployeeOvertime, error)
	RejectOvertime(id uint, deciderID uint) (*models.EmployeeOvertime, error)
	DeleteOvertime(id uint) error
}

// OvertimeService 提供加班申请相关的服务
type OvertimeService struct {
	DB     *gorm.DB
	Config *config.Config
}

// NewOvertimeService 创建一个新的加班服务
func NewOvertimeService(db *gorm.DB, cfg *config.Config) InterfaceOvertimeService {
	return &OvertimeService{
		DB:     db,
		Config: cfg,
	}
}

// 1 GetOvertimes 获取加班申请列表，支持按员工和状态过滤
func (s *OvertimeService) GetOvertimes(employeeID uint, status string) ([]models.EmployeeOvertime, error) {
	var overtimes []models.EmployeeOvertime
	query := s.DB.Preload("Employee").Order("date DESC, id DESC")
	if employeeID > 0 {
		query = query.Where("employee_id = ?", employeeID)
	}
	if status != "" {
		query = query.Where("status = ?", status)
	}
	if err := query.Find(&overtimes).Error; err != nil {
		return nil, err
	}
	return overtimes, nil
}

// 2 GetOvertimeByID 根据ID获取加班申请
func (s *OvertimeService) GetOvertimeByID(id uint) (*models.EmployeeOvertime, error) {
	var overtime models.EmployeeOvertime
	if err := s.DB.Preload("Employee").Preload("Approver").First(&overtime, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.New("overtime request not found")
		}
		return nil, err
	}
	return &overtime, nil
}

// 3 CreateOvertime 创建加班申请，初始状态为 pending
func (s *OvertimeService) CreateOvertime(input *OvertimeInput) (*models.EmployeeOvertime, error) {
	if _, err := time.Parse("2006-01-02", input.Date); err != nil {
		return nil, errors.New("invalid date format, expected YYYY-MM-DD")
	}
	if input.Hours <= 0 || input.Hours > 24 {
		return nil, errors.New("hours must be between 0 and 24")
	}

	var employee models.Employee
	if err := s.DB.First(&employee, input.EmployeeID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.New("employee not found")
		}
		return nil, err
	}

	overtime := &models.EmployeeOvertime{
		EmployeeID: input.EmployeeID,
		Date:       input.Date,
		Hours:      input.Hours,
		Reason:     input.Reason,
		Status:     models.OvertimePending,
	}
	if err := s.DB.Create(overtime).Error; err != nil {
		return nil, err
	}
	return overtime, nil
}

// 4 ApproveOvertime 审批通过加班申请
func (s *OvertimeService) ApproveOvertime(id uint, deciderID uint) (*models.EmployeeOvertime, error) {
	return s.decide(id, deciderID, models.OvertimeApproved)
}

// 5 RejectOvertime 驳回加班申请
func (s *OvertimeService) RejectOvertime(id uint, deciderID uint) (*models.EmployeeOvertime, error) {
	return s.decide(id, deciderID, models.OvertimeRejected)
}

// decide 执行审批决定，只有 pending 状态可以被处理
func (s *OvertimeService) decide(id uint, deciderID uint, status string) (*models.EmployeeOvertime, error) {
	var overtime models.EmployeeOvertime
	if err := s.DB.First(&overtime, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.New("overtime request not found")
		}
		return nil, err
	}
	if overtime.Status != models.OvertimePending {
		return nil, ErrOvertimeDecided
	}

	now := time.Now()
	updates := map[string]interface{}{
		"status":     status,
		"decided_by": deciderID,
		"decided_at": now,
	}
	if err := s.DB.Model(&overtime).Updates(updates).Error; err != nil {
		return nil, err
	}
	return &overtime, nil
}

// 6 DeleteOvertime 删除加班申请
func (s *OvertimeService) DeleteOvertime(id uint) error {
	result := s.DB.Delete(&models.EmployeeOvertime{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return errors.New("overtime request not found")
	}
	return nil
}
