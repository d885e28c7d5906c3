package services

import (
	"errors"

	"hrlink-http-service/internal/domain/models"
	"hrlink-http-service/internal/infrastructure/config"

	"gorm.io/gorm"
)

// InterfaceBiometricLogService defines the biometric log service interface
type InterfaceBiometricLogService interface {
	GetLogs(employeeCode string, date string, page, pageSize int) ([]models.BiometricLog, int64, error)
	GetLogByID(id uint) (*models.BiometricLog, error)
	DeleteLog(id uint) error
}

// BiometricLogService 提供原始打卡记录的查询与清理
type BiometricLogService struct {
	DB     *gorm.DB
	Config *config.Config
}

// NewBiometricLogService 创建一个新的打卡记录服务
func NewBiometricLogService(db *gorm.DB, cfg *config.Config) InterfaceBiometricLogService {
	return &BiometricLogService{
		DB:     db,
		Config: cfg,
	}
}

// 1 GetLogs 分页获取打卡记录，支持按工号和日期过滤
func (s *BiometricLogService) GetLogs(employeeCode string, date string, page, pageSize int) ([]models.BiometricLog, int64, error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > 200 {
		pageSize = 20
	}

	query := s.DB.Model(&models.BiometricLog{})
	if employeeCode != "" {
		query = query.Where("employee_code = ?", employeeCode)
	}
	if date != "" {
		query = query.Where("scan_date = ?", date)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var logs []models.BiometricLog
	if err := query.Order("id DESC").Offset((page - 1) * pageSize).Limit(pageSize).Find(&logs).Error; err != nil {
		return nil, 0, err
	}

	return logs, total, nil
}

// 2 GetLogByID 根据ID获取打卡记录
func (s *BiometricLogService) GetLogByID(id uint) (*models.BiometricLog, error) {
	var log models.BiometricLog
	if err := s.DB.First(&log, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.New("biometric log not found")
		}
		return nil, err
	}
	return &log, nil
}

// 3 DeleteLog 删除打卡记录。考勤记录是解析结果，不随原始记录一起回滚。
func (s *BiometricLogService) DeleteLog(id uint) error {
	result := s.DB.Delete(&models.BiometricLog{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return errors.New("biometric log not found")
	}
	return nil
}
