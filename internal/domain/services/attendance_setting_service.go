package services

import (
	"errors"

	"hrlink-http-service/internal/domain/models"
	"hrlink-http-service/internal/infrastructure/config"

	"gorm.io/gorm"
)

// 考勤配置相关的哨兵错误
var (
	// ErrInvalidCredential 操作者密码二次确认失败
	ErrInvalidCredential = errors.New("password confirmation failed")
	// ErrInvalidTimeRange 上班时间必须严格早于下班时间
	ErrInvalidTimeRange = errors.New("required_time_in must be earlier than required_time_out")
)

// SettingInput 创建/更新考勤配置的输入
type SettingInput struct {
	RequiredTimeIn       string
	RequiredTimeOut      string
	BreakDurationMinutes int
	BreakIsCounted       bool
}

// InterfaceAttendanceSettingService 定义考勤配置服务接口
type InterfaceAttendanceSettingService interface {
	GetSettings() ([]models.AttendanceSetting, error)
	GetActiveSetting() (*models.AttendanceSetting, error)
	CreateSetting(actorID uint, confirmedPassword string, input SettingInput) (*models.AttendanceSetting, error)
	UpdateSetting(actorID uint, id uint, confirmedPassword string, input SettingInput) (*models.AttendanceSetting, error)
}

// AttendanceSettingService 考勤配置的读写。
// 配置影响全员工资相关的状态判定，所有写操作都要求操作者重新确认密码。
type AttendanceSettingService struct {
	DB     *gorm.DB
	Config *config.Config
}

// NewAttendanceSettingService 创建一个新的考勤配置服务
func NewAttendanceSettingService(db *gorm.DB, cfg *config.Config) InterfaceAttendanceSettingService {
	return &AttendanceSettingService{
		DB:     db,
		Config: cfg,
	}
}

// 1 GetSettings 获取全部历史配置，最新在前
func (s *AttendanceSettingService) GetSettings() ([]models.AttendanceSetting, error) {
	var settings []models.AttendanceSetting
	if err := s.DB.Order("id DESC").Find(&settings).Error; err != nil {
		return nil, err
	}
	return settings, nil
}

// 2 GetActiveSetting 获取当前生效配置（最新一条）
func (s *AttendanceSettingService) GetActiveSetting() (*models.AttendanceSetting, error) {
	var setting models.AttendanceSetting
	if err := s.DB.Order("id DESC").First(&setting).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrMissingConfiguration
		}
		return nil, err
	}
	return &setting, nil
}

// 3 CreateSetting 创建新配置，写前确认操作者密码
func (s *AttendanceSettingService) CreateSetting(actorID uint, confirmedPassword string, input SettingInput) (*models.AttendanceSetting, error) {
	if err := s.confirmPassword(actorID, confirmedPassword); err != nil {
		return nil, err
	}
	if err := validateSettingInput(input); err != nil {
		return nil, err
	}

	setting := &models.AttendanceSetting{
		RequiredTimeIn:       input.RequiredTimeIn,
		RequiredTimeOut:      input.RequiredTimeOut,
		BreakDurationMinutes: input.BreakDurationMinutes,
		BreakIsCounted:       input.BreakIsCounted,
	}
	if err := s.DB.Create(setting).Error; err != nil {
		return nil, err
	}
	return setting, nil
}

// 4 UpdateSetting 更新现有配置，写前确认操作者密码
func (s *AttendanceSettingService) UpdateSetting(actorID uint, id uint, confirmedPassword string, input SettingInput) (*models.AttendanceSetting, error) {
	if err := s.confirmPassword(actorID, confirmedPassword); err != nil {
		return nil, err
	}
	if err := validateSettingInput(input); err != nil {
		return nil, err
	}

	var setting models.AttendanceSetting
	if err := s.DB.First(&setting, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.New("attendance setting not found")
		}
		return nil, err
	}

	setting.RequiredTimeIn = input.RequiredTimeIn
	setting.RequiredTimeOut = input.RequiredTimeOut
	setting.BreakDurationMinutes = input.BreakDurationMinutes
	setting.BreakIsCounted = input.BreakIsCounted

	if err := s.DB.Save(&setting).Error; err != nil {
		return nil, err
	}
	return &setting, nil
}

// confirmPassword 用bcrypt比对操作者当前密码
func (s *AttendanceSettingService) confirmPassword(actorID uint, confirmedPassword string) error {
	if confirmedPassword == "" {
		return ErrInvalidCredential
	}

	var actor models.Employee
	if err := s.DB.First(&actor, actorID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrInvalidCredential
		}
		return err
	}

	if !actor.CheckPassword(confirmedPassword) {
		return ErrInvalidCredential
	}
	return nil
}

// validateSettingInput 校验时间范围与休息时长
func validateSettingInput(input SettingInput) error {
	inSec, err := parseClock(input.RequiredTimeIn)
	if err != nil {
		return ErrInvalidTimeRange
	}
	outSec, err := parseClock(input.RequiredTimeOut)
	if err != nil {
		return ErrInvalidTimeRange
	}
	if inSec >= outSec {
		return ErrInvalidTimeRange
	}
	if input.BreakDurationMinutes < 0 {
		return errors.New("break_duration_minutes must not be negative")
	}
	return nil
}
