package services

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"hrlink-http-service/internal/domain/models"
	"hrlink-http-service/internal/infrastructure/config"
	"hrlink-http-service/pkg/logger"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// 打卡采集窗口，平台级硬编码约束，与可配置的上下班时间无关
const (
	scanWindowStart = 6 * 3600  // 06:00
	scanWindowEnd   = 20 * 3600 // 20:00
)

// 考勤解析相关的哨兵错误
var (
	// ErrScanOutOfWindow 打卡时间不在 06:00-20:00 采集窗口内
	ErrScanOutOfWindow = errors.New("Scan falls outside the supported time window (06:00-20:00).")
	// ErrAttendanceComplete 当日上下班打卡均已记录，拒绝第三次打卡
	ErrAttendanceComplete = errors.New("attendance already has both time in and time out for this date")
	// ErrMissingConfiguration 系统中没有生效的考勤配置
	ErrMissingConfiguration = errors.New("no active attendance setting configured")
)

// ScanResult 一次打卡事件的处理结果。
// Matched 为 false 表示工号未匹配到员工，原始记录已落库但不产生考勤变更，
// 这是一个合法的终态而不是错误。
type ScanResult struct {
	Matched    bool                 `json:"matched"`
	Log        *models.BiometricLog `json:"biometric_log"`
	Attendance *models.Attendance   `json:"attendance,omitempty"`
}

// InterfaceAttendanceService 定义考勤服务接口
type InterfaceAttendanceService interface {
	RecordScan(employeeCodeOrID, date, scanTime, source string) (*ScanResult, error)
	GetAttendances(page, pageSize int, employeeID uint, dateFrom, dateTo string) ([]models.Attendance, int64, error)
	GetAttendanceByID(id uint) (*models.Attendance, error)
	MarkAbsentees(date string) (int, error)
}

// AttendanceService 将打卡事件解析为考勤记录
type AttendanceService struct {
	DB     *gorm.DB
	Config *config.Config
}

// NewAttendanceService 创建一个新的考勤服务
func NewAttendanceService(db *gorm.DB, cfg *config.Config) InterfaceAttendanceService {
	return &AttendanceService{
		DB:     db,
		Config: cfg,
	}
}

// 1 RecordScan 处理一次打卡事件（手工录入或生物识别设备上报）。
// 窗口校验在任何状态写入之前执行；窗口内的打卡无论是否匹配到员工都会留存原始记录。
func (s *AttendanceService) RecordScan(employeeCodeOrID, date, scanTime, source string) (*ScanResult, error) {
	scanSec, err := parseClock(scanTime)
	if err != nil {
		return nil, fmt.Errorf("invalid scan time %q: %w", scanTime, err)
	}

	// 采集窗口校验，拒绝时不落任何数据
	if scanSec < scanWindowStart || scanSec > scanWindowEnd {
		return nil, ErrScanOutOfWindow
	}

	if source == "" {
		source = models.ScanSourceBiometric
	}

	// 原始打卡记录始终落库，审计优先
	bioLog := &models.BiometricLog{
		EmployeeCode: employeeCodeOrID,
		ScanDate:     date,
		ScanTime:     formatClock(scanSec),
		Source:       source,
	}
	if err := s.DB.Create(bioLog).Error; err != nil {
		return nil, err
	}

	emp, err := s.resolveEmployee(employeeCodeOrID)
	if err != nil {
		return nil, err
	}
	if emp == nil {
		// 工号未匹配：合法终态，只留审计记录
		logger.Info("打卡工号未匹配到员工: code=%s date=%s", employeeCodeOrID, date)
		return &ScanResult{Matched: false, Log: bioLog}, nil
	}

	setting, err := s.activeSetting()
	if err != nil {
		return nil, err
	}

	att, err := s.applyScan(emp.ID, date, scanSec, setting)
	if err != nil {
		return nil, err
	}

	return &ScanResult{Matched: true, Log: bioLog, Attendance: att}, nil
}

// applyScan 在事务内推进 (employee, date) 考勤行的状态机。
// 并发打卡依赖行级锁加 (employee_id, date) 唯一索引兜底，
// 并发创建撞到唯一索引时重试一次走更新路径。
func (s *AttendanceService) applyScan(employeeID uint, date string, scanSec int, setting *models.AttendanceSetting) (*models.Attendance, error) {
	var result *models.Attendance

	run := func() error {
		return s.DB.Transaction(func(tx *gorm.DB) error {
			var att models.Attendance
			query := tx.Where("employee_id = ? AND date = ?", employeeID, date)
			if tx.Dialector.Name() == "mysql" {
				query = query.Clauses(clause.Locking{Strength: "UPDATE"})
			}
			err := query.First(&att).Error

			switch {
			case errors.Is(err, gorm.ErrRecordNotFound):
				// Empty -> CheckedIn
				created, cerr := s.checkIn(tx, employeeID, date, scanSec, setting)
				if cerr != nil {
					return cerr
				}
				result = created
				return nil
			case err != nil:
				return err
			}

			switch att.State() {
			case models.AttendanceCheckedIn:
				// CheckedIn -> Complete
				updated, uerr := s.checkOut(tx, &att, scanSec, setting)
				if uerr != nil {
					return uerr
				}
				result = updated
				return nil
			default:
				return ErrAttendanceComplete
			}
		})
	}

	err := run()
	if err != nil && isDuplicateKeyError(err) {
		// 两台设备几乎同时上报首次打卡时，后到者改走更新路径
		logger.Warning("考勤行并发创建冲突，重试更新路径: employee=%d date=%s", employeeID, date)
		err = run()
	}
	if err != nil {
		return nil, err
	}
	return result, nil
}

// checkIn 创建当日考勤行，迟到与否在此一次性判定
func (s *AttendanceService) checkIn(tx *gorm.DB, employeeID uint, date string, scanSec int, setting *models.AttendanceSetting) (*models.Attendance, error) {
	requiredIn, err := parseClock(setting.RequiredTimeIn)
	if err != nil {
		return nil, fmt.Errorf("invalid required_time_in in settings: %w", err)
	}

	status := models.StatusPresent
	if scanSec > requiredIn {
		status = models.StatusLate
	}

	timeIn := formatClock(scanSec)
	att := &models.Attendance{
		EmployeeID: employeeID,
		Date:       date,
		TimeIn:     &timeIn,
		Status:     status,
		Remarks:    models.RemarksIncomplete,
		TotalHours: 0,
	}
	if err := tx.Create(att).Error; err != nil {
		return nil, err
	}
	return att, nil
}

// checkOut 记录下班打卡并重算工时。
// 状态在上班打卡时已经定型，晚走不会把 Present 降级为 Late。
func (s *AttendanceService) checkOut(tx *gorm.DB, att *models.Attendance, scanSec int, setting *models.AttendanceSetting) (*models.Attendance, error) {
	inSec, err := parseClock(*att.TimeIn)
	if err != nil {
		return nil, fmt.Errorf("corrupt time_in on attendance %d: %w", att.ID, err)
	}

	if att.Status != models.StatusLate {
		requiredIn, perr := parseClock(setting.RequiredTimeIn)
		if perr != nil {
			return nil, fmt.Errorf("invalid required_time_in in settings: %w", perr)
		}
		if inSec > requiredIn {
			att.Status = models.StatusLate
		} else {
			att.Status = models.StatusPresent
		}
	}

	timeOut := formatClock(scanSec)
	att.TimeOut = &timeOut
	att.Remarks = models.RemarksComplete
	att.TotalHours = computeTotalHours(inSec, scanSec, setting)

	if err := tx.Model(&models.Attendance{}).Where("id = ?", att.ID).Updates(map[string]interface{}{
		"time_out":    att.TimeOut,
		"status":      att.Status,
		"remarks":     att.Remarks,
		"total_hours": att.TotalHours,
	}).Error; err != nil {
		return nil, err
	}
	return att, nil
}

// 2 GetAttendances 获取考勤记录，支持分页与过滤
func (s *AttendanceService) GetAttendances(page, pageSize int, employeeID uint, dateFrom, dateTo string) ([]models.Attendance, int64, error) {
	var records []models.Attendance
	var total int64

	query := s.DB.Model(&models.Attendance{})
	if employeeID > 0 {
		query = query.Where("employee_id = ?", employeeID)
	}
	if dateFrom != "" {
		query = query.Where("date >= ?", dateFrom)
	}
	if dateTo != "" {
		query = query.Where("date <= ?", dateTo)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * pageSize
	if err := query.Preload("Employee").Order("date DESC, id DESC").
		Limit(pageSize).Offset(offset).Find(&records).Error; err != nil {
		return nil, 0, err
	}

	return records, total, nil
}

// 3 GetAttendanceByID 根据ID获取考勤记录
func (s *AttendanceService) GetAttendanceByID(id uint) (*models.Attendance, error) {
	var att models.Attendance
	if err := s.DB.Preload("Employee").First(&att, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.New("attendance record not found")
		}
		return nil, err
	}
	return &att, nil
}

// 4 MarkAbsentees 为当日没有任何考勤行的员工补记缺勤，由定时任务在采集窗口关闭后调用
func (s *AttendanceService) MarkAbsentees(date string) (int, error) {
	var employees []models.Employee
	sub := s.DB.Model(&models.Attendance{}).Select("employee_id").Where("date = ?", date)
	if err := s.DB.Where("id NOT IN (?)", sub).Find(&employees).Error; err != nil {
		return 0, err
	}

	marked := 0
	for _, emp := range employees {
		att := models.Attendance{
			EmployeeID: emp.ID,
			Date:       date,
			Status:     models.StatusAbsent,
			Remarks:    models.RemarksIncomplete,
			TotalHours: 0,
		}
		if err := s.DB.Create(&att).Error; err != nil {
			if isDuplicateKeyError(err) {
				continue
			}
			return marked, err
		}
		marked++
	}
	return marked, nil
}

// resolveEmployee 按工号或数字ID查找员工，未找到时返回 (nil, nil)
func (s *AttendanceService) resolveEmployee(codeOrID string) (*models.Employee, error) {
	var emp models.Employee
	err := s.DB.Where("employee_code = ?", codeOrID).First(&emp).Error
	if err == nil {
		return &emp, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	if id, convErr := strconv.ParseUint(codeOrID, 10, 32); convErr == nil {
		err = s.DB.First(&emp, uint(id)).Error
		if err == nil {
			return &emp, nil
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
	}
	return nil, nil
}

// activeSetting 取最新一条考勤配置作为当前生效配置
func (s *AttendanceService) activeSetting() (*models.AttendanceSetting, error) {
	var setting models.AttendanceSetting
	if err := s.DB.Order("id DESC").First(&setting).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrMissingConfiguration
		}
		return nil, err
	}
	return &setting, nil
}

// computeTotalHours 计算工时：跨度减去不计入工时的休息时间，下限0，保留两位小数
func computeTotalHours(inSec, outSec int, setting *models.AttendanceSetting) float64 {
	hours := float64(outSec-inSec) / 3600.0
	if !setting.BreakIsCounted {
		hours -= float64(setting.BreakDurationMinutes) / 60.0
	}
	if hours < 0 {
		hours = 0
	}
	return math.Round(hours*100) / 100
}

// parseClock 解析 HH:MM 或 HH:MM:SS，返回自零点起的秒数
func parseClock(value string) (int, error) {
	parts := strings.Split(value, ":")
	if len(parts) != 2 && len(parts) != 3 {
		return 0, fmt.Errorf("expected HH:MM or HH:MM:SS, got %q", value)
	}

	h, err := strconv.Atoi(parts[0])
	if err != nil || h < 0 || h > 23 {
		return 0, fmt.Errorf("invalid hour in %q", value)
	}
	m, err := strconv.Atoi(parts[1])
	if err != nil || m < 0 || m > 59 {
		return 0, fmt.Errorf("invalid minute in %q", value)
	}
	sec := 0
	if len(parts) == 3 {
		sec, err = strconv.Atoi(parts[2])
		if err != nil || sec < 0 || sec > 59 {
			return 0, fmt.Errorf("invalid second in %q", value)
		}
	}
	return h*3600 + m*60 + sec, nil
}

// formatClock 将自零点起的秒数格式化为 HH:MM:SS
func formatClock(sec int) string {
	return fmt.Sprintf("%02d:%02d:%02d", sec/3600, (sec%3600)/60, sec%60)
}

// isDuplicateKeyError 判断是否为唯一索引冲突
func isDuplicateKeyError(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	msg := err.Error()
	return strings.Contains(msg, "Duplicate entry") || strings.Contains(msg, "UNIQUE constraint failed")
}
