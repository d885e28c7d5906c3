package services

import (
	"time"

	"hrlink-http-service/internal/infrastructure/config"
	"hrlink-http-service/pkg/logger"

	"github.com/robfig/cron/v3"
)

// InterfaceSchedulerService 定义定时任务服务接口
type InterfaceSchedulerService interface {
	Start() error
	Stop()
}

// SchedulerService 托管后台定时任务。
// 目前只有一个任务：采集窗口关闭后为当日无打卡的员工补记缺勤。
type SchedulerService struct {
	Config     *config.Config
	Attendance InterfaceAttendanceService
	cron       *cron.Cron
}

// NewSchedulerService 创建一个新的定时任务服务
func NewSchedulerService(cfg *config.Config, attendance InterfaceAttendanceService) InterfaceSchedulerService {
	return &SchedulerService{
		Config:     cfg,
		Attendance: attendance,
		cron:       cron.New(),
	}
}

// 1 Start 注册并启动所有定时任务
func (s *SchedulerService) Start() error {
	// 每天 20:05 运行，此时 06:00-20:00 采集窗口已关闭
	if _, err := s.cron.AddFunc("5 20 * * *", s.markAbsenteesJob); err != nil {
		return err
	}

	s.cron.Start()
	logger.Info("[Scheduler] 定时任务已启动")
	return nil
}

// 2 Stop 停止定时任务，等待正在执行的任务结束
func (s *SchedulerService) Stop() {
	if s.cron != nil {
		ctx := s.cron.Stop()
		<-ctx.Done()
		logger.Info("[Scheduler] 定时任务已停止")
	}
}

// markAbsenteesJob 补记当日缺勤
func (s *SchedulerService) markAbsenteesJob() {
	date := time.Now().Format("2006-01-02")
	marked, err := s.Attendance.MarkAbsentees(date)
	if err != nil {
		logger.Error("[Scheduler] 补记缺勤失败 date=%s: %v", date, err)
		return
	}
	logger.Info("[Scheduler] 补记缺勤完成 date=%s marked=%d", date, marked)
}
