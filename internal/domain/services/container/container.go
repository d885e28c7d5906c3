package container

import (
	"log"
	"sync"

	"hrlink-http-service/internal/domain/services"
	"hrlink-http-service/internal/infrastructure/config"

	"gorm.io/gorm"
)

// ServiceContainer 管理所有服务的依赖注入
type ServiceContainer struct {
	db     *gorm.DB
	config *config.Config

	// 基础服务
	jwtService services.InterfaceJWTService

	// 数据存储服务
	redisService services.InterfaceRedisService

	// 实时通知服务
	notificationService services.InterfaceNotificationService

	// 文档抽取流水线依赖的外部协作方
	extractorService  services.InterfaceExtractorService
	embeddingService  services.InterfaceEmbeddingService
	searchService     services.InterfaceSearchService
	extractionService services.InterfaceExtractionService

	// 业务服务
	employeeService          services.InterfaceEmployeeService
	departmentService        services.InterfaceDepartmentService
	positionService          services.InterfacePositionService
	attendanceService        services.InterfaceAttendanceService
	attendanceSettingService services.InterfaceAttendanceSettingService
	biometricLogService      services.InterfaceBiometricLogService
	overtimeService          services.InterfaceOvertimeService
	memoService              services.InterfaceMemoService
	calendarService          services.InterfaceCalendarService
	documentService          services.InterfaceDocumentService
	chatService              services.InterfaceChatService
	schedulerService         services.InterfaceSchedulerService

	mu sync.RWMutex
}

// NewServiceContainer 创建新的服务容器
func NewServiceContainer(db *gorm.DB, cfg *config.Config) *ServiceContainer {
	if db == nil {
		panic("数据库连接为空")
	}

	if cfg == nil {
		panic("配置为空")
	}

	container := &ServiceContainer{
		db:     db,
		config: cfg,
	}
	container.initializeServices()
	return container
}

// initializeServices 初始化所有服务
func (c *ServiceContainer) initializeServices() {
	c.mu.Lock()
	defer c.mu.Unlock()

	// 初始化基础服务
	c.jwtService = services.NewJWTService(c.config, c.db)

	// 初始化Redis服务并测试连通性
	c.redisService = services.NewRedisService(c.config)
	if err := c.redisService.Ping(); err != nil {
		log.Printf("Redis连接测试失败: %v，队列和缓存功能将不可用", err)
	}

	// 初始化MQTT通知服务
	c.notificationService = services.NewNotificationService(c.config)
	if err := c.notificationService.Connect(); err != nil {
		log.Printf("MQTT服务连接失败: %v", err)
	}

	// 初始化文档抽取流水线
	c.extractorService = services.NewExtractorService(c.config)
	c.embeddingService = services.NewEmbeddingService(c.config)
	c.searchService = services.NewSearchService(c.config)
	c.extractionService = services.NewExtractionService(
		c.db, c.config, c.redisService,
		c.extractorService, c.embeddingService, c.searchService,
		c.notificationService,
	)

	// 初始化业务服务
	c.employeeService = services.NewEmployeeService(c.db, c.config)
	c.departmentService = services.NewDepartmentService(c.db, c.config)
	c.positionService = services.NewPositionService(c.db, c.config)
	c.attendanceService = services.NewAttendanceService(c.db, c.config)
	c.attendanceSettingService = services.NewAttendanceSettingService(c.db, c.config)
	c.biometricLogService = services.NewBiometricLogService(c.db, c.config)
	c.overtimeService = services.NewOvertimeService(c.db, c.config)
	c.memoService = services.NewMemoService(c.db, c.config)
	c.calendarService = services.NewCalendarService(c.db, c.config)
	c.documentService = services.NewDocumentService(c.db, c.config, c.embeddingService, c.searchService)
	c.chatService = services.NewChatService(c.db, c.config, c.notificationService)

	// 初始化定时任务服务
	c.schedulerService = services.NewSchedulerService(c.config, c.attendanceService)
}

// GetService 获取指定名称的服务
func (c *ServiceContainer) GetService(name string) interface{} {
	c.mu.RLock()
	defer c.mu.RUnlock()

	switch name {
	case "config":
		return c.config
	case "db":
		return c.db
	case "jwt":
		return c.jwtService
	case "redis":
		return c.redisService
	case "notification":
		return c.notificationService
	case "extractor":
		return c.extractorService
	case "embedding":
		return c.embeddingService
	case "search":
		return c.searchService
	case "extraction":
		return c.extractionService
	case "employee":
		return c.employeeService
	case "department":
		return c.departmentService
	case "position":
		return c.positionService
	case "attendance":
		return c.attendanceService
	case "attendance_setting":
		return c.attendanceSettingService
	case "biometric_log":
		return c.biometricLogService
	case "overtime":
		return c.overtimeService
	case "memo":
		return c.memoService
	case "calendar":
		return c.calendarService
	case "document":
		return c.documentService
	case "chat":
		return c.chatService
	case "scheduler":
		return c.schedulerService
	default:
		return nil
	}
}

// GetDB 获取数据库连接
func (c *ServiceContainer) GetDB() *gorm.DB {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.db
}
