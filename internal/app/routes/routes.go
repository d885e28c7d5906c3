package routes

import (
	_ "hrlink-http-service/docs"
	"hrlink-http-service/internal/app/controllers"
	"hrlink-http-service/internal/app/middleware"
	"hrlink-http-service/internal/domain/services/container"
	"hrlink-http-service/internal/infrastructure/config"
	"time"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"gorm.io/gorm"
)

// SetupRouter 初始化并返回配置好的路由和服务容器
func SetupRouter(db *gorm.DB, cfg *config.Config) (*gin.Engine, *container.ServiceContainer) {
	// 初始化 Gin
	r := gin.Default()

	// 添加 CORS 中间件
	r.Use(func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, X-CSRF-Token, Authorization, Accept, Origin, Cache-Control, X-Requested-With")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS, PATCH")
		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	})
	// 创建服务容器
	serviceContainer := container.NewServiceContainer(db, cfg)
	// 初始化中间件
	middleware.InitAuthMiddleware(cfg, db)
	// 添加 Swagger 文档路由
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// 注册路由
	registerRoutes(r, serviceContainer)
	return r, serviceContainer
}

// registerRoutes 配置所有API路由
func registerRoutes(
	r *gin.Engine,
	container *container.ServiceContainer,
) {
	// API 路由根路径
	api := r.Group("/api")
	// 注册公共路由
	registerPublicRoutes(api, container)
	// 注册员工可访问的路由
	registerEmployeeRoutes(api, container)
	// 注册管理员路由
	registerAdminRoutes(api, container)
}

// registerPublicRoutes 注册公共路由
func registerPublicRoutes(
	api *gin.RouterGroup,
	container *container.ServiceContainer,
) {
	// 添加IP限流中间件 - 每秒允许10个请求，最多突发20个请求
	api.Use(middleware.IPRateLimiter(10, 20))

	// 健康检查路由
	api.GET("/ping", controllers.HandleHealthFunc(container, "ping"))
	api.GET("/health", controllers.HandleHealthFunc(container, "ping")) // 添加兼容Docker健康检查的路由

	// 认证路由
	api.POST("/auth/login", controllers.HandleJWTFunc(container, "login"))

	// 考勤机打卡上报路由 - 设备直接推送，无需JWT
	scanGroup := api.Group("/biometric-logs")
	scanGroup.Use(middleware.PathRateLimiter(20, 40)) // 每秒20个请求，最多突发40个
	scanGroup.POST("", controllers.HandleBiometricLogFunc(container, "ingestScan"))
}

// registerEmployeeRoutes 注册员工可访问的路由
func registerEmployeeRoutes(
	api *gin.RouterGroup,
	container *container.ServiceContainer,
) {
	emp := api.Group("/")
	emp.Use(middleware.AuthenticateEmployee())

	// 添加通用限流中间件 - 每秒30个请求，最多突发50个请求
	emp.Use(middleware.IPRateLimiter(30, 50))

	// 考勤查询路由
	attendanceGroup := emp.Group("/attendance")
	attendanceGroup.GET("", middleware.Cache(middleware.CacheConfig{Expiration: 30 * time.Second}), controllers.HandleAttendanceFunc(container, "getAttendances"))
	attendanceGroup.GET("/:id", middleware.Cache(middleware.CacheConfig{Expiration: 30 * time.Second}), controllers.HandleAttendanceFunc(container, "getAttendance"))

	// 日历路由
	calendarGroup := emp.Group("/calendar")
	calendarGroup.GET("/categories", middleware.Cache(middleware.CacheConfig{Expiration: 5 * time.Minute}), controllers.HandleCalendarFunc(container, "getCategories"))
	calendarGroup.GET("/events", middleware.Cache(middleware.CacheConfig{Expiration: 30 * time.Second}), controllers.HandleCalendarFunc(container, "getEvents"))

	// 聊天路由
	chatGroup := emp.Group("/chat")
	chatGroup.GET("/rooms", controllers.HandleChatFunc(container, "getRooms"))
	chatGroup.GET("/rooms/:room/messages", controllers.HandleChatFunc(container, "getMessages"))
	chatGroup.POST("/rooms/:room/messages", controllers.HandleChatFunc(container, "sendMessage"))

	// 文档检索路由
	emp.GET("/documents/search", controllers.HandleDocumentFunc(container, "searchDocuments"))
}

// registerAdminRoutes 注册管理员路由
func registerAdminRoutes(
	api *gin.RouterGroup,
	container *container.ServiceContainer,
) {
	admin := api.Group("/")
	admin.Use(middleware.AuthenticateAdmin())

	// 添加通用限流中间件 - 每秒30个请求，最多突发50个请求
	admin.Use(middleware.IPRateLimiter(30, 50))

	// 员工路由
	employeeGroup := admin.Group("/employees")
	employeeGroup.GET("", middleware.Cache(middleware.CacheConfig{Expiration: 1 * time.Minute}), controllers.HandleEmployeeFunc(container, "getEmployees"))
	employeeGroup.GET("/:id", middleware.Cache(middleware.CacheConfig{Expiration: 1 * time.Minute}), controllers.HandleEmployeeFunc(container, "getEmployee"))
	employeeGroup.POST("", controllers.HandleEmployeeFunc(container, "createEmployee"))
	employeeGroup.PUT("/:id", controllers.HandleEmployeeFunc(container, "updateEmployee"))
	employeeGroup.DELETE("/:id", controllers.HandleEmployeeFunc(container, "deleteEmployee"))

	// 部门路由
	departmentGroup := admin.Group("/departments")
	departmentGroup.GET("", middleware.Cache(middleware.CacheConfig{Expiration: 5 * time.Minute}), controllers.HandleDepartmentFunc(container, "getDepartments"))
	departmentGroup.GET("/:id", middleware.Cache(middleware.CacheConfig{Expiration: 5 * time.Minute}), controllers.HandleDepartmentFunc(container, "getDepartment"))
	departmentGroup.POST("", controllers.HandleDepartmentFunc(container, "createDepartment"))
	departmentGroup.PUT("/:id", controllers.HandleDepartmentFunc(container, "updateDepartment"))
	departmentGroup.DELETE("/:id", controllers.HandleDepartmentFunc(container, "deleteDepartment"))

	// 职位路由
	positionGroup := admin.Group("/positions")
	positionGroup.GET("", middleware.Cache(middleware.CacheConfig{Expiration: 5 * time.Minute}), controllers.HandlePositionFunc(container, "getPositions"))
	positionGroup.GET("/:id", middleware.Cache(middleware.CacheConfig{Expiration: 5 * time.Minute}), controllers.HandlePositionFunc(container, "getPosition"))
	positionGroup.POST("", controllers.HandlePositionFunc(container, "createPosition"))
	positionGroup.PUT("/:id", controllers.HandlePositionFunc(container, "updatePosition"))
	positionGroup.DELETE("/:id", controllers.HandlePositionFunc(container, "deletePosition"))

	// 手工补卡路由
	admin.POST("/attendance", controllers.HandleAttendanceFunc(container, "recordManualScan"))

	// 打卡原始记录路由
	logGroup := admin.Group("/biometric-logs")
	logGroup.GET("", middleware.Cache(middleware.CacheConfig{Expiration: 10 * time.Second}), controllers.HandleBiometricLogFunc(container, "getLogs"))
	logGroup.DELETE("/:id", controllers.HandleBiometricLogFunc(container, "deleteLog"))

	// 考勤配置路由
	settingGroup := admin.Group("/attendance-settings")
	settingGroup.GET("", controllers.HandleAttendanceSettingFunc(container, "getSettings"))
	settingGroup.GET("/active", controllers.HandleAttendanceSettingFunc(container, "getActiveSetting"))
	settingGroup.POST("", controllers.HandleAttendanceSettingFunc(container, "createSetting"))
	settingGroup.PUT("/:id", controllers.HandleAttendanceSettingFunc(container, "updateSetting"))

	// 加班申请路由
	overtimeGroup := admin.Group("/overtimes")
	overtimeGroup.GET("", middleware.Cache(middleware.CacheConfig{Expiration: 30 * time.Second}), controllers.HandleOvertimeFunc(container, "getOvertimes"))
	overtimeGroup.GET("/:id", controllers.HandleOvertimeFunc(container, "getOvertime"))
	overtimeGroup.POST("", controllers.HandleOvertimeFunc(container, "createOvertime"))
	overtimeGroup.POST("/:id/approve", controllers.HandleOvertimeFunc(container, "approveOvertime"))
	overtimeGroup.POST("/:id/reject", controllers.HandleOvertimeFunc(container, "rejectOvertime"))
	overtimeGroup.DELETE("/:id", controllers.HandleOvertimeFunc(container, "deleteOvertime"))

	// 违纪通知单路由
	memoGroup := admin.Group("/memos")
	memoGroup.GET("", middleware.Cache(middleware.CacheConfig{Expiration: 30 * time.Second}), controllers.HandleMemoFunc(container, "getMemos"))
	memoGroup.GET("/:id", controllers.HandleMemoFunc(container, "getMemo"))
	memoGroup.POST("", controllers.HandleMemoFunc(container, "createMemo"))
	memoGroup.PUT("/:id", controllers.HandleMemoFunc(container, "updateMemo"))
	memoGroup.DELETE("/:id", controllers.HandleMemoFunc(container, "deleteMemo"))

	// 日历管理路由
	calendarGroup := admin.Group("/calendar")
	calendarGroup.POST("/categories", controllers.HandleCalendarFunc(container, "createCategory"))
	calendarGroup.PUT("/categories/:id", controllers.HandleCalendarFunc(container, "updateCategory"))
	calendarGroup.DELETE("/categories/:id", controllers.HandleCalendarFunc(container, "deleteCategory"))
	calendarGroup.POST("/events", controllers.HandleCalendarFunc(container, "createEvent"))
	calendarGroup.PUT("/events/:id", controllers.HandleCalendarFunc(container, "updateEvent"))
	calendarGroup.DELETE("/events/:id", controllers.HandleCalendarFunc(container, "deleteEvent"))

	// 文档路由
	documentGroup := admin.Group("/documents")
	documentGroup.GET("", middleware.Cache(middleware.CacheConfig{Expiration: 30 * time.Second}), controllers.HandleDocumentFunc(container, "getDocuments"))
	documentGroup.GET("/:id", controllers.HandleDocumentFunc(container, "getDocument"))
	documentGroup.POST("", controllers.HandleDocumentFunc(container, "uploadDocument"))
	documentGroup.PUT("/:id/approval", controllers.HandleDocumentFunc(container, "setApprovalStatus"))
	documentGroup.POST("/:id/extract", controllers.HandleDocumentFunc(container, "enqueueExtraction"))
	documentGroup.DELETE("/:id", controllers.HandleDocumentFunc(container, "deleteDocument"))

	// MQTT通道信息路由 - 提取完成通知仅限管理员订阅
	admin.GET("/notifications/channel", middleware.Cache(middleware.CacheConfig{Expiration: 5 * time.Minute}), controllers.HandleNotificationFunc(container, "getChannelInfo"))
}
