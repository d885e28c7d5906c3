package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"hrlink-http-service/internal/domain/services/container"
	"hrlink-http-service/internal/error/response"
)

// HandleHealthFunc 返回一个处理健康检查请求的Gin处理函数
func HandleHealthFunc(_ *container.ServiceContainer, method string) gin.HandlerFunc {
	return func(c *gin.Context) {
		controller := NewHealthCheckController()
		switch method {
		case "ping":
			controller.Ping(c)
		default:
			c.JSON(http.StatusBadRequest, gin.H{
				"code":    400,
				"message": "无效的方法",
				"data":    nil,
			})
		}
	}
}

// HealthCheckController 健康检查控制器
type HealthCheckController struct{}

// NewHealthCheckController 创建健康检查控制器实例
func NewHealthCheckController() *HealthCheckController {
	return &HealthCheckController{}
}

// Ping 健康检查端点
func (h *HealthCheckController) Ping(c *gin.Context) {
	response.Success(c, gin.H{
		"status":  "healthy",
		"message": "pong",
	})
}
