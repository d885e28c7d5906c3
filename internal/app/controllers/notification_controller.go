package controllers

import (
	"net/http"

	"hrlink-http-service/internal/domain/services"
	"hrlink-http-service/internal/domain/services/container"
	"hrlink-http-service/internal/error/response"
	"hrlink-http-service/internal/infrastructure/config"

	"github.com/gin-gonic/gin"
)

// NotificationController 处理实时通知通道相关的请求
type NotificationController struct {
	Ctx       *gin.Context
	Container *container.ServiceContainer
}

// NewNotificationController 创建一个新的通知控制器
func NewNotificationController(ctx *gin.Context, container *container.ServiceContainer) *NotificationController {
	return &NotificationController{
		Ctx:       ctx,
		Container: container,
	}
}

// GetChannelInfo 获取MQTT订阅信息
// @Summary      获取通知通道信息
// @Description  返回前端订阅实时通知所需的MQTT连接参数与主题
// @Tags         Notification
// @Accept       json
// @Produce      json
// @Success      200  {object}  map[string]interface{}
// @Router       /notifications/channel [get]
// @Security     BearerAuth
func (c *NotificationController) GetChannelInfo() {
	cfg := c.Container.GetService("config").(*config.Config)

	response.Success(c.Ctx, gin.H{
		"broker_url":       cfg.MQTTBrokerURL,
		"username":         cfg.MQTTUsername,
		"extraction_topic": services.TopicExtractionChannel,
		"chat_topic":       services.TopicChatPrefix + "{room}",
		"qos":              cfg.MQTTQoS,
	})
}

// HandleNotificationFunc 返回一个处理通知请求的Gin处理函数
func HandleNotificationFunc(container *container.ServiceContainer, method string) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		controller := NewNotificationController(ctx, container)

		switch method {
		case "getChannelInfo":
			controller.GetChannelInfo()
		default:
			ctx.JSON(http.StatusBadRequest, gin.H{
				"code":    400,
				"message": "无效的方法",
				"data":    nil,
			})
		}
	}
}
