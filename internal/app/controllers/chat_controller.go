package controllers

import (
	"net/http"
	"strconv"

	"hrlink-http-service/internal/app/middleware"
	"hrlink-http-service/internal/domain/services"
	"hrlink-http-service/internal/domain/services/container"
	"hrlink-http-service/internal/error/code"
	"hrlink-http-service/internal/error/response"

	"github.com/gin-gonic/gin"
)

// ChatController 处理聊天相关的请求
type ChatController struct {
	Ctx       *gin.Context
	Container *container.ServiceContainer
}

// NewChatController 创建一个新的聊天控制器
func NewChatController(ctx *gin.Context, container *container.ServiceContainer) *ChatController {
	return &ChatController{
		Ctx:       ctx,
		Container: container,
	}
}

// GetRooms 获取房间列表
// @Summary      获取聊天房间列表
// @Tags         Chat
// @Accept       json
// @Produce      json
// @Success      200  {object}  map[string]interface{}
// @Failure      500  {object}  ErrorResponse
// @Router       /chat/rooms [get]
// @Security     BearerAuth
func (c *ChatController) GetRooms() {
	chatService := c.Container.GetService("chat").(services.InterfaceChatService)

	rooms, err := chatService.GetRooms()
	if err != nil {
		response.FailWithMessage(c.Ctx, code.ErrDatabase, "查询房间列表失败: "+err.Error(), nil)
		return
	}

	response.Success(c.Ctx, rooms)
}

// GetMessages 获取房间历史消息
// @Summary      获取聊天历史
// @Description  按时间倒序分页获取房间历史消息
// @Tags         Chat
// @Accept       json
// @Produce      json
// @Param        room path string true "房间名" example:"general"
// @Param        limit query int false "返回条数，默认为50" example:"50"
// @Param        before_id query int false "只取此ID之前的消息" example:"100"
// @Success      200  {object}  map[string]interface{}
// @Failure      500  {object}  ErrorResponse
// @Router       /chat/rooms/{room}/messages [get]
// @Security     BearerAuth
func (c *ChatController) GetMessages() {
	room := c.Ctx.Param("room")
	limit, _ := strconv.Atoi(c.Ctx.DefaultQuery("limit", "50"))
	beforeID, _ := strconv.ParseUint(c.Ctx.DefaultQuery("before_id", "0"), 10, 32)

	chatService := c.Container.GetService("chat").(services.InterfaceChatService)
	messages, err := chatService.GetMessages(room, limit, uint(beforeID))
	if err != nil {
		response.FailWithMessage(c.Ctx, code.ErrDatabase, "查询聊天记录失败: "+err.Error(), nil)
		return
	}

	response.Success(c.Ctx, messages)
}

// SendMessageRequest 表示发送消息的请求体
type SendMessageRequest struct {
	Body string `json:"body" binding:"required" example:"大家好"`
}

// SendMessage 发送消息
// @Summary      发送聊天消息
// @Description  归档消息并通过MQTT向房间广播
// @Tags         Chat
// @Accept       json
// @Produce      json
// @Param        room path string true "房间名" example:"general"
// @Param        request body SendMessageRequest true "消息内容"
// @Success      201  {object}  map[string]interface{}
// @Failure      400  {object}  ErrorResponse
// @Router       /chat/rooms/{room}/messages [post]
// @Security     BearerAuth
func (c *ChatController) SendMessage() {
	room := c.Ctx.Param("room")

	var req SendMessageRequest
	if err := c.Ctx.ShouldBindJSON(&req); err != nil {
		response.ParamError(c.Ctx, "无效的请求参数: "+err.Error())
		return
	}

	senderID := middleware.CurrentEmployeeID(c.Ctx)

	chatService := c.Container.GetService("chat").(services.InterfaceChatService)
	message, err := chatService.SendMessage(&services.ChatMessageInput{
		Room: room,
		Body: req.Body,
	}, senderID)
	if err != nil {
		if err.Error() == "sender not found" {
			response.Fail(c.Ctx, code.ErrEmployeeNotFound, nil)
			return
		}
		response.FailWithMessage(c.Ctx, code.ErrDatabase, "发送消息失败: "+err.Error(), nil)
		return
	}

	response.Created(c.Ctx, message)
}

// HandleChatFunc 返回一个处理聊天请求的Gin处理函数
func HandleChatFunc(container *container.ServiceContainer, method string) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		controller := NewChatController(ctx, container)

		switch method {
		case "getRooms":
			controller.GetRooms()
		case "getMessages":
			controller.GetMessages()
		case "sendMessage":
			controller.SendMessage()
		default:
			ctx.JSON(http.StatusBadRequest, gin.H{
				"code":    400,
				"message": "无效的方法",
				"data":    nil,
			})
		}
	}
}
