package controllers

import (
	"errors"
	"net/http"
	"strconv"

	"hrlink-http-service/internal/app/middleware"
	"hrlink-http-service/internal/domain/services"
	"hrlink-http-service/internal/domain/services/container"
	"hrlink-http-service/internal/error/code"
	"hrlink-http-service/internal/error/response"

	"github.com/gin-gonic/gin"
)

// AttendanceSettingController 处理考勤配置相关的请求
type AttendanceSettingController struct {
	Ctx       *gin.Context
	Container *container.ServiceContainer
}

// NewAttendanceSettingController 创建一个新的考勤配置控制器
func NewAttendanceSettingController(ctx *gin.Context, container *container.ServiceContainer) *AttendanceSettingController {
	return &AttendanceSettingController{
		Ctx:       ctx,
		Container: container,
	}
}

// SettingRequest 表示创建或更新考勤配置的请求体
type SettingRequest struct {
	RequiredTimeIn       string `json:"required_time_in" binding:"required" example:"08:00"`
	RequiredTimeOut      string `json:"required_time_out" binding:"required" example:"17:00"`
	BreakDurationMinutes int    `json:"break_duration_minutes" example:"60"`
	BreakIsCounted       bool   `json:"break_is_counted" example:"false"`
	// 操作者当前密码二次确认；缺失时同样走凭证校验路径，返回422字段错误
	Password string `json:"password" example:"Admin@123"`
}

// GetSettings 获取历史配置列表
// @Summary      获取考勤配置列表
// @Description  获取全部历史考勤配置，最新在前
// @Tags         AttendanceSetting
// @Accept       json
// @Produce      json
// @Success      200  {object}  map[string]interface{}
// @Failure      500  {object}  ErrorResponse
// @Router       /attendance-settings [get]
// @Security     BearerAuth
func (c *AttendanceSettingController) GetSettings() {
	settingService := c.Container.GetService("attendance_setting").(services.InterfaceAttendanceSettingService)

	settings, err := settingService.GetSettings()
	if err != nil {
		response.FailWithMessage(c.Ctx, code.ErrDatabase, "查询考勤配置失败: "+err.Error(), nil)
		return
	}

	response.Success(c.Ctx, settings)
}

// GetActiveSetting 获取当前生效配置
// @Summary      获取当前考勤配置
// @Tags         AttendanceSetting
// @Accept       json
// @Produce      json
// @Success      200  {object}  map[string]interface{}
// @Failure      422  {object}  ErrorResponse
// @Router       /attendance-settings/active [get]
// @Security     BearerAuth
func (c *AttendanceSettingController) GetActiveSetting() {
	settingService := c.Container.GetService("attendance_setting").(services.InterfaceAttendanceSettingService)

	setting, err := settingService.GetActiveSetting()
	if err != nil {
		if errors.Is(err, services.ErrMissingConfiguration) {
			response.FailWithMessage(c.Ctx, code.ErrMissingConfiguration, err.Error(), nil)
			return
		}
		response.FailWithMessage(c.Ctx, code.ErrDatabase, "查询考勤配置失败: "+err.Error(), nil)
		return
	}

	response.Success(c.Ctx, setting)
}

// CreateSetting 创建新配置
// @Summary      创建考勤配置
// @Description  创建新的考勤配置，需要操作者重新输入当前密码确认
// @Tags         AttendanceSetting
// @Accept       json
// @Produce      json
// @Param        request body SettingRequest true "考勤配置"
// @Success      201  {object}  map[string]interface{}
// @Failure      400  {object}  ErrorResponse
// @Failure      422  {object}  ErrorResponse
// @Router       /attendance-settings [post]
// @Security     BearerAuth
func (c *AttendanceSettingController) CreateSetting() {
	var req SettingRequest
	if err := c.Ctx.ShouldBindJSON(&req); err != nil {
		response.ParamError(c.Ctx, "无效的请求参数: "+err.Error())
		return
	}

	actorID := middleware.CurrentEmployeeID(c.Ctx)

	settingService := c.Container.GetService("attendance_setting").(services.InterfaceAttendanceSettingService)
	setting, err := settingService.CreateSetting(actorID, req.Password, services.SettingInput{
		RequiredTimeIn:       req.RequiredTimeIn,
		RequiredTimeOut:      req.RequiredTimeOut,
		BreakDurationMinutes: req.BreakDurationMinutes,
		BreakIsCounted:       req.BreakIsCounted,
	})
	if err != nil {
		c.failSetting(err)
		return
	}

	response.Created(c.Ctx, setting)
}

// UpdateSetting 更新现有配置
// @Summary      更新考勤配置
// @Description  更新现有考勤配置，需要操作者重新输入当前密码确认
// @Tags         AttendanceSetting
// @Accept       json
// @Produce      json
// @Param        id path int true "配置ID" example:"1"
// @Param        request body SettingRequest true "考勤配置"
// @Success      200  {object}  map[string]interface{}
// @Failure      404  {object}  ErrorResponse
// @Failure      422  {object}  ErrorResponse
// @Router       /attendance-settings/{id} [put]
// @Security     BearerAuth
func (c *AttendanceSettingController) UpdateSetting() {
	idStr := c.Ctx.Param("id")
	id, err := strconv.ParseUint(idStr, 10, 32)
	if err != nil {
		response.ParamError(c.Ctx, "无效的ID参数")
		return
	}

	var req SettingRequest
	if err := c.Ctx.ShouldBindJSON(&req); err != nil {
		response.ParamError(c.Ctx, "无效的请求参数: "+err.Error())
		return
	}

	actorID := middleware.CurrentEmployeeID(c.Ctx)

	settingService := c.Container.GetService("attendance_setting").(services.InterfaceAttendanceSettingService)
	setting, err := settingService.UpdateSetting(actorID, uint(id), req.Password, services.SettingInput{
		RequiredTimeIn:       req.RequiredTimeIn,
		RequiredTimeOut:      req.RequiredTimeOut,
		BreakDurationMinutes: req.BreakDurationMinutes,
		BreakIsCounted:       req.BreakIsCounted,
	})
	if err != nil {
		if err.Error() == "attendance setting not found" {
			response.Fail(c.Ctx, code.ErrSettingNotFound, nil)
			return
		}
		c.failSetting(err)
		return
	}

	response.Success(c.Ctx, setting)
}

// failSetting 把配置服务的哨兵错误映射为统一响应
func (c *AttendanceSettingController) failSetting(err error) {
	switch {
	case errors.Is(err, services.ErrInvalidCredential):
		// 密码确认失败作为字段级验证错误返回，配置不变
		response.ValidationError(c.Ctx, map[string]string{"password": err.Error()})
	case errors.Is(err, services.ErrInvalidTimeRange):
		response.FailWithMessage(c.Ctx, code.ErrInvalidTimeRange, err.Error(), nil)
	default:
		response.FailWithMessage(c.Ctx, code.ErrDatabase, "保存考勤配置失败: "+err.Error(), nil)
	}
}

// HandleAttendanceSettingFunc 返回一个处理考勤配置请求的Gin处理函数
func HandleAttendanceSettingFunc(container *container.ServiceContainer, method string) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		controller := NewAttendanceSettingController(ctx, container)

		switch method {
		case "getSettings":
			controller.GetSettings()
		case "getActiveSetting":
			controller.GetActiveSetting()
		case "createSetting":
			controller.CreateSetting()
		case "updateSetting":
			controller.UpdateSetting()
		default:
			ctx.JSON(http.StatusBadRequest, gin.H{
				"code":    400,
				"message": "无效的方法",
				"data":    nil,
			})
		}
	}
}
