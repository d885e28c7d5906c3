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

// OvertimeController 处理加班申请相关的请求
type OvertimeController struct {
	Ctx       *gin.Context
	Container *container.ServiceContainer
}

// NewOvertimeController 创建一个新的加班控制器
func NewOvertimeController(ctx *gin.Context, container *container.ServiceContainer) *OvertimeController {
	return &OvertimeController{
		Ctx:       ctx,
		Container: container,
	}
}

// GetOvertimes 获取加班申请列表
// @Summary      获取加班申请列表
// @Description  获取加班申请，支持按员工和状态过滤
// @Tags         Overtime
// @Accept       json
// @Produce      json
// @Param        employee_id query int false "员工ID" example:"1"
// @Param        status query string false "状态(pending/approved/rejected)" example:"pending"
// @Success      200  {object}  map[string]interface{}
// @Failure      500  {object}  ErrorResponse
// @Router       /overtimes [get]
// @Security     BearerAuth
func (c *OvertimeController) GetOvertimes() {
	employeeID, _ := strconv.ParseUint(c.Ctx.DefaultQuery("employee_id", "0"), 10, 32)
	status := c.Ctx.Query("status")

	overtimeService := c.Container.GetService("overtime").(services.InterfaceOvertimeService)
	overtimes, err := overtimeService.GetOvertimes(uint(employeeID), status)
	if err != nil {
		response.FailWithMessage(c.Ctx, code.ErrDatabase, "查询加班申请失败: "+err.Error(), nil)
		return
	}

	response.Success(c.Ctx, overtimes)
}

// GetOvertime 获取单条加班申请
// @Summary      获取加班申请详情
// @Tags         Overtime
// @Accept       json
// @Produce      json
// @Param        id path int true "加班申请ID" example:"1"
// @Success      200  {object}  map[string]interface{}
// @Failure      404  {object}  ErrorResponse
// @Router       /overtimes/{id} [get]
// @Security     BearerAuth
func (c *OvertimeController) GetOvertime() {
	idStr := c.Ctx.Param("id")
	id, err := strconv.ParseUint(idStr, 10, 32)
	if err != nil {
		response.ParamError(c.Ctx, "无效的ID参数")
		return
	}

	overtimeService := c.Container.GetService("overtime").(services.InterfaceOvertimeService)
	overtime, err := overtimeService.GetOvertimeByID(uint(id))
	if err != nil {
		if err.Error() == "overtime request not found" {
			response.Fail(c.Ctx, code.ErrOvertimeNotFound, nil)
			return
		}
		response.FailWithMessage(c.Ctx, code.ErrDatabase, "查询加班申请失败: "+err.Error(), nil)
		return
	}

	response.Success(c.Ctx, overtime)
}

// CreateOvertimeRequest 表示创建加班申请的请求体
type CreateOvertimeRequest struct {
	EmployeeID uint    `json:"employee_id" binding:"required" example:"1"`
	Date       string  `json:"date" binding:"required" example:"2025-06-02"`
	Hours      float64 `json:"hours" binding:"required" example:"2.5"`
	Reason     string  `json:"reason" example:"月末结算"`
}

// CreateOvertime 创建加班申请
// @Summary      创建加班申请
// @Tags         Overtime
// @Accept       json
// @Produce      json
// @Param        request body CreateOvertimeRequest true "加班申请"
// @Success      201  {object}  map[string]interface{}
// @Failure      400  {object}  ErrorResponse
// @Router       /overtimes [post]
// @Security     BearerAuth
func (c *OvertimeController) CreateOvertime() {
	var req CreateOvertimeRequest
	if err := c.Ctx.ShouldBindJSON(&req); err != nil {
		response.ParamError(c.Ctx, "无效的请求参数: "+err.Error())
		return
	}

	overtimeService := c.Container.GetService("overtime").(services.InterfaceOvertimeService)
	overtime, err := overtimeService.CreateOvertime(&services.OvertimeInput{
		EmployeeID: req.EmployeeID,
		Date:       req.Date,
		Hours:      req.Hours,
		Reason:     req.Reason,
	})
	if err != nil {
		if err.Error() == "employee not found" {
			response.Fail(c.Ctx, code.ErrEmployeeNotFound, nil)
			return
		}
		response.FailWithMessage(c.Ctx, code.ErrValidation, err.Error(), nil)
		return
	}

	response.Created(c.Ctx, overtime)
}

// ApproveOvertime 审批通过加班申请
// @Summary      审批通过加班申请
// @Description  只有 pending 状态的申请可以被处理
// @Tags         Overtime
// @Accept       json
// @Produce      json
// @Param        id path int true "加班申请ID" example:"1"
// @Success      200  {object}  map[string]interface{}
// @Failure      404  {object}  ErrorResponse
// @Failure      422  {object}  ErrorResponse
// @Router       /overtimes/{id}/approve [post]
// @Security     BearerAuth
func (c *OvertimeController) ApproveOvertime() {
	c.decide(true)
}

// RejectOvertime 驳回加班申请
// @Summary      驳回加班申请
// @Tags         Overtime
// @Accept       json
// @Produce      json
// @Param        id path int true "加班申请ID" example:"1"
// @Success      200  {object}  map[string]interface{}
// @Failure      404  {object}  ErrorResponse
// @Failure      422  {object}  ErrorResponse
// @Router       /overtimes/{id}/reject [post]
// @Security     BearerAuth
func (c *OvertimeController) RejectOvertime() {
	c.decide(false)
}

// decide 执行审批决定
func (c *OvertimeController) decide(approve bool) {
	idStr := c.Ctx.Param("id")
	id, err := strconv.ParseUint(idStr, 10, 32)
	if err != nil {
		response.ParamError(c.Ctx, "无效的ID参数")
		return
	}

	deciderID := middleware.CurrentEmployeeID(c.Ctx)
	overtimeService := c.Container.GetService("overtime").(services.InterfaceOvertimeService)

	var overtime interface{}
	if approve {
		overtime, err = overtimeService.ApproveOvertime(uint(id), deciderID)
	} else {
		overtime, err = overtimeService.RejectOvertime(uint(id), deciderID)
	}
	if err != nil {
		if err.Error() == "overtime request not found" {
			response.Fail(c.Ctx, code.ErrOvertimeNotFound, nil)
			return
		}
		if errors.Is(err, services.ErrOvertimeDecided) {
			response.FailWithMessage(c.Ctx, code.ErrOvertimeAlreadyDecided, err.Error(), nil)
			return
		}
		response.FailWithMessage(c.Ctx, code.ErrDatabase, "处理加班申请失败: "+err.Error(), nil)
		return
	}

	response.Success(c.Ctx, overtime)
}

// DeleteOvertime 删除加班申请
// @Summary      删除加班申请
// @Tags         Overtime
// @Accept       json
// @Produce      json
// @Param        id path int true "加班申请ID" example:"1"
// @Success      200  {object}  map[string]interface{}
// @Failure      404  {object}  ErrorResponse
// @Router       /overtimes/{id} [delete]
// @Security     BearerAuth
func (c *OvertimeController) DeleteOvertime() {
	idStr := c.Ctx.Param("id")
	id, err := strconv.ParseUint(idStr, 10, 32)
	if err != nil {
		response.ParamError(c.Ctx, "无效的ID参数")
		return
	}

	overtimeService := c.Container.GetService("overtime").(services.InterfaceOvertimeService)
	if err := overtimeService.DeleteOvertime(uint(id)); err != nil {
		if err.Error() == "overtime request not found" {
			response.Fail(c.Ctx, code.ErrOvertimeNotFound, nil)
			return
		}
		response.FailWithMessage(c.Ctx, code.ErrDatabase, "删除加班申请失败: "+err.Error(), nil)
		return
	}

	response.Success(c.Ctx, nil)
}

// HandleOvertimeFunc 返回一个处理加班申请请求的Gin处理函数
func HandleOvertimeFunc(container *container.ServiceContainer, method string) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		controller := NewOvertimeController(ctx, container)

		switch method {
		case "getOvertimes":
			controller.GetOvertimes()
		case "getOvertime":
			controller.GetOvertime()
		case "createOvertime":
			controller.CreateOvertime()
		case "approveOvertime":
			controller.ApproveOvertime()
		case "rejectOvertime":
			controller.RejectOvertime()
		case "deleteOvertime":
			controller.DeleteOvertime()
		default:
			ctx.JSON(http.StatusBadRequest, gin.H{
				"code":    400,
				"message": "无效的方法",
				"data":    nil,
			})
		}
	}
}
