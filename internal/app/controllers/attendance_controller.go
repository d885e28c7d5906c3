package controllers

import (
	"errors"
	"net/http"
	"strconv"

	"hrlink-http-service/internal/domain/models"
	"hrlink-http-service/internal/domain/services"
	"hrlink-http-service/internal/domain/services/container"
	"hrlink-http-service/internal/error/code"
	"hrlink-http-service/internal/error/response"

	"github.com/gin-gonic/gin"
)

// AttendanceController 处理考勤相关的请求
type AttendanceController struct {
	Ctx       *gin.Context
	Container *container.ServiceContainer
}

// NewAttendanceController 创建一个新的考勤控制器
func NewAttendanceController(ctx *gin.Context, container *container.ServiceContainer) *AttendanceController {
	return &AttendanceController{
		Ctx:       ctx,
		Container: container,
	}
}

// RecordScanRequest 表示一次打卡事件的请求体
type RecordScanRequest struct {
	EmployeeCode string `json:"employee_code" binding:"required" example:"EMP10234"` // 工号或数字员工ID
	ScanDate     string `json:"scan_date" binding:"required" example:"2025-06-02"`
	ScanTime     string `json:"scan_time" binding:"required" example:"08:05:00"`
}

// RecordManualScan 手工录入一次打卡
// @Summary      手工打卡
// @Description  管理员手工录入一次打卡事件，语义与设备上报一致
// @Tags         Attendance
// @Accept       json
// @Produce      json
// @Param        request body RecordScanRequest true "打卡信息"
// @Success      201  {object}  map[string]interface{}
// @Failure      400  {object}  ErrorResponse
// @Failure      422  {object}  ErrorResponse
// @Router       /attendance [post]
// @Security     BearerAuth
func (c *AttendanceController) RecordManualScan() {
	c.recordScan(models.ScanSourceManual)
}

// recordScan 处理一次打卡事件并按结果分派响应
func (c *AttendanceController) recordScan(source string) {
	var req RecordScanRequest
	if err := c.Ctx.ShouldBindJSON(&req); err != nil {
		response.ParamError(c.Ctx, "无效的请求参数: "+err.Error())
		return
	}

	attendanceService := c.Container.GetService("attendance").(services.InterfaceAttendanceService)
	result, err := attendanceService.RecordScan(req.EmployeeCode, req.ScanDate, req.ScanTime, source)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrScanOutOfWindow):
			response.FailWithMessage(c.Ctx, code.ErrScanOutOfWindow, err.Error(), nil)
		case errors.Is(err, services.ErrAttendanceComplete):
			response.FailWithMessage(c.Ctx, code.ErrAttendanceComplete, err.Error(), nil)
		case errors.Is(err, services.ErrMissingConfiguration):
			response.FailWithMessage(c.Ctx, code.ErrMissingConfiguration, err.Error(), nil)
		default:
			response.FailWithMessage(c.Ctx, code.ErrDatabase, "处理打卡失败: "+err.Error(), nil)
		}
		return
	}

	// 工号未匹配时不返回attendance字段，只确认原始记录已留存
	payload := gin.H{
		"matched":       result.Matched,
		"biometric_log": result.Log,
	}
	if result.Matched {
		payload["attendance"] = result.Attendance
	}
	response.Created(c.Ctx, payload)
}

// GetAttendances 获取考勤记录列表
// @Summary      获取考勤记录列表
// @Description  获取考勤记录，支持分页、员工与日期区间过滤
// @Tags         Attendance
// @Accept       json
// @Produce      json
// @Param        page query int false "页码，默认为1" example:"1"
// @Param        page_size query int false "每页条数，默认为10" example:"10"
// @Param        employee_id query int false "员工ID" example:"1"
// @Param        date_from query string false "起始日期" example:"2025-06-01"
// @Param        date_to query string false "结束日期" example:"2025-06-30"
// @Success      200  {object}  map[string]interface{}
// @Failure      500  {object}  ErrorResponse
// @Router       /attendance [get]
// @Security     BearerAuth
func (c *AttendanceController) GetAttendances() {
	page, _ := strconv.Atoi(c.Ctx.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.Ctx.DefaultQuery("page_size", "10"))
	employeeID, _ := strconv.ParseUint(c.Ctx.DefaultQuery("employee_id", "0"), 10, 32)
	dateFrom := c.Ctx.Query("date_from")
	dateTo := c.Ctx.Query("date_to")

	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > 100 {
		pageSize = 10
	}

	attendanceService := c.Container.GetService("attendance").(services.InterfaceAttendanceService)
	records, total, err := attendanceService.GetAttendances(page, pageSize, uint(employeeID), dateFrom, dateTo)
	if err != nil {
		response.FailWithMessage(c.Ctx, code.ErrDatabase, "查询考勤记录失败: "+err.Error(), nil)
		return
	}

	response.Success(c.Ctx, gin.H{
		"total":       total,
		"page":        page,
		"page_size":   pageSize,
		"total_pages": (total + int64(pageSize) - 1) / int64(pageSize),
		"data":        records,
	})
}

// GetAttendance 获取单条考勤记录
// @Summary      获取考勤记录详情
// @Tags         Attendance
// @Accept       json
// @Produce      json
// @Param        id path int true "考勤记录ID" example:"1"
// @Success      200  {object}  map[string]interface{}
// @Failure      404  {object}  ErrorResponse
// @Router       /attendance/{id} [get]
// @Security     BearerAuth
func (c *AttendanceController) GetAttendance() {
	idStr := c.Ctx.Param("id")
	id, err := strconv.ParseUint(idStr, 10, 32)
	if err != nil {
		response.ParamError(c.Ctx, "无效的ID参数")
		return
	}

	attendanceService := c.Container.GetService("attendance").(services.InterfaceAttendanceService)
	att, err := attendanceService.GetAttendanceByID(uint(id))
	if err != nil {
		if err.Error() == "attendance record not found" {
			response.Fail(c.Ctx, code.ErrAttendanceNotFound, nil)
			return
		}
		response.FailWithMessage(c.Ctx, code.ErrDatabase, "查询考勤记录失败: "+err.Error(), nil)
		return
	}

	response.Success(c.Ctx, att)
}

// HandleAttendanceFunc 返回一个处理考勤请求的Gin处理函数
func HandleAttendanceFunc(container *container.ServiceContainer, method string) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		controller := NewAttendanceController(ctx, container)

		switch method {
		case "recordManualScan":
			controller.RecordManualScan()
		case "getAttendances":
			controller.GetAttendances()
		case "getAttendance":
			controller.GetAttendance()
		default:
			ctx.JSON(http.StatusBadRequest, gin.H{
				"code":    400,
				"message": "无效的方法",
				"data":    nil,
			})
		}
	}
}
