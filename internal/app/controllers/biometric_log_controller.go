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

// BiometricLogController 处理生物识别设备上报与原始打卡记录查询
type BiometricLogController struct {
	Ctx       *gin.Context
	Container *container.ServiceContainer
}

// NewBiometricLogController 创建一个新的打卡记录控制器
func NewBiometricLogController(ctx *gin.Context, container *container.ServiceContainer) *BiometricLogController {
	return &BiometricLogController{
		Ctx:       ctx,
		Container: container,
	}
}

// IngestScanRequest 表示设备上报的打卡事件
type IngestScanRequest struct {
	EmployeeCode string `json:"employee_code" binding:"required" example:"EMP10234"`
	ScanDate     string `json:"scan_date" binding:"required" example:"2025-06-02"`
	ScanTime     string `json:"scan_time" binding:"required" example:"08:05:00"`
}

// IngestScan 接收设备上报的一次打卡
// @Summary      设备打卡上报
// @Description  接收生物识别设备上报的打卡事件。窗口外的打卡被整体拒绝；
// @Description  窗口内的打卡无论工号是否匹配到员工都会留存原始记录。
// @Tags         BiometricLog
// @Accept       json
// @Produce      json
// @Param        request body IngestScanRequest true "打卡事件"
// @Success      201  {object}  map[string]interface{}
// @Failure      400  {object}  ErrorResponse
// @Failure      422  {object}  ErrorResponse
// @Router       /biometric-logs [post]
func (c *BiometricLogController) IngestScan() {
	var req IngestScanRequest
	if err := c.Ctx.ShouldBindJSON(&req); err != nil {
		response.ParamError(c.Ctx, "无效的请求参数: "+err.Error())
		return
	}

	attendanceService := c.Container.GetService("attendance").(services.InterfaceAttendanceService)
	result, err := attendanceService.RecordScan(req.EmployeeCode, req.ScanDate, req.ScanTime, models.ScanSourceBiometric)
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

	payload := gin.H{
		"matched":       result.Matched,
		"biometric_log": result.Log,
	}
	if result.Matched {
		payload["attendance"] = result.Attendance
	}
	response.Created(c.Ctx, payload)
}

// GetLogs 获取原始打卡记录列表
// @Summary      获取打卡记录列表
// @Description  分页获取设备上报的原始打卡记录
// @Tags         BiometricLog
// @Accept       json
// @Produce      json
// @Param        page query int false "页码，默认为1" example:"1"
// @Param        page_size query int false "每页条数，默认为20" example:"20"
// @Param        employee_code query string false "工号" example:"EMP10234"
// @Param        date query string false "日期" example:"2025-06-02"
// @Success      200  {object}  map[string]interface{}
// @Failure      500  {object}  ErrorResponse
// @Router       /biometric-logs [get]
// @Security     BearerAuth
func (c *BiometricLogController) GetLogs() {
	page, _ := strconv.Atoi(c.Ctx.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.Ctx.DefaultQuery("page_size", "20"))
	employeeCode := c.Ctx.Query("employee_code")
	date := c.Ctx.Query("date")

	logService := c.Container.GetService("biometric_log").(services.InterfaceBiometricLogService)
	logs, total, err := logService.GetLogs(employeeCode, date, page, pageSize)
	if err != nil {
		response.FailWithMessage(c.Ctx, code.ErrDatabase, "查询打卡记录失败: "+err.Error(), nil)
		return
	}

	response.Success(c.Ctx, gin.H{
		"total":     total,
		"page":      page,
		"page_size": pageSize,
		"data":      logs,
	})
}

// DeleteLog 删除一条原始打卡记录
// @Summary      删除打卡记录
// @Description  删除一条原始打卡记录，已生成的考勤结果不受影响
// @Tags         BiometricLog
// @Accept       json
// @Produce      json
// @Param        id path int true "打卡记录ID" example:"1"
// @Success      200  {object}  map[string]interface{}
// @Failure      404  {object}  ErrorResponse
// @Router       /biometric-logs/{id} [delete]
// @Security     BearerAuth
func (c *BiometricLogController) DeleteLog() {
	idStr := c.Ctx.Param("id")
	id, err := strconv.ParseUint(idStr, 10, 32)
	if err != nil {
		response.ParamError(c.Ctx, "无效的ID参数")
		return
	}

	logService := c.Container.GetService("biometric_log").(services.InterfaceBiometricLogService)
	if err := logService.DeleteLog(uint(id)); err != nil {
		if err.Error() == "biometric log not found" {
			response.Fail(c.Ctx, code.ErrBiometricLogNotFound, nil)
			return
		}
		response.FailWithMessage(c.Ctx, code.ErrDatabase, "删除打卡记录失败: "+err.Error(), nil)
		return
	}

	response.Success(c.Ctx, nil)
}

// HandleBiometricLogFunc 返回一个处理打卡记录请求的Gin处理函数
func HandleBiometricLogFunc(container *container.ServiceContainer, method string) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		controller := NewBiometricLogController(ctx, container)

		switch method {
		case "ingestScan":
			controller.IngestScan()
		case "getLogs":
			controller.GetLogs()
		case "deleteLog":
			controller.DeleteLog()
		default:
			ctx.JSON(http.StatusBadRequest, gin.H{
				"code":    400,
				"message": "无效的方法",
				"data":    nil,
			})
		}
	}
}
