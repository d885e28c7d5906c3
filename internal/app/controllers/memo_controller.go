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

// MemoController 处理纪律备忘录相关的请求
type MemoController struct {
	Ctx       *gin.Context
	Container *container.ServiceContainer
}

// NewMemoController 创建一个新的备忘录控制器
func NewMemoController(ctx *gin.Context, container *container.ServiceContainer) *MemoController {
	return &MemoController{
		Ctx:       ctx,
		Container: container,
	}
}

// GetMemos 获取备忘录列表
// @Summary      获取备忘录列表
// @Description  获取纪律备忘录，支持按员工过滤
// @Tags         Memo
// @Accept       json
// @Produce      json
// @Param        employee_id query int false "员工ID" example:"1"
// @Success      200  {object}  map[string]interface{}
// @Failure      500  {object}  ErrorResponse
// @Router       /memos [get]
// @Security     BearerAuth
func (c *MemoController) GetMemos() {
	employeeID, _ := strconv.ParseUint(c.Ctx.DefaultQuery("employee_id", "0"), 10, 32)

	memoService := c.Container.GetService("memo").(services.InterfaceMemoService)
	memos, err := memoService.GetMemos(uint(employeeID))
	if err != nil {
		response.FailWithMessage(c.Ctx, code.ErrDatabase, "查询备忘录失败: "+err.Error(), nil)
		return
	}

	response.Success(c.Ctx, memos)
}

// GetMemo 获取单条备忘录
// @Summary      获取备忘录详情
// @Tags         Memo
// @Accept       json
// @Produce      json
// @Param        id path int true "备忘录ID" example:"1"
// @Success      200  {object}  map[string]interface{}
// @Failure      404  {object}  ErrorResponse
// @Router       /memos/{id} [get]
// @Security     BearerAuth
func (c *MemoController) GetMemo() {
	idStr := c.Ctx.Param("id")
	id, err := strconv.ParseUint(idStr, 10, 32)
	if err != nil {
		response.ParamError(c.Ctx, "无效的ID参数")
		return
	}

	memoService := c.Container.GetService("memo").(services.InterfaceMemoService)
	memo, err := memoService.GetMemoByID(uint(id))
	if err != nil {
		if err.Error() == "memo not found" {
			response.Fail(c.Ctx, code.ErrMemoNotFound, nil)
			return
		}
		response.FailWithMessage(c.Ctx, code.ErrDatabase, "查询备忘录失败: "+err.Error(), nil)
		return
	}

	response.Success(c.Ctx, memo)
}

// CreateMemoRequest 表示创建备忘录的请求体
type CreateMemoRequest struct {
	EmployeeID uint   `json:"employee_id" binding:"required" example:"1"`
	Subject    string `json:"subject" binding:"required" example:"迟到警告"`
	Body       string `json:"body" example:"本月第三次迟到，请注意考勤"`
}

// CreateMemo 创建备忘录
// @Summary      创建备忘录
// @Description  为员工签发纪律备忘录，违规次数自动累计
// @Tags         Memo
// @Accept       json
// @Produce      json
// @Param        request body CreateMemoRequest true "备忘录"
// @Success      201  {object}  map[string]interface{}
// @Failure      400  {object}  ErrorResponse
// @Router       /memos [post]
// @Security     BearerAuth
func (c *MemoController) CreateMemo() {
	var req CreateMemoRequest
	if err := c.Ctx.ShouldBindJSON(&req); err != nil {
		response.ParamError(c.Ctx, "无效的请求参数: "+err.Error())
		return
	}

	issuerID := middleware.CurrentEmployeeID(c.Ctx)

	memoService := c.Container.GetService("memo").(services.InterfaceMemoService)
	memo, err := memoService.CreateMemo(&services.MemoInput{
		EmployeeID: req.EmployeeID,
		Subject:    req.Subject,
		Body:       req.Body,
	}, issuerID)
	if err != nil {
		if err.Error() == "employee not found" {
			response.Fail(c.Ctx, code.ErrEmployeeNotFound, nil)
			return
		}
		response.FailWithMessage(c.Ctx, code.ErrDatabase, "创建备忘录失败: "+err.Error(), nil)
		return
	}

	response.Created(c.Ctx, memo)
}

// UpdateMemoRequest 表示更新备忘录的请求体
type UpdateMemoRequest struct {
	Subject string `json:"subject" example:"迟到警告(修订)"`
	Body    string `json:"body" example:"修订说明"`
}

// UpdateMemo 更新备忘录
// @Summary      更新备忘录
// @Tags         Memo
// @Accept       json
// @Produce      json
// @Param        id path int true "备忘录ID" example:"1"
// @Param        request body UpdateMemoRequest true "更新内容"
// @Success      200  {object}  map[string]interface{}
// @Failure      404  {object}  ErrorResponse
// @Router       /memos/{id} [put]
// @Security     BearerAuth
func (c *MemoController) UpdateMemo() {
	idStr := c.Ctx.Param("id")
	id, err := strconv.ParseUint(idStr, 10, 32)
	if err != nil {
		response.ParamError(c.Ctx, "无效的ID参数")
		return
	}

	var req UpdateMemoRequest
	if err := c.Ctx.ShouldBindJSON(&req); err != nil {
		response.ParamError(c.Ctx, "无效的请求参数: "+err.Error())
		return
	}

	updates := make(map[string]interface{})
	if req.Subject != "" {
		updates["subject"] = req.Subject
	}
	if req.Body != "" {
		updates["body"] = req.Body
	}

	memoService := c.Container.GetService("memo").(services.InterfaceMemoService)
	memo, err := memoService.UpdateMemo(uint(id), updates)
	if err != nil {
		if err.Error() == "memo not found" {
			response.Fail(c.Ctx, code.ErrMemoNotFound, nil)
			return
		}
		response.FailWithMessage(c.Ctx, code.ErrDatabase, "更新备忘录失败: "+err.Error(), nil)
		return
	}

	response.Success(c.Ctx, memo)
}

// DeleteMemo 删除备忘录
// @Summary      删除备忘录
// @Tags         Memo
// @Accept       json
// @Produce      json
// @Param        id path int true "备忘录ID" example:"1"
// @Success      200  {object}  map[string]interface{}
// @Failure      404  {object}  ErrorResponse
// @Router       /memos/{id} [delete]
// @Security     BearerAuth
func (c *MemoController) DeleteMemo() {
	idStr := c.Ctx.Param("id")
	id, err := strconv.ParseUint(idStr, 10, 32)
	if err != nil {
		response.ParamError(c.Ctx, "无效的ID参数")
		return
	}

	memoService := c.Container.GetService("memo").(services.InterfaceMemoService)
	if err := memoService.DeleteMemo(uint(id)); err != nil {
		if err.Error() == "memo not found" {
			response.Fail(c.Ctx, code.ErrMemoNotFound, nil)
			return
		}
		response.FailWithMessage(c.Ctx, code.ErrDatabase, "删除备忘录失败: "+err.Error(), nil)
		return
	}

	response.Success(c.Ctx, nil)
}

// HandleMemoFunc 返回一个处理备忘录请求的Gin处理函数
func HandleMemoFunc(container *container.ServiceContainer, method string) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		controller := NewMemoController(ctx, container)

		switch method {
		case "getMemos":
			controller.GetMemos()
		case "getMemo":
			controller.GetMemo()
		case "createMemo":
			controller.CreateMemo()
		case "updateMemo":
			controller.UpdateMemo()
		case "deleteMemo":
			controller.DeleteMemo()
		default:
			ctx.JSON(http.StatusBadRequest, gin.H{
				"code":    400,
				"message": "无效的方法",
				"data":    nil,
			})
		}
	}
}
