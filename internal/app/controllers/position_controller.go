package controllers

import (
	"net/http"
	"strconv"

	"hrlink-http-service/internal/domain/models"
	"hrlink-http-service/internal/domain/services"
	"hrlink-http-service/internal/domain/services/container"
	"hrlink-http-service/internal/error/code"
	"hrlink-http-service/internal/error/response"

	"github.com/gin-gonic/gin"
)

// PositionController 处理职位相关的请求
type PositionController struct {
	Ctx       *gin.Context
	Container *container.ServiceContainer
}

// NewPositionController 创建一个新的职位控制器
func NewPositionController(ctx *gin.Context, container *container.ServiceContainer) *PositionController {
	return &PositionController{
		Ctx:       ctx,
		Container: container,
	}
}

// GetPositions 获取职位列表
// @Summary      获取职位列表
// @Description  获取所有职位及其所属部门
// @Tags         Position
// @Accept       json
// @Produce      json
// @Success      200  {object}  map[string]interface{}
// @Failure      500  {object}  ErrorResponse
// @Router       /positions [get]
// @Security     BearerAuth
func (c *PositionController) GetPositions() {
	positionService := c.Container.GetService("position").(services.InterfacePositionService)

	positions, err := positionService.GetAllPositions()
	if err != nil {
		response.FailWithMessage(c.Ctx, code.ErrDatabase, "查询职位列表失败: "+err.Error(), nil)
		return
	}

	response.Success(c.Ctx, positions)
}

// GetPosition 获取单个职位详情
// @Summary      获取职位详情
// @Tags         Position
// @Accept       json
// @Produce      json
// @Param        id path int true "职位ID" example:"1"
// @Success      200  {object}  map[string]interface{}
// @Failure      404  {object}  ErrorResponse
// @Router       /positions/{id} [get]
// @Security     BearerAuth
func (c *PositionController) GetPosition() {
	idStr := c.Ctx.Param("id")
	id, err := strconv.ParseUint(idStr, 10, 32)
	if err != nil {
		response.ParamError(c.Ctx, "无效的ID参数")
		return
	}

	positionService := c.Container.GetService("position").(services.InterfacePositionService)
	position, err := positionService.GetPositionByID(uint(id))
	if err != nil {
		if err.Error() == "position not found" {
			response.Fail(c.Ctx, code.ErrPositionNotFound, nil)
			return
		}
		response.FailWithMessage(c.Ctx, code.ErrDatabase, "查询职位失败: "+err.Error(), nil)
		return
	}

	response.Success(c.Ctx, position)
}

// PositionRequest 表示创建或更新职位的请求体
type PositionRequest struct {
	Title        string `json:"title" binding:"required" example:"招聘专员"`
	DepartmentID *uint  `json:"department_id" example:"1"`
}

// CreatePosition 创建新职位
// @Summary      创建职位
// @Tags         Position
// @Accept       json
// @Produce      json
// @Param        request body PositionRequest true "职位信息"
// @Success      201  {object}  map[string]interface{}
// @Failure      400  {object}  ErrorResponse
// @Router       /positions [post]
// @Security     BearerAuth
func (c *PositionController) CreatePosition() {
	var req PositionRequest
	if err := c.Ctx.ShouldBindJSON(&req); err != nil {
		response.ParamError(c.Ctx, "无效的请求参数: "+err.Error())
		return
	}

	position := &models.Position{
		Title:        req.Title,
		DepartmentID: req.DepartmentID,
	}

	positionService := c.Container.GetService("position").(services.InterfacePositionService)
	if err := positionService.CreatePosition(position); err != nil {
		response.FailWithMessage(c.Ctx, code.ErrDatabase, "创建职位失败: "+err.Error(), nil)
		return
	}

	response.Created(c.Ctx, position)
}

// UpdatePosition 更新职位信息
// @Summary      更新职位
// @Tags         Position
// @Accept       json
// @Produce      json
// @Param        id path int true "职位ID" example:"1"
// @Param        request body PositionRequest true "更新的职位信息"
// @Success      200  {object}  map[string]interface{}
// @Failure      404  {object}  ErrorResponse
// @Router       /positions/{id} [put]
// @Security     BearerAuth
func (c *PositionController) UpdatePosition() {
	idStr := c.Ctx.Param("id")
	id, err := strconv.ParseUint(idStr, 10, 32)
	if err != nil {
		response.ParamError(c.Ctx, "无效的ID参数")
		return
	}

	var req PositionRequest
	if err := c.Ctx.ShouldBindJSON(&req); err != nil {
		response.ParamError(c.Ctx, "无效的请求参数: "+err.Error())
		return
	}

	updates := map[string]interface{}{
		"title": req.Title,
	}
	if req.DepartmentID != nil {
		updates["department_id"] = *req.DepartmentID
	}

	positionService := c.Container.GetService("position").(services.InterfacePositionService)
	position, err := positionService.UpdatePosition(uint(id), updates)
	if err != nil {
		if err.Error() == "position not found" {
			response.Fail(c.Ctx, code.ErrPositionNotFound, nil)
			return
		}
		response.FailWithMessage(c.Ctx, code.ErrDatabase, "更新职位失败: "+err.Error(), nil)
		return
	}

	response.Success(c.Ctx, position)
}

// DeletePosition 删除职位
// @Summary      删除职位
// @Description  删除指定ID的职位，职位下仍有员工时拒绝
// @Tags         Position
// @Accept       json
// @Produce      json
// @Param        id path int true "职位ID" example:"2"
// @Success      200  {object}  map[string]interface{}
// @Failure      404  {object}  ErrorResponse
// @Failure      422  {object}  ErrorResponse
// @Router       /positions/{id} [delete]
// @Security     BearerAuth
func (c *PositionController) DeletePosition() {
	idStr := c.Ctx.Param("id")
	id, err := strconv.ParseUint(idStr, 10, 32)
	if err != nil {
		response.ParamError(c.Ctx, "无效的ID参数")
		return
	}

	positionService := c.Container.GetService("position").(services.InterfacePositionService)
	if err := positionService.DeletePosition(uint(id)); err != nil {
		if err.Error() == "position not found" {
			response.Fail(c.Ctx, code.ErrPositionNotFound, nil)
			return
		}
		if err.Error() == "position still has employees" {
			response.Fail(c.Ctx, code.ErrPositionInUse, nil)
			return
		}
		response.FailWithMessage(c.Ctx, code.ErrDatabase, "删除职位失败: "+err.Error(), nil)
		return
	}

	response.Success(c.Ctx, nil)
}

// HandlePositionFunc 返回一个处理职位请求的Gin处理函数
func HandlePositionFunc(container *container.ServiceContainer, method string) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		controller := NewPositionController(ctx, container)

		switch method {
		case "getPositions":
			controller.GetPositions()
		case "getPosition":
			controller.GetPosition()
		case "createPosition":
			controller.CreatePosition()
		case "updatePosition":
			controller.UpdatePosition()
		case "deletePosition":
			controller.DeletePosition()
		default:
			ctx.JSON(http.StatusBadRequest, gin.H{
				"code":    400,
				"message": "无效的方法",
				"data":    nil,
			})
		}
	}
}
