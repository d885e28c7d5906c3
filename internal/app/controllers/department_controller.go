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

// InterfaceDepartmentController 定义部门控制器接口
type InterfaceDepartmentController interface {
	GetDepartments()
	GetDepartment()
	CreateDepartment()
	UpdateDepartment()
	DeleteDepartment()
}

// DepartmentController 处理部门相关的请求
type DepartmentController struct {
	Ctx       *gin.Context
	Container *container.ServiceContainer
}

// NewDepartmentController 创建一个新的部门控制器
func NewDepartmentController(ctx *gin.Context, container *container.ServiceContainer) *DepartmentController {
	return &DepartmentController{
		Ctx:       ctx,
		Container: container,
	}
}

// GetDepartments 获取部门列表
// @Summary      获取部门列表
// @Description  获取所有部门
// @Tags         Department
// @Accept       json
// @Produce      json
// @Success      200  {object}  map[string]interface{}
// @Failure      500  {object}  ErrorResponse
// @Router       /departments [get]
// @Security     BearerAuth
func (c *DepartmentController) GetDepartments() {
	departmentService := c.Container.GetService("department").(services.InterfaceDepartmentService)

	departments, err := departmentService.GetAllDepartments()
	if err != nil {
		response.FailWithMessage(c.Ctx, code.ErrDatabase, "查询部门列表失败: "+err.Error(), nil)
		return
	}

	response.Success(c.Ctx, departments)
}

// GetDepartment 获取单个部门详情
// @Summary      获取部门详情
// @Description  根据ID获取特定部门的详细信息
// @Tags         Department
// @Accept       json
// @Produce      json
// @Param        id path int true "部门ID" example:"1"
// @Success      200  {object}  map[string]interface{}
// @Failure      404  {object}  ErrorResponse
// @Router       /departments/{id} [get]
// @Security     BearerAuth
func (c *DepartmentController) GetDepartment() {
	idStr := c.Ctx.Param("id")
	id, err := strconv.ParseUint(idStr, 10, 32)
	if err != nil {
		response.ParamError(c.Ctx, "无效的ID参数")
		return
	}

	departmentService := c.Container.GetService("department").(services.InterfaceDepartmentService)
	department, err := departmentService.GetDepartmentByID(uint(id))
	if err != nil {
		if err.Error() == "department not found" {
			response.Fail(c.Ctx, code.ErrDepartmentNotFound, nil)
			return
		}
		response.FailWithMessage(c.Ctx, code.ErrDatabase, "查询部门失败: "+err.Error(), nil)
		return
	}

	response.Success(c.Ctx, department)
}

// DepartmentRequest 表示创建或更新部门的请求体
type DepartmentRequest struct {
	Name        string `json:"name" binding:"required" example:"人力资源部"`
	Description string `json:"description" example:"负责招聘与员工关系"`
}

// CreateDepartment 创建新部门
// @Summary      创建部门
// @Description  创建一个新的部门
// @Tags         Department
// @Accept       json
// @Produce      json
// @Param        request body DepartmentRequest true "部门信息"
// @Success      201  {object}  map[string]interface{}
// @Failure      400  {object}  ErrorResponse
// @Router       /departments [post]
// @Security     BearerAuth
func (c *DepartmentController) CreateDepartment() {
	var req DepartmentRequest
	if err := c.Ctx.ShouldBindJSON(&req); err != nil {
		response.ParamError(c.Ctx, "无效的请求参数: "+err.Error())
		return
	}

	department := &models.Department{
		Name:        req.Name,
		Description: req.Description,
	}

	departmentService := c.Container.GetService("department").(services.InterfaceDepartmentService)
	if err := departmentService.CreateDepartment(department); err != nil {
		if err.Error() == "department name already in use" {
			response.FailWithMessage(c.Ctx, code.ErrValidation, err.Error(), nil)
			return
		}
		response.FailWithMessage(c.Ctx, code.ErrDatabase, "创建部门失败: "+err.Error(), nil)
		return
	}

	response.Created(c.Ctx, department)
}

// UpdateDepartment 更新部门信息
// @Summary      更新部门
// @Description  更新现有部门的信息
// @Tags         Department
// @Accept       json
// @Produce      json
// @Param        id path int true "部门ID" example:"1"
// @Param        request body DepartmentRequest true "更新的部门信息"
// @Success      200  {object}  map[string]interface{}
// @Failure      404  {object}  ErrorResponse
// @Router       /departments/{id} [put]
// @Security     BearerAuth
func (c *DepartmentController) UpdateDepartment() {
	idStr := c.Ctx.Param("id")
	id, err := strconv.ParseUint(idStr, 10, 32)
	if err != nil {
		response.ParamError(c.Ctx, "无效的ID参数")
		return
	}

	var req DepartmentRequest
	if err := c.Ctx.ShouldBindJSON(&req); err != nil {
		response.ParamError(c.Ctx, "无效的请求参数: "+err.Error())
		return
	}

	updates := map[string]interface{}{
		"name":        req.Name,
		"description": req.Description,
	}

	departmentService := c.Container.GetService("department").(services.InterfaceDepartmentService)
	department, err := departmentService.UpdateDepartment(uint(id), updates)
	if err != nil {
		if err.Error() == "department not found" {
			response.Fail(c.Ctx, code.ErrDepartmentNotFound, nil)
			return
		}
		response.FailWithMessage(c.Ctx, code.ErrDatabase, "更新部门失败: "+err.Error(), nil)
		return
	}

	response.Success(c.Ctx, department)
}

// DeleteDepartment 删除部门
// @Summary      删除部门
// @Description  删除指定ID的部门，部门下仍有员工时拒绝
// @Tags         Department
// @Accept       json
// @Produce      json
// @Param        id path int true "部门ID" example:"2"
// @Success      200  {object}  map[string]interface{}
// @Failure      404  {object}  ErrorResponse
// @Failure      422  {object}  ErrorResponse
// @Router       /departments/{id} [delete]
// @Security     BearerAuth
func (c *DepartmentController) DeleteDepartment() {
	idStr := c.Ctx.Param("id")
	id, err := strconv.ParseUint(idStr, 10, 32)
	if err != nil {
		response.ParamError(c.Ctx, "无效的ID参数")
		return
	}

	departmentService := c.Container.GetService("department").(services.InterfaceDepartmentService)
	if err := departmentService.DeleteDepartment(uint(id)); err != nil {
		if err.Error() == "department not found" {
			response.Fail(c.Ctx, code.ErrDepartmentNotFound, nil)
			return
		}
		if err.Error() == "department still has employees" {
			response.Fail(c.Ctx, code.ErrDepartmentInUse, nil)
			return
		}
		response.FailWithMessage(c.Ctx, code.ErrDatabase, "删除部门失败: "+err.Error(), nil)
		return
	}

	response.Success(c.Ctx, nil)
}

// HandleDepartmentFunc 返回一个处理部门请求的Gin处理函数
func HandleDepartmentFunc(container *container.ServiceContainer, method string) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		controller := NewDepartmentController(ctx, container)

		switch method {
		case "getDepartments":
			controller.GetDepartments()
		case "getDepartment":
			controller.GetDepartment()
		case "createDepartment":
			controller.CreateDepartment()
		case "updateDepartment":
			controller.UpdateDepartment()
		case "deleteDepartment":
			controller.DeleteDepartment()
		default:
			ctx.JSON(http.StatusBadRequest, gin.H{
				"code":    400,
				"message": "无效的方法",
				"data":    nil,
			})
		}
	}
}
