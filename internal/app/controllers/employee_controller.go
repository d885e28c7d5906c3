package controllers

import (
	"net/http"
	"strconv"
	"time"

	"hrlink-http-service/internal/domain/models"
	"hrlink-http-service/internal/domain/services"
	"hrlink-http-service/internal/domain/services/container"
	"hrlink-http-service/internal/error/code"
	"hrlink-http-service/internal/error/response"

	"github.com/gin-gonic/gin"
)

// InterfaceEmployeeController 定义员工控制器接口
type InterfaceEmployeeController interface {
	GetEmployees()
	GetEmployee()
	CreateEmployee()
	UpdateEmployee()
	DeleteEmployee()
}

// EmployeeController 处理员工相关的请求
type EmployeeController struct {
	Ctx       *gin.Context
	Container *container.ServiceContainer
}

// NewEmployeeController 创建一个新的员工控制器
func NewEmployeeController(ctx *gin.Context, container *container.ServiceContainer) *EmployeeController {
	return &EmployeeController{
		Ctx:       ctx,
		Container: container,
	}
}

// GetEmployees 获取员工列表
// @Summary      获取员工列表
// @Description  获取所有员工的列表，支持分页和搜索
// @Tags         Employee
// @Accept       json
// @Produce      json
// @Param        page query int false "页码，默认为1" example:"1"
// @Param        page_size query int false "每页条数，默认为10" example:"10"
// @Param        search query string false "搜索关键词(姓名、工号、邮箱)" example:"张"
// @Success      200  {object}  map[string]interface{}
// @Failure      500  {object}  ErrorResponse
// @Router       /employees [get]
// @Security     BearerAuth
func (c *EmployeeController) GetEmployees() {
	// 获取分页参数
	page, _ := strconv.Atoi(c.Ctx.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.Ctx.DefaultQuery("page_size", "10"))
	search := c.Ctx.Query("search")

	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > 100 {
		pageSize = 10
	}

	employeeService := c.Container.GetService("employee").(services.InterfaceEmployeeService)

	employees, total, err := employeeService.GetAllEmployees(page, pageSize, search)
	if err != nil {
		response.FailWithMessage(c.Ctx, code.ErrDatabase, "查询员工列表失败: "+err.Error(), nil)
		return
	}

	response.Success(c.Ctx, gin.H{
		"total":       total,
		"page":        page,
		"page_size":   pageSize,
		"total_pages": (total + int64(pageSize) - 1) / int64(pageSize),
		"data":        employees,
	})
}

// GetEmployee 获取单个员工详情
// @Summary      获取员工详情
// @Description  根据ID获取特定员工的详细信息
// @Tags         Employee
// @Accept       json
// @Produce      json
// @Param        id path int true "员工ID" example:"1"
// @Success      200  {object}  map[string]interface{}
// @Failure      400  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse
// @Router       /employees/{id} [get]
// @Security     BearerAuth
func (c *EmployeeController) GetEmployee() {
	idStr := c.Ctx.Param("id")
	id, err := strconv.ParseUint(idStr, 10, 32)
	if err != nil {
		response.ParamError(c.Ctx, "无效的ID参数")
		return
	}

	employeeService := c.Container.GetService("employee").(services.InterfaceEmployeeService)
	employee, err := employeeService.GetEmployeeByID(uint(id))
	if err != nil {
		if err.Error() == "employee not found" {
			response.Fail(c.Ctx, code.ErrEmployeeNotFound, nil)
			return
		}
		response.FailWithMessage(c.Ctx, code.ErrDatabase, "查询员工失败: "+err.Error(), nil)
		return
	}

	response.Success(c.Ctx, employee)
}

// CreateEmployeeRequest 表示创建员工的请求体
type CreateEmployeeRequest struct {
	EmployeeCode string `json:"employee_code" example:"EMP10234"` // 留空时自动生成
	Name         string `json:"name" binding:"required" example:"张伟"`
	Email        string `json:"email" example:"zhangwei@example.com"`
	Phone        string `json:"phone" example:"13700001234"`
	Password     string `json:"password" binding:"required" example:"Employee@123"`
	Role         string `json:"role" example:"employee"` // 可选值: admin, employee
	DepartmentID *uint  `json:"department_id" example:"1"`
	PositionID   *uint  `json:"position_id" example:"2"`
	HireDate     string `json:"hire_date" example:"2024-03-01"`
}

// CreateEmployee 创建新员工
// @Summary      创建员工
// @Description  创建一个新的员工账户
// @Tags         Employee
// @Accept       json
// @Produce      json
// @Param        request body CreateEmployeeRequest true "员工信息"
// @Success      201  {object}  map[string]interface{}
// @Failure      400  {object}  ErrorResponse
// @Failure      500  {object}  ErrorResponse
// @Router       /employees [post]
// @Security     BearerAuth
func (c *EmployeeController) CreateEmployee() {
	var req CreateEmployeeRequest
	if err := c.Ctx.ShouldBindJSON(&req); err != nil {
		response.ParamError(c.Ctx, "无效的请求参数: "+err.Error())
		return
	}

	role := req.Role
	if role == "" {
		role = models.RoleEmployee
	}

	employee := &models.Employee{
		EmployeeCode: req.EmployeeCode,
		Name:         req.Name,
		Email:        req.Email,
		Phone:        req.Phone,
		Password:     req.Password,
		Role:         role,
		DepartmentID: req.DepartmentID,
		PositionID:   req.PositionID,
	}

	if req.HireDate != "" {
		hireDate, err := time.Parse("2006-01-02", req.HireDate)
		if err != nil {
			response.ParamError(c.Ctx, "无效的入职日期，应为 YYYY-MM-DD")
			return
		}
		employee.HireDate = &hireDate
	}

	employeeService := c.Container.GetService("employee").(services.InterfaceEmployeeService)
	if err := employeeService.CreateEmployee(employee); err != nil {
		if err.Error() == "employee code already in use" || err.Error() == "email already in use" {
			response.Fail(c.Ctx, code.ErrEmployeeAlreadyExist, gin.H{"detail": err.Error()})
			return
		}
		response.FailWithMessage(c.Ctx, code.ErrDatabase, "创建员工失败: "+err.Error(), nil)
		return
	}

	response.Created(c.Ctx, employee)
}

// UpdateEmployeeRequest 表示更新员工的请求体
type UpdateEmployeeRequest struct {
	Name         string `json:"name" example:"李娜"`
	Email        string `json:"email" example:"lina@example.com"`
	Phone        string `json:"phone" example:"13700005678"`
	Password     string `json:"password" example:"NewPass@456"`
	Role         string `json:"role" example:"employee"`
	DepartmentID *uint  `json:"department_id" example:"2"`
	PositionID   *uint  `json:"position_id" example:"3"`
	HireDate     string `json:"hire_date" example:"2024-05-15"`
}

// UpdateEmployee 更新员工信息
// @Summary      更新员工
// @Description  更新现有员工的信息
// @Tags         Employee
// @Accept       json
// @Produce      json
// @Param        id path int true "员工ID" example:"1"
// @Param        request body UpdateEmployeeRequest true "更新的员工信息"
// @Success      200  {object}  map[string]interface{}
// @Failure      400  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse
// @Router       /employees/{id} [put]
// @Security     BearerAuth
func (c *EmployeeController) UpdateEmployee() {
	idStr := c.Ctx.Param("id")
	id, err := strconv.ParseUint(idStr, 10, 32)
	if err != nil {
		response.ParamError(c.Ctx, "无效的ID参数")
		return
	}

	var req UpdateEmployeeRequest
	if err := c.Ctx.ShouldBindJSON(&req); err != nil {
		response.ParamError(c.Ctx, "无效的请求参数: "+err.Error())
		return
	}

	// 构建更新字段映射
	updates := make(map[string]interface{})
	if req.Name != "" {
		updates["name"] = req.Name
	}
	if req.Email != "" {
		updates["email"] = req.Email
	}
	if req.Phone != "" {
		updates["phone"] = req.Phone
	}
	if req.Password != "" {
		updates["password"] = req.Password
	}
	if req.Role != "" {
		updates["role"] = req.Role
	}
	if req.DepartmentID != nil {
		updates["department_id"] = *req.DepartmentID
	}
	if req.PositionID != nil {
		updates["position_id"] = *req.PositionID
	}
	if req.HireDate != "" {
		hireDate, err := time.Parse("2006-01-02", req.HireDate)
		if err != nil {
			response.ParamError(c.Ctx, "无效的入职日期，应为 YYYY-MM-DD")
			return
		}
		updates["hire_date"] = hireDate
	}

	employeeService := c.Container.GetService("employee").(services.InterfaceEmployeeService)
	employee, err := employeeService.UpdateEmployee(uint(id), updates)
	if err != nil {
		if err.Error() == "employee not found" {
			response.Fail(c.Ctx, code.ErrEmployeeNotFound, nil)
			return
		}
		response.FailWithMessage(c.Ctx, code.ErrDatabase, "更新员工失败: "+err.Error(), nil)
		return
	}

	response.Success(c.Ctx, employee)
}

// DeleteEmployee 删除员工
// @Summary      删除员工
// @Description  删除指定ID的员工
// @Tags         Employee
// @Accept       json
// @Produce      json
// @Param        id path int true "员工ID" example:"2"
// @Success      200  {object}  map[string]interface{}
// @Failure      400  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse
// @Router       /employees/{id} [delete]
// @Security     BearerAuth
func (c *EmployeeController) DeleteEmployee() {
	idStr := c.Ctx.Param("id")
	id, err := strconv.ParseUint(idStr, 10, 32)
	if err != nil {
		response.ParamError(c.Ctx, "无效的ID参数")
		return
	}

	employeeService := c.Container.GetService("employee").(services.InterfaceEmployeeService)
	if err := employeeService.DeleteEmployee(uint(id)); err != nil {
		if err.Error() == "employee not found" {
			response.Fail(c.Ctx, code.ErrEmployeeNotFound, nil)
			return
		}
		response.FailWithMessage(c.Ctx, code.ErrDatabase, "删除员工失败: "+err.Error(), nil)
		return
	}

	response.Success(c.Ctx, nil)
}

// HandleEmployeeFunc 返回一个处理员工请求的Gin处理函数
func HandleEmployeeFunc(container *container.ServiceContainer, method string) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		controller := NewEmployeeController(ctx, container)

		switch method {
		case "getEmployees":
			controller.GetEmployees()
		case "getEmployee":
			controller.GetEmployee()
		case "createEmployee":
			controller.CreateEmployee()
		case "updateEmployee":
			controller.UpdateEmployee()
		case "deleteEmployee":
			controller.DeleteEmployee()
		default:
			ctx.JSON(http.StatusBadRequest, gin.H{
				"code":    400,
				"message": "无效的方法",
				"data":    nil,
			})
		}
	}
}
