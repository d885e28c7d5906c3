package controllers

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"hrlink-http-service/internal/app/middleware"
	"hrlink-http-service/internal/domain/models"
	"hrlink-http-service/internal/domain/services"
	"hrlink-http-service/internal/domain/services/container"
	"hrlink-http-service/internal/error/code"
	"hrlink-http-service/internal/error/response"

	"github.com/gin-gonic/gin"
)

// CalendarController 处理日历分类与事件相关的请求
type CalendarController struct {
	Ctx       *gin.Context
	Container *container.ServiceContainer
}

// NewCalendarController 创建一个新的日历控制器
func NewCalendarController(ctx *gin.Context, container *container.ServiceContainer) *CalendarController {
	return &CalendarController{
		Ctx:       ctx,
		Container: container,
	}
}

// GetCategories 获取事件分类列表
// @Summary      获取事件分类列表
// @Tags         Calendar
// @Accept       json
// @Produce      json
// @Success      200  {object}  map[string]interface{}
// @Failure      500  {object}  ErrorResponse
// @Router       /calendar/categories [get]
// @Security     BearerAuth
func (c *CalendarController) GetCategories() {
	calendarService := c.Container.GetService("calendar").(services.InterfaceCalendarService)

	categories, err := calendarService.GetCategories()
	if err != nil {
		response.FailWithMessage(c.Ctx, code.ErrDatabase, "查询事件分类失败: "+err.Error(), nil)
		return
	}

	response.Success(c.Ctx, categories)
}

// CategoryRequest 表示创建或更新事件分类的请求体
type CategoryRequest struct {
	Name  string `json:"name" binding:"required" example:"公司会议"`
	Color string `json:"color" example:"#3788d8"`
}

// CreateCategory 创建事件分类
// @Summary      创建事件分类
// @Tags         Calendar
// @Accept       json
// @Produce      json
// @Param        request body CategoryRequest true "分类信息"
// @Success      201  {object}  map[string]interface{}
// @Failure      400  {object}  ErrorResponse
// @Router       /calendar/categories [post]
// @Security     BearerAuth
func (c *CalendarController) CreateCategory() {
	var req CategoryRequest
	if err := c.Ctx.ShouldBindJSON(&req); err != nil {
		response.ParamError(c.Ctx, "无效的请求参数: "+err.Error())
		return
	}

	category := &models.EventCategory{
		Name:  req.Name,
		Color: req.Color,
	}

	calendarService := c.Container.GetService("calendar").(services.InterfaceCalendarService)
	if err := calendarService.CreateCategory(category); err != nil {
		if err.Error() == "category name already exists" {
			response.FailWithMessage(c.Ctx, code.ErrValidation, err.Error(), nil)
			return
		}
		response.FailWithMessage(c.Ctx, code.ErrDatabase, "创建事件分类失败: "+err.Error(), nil)
		return
	}

	response.Created(c.Ctx, category)
}

// UpdateCategory 更新事件分类
// @Summary      更新事件分类
// @Tags         Calendar
// @Accept       json
// @Produce      json
// @Param        id path int true "分类ID" example:"1"
// @Param        request body CategoryRequest true "更新的分类信息"
// @Success      200  {object}  map[string]interface{}
// @Failure      404  {object}  ErrorResponse
// @Router       /calendar/categories/{id} [put]
// @Security     BearerAuth
func (c *CalendarController) UpdateCategory() {
	idStr := c.Ctx.Param("id")
	id, err := strconv.ParseUint(idStr, 10, 32)
	if err != nil {
		response.ParamError(c.Ctx, "无效的ID参数")
		return
	}

	var req CategoryRequest
	if err := c.Ctx.ShouldBindJSON(&req); err != nil {
		response.ParamError(c.Ctx, "无效的请求参数: "+err.Error())
		return
	}

	updates := map[string]interface{}{
		"name": req.Name,
	}
	if req.Color != "" {
		updates["color"] = req.Color
	}

	calendarService := c.Container.GetService("calendar").(services.InterfaceCalendarService)
	category, err := calendarService.UpdateCategory(uint(id), updates)
	if err != nil {
		if err.Error() == "category not found" {
			response.Fail(c.Ctx, code.ErrCategoryNotFound, nil)
			return
		}
		response.FailWithMessage(c.Ctx, code.ErrDatabase, "更新事件分类失败: "+err.Error(), nil)
		return
	}

	response.Success(c.Ctx, category)
}

// DeleteCategory 删除事件分类
// @Summary      删除事件分类
// @Description  删除事件分类，仍被事件引用时拒绝
// @Tags         Calendar
// @Accept       json
// @Produce      json
// @Param        id path int true "分类ID" example:"1"
// @Success      200  {object}  map[string]interface{}
// @Failure      404  {object}  ErrorResponse
// @Failure      422  {object}  ErrorResponse
// @Router       /calendar/categories/{id} [delete]
// @Security     BearerAuth
func (c *CalendarController) DeleteCategory() {
	idStr := c.Ctx.Param("id")
	id, err := strconv.ParseUint(idStr, 10, 32)
	if err != nil {
		response.ParamError(c.Ctx, "无效的ID参数")
		return
	}

	calendarService := c.Container.GetService("calendar").(services.InterfaceCalendarService)
	if err := calendarService.DeleteCategory(uint(id)); err != nil {
		if err.Error() == "category not found" {
			response.Fail(c.Ctx, code.ErrCategoryNotFound, nil)
			return
		}
		if errors.Is(err, services.ErrCategoryInUse) {
			response.Fail(c.Ctx, code.ErrCategoryInUse, nil)
			return
		}
		response.FailWithMessage(c.Ctx, code.ErrDatabase, "删除事件分类失败: "+err.Error(), nil)
		return
	}

	response.Success(c.Ctx, nil)
}

// GetEvents 获取日历事件列表
// @Summary      获取日历事件列表
// @Description  获取日历事件，支持时间区间与分类过滤
// @Tags         Calendar
// @Accept       json
// @Produce      json
// @Param        from query string false "起始时间(RFC3339)" example:"2025-06-01T00:00:00Z"
// @Param        to query string false "结束时间(RFC3339)" example:"2025-06-30T23:59:59Z"
// @Param        category_id query int false "分类ID" example:"1"
// @Success      200  {object}  map[string]interface{}
// @Failure      500  {object}  ErrorResponse
// @Router       /calendar/events [get]
// @Security     BearerAuth
func (c *CalendarController) GetEvents() {
	var from, to *time.Time
	if v := c.Ctx.Query("from"); v != "" {
		t, err := time.Parse(time.RFC3339, v)
		if err != nil {
			response.ParamError(c.Ctx, "无效的from参数，应为RFC3339格式")
			return
		}
		from = &t
	}
	if v := c.Ctx.Query("to"); v != "" {
		t, err := time.Parse(time.RFC3339, v)
		if err != nil {
			response.ParamError(c.Ctx, "无效的to参数，应为RFC3339格式")
			return
		}
		to = &t
	}
	categoryID, _ := strconv.ParseUint(c.Ctx.DefaultQuery("category_id", "0"), 10, 32)

	calendarService := c.Container.GetService("calendar").(services.InterfaceCalendarService)
	events, err := calendarService.GetEvents(from, to, uint(categoryID))
	if err != nil {
		response.FailWithMessage(c.Ctx, code.ErrDatabase, "查询日历事件失败: "+err.Error(), nil)
		return
	}

	response.Success(c.Ctx, events)
}

// EventRequest 表示创建或更新日历事件的请求体
type EventRequest struct {
	Title       string    `json:"title" binding:"required" example:"季度全员大会"`
	Description string    `json:"description" example:"二季度业绩回顾"`
	CategoryID  uint      `json:"category_id" binding:"required" example:"1"`
	StartAt     time.Time `json:"start_at" binding:"required" example:"2025-06-15T09:00:00Z"`
	EndAt       time.Time `json:"end_at" binding:"required" example:"2025-06-15T11:00:00Z"`
	AllDay      bool      `json:"all_day" example:"false"`
}

// CreateEvent 创建日历事件
// @Summary      创建日历事件
// @Tags         Calendar
// @Accept       json
// @Produce      json
// @Param        request body EventRequest true "事件信息"
// @Success      201  {object}  map[string]interface{}
// @Failure      400  {object}  ErrorResponse
// @Router       /calendar/events [post]
// @Security     BearerAuth
func (c *CalendarController) CreateEvent() {
	var req EventRequest
	if err := c.Ctx.ShouldBindJSON(&req); err != nil {
		response.ParamError(c.Ctx, "无效的请求参数: "+err.Error())
		return
	}

	var createdBy *uint
	if id := middleware.CurrentEmployeeID(c.Ctx); id > 0 {
		createdBy = &id
	}

	calendarService := c.Container.GetService("calendar").(services.InterfaceCalendarService)
	event, err := calendarService.CreateEvent(&services.EventInput{
		Title:       req.Title,
		Description: req.Description,
		CategoryID:  req.CategoryID,
		StartAt:     req.StartAt,
		EndAt:       req.EndAt,
		AllDay:      req.AllDay,
	}, createdBy)
	if err != nil {
		if err.Error() == "category not found" {
			response.Fail(c.Ctx, code.ErrCategoryNotFound, nil)
			return
		}
		response.FailWithMessage(c.Ctx, code.ErrValidation, err.Error(), nil)
		return
	}

	response.Created(c.Ctx, event)
}

// UpdateEvent 更新日历事件
// @Summary      更新日历事件
// @Tags         Calendar
// @Accept       json
// @Produce      json
// @Param        id path int true "事件ID" example:"1"
// @Param        request body EventRequest true "更新的事件信息"
// @Success      200  {object}  map[string]interface{}
// @Failure      404  {object}  ErrorResponse
// @Router       /calendar/events/{id} [put]
// @Security     BearerAuth
func (c *CalendarController) UpdateEvent() {
	idStr := c.Ctx.Param("id")
	id, err := strconv.ParseUint(idStr, 10, 32)
	if err != nil {
		response.ParamError(c.Ctx, "无效的ID参数")
		return
	}

	var req EventRequest
	if err := c.Ctx.ShouldBindJSON(&req); err != nil {
		response.ParamError(c.Ctx, "无效的请求参数: "+err.Error())
		return
	}
	if req.EndAt.Before(req.StartAt) {
		response.FailWithMessage(c.Ctx, code.ErrValidation, "end time must not be before start time", nil)
		return
	}

	updates := map[string]interface{}{
		"title":       req.Title,
		"description": req.Description,
		"category_id": req.CategoryID,
		"start_at":    req.StartAt,
		"end_at":      req.EndAt,
		"all_day":     req.AllDay,
	}

	calendarService := c.Container.GetService("calendar").(services.InterfaceCalendarService)
	event, err := calendarService.UpdateEvent(uint(id), updates)
	if err != nil {
		if err.Error() == "event not found" {
			response.Fail(c.Ctx, code.ErrEventNotFound, nil)
			return
		}
		if err.Error() == "category not found" {
			response.Fail(c.Ctx, code.ErrCategoryNotFound, nil)
			return
		}
		response.FailWithMessage(c.Ctx, code.ErrDatabase, "更新日历事件失败: "+err.Error(), nil)
		return
	}

	response.Success(c.Ctx, event)
}

// DeleteEvent 删除日历事件
// @Summary      删除日历事件
// @Tags         Calendar
// @Accept       json
// @Produce      json
// @Param        id path int true "事件ID" example:"1"
// @Success      200  {object}  map[string]interface{}
// @Failure      404  {object}  ErrorResponse
// @Router       /calendar/events/{id} [delete]
// @Security     BearerAuth
func (c *CalendarController) DeleteEvent() {
	idStr := c.Ctx.Param("id")
	id, err := strconv.ParseUint(idStr, 10, 32)
	if err != nil {
		response.ParamError(c.Ctx, "无效的ID参数")
		return
	}

	calendarService := c.Container.GetService("calendar").(services.InterfaceCalendarService)
	if err := calendarService.DeleteEvent(uint(id)); err != nil {
		if err.Error() == "event not found" {
			response.Fail(c.Ctx, code.ErrEventNotFound, nil)
			return
		}
		response.FailWithMessage(c.Ctx, code.ErrDatabase, "删除日历事件失败: "+err.Error(), nil)
		return
	}

	response.Success(c.Ctx, nil)
}

// HandleCalendarFunc 返回一个处理日历请求的Gin处理函数
func HandleCalendarFunc(container *container.ServiceContainer, method string) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		controller := NewCalendarController(ctx, container)

		switch method {
		case "getCategories":
			controller.GetCategories()
		case "createCategory":
			controller.CreateCategory()
		case "updateCategory":
			controller.UpdateCategory()
		case "deleteCategory":
			controller.DeleteCategory()
		case "getEvents":
			controller.GetEvents()
		case "createEvent":
			controller.CreateEvent()
		case "updateEvent":
			controller.UpdateEvent()
		case "deleteEvent":
			controller.DeleteEvent()
		default:
			ctx.JSON(http.StatusBadRequest, gin.H{
				"code":    400,
				"message": "无效的方法",
				"data":    nil,
			})
		}
	}
}
