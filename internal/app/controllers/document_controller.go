package controllers

import (
	"net/http"
	"strconv"

	"hrlink-http-service/internal/app/middleware"
	"hrlink-http-service/internal/domain/models"
	"hrlink-http-service/internal/domain/services"
	"hrlink-http-service/internal/domain/services/container"
	"hrlink-http-service/internal/error/code"
	"hrlink-http-service/internal/error/response"

	"github.com/gin-gonic/gin"
)

// DocumentController 处理文档存储、审批、抽取与搜索相关的请求
type DocumentController struct {
	Ctx       *gin.Context
	Container *container.ServiceContainer
}

// NewDocumentController 创建一个新的文档控制器
func NewDocumentController(ctx *gin.Context, container *container.ServiceContainer) *DocumentController {
	return &DocumentController{
		Ctx:       ctx,
		Container: container,
	}
}

// GetDocuments 获取文档列表
// @Summary      获取文档列表
// @Description  分页获取文档，列表不包含正文和向量字段
// @Tags         Document
// @Accept       json
// @Produce      json
// @Param        page query int false "页码，默认为1" example:"1"
// @Param        page_size query int false "每页条数，默认为10" example:"10"
// @Param        status query string false "审批状态(pending/approved/rejected)" example:"approved"
// @Success      200  {object}  map[string]interface{}
// @Failure      500  {object}  ErrorResponse
// @Router       /documents [get]
// @Security     BearerAuth
func (c *DocumentController) GetDocuments() {
	page, _ := strconv.Atoi(c.Ctx.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.Ctx.DefaultQuery("page_size", "10"))
	status := c.Ctx.Query("status")

	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > 100 {
		pageSize = 10
	}

	documentService := c.Container.GetService("document").(services.InterfaceDocumentService)
	documents, total, err := documentService.GetAllDocuments(page, pageSize, status)
	if err != nil {
		response.FailWithMessage(c.Ctx, code.ErrDatabase, "查询文档列表失败: "+err.Error(), nil)
		return
	}

	response.Success(c.Ctx, gin.H{
		"total":       total,
		"page":        page,
		"page_size":   pageSize,
		"total_pages": (total + int64(pageSize) - 1) / int64(pageSize),
		"data":        documents,
	})
}

// GetDocument 获取单个文档详情
// @Summary      获取文档详情
// @Tags         Document
// @Accept       json
// @Produce      json
// @Param        id path int true "文档ID" example:"1"
// @Success      200  {object}  map[string]interface{}
// @Failure      404  {object}  ErrorResponse
// @Router       /documents/{id} [get]
// @Security     BearerAuth
func (c *DocumentController) GetDocument() {
	idStr := c.Ctx.Param("id")
	id, err := strconv.ParseUint(idStr, 10, 32)
	if err != nil {
		response.ParamError(c.Ctx, "无效的ID参数")
		return
	}

	documentService := c.Container.GetService("document").(services.InterfaceDocumentService)
	doc, err := documentService.GetDocumentByID(uint(id))
	if err != nil {
		if err.Error() == "document not found" {
			response.Fail(c.Ctx, code.ErrDocumentNotFound, nil)
			return
		}
		response.FailWithMessage(c.Ctx, code.ErrDatabase, "查询文档失败: "+err.Error(), nil)
		return
	}

	response.Success(c.Ctx, doc)
}

// UploadDocument 上传文档
// @Summary      上传文档
// @Description  上传一份文档，初始审批状态为 pending
// @Tags         Document
// @Accept       multipart/form-data
// @Produce      json
// @Param        file formData file true "文档文件"
// @Success      201  {object}  map[string]interface{}
// @Failure      400  {object}  ErrorResponse
// @Router       /documents [post]
// @Security     BearerAuth
func (c *DocumentController) UploadDocument() {
	fileHeader, err := c.Ctx.FormFile("file")
	if err != nil {
		response.ParamError(c.Ctx, "缺少上传文件: "+err.Error())
		return
	}

	mimeType := fileHeader.Header.Get("Content-Type")
	var uploadedBy *uint
	if id := middleware.CurrentEmployeeID(c.Ctx); id > 0 {
		uploadedBy = &id
	}

	documentService := c.Container.GetService("document").(services.InterfaceDocumentService)
	doc, err := documentService.UploadDocument(fileHeader, mimeType, uploadedBy)
	if err != nil {
		response.FailWithMessage(c.Ctx, code.ErrDatabase, "保存文档失败: "+err.Error(), nil)
		return
	}

	response.Created(c.Ctx, doc)
}

// ApprovalRequest 表示文档审批的请求体
type ApprovalRequest struct {
	Status string `json:"status" binding:"required" example:"approved"` // 可选值: approved, rejected
}

// SetApprovalStatus 审批文档
// @Summary      审批文档
// @Description  将文档置为 approved 或 rejected。审批通过的文档才能进入抽取流水线。
// @Tags         Document
// @Accept       json
// @Produce      json
// @Param        id path int true "文档ID" example:"1"
// @Param        request body ApprovalRequest true "审批决定"
// @Success      200  {object}  map[string]interface{}
// @Failure      404  {object}  ErrorResponse
// @Failure      422  {object}  ErrorResponse
// @Router       /documents/{id}/approval [put]
// @Security     BearerAuth
func (c *DocumentController) SetApprovalStatus() {
	idStr := c.Ctx.Param("id")
	id, err := strconv.ParseUint(idStr, 10, 32)
	if err != nil {
		response.ParamError(c.Ctx, "无效的ID参数")
		return
	}

	var req ApprovalRequest
	if err := c.Ctx.ShouldBindJSON(&req); err != nil {
		response.ParamError(c.Ctx, "无效的请求参数: "+err.Error())
		return
	}

	documentService := c.Container.GetService("document").(services.InterfaceDocumentService)
	doc, err := documentService.SetApprovalStatus(uint(id), req.Status)
	if err != nil {
		if err.Error() == "document not found" {
			response.Fail(c.Ctx, code.ErrDocumentNotFound, nil)
			return
		}
		response.FailWithMessage(c.Ctx, code.ErrValidation, err.Error(), nil)
		return
	}

	response.Success(c.Ctx, doc)
}

// EnqueueExtraction 把文档送入抽取队列
// @Summary      触发文档抽取
// @Description  将审批通过的文档排入后台抽取队列，由工作协程异步处理
// @Tags         Document
// @Accept       json
// @Produce      json
// @Param        id path int true "文档ID" example:"1"
// @Success      200  {object}  map[string]interface{}
// @Failure      404  {object}  ErrorResponse
// @Failure      422  {object}  ErrorResponse
// @Router       /documents/{id}/extract [post]
// @Security     BearerAuth
func (c *DocumentController) EnqueueExtraction() {
	idStr := c.Ctx.Param("id")
	id, err := strconv.ParseUint(idStr, 10, 32)
	if err != nil {
		response.ParamError(c.Ctx, "无效的ID参数")
		return
	}

	// 校验文档存在且已审批通过
	documentService := c.Container.GetService("document").(services.InterfaceDocumentService)
	doc, err := documentService.GetDocumentByID(uint(id))
	if err != nil {
		if err.Error() == "document not found" {
			response.Fail(c.Ctx, code.ErrDocumentNotFound, nil)
			return
		}
		response.FailWithMessage(c.Ctx, code.ErrDatabase, "查询文档失败: "+err.Error(), nil)
		return
	}
	if doc.Status != models.DocumentApproved {
		response.Fail(c.Ctx, code.ErrDocumentNotApproved, nil)
		return
	}

	extractionService := c.Container.GetService("extraction").(services.InterfaceExtractionService)
	if err := extractionService.Enqueue(uint(id)); err != nil {
		response.FailWithMessage(c.Ctx, code.ErrDatabase, "文档入队失败: "+err.Error(), nil)
		return
	}

	response.Success(c.Ctx, gin.H{"document_id": id, "queued": true})
}

// DeleteDocument 删除文档
// @Summary      删除文档
// @Description  删除文档记录、磁盘文件和搜索索引条目
// @Tags         Document
// @Accept       json
// @Produce      json
// @Param        id path int true "文档ID" example:"1"
// @Success      200  {object}  map[string]interface{}
// @Failure      404  {object}  ErrorResponse
// @Router       /documents/{id} [delete]
// @Security     BearerAuth
func (c *DocumentController) DeleteDocument() {
	idStr := c.Ctx.Param("id")
	id, err := strconv.ParseUint(idStr, 10, 32)
	if err != nil {
		response.ParamError(c.Ctx, "无效的ID参数")
		return
	}

	documentService := c.Container.GetService("document").(services.InterfaceDocumentService)
	if err := documentService.DeleteDocument(uint(id)); err != nil {
		if err.Error() == "document not found" {
			response.Fail(c.Ctx, code.ErrDocumentNotFound, nil)
			return
		}
		response.FailWithMessage(c.Ctx, code.ErrDatabase, "删除文档失败: "+err.Error(), nil)
		return
	}

	response.Success(c.Ctx, nil)
}

// SearchDocuments 语义搜索文档
// @Summary      搜索文档
// @Description  以关键词加向量的混合方式搜索已抽取的文档
// @Tags         Document
// @Accept       json
// @Produce      json
// @Param        q query string true "查询语句" example:"劳动合同 试用期"
// @Param        limit query int false "返回条数，默认为10" example:"10"
// @Success      200  {object}  map[string]interface{}
// @Failure      400  {object}  ErrorResponse
// @Router       /documents/search [get]
// @Security     BearerAuth
func (c *DocumentController) SearchDocuments() {
	query := c.Ctx.Query("q")
	if query == "" {
		response.ParamError(c.Ctx, "缺少查询参数q")
		return
	}
	limit, _ := strconv.Atoi(c.Ctx.DefaultQuery("limit", "10"))
	if limit < 1 || limit > 50 {
		limit = 10
	}

	documentService := c.Container.GetService("document").(services.InterfaceDocumentService)
	hits, err := documentService.SearchDocuments(query, limit)
	if err != nil {
		response.FailWithMessage(c.Ctx, code.ErrDatabase, "搜索文档失败: "+err.Error(), nil)
		return
	}

	response.Success(c.Ctx, gin.H{
		"query": query,
		"hits":  hits,
	})
}

// HandleDocumentFunc 返回一个处理文档请求的Gin处理函数
func HandleDocumentFunc(container *container.ServiceContainer, method string) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		controller := NewDocumentController(ctx, container)

		switch method {
		case "getDocuments":
			controller.GetDocuments()
		case "getDocument":
			controller.GetDocument()
		case "uploadDocument":
			controller.UploadDocument()
		case "setApprovalStatus":
			controller.SetApprovalStatus()
		case "enqueueExtraction":
			controller.EnqueueExtraction()
		case "deleteDocument":
			controller.DeleteDocument()
		case "searchDocuments":
			controller.SearchDocuments()
		default:
			ctx.JSON(http.StatusBadRequest, gin.H{
				"code":    400,
				"message": "无效的方法",
				"data":    nil,
			})
		}
	}
}
