package services

import (
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"time"

	"hrlink-http-service/internal/domain/models"
	"hrlink-http-service/internal/infrastructure/config"
	"hrlink-http-service/pkg/logger"

	"gorm.io/gorm"
)

// InterfaceDocumentService 定义文档服务接口
type InterfaceDocumentService interface {
	GetAllDocuments(page, pageSize int, status string) ([]models.Document, int64, error)
	GetDocumentByID(id uint) (*models.Document, error)
	UploadDocument(fileHeader *multipart.FileHeader, mimeType string, uploadedBy *uint) (*models.Document, error)
	SetApprovalStatus(id uint, status string) (*models.Document, error)
	DeleteDocument(id uint) error
	SearchDocuments(query string, limit int) ([]SearchHit, error)
}

// DocumentService 文档的存储与审批。
// content/embedding/extraction_status 三个字段归抽取流水线所有，这里不写。
type DocumentService struct {
	DB       *gorm.DB
	Config   *config.Config
	Embedder InterfaceEmbeddingService
	Search   InterfaceSearchService
}

// NewDocumentService 创建一个新的文档服务
func NewDocumentService(db *gorm.DB, cfg *config.Config, embedder InterfaceEmbeddingService, search InterfaceSearchService) InterfaceDocumentService {
	return &DocumentService{
		DB:       db,
		Config:   cfg,
		Embedder: embedder,
		Search:   search,
	}
}

// 1 GetAllDocuments 获取文档列表，支持分页与审批状态过滤
func (s *DocumentService) GetAllDocuments(page, pageSize int, status string) ([]models.Document, int64, error) {
	var docs []models.Document
	var total int64

	query := s.DB.Model(&models.Document{})
	if status != "" {
		query = query.Where("status = ?", status)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * pageSize
	// 列表不携带正文，避免大字段拖慢分页
	if err := query.Omit("content", "embedding").Order("id DESC").
		Limit(pageSize).Offset(offset).Find(&docs).Error; err != nil {
		return nil, 0, err
	}

	return docs, total, nil
}

// 2 GetDocumentByID 根据ID获取文档详情
func (s *DocumentService) GetDocumentByID(id uint) (*models.Document, error) {
	var doc models.Document
	if err := s.DB.Preload("Uploader").First(&doc, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.New("document not found")
		}
		return nil, err
	}
	return &doc, nil
}

// 3 UploadDocument 保存上传文件并创建pending状态的文档记录
func (s *DocumentService) UploadDocument(fileHeader *multipart.FileHeader, mimeType string, uploadedBy *uint) (*models.Document, error) {
	if err := os.MkdirAll(s.Config.UploadDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create upload directory: %w", err)
	}

	// 以时间戳前缀避免同名覆盖
	storedName := fmt.Sprintf("%d_%s", time.Now().UnixNano(), filepath.Base(fileHeader.Filename))
	storedPath := filepath.Join(s.Config.UploadDir, storedName)

	src, err := fileHeader.Open()
	if err != nil {
		return nil, fmt.Errorf("failed to open uploaded file: %w", err)
	}
	defer src.Close()

	dst, err := os.Create(storedPath)
	if err != nil {
		return nil, fmt.Errorf("failed to store uploaded file: %w", err)
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		os.Remove(storedPath)
		return nil, fmt.Errorf("failed to write uploaded file: %w", err)
	}

	doc := &models.Document{
		FileName:   fileHeader.Filename,
		FilePath:   storedPath,
		MimeType:   mimeType,
		Status:     models.DocumentPending,
		UploadedBy: uploadedBy,
	}
	if err := s.DB.Create(doc).Error; err != nil {
		os.Remove(storedPath)
		return nil, err
	}
	return doc, nil
}

// 4 SetApprovalStatus 更新文档审批状态（approved/rejected）
func (s *DocumentService) SetApprovalStatus(id uint, status string) (*models.Document, error) {
	if status != models.DocumentApproved && status != models.DocumentRejected {
		return nil, fmt.Errorf("invalid approval status %q", status)
	}

	var doc models.Document
	if err := s.DB.First(&doc, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.New("document not found")
		}
		return nil, err
	}

	if err := s.DB.Model(&doc).Update("status", status).Error; err != nil {
		return nil, err
	}
	doc.Status = status
	return &doc, nil
}

// 5 DeleteDocument 删除文档记录、本地文件与索引条目
func (s *DocumentService) DeleteDocument(id uint) error {
	var doc models.Document
	if err := s.DB.First(&doc, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return errors.New("document not found")
		}
		return err
	}

	if err := s.DB.Delete(&doc).Error; err != nil {
		return err
	}

	if doc.FilePath != "" {
		if err := os.Remove(doc.FilePath); err != nil && !os.IsNotExist(err) {
			logger.Warning("[文档] 删除本地文件失败: %v", err)
		}
	}
	if err := s.Search.RemoveDocument(doc.ID); err != nil {
		logger.Warning("[文档] 删除索引条目失败: %v", err)
	}
	return nil
}

// 6 SearchDocuments 语义检索：先为查询生成向量（尽力而为），再查询索引
func (s *DocumentService) SearchDocuments(query string, limit int) ([]SearchHit, error) {
	var queryVector []float64
	vector, err := s.Embedder.GenerateEmbedding(query)
	if err != nil {
		// 查询向量失败时退化为纯全文检索
		logger.Warning("[文档] 查询向量生成失败，退化为全文检索: %v", err)
	} else {
		queryVector = vector
	}

	return s.Search.Search(query, queryVector, limit)
}
