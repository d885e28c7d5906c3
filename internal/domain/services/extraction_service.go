package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"hrlink-http-service/internal/domain/models"
	"hrlink-http-service/internal/infrastructure/config"
	"hrlink-http-service/pkg/logger"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// 抽取流水线相关的哨兵错误
var (
	// ErrExtractionEmpty 抽取服务返回空内容
	ErrExtractionEmpty = errors.New("extraction returned empty content")
	// ErrExtractionBusy 同一文档已有一次抽取在执行
	ErrExtractionBusy = errors.New("another extraction run is in progress for this document")
)

// ExtractionJob 队列中的抽取任务载荷
type ExtractionJob struct {
	DocumentID uint  `json:"document_id"`
	EnqueuedAt int64 `json:"enqueued_at"`
}

// InterfaceExtractionService 定义文档抽取流水线接口
type InterfaceExtractionService interface {
	Enqueue(documentID uint) error
	Process(documentID uint) error
	StartWorkers(ctx context.Context)
}

// ExtractionService 文档抽取流水线：extract -> embed -> persist -> index -> notify。
// 各阶段失败相互隔离：向量生成与索引写入都是尽力而为，
// 文本抽取成功即视为流水线主交付完成。
type ExtractionService struct {
	DB           *gorm.DB
	Config       *config.Config
	Redis        InterfaceRedisService
	Extractor    InterfaceExtractorService
	Embedder     InterfaceEmbeddingService
	Search       InterfaceSearchService
	Notification InterfaceNotificationService
}

// NewExtractionService 创建一个新的抽取流水线服务
func NewExtractionService(
	db *gorm.DB,
	cfg *config.Config,
	redisService InterfaceRedisService,
	extractor InterfaceExtractorService,
	embedder InterfaceEmbeddingService,
	search InterfaceSearchService,
	notification InterfaceNotificationService,
) InterfaceExtractionService {
	return &ExtractionService{
		DB:           db,
		Config:       cfg,
		Redis:        redisService,
		Extractor:    extractor,
		Embedder:     embedder,
		Search:       search,
		Notification: notification,
	}
}

// 1 Enqueue 将文档抽取任务推入Redis队列
func (s *ExtractionService) Enqueue(documentID uint) error {
	job := ExtractionJob{
		DocumentID: documentID,
		EnqueuedAt: time.Now().UnixMilli(),
	}
	if err := s.Redis.EnqueueJob(s.Config.ExtractionQueueKey, job); err != nil {
		return fmt.Errorf("failed to enqueue extraction job: %w", err)
	}
	logger.Info("[抽取] 文档 %d 已入队", documentID)
	return nil
}

// 2 StartWorkers 启动抽取工作协程，随ctx取消退出
func (s *ExtractionService) StartWorkers(ctx context.Context) {
	workers := s.Config.ExtractionWorkers
	if workers <= 0 {
		workers = 1
	}
	for i := 0; i < workers; i++ {
		go s.workerLoop(ctx, i)
	}
	logger.Info("[抽取] 已启动 %d 个抽取工作协程", workers)
}

// workerLoop 单个工作协程：阻塞消费队列并逐个处理
func (s *ExtractionService) workerLoop(ctx context.Context, id int) {
	for {
		select {
		case <-ctx.Done():
			logger.Info("[抽取] 工作协程 %d 退出", id)
			return
		default:
		}

		var job ExtractionJob
		ok, err := s.Redis.DequeueJob(ctx, s.Config.ExtractionQueueKey, 5*time.Second, &job)
		if err != nil {
			if ctx.Err() != nil {
				return
			}
			logger.Error("[抽取] 工作协程 %d 取任务失败: %v", id, err)
			time.Sleep(2 * time.Second)
			continue
		}
		if !ok {
			continue
		}

		if err := s.Process(job.DocumentID); err != nil {
			// 业务失败已落到extraction_status，这里只记录不重投
			logger.Error("[抽取] 文档 %d 处理失败: %v", job.DocumentID, err)
		}
	}
}

// 3 Process 对单个文档执行抽取流水线。
// 允许对completed/failed文档重复执行（failed的恢复路径就是重跑）；
// 顶层recover保证文档永远不会停留在processing状态。
func (s *ExtractionService) Process(documentID uint) (err error) {
	var doc models.Document
	if err := s.DB.First(&doc, documentID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("document %d not found", documentID)
		}
		return err
	}

	// 入口门卫：仅处理审批通过的文档，其余跳过且不改状态
	if doc.Status != models.DocumentApproved {
		logger.Info("[抽取] 跳过文档 %d：审批状态为 %s", doc.ID, doc.Status)
		return nil
	}

	// 进入processing的CAS：并发的第二次执行观察到0行受影响后直接退出
	res := s.DB.Model(&models.Document{}).
		Where("id = ? AND extraction_status <> ?", doc.ID, models.ExtractionProcessing).
		Update("extraction_status", models.ExtractionProcessing)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		logger.Warning("[抽取] 文档 %d 已有一次抽取在执行，跳过", doc.ID)
		return ErrExtractionBusy
	}

	// 顶层兜底：任何未捕获的失败都把文档置为failed
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("extraction panicked: %v", r)
		}
		if err != nil {
			s.markFailed(doc.ID, err)
		}
	}()

	// 阶段1：文本抽取
	content, err := s.Extractor.ExtractText(doc.FilePath, doc.MimeType)
	if err != nil {
		return fmt.Errorf("extract stage: %w", err)
	}
	if strings.TrimSpace(content) == "" {
		return ErrExtractionEmpty
	}

	// 阶段2：向量生成，失败降级为无向量的成功
	var embedding []float64
	embedding, embedErr := s.Embedder.GenerateEmbedding(content)
	if embedErr != nil {
		logger.Warning("[抽取] 文档 %d 向量生成失败，降级为纯文本交付: %v", doc.ID, embedErr)
		embedding = nil
	}

	// 阶段3：一次更新落库内容、向量与完成状态
	updates := map[string]interface{}{
		"content":           content,
		"extraction_status": models.ExtractionCompleted,
	}
	if embedding != nil {
		raw, merr := json.Marshal(embedding)
		if merr != nil {
			logger.Warning("[抽取] 文档 %d 向量序列化失败: %v", doc.ID, merr)
		} else {
			updates["embedding"] = datatypes.JSON(raw)
		}
	}
	if err = s.DB.Model(&models.Document{}).Where("id = ?", doc.ID).Updates(updates).Error; err != nil {
		return fmt.Errorf("persist stage: %w", err)
	}

	// 阶段4：写搜索索引。失败只记录，不回退completed状态
	indexErr := s.Search.IndexDocument(SearchDocument{
		ID:        doc.ID,
		FileName:  doc.FileName,
		MimeType:  doc.MimeType,
		Content:   content,
		Embedding: embedding,
	})
	if indexErr != nil {
		logger.Error("[抽取] 文档 %d 索引写入失败: %v", doc.ID, indexErr)
		return nil
	}

	// 索引成功后向管理员通道发布完成事件
	if notifyErr := s.Notification.PublishExtractionEvent(ExtractionEvent{
		DocumentID:       doc.ID,
		ExtractionStatus: models.ExtractionCompleted,
	}); notifyErr != nil {
		logger.Warning("[抽取] 文档 %d 完成通知发布失败: %v", doc.ID, notifyErr)
	}

	logger.Info("[抽取] 文档 %d 处理完成", doc.ID)
	return nil
}

// markFailed 将文档置为failed并记录原因
func (s *ExtractionService) markFailed(documentID uint, cause error) {
	logger.Error("[抽取] 文档 %d 抽取失败: %v", documentID, cause)
	if err := s.DB.Model(&models.Document{}).
		Where("id = ?", documentID).
		Update("extraction_status", models.ExtractionFailed).Error; err != nil {
		logger.Error("[抽取] 文档 %d 状态回写失败: %v", documentID, err)
	}
}
