package services

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"hrlink-http-service/internal/domain/models"

	"gorm.io/gorm"
)

// fakeRedisService 进程内队列，替代测试中的Redis
type fakeRedisService struct {
	queues map[string][][]byte
}

func newFakeRedis() *fakeRedisService {
	return &fakeRedisService{queues: make(map[string][][]byte)}
}

func (f *fakeRedisService) Set(key string, value interface{}, expiration time.Duration) error {
	return nil
}
func (f *fakeRedisService) Get(key string, dest interface{}) error { return errors.New("not found") }
func (f *fakeRedisService) Delete(key string) error                { return nil }

func (f *fakeRedisService) EnqueueJob(queueKey string, job interface{}) error {
	raw, err := json.Marshal(job)
	if err != nil {
		return err
	}
	f.queues[queueKey] = append(f.queues[queueKey], raw)
	return nil
}

func (f *fakeRedisService) DequeueJob(ctx context.Context, queueKey string, timeout time.Duration, dest interface{}) (bool, error) {
	items := f.queues[queueKey]
	if len(items) == 0 {
		return false, nil
	}
	f.queues[queueKey] = items[1:]
	return true, json.Unmarshal(items[0], dest)
}

func (f *fakeRedisService) QueueLength(queueKey string) (int64, error) {
	return int64(len(f.queues[queueKey])), nil
}
func (f *fakeRedisService) Ping() error { return nil }

type fakeExtractor struct {
	content string
	err     error
}

func (f *fakeExtractor) ExtractText(filePath, mimeType string) (string, error) {
	return f.content, f.err
}

type fakeEmbedder struct {
	vector []float64
	err    error
}

func (f *fakeEmbedder) GenerateEmbedding(text string) ([]float64, error) {
	return f.vector, f.err
}

type fakeSearch struct {
	indexed    []SearchDocument
	indexErr   error
	hits       []SearchHit
	lastQuery  string
	lastVector []float64
}

func (f *fakeSearch) IndexDocument(doc SearchDocument) error {
	if f.indexErr != nil {
		return f.indexErr
	}
	f.indexed = append(f.indexed, doc)
	return nil
}
func (f *fakeSearch) RemoveDocument(documentID uint) error { return nil }
func (f *fakeSearch) Search(query string, queryVector []float64, limit int) ([]SearchHit, error) {
	f.lastQuery = query
	f.lastVector = queryVector
	return f.hits, nil
}

type fakeNotifier struct {
	events     []ExtractionEvent
	chats      map[string][]interface{}
	publishErr error
}

func newFakeNotifier() *fakeNotifier {
	return &fakeNotifier{chats: make(map[string][]interface{})}
}

func (f *fakeNotifier) Connect() error { return nil }
func (f *fakeNotifier) Disconnect()    {}

func (f *fakeNotifier) PublishExtractionEvent(event ExtractionEvent) error {
	if f.publishErr != nil {
		return f.publishErr
	}
	f.events = append(f.events, event)
	return nil
}

func (f *fakeNotifier) PublishChatMessage(room string, payload interface{}) error {
	if f.publishErr != nil {
		return f.publishErr
	}
	f.chats[room] = append(f.chats[room], payload)
	return nil
}

// extractionFixture 组装一个全部依赖可控的抽取流水线
type extractionFixture struct {
	svc      *ExtractionService
	db       *gorm.DB
	redis    *fakeRedisService
	extract  *fakeExtractor
	embed    *fakeEmbedder
	search   *fakeSearch
	notifier *fakeNotifier
}

func newExtractionFixture(t *testing.T) *extractionFixture {
	t.Helper()
	f := &extractionFixture{
		db:       newTestDB(t),
		redis:    newFakeRedis(),
		extract:  &fakeExtractor{content: "员工手册正文"},
		embed:    &fakeEmbedder{vector: []float64{0.1, 0.2, 0.3}},
		search:   &fakeSearch{},
		notifier: newFakeNotifier(),
	}
	f.svc = &ExtractionService{
		DB:           f.db,
		Config:       testConfig(),
		Redis:        f.redis,
		Extractor:    f.extract,
		Embedder:     f.embed,
		Search:       f.search,
		Notification: f.notifier,
	}
	return f
}

func (f *extractionFixture) seedDocument(t *testing.T, status, extractionStatus string) *models.Document {
	t.Helper()
	doc := &models.Document{
		FileName:         "handbook.pdf",
		FilePath:         "/data/uploads/handbook.pdf",
		MimeType:         "application/pdf",
		Status:           status,
		ExtractionStatus: extractionStatus,
	}
	if err := f.db.Create(doc).Error; err != nil {
		t.Fatalf("创建测试文档失败: %v", err)
	}
	return doc
}

func (f *extractionFixture) reload(t *testing.T, id uint) *models.Document {
	t.Helper()
	var doc models.Document
	if err := f.db.First(&doc, id).Error; err != nil {
		t.Fatalf("读取文档失败: %v", err)
	}
	return &doc
}

func TestEnqueuePushesJob(t *testing.T) {
	f := newExtractionFixture(t)
	doc := f.seedDocument(t, models.DocumentApproved, "")

	if err := f.svc.Enqueue(doc.ID); err != nil {
		t.Fatalf("入队失败: %v", err)
	}

	n, _ := f.redis.QueueLength(f.svc.Config.ExtractionQueueKey)
	if n != 1 {
		t.Fatalf("队列长度应为 1，实际 %d", n)
	}

	var job ExtractionJob
	ok, err := f.redis.DequeueJob(context.Background(), f.svc.Config.ExtractionQueueKey, time.Second, &job)
	if err != nil || !ok {
		t.Fatalf("出队失败: ok=%v err=%v", ok, err)
	}
	if job.DocumentID != doc.ID {
		t.Errorf("任务载荷文档ID错误: %d", job.DocumentID)
	}
}

func TestProcessSkipsUnapprovedDocument(t *testing.T) {
	f := newExtractionFixture(t)
	doc := f.seedDocument(t, models.DocumentPending, "")

	if err := f.svc.Process(doc.ID); err != nil {
		t.Fatalf("未审批文档应跳过而不报错: %v", err)
	}
	if got := f.reload(t, doc.ID).ExtractionStatus; got != "" {
		t.Errorf("未审批文档的抽取状态不应改变，实际 %q", got)
	}
	if len(f.search.indexed) != 0 {
		t.Error("未审批文档不应进入索引")
	}
}

func TestProcessRejectsConcurrentRun(t *testing.T) {
	f := newExtractionFixture(t)
	doc := f.seedDocument(t, models.DocumentApproved, models.ExtractionProcessing)

	if err := f.svc.Process(doc.ID); !errors.Is(err, ErrExtractionBusy) {
		t.Fatalf("processing状态下应返回 ErrExtractionBusy，实际 %v", err)
	}
	// 未持有执行权的一方不得改动状态
	if got := f.reload(t, doc.ID).ExtractionStatus; got != models.ExtractionProcessing {
		t.Errorf("状态应保持 processing，实际 %q", got)
	}
}

func TestProcessEmptyContentFails(t *testing.T) {
	f := newExtractionFixture(t)
	f.extract.content = "   \n  "
	doc := f.seedDocument(t, models.DocumentApproved, "")

	if err := f.svc.Process(doc.ID); !errors.Is(err, ErrExtractionEmpty) {
		t.Fatalf("空内容应返回 ErrExtractionEmpty，实际 %v", err)
	}
	if got := f.reload(t, doc.ID).ExtractionStatus; got != models.ExtractionFailed {
		t.Errorf("空内容抽取后状态应为 failed，实际 %q", got)
	}
}

func TestProcessDegradesOnEmbeddingFailure(t *testing.T) {
	f := newExtractionFixture(t)
	f.embed.err = errors.New("embedding api unavailable")
	doc := f.seedDocument(t, models.DocumentApproved, "")

	if err := f.svc.Process(doc.ID); err != nil {
		t.Fatalf("向量失败应降级而不报错: %v", err)
	}

	got := f.reload(t, doc.ID)
	if got.ExtractionStatus != models.ExtractionCompleted {
		t.Errorf("降级交付后状态应为 completed，实际 %q", got.ExtractionStatus)
	}
	if got.Content == nil || *got.Content != "员工手册正文" {
		t.Error("降级交付仍应落库抽取内容")
	}
	if len(got.Embedding) != 0 {
		t.Errorf("降级交付不应写入向量，实际 %s", got.Embedding)
	}
	if len(f.search.indexed) != 1 || f.search.indexed[0].Embedding != nil {
		t.Error("索引应收到无向量的文档")
	}
}

func TestProcessToleratesIndexFailure(t *testing.T) {
	f := newExtractionFixture(t)
	f.search.indexErr = errors.New("search engine down")
	doc := f.seedDocument(t, models.DocumentApproved, "")

	if err := f.svc.Process(doc.ID); err != nil {
		t.Fatalf("索引失败不应使流水线失败: %v", err)
	}
	if got := f.reload(t, doc.ID).ExtractionStatus; got != models.ExtractionCompleted {
		t.Errorf("索引失败后状态仍应为 completed，实际 %q", got)
	}
	if len(f.notifier.events) != 0 {
		t.Error("索引失败时不应发布完成通知")
	}
}

func TestProcessSuccessPublishesEvent(t *testing.T) {
	f := newExtractionFixture(t)
	doc := f.seedDocument(t, models.DocumentApproved, "")

	if err := f.svc.Process(doc.ID); err != nil {
		t.Fatalf("抽取失败: %v", err)
	}

	got := f.reload(t, doc.ID)
	if got.ExtractionStatus != models.ExtractionCompleted {
		t.Fatalf("状态应为 completed，实际 %q", got.ExtractionStatus)
	}
	if len(got.Embedding) == 0 {
		t.Error("成功路径应写入序列化向量")
	}
	if len(f.search.indexed) != 1 {
		t.Fatalf("应写入 1 条索引，实际 %d", len(f.search.indexed))
	}
	if len(f.notifier.events) != 1 || f.notifier.events[0].DocumentID != doc.ID {
		t.Errorf("完成事件发布错误: %+v", f.notifier.events)
	}

	// failed文档的恢复路径是重跑
	f.db.Model(&models.Document{}).Where("id = ?", doc.ID).Update("extraction_status", models.ExtractionFailed)
	if err := f.svc.Process(doc.ID); err != nil {
		t.Fatalf("failed文档重跑失败: %v", err)
	}
	if got := f.reload(t, doc.ID).ExtractionStatus; got != models.ExtractionCompleted {
		t.Errorf("重跑后状态应为 completed，实际 %q", got)
	}
}

func TestProcessRerunOnCompletedDocument(t *testing.T) {
	f := newExtractionFixture(t)
	doc := f.seedDocument(t, models.DocumentApproved, models.ExtractionCompleted)

	// completed不是终态锁，重跑允许且幂等
	if err := f.svc.Process(doc.ID); err != nil {
		t.Fatalf("completed文档重跑失败: %v", err)
	}

	got := f.reload(t, doc.ID)
	if got.ExtractionStatus != models.ExtractionCompleted {
		t.Errorf("重跑后状态应保持 completed，实际 %q", got.ExtractionStatus)
	}
	if got.Content == nil || *got.Content != "员工手册正文" {
		t.Error("重跑应重新落库抽取内容")
	}
	if len(f.search.indexed) != 1 {
		t.Errorf("重跑应重新写入索引，实际 %d 条", len(f.search.indexed))
	}
	if len(f.notifier.events) != 1 {
		t.Errorf("重跑成功应发布 1 条完成事件，实际 %d", len(f.notifier.events))
	}
}
