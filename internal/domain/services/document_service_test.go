package services

import (
	"errors"
	"testing"

	"hrlink-http-service/internal/domain/models"
)

func newDocumentTestService(t *testing.T) (InterfaceDocumentService, *fakeEmbedder, *fakeSearch) {
	t.Helper()
	db := newTestDB(t)
	embed := &fakeEmbedder{vector: []float64{0.5, 0.5}}
	search := &fakeSearch{hits: []SearchHit{{ID: 1, FileName: "handbook.pdf", Score: 0.92}}}
	return NewDocumentService(db, testConfig(), embed, search), embed, search
}

func TestSetApprovalStatus(t *testing.T) {
	db := newTestDB(t)
	svc := NewDocumentService(db, testConfig(), &fakeEmbedder{}, &fakeSearch{})

	doc := &models.Document{FileName: "a.pdf", FilePath: "/tmp/a.pdf", MimeType: "application/pdf", Status: models.DocumentPending}
	if err := db.Create(doc).Error; err != nil {
		t.Fatalf("创建文档失败: %v", err)
	}

	// 只接受 approved / rejected
	if _, err := svc.SetApprovalStatus(doc.ID, "pending"); err == nil {
		t.Error("回退到 pending 应被拒绝")
	}
	if _, err := svc.SetApprovalStatus(doc.ID, "whatever"); err == nil {
		t.Error("非法状态应被拒绝")
	}

	updated, err := svc.SetApprovalStatus(doc.ID, models.DocumentApproved)
	if err != nil {
		t.Fatalf("审批失败: %v", err)
	}
	if updated.Status != models.DocumentApproved {
		t.Errorf("状态应为 approved，实际 %s", updated.Status)
	}

	if _, err := svc.SetApprovalStatus(9999, models.DocumentApproved); err == nil {
		t.Error("文档不存在应报错")
	}
}

func TestSearchDocumentsHybrid(t *testing.T) {
	svc, _, search := newDocumentTestService(t)

	hits, err := svc.SearchDocuments("年假规定", 10)
	if err != nil {
		t.Fatalf("检索失败: %v", err)
	}
	if len(hits) != 1 || hits[0].FileName != "handbook.pdf" {
		t.Errorf("检索结果错误: %+v", hits)
	}
	if search.lastQuery != "年假规定" || len(search.lastVector) != 2 {
		t.Errorf("混合检索应携带查询向量: query=%q vector=%v", search.lastQuery, search.lastVector)
	}
}

func TestSearchDocumentsDegradesWithoutEmbedding(t *testing.T) {
	svc, embed, _ := newDocumentTestService(t)
	embed.err = errors.New("embedding api unavailable")

	// 查询向量失败退化为纯全文检索，不报错
	hits, err := svc.SearchDocuments("年假规定", 10)
	if err != nil {
		t.Fatalf("退化检索不应失败: %v", err)
	}
	if len(hits) != 1 {
		t.Errorf("退化检索仍应返回结果: %+v", hits)
	}
}
