package services

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"hrlink-http-service/internal/infrastructure/config"
)

func newSearchTestService(t *testing.T, handler http.HandlerFunc) *SearchService {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	cfg := &config.Config{
		SearchIndexURL:  server.URL,
		SearchIndexName: "documents",
		SearchAPIKey:    "test-key",
	}
	return NewSearchService(cfg).(*SearchService)
}

func TestIndexDocumentRequest(t *testing.T) {
	var gotPath, gotAuth string
	var gotDocs []SearchDocument

	svc := newSearchTestService(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotAuth = r.Header.Get("Authorization")
		json.NewDecoder(r.Body).Decode(&gotDocs)
		w.WriteHeader(http.StatusAccepted)
	})

	err := svc.IndexDocument(SearchDocument{ID: 7, FileName: "handbook.pdf", Content: "正文"})
	if err != nil {
		t.Fatalf("写入索引失败: %v", err)
	}
	if gotPath != "/indexes/documents/documents" {
		t.Errorf("请求路径错误: %s", gotPath)
	}
	if gotAuth != "Bearer test-key" {
		t.Errorf("认证头错误: %s", gotAuth)
	}
	if len(gotDocs) != 1 || gotDocs[0].ID != 7 {
		t.Errorf("请求体错误: %+v", gotDocs)
	}
}

func TestIndexDocumentErrorStatus(t *testing.T) {
	svc := newSearchTestService(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})
	if err := svc.IndexDocument(SearchDocument{ID: 1}); err == nil {
		t.Error("5xx响应应返回错误")
	}
}

func TestRemoveDocumentIgnoresNotFound(t *testing.T) {
	svc := newSearchTestService(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})
	// 幂等删除：索引里不存在不算失败
	if err := svc.RemoveDocument(7); err != nil {
		t.Errorf("404 不应视为删除失败: %v", err)
	}
}

func TestSearchDecodesHits(t *testing.T) {
	var gotBody map[string]interface{}

	svc := newSearchTestService(t, func(w http.ResponseWriter, r *http.Request) {
		json.NewDecoder(r.Body).Decode(&gotBody)
		json.NewEncoder(w).Encode(map[string]interface{}{
			"hits": []SearchHit{
				{ID: 1, FileName: "handbook.pdf", Snippet: "……年假……", Score: 0.91},
				{ID: 2, FileName: "policy.docx", Score: 0.66},
			},
		})
	})

	hits, err := svc.Search("年假", []float64{0.1, 0.2}, 10)
	if err != nil {
		t.Fatalf("检索失败: %v", err)
	}
	if len(hits) != 2 || hits[0].FileName != "handbook.pdf" {
		t.Errorf("检索结果解码错误: %+v", hits)
	}
	if gotBody["q"] != "年假" {
		t.Errorf("查询词未携带: %v", gotBody)
	}
	if _, ok := gotBody["vector"]; !ok {
		t.Error("混合检索应携带查询向量")
	}
}
