package services

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"hrlink-http-service/internal/infrastructure/config"
)

// InterfaceSearchService 定义搜索索引协作方接口
type InterfaceSearchService interface {
	IndexDocument(doc SearchDocument) error
	RemoveDocument(documentID uint) error
	Search(query string, queryVector []float64, limit int) ([]SearchHit, error)
}

// SearchDocument 写入搜索索引的文档结构
type SearchDocument struct {
	ID        uint      `json:"id"`
	FileName  string    `json:"file_name"`
	MimeType  string    `json:"mime_type"`
	Content   string    `json:"content"`
	Embedding []float64 `json:"_vectors,omitempty"` // 向量字段，缺省时仅做全文索引
}

// SearchHit 搜索结果条目
type SearchHit struct {
	ID       uint    `json:"id"`
	FileName string  `json:"file_name"`
	Snippet  string  `json:"snippet,omitempty"`
	Score    float64 `json:"score,omitempty"`
}

// SearchService 调用Meilisearch风格的HTTP搜索索引
type SearchService struct {
	Config *config.Config
	Client *http.Client
}

// NewSearchService 创建一个新的搜索索引服务
func NewSearchService(cfg *config.Config) InterfaceSearchService {
	return &SearchService{
		Config: cfg,
		Client: &http.Client{Timeout: 30 * time.Second},
	}
}

// 1 IndexDocument 将文档写入（或覆盖）索引
func (s *SearchService) IndexDocument(doc SearchDocument) error {
	payload, err := json.Marshal([]SearchDocument{doc})
	if err != nil {
		return fmt.Errorf("error encoding index payload: %w", err)
	}

	url := fmt.Sprintf("%s/indexes/%s/documents", strings.TrimRight(s.Config.SearchIndexURL, "/"), s.Config.SearchIndexName)
	req, err := http.NewRequest(http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("error building index request: %w", err)
	}
	s.setHeaders(req)

	resp, err := s.Client.Do(req)
	if err != nil {
		return fmt.Errorf("error calling search index: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		return fmt.Errorf("search index returned status code %d", resp.StatusCode)
	}
	return nil
}

// 2 RemoveDocument 从索引中删除文档
func (s *SearchService) RemoveDocument(documentID uint) error {
	url := fmt.Sprintf("%s/indexes/%s/documents/%d", strings.TrimRight(s.Config.SearchIndexURL, "/"), s.Config.SearchIndexName, documentID)
	req, err := http.NewRequest(http.MethodDelete, url, nil)
	if err != nil {
		return fmt.Errorf("error building delete request: %w", err)
	}
	s.setHeaders(req)

	resp, err := s.Client.Do(req)
	if err != nil {
		return fmt.Errorf("error calling search index: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 && resp.StatusCode != http.StatusNotFound {
		return fmt.Errorf("search index returned status code %d", resp.StatusCode)
	}
	return nil
}

// 3 Search 全文检索，携带查询向量时走混合（语义）检索
func (s *SearchService) Search(query string, queryVector []float64, limit int) ([]SearchHit, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}

	body := map[string]interface{}{
		"q":     query,
		"limit": limit,
	}
	if len(queryVector) > 0 {
		body["vector"] = queryVector
	}
	payload, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("error encoding search payload: %w", err)
	}

	url := fmt.Sprintf("%s/indexes/%s/search", strings.TrimRight(s.Config.SearchIndexURL, "/"), s.Config.SearchIndexName)
	req, err := http.NewRequest(http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("error building search request: %w", err)
	}
	s.setHeaders(req)

	resp, err := s.Client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("error calling search index: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("search index returned status code %d", resp.StatusCode)
	}

	var apiResp struct {
		Hits []SearchHit `json:"hits"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&apiResp); err != nil {
		return nil, fmt.Errorf("error decoding search response: %w", err)
	}
	return apiResp.Hits, nil
}

// setHeaders 设置通用请求头
func (s *SearchService) setHeaders(req *http.Request) {
	req.Header.Set("Content-Type", "application/json")
	if s.Config.SearchAPIKey != "" {
		req.Header.Set("Authorization", "Bearer "+s.Config.SearchAPIKey)
	}
}
