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

// InterfaceEmbeddingService 定义向量生成协作方接口
type InterfaceEmbeddingService interface {
	GenerateEmbedding(text string) ([]float64, error)
}

// EmbeddingService 调用OpenAI兼容的embeddings接口
type EmbeddingService struct {
	Config *config.Config
	Client *http.Client
}

// embeddingRequest embeddings接口请求体
type embeddingRequest struct {
	Model string `json:"model"`
	Input string `json:"input"`
}

// embeddingResponse embeddings接口响应体
type embeddingResponse struct {
	Data []struct {
		Embedding []float64 `json:"embedding"`
	} `json:"data"`
	Error *struct {
		Message string `json:"message"`
		Type    string `json:"type"`
	} `json:"error,omitempty"`
}

// NewEmbeddingService 创建一个新的向量生成服务
func NewEmbeddingService(cfg *config.Config) InterfaceEmbeddingService {
	return &EmbeddingService{
		Config: cfg,
		Client: &http.Client{Timeout: 60 * time.Second},
	}
}

// GenerateEmbedding 为一段文本生成向量
func (s *EmbeddingService) GenerateEmbedding(text string) ([]float64, error) {
	if strings.TrimSpace(text) == "" {
		return nil, fmt.Errorf("cannot embed empty text")
	}

	// 接口对输入长度有限制，超长内容截断后再提交
	const maxInputChars = 24000
	if len(text) > maxInputChars {
		text = text[:maxInputChars]
	}

	payload, err := json.Marshal(embeddingRequest{
		Model: s.Config.EmbeddingModel,
		Input: text,
	})
	if err != nil {
		return nil, fmt.Errorf("error encoding embedding request: %w", err)
	}

	url := fmt.Sprintf("%s/embeddings", strings.TrimRight(s.Config.EmbeddingAPIURL, "/"))
	req, err := http.NewRequest(http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("error building embedding request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if s.Config.EmbeddingAPIKey != "" {
		req.Header.Set("Authorization", "Bearer "+s.Config.EmbeddingAPIKey)
	}

	resp, err := s.Client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("error calling embedding service: %w", err)
	}
	defer resp.Body.Close()

	var apiResp embeddingResponse
	if err := json.NewDecoder(resp.Body).Decode(&apiResp); err != nil {
		return nil, fmt.Errorf("error decoding embedding response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		if apiResp.Error != nil {
			return nil, fmt.Errorf("embedding service error: %s", apiResp.Error.Message)
		}
		return nil, fmt.Errorf("embedding service returned status code %d", resp.StatusCode)
	}

	if len(apiResp.Data) == 0 || len(apiResp.Data[0].Embedding) == 0 {
		return nil, fmt.Errorf("embedding service returned no vector")
	}

	return apiResp.Data[0].Embedding, nil
}
