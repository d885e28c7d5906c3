package services

import (
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"hrlink-http-service/internal/infrastructure/config"
)

// InterfaceExtractorService 定义文本抽取协作方接口
type InterfaceExtractorService interface {
	ExtractText(filePath, mimeType string) (string, error)
}

// ExtractorService 调用Tika风格的HTTP抽取服务。
// 支持的文档格式（PDF、Word、PowerPoint等）完全由协作方决定。
type ExtractorService struct {
	Config *config.Config
	Client *http.Client
}

// NewExtractorService 创建一个新的文本抽取服务
func NewExtractorService(cfg *config.Config) InterfaceExtractorService {
	return &ExtractorService{
		Config: cfg,
		Client: &http.Client{Timeout: 120 * time.Second},
	}
}

// ExtractText 将存储的文件提交给抽取服务，返回纯文本
func (s *ExtractorService) ExtractText(filePath, mimeType string) (string, error) {
	file, err := os.Open(filePath)
	if err != nil {
		return "", fmt.Errorf("error opening document file: %w", err)
	}
	defer file.Close()

	url := fmt.Sprintf("%s/tika", strings.TrimRight(s.Config.ExtractorAPIURL, "/"))
	req, err := http.NewRequest(http.MethodPut, url, file)
	if err != nil {
		return "", fmt.Errorf("error building extraction request: %w", err)
	}
	req.Header.Set("Content-Type", mimeType)
	req.Header.Set("Accept", "text/plain")

	resp, err := s.Client.Do(req)
	if err != nil {
		return "", fmt.Errorf("error calling extraction service: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("extraction service returned status code %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("error reading extraction response: %w", err)
	}

	return strings.TrimSpace(string(body)), nil
}
