package benchmark

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"testing"
)

// 测试配置
type TestConfig struct {
	BaseURL     string `json:"base_url"`
	AdminUser   string `json:"admin_user"`
	AdminPass   string `json:"admin_pass"`
	Concurrency int    `json:"concurrency"`
	Requests    int    `json:"requests"`
}

// 登录请求
type LoginRequest struct {
	Identifier string `json:"identifier"`
	Password   string `json:"password"`
}

// 登录响应
type LoginResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Data    struct {
		Token string `json:"token"`
	} `json:"data"`
}

var (
	config    TestConfig
	authToken string
)

// TestMain 测试主函数。
// 压测需要一个运行中的服务实例，未设置 BENCH_BASE_URL 时整包跳过。
func TestMain(m *testing.M) {
	baseURL := os.Getenv("BENCH_BASE_URL")
	if baseURL == "" {
		fmt.Println("未设置 BENCH_BASE_URL，跳过压测")
		os.Exit(0)
	}

	// 加载测试配置
	if err := loadConfig(baseURL); err != nil {
		fmt.Printf("加载配置失败: %v\n", err)
		os.Exit(1)
	}

	// 获取认证令牌
	if err := getAuthToken(); err != nil {
		fmt.Printf("获取认证令牌失败: %v\n", err)
		os.Exit(1)
	}

	// 运行测试
	os.Exit(m.Run())
}

// loadConfig 加载测试配置
func loadConfig(baseURL string) error {
	// 默认配置
	config = TestConfig{
		BaseURL:     baseURL,
		AdminUser:   "ADMIN",
		AdminPass:   "admin123",
		Concurrency: 10,
		Requests:    100,
	}

	// 尝试从文件加载配置
	data, err := os.ReadFile("test_config.json")
	if err == nil {
		if err := json.Unmarshal(data, &config); err != nil {
			return fmt.Errorf("解析配置文件失败: %v", err)
		}
	}

	return nil
}

// getAuthToken 登录并解析认证令牌
func getAuthToken() error {
	body, err := json.Marshal(LoginRequest{
		Identifier: config.AdminUser,
		Password:   config.AdminPass,
	})
	if err != nil {
		return err
	}

	resp, err := http.Post(config.BaseURL+"/auth/login", "application/json", bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("登录请求失败: %v", err)
	}
	defer resp.Body.Close()

	var loginResp LoginResponse
	if err := json.NewDecoder(resp.Body).Decode(&loginResp); err != nil {
		return fmt.Errorf("解析登录响应失败: %v", err)
	}
	if loginResp.Data.Token == "" {
		return fmt.Errorf("登录失败: %s", loginResp.Message)
	}

	authToken = loginResp.Data.Token
	return nil
}

// TestEmployeeList 测试员工列表接口
func TestEmployeeList(t *testing.T) {
	benchmark := NewAPIBenchmark(config.BaseURL, config.Concurrency, config.Requests, authToken)
	result := benchmark.RunGET("/employees")
	result.PrintResult()

	// 验证结果
	if result.FailureCount > 0 {
		t.Errorf("员工列表接口测试失败: 成功率 %.2f%%", float64(result.SuccessCount)/float64(result.TotalRequests)*100)
	}
}

// TestAttendanceList 测试考勤列表接口
func TestAttendanceList(t *testing.T) {
	benchmark := NewAPIBenchmark(config.BaseURL, config.Concurrency, config.Requests, authToken)
	result := benchmark.RunGET("/attendance")
	result.PrintResult()

	// 验证结果
	if result.FailureCount > 0 {
		t.Errorf("考勤列表接口测试失败: 成功率 %.2f%%", float64(result.SuccessCount)/float64(result.TotalRequests)*100)
	}
}

// TestDepartmentList 测试部门列表接口
func TestDepartmentList(t *testing.T) {
	benchmark := NewAPIBenchmark(config.BaseURL, config.Concurrency, config.Requests, authToken)
	result := benchmark.RunGET("/departments")
	result.PrintResult()

	// 验证结果
	if result.FailureCount > 0 {
		t.Errorf("部门列表接口测试失败: 成功率 %.2f%%", float64(result.SuccessCount)/float64(result.TotalRequests)*100)
	}
}

// TestCalendarEvents 测试日历事件接口
func TestCalendarEvents(t *testing.T) {
	benchmark := NewAPIBenchmark(config.BaseURL, config.Concurrency, config.Requests, authToken)
	result := benchmark.RunGET("/calendar/events")
	result.PrintResult()

	// 验证结果
	if result.FailureCount > 0 {
		t.Errorf("日历事件接口测试失败: 成功率 %.2f%%", float64(result.SuccessCount)/float64(result.TotalRequests)*100)
	}
}

// TestBiometricScanIngest 测试打卡上报接口
func TestBiometricScanIngest(t *testing.T) {
	benchmark := NewAPIBenchmark(config.BaseURL, config.Concurrency, config.Requests, "")

	// 打卡上报数据，工号不存在也是合法请求（留审计记录）
	scanRequest := map[string]interface{}{
		"employee_code": "BENCH-GHOST",
		"scan_date":     "2026-09-01",
		"scan_time":     "08:30:00",
	}

	result := benchmark.RunPOST("/biometric-logs", scanRequest)
	result.PrintResult()

	// 验证结果
	if result.FailureCount > 0 {
		t.Errorf("打卡上报接口测试失败: 成功率 %.2f%%", float64(result.SuccessCount)/float64(result.TotalRequests)*100)
	}
}
