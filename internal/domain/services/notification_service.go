package services

import (
	"crypto/tls"
	"encoding/json"
	"fmt"
	"strings"
	"sync"
	"time"

	"hrlink-http-service/internal/infrastructure/config"
	"hrlink-http-service/pkg/logger"

	mqtt "github.com/eclipse/paho.mqtt.golang"
	"github.com/google/uuid"
)

// 主题常量
const (
	// TopicExtractionChannel 文档抽取完成通知，仅管理员订阅
	TopicExtractionChannel = "admin/pdf-extraction"

	// TopicChatPrefix 聊天室主题前缀，完整主题为 hrlink/chat/{room}
	TopicChatPrefix = "hrlink/chat/"
)

// ExtractionEvent 抽取完成事件载荷
type ExtractionEvent struct {
	DocumentID       uint   `json:"document_id"`
	ExtractionStatus string `json:"extraction_status"`
	Timestamp        int64  `json:"timestamp"`
}

// InterfaceNotificationService 定义实时通知服务接口
type InterfaceNotificationService interface {
	Connect() error
	Disconnect()
	PublishExtractionEvent(event ExtractionEvent) error
	PublishChatMessage(room string, payload interface{}) error
}

// NotificationService 基于MQTT的实时通知通道
type NotificationService struct {
	Config         *config.Config
	Client         mqtt.Client
	IsConnected    bool
	connectedMutex sync.RWMutex // 保护IsConnected字段的读写
	PublishMutex   sync.Mutex   // 用于保护MQTT消息发布
}

// NewNotificationService 创建一个新的实时通知服务
func NewNotificationService(cfg *config.Config) InterfaceNotificationService {
	service := &NotificationService{
		Config:      cfg,
		IsConnected: false,
	}
	service.setupMQTTClient()
	return service
}

// setupMQTTClient 设置MQTT客户端
func (s *NotificationService) setupMQTTClient() {
	opts := mqtt.NewClientOptions()
	opts.AddBroker(s.Config.MQTTBrokerURL)
	// 使用唯一的客户端ID，避免同一服务多实例冲突
	opts.SetClientID(fmt.Sprintf("%s-%s-%d", s.Config.MQTTClientID, uuid.New().String()[:8], time.Now().UnixNano()))
	opts.SetAutoReconnect(true)
	opts.SetMaxReconnectInterval(time.Second * 30)
	opts.SetKeepAlive(time.Second * 60)
	opts.SetPingTimeout(time.Second * 10)
	opts.SetCleanSession(true)

	// 添加用户名和密码
	if s.Config.MQTTUsername != "" {
		opts.SetUsername(s.Config.MQTTUsername)
		opts.SetPassword(s.Config.MQTTPassword)
	}

	// 添加TLS配置，支持SSL连接
	if strings.HasPrefix(s.Config.MQTTBrokerURL, "ssl://") || strings.HasPrefix(s.Config.MQTTBrokerURL, "tls://") || s.Config.MQTTSSLEnabled {
		logger.Info("[MQTT] 使用TLS连接")
		tlsConfig := &tls.Config{
			InsecureSkipVerify: true, // 如有CA证书则应加载并关闭跳过验证
		}
		opts.SetTLSConfig(tlsConfig)
	}

	// 设置连接丢失回调
	opts.SetConnectionLostHandler(func(client mqtt.Client, err error) {
		logger.Warning("[MQTT] 连接丢失: %v", err)
		s.connectedMutex.Lock()
		s.IsConnected = false
		s.connectedMutex.Unlock()
	})

	// 设置连接建立回调
	opts.SetOnConnectHandler(func(client mqtt.Client) {
		logger.Info("[MQTT] 成功连接到 %s", s.Config.MQTTBrokerURL)
		s.connectedMutex.Lock()
		s.IsConnected = true
		s.connectedMutex.Unlock()
	})

	s.Client = mqtt.NewClient(opts)
}

// Connect 连接到MQTT服务器，带有指数退避的重试机制
func (s *NotificationService) Connect() error {
	s.PublishMutex.Lock()
	defer s.PublishMutex.Unlock()
	return s.connectLocked()
}

// connectLocked 执行实际的连接重试，调用方必须已持有PublishMutex
func (s *NotificationService) connectLocked() error {
	s.connectedMutex.RLock()
	isConnected := s.IsConnected && s.Client.IsConnected()
	s.connectedMutex.RUnlock()

	if isConnected {
		return nil
	}

	// 未配置Broker时直接失败，不做重试退避
	if s.Config.MQTTBrokerURL == "" {
		return fmt.Errorf("[MQTT] 未配置Broker地址，实时通知不可用")
	}

	maxRetries := 5
	var err error

	for i := 0; i < maxRetries; i++ {
		token := s.Client.Connect()
		if token.WaitTimeout(5*time.Second) && token.Error() == nil {
			s.connectedMutex.Lock()
			s.IsConnected = true
			s.connectedMutex.Unlock()
			return nil
		}

		err = token.Error()
		backoffTime := time.Duration(1<<uint(i)) * time.Second // 指数退避: 1s, 2s, 4s, 8s, 16s
		logger.Warning("[MQTT] 连接尝试 %d/%d 失败: %v, 将在 %v 后重试", i+1, maxRetries, err, backoffTime)
		time.Sleep(backoffTime)
	}

	return fmt.Errorf("[MQTT] 连接失败，已尝试 %d 次: %v", maxRetries, err)
}

// Disconnect 断开与MQTT服务器的连接
func (s *NotificationService) Disconnect() {
	if s.Client != nil && s.Client.IsConnected() {
		s.Client.Disconnect(250)
	}
}

// PublishExtractionEvent 向管理员通知通道发布抽取完成事件
func (s *NotificationService) PublishExtractionEvent(event ExtractionEvent) error {
	if event.Timestamp == 0 {
		event.Timestamp = time.Now().UnixMilli()
	}
	return s.publishMessage(TopicExtractionChannel, event)
}

// PublishChatMessage 向聊天室主题发布消息
func (s *NotificationService) PublishChatMessage(room string, payload interface{}) error {
	return s.publishMessage(TopicChatPrefix+room, payload)
}

// publishMessage 发布消息到指定主题
func (s *NotificationService) publishMessage(topic string, payload interface{}) error {
	// 加锁保护发布过程，避免并发发布冲突
	s.PublishMutex.Lock()
	defer s.PublishMutex.Unlock()

	s.connectedMutex.RLock()
	isConnected := s.IsConnected && s.Client.IsConnected()
	s.connectedMutex.RUnlock()

	if !isConnected {
		logger.Warning("[MQTT] 客户端未连接，尝试重新连接...")
		if err := s.connectLocked(); err != nil {
			return fmt.Errorf("MQTT客户端未连接: %v", err)
		}
	}

	jsonData, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("序列化消息失败: %v", err)
	}

	// 使用QoS 1确保消息至少被传递一次
	qos := byte(s.Config.MQTTQoS)
	token := s.Client.Publish(topic, qos, s.Config.MQTTRetained, jsonData)

	// 设置超时时间，避免无限等待
	if !token.WaitTimeout(3 * time.Second) {
		return fmt.Errorf("发布消息超时")
	}
	if token.Error() != nil {
		return fmt.Errorf("发布消息失败: %v", token.Error())
	}

	logger.Info("[MQTT] 已发布消息到主题: %s", topic)
	return nil
}
