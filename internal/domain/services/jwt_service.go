package services

import (
	"errors"
	"fmt"
	"time"

	"hrlink-http-service/internal/domain/models"
	"hrlink-http-service/internal/infrastructure/config"

	"github.com/golang-jwt/jwt/v4"
	"gorm.io/gorm"
)

// InterfaceJWTService 定义JWT服务接口
type InterfaceJWTService interface {
	GenerateToken(employeeID uint, role string) (string, error)
	ValidateToken(tokenString string) (*jwt.Token, error)
	ExtractClaims(tokenString string) (*JWTClaims, error)
	Login(identifier, password string) (*LoginResult, error)
}

// LoginResult 表示登录结果
type LoginResult struct {
	Token        string      `json:"token"`
	EmployeeID   uint        `json:"employee_id"`
	EmployeeCode string      `json:"employee_code"`
	Role         string      `json:"role"`
	Name         string      `json:"name"`
	Email        string      `json:"email,omitempty"`
	CreatedAt    interface{} `json:"created_at"`
}

// JWTService 提供JWT相关服务
type JWTService struct {
	secretKey string
	issuer    string
	DB        *gorm.DB
}

// JWTClaims 定义JWT令牌的声明结构
type JWTClaims struct {
	EmployeeID uint   `json:"employee_id"`
	Role       string `json:"role"`
	jwt.RegisteredClaims
}

// NewJWTService 创建一个新的JWT服务
func NewJWTService(cfg *config.Config, db *gorm.DB) InterfaceJWTService {
	return &JWTService{
		secretKey: cfg.JWTSecretKey,
		issuer:    "hrlink-http-service",
		DB:        db,
	}
}

// GenerateToken 生成JWT令牌
func (s *JWTService) GenerateToken(employeeID uint, role string) (string, error) {
	// 令牌有效期为24小时
	expirationTime := time.Now().Add(24 * time.Hour)

	claims := &JWTClaims{
		EmployeeID: employeeID,
		Role:       role,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(expirationTime),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			NotBefore: jwt.NewNumericDate(time.Now()),
			Issuer:    s.issuer,
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.secretKey))
}

// ValidateToken 验证JWT令牌
func (s *JWTService) ValidateToken(tokenString string) (*jwt.Token, error) {
	return jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		// 验证签名算法
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(s.secretKey), nil
	})
}

// ExtractClaims 从令牌中提取声明
func (s *JWTService) ExtractClaims(tokenString string) (*JWTClaims, error) {
	token, err := s.ValidateToken(tokenString)
	if err != nil {
		return nil, err
	}

	if claims, ok := token.Claims.(jwt.MapClaims); ok && token.Valid {
		// 将map claims转换为JWTClaims结构
		jwtClaims := &JWTClaims{}

		if issuer, ok := claims["iss"].(string); ok {
			jwtClaims.Issuer = issuer
		}

		// 提取员工ID
		if employeeID, ok := claims["employee_id"].(float64); ok {
			jwtClaims.EmployeeID = uint(employeeID)
		}

		// 提取角色
		if role, ok := claims["role"].(string); ok {
			jwtClaims.Role = role
		}

		return jwtClaims, nil
	}

	return nil, errors.New("invalid token claims")
}

// Login 处理登录请求，标识符可以是工号或邮箱
func (s *JWTService) Login(identifier, password string) (*LoginResult, error) {
	var employee models.Employee
	err := s.DB.Where("employee_code = ?", identifier).First(&employee).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		err = s.DB.Where("email = ?", identifier).First(&employee).Error
	}
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.New("invalid credentials")
		}
		return nil, err
	}

	if !employee.CheckPassword(password) {
		return nil, errors.New("invalid credentials")
	}

	token, err := s.GenerateToken(employee.ID, employee.Role)
	if err != nil {
		return nil, err
	}

	return &LoginResult{
		Token:        token,
		EmployeeID:   employee.ID,
		EmployeeCode: employee.EmployeeCode,
		Role:         employee.Role,
		Name:         employee.Name,
		Email:        employee.Email,
		CreatedAt:    employee.CreatedAt,
	}, nil
}
