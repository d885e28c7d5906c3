package services

import (
	"errors"

	"hrlink-http-service/internal/domain/models"
	"hrlink-http-service/internal/infrastructure/config"
	"hrlink-http-service/pkg/utils"

	"gorm.io/gorm"
)

// InterfaceEmployeeService defines the employee service interface
type InterfaceEmployeeService interface {
	GetAllEmployees(page, pageSize int, search string) ([]models.Employee, int64, error)
	GetEmployeeByID(id uint) (*models.Employee, error)
	GetEmployeeByCode(code string) (*models.Employee, error)
	CreateEmployee(employee *models.Employee) error
	UpdateEmployee(id uint, updates map[string]interface{}) (*models.Employee, error)
	DeleteEmployee(id uint) error
}

// EmployeeService 提供员工相关的服务
type EmployeeService struct {
	DB     *gorm.DB
	Config *config.Config
}

// NewEmployeeService 创建一个新的员工服务
func NewEmployeeService(db *gorm.DB, cfg *config.Config) InterfaceEmployeeService {
	return &EmployeeService{
		DB:     db,
		Config: cfg,
	}
}

// 1 GetAllEmployees 获取所有员工，支持分页和搜索
func (s *EmployeeService) GetAllEmployees(page, pageSize int, search string) ([]models.Employee, int64, error) {
	var employees []models.Employee
	var total int64

	query := s.DB.Model(&models.Employee{})

	// 如果有搜索关键词，添加搜索条件
	if search != "" {
		query = query.Where("name LIKE ? OR employee_code LIKE ? OR email LIKE ?",
			"%"+search+"%", "%"+search+"%", "%"+search+"%")
	}

	// 获取总数
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	// 分页查询
	offset := (page - 1) * pageSize
	if err := query.Preload("Department").Preload("Position").
		Limit(pageSize).Offset(offset).Find(&employees).Error; err != nil {
		return nil, 0, err
	}

	return employees, total, nil
}

// 2 GetEmployeeByID 根据ID获取员工
func (s *EmployeeService) GetEmployeeByID(id uint) (*models.Employee, error) {
	var employee models.Employee
	if err := s.DB.Preload("Department").Preload("Position").First(&employee, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.New("employee not found")
		}
		return nil, err
	}
	return &employee, nil
}

// 3 GetEmployeeByCode 根据工号获取员工
func (s *EmployeeService) GetEmployeeByCode(code string) (*models.Employee, error) {
	var employee models.Employee
	if err := s.DB.Where("employee_code = ?", code).First(&employee).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.New("employee not found")
		}
		return nil, err
	}
	return &employee, nil
}

// 4 CreateEmployee 创建新员工
func (s *EmployeeService) CreateEmployee(employee *models.Employee) error {
	// 工号留空时自动生成
	if employee.EmployeeCode == "" {
		employee.EmployeeCode = utils.RandomEmployeeCode("EMP")
	}

	// 验证工号唯一性
	var count int64
	if err := s.DB.Model(&models.Employee{}).Where("employee_code = ?", employee.EmployeeCode).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return errors.New("employee code already in use")
	}

	// 验证邮箱唯一性
	if employee.Email != "" {
		if err := s.DB.Model(&models.Employee{}).Where("email = ?", employee.Email).Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return errors.New("email already in use")
		}
	}

	if employee.Role == "" {
		employee.Role = models.RoleEmployee
	}

	// 密码哈希在模型的BeforeCreate钩子中处理
	return s.DB.Create(employee).Error
}

// 5 UpdateEmployee 更新员工信息
func (s *EmployeeService) UpdateEmployee(id uint, updates map[string]interface{}) (*models.Employee, error) {
	var employee models.Employee
	if err := s.DB.First(&employee, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.New("employee not found")
		}
		return nil, err
	}

	// 密码更新单独哈希
	if password, ok := updates["password"].(string); ok && password != "" {
		hashed, err := models.HashPassword(password)
		if err != nil {
			return nil, err
		}
		updates["password"] = hashed
	}

	if err := s.DB.Model(&employee).Updates(updates).Error; err != nil {
		return nil, err
	}

	return s.GetEmployeeByID(id)
}

// 6 DeleteEmployee 删除员工
func (s *EmployeeService) DeleteEmployee(id uint) error {
	var employee models.Employee
	if err := s.DB.First(&employee, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return errors.New("employee not found")
		}
		return err
	}
	return s.DB.Delete(&employee).Error
}
