package services

import (
	"errors"

	"hrlink-http-service/internal/domain/models"
	"hrlink-http-service/internal/infrastructure/config"

	"gorm.io/gorm"
)

// InterfaceDepartmentService defines the department service interface
type InterfaceDepartmentService interface {
	GetAllDepartments() ([]models.Department, error)
	GetDepartmentByID(id uint) (*models.Department, error)
	CreateDepartment(department *models.Department) error
	UpdateDepartment(id uint, updates map[string]interface{}) (*models.Department, error)
	DeleteDepartment(id uint) error
}

// DepartmentService 提供部门相关的服务
type DepartmentService struct {
	DB     *gorm.DB
	Config *config.Config
}

// NewDepartmentService 创建一个新的部门服务
func NewDepartmentService(db *gorm.DB, cfg *config.Config) InterfaceDepartmentService {
	return &DepartmentService{
		DB:     db,
		Config: cfg,
	}
}

// 1 GetAllDepartments 获取所有部门
func (s *DepartmentService) GetAllDepartments() ([]models.Department, error) {
	var departments []models.Department
	if err := s.DB.Order("name ASC").Find(&departments).Error; err != nil {
		return nil, err
	}
	return departments, nil
}

// 2 GetDepartmentByID 根据ID获取部门
func (s *DepartmentService) GetDepartmentByID(id uint) (*models.Department, error) {
	var department models.Department
	if err := s.DB.Preload("Employees").First(&department, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.New("department not found")
		}
		return nil, err
	}
	return &department, nil
}

// 3 CreateDepartment 创建新部门
func (s *DepartmentService) CreateDepartment(department *models.Department) error {
	var count int64
	if err := s.DB.Model(&models.Department{}).Where("name = ?", department.Name).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return errors.New("department name already in use")
	}
	return s.DB.Create(department).Error
}

// 4 UpdateDepartment 更新部门信息
func (s *DepartmentService) UpdateDepartment(id uint, updates map[string]interface{}) (*models.Department, error) {
	var department models.Department
	if err := s.DB.First(&department, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.New("department not found")
		}
		return nil, err
	}

	if err := s.DB.Model(&department).Updates(updates).Error; err != nil {
		return nil, err
	}
	return &department, nil
}

// 5 DeleteDepartment 删除部门，仍有员工时拒绝
func (s *DepartmentService) DeleteDepartment(id uint) error {
	var department models.Department
	if err := s.DB.First(&department, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return errors.New("department not found")
		}
		return err
	}

	var count int64
	if err := s.DB.Model(&models.Employee{}).Where("department_id = ?", id).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return errors.New("department still has employees")
	}

	return s.DB.Delete(&department).Error
}
