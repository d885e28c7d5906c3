package models

// Department 部门
type Department struct {
	BaseModel
	Name        string `gorm:"type:varchar(100);uniqueIndex;not null" json:"name"`
	Description string `gorm:"type:varchar(255)" json:"description"`

	Employees []Employee `gorm:"foreignKey:DepartmentID" json:"employees,omitempty"`
}
