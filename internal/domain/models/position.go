package models

// Position 职位
type Position struct {
	BaseModel
	Title        string `gorm:"type:varchar(100);not null" json:"title"`
	DepartmentID *uint  `json:"department_id"`

	Department *Department `gorm:"foreignKey:DepartmentID" json:"department,omitempty"`
	Employees  []Employee  `gorm:"foreignKey:PositionID" json:"employees,omitempty"`
}
