package models

import "time"

// Roles recognised by the appraisal workflow.
const (
	RoleSuperAdmin             = "SUPER_ADMIN"
	RolePrincipal              = "PRINCIPAL"
	RoleHOD                    = "HOD"
	RoleIQAC                   = "IQAC"
	RoleExamCell               = "EXAM_CELL"
	RoleFaculty                = "FACULTY"
	RoleCounsellingCoordinator = "COUNSELLING_COORDINATOR"
	RoleRnDCoordinator         = "RND_COORDINATOR"
	RoleStudent                = "STUDENT"
)

// User is a directory entry for any actor in the system. The workflow core
// reads it for role, department membership and soft-deletion status; account
// management itself lives outside this service.
type User struct {
	ID           uint        `gorm:"primaryKey" json:"id"`
	Name         string      `gorm:"size:255;not null" json:"name"`
	Email        string      `gorm:"size:255;uniqueIndex;not null" json:"email"`
	Role         string      `gorm:"size:32;not null;index" json:"role"`
	EmployeeID   string      `gorm:"size:32" json:"employee_id"`
	Designation  string      `gorm:"size:128" json:"designation"`
	DepartmentID *uint       `gorm:"index" json:"department_id"`
	IsDeleted    bool        `gorm:"not null;default:false;index" json:"is_deleted"`
	CreatedAt    time.Time   `json:"created_at"`
	UpdatedAt    time.Time   `json:"updated_at"`
	Department   *Department `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL" json:"department,omitempty"`
}

// Department groups faculty under a HOD.
type Department struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Name      string    `gorm:"size:255;not null" json:"name"`
	Code      string    `gorm:"size:16;uniqueIndex;not null" json:"code"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Subject is a taught course; teaching scores reference it.
type Subject struct {
	ID           uint       `gorm:"primaryKey" json:"id"`
	Name         string     `gorm:"size:255;not null" json:"name"`
	Code         string     `gorm:"size:16;uniqueIndex;not null" json:"code"`
	DepartmentID uint       `gorm:"not null;index" json:"department_id"`
	CreatedAt    time.Time  `json:"created_at"`
	Department   Department `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"department"`
}
