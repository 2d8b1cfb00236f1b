package models

import (
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Activity is a faculty-submitted performance entry in one of the scored
// categories. Quantities holds the category-specific raw numbers consumed by
// the marks formula (counts, event breakdowns, flags) as JSON.
type Activity struct {
	ID           uint           `gorm:"primaryKey" json:"id"`
	FacultyID    uint           `gorm:"not null;index" json:"faculty_id"`
	Category     string         `gorm:"size:64;not null;index" json:"category"`
	Title        string         `gorm:"size:255;not null" json:"title"`
	Description  string         `gorm:"type:text" json:"description"`
	AcademicYear string         `gorm:"size:16;not null;index" json:"academic_year"`
	ProofURL     string         `gorm:"size:512" json:"proof_url"`
	Quantities   datatypes.JSON `gorm:"type:json" json:"quantities"`
	ReviewState  `gorm:"embedded"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"-"`
	Faculty      User           `gorm:"foreignKey:FacultyID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"faculty"`
}
