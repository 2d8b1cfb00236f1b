package models

import (
	"time"

	"gorm.io/gorm"
)

// TeachingScore is a faculty-submitted pass percentage for one subject and
// academic year. The exam cell verifies the percentage before HOD or
// Principal validation converts it into marks.
type TeachingScore struct {
	ID           uint           `gorm:"primaryKey" json:"id"`
	FacultyID    uint           `gorm:"not null;index" json:"faculty_id"`
	SubjectID    uint           `gorm:"not null;index" json:"subject_id"`
	AcademicYear string         `gorm:"size:16;not null;index" json:"academic_year"`
	Score        float64        `gorm:"not null" json:"score"`
	ProofURL     string         `gorm:"size:512" json:"proof_url"`
	ReviewState  `gorm:"embedded"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"-"`
	Faculty      User           `gorm:"foreignKey:FacultyID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"faculty"`
	Subject      Subject        `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"subject"`
}
