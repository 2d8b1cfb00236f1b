package models

import "time"

// ExamResult is a subject-level result sheet uploaded by the exam cell. The
// verified flag marks it as usable evidence when validating teaching scores.
type ExamResult struct {
	ID             uint      `gorm:"primaryKey" json:"id"`
	SubjectID      uint      `gorm:"not null;index" json:"subject_id"`
	UploadedByID   uint      `gorm:"not null" json:"uploaded_by_id"`
	AcademicYear   string    `gorm:"size:16;not null;index" json:"academic_year"`
	PassPercentage float64   `gorm:"not null" json:"pass_percentage"`
	AverageScore   float64   `gorm:"not null" json:"average_score"`
	TotalStudents  int       `gorm:"not null" json:"total_students"`
	FileURL        string    `gorm:"size:512" json:"file_url"`
	Verified       bool      `gorm:"not null;default:false" json:"verified"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
	Subject        Subject   `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"subject"`
	UploadedBy     User      `gorm:"foreignKey:UploadedByID" json:"uploaded_by"`
}
