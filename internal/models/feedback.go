package models

import "time"

// Feedback is a student rating for a faculty member on one subject. Ratings
// feed the avgFeedback component of aggregation; the submission flow itself
// is outside the workflow core.
type Feedback struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	StudentID   uint      `gorm:"not null;index" json:"student_id"`
	FacultyID   uint      `gorm:"not null;index" json:"faculty_id"`
	SubjectID   uint      `gorm:"not null;index" json:"subject_id"`
	Rating      int       `gorm:"not null" json:"rating"`
	Comment     string    `gorm:"type:text" json:"comment"`
	IsAnonymous bool      `gorm:"not null;default:false" json:"is_anonymous"`
	CreatedAt   time.Time `json:"created_at"`
}
