package dto

import (
	"time"

	"github.com/noah-isme/fpams-go-api/internal/models"
)

// ExamResultCreateRequest is the exam cell payload for a result upload.
type ExamResultCreateRequest struct {
	SubjectID      uint    `json:"subject_id" validate:"required,gt=0"`
	AcademicYear   string  `json:"academic_year" validate:"required,min=4,max=16"`
	PassPercentage float64 `json:"pass_percentage" validate:"gte=0,lte=100"`
	AverageScore   float64 `json:"average_score" validate:"gte=0,lte=100"`
	TotalStudents  int     `json:"total_students" validate:"required,gt=0"`
	FileURL        string  `json:"file_url" validate:"omitempty,url"`
}

// ExamResultVerifyRequest toggles verification on an uploaded result.
type ExamResultVerifyRequest struct {
	Verified bool `json:"verified"`
}

// ExamResultResponse is returned to API clients when viewing exam results.
type ExamResultResponse struct {
	ID             uint        `json:"id"`
	SubjectID      uint        `json:"subject_id"`
	AcademicYear   string      `json:"academic_year"`
	PassPercentage float64     `json:"pass_percentage"`
	AverageScore   float64     `json:"average_score"`
	TotalStudents  int         `json:"total_students"`
	FileURL        string      `json:"file_url"`
	Verified       bool        `json:"verified"`
	UploadedByID   uint        `json:"uploaded_by_id"`
	UploadedByName string      `json:"uploaded_by_name"`
	CreatedAt      time.Time   `json:"created_at"`
	Subject        SubjectLite `json:"subject"`
}

// NewExamResultResponse converts an ExamResult model into a DTO.
func NewExamResultResponse(model models.ExamResult) ExamResultResponse {
	response := ExamResultResponse{
		ID:             model.ID,
		SubjectID:      model.SubjectID,
		AcademicYear:   model.AcademicYear,
		PassPercentage: model.PassPercentage,
		AverageScore:   model.AverageScore,
		TotalStudents:  model.TotalStudents,
		FileURL:        model.FileURL,
		Verified:       model.Verified,
		UploadedByID:   model.UploadedByID,
		UploadedByName: model.UploadedBy.Name,
		CreatedAt:      model.CreatedAt,
	}

	if model.Subject.ID != 0 {
		response.Subject = SubjectLite{
			ID:   model.Subject.ID,
			Name: model.Subject.Name,
			Code: model.Subject.Code,
		}
	}

	return response
}

// NewExamResultResponseSlice converts exam result models into DTOs.
func NewExamResultResponseSlice(results []models.ExamResult) []ExamResultResponse {
	responses := make([]ExamResultResponse, 0, len(results))
	for _, result := range results {
		responses = append(responses, NewExamResultResponse(result))
	}

	return responses
}
