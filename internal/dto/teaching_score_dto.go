package dto

import (
	"time"

	"github.com/noah-isme/fpams-go-api/internal/marks"
	"github.com/noah-isme/fpams-go-api/internal/models"
)

// TeachingScoreCreateRequest is the faculty payload for a new teaching score.
type TeachingScoreCreateRequest struct {
	SubjectID    uint    `json:"subject_id" validate:"required,gt=0"`
	AcademicYear string  `json:"academic_year" validate:"required,min=4,max=16"`
	Score        float64 `json:"score" validate:"required,gte=0,lte=100"`
	ProofURL     string  `json:"proof_url" validate:"omitempty,url"`
}

// TeachingScoreUpdateRequest edits a teaching score still owned by faculty.
type TeachingScoreUpdateRequest struct {
	SubjectID    *uint    `json:"subject_id" validate:"omitempty,gt=0"`
	AcademicYear *string  `json:"academic_year" validate:"omitempty,min=4,max=16"`
	Score        *float64 `json:"score" validate:"omitempty,gte=0,lte=100"`
	ProofURL     *string  `json:"proof_url" validate:"omitempty,url"`
}

// TeachingScoreFilter describes query string filters for teaching scores.
type TeachingScoreFilter struct {
	FacultyID    *uint  `query:"faculty_id"`
	SubjectID    *uint  `query:"subject_id"`
	DepartmentID *uint  `query:"department_id"`
	Status       string `query:"status" validate:"omitempty,oneof=PENDING UNDER_REVIEW APPROVED REJECTED"`
	AcademicYear string `query:"academic_year"`
}

// SubjectLite summarizes a subject in teaching score responses.
type SubjectLite struct {
	ID   uint   `json:"id"`
	Name string `json:"name"`
	Code string `json:"code"`
}

// TeachingScoreResponse is returned to API clients when viewing scores.
type TeachingScoreResponse struct {
	ID                       uint        `json:"id"`
	FacultyID                uint        `json:"faculty_id"`
	SubjectID                uint        `json:"subject_id"`
	AcademicYear             string      `json:"academic_year"`
	Score                    float64     `json:"score"`
	ProofURL                 string      `json:"proof_url"`
	Status                   string      `json:"status"`
	Marks                    *float64    `json:"marks"`
	MaxMarks                 float64     `json:"max_marks"`
	IsLocked                 bool        `json:"is_locked"`
	ValidatedBy              *uint       `json:"validated_by"`
	HODComment               string      `json:"hod_comment"`
	PrincipalComment         string      `json:"principal_comment"`
	ModificationReason       string      `json:"modification_reason"`
	LastModifiedBy           *uint       `json:"last_modified_by"`
	LastModifiedAt           *time.Time  `json:"last_modified_at"`
	WasModifiedAfterApproval bool        `json:"was_modified_after_approval"`
	CreatedAt                time.Time   `json:"created_at"`
	UpdatedAt                time.Time   `json:"updated_at"`
	Faculty                  FacultyLite `json:"faculty"`
	Subject                  SubjectLite `json:"subject"`
}

// NewTeachingScoreResponse converts a TeachingScore model into a DTO.
func NewTeachingScoreResponse(model models.TeachingScore) TeachingScoreResponse {
	response := TeachingScoreResponse{
		ID:                 model.ID,
		FacultyID:          model.FacultyID,
		SubjectID:          model.SubjectID,
		AcademicYear:       model.AcademicYear,
		Score:              model.Score,
		ProofURL:           model.ProofURL,
		Status:             model.Status,
		Marks:              model.Marks,
		MaxMarks:           marks.MaxMarks(marks.CategoryTeachingScore),
		IsLocked:           model.IsLocked,
		ValidatedBy:        model.ValidatedBy,
		HODComment:         model.HODComment,
		PrincipalComment:   model.PrincipalComment,
		ModificationReason: model.ModificationReason,
		LastModifiedBy:     model.LastModifiedBy,
		LastModifiedAt:     model.LastModifiedAt,
		CreatedAt:          model.CreatedAt,
		UpdatedAt:          model.UpdatedAt,
	}

	if model.Faculty.ID != 0 {
		response.Faculty = FacultyLite{
			ID:           model.Faculty.ID,
			Name:         model.Faculty.Name,
			Email:        model.Faculty.Email,
			DepartmentID: model.Faculty.DepartmentID,
		}
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

// NewTeachingScoreResponseSlice converts teaching score models into DTOs.
func NewTeachingScoreResponseSlice(scores []models.TeachingScore) []TeachingScoreResponse {
	responses := make([]TeachingScoreResponse, 0, len(scores))
	for _, score := range scores {
		responses = append(responses, NewTeachingScoreResponse(score))
	}

	return responses
}
