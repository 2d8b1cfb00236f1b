package dto

import (
	"encoding/json"
	"time"

	"github.com/noah-isme/fpams-go-api/internal/marks"
	"github.com/noah-isme/fpams-go-api/internal/models"
)

// ActivityCreateRequest is the faculty payload for a new activity.
type ActivityCreateRequest struct {
	Category     string      `json:"category" validate:"required"`
	Title        string      `json:"title" validate:"required,min=3,max=255"`
	Description  string      `json:"description" validate:"omitempty,max=4000"`
	AcademicYear string      `json:"academic_year" validate:"required,min=4,max=16"`
	ProofURL     string      `json:"proof_url" validate:"omitempty,url"`
	Quantities   marks.Input `json:"quantities"`
}

// ActivityUpdateRequest edits an activity still owned by its faculty.
type ActivityUpdateRequest struct {
	Title        *string      `json:"title" validate:"omitempty,min=3,max=255"`
	Description  *string      `json:"description" validate:"omitempty,max=4000"`
	AcademicYear *string      `json:"academic_year" validate:"omitempty,min=4,max=16"`
	ProofURL     *string      `json:"proof_url" validate:"omitempty,url"`
	Quantities   *marks.Input `json:"quantities"`
}

// ActivityFilter describes query string filters for listing activities.
type ActivityFilter struct {
	FacultyID    *uint  `query:"faculty_id"`
	DepartmentID *uint  `query:"department_id"`
	Category     string `query:"category"`
	Status       string `query:"status" validate:"omitempty,oneof=PENDING UNDER_REVIEW APPROVED REJECTED"`
	AcademicYear string `query:"academic_year"`
}

// ActivityResponse is returned to API clients when viewing activities.
type ActivityResponse struct {
	ID                        uint        `json:"id"`
	FacultyID                 uint        `json:"faculty_id"`
	Category                  string      `json:"category"`
	Title                     string      `json:"title"`
	Description               string      `json:"description"`
	AcademicYear              string      `json:"academic_year"`
	ProofURL                  string      `json:"proof_url"`
	Quantities                marks.Input `json:"quantities"`
	Status                    string      `json:"status"`
	Marks                     *float64    `json:"marks"`
	MaxMarks                  float64     `json:"max_marks"`
	IsLocked                  bool        `json:"is_locked"`
	ValidatedBy               *uint       `json:"validated_by"`
	HODComment                string      `json:"hod_comment"`
	PrincipalComment          string      `json:"principal_comment"`
	CoordinatorComment        string      `json:"coordinator_comment"`
	ModificationReason        string      `json:"modification_reason"`
	LastModifiedBy            *uint       `json:"last_modified_by"`
	LastModifiedAt            *time.Time  `json:"last_modified_at"`
	WasModifiedAfterApproval  bool        `json:"was_modified_after_approval"`
	CreatedAt                 time.Time   `json:"created_at"`
	UpdatedAt                 time.Time   `json:"updated_at"`
	Faculty                   FacultyLite `json:"faculty"`
}

// FacultyLite summarizes a faculty member without exposing directory data.
type FacultyLite struct {
	ID           uint   `json:"id"`
	Name         string `json:"name"`
	Email        string `json:"email"`
	DepartmentID *uint  `json:"department_id"`
}

// NewActivityResponse converts an Activity model into a DTO.
func NewActivityResponse(model models.Activity) ActivityResponse {
	response := ActivityResponse{
		ID:                 model.ID,
		FacultyID:          model.FacultyID,
		Category:           model.Category,
		Title:              model.Title,
		Description:        model.Description,
		AcademicYear:       model.AcademicYear,
		ProofURL:           model.ProofURL,
		Status:             model.Status,
		Marks:              model.Marks,
		MaxMarks:           marks.MaxMarks(marks.Category(model.Category)),
		IsLocked:           model.IsLocked,
		ValidatedBy:        model.ValidatedBy,
		HODComment:         model.HODComment,
		PrincipalComment:   model.PrincipalComment,
		CoordinatorComment: model.CoordinatorComment,
		ModificationReason: model.ModificationReason,
		LastModifiedBy:     model.LastModifiedBy,
		LastModifiedAt:     model.LastModifiedAt,
		CreatedAt:          model.CreatedAt,
		UpdatedAt:          model.UpdatedAt,
	}

	if len(model.Quantities) > 0 {
		_ = json.Unmarshal(model.Quantities, &response.Quantities)
	}

	if model.Faculty.ID != 0 {
		response.Faculty = FacultyLite{
			ID:           model.Faculty.ID,
			Name:         model.Faculty.Name,
			Email:        model.Faculty.Email,
			DepartmentID: model.Faculty.DepartmentID,
		}
	}

	return response
}

// NewActivityResponseSlice converts activity models into DTOs.
func NewActivityResponseSlice(activities []models.Activity) []ActivityResponse {
	responses := make([]ActivityResponse, 0, len(activities))
	for _, activity := range activities {
		responses = append(responses, NewActivityResponse(activity))
	}

	return responses
}
