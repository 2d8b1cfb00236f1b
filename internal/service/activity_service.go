package service

import (
	"context"
	"encoding/json"

	"github.com/go-playground/validator/v10"
	"github.com/microcosm-cc/bluemonday"
	"github.com/rs/zerolog"

	"github.com/noah-isme/fpams-go-api/internal/dto"
	"github.com/noah-isme/fpams-go-api/internal/models"
	"github.com/noah-isme/fpams-go-api/internal/repository"
)

// ActivityService manages faculty activity submissions outside the
// validation workflow: creation, owner edits and role-scoped reads.
type ActivityService interface {
	List(ctx context.Context, actor Actor, filter dto.ActivityFilter) ([]dto.ActivityResponse, error)
	GetByID(ctx context.Context, actor Actor, id uint) (dto.ActivityResponse, error)
	Create(ctx context.Context, actor Actor, payload dto.ActivityCreateRequest) (dto.ActivityResponse, error)
	Update(ctx context.Context, actor Actor, id uint, payload dto.ActivityUpdateRequest) (dto.ActivityResponse, error)
	Delete(ctx context.Context, actor Actor, id uint) error
}

type activityService struct {
	repo      repository.ActivityRepository
	audits    repository.AuditLogRepository
	validator *validator.Validate
	config    WorkflowConfig
	sanitizer *bluemonday.Policy
	logger    zerolog.Logger
}

// NewActivityService constructs the activity service.
func NewActivityService(repo repository.ActivityRepository, audits repository.AuditLogRepository, validate *validator.Validate, config WorkflowConfig, logger zerolog.Logger) ActivityService {
	if config.CoordinatorCategories == nil {
		config = DefaultWorkflowConfig()
	}
	return &activityService{
		repo:      repo,
		audits:    audits,
		validator: validate,
		config:    config,
		sanitizer: bluemonday.StrictPolicy(),
		logger:    logger.With().Str("component", "activity_service").Logger(),
	}
}

func (s *activityService) List(ctx context.Context, actor Actor, filter dto.ActivityFilter) ([]dto.ActivityResponse, error) {
	repoFilter, err := s.scopeFilter(actor, filter)
	if err != nil {
		return nil, err
	}

	activities, err := s.repo.List(ctx, repoFilter)
	if err != nil {
		return nil, err
	}

	responses := dto.NewActivityResponseSlice(activities)
	for i := range responses {
		responses[i].WasModifiedAfterApproval = s.wasModified(ctx, responses[i].ID)
	}

	return responses, nil
}

// scopeFilter narrows a caller-supplied filter to what the actor's role may
// see. Faculty are pinned to their own submissions, HODs to their
// department, coordinators to their category allowlist.
func (s *activityService) scopeFilter(actor Actor, filter dto.ActivityFilter) (repository.ActivityFilter, error) {
	repoFilter := repository.ActivityFilter{
		Category:     filter.Category,
		Status:       filter.Status,
		AcademicYear: filter.AcademicYear,
	}

	switch actor.Role {
	case models.RoleFaculty:
		id := actor.ID
		repoFilter.FacultyID = &id

	case models.RoleHOD:
		if actor.DepartmentID == nil {
			return repository.ActivityFilter{}, ErrForbidden
		}
		repoFilter.DepartmentID = actor.DepartmentID
		repoFilter.FacultyID = filter.FacultyID
		repoFilter.ExcludeDeletedFaculty = true

	case models.RolePrincipal, models.RoleIQAC, models.RoleSuperAdmin:
		repoFilter.FacultyID = filter.FacultyID
		repoFilter.DepartmentID = filter.DepartmentID
		repoFilter.ExcludeDeletedFaculty = true

	default:
		allowed, ok := s.config.CoordinatorCategories[actor.Role]
		if !ok {
			return repository.ActivityFilter{}, ErrForbidden
		}
		repoFilter.Categories = allowed
		repoFilter.FacultyID = filter.FacultyID
		repoFilter.ExcludeDeletedFaculty = true
		if filter.Category != "" && !contains(allowed, filter.Category) {
			return repository.ActivityFilter{}, ErrForbidden
		}
	}

	return repoFilter, nil
}

func (s *activityService) GetByID(ctx context.Context, actor Actor, id uint) (dto.ActivityResponse, error) {
	activity, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return dto.ActivityResponse{}, notFoundOr(err)
	}

	if err := s.authorizeRead(actor, activity); err != nil {
		return dto.ActivityResponse{}, err
	}

	response := dto.NewActivityResponse(activity)
	response.WasModifiedAfterApproval = s.wasModified(ctx, activity.ID)

	return response, nil
}

func (s *activityService) authorizeRead(actor Actor, activity models.Activity) error {
	switch actor.Role {
	case models.RoleFaculty:
		if activity.FacultyID != actor.ID {
			return ErrForbidden
		}
	case models.RoleHOD:
		if actor.DepartmentID == nil || activity.Faculty.DepartmentID == nil ||
			*actor.DepartmentID != *activity.Faculty.DepartmentID {
			return ErrForbidden
		}
	case models.RolePrincipal, models.RoleIQAC, models.RoleSuperAdmin:
		return nil
	default:
		allowed, ok := s.config.CoordinatorCategories[actor.Role]
		if !ok || !contains(allowed, activity.Category) {
			return ErrForbidden
		}
	}

	return nil
}

func (s *activityService) Create(ctx context.Context, actor Actor, payload dto.ActivityCreateRequest) (dto.ActivityResponse, error) {
	if actor.Role != models.RoleFaculty {
		return dto.ActivityResponse{}, ErrForbidden
	}

	if err := s.validator.Struct(payload); err != nil {
		return dto.ActivityResponse{}, err
	}

	quantities, err := json.Marshal(payload.Quantities)
	if err != nil {
		return dto.ActivityResponse{}, err
	}

	activity := models.Activity{
		FacultyID:    actor.ID,
		Category:     payload.Category,
		Title:        s.sanitizer.Sanitize(payload.Title),
		Description:  s.sanitizer.Sanitize(payload.Description),
		AcademicYear: payload.AcademicYear,
		ProofURL:     payload.ProofURL,
		Quantities:   quantities,
		ReviewState:  models.ReviewState{Status: models.StatusPending},
	}

	if err := s.repo.Create(ctx, &activity); err != nil {
		return dto.ActivityResponse{}, err
	}

	s.logger.Info().
		Uint("activity_id", activity.ID).
		Uint("faculty_id", actor.ID).
		Str("category", activity.Category).
		Msg("activity submitted")

	return dto.NewActivityResponse(activity), nil
}

func (s *activityService) Update(ctx context.Context, actor Actor, id uint, payload dto.ActivityUpdateRequest) (dto.ActivityResponse, error) {
	if err := s.validator.Struct(payload); err != nil {
		return dto.ActivityResponse{}, err
	}

	activity, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return dto.ActivityResponse{}, notFoundOr(err)
	}

	if err := s.authorizeOwnerEdit(actor, activity.FacultyID, activity.ReviewState); err != nil {
		return dto.ActivityResponse{}, err
	}

	if payload.Title != nil {
		activity.Title = s.sanitizer.Sanitize(*payload.Title)
	}
	if payload.Description != nil {
		activity.Description = s.sanitizer.Sanitize(*payload.Description)
	}
	if payload.AcademicYear != nil {
		activity.AcademicYear = *payload.AcademicYear
	}
	if payload.ProofURL != nil {
		activity.ProofURL = *payload.ProofURL
	}
	if payload.Quantities != nil {
		quantities, err := json.Marshal(payload.Quantities)
		if err != nil {
			return dto.ActivityResponse{}, err
		}
		activity.Quantities = quantities
	}

	// Editing a rejected submission resubmits it.
	activity.Status = models.StatusPending
	activity.Marks = nil
	activity.ValidatedBy = nil

	if err := s.repo.Update(ctx, &activity); err != nil {
		return dto.ActivityResponse{}, err
	}

	return dto.NewActivityResponse(activity), nil
}

func (s *activityService) Delete(ctx context.Context, actor Actor, id uint) error {
	activity, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return notFoundOr(err)
	}

	if err := s.authorizeOwnerEdit(actor, activity.FacultyID, activity.ReviewState); err != nil {
		return err
	}

	return s.repo.Delete(ctx, id)
}

// authorizeOwnerEdit allows edits only by the owning faculty member, only
// while the submission has not entered review, and never under a lock.
func (s *activityService) authorizeOwnerEdit(actor Actor, ownerID uint, state models.ReviewState) error {
	if actor.Role != models.RoleFaculty || actor.ID != ownerID {
		return ErrForbidden
	}
	if state.IsLocked {
		return ErrLocked
	}
	if !state.IsEditableByOwner() {
		return ErrInvalidState
	}

	return nil
}

func (s *activityService) wasModified(ctx context.Context, activityID uint) bool {
	count, err := s.audits.CountModifications(ctx, models.AuditTargetActivity, activityID)
	if err != nil {
		s.logger.Warn().Err(err).Uint("activity_id", activityID).Msg("could not count modifications")
		return false
	}

	return count > 0
}

func contains(values []string, value string) bool {
	for _, v := range values {
		if v == value {
			return true
		}
	}
	return false
}
