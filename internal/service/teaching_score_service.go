package service

import (
	"context"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"

	"github.com/noah-isme/fpams-go-api/internal/dto"
	"github.com/noah-isme/fpams-go-api/internal/models"
	"github.com/noah-isme/fpams-go-api/internal/repository"
)

// TeachingScoreService manages teaching effectiveness submissions outside
// the validation workflow.
type TeachingScoreService interface {
	List(ctx context.Context, actor Actor, filter dto.TeachingScoreFilter) ([]dto.TeachingScoreResponse, error)
	GetByID(ctx context.Context, actor Actor, id uint) (dto.TeachingScoreResponse, error)
	Create(ctx context.Context, actor Actor, payload dto.TeachingScoreCreateRequest) (dto.TeachingScoreResponse, error)
	Update(ctx context.Context, actor Actor, id uint, payload dto.TeachingScoreUpdateRequest) (dto.TeachingScoreResponse, error)
	Delete(ctx context.Context, actor Actor, id uint) error
}

type teachingScoreService struct {
	repo      repository.TeachingScoreRepository
	audits    repository.AuditLogRepository
	validator *validator.Validate
	logger    zerolog.Logger
}

// NewTeachingScoreService constructs the teaching score service.
func NewTeachingScoreService(repo repository.TeachingScoreRepository, audits repository.AuditLogRepository, validate *validator.Validate, logger zerolog.Logger) TeachingScoreService {
	return &teachingScoreService{
		repo:      repo,
		audits:    audits,
		validator: validate,
		logger:    logger.With().Str("component", "teaching_score_service").Logger(),
	}
}

func (s *teachingScoreService) List(ctx context.Context, actor Actor, filter dto.TeachingScoreFilter) ([]dto.TeachingScoreResponse, error) {
	repoFilter := repository.TeachingScoreFilter{
		SubjectID:    filter.SubjectID,
		Status:       filter.Status,
		AcademicYear: filter.AcademicYear,
	}

	switch actor.Role {
	case models.RoleFaculty:
		id := actor.ID
		repoFilter.FacultyID = &id

	case models.RoleHOD:
		if actor.DepartmentID == nil {
			return nil, ErrForbidden
		}
		repoFilter.DepartmentID = actor.DepartmentID
		repoFilter.FacultyID = filter.FacultyID
		repoFilter.ExcludeDeletedFaculty = true

	case models.RolePrincipal, models.RoleIQAC, models.RoleSuperAdmin, models.RoleExamCell:
		repoFilter.FacultyID = filter.FacultyID
		repoFilter.DepartmentID = filter.DepartmentID
		repoFilter.ExcludeDeletedFaculty = true

	default:
		return nil, ErrForbidden
	}

	scores, err := s.repo.List(ctx, repoFilter)
	if err != nil {
		return nil, err
	}

	responses := dto.NewTeachingScoreResponseSlice(scores)
	for i := range responses {
		responses[i].WasModifiedAfterApproval = s.wasModified(ctx, responses[i].ID)
	}

	return responses, nil
}

func (s *teachingScoreService) GetByID(ctx context.Context, actor Actor, id uint) (dto.TeachingScoreResponse, error) {
	score, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return dto.TeachingScoreResponse{}, notFoundOr(err)
	}

	switch actor.Role {
	case models.RoleFaculty:
		if score.FacultyID != actor.ID {
			return dto.TeachingScoreResponse{}, ErrForbidden
		}
	case models.RoleHOD:
		if actor.DepartmentID == nil || score.Faculty.DepartmentID == nil ||
			*actor.DepartmentID != *score.Faculty.DepartmentID {
			return dto.TeachingScoreResponse{}, ErrForbidden
		}
	case models.RolePrincipal, models.RoleIQAC, models.RoleSuperAdmin, models.RoleExamCell:
	default:
		return dto.TeachingScoreResponse{}, ErrForbidden
	}

	response := dto.NewTeachingScoreResponse(score)
	response.WasModifiedAfterApproval = s.wasModified(ctx, score.ID)

	return response, nil
}

func (s *teachingScoreService) Create(ctx context.Context, actor Actor, payload dto.TeachingScoreCreateRequest) (dto.TeachingScoreResponse, error) {
	if actor.Role != models.RoleFaculty {
		return dto.TeachingScoreResponse{}, ErrForbidden
	}

	if err := s.validator.Struct(payload); err != nil {
		return dto.TeachingScoreResponse{}, err
	}

	score := models.TeachingScore{
		FacultyID:    actor.ID,
		SubjectID:    payload.SubjectID,
		AcademicYear: payload.AcademicYear,
		Score:        payload.Score,
		ProofURL:     payload.ProofURL,
		ReviewState:  models.ReviewState{Status: models.StatusPending},
	}

	if err := s.repo.Create(ctx, &score); err != nil {
		return dto.TeachingScoreResponse{}, err
	}

	s.logger.Info().
		Uint("teaching_score_id", score.ID).
		Uint("faculty_id", actor.ID).
		Uint("subject_id", score.SubjectID).
		Msg("teaching score submitted")

	return dto.NewTeachingScoreResponse(score), nil
}

func (s *teachingScoreService) Update(ctx context.Context, actor Actor, id uint, payload dto.TeachingScoreUpdateRequest) (dto.TeachingScoreResponse, error) {
	if err := s.validator.Struct(payload); err != nil {
		return dto.TeachingScoreResponse{}, err
	}

	score, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return dto.TeachingScoreResponse{}, notFoundOr(err)
	}

	if err := s.authorizeOwnerEdit(actor, score.FacultyID, score.ReviewState); err != nil {
		return dto.TeachingScoreResponse{}, err
	}

	if payload.SubjectID != nil {
		score.SubjectID = *payload.SubjectID
	}
	if payload.AcademicYear != nil {
		score.AcademicYear = *payload.AcademicYear
	}
	if payload.Score != nil {
		score.Score = *payload.Score
	}
	if payload.ProofURL != nil {
		score.ProofURL = *payload.ProofURL
	}

	// Editing a rejected submission resubmits it.
	score.Status = models.StatusPending
	score.Marks = nil
	score.ValidatedBy = nil

	if err := s.repo.Update(ctx, &score); err != nil {
		return dto.TeachingScoreResponse{}, err
	}

	return dto.NewTeachingScoreResponse(score), nil
}

func (s *teachingScoreService) Delete(ctx context.Context, actor Actor, id uint) error {
	score, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return notFoundOr(err)
	}

	if err := s.authorizeOwnerEdit(actor, score.FacultyID, score.ReviewState); err != nil {
		return err
	}

	return s.repo.Delete(ctx, id)
}

func (s *teachingScoreService) authorizeOwnerEdit(actor Actor, ownerID uint, state models.ReviewState) error {
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

func (s *teachingScoreService) wasModified(ctx context.Context, scoreID uint) bool {
	count, err := s.audits.CountModifications(ctx, models.AuditTargetTeachingScore, scoreID)
	if err != nil {
		s.logger.Warn().Err(err).Uint("teaching_score_id", scoreID).Msg("could not count modifications")
		return false
	}

	return count > 0
}
