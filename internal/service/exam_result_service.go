package service

import (
	"context"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"

	"github.com/noah-isme/fpams-go-api/internal/dto"
	"github.com/noah-isme/fpams-go-api/internal/models"
	"github.com/noah-isme/fpams-go-api/internal/repository"
)

// ExamResultService manages result sheets uploaded by the exam cell.
type ExamResultService interface {
	List(ctx context.Context, actor Actor, filter repository.ExamResultFilter) ([]dto.ExamResultResponse, error)
	Create(ctx context.Context, actor Actor, payload dto.ExamResultCreateRequest) (dto.ExamResultResponse, error)
	SetVerified(ctx context.Context, actor Actor, id uint, payload dto.ExamResultVerifyRequest) (dto.ExamResultResponse, error)
}

type examResultService struct {
	repo      repository.ExamResultRepository
	validator *validator.Validate
	logger    zerolog.Logger
}

// NewExamResultService constructs the exam result service.
func NewExamResultService(repo repository.ExamResultRepository, validate *validator.Validate, logger zerolog.Logger) ExamResultService {
	return &examResultService{
		repo:      repo,
		validator: validate,
		logger:    logger.With().Str("component", "exam_result_service").Logger(),
	}
}

func (s *examResultService) List(ctx context.Context, actor Actor, filter repository.ExamResultFilter) ([]dto.ExamResultResponse, error) {
	switch actor.Role {
	case models.RoleExamCell, models.RoleHOD, models.RolePrincipal, models.RoleIQAC, models.RoleSuperAdmin:
	default:
		return nil, ErrForbidden
	}

	results, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, err
	}

	return dto.NewExamResultResponseSlice(results), nil
}

func (s *examResultService) Create(ctx context.Context, actor Actor, payload dto.ExamResultCreateRequest) (dto.ExamResultResponse, error) {
	if actor.Role != models.RoleExamCell {
		return dto.ExamResultResponse{}, ErrForbidden
	}

	if err := s.validator.Struct(payload); err != nil {
		return dto.ExamResultResponse{}, err
	}

	result := models.ExamResult{
		SubjectID:      payload.SubjectID,
		UploadedByID:   actor.ID,
		AcademicYear:   payload.AcademicYear,
		PassPercentage: payload.PassPercentage,
		AverageScore:   payload.AverageScore,
		TotalStudents:  payload.TotalStudents,
		FileURL:        payload.FileURL,
	}

	if err := s.repo.Create(ctx, &result); err != nil {
		return dto.ExamResultResponse{}, err
	}

	s.logger.Info().
		Uint("exam_result_id", result.ID).
		Uint("subject_id", result.SubjectID).
		Str("academic_year", result.AcademicYear).
		Msg("exam result uploaded")

	return dto.NewExamResultResponse(result), nil
}

func (s *examResultService) SetVerified(ctx context.Context, actor Actor, id uint, payload dto.ExamResultVerifyRequest) (dto.ExamResultResponse, error) {
	switch actor.Role {
	case models.RoleExamCell, models.RolePrincipal:
	default:
		return dto.ExamResultResponse{}, ErrForbidden
	}

	result, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return dto.ExamResultResponse{}, notFoundOr(err)
	}

	result.Verified = payload.Verified
	if err := s.repo.Update(ctx, &result); err != nil {
		return dto.ExamResultResponse{}, err
	}

	return dto.NewExamResultResponse(result), nil
}
