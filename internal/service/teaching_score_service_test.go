package service

import (
	"context"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/fpams-go-api/internal/dto"
	"github.com/noah-isme/fpams-go-api/internal/models"
	"github.com/noah-isme/fpams-go-api/internal/repository"
)

type fakeTeachingScoreRepo struct {
	score      models.TeachingScore
	lastFilter repository.TeachingScoreFilter
	created    int
	updates    int
}

func (f *fakeTeachingScoreRepo) List(ctx context.Context, filter repository.TeachingScoreFilter) ([]models.TeachingScore, error) {
	f.lastFilter = filter
	return []models.TeachingScore{f.score}, nil
}

func (f *fakeTeachingScoreRepo) GetByID(ctx context.Context, id uint) (models.TeachingScore, error) {
	return f.score, nil
}

func (f *fakeTeachingScoreRepo) Create(ctx context.Context, score *models.TeachingScore) error {
	f.created++
	score.ID = 1
	return nil
}

func (f *fakeTeachingScoreRepo) Update(ctx context.Context, score *models.TeachingScore) error {
	f.updates++
	f.score = *score
	return nil
}

func (f *fakeTeachingScoreRepo) Delete(ctx context.Context, id uint) error {
	return nil
}

func newTeachingScoreService(repo *fakeTeachingScoreRepo) TeachingScoreService {
	validate := validator.New(validator.WithRequiredStructEnabled())
	return NewTeachingScoreService(repo, &fakeAuditRepo{}, validate, testLogger())
}

func TestTeachingScoreCreateStartsPending(t *testing.T) {
	repo := &fakeTeachingScoreRepo{}
	svc := newTeachingScoreService(repo)

	faculty := Actor{ID: 7, Role: models.RoleFaculty}
	response, err := svc.Create(context.Background(), faculty, dto.TeachingScoreCreateRequest{
		SubjectID:    3,
		AcademicYear: "2025-26",
		Score:        85,
	})
	require.NoError(t, err)
	require.Equal(t, models.StatusPending, response.Status)
	require.Equal(t, 85.0, response.Score)
	require.Equal(t, 1, repo.created)
}

func TestTeachingScoreCreateValidatesRange(t *testing.T) {
	svc := newTeachingScoreService(&fakeTeachingScoreRepo{})

	_, err := svc.Create(context.Background(), Actor{ID: 7, Role: models.RoleFaculty}, dto.TeachingScoreCreateRequest{
		SubjectID:    3,
		AcademicYear: "2025-26",
		Score:        120,
	})
	require.Error(t, err)
}

func TestTeachingScoreUpdateBlockedAfterApproval(t *testing.T) {
	repo := &fakeTeachingScoreRepo{score: models.TeachingScore{
		ID:          1,
		FacultyID:   7,
		ReviewState: models.ReviewState{Status: models.StatusApproved},
	}}
	svc := newTeachingScoreService(repo)

	score := 90.0
	owner := Actor{ID: 7, Role: models.RoleFaculty}
	_, err := svc.Update(context.Background(), owner, 1, dto.TeachingScoreUpdateRequest{Score: &score})
	require.ErrorIs(t, err, ErrInvalidState)
	require.Equal(t, 0, repo.updates)
}

func TestTeachingScoreListPinsFacultyScope(t *testing.T) {
	repo := &fakeTeachingScoreRepo{}
	svc := newTeachingScoreService(repo)

	faculty := Actor{ID: 7, Role: models.RoleFaculty}
	_, err := svc.List(context.Background(), faculty, dto.TeachingScoreFilter{FacultyID: uintPtr(99)})
	require.NoError(t, err)
	require.Equal(t, uint(7), *repo.lastFilter.FacultyID)

	_, err = svc.List(context.Background(), Actor{ID: 50, Role: models.RoleStudent}, dto.TeachingScoreFilter{})
	require.ErrorIs(t, err, ErrForbidden)
}
