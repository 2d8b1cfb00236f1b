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

type fakeActivityRepo struct {
	activity   models.Activity
	lastFilter repository.ActivityFilter
	created    []models.Activity
	updates    int
	deletes    int
}

func (f *fakeActivityRepo) List(ctx context.Context, filter repository.ActivityFilter) ([]models.Activity, error) {
	f.lastFilter = filter
	return []models.Activity{f.activity}, nil
}

func (f *fakeActivityRepo) GetByID(ctx context.Context, id uint) (models.Activity, error) {
	return f.activity, nil
}

func (f *fakeActivityRepo) Create(ctx context.Context, activity *models.Activity) error {
	activity.ID = uint(len(f.created) + 1)
	f.created = append(f.created, *activity)
	return nil
}

func (f *fakeActivityRepo) Update(ctx context.Context, activity *models.Activity) error {
	f.updates++
	f.activity = *activity
	return nil
}

func (f *fakeActivityRepo) Delete(ctx context.Context, id uint) error {
	f.deletes++
	return nil
}

type fakeAuditRepo struct {
	modifications int64
	entries       []models.AuditLog
}

func (f *fakeAuditRepo) Create(ctx context.Context, entry *models.AuditLog) error {
	f.entries = append(f.entries, *entry)
	return nil
}

func (f *fakeAuditRepo) List(ctx context.Context, filter repository.AuditLogFilter) ([]models.AuditLog, error) {
	return append([]models.AuditLog(nil), f.entries...), nil
}

func (f *fakeAuditRepo) CountModifications(ctx context.Context, targetType string, targetID uint) (int64, error) {
	return f.modifications, nil
}

func newActivityService(repo *fakeActivityRepo, audits *fakeAuditRepo) ActivityService {
	validate := validator.New(validator.WithRequiredStructEnabled())
	return NewActivityService(repo, audits, validate, DefaultWorkflowConfig(), testLogger())
}

func TestActivityCreateStartsPending(t *testing.T) {
	repo := &fakeActivityRepo{}
	svc := newActivityService(repo, &fakeAuditRepo{})

	faculty := Actor{ID: 7, Role: models.RoleFaculty}
	response, err := svc.Create(context.Background(), faculty, dto.ActivityCreateRequest{
		Category:     "EVENTS_ATTENDED",
		Title:        "National FDP on teaching methods",
		AcademicYear: "2025-26",
	})
	require.NoError(t, err)
	require.Equal(t, models.StatusPending, response.Status)
	require.Equal(t, uint(7), response.FacultyID)
	require.Nil(t, response.Marks)
	require.Len(t, repo.created, 1)
}

func TestActivityCreateRejectsNonFaculty(t *testing.T) {
	svc := newActivityService(&fakeActivityRepo{}, &fakeAuditRepo{})

	_, err := svc.Create(context.Background(), hodActor(), dto.ActivityCreateRequest{
		Category:     "EVENTS_ATTENDED",
		Title:        "Workshop",
		AcademicYear: "2025-26",
	})
	require.ErrorIs(t, err, ErrForbidden)
}

func TestActivityCreateSanitizesMarkup(t *testing.T) {
	repo := &fakeActivityRepo{}
	svc := newActivityService(repo, &fakeAuditRepo{})

	faculty := Actor{ID: 7, Role: models.RoleFaculty}
	response, err := svc.Create(context.Background(), faculty, dto.ActivityCreateRequest{
		Category:     "EVENTS_ATTENDED",
		Title:        "Seminar <script>alert(1)</script> series",
		AcademicYear: "2025-26",
	})
	require.NoError(t, err)
	require.NotContains(t, response.Title, "<script>")
}

func TestActivityUpdateOnlyOwnerWhileEditable(t *testing.T) {
	repo := &fakeActivityRepo{activity: models.Activity{
		ID:          1,
		FacultyID:   7,
		Category:    "EVENTS_ATTENDED",
		Title:       "Old title here",
		ReviewState: models.ReviewState{Status: models.StatusPending},
	}}
	svc := newActivityService(repo, &fakeAuditRepo{})

	title := "Updated seminar title"
	otherFaculty := Actor{ID: 8, Role: models.RoleFaculty}
	_, err := svc.Update(context.Background(), otherFaculty, 1, dto.ActivityUpdateRequest{Title: &title})
	require.ErrorIs(t, err, ErrForbidden)
	require.Equal(t, 0, repo.updates)

	owner := Actor{ID: 7, Role: models.RoleFaculty}
	response, err := svc.Update(context.Background(), owner, 1, dto.ActivityUpdateRequest{Title: &title})
	require.NoError(t, err)
	require.Equal(t, title, response.Title)
	require.Equal(t, 1, repo.updates)
}

func TestActivityUpdateBlockedOnceInReview(t *testing.T) {
	repo := &fakeActivityRepo{activity: models.Activity{
		ID:          1,
		FacultyID:   7,
		ReviewState: models.ReviewState{Status: models.StatusUnderReview},
	}}
	svc := newActivityService(repo, &fakeAuditRepo{})

	title := "Too late for edits"
	owner := Actor{ID: 7, Role: models.RoleFaculty}
	_, err := svc.Update(context.Background(), owner, 1, dto.ActivityUpdateRequest{Title: &title})
	require.ErrorIs(t, err, ErrInvalidState)
}

func TestActivityUpdateRejectedResubmits(t *testing.T) {
	marks := 15.0
	repo := &fakeActivityRepo{activity: models.Activity{
		ID:        1,
		FacultyID: 7,
		ReviewState: models.ReviewState{
			Status: models.StatusRejected,
			Marks:  &marks,
		},
	}}
	svc := newActivityService(repo, &fakeAuditRepo{})

	title := "Corrected submission"
	owner := Actor{ID: 7, Role: models.RoleFaculty}
	response, err := svc.Update(context.Background(), owner, 1, dto.ActivityUpdateRequest{Title: &title})
	require.NoError(t, err)
	require.Equal(t, models.StatusPending, response.Status)
	require.Nil(t, response.Marks)
}

func TestActivityUpdateBlockedWhenLocked(t *testing.T) {
	repo := &fakeActivityRepo{activity: models.Activity{
		ID:        1,
		FacultyID: 7,
		ReviewState: models.ReviewState{
			Status:   models.StatusRejected,
			IsLocked: true,
		},
	}}
	svc := newActivityService(repo, &fakeAuditRepo{})

	owner := Actor{ID: 7, Role: models.RoleFaculty}
	err := svc.Delete(context.Background(), owner, 1)
	require.ErrorIs(t, err, ErrLocked)
	require.Equal(t, 0, repo.deletes)
}

func TestActivityListScopesFacultyToOwnRecords(t *testing.T) {
	repo := &fakeActivityRepo{}
	svc := newActivityService(repo, &fakeAuditRepo{})

	faculty := Actor{ID: 7, Role: models.RoleFaculty}
	_, err := svc.List(context.Background(), faculty, dto.ActivityFilter{FacultyID: uintPtr(99)})
	require.NoError(t, err)
	require.Equal(t, uint(7), *repo.lastFilter.FacultyID)
}

func TestActivityListScopesHODToDepartment(t *testing.T) {
	repo := &fakeActivityRepo{}
	svc := newActivityService(repo, &fakeAuditRepo{})

	_, err := svc.List(context.Background(), hodActor(), dto.ActivityFilter{})
	require.NoError(t, err)
	require.Equal(t, uint(2), *repo.lastFilter.DepartmentID)
	require.True(t, repo.lastFilter.ExcludeDeletedFaculty)
}

func TestActivityListScopesCoordinatorToAllowedCategories(t *testing.T) {
	repo := &fakeActivityRepo{}
	svc := newActivityService(repo, &fakeAuditRepo{})

	coordinator := Actor{ID: 40, Role: models.RoleRnDCoordinator}
	_, err := svc.List(context.Background(), coordinator, dto.ActivityFilter{})
	require.NoError(t, err)
	require.Contains(t, repo.lastFilter.Categories, "RESEARCH")
	require.Contains(t, repo.lastFilter.Categories, "PAPERS_PUBLISHED")

	_, err = svc.List(context.Background(), coordinator, dto.ActivityFilter{Category: "COUNSELLING"})
	require.ErrorIs(t, err, ErrForbidden)
}

func TestActivityGetFlagsPostApprovalModification(t *testing.T) {
	repo := &fakeActivityRepo{activity: models.Activity{
		ID:          1,
		FacultyID:   7,
		Category:    "EVENTS_ATTENDED",
		ReviewState: models.ReviewState{Status: models.StatusApproved},
		Faculty:     models.User{ID: 7, DepartmentID: uintPtr(2)},
	}}
	audits := &fakeAuditRepo{modifications: 1}
	svc := newActivityService(repo, audits)

	owner := Actor{ID: 7, Role: models.RoleFaculty}
	response, err := svc.GetByID(context.Background(), owner, 1)
	require.NoError(t, err)
	require.True(t, response.WasModifiedAfterApproval)
}
