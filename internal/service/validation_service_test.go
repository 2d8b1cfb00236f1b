package service

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/noah-isme/fpams-go-api/internal/dto"
	"github.com/noah-isme/fpams-go-api/internal/models"
)

type fakeWorkflowRepo struct {
	activity    models.Activity
	score       models.TeachingScore
	activityErr error
	scoreErr    error
	audits      []models.AuditLog
	saveCalls   int
}

func (f *fakeWorkflowRepo) GetActivity(ctx context.Context, id uint) (models.Activity, error) {
	if f.activityErr != nil {
		return models.Activity{}, f.activityErr
	}
	return f.activity, nil
}

func (f *fakeWorkflowRepo) GetTeachingScore(ctx context.Context, id uint) (models.TeachingScore, error) {
	if f.scoreErr != nil {
		return models.TeachingScore{}, f.scoreErr
	}
	return f.score, nil
}

func (f *fakeWorkflowRepo) SaveActivityWithAudit(ctx context.Context, activity *models.Activity, entry *models.AuditLog) error {
	f.saveCalls++
	f.activity = *activity
	if entry != nil {
		f.audits = append(f.audits, *entry)
	}
	return nil
}

func (f *fakeWorkflowRepo) SaveTeachingScoreWithAudit(ctx context.Context, score *models.TeachingScore, entry *models.AuditLog) error {
	f.saveCalls++
	f.score = *score
	if entry != nil {
		f.audits = append(f.audits, *entry)
	}
	return nil
}

func newValidationService(repo *fakeWorkflowRepo) ValidationService {
	validate := validator.New(validator.WithRequiredStructEnabled())
	return NewValidationService(repo, validate, DefaultWorkflowConfig(), testLogger())
}

func pendingTeachingScore() models.TeachingScore {
	return models.TeachingScore{
		ID:           1,
		FacultyID:    7,
		SubjectID:    3,
		AcademicYear: "2025-26",
		Score:        85,
		ReviewState:  models.ReviewState{Status: models.StatusPending},
		Faculty:      models.User{ID: 7, Role: models.RoleFaculty, DepartmentID: uintPtr(2)},
	}
}

func hodActor() Actor {
	return Actor{ID: 20, Role: models.RoleHOD, DepartmentID: uintPtr(2)}
}

func principalActor() Actor {
	return Actor{ID: 30, Role: models.RolePrincipal}
}

func TestTransitionVerifyMovesPendingToUnderReview(t *testing.T) {
	repo := &fakeWorkflowRepo{score: pendingTeachingScore()}
	svc := newValidationService(repo)

	examCell := Actor{ID: 15, Role: models.RoleExamCell}
	response, err := svc.Transition(context.Background(), dto.KindTeachingScore, 1, examCell, dto.TransitionRequest{
		Action: dto.ActionVerify,
		Score:  floatPtr(88),
	})
	require.NoError(t, err)
	require.Equal(t, models.StatusUnderReview, response.TeachingScore.Status)
	require.Equal(t, 88.0, response.TeachingScore.Score)
	require.Equal(t, uint(15), *response.TeachingScore.ValidatedBy)

	require.Len(t, repo.audits, 1)
	require.Equal(t, models.AuditScoreVerify, repo.audits[0].ActionType)
	require.Equal(t, models.AuditTargetTeachingScore, repo.audits[0].TargetType)
}

func TestTransitionVerifyRequiresPendingStatus(t *testing.T) {
	score := pendingTeachingScore()
	score.Status = models.StatusUnderReview
	repo := &fakeWorkflowRepo{score: score}
	svc := newValidationService(repo)

	_, err := svc.Transition(context.Background(), dto.KindTeachingScore, 1, Actor{ID: 15, Role: models.RoleExamCell}, dto.TransitionRequest{
		Action: dto.ActionVerify,
	})
	require.ErrorIs(t, err, ErrInvalidState)
	require.Equal(t, 0, repo.saveCalls)
}

func TestTransitionVerifyRejectsActivities(t *testing.T) {
	repo := &fakeWorkflowRepo{activity: models.Activity{
		ID:          1,
		FacultyID:   7,
		Category:    "EVENTS_ATTENDED",
		ReviewState: models.ReviewState{Status: models.StatusPending},
		Faculty:     models.User{ID: 7, DepartmentID: uintPtr(2)},
	}}
	svc := newValidationService(repo)

	_, err := svc.Transition(context.Background(), dto.KindActivity, 1, Actor{ID: 15, Role: models.RoleExamCell}, dto.TransitionRequest{
		Action: dto.ActionVerify,
	})
	require.ErrorIs(t, err, ErrInvalidState)
}

func TestTransitionApproveTeachingComputesMarks(t *testing.T) {
	score := pendingTeachingScore()
	score.Status = models.StatusUnderReview
	repo := &fakeWorkflowRepo{score: score}
	svc := newValidationService(repo)

	response, err := svc.Transition(context.Background(), dto.KindTeachingScore, 1, hodActor(), dto.TransitionRequest{
		Action:  dto.ActionApprove,
		Comment: "verified against result sheet",
	})
	require.NoError(t, err)
	require.Equal(t, models.StatusApproved, response.TeachingScore.Status)
	require.Equal(t, 68.0, *response.TeachingScore.Marks)
	require.Equal(t, "verified against result sheet", response.TeachingScore.HODComment)

	require.Len(t, repo.audits, 1)
	require.Equal(t, models.AuditScoreApprove, repo.audits[0].ActionType)
}

func TestTransitionRejectKeepsMarks(t *testing.T) {
	score := pendingTeachingScore()
	score.Status = models.StatusUnderReview
	score.Marks = floatPtr(40)
	repo := &fakeWorkflowRepo{score: score}
	svc := newValidationService(repo)

	response, err := svc.Transition(context.Background(), dto.KindTeachingScore, 1, hodActor(), dto.TransitionRequest{
		Action:  dto.ActionReject,
		Comment: "proof missing",
	})
	require.NoError(t, err)
	require.Equal(t, models.StatusRejected, response.TeachingScore.Status)
	require.Equal(t, 40.0, *response.TeachingScore.Marks)
	require.Equal(t, models.AuditScoreReject, repo.audits[0].ActionType)
}

func TestTransitionApproveActivityUsesFormulaFallback(t *testing.T) {
	quantities, _ := json.Marshal(map[string]int{"seminars": 2, "conferences": 1})
	repo := &fakeWorkflowRepo{activity: models.Activity{
		ID:           4,
		FacultyID:    7,
		Category:     "EVENTS_ATTENDED",
		AcademicYear: "2025-26",
		Quantities:   quantities,
		ReviewState:  models.ReviewState{Status: models.StatusUnderReview},
		Faculty:      models.User{ID: 7, DepartmentID: uintPtr(2)},
	}}
	svc := newValidationService(repo)

	response, err := svc.Transition(context.Background(), dto.KindActivity, 4, hodActor(), dto.TransitionRequest{
		Action: dto.ActionApprove,
	})
	require.NoError(t, err)
	require.Equal(t, models.StatusApproved, response.Activity.Status)
	require.Equal(t, 20.0, *response.Activity.Marks)
}

func TestTransitionApproveActivityHonoursValidatorMarks(t *testing.T) {
	repo := &fakeWorkflowRepo{activity: models.Activity{
		ID:          4,
		FacultyID:   7,
		Category:    "EVENTS_ATTENDED",
		ReviewState: models.ReviewState{Status: models.StatusUnderReview},
		Faculty:     models.User{ID: 7, DepartmentID: uintPtr(2)},
	}}
	svc := newValidationService(repo)

	response, err := svc.Transition(context.Background(), dto.KindActivity, 4, hodActor(), dto.TransitionRequest{
		Action: dto.ActionApprove,
		Marks:  floatPtr(25),
	})
	require.NoError(t, err)
	require.Equal(t, 25.0, *response.Activity.Marks)
}

func TestTransitionHODCrossDepartmentForbidden(t *testing.T) {
	score := pendingTeachingScore()
	score.Status = models.StatusUnderReview
	repo := &fakeWorkflowRepo{score: score}
	svc := newValidationService(repo)

	otherHOD := Actor{ID: 21, Role: models.RoleHOD, DepartmentID: uintPtr(9)}
	_, err := svc.Transition(context.Background(), dto.KindTeachingScore, 1, otherHOD, dto.TransitionRequest{
		Action: dto.ActionApprove,
	})
	require.ErrorIs(t, err, ErrForbidden)
	require.Equal(t, 0, repo.saveCalls)
}

func TestTransitionCoordinatorCategoryAllowlist(t *testing.T) {
	activity := models.Activity{
		ID:          5,
		FacultyID:   7,
		Category:    "COUNSELLING",
		ReviewState: models.ReviewState{Status: models.StatusPending},
		Faculty:     models.User{ID: 7, DepartmentID: uintPtr(2)},
	}
	repo := &fakeWorkflowRepo{activity: activity}
	svc := newValidationService(repo)

	coordinator := Actor{ID: 40, Role: models.RoleCounsellingCoordinator}
	response, err := svc.Transition(context.Background(), dto.KindActivity, 5, coordinator, dto.TransitionRequest{
		Action:  dto.ActionApprove,
		Marks:   floatPtr(15),
		Comment: "sessions confirmed",
	})
	require.NoError(t, err)
	require.Equal(t, models.StatusApproved, response.Activity.Status)
	require.Equal(t, "sessions confirmed", response.Activity.CoordinatorComment)

	repo.activity.Category = "RESEARCH"
	repo.activity.Status = models.StatusPending
	_, err = svc.Transition(context.Background(), dto.KindActivity, 5, coordinator, dto.TransitionRequest{
		Action: dto.ActionApprove,
	})
	require.ErrorIs(t, err, ErrForbidden)
}

func TestTransitionRevalidateRequiresReason(t *testing.T) {
	score := pendingTeachingScore()
	score.Status = models.StatusApproved
	score.Marks = floatPtr(68)
	repo := &fakeWorkflowRepo{score: score}
	svc := newValidationService(repo)

	_, err := svc.Transition(context.Background(), dto.KindTeachingScore, 1, hodActor(), dto.TransitionRequest{
		Action: dto.ActionRevalidate,
		Marks:  floatPtr(50),
	})
	require.ErrorIs(t, err, ErrReasonRequired)
	require.Equal(t, 0, repo.saveCalls)
	require.Empty(t, repo.audits)
}

func TestTransitionRevalidateDefaultsToUnderReview(t *testing.T) {
	score := pendingTeachingScore()
	score.Status = models.StatusApproved
	score.Marks = floatPtr(68)
	repo := &fakeWorkflowRepo{score: score}
	svc := newValidationService(repo)

	response, err := svc.Transition(context.Background(), dto.KindTeachingScore, 1, hodActor(), dto.TransitionRequest{
		Action: dto.ActionRevalidate,
		Marks:  floatPtr(55),
		Reason: "proof re-examined",
	})
	require.NoError(t, err)
	require.Equal(t, models.StatusUnderReview, response.TeachingScore.Status)
	require.Equal(t, 55.0, *response.TeachingScore.Marks)
	require.Equal(t, "proof re-examined", response.TeachingScore.ModificationReason)

	require.Len(t, repo.audits, 1)
	entry := repo.audits[0]
	require.Equal(t, models.AuditScoreModify, entry.ActionType)
	require.Equal(t, "proof re-examined", entry.Reason)

	var before, after reviewSnapshot
	require.NoError(t, json.Unmarshal(entry.OldValue, &before))
	require.NoError(t, json.Unmarshal(entry.NewValue, &after))
	require.Equal(t, 68.0, *before.Marks)
	require.Equal(t, 55.0, *after.Marks)
	require.Equal(t, models.StatusApproved, before.Status)
	require.Equal(t, models.StatusUnderReview, after.Status)
}

func TestTransitionRevalidateRequiresFinalStatus(t *testing.T) {
	score := pendingTeachingScore()
	score.Status = models.StatusUnderReview
	repo := &fakeWorkflowRepo{score: score}
	svc := newValidationService(repo)

	_, err := svc.Transition(context.Background(), dto.KindTeachingScore, 1, hodActor(), dto.TransitionRequest{
		Action: dto.ActionRevalidate,
		Reason: "premature",
	})
	require.ErrorIs(t, err, ErrInvalidState)
}

func TestTransitionLockBlocksNonPrincipal(t *testing.T) {
	score := pendingTeachingScore()
	score.Status = models.StatusApproved
	score.IsLocked = true
	repo := &fakeWorkflowRepo{score: score}
	svc := newValidationService(repo)

	_, err := svc.Transition(context.Background(), dto.KindTeachingScore, 1, hodActor(), dto.TransitionRequest{
		Action: dto.ActionRevalidate,
		Reason: "should not pass the lock",
	})
	require.ErrorIs(t, err, ErrLocked)
	require.Equal(t, 0, repo.saveCalls)
}

func TestTransitionOverrideBypassesLock(t *testing.T) {
	score := pendingTeachingScore()
	score.Status = models.StatusApproved
	score.Marks = floatPtr(68)
	score.IsLocked = true
	repo := &fakeWorkflowRepo{score: score}
	svc := newValidationService(repo)

	response, err := svc.Transition(context.Background(), dto.KindTeachingScore, 1, principalActor(), dto.TransitionRequest{
		Action: dto.ActionOverride,
		Marks:  floatPtr(70),
	})
	require.NoError(t, err)
	require.Equal(t, 70.0, *response.TeachingScore.Marks)
	require.Equal(t, "Overridden by Principal", response.TeachingScore.ModificationReason)
	require.Equal(t, models.StatusApproved, response.TeachingScore.Status)

	require.Len(t, repo.audits, 1)
	entry := repo.audits[0]
	require.Equal(t, models.AuditScoreOverride, entry.ActionType)

	var before, after reviewSnapshot
	require.NoError(t, json.Unmarshal(entry.OldValue, &before))
	require.NoError(t, json.Unmarshal(entry.NewValue, &after))
	require.Equal(t, 68.0, *before.Marks)
	require.Equal(t, 70.0, *after.Marks)
}

func TestTransitionLockIsIdempotent(t *testing.T) {
	score := pendingTeachingScore()
	score.IsLocked = true
	repo := &fakeWorkflowRepo{score: score}
	svc := newValidationService(repo)

	_, err := svc.Transition(context.Background(), dto.KindTeachingScore, 1, principalActor(), dto.TransitionRequest{
		Action: dto.ActionLock,
	})
	require.NoError(t, err)
	require.Equal(t, 0, repo.saveCalls)
	require.Empty(t, repo.audits)
}

func TestTransitionUnlockRequiresLocked(t *testing.T) {
	repo := &fakeWorkflowRepo{score: pendingTeachingScore()}
	svc := newValidationService(repo)

	_, err := svc.Transition(context.Background(), dto.KindTeachingScore, 1, principalActor(), dto.TransitionRequest{
		Action: dto.ActionUnlock,
	})
	require.ErrorIs(t, err, ErrInvalidState)
}

func TestTransitionLockRequiresPrincipal(t *testing.T) {
	repo := &fakeWorkflowRepo{score: pendingTeachingScore()}
	svc := newValidationService(repo)

	_, err := svc.Transition(context.Background(), dto.KindTeachingScore, 1, hodActor(), dto.TransitionRequest{
		Action: dto.ActionLock,
	})
	require.ErrorIs(t, err, ErrForbidden)
}

func TestTransitionNotFound(t *testing.T) {
	repo := &fakeWorkflowRepo{scoreErr: gorm.ErrRecordNotFound}
	svc := newValidationService(repo)

	_, err := svc.Transition(context.Background(), dto.KindTeachingScore, 99, principalActor(), dto.TransitionRequest{
		Action: dto.ActionLock,
	})
	require.ErrorIs(t, err, ErrSubmissionNotFound)
}

func TestTransitionUnknownKindAndAction(t *testing.T) {
	repo := &fakeWorkflowRepo{score: pendingTeachingScore()}
	svc := newValidationService(repo)

	_, err := svc.Transition(context.Background(), "feedback", 1, principalActor(), dto.TransitionRequest{
		Action: dto.ActionLock,
	})
	require.ErrorIs(t, err, ErrUnknownKind)

	_, err = svc.Transition(context.Background(), dto.KindTeachingScore, 1, principalActor(), dto.TransitionRequest{
		Action: "ARCHIVE",
	})
	require.Error(t, err)
}

func TestTransitionRequiresActor(t *testing.T) {
	repo := &fakeWorkflowRepo{score: pendingTeachingScore()}
	svc := newValidationService(repo)

	_, err := svc.Transition(context.Background(), dto.KindTeachingScore, 1, Actor{}, dto.TransitionRequest{
		Action: dto.ActionLock,
	})
	require.ErrorIs(t, err, ErrUnauthorized)
}

// Full lifecycle: submit, verify, approve, lock, blocked revalidation,
// principal override.
func TestTransitionFullTeachingLifecycle(t *testing.T) {
	repo := &fakeWorkflowRepo{score: pendingTeachingScore()}
	svc := newValidationService(repo)
	examCell := Actor{ID: 15, Role: models.RoleExamCell}

	_, err := svc.Transition(context.Background(), dto.KindTeachingScore, 1, examCell, dto.TransitionRequest{
		Action: dto.ActionVerify,
	})
	require.NoError(t, err)
	require.Equal(t, models.StatusUnderReview, repo.score.Status)

	response, err := svc.Transition(context.Background(), dto.KindTeachingScore, 1, hodActor(), dto.TransitionRequest{
		Action: dto.ActionApprove,
	})
	require.NoError(t, err)
	require.Equal(t, 68.0, *response.TeachingScore.Marks)

	_, err = svc.Transition(context.Background(), dto.KindTeachingScore, 1, principalActor(), dto.TransitionRequest{
		Action: dto.ActionLock,
	})
	require.NoError(t, err)
	require.True(t, repo.score.IsLocked)

	_, err = svc.Transition(context.Background(), dto.KindTeachingScore, 1, hodActor(), dto.TransitionRequest{
		Action: dto.ActionRevalidate,
		Marks:  floatPtr(75),
		Reason: "recount",
	})
	require.ErrorIs(t, err, ErrLocked)

	response, err = svc.Transition(context.Background(), dto.KindTeachingScore, 1, principalActor(), dto.TransitionRequest{
		Action:  dto.ActionOverride,
		Marks:   floatPtr(70),
		Comment: "adjusted after appeal",
	})
	require.NoError(t, err)
	require.Equal(t, 70.0, *response.TeachingScore.Marks)
	require.True(t, response.TeachingScore.IsLocked)

	require.Len(t, repo.audits, 4)
	require.Equal(t, models.AuditScoreVerify, repo.audits[0].ActionType)
	require.Equal(t, models.AuditScoreApprove, repo.audits[1].ActionType)
	require.Equal(t, models.AuditScoreLock, repo.audits[2].ActionType)
	require.Equal(t, models.AuditScoreOverride, repo.audits[3].ActionType)
}
