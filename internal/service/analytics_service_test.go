package service

import (
	"context"
	"testing"
	"time"

	miniredis "github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/fpams-go-api/internal/dto"
	"github.com/noah-isme/fpams-go-api/internal/models"
	"github.com/noah-isme/fpams-go-api/internal/repository"
)

type fakeAnalyticsRepo struct {
	activities []models.Activity
	scores     []models.TeachingScore
	feedback   []models.Feedback
}

func (f *fakeAnalyticsRepo) ListApprovedActivities(ctx context.Context, scope repository.AnalyticsScope) ([]models.Activity, error) {
	return append([]models.Activity(nil), f.activities...), nil
}

func (f *fakeAnalyticsRepo) ListApprovedTeachingScores(ctx context.Context, scope repository.AnalyticsScope) ([]models.TeachingScore, error) {
	return append([]models.TeachingScore(nil), f.scores...), nil
}

func (f *fakeAnalyticsRepo) ListFeedback(ctx context.Context, scope repository.AnalyticsScope) ([]models.Feedback, error) {
	return append([]models.Feedback(nil), f.feedback...), nil
}

type fakeUserRepo struct {
	users       map[uint]models.User
	faculty     []models.User
	departments []models.Department
}

func (f *fakeUserRepo) GetByID(ctx context.Context, id uint) (models.User, error) {
	return f.users[id], nil
}

func (f *fakeUserRepo) ListByIDs(ctx context.Context, ids []uint) ([]models.User, error) {
	result := make([]models.User, 0, len(ids))
	for _, id := range ids {
		if user, ok := f.users[id]; ok {
			result = append(result, user)
		}
	}
	return result, nil
}

func (f *fakeUserRepo) ListFaculty(ctx context.Context, departmentID *uint) ([]models.User, error) {
	return append([]models.User(nil), f.faculty...), nil
}

func (f *fakeUserRepo) ListDepartments(ctx context.Context) ([]models.Department, error) {
	return append([]models.Department(nil), f.departments...), nil
}

func TestAggregateEmptyScopeYieldsZeros(t *testing.T) {
	svc := NewAnalyticsService(&fakeAnalyticsRepo{}, &fakeUserRepo{}, nil, time.Minute, testLogger())

	response, err := svc.Aggregate(context.Background(), principalActor(), dto.AggregateScope{AcademicYear: "2025-26"})
	require.NoError(t, err)
	require.Zero(t, response.TotalMarks)
	require.Zero(t, response.AvgFeedback)
	require.Zero(t, response.Counts)
	require.False(t, response.CacheHit)
}

func TestAggregateSumsApprovedMarksAndFeedback(t *testing.T) {
	repo := &fakeAnalyticsRepo{
		activities: []models.Activity{
			{ID: 1, ReviewState: models.ReviewState{Status: models.StatusApproved, Marks: floatPtr(20)}},
			{ID: 2, ReviewState: models.ReviewState{Status: models.StatusApproved, Marks: floatPtr(30)}},
		},
		scores: []models.TeachingScore{
			{ID: 3, ReviewState: models.ReviewState{Status: models.StatusApproved, Marks: floatPtr(68)}},
		},
		feedback: []models.Feedback{{Rating: 4}, {Rating: 5}},
	}
	svc := NewAnalyticsService(repo, &fakeUserRepo{}, nil, time.Minute, testLogger())

	response, err := svc.Aggregate(context.Background(), principalActor(), dto.AggregateScope{})
	require.NoError(t, err)
	require.Equal(t, 118.0, response.TotalMarks)
	require.Equal(t, 4.5, response.AvgFeedback)
	require.Equal(t, 3, response.Counts)
}

func TestAggregateUsesCacheOnSecondRead(t *testing.T) {
	server, err := miniredis.Run()
	require.NoError(t, err)
	defer server.Close()

	client := redis.NewClient(&redis.Options{Addr: server.Addr()})
	defer client.Close()

	repo := &fakeAnalyticsRepo{
		activities: []models.Activity{
			{ID: 1, ReviewState: models.ReviewState{Status: models.StatusApproved, Marks: floatPtr(20)}},
		},
	}
	svc := NewAnalyticsService(repo, &fakeUserRepo{}, client, time.Minute, testLogger())

	first, err := svc.Aggregate(context.Background(), principalActor(), dto.AggregateScope{})
	require.NoError(t, err)
	require.False(t, first.CacheHit)
	require.Equal(t, 20.0, first.TotalMarks)

	// Mutate the store; the cached figure must win inside the TTL.
	repo.activities = nil
	second, err := svc.Aggregate(context.Background(), principalActor(), dto.AggregateScope{})
	require.NoError(t, err)
	require.True(t, second.CacheHit)
	require.Equal(t, first.TotalMarks, second.TotalMarks)
}

func TestAggregateScopesFacultyToSelf(t *testing.T) {
	svc := NewAnalyticsService(&fakeAnalyticsRepo{}, &fakeUserRepo{}, nil, time.Minute, testLogger())

	_, err := svc.Aggregate(context.Background(), Actor{ID: 7, Role: models.RoleFaculty}, dto.AggregateScope{FacultyID: uintPtr(99)})
	require.NoError(t, err)

	_, err = svc.Aggregate(context.Background(), Actor{ID: 50, Role: models.RoleStudent}, dto.AggregateScope{})
	require.ErrorIs(t, err, ErrForbidden)
}

func TestFacultyReportOverallScoreFormula(t *testing.T) {
	repo := &fakeAnalyticsRepo{
		activities: []models.Activity{
			{ID: 1, ReviewState: models.ReviewState{Status: models.StatusApproved, Marks: floatPtr(25)}},
		},
		scores: []models.TeachingScore{
			{ID: 2, ReviewState: models.ReviewState{Status: models.StatusApproved, Marks: floatPtr(68)}},
		},
		feedback: []models.Feedback{{Rating: 4}, {Rating: 4}},
	}
	users := &fakeUserRepo{users: map[uint]models.User{
		7: {ID: 7, Name: "Dr. Rao", Email: "rao@example.edu", Role: models.RoleFaculty, DepartmentID: uintPtr(2)},
	}}
	svc := NewAnalyticsService(repo, users, nil, time.Minute, testLogger())

	report, err := svc.FacultyReport(context.Background(), principalActor(), 7, "2025-26")
	require.NoError(t, err)
	require.Equal(t, 25.0, report.TotalActivityMarks)
	require.Equal(t, 68.0, report.TotalTeachingMarks)
	require.Equal(t, 4.0, report.AvgFeedback)
	// activity + teaching + feedback*2
	require.Equal(t, 101.0, report.OverallScore)
}

func TestDepartmentReportForbiddenForOtherHOD(t *testing.T) {
	svc := NewAnalyticsService(&fakeAnalyticsRepo{}, &fakeUserRepo{}, nil, time.Minute, testLogger())

	_, err := svc.DepartmentReport(context.Background(), hodActor(), 9, "2025-26")
	require.ErrorIs(t, err, ErrForbidden)
}

func TestInstitutionReportRollsUpDepartments(t *testing.T) {
	repo := &fakeAnalyticsRepo{
		activities: []models.Activity{
			{ID: 1, AcademicYear: "2024-25", ReviewState: models.ReviewState{Status: models.StatusApproved, Marks: floatPtr(20)}},
			{ID: 2, AcademicYear: "2025-26", ReviewState: models.ReviewState{Status: models.StatusApproved, Marks: floatPtr(30)}},
		},
	}
	users := &fakeUserRepo{
		faculty: []models.User{{ID: 7, Name: "Dr. Rao", Role: models.RoleFaculty, DepartmentID: uintPtr(2)}},
		departments: []models.Department{
			{ID: 2, Name: "Computer Science", Code: "CSE"},
		},
	}
	svc := NewAnalyticsService(repo, users, nil, time.Minute, testLogger())

	report, err := svc.InstitutionReport(context.Background(), Actor{ID: 60, Role: models.RoleIQAC}, "")
	require.NoError(t, err)
	require.Len(t, report.Departments, 1)
	require.Equal(t, "CSE", report.Departments[0].DepartmentCode)
	require.Equal(t, 1, report.Departments[0].TotalFaculty)
	require.Len(t, report.YearTrends, 2)
	require.Equal(t, "2024-25", report.YearTrends[0].AcademicYear)
}
