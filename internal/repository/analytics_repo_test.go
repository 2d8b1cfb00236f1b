package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/noah-isme/fpams-go-api/internal/models"
)

func TestAnalyticsRepositoryOnlyApprovedFromActiveFaculty(t *testing.T) {
	db := setupTestDB(t)
	repo := NewAnalyticsRepository(db)

	active := seedFaculty(t, db, "active@example.edu", 1, false)
	removed := seedFaculty(t, db, "removed@example.edu", 1, true)

	marks := 20.0
	records := []models.Activity{
		{FacultyID: active.ID, Category: "EVENTS_ATTENDED", Title: "Approved one", AcademicYear: "2025-26", ReviewState: models.ReviewState{Status: models.StatusApproved, Marks: &marks}},
		{FacultyID: active.ID, Category: "EVENTS_ATTENDED", Title: "Still pending", AcademicYear: "2025-26", ReviewState: models.ReviewState{Status: models.StatusPending}},
		{FacultyID: removed.ID, Category: "EVENTS_ATTENDED", Title: "From removed account", AcademicYear: "2025-26", ReviewState: models.ReviewState{Status: models.StatusApproved, Marks: &marks}},
	}
	for i := range records {
		require.NoError(t, db.Create(&records[i]).Error)
	}

	approved, err := repo.ListApprovedActivities(context.Background(), AnalyticsScope{})
	require.NoError(t, err)
	require.Len(t, approved, 1)
	require.Equal(t, "Approved one", approved[0].Title)

	departmentID := uint(1)
	scoped, err := repo.ListApprovedActivities(context.Background(), AnalyticsScope{DepartmentID: &departmentID, AcademicYear: "2025-26"})
	require.NoError(t, err)
	require.Len(t, scoped, 1)

	none, err := repo.ListApprovedActivities(context.Background(), AnalyticsScope{AcademicYear: "1999-00"})
	require.NoError(t, err)
	require.Empty(t, none)
}

func TestAnalyticsRepositoryFeedbackScope(t *testing.T) {
	db := setupTestDB(t)
	repo := NewAnalyticsRepository(db)

	faculty := seedFaculty(t, db, "fb@example.edu", 1, false)
	other := seedFaculty(t, db, "fb-other@example.edu", 2, false)

	feedback := []models.Feedback{
		{StudentID: 100, FacultyID: faculty.ID, SubjectID: 1, Rating: 4},
		{StudentID: 101, FacultyID: faculty.ID, SubjectID: 1, Rating: 5},
		{StudentID: 102, FacultyID: other.ID, SubjectID: 2, Rating: 3},
	}
	for i := range feedback {
		require.NoError(t, db.Create(&feedback[i]).Error)
	}

	scoped, err := repo.ListFeedback(context.Background(), AnalyticsScope{FacultyID: &faculty.ID})
	require.NoError(t, err)
	require.Len(t, scoped, 2)

	departmentID := uint(2)
	byDepartment, err := repo.ListFeedback(context.Background(), AnalyticsScope{DepartmentID: &departmentID})
	require.NoError(t, err)
	require.Len(t, byDepartment, 1)
}
