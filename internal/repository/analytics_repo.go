package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/noah-isme/fpams-go-api/internal/models"
)

// AnalyticsScope bounds an aggregation query. Only approved submissions from
// non-deleted faculty participate.
type AnalyticsScope struct {
	DepartmentID *uint
	FacultyID    *uint
	AcademicYear string
}

// AnalyticsRepository supplies the read-side data for score aggregation.
type AnalyticsRepository interface {
	ListApprovedActivities(ctx context.Context, scope AnalyticsScope) ([]models.Activity, error)
	ListApprovedTeachingScores(ctx context.Context, scope AnalyticsScope) ([]models.TeachingScore, error)
	ListFeedback(ctx context.Context, scope AnalyticsScope) ([]models.Feedback, error)
}

type analyticsRepository struct {
	db *gorm.DB
}

// NewAnalyticsRepository constructs the analytics repository.
func NewAnalyticsRepository(db *gorm.DB) AnalyticsRepository {
	return &analyticsRepository{db: db}
}

func (r *analyticsRepository) ListApprovedActivities(ctx context.Context, scope AnalyticsScope) ([]models.Activity, error) {
	query := r.db.WithContext(ctx).Model(&models.Activity{}).
		Preload("Faculty").
		Joins("JOIN users ON users.id = activities.faculty_id").
		Where("activities.status = ?", models.StatusApproved).
		Where("users.is_deleted = ?", false)

	if scope.DepartmentID != nil {
		query = query.Where("users.department_id = ?", *scope.DepartmentID)
	}

	if scope.FacultyID != nil {
		query = query.Where("activities.faculty_id = ?", *scope.FacultyID)
	}

	if scope.AcademicYear != "" {
		query = query.Where("activities.academic_year = ?", scope.AcademicYear)
	}

	var activities []models.Activity
	if err := query.Find(&activities).Error; err != nil {
		return nil, err
	}

	return activities, nil
}

func (r *analyticsRepository) ListApprovedTeachingScores(ctx context.Context, scope AnalyticsScope) ([]models.TeachingScore, error) {
	query := r.db.WithContext(ctx).Model(&models.TeachingScore{}).
		Preload("Faculty").
		Joins("JOIN users ON users.id = teaching_scores.faculty_id").
		Where("teaching_scores.status = ?", models.StatusApproved).
		Where("users.is_deleted = ?", false)

	if scope.DepartmentID != nil {
		query = query.Where("users.department_id = ?", *scope.DepartmentID)
	}

	if scope.FacultyID != nil {
		query = query.Where("teaching_scores.faculty_id = ?", *scope.FacultyID)
	}

	if scope.AcademicYear != "" {
		query = query.Where("teaching_scores.academic_year = ?", scope.AcademicYear)
	}

	var scores []models.TeachingScore
	if err := query.Find(&scores).Error; err != nil {
		return nil, err
	}

	return scores, nil
}

func (r *analyticsRepository) ListFeedback(ctx context.Context, scope AnalyticsScope) ([]models.Feedback, error) {
	query := r.db.WithContext(ctx).Model(&models.Feedback{}).
		Joins("JOIN users ON users.id = feedbacks.faculty_id").
		Where("users.is_deleted = ?", false)

	if scope.DepartmentID != nil {
		query = query.Where("users.department_id = ?", *scope.DepartmentID)
	}

	if scope.FacultyID != nil {
		query = query.Where("feedbacks.faculty_id = ?", *scope.FacultyID)
	}

	var feedback []models.Feedback
	if err := query.Find(&feedback).Error; err != nil {
		return nil, err
	}

	return feedback, nil
}
