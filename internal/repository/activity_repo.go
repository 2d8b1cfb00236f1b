package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/noah-isme/fpams-go-api/internal/models"
)

// ActivityFilter narrows activity queries. When DepartmentID or
// ExcludeDeletedFaculty is set the query joins the user directory so
// validators never see submissions from removed accounts.
type ActivityFilter struct {
	FacultyID             *uint
	DepartmentID          *uint
	Category              string
	Categories            []string
	Status                string
	AcademicYear          string
	ExcludeDeletedFaculty bool
}

// ActivityRepository defines data operations for activity submissions.
type ActivityRepository interface {
	List(ctx context.Context, filter ActivityFilter) ([]models.Activity, error)
	GetByID(ctx context.Context, id uint) (models.Activity, error)
	Create(ctx context.Context, activity *models.Activity) error
	Update(ctx context.Context, activity *models.Activity) error
	Delete(ctx context.Context, id uint) error
}

type activityRepository struct {
	db *gorm.DB
}

// NewActivityRepository instantiates the repository.
func NewActivityRepository(db *gorm.DB) ActivityRepository {
	return &activityRepository{db: db}
}

func (r *activityRepository) baseQuery(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).Model(&models.Activity{}).Preload("Faculty")
}

func (r *activityRepository) List(ctx context.Context, filter ActivityFilter) ([]models.Activity, error) {
	query := r.baseQuery(ctx)

	if filter.FacultyID != nil {
		query = query.Where("activities.faculty_id = ?", *filter.FacultyID)
	}

	if filter.Category != "" {
		query = query.Where("activities.category = ?", filter.Category)
	}

	if len(filter.Categories) > 0 {
		query = query.Where("activities.category IN ?", filter.Categories)
	}

	if filter.Status != "" {
		query = query.Where("activities.status = ?", filter.Status)
	}

	if filter.AcademicYear != "" {
		query = query.Where("activities.academic_year = ?", filter.AcademicYear)
	}

	if filter.DepartmentID != nil || filter.ExcludeDeletedFaculty {
		query = query.Joins("JOIN users ON users.id = activities.faculty_id")
		if filter.DepartmentID != nil {
			query = query.Where("users.department_id = ?", *filter.DepartmentID)
		}
		if filter.ExcludeDeletedFaculty {
			query = query.Where("users.is_deleted = ?", false)
		}
	}

	var activities []models.Activity
	if err := query.Order("activities.created_at DESC").Find(&activities).Error; err != nil {
		return nil, err
	}

	return activities, nil
}

func (r *activityRepository) GetByID(ctx context.Context, id uint) (models.Activity, error) {
	var activity models.Activity
	if err := r.baseQuery(ctx).First(&activity, id).Error; err != nil {
		return models.Activity{}, err
	}

	return activity, nil
}

func (r *activityRepository) Create(ctx context.Context, activity *models.Activity) error {
	return r.db.WithContext(ctx).Create(activity).Error
}

func (r *activityRepository) Update(ctx context.Context, activity *models.Activity) error {
	return r.db.WithContext(ctx).Save(activity).Error
}

func (r *activityRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&models.Activity{}, id).Error
}
