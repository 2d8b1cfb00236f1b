package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/noah-isme/fpams-go-api/internal/models"
)

// TeachingScoreFilter narrows teaching score queries.
type TeachingScoreFilter struct {
	FacultyID             *uint
	SubjectID             *uint
	DepartmentID          *uint
	Status                string
	AcademicYear          string
	ExcludeDeletedFaculty bool
}

// TeachingScoreRepository defines data operations for teaching scores.
type TeachingScoreRepository interface {
	List(ctx context.Context, filter TeachingScoreFilter) ([]models.TeachingScore, error)
	GetByID(ctx context.Context, id uint) (models.TeachingScore, error)
	Create(ctx context.Context, score *models.TeachingScore) error
	Update(ctx context.Context, score *models.TeachingScore) error
	Delete(ctx context.Context, id uint) error
}

type teachingScoreRepository struct {
	db *gorm.DB
}

// NewTeachingScoreRepository instantiates the repository.
func NewTeachingScoreRepository(db *gorm.DB) TeachingScoreRepository {
	return &teachingScoreRepository{db: db}
}

func (r *teachingScoreRepository) baseQuery(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).Model(&models.TeachingScore{}).
		Preload("Faculty").
		Preload("Subject")
}

func (r *teachingScoreRepository) List(ctx context.Context, filter TeachingScoreFilter) ([]models.TeachingScore, error) {
	query := r.baseQuery(ctx)

	if filter.FacultyID != nil {
		query = query.Where("teaching_scores.faculty_id = ?", *filter.FacultyID)
	}

	if filter.SubjectID != nil {
		query = query.Where("teaching_scores.subject_id = ?", *filter.SubjectID)
	}

	if filter.Status != "" {
		query = query.Where("teaching_scores.status = ?", filter.Status)
	}

	if filter.AcademicYear != "" {
		query = query.Where("teaching_scores.academic_year = ?", filter.AcademicYear)
	}

	if filter.DepartmentID != nil || filter.ExcludeDeletedFaculty {
		query = query.Joins("JOIN users ON users.id = teaching_scores.faculty_id")
		if filter.DepartmentID != nil {
			query = query.Where("users.department_id = ?", *filter.DepartmentID)
		}
		if filter.ExcludeDeletedFaculty {
			query = query.Where("users.is_deleted = ?", false)
		}
	}

	var scores []models.TeachingScore
	if err := query.Order("teaching_scores.created_at DESC").Find(&scores).Error; err != nil {
		return nil, err
	}

	return scores, nil
}

func (r *teachingScoreRepository) GetByID(ctx context.Context, id uint) (models.TeachingScore, error) {
	var score models.TeachingScore
	if err := r.baseQuery(ctx).First(&score, id).Error; err != nil {
		return models.TeachingScore{}, err
	}

	return score, nil
}

func (r *teachingScoreRepository) Create(ctx context.Context, score *models.TeachingScore) error {
	return r.db.WithContext(ctx).Create(score).Error
}

func (r *teachingScoreRepository) Update(ctx context.Context, score *models.TeachingScore) error {
	return r.db.WithContext(ctx).Save(score).Error
}

func (r *teachingScoreRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&models.TeachingScore{}, id).Error
}
