package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/noah-isme/fpams-go-api/internal/models"
)

// ExamResultFilter narrows exam result queries.
type ExamResultFilter struct {
	SubjectID    *uint
	AcademicYear string
	Verified     *bool
}

// ExamResultRepository persists exam cell result uploads.
type ExamResultRepository interface {
	List(ctx context.Context, filter ExamResultFilter) ([]models.ExamResult, error)
	GetByID(ctx context.Context, id uint) (models.ExamResult, error)
	Create(ctx context.Context, result *models.ExamResult) error
	Update(ctx context.Context, result *models.ExamResult) error
}

type examResultRepository struct {
	db *gorm.DB
}

// NewExamResultRepository constructs the exam result repository.
func NewExamResultRepository(db *gorm.DB) ExamResultRepository {
	return &examResultRepository{db: db}
}

func (r *examResultRepository) baseQuery(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).Model(&models.ExamResult{}).
		Preload("Subject").
		Preload("UploadedBy")
}

func (r *examResultRepository) List(ctx context.Context, filter ExamResultFilter) ([]models.ExamResult, error) {
	query := r.baseQuery(ctx)

	if filter.SubjectID != nil {
		query = query.Where("subject_id = ?", *filter.SubjectID)
	}

	if filter.AcademicYear != "" {
		query = query.Where("academic_year = ?", filter.AcademicYear)
	}

	if filter.Verified != nil {
		query = query.Where("verified = ?", *filter.Verified)
	}

	var results []models.ExamResult
	if err := query.Order("created_at DESC").Find(&results).Error; err != nil {
		return nil, err
	}

	return results, nil
}

func (r *examResultRepository) GetByID(ctx context.Context, id uint) (models.ExamResult, error) {
	var result models.ExamResult
	if err := r.baseQuery(ctx).First(&result, id).Error; err != nil {
		return models.ExamResult{}, err
	}

	return result, nil
}

func (r *examResultRepository) Create(ctx context.Context, result *models.ExamResult) error {
	return r.db.WithContext(ctx).Create(result).Error
}

func (r *examResultRepository) Update(ctx context.Context, result *models.ExamResult) error {
	return r.db.WithContext(ctx).Save(result).Error
}
