package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/noah-isme/fpams-go-api/internal/models"
)

// WorkflowRepository performs the read-modify-write cycle of a validation
// transition. Saving the record and appending its audit entry happen in one
// database transaction so a racing validator can never leave a state change
// without its trail entry.
type WorkflowRepository interface {
	GetActivity(ctx context.Context, id uint) (models.Activity, error)
	GetTeachingScore(ctx context.Context, id uint) (models.TeachingScore, error)
	SaveActivityWithAudit(ctx context.Context, activity *models.Activity, entry *models.AuditLog) error
	SaveTeachingScoreWithAudit(ctx context.Context, score *models.TeachingScore, entry *models.AuditLog) error
}

type workflowRepository struct {
	db *gorm.DB
}

// NewWorkflowRepository constructs the workflow repository.
func NewWorkflowRepository(db *gorm.DB) WorkflowRepository {
	return &workflowRepository{db: db}
}

func (r *workflowRepository) GetActivity(ctx context.Context, id uint) (models.Activity, error) {
	var activity models.Activity
	if err := r.db.WithContext(ctx).Preload("Faculty").First(&activity, id).Error; err != nil {
		return models.Activity{}, err
	}

	return activity, nil
}

func (r *workflowRepository) GetTeachingScore(ctx context.Context, id uint) (models.TeachingScore, error) {
	var score models.TeachingScore
	if err := r.db.WithContext(ctx).Preload("Faculty").Preload("Subject").First(&score, id).Error; err != nil {
		return models.TeachingScore{}, err
	}

	return score, nil
}

func (r *workflowRepository) SaveActivityWithAudit(ctx context.Context, activity *models.Activity, entry *models.AuditLog) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(activity).Error; err != nil {
			return err
		}
		if entry != nil {
			if err := tx.Create(entry).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

func (r *workflowRepository) SaveTeachingScoreWithAudit(ctx context.Context, score *models.TeachingScore, entry *models.AuditLog) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(score).Error; err != nil {
			return err
		}
		if entry != nil {
			if err := tx.Create(entry).Error; err != nil {
				return err
			}
		}
		return nil
	})
}
