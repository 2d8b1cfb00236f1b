package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/noah-isme/fpams-go-api/internal/models"
)

// AuditLogFilter narrows audit trail queries.
type AuditLogFilter struct {
	ActionType string
	TargetType string
	TargetID   *uint
	ActorID    *uint
	Limit      int
}

// AuditLogRepository persists workflow audit entries. The trail is
// append-only: no update or delete operation exists.
type AuditLogRepository interface {
	Create(ctx context.Context, entry *models.AuditLog) error
	List(ctx context.Context, filter AuditLogFilter) ([]models.AuditLog, error)
	CountModifications(ctx context.Context, targetType string, targetID uint) (int64, error)
}

type auditLogRepository struct {
	db *gorm.DB
}

// NewAuditLogRepository constructs the audit log repository.
func NewAuditLogRepository(db *gorm.DB) AuditLogRepository {
	return &auditLogRepository{db: db}
}

func (r *auditLogRepository) Create(ctx context.Context, entry *models.AuditLog) error {
	return r.db.WithContext(ctx).Create(entry).Error
}

func (r *auditLogRepository) List(ctx context.Context, filter AuditLogFilter) ([]models.AuditLog, error) {
	query := r.db.WithContext(ctx).Model(&models.AuditLog{})

	if filter.ActionType != "" {
		query = query.Where("action_type = ?", filter.ActionType)
	}

	if filter.TargetType != "" {
		query = query.Where("target_type = ?", filter.TargetType)
	}

	if filter.TargetID != nil {
		query = query.Where("target_id = ?", *filter.TargetID)
	}

	if filter.ActorID != nil {
		query = query.Where("actor_id = ?", *filter.ActorID)
	}

	limit := filter.Limit
	if limit <= 0 {
		limit = 100
	}

	var entries []models.AuditLog
	if err := query.Order("created_at DESC").Limit(limit).Find(&entries).Error; err != nil {
		return nil, err
	}

	return entries, nil
}

// CountModifications counts post-approval corrections (revalidations and
// overrides) recorded against a target. Used to derive the
// modified-after-approval flag without overloading timestamps.
func (r *auditLogRepository) CountModifications(ctx context.Context, targetType string, targetID uint) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.AuditLog{}).
		Where("target_type = ?", targetType).
		Where("target_id = ?", targetID).
		Where("action_type IN ?", []string{models.AuditScoreModify, models.AuditScoreOverride}).
		Count(&count).Error
	return count, err
}
