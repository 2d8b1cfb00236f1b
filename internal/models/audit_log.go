package models

import (
	"time"

	"gorm.io/datatypes"
)

// Audit action types emitted by the validation workflow.
const (
	AuditScoreVerify   = "SCORE_VERIFY"
	AuditScoreApprove  = "SCORE_APPROVE"
	AuditScoreReject   = "SCORE_REJECT"
	AuditScoreModify   = "SCORE_MODIFY"
	AuditScoreOverride = "SCORE_OVERRIDE"
	AuditScoreLock     = "SCORE_LOCK"
	AuditScoreUnlock   = "SCORE_UNLOCK"
)

// Audit target kinds.
const (
	AuditTargetActivity      = "activity"
	AuditTargetTeachingScore = "teaching_score"
)

// AuditLog is the append-only record of every mutating workflow transition.
// Entries are never updated or deleted; OldValue/NewValue capture the
// status/marks/lock snapshot around the change.
type AuditLog struct {
	ID         uint           `gorm:"primaryKey" json:"id"`
	ActionType string         `gorm:"size:32;not null;index" json:"action_type"`
	ActorID    uint           `gorm:"not null;index" json:"actor_id"`
	ActorRole  string         `gorm:"size:32;not null" json:"actor_role"`
	TargetType string         `gorm:"size:32;not null;index" json:"target_type"`
	TargetID   uint           `gorm:"not null;index" json:"target_id"`
	OldValue   datatypes.JSON `gorm:"type:json" json:"old_value"`
	NewValue   datatypes.JSON `gorm:"type:json" json:"new_value"`
	Reason     string         `gorm:"type:text" json:"reason"`
	CreatedAt  time.Time      `gorm:"index" json:"created_at"`
}
