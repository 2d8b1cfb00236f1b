package dto

import (
	"encoding/json"
	"time"

	"github.com/noah-isme/fpams-go-api/internal/models"
)

// AuditLogFilter describes query string filters for the audit trail.
type AuditLogFilter struct {
	ActionType string `query:"action_type"`
	TargetType string `query:"target_type"`
	TargetID   *uint  `query:"target_id"`
	Limit      int    `query:"limit" validate:"omitempty,gte=1,lte=500"`
}

// AuditLogResponse is an audit entry enriched with the actor's display
// identity at read time.
type AuditLogResponse struct {
	ID         uint            `json:"id"`
	ActionType string          `json:"action_type"`
	ActorID    uint            `json:"actor_id"`
	ActorName  string          `json:"actor_name"`
	ActorRole  string          `json:"actor_role"`
	TargetType string          `json:"target_type"`
	TargetID   uint            `json:"target_id"`
	OldValue   json.RawMessage `json:"old_value"`
	NewValue   json.RawMessage `json:"new_value"`
	Reason     string          `json:"reason"`
	CreatedAt  time.Time       `json:"created_at"`
}

// NewAuditLogResponse converts a model entry, resolving the actor's name
// from the supplied directory snapshot.
func NewAuditLogResponse(model models.AuditLog, actors map[uint]models.User) AuditLogResponse {
	response := AuditLogResponse{
		ID:         model.ID,
		ActionType: model.ActionType,
		ActorID:    model.ActorID,
		ActorRole:  model.ActorRole,
		TargetType: model.TargetType,
		TargetID:   model.TargetID,
		OldValue:   json.RawMessage(model.OldValue),
		NewValue:   json.RawMessage(model.NewValue),
		Reason:     model.Reason,
		CreatedAt:  model.CreatedAt,
	}

	if actor, ok := actors[model.ActorID]; ok {
		response.ActorName = actor.Name
		response.ActorRole = actor.Role
	} else {
		response.ActorName = "Unknown"
	}

	return response
}
