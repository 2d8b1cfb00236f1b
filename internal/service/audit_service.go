package service

import (
	"context"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"

	"github.com/noah-isme/fpams-go-api/internal/dto"
	"github.com/noah-isme/fpams-go-api/internal/models"
	"github.com/noah-isme/fpams-go-api/internal/repository"
)

// AuditService reads the workflow audit trail. Entries are written only by
// the validation workflow; this surface is read-only.
type AuditService interface {
	List(ctx context.Context, actor Actor, filter dto.AuditLogFilter) ([]dto.AuditLogResponse, error)
}

type auditService struct {
	audits    repository.AuditLogRepository
	users     repository.UserRepository
	validator *validator.Validate
	logger    zerolog.Logger
}

// NewAuditService constructs the audit trail reader.
func NewAuditService(audits repository.AuditLogRepository, users repository.UserRepository, validate *validator.Validate, logger zerolog.Logger) AuditService {
	return &auditService{
		audits:    audits,
		users:     users,
		validator: validate,
		logger:    logger.With().Str("component", "audit_service").Logger(),
	}
}

func (s *auditService) List(ctx context.Context, actor Actor, filter dto.AuditLogFilter) ([]dto.AuditLogResponse, error) {
	switch actor.Role {
	case models.RoleSuperAdmin, models.RolePrincipal, models.RoleHOD, models.RoleIQAC:
	default:
		return nil, ErrForbidden
	}

	if err := s.validator.Struct(filter); err != nil {
		return nil, err
	}

	entries, err := s.audits.List(ctx, repository.AuditLogFilter{
		ActionType: filter.ActionType,
		TargetType: filter.TargetType,
		TargetID:   filter.TargetID,
		Limit:      filter.Limit,
	})
	if err != nil {
		return nil, err
	}

	// Actor identity is resolved at read time so the trail stays correct
	// when names change after the fact.
	actorIDs := make([]uint, 0, len(entries))
	seen := make(map[uint]bool, len(entries))
	for _, entry := range entries {
		if !seen[entry.ActorID] {
			seen[entry.ActorID] = true
			actorIDs = append(actorIDs, entry.ActorID)
		}
	}

	actors := make(map[uint]models.User, len(actorIDs))
	users, err := s.users.ListByIDs(ctx, actorIDs)
	if err != nil {
		s.logger.Warn().Err(err).Msg("could not resolve audit actors")
	} else {
		for _, user := range users {
			actors[user.ID] = user
		}
	}

	responses := make([]dto.AuditLogResponse, 0, len(entries))
	for _, entry := range entries {
		responses = append(responses, dto.NewAuditLogResponse(entry, actors))
	}

	return responses, nil
}
