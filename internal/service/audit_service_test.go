package service

import (
	"context"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/fpams-go-api/internal/dto"
	"github.com/noah-isme/fpams-go-api/internal/models"
)

func TestAuditListEnrichesActorNames(t *testing.T) {
	audits := &fakeAuditRepo{entries: []models.AuditLog{
		{ID: 1, ActionType: models.AuditScoreApprove, ActorID: 20, TargetType: models.AuditTargetActivity, TargetID: 5},
		{ID: 2, ActionType: models.AuditScoreOverride, ActorID: 99, TargetType: models.AuditTargetActivity, TargetID: 5},
	}}
	users := &fakeUserRepo{users: map[uint]models.User{
		20: {ID: 20, Name: "Dr. Mehta", Role: models.RoleHOD},
	}}
	validate := validator.New(validator.WithRequiredStructEnabled())
	svc := NewAuditService(audits, users, validate, testLogger())

	entries, err := svc.List(context.Background(), principalActor(), dto.AuditLogFilter{})
	require.NoError(t, err)
	require.Len(t, entries, 2)
	require.Equal(t, "Dr. Mehta", entries[0].ActorName)
	require.Equal(t, models.RoleHOD, entries[0].ActorRole)
	// Deleted or unknown actors still render without breaking the trail.
	require.Equal(t, "Unknown", entries[1].ActorName)
}

func TestAuditListForbiddenForFaculty(t *testing.T) {
	validate := validator.New(validator.WithRequiredStructEnabled())
	svc := NewAuditService(&fakeAuditRepo{}, &fakeUserRepo{}, validate, testLogger())

	_, err := svc.List(context.Background(), Actor{ID: 7, Role: models.RoleFaculty}, dto.AuditLogFilter{})
	require.ErrorIs(t, err, ErrForbidden)
}
