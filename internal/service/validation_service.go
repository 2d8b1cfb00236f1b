package service

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"gorm.io/gorm"

	"github.com/noah-isme/fpams-go-api/internal/dto"
	"github.com/noah-isme/fpams-go-api/internal/marks"
	"github.com/noah-isme/fpams-go-api/internal/models"
	"github.com/noah-isme/fpams-go-api/internal/observability"
	"github.com/noah-isme/fpams-go-api/internal/repository"
)

// WorkflowConfig injects the authorization tables consulted by the state
// machine, so validator scoping stays testable apart from the transport
// layer.
type WorkflowConfig struct {
	// CoordinatorCategories maps a coordinator role to the activity
	// categories it may validate.
	CoordinatorCategories map[string][]string
}

// DefaultWorkflowConfig returns the institutional role-to-category tables.
func DefaultWorkflowConfig() WorkflowConfig {
	return WorkflowConfig{
		CoordinatorCategories: map[string][]string{
			models.RoleCounsellingCoordinator: {
				string(marks.CategoryCounselling),
				string(marks.CategoryStudentEnrichment),
			},
			models.RoleRnDCoordinator: {
				string(marks.CategoryResearch),
				string(marks.CategoryPapersPublished),
				string(marks.CategoryBooksAuthored),
				string(marks.CategoryPatents),
				string(marks.CategoryArticles),
			},
		},
	}
}

// ValidationService is the single entry point for all workflow transitions.
type ValidationService interface {
	Transition(ctx context.Context, kind string, id uint, actor Actor, payload dto.TransitionRequest) (dto.TransitionResponse, error)
}

type validationService struct {
	repo      repository.WorkflowRepository
	validator *validator.Validate
	config    WorkflowConfig
	logger    zerolog.Logger
	now       func() time.Time
	tracer    trace.Tracer
}

// NewValidationService constructs the validation state machine.
func NewValidationService(repo repository.WorkflowRepository, validate *validator.Validate, config WorkflowConfig, logger zerolog.Logger) ValidationService {
	if config.CoordinatorCategories == nil {
		config = DefaultWorkflowConfig()
	}
	return &validationService{
		repo:      repo,
		validator: validate,
		config:    config,
		logger:    logger.With().Str("component", "validation_service").Logger(),
		now:       time.Now,
		tracer:    otel.Tracer("github.com/noah-isme/fpams-go-api/internal/service/validation"),
	}
}

// workflowTarget is the state machine's uniform view over both submission
// kinds. state points into the loaded model so mutations flow back on save.
type workflowTarget struct {
	kind       string
	id         uint
	faculty    models.User
	category   marks.Category
	state      *models.ReviewState
	score      *float64
	quantities marks.Input
}

// reviewSnapshot captures the audited portion of a submission around a
// transition.
type reviewSnapshot struct {
	Status   string   `json:"status"`
	Marks    *float64 `json:"marks"`
	IsLocked bool     `json:"is_locked"`
}

func snapshotOf(state models.ReviewState) reviewSnapshot {
	return reviewSnapshot{Status: state.Status, Marks: state.Marks, IsLocked: state.IsLocked}
}

func (s *validationService) Transition(ctx context.Context, kind string, id uint, actor Actor, payload dto.TransitionRequest) (dto.TransitionResponse, error) {
	ctx, span := s.tracer.Start(ctx, "workflow.transition")
	span.SetAttributes(
		attribute.String("workflow.kind", kind),
		attribute.Int64("workflow.target_id", int64(id)),
		attribute.String("workflow.action", payload.Action),
		attribute.String("workflow.actor_role", actor.Role),
	)
	defer span.End()

	outcome := "error"
	defer func() {
		observability.WorkflowTransitions().WithLabelValues(payload.Action, kind, outcome).Inc()
	}()

	if actor.ID == 0 {
		span.SetStatus(codes.Error, "unauthorized")
		return dto.TransitionResponse{}, ErrUnauthorized
	}

	if err := s.validator.Struct(payload); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "validation_failed")
		return dto.TransitionResponse{}, err
	}

	switch kind {
	case dto.KindActivity:
		activity, err := s.repo.GetActivity(ctx, id)
		if err != nil {
			span.RecordError(err)
			return dto.TransitionResponse{}, notFoundOr(err)
		}

		target := workflowTarget{
			kind:     kind,
			id:       activity.ID,
			faculty:  activity.Faculty,
			category: marks.Category(activity.Category),
			state:    &activity.ReviewState,
		}
		if len(activity.Quantities) > 0 {
			_ = json.Unmarshal(activity.Quantities, &target.quantities)
		}

		entry, err := s.apply(&target, actor, payload)
		if err != nil {
			span.RecordError(err)
			return dto.TransitionResponse{}, err
		}

		if entry != nil {
			if err := s.repo.SaveActivityWithAudit(ctx, &activity, entry); err != nil {
				span.RecordError(err)
				span.SetStatus(codes.Error, "save_failed")
				return dto.TransitionResponse{}, err
			}
		}

		outcome = "ok"
		response := dto.NewActivityResponse(activity)
		return dto.TransitionResponse{Kind: kind, Activity: &response}, nil

	case dto.KindTeachingScore:
		score, err := s.repo.GetTeachingScore(ctx, id)
		if err != nil {
			span.RecordError(err)
			return dto.TransitionResponse{}, notFoundOr(err)
		}

		target := workflowTarget{
			kind:       kind,
			id:         score.ID,
			faculty:    score.Faculty,
			category:   marks.CategoryTeachingScore,
			state:      &score.ReviewState,
			score:      &score.Score,
			quantities: marks.Input{Score: score.Score},
		}

		entry, err := s.apply(&target, actor, payload)
		if err != nil {
			span.RecordError(err)
			return dto.TransitionResponse{}, err
		}

		if entry != nil {
			entry.TargetType = models.AuditTargetTeachingScore
			if err := s.repo.SaveTeachingScoreWithAudit(ctx, &score, entry); err != nil {
				span.RecordError(err)
				span.SetStatus(codes.Error, "save_failed")
				return dto.TransitionResponse{}, err
			}
		}

		outcome = "ok"
		response := dto.NewTeachingScoreResponse(score)
		return dto.TransitionResponse{Kind: kind, TeachingScore: &response}, nil

	default:
		return dto.TransitionResponse{}, ErrUnknownKind
	}
}

// apply mutates the target according to the action and returns the audit
// entry to persist alongside it. A nil entry with nil error means the
// transition was an idempotent no-op.
func (s *validationService) apply(target *workflowTarget, actor Actor, payload dto.TransitionRequest) (*models.AuditLog, error) {
	// The Principal is the only actor allowed past a lock.
	if target.state.IsLocked && actor.Role != models.RolePrincipal {
		return nil, ErrLocked
	}

	before := snapshotOf(*target.state)
	actionType := ""
	reason := payload.Reason

	switch payload.Action {
	case dto.ActionVerify:
		if actor.Role != models.RoleExamCell {
			return nil, ErrForbidden
		}
		if target.kind != dto.KindTeachingScore {
			return nil, ErrInvalidState
		}
		if target.state.Status != models.StatusPending {
			return nil, ErrInvalidState
		}
		if payload.Score != nil {
			*target.score = *payload.Score
		}
		target.state.Status = models.StatusUnderReview
		target.state.ValidatedBy = &actor.ID
		actionType = models.AuditScoreVerify

	case dto.ActionApprove, dto.ActionReject:
		if err := s.authorizeValidator(target, actor); err != nil {
			return nil, err
		}
		if actor.Role != models.RolePrincipal &&
			target.state.Status != models.StatusPending && target.state.Status != models.StatusUnderReview {
			return nil, ErrInvalidState
		}

		if payload.Action == dto.ActionApprove {
			target.state.Status = models.StatusApproved
			computed := s.approvalMarks(target, payload)
			target.state.Marks = &computed
			actionType = models.AuditScoreApprove
		} else {
			// Marks stay untouched on rejection.
			target.state.Status = models.StatusRejected
			actionType = models.AuditScoreReject
		}
		target.state.ValidatedBy = &actor.ID
		s.recordComment(target.state, actor.Role, payload.Comment)

	case dto.ActionRevalidate:
		if actor.Role != models.RoleHOD {
			return nil, ErrForbidden
		}
		if err := s.checkDepartmentScope(target, actor); err != nil {
			return nil, err
		}
		if !target.state.IsFinal() {
			return nil, ErrInvalidState
		}
		if payload.Reason == "" {
			return nil, ErrReasonRequired
		}
		if payload.Marks != nil {
			target.state.Marks = payload.Marks
		}
		if payload.Status != "" {
			target.state.Status = payload.Status
		} else {
			target.state.Status = models.StatusUnderReview
		}
		if payload.Comment != "" {
			target.state.HODComment = payload.Comment
		}
		target.state.ModificationReason = payload.Reason
		target.state.ValidatedBy = &actor.ID
		s.touch(target.state, actor)
		actionType = models.AuditScoreModify

	case dto.ActionOverride:
		if actor.Role != models.RolePrincipal {
			return nil, ErrForbidden
		}
		if payload.Marks != nil {
			target.state.Marks = payload.Marks
		}
		if payload.Comment != "" {
			target.state.PrincipalComment = payload.Comment
		}
		if reason == "" {
			reason = "Overridden by Principal"
		}
		target.state.ModificationReason = reason
		s.touch(target.state, actor)
		actionType = models.AuditScoreOverride

	case dto.ActionLock:
		if actor.Role != models.RolePrincipal {
			return nil, ErrForbidden
		}
		if target.state.IsLocked {
			return nil, nil
		}
		target.state.IsLocked = true
		s.touch(target.state, actor)
		actionType = models.AuditScoreLock

	case dto.ActionUnlock:
		if actor.Role != models.RolePrincipal {
			return nil, ErrForbidden
		}
		if !target.state.IsLocked {
			return nil, ErrInvalidState
		}
		target.state.IsLocked = false
		s.touch(target.state, actor)
		actionType = models.AuditScoreUnlock

	default:
		return nil, ErrUnknownAction
	}

	after := snapshotOf(*target.state)
	oldValue, _ := json.Marshal(before)
	newValue, _ := json.Marshal(after)

	return &models.AuditLog{
		ActionType: actionType,
		ActorID:    actor.ID,
		ActorRole:  actor.Role,
		TargetType: models.AuditTargetActivity,
		TargetID:   target.id,
		OldValue:   oldValue,
		NewValue:   newValue,
		Reason:     reason,
	}, nil
}

// authorizeValidator enforces who may approve or reject the target:
// department scope for HODs, category allowlists for coordinators, no
// boundary for the Principal.
func (s *validationService) authorizeValidator(target *workflowTarget, actor Actor) error {
	switch actor.Role {
	case models.RolePrincipal:
		return nil

	case models.RoleHOD:
		return s.checkDepartmentScope(target, actor)

	default:
		allowed, ok := s.config.CoordinatorCategories[actor.Role]
		if !ok {
			return ErrForbidden
		}
		if target.kind != dto.KindActivity {
			return ErrForbidden
		}
		if target.faculty.IsDeleted {
			return ErrForbidden
		}
		for _, category := range allowed {
			if category == string(target.category) {
				return nil
			}
		}
		return ErrForbidden
	}
}

func (s *validationService) checkDepartmentScope(target *workflowTarget, actor Actor) error {
	if target.faculty.IsDeleted {
		return ErrForbidden
	}
	if actor.DepartmentID == nil || target.faculty.DepartmentID == nil {
		return ErrForbidden
	}
	if *actor.DepartmentID != *target.faculty.DepartmentID {
		return ErrForbidden
	}
	return nil
}

// approvalMarks resolves the marks assigned on approval: teaching scores
// always run through the formula engine, activities take the validator's
// figure when supplied and fall back to the engine otherwise.
func (s *validationService) approvalMarks(target *workflowTarget, payload dto.TransitionRequest) float64 {
	if target.kind == dto.KindTeachingScore {
		return marks.Compute(marks.CategoryTeachingScore, marks.Input{Score: *target.score})
	}

	if payload.Marks != nil {
		return *payload.Marks
	}

	if !marks.Known(target.category) {
		// The formula engine degrades to 0 for unregistered categories;
		// surface the fallback so a stored 0 is never mistaken for an
		// earned score.
		s.logger.Warn().
			Str("category", string(target.category)).
			Uint("target_id", target.id).
			Msg("no formula registered for category, storing zero marks")
	}

	return marks.Compute(target.category, target.quantities)
}

func (s *validationService) recordComment(state *models.ReviewState, role, comment string) {
	if comment == "" {
		return
	}
	switch role {
	case models.RoleHOD:
		state.HODComment = comment
	case models.RolePrincipal:
		state.PrincipalComment = comment
	default:
		state.CoordinatorComment = comment
	}
}

func (s *validationService) touch(state *models.ReviewState, actor Actor) {
	now := s.now()
	state.LastModifiedBy = &actor.ID
	state.LastModifiedAt = &now
}

func notFoundOr(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrSubmissionNotFound
	}
	return err
}
