package dto

// Workflow actions accepted by the transition endpoint.
const (
	ActionVerify     = "VERIFY"
	ActionApprove    = "APPROVE"
	ActionReject     = "REJECT"
	ActionRevalidate = "REVALIDATE"
	ActionOverride   = "OVERRIDE"
	ActionLock       = "LOCK"
	ActionUnlock     = "UNLOCK"
)

// Submission kinds addressed by the transition endpoint.
const (
	KindActivity      = "activity"
	KindTeachingScore = "teaching"
)

// TransitionRequest is the single payload for all state machine moves. The
// validation service interprets the optional fields per action: Marks for
// approvals/revalidations/overrides, Score for exam cell verification,
// Status for revalidation targets, Reason for revalidations.
type TransitionRequest struct {
	Action  string   `json:"action" validate:"required,oneof=VERIFY APPROVE REJECT REVALIDATE OVERRIDE LOCK UNLOCK"`
	Status  string   `json:"status" validate:"omitempty,oneof=PENDING UNDER_REVIEW APPROVED REJECTED"`
	Marks   *float64 `json:"marks" validate:"omitempty,gte=0"`
	Score   *float64 `json:"score" validate:"omitempty,gte=0,lte=100"`
	Comment string   `json:"comment" validate:"omitempty,max=2000"`
	Reason  string   `json:"reason" validate:"omitempty,max=2000"`
}

// TransitionResponse wraps the updated submission in either shape.
type TransitionResponse struct {
	Kind          string                 `json:"kind"`
	Activity      *ActivityResponse      `json:"activity,omitempty"`
	TeachingScore *TeachingScoreResponse `json:"teaching_score,omitempty"`
}
