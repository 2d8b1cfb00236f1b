package service

import "errors"

// Workflow error taxonomy. All are expected outcomes surfaced to handlers,
// never process-fatal.
var (
	// ErrUnauthorized indicates the caller carries no actor identity.
	ErrUnauthorized = errors.New("actor identity required")
	// ErrForbidden indicates the actor's role, department or ownership does
	// not permit the action on this submission.
	ErrForbidden = errors.New("action not permitted for this actor")
	// ErrInvalidState indicates the action is not legal from the current
	// submission status.
	ErrInvalidState = errors.New("action not allowed in current status")
	// ErrLocked indicates the submission is principal-locked and the actor
	// is not the Principal.
	ErrLocked = errors.New("submission locked by principal")
	// ErrReasonRequired indicates a revalidation arrived without the
	// mandatory modification reason.
	ErrReasonRequired = errors.New("modification reason is required")
	// ErrSubmissionNotFound indicates the submission id does not exist.
	ErrSubmissionNotFound = errors.New("submission not found")
	// ErrUnknownAction indicates an unrecognised transition action.
	ErrUnknownAction = errors.New("unknown workflow action")
	// ErrUnknownKind indicates an unrecognised submission kind.
	ErrUnknownKind = errors.New("unknown submission kind")
)

// Actor identifies the authenticated caller of a workflow operation.
// DepartmentID is nil for institution-level roles such as the Principal.
type Actor struct {
	ID           uint
	Role         string
	DepartmentID *uint
}
