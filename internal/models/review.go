package models

import "time"

// Submission lifecycle statuses.
const (
	StatusPending     = "PENDING"
	StatusUnderReview = "UNDER_REVIEW"
	StatusApproved    = "APPROVED"
	StatusRejected    = "REJECTED"
)

// ReviewState carries the validation lifecycle shared by activities and
// teaching scores. Marks is nil until an approval-path transition computes
// or assigns it; IsLocked freezes the record against everyone but the
// Principal.
type ReviewState struct {
	Status             string     `gorm:"size:32;not null;default:'PENDING';index" json:"status"`
	Marks              *float64   `json:"marks"`
	IsLocked           bool       `gorm:"not null;default:false" json:"is_locked"`
	ValidatedBy        *uint      `json:"validated_by"`
	HODComment         string     `gorm:"type:text" json:"hod_comment"`
	PrincipalComment   string     `gorm:"type:text" json:"principal_comment"`
	CoordinatorComment string     `gorm:"type:text" json:"coordinator_comment"`
	ModificationReason string     `gorm:"type:text" json:"modification_reason"`
	LastModifiedBy     *uint      `json:"last_modified_by"`
	LastModifiedAt     *time.Time `json:"last_modified_at"`
}

// IsEditableByOwner reports whether the owning faculty may still edit or
// delete the record.
func (r ReviewState) IsEditableByOwner() bool {
	return r.Status == StatusPending || r.Status == StatusRejected
}

// IsFinal reports whether the record reached a terminal review status.
func (r ReviewState) IsFinal() bool {
	return r.Status == StatusApproved || r.Status == StatusRejected
}
