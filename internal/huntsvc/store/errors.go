package store

import "errors"

// Sentinel errors the service layer maps onto its error taxonomy. Conditional
// writes signal a zero-row outcome with ErrConditionFailed instead of silently
// succeeding, which is what makes check-then-act races detectable.
var (
	ErrConditionFailed  = errors.New("row not in the required state")
	ErrDuplicate        = errors.New("duplicate row")
	ErrInvalidReference = errors.New("invalid foreign key reference")
)
