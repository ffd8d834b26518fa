package service

import (
	"errors"
	"fmt"

	"github.com/huntmaster/hunt-services/internal/huntsvc/store"
)

// The error taxonomy every operation reports through. Handlers translate
// these to HTTP statuses; authorization failures carry auth.ErrUnauthorized.
var (
	ErrValidation = errors.New("validation failed")
	ErrNotFound   = errors.New("not found")
	ErrConflict   = errors.New("conflict")
)

// mapStoreErr lifts store sentinels into the service taxonomy. A conditional
// write that matched zero rows is a conflict, never a silent success.
func mapStoreErr(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, store.ErrConditionFailed), errors.Is(err, store.ErrDuplicate):
		return fmt.Errorf("%v: %w", err, ErrConflict)
	case errors.Is(err, store.ErrInvalidReference):
		return fmt.Errorf("%v: %w", err, ErrNotFound)
	default:
		return err
	}
}
