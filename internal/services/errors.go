package services

import (
	"errors"
	"fmt"
)

// Common errors
var (
	ErrNoShoppingList       = errors.New("no shopping list")
	ErrArchiveEntryNotFound = errors.New("archive entry not found")
	ErrRecipeNotFound       = errors.New("recipe not found")
	ErrSelectionStale       = errors.New("shopping list changed since the fridge check was opened")
	ErrItemIndexOutOfRange  = errors.New("item index out of range")
)

// ValidationError carries a user-facing message for rejected input
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

func invalid(message string) error {
	return &ValidationError{Message: message}
}

// Persistence operations of the archive flow
const (
	OpSaveArchive       = "save archive"
	OpClearArchivedList = "clear archived list"
)

// PersistenceError is returned when the store rejects a write. The
// underlying message is shown to the user as is.
type PersistenceError struct {
	Op  string
	Err error
}

func (e *PersistenceError) Error() string {
	return e.Err.Error()
}

func (e *PersistenceError) Unwrap() error {
	return e.Err
}

func persistence(op string, err error) error {
	return &PersistenceError{Op: op, Err: err}
}

// Archiving reports whether the failed write belongs to archiving a trip
func (e *PersistenceError) Archiving() bool {
	return e.Op == OpSaveArchive || e.Op == OpClearArchivedList
}

// IsValidationError reports whether err is a ValidationError
func IsValidationError(err error) bool {
	var v *ValidationError
	return errors.As(err, &v)
}

// IsPersistenceError reports whether err is a PersistenceError
func IsPersistenceError(err error) bool {
	var p *PersistenceError
	return errors.As(err, &p)
}

func joinFailures(first, second error) error {
	return fmt.Errorf("%w; rollback failed: %v", first, second)
}
