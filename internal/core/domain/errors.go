package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrConfiguration covers dimension mismatches and invalid chunking
	// parameters. Fatal, never retried.
	ErrConfiguration = errors.New("configuration error")

	ErrInvalidInput = errors.New("invalid input")

	// ErrNotReady is returned when a query arrives before any index has been
	// built or loaded.
	ErrNotReady = errors.New("knowledge base not ready")

	// ErrIndexNotFound is returned when loading a persisted index from a
	// location that does not exist.
	ErrIndexNotFound = errors.New("index not found")

	// ErrGeneration marks a failure of the generation capability itself.
	// Fatal for the current query, never retried automatically.
	ErrGeneration = errors.New("generation failure")
)

// WrapError preserves typed semantic errors with operation context.
func WrapError(kind error, operation string, err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w: %w", operation, kind, err)
}

func IsKind(err error, kind error) bool {
	return errors.Is(err, kind)
}
