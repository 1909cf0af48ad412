// Package storage defines the persistence collaborator of the gradebook:
// a backend that loads and saves full snapshots. Implementations live in
// the jsonfile and sqlite subpackages.
package storage

import (
	"errors"
	"fmt"

	"github.com/studiowebux/gradebook/internal/types"
)

// ErrPersistence wraps every load or save failure of a backend
var ErrPersistence = errors.New("persistence error")

// Backend loads and saves the whole gradebook state. Save is a full
// overwrite; a missing store on Load yields an empty snapshot, not an error.
type Backend interface {
	Load() (types.Snapshot, error)
	Save(snap types.Snapshot) error
	Close() error
}

// Wrap tags err as a persistence failure of op
func Wrap(op string, err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%w: %s: %w", ErrPersistence, op, err)
}
