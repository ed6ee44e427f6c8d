package store

import (
	"context"
	"errors"
	"fmt"

	"hackathon-radar/pkg/domain"
	"hackathon-radar/pkg/logger"
)

// Store persists the dataset. Save must be all-or-nothing from the reader's
// point of view: after a failed Save the previously stored records are still
// there and nothing they contained has changed.
type Store interface {
	Name() string
	Load(ctx context.Context) (domain.Dataset, error)
	Save(ctx context.Context, dataset domain.Dataset) error
}

// CorruptionError means the stored dataset could not be parsed. The caller may
// continue from an empty dataset.
type CorruptionError struct {
	Backend string
	// MovedTo is where the unreadable data was set aside, if anywhere.
	MovedTo string
	Err     error
}

func (e *CorruptionError) Error() string {
	if e.MovedTo != "" {
		return fmt.Sprintf("%s store corrupt (moved to %s): %v", e.Backend, e.MovedTo, e.Err)
	}
	return fmt.Sprintf("%s store corrupt: %v", e.Backend, e.Err)
}

func (e *CorruptionError) Unwrap() error { return e.Err }

// PersistenceError is a fatal read or write failure. Nothing was committed.
type PersistenceError struct {
	Backend string
	Op      string
	Err     error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("%s store %s failed: %v", e.Backend, e.Op, e.Err)
}

func (e *PersistenceError) Unwrap() error { return e.Err }

func persistErr(backend, op string, err error) error {
	return &PersistenceError{Backend: backend, Op: op, Err: err}
}

// LoadOrEmpty loads the dataset, treating corruption as an empty store. The
// corruption is logged at error level so operators notice it. Any other
// failure is returned.
func LoadOrEmpty(ctx context.Context, s Store, log *logger.Logger) (domain.Dataset, error) {
	dataset, err := s.Load(ctx)
	if err == nil {
		return dataset, nil
	}
	var corrupt *CorruptionError
	if errors.As(err, &corrupt) {
		log.Error("STORE CORRUPT: starting from an empty dataset",
			"store", s.Name(), "moved_to", corrupt.MovedTo, "error", corrupt.Err)
		return domain.Dataset{}, nil
	}
	return nil, err
}
