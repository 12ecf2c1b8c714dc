package store

import (
	"context"
	"errors"

	"github.com/rahulansharma682/fitlog-cloud-computing/internal/workout"
)

// ErrNotFound is returned by Get when no record exists for the id.
var ErrNotFound = errors.New("workout not found")

// Store abstracts the durable persistence back-end for workout
// records. Records are addressed by id; writes are acknowledged before
// the record becomes visible to reads. Implementations must be safe
// for concurrent use from multiple invocations.
type Store interface {
	// Put persists the record under its id, overwriting any previous
	// object with the same id.
	Put(ctx context.Context, rec workout.Record) error

	// Get returns the record for the id, or an error wrapping
	// ErrNotFound if it does not exist.
	Get(ctx context.Context, id string) (workout.Record, error)

	// List returns all stored records in insertion order, oldest
	// first. Individual unreadable objects are skipped, not fatal.
	List(ctx context.Context) ([]workout.Record, error)

	// Delete removes the record if present. Deleting an absent id is
	// not an error.
	Delete(ctx context.Context, id string) error
}
