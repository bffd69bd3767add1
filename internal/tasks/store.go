package tasks

import (
	"context"
	"errors"
	"time"
)

// ErrNotFound is returned when a task id does not exist in the store.
var ErrNotFound = errors.New("task not found")

// Store persists tasks. Implementations must advance UpdatedAt on every
// mutating write.
type Store interface {
	Create(ctx context.Context, task *Task) error
	ByID(ctx context.Context, id int64) (Task, error)
	Update(ctx context.Context, task *Task) error
	Delete(ctx context.Context, id int64) error

	ListByOwner(ctx context.Context, ownerID int64) ([]Task, error)
	ListByOwnerAndStatus(ctx context.Context, ownerID int64, status Status) ([]Task, error)
	ListByOwnerAndCategory(ctx context.Context, ownerID int64, category Category) ([]Task, error)
	// ListDueBefore returns tasks with a deadline strictly before the given
	// time, ordered by deadline ascending. Tasks without a deadline are skipped.
	ListDueBefore(ctx context.Context, ownerID int64, before time.Time) ([]Task, error)
}
