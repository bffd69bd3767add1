package tasks

import (
	"context"
	"fmt"
	"time"

	"log/slog"

	"github.com/m3rciful/taskbot/internal/logger"
)

// UpcomingWindow is how far ahead the upcoming-deadlines view looks.
const UpcomingWindow = 72 * time.Hour

// Service implements task operations over a Store. All ownership checks
// live at the dialogue layer; the service trusts its callers.
type Service struct {
	store Store
	now   func() time.Time
}

// NewService builds a Service. The clock defaults to time.Now.
func NewService(store Store) *Service {
	return &Service{store: store, now: time.Now}
}

// WithClock overrides the service clock, used in tests.
func (s *Service) WithClock(now func() time.Time) *Service {
	s.now = now
	return s
}

// CreateTask persists a new task from a completed draft. New tasks start
// in the backlog with the default category.
func (s *Service) CreateTask(ctx context.Context, ownerID int64, draft Draft) (Task, error) {
	task := Task{
		Name:        draft.Name,
		Description: draft.Description,
		OwnerID:     ownerID,
		Status:      StatusBacklog,
		Category:    DefaultCategory,
		Deadline:    draft.Deadline,
	}
	if err := s.store.Create(ctx, &task); err != nil {
		return Task{}, err
	}
	logger.LogEvent(ctx, logger.SVCTasks, slog.LevelInfo, "task.create",
		slog.Int64("task_id", task.ID),
		slog.Int64("user", ownerID),
	)
	return task, nil
}

// TaskByID returns a single task or ErrNotFound.
func (s *Service) TaskByID(ctx context.Context, id int64) (Task, error) {
	return s.store.ByID(ctx, id)
}

// Tasks lists all tasks of the owner.
func (s *Service) Tasks(ctx context.Context, ownerID int64) ([]Task, error) {
	return s.store.ListByOwner(ctx, ownerID)
}

// TasksByStatus lists the owner's tasks in the given status.
func (s *Service) TasksByStatus(ctx context.Context, ownerID int64, status Status) ([]Task, error) {
	return s.store.ListByOwnerAndStatus(ctx, ownerID, status)
}

// TasksByCategory lists the owner's tasks in the given category.
func (s *Service) TasksByCategory(ctx context.Context, ownerID int64, category Category) ([]Task, error) {
	return s.store.ListByOwnerAndCategory(ctx, ownerID, category)
}

// UpcomingDeadlines lists the owner's dated tasks due within the upcoming
// window, ordered by deadline ascending.
func (s *Service) UpcomingDeadlines(ctx context.Context, ownerID int64) ([]Task, error) {
	return s.store.ListDueBefore(ctx, ownerID, s.now().Add(UpcomingWindow))
}

// UpdateName renames the task.
func (s *Service) UpdateName(ctx context.Context, id int64, name string) (Task, error) {
	return s.mutate(ctx, id, "task.rename", func(t *Task) { t.Name = name })
}

// UpdateDescription replaces the task description.
func (s *Service) UpdateDescription(ctx context.Context, id int64, description string) (Task, error) {
	return s.mutate(ctx, id, "task.describe", func(t *Task) { t.Description = description })
}

// UpdateDeadline replaces the task deadline. A nil deadline clears it.
func (s *Service) UpdateDeadline(ctx context.Context, id int64, deadline *time.Time) (Task, error) {
	return s.mutate(ctx, id, "task.reschedule", func(t *Task) { t.Deadline = deadline })
}

// UpdateStatus moves the task into a new lifecycle status.
func (s *Service) UpdateStatus(ctx context.Context, id int64, status Status) (Task, error) {
	return s.mutate(ctx, id, "task.status", func(t *Task) { t.Status = status })
}

// DeleteTask removes the task permanently.
func (s *Service) DeleteTask(ctx context.Context, id int64) error {
	if err := s.store.Delete(ctx, id); err != nil {
		return err
	}
	logger.LogEvent(ctx, logger.SVCTasks, slog.LevelInfo, "task.delete",
		slog.Int64("task_id", id),
	)
	return nil
}

func (s *Service) mutate(ctx context.Context, id int64, event string, apply func(*Task)) (Task, error) {
	task, err := s.store.ByID(ctx, id)
	if err != nil {
		return Task{}, err
	}
	apply(&task)
	if err := s.store.Update(ctx, &task); err != nil {
		return Task{}, fmt.Errorf("%s: %w", event, err)
	}
	logger.LogEvent(ctx, logger.SVCTasks, slog.LevelDebug, event,
		slog.Int64("task_id", id),
	)
	return task, nil
}
