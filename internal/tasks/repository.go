package tasks

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
)

// PostgresStore implements Store on top of sqlx/Postgres.
type PostgresStore struct {
	db *sqlx.DB
}

// NewPostgresStore wraps an established sqlx connection.
func NewPostgresStore(db *sqlx.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

// Create inserts the task and fills store-assigned fields on the passed value.
func (s *PostgresStore) Create(ctx context.Context, task *Task) error {
	const q = `
		INSERT INTO tasks (name, description, owner_id, status, category, deadline_time, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, NOW(), NOW())
		RETURNING id, created_at, updated_at`
	row := s.db.QueryRowxContext(ctx, q,
		task.Name, task.Description, task.OwnerID, task.Status, task.Category, task.Deadline,
	)
	if err := row.Scan(&task.ID, &task.CreatedAt, &task.UpdatedAt); err != nil {
		return fmt.Errorf("create task: %w", err)
	}
	return nil
}

// ByID fetches a single task, returning ErrNotFound for unknown ids.
func (s *PostgresStore) ByID(ctx context.Context, id int64) (Task, error) {
	const q = `SELECT * FROM tasks WHERE id = $1`
	var task Task
	if err := s.db.GetContext(ctx, &task, q, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Task{}, ErrNotFound
		}
		return Task{}, fmt.Errorf("task by id: %w", err)
	}
	return task, nil
}

// Update persists all mutable fields and advances updated_at.
func (s *PostgresStore) Update(ctx context.Context, task *Task) error {
	const q = `
		UPDATE tasks
		SET name = $2, description = $3, status = $4, category = $5, deadline_time = $6, updated_at = NOW()
		WHERE id = $1
		RETURNING updated_at`
	row := s.db.QueryRowxContext(ctx, q,
		task.ID, task.Name, task.Description, task.Status, task.Category, task.Deadline,
	)
	if err := row.Scan(&task.UpdatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrNotFound
		}
		return fmt.Errorf("update task: %w", err)
	}
	return nil
}

// Delete removes the task, returning ErrNotFound when nothing was deleted.
func (s *PostgresStore) Delete(ctx context.Context, id int64) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM tasks WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete task: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete task: %w", err)
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

// ListByOwner returns all tasks of the owner, newest first.
func (s *PostgresStore) ListByOwner(ctx context.Context, ownerID int64) ([]Task, error) {
	const q = `SELECT * FROM tasks WHERE owner_id = $1 ORDER BY created_at DESC`
	var list []Task
	if err := s.db.SelectContext(ctx, &list, q, ownerID); err != nil {
		return nil, fmt.Errorf("list tasks by owner: %w", err)
	}
	return list, nil
}

// ListByOwnerAndStatus returns the owner's tasks filtered by status.
func (s *PostgresStore) ListByOwnerAndStatus(ctx context.Context, ownerID int64, status Status) ([]Task, error) {
	const q = `SELECT * FROM tasks WHERE owner_id = $1 AND status = $2 ORDER BY created_at DESC`
	var list []Task
	if err := s.db.SelectContext(ctx, &list, q, ownerID, status); err != nil {
		return nil, fmt.Errorf("list tasks by status: %w", err)
	}
	return list, nil
}

// ListByOwnerAndCategory returns the owner's tasks filtered by category.
func (s *PostgresStore) ListByOwnerAndCategory(ctx context.Context, ownerID int64, category Category) ([]Task, error) {
	const q = `SELECT * FROM tasks WHERE owner_id = $1 AND category = $2 ORDER BY created_at DESC`
	var list []Task
	if err := s.db.SelectContext(ctx, &list, q, ownerID, category); err != nil {
		return nil, fmt.Errorf("list tasks by category: %w", err)
	}
	return list, nil
}

// ListDueBefore returns the owner's dated tasks due strictly before the cutoff.
func (s *PostgresStore) ListDueBefore(ctx context.Context, ownerID int64, before time.Time) ([]Task, error) {
	const q = `
		SELECT * FROM tasks
		WHERE owner_id = $1 AND deadline_time IS NOT NULL AND deadline_time < $2
		ORDER BY deadline_time ASC`
	var list []Task
	if err := s.db.SelectContext(ctx, &list, q, ownerID, before); err != nil {
		return nil, fmt.Errorf("list tasks due before: %w", err)
	}
	return list, nil
}
