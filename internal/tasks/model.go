package tasks

import (
	"fmt"
	"strings"
	"time"
)

// Status is the lifecycle state of a task.
type Status string

const (
	// StatusBacklog marks a task that has not been started.
	StatusBacklog Status = "BACKLOG"
	// StatusInProgress marks a task being worked on.
	StatusInProgress Status = "IN_PROGRESS"
	// StatusDone marks a completed task.
	StatusDone Status = "DONE"
)

// Label returns a short human-readable name for the status.
func (s Status) Label() string {
	switch s {
	case StatusBacklog:
		return "Backlog"
	case StatusInProgress:
		return "In Progress"
	case StatusDone:
		return "Done"
	}
	return string(s)
}

// ParseStatusToken resolves a callback status token into a Status.
// "IN" is accepted as a short token for IN_PROGRESS.
func ParseStatusToken(token string) (Status, error) {
	switch strings.ToUpper(strings.TrimSpace(token)) {
	case "IN", "IN_PROGRESS":
		return StatusInProgress, nil
	case "BACKLOG":
		return StatusBacklog, nil
	case "DONE":
		return StatusDone, nil
	}
	return "", fmt.Errorf("unknown status token: %q", token)
}

// Category groups tasks into a fixed set of buckets.
type Category string

const (
	CategoryGeneral   Category = "GENERAL"
	CategoryWork      Category = "WORK"
	CategoryPersonal  Category = "PERSONAL"
	CategoryAnalytics Category = "ANALYTICS"
)

// DefaultCategory is assigned to tasks created through the add flow.
const DefaultCategory = CategoryGeneral

// Task is a single unit of work owned by one Telegram user.
// OwnerID never changes after creation.
type Task struct {
	ID          int64      `db:"id"`
	Name        string     `db:"name"`
	Description string     `db:"description"`
	OwnerID     int64      `db:"owner_id"`
	Status      Status     `db:"status"`
	Category    Category   `db:"category"`
	Deadline    *time.Time `db:"deadline_time"`
	CreatedAt   time.Time  `db:"created_at"`
	UpdatedAt   time.Time  `db:"updated_at"`
}

// Draft holds task fields collected step by step during the add flow.
type Draft struct {
	Name        string
	Description string
	Deadline    *time.Time
}
