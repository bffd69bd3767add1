package tasks

import (
	"context"
	"errors"
	"testing"
	"time"
)

func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

func TestCreateTaskDefaults(t *testing.T) {
	store := NewMemoryStore()
	svc := NewService(store)
	ctx := context.Background()

	deadline := time.Date(2099, 12, 31, 23, 59, 0, 0, time.Local)
	task, err := svc.CreateTask(ctx, 42, Draft{
		Name:        "write report",
		Description: "quarterly numbers",
		Deadline:    &deadline,
	})
	if err != nil {
		t.Fatalf("CreateTask: %v", err)
	}
	if task.ID == 0 {
		t.Fatal("expected assigned id")
	}
	if task.Status != StatusBacklog {
		t.Errorf("status = %s, want %s", task.Status, StatusBacklog)
	}
	if task.Category != DefaultCategory {
		t.Errorf("category = %s, want %s", task.Category, DefaultCategory)
	}
	if task.OwnerID != 42 {
		t.Errorf("owner = %d, want 42", task.OwnerID)
	}
	if task.Deadline == nil || !task.Deadline.Equal(deadline) {
		t.Errorf("deadline = %v, want %v", task.Deadline, deadline)
	}
}

func TestTaskByIDNotFound(t *testing.T) {
	svc := NewService(NewMemoryStore())
	if _, err := svc.TaskByID(context.Background(), 999); !errors.Is(err, ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
}

func TestUpdateStatusAdvancesUpdatedAt(t *testing.T) {
	store := NewMemoryStore()
	base := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	clock := base
	store.Now = func() time.Time { return clock }
	svc := NewService(store)
	ctx := context.Background()

	task, err := svc.CreateTask(ctx, 1, Draft{Name: "n"})
	if err != nil {
		t.Fatalf("CreateTask: %v", err)
	}

	clock = base.Add(time.Minute)
	updated, err := svc.UpdateStatus(ctx, task.ID, StatusDone)
	if err != nil {
		t.Fatalf("UpdateStatus: %v", err)
	}
	if updated.Status != StatusDone {
		t.Errorf("status = %s, want %s", updated.Status, StatusDone)
	}
	if !updated.UpdatedAt.After(task.UpdatedAt) {
		t.Errorf("updated_at not advanced: %v -> %v", task.UpdatedAt, updated.UpdatedAt)
	}
	if !updated.CreatedAt.Equal(task.CreatedAt) {
		t.Errorf("created_at changed: %v -> %v", task.CreatedAt, updated.CreatedAt)
	}
}

func TestUpdateDeadlineClears(t *testing.T) {
	store := NewMemoryStore()
	svc := NewService(store)
	ctx := context.Background()

	deadline := time.Now().Add(time.Hour)
	task, err := svc.CreateTask(ctx, 1, Draft{Name: "n", Deadline: &deadline})
	if err != nil {
		t.Fatalf("CreateTask: %v", err)
	}
	updated, err := svc.UpdateDeadline(ctx, task.ID, nil)
	if err != nil {
		t.Fatalf("UpdateDeadline: %v", err)
	}
	if updated.Deadline != nil {
		t.Errorf("deadline = %v, want nil", updated.Deadline)
	}
}

func TestDeleteThenLookup(t *testing.T) {
	store := NewMemoryStore()
	svc := NewService(store)
	ctx := context.Background()

	task, err := svc.CreateTask(ctx, 1, Draft{Name: "n"})
	if err != nil {
		t.Fatalf("CreateTask: %v", err)
	}
	if err := svc.DeleteTask(ctx, task.ID); err != nil {
		t.Fatalf("DeleteTask: %v", err)
	}
	if _, err := svc.TaskByID(ctx, task.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
	if err := svc.DeleteTask(ctx, task.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("second delete err = %v, want ErrNotFound", err)
	}
}

func TestUpcomingDeadlinesWindowAndOrder(t *testing.T) {
	store := NewMemoryStore()
	now := time.Date(2026, 8, 31, 10, 0, 0, 0, time.UTC)
	svc := NewService(store).WithClock(fixedClock(now))
	ctx := context.Background()

	mk := func(name string, offset time.Duration) {
		d := now.Add(offset)
		if _, err := svc.CreateTask(ctx, 7, Draft{Name: name, Deadline: &d}); err != nil {
			t.Fatalf("CreateTask %s: %v", name, err)
		}
	}
	mk("soon", 2*time.Hour)
	mk("tomorrow", 26*time.Hour)
	mk("too far", 80*time.Hour)
	if _, err := svc.CreateTask(ctx, 7, Draft{Name: "undated"}); err != nil {
		t.Fatalf("CreateTask undated: %v", err)
	}
	// Other owner's task inside the window must not appear.
	d := now.Add(time.Hour)
	if _, err := svc.CreateTask(ctx, 8, Draft{Name: "foreign", Deadline: &d}); err != nil {
		t.Fatalf("CreateTask foreign: %v", err)
	}

	list, err := svc.UpcomingDeadlines(ctx, 7)
	if err != nil {
		t.Fatalf("UpcomingDeadlines: %v", err)
	}
	if len(list) != 2 {
		t.Fatalf("len = %d, want 2: %+v", len(list), list)
	}
	if list[0].Name != "soon" || list[1].Name != "tomorrow" {
		t.Errorf("order = [%s %s], want [soon tomorrow]", list[0].Name, list[1].Name)
	}
}

func TestTasksByStatusAndCategory(t *testing.T) {
	store := NewMemoryStore()
	svc := NewService(store)
	ctx := context.Background()

	a, _ := svc.CreateTask(ctx, 1, Draft{Name: "a"})
	if _, err := svc.CreateTask(ctx, 1, Draft{Name: "b"}); err != nil {
		t.Fatalf("CreateTask: %v", err)
	}
	if _, err := svc.UpdateStatus(ctx, a.ID, StatusDone); err != nil {
		t.Fatalf("UpdateStatus: %v", err)
	}

	done, err := svc.TasksByStatus(ctx, 1, StatusDone)
	if err != nil {
		t.Fatalf("TasksByStatus: %v", err)
	}
	if len(done) != 1 || done[0].Name != "a" {
		t.Errorf("done = %+v, want just task a", done)
	}

	general, err := svc.TasksByCategory(ctx, 1, CategoryGeneral)
	if err != nil {
		t.Fatalf("TasksByCategory: %v", err)
	}
	if len(general) != 2 {
		t.Errorf("general count = %d, want 2", len(general))
	}
}

func TestParseStatusToken(t *testing.T) {
	cases := []struct {
		token string
		want  Status
		ok    bool
	}{
		{"IN", StatusInProgress, true},
		{"IN_PROGRESS", StatusInProgress, true},
		{"BACKLOG", StatusBacklog, true},
		{"DONE", StatusDone, true},
		{"done", StatusDone, true},
		{"BOGUS", "", false},
		{"", "", false},
	}
	for _, tc := range cases {
		got, err := ParseStatusToken(tc.token)
		if tc.ok && (err != nil || got != tc.want) {
			t.Errorf("ParseStatusToken(%q) = %v, %v; want %v", tc.token, got, err, tc.want)
		}
		if !tc.ok && err == nil {
			t.Errorf("ParseStatusToken(%q) accepted, want error", tc.token)
		}
	}
}
