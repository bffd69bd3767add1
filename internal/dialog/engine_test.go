package dialog

import (
	"context"
	"errors"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/m3rciful/taskbot/internal/session"
	"github.com/m3rciful/taskbot/internal/tasks"
)

var testNow = time.Date(2026, 8, 31, 10, 0, 0, 0, time.Local)

type fixture struct {
	engine   *Engine
	store    *tasks.MemoryStore
	svc      *tasks.Service
	sessions session.Store
}

func newFixture() *fixture {
	store := tasks.NewMemoryStore()
	svc := tasks.NewService(store).WithClock(func() time.Time { return testNow })
	sessions := session.NewMemoryStore()
	engine := NewEngine(svc, sessions).WithClock(func() time.Time { return testNow })
	return &fixture{engine: engine, store: store, svc: svc, sessions: sessions}
}

func (f *fixture) send(t *testing.T, userID int64, text string) []Reply {
	t.Helper()
	replies, err := f.engine.HandleText(context.Background(), userID, text)
	if err != nil {
		t.Fatalf("HandleText(%q): %v", text, err)
	}
	return replies
}

func (f *fixture) press(t *testing.T, userID int64, payload string) []Reply {
	t.Helper()
	replies, err := f.engine.HandleCallback(context.Background(), userID, payload)
	if err != nil {
		t.Fatalf("HandleCallback(%q): %v", payload, err)
	}
	return replies
}

func (f *fixture) mustTask(t *testing.T, userID int64) tasks.Task {
	t.Helper()
	list, err := f.svc.Tasks(context.Background(), userID)
	if err != nil {
		t.Fatalf("Tasks: %v", err)
	}
	if len(list) != 1 {
		t.Fatalf("task count = %d, want 1", len(list))
	}
	return list[0]
}

func (f *fixture) seedTask(t *testing.T, ownerID int64, name string) tasks.Task {
	t.Helper()
	task, err := f.svc.CreateTask(context.Background(), ownerID, tasks.Draft{
		Name:        name,
		Description: "d",
	})
	if err != nil {
		t.Fatalf("seed task: %v", err)
	}
	return task
}

func TestAddFlowNoDeadline(t *testing.T) {
	f := newFixture()
	f.send(t, 1, ButtonAddTask)
	f.send(t, 1, "Groceries")
	f.send(t, 1, "Buy milk")
	replies := f.send(t, 1, "нет")

	task := f.mustTask(t, 1)
	if task.Name != "Groceries" || task.Description != "Buy milk" {
		t.Errorf("task = %+v, want Groceries/Buy milk", task)
	}
	if task.Status != tasks.StatusBacklog {
		t.Errorf("status = %s, want %s", task.Status, tasks.StatusBacklog)
	}
	if task.Deadline != nil {
		t.Errorf("deadline = %v, want nil", task.Deadline)
	}
	if f.sessions.InProgress(1) {
		t.Error("session still in progress after completed flow")
	}
	if len(replies) != 1 || !strings.Contains(replies[0].Text, "Task created") {
		t.Errorf("replies = %+v, want creation summary", replies)
	}
	if replies[0].Keyboard != KeyboardMain {
		t.Error("creation summary should restore the main keyboard")
	}
}

func TestAddFlowFutureDeadlineExact(t *testing.T) {
	f := newFixture()
	f.send(t, 1, ButtonAddTask)
	f.send(t, 1, "Report")
	f.send(t, 1, "Quarterly")
	f.send(t, 1, "25.12.2099 15:30")

	task := f.mustTask(t, 1)
	want := time.Date(2099, 12, 25, 15, 30, 0, 0, time.Local)
	if task.Deadline == nil || !task.Deadline.Equal(want) {
		t.Errorf("deadline = %v, want %v", task.Deadline, want)
	}
}

func TestAddFlowBadFormatReprompts(t *testing.T) {
	f := newFixture()
	f.send(t, 1, ButtonAddTask)
	f.send(t, 1, "Report")
	f.send(t, 1, "Quarterly")
	replies := f.send(t, 1, "next friday")

	if len(replies) != 1 || !strings.Contains(replies[0].Text, "Invalid date format") {
		t.Errorf("replies = %+v, want format error", replies)
	}
	if got := f.sessions.Get(1).Step; got != session.StepAddingDeadline {
		t.Errorf("step = %s, want %s", got, session.StepAddingDeadline)
	}
	if list, _ := f.svc.Tasks(context.Background(), 1); len(list) != 0 {
		t.Errorf("task created on bad input: %+v", list)
	}
}

func TestAddFlowPastDateReprompts(t *testing.T) {
	f := newFixture()
	f.send(t, 1, ButtonAddTask)
	f.send(t, 1, "Report")
	f.send(t, 1, "Quarterly")
	replies := f.send(t, 1, "30.08.2026 10:00")

	if len(replies) != 1 || !strings.Contains(replies[0].Text, "cannot be in the past") {
		t.Errorf("replies = %+v, want past-date error", replies)
	}
	if got := f.sessions.Get(1).Step; got != session.StepAddingDeadline {
		t.Errorf("step = %s, want %s", got, session.StepAddingDeadline)
	}
	if list, _ := f.svc.Tasks(context.Background(), 1); len(list) != 0 {
		t.Errorf("task created on past date: %+v", list)
	}
}

func TestAddFlowInvalidCalendarDateReprompts(t *testing.T) {
	f := newFixture()
	f.send(t, 1, ButtonAddTask)
	f.send(t, 1, "Report")
	f.send(t, 1, "Quarterly")
	replies := f.send(t, 1, "31.02.2099 10:00")

	if len(replies) != 1 || !strings.Contains(replies[0].Text, "Invalid date format") {
		t.Errorf("replies = %+v, want format error", replies)
	}
	if got := f.sessions.Get(1).Step; got != session.StepAddingDeadline {
		t.Errorf("step = %s, want %s", got, session.StepAddingDeadline)
	}
}

func TestBackFromDescriptionOverwritesName(t *testing.T) {
	f := newFixture()
	f.send(t, 1, ButtonAddTask)
	f.send(t, 1, "First name")
	f.send(t, 1, ButtonBack)

	if got := f.sessions.Get(1).Step; got != session.StepAddingName {
		t.Fatalf("step = %s, want %s", got, session.StepAddingName)
	}

	f.send(t, 1, "Second name")
	f.send(t, 1, "desc")
	f.send(t, 1, "no")

	task := f.mustTask(t, 1)
	if task.Name != "Second name" {
		t.Errorf("name = %q, want the re-entered name", task.Name)
	}
}

func TestBackFromNameDiscardsDraft(t *testing.T) {
	f := newFixture()
	f.send(t, 1, ButtonAddTask)
	replies := f.send(t, 1, ButtonBack)

	if f.sessions.InProgress(1) {
		t.Error("session still in progress after cancel")
	}
	if len(replies) != 1 || replies[0].Keyboard != KeyboardMain {
		t.Errorf("replies = %+v, want welcome with main keyboard", replies)
	}
}

func TestMainMenuUnrecognizedText(t *testing.T) {
	f := newFixture()
	replies := f.send(t, 1, "what's up")
	if len(replies) != 1 || replies[0].Text != msgUseMenu {
		t.Errorf("replies = %+v, want menu prompt", replies)
	}
}

func TestCompleteCallback(t *testing.T) {
	f := newFixture()
	task := f.seedTask(t, 1, "Ship it")

	replies := f.press(t, 1, "complete_"+itoa(task.ID))
	if len(replies) != 1 || !replies[0].EditInPlace {
		t.Fatalf("replies = %+v, want one in-place edit", replies)
	}
	got, err := f.svc.TaskByID(context.Background(), task.ID)
	if err != nil {
		t.Fatalf("TaskByID: %v", err)
	}
	if got.Status != tasks.StatusDone {
		t.Errorf("status = %s, want %s", got.Status, tasks.StatusDone)
	}
}

func TestCompleteCallbackNonOwnerNoOp(t *testing.T) {
	f := newFixture()
	task := f.seedTask(t, 1, "Private")

	replies := f.press(t, 2, "complete_"+itoa(task.ID))
	if len(replies) != 0 {
		t.Errorf("replies = %+v, want silence for non-owner", replies)
	}
	got, _ := f.svc.TaskByID(context.Background(), task.ID)
	if got.Status != tasks.StatusBacklog {
		t.Errorf("status = %s, want unchanged %s", got.Status, tasks.StatusBacklog)
	}
}

func TestStatusCallbackBogusToken(t *testing.T) {
	f := newFixture()
	task := f.seedTask(t, 1, "Stable")

	replies := f.press(t, 1, "status_"+itoa(task.ID)+"_BOGUS")
	if len(replies) != 1 || !strings.Contains(replies[0].Text, "Unknown status") {
		t.Errorf("replies = %+v, want unknown-status error", replies)
	}
	got, _ := f.svc.TaskByID(context.Background(), task.ID)
	if got.Status != tasks.StatusBacklog {
		t.Errorf("status = %s, want unchanged", got.Status)
	}
}

func TestStatusCallbackTokens(t *testing.T) {
	f := newFixture()
	task := f.seedTask(t, 1, "Moving")

	f.press(t, 1, "status_"+itoa(task.ID)+"_IN")
	got, _ := f.svc.TaskByID(context.Background(), task.ID)
	if got.Status != tasks.StatusInProgress {
		t.Errorf("status = %s, want %s", got.Status, tasks.StatusInProgress)
	}

	f.press(t, 1, "status_"+itoa(task.ID)+"_DONE")
	got, _ = f.svc.TaskByID(context.Background(), task.ID)
	if got.Status != tasks.StatusDone {
		t.Errorf("status = %s, want %s", got.Status, tasks.StatusDone)
	}
}

func TestDeleteCallbackThenLookup(t *testing.T) {
	f := newFixture()
	task := f.seedTask(t, 1, "Gone")

	f.press(t, 1, "delete_"+itoa(task.ID))
	if _, err := f.svc.TaskByID(context.Background(), task.ID); !errors.Is(err, tasks.ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
}

func TestCallbackOnMissingTask(t *testing.T) {
	f := newFixture()
	replies := f.press(t, 1, "complete_999")
	if len(replies) != 1 || replies[0].Text != msgTaskNotFound {
		t.Errorf("replies = %+v, want not-found message", replies)
	}
}

func TestEditFlow(t *testing.T) {
	f := newFixture()
	task := f.seedTask(t, 1, "Old name")

	f.press(t, 1, "edit_"+itoa(task.ID))
	if got := f.sessions.Get(1).Step; got != session.StepEditingName {
		t.Fatalf("step = %s, want %s", got, session.StepEditingName)
	}

	f.send(t, 1, "New name")
	f.send(t, 1, "New description")
	f.send(t, 1, "25.12.2099 09:00")

	got, err := f.svc.TaskByID(context.Background(), task.ID)
	if err != nil {
		t.Fatalf("TaskByID: %v", err)
	}
	if got.Name != "New name" || got.Description != "New description" {
		t.Errorf("task = %+v, want updated name and description", got)
	}
	want := time.Date(2099, 12, 25, 9, 0, 0, 0, time.Local)
	if got.Deadline == nil || !got.Deadline.Equal(want) {
		t.Errorf("deadline = %v, want %v", got.Deadline, want)
	}
	if f.sessions.InProgress(1) {
		t.Error("session still in progress after edit flow")
	}
}

func TestEditFlowBackFromNameAbandons(t *testing.T) {
	f := newFixture()
	task := f.seedTask(t, 1, "Keep me")

	f.press(t, 1, "edit_"+itoa(task.ID))
	f.send(t, 1, ButtonBack)

	if f.sessions.InProgress(1) {
		t.Error("session still in progress after abandoning edit")
	}
	got, _ := f.svc.TaskByID(context.Background(), task.ID)
	if got.Name != "Keep me" {
		t.Errorf("name = %q, want unchanged", got.Name)
	}
}

func TestEditFlowClearDeadline(t *testing.T) {
	f := newFixture()
	deadline := testNow.Add(48 * time.Hour)
	task, err := f.svc.CreateTask(context.Background(), 1, tasks.Draft{Name: "Dated", Deadline: &deadline})
	if err != nil {
		t.Fatalf("CreateTask: %v", err)
	}

	f.press(t, 1, "edit_"+itoa(task.ID))
	f.send(t, 1, "Dated")
	f.send(t, 1, "desc")
	f.send(t, 1, "no")

	got, _ := f.svc.TaskByID(context.Background(), task.ID)
	if got.Deadline != nil {
		t.Errorf("deadline = %v, want cleared", got.Deadline)
	}
}

func TestEditCallbackNonOwnerIgnored(t *testing.T) {
	f := newFixture()
	task := f.seedTask(t, 1, "Private")

	replies := f.press(t, 2, "edit_"+itoa(task.ID))
	if len(replies) != 0 {
		t.Errorf("replies = %+v, want silence", replies)
	}
	if f.sessions.InProgress(2) {
		t.Error("non-owner entered editing state")
	}
}

func TestSeparatorResetsToMainMenu(t *testing.T) {
	f := newFixture()
	f.send(t, 1, ButtonAddTask)

	replies := f.press(t, 1, "separator")
	if len(replies) != 1 || replies[0].Text != msgSeparator {
		t.Errorf("replies = %+v, want separator message", replies)
	}
	if f.sessions.InProgress(1) {
		t.Error("separator did not reset the dialogue state")
	}
}

func TestBackToMainCallback(t *testing.T) {
	f := newFixture()
	f.send(t, 1, ButtonAddTask)

	replies := f.press(t, 1, "back_to_main")
	if len(replies) != 1 || replies[0].Keyboard != KeyboardMain {
		t.Errorf("replies = %+v, want welcome with main keyboard", replies)
	}
	if f.sessions.InProgress(1) {
		t.Error("back_to_main did not reset the dialogue state")
	}
}

func TestBackToTasksCallback(t *testing.T) {
	f := newFixture()
	f.seedTask(t, 1, "Visible")

	replies := f.press(t, 1, "back_to_tasks")
	if len(replies) != 1 || replies[0].Menu == nil {
		t.Fatalf("replies = %+v, want task list with inline menu", replies)
	}
	if !strings.Contains(replies[0].Text, "Visible") {
		t.Errorf("text = %q, want task list", replies[0].Text)
	}
}

func TestUpcomingDeadlinesView(t *testing.T) {
	f := newFixture()
	soon := testNow.Add(2 * time.Hour)
	far := testNow.Add(200 * time.Hour)
	if _, err := f.svc.CreateTask(context.Background(), 1, tasks.Draft{Name: "Soon", Deadline: &soon}); err != nil {
		t.Fatal(err)
	}
	if _, err := f.svc.CreateTask(context.Background(), 1, tasks.Draft{Name: "Far", Deadline: &far}); err != nil {
		t.Fatal(err)
	}

	replies := f.send(t, 1, ButtonDeadlines)
	if len(replies) != 1 {
		t.Fatalf("replies = %+v", replies)
	}
	if !strings.Contains(replies[0].Text, "Soon") || strings.Contains(replies[0].Text, "Far") {
		t.Errorf("text = %q, want only tasks inside the window", replies[0].Text)
	}
	if !strings.Contains(replies[0].Text, "(2 hours)") {
		t.Errorf("text = %q, want hours-left hint", replies[0].Text)
	}
}

func TestStatusListViews(t *testing.T) {
	f := newFixture()
	task := f.seedTask(t, 1, "Done one")
	if _, err := f.svc.UpdateStatus(context.Background(), task.ID, tasks.StatusDone); err != nil {
		t.Fatal(err)
	}

	done := f.send(t, 1, ButtonCompleted)
	if !strings.Contains(done[0].Text, "Done one ✓") {
		t.Errorf("completed = %q", done[0].Text)
	}
	backlog := f.send(t, 1, ButtonBacklog)
	if !strings.Contains(backlog[0].Text, "No tasks in the backlog") {
		t.Errorf("backlog = %q", backlog[0].Text)
	}
	progress := f.send(t, 1, ButtonInProgress)
	if !strings.Contains(progress[0].Text, "No tasks in progress") {
		t.Errorf("in progress = %q", progress[0].Text)
	}
}

func TestTaskListMenuOmitsCurrentStatus(t *testing.T) {
	f := newFixture()
	task := f.seedTask(t, 1, "Menus")

	menu := TaskListMenu([]tasks.Task{mustGet(t, f, task.ID)})
	var payloads []string
	for _, row := range menu.Rows {
		for _, btn := range row {
			payloads = append(payloads, btn.Data)
		}
	}
	joined := strings.Join(payloads, " ")
	if strings.Contains(joined, "status_"+itoa(task.ID)+"_BACKLOG") {
		t.Error("menu offers the task's current status")
	}
	for _, want := range []string{
		"info_" + itoa(task.ID),
		"complete_" + itoa(task.ID),
		"edit_" + itoa(task.ID),
		"status_" + itoa(task.ID) + "_IN",
		"status_" + itoa(task.ID) + "_DONE",
		"delete_" + itoa(task.ID),
		"separator",
		"back_to_main",
	} {
		if !strings.Contains(joined, want) {
			t.Errorf("menu missing payload %q in %q", want, joined)
		}
	}
}

func TestInfoCallback(t *testing.T) {
	f := newFixture()
	task := f.seedTask(t, 1, "Detailed")

	replies := f.press(t, 1, "info_"+itoa(task.ID))
	if len(replies) != 1 || !strings.Contains(replies[0].Text, "Detailed") {
		t.Errorf("replies = %+v, want task details", replies)
	}
	if replies[0].Menu == nil {
		t.Error("details missing back-to-tasks menu")
	}
}

func mustGet(t *testing.T, f *fixture, id int64) tasks.Task {
	t.Helper()
	task, err := f.svc.TaskByID(context.Background(), id)
	if err != nil {
		t.Fatalf("TaskByID: %v", err)
	}
	return task
}

func itoa(id int64) string {
	return strconv.FormatInt(id, 10)
}
