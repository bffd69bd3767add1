package dialog

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"log/slog"

	"github.com/m3rciful/taskbot/internal/logger"
	"github.com/m3rciful/taskbot/internal/session"
	"github.com/m3rciful/taskbot/internal/tasks"
)

// Engine drives the per-user conversation. It reads and writes sessions
// through the injected store and persists tasks through the task service.
// Each step has its own transition method taking the current session and
// the input and returning the replies to send.
type Engine struct {
	tasks    *tasks.Service
	sessions session.Store
	now      func() time.Time
}

// NewEngine builds an Engine. The clock defaults to time.Now.
func NewEngine(svc *tasks.Service, sessions session.Store) *Engine {
	return &Engine{tasks: svc, sessions: sessions, now: time.Now}
}

// WithClock overrides the engine clock, used in tests.
func (e *Engine) WithClock(now func() time.Time) *Engine {
	e.now = now
	return e
}

// InProgress reports whether the user is mid-flow.
func (e *Engine) InProgress(userID int64) bool {
	return e.sessions.InProgress(userID)
}

// Welcome resets the user to the main menu and returns the greeting.
func (e *Engine) Welcome(userID int64) Reply {
	e.sessions.Remove(userID)
	return menuReply(msgWelcome, KeyboardMain)
}

// Help returns the usage text with the main keyboard attached.
func (e *Engine) Help() Reply {
	return menuReply(msgHelp, KeyboardMain)
}

// HandleText processes a free-text message in the context of the user's
// current step. Internal faults still yield a user-visible reply; the
// returned error carries them to the transport layer for logging.
func (e *Engine) HandleText(ctx context.Context, userID int64, text string) ([]Reply, error) {
	sess := e.sessions.Get(userID)
	logger.LogEvent(ctx, logger.DLG, slog.LevelDebug, "dialog.text",
		slog.String("step", string(sess.Step)),
		slog.Int64("user", userID),
	)
	switch sess.Step {
	case session.StepAddingName:
		return e.addingName(ctx, userID, sess, text)
	case session.StepAddingDescription:
		return e.addingDescription(userID, sess, text)
	case session.StepAddingDeadline:
		return e.addingDeadline(ctx, userID, sess, text)
	case session.StepEditingName:
		return e.editingName(ctx, userID, sess, text)
	case session.StepEditingDescription:
		return e.editingDescription(ctx, userID, sess, text)
	case session.StepEditingDeadline:
		return e.editingDeadline(ctx, userID, sess, text)
	default:
		return e.mainMenu(ctx, userID, text)
	}
}

func (e *Engine) mainMenu(ctx context.Context, userID int64, text string) ([]Reply, error) {
	switch strings.TrimSpace(text) {
	case ButtonAddTask:
		e.sessions.Put(userID, session.Session{
			Step:  session.StepAddingName,
			Draft: &tasks.Draft{},
		})
		return []Reply{menuReply(promptTaskName, KeyboardBack)}, nil
	case ButtonMyTasks:
		return e.taskList(ctx, userID, false)
	case ButtonDeadlines:
		return e.upcomingDeadlines(ctx, userID)
	case ButtonCompleted:
		return e.statusList(ctx, userID, tasks.StatusDone)
	case ButtonInProgress:
		return e.statusList(ctx, userID, tasks.StatusInProgress)
	case ButtonBacklog:
		return e.statusList(ctx, userID, tasks.StatusBacklog)
	case ButtonSettings:
		return []Reply{menuReply(msgSettings, KeyboardMain)}, nil
	case ButtonHelp:
		return []Reply{menuReply(msgHelp, KeyboardMain)}, nil
	case ButtonBack:
		return []Reply{e.Welcome(userID)}, nil
	default:
		return []Reply{textReply(msgUseMenu)}, nil
	}
}

func (e *Engine) addingName(ctx context.Context, userID int64, sess session.Session, text string) ([]Reply, error) {
	if text == ButtonBack {
		e.sessions.Remove(userID)
		return []Reply{menuReply(msgWelcome, KeyboardMain)}, nil
	}
	sess.Draft.Name = text
	sess.Step = session.StepAddingDescription
	e.sessions.Put(userID, sess)
	return []Reply{textReply(promptTaskDescription)}, nil
}

func (e *Engine) addingDescription(userID int64, sess session.Session, text string) ([]Reply, error) {
	if text == ButtonBack {
		// The name is re-requested from scratch: the next input overwrites it.
		sess.Step = session.StepAddingName
		e.sessions.Put(userID, sess)
		return []Reply{menuReply(promptTaskName, KeyboardBack)}, nil
	}
	sess.Draft.Description = text
	sess.Step = session.StepAddingDeadline
	e.sessions.Put(userID, sess)
	return []Reply{menuReply(promptTaskDeadline, KeyboardBack)}, nil
}

func (e *Engine) addingDeadline(ctx context.Context, userID int64, sess session.Session, text string) ([]Reply, error) {
	if text == ButtonBack {
		sess.Step = session.StepAddingDescription
		e.sessions.Put(userID, sess)
		return []Reply{textReply(promptDescriptionBack)}, nil
	}

	deadline, err := ParseDeadline(text, e.now())
	switch {
	case errors.Is(err, ErrDeadlineFormat):
		return []Reply{textReply(errBadDateFormat)}, nil
	case errors.Is(err, ErrDeadlinePast):
		return []Reply{textReply(errPastDate)}, nil
	}
	sess.Draft.Deadline = deadline

	task, err := e.tasks.CreateTask(ctx, userID, *sess.Draft)
	if err != nil {
		return []Reply{textReply(msgInternalError)}, fmt.Errorf("create task: %w", err)
	}
	e.sessions.Remove(userID)
	return []Reply{menuReply(formatTaskCreated(task), KeyboardMain)}, nil
}

func (e *Engine) editingName(ctx context.Context, userID int64, sess session.Session, text string) ([]Reply, error) {
	if text == ButtonBack {
		e.sessions.Remove(userID)
		return e.taskList(ctx, userID, false)
	}
	task, replies, err := e.ownedTask(ctx, userID, sess.EditingTaskID)
	if replies != nil || err != nil || task.ID == 0 {
		return replies, err
	}
	if _, err := e.tasks.UpdateName(ctx, task.ID, text); err != nil {
		return []Reply{textReply(msgInternalError)}, fmt.Errorf("update name: %w", err)
	}
	sess.Step = session.StepEditingDescription
	e.sessions.Put(userID, sess)
	return []Reply{textReply(promptEditDescription)}, nil
}

func (e *Engine) editingDescription(ctx context.Context, userID int64, sess session.Session, text string) ([]Reply, error) {
	if text == ButtonBack {
		sess.Step = session.StepEditingName
		e.sessions.Put(userID, sess)
		return []Reply{menuReply(promptEditName, KeyboardBack)}, nil
	}
	task, replies, err := e.ownedTask(ctx, userID, sess.EditingTaskID)
	if replies != nil || err != nil || task.ID == 0 {
		return replies, err
	}
	if _, err := e.tasks.UpdateDescription(ctx, task.ID, text); err != nil {
		return []Reply{textReply(msgInternalError)}, fmt.Errorf("update description: %w", err)
	}
	sess.Step = session.StepEditingDeadline
	e.sessions.Put(userID, sess)
	return []Reply{textReply(promptEditDeadline)}, nil
}

func (e *Engine) editingDeadline(ctx context.Context, userID int64, sess session.Session, text string) ([]Reply, error) {
	if text == ButtonBack {
		sess.Step = session.StepEditingDescription
		e.sessions.Put(userID, sess)
		return []Reply{textReply(promptEditDescriptionBack)}, nil
	}
	task, replies, err := e.ownedTask(ctx, userID, sess.EditingTaskID)
	if replies != nil || err != nil || task.ID == 0 {
		return replies, err
	}

	deadline, err := ParseDeadline(text, e.now())
	switch {
	case errors.Is(err, ErrDeadlineFormat):
		return []Reply{textReply(errBadDateFormat)}, nil
	case errors.Is(err, ErrDeadlinePast):
		return []Reply{textReply(errPastDate)}, nil
	}
	if _, err := e.tasks.UpdateDeadline(ctx, task.ID, deadline); err != nil {
		return []Reply{textReply(msgInternalError)}, fmt.Errorf("update deadline: %w", err)
	}
	e.sessions.Remove(userID)
	listReplies, err := e.taskList(ctx, userID, false)
	return append([]Reply{textReply(msgTaskUpdated)}, listReplies...), err
}

// HandleCallback processes an inline button press. Callbacks operate on
// the task id carried in the payload and are independent of the dialogue
// step, except for edit and separator which reset it.
func (e *Engine) HandleCallback(ctx context.Context, userID int64, payload string) ([]Reply, error) {
	logger.LogEvent(ctx, logger.DLG, slog.LevelDebug, "dialog.callback",
		slog.String("action", payload),
		slog.Int64("user", userID),
	)
	switch payload {
	case payloadBackToTasks:
		return e.taskList(ctx, userID, true)
	case payloadBackToMain:
		e.sessions.Remove(userID)
		return []Reply{menuReply(msgWelcome, KeyboardMain)}, nil
	case payloadSeparator:
		e.sessions.Remove(userID)
		return []Reply{textReply(msgSeparator)}, nil
	}

	action, rest, ok := strings.Cut(payload, "_")
	if !ok {
		logger.LogEvent(ctx, logger.DLG, slog.LevelWarn, "dialog.callback.unknown",
			slog.String("action", payload),
		)
		return nil, nil
	}

	switch action {
	case actionComplete:
		return e.callbackComplete(ctx, userID, rest)
	case actionStatus:
		return e.callbackStatus(ctx, userID, rest)
	case actionDelete:
		return e.callbackDelete(ctx, userID, rest)
	case actionEdit:
		return e.callbackEdit(ctx, userID, rest)
	case actionInfo:
		return e.callbackInfo(ctx, userID, rest)
	}
	logger.LogEvent(ctx, logger.DLG, slog.LevelWarn, "dialog.callback.unknown",
		slog.String("action", payload),
	)
	return nil, nil
}

func (e *Engine) callbackComplete(ctx context.Context, userID int64, rest string) ([]Reply, error) {
	task, replies, err := e.taskFromPayload(ctx, userID, rest)
	if replies != nil || err != nil || task.ID == 0 {
		return replies, err
	}
	if _, err := e.tasks.UpdateStatus(ctx, task.ID, tasks.StatusDone); err != nil {
		return []Reply{textReply(msgInternalError)}, fmt.Errorf("complete task: %w", err)
	}
	return []Reply{{
		Text:        fmt.Sprintf("✅ Task '%s' completed!", task.Name),
		Menu:        BackToTasksMenu(),
		EditInPlace: true,
	}}, nil
}

func (e *Engine) callbackStatus(ctx context.Context, userID int64, rest string) ([]Reply, error) {
	idPart, tokenPart, ok := strings.Cut(rest, "_")
	if !ok {
		return nil, nil
	}
	status, err := tasks.ParseStatusToken(tokenPart)
	if err != nil {
		return []Reply{textReply(fmt.Sprintf("❌ Unknown status: %s", tokenPart))}, nil
	}
	task, replies, err := e.taskFromPayload(ctx, userID, idPart)
	if replies != nil || err != nil || task.ID == 0 {
		return replies, err
	}
	if _, err := e.tasks.UpdateStatus(ctx, task.ID, status); err != nil {
		return []Reply{textReply(msgInternalError)}, fmt.Errorf("change status: %w", err)
	}
	return []Reply{{
		Text:        fmt.Sprintf("📊 Task '%s' status changed to: %s", task.Name, status),
		Menu:        BackToTasksMenu(),
		EditInPlace: true,
	}}, nil
}

func (e *Engine) callbackDelete(ctx context.Context, userID int64, rest string) ([]Reply, error) {
	task, replies, err := e.taskFromPayload(ctx, userID, rest)
	if replies != nil || err != nil || task.ID == 0 {
		return replies, err
	}
	if err := e.tasks.DeleteTask(ctx, task.ID); err != nil {
		return []Reply{textReply(msgInternalError)}, fmt.Errorf("delete task: %w", err)
	}
	return []Reply{{
		Text:        fmt.Sprintf("🗑️ Task '%s' deleted!", task.Name),
		Menu:        BackToTasksMenu(),
		EditInPlace: true,
	}}, nil
}

func (e *Engine) callbackEdit(ctx context.Context, userID int64, rest string) ([]Reply, error) {
	task, replies, err := e.taskFromPayload(ctx, userID, rest)
	if replies != nil || err != nil || task.ID == 0 {
		return replies, err
	}
	e.sessions.Put(userID, session.Session{
		Step:          session.StepEditingName,
		EditingTaskID: task.ID,
	})
	return []Reply{menuReply(promptEditName, KeyboardBack)}, nil
}

func (e *Engine) callbackInfo(ctx context.Context, userID int64, rest string) ([]Reply, error) {
	task, replies, err := e.taskFromPayload(ctx, userID, rest)
	if replies != nil || err != nil || task.ID == 0 {
		return replies, err
	}
	return []Reply{{Text: formatTaskDetails(task), Menu: BackToTasksMenu()}}, nil
}

// taskFromPayload parses the id token and loads the task with an ownership
// check. A non-owner request yields no replies and no error: the write is
// silently skipped.
func (e *Engine) taskFromPayload(ctx context.Context, userID int64, idToken string) (tasks.Task, []Reply, error) {
	id, err := strconv.ParseInt(idToken, 10, 64)
	if err != nil {
		logger.LogEvent(ctx, logger.DLG, slog.LevelWarn, "dialog.callback.badid",
			slog.String("action", idToken),
		)
		return tasks.Task{}, nil, nil
	}
	return e.ownedTask(ctx, userID, id)
}

func (e *Engine) ownedTask(ctx context.Context, userID, id int64) (tasks.Task, []Reply, error) {
	task, err := e.tasks.TaskByID(ctx, id)
	if errors.Is(err, tasks.ErrNotFound) {
		return tasks.Task{}, []Reply{textReply(msgTaskNotFound)}, nil
	}
	if err != nil {
		return tasks.Task{}, []Reply{textReply(msgInternalError)}, fmt.Errorf("task lookup: %w", err)
	}
	if task.OwnerID != userID {
		logger.LogEvent(ctx, logger.DLG, slog.LevelWarn, "dialog.owner.mismatch",
			slog.Int64("task_id", id),
			slog.Int64("user", userID),
		)
		return tasks.Task{}, nil, nil
	}
	return task, nil, nil
}

func (e *Engine) taskList(ctx context.Context, userID int64, editInPlace bool) ([]Reply, error) {
	list, err := e.tasks.Tasks(ctx, userID)
	if err != nil {
		return []Reply{textReply(msgInternalError)}, fmt.Errorf("list tasks: %w", err)
	}
	if len(list) == 0 {
		return []Reply{textReply(msgNoTasks)}, nil
	}
	return []Reply{{
		Text:        formatTaskList(list),
		Menu:        TaskListMenu(list),
		EditInPlace: editInPlace,
	}}, nil
}

func (e *Engine) statusList(ctx context.Context, userID int64, status tasks.Status) ([]Reply, error) {
	list, err := e.tasks.TasksByStatus(ctx, userID, status)
	if err != nil {
		return []Reply{textReply(msgInternalError)}, fmt.Errorf("list by status: %w", err)
	}
	switch status {
	case tasks.StatusDone:
		return []Reply{menuReply(formatCompleted(list), KeyboardMain)}, nil
	case tasks.StatusInProgress:
		return []Reply{textReply(formatInProgress(list))}, nil
	default:
		return []Reply{textReply(formatBacklog(list))}, nil
	}
}

func (e *Engine) upcomingDeadlines(ctx context.Context, userID int64) ([]Reply, error) {
	list, err := e.tasks.UpcomingDeadlines(ctx, userID)
	if err != nil {
		return []Reply{textReply(msgInternalError)}, fmt.Errorf("upcoming deadlines: %w", err)
	}
	if len(list) == 0 {
		return []Reply{textReply(msgNoUpcomingDeadlines)}, nil
	}
	return []Reply{menuReply(formatUpcoming(list, e.now()), KeyboardMain)}, nil
}
