package dialog

import (
	"fmt"

	"github.com/m3rciful/taskbot/internal/tasks"
)

// Callback payload actions. Payloads are underscore-delimited: the action,
// then the task id, then for status changes a status token.
const (
	actionInfo     = "info"
	actionComplete = "complete"
	actionEdit     = "edit"
	actionStatus   = "status"
	actionDelete   = "delete"

	payloadBackToTasks = "back_to_tasks"
	payloadBackToMain  = "back_to_main"
	payloadSeparator   = "separator"
)

var statusTokens = map[tasks.Status]string{
	tasks.StatusInProgress: "IN",
	tasks.StatusBacklog:    "BACKLOG",
	tasks.StatusDone:       "DONE",
}

var statusButtons = []struct {
	status tasks.Status
	label  string
}{
	{tasks.StatusInProgress, "🔄 In Progress"},
	{tasks.StatusBacklog, "📥 To Backlog"},
	{tasks.StatusDone, "✅ Done"},
}

// TaskListMenu builds the per-task inline keyboard: an info row, a
// complete/edit row, a status row omitting the current status, a delete
// row, and a separator, followed by one back-to-menu row.
func TaskListMenu(list []tasks.Task) *Menu {
	menu := &Menu{}
	for _, task := range list {
		menu.Rows = append(menu.Rows, []Button{{
			Text: fmt.Sprintf("📝 %s [%s]", task.Name, task.Status),
			Data: fmt.Sprintf("%s_%d", actionInfo, task.ID),
		}})
		menu.Rows = append(menu.Rows, []Button{
			{Text: "✅ Complete", Data: fmt.Sprintf("%s_%d", actionComplete, task.ID)},
			{Text: "✏️ Edit", Data: fmt.Sprintf("%s_%d", actionEdit, task.ID)},
		})
		var statusRow []Button
		for _, sb := range statusButtons {
			if sb.status == task.Status {
				continue
			}
			statusRow = append(statusRow, Button{
				Text: sb.label,
				Data: fmt.Sprintf("%s_%d_%s", actionStatus, task.ID, statusTokens[sb.status]),
			})
		}
		if len(statusRow) > 0 {
			menu.Rows = append(menu.Rows, statusRow)
		}
		menu.Rows = append(menu.Rows, []Button{
			{Text: "❌ Delete", Data: fmt.Sprintf("%s_%d", actionDelete, task.ID)},
		})
		menu.Rows = append(menu.Rows, []Button{
			{Text: "────────────", Data: payloadSeparator},
		})
	}
	menu.Rows = append(menu.Rows, []Button{
		{Text: "🔙 Back to Menu", Data: payloadBackToMain},
	})
	return menu
}

// CallbackKeys lists every registry key the task menus emit: the action
// prefixes plus the exact navigation payloads.
func CallbackKeys() []string {
	return []string{
		actionInfo, actionComplete, actionEdit, actionStatus, actionDelete,
		payloadBackToTasks, payloadBackToMain, payloadSeparator,
	}
}

// BackToTasksMenu builds the single-button keyboard attached to callback
// responses so the user can return to the task list.
func BackToTasksMenu() *Menu {
	return &Menu{Rows: [][]Button{{
		{Text: "🔙 Back to Tasks", Data: payloadBackToTasks},
	}}}
}

// MainKeyboardRows returns the main reply keyboard layout.
func MainKeyboardRows() [][]string {
	return [][]string{
		{ButtonAddTask, ButtonMyTasks},
		{ButtonDeadlines, ButtonCompleted},
		{ButtonInProgress, ButtonBacklog},
		{ButtonSettings, ButtonHelp},
	}
}

// BackKeyboardRows returns the mid-flow reply keyboard layout.
func BackKeyboardRows() [][]string {
	return [][]string{{ButtonBack}}
}
