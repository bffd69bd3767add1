package dialog

import (
	"fmt"
	"strings"
	"time"

	"github.com/m3rciful/taskbot/internal/tasks"
)

func formatTaskCreated(task tasks.Task) string {
	var b strings.Builder
	b.WriteString("✅ Task created!\n\n")
	fmt.Fprintf(&b, "📝 Name: %s\n", task.Name)
	fmt.Fprintf(&b, "📋 Description: %s\n", task.Description)
	fmt.Fprintf(&b, "📊 Status: %s\n", task.Status)
	fmt.Fprintf(&b, "📊 Category: %s\n", task.Category)
	if task.Deadline != nil {
		fmt.Fprintf(&b, "⏰ Deadline: %s\n", FormatDeadline(*task.Deadline))
	}
	fmt.Fprintf(&b, "🆔 ID: %d", task.ID)
	return b.String()
}

func formatTaskDetails(task tasks.Task) string {
	var b strings.Builder
	fmt.Fprintf(&b, "📝 %s\n\n", task.Name)
	fmt.Fprintf(&b, "📋 Description: %s\n", task.Description)
	fmt.Fprintf(&b, "📊 Status: %s\n", task.Status.Label())
	fmt.Fprintf(&b, "📊 Category: %s\n", task.Category)
	if task.Deadline != nil {
		fmt.Fprintf(&b, "⏰ Deadline: %s\n", FormatDeadline(*task.Deadline))
	}
	fmt.Fprintf(&b, "🆔 ID: %d", task.ID)
	return b.String()
}

func formatTaskList(list []tasks.Task) string {
	var b strings.Builder
	b.WriteString("📋 Your tasks:\n\n")
	for _, task := range list {
		fmt.Fprintf(&b, "• %s [%s]", task.Name, task.Status)
		if task.Deadline != nil {
			fmt.Fprintf(&b, " - ⏰ %s", FormatDeadline(*task.Deadline))
		}
		b.WriteString("\n")
	}
	return b.String()
}

func formatCompleted(list []tasks.Task) string {
	var b strings.Builder
	b.WriteString("✅ Completed tasks:\n\n")
	if len(list) == 0 {
		b.WriteString("No completed tasks")
		return b.String()
	}
	for _, task := range list {
		fmt.Fprintf(&b, "• %s ✓\n", task.Name)
	}
	return b.String()
}

func formatInProgress(list []tasks.Task) string {
	var b strings.Builder
	b.WriteString("🔄 Tasks in progress:\n\n")
	if len(list) == 0 {
		b.WriteString("No tasks in progress")
		return b.String()
	}
	for _, task := range list {
		fmt.Fprintf(&b, "• %s\n", task.Name)
	}
	return b.String()
}

func formatBacklog(list []tasks.Task) string {
	var b strings.Builder
	b.WriteString("📥 Backlog tasks:\n\n")
	if len(list) == 0 {
		b.WriteString("No tasks in the backlog")
		return b.String()
	}
	for _, task := range list {
		fmt.Fprintf(&b, "• %s\n", task.Name)
	}
	return b.String()
}

func formatUpcoming(list []tasks.Task, now time.Time) string {
	var b strings.Builder
	b.WriteString("⏰ Upcoming deadlines:\n\n")
	for _, task := range list {
		left := task.Deadline.Sub(now)
		hours := int(left.Hours())
		var timeLeft string
		if hours < 24 {
			timeLeft = fmt.Sprintf("(%d hours)", hours)
		} else {
			timeLeft = fmt.Sprintf("(%d days)", hours/24)
		}
		fmt.Fprintf(&b, "• %s - %s %s\n", task.Name, FormatDeadline(*task.Deadline), timeLeft)
	}
	return b.String()
}
