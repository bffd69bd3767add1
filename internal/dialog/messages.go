package dialog

// Main menu button labels. The reply keyboard and the text router match on
// these exact strings.
const (
	ButtonAddTask    = "📝 Add Task"
	ButtonMyTasks    = "📋 My Tasks"
	ButtonDeadlines  = "⏰ Upcoming Deadlines"
	ButtonCompleted  = "✅ Completed"
	ButtonInProgress = "🔄 In Progress"
	ButtonBacklog    = "📥 Backlog"
	ButtonSettings   = "⚙️ Settings"
	ButtonHelp       = "❓ Help"
	ButtonBack       = "🔙 Back"
)

const (
	msgWelcome = "👋 Welcome to Task Manager Bot!\n\nManage your tasks with the buttons below:"
	msgUseMenu = "Use the menu buttons 👆"

	promptTaskName        = "Enter the task name:"
	promptTaskDescription = "Now enter the task description:"
	promptDescriptionBack = "Enter the task description:"
	promptTaskDeadline    = "Enter the deadline as DD.MM.YYYY HH:MM\nFor example: 25.12.2025 15:30\n\nOr send 'no' if the task has no deadline"

	promptEditName            = "Enter the new task name:"
	promptEditDescription     = "Name updated! Now enter the new description:"
	promptEditDescriptionBack = "Enter the new task description:"
	promptEditDeadline        = "Description updated! Now enter the new deadline or 'no' to clear it:"
	msgTaskUpdated            = "✅ Task fully updated!"

	errBadDateFormat = "❌ Invalid date format. Use: DD.MM.YYYY HH:MM\nFor example: 25.12.2025 15:30"
	errPastDate      = "❌ The date cannot be in the past. Enter a valid date:"

	msgNoTasks             = "📋 You have no tasks yet"
	msgNoUpcomingDeadlines = "🎉 No upcoming deadlines!"

	msgTaskNotFound  = "❌ Task not found"
	msgInternalError = "❌ Something went wrong while handling the request"
	msgSeparator     = "Please don't tap the separator 😄"

	msgSettings = "⚙️ Settings:\n\n" +
		"• Notifications: ✅ On\n" +
		"• Reminder time: 09:00\n" +
		"• Timezone: UTC+3"
	msgHelp = "❓ Help:\n\n" +
		"• Add a task with \"" + ButtonAddTask + "\"\n" +
		"• Enter deadlines as DD.MM.YYYY HH:MM\n" +
		"• Browse your tasks in \"" + ButtonMyTasks + "\"\n" +
		"• Track due dates in \"" + ButtonDeadlines + "\"\n" +
		"• Mark finished tasks as completed\n\n" +
		"📅 Date format example: 25.12.2025 15:30"
)
