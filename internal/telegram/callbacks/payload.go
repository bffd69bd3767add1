// Package callbacks decodes inline button payloads. Payloads are plain
// underscore-delimited strings (e.g. "complete_42", "status_42_DONE",
// "back_to_main") set directly as callback data.
package callbacks

import (
	"strings"

	tele "gopkg.in/telebot.v4"
)

// Data returns the raw callback payload. Telebot prefixes data produced by
// its own markup builders with "\f"; strip it so raw payloads compare equal.
func Data(c tele.Context) string {
	cb := c.Callback()
	if cb == nil {
		return ""
	}
	return strings.TrimSpace(strings.TrimPrefix(cb.Data, "\f"))
}

// Action returns the leading token of an underscore-delimited payload.
// Navigation payloads like "back_to_tasks" must be matched on the full
// data before falling back to the action prefix.
func Action(data string) string {
	if idx := strings.IndexByte(data, '_'); idx > 0 {
		return data[:idx]
	}
	return data
}
