package dialog

import (
	"errors"
	"regexp"
	"strings"
	"time"
)

// deadlinePattern gates input shape before any parse attempt: two-digit
// day and month, four-digit year, 24h time.
var deadlinePattern = regexp.MustCompile(`^\d{2}\.\d{2}\.\d{4} \d{2}:\d{2}$`)

const deadlineLayout = "02.01.2006 15:04"

var (
	// ErrDeadlineFormat reports input that is not DD.MM.YYYY HH:MM or is
	// not a real calendar date.
	ErrDeadlineFormat = errors.New("invalid deadline format")
	// ErrDeadlinePast reports a well-formed date strictly before now.
	ErrDeadlinePast = errors.New("deadline in the past")
)

// IsNoDeadline reports whether the input is the no-deadline sentinel.
// Both the English and Russian spellings are accepted, case-insensitively.
func IsNoDeadline(input string) bool {
	s := strings.ToLower(strings.TrimSpace(input))
	return s == "no" || s == "нет"
}

// ParseDeadline parses a deadline entered during a flow. The sentinel
// yields (nil, nil). A date equal to now is accepted; strictly earlier
// is rejected with ErrDeadlinePast.
func ParseDeadline(input string, now time.Time) (*time.Time, error) {
	if IsNoDeadline(input) {
		return nil, nil
	}
	trimmed := strings.TrimSpace(input)
	if !deadlinePattern.MatchString(trimmed) {
		return nil, ErrDeadlineFormat
	}
	t, err := time.ParseInLocation(deadlineLayout, trimmed, now.Location())
	if err != nil {
		return nil, ErrDeadlineFormat
	}
	if t.Before(now) {
		return nil, ErrDeadlinePast
	}
	return &t, nil
}

// FormatDeadline renders a deadline back in the input format.
func FormatDeadline(t time.Time) string {
	return t.Format(deadlineLayout)
}
