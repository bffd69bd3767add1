package dialog

import (
	"errors"
	"testing"
	"time"
)

func TestParseDeadlineAccepted(t *testing.T) {
	now := time.Date(2026, 8, 31, 10, 0, 0, 0, time.UTC)
	got, err := ParseDeadline("25.12.2099 15:30", now)
	if err != nil {
		t.Fatalf("ParseDeadline: %v", err)
	}
	want := time.Date(2099, 12, 25, 15, 30, 0, 0, time.UTC)
	if got == nil || !got.Equal(want) {
		t.Errorf("parsed = %v, want %v", got, want)
	}
}

func TestParseDeadlineSentinel(t *testing.T) {
	now := time.Now()
	for _, input := range []string{"no", "NO", "нет", "Нет", " нет "} {
		got, err := ParseDeadline(input, now)
		if err != nil || got != nil {
			t.Errorf("ParseDeadline(%q) = %v, %v; want nil, nil", input, got, err)
		}
	}
}

func TestParseDeadlineFormatErrors(t *testing.T) {
	now := time.Date(2026, 8, 31, 10, 0, 0, 0, time.UTC)
	inputs := []string{
		"25.12.2099",
		"25.12.2099 5:30",
		"5.12.2099 15:30",
		"2099-12-25 15:30",
		"25/12/2099 15:30",
		"tomorrow",
		"25.12.2099 15:30 extra",
		"",
	}
	for _, input := range inputs {
		if _, err := ParseDeadline(input, now); !errors.Is(err, ErrDeadlineFormat) {
			t.Errorf("ParseDeadline(%q) err = %v, want ErrDeadlineFormat", input, err)
		}
	}
}

func TestParseDeadlineInvalidCalendarDate(t *testing.T) {
	now := time.Date(2026, 8, 31, 10, 0, 0, 0, time.UTC)
	// Matches the shape but is not a real date under strict parsing.
	if _, err := ParseDeadline("31.02.2099 10:00", now); !errors.Is(err, ErrDeadlineFormat) {
		t.Errorf("err = %v, want ErrDeadlineFormat", err)
	}
}

func TestParseDeadlinePast(t *testing.T) {
	now := time.Date(2026, 8, 31, 10, 0, 0, 0, time.UTC)
	if _, err := ParseDeadline("30.08.2026 10:00", now); !errors.Is(err, ErrDeadlinePast) {
		t.Errorf("err = %v, want ErrDeadlinePast", err)
	}
	// Exactly now is accepted.
	if _, err := ParseDeadline("31.08.2026 10:00", now); err != nil {
		t.Errorf("date equal to now rejected: %v", err)
	}
}
