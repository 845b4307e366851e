package ledger

import (
	"strings"
	"time"

	"github.com/fgiusti90/psico-app/model"
)

// ParseDate parses a YYYY-MM-DD calendar date. Impossible dates such as
// 2024-02-30 are rejected.
func ParseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, invalid("date", "date is required")
	}
	t, err := time.Parse(model.DateLayout, s)
	if err != nil {
		return time.Time{}, invalid("date", "must be a valid YYYY-MM-DD date")
	}
	return t, nil
}

// NormalizeMonth turns YYYY-MM or any YYYY-MM-DD into the first day of that month.
func NormalizeMonth(s string) (string, error) {
	s = strings.TrimSpace(s)
	if len(s) == len("2006-01") {
		s += "-01"
	}
	t, err := ParseDate(s)
	if err != nil {
		return "", invalid("month", "must be YYYY-MM or YYYY-MM-DD")
	}
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC).Format(model.DateLayout), nil
}
