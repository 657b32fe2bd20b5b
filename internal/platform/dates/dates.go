// Package dates is the single source of truth for calendar-day handling.
// Dates travel as canonical YYYY-MM-DD strings built from local calendar fields,
// so lexical order equals chronological order.
package dates

import (
	"fmt"
	"time"

	apperrors "habitforge/internal/platform/errors"
)

const Layout = "2006-01-02"

// Format renders t's own calendar fields; it never shifts t to UTC first.
func Format(t time.Time) string {
	return t.Format(Layout)
}

// Parse anchors s to local midnight.
func Parse(s string) (time.Time, error) {
	t, err := time.ParseInLocation(Layout, s, time.Local)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: date %q must be YYYY-MM-DD", apperrors.ErrInvalidInput, s)
	}
	return t, nil
}

func Valid(s string) bool {
	_, err := Parse(s)
	return err == nil
}

func Today(now time.Time) string {
	return Format(now)
}

func IsToday(s string, now time.Time) bool {
	return s == Today(now)
}

// IsFuture reports whether s is strictly after the calendar day of now.
// Time of day is ignored on both sides. Malformed input is never future.
func IsFuture(s string, now time.Time) bool {
	if !Valid(s) {
		return false
	}
	return s > Today(now)
}

func DaysInMonth(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// FirstWeekday is the weekday of the 1st; Sunday is 0.
func FirstWeekday(year int, month time.Month) time.Weekday {
	return time.Date(year, month, 1, 0, 0, 0, 0, time.UTC).Weekday()
}

// MonthPrefix is the YYYY-MM prefix shared by every date in the month.
func MonthPrefix(year int, month time.Month) string {
	return fmt.Sprintf("%04d-%02d", year, int(month))
}
