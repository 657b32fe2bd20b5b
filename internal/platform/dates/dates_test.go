package dates_test

import (
	"errors"
	"testing"
	"time"

	"habitforge/internal/platform/dates"
	apperrors "habitforge/internal/platform/errors"
)

func TestFormatUsesLocalCalendarFields(t *testing.T) {
	t.Parallel()
	zone := time.FixedZone("UTC+9", 9*60*60)
	// 23:30 UTC on the 14th is already the 15th nine hours east.
	instant := time.Date(2026, 3, 14, 23, 30, 0, 0, time.UTC).In(zone)
	if got := dates.Format(instant); got != "2026-03-15" {
		t.Fatalf("expected 2026-03-15, got %s", got)
	}
}

func TestParseRoundTripAndMidnight(t *testing.T) {
	t.Parallel()
	parsed, err := dates.Parse("2024-02-29")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if parsed.Hour() != 0 || parsed.Minute() != 0 || parsed.Second() != 0 {
		t.Fatalf("expected local midnight, got %v", parsed)
	}
	if dates.Format(parsed) != "2024-02-29" {
		t.Fatalf("round trip mismatch: %s", dates.Format(parsed))
	}

	for _, bad := range []string{"", "2024-2-3", "2023-02-29", "yesterday", "2024-02-29T00:00:00"} {
		if _, err := dates.Parse(bad); !errors.Is(err, apperrors.ErrInvalidInput) {
			t.Fatalf("expected invalid input for %q, got %v", bad, err)
		}
	}
}

func TestTodayAndFuture(t *testing.T) {
	t.Parallel()
	now := time.Date(2026, 10, 19, 23, 59, 0, 0, time.Local)
	if !dates.IsToday("2026-10-19", now) {
		t.Fatalf("expected 2026-10-19 to be today")
	}
	if dates.IsToday("2026-10-18", now) {
		t.Fatalf("yesterday must not be today")
	}
	if dates.IsFuture("2026-10-19", now) {
		t.Fatalf("today is not future")
	}
	if !dates.IsFuture("2026-10-20", now) {
		t.Fatalf("tomorrow is future")
	}
	if dates.IsFuture("2025-12-31", now) {
		t.Fatalf("past date is not future")
	}
	if dates.IsFuture("garbage", now) {
		t.Fatalf("malformed date is never future")
	}
}

func TestMonthArithmetic(t *testing.T) {
	t.Parallel()
	cases := []struct {
		year  int
		month time.Month
		days  int
		first time.Weekday
	}{
		{2024, time.February, 29, time.Thursday},
		{2023, time.February, 28, time.Wednesday},
		{2026, time.October, 31, time.Thursday},
		{2026, time.November, 30, time.Sunday},
	}
	for _, tc := range cases {
		if got := dates.DaysInMonth(tc.year, tc.month); got != tc.days {
			t.Fatalf("DaysInMonth(%d, %s) = %d, want %d", tc.year, tc.month, got, tc.days)
		}
		if got := dates.FirstWeekday(tc.year, tc.month); got != tc.first {
			t.Fatalf("FirstWeekday(%d, %s) = %s, want %s", tc.year, tc.month, got, tc.first)
		}
	}
	if got := dates.MonthPrefix(2026, time.March); got != "2026-03" {
		t.Fatalf("unexpected month prefix %s", got)
	}
}
