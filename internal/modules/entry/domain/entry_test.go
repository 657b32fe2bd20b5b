package domain_test

import (
	"errors"
	"reflect"
	"testing"

	"habitforge/internal/modules/entry/domain"
	apperrors "habitforge/internal/platform/errors"
)

func TestCategoryTable(t *testing.T) {
	t.Parallel()
	want := map[domain.Category]int{
		domain.GreenIntense: 1,
		domain.GreenLight:   1,
		domain.Neutral:      0,
		domain.RedLight:     -1,
		domain.RedIntense:   -1,
	}
	if len(domain.Categories) != len(want) {
		t.Fatalf("expected %d categories, got %d", len(want), len(domain.Categories))
	}
	for c, score := range want {
		if c.Score() != score {
			t.Fatalf("%s score = %d, want %d", c, c.Score(), score)
		}
		if c.Positive() != (score >= 0) {
			t.Fatalf("%s positive = %t", c, c.Positive())
		}
		if c.Label() == "" || c.Color() == "" {
			t.Fatalf("%s is missing display metadata", c)
		}
	}
	if domain.Categories[0] != domain.GreenIntense || domain.Categories[4] != domain.RedIntense {
		t.Fatalf("enumeration order changed: %v", domain.Categories)
	}
}

func TestParseCategory(t *testing.T) {
	t.Parallel()
	for raw, want := range map[string]domain.Category{
		"GREEN_LIGHT": domain.GreenLight,
		"red_intense": domain.RedIntense,
		" Rest ":      domain.Neutral,
		"slip":        domain.RedLight,
	} {
		got, err := domain.ParseCategory(raw)
		if err != nil || got != want {
			t.Fatalf("ParseCategory(%q) = %s, %v; want %s", raw, got, err, want)
		}
	}
	if _, err := domain.ParseCategory("PURPLE"); !errors.Is(err, apperrors.ErrInvalidInput) {
		t.Fatalf("expected invalid input, got %v", err)
	}
}

func TestDayEntryValidate(t *testing.T) {
	t.Parallel()
	base := domain.DayEntry{Date: "2026-10-19", Category: domain.Neutral}
	if err := base.Validate(); err != nil {
		t.Fatalf("entry should be valid: %v", err)
	}
	badDate := base
	badDate.Date = "19/10/2026"
	if err := badDate.Validate(); err == nil {
		t.Fatalf("bad date should fail")
	}
	badCategory := base
	badCategory.Category = "MAYBE"
	if err := badCategory.Validate(); err == nil {
		t.Fatalf("bad category should fail")
	}
}

func TestNormalizeTagsKeepsFirstOccurrenceOrder(t *testing.T) {
	t.Parallel()
	got := domain.NormalizeTags([]string{" Gym", "Reading", "", "Gym", "Work ", "Reading"})
	want := []string{"Gym", "Reading", "Work"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("NormalizeTags = %v, want %v", got, want)
	}
	if empty := domain.NormalizeTags(nil); empty == nil || len(empty) != 0 {
		t.Fatalf("expected non-nil empty slice, got %#v", empty)
	}
}

func TestEntriesSorted(t *testing.T) {
	t.Parallel()
	entries := domain.Entries{
		"2026-10-19": {Date: "2026-10-19", Category: domain.GreenLight, Tags: []string{"Gym"}},
		"2025-12-31": {Date: "2025-12-31", Category: domain.RedLight},
		"2026-01-02": {Date: "2026-01-02", Category: domain.Neutral},
	}
	sorted := entries.Sorted()
	if sorted[0].Date != "2025-12-31" || sorted[1].Date != "2026-01-02" || sorted[2].Date != "2026-10-19" {
		t.Fatalf("unexpected order: %+v", sorted)
	}
}
