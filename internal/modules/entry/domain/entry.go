package domain

import (
	"fmt"
	"sort"
	"strings"

	"habitforge/internal/platform/dates"
	apperrors "habitforge/internal/platform/errors"
)

type Category string

const (
	GreenIntense Category = "GREEN_INTENSE"
	GreenLight   Category = "GREEN_LIGHT"
	Neutral      Category = "NEUTRAL"
	RedLight     Category = "RED_LIGHT"
	RedIntense   Category = "RED_INTENSE"
)

// Categories is the fixed enumeration order, best to worst.
var Categories = []Category{GreenIntense, GreenLight, Neutral, RedLight, RedIntense}

type categoryInfo struct {
	label string
	color string
	score int
}

var categoryTable = map[Category]categoryInfo{
	GreenIntense: {label: "Intense", color: "#059669", score: 1},
	GreenLight:   {label: "Good", color: "#34d399", score: 1},
	Neutral:      {label: "Rest", color: "#fbbf24", score: 0},
	RedLight:     {label: "Slip", color: "#fb7185", score: -1},
	RedIntense:   {label: "Failure", color: "#dc2626", score: -1},
}

func (c Category) Validate() error {
	if _, ok := categoryTable[c]; !ok {
		return fmt.Errorf("%w: unsupported category %q", apperrors.ErrInvalidInput, string(c))
	}
	return nil
}

// Score is the fixed contribution to the total score. Unknown categories score 0.
func (c Category) Score() int { return categoryTable[c].score }

// Positive covers both greens and neutral; only reds break a streak.
func (c Category) Positive() bool { return c.Score() >= 0 }

func (c Category) Label() string { return categoryTable[c].label }

func (c Category) Color() string { return categoryTable[c].color }

// ParseCategory accepts the canonical name, case-insensitively, or a display label.
func ParseCategory(raw string) (Category, error) {
	v := strings.TrimSpace(raw)
	for _, c := range Categories {
		if strings.EqualFold(v, string(c)) || strings.EqualFold(v, c.Label()) {
			return c, nil
		}
	}
	return "", fmt.Errorf("%w: unsupported category %q", apperrors.ErrInvalidInput, raw)
}

type DayEntry struct {
	Date             string   `json:"date"`
	Category         Category `json:"type"`
	Note             string   `json:"note"`
	Tags             []string `json:"tags"`
	LearnedSomething bool     `json:"learnedSomething"`
}

func (e DayEntry) Validate() error {
	if _, err := dates.Parse(e.Date); err != nil {
		return err
	}
	return e.Category.Validate()
}

// Entries is keyed by canonical date; one entry per day.
type Entries map[string]DayEntry

// Sorted returns the entries in ascending date order.
func (m Entries) Sorted() []DayEntry {
	out := make([]DayEntry, 0, len(m))
	for _, e := range m {
		out = append(out, e)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date < out[j].Date })
	return out
}

// NormalizeTags trims, drops blanks and keeps the first occurrence of each tag.
func NormalizeTags(tags []string) []string {
	out := make([]string, 0, len(tags))
	seen := make(map[string]struct{}, len(tags))
	for _, tag := range tags {
		tag = strings.TrimSpace(tag)
		if tag == "" {
			continue
		}
		if _, dup := seen[tag]; dup {
			continue
		}
		seen[tag] = struct{}{}
		out = append(out, tag)
	}
	return out
}

var PresetTags = []string{
	"Gym", "Running", "Yoga", "Swimming", "Cycling",
	"Fast Food", "Alcohol", "Sweets", "Smoking",
	"Reading", "Meditation", "Journal", "Study", "Work",
}
