package domain

import (
	"math"

	entrydomain "habitforge/internal/modules/entry/domain"
)

type Stats struct {
	TotalScore            int
	CurrentStreak         int
	LongestStreak         int
	PositiveDayPercentage int
}

// Slice is one non-empty category bucket of the distribution.
type Slice struct {
	Category entrydomain.Category
	Label    string
	Color    string
	Count    int
}

// Calculate derives the aggregate metrics in one newest-to-oldest pass.
// today is a canonical date; entries after it still count toward score,
// percentage and longest streak but never touch the current streak.
// Entries with an unknown category are ignored.
func Calculate(entries entrydomain.Entries, today string) Stats {
	all := entries.Sorted()
	sorted := all[:0]
	for _, entry := range all {
		if entry.Category.Validate() == nil {
			sorted = append(sorted, entry)
		}
	}
	if len(sorted) == 0 {
		return Stats{}
	}

	var stats Stats
	positive := 0
	active := true
	run := 0
	for i := len(sorted) - 1; i >= 0; i-- {
		entry := sorted[i]
		stats.TotalScore += entry.Category.Score()
		reached := entry.Date <= today

		if entry.Category.Positive() {
			positive++
			run++
			if active && reached {
				stats.CurrentStreak++
			}
			continue
		}

		if active && reached {
			active = false
		}
		if run > stats.LongestStreak {
			stats.LongestStreak = run
		}
		run = 0
	}
	if run > stats.LongestStreak {
		stats.LongestStreak = run
	}
	stats.PositiveDayPercentage = int(math.Round(float64(positive) * 100 / float64(len(sorted))))
	return stats
}

// Distribution counts entries per category in enumeration order, skipping empty buckets.
func Distribution(entries entrydomain.Entries) []Slice {
	counts := make(map[entrydomain.Category]int, len(entrydomain.Categories))
	for _, entry := range entries {
		counts[entry.Category]++
	}
	out := make([]Slice, 0, len(entrydomain.Categories))
	for _, category := range entrydomain.Categories {
		if counts[category] == 0 {
			continue
		}
		out = append(out, Slice{
			Category: category,
			Label:    category.Label(),
			Color:    category.Color(),
			Count:    counts[category],
		})
	}
	return out
}
