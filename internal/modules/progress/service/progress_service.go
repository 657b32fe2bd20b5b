package service

import (
	entrydomain "habitforge/internal/modules/entry/domain"
	"habitforge/internal/modules/progress/domain"
	"habitforge/internal/platform/clock"
	"habitforge/internal/platform/dates"
)

type ProgressService struct {
	clock clock.Clock
}

func NewProgressService(clock clock.Clock) *ProgressService {
	return &ProgressService{clock: clock}
}

// Today is the reference day for the current streak.
func (s *ProgressService) Today() string {
	return dates.Today(s.clock.Now())
}

func (s *ProgressService) Stats(entries entrydomain.Entries) domain.Stats {
	return domain.Calculate(entries, s.Today())
}

func (s *ProgressService) Distribution(entries entrydomain.Entries) []domain.Slice {
	return domain.Distribution(entries)
}
