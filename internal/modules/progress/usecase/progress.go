package usecase

import (
	"context"

	entrydomain "habitforge/internal/modules/entry/domain"
	entryin "habitforge/internal/modules/entry/port/in"
	"habitforge/internal/modules/progress/domain"
	"habitforge/internal/modules/progress/dto"
	progressin "habitforge/internal/modules/progress/port/in"
	"habitforge/internal/modules/progress/service"
)

// Interactor recomputes everything from the current journal on each call.
type Interactor struct {
	svc     *service.ProgressService
	entries entryin.Usecase
}

func NewInteractor(svc *service.ProgressService, entries entryin.Usecase) progressin.Usecase {
	return &Interactor{svc: svc, entries: entries}
}

func (i *Interactor) Stats(ctx context.Context) (dto.StatsOutput, error) {
	entries, err := i.snapshot(ctx)
	if err != nil {
		return dto.StatsOutput{}, err
	}
	return toStatsOutput(i.svc.Stats(entries)), nil
}

func (i *Interactor) Distribution(ctx context.Context) ([]dto.SliceOutput, error) {
	entries, err := i.snapshot(ctx)
	if err != nil {
		return nil, err
	}
	return toSliceOutputs(i.svc.Distribution(entries)), nil
}

func (i *Interactor) Summary(ctx context.Context) (dto.SummaryOutput, error) {
	entries, err := i.snapshot(ctx)
	if err != nil {
		return dto.SummaryOutput{}, err
	}
	return dto.SummaryOutput{
		Today:        i.svc.Today(),
		Stats:        toStatsOutput(i.svc.Stats(entries)),
		Distribution: toSliceOutputs(i.svc.Distribution(entries)),
	}, nil
}

func (i *Interactor) snapshot(ctx context.Context) (entrydomain.Entries, error) {
	list, err := i.entries.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make(entrydomain.Entries, len(list))
	for _, item := range list {
		out[item.Date] = entrydomain.DayEntry{
			Date:             item.Date,
			Category:         entrydomain.Category(item.Type),
			Note:             item.Note,
			Tags:             item.Tags,
			LearnedSomething: item.LearnedSomething,
		}
	}
	return out, nil
}

func toStatsOutput(stats domain.Stats) dto.StatsOutput {
	return dto.StatsOutput{
		TotalScore:            stats.TotalScore,
		CurrentStreak:         stats.CurrentStreak,
		LongestStreak:         stats.LongestStreak,
		PositiveDayPercentage: stats.PositiveDayPercentage,
	}
}

func toSliceOutputs(slices []domain.Slice) []dto.SliceOutput {
	out := make([]dto.SliceOutput, 0, len(slices))
	for _, slice := range slices {
		out = append(out, dto.SliceOutput{
			Type:  string(slice.Category),
			Label: slice.Label,
			Color: slice.Color,
			Count: slice.Count,
		})
	}
	return out
}
