package usecase

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"habitforge/internal/modules/entry/domain"
	"habitforge/internal/modules/entry/dto"
	entryin "habitforge/internal/modules/entry/port/in"
	"habitforge/internal/modules/entry/service"
	"habitforge/internal/platform/clock"
	"habitforge/internal/platform/dates"
	apperrors "habitforge/internal/platform/errors"
)

// Interactor owns the in-memory journal for one session. The backing store is
// initialized and loaded on first use. mu guards the journal; saveMu
// serializes store writes.
type Interactor struct {
	svc   *service.EntryService
	clock clock.Clock

	saveMu  sync.Mutex
	mu      sync.Mutex
	opened  bool
	session domain.Session
	journal domain.Entries
}

func NewInteractor(svc *service.EntryService, clock clock.Clock) entryin.Usecase {
	return &Interactor{svc: svc, clock: clock}
}

// open must be called with mu held. The session outlives the request that
// happens to open it, so the caller's cancellation is detached.
func (i *Interactor) open(ctx context.Context) {
	if i.opened {
		return
	}
	ctx = context.WithoutCancel(ctx)
	i.session = i.svc.Init(ctx)
	i.journal = i.svc.Load(ctx)
	i.opened = true
}

func (i *Interactor) Session(ctx context.Context) dto.SessionOutput {
	i.mu.Lock()
	defer i.mu.Unlock()
	i.open(ctx)
	return dto.SessionOutput{Mode: string(i.session.Mode), UserID: i.session.UserID}
}

func (i *Interactor) Record(ctx context.Context, input dto.RecordInput) (dto.RecordOutput, error) {
	category, err := domain.ParseCategory(input.Type)
	if err != nil {
		return dto.RecordOutput{}, err
	}
	entry := domain.DayEntry{
		Date:             strings.TrimSpace(input.Date),
		Category:         category,
		Note:             input.Note,
		Tags:             domain.NormalizeTags(input.Tags),
		LearnedSomething: input.LearnedSomething,
	}
	if err := entry.Validate(); err != nil {
		return dto.RecordOutput{}, err
	}
	if dates.IsFuture(entry.Date, i.clock.Now()) {
		return dto.RecordOutput{}, fmt.Errorf("%w: %s", apperrors.ErrFutureDate, entry.Date)
	}

	i.saveMu.Lock()
	defer i.saveMu.Unlock()

	i.mu.Lock()
	i.open(ctx)
	i.journal[entry.Date] = entry
	i.mu.Unlock()

	// A remote save is a lookup plus a write; readers see the new entry meanwhile.
	outcome := i.svc.Save(ctx, entry)
	return dto.RecordOutput{Entry: toOutput(entry), Sync: string(outcome.Status), SyncError: outcome.Err}, nil
}

func (i *Interactor) Get(ctx context.Context, date string) (dto.EntryOutput, error) {
	date = strings.TrimSpace(date)
	if _, err := dates.Parse(date); err != nil {
		return dto.EntryOutput{}, err
	}
	i.mu.Lock()
	defer i.mu.Unlock()
	i.open(ctx)
	entry, ok := i.journal[date]
	if !ok {
		return dto.EntryOutput{}, fmt.Errorf("%w: no entry for %s", apperrors.ErrNotFound, date)
	}
	return toOutput(entry), nil
}

func (i *Interactor) List(ctx context.Context) ([]dto.EntryOutput, error) {
	i.mu.Lock()
	defer i.mu.Unlock()
	i.open(ctx)
	sorted := i.journal.Sorted()
	out := make([]dto.EntryOutput, 0, len(sorted))
	for _, entry := range sorted {
		out = append(out, toOutput(entry))
	}
	return out, nil
}

func (i *Interactor) Month(ctx context.Context, year int, month time.Month) ([]dto.EntryOutput, error) {
	if month < time.January || month > time.December {
		return nil, fmt.Errorf("%w: month %d out of range", apperrors.ErrInvalidInput, int(month))
	}
	prefix := dates.MonthPrefix(year, month) + "-"
	i.mu.Lock()
	defer i.mu.Unlock()
	i.open(ctx)
	out := []dto.EntryOutput{}
	for _, entry := range i.journal.Sorted() {
		if strings.HasPrefix(entry.Date, prefix) {
			out = append(out, toOutput(entry))
		}
	}
	return out, nil
}

func toOutput(entry domain.DayEntry) dto.EntryOutput {
	tags := append([]string{}, entry.Tags...)
	return dto.EntryOutput{
		Date:             entry.Date,
		Type:             string(entry.Category),
		Label:            entry.Category.Label(),
		Color:            entry.Category.Color(),
		Note:             entry.Note,
		Tags:             tags,
		LearnedSomething: entry.LearnedSomething,
	}
}
