package usecase_test

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/hashicorp/go-hclog"
	"github.com/jonboulle/clockwork"

	entryout "habitforge/internal/modules/entry/adapter/out"
	"habitforge/internal/modules/entry/domain"
	"habitforge/internal/modules/entry/dto"
	entryin "habitforge/internal/modules/entry/port/in"
	"habitforge/internal/modules/entry/service"
	"habitforge/internal/modules/entry/usecase"
	apperrors "habitforge/internal/platform/errors"
	"habitforge/internal/platform/kv"
)

type failingStore struct{}

func (failingStore) Init(context.Context) (domain.Session, error) {
	return domain.Session{Mode: domain.ModeLocal}, nil
}
func (failingStore) Load(context.Context) (domain.Entries, error) { return domain.Entries{}, nil }
func (failingStore) Save(context.Context, domain.DayEntry) error {
	return errors.New("disk full")
}

// ctxStore honors cancellation on every call, like a network backend would.
type ctxStore struct {
	entries domain.Entries
}

func (s ctxStore) Init(ctx context.Context) (domain.Session, error) {
	return domain.Session{Mode: domain.ModeLocal}, ctx.Err()
}

func (s ctxStore) Load(ctx context.Context) (domain.Entries, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return s.entries, nil
}

func (s ctxStore) Save(ctx context.Context, _ domain.DayEntry) error { return ctx.Err() }

// blockingStore parks every Save until release is closed.
type blockingStore struct {
	started chan struct{}
	release chan struct{}
}

func (s blockingStore) Init(context.Context) (domain.Session, error) {
	return domain.Session{Mode: domain.ModeRemote, UserID: "user_slow"}, nil
}
func (s blockingStore) Load(context.Context) (domain.Entries, error) { return domain.Entries{}, nil }
func (s blockingStore) Save(context.Context, domain.DayEntry) error {
	close(s.started)
	<-s.release
	return nil
}

var today = time.Date(2024, time.March, 15, 18, 30, 0, 0, time.Local)

func openLocal(t *testing.T, dbPath string) *kv.SQLiteStore {
	t.Helper()
	db, err := kv.OpenSQLite(dbPath)
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func newLocalInteractor(t *testing.T, db kv.Store) entryin.Usecase {
	t.Helper()
	svc := service.NewEntryService(hclog.NewNullLogger(), entryout.NewLocalEntryStore(db), nil)
	return usecase.NewInteractor(svc, clockwork.NewFakeClockAt(today))
}

func TestRecordPersistsAcrossSessions(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	dbPath := filepath.Join(t.TempDir(), "habitforge.db")
	first := newLocalInteractor(t, openLocal(t, dbPath))

	out, err := first.Record(ctx, dto.RecordInput{
		Date:             "2024-03-15",
		Type:             "green_light",
		Note:             "good day",
		Tags:             []string{" Gym ", "Reading", "Gym", ""},
		LearnedSomething: true,
	})
	if err != nil {
		t.Fatalf("record: %v", err)
	}
	if out.Sync != string(domain.SyncOK) {
		t.Fatalf("expected synced outcome, got %+v", out)
	}
	if out.Entry.Type != "GREEN_LIGHT" || out.Entry.Label != "Good" {
		t.Fatalf("unexpected stored entry %+v", out.Entry)
	}
	if len(out.Entry.Tags) != 2 || out.Entry.Tags[0] != "Gym" || out.Entry.Tags[1] != "Reading" {
		t.Fatalf("expected normalized tags [Gym Reading], got %v", out.Entry.Tags)
	}

	second := newLocalInteractor(t, openLocal(t, dbPath))
	got, err := second.Get(ctx, "2024-03-15")
	if err != nil {
		t.Fatalf("get in new session: %v", err)
	}
	if got.Note != "good day" || !got.LearnedSomething {
		t.Fatalf("unexpected reloaded entry %+v", got)
	}
	if session := second.Session(ctx); session.Mode != "local" || session.UserID != "" {
		t.Fatalf("unexpected session %+v", session)
	}
}

func TestRecordReplacesSameDate(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	interactor := newLocalInteractor(t, openLocal(t, filepath.Join(t.TempDir(), "db")))
	if _, err := interactor.Record(ctx, dto.RecordInput{Date: "2024-03-01", Type: "GREEN_INTENSE"}); err != nil {
		t.Fatalf("record: %v", err)
	}
	if _, err := interactor.Record(ctx, dto.RecordInput{Date: "2024-03-01", Type: "Failure"}); err != nil {
		t.Fatalf("replace: %v", err)
	}
	list, err := interactor.List(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(list) != 1 || list[0].Type != "RED_INTENSE" {
		t.Fatalf("expected single replaced entry, got %+v", list)
	}
}

func TestRecordRejectsInvalidInput(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	interactor := newLocalInteractor(t, openLocal(t, filepath.Join(t.TempDir(), "db")))

	if _, err := interactor.Record(ctx, dto.RecordInput{Date: "2024-03-16", Type: "NEUTRAL"}); !errors.Is(err, apperrors.ErrFutureDate) {
		t.Fatalf("expected ErrFutureDate for tomorrow, got %v", err)
	}
	if _, err := interactor.Record(ctx, dto.RecordInput{Date: "2024-3-1", Type: "NEUTRAL"}); !errors.Is(err, apperrors.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for non-canonical date, got %v", err)
	}
	if _, err := interactor.Record(ctx, dto.RecordInput{Date: "2024-03-01", Type: "GREAT"}); !errors.Is(err, apperrors.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for unknown category, got %v", err)
	}
	if list, _ := interactor.List(ctx); len(list) != 0 {
		t.Fatalf("rejected input must not reach the journal, got %+v", list)
	}
}

func TestRecordKeepsOptimisticStateWhenSaveFails(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	svc := service.NewEntryService(hclog.NewNullLogger(), failingStore{}, nil)
	interactor := usecase.NewInteractor(svc, clockwork.NewFakeClockAt(today))

	out, err := interactor.Record(ctx, dto.RecordInput{Date: "2024-03-10", Type: "RED_LIGHT"})
	if err != nil {
		t.Fatalf("record must not fail on persistence error: %v", err)
	}
	if out.Sync != string(domain.SyncFailed) || out.SyncError != "disk full" {
		t.Fatalf("expected failed outcome, got %+v", out)
	}
	if _, err := interactor.Get(ctx, "2024-03-10"); err != nil {
		t.Fatalf("expected entry kept in memory, got %v", err)
	}
}

func TestGetMissingAndMonthFilter(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	interactor := newLocalInteractor(t, openLocal(t, filepath.Join(t.TempDir(), "db")))
	for _, date := range []string{"2024-02-29", "2024-03-01", "2024-03-14"} {
		if _, err := interactor.Record(ctx, dto.RecordInput{Date: date, Type: "NEUTRAL"}); err != nil {
			t.Fatalf("record %s: %v", date, err)
		}
	}
	if _, err := interactor.Get(ctx, "2024-01-01"); !errors.Is(err, apperrors.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	march, err := interactor.Month(ctx, 2024, time.March)
	if err != nil {
		t.Fatalf("month: %v", err)
	}
	if len(march) != 2 || march[0].Date != "2024-03-01" {
		t.Fatalf("unexpected march entries %+v", march)
	}
	if _, err := interactor.Month(ctx, 2024, time.Month(13)); !errors.Is(err, apperrors.ErrInvalidInput) {
		t.Fatalf("expected invalid month error, got %v", err)
	}
}

func TestFutureGuardMovesWithClock(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	clk := clockwork.NewFakeClockAt(today)
	svc := service.NewEntryService(hclog.NewNullLogger(), entryout.NewLocalEntryStore(openLocal(t, filepath.Join(t.TempDir(), "db"))), nil)
	interactor := usecase.NewInteractor(svc, clk)

	if _, err := interactor.Record(ctx, dto.RecordInput{Date: "2024-03-16", Type: "NEUTRAL"}); !errors.Is(err, apperrors.ErrFutureDate) {
		t.Fatalf("expected ErrFutureDate before midnight, got %v", err)
	}
	clk.Advance(6 * time.Hour)
	if _, err := interactor.Record(ctx, dto.RecordInput{Date: "2024-03-16", Type: "NEUTRAL"}); err != nil {
		t.Fatalf("expected record to succeed after midnight, got %v", err)
	}
}

func TestCancelledFirstCallDoesNotPoisonSession(t *testing.T) {
	t.Parallel()
	store := ctxStore{entries: domain.Entries{
		"2024-03-01": {Date: "2024-03-01", Category: domain.GreenLight, Tags: []string{}},
	}}
	svc := service.NewEntryService(hclog.NewNullLogger(), store, nil)
	interactor := usecase.NewInteractor(svc, clockwork.NewFakeClockAt(today))

	cancelled, cancel := context.WithCancel(context.Background())
	cancel()
	if session := interactor.Session(cancelled); session.Mode != string(domain.ModeLocal) {
		t.Fatalf("unexpected session %+v", session)
	}

	list, err := interactor.List(context.Background())
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(list) != 1 || list[0].Date != "2024-03-01" {
		t.Fatalf("expected stored entry after cancelled first call, got %+v", list)
	}
}

func TestReadsDoNotWaitOnSlowSave(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	store := blockingStore{started: make(chan struct{}), release: make(chan struct{})}
	svc := service.NewEntryService(hclog.NewNullLogger(), store, store)
	interactor := usecase.NewInteractor(svc, clockwork.NewFakeClockAt(today))

	done := make(chan error, 1)
	go func() {
		_, err := interactor.Record(ctx, dto.RecordInput{Date: "2024-03-14", Type: "NEUTRAL"})
		done <- err
	}()
	<-store.started

	listed := make(chan []dto.EntryOutput, 1)
	go func() {
		list, _ := interactor.List(ctx)
		listed <- list
	}()
	select {
	case list := <-listed:
		if len(list) != 1 || list[0].Date != "2024-03-14" {
			t.Fatalf("expected in-flight entry visible, got %+v", list)
		}
	case <-time.After(2 * time.Second):
		t.Fatalf("list blocked behind save")
	}

	close(store.release)
	if err := <-done; err != nil {
		t.Fatalf("record: %v", err)
	}
}
