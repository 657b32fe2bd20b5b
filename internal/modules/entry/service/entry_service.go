package service

import (
	"context"

	"github.com/hashicorp/go-hclog"

	"habitforge/internal/modules/entry/domain"
	entryout "habitforge/internal/modules/entry/port/out"
)

// EntryService applies the degradation policy over the selected store: persistence
// failures are logged and absorbed, never surfaced to callers.
type EntryService struct {
	logger hclog.Logger
	local  entryout.EntryStore
	remote entryout.EntryStore
	active entryout.EntryStore
}

// NewEntryService takes the always-available local store and an optional remote
// store; remote is nil when no credentials are configured.
func NewEntryService(logger hclog.Logger, local, remote entryout.EntryStore) *EntryService {
	if logger == nil {
		logger = hclog.NewNullLogger()
	}
	return &EntryService{logger: logger, local: local, remote: remote, active: local}
}

func (s *EntryService) Init(ctx context.Context) domain.Session {
	if s.remote == nil {
		s.logger.Warn("remote backend not configured, running local-only")
		return s.initLocal(ctx)
	}
	session, err := s.remote.Init(ctx)
	if err != nil {
		s.logger.Warn("remote init failed, falling back to local storage", "error", err)
		return s.initLocal(ctx)
	}
	s.active = s.remote
	s.logger.Info("remote backend ready", "user_id", session.UserID)
	return session
}

func (s *EntryService) initLocal(ctx context.Context) domain.Session {
	s.active = s.local
	session, err := s.local.Init(ctx)
	if err != nil {
		s.logger.Warn("local init failed", "error", err)
		return domain.Session{Mode: domain.ModeLocal}
	}
	return session
}

func (s *EntryService) Load(ctx context.Context) domain.Entries {
	entries, err := s.active.Load(ctx)
	if err != nil {
		s.logger.Error("load entries failed, starting empty", "error", err)
		return domain.Entries{}
	}
	valid := make(domain.Entries, len(entries))
	for key, entry := range entries {
		if err := entry.Validate(); err != nil {
			s.logger.Warn("dropping malformed entry", "key", key, "error", err)
			continue
		}
		valid[entry.Date] = entry
	}
	return valid
}

func (s *EntryService) Save(ctx context.Context, entry domain.DayEntry) domain.SaveOutcome {
	if err := s.active.Save(ctx, entry); err != nil {
		s.logger.Error("save entry failed", "date", entry.Date, "error", err)
		return domain.SaveOutcome{Status: domain.SyncFailed, Err: err.Error()}
	}
	return domain.SaveOutcome{Status: domain.SyncOK}
}
