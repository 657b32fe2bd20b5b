package out

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"habitforge/internal/modules/entry/domain"
	entryout "habitforge/internal/modules/entry/port/out"
	apperrors "habitforge/internal/platform/errors"
	"habitforge/internal/platform/kv"
)

const (
	DataKey     = "habitforged_data"
	IdentityKey = "habitforged_user_id"
)

// LocalEntryStore keeps the whole mapping as one JSON blob under DataKey.
type LocalEntryStore struct {
	kv kv.Store
}

func NewLocalEntryStore(store kv.Store) entryout.EntryStore {
	return &LocalEntryStore{kv: store}
}

func (s *LocalEntryStore) Init(context.Context) (domain.Session, error) {
	return domain.Session{Mode: domain.ModeLocal}, nil
}

func (s *LocalEntryStore) Load(ctx context.Context) (domain.Entries, error) {
	raw, ok, err := s.kv.Get(ctx, DataKey)
	if err != nil {
		return nil, fmt.Errorf("read local entries: %w", err)
	}
	if !ok || strings.TrimSpace(raw) == "" {
		return domain.Entries{}, nil
	}
	entries := domain.Entries{}
	if err := json.Unmarshal([]byte(raw), &entries); err != nil {
		return nil, fmt.Errorf("decode local entries: %w", err)
	}
	if entries == nil {
		entries = domain.Entries{}
	}
	return entries, nil
}

// Save rewrites the whole blob. Not atomic across processes; one writer per session.
func (s *LocalEntryStore) Save(ctx context.Context, entry domain.DayEntry) error {
	entries, err := s.Load(ctx)
	if err != nil {
		return err
	}
	entries[entry.Date] = entry
	payload, err := json.Marshal(entries)
	if err != nil {
		return fmt.Errorf("encode local entries: %w", err)
	}
	if err := s.kv.Set(ctx, DataKey, string(payload)); err != nil {
		return fmt.Errorf("write local entries: %w", err)
	}
	return nil
}

type KVIdentityStore struct {
	kv kv.Store
}

func NewKVIdentityStore(store kv.Store) entryout.IdentityStore {
	return &KVIdentityStore{kv: store}
}

func (s *KVIdentityStore) LoadIdentity(ctx context.Context) (string, error) {
	value, ok, err := s.kv.Get(ctx, IdentityKey)
	if err != nil {
		return "", fmt.Errorf("read identity: %w", err)
	}
	value = strings.TrimSpace(value)
	if !ok || value == "" {
		return "", apperrors.ErrNotFound
	}
	return value, nil
}

func (s *KVIdentityStore) SaveIdentity(ctx context.Context, userID string) error {
	if err := s.kv.Set(ctx, IdentityKey, userID); err != nil {
		return fmt.Errorf("write identity: %w", err)
	}
	return nil
}
