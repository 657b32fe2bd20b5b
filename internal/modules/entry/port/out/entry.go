package out

import (
	"context"

	"habitforge/internal/modules/entry/domain"
)

// EntryStore is one persistence backend for the full entry mapping.
type EntryStore interface {
	Init(ctx context.Context) (domain.Session, error)
	Load(ctx context.Context) (domain.Entries, error)
	// Save upserts by date.
	Save(ctx context.Context, entry domain.DayEntry) error
}

// IdentityStore keeps the per-installation identity. LoadIdentity returns
// apperrors.ErrNotFound when none has been created yet.
type IdentityStore interface {
	LoadIdentity(ctx context.Context) (string, error)
	SaveIdentity(ctx context.Context, userID string) error
}
