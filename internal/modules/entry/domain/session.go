package domain

type Mode string

const (
	ModeLocal  Mode = "local"
	ModeRemote Mode = "remote"
)

// Session is the backend selection made once at startup. UserID is empty in local mode.
type Session struct {
	Mode   Mode
	UserID string
}

type SyncStatus string

const (
	SyncOK     SyncStatus = "synced"
	SyncFailed SyncStatus = "failed"
)

// SaveOutcome reports what happened to a write after memory was already updated.
type SaveOutcome struct {
	Status SyncStatus
	Err    string
}

func (o SaveOutcome) OK() bool { return o.Status == SyncOK }
