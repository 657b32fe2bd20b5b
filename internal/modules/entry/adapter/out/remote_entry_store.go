package out

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"habitforge/internal/modules/entry/domain"
	entryout "habitforge/internal/modules/entry/port/out"
	apperrors "habitforge/internal/platform/errors"
	"habitforge/internal/platform/id"
)

const entriesPath = "/rest/v1/entries"

type RemoteConfig struct {
	BaseURL string
	APIKey  string
	Timeout time.Duration
}

// RemoteEntryStore talks to a PostgREST-style record API. Rows are partitioned by
// the installation identity resolved in Init.
type RemoteEntryStore struct {
	baseURL  string
	apiKey   string
	client   *http.Client
	identity entryout.IdentityStore
	ids      id.Generator
	userID   string
}

// remoteRow is the wire shape of one record; nullable columns are pointers.
type remoteRow struct {
	UserID           string   `json:"user_id"`
	Date             string   `json:"date"`
	Type             string   `json:"type"`
	Note             *string  `json:"note"`
	Tags             []string `json:"tags"`
	LearnedSomething *bool    `json:"learned_something"`
}

type remotePayload struct {
	UserID           string   `json:"user_id"`
	Date             string   `json:"date"`
	Type             string   `json:"type"`
	Note             string   `json:"note"`
	Tags             []string `json:"tags"`
	LearnedSomething bool     `json:"learned_something"`
}

func NewRemoteEntryStore(cfg RemoteConfig, identity entryout.IdentityStore, ids id.Generator) entryout.EntryStore {
	return &RemoteEntryStore{
		baseURL:  cfg.BaseURL,
		apiKey:   cfg.APIKey,
		client:   &http.Client{Timeout: cfg.Timeout},
		identity: identity,
		ids:      ids,
	}
}

func (s *RemoteEntryStore) Init(ctx context.Context) (domain.Session, error) {
	userID, err := s.identity.LoadIdentity(ctx)
	if errors.Is(err, apperrors.ErrNotFound) {
		userID = s.ids.New()
		if err := s.identity.SaveIdentity(ctx, userID); err != nil {
			return domain.Session{}, err
		}
	} else if err != nil {
		return domain.Session{}, err
	}
	s.userID = userID
	return domain.Session{Mode: domain.ModeRemote, UserID: userID}, nil
}

func (s *RemoteEntryStore) Load(ctx context.Context) (domain.Entries, error) {
	if s.userID == "" {
		return nil, fmt.Errorf("remote store used before init")
	}
	rows := []remoteRow{}
	if err := s.do(ctx, http.MethodGet, s.filter(""), nil, &rows); err != nil {
		return nil, fmt.Errorf("fetch remote entries: %w", err)
	}
	entries := make(domain.Entries, len(rows))
	for _, row := range rows {
		entries[row.Date] = row.toEntry()
	}
	return entries, nil
}

// Save is check-then-act: look up the row for (identity, date), then PATCH or POST.
func (s *RemoteEntryStore) Save(ctx context.Context, entry domain.DayEntry) error {
	if s.userID == "" {
		return fmt.Errorf("remote store used before init")
	}
	existing := []json.RawMessage{}
	if err := s.do(ctx, http.MethodGet, s.filter(entry.Date), nil, &existing); err != nil {
		return fmt.Errorf("look up remote entry %s: %w", entry.Date, err)
	}
	tags := entry.Tags
	if tags == nil {
		tags = []string{}
	}
	payload := remotePayload{
		UserID:           s.userID,
		Date:             entry.Date,
		Type:             string(entry.Category),
		Note:             entry.Note,
		Tags:             tags,
		LearnedSomething: entry.LearnedSomething,
	}
	if len(existing) > 0 {
		if err := s.do(ctx, http.MethodPatch, s.filter(entry.Date), payload, nil); err != nil {
			return fmt.Errorf("update remote entry %s: %w", entry.Date, err)
		}
		return nil
	}
	if err := s.do(ctx, http.MethodPost, nil, payload, nil); err != nil {
		return fmt.Errorf("insert remote entry %s: %w", entry.Date, err)
	}
	return nil
}

func (s *RemoteEntryStore) filter(date string) url.Values {
	q := url.Values{}
	q.Set("user_id", "eq."+s.userID)
	if date != "" {
		q.Set("date", "eq."+date)
	}
	return q
}

func (s *RemoteEntryStore) do(ctx context.Context, method string, query url.Values, body any, out any) error {
	endpoint := s.baseURL + entriesPath
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode payload: %w", err)
		}
		reader = bytes.NewReader(payload)
	}
	req, err := http.NewRequestWithContext(ctx, method, endpoint, reader)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("apikey", s.apiKey)
	req.Header.Set("Authorization", "Bearer "+s.apiKey)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("Prefer", "return=minimal")
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("%s %s: status %d: %s", method, entriesPath, resp.StatusCode, bytes.TrimSpace(snippet))
	}
	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

func (r remoteRow) toEntry() domain.DayEntry {
	entry := domain.DayEntry{
		Date:     r.Date,
		Category: domain.Category(r.Type),
		Tags:     r.Tags,
	}
	if r.Note != nil {
		entry.Note = *r.Note
	}
	if entry.Tags == nil {
		entry.Tags = []string{}
	}
	if r.LearnedSomething != nil {
		entry.LearnedSomething = *r.LearnedSomething
	}
	return entry
}
