package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	entrydomain "habitforge/internal/modules/entry/domain"
	entrydto "habitforge/internal/modules/entry/dto"
	progressdto "habitforge/internal/modules/progress/dto"
	apperrors "habitforge/internal/platform/errors"
)

type EntryPort interface {
	Log(ctx context.Context, date, category, note string, tags []string, learned bool) (entrydto.RecordOutput, error)
	Show(ctx context.Context, date string) (entrydto.EntryOutput, error)
	List(ctx context.Context) ([]entrydto.EntryOutput, error)
	Month(ctx context.Context, year int, month time.Month) ([]entrydto.EntryOutput, error)
	WhoAmI(ctx context.Context) entrydto.SessionOutput
}

type ProgressPort interface {
	Stats(ctx context.Context) (progressdto.StatsOutput, error)
	Distribution(ctx context.Context) ([]progressdto.SliceOutput, error)
	Summary(ctx context.Context) (progressdto.SummaryOutput, error)
}

// ErrorResponse is the body of every non-2xx reply.
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code,omitempty"`
}

type HealthResponse struct {
	Status string `json:"status"`
	Mode   string `json:"mode"`
	UserID string `json:"userId,omitempty"`
}

type PutEntryRequest struct {
	Type             string   `json:"type"`
	Note             string   `json:"note"`
	Tags             []string `json:"tags"`
	LearnedSomething bool     `json:"learnedSomething"`
}

func writeError(w http.ResponseWriter, status int, message, code string) {
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(ErrorResponse{Error: message, Code: code})
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

// writeDomainError maps sentinel errors onto status codes.
func writeDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, apperrors.ErrFutureDate):
		writeError(w, http.StatusUnprocessableEntity, err.Error(), "FUTURE_DATE")
	case errors.Is(err, apperrors.ErrInvalidInput):
		writeError(w, http.StatusBadRequest, err.Error(), "INVALID_INPUT")
	case errors.Is(err, apperrors.ErrNotFound):
		writeError(w, http.StatusNotFound, err.Error(), "NOT_FOUND")
	default:
		writeError(w, http.StatusInternalServerError, err.Error(), "INTERNAL")
	}
}

type Handlers struct {
	entries  EntryPort
	progress ProgressPort
}

func NewHandlers(entries EntryPort, progress ProgressPort) *Handlers {
	return &Handlers{entries: entries, progress: progress}
}

// Health handles GET /health
func (h *Handlers) Health(w http.ResponseWriter, r *http.Request) {
	session := h.entries.WhoAmI(r.Context())
	w.Header().Set("Content-Type", "application/json")
	writeJSON(w, http.StatusOK, HealthResponse{Status: "ok", Mode: session.Mode, UserID: session.UserID})
}

// ListEntries handles GET /api/v1/entries[?month=YYYY-MM]
func (h *Handlers) ListEntries(w http.ResponseWriter, r *http.Request) {
	var (
		out []entrydto.EntryOutput
		err error
	)
	if month := r.URL.Query().Get("month"); month != "" {
		t, parseErr := time.ParseInLocation("2006-01", month, time.Local)
		if parseErr != nil {
			writeError(w, http.StatusBadRequest, fmt.Sprintf("month %q must be YYYY-MM", month), "INVALID_INPUT")
			return
		}
		out, err = h.entries.Month(r.Context(), t.Year(), t.Month())
	} else {
		out, err = h.entries.List(r.Context())
	}
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, out)
}

// GetEntry handles GET /api/v1/entries/{date}
func (h *Handlers) GetEntry(w http.ResponseWriter, r *http.Request) {
	out, err := h.entries.Show(r.Context(), chi.URLParam(r, "date"))
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, out)
}

// PutEntry handles PUT /api/v1/entries/{date}. The body replaces any entry for that day.
func (h *Handlers) PutEntry(w http.ResponseWriter, r *http.Request) {
	var req PutEntryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body", "INVALID_JSON")
		return
	}
	out, err := h.entries.Log(r.Context(), chi.URLParam(r, "date"), req.Type, req.Note, req.Tags, req.LearnedSomething)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, out)
}

// Stats handles GET /api/v1/stats
func (h *Handlers) Stats(w http.ResponseWriter, r *http.Request) {
	out, err := h.progress.Stats(r.Context())
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, out)
}

// Distribution handles GET /api/v1/distribution
func (h *Handlers) Distribution(w http.ResponseWriter, r *http.Request) {
	out, err := h.progress.Distribution(r.Context())
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, out)
}

// Summary handles GET /api/v1/summary
func (h *Handlers) Summary(w http.ResponseWriter, r *http.Request) {
	out, err := h.progress.Summary(r.Context())
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, out)
}

// Tags handles GET /api/v1/tags
func (h *Handlers) Tags(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string][]string{"presets": entrydomain.PresetTags})
}
