package app

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	entrydomain "habitforge/internal/modules/entry/domain"
	entrydto "habitforge/internal/modules/entry/dto"
	"habitforge/internal/platform/dates"
	apperrors "habitforge/internal/platform/errors"
	"habitforge/internal/ui/components"
	"habitforge/internal/ui/theme"
	calendarview "habitforge/internal/ui/views/calendar"
	progressview "habitforge/internal/ui/views/progress"
)

// ─── ports ───────────────────────────────────────────────────────────────────

type entryPort interface {
	calendarview.MonthPort
	Log(ctx context.Context, date, category, note string, tags []string, learned bool) (entrydto.RecordOutput, error)
	WhoAmI(ctx context.Context) entrydto.SessionOutput
}

// ─── async messages ──────────────────────────────────────────────────────────

type sessionLoadedMsg struct {
	session entrydto.SessionOutput
}

type recordedMsg struct {
	out entrydto.RecordOutput
	err error
}

// ─── key bindings ────────────────────────────────────────────────────────────

type keyMap struct {
	Prev    key.Binding
	Next    key.Binding
	Today   key.Binding
	Palette key.Binding
	Help    key.Binding
	Quit    key.Binding
}

func defaultKeys() keyMap {
	return keyMap{
		Prev:    key.NewBinding(key.WithKeys("left", "h"), key.WithHelp("←/h", "previous month")),
		Next:    key.NewBinding(key.WithKeys("right", "l"), key.WithHelp("→/l", "next month")),
		Today:   key.NewBinding(key.WithKeys("t"), key.WithHelp("t", "current month")),
		Palette: key.NewBinding(key.WithKeys(":"), key.WithHelp(":", "log / command")),
		Help:    key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		Quit:    key.NewBinding(key.WithKeys("ctrl+c", "q"), key.WithHelp("q", "quit")),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Prev, k.Next, k.Palette, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Prev, k.Next, k.Today},
		{k.Palette, k.Help, k.Quit},
	}
}

// ─── model ───────────────────────────────────────────────────────────────────

// Model is the dashboard root. It routes keys to the calendar, runs palette
// commands against the entry port and refreshes both panels after each save.
type Model struct {
	entries entryPort
	now     func() time.Time

	calendar calendarview.Model
	progress progressview.Model

	keys     keyMap
	help     help.Model
	showHelp bool
	palette  components.Palette
	session  entrydto.SessionOutput
	status   string
	width    int
	height   int
}

func NewModel(entries entryPort, summary progressview.SummaryPort, now func() time.Time) Model {
	if now == nil {
		now = time.Now
	}
	return Model{
		entries:  entries,
		now:      now,
		calendar: calendarview.New(entries, now),
		progress: progressview.New(summary),
		keys:     defaultKeys(),
		help:     help.New(),
		palette:  components.NewPalette(),
		status:   "ready",
	}
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(m.calendar.Init(), m.progress.Init(), m.loadSessionCmd())
}

// ─── update ──────────────────────────────────────────────────────────────────

func paletteOwns(msg tea.Msg) bool {
	switch msg.(type) {
	case tea.WindowSizeMsg, sessionLoadedMsg, recordedMsg,
		calendarview.MonthLoadedMsg, progressview.SummaryLoadedMsg:
		return false
	}
	return true
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	// The palette takes keys and its own cursor ticks while open; results of
	// background loads still reach the panes.
	if m.palette.Visible() && paletteOwns(msg) {
		var cmd tea.Cmd
		m.palette, cmd = m.palette.Update(msg)
		return m, cmd
	}

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.palette.SetWidth(min(m.width-4, 80))
		m.help.Width = m.width

	case sessionLoadedMsg:
		m.session = msg.session

	case recordedMsg:
		if msg.err != nil {
			m.status = "log failed: " + msg.err.Error()
			return m, nil
		}
		m.status = fmt.Sprintf("logged %s as %s", msg.out.Entry.Date, msg.out.Entry.Label)
		if msg.out.Sync == string(entrydomain.SyncFailed) {
			m.status += " (kept locally, sync failed: " + msg.out.SyncError + ")"
		}
		return m, tea.Batch(m.calendar.Reload(), m.progress.Reload())

	case calendarview.MonthLoadedMsg:
		var cmd tea.Cmd
		m.calendar, cmd = m.calendar.Update(msg)
		return m, cmd

	case progressview.SummaryLoadedMsg:
		var cmd tea.Cmd
		m.progress, cmd = m.progress.Update(msg)
		return m, cmd

	case components.PaletteSubmitMsg:
		return m.executePalette(msg.Input)

	case components.PaletteCancelMsg:
		m.status = "ready"

	case tea.KeyMsg:
		if m.showHelp {
			if msg.String() == "?" || msg.String() == "esc" {
				m.showHelp = false
			}
			return m, nil
		}
		switch {
		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit
		case key.Matches(msg, m.keys.Help):
			m.showHelp = true
			return m, nil
		case key.Matches(msg, m.keys.Palette):
			cmd := m.palette.Open()
			return m, cmd
		case key.Matches(msg, m.keys.Today):
			cmd := m.calendar.Jump()
			return m, cmd
		case key.Matches(msg, m.keys.Next):
			if m.calendar.AtCurrentMonth() {
				m.status = "already at the current month"
				return m, nil
			}
		}
		var cmd tea.Cmd
		m.calendar, cmd = m.calendar.Update(msg)
		return m, cmd
	}
	return m, nil
}

// ─── palette execution ───────────────────────────────────────────────────────

func (m Model) executePalette(input string) (tea.Model, tea.Cmd) {
	parts := strings.Fields(input)
	if len(parts) == 0 {
		return m, nil
	}
	switch parts[0] {
	case "log":
		req, err := parseLog(parts[1:], m.now())
		if err != nil {
			m.status = err.Error()
			return m, nil
		}
		return m, m.recordCmd(req)

	case "goto":
		if len(parts) != 2 {
			m.status = "usage: goto YYYY-MM"
			return m, nil
		}
		t, err := time.ParseInLocation("2006-01", parts[1], time.Local)
		if err != nil {
			m.status = "invalid month " + parts[1]
			return m, nil
		}
		now := m.now()
		if t.Year() > now.Year() || (t.Year() == now.Year() && t.Month() > now.Month()) {
			m.status = "cannot go past the current month"
			return m, nil
		}
		cmd := m.calendar.Jump()
		for m.calendar.Year() != t.Year() || m.calendar.Month() != t.Month() {
			cmd = m.calendar.Prev()
		}
		return m, cmd

	case "today":
		cmd := m.calendar.Jump()
		return m, cmd

	case "tags":
		m.status = "presets: " + strings.Join(entrydomain.PresetTags, ", ")
		return m, nil
	}
	m.status = "unknown command: " + parts[0]
	return m, nil
}

type logRequest struct {
	date     string
	category string
	note     string
	tags     []string
	learned  bool
}

// parseLog reads "[date] <category> [words...]". Words prefixed with # are tags
// and +learned sets the flag; everything else is the note.
func parseLog(args []string, now time.Time) (logRequest, error) {
	req := logRequest{date: dates.Today(now)}
	if len(args) > 0 && dates.Valid(args[0]) {
		req.date = args[0]
		args = args[1:]
	}
	if len(args) == 0 {
		return logRequest{}, errors.New("usage: log [YYYY-MM-DD] <category> [note] [#tag] [+learned]")
	}
	req.category = args[0]
	var note []string
	for _, word := range args[1:] {
		switch {
		case word == "+learned":
			req.learned = true
		case strings.HasPrefix(word, "#") && len(word) > 1:
			req.tags = append(req.tags, strings.ReplaceAll(word[1:], "_", " "))
		default:
			note = append(note, word)
		}
	}
	req.note = strings.Join(note, " ")
	return req, nil
}

func (m Model) recordCmd(req logRequest) tea.Cmd {
	port := m.entries
	return func() tea.Msg {
		if port == nil {
			return recordedMsg{err: fmt.Errorf("%w: no entry store attached", apperrors.ErrNotFound)}
		}
		out, err := port.Log(context.Background(), req.date, req.category, req.note, req.tags, req.learned)
		return recordedMsg{out: out, err: err}
	}
}

func (m Model) loadSessionCmd() tea.Cmd {
	port := m.entries
	return func() tea.Msg {
		if port == nil {
			return sessionLoadedMsg{}
		}
		return sessionLoadedMsg{session: port.WhoAmI(context.Background())}
	}
}

// ─── view ────────────────────────────────────────────────────────────────────

func (m Model) View() string {
	header := m.renderHeader()
	statusBar := m.renderStatusBar()

	var content string
	switch {
	case m.showHelp:
		content = m.help.FullHelpView(m.keys.FullHelp())
	case m.palette.Visible():
		content = lipgloss.JoinVertical(lipgloss.Left, m.dashboard(), m.palette.View())
	default:
		content = m.dashboard()
	}
	return lipgloss.JoinVertical(lipgloss.Left, header, content, statusBar)
}

func (m Model) dashboard() string {
	return lipgloss.JoinHorizontal(lipgloss.Top,
		theme.PaneActive.Render(m.calendar.View()),
		theme.Pane.Render(m.progress.View()),
	)
}

func (m Model) renderHeader() string {
	mode := m.session.Mode
	if mode == "" {
		mode = "…"
	}
	backend := theme.Muted.Render("backend: " + mode)
	if m.session.UserID != "" {
		backend += theme.Muted.Render("  " + m.session.UserID)
	}
	return theme.Hot.Render("habitforge") + "  " + backend + "\n"
}

func (m Model) renderStatusBar() string {
	left := m.status
	right := m.help.ShortHelpView(m.keys.ShortHelp())
	gap := m.width - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 1 {
		gap = 1
	}
	bar := left + strings.Repeat(" ", gap) + right
	return "\n" + lipgloss.NewStyle().Background(theme.Panel).Width(m.width).Render(bar)
}

// Status exposes the last status line for tests and embedding.
func (m Model) Status() string { return m.status }
