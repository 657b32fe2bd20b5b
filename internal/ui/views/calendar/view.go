package calendar

import (
	"context"
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	entrydto "habitforge/internal/modules/entry/dto"
	"habitforge/internal/platform/dates"
	"habitforge/internal/ui/theme"
)

// ─── port ────────────────────────────────────────────────────────────────────

type MonthPort interface {
	Month(ctx context.Context, year int, month time.Month) ([]entrydto.EntryOutput, error)
}

// ─── messages ────────────────────────────────────────────────────────────────

type MonthLoadedMsg struct {
	Year    int
	Month   time.Month
	Entries []entrydto.EntryOutput
	Err     error
}

// ─── model ───────────────────────────────────────────────────────────────────

// Model renders one month as a Sunday-first grid. It never navigates past the
// month containing now.
type Model struct {
	port    MonthPort
	now     func() time.Time
	year    int
	month   time.Month
	entries map[string]entrydto.EntryOutput
	err     error
	loading bool
}

func New(port MonthPort, now func() time.Time) Model {
	if now == nil {
		now = time.Now
	}
	t := now()
	return Model{
		port:    port,
		now:     now,
		year:    t.Year(),
		month:   t.Month(),
		entries: map[string]entrydto.EntryOutput{},
		loading: true,
	}
}

func (m Model) Init() tea.Cmd { return m.loadCmd() }

func (m Model) Year() int          { return m.year }
func (m Model) Month() time.Month { return m.month }

// AtCurrentMonth reports whether forward navigation is blocked.
func (m Model) AtCurrentMonth() bool {
	t := m.now()
	return m.year == t.Year() && m.month == t.Month()
}

func (m *Model) Prev() tea.Cmd {
	first := time.Date(m.year, m.month, 1, 0, 0, 0, 0, time.Local).AddDate(0, -1, 0)
	m.year, m.month = first.Year(), first.Month()
	m.loading = true
	return m.loadCmd()
}

func (m *Model) Next() tea.Cmd {
	if m.AtCurrentMonth() {
		return nil
	}
	first := time.Date(m.year, m.month, 1, 0, 0, 0, 0, time.Local).AddDate(0, 1, 0)
	m.year, m.month = first.Year(), first.Month()
	m.loading = true
	return m.loadCmd()
}

// Jump goes back to the current month.
func (m *Model) Jump() tea.Cmd {
	t := m.now()
	m.year, m.month = t.Year(), t.Month()
	m.loading = true
	return m.loadCmd()
}

func (m Model) Reload() tea.Cmd { return m.loadCmd() }

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case MonthLoadedMsg:
		// A slow load for a month we already left is dropped.
		if msg.Year != m.year || msg.Month != m.month {
			return m, nil
		}
		m.loading = false
		m.err = msg.Err
		m.entries = make(map[string]entrydto.EntryOutput, len(msg.Entries))
		for _, e := range msg.Entries {
			m.entries[e.Date] = e
		}
	case tea.KeyMsg:
		switch msg.String() {
		case "left", "h":
			cmd := m.Prev()
			return m, cmd
		case "right", "l":
			cmd := m.Next()
			return m, cmd
		}
	}
	return m, nil
}

func (m Model) View() string {
	var sb strings.Builder
	header := fmt.Sprintf("%s %d", m.month, m.year)
	nav := theme.Muted.Render("←")
	if m.AtCurrentMonth() {
		nav += theme.Muted.Render("  ·")
	} else {
		nav += theme.Muted.Render("  →")
	}
	sb.WriteString(theme.Title.Render(header) + "  " + nav + "\n\n")

	for _, wd := range []string{"Su", "Mo", "Tu", "We", "Th", "Fr", "Sa"} {
		sb.WriteString(theme.Muted.Render(fmt.Sprintf(" %s ", wd)))
	}
	sb.WriteString("\n")

	now := m.now()
	offset := int(dates.FirstWeekday(m.year, m.month))
	sb.WriteString(strings.Repeat("    ", offset))
	days := dates.DaysInMonth(m.year, m.month)
	for day := 1; day <= days; day++ {
		date := fmt.Sprintf("%s-%02d", dates.MonthPrefix(m.year, m.month), day)
		sb.WriteString(m.renderDay(date, day, now))
		if (offset+day)%7 == 0 && day != days {
			sb.WriteString("\n")
		}
	}
	sb.WriteString("\n")

	switch {
	case m.err != nil:
		sb.WriteString("\n" + theme.Bad.Render(m.err.Error()))
	case m.loading:
		sb.WriteString("\n" + theme.Muted.Render("loading…"))
	default:
		sb.WriteString("\n" + theme.Muted.Render(fmt.Sprintf("%d days logged", len(m.entries))))
	}
	return sb.String()
}

func (m Model) renderDay(date string, day int, now time.Time) string {
	cell := fmt.Sprintf(" %2d ", day)
	if dates.IsFuture(date, now) {
		return lipgloss.NewStyle().Foreground(theme.Border).Render(cell)
	}
	style := theme.Day(m.entries[date].Color)
	if dates.IsToday(date, now) {
		style = style.Underline(true)
	}
	return style.Render(cell)
}

func (m Model) loadCmd() tea.Cmd {
	port, year, month := m.port, m.year, m.month
	return func() tea.Msg {
		if port == nil {
			return MonthLoadedMsg{Year: year, Month: month}
		}
		entries, err := port.Month(context.Background(), year, month)
		return MonthLoadedMsg{Year: year, Month: month, Entries: entries, Err: err}
	}
}
