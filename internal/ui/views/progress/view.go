package progress

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	progressdto "habitforge/internal/modules/progress/dto"
	"habitforge/internal/ui/theme"
)

type SummaryPort interface {
	Summary(ctx context.Context) (progressdto.SummaryOutput, error)
}

type SummaryLoadedMsg struct {
	Summary progressdto.SummaryOutput
	Err     error
}

const barWidth = 20

// Model shows the stats panel and the category distribution.
type Model struct {
	port    SummaryPort
	summary progressdto.SummaryOutput
	err     error
	loaded  bool
}

func New(port SummaryPort) Model {
	return Model{port: port}
}

func (m Model) Init() tea.Cmd { return m.Reload() }

func (m Model) Summary() progressdto.SummaryOutput { return m.summary }

func (m Model) Reload() tea.Cmd {
	port := m.port
	return func() tea.Msg {
		if port == nil {
			return SummaryLoadedMsg{}
		}
		summary, err := port.Summary(context.Background())
		return SummaryLoadedMsg{Summary: summary, Err: err}
	}
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	if msg, ok := msg.(SummaryLoadedMsg); ok {
		m.loaded = true
		m.err = msg.Err
		if msg.Err == nil {
			m.summary = msg.Summary
		}
	}
	return m, nil
}

func (m Model) View() string {
	if m.err != nil {
		return theme.Bad.Render("stats: " + m.err.Error())
	}
	if !m.loaded {
		return theme.Muted.Render("loading…")
	}
	return m.statsView() + "\n\n" + m.distributionView()
}

func (m Model) statsView() string {
	s := m.summary.Stats
	score := theme.Good.Render(fmt.Sprintf("%+d", s.TotalScore))
	if s.TotalScore < 0 {
		score = theme.Bad.Render(fmt.Sprintf("%d", s.TotalScore))
	}
	var sb strings.Builder
	sb.WriteString(theme.Title.Render("Progress") + "\n")
	sb.WriteString(fmt.Sprintf("%-16s %s\n", "Score", score))
	sb.WriteString(fmt.Sprintf("%-16s %s\n", "Current streak", theme.Hot.Render(fmt.Sprintf("%d days", s.CurrentStreak))))
	sb.WriteString(fmt.Sprintf("%-16s %d days\n", "Longest streak", s.LongestStreak))
	sb.WriteString(fmt.Sprintf("%-16s %d%%", "Positive days", s.PositiveDayPercentage))
	return sb.String()
}

func (m Model) distributionView() string {
	var sb strings.Builder
	sb.WriteString(theme.Title.Render("Distribution"))
	slices := m.summary.Distribution
	if len(slices) == 0 {
		sb.WriteString("\n" + theme.Muted.Render("no entries yet"))
		return sb.String()
	}
	total := 0
	for _, slice := range slices {
		total += slice.Count
	}
	for _, slice := range slices {
		width := slice.Count * barWidth / total
		if width == 0 {
			width = 1
		}
		bar := theme.Swatch(slice.Color).Render(strings.Repeat("█", width))
		sb.WriteString(fmt.Sprintf("\n%-8s %s %d", slice.Label, bar, slice.Count))
	}
	return sb.String()
}
