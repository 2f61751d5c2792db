// Package tui implements the live watch dashboard: a Bubble Tea view of the
// latest model run that refreshes whenever the document poller triggers a
// recompute.
package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/chargefleet/chargefleet/internal/engine"
	"github.com/chargefleet/chargefleet/internal/report"
)

// Default dimensions before the first WindowSizeMsg arrives.
const (
	defaultWidth = 72
	tableHeight  = 8
	metricColumn = 28
	valueColumn  = 20
)

// RecomputingMsg signals that a document change was detected and a run is
// in flight.
type RecomputingMsg struct{}

// ResultsMsg delivers a finished run (or its failure) to the dashboard.
type ResultsMsg struct {
	Results *engine.Results
	Err     error
}

// WatchModel is the Bubble Tea model for watch mode.
//
//nolint:recvcheck // Bubble Tea requires value receivers for Init/Update/View interface methods.
type WatchModel struct {
	docPath string

	results   *engine.Results
	err       error
	computing bool
	updatedAt time.Time

	metrics table.Model
	width   int
}

// NewWatchModel creates the dashboard for the given document path.
func NewWatchModel(docPath string) WatchModel {
	columns := []table.Column{
		{Title: "Metric", Width: metricColumn},
		{Title: "Value", Width: valueColumn},
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithHeight(tableHeight),
		table.WithFocused(false),
	)

	styles := table.DefaultStyles()
	styles.Header = styles.Header.Bold(true).Foreground(lipgloss.Color("33"))
	styles.Selected = lipgloss.NewStyle()
	t.SetStyles(styles)

	return WatchModel{
		docPath: docPath,
		metrics: t,
		width:   defaultWidth,
	}
}

// Init implements tea.Model.
func (m WatchModel) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m WatchModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		}
	case tea.WindowSizeMsg:
		m.width = msg.Width
	case RecomputingMsg:
		m.computing = true
	case ResultsMsg:
		m.computing = false
		m.err = msg.Err
		if msg.Err == nil {
			m.results = msg.Results
			m.updatedAt = time.Now()
			m.metrics.SetRows(metricRows(msg.Results))
		}
	}
	return m, nil
}

// View implements tea.Model.
func (m WatchModel) View() string {
	titleStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("39"))
	dimStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	errStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("203"))

	var b strings.Builder
	b.WriteString(titleStyle.Render("chargefleet watch"))
	b.WriteString(dimStyle.Render(fmt.Sprintf("  %s", m.docPath)))
	b.WriteString("\n\n")

	switch {
	case m.err != nil:
		b.WriteString(errStyle.Render(fmt.Sprintf("recompute failed: %v", m.err)))
		b.WriteString("\n")
	case m.results == nil:
		b.WriteString(dimStyle.Render("waiting for first run..."))
		b.WriteString("\n")
	default:
		b.WriteString(m.metrics.View())
		b.WriteString("\n")
		b.WriteString(riskLine(m.results))
		b.WriteString("\n")
	}

	status := fmt.Sprintf("last run %s", lastRunLabel(m.updatedAt))
	if m.computing {
		status = "recomputing..."
	}
	b.WriteString("\n")
	b.WriteString(dimStyle.Render(status + "  ·  q to quit"))
	b.WriteString("\n")

	return b.String()
}

// metricRows converts the committee table into bubbles table rows,
// dropping the CSV header.
func metricRows(r *engine.Results) []table.Row {
	committee := report.CommitteeRows(r)
	rows := make([]table.Row, 0, len(committee)-1)
	for _, row := range committee[1:] {
		rows = append(rows, table.Row{row[0], row[1]})
	}
	return rows
}

// riskLine summarizes the sensitivity sweep in one line.
func riskLine(r *engine.Results) string {
	s := r.Sensitivity
	return fmt.Sprintf("risk: IRR %.1f%% ± %.1f%%  (5%%-95%%: %.1f%% - %.1f%%, P>10%%: %.0f%%)",
		s.MeanIRR*100, s.StdIRR*100,
		s.Percentiles.P5*100, s.Percentiles.P95*100, s.ProbAbove10*100)
}

// lastRunLabel formats the last successful run time.
func lastRunLabel(t time.Time) string {
	if t.IsZero() {
		return "never"
	}
	return t.Format("15:04:05")
}
