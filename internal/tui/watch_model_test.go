package tui

import (
	"context"
	"errors"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chargefleet/chargefleet/internal/engine"
	"github.com/chargefleet/chargefleet/internal/finance"
)

func testResults(t *testing.T) *engine.Results {
	t.Helper()
	results, err := engine.Run(context.Background(), finance.Defaults(),
		engine.Options{Trials: 100, Seed: 1})
	require.NoError(t, err)
	return results
}

func TestWatchModelInitialView(t *testing.T) {
	m := NewWatchModel("plan.md")
	assert.Nil(t, m.Init())

	view := m.View()
	assert.Contains(t, view, "chargefleet watch")
	assert.Contains(t, view, "plan.md")
	assert.Contains(t, view, "waiting for first run")
	assert.Contains(t, view, "last run never")
}

func TestWatchModelRecomputing(t *testing.T) {
	m := NewWatchModel("plan.md")
	updated, _ := m.Update(RecomputingMsg{})
	assert.Contains(t, updated.View(), "recomputing...")
}

func TestWatchModelResults(t *testing.T) {
	m := NewWatchModel("plan.md")
	updated, _ := m.Update(ResultsMsg{Results: testResults(t)})

	view := updated.View()
	assert.Contains(t, view, "station_irr")
	assert.Contains(t, view, "risk: IRR")
	assert.NotContains(t, view, "waiting for first run")
}

func TestWatchModelError(t *testing.T) {
	m := NewWatchModel("plan.md")

	// A good run followed by a failed one keeps showing the failure until
	// the next success.
	good, _ := m.Update(ResultsMsg{Results: testResults(t)})
	bad, _ := good.Update(ResultsMsg{Err: errors.New("document unreadable")})

	view := bad.View()
	assert.Contains(t, view, "recompute failed")
	assert.Contains(t, view, "document unreadable")
}

func TestWatchModelQuitKeys(t *testing.T) {
	for _, key := range []string{"q", "esc", "ctrl+c"} {
		m := NewWatchModel("plan.md")
		keyMsg := tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(key)}
		if key == "esc" {
			keyMsg = tea.KeyMsg{Type: tea.KeyEsc}
		}
		if key == "ctrl+c" {
			keyMsg = tea.KeyMsg{Type: tea.KeyCtrlC}
		}

		_, cmd := m.Update(keyMsg)
		require.NotNil(t, cmd, "key %s", key)
		assert.Equal(t, tea.Quit(), cmd(), "key %s", key)
	}
}

func TestWatchModelResize(t *testing.T) {
	m := NewWatchModel("plan.md")
	updated, _ := m.Update(tea.WindowSizeMsg{Width: 120, Height: 40})
	assert.NotEmpty(t, updated.View())
}
