// internal/tui/browse_test.go
package tui

import (
	"errors"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/mitsiuTrimble/CV-dashboard/internal/ape"
	"github.com/mitsiuTrimble/CV-dashboard/internal/appconfig"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func f64(v float64) *float64 { return &v }

func browseTable() ape.Table {
	return ape.Table{
		{Algorithm: "ORB", Tag: "NWC", Subtag: "mp4_low", Video: "vid1", RMSE: f64(1.0)},
		{Algorithm: "ORB", Tag: "NWC", Subtag: "mp4_high", Video: "vid2", RMSE: f64(3.0)},
		{Algorithm: "VINS", Tag: "SEA", Subtag: "mp4_low", Video: "harbor", RMSE: f64(0.5)},
	}
}

func loadedModel(t *testing.T) *model {
	t.Helper()
	m := initialModel(&appconfig.Config{}, func(string) (ape.Table, error) { return browseTable(), nil })
	m.Update(tea.WindowSizeMsg{Width: 140, Height: 40})
	m.Update(tableLoadedMsg{table: browseTable()})
	require.Equal(t, viewAlgorithmSelector, m.state)
	return m
}

func typeText(m *model, s string) {
	for _, r := range s {
		m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
}

// TestUpdate walks from loading through selection to the results view and back.
func TestUpdate(t *testing.T) {
	m := initialModel(&appconfig.Config{}, nil)
	assert.Equal(t, viewLoading, m.state)

	newModel, _ := m.Update(tea.WindowSizeMsg{Width: 100, Height: 30})
	m = newModel.(*model)
	assert.Equal(t, 100, m.width)
	assert.Equal(t, 30, m.height)

	m.Update(tableLoadedMsg{table: browseTable()})
	assert.Equal(t, viewAlgorithmSelector, m.state)
	assert.False(t, m.isLoading)
	require.Len(t, m.algorithmList.Items(), 3)
	assert.Equal(t, ape.AllAlgorithms, m.algorithmList.Items()[0].(item).Title())

	m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	assert.Equal(t, viewResults, m.state)
	assert.Equal(t, ape.AllAlgorithms, m.selected)

	m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	assert.Equal(t, viewAlgorithmSelector, m.state)

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyCtrlC})
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
}

func TestSearchNarrowsResults(t *testing.T) {
	m := loadedModel(t)
	m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	require.Equal(t, viewResults, m.state)
	assert.Len(t, m.results(), 3)

	// "q" is text in the search box, not a quit key.
	m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")})
	assert.Equal(t, viewResults, m.state)
	assert.Equal(t, "q", m.textArea.Value())
	assert.Empty(t, m.results())

	m.textArea.Reset()
	typeText(m, "HARB")
	got := m.results()
	require.Len(t, got, 1)
	assert.Equal(t, "VINS", got[0].Algorithm)
	assert.Contains(t, m.viewport.View(), "harbor")
}

func TestSelectSingleAlgorithm(t *testing.T) {
	m := loadedModel(t)
	m.Update(tea.KeyMsg{Type: tea.KeyDown})
	m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	require.Equal(t, viewResults, m.state)
	assert.Equal(t, "ORB", m.selected)

	got := m.results()
	require.Len(t, got, 2)
	assert.Equal(t, "mp4_low", got[0].Subtag)
	assert.Equal(t, "mp4_high", got[1].Subtag)
}

func TestReloadKey(t *testing.T) {
	m := loadedModel(t)
	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("r")})
	require.NotNil(t, cmd)
	assert.True(t, m.isLoading)
}

// TestView checks the text rendered for each state.
func TestView(t *testing.T) {
	m := initialModel(&appconfig.Config{}, nil)
	assert.Equal(t, "Initializing...", m.View())

	m.width = 100
	assert.Contains(t, m.View(), "Loading")

	m.Update(tableLoadErr{error: errors.New("unable to read data file")})
	assert.Contains(t, m.View(), "Error: unable to read data file")

	m = loadedModel(t)
	assert.Contains(t, m.View(), "Select an Algorithm")

	m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	view := m.View()
	assert.Contains(t, view, "Algorithm: "+ape.AllAlgorithms)
	assert.Contains(t, view, "esc to go back")
}
