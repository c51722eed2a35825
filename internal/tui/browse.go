// internal/tui/browse.go
// Package tui provides the terminal views of the APE metrics: styled tables
// and the interactive browser.
package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mitsiuTrimble/CV-dashboard/internal/ape"
	"github.com/mitsiuTrimble/CV-dashboard/internal/appconfig"
)

// viewState represents the current screen of the browser.
type viewState int

const (
	// viewLoading is shown while the results file is read.
	viewLoading viewState = iota
	// viewAlgorithmSelector lists the algorithms.
	viewAlgorithmSelector
	// viewResults shows the ranking and rows for the chosen algorithm.
	viewResults
)

// LoadFunc reads the results table.
type LoadFunc func(path string) (ape.Table, error)

// model is the Bubble Tea model of the browser.
type model struct {
	config           *appconfig.Config
	load             LoadFunc
	state            viewState
	isLoading        bool
	err              error
	table            ape.Table
	algorithmList    list.Model
	textArea         textarea.Model
	viewport         viewport.Model
	spinner          spinner.Model
	selected         string
	width, height    int
	requestStartTime time.Time
}

// item represents a selectable algorithm.
type item struct {
	title string
	desc  string
}

// Title returns the title of the list item.
func (i item) Title() string { return i.title }

// Description returns the description of the list item.
func (i item) Description() string { return i.desc }

// FilterValue returns the title of the item, used for filtering.
func (i item) FilterValue() string { return i.title }

// tableLoadedMsg carries a freshly read results table.
type tableLoadedMsg struct{ table ape.Table }

// tableLoadErr reports a failure to read the results file.
type tableLoadErr struct{ error }

func initialModel(cfg *appconfig.Config, load LoadFunc) *model {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("205"))

	ta := textarea.New()
	ta.Placeholder = "algorithm or video..."
	ta.Prompt = "Search: "
	ta.ShowLineNumbers = false
	ta.CharLimit = 120
	ta.SetHeight(1)
	ta.KeyMap.InsertNewline.SetEnabled(false)

	algorithmList := list.New(nil, list.NewDefaultDelegate(), 0, 0)
	algorithmList.Title = "Select an Algorithm"

	return &model{
		config:           cfg,
		load:             load,
		state:            viewLoading,
		isLoading:        true,
		textArea:         ta,
		algorithmList:    algorithmList,
		viewport:         viewport.New(100, 5),
		spinner:          s,
		requestStartTime: time.Now(),
	}
}

// loadTableCmd reads the results file off the UI goroutine.
func loadTableCmd(path string, load LoadFunc) tea.Cmd {
	return func() tea.Msg {
		t, err := load(path)
		if err != nil {
			return tableLoadErr{error: err}
		}
		return tableLoadedMsg{table: t}
	}
}

// algorithmItems lists "All algorithms" followed by every algorithm in t, each
// described by its record count and mean RMSE.
func algorithmItems(t ape.Table) []list.Item {
	summary := ape.Summarize(t)
	byName := make(map[string]ape.SummaryRow, len(summary))
	for _, row := range summary {
		byName[row.Algorithm] = row
	}

	items := []list.Item{item{title: ape.AllAlgorithms, desc: fmt.Sprintf("%d records", len(t))}}
	for _, name := range t.Algorithms() {
		row := byName[name]
		items = append(items, item{
			title: name,
			desc:  fmt.Sprintf("%d records, mean RMSE %s", row.Count, formatMean(row.MeanRMSE)),
		})
	}
	return items
}

// Init starts the spinner and the first load.
func (m *model) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, loadTableCmd(m.config.ResultsPath(), m.load))
}

// Update is the central update function for the Bubble Tea model.
func (m *model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var (
		cmd  tea.Cmd
		cmds []tea.Cmd
	)

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			return m, tea.Quit
		case "q":
			if !m.typing() {
				return m, tea.Quit
			}
		case "esc":
			if m.state == viewResults {
				m.state = viewAlgorithmSelector
				m.textArea.Blur()
				return m, nil
			}
		case "r":
			if m.state == viewAlgorithmSelector && !m.typing() {
				m.isLoading = true
				m.requestStartTime = time.Now()
				return m, tea.Batch(m.spinner.Tick, loadTableCmd(m.config.ResultsPath(), m.load))
			}
		}

	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.algorithmList.SetSize(msg.Width-2, msg.Height-4)
		m.textArea.SetWidth(msg.Width - 3)
		headerHeight := 2
		footerHeight := 3
		m.viewport.Width = msg.Width
		m.viewport.Height = max(msg.Height-headerHeight-footerHeight, 1)
		m.refreshResults()

	case tableLoadedMsg:
		m.isLoading = false
		m.err = nil
		m.table = msg.table
		m.algorithmList.SetItems(algorithmItems(msg.table))
		if m.state == viewLoading {
			m.state = viewAlgorithmSelector
		}
		m.refreshResults()
		return m, nil

	case tableLoadErr:
		m.isLoading = false
		m.err = msg.error
		return m, nil
	}

	switch m.state {
	case viewAlgorithmSelector:
		m.algorithmList, cmd = m.algorithmList.Update(msg)
		cmds = append(cmds, cmd)
		if msg, ok := msg.(tea.KeyMsg); ok && msg.String() == "enter" {
			if selected, ok := m.algorithmList.SelectedItem().(item); ok {
				m.selected = selected.Title()
				m.state = viewResults
				m.textArea.Reset()
				cmds = append(cmds, m.textArea.Focus())
				m.refreshResults()
				m.viewport.GotoTop()
			}
		}

	case viewResults:
		m.textArea, cmd = m.textArea.Update(msg)
		cmds = append(cmds, cmd)
		m.viewport, cmd = m.viewport.Update(msg)
		cmds = append(cmds, cmd)
		if _, ok := msg.(tea.KeyMsg); ok {
			m.refreshResults()
		}
	}

	if m.isLoading {
		m.spinner, cmd = m.spinner.Update(msg)
		cmds = append(cmds, cmd)
	}

	return m, tea.Batch(cmds...)
}

// typing reports whether key presses are text input rather than commands.
func (m *model) typing() bool {
	return m.state == viewResults || m.algorithmList.FilterState() == list.Filtering
}

// results applies the selected algorithm and the search box to the table.
func (m *model) results() ape.Table {
	f := ape.DefaultFilter(m.table)
	f.Algorithm = m.selected
	narrowed := f.Apply(m.table)
	return ape.SortForDisplay(ape.SearchAlgorithmOrVideo(narrowed, strings.TrimSpace(m.textArea.Value())))
}

func (m *model) refreshResults() {
	if m.state != viewResults {
		return
	}
	m.viewport.SetContent(renderResults(m.results()))
}

func renderResults(t ape.Table) string {
	if len(t) == 0 {
		return lipgloss.NewStyle().Foreground(lipgloss.Color("244")).Render("No records match.")
	}
	var b strings.Builder
	b.WriteString(RenderSummary(ape.Summarize(t)))
	b.WriteString("\n\n")
	b.WriteString(RenderRecords(t))
	return b.String()
}

// View renders the browser based on the current state of the model.
func (m *model) View() string {
	if m.width == 0 {
		return "Initializing..."
	}

	if m.err != nil {
		errorStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Padding(1)
		return errorStyle.Render(fmt.Sprintf("Error: %v", m.err))
	}

	if m.isLoading {
		timer := fmt.Sprintf("%.1f", time.Since(m.requestStartTime).Seconds())
		return fmt.Sprintf("\n  %s Loading %s... %ss\n", m.spinner.View(), m.config.ResultsPath(), timer)
	}

	switch m.state {
	case viewAlgorithmSelector:
		listView := m.algorithmList.View()
		if !strings.Contains(listView, m.algorithmList.Title) {
			listView = fmt.Sprintf("%s\n\n%s", m.algorithmList.Title, listView)
		}
		help := lipgloss.NewStyle().Foreground(lipgloss.Color("244")).Render("enter to open, r to reload, q to quit")
		return lipgloss.NewStyle().Margin(1, 2).Render(listView + "\n" + help)

	case viewResults:
		status := lipgloss.JoinHorizontal(lipgloss.Top,
			headerStyle.Render("Algorithm: "+m.selected),
			lipgloss.NewStyle().Render(" (esc to go back, ctrl+c to quit)"),
		)
		return status + "\n\n" + m.viewport.View() + "\n" + m.textArea.View()

	default:
		return "Unknown state"
	}
}

// Run starts the interactive browser over the configured results file.
func Run(cfg *appconfig.Config, load LoadFunc) error {
	if cfg == nil {
		return fmt.Errorf("configuration is not loaded")
	}
	if load == nil {
		load = ape.Load
	}
	p := tea.NewProgram(initialModel(cfg, load), tea.WithAltScreen(), tea.WithMouseCellMotion())
	_, err := p.Run()
	return err
}
