package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/thomaskoefod/linkedintel/internal/analysis"
	"github.com/thomaskoefod/linkedintel/internal/config"
	"github.com/thomaskoefod/linkedintel/internal/report"
	"github.com/thomaskoefod/linkedintel/pkg/models"
)

type View int

const (
	ViewList View = iota
	ViewDetail
	ViewHelp
)

// Tab is one ranked view of the network.
type Tab int

const (
	TabWarmest Tab = iota
	TabGoingCold
	TabAdvocates
	TabTheyOwe
	TabYouOwe
	TabResurrect
	tabCount
)

var tabTitles = [...]string{
	TabWarmest:   "Warmest",
	TabGoingCold: "Going Cold",
	TabAdvocates: "Advocates",
	TabTheyOwe:   "They Owe You",
	TabYouOwe:    "You Owe Them",
	TabResurrect: "Resurrect",
}

func (t Tab) String() string { return tabTitles[t] }

type Model struct {
	cfg       *config.Config
	analyzer  *analysis.Analyzer
	overview  *analysis.Overview
	view      View
	tab       Tab
	list      list.Model
	width     int
	height    int
	err       error
	statusMsg string
	detail    string
}

type overviewLoadedMsg struct {
	overview *analysis.Overview
}

type errorMsg struct {
	err error
}

type statusMsg string

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("205")).
			MarginBottom(1)

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196"))

	statusStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("42"))

	activeTabStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("86")).
			Underline(true)

	tabStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("245"))
)

func New(cfg *config.Config, analyzer *analysis.Analyzer) Model {
	delegate := list.NewDefaultDelegate()
	l := list.New([]list.Item{}, delegate, 0, 0)
	l.Title = "linkedintel - " + TabWarmest.String()
	l.SetShowStatusBar(true)
	l.SetFilteringEnabled(true)
	l.Styles.Title = titleStyle

	return Model{
		cfg:      cfg,
		analyzer: analyzer,
		view:     ViewList,
		tab:      TabWarmest,
		list:     l,
	}
}

// Run starts the dashboard and blocks until the user quits.
func Run(cfg *config.Config, analyzer *analysis.Analyzer) error {
	_, err := tea.NewProgram(New(cfg, analyzer), tea.WithAltScreen()).Run()
	return err
}

func (m Model) Init() tea.Cmd {
	return loadOverview(m.analyzer, m.cfg.Report.TopN)
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.list.SetSize(msg.Width, msg.Height-4)
		return m, nil

	case tea.KeyMsg:
		return m.handleKeyPress(msg)

	case overviewLoadedMsg:
		m.overview = msg.overview
		m.err = nil
		m.showTab(m.tab)
		m.statusMsg = fmt.Sprintf("Analysed %d connections, %d messages",
			m.overview.Summary.Connections, m.overview.Summary.Messages)
		return m, nil

	case errorMsg:
		m.err = msg.err
		return m, nil

	case statusMsg:
		m.statusMsg = string(msg)
		return m, nil
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

// showTab fills the list with the ranked entries of tab.
func (m *Model) showTab(tab Tab) {
	m.tab = tab
	m.list.Title = "linkedintel - " + tab.String()
	m.list.ResetFilter()
	m.list.SetItems(m.items(tab))
	m.list.ResetSelected()
}

func (m Model) items(tab Tab) []list.Item {
	if m.overview == nil {
		return nil
	}
	if tab == TabResurrect {
		items := make([]list.Item, len(m.overview.Resurrections))
		for i, o := range m.overview.Resurrections {
			items[i] = opportunityItem{o}
		}
		return items
	}

	scores := m.overview.Warmest
	switch tab {
	case TabGoingCold:
		scores = m.overview.GoingCold
	case TabAdvocates:
		scores = m.overview.Advocates
	case TabTheyOwe:
		scores = m.overview.TheyOwe
	case TabYouOwe:
		scores = m.overview.YouOwe
	}
	items := make([]list.Item, len(scores))
	for i, s := range scores {
		items[i] = scoreItem{s}
	}
	return items
}

func (m Model) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.view {
	case ViewList:
		return m.handleListKeys(msg)
	case ViewDetail:
		return m.handleDetailKeys(msg)
	case ViewHelp:
		return m.handleHelpKeys(msg)
	}
	return m, nil
}

func (m Model) handleListKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// Typed characters belong to the filter while it is open.
	if m.list.FilterState() == list.Filtering {
		var cmd tea.Cmd
		m.list, cmd = m.list.Update(msg)
		return m, cmd
	}

	switch msg.String() {
	case "ctrl+c", "q":
		return m, tea.Quit

	case "tab":
		m.showTab((m.tab + 1) % tabCount)
		return m, nil

	case "shift+tab":
		m.showTab((m.tab + tabCount - 1) % tabCount)
		return m, nil

	case "enter":
		if content, ok := m.detailFor(m.list.SelectedItem()); ok {
			m.view = ViewDetail
			m.detail = content
			return m, nil
		}

	case "r":
		return m, tea.Batch(
			loadOverview(m.analyzer, m.cfg.Report.TopN),
			func() tea.Msg { return statusMsg("Re-scoring network...") },
		)

	case "?":
		m.view = ViewHelp
		return m, nil
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m Model) detailFor(item list.Item) (string, bool) {
	var md string
	switch i := item.(type) {
	case scoreItem:
		md = report.Person(i.score)
	case opportunityItem:
		md = report.Resurrections([]models.Opportunity{i.opp})
	default:
		return "", false
	}
	width := m.cfg.Report.WordWrap
	if m.width > 0 && m.width < width {
		width = m.width
	}
	out, err := report.Render(md, m.cfg.Report.Style, width)
	if err != nil {
		return md, true
	}
	return out, true
}

func (m Model) handleDetailKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c", "q":
		return m, tea.Quit

	case "esc", "backspace", "enter":
		m.view = ViewList
		m.detail = ""
		return m, nil

	case "?":
		m.view = ViewHelp
		return m, nil
	}
	return m, nil
}

func (m Model) handleHelpKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc", "?", "q":
		if m.detail != "" {
			m.view = ViewDetail
		} else {
			m.view = ViewList
		}
		return m, nil
	}
	return m, nil
}

func (m Model) View() string {
	switch m.view {
	case ViewList:
		return m.renderList()
	case ViewDetail:
		return m.renderDetail()
	case ViewHelp:
		return m.renderHelp()
	}
	return ""
}

func (m Model) renderTabs() string {
	tabs := make([]string, tabCount)
	for t := Tab(0); t < tabCount; t++ {
		if t == m.tab {
			tabs[t] = activeTabStyle.Render(t.String())
		} else {
			tabs[t] = tabStyle.Render(t.String())
		}
	}
	return strings.Join(tabs, "  ")
}

func (m Model) renderList() string {
	var s strings.Builder

	s.WriteString(m.renderTabs())
	s.WriteString("\n")
	s.WriteString(m.list.View())
	s.WriteString("\n")

	// Status bar
	if m.err != nil {
		s.WriteString(errorStyle.Render(fmt.Sprintf("Error: %v", m.err)))
	} else if m.statusMsg != "" {
		s.WriteString(statusStyle.Render(m.statusMsg))
	}

	s.WriteString("\n")
	s.WriteString(helpStyle.Render("enter: details • tab: next view • r: re-score • /: filter • ?: help • q: quit"))

	return s.String()
}

func (m Model) renderDetail() string {
	var s strings.Builder

	s.WriteString(m.detail)
	s.WriteString("\n")
	s.WriteString(helpStyle.Render("esc: back • ?: help • q: quit"))

	return s.String()
}

func (m Model) renderHelp() string {
	help := `
linkedintel - Keyboard Shortcuts

Lists:
  ↑/↓, j/k       Navigate
  enter          Show relationship details
  tab/shift+tab  Switch between views
  r              Re-score the network
  /              Filter by name or company
  q, ctrl+c      Quit

Views:
  Warmest        Strongest relationships right now
  Going Cold     Fading but valuable, re-engage soon
  Advocates      Most likely to vouch for you
  They Owe You   Safe to ask for a favor
  You Owe Them   Consider helping first
  Resurrect      Dormant threads with a promised catch-up

General:
  ?              Show/hide this help
`
	return help + "\n" + helpStyle.Render("Press ? or esc to close help")
}

func loadOverview(a *analysis.Analyzer, topN int) tea.Cmd {
	return func() tea.Msg {
		ov, err := a.Overview(context.Background(), topN)
		if err != nil {
			return errorMsg{err}
		}
		return overviewLoadedMsg{ov}
	}
}
