package main

import (
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/patmonardo/gds-kernel/pkg/algorithm"
	"github.com/patmonardo/gds-kernel/pkg/catalog"
	"github.com/patmonardo/gds-kernel/pkg/collections"
	"github.com/patmonardo/gds-kernel/pkg/graphstore"
	"github.com/patmonardo/gds-kernel/pkg/idmap"
	_ "github.com/patmonardo/gds-kernel/pkg/kernelalgo"
	"github.com/patmonardo/gds-kernel/pkg/values"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FF00FF")).
			MarginLeft(2).
			MarginTop(1)

	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#00FFFF")).
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#00FFFF")).
			Padding(0, 1)

	activeTabStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FFFFFF")).
			Background(lipgloss.Color("#FF00FF")).
			Padding(0, 2)

	inactiveTabStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#666666")).
				Padding(0, 2)

	contentStyle = lipgloss.NewStyle().
			MarginLeft(2).
			MarginTop(1)

	statsBoxStyle = lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#00FF00")).
			Padding(1, 2).
			MarginRight(2)

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF0000")).
			Bold(true)

	successStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#00FF00")).
			Bold(true)

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#888888")).
			MarginTop(1).
			MarginLeft(2)
)

type view int

const (
	dashboardView view = iota
	catalogView
	runView
)

type keyMap struct {
	Tab      key.Binding
	ShiftTab key.Binding
	Enter    key.Binding
	Quit     key.Binding
}

var keys = keyMap{
	Tab:      key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "next view")),
	ShiftTab: key.NewBinding(key.WithKeys("shift+tab"), key.WithHelp("shift+tab", "prev view")),
	Enter:    key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "run")),
	Quit:     key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
}

func (k keyMap) ShortHelp() []key.Binding { return []key.Binding{k.Tab, k.Enter, k.Quit} }
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{{k.Tab, k.ShiftTab, k.Enter}, {k.Quit}}
}

// graphItem adapts one catalog entry to bubbles/list.Item for the dashboard's loaded-
// graphs list.
type graphItem struct {
	name      string
	nodeCount int64
}

func (g graphItem) Title() string       { return g.name }
func (g graphItem) Description() string { return fmt.Sprintf("%d nodes", g.nodeCount) }
func (g graphItem) FilterValue() string { return g.name }

// model drives the explorer over one demo GraphStore pre-loaded into the catalog: a
// 5-node line graph carrying a "value" node property, so both reference algorithms
// (spec.md §8 S1's pagerank, S2's sum) have something to run against.
type model struct {
	catalog     *catalog.GraphCatalog
	procedures  *catalog.ProcedureRegistry
	executor    *algorithm.ProcedureExecutor
	currentView view

	algList   table.Model
	graphList list.Model
	help      help.Model
	keys      keyMap

	width, height int
	message       string
	messageErr    bool
	startTime     time.Time
}

func demoGraphStore() *graphstore.GraphStore {
	const n = int64(5)
	b := idmap.NewBuilder()
	for i := int64(0); i < n; i++ {
		b.Add(i)
	}
	rel := graphstore.RelType("FOLLOWS")
	outgoing := [][]int64{{1}, {2}, {3}, {4}, {}}
	topo := graphstore.NewTopology(outgoing, nil)

	schema := graphstore.NewGraphSchema()
	schema.RelationshipProperties[rel] = map[string]graphstore.PropertySchema{}

	gs, err := graphstore.NewGraphStore(graphstore.Config{
		GraphName:  "demo",
		Schema:     schema,
		IdMap:      b.Build(),
		Topologies: map[graphstore.RelationshipType]*graphstore.Topology{rel: topo},
	})
	if err != nil {
		log.Fatalf("building demo graph: %v", err)
	}

	page := collections.NewHugeArray[float64](n)
	for i := int64(0); i < n; i++ {
		page.Set(i, float64(i+1))
	}
	if err := gs.AddNodeProperty(graphstore.LabelSetKey(""), "value", values.NewDoubleColumn(page)); err != nil {
		log.Fatalf("attaching demo property: %v", err)
	}
	return gs
}

func initialModel() model {
	gc := catalog.NewGraphCatalog()
	if err := gc.Put(demoGraphStore()); err != nil {
		log.Fatalf("seeding catalog: %v", err)
	}

	registry := catalog.DefaultRegistry()

	columns := []table.Column{
		{Title: "Name", Width: 16},
		{Title: "Category", Width: 16},
		{Title: "Modes", Width: 24},
	}
	rows := make([]table.Row, 0, len(registry.Names()))
	for _, name := range registry.Names() {
		desc, err := registry.Lookup(name)
		if err != nil {
			continue
		}
		rows = append(rows, table.Row{desc.Name, desc.Category, modesString(desc.SupportedModes)})
	}

	t := table.New(table.WithColumns(columns), table.WithRows(rows), table.WithFocused(true), table.WithHeight(10))
	s := table.DefaultStyles()
	s.Header = s.Header.BorderStyle(lipgloss.NormalBorder()).BorderForeground(lipgloss.Color("#00FFFF")).BorderBottom(true).Bold(true)
	s.Selected = s.Selected.Foreground(lipgloss.Color("#FFFFFF")).Background(lipgloss.Color("#FF00FF")).Bold(false)
	t.SetStyles(s)

	items := make([]list.Item, 0, len(gc.Names()))
	for _, name := range gc.Names() {
		gs, err := gc.LoadGraph(name)
		if err != nil {
			continue
		}
		items = append(items, graphItem{name: name, nodeCount: gs.Graph().NodeCount()})
	}
	gl := list.New(items, list.NewDefaultDelegate(), 40, 10)
	gl.Title = "Loaded graphs"
	gl.SetShowHelp(false)

	return model{
		catalog:    gc,
		procedures: registry,
		executor:   algorithm.NewProcedureExecutor(gc, nil),
		algList:    t,
		graphList:  gl,
		help:       help.New(),
		keys:       keys,
		startTime:  time.Now(),
	}
}

func modesString(modes []algorithm.ExecutionMode) string {
	parts := make([]string, 0, len(modes))
	for _, m := range modes {
		parts = append(parts, m.String())
	}
	return strings.Join(parts, ", ")
}

func (m model) Init() tea.Cmd { return nil }

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.help.Width = msg.Width
		m.graphList.SetSize(msg.Width-4, msg.Height-12)

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit
		case key.Matches(msg, m.keys.Tab):
			m.currentView = (m.currentView + 1) % 3
		case key.Matches(msg, m.keys.ShiftTab):
			if m.currentView == 0 {
				m.currentView = 2
			} else {
				m.currentView--
			}
		case key.Matches(msg, m.keys.Enter):
			if m.currentView == runView {
				m.runSelected()
			}
		}
	}

	switch m.currentView {
	case catalogView, runView:
		m.algList, cmd = m.algList.Update(msg)
	case dashboardView:
		m.graphList, cmd = m.graphList.Update(msg)
	}
	return m, cmd
}

func (m *model) runSelected() {
	row := m.algList.SelectedRow()
	if len(row) == 0 {
		m.message = "no algorithm selected"
		m.messageErr = true
		return
	}
	name := row[0]

	rawConfig := map[string]any{}
	mode := algorithm.Stream
	if name == "sum" {
		rawConfig["propertyKey"] = "value"
	}

	desc, err := m.procedures.Lookup(name)
	if err != nil {
		m.message = err.Error()
		m.messageErr = true
		return
	}

	out, err := m.executor.Run(desc.Spec, algorithm.Invocation{GraphName: "demo", RawConfig: rawConfig, Mode: mode}, nil)
	if err != nil {
		m.message = fmt.Sprintf("%s failed: %v", name, err)
		m.messageErr = true
		return
	}

	m.message = fmt.Sprintf("%s -> %v", name, out)
	m.messageErr = false
}

func (m model) View() string {
	if m.width == 0 {
		return "Initializing..."
	}

	var s strings.Builder
	s.WriteString(titleStyle.Render("gds-kernel explorer"))
	s.WriteString("\n\n")
	s.WriteString(m.renderTabs())
	s.WriteString("\n\n")

	switch m.currentView {
	case dashboardView:
		s.WriteString(m.renderDashboard())
	case catalogView, runView:
		s.WriteString(m.renderAlgorithms())
	}

	if m.message != "" {
		s.WriteString("\n\n")
		if m.messageErr {
			s.WriteString(errorStyle.Render("x " + m.message))
		} else {
			s.WriteString(successStyle.Render("> " + m.message))
		}
	}

	s.WriteString("\n\n")
	s.WriteString(helpStyle.Render(m.help.ShortHelpView(m.keys.ShortHelp())))
	return s.String()
}

func (m model) renderTabs() string {
	tabs := []string{"Dashboard", "Catalog", "Run"}
	rendered := make([]string, 0, len(tabs))
	for i, tab := range tabs {
		if view(i) == m.currentView {
			rendered = append(rendered, activeTabStyle.Render(tab))
		} else {
			rendered = append(rendered, inactiveTabStyle.Render(tab))
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, rendered...)
}

func (m model) renderDashboard() string {
	uptime := time.Since(m.startTime).Round(time.Second)
	content := fmt.Sprintf("Graphs loaded:  %d\nProcedures:     %d\nUptime:         %s",
		len(m.catalog.Names()), len(m.procedures.Names()), uptime)
	stats := statsBoxStyle.Render(content)
	return contentStyle.Render(lipgloss.JoinVertical(lipgloss.Left, stats, "\n", m.graphList.View()))
}

func (m model) renderAlgorithms() string {
	var s strings.Builder
	s.WriteString(headerStyle.Render("Registered procedures"))
	s.WriteString("\n\n")
	s.WriteString(m.algList.View())
	if m.currentView == runView {
		s.WriteString("\n\n")
		s.WriteString(helpStyle.Render("Press enter to run the selected algorithm against the demo graph"))
	}
	return contentStyle.Render(s.String())
}

func main() {
	p := tea.NewProgram(initialModel())
	if _, err := p.Run(); err != nil {
		log.Fatalf("kernel-tui: %v", err)
	}
}
