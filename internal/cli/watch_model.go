package cli

import (
	"context"
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/matzehuels/wordladder/pkg/search"
	"github.com/matzehuels/wordladder/pkg/wordgraph"
)

// Word styles by display state.
var (
	styleFrontier = lipgloss.NewStyle().Foreground(colorYellow)
	styleCurrent  = lipgloss.NewStyle().Bold(true).Reverse(true).Foreground(colorRed)
	styleVisited  = lipgloss.NewStyle().Foreground(colorBlue)
	styleLadder   = lipgloss.NewStyle().Bold(true).Foreground(colorGreen)
	styleLabel    = lipgloss.NewStyle().Foreground(colorGray)
)

// recentEdges is how many of the latest discovered edges the view lists.
const recentEdges = 6

// =============================================================================
// watchModel - live view of a running search
// =============================================================================

type (
	tickMsg time.Time

	searchDoneMsg struct {
		result search.WordResult
		err    error
	}
)

// watchModel polls the engine on every tick and draws its latest snapshot.
// The search itself runs as a tea.Cmd, so the model never blocks it.
type watchModel struct {
	ctx     context.Context
	cancel  context.CancelFunc
	engine  *search.Engine
	graph   *wordgraph.Graph
	from    string
	to      string
	refresh time.Duration

	snap       search.Snapshot
	finished   bool
	result     search.WordResult
	err        error
	exitOnDone bool

	width  int
	height int
}

func newWatchModel(ctx context.Context, engine *search.Engine, from, to string, refresh time.Duration) watchModel {
	ctx, cancel := context.WithCancel(ctx)
	return watchModel{
		ctx:     ctx,
		cancel:  cancel,
		engine:  engine,
		graph:   engine.Graph(),
		from:    from,
		to:      to,
		refresh: refresh,
		snap:    engine.Snapshot(),
		width:   80,
		height:  24,
	}
}

func (m watchModel) Init() tea.Cmd {
	return tea.Batch(m.runSearch(), m.tick())
}

func (m watchModel) tick() tea.Cmd {
	return tea.Tick(m.refresh, func(t time.Time) tea.Msg { return tickMsg(t) })
}

func (m watchModel) runSearch() tea.Cmd {
	return func() tea.Msg {
		res, err := m.engine.FindWordPath(m.ctx, m.from, m.to)
		return searchDoneMsg{result: res, err: err}
	}
}

func (m watchModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			m.cancel()
			return m, tea.Quit
		}
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
	case tickMsg:
		m.snap = m.engine.Snapshot()
		if m.finished {
			return m, nil
		}
		return m, m.tick()
	case searchDoneMsg:
		m.finished = true
		m.result, m.err = msg.result, msg.err
		m.snap = m.engine.Snapshot()
		if m.exitOnDone {
			m.cancel()
			return m, tea.Quit
		}
	}
	return m, nil
}

func (m watchModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render(fmt.Sprintf("%s %s %s", m.from, iconArrow, m.to)))
	b.WriteString("  ")
	b.WriteString(StyleDim.Render(m.statusLine()))
	b.WriteString("\n")

	current := "—"
	if m.snap.HasCurrent() {
		current = styleCurrent.Render(m.graph.Word(m.snap.Current))
	}
	b.WriteString(styleLabel.Render("current  ") + current + "\n")

	if path := m.snap.Path; len(path) > 0 {
		words := m.graph.Words(path)
		for i, w := range words {
			words[i] = styleLadder.Render(w)
		}
		b.WriteString(styleLabel.Render("ladder   ") + strings.Join(words, " "+iconArrow+" ") + "\n")
	} else if m.finished && m.snap.Status == search.StatusExhausted {
		b.WriteString(styleLabel.Render("ladder   ") + StyleWarning.Render("none") + "\n")
	}
	b.WriteString("\n")

	b.WriteString(m.wordGrid())
	b.WriteString("\n")
	b.WriteString(m.edgeList())
	b.WriteString("\n")
	b.WriteString(StyleDim.Render(m.legend()))
	return b.String()
}

func (m watchModel) statusLine() string {
	return fmt.Sprintf("%s · %d expanded · %d visited · %d frontier · %d edges",
		m.snap.Status, m.snap.Expanded, len(m.snap.Visited), len(m.snap.Frontier), len(m.snap.Discovered))
}

// wordGrid lays out the active words in columns, coloured by state, and
// elides the oldest visited words when they do not fit.
func (m watchModel) wordGrid() string {
	active := m.snap.Active()
	if len(active) == 0 {
		return StyleDim.Render("(no words explored yet)") + "\n"
	}

	cell := m.graph.WordLength() + 1
	perRow := max(1, m.width/cell)
	rows := max(1, m.height-10)
	capacity := perRow * rows

	var b strings.Builder
	if hidden := len(active) - capacity; hidden > 0 {
		b.WriteString(StyleDim.Render(fmt.Sprintf("… %d earlier words", hidden+perRow)) + "\n")
		active = active[hidden+perRow:]
	}

	onLadder := make(map[int]bool, len(m.snap.Path))
	for _, v := range m.snap.Path {
		onLadder[v] = true
	}
	for i, v := range active {
		if i > 0 && i%perRow == 0 {
			b.WriteString("\n")
		} else if i > 0 {
			b.WriteString(" ")
		}
		b.WriteString(m.styleFor(v, onLadder[v]).Render(m.graph.Word(v)))
	}
	b.WriteString("\n")
	return b.String()
}

func (m watchModel) styleFor(v int, onLadder bool) lipgloss.Style {
	if onLadder {
		return styleLadder
	}
	switch m.snap.State(v) {
	case search.Current:
		return styleCurrent
	case search.Frontier:
		return styleFrontier
	case search.Visited:
		return styleVisited
	default:
		return StyleDim
	}
}

// edgeList shows the most recently discovered edges, newest last.
func (m watchModel) edgeList() string {
	discovered := m.snap.Discovered
	if len(discovered) == 0 {
		return ""
	}
	start := max(0, len(discovered)-recentEdges)

	var b strings.Builder
	b.WriteString(styleLabel.Render("edges    "))
	for i, id := range discovered[start:] {
		if i > 0 {
			b.WriteString("  ")
		}
		e := m.graph.Edge(id)
		b.WriteString(StyleValue.Render(m.graph.Word(e.B) + "–" + m.graph.Word(e.A)))
	}
	b.WriteString("\n")
	return b.String()
}

func (m watchModel) legend() string {
	keys := "q quit"
	if m.finished {
		keys = "search finished · " + keys
	}
	return styleFrontier.Render("frontier") + " " +
		styleCurrent.Render("current") + " " +
		styleVisited.Render("visited") + " " +
		styleLadder.Render("ladder") + "   " + keys
}
