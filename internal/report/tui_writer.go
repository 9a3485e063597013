package report

import (
	"fmt"
	"os"
	"slices"
	"strconv"
	"strings"
	"sync/atomic"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/wordwrap"

	"autoresolve-sim/internal/telemetry"
)

// teaProgram abstracts bubbletea.Program for testing.
type teaProgram interface {
	Send(tea.Msg)
}

// logMsg carries a report line for the viewport.
type logMsg struct{ line string }

// unitMsg carries a unit snapshot for the roster table.
type unitMsg struct{ telemetry.UnitStateRow }

// summaryMsg carries the verdict.
type summaryMsg struct{ telemetry.SummaryRow }

const maxTableRows = 12

var (
	headerStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	destroyedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	verdictStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("10"))
	dividerStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
)

// TUIWriter renders a running battle using a bubbletea TUI.
type TUIWriter struct {
	program    teaProgram
	done       chan struct{}
	sendSignal atomic.Bool
	// verdict is set once the summary reached the UI; Close then leaves
	// the screen up until the user quits.
	verdict atomic.Bool
}

// NewTUIWriter starts a bubbletea program and returns a TUIWriter.
func NewTUIWriter(title string) *TUIWriter {
	w := &TUIWriter{done: make(chan struct{})}
	w.sendSignal.Store(true)
	p := tea.NewProgram(newTUIModel(title), tea.WithAltScreen())
	w.program = p
	go func() {
		_, _ = p.Run()
		close(w.done)
		// quitting the UI early interrupts the battle
		if w.sendSignal.Load() {
			if proc, err := os.FindProcess(os.Getpid()); err == nil {
				_ = proc.Signal(os.Interrupt)
			}
		}
	}()
	return w
}

// WriteEvent implements Writer.
func (w *TUIWriter) WriteEvent(e telemetry.EventRow) error {
	c, ok := phasePalette[e.Phase]
	if !ok {
		c = colorGray
	}
	line := fmt.Sprintf("%sR%-3d%s %s%-10s%s %s", colorGray, e.Round, colorReset, c, e.Phase, colorReset, e.Text)
	w.program.Send(logMsg{line: line})
	return nil
}

// WriteUnitState implements Writer.
func (w *TUIWriter) WriteUnitState(u telemetry.UnitStateRow) error {
	w.program.Send(unitMsg{u})
	return nil
}

// WriteSummary implements Writer.
func (w *TUIWriter) WriteSummary(s telemetry.SummaryRow) error {
	w.program.Send(summaryMsg{s})
	w.verdict.Store(true)
	return nil
}

// Close waits for the UI to exit. After a verdict the user dismisses it
// with the quit key; otherwise the UI is stopped right away.
func (w *TUIWriter) Close() error {
	w.sendSignal.Store(false)
	if w.program != nil && !w.verdict.Load() {
		w.program.Send(tea.Quit())
	}
	if w.done != nil {
		<-w.done
	}
	return nil
}

type tuiModel struct {
	title      string
	table      table.Model
	vp         viewport.Model
	logs       []string
	units      map[int]telemetry.UnitStateRow
	round      int
	summary    *telemetry.SummaryRow
	wrap       bool
	autoscroll bool
	showUnits  bool
	help       bool
	width      int
	height     int
}

func newTUIModel(title string) tuiModel {
	cols := []table.Column{
		{Title: "ID", Width: 4},
		{Title: "Unit", Width: 18},
		{Title: "Type", Width: 12},
		{Title: "Armor", Width: 9},
		{Title: "Internal", Width: 9},
		{Title: "Crew", Width: 4},
		{Title: "Status", Width: 12},
	}
	t := table.New(table.WithColumns(cols), table.WithHeight(maxTableRows))
	return tuiModel{
		title:      title,
		table:      t,
		vp:         viewport.New(0, 0),
		units:      make(map[int]telemetry.UnitStateRow),
		autoscroll: true,
		showUnits:  true,
	}
}

func (m tuiModel) Init() tea.Cmd { return nil }

func (m tuiModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.vp.Width = msg.Width
		m.table.SetWidth(msg.Width)
		m.updateViewportHeight()
		m.refreshViewport()
	case tea.KeyMsg:
		if m.help {
			m.help = false
			return m, nil
		}
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case "w":
			m.wrap = !m.wrap
			m.refreshViewport()
		case "a":
			m.autoscroll = !m.autoscroll
		case "u":
			m.showUnits = !m.showUnits
			m.updateViewportHeight()
		case "h", "?":
			m.help = true
		default:
			var cmd tea.Cmd
			m.vp, cmd = m.vp.Update(msg)
			return m, cmd
		}
	case logMsg:
		m.logs = append(m.logs, msg.line)
		m.refreshViewport()
	case unitMsg:
		m.units[msg.UnitID] = msg.UnitStateRow
		m.round = max(m.round, msg.Round)
		m.refreshTable()
	case summaryMsg:
		s := msg.SummaryRow
		m.summary = &s
		m.updateViewportHeight()
	}
	return m, nil
}

func (m *tuiModel) refreshTable() {
	ids := make([]int, 0, len(m.units))
	for id := range m.units {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	rows := make([]table.Row, 0, len(ids))
	for _, id := range ids {
		u := m.units[id]
		status := "active"
		if u.Destroyed {
			status = u.Removal
		}
		rows = append(rows, table.Row{
			strconv.Itoa(u.UnitID),
			u.Name,
			u.Category,
			fmt.Sprintf("%d/%d", u.Armor, u.MaxArmor),
			fmt.Sprintf("%d/%d", u.Internal, u.MaxInternal),
			strconv.Itoa(u.CrewHits),
			status,
		})
	}
	m.table.SetRows(rows)
	m.table.SetHeight(min(len(rows)+1, maxTableRows))
}

func (m *tuiModel) updateViewportHeight() {
	used := lipgloss.Height(m.renderHeader()) + lipgloss.Height(m.renderBottom()) + 2
	if m.showUnits {
		used += lipgloss.Height(m.table.View()) + 1
	}
	m.vp.Height = max(m.height-used, 0)
	if m.autoscroll {
		m.vp.GotoBottom()
	}
}

func (m *tuiModel) refreshViewport() {
	lines := make([]string, 0, len(m.logs))
	for _, l := range m.logs {
		if m.wrap && m.vp.Width > 0 {
			l = wordwrap.String(l, m.vp.Width)
		}
		lines = append(lines, l)
	}
	m.vp.SetContent(strings.Join(lines, "\n"))
	if m.autoscroll {
		m.vp.GotoBottom()
	}
}

func (m tuiModel) View() string {
	if m.help {
		return m.renderHelp()
	}
	divider := dividerStyle.Render(strings.Repeat("─", max(m.width, 1)))
	sections := []string{m.renderHeader(), divider}
	if m.showUnits {
		sections = append(sections, m.table.View(), divider)
	}
	sections = append(sections, m.vp.View(), divider, m.renderBottom())
	return strings.Join(sections, "\n")
}

func (m tuiModel) renderHeader() string {
	destroyed := 0
	for _, u := range m.units {
		if u.Destroyed {
			destroyed++
		}
	}
	title := headerStyle.Render(m.title)
	stats := fmt.Sprintf("round %d  units %d  destroyed %s", m.round, len(m.units),
		destroyedStyle.Render(strconv.Itoa(destroyed)))
	return title + "  " + stats
}

func (m tuiModel) renderBottom() string {
	if m.summary == nil {
		return "q quit  w wrap  a autoscroll  u units  ? help"
	}
	s := m.summary
	verdict := fmt.Sprintf("team %d wins", s.Winner)
	if s.Winner < 0 {
		verdict = "draw"
	}
	line := verdictStyle.Render(fmt.Sprintf("VICTORY: %s after %d rounds", verdict, s.Rounds))
	for _, t := range s.Teams {
		line += fmt.Sprintf("  team %d lost %.0f%%", t.Team, t.CasualtyPct)
	}
	return line + dividerStyle.Render("  (q to exit)")
}

func (m tuiModel) renderHelp() string {
	lines := []string{
		headerStyle.Render("Keys"),
		"q      quit",
		"w      toggle line wrap",
		"a      toggle autoscroll",
		"u      toggle unit table",
		"↑/↓    scroll report",
		"",
		"press any key to return",
	}
	return strings.Join(lines, "\n")
}
