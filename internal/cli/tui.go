package cli

import (
	"fmt"
	"math"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/matzehuels/nameplate/pkg/arrange"
	"github.com/matzehuels/nameplate/pkg/card"
	"github.com/matzehuels/nameplate/pkg/errors"
	"github.com/matzehuels/nameplate/pkg/interact"
	"github.com/matzehuels/nameplate/pkg/names"
)

// Board pixels per terminal cell. A cell is about twice as tall as wide.
const (
	cellWidth  = 8.0
	cellHeight = 16.0

	// chromeRows are the terminal rows taken by the title, border and help.
	chromeRows = 5
	chromeCols = 2
)

// Board styles
var (
	boardBorderStyle  = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(colorMuted)
	plateStyle        = lipgloss.NewStyle().Foreground(colorText)
	plateFocusStyle   = lipgloss.NewStyle().Bold(true).Foreground(colorAccent)
	plateDraggedStyle = lipgloss.NewStyle().Bold(true).Foreground(colorWarn)
	boardHelpStyle    = lipgloss.NewStyle().Foreground(colorMuted)
	boardErrStyle     = lipgloss.NewStyle().Foreground(colorFail)
)

// =============================================================================
// BoardModel - Interactive terminal board
// =============================================================================

// frameMsg carries a frame published by the controller.
type frameMsg arrange.Frame

// BoardModel is the bubbletea model of the terminal board. It draws the
// controller's frames and turns key presses into controller events.
type BoardModel struct {
	ctrl   *arrange.Controller
	frames <-chan arrange.Frame

	frame  arrange.Frame
	focus  int // card id with keyboard focus, -1 for none
	dx, dy float64
	input  textinput.Model
	err    error

	cols, rows int
}

// NewBoardModel returns a model driving ctrl. frames must receive every
// frame the controller publishes.
func NewBoardModel(ctrl *arrange.Controller, frames <-chan arrange.Frame) BoardModel {
	in := textinput.New()
	in.Prompt = "name: "
	in.CharLimit = errors.MaxNameLength
	return BoardModel{
		ctrl:   ctrl,
		frames: frames,
		frame:  ctrl.Current(),
		focus:  -1,
		input:  in,
	}
}

// frameSink returns a listener that hands frames to ch without blocking;
// frames are dropped while ch is full.
func frameSink(ch chan<- arrange.Frame) arrange.Listener {
	return func(f arrange.Frame) {
		select {
		case ch <- f:
		default:
		}
	}
}

func waitForFrame(frames <-chan arrange.Frame) tea.Cmd {
	return func() tea.Msg {
		f, ok := <-frames
		if !ok {
			return nil
		}
		return frameMsg(f)
	}
}

func (m BoardModel) Init() tea.Cmd {
	return waitForFrame(m.frames)
}

func (m BoardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.cols = max(1, msg.Width-chromeCols)
		m.rows = max(1, msg.Height-chromeRows)
		if f, ok := m.ctrl.Resize(float64(m.cols)*cellWidth, float64(m.rows)*cellHeight); ok {
			m.apply(f)
		}
		return m, nil

	case frameMsg:
		m.apply(arrange.Frame(msg))
		return m, waitForFrame(m.frames)

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
		switch m.frame.Mode {
		case interact.Editing.String():
			return m.updateEditing(msg)
		case interact.Dragging.String():
			return m.updateDragging(msg), nil
		}
		return m.updateIdle(msg)
	}
	return m, nil
}

// apply draws f unless a newer frame is already shown.
func (m *BoardModel) apply(f arrange.Frame) {
	if f.Seq < m.frame.Seq {
		return
	}
	m.frame = f
	if m.focus >= 0 && card.IndexOf(f.Cards, m.focus) < 0 {
		m.focus = -1
	}
	if f.Mode != interact.Dragging.String() {
		m.dx, m.dy = 0, 0
	}
}

// step applies the result of a controller call.
func (m *BoardModel) step(f arrange.Frame, err error) {
	m.err = err
	if err == nil {
		m.apply(f)
	}
}

func (m BoardModel) updateIdle(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	m.err = nil
	switch msg.String() {
	case "q", "esc":
		return m, tea.Quit
	case "tab", "right", "l":
		m.focus = m.cycle(1)
	case "shift+tab", "left", "h":
		m.focus = m.cycle(-1)
	case "r":
		m.apply(m.ctrl.Refresh())
	case "d", " ":
		if m.focus >= 0 {
			m.step(m.ctrl.DragStart(m.focus))
		}
	case "enter", "e":
		if m.focus >= 0 {
			m.step(m.ctrl.Select(m.focus))
			if m.err == nil {
				m.input.SetValue(m.frame.Scratch)
				m.input.CursorEnd()
				cmd := m.input.Focus()
				return m, cmd
			}
		}
	}
	return m, nil
}

func (m BoardModel) updateDragging(msg tea.KeyMsg) BoardModel {
	switch msg.String() {
	case "up", "k":
		m.dy -= cellHeight
	case "down", "j":
		m.dy += cellHeight
	case "left", "h":
		m.dx -= cellWidth
	case "right", "l":
		m.dx += cellWidth
	case "d", " ", "enter":
		m.step(m.ctrl.DragEnd(m.dx, m.dy))
		return m
	case "esc":
		m.step(m.ctrl.DragEnd(0, 0))
		return m
	default:
		return m
	}
	m.step(m.ctrl.DragMove(m.dx, m.dy))
	return m
}

func (m BoardModel) updateEditing(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter":
		m.step(m.ctrl.Done())
		m.input.Blur()
		return m, nil
	case "esc":
		m.step(m.ctrl.Cancel())
		m.input.Blur()
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	if v := m.input.Value(); v != m.frame.Scratch {
		m.step(m.ctrl.Edit(v))
	}
	return m, cmd
}

// cycle moves focus by dir through the cards in paint order.
func (m BoardModel) cycle(dir int) int {
	order := card.PaintOrder(m.frame.Cards)
	if len(order) == 0 {
		return -1
	}
	i := 0
	for j, c := range order {
		if c.ID == m.focus {
			i = (j + dir + len(order)) % len(order)
			return order[i].ID
		}
	}
	if dir < 0 {
		i = len(order) - 1
	}
	return order[i].ID
}

func (m BoardModel) View() string {
	var b strings.Builder

	title := fmt.Sprintf("Nameplates · %d cards · %s", len(m.frame.Cards), m.frame.Strategy)
	b.WriteString(StyleTitle.Render(title))
	b.WriteString("\n")

	if m.cols > 0 && m.rows > 0 {
		b.WriteString(boardBorderStyle.Render(m.renderGrid()))
	}
	b.WriteString("\n")

	switch {
	case m.frame.Mode == interact.Editing.String():
		b.WriteString(m.input.View())
		b.WriteString(boardHelpStyle.Render("  ⏎ save  esc cancel"))
	case m.frame.Mode == interact.Dragging.String():
		b.WriteString(boardHelpStyle.Render("arrows move  ⏎/d drop  esc drop in place"))
	default:
		b.WriteString(boardHelpStyle.Render("tab focus  d drag  ⏎ edit  r re-arrange  q quit"))
	}
	if m.err != nil {
		b.WriteString("  ")
		b.WriteString(boardErrStyle.Render(errors.UserMessage(m.err)))
	}
	return b.String()
}

// cell is one terminal cell of the board grid. Wide runes occupy their
// cell and blank the next one.
type cell struct {
	text  string
	style *lipgloss.Style
}

// renderGrid draws the cards in paint order onto a cols x rows grid.
func (m BoardModel) renderGrid() string {
	grid := make([][]cell, m.rows)
	for y := range grid {
		grid[y] = make([]cell, m.cols)
		for x := range grid[y] {
			grid[y][x] = cell{text: " "}
		}
	}

	dragged := -1
	if m.frame.Target != nil && m.frame.Mode == interact.Dragging.String() {
		dragged = *m.frame.Target
	}

	for _, c := range card.PaintOrder(m.frame.Cards) {
		style := &plateStyle
		cx, cy := c.X, c.Y
		switch {
		case c.ID == dragged:
			style = &plateDraggedStyle
			cx, cy = cx+m.dx, cy+m.dy
		case c.ID == m.focus:
			style = &plateFocusStyle
		}
		label := "[" + names.Format(c.Value) + "]"
		m.place(grid, label, cx, cy, style)
	}

	var b strings.Builder
	for y, row := range grid {
		if y > 0 {
			b.WriteByte('\n')
		}
		for _, c := range row {
			if c.style != nil {
				b.WriteString(c.style.Render(c.text))
			} else {
				b.WriteString(c.text)
			}
		}
	}
	return b.String()
}

// place writes label centered on board point (x, y), clipped to the grid.
func (m BoardModel) place(grid [][]cell, label string, x, y float64, style *lipgloss.Style) {
	row := int(math.Floor(y / cellHeight))
	if row < 0 || row >= len(grid) {
		return
	}
	col := int(math.Round(x/cellWidth)) - lipgloss.Width(label)/2
	for _, r := range label {
		w := lipgloss.Width(string(r))
		if col >= 0 && col+w <= len(grid[row]) {
			grid[row][col] = cell{text: string(r), style: style}
			for i := 1; i < w; i++ {
				grid[row][col+i] = cell{}
			}
		}
		col += w
	}
}
