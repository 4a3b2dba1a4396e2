// Package agenda renders the day's intervals as a scrolling list of cards
// driven by the scroll physics controller.
package agenda

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/julianstephens/tokei/internal/models"
	"github.com/julianstephens/tokei/internal/scroll"
	"github.com/julianstephens/tokei/internal/tui/components"
)

const (
	// RowPoints is the height of one terminal row in scroll points.
	RowPoints = 20.0
	// CardPoints is the height of one interval card.
	CardPoints = 60.0

	cardRows = int(CardPoints / RowPoints)
)

var (
	selectedStyle = lipgloss.NewStyle().Background(lipgloss.Color("236"))
	timeStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	doneStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("42")).Bold(true)
	emptyStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("240")).Italic(true)
)

type Model struct {
	ctrl      *scroll.Controller
	intervals []models.Interval
	done      func(id string) bool
	selected  int

	width  int
	height int

	pressed bool
	moved   bool
	lastRow int
}

func New(p scroll.Params) Model {
	return Model{ctrl: scroll.New(p, 0), done: func(string) bool { return false }}
}

func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
}

// SetIntervals replaces the list. done reports the checked mark per id.
func (m *Model) SetIntervals(list []models.Interval, done func(id string) bool) {
	var selectedID string
	if iv, ok := m.Selected(); ok {
		selectedID = iv.ID
	}
	m.intervals = list
	if done != nil {
		m.done = done
	}
	m.ctrl.SetIntervalCount(len(list))
	m.selected = 0
	if selectedID != "" {
		m.SelectID(selectedID)
	}
}

func (m *Model) Intervals() []models.Interval {
	return m.intervals
}

// Selected returns the highlighted interval.
func (m *Model) Selected() (models.Interval, bool) {
	if m.selected < 0 || m.selected >= len(m.intervals) {
		return models.Interval{}, false
	}
	return m.intervals[m.selected], true
}

// SelectID highlights the interval with id and scrolls it into view.
func (m *Model) SelectID(id string) bool {
	for i, iv := range m.intervals {
		if iv.ID == id {
			m.selected = i
			m.ensureVisible()
			return true
		}
	}
	return false
}

// Move shifts the selection by delta cards.
func (m *Model) Move(delta int) {
	if len(m.intervals) == 0 {
		return
	}
	m.selected = max(0, min(len(m.intervals)-1, m.selected+delta))
	m.ensureVisible()
}

func (m *Model) ensureVisible() {
	if m.height <= 0 {
		return
	}
	top := float64(m.selected) * CardPoints
	bottom := top + CardPoints
	view := float64(m.height) * RowPoints
	shown := -m.ctrl.Offset()
	switch {
	case top < shown:
		m.ctrl.ScrollTo(-top)
	case bottom > shown+view:
		m.ctrl.ScrollTo(-(bottom - view))
	}
}

// shift is the number of content rows scrolled off the top. It is negative
// while the list is pulled down past its start.
func (m *Model) shift() int {
	return int(math.Round(-m.ctrl.Offset() / RowPoints))
}

// CardAt returns the index of the card under a viewport row, or -1.
func (m *Model) CardAt(row int) int {
	line := row + m.shift()
	if row < 0 || line < 0 {
		return -1
	}
	idx := line / cardRows
	if idx >= len(m.intervals) {
		return -1
	}
	return idx
}

// Press starts a pointer interaction on row.
func (m *Model) Press(row int, at time.Time) {
	m.ctrl.Press(at)
	m.pressed = true
	m.moved = false
	m.lastRow = row
}

// Drag follows the pointer to row.
func (m *Model) Drag(row int, at time.Time) {
	if !m.pressed {
		return
	}
	if dy := row - m.lastRow; dy != 0 {
		m.moved = true
		m.ctrl.Drag(float64(dy)*RowPoints, at)
		m.lastRow = row
	}
}

// Release ends the interaction. A press without movement selects the card
// under it, which is returned.
func (m *Model) Release(row int, at time.Time) (models.Interval, bool) {
	if !m.pressed {
		return models.Interval{}, false
	}
	m.pressed = false
	m.ctrl.Release(at)
	if m.moved {
		return models.Interval{}, false
	}
	idx := m.CardAt(row)
	if idx < 0 {
		return models.Interval{}, false
	}
	m.selected = idx
	return m.intervals[idx], true
}

// Wheel scrolls by notches; positive moves toward the top.
func (m *Model) Wheel(notches int) {
	m.ctrl.Wheel(float64(notches) * RowPoints)
}

// Step advances the settle animation.
func (m *Model) Step(dt time.Duration) bool {
	return m.ctrl.Step(dt)
}

func (m *Model) Animating() bool {
	return m.ctrl.Animating()
}

func (m *Model) Offset() float64 {
	return m.ctrl.Offset()
}

func formatLength(minutes int) string {
	h, mm := minutes/60, minutes%60
	switch {
	case h == 0:
		return fmt.Sprintf("%dm", mm)
	case mm == 0:
		return fmt.Sprintf("%dh", h)
	default:
		return fmt.Sprintf("%dh%02dm", h, mm)
	}
}

// cardLine returns content line sub of card idx.
func (m *Model) cardLine(idx, sub int) string {
	iv := m.intervals[idx]
	bar := components.TagStyle(iv.Color).Render("▌")
	switch sub {
	case 0:
		return bar + " " + timeStyle.Render(iv.Span()+"  "+formatLength(iv.Duration()))
	case 1:
		line := bar + " " + iv.DisplayTitle()
		if m.done(iv.ID) {
			line += " " + doneStyle.Render("✓")
		}
		return line
	default:
		return ""
	}
}

func (m Model) View() string {
	if m.height <= 0 {
		return ""
	}
	if len(m.intervals) == 0 {
		return emptyStyle.Render("No intervals. Press a to add one.")
	}

	fit := lipgloss.NewStyle().Width(m.width).MaxWidth(m.width)
	shift := m.shift()
	lines := make([]string, m.height)
	for r := range lines {
		line := r + shift
		if line < 0 || line >= len(m.intervals)*cardRows {
			lines[r] = fit.Render("")
			continue
		}
		idx, sub := line/cardRows, line%cardRows
		text := fit.Render(m.cardLine(idx, sub))
		if idx == m.selected && sub < cardRows-1 {
			text = selectedStyle.Render(text)
		}
		lines[r] = text
	}
	return strings.Join(lines, "\n")
}
