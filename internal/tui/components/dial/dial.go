// Package dial draws the 24-hour clock face on a character grid.
//
// Terminal cells are about twice as tall as they are wide, so the grid is
// mapped into geometry points with one point per column and two per row.
// That keeps the dial round and lets mouse cells go straight through the
// geometry package.
package dial

import (
	"math"
	"strings"
	"time"
	"unicode"

	"github.com/charmbracelet/lipgloss"

	"github.com/julianstephens/tokei/internal/constants"
	"github.com/julianstephens/tokei/internal/geometry"
	"github.com/julianstephens/tokei/internal/models"
	"github.com/julianstephens/tokei/internal/tui/components"
)

const (
	ringInner     = 0.68
	labelRadius   = 0.84
	numeralRadius = 0.5
	hourHandLen   = 0.44
	secondHandLen = 0.6
	numeralStep   = 3
)

// Layout places a dial of Rows x Cols cells.
type Layout struct {
	Cols, Rows int
	Center     geometry.Point
	Radius     float64
}

// NewLayout fits the largest dial into rows by maxCols cells.
func NewLayout(rows, maxCols int) Layout {
	rows = max(min(rows, maxCols/2), 3)
	return Layout{
		Cols:   rows * 2,
		Rows:   rows,
		Center: geometry.Point{X: float64(rows), Y: float64(rows)},
		Radius: float64(rows) - 1,
	}
}

// CellPoint returns the point at the middle of a cell.
func (l Layout) CellPoint(col, row int) geometry.Point {
	return geometry.Point{X: float64(col) + 0.5, Y: float64(row)*2 + 1}
}

// Cell returns the cell containing p.
func (l Layout) Cell(p geometry.Point) (col, row int) {
	return int(math.Floor(p.X)), int(math.Floor(p.Y / 2))
}

// InBounds reports whether a cell lies on the grid.
func (l Layout) InBounds(col, row int) bool {
	return col >= 0 && col < l.Cols && row >= 0 && row < l.Rows
}

// Frame is everything drawn on one render.
type Frame struct {
	Day       string
	Now       time.Time
	Intervals []models.Interval
	Selected  string

	Recording   bool
	RecordStart time.Time
}

type cellKind int

const (
	kindBlank cellKind = iota
	kindOutline
	kindElapsed
	kindInterval
	kindSelected
	kindRecording
	kindSecond
	kindHand
	kindNumeral
	kindLabel
)

type cell struct {
	ch   rune
	kind cellKind
	tag  models.ColorTag
}

// paint fills the grid without styling.
func paint(l Layout, f Frame) [][]cell {
	grid := make([][]cell, l.Rows)
	for r := range grid {
		grid[r] = make([]cell, l.Cols)
		for c := range grid[r] {
			grid[r][c] = cell{ch: ' '}
		}
	}

	var spans [constants.HoursPerDay][]geometry.Span
	spanAt := func(m int) (geometry.Span, bool) {
		h := m / constants.MinutesPerHour
		if spans[h] == nil {
			spans[h] = geometry.SegmentSpans(f.Intervals, h)
		}
		for _, sp := range spans[h] {
			if m >= sp.Range.Start && m < sp.Range.End {
				return sp, true
			}
		}
		return geometry.Span{}, false
	}

	elapsed, hasElapsed := geometry.ElapsedArc(f.Day, f.Now)
	recording := f.Recording && f.Day == models.FormatDayKey(f.Now)
	recArc := geometry.RecordingArc(f.RecordStart, f.Now)

	inner := l.Radius * ringInner
	for r := 0; r < l.Rows; r++ {
		for c := 0; c < l.Cols; c++ {
			p := l.CellPoint(c, r)
			d := math.Hypot(p.X-l.Center.X, p.Y-l.Center.Y)
			if d < inner {
				continue
			}
			m, ok := geometry.PointToMinute(p, l.Center, l.Radius)
			if !ok {
				continue
			}
			mid := float64(m) + 0.5
			sp, found := spanAt(m)
			switch {
			case found && sp.Kind == geometry.SpanOccupied && sp.IntervalID == f.Selected:
				grid[r][c] = cell{ch: '▓', kind: kindSelected, tag: sp.Color}
			case found && sp.Kind == geometry.SpanOccupied:
				grid[r][c] = cell{ch: '█', kind: kindInterval, tag: sp.Color}
			case recording && recArc.Contains(mid):
				grid[r][c] = cell{ch: '▒', kind: kindRecording}
			case hasElapsed && elapsed.Contains(mid):
				grid[r][c] = cell{ch: '░', kind: kindElapsed}
			case d >= l.Radius-1.2:
				grid[r][c] = cell{ch: '·', kind: kindOutline}
			}
		}
	}

	put := func(p geometry.Point, ch rune, kind cellKind, tag models.ColorTag) {
		c, r := l.Cell(p)
		if l.InBounds(c, r) {
			grid[r][c] = cell{ch: ch, kind: kind, tag: tag}
		}
	}

	for _, n := range geometry.NumeralPositions(l.Center, l.Radius*numeralRadius, numeralStep) {
		label := []rune(n.Label)
		c, r := l.Cell(n.Pos)
		for i, ch := range label {
			put(geometry.Point{X: float64(c-(len(label)-1)/2+i) + 0.5, Y: float64(r)*2 + 1}, ch, kindNumeral, "")
		}
	}

	for _, iv := range f.Intervals {
		title := []rune(strings.TrimSpace(iv.Title))
		if len(title) == 0 {
			continue
		}
		put(geometry.LabelPosition(iv, l.Center, l.Radius*labelRadius), unicode.ToUpper(title[0]), kindLabel, iv.Color)
	}

	hands := geometry.HandTips(f.Now, l.Center, l.Radius*hourHandLen, l.Radius*secondHandLen)
	line := func(tip geometry.Point, ch rune, kind cellKind) {
		steps := int(math.Ceil(math.Hypot(tip.X-l.Center.X, tip.Y-l.Center.Y) * 2))
		for i := 1; i <= steps; i++ {
			t := float64(i) / float64(steps)
			put(geometry.Point{
				X: l.Center.X + (tip.X-l.Center.X)*t,
				Y: l.Center.Y + (tip.Y-l.Center.Y)*t,
			}, ch, kind, "")
		}
	}
	line(hands.Second, '·', kindSecond)
	line(hands.Hour, '•', kindHand)
	put(l.Center, 'o', kindHand, "")

	return grid
}

var (
	outlineStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	elapsedStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("238"))
	recordingStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	secondStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("203"))
	handStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("252")).Bold(true)
	numeralStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
)

func styleFor(c cell) lipgloss.Style {
	switch c.kind {
	case kindOutline:
		return outlineStyle
	case kindElapsed:
		return elapsedStyle
	case kindInterval:
		return components.TagStyle(c.tag)
	case kindSelected:
		return components.TagStyle(c.tag).Bold(true)
	case kindRecording:
		return recordingStyle
	case kindSecond:
		return secondStyle
	case kindHand:
		return handStyle
	case kindNumeral:
		return numeralStyle
	case kindLabel:
		return lipgloss.NewStyle().Background(components.TagColor(c.tag)).Foreground(lipgloss.Color("0")).Bold(true)
	default:
		return lipgloss.NewStyle()
	}
}

// Render draws the dial as Rows lines of Cols cells.
func Render(l Layout, f Frame) string {
	grid := paint(l, f)
	lines := make([]string, len(grid))
	for r, row := range grid {
		var b strings.Builder
		for start := 0; start < len(row); {
			end := start + 1
			for end < len(row) && row[end].kind == row[start].kind && row[end].tag == row[start].tag {
				end++
			}
			run := make([]rune, 0, end-start)
			for _, c := range row[start:end] {
				run = append(run, c.ch)
			}
			if row[start].kind == kindBlank {
				b.WriteString(string(run))
			} else {
				b.WriteString(styleFor(row[start]).Render(string(run)))
			}
			start = end
		}
		lines[r] = b.String()
	}
	return strings.Join(lines, "\n")
}

// Hit resolves a mouse cell on the dial against loc.
func Hit(l Layout, loc geometry.IntervalLocator, col, row int) geometry.Hit {
	if !l.InBounds(col, row) {
		return geometry.Hit{Kind: geometry.HitNone}
	}
	return geometry.Resolve(loc, l.CellPoint(col, row), l.Center, l.Radius)
}
