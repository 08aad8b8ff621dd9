package tui

import (
	"github.com/runofshow/runofshow/internal/schedule"
	"github.com/runofshow/runofshow/internal/timegrid"
)

// Terminal chrome around the grid: title plus lane headers on top, a
// status line at the bottom.
const (
	headerLines = 2
	footerLines = 1
	timeColW    = 8
)

// linesPerHour is the vertical resolution: 4 terminal lines per hour row,
// one per quarter hour.
const linesPerHour = 4

// Grid maps terminal cell coordinates onto the time axis and its lanes.
// It is rebuilt on every resize and scroll.
type Grid struct {
	Width        int
	Height       int
	Lanes        []schedule.Lane
	Hours        int // whole hour rows on the axis
	ScrollOffset int // first visible hour row
}

// LaneWidth returns the cell width of one lane column.
func (g Grid) LaneWidth() int {
	if len(g.Lanes) == 0 {
		return minLaneWidth
	}
	w := (g.Width - timeColW) / len(g.Lanes)
	if w < minLaneWidth {
		w = minLaneWidth
	}
	return w
}

// VisibleHours returns how many hour rows fit in the terminal.
func (g Grid) VisibleHours() int {
	lines := g.Height - headerLines - footerLines
	if lines < linesPerHour {
		return 1
	}
	return lines / linesPerHour
}

// MaxScroll returns the largest valid scroll offset.
func (g Grid) MaxScroll() int {
	max := g.Hours - g.VisibleHours()
	if max < 0 {
		return 0
	}
	return max
}

// LaneAt resolves the lane under terminal column x.
func (g Grid) LaneAt(x int) (schedule.Lane, bool) {
	if x < timeColW || len(g.Lanes) == 0 {
		return schedule.Lane{}, false
	}
	idx := (x - timeColW) / g.LaneWidth()
	if idx >= len(g.Lanes) {
		return schedule.Lane{}, false
	}
	return g.Lanes[idx], true
}

// RowAt converts terminal line y into grid row units on the axis,
// accounting for the header and the current scroll position.
func (g Grid) RowAt(y int) (float64, bool) {
	line := y - headerLines
	if line < 0 {
		return 0, false
	}
	hours := float64(line)/linesPerHour + float64(g.ScrollOffset)
	if hours >= float64(g.Hours) {
		return 0, false
	}
	return hours * timegrid.RowHeight, true
}

// LineFor converts a position in grid row units back into a terminal
// line, for rendering blocks at their rectangle's top.
func (g Grid) LineFor(rowUnits float64) int {
	hours := rowUnits / timegrid.RowHeight
	return headerLines + int((hours-float64(g.ScrollOffset))*linesPerHour)
}

// LinesFor converts a height in grid row units into terminal lines, never
// collapsing a visible block below one line.
func (g Grid) LinesFor(rowUnits float64) int {
	lines := int(rowUnits / timegrid.RowHeight * linesPerHour)
	if lines < 1 {
		return 1
	}
	return lines
}
