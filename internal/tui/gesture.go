package tui

import (
	"time"

	"github.com/runofshow/runofshow/internal/timegrid"
)

// Gesture thresholds. DragThreshold is in grid row units; any whole-cell
// cursor move exceeds it, so a drag starts on the first cell crossed.
const (
	DragThreshold  = 5.0
	LongPressDelay = 500 * time.Millisecond
)

// GesturePhase is the drag state machine's current state.
type GesturePhase int

const (
	GestureIdle GesturePhase = iota
	GestureArmed                // pressed, movement still under the threshold
	GesturePendingLongPress     // pressed on the schedule lane, timer running
	GestureDragging
)

// GestureCommit is the outcome of a released drag: the lane it started in
// and the hour rows it covers, already normalized so Start < End.
type GestureCommit struct {
	LaneKey   string
	StartHour int
	EndHour   int
}

// DragPreview describes the live rectangle to render during a drag.
type DragPreview struct {
	LaneKey   string
	StartHour int
	EndHour   int
}

// Gesture turns press/move/release input into committed hour ranges. The
// press row is floored and the moving edge is ceiled, so a drag that stops
// mid-cell still covers the cell under the cursor and can never commit an
// empty range. It holds only the active gesture's transient fields.
type Gesture struct {
	phase      GesturePhase
	laneKey    string
	pressY     float64
	anchorHour int // floor of the press row, fixed for the whole drag
	edgeHour   int // ceil of the cursor row, follows the pointer
	timerSeq   int
}

// Phase returns the current state.
func (g *Gesture) Phase() GesturePhase {
	return g.phase
}

// Press starts a gesture at row y in the given lane. On the schedule lane
// the caller must arm a LongPressDelay timer carrying the returned
// sequence number and deliver it via FireTimer.
func (g *Gesture) Press(laneKey string, y float64, scheduleLane bool) (seq int, armTimer bool) {
	g.laneKey = laneKey
	g.pressY = y
	g.anchorHour = timegrid.HourFloor(y)
	g.edgeHour = timegrid.HourCeil(y)
	if g.edgeHour == g.anchorHour {
		g.edgeHour++ // exact-boundary press still spans one hour
	}
	if scheduleLane {
		g.phase = GesturePendingLongPress
		g.timerSeq++
		return g.timerSeq, true
	}
	g.phase = GestureArmed
	return 0, false
}

// Move updates the gesture with the cursor's current row.
func (g *Gesture) Move(y float64) {
	switch g.phase {
	case GestureArmed:
		if abs(y-g.pressY) >= DragThreshold {
			g.phase = GestureDragging
		} else {
			return
		}
	case GesturePendingLongPress:
		// Moving during the pending window means the press was a scroll
		// or a stray click, not a block creation.
		if abs(y-g.pressY) >= DragThreshold {
			g.phase = GestureIdle
		}
		return
	case GestureDragging:
	default:
		return
	}

	g.edgeHour = timegrid.HourCeil(y)
	if g.edgeHour == g.anchorHour {
		g.edgeHour++
	}
}

// FireTimer delivers a long-press timer tick. A stale sequence number, or
// any phase change since the timer was armed, makes it a no-op.
func (g *Gesture) FireTimer(seq int) {
	if g.phase == GesturePendingLongPress && seq == g.timerSeq {
		g.phase = GestureDragging
	}
}

// Release ends the gesture. Only an active drag commits; an armed or
// pending press that never crossed the threshold is a plain click and
// does nothing.
func (g *Gesture) Release() (GestureCommit, bool) {
	phase := g.phase
	g.phase = GestureIdle
	if phase != GestureDragging {
		return GestureCommit{}, false
	}

	start, end := g.anchorHour, g.edgeHour
	if end < start {
		// Upward drag: the moving edge is chronologically first.
		start, end = end, start
	}
	if start == end {
		end++
	}
	return GestureCommit{LaneKey: g.laneKey, StartHour: start, EndHour: end}, true
}

// Preview returns the rectangle of the in-progress drag, if any.
func (g *Gesture) Preview() (DragPreview, bool) {
	if g.phase != GestureDragging {
		return DragPreview{}, false
	}
	start, end := g.anchorHour, g.edgeHour
	if end < start {
		start, end = end, start
	}
	return DragPreview{LaneKey: g.laneKey, StartHour: start, EndHour: end}, true
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}
