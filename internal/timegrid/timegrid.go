// Package timegrid provides the time axis arithmetic for the run-of-show grid:
// conversion between UTC instants and vertical grid offsets, 12-hour clock
// formatting, and free-text clock parsing.
package timegrid

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
)

// Validation errors.
var (
	ErrInvalidClock = errors.New("clock must look like '7', '7:15' or '7:15 pm'")
)

const (
	// RowHeight is the vertical size of one hour on the grid, in layout units.
	RowHeight = 76

	// MaxDuration is the longest span a block may cover. It sits just under
	// 24 hours so a rolled-over end time can never be mistaken for a full
	// extra day.
	MaxDuration = 86364 * time.Second // 23.99h
)

// ToRow converts an instant to a vertical offset from the axis start.
func ToRow(t, axisStart time.Time) float64 {
	return t.Sub(axisStart).Hours() * RowHeight
}

// HourFloor converts a vertical offset to whole hours from the axis start,
// rounding toward the axis. Used for the anchor of a drag: a press anywhere
// inside a cell snaps to that cell's top edge.
func HourFloor(y float64) int {
	return int(math.Floor(y / RowHeight))
}

// HourCeil converts a vertical offset to whole hours from the axis start,
// rounding away from the axis. Used for the moving edge of a drag: stopping
// mid-cell still covers the cell under the cursor, and a single-cell click
// yields a minimum one-hour block.
func HourCeil(y float64) int {
	return int(math.Ceil(y / RowHeight))
}

// InstantAtHour returns the instant h whole hours after the axis start.
func InstantAtHour(axisStart time.Time, h int) time.Time {
	return axisStart.Add(time.Duration(h) * time.Hour)
}

// FormatClock renders an instant as a lowercase 12-hour clock label,
// omitting the minutes when they are zero: "7am", "7:15pm", "12am".
func FormatClock(t time.Time) string {
	t = t.UTC()
	hour := t.Hour() % 12
	if hour == 0 {
		hour = 12
	}
	suffix := "am"
	if t.Hour() >= 12 {
		suffix = "pm"
	}
	if m := t.Minute(); m != 0 {
		return fmt.Sprintf("%d:%02d%s", hour, m, suffix)
	}
	return fmt.Sprintf("%d%s", hour, suffix)
}

// ParseClock parses a free-text clock string such as "7", "7:15", "07:15",
// or "7:15 PM" (case and whitespace insensitive) into a 24-hour pair.
// Without an am/pm marker the hour is taken as written. Returns
// ErrInvalidClock for out-of-range or non-numeric components.
func ParseClock(text string) (hour, minute int, err error) {
	clean := strings.ToLower(strings.Join(strings.Fields(text), ""))

	isPM := strings.Contains(clean, "pm")
	isAM := strings.Contains(clean, "am")

	// Strip the marker and anything that is not a digit or colon.
	clean = strings.Replace(clean, "pm", "", 1)
	clean = strings.Replace(clean, "am", "", 1)
	var digits strings.Builder
	for _, r := range clean {
		if (r >= '0' && r <= '9') || r == ':' {
			digits.WriteRune(r)
		}
	}
	clean = digits.String()

	if idx := strings.Index(clean, ":"); idx >= 0 {
		hour, err = strconv.Atoi(clean[:idx])
		if err != nil {
			return 0, 0, ErrInvalidClock
		}
		minute, err = strconv.Atoi(clean[idx+1:])
		if err != nil {
			return 0, 0, ErrInvalidClock
		}
	} else {
		hour, err = strconv.Atoi(clean)
		if err != nil {
			return 0, 0, ErrInvalidClock
		}
	}

	if hour < 0 || hour > 12 || minute < 0 || minute >= 60 {
		return 0, 0, ErrInvalidClock
	}

	switch {
	case isPM && hour != 12:
		hour += 12
	case isAM && hour == 12:
		hour = 0
	}

	return hour, minute, nil
}

// ClockInstant places a 24-hour clock value on the same UTC day as base.
func ClockInstant(base time.Time, hour, minute int) time.Time {
	base = base.UTC()
	return time.Date(base.Year(), base.Month(), base.Day(), hour, minute, 0, 0, time.UTC)
}

// ResolveDayFor infers the date of a clock-only edit: a candidate that
// lands before its reference instant is pushed forward one UTC day.
func ResolveDayFor(candidate, reference time.Time) time.Time {
	if candidate.Before(reference) {
		return candidate.AddDate(0, 0, 1)
	}
	return candidate
}
