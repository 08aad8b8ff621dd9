package schedule

import (
	"errors"
	"time"

	"github.com/runofshow/runofshow/internal/timegrid"
)

// Validation errors.
var (
	ErrOutOfBounds        = errors.New("span must be within the event bounds")
	ErrOverlap            = errors.New("span overlaps an existing block")
	ErrExceedsMaxDuration = errors.New("span exceeds the maximum duration")
)

// Span is a half-open interval [Start, End) of UTC instants.
type Span struct {
	Start time.Time
	End   time.Time
}

// Duration returns End - Start.
func (s Span) Duration() time.Duration {
	return s.End.Sub(s.Start)
}

// Overlaps reports whether two spans share any time. The test is open on
// both ends: spans that merely touch do not overlap.
func (s Span) Overlaps(other Span) bool {
	return s.Start.Before(other.End) && s.End.After(other.Start)
}

// Contains reports whether other lies fully inside s (endpoints included).
func (s Span) Contains(other Span) bool {
	return !other.Start.Before(s.Start) && !other.End.After(s.End)
}

// TaggedSpan is a span carrying the id of the block it belongs to, so a
// block being edited can be excluded from its own overlap check.
type TaggedSpan struct {
	ID string
	Span
}

// Validate checks a proposed span against its container and the sibling
// spans on the same lane, and returns the normalized span.
//
// An end that precedes its start is first rolled forward one day, provided
// the resulting duration stays within timegrid.MaxDuration; this is how a
// clock-only end edit of "1:00" against a "23:00" start becomes a 2h span
// ending the next day. After rollover the span must fit the container and
// must not overlap any sibling other than excludeID. Every creation and
// time edit in the app funnels through this one function.
func Validate(proposed, container Span, siblings []TaggedSpan, excludeID string) (Span, error) {
	if proposed.End.Before(proposed.Start) {
		rolled := proposed.End.AddDate(0, 0, 1)
		if rolled.Sub(proposed.Start) > timegrid.MaxDuration {
			return Span{}, ErrExceedsMaxDuration
		}
		proposed.End = rolled
	}

	if proposed.Duration() > timegrid.MaxDuration {
		return Span{}, ErrExceedsMaxDuration
	}

	if !container.Contains(proposed) {
		return Span{}, ErrOutOfBounds
	}

	for _, s := range siblings {
		if excludeID != "" && s.ID == excludeID {
			continue
		}
		if proposed.Overlaps(s.Span) {
			return Span{}, ErrOverlap
		}
	}

	return proposed, nil
}
