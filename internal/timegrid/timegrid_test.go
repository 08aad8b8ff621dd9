package timegrid

import (
	"errors"
	"fmt"
	"testing"
	"time"
)

func utc(hour, minute int) time.Time {
	return time.Date(2024, 11, 1, hour, minute, 0, 0, time.UTC)
}

func TestToRow(t *testing.T) {
	axis := utc(9, 0)

	tests := []struct {
		name string
		at   time.Time
		want float64
	}{
		{"axis start", utc(9, 0), 0},
		{"one hour in", utc(10, 0), RowHeight},
		{"half hour in", utc(9, 30), RowHeight / 2},
		{"before axis", utc(8, 0), -RowHeight},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ToRow(tt.at, axis); got != tt.want {
				t.Errorf("got %v, want %v", got, tt.want)
			}
		})
	}
}

func TestHourRounding(t *testing.T) {
	// A press mid-cell floors, a release mid-cell ceils: together they
	// guarantee a single-cell click covers exactly one hour.
	if got := HourFloor(RowHeight * 1.7); got != 1 {
		t.Errorf("HourFloor: got %d, want 1", got)
	}
	if got := HourCeil(RowHeight * 1.7); got != 2 {
		t.Errorf("HourCeil: got %d, want 2", got)
	}
	if got := HourFloor(0); got != 0 {
		t.Errorf("HourFloor(0): got %d, want 0", got)
	}
	if got := HourCeil(RowHeight * 2); got != 2 {
		t.Errorf("HourCeil on boundary: got %d, want 2", got)
	}
}

func TestInstantAtHour(t *testing.T) {
	axis := utc(9, 0)
	if got := InstantAtHour(axis, 3); !got.Equal(utc(12, 0)) {
		t.Errorf("got %v, want %v", got, utc(12, 0))
	}
}

func TestFormatClock(t *testing.T) {
	tests := []struct {
		hour, minute int
		want         string
	}{
		{7, 0, "7am"},
		{7, 15, "7:15am"},
		{19, 15, "7:15pm"},
		{0, 0, "12am"},
		{12, 0, "12pm"},
		{12, 5, "12:05pm"},
		{23, 59, "11:59pm"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			if got := FormatClock(utc(tt.hour, tt.minute)); got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestParseClock(t *testing.T) {
	tests := []struct {
		in           string
		hour, minute int
	}{
		{"7", 7, 0},
		{"7:15", 7, 15},
		{"7:15 PM", 19, 15},
		{"7:15pm", 19, 15},
		{" 12 AM ", 0, 0},
		{"12pm", 12, 0},
		{"12:30am", 0, 30},
		{"11:59pm", 23, 59},
		{"-1", 1, 0}, // stray characters are stripped, not rejected
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			h, m, err := ParseClock(tt.in)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if h != tt.hour || m != tt.minute {
				t.Errorf("got %d:%02d, want %d:%02d", h, m, tt.hour, tt.minute)
			}
		})
	}
}

func TestParseClock_Errors(t *testing.T) {
	tests := []string{"", "13pm", "25", "7:60", "abc", ":"}

	for _, in := range tests {
		t.Run(fmt.Sprintf("%q", in), func(t *testing.T) {
			if _, _, err := ParseClock(in); !errors.Is(err, ErrInvalidClock) {
				t.Errorf("got %v, want ErrInvalidClock", err)
			}
		})
	}
}

func TestParseClock_RoundTripsFormatClock(t *testing.T) {
	// Every formatted label must parse back to the same hour/minute pair.
	for hour := 0; hour < 24; hour++ {
		for _, minute := range []int{0, 1, 15, 30, 59} {
			label := FormatClock(utc(hour, minute))
			h, m, err := ParseClock(label)
			if err != nil {
				t.Fatalf("ParseClock(%q): %v", label, err)
			}
			if h != hour || m != minute {
				t.Errorf("ParseClock(%q) = %d:%02d, want %d:%02d", label, h, m, hour, minute)
			}
		}
	}
}

func TestClockInstant(t *testing.T) {
	base := utc(18, 45)
	got := ClockInstant(base, 7, 15)
	want := utc(7, 15)
	if !got.Equal(want) {
		t.Errorf("got %v, want %v", got, want)
	}
}

func TestResolveDayFor(t *testing.T) {
	ref := utc(23, 0)

	t.Run("candidate before reference rolls to next day", func(t *testing.T) {
		got := ResolveDayFor(utc(1, 0), ref)
		want := utc(1, 0).AddDate(0, 0, 1)
		if !got.Equal(want) {
			t.Errorf("got %v, want %v", got, want)
		}
	})

	t.Run("candidate after reference is unchanged", func(t *testing.T) {
		got := ResolveDayFor(utc(23, 30), ref)
		if !got.Equal(utc(23, 30)) {
			t.Errorf("got %v, want %v", got, utc(23, 30))
		}
	})

	t.Run("equal instants are unchanged", func(t *testing.T) {
		got := ResolveDayFor(ref, ref)
		if !got.Equal(ref) {
			t.Errorf("got %v, want %v", got, ref)
		}
	})
}

func TestMaxDuration(t *testing.T) {
	if MaxDuration >= 24*time.Hour {
		t.Fatalf("MaxDuration %v must stay under 24h", MaxDuration)
	}
	if 24*time.Hour-MaxDuration != 36*time.Second {
		t.Errorf("MaxDuration %v is not 23.99h", MaxDuration)
	}
}
