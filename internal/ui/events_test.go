package ui

import (
	"testing"

	"github.com/runofshow/runofshow/internal/schedule"
)

func TestParseMember(t *testing.T) {
	tests := []struct {
		name    string
		in      string
		want    schedule.Person
		wantErr bool
	}{
		{"name and email", "Ben Reyes <ben@example.com>", schedule.Person{Email: "ben@example.com", Name: "Ben Reyes"}, false},
		{"padded", "  Cleo Park   <cleo@example.com> ", schedule.Person{Email: "cleo@example.com", Name: "Cleo Park"}, false},
		{"bare email", "ben@example.com", schedule.Person{Email: "ben@example.com", Name: "ben@example.com"}, false},
		{"no email", "Ben Reyes", schedule.Person{}, true},
		{"unterminated", "Ben <ben@example.com", schedule.Person{}, true},
		{"empty name", "<ben@example.com>", schedule.Person{}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseMember(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("err = %v, wantErr %v", err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("got %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestBuildEvent(t *testing.T) {
	current := schedule.Person{Email: "ava@example.com", Name: "Ava Stone"}

	event, err := buildEvent("Launch Day", "2026-09-12", "8am", "10pm",
		[]string{"Ben Reyes <ben@example.com>", "Ava Stone <ava@example.com>"}, current)
	if err != nil {
		t.Fatal(err)
	}

	if event.Title != "Launch Day" {
		t.Errorf("title = %q", event.Title)
	}
	if event.Start.Hour() != 8 || event.End.Hour() != 22 {
		t.Errorf("span = %v - %v, want 8am - 10pm", event.Start, event.End)
	}
	if event.Start.Day() != 12 || event.Start.Month() != 9 {
		t.Errorf("date = %v, want Sep 12", event.Start)
	}
	// The current user leads the team and is never duplicated.
	if len(event.TeamMembers) != 2 {
		t.Fatalf("got %d members, want 2", len(event.TeamMembers))
	}
	if event.TeamMembers[0].Email != current.Email {
		t.Errorf("first member = %v, want the current user", event.TeamMembers[0])
	}

	if _, err := buildEvent("x", "", "10pm", "8am", nil, current); err == nil {
		t.Error("end before start should fail")
	}
	if _, err := buildEvent("x", "12-09-2026", "8am", "10pm", nil, current); err == nil {
		t.Error("bad date should fail")
	}
}
