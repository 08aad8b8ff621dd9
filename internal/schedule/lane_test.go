package schedule

import (
	"errors"
	"testing"
)

var (
	laneCurrent = Person{Email: "ava@example.com", Name: "Ava Stone"}
	laneTeam    = []Person{
		{Email: "ava@example.com", Name: "Ava Stone"},
		{Email: "ben@example.com", Name: "Ben Reyes"},
		{Email: "cleo@example.com", Name: "Cleo Park"},
	}
)

func TestLanes(t *testing.T) {
	event := &Event{TeamMembers: laneTeam}
	lanes := Lanes(event, laneCurrent)

	if len(lanes) != 5 {
		t.Fatalf("got %d lanes, want 5", len(lanes))
	}
	if !lanes[0].IsSchedule() {
		t.Errorf("first lane should be the schedule lane, got %q", lanes[0].Key)
	}
	if lanes[1].Key != LaneYou {
		t.Errorf("second lane should be %q, got %q", LaneYou, lanes[1].Key)
	}
	if lanes[1].Person.Email != laneCurrent.Email {
		t.Errorf("the You lane should carry the current user, got %q", lanes[1].Person.Email)
	}
	// Every member gets a lane keyed by display name, the owner included.
	want := []string{"Ava Stone", "Ben Reyes", "Cleo Park"}
	for i, name := range want {
		if lanes[i+2].Key != name {
			t.Errorf("lane %d key = %q, want %q", i+2, lanes[i+2].Key, name)
		}
	}
}

func TestResolveAssignee(t *testing.T) {
	tests := []struct {
		name    string
		lane    string
		want    string
		wantErr error
	}{
		{"You resolves to the signed-in user", LaneYou, "ava@example.com", nil},
		{"display name resolves to member email", "Ben Reyes", "ben@example.com", nil},
		{"unknown lane", "Zoe Quinn", "", ErrNoSuchLane},
		{"schedule lane has no assignee", LaneSchedule, "", ErrNoSuchLane},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ResolveAssignee(tt.lane, laneCurrent, laneTeam)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("got error %v, want %v", err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestTasksInLane(t *testing.T) {
	tasks := []Task{
		{ID: "t1", AssignedTo: []Person{{Email: "ava@example.com"}}},
		{ID: "t2", AssignedTo: []Person{{Email: "ben@example.com"}, {Email: "ava@example.com"}}},
		{ID: "t3"},
	}

	got := TasksInLane(tasks, "ava@example.com")
	if len(got) != 2 || got[0].ID != "t1" || got[1].ID != "t2" {
		t.Errorf("got %v, want tasks t1 and t2", got)
	}
	if got := TasksInLane(tasks, "cleo@example.com"); len(got) != 0 {
		t.Errorf("got %v, want no tasks", got)
	}
}
