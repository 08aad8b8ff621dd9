package schedule

import "errors"

// Lane errors.
var (
	ErrNoSuchLane = errors.New("lane does not resolve to a team member")
)

// Lane key sentinels. Every other lane key is a team member's display name.
const (
	LaneSchedule = "Event Schedule"
	LaneYou      = "You"
)

// Lane is a derived rendering and validation column: the shared schedule
// lane, the current user's lane, or one team member's lane.
type Lane struct {
	Key    string
	Person Person // zero value for the schedule lane
}

// IsSchedule reports whether this is the calendar-block lane.
func (l Lane) IsSchedule() bool {
	return l.Key == LaneSchedule
}

// Lanes derives the full lane set for an event: the schedule lane, the
// owner's "You" lane, then one lane per team member in order.
func Lanes(event *Event, current Person) []Lane {
	lanes := make([]Lane, 0, len(event.TeamMembers)+2)
	lanes = append(lanes, Lane{Key: LaneSchedule})
	lanes = append(lanes, Lane{Key: LaneYou, Person: current})
	for _, m := range event.TeamMembers {
		lanes = append(lanes, Lane{Key: m.Name, Person: m})
	}
	return lanes
}

// ResolveAssignee maps a lane key to the email a new task in that lane is
// assigned to. The "You" sentinel resolves to the current user; any other
// key is matched against team member display names, first match wins.
func ResolveAssignee(laneKey string, current Person, team []Person) (string, error) {
	if laneKey == LaneYou {
		return current.Email, nil
	}
	for _, m := range team {
		if m.Name == laneKey {
			return m.Email, nil
		}
	}
	return "", ErrNoSuchLane
}

// TasksInLane filters tasks down to the ones assigned to a lane's person.
// Lane membership is purely a filter on AssignedTo.
func TasksInLane(tasks []Task, email string) []Task {
	var out []Task
	for _, t := range tasks {
		if t.AssignedToEmail(email) {
			out = append(out, t)
		}
	}
	return out
}
