package common

import "strings"

const (
	// All is the synthetic team/meeting value that selects every team or meeting.
	All = "All"
	// BreakEvent is the reserved event label that is excluded from analysis.
	BreakEvent = "Break"
	// OnlineEvent is dropped when a dataset is read.
	OnlineEvent = "Online"
	// NoEntity marks an event row that has no participant attached.
	NoEntity = -1
)

// EventRecord is one row of the behavioural event log. The order of records
// within a Dataset is the raw chronological order of the source file and is
// significant: transitions are computed over consecutive rows.
//
// SequenceID encodes the meeting and the team as "<meeting>_<team>".
type EventRecord struct {
	SequenceID string `json:"sequence_id"`
	Event      string `json:"event"`
	EntityID   int    `json:"entity_id"`
}

// Meeting returns the meeting segment of the sequence id.
func (e EventRecord) Meeting() string {
	return SequenceSegment(e.SequenceID, 0)
}

// Team returns the team segment of the sequence id.
func (e EventRecord) Team() string {
	return SequenceSegment(e.SequenceID, 1)
}

// SequenceSegment returns the i-th '_' separated segment of a sequence id, or
// an empty string when the id has fewer segments.
func SequenceSegment(sequenceID string, i int) string {
	parts := strings.Split(sequenceID, "_")
	if i < 0 || i >= len(parts) {
		return ""
	}
	return parts[i]
}

// EntityAttribute is one key/value row of the entity attribute table.
type EntityAttribute struct {
	EntityID   int    `json:"entity_id"`
	Key        string `json:"key"`
	Value      string `json:"value"`
	SequenceID string `json:"sequence_id,omitempty"`
}

// ParticipantRecord names a participant of a team together with the meeting
// in which they acted as leader.
type ParticipantRecord struct {
	TeamID        string `json:"team_id"`
	Name          string `json:"name"`
	LeaderMeeting int    `json:"leader_meeting"`
}

// Dataset is the in-memory form of one event log and its attribute tables.
//
// Teams is sorted with All prepended, Meetings is sorted with All appended.
// Behaviours holds the distinct event labels in first-appearance order,
// without BreakEvent. Participants is empty for dataset generations that
// carry no roster. Groups maps a grouping variable to its named team groups.
type Dataset struct {
	ID           string                         `json:"id"`
	Events       []EventRecord                  `json:"-"`
	Entities     []EntityAttribute              `json:"-"`
	Teams        []string                       `json:"teams"`
	Behaviours   []string                       `json:"behaviours"`
	Participants []ParticipantRecord            `json:"participants"`
	Meetings     []string                       `json:"meetings"`
	Groups       map[string]map[string][]string `json:"groups,omitempty"`
}

// ConcreteTeams returns Teams without the synthetic All entry.
func (d *Dataset) ConcreteTeams() []string {
	teams := make([]string, 0, len(d.Teams))
	for _, t := range d.Teams {
		if t != All {
			teams = append(teams, t)
		}
	}
	return teams
}

// ParticipantNames maps entity ids to the value of their "name" attribute.
func (d *Dataset) ParticipantNames() map[int]string {
	names := make(map[int]string)
	for _, attr := range d.Entities {
		if attr.Key != "name" {
			continue
		}
		if _, ok := names[attr.EntityID]; !ok {
			names[attr.EntityID] = attr.Value
		}
	}
	return names
}

// GroupTeams returns the teams of a group addressed as "variable/group".
func (d *Dataset) GroupTeams(group string) ([]string, bool) {
	variable, name, ok := strings.Cut(group, "/")
	if !ok {
		return nil, false
	}
	groups, ok := d.Groups[variable]
	if !ok {
		return nil, false
	}
	teams, ok := groups[name]
	return teams, ok
}
