package eventlog

import (
	"strconv"
	"strings"

	"teamgraph/pkg/common"
)

// buildRoster derives the participant roster from the entity attribute
// table. Only entities that carry both a "name" and a "leader_meeting"
// attribute are included; datasets without leader attributes yield an empty
// roster.
func buildRoster(entities []common.EntityAttribute) []common.ParticipantRecord {
	type partial struct {
		name       string
		hasName    bool
		leader     int
		hasLeader  bool
		sequenceID string
	}

	order := make([]int, 0)
	byID := make(map[int]*partial)
	for _, attr := range entities {
		if attr.Key != "name" && attr.Key != "leader_meeting" {
			continue
		}
		p, ok := byID[attr.EntityID]
		if !ok {
			p = &partial{}
			byID[attr.EntityID] = p
			order = append(order, attr.EntityID)
		}
		if p.sequenceID == "" {
			p.sequenceID = attr.SequenceID
		}
		switch attr.Key {
		case "name":
			p.name = attr.Value
			p.hasName = true
		case "leader_meeting":
			f, err := strconv.ParseFloat(attr.Value, 64)
			if err != nil {
				continue
			}
			p.leader = int(f)
			p.hasLeader = true
		}
	}

	roster := make([]common.ParticipantRecord, 0)
	for _, id := range order {
		p := byID[id]
		if !p.hasName || !p.hasLeader {
			continue
		}
		first, _, _ := strings.Cut(p.sequenceID, ";")
		roster = append(roster, common.ParticipantRecord{
			TeamID:        common.SequenceSegment(first, 1),
			Name:          p.name,
			LeaderMeeting: p.leader,
		})
	}

	return roster
}

// Leaders returns the names of the participants registered as leader of the
// given team in the given meeting.
func Leaders(roster []common.ParticipantRecord, team, meeting string) []string {
	m, err := strconv.Atoi(meeting)
	if err != nil {
		return nil
	}
	var names []string
	for _, p := range roster {
		if p.TeamID == team && p.LeaderMeeting == m {
			names = append(names, p.Name)
		}
	}
	return names
}
