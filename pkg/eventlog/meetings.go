package eventlog

import (
	"slices"
	"sort"

	"teamgraph/pkg/common"
)

// MeetingsForTeam lists the meetings recorded for a team, sorted, with All
// first. An empty team yields only All; All yields every meeting of the
// dataset. A name that is not a team is looked up as a team group
// ("variable/group").
func MeetingsForTeam(ds *common.Dataset, team string) []string {
	if team == "" {
		return []string{common.All}
	}

	var scope []string
	switch {
	case team == common.All:
	case slices.Contains(ds.Teams, team):
		scope = []string{team}
	default:
		teams, ok := ds.GroupTeams(team)
		if !ok {
			return []string{common.All}
		}
		scope = teams
	}

	seen := make(map[string]struct{})
	meetings := make([]string, 0)
	for _, e := range ds.Events {
		if scope != nil && !slices.Contains(scope, e.Team()) {
			continue
		}
		m := e.Meeting()
		if m == "" {
			continue
		}
		if _, ok := seen[m]; ok {
			continue
		}
		seen[m] = struct{}{}
		meetings = append(meetings, m)
	}
	sort.Strings(meetings)

	return append([]string{common.All}, meetings...)
}
