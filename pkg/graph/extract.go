package graph

import (
	"slices"

	"teamgraph/pkg/common"
)

// scope is a selection resolved against a dataset.
type scope struct {
	// teams are the concrete teams the selection covers.
	teams []string
	// teamAll and meetingAll mark aggregated selections.
	teamAll    bool
	meetingAll bool
	// teamRows are all rows of the covered teams, across meetings.
	teamRows []common.EventRecord
	// rows are teamRows restricted to the selected meeting, Break included.
	rows []common.EventRecord
}

func resolveScope(ds *common.Dataset, sel Selection) scope {
	sc := scope{
		teamAll:    sel.Team == common.All,
		meetingAll: sel.Meeting == common.All,
	}

	switch {
	case sc.teamAll:
		sc.teams = ds.ConcreteTeams()
	case slices.Contains(ds.Teams, sel.Team):
		sc.teams = []string{sel.Team}
	default:
		if teams, ok := ds.GroupTeams(sel.Team); ok {
			sc.teams = teams
		} else {
			sc.teams = []string{sel.Team}
		}
	}

	inScope := make(map[string]struct{}, len(sc.teams))
	for _, t := range sc.teams {
		inScope[t] = struct{}{}
	}
	for _, e := range ds.Events {
		if _, ok := inScope[e.Team()]; !ok {
			continue
		}
		sc.teamRows = append(sc.teamRows, e)
		if sc.meetingAll || e.Meeting() == sel.Meeting {
			sc.rows = append(sc.rows, e)
		}
	}

	return sc
}

// concreteTeam returns the selected team when it names exactly one team of
// the dataset.
func concreteTeam(ds *common.Dataset, sel Selection) (string, bool) {
	if sel.Team == common.All || !slices.Contains(ds.Teams, sel.Team) {
		return "", false
	}
	return sel.Team, true
}

// keyer maps event rows to node and edge identities for one node kind.
// Rows without an identity take no part in counting or in transitions.
type keyer struct {
	kind  NodeKind
	names map[int]string
}

func newKeyer(ds *common.Dataset, kind NodeKind) keyer {
	k := keyer{kind: kind}
	if kind == NodeParticipants {
		k.names = ds.ParticipantNames()
	}
	return k
}

func (k keyer) node(e common.EventRecord) (string, bool) {
	switch k.kind {
	case NodeParticipants:
		if e.EntityID == common.NoEntity {
			return "", false
		}
		name, ok := k.names[e.EntityID]
		return name, ok
	default:
		if e.Event == common.BreakEvent {
			return "", false
		}
		return e.Event, true
	}
}

func (k keyer) edge(prev, cur common.EventRecord) EdgeKey {
	src, _ := k.node(prev)
	tgt, _ := k.node(cur)
	key := EdgeKey{Source: src, Target: tgt}
	if k.kind == NodeParticipants {
		key.Behaviour = cur.Event
	}
	return key
}

// keyed drops the rows that have no identity, preserving file order.
func (k keyer) keyed(rows []common.EventRecord) []common.EventRecord {
	out := make([]common.EventRecord, 0, len(rows))
	for _, e := range rows {
		if _, ok := k.node(e); ok {
			out = append(out, e)
		}
	}
	return out
}

// universe returns the node identities of a selection in display order.
// Behaviour nodes are the labels of the selected rows in first-appearance
// order. Participant nodes are every named participant of the covered
// teams, in entity table order, whether or not they act in the selected
// meeting.
func (k keyer) universe(ds *common.Dataset, sc scope, keyed []common.EventRecord) []string {
	ids := make([]string, 0)
	seen := make(map[string]struct{})
	add := func(id string) {
		if _, ok := seen[id]; ok {
			return
		}
		seen[id] = struct{}{}
		ids = append(ids, id)
	}

	if k.kind != NodeParticipants {
		for _, e := range keyed {
			id, _ := k.node(e)
			add(id)
		}
		return ids
	}

	active := make(map[int]struct{})
	for _, e := range sc.teamRows {
		if e.EntityID != common.NoEntity {
			active[e.EntityID] = struct{}{}
		}
	}
	for _, attr := range ds.Entities {
		if attr.Key != "name" {
			continue
		}
		if _, ok := active[attr.EntityID]; !ok {
			continue
		}
		if k.names[attr.EntityID] != attr.Value {
			continue
		}
		add(attr.Value)
	}
	return ids
}

// normaliseBase is the row count node frequencies are normalised against.
// Behaviour graphs count Break rows too.
func (k keyer) normaliseBase(sc scope, keyed []common.EventRecord) int {
	if k.kind == NodeParticipants {
		return len(keyed)
	}
	return len(sc.rows)
}

func (k keyer) countNodes(rows []common.EventRecord) map[string]int {
	counts := make(map[string]int)
	for _, e := range rows {
		if id, ok := k.node(e); ok {
			counts[id]++
		}
	}
	return counts
}

// walk counts transitions between consecutive keyed rows in file order and
// returns the edge identities in first-seen order. With reset set, a change
// of sequence id starts a new walk.
func (k keyer) walk(rows []common.EventRecord, reset bool) ([]EdgeKey, map[EdgeKey]int) {
	order := make([]EdgeKey, 0)
	counts := make(map[EdgeKey]int)
	for i := 1; i < len(rows); i++ {
		prev, cur := rows[i-1], rows[i]
		if reset && prev.SequenceID != cur.SequenceID {
			continue
		}
		key := k.edge(prev, cur)
		if _, ok := counts[key]; !ok {
			order = append(order, key)
		}
		counts[key]++
	}
	return order, counts
}

func (k keyer) countEdges(reset bool) func([]common.EventRecord) map[EdgeKey]int {
	return func(rows []common.EventRecord) map[EdgeKey]int {
		_, counts := k.walk(rows, reset)
		return counts
	}
}
