package graph

import (
	"sort"

	"teamgraph/pkg/common"
)

// seq builds unattributed events of one sequence.
func seq(sequenceID string, labels ...string) []common.EventRecord {
	events := make([]common.EventRecord, len(labels))
	for i, l := range labels {
		events[i] = common.EventRecord{SequenceID: sequenceID, Event: l, EntityID: common.NoEntity}
	}
	return events
}

// newDataset derives teams, meetings and behaviours from events the way the
// event log reader does.
func newDataset(events ...[]common.EventRecord) *common.Dataset {
	ds := &common.Dataset{ID: "test", Groups: map[string]map[string][]string{}}
	for _, part := range events {
		ds.Events = append(ds.Events, part...)
	}

	teams := map[string]struct{}{}
	meetings := map[string]struct{}{}
	seen := map[string]struct{}{}
	for _, e := range ds.Events {
		teams[e.Team()] = struct{}{}
		meetings[e.Meeting()] = struct{}{}
		if _, ok := seen[e.Event]; !ok && e.Event != common.BreakEvent {
			seen[e.Event] = struct{}{}
			ds.Behaviours = append(ds.Behaviours, e.Event)
		}
	}
	ds.Teams = append([]string{common.All}, sortedKeys(teams)...)
	ds.Meetings = append(sortedKeys(meetings), common.All)
	return ds
}

func sortedKeys(m map[string]struct{}) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func nodeCounts(set NodeSet) map[string]int {
	counts := make(map[string]int, len(set.Nodes))
	for _, n := range set.Nodes {
		counts[n.ID] = n.Count
	}
	return counts
}

func edgeCounts(set EdgeSet) map[EdgeKey]int {
	counts := make(map[EdgeKey]int, len(set.Edges))
	for _, e := range set.Edges {
		counts[e.EdgeKey] = e.Count
	}
	return counts
}

func edgeByKey(set EdgeSet, key EdgeKey) (Edge, bool) {
	for _, e := range set.Edges {
		if e.EdgeKey == key {
			return e, true
		}
	}
	return Edge{}, false
}

func nodeByID(set NodeSet, id string) (Node, bool) {
	for _, n := range set.Nodes {
		if n.ID == id {
			return n, true
		}
	}
	return Node{}, false
}

var (
	allSelection    = Selection{Team: common.All, Meeting: common.All}
	behaviourMode   = Mode{NodeKind: NodeBehaviours, EdgeMode: EdgeFrequency, ColorMode: ColorByBehaviours}
	probabilityMode = Mode{NodeKind: NodeBehaviours, EdgeMode: EdgeProbability, ColorMode: ColorByBehaviours}
)
