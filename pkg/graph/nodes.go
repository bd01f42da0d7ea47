package graph

import (
	"slices"
	"strings"

	"teamgraph/pkg/common"
	"teamgraph/pkg/eventlog"
)

// Sign tags the direction of a difference in comparison mode.
type Sign string

const (
	SignNone     Sign = ""
	SignPositive Sign = "positive"
	SignNegative Sign = "negative"
)

func signOf[T int | float64](d T) Sign {
	switch {
	case d > 0:
		return SignPositive
	case d < 0:
		return SignNegative
	default:
		return SignNone
	}
}

// Node is one extracted node. Count is the number of rows carrying the
// node's identity; Freq is Count or, when normalised, its percentage.
type Node struct {
	ID     string  `json:"id"`
	Label  string  `json:"label"`
	Count  int     `json:"count"`
	Freq   float64 `json:"freq"`
	Size   float64 `json:"size"`
	Stats  string  `json:"stats,omitempty"`
	Leader bool    `json:"leader,omitempty"`
	Sign   Sign    `json:"sign,omitempty"`
}

// NodeSet is the result of a node extraction. An empty set has a nil
// SizeMap.
type NodeSet struct {
	Kind    NodeKind `json:"kind"`
	Nodes   []Node   `json:"nodes"`
	SizeMap *SizeMap `json:"size_map,omitempty"`
	// Leader lists the leaders of a concrete team and meeting as
	// "Leader: a,b", or is empty.
	Leader string `json:"leader,omitempty"`
}

// IDs returns the node identities in order.
func (s NodeSet) IDs() []string {
	ids := make([]string, len(s.Nodes))
	for i, n := range s.Nodes {
		ids[i] = n.ID
	}
	return ids
}

// Acronym returns the uppercased first letter of each word of a behaviour
// label. Words are separated by underscores or whitespace.
func Acronym(label string) string {
	words := strings.Fields(strings.ReplaceAll(label, "_", " "))
	var b strings.Builder
	for _, w := range words {
		b.WriteString(strings.ToUpper(string([]rune(w)[0])))
	}
	return b.String()
}

// ExtractNodes derives the node set of a selection.
func ExtractNodes(ds *common.Dataset, sel Selection, opts Options) NodeSet {
	sc := resolveScope(ds, sel)
	k := newKeyer(ds, opts.NodeKind)
	keyed := k.keyed(sc.rows)
	ids := k.universe(ds, sc, keyed)
	counts := k.countNodes(keyed)

	var stats map[string]string
	if opts.ShowStats {
		stats = descriptiveStats(ids, sc, keyed, k.countNodes)
	}

	base := k.normaliseBase(sc, keyed)
	set := NodeSet{Kind: opts.NodeKind, Nodes: make([]Node, 0, len(ids))}
	for _, id := range ids {
		n := Node{
			ID:    id,
			Label: id,
			Count: counts[id],
			Freq:  float64(counts[id]),
			Stats: stats[id],
		}
		if opts.NodeKind == NodeBehaviours {
			n.Label = Acronym(id)
		}
		if opts.Normalise && base > 0 {
			n.Freq = float64(n.Count) / float64(base) * normaliseMultiplier
		}
		n.Size = nodeSize(n.Freq)
		set.Nodes = append(set.Nodes, n)
	}
	set.SizeMap = nodeSizeMap(set.Nodes)

	applyLeaders(ds, sel, &set)

	return set
}

// applyLeaders resolves the roster leaders of a concrete team and meeting.
// Participant nodes named as leader are flagged.
func applyLeaders(ds *common.Dataset, sel Selection, set *NodeSet) {
	team, ok := concreteTeam(ds, sel)
	if !ok || sel.Meeting == common.All {
		return
	}
	leaders := eventlog.Leaders(ds.Participants, team, sel.Meeting)
	if len(leaders) == 0 {
		return
	}
	set.Leader = "Leader: " + strings.Join(leaders, ",")

	if set.Kind != NodeParticipants {
		return
	}
	for i := range set.Nodes {
		if slices.Contains(leaders, set.Nodes[i].ID) {
			set.Nodes[i].Leader = true
		}
	}
}
