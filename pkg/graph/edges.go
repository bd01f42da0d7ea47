package graph

import (
	"teamgraph/pkg/common"
)

// EdgeKey identifies an edge. Behaviour is empty in behaviour graphs; in
// participant graphs it is the label of the transition's target row.
type EdgeKey struct {
	Source    string `json:"source"`
	Target    string `json:"target"`
	Behaviour string `json:"behaviour"`
}

// Edge is one observed transition.
//
// Count is the transition count (the diff magnitude in comparison mode).
// Weight is the display weight: log2(Count), the normalised percentage, or
// the percentage of the source's outgoing transitions. RawWeight is the
// count implied by Weight and is informational.
type Edge struct {
	EdgeKey
	Count     int     `json:"count"`
	Weight    float64 `json:"weight"`
	RawWeight int     `json:"raw_weight"`
	Stats     string  `json:"stats,omitempty"`
	Sign      Sign    `json:"sign,omitempty"`
}

// EdgeSet is the result of an edge extraction. An empty set has no weight
// range, no bins and a nil SizeMap.
type EdgeSet struct {
	Kind        NodeKind `json:"kind"`
	Mode        EdgeMode `json:"mode"`
	Edges       []Edge   `json:"edges"`
	WeightRange *Range   `json:"weight_range,omitempty"`
	WeightBins  []string `json:"weight_bins,omitempty"`
	SizeMap     *SizeMap `json:"size_map,omitempty"`
	// Normalised marks frequency weights given as percentages of the rows.
	Normalised bool `json:"normalised,omitempty"`
}

// ExtractEdges derives the transition edges of a selection. Rows are walked
// in file order after dropping rows without a node identity.
func ExtractEdges(ds *common.Dataset, sel Selection, opts Options) EdgeSet {
	sc := resolveScope(ds, sel)
	k := newKeyer(ds, opts.NodeKind)
	keyed := k.keyed(sc.rows)
	order, counts := k.walk(keyed, opts.ResetOnSequenceBoundary)

	var stats map[EdgeKey]string
	if opts.ShowStats {
		stats = descriptiveStats(order, sc, keyed, k.countEdges(opts.ResetOnSequenceBoundary))
	}

	set := EdgeSet{Kind: opts.NodeKind, Mode: opts.EdgeMode, Edges: make([]Edge, 0, len(order))}
	for _, key := range order {
		set.Edges = append(set.Edges, Edge{
			EdgeKey: key,
			Count:   counts[key],
			Stats:   stats[key],
		})
	}

	base := 0
	if opts.Normalise && opts.EdgeMode == EdgeFrequency {
		base = len(keyed)
	}
	set.Normalised = base > 0
	finishEdgeSet(&set, base)

	return set
}

// Closed reports whether every edge endpoint is a node of nodes.
func Closed(nodes NodeSet, edges EdgeSet) bool {
	ids := make(map[string]struct{}, len(nodes.Nodes))
	for _, n := range nodes.Nodes {
		ids[n.ID] = struct{}{}
	}
	for _, e := range edges.Edges {
		if _, ok := ids[e.Source]; !ok {
			return false
		}
		if _, ok := ids[e.Target]; !ok {
			return false
		}
	}
	return true
}

// extract runs both extractors over one selection.
func extract(ds *common.Dataset, sel Selection, opts Options) (NodeSet, EdgeSet) {
	return ExtractNodes(ds, sel, opts), ExtractEdges(ds, sel, opts)
}
