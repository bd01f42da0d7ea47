package graph

import (
	"math"
	"slices"
	"strconv"
	"strings"
)

// FilterByWeight keeps the edges whose display weight lies within the
// slider bounds. In frequency mode the bounds are raw counts and are
// compared against log2 weights, unless the weights are normalised
// percentages.
func FilterByWeight(edges []EdgeElement, mode EdgeMode, normalised bool, lo, hi float64) []EdgeElement {
	if mode == EdgeFrequency && !normalised {
		lo, hi = log2Bound(lo), log2Bound(hi)
	}
	out := make([]EdgeElement, 0, len(edges))
	for _, e := range edges {
		if lo <= e.Weight && e.Weight <= hi {
			out = append(out, e)
		}
	}
	return out
}

func log2Bound(v float64) float64 {
	if v <= 0 {
		return math.Inf(-1)
	}
	return math.Log2(v)
}

// FilterBySelectedNodes keeps the edges that leave (colour source Source) or
// enter (colour source Target) one of the selected nodes. No selection keeps
// every edge.
func FilterBySelectedNodes(edges []EdgeElement, ids []string, source ColorSource) []EdgeElement {
	if len(ids) == 0 {
		return edges
	}
	selected := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		selected[id] = struct{}{}
	}
	out := make([]EdgeElement, 0, len(edges))
	for _, e := range edges {
		end := e.Source
		if source == ColorFromTarget {
			end = e.Target
		}
		if _, ok := selected[end]; ok {
			out = append(out, e)
		}
	}
	return out
}

// NodeTooltip renders the hover text of a node.
func NodeTooltip(n NodeElement) string {
	return strings.TrimSpace(n.ID + ", with frequency: " + formatNumber(n.Freq) + " " + n.Stats)
}

// EdgeTooltip renders the hover text of an edge. Probability graphs add the
// rounded percentage after the implied count.
func EdgeTooltip(e EdgeElement, kind NodeKind, mode EdgeMode) string {
	var b strings.Builder
	if kind == NodeBehaviours {
		b.WriteString(strings.ToUpper(e.Source) + " -> " + strings.ToUpper(e.Target))
	} else {
		b.WriteString(e.Source + " -> " + e.Target + ", " + e.Behaviour)
	}
	b.WriteString(": " + strconv.Itoa(e.RawWeight))
	if mode == EdgeProbability {
		b.WriteString(" (" + formatNumber(math.Round(e.Weight*100)/100) + "%)")
	}
	b.WriteString(" " + e.Stats)
	return strings.TrimSpace(b.String())
}

// View is a filtered projection of a result.
type View struct {
	Nodes []NodeElement `json:"nodes"`
	Edges []EdgeElement `json:"edges"`
}

// ViewFilter narrows the edges of a result. A nil bound is open.
type ViewFilter struct {
	MinWeight *float64
	MaxWeight *float64
	Nodes     []string
}

// Filter applies f to the result's edges. Nodes are always kept.
func (r Result) Filter(f ViewFilter) View {
	edges := r.Edges
	if f.MinWeight != nil || f.MaxWeight != nil {
		lo, hi := math.Inf(-1), math.Inf(1)
		if f.MinWeight != nil {
			lo = *f.MinWeight
		}
		if f.MaxWeight != nil {
			hi = *f.MaxWeight
		}
		edges = FilterByWeight(edges, r.Mode.EdgeMode, r.Normalised, lo, hi)
	}
	edges = FilterBySelectedNodes(edges, f.Nodes, r.Mode.ColorSource)
	return View{Nodes: slices.Clone(r.Nodes), Edges: edges}
}
