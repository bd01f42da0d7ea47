package graph

import (
	"math"
)

// DiffNodes subtracts a from b over the union of their node identities.
// Nodes missing on one side count as zero. Every node of the union is kept,
// including those whose difference is zero; Count and Freq hold the
// magnitude and Sign the direction of b - a.
func DiffNodes(a, b NodeSet) NodeSet {
	type side struct {
		node Node
		ok   bool
	}
	order := make([]string, 0, len(a.Nodes)+len(b.Nodes))
	pairs := make(map[string]*[2]side)
	add := func(i int, n Node) {
		p, ok := pairs[n.ID]
		if !ok {
			p = &[2]side{}
			pairs[n.ID] = p
			order = append(order, n.ID)
		}
		p[i] = side{node: n, ok: true}
	}
	for _, n := range a.Nodes {
		add(0, n)
	}
	for _, n := range b.Nodes {
		add(1, n)
	}

	kind := a.Kind
	if len(a.Nodes) == 0 {
		kind = b.Kind
	}
	out := NodeSet{Kind: kind, Nodes: make([]Node, 0, len(order))}
	for _, id := range order {
		p := pairs[id]
		label := p[0].node.Label
		if !p[0].ok {
			label = p[1].node.Label
		}
		d := p[1].node.Freq - p[0].node.Freq
		freq := math.Abs(d)
		out.Nodes = append(out.Nodes, Node{
			ID:    id,
			Label: label,
			Count: absInt(p[1].node.Count - p[0].node.Count),
			Freq:  freq,
			Size:  nodeSize(freq),
			Sign:  signOf(d),
		})
	}
	out.SizeMap = nodeSizeMap(out.Nodes)

	return out
}

// DiffEdges subtracts a from b over the union of their edge identities,
// using transition counts. Edges whose counts are equal on both sides are
// dropped. Weights, range, bins and width map are derived again from the
// magnitudes in the given mode.
func DiffEdges(a, b EdgeSet, mode EdgeMode) EdgeSet {
	order := make([]EdgeKey, 0, len(a.Edges)+len(b.Edges))
	counts := make(map[EdgeKey]*[2]int)
	add := func(i int, e Edge) {
		c, ok := counts[e.EdgeKey]
		if !ok {
			c = &[2]int{}
			counts[e.EdgeKey] = c
			order = append(order, e.EdgeKey)
		}
		c[i] += e.Count
	}
	for _, e := range a.Edges {
		add(0, e)
	}
	for _, e := range b.Edges {
		add(1, e)
	}

	kind := a.Kind
	if len(a.Edges) == 0 {
		kind = b.Kind
	}
	out := EdgeSet{Kind: kind, Mode: mode, Edges: make([]Edge, 0, len(order))}
	for _, key := range order {
		c := counts[key]
		d := c[1] - c[0]
		if d == 0 {
			continue
		}
		out.Edges = append(out.Edges, Edge{
			EdgeKey: key,
			Count:   absInt(d),
			Sign:    signOf(d),
		})
	}
	finishEdgeSet(&out, 0)

	return out
}

func absInt(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
