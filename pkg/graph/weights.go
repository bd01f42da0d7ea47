package graph

import (
	"math"
	"strconv"
)

const (
	nodeMapMinSize      = 40
	nodeMapMaxSize      = 150
	edgeMapMinSize      = 1
	edgeMapMaxSize      = 20
	normaliseMultiplier = 100
	minNodeSize         = 250
	weightBinCount      = 20
)

// Range is a closed numeric interval.
type Range struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

// SizeMap linearly maps a data field from [Min, Max] into render units
// [OutMin, OutMax]. It renders as a renderer mapData expression.
type SizeMap struct {
	Field  string  `json:"field"`
	Min    float64 `json:"min"`
	Max    float64 `json:"max"`
	OutMin float64 `json:"out_min"`
	OutMax float64 `json:"out_max"`
}

func (m SizeMap) String() string {
	return "mapData(" + m.Field + "," +
		formatNumber(m.Min) + "," + formatNumber(m.Max) + "," +
		formatNumber(m.OutMin) + "," + formatNumber(m.OutMax) + ")"
}

// Apply maps v into render units. Values outside the domain are clamped and
// a degenerate domain maps to the lower bound.
func (m SizeMap) Apply(v float64) float64 {
	if m.Max <= m.Min {
		return m.OutMin
	}
	t := (v - m.Min) / (m.Max - m.Min)
	t = math.Max(0, math.Min(1, t))
	return m.OutMin + t*(m.OutMax-m.OutMin)
}

// spanOf returns the range of values, or false for an empty input.
func spanOf(values []float64) (Range, bool) {
	if len(values) == 0 {
		return Range{}, false
	}
	r := Range{Min: values[0], Max: values[0]}
	for _, v := range values[1:] {
		r.Min = math.Min(r.Min, v)
		r.Max = math.Max(r.Max, v)
	}
	return r, true
}

// nodeSize is the unmapped size of a node with the given frequency.
func nodeSize(freq float64) float64 {
	return math.Max(minNodeSize, freq/2)
}

func nodeSizeMap(nodes []Node) *SizeMap {
	sizes := make([]float64, len(nodes))
	for i, n := range nodes {
		sizes[i] = n.Size
	}
	r, ok := spanOf(sizes)
	if !ok {
		return nil
	}
	return &SizeMap{Field: "size", Min: r.Min, Max: r.Max, OutMin: nodeMapMinSize, OutMax: nodeMapMaxSize}
}

// weightBins returns integer labels of weightBinCount evenly spaced points
// over r, without duplicates.
func weightBins(r Range) []string {
	labels := make([]string, 0, weightBinCount)
	seen := make(map[int]struct{}, weightBinCount)
	step := (r.Max - r.Min) / float64(weightBinCount-1)
	for i := 0; i < weightBinCount; i++ {
		v := int(r.Min + float64(i)*step)
		if i == weightBinCount-1 {
			v = int(r.Max)
		}
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		labels = append(labels, strconv.Itoa(v))
	}
	return labels
}

// weighEdges derives display weights from the edge counts and returns the
// slider range and the width map domain.
//
// Frequency mode uses log2(count); the range covers the raw counts and the
// width map their log2. With normaliseBase > 0 the weight is the count as a
// percentage of normaliseBase instead. Probability mode uses the percentage
// of the source's outgoing count for range and map alike.
func weighEdges(edges []Edge, mode EdgeMode, normaliseBase int) (Range, Range, bool) {
	if len(edges) == 0 {
		return Range{}, Range{}, false
	}

	switch {
	case mode == EdgeProbability:
		outgoing := make(map[string]int)
		for _, e := range edges {
			outgoing[e.Source] += e.Count
		}
		for i := range edges {
			total := float64(outgoing[edges[i].Source])
			edges[i].Weight = float64(edges[i].Count) / total * 100
			edges[i].RawWeight = int(math.Round(edges[i].Weight / 100 * total))
		}
		r, _ := spanOf(edgeWeights(edges))
		return r, r, true

	case normaliseBase > 0:
		for i := range edges {
			edges[i].Weight = float64(edges[i].Count) / float64(normaliseBase) * normaliseMultiplier
			edges[i].RawWeight = edges[i].Count
		}
		r, _ := spanOf(edgeWeights(edges))
		return r, r, true

	default:
		counts := make([]float64, len(edges))
		for i := range edges {
			edges[i].Weight = math.Log2(float64(edges[i].Count))
			edges[i].RawWeight = edges[i].Count
			counts[i] = float64(edges[i].Count)
		}
		r, _ := spanOf(counts)
		return r, Range{Min: math.Log2(r.Min), Max: math.Log2(r.Max)}, true
	}
}

func edgeWeights(edges []Edge) []float64 {
	w := make([]float64, len(edges))
	for i, e := range edges {
		w[i] = e.Weight
	}
	return w
}

// finishEdgeSet fills the derived fields of an edge set from its edges.
func finishEdgeSet(set *EdgeSet, normaliseBase int) {
	weightRange, mapDomain, ok := weighEdges(set.Edges, set.Mode, normaliseBase)
	if !ok {
		set.WeightRange = nil
		set.WeightBins = nil
		set.SizeMap = nil
		return
	}
	set.WeightRange = &weightRange
	set.WeightBins = weightBins(weightRange)
	set.SizeMap = &SizeMap{
		Field:  "weight",
		Min:    mapDomain.Min,
		Max:    mapDomain.Max,
		OutMin: edgeMapMinSize,
		OutMax: edgeMapMaxSize,
	}
}
