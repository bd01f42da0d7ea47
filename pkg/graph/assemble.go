package graph

import (
	"math/rand/v2"
)

// Position is a 2-D render position.
type Position struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// NodeElement is a renderer-ready node.
type NodeElement struct {
	ID       string   `json:"id"`
	Label    string   `json:"label"`
	Freq     float64  `json:"freq"`
	Count    int      `json:"count"`
	Size     float64  `json:"size"`
	Stats    string   `json:"stats"`
	Position Position `json:"position"`
	Classes  string   `json:"classes"`
	Sign     Sign     `json:"sign,omitempty"`
	Tooltip  string   `json:"tooltip"`
}

// EdgeElement is a renderer-ready edge.
type EdgeElement struct {
	Source    string  `json:"source"`
	Target    string  `json:"target"`
	Behaviour string  `json:"behaviour"`
	Weight    float64 `json:"weight"`
	RawWeight int     `json:"raw_weight"`
	Count     int     `json:"count"`
	Stats     string  `json:"stats"`
	Classes   string  `json:"classes"`
	Sign      Sign    `json:"sign,omitempty"`
	Tooltip   string  `json:"tooltip"`
}

// randomPosition samples a placeholder position from a longitude in
// [-180, 180) and a latitude in [-90, 90). The renderer's layout replaces it.
func randomPosition(rnd *rand.Rand) Position {
	long := rnd.Float64()*360 - 180
	lat := rnd.Float64()*180 - 90
	return Position{X: 20 * lat, Y: -20 * long}
}

// NodeClass returns the style class of a node. Participant nodes coloured by
// behaviours share the neutral participant class and leaders override any
// class. The sign is appended in comparison mode.
func NodeClass(n Node, mode Mode) string {
	class := "node" + ClassKey(n.ID)
	if mode.NodeKind == NodeParticipants {
		if mode.ColorMode == ColorByBehaviours {
			class = "nodeParticipant"
		}
		if n.Leader {
			class = "nodeLeader"
		}
	}
	return class + string(n.Sign)
}

// EdgeClass returns the style class of an edge: its behaviour on a
// participant graph coloured by behaviours, otherwise its source or target
// per colour source. The sign is appended in comparison mode.
func EdgeClass(e Edge, mode Mode) string {
	var key string
	switch {
	case mode.NodeKind == NodeParticipants && mode.ColorMode == ColorByBehaviours:
		key = e.Behaviour
	case mode.ColorSource == ColorFromTarget:
		key = e.Target
	default:
		key = e.Source
	}
	return "edge" + ClassKey(key) + string(e.Sign)
}

// AssembleNodes projects a node set into renderer elements.
func AssembleNodes(set NodeSet, mode Mode, rnd *rand.Rand) []NodeElement {
	out := make([]NodeElement, 0, len(set.Nodes))
	for _, n := range set.Nodes {
		el := NodeElement{
			ID:       n.ID,
			Label:    n.Label,
			Freq:     n.Freq,
			Count:    n.Count,
			Size:     n.Size,
			Stats:    n.Stats,
			Position: randomPosition(rnd),
			Classes:  NodeClass(n, mode),
			Sign:     n.Sign,
		}
		el.Tooltip = NodeTooltip(el)
		out = append(out, el)
	}
	return out
}

// AssembleEdges projects an edge set into renderer elements.
func AssembleEdges(set EdgeSet, mode Mode) []EdgeElement {
	out := make([]EdgeElement, 0, len(set.Edges))
	for _, e := range set.Edges {
		el := EdgeElement{
			Source:    e.Source,
			Target:    e.Target,
			Behaviour: e.Behaviour,
			Weight:    e.Weight,
			RawWeight: e.RawWeight,
			Count:     e.Count,
			Stats:     e.Stats,
			Classes:   EdgeClass(e, mode),
			Sign:      e.Sign,
		}
		el.Tooltip = EdgeTooltip(el, mode.NodeKind, mode.EdgeMode)
		out = append(out, el)
	}
	return out
}
