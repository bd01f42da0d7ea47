package graph

import (
	"errors"
	"fmt"

	"teamgraph/pkg/common"
)

var (
	// ErrUnknownOption is returned when a mode string does not name a known
	// variant.
	ErrUnknownOption = errors.New("unknown option")
	// ErrInvalidSelection is returned when the node kind, colour mode and team
	// do not form a valid combination.
	ErrInvalidSelection = errors.New("invalid selection")
	// ErrEmptyResult is returned when a selection yields no nodes.
	ErrEmptyResult = errors.New("empty result")
)

// NodeKind selects what the nodes of a graph represent.
type NodeKind int

const (
	NodeBehaviours NodeKind = iota
	NodeParticipants
)

// EdgeMode selects how edge weights are derived from transition counts.
type EdgeMode int

const (
	EdgeFrequency EdgeMode = iota
	EdgeProbability
)

// ColorMode selects the key space colours are assigned from, independent of
// the node kind.
type ColorMode int

const (
	ColorByBehaviours ColorMode = iota
	ColorByParticipants
)

// ColorSource selects which edge endpoint an edge takes its colour from.
type ColorSource int

const (
	ColorFromSource ColorSource = iota
	ColorFromTarget
)

var (
	nodeKindNames    = []string{"Behaviours", "Participants"}
	edgeModeNames    = []string{"Frequency", "Probability"}
	colorModeNames   = []string{"Behaviours", "Participants"}
	colorSourceNames = []string{"Source", "Target"}
)

func enumName(names []string, i int) string {
	if i < 0 || i >= len(names) {
		return fmt.Sprintf("%d", i)
	}
	return names[i]
}

func parseEnum[T ~int](kind string, names []string, s string) (T, error) {
	for i, name := range names {
		if name == s {
			return T(i), nil
		}
	}
	return 0, fmt.Errorf("%w: %s %q", ErrUnknownOption, kind, s)
}

func ParseNodeKind(s string) (NodeKind, error) {
	return parseEnum[NodeKind]("node kind", nodeKindNames, s)
}

func ParseEdgeMode(s string) (EdgeMode, error) {
	return parseEnum[EdgeMode]("edge mode", edgeModeNames, s)
}

func ParseColorMode(s string) (ColorMode, error) {
	return parseEnum[ColorMode]("colour mode", colorModeNames, s)
}

func ParseColorSource(s string) (ColorSource, error) {
	return parseEnum[ColorSource]("colour source", colorSourceNames, s)
}

func (k NodeKind) String() string    { return enumName(nodeKindNames, int(k)) }
func (m EdgeMode) String() string    { return enumName(edgeModeNames, int(m)) }
func (m ColorMode) String() string   { return enumName(colorModeNames, int(m)) }
func (s ColorSource) String() string { return enumName(colorSourceNames, int(s)) }

func (k NodeKind) MarshalText() ([]byte, error)    { return []byte(k.String()), nil }
func (m EdgeMode) MarshalText() ([]byte, error)    { return []byte(m.String()), nil }
func (m ColorMode) MarshalText() ([]byte, error)   { return []byte(m.String()), nil }
func (s ColorSource) MarshalText() ([]byte, error) { return []byte(s.String()), nil }

func (k *NodeKind) UnmarshalText(b []byte) error {
	v, err := ParseNodeKind(string(b))
	if err != nil {
		return err
	}
	*k = v
	return nil
}

func (m *EdgeMode) UnmarshalText(b []byte) error {
	v, err := ParseEdgeMode(string(b))
	if err != nil {
		return err
	}
	*m = v
	return nil
}

func (m *ColorMode) UnmarshalText(b []byte) error {
	v, err := ParseColorMode(string(b))
	if err != nil {
		return err
	}
	*m = v
	return nil
}

func (s *ColorSource) UnmarshalText(b []byte) error {
	v, err := ParseColorSource(string(b))
	if err != nil {
		return err
	}
	*s = v
	return nil
}

// Mode bundles the display semantics of a graph.
type Mode struct {
	NodeKind    NodeKind    `json:"node_kind"`
	EdgeMode    EdgeMode    `json:"edge_mode"`
	ColorMode   ColorMode   `json:"color_mode"`
	ColorSource ColorSource `json:"color_source"`
}

// Selection addresses a slice of a dataset. Team is common.All, a concrete
// team id or a team group written as "variable/group"; Meeting is common.All
// or a concrete meeting id.
type Selection struct {
	Team    string `json:"team"`
	Meeting string `json:"meeting"`
}

// Options control a single extraction.
//
// ShowStats enables the descriptive stats text for aggregated selections.
// Normalise turns node frequencies and frequency-mode edge weights into
// percentages of the filtered rows. ResetOnSequenceBoundary starts a new
// transition walk whenever the sequence id changes; by default consecutive
// rows of different sequences form a transition.
type Options struct {
	Mode
	ShowStats               bool
	Normalise               bool
	ResetOnSequenceBoundary bool
}

// IsValidSelection reports whether a node kind, colour mode and team can be
// combined: behaviour nodes must be coloured by behaviours, participant nodes
// need a concrete team.
func IsValidSelection(kind NodeKind, colorMode ColorMode, team string) bool {
	switch kind {
	case NodeBehaviours:
		return colorMode == ColorByBehaviours
	case NodeParticipants:
		return team != common.All
	default:
		return false
	}
}
