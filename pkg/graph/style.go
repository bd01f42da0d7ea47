package graph

import (
	"fmt"
	"strings"

	"teamgraph/pkg/common"
)

const (
	participantColor = "#444444"
	leaderColor      = "#444444"
	leaderSize       = 100
	legendNodeSize   = 20
)

// palette holds the category colours as RGB fractions.
var palette = [][3]float64{
	{0.0, 1.0, 0.0},
	{0.9943259034408901, 0.0012842177138555622, 0.9174329074599924},
	{0.0, 0.5, 1.0},
	{1.0, 0.5, 0.0},
	{0.5, 0.75, 0.5},
	{0.38539888501730646, 0.13504094033721226, 0.6030566783362241},
	{0.2274309309202145, 0.9916143649051387, 0.9940075760357668},
	{1.0, 0.0, 0.0},
	{0.19635097896407006, 0.5009447066269282, 0.02520413500628782},
	{1.0, 1.0, 0.0},
	{1.0, 0.5, 1.0},
	{0.0, 0.0, 1.0},
	{0.0, 0.5, 0.5},
	{0.9080663741715954, 0.24507985021755374, 0.45946418737627126},
	{0.5419953696803366, 0.17214943372398184, 0.041558678566627205},
	{0.9851725449490569, 0.7473699550058078, 0.4530441265365358},
	{0.5307859786313746, 0.9399885275455782, 0.05504161834032317},
}

func hexColor(c [3]float64) string {
	return fmt.Sprintf("#%02x%02x%02x", int(c[0]*255), int(c[1]*255), int(c[2]*255))
}

// StyleRule is one renderer stylesheet entry.
type StyleRule struct {
	Selector string         `json:"selector"`
	Style    map[string]any `json:"style"`
}

// LegendElement is one entry of the colour legend graph.
type LegendElement struct {
	Label    string   `json:"label"`
	Size     float64  `json:"size"`
	Position Position `json:"position"`
	Classes  string   `json:"classes"`
}

// ClassKey turns an identity into a style class fragment. Whitespace is
// replaced by underscores since class lists are whitespace separated.
func ClassKey(id string) string {
	return strings.Join(strings.Fields(id), "_")
}

// ColorKeys returns the keys colours are assigned to: the dataset's
// behaviours or the node identities.
func ColorKeys(ds *common.Dataset, nodes NodeSet, mode ColorMode) []string {
	if mode == ColorByBehaviours {
		return ds.Behaviours
	}
	return nodes.IDs()
}

// AssignColors gives every key a palette colour in order. Keys past the end
// of the palette share its last colour.
func AssignColors(keys []string) map[string]string {
	colors := make(map[string]string, len(keys))
	for i, key := range keys {
		if _, ok := colors[key]; ok {
			continue
		}
		colors[key] = hexColor(palette[min(i, len(palette)-1)])
	}
	return colors
}

func withSize(style map[string]any, m *SizeMap, props ...string) map[string]any {
	if m == nil {
		return style
	}
	for _, p := range props {
		style[p] = m.String()
	}
	return style
}

func cloneStyle(style map[string]any, extra map[string]any) map[string]any {
	out := make(map[string]any, len(style)+len(extra))
	for k, v := range style {
		out[k] = v
	}
	for k, v := range extra {
		out[k] = v
	}
	return out
}

// signVariants returns the positive and negative rules of a base rule.
func signVariants(rule StyleRule, positive, negative map[string]any) []StyleRule {
	return []StyleRule{
		{Selector: rule.Selector + string(SignPositive), Style: cloneStyle(rule.Style, positive)},
		{Selector: rule.Selector + string(SignNegative), Style: cloneStyle(rule.Style, negative)},
	}
}

var (
	nodePositive = map[string]any{"shape": "triangle"}
	nodeNegative = map[string]any{"shape": "vee"}
	edgePositive = map[string]any{"line-style": "solid"}
	edgeNegative = map[string]any{"line-style": "dashed"}
)

// StyleRules builds the category stylesheet: the neutral participant rule,
// the leader rule, and a node and an edge rule per colour key. Comparison
// adds positive and negative variants of every rule but the leader's.
func StyleRules(keys []string, colors map[string]string, nodeMap, edgeMap *SizeMap, comparison bool) []StyleRule {
	participant := StyleRule{
		Selector: ".nodeParticipant",
		Style: withSize(map[string]any{
			"background-color": participantColor,
			"line-color":       "white",
		}, nodeMap, "width", "height"),
	}
	leader := StyleRule{
		Selector: ".nodeLeader",
		Style: map[string]any{
			"background-color": leaderColor,
			"line-color":       "white",
			"shape":            "star",
			"width":            leaderSize,
			"height":           leaderSize,
		},
	}

	nodeRules := []StyleRule{participant, leader}
	if comparison {
		nodeRules = append(nodeRules, signVariants(participant, nodePositive, nodeNegative)...)
	}
	var edgeRules []StyleRule

	seen := make(map[string]struct{}, len(keys))
	for _, key := range keys {
		class := ClassKey(key)
		if _, ok := seen[class]; ok {
			continue
		}
		seen[class] = struct{}{}
		color := colors[key]

		node := StyleRule{
			Selector: ".node" + class,
			Style: withSize(map[string]any{
				"background-color": color,
				"line-color":       color,
			}, nodeMap, "width", "height"),
		}
		edge := StyleRule{
			Selector: ".edge" + class,
			Style: withSize(map[string]any{
				"line-color":              color,
				"target-arrow-color":      color,
				"target-arrow-shape":      "vee",
				"curve-style":             "bezier",
				"control-point-step-size": 100,
			}, edgeMap, "width"),
		}

		nodeRules = append(nodeRules, node)
		edgeRules = append(edgeRules, edge)
		if comparison {
			nodeRules = append(nodeRules, signVariants(node, nodePositive, nodeNegative)...)
			edgeRules = append(edgeRules, signVariants(edge, edgePositive, edgeNegative)...)
		}
	}

	return append(nodeRules, edgeRules...)
}

// BaseStylesheet holds the label rules of the main graph.
func BaseStylesheet() []StyleRule {
	return []StyleRule{
		{Selector: "node", Style: map[string]any{
			"label":       "data(label)",
			"font-size":   "20px",
			"text-halign": "center",
			"text-valign": "center",
		}},
		{Selector: "label", Style: map[string]any{
			"content": "data(label)",
			"color":   "white",
		}},
	}
}

// LegendStylesheet holds the label rules of the legend graph.
func LegendStylesheet() []StyleRule {
	return []StyleRule{
		{Selector: "node", Style: map[string]any{
			"label":       "data(label)",
			"font-size":   "20px",
			"text-halign": "right",
			"text-valign": "center",
		}},
		{Selector: "label", Style: map[string]any{
			"content":       "data(label)",
			"color":         "white",
			"text-margin-x": "10px",
		}},
	}
}

// Legend returns one legend element per colour key.
func Legend(keys []string) []LegendElement {
	legend := make([]LegendElement, 0, len(keys))
	for _, key := range keys {
		legend = append(legend, LegendElement{
			Label:    key,
			Size:     legendNodeSize,
			Position: Position{X: 20, Y: -1},
			Classes:  "node" + ClassKey(key),
		})
	}
	return legend
}
