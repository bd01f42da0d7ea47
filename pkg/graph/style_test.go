package graph

import (
	"fmt"
	"testing"
)

func TestAssignColors(t *testing.T) {
	keys := make([]string, 0, 20)
	for i := 0; i < 20; i++ {
		keys = append(keys, fmt.Sprintf("k%d", i))
	}

	colors := AssignColors(keys)

	tests := []struct {
		key  string
		want string
	}{
		{"k0", "#00ff00"},
		{"k2", "#007fff"},
		{"k7", "#ff0000"},
		{"k16", "#87ef0e"},
		// keys past the palette collide with the last colour
		{"k17", "#87ef0e"},
		{"k19", "#87ef0e"},
	}
	for _, tt := range tests {
		if got := colors[tt.key]; got != tt.want {
			t.Errorf("colors[%q] = %q, want %q", tt.key, got, tt.want)
		}
	}

	distinct := map[string]struct{}{}
	for _, k := range keys[:len(palette)] {
		distinct[colors[k]] = struct{}{}
	}
	if len(distinct) != len(palette) {
		t.Errorf("first %d keys share colours: %d distinct", len(palette), len(distinct))
	}
}

func findRule(rules []StyleRule, selector string) (StyleRule, bool) {
	for _, r := range rules {
		if r.Selector == selector {
			return r, true
		}
	}
	return StyleRule{}, false
}

func TestStyleRules(t *testing.T) {
	keys := []string{"Task_talk", "positive feedback"}
	colors := AssignColors(keys)
	nodeMap := &SizeMap{Field: "size", Min: 250, Max: 300, OutMin: 40, OutMax: 150}
	edgeMap := &SizeMap{Field: "weight", Min: 0, Max: 2, OutMin: 1, OutMax: 20}

	rules := StyleRules(keys, colors, nodeMap, edgeMap, false)

	if len(rules) != 6 {
		t.Fatalf("len(rules) = %d, want 6", len(rules))
	}

	participant, ok := findRule(rules, ".nodeParticipant")
	if !ok || participant.Style["background-color"] != "#444444" || participant.Style["width"] != nodeMap.String() {
		t.Errorf(".nodeParticipant = %+v", participant)
	}
	leader, ok := findRule(rules, ".nodeLeader")
	if !ok || leader.Style["shape"] != "star" || leader.Style["width"] != 100 {
		t.Errorf(".nodeLeader = %+v", leader)
	}
	node, ok := findRule(rules, ".nodeTask_talk")
	if !ok || node.Style["background-color"] != "#00ff00" || node.Style["height"] != nodeMap.String() {
		t.Errorf(".nodeTask_talk = %+v", node)
	}
	edge, ok := findRule(rules, ".edgepositive_feedback")
	if !ok || edge.Style["line-color"] != colors["positive feedback"] || edge.Style["width"] != edgeMap.String() {
		t.Errorf(".edgepositive_feedback = %+v", edge)
	}
	if edge.Style["target-arrow-shape"] != "vee" || edge.Style["curve-style"] != "bezier" {
		t.Errorf("edge arrow style = %+v", edge.Style)
	}
	if _, ok := findRule(rules, ".nodeTask_talkpositive"); ok {
		t.Error("sign variants emitted outside comparison mode")
	}
}

func TestStyleRulesComparison(t *testing.T) {
	keys := []string{"A"}
	rules := StyleRules(keys, AssignColors(keys), nil, nil, true)

	tests := []struct {
		selector string
		prop     string
		want     any
	}{
		{".nodeApositive", "shape", "triangle"},
		{".nodeAnegative", "shape", "vee"},
		{".edgeApositive", "line-style", "solid"},
		{".edgeAnegative", "line-style", "dashed"},
		{".nodeParticipantpositive", "shape", "triangle"},
		{".nodeApositive", "background-color", "#00ff00"},
	}
	for _, tt := range tests {
		r, ok := findRule(rules, tt.selector)
		if !ok {
			t.Errorf("rule %q missing", tt.selector)
			continue
		}
		if r.Style[tt.prop] != tt.want {
			t.Errorf("%s %s = %v, want %v", tt.selector, tt.prop, r.Style[tt.prop], tt.want)
		}
	}

	base, _ := findRule(rules, ".nodeA")
	if _, ok := base.Style["shape"]; ok {
		t.Error("sign variant leaked into the base rule")
	}
	if _, ok := base.Style["width"]; ok {
		t.Error("nil size map produced a width")
	}
}

func TestClasses(t *testing.T) {
	participants := Mode{NodeKind: NodeParticipants, ColorMode: ColorByParticipants, ColorSource: ColorFromTarget}
	participantsByBehaviour := Mode{NodeKind: NodeParticipants, ColorMode: ColorByBehaviours}

	nodeTests := []struct {
		name string
		node Node
		mode Mode
		want string
	}{
		{"behaviour", Node{ID: "Task_talk"}, behaviourMode, "nodeTask_talk"},
		{"participant", Node{ID: "Anna Lee"}, participants, "nodeAnna_Lee"},
		{"participant by behaviour", Node{ID: "Anna"}, participantsByBehaviour, "nodeParticipant"},
		{"leader", Node{ID: "Anna", Leader: true}, participantsByBehaviour, "nodeLeader"},
		{"comparison", Node{ID: "A", Sign: SignNegative}, behaviourMode, "nodeAnegative"},
	}
	for _, tt := range nodeTests {
		t.Run(tt.name, func(t *testing.T) {
			if got := NodeClass(tt.node, tt.mode); got != tt.want {
				t.Errorf("NodeClass() = %q, want %q", got, tt.want)
			}
		})
	}

	edge := Edge{EdgeKey: EdgeKey{Source: "Anna", Target: "Ben", Behaviour: "Task"}}
	edgeTests := []struct {
		name string
		edge Edge
		mode Mode
		want string
	}{
		{"source", edge, behaviourMode, "edgeAnna"},
		{"target", edge, participants, "edgeBen"},
		{"behaviour", edge, participantsByBehaviour, "edgeTask"},
		{"comparison", Edge{EdgeKey: edge.EdgeKey, Sign: SignPositive}, behaviourMode, "edgeAnnapositive"},
	}
	for _, tt := range edgeTests {
		t.Run(tt.name, func(t *testing.T) {
			if got := EdgeClass(tt.edge, tt.mode); got != tt.want {
				t.Errorf("EdgeClass() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestLegend(t *testing.T) {
	legend := Legend([]string{"A", "B c"})

	if len(legend) != 2 {
		t.Fatalf("len(legend) = %d, want 2", len(legend))
	}
	if legend[1].Label != "B c" || legend[1].Classes != "nodeB_c" || legend[1].Size != 20 {
		t.Errorf("legend[1] = %+v", legend[1])
	}
}

func TestAcronym(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Task_talk", "TT"},
		{"positive feedback", "PF"},
		{"off_topic_chat", "OTC"},
		{"x", "X"},
		{"", ""},
	}
	for _, tt := range tests {
		if got := Acronym(tt.in); got != tt.want {
			t.Errorf("Acronym(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
