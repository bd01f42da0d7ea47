package graph

import (
	"encoding/json"
	"errors"
	"testing"

	"teamgraph/pkg/common"
)

func TestIsValidSelection(t *testing.T) {
	tests := []struct {
		kind  NodeKind
		color ColorMode
		team  string
		want  bool
	}{
		{NodeBehaviours, ColorByBehaviours, common.All, true},
		{NodeBehaviours, ColorByBehaviours, "X", true},
		{NodeBehaviours, ColorByParticipants, common.All, false},
		{NodeBehaviours, ColorByParticipants, "X", false},
		{NodeParticipants, ColorByBehaviours, common.All, false},
		{NodeParticipants, ColorByParticipants, common.All, false},
		{NodeParticipants, ColorByBehaviours, "X", true},
		{NodeParticipants, ColorByParticipants, "X", true},
		{NodeParticipants, ColorByParticipants, "condition/treatment", true},
	}
	for _, tt := range tests {
		t.Run(tt.kind.String()+"/"+tt.color.String()+"/"+tt.team, func(t *testing.T) {
			if got := IsValidSelection(tt.kind, tt.color, tt.team); got != tt.want {
				t.Errorf("IsValidSelection() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestParseOptions(t *testing.T) {
	if k, err := ParseNodeKind("Participants"); err != nil || k != NodeParticipants {
		t.Errorf("ParseNodeKind(Participants) = %v, %v", k, err)
	}
	if m, err := ParseEdgeMode("Probability"); err != nil || m != EdgeProbability {
		t.Errorf("ParseEdgeMode(Probability) = %v, %v", m, err)
	}
	if m, err := ParseColorMode("Behaviours"); err != nil || m != ColorByBehaviours {
		t.Errorf("ParseColorMode(Behaviours) = %v, %v", m, err)
	}
	if s, err := ParseColorSource("Target"); err != nil || s != ColorFromTarget {
		t.Errorf("ParseColorSource(Target) = %v, %v", s, err)
	}

	for _, bad := range []string{"", "behaviours", "Edges"} {
		if _, err := ParseNodeKind(bad); !errors.Is(err, ErrUnknownOption) {
			t.Errorf("ParseNodeKind(%q) error = %v, want ErrUnknownOption", bad, err)
		}
	}
	if got := NodeKind(7).String(); got != "7" {
		t.Errorf("NodeKind(7).String() = %q", got)
	}
}

func TestModeJSON(t *testing.T) {
	in := Mode{
		NodeKind:    NodeParticipants,
		EdgeMode:    EdgeProbability,
		ColorMode:   ColorByBehaviours,
		ColorSource: ColorFromTarget,
	}
	b, err := json.Marshal(in)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	want := `{"node_kind":"Participants","edge_mode":"Probability","color_mode":"Behaviours","color_source":"Target"}`
	if string(b) != want {
		t.Errorf("Marshal = %s, want %s", b, want)
	}

	var out Mode
	if err := json.Unmarshal(b, &out); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if out != in {
		t.Errorf("Unmarshal = %+v, want %+v", out, in)
	}

	if err := json.Unmarshal([]byte(`{"node_kind":"Nodes"}`), &out); err == nil {
		t.Error("Unmarshal accepted an unknown node kind")
	}
}
