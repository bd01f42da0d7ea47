package graph

import (
	"math"
	"reflect"
	"testing"

	"teamgraph/pkg/common"
)

func TestExtractSingleSequence(t *testing.T) {
	ds := newDataset(seq("1_X", "A", "B", "A", "B", "C"))
	opts := Options{Mode: behaviourMode}

	nodes := ExtractNodes(ds, allSelection, opts)
	edges := ExtractEdges(ds, allSelection, opts)

	wantNodes := map[string]int{"A": 2, "B": 2, "C": 1}
	if got := nodeCounts(nodes); !reflect.DeepEqual(got, wantNodes) {
		t.Errorf("node counts = %v, want %v", got, wantNodes)
	}
	if got, want := nodes.IDs(), []string{"A", "B", "C"}; !reflect.DeepEqual(got, want) {
		t.Errorf("node order = %v, want %v", got, want)
	}

	tests := []struct {
		key        EdgeKey
		wantCount  int
		wantWeight float64
	}{
		{EdgeKey{Source: "A", Target: "B"}, 2, 1.0},
		{EdgeKey{Source: "B", Target: "A"}, 1, 0.0},
		{EdgeKey{Source: "B", Target: "C"}, 1, 0.0},
	}
	if len(edges.Edges) != len(tests) {
		t.Fatalf("len(edges) = %d, want %d", len(edges.Edges), len(tests))
	}
	for _, tt := range tests {
		t.Run(tt.key.Source+"->"+tt.key.Target, func(t *testing.T) {
			e, ok := edgeByKey(edges, tt.key)
			if !ok {
				t.Fatalf("edge %v missing", tt.key)
			}
			if e.Count != tt.wantCount {
				t.Errorf("Count = %d, want %d", e.Count, tt.wantCount)
			}
			if e.Weight != tt.wantWeight {
				t.Errorf("Weight = %v, want %v", e.Weight, tt.wantWeight)
			}
			if e.RawWeight != tt.wantCount {
				t.Errorf("RawWeight = %d, want %d", e.RawWeight, tt.wantCount)
			}
		})
	}

	if edges.WeightRange == nil || *edges.WeightRange != (Range{Min: 1, Max: 2}) {
		t.Errorf("WeightRange = %v, want {1 2}", edges.WeightRange)
	}
	if edges.SizeMap == nil || edges.SizeMap.String() != "mapData(weight,0,1,1,20)" {
		t.Errorf("SizeMap = %v", edges.SizeMap)
	}
	if !Closed(nodes, edges) {
		t.Error("edge endpoints are not all nodes")
	}
}

func TestExtractNodesAttributes(t *testing.T) {
	ds := newDataset(seq("1_X", "Task_talk", "Break", "Task_talk", "positive feedback"))

	nodes := ExtractNodes(ds, allSelection, Options{Mode: behaviourMode})

	tests := []struct {
		id        string
		wantLabel string
		wantCount int
	}{
		{"Task_talk", "TT", 2},
		{"positive feedback", "PF", 1},
	}
	for _, tt := range tests {
		t.Run(tt.id, func(t *testing.T) {
			n, ok := nodeByID(nodes, tt.id)
			if !ok {
				t.Fatalf("node %q missing", tt.id)
			}
			if n.Label != tt.wantLabel {
				t.Errorf("Label = %q, want %q", n.Label, tt.wantLabel)
			}
			if n.Count != tt.wantCount {
				t.Errorf("Count = %d, want %d", n.Count, tt.wantCount)
			}
			if n.Size != 250 {
				t.Errorf("Size = %v, want floor 250", n.Size)
			}
		})
	}
	if _, ok := nodeByID(nodes, common.BreakEvent); ok {
		t.Error("Break must not become a node")
	}
	if nodes.SizeMap == nil || nodes.SizeMap.String() != "mapData(size,250,250,40,150)" {
		t.Errorf("SizeMap = %v", nodes.SizeMap)
	}
}

func TestExtractFiltersTeamAndMeeting(t *testing.T) {
	ds := newDataset(
		seq("1_X", "A", "B"),
		seq("2_X", "C"),
		seq("1_Y", "D", "E"),
	)

	tests := []struct {
		name      string
		sel       Selection
		wantNodes []string
		wantEdges map[EdgeKey]int
	}{
		{
			name:      "all",
			sel:       allSelection,
			wantNodes: []string{"A", "B", "C", "D", "E"},
			wantEdges: map[EdgeKey]int{
				{Source: "A", Target: "B"}: 1,
				{Source: "B", Target: "C"}: 1,
				{Source: "C", Target: "D"}: 1,
				{Source: "D", Target: "E"}: 1,
			},
		},
		{
			name:      "team",
			sel:       Selection{Team: "X", Meeting: common.All},
			wantNodes: []string{"A", "B", "C"},
			wantEdges: map[EdgeKey]int{
				{Source: "A", Target: "B"}: 1,
				{Source: "B", Target: "C"}: 1,
			},
		},
		{
			name:      "team and meeting",
			sel:       Selection{Team: "X", Meeting: "1"},
			wantNodes: []string{"A", "B"},
			wantEdges: map[EdgeKey]int{{Source: "A", Target: "B"}: 1},
		},
		{
			name:      "meeting across teams",
			sel:       Selection{Team: common.All, Meeting: "1"},
			wantNodes: []string{"A", "B", "D", "E"},
			wantEdges: map[EdgeKey]int{
				{Source: "A", Target: "B"}: 1,
				{Source: "B", Target: "D"}: 1,
				{Source: "D", Target: "E"}: 1,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opts := Options{Mode: behaviourMode}
			nodes, edges := extract(ds, tt.sel, opts)
			if got := nodes.IDs(); !reflect.DeepEqual(got, tt.wantNodes) {
				t.Errorf("nodes = %v, want %v", got, tt.wantNodes)
			}
			if got := edgeCounts(edges); !reflect.DeepEqual(got, tt.wantEdges) {
				t.Errorf("edges = %v, want %v", got, tt.wantEdges)
			}
			if !Closed(nodes, edges) {
				t.Error("edge endpoints are not all nodes")
			}
		})
	}
}

func TestExtractEdgesSequenceBoundary(t *testing.T) {
	ds := newDataset(seq("1_X", "A", "B"), seq("2_X", "A", "C"))

	tests := []struct {
		name  string
		reset bool
		want  map[EdgeKey]int
	}{
		{
			name:  "walk crosses sequences",
			reset: false,
			want: map[EdgeKey]int{
				{Source: "A", Target: "B"}: 1,
				{Source: "B", Target: "A"}: 1,
				{Source: "A", Target: "C"}: 1,
			},
		},
		{
			name:  "reset on boundary",
			reset: true,
			want: map[EdgeKey]int{
				{Source: "A", Target: "B"}: 1,
				{Source: "A", Target: "C"}: 1,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			edges := ExtractEdges(ds, allSelection, Options{Mode: behaviourMode, ResetOnSequenceBoundary: tt.reset})
			if got := edgeCounts(edges); !reflect.DeepEqual(got, tt.want) {
				t.Errorf("edges = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestExtractEdgesSkipsBreak(t *testing.T) {
	ds := newDataset(seq("1_X", "A", "Break", "B"))

	edges := ExtractEdges(ds, allSelection, Options{Mode: behaviourMode})

	want := map[EdgeKey]int{{Source: "A", Target: "B"}: 1}
	if got := edgeCounts(edges); !reflect.DeepEqual(got, want) {
		t.Errorf("edges = %v, want %v", got, want)
	}
}

func TestExtractProbability(t *testing.T) {
	ds := newDataset(seq("1_X", "A", "B", "A", "C", "A", "B"))

	edges := ExtractEdges(ds, allSelection, Options{Mode: probabilityMode})

	tests := []struct {
		key        EdgeKey
		wantWeight float64
		wantRaw    int
	}{
		{EdgeKey{Source: "A", Target: "B"}, 200.0 / 3, 2},
		{EdgeKey{Source: "A", Target: "C"}, 100.0 / 3, 1},
		{EdgeKey{Source: "B", Target: "A"}, 100, 1},
		{EdgeKey{Source: "C", Target: "A"}, 100, 1},
	}
	for _, tt := range tests {
		e, ok := edgeByKey(edges, tt.key)
		if !ok {
			t.Fatalf("edge %v missing", tt.key)
		}
		if math.Abs(e.Weight-tt.wantWeight) > 1e-9 {
			t.Errorf("%v Weight = %v, want %v", tt.key, e.Weight, tt.wantWeight)
		}
		if e.RawWeight != tt.wantRaw {
			t.Errorf("%v RawWeight = %d, want %d", tt.key, e.RawWeight, tt.wantRaw)
		}
	}

	if edges.WeightRange == nil || math.Abs(edges.WeightRange.Min-100.0/3) > 1e-9 || edges.WeightRange.Max != 100 {
		t.Errorf("WeightRange = %v", edges.WeightRange)
	}
	if edges.SizeMap.Min != edges.WeightRange.Min || edges.SizeMap.Max != 100 {
		t.Errorf("SizeMap = %v, want probability domain", edges.SizeMap)
	}
}

func TestExtractNormalised(t *testing.T) {
	ds := newDataset(seq("1_X", "A", "Break", "A", "B"))
	opts := Options{Mode: behaviourMode, Normalise: true}

	nodes, edges := extract(ds, allSelection, opts)

	a, _ := nodeByID(nodes, "A")
	b, _ := nodeByID(nodes, "B")
	if a.Freq != 50 || b.Freq != 25 {
		t.Errorf("Freq A = %v, B = %v, want 50 and 25 (Break rows in the denominator)", a.Freq, b.Freq)
	}
	if a.Count != 2 {
		t.Errorf("Count A = %d, want 2", a.Count)
	}

	for _, e := range edges.Edges {
		if math.Abs(e.Weight-100.0/3) > 1e-9 {
			t.Errorf("%v Weight = %v, want 33.33", e.EdgeKey, e.Weight)
		}
	}
}

func TestExtractEmptySelection(t *testing.T) {
	ds := newDataset(seq("1_X", "A", "B"))

	tests := []struct {
		name string
		sel  Selection
		mode Mode
	}{
		{"unknown team", Selection{Team: "Z", Meeting: common.All}, behaviourMode},
		{"unknown meeting", Selection{Team: "X", Meeting: "9"}, probabilityMode},
		{"single event", Selection{Team: "X", Meeting: "1"}, behaviourMode},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ds := ds
			if tt.name == "single event" {
				ds = newDataset(seq("1_X", "A"))
			}
			nodes, edges := extract(ds, tt.sel, Options{Mode: tt.mode, ShowStats: true})
			if len(edges.Edges) != 0 {
				t.Fatalf("edges = %v, want none", edges.Edges)
			}
			if edges.WeightRange != nil || edges.WeightBins != nil || edges.SizeMap != nil {
				t.Errorf("empty edge set carries range %v, bins %v, map %v", edges.WeightRange, edges.WeightBins, edges.SizeMap)
			}
			if len(nodes.Nodes) == 0 && nodes.SizeMap != nil {
				t.Errorf("empty node set carries size map %v", nodes.SizeMap)
			}
		})
	}
}

func TestExtractTeamGroup(t *testing.T) {
	ds := newDataset(seq("1_X", "A"), seq("1_Y", "B"), seq("1_Z", "C"))
	ds.Groups = map[string]map[string][]string{
		"condition": {"control": {"X", "Z"}},
	}

	nodes := ExtractNodes(ds, Selection{Team: "condition/control", Meeting: common.All}, Options{Mode: behaviourMode})

	if got, want := nodes.IDs(), []string{"A", "C"}; !reflect.DeepEqual(got, want) {
		t.Errorf("nodes = %v, want %v", got, want)
	}
}

func TestExtractDescriptiveStats(t *testing.T) {
	ds := newDataset(seq("1_X", "A", "B", "A"), seq("1_Y", "A"))

	tests := []struct {
		name string
		sel  Selection
		id   string
		want string
	}{
		{
			name: "all teams and meetings",
			sel:  allSelection,
			id:   "A",
			want: "Most frequent team: X (2) Least frequent team: Y (1) Average frequency: 1.5 " +
				"Most frequent meeting: 1_X (2) Least frequent meeting: 1_Y (1)",
		},
		{
			name: "absent in one team",
			sel:  allSelection,
			id:   "B",
			want: "Most frequent team: X (1) Least frequent team: Y (0) Average frequency: 0.5 " +
				"Most frequent meeting: 1_X (1) Least frequent meeting: 1_Y (0)",
		},
		{
			name: "all meetings of one team",
			sel:  Selection{Team: "X", Meeting: common.All},
			id:   "A",
			want: "Most frequent meeting: 1_X (2) Least frequent meeting: 1_X (2)",
		},
		{
			name: "concrete selection",
			sel:  Selection{Team: "X", Meeting: "1"},
			id:   "A",
			want: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			nodes := ExtractNodes(ds, tt.sel, Options{Mode: behaviourMode, ShowStats: true})
			n, ok := nodeByID(nodes, tt.id)
			if !ok {
				t.Fatalf("node %q missing", tt.id)
			}
			if n.Stats != tt.want {
				t.Errorf("Stats = %q, want %q", n.Stats, tt.want)
			}
		})
	}

	t.Run("edges", func(t *testing.T) {
		edges := ExtractEdges(ds, Selection{Team: common.All, Meeting: "1"}, Options{Mode: behaviourMode, ShowStats: true})
		e, ok := edgeByKey(edges, EdgeKey{Source: "A", Target: "B"})
		if !ok {
			t.Fatal("edge A->B missing")
		}
		want := "Most frequent team: X (1) Least frequent team: Y (0) Average frequency: 0.5"
		if e.Stats != want {
			t.Errorf("Stats = %q, want %q", e.Stats, want)
		}
	})

	t.Run("disabled", func(t *testing.T) {
		nodes := ExtractNodes(ds, allSelection, Options{Mode: behaviourMode})
		for _, n := range nodes.Nodes {
			if n.Stats != "" {
				t.Errorf("node %q has stats %q with stats disabled", n.ID, n.Stats)
			}
		}
	})
}

func participantDataset() *common.Dataset {
	ds := newDataset([]common.EventRecord{
		{SequenceID: "1_X", Event: "Greeting", EntityID: 1},
		{SequenceID: "1_X", Event: "Break", EntityID: common.NoEntity},
		{SequenceID: "1_X", Event: "Task", EntityID: 2},
		{SequenceID: "1_X", Event: "Task", EntityID: 1},
		{SequenceID: "1_X", Event: "Task", EntityID: 9},
		{SequenceID: "2_X", Event: "Greeting", EntityID: 3},
		{SequenceID: "1_Y", Event: "Greeting", EntityID: 4},
	})
	ds.Entities = []common.EntityAttribute{
		{EntityID: 1, Key: "name", Value: "Anna"},
		{EntityID: 1, Key: "leader_meeting", Value: "1"},
		{EntityID: 2, Key: "name", Value: "Ben"},
		{EntityID: 3, Key: "name", Value: "Cleo"},
		{EntityID: 4, Key: "name", Value: "Dora"},
	}
	ds.Participants = []common.ParticipantRecord{{TeamID: "X", Name: "Anna", LeaderMeeting: 1}}
	return ds
}

func TestExtractParticipants(t *testing.T) {
	ds := participantDataset()
	opts := Options{Mode: Mode{NodeKind: NodeParticipants, ColorMode: ColorByParticipants}}
	sel := Selection{Team: "X", Meeting: "1"}

	nodes, edges := extract(ds, sel, opts)

	if got, want := nodes.IDs(), []string{"Anna", "Ben", "Cleo"}; !reflect.DeepEqual(got, want) {
		t.Errorf("nodes = %v, want %v", got, want)
	}
	if got, want := nodeCounts(nodes), map[string]int{"Anna": 2, "Ben": 1, "Cleo": 0}; !reflect.DeepEqual(got, want) {
		t.Errorf("counts = %v, want %v", got, want)
	}
	anna, _ := nodeByID(nodes, "Anna")
	if anna.Label != "Anna" || !anna.Leader {
		t.Errorf("Anna = %+v, want verbatim label and leader flag", anna)
	}
	if nodes.Leader != "Leader: Anna" {
		t.Errorf("Leader = %q", nodes.Leader)
	}

	want := map[EdgeKey]int{
		{Source: "Anna", Target: "Ben", Behaviour: "Task"}: 1,
		{Source: "Ben", Target: "Anna", Behaviour: "Task"}: 1,
	}
	if got := edgeCounts(edges); !reflect.DeepEqual(got, want) {
		t.Errorf("edges = %v, want %v", got, want)
	}
	if !Closed(nodes, edges) {
		t.Error("edge endpoints are not all nodes")
	}
}

func TestExtractBehavioursResolvesLeaderText(t *testing.T) {
	ds := participantDataset()

	nodes := ExtractNodes(ds, Selection{Team: "X", Meeting: "1"}, Options{Mode: behaviourMode})

	if nodes.Leader != "Leader: Anna" {
		t.Errorf("Leader = %q, want %q", nodes.Leader, "Leader: Anna")
	}
	for _, n := range nodes.Nodes {
		if n.Leader {
			t.Errorf("behaviour node %q flagged as leader", n.ID)
		}
	}
}
