package graph

import (
	"context"
	"fmt"
	"math/rand/v2"
	"sort"
	"strings"
	"sync"

	"teamgraph/pkg/common"
	"teamgraph/pkg/eventlog"
	"teamgraph/pkg/logger"

	gonanoid "github.com/matoous/go-nanoid/v2"
)

// DatasetReader loads a dataset by id.
type DatasetReader interface {
	Read(ctx context.Context, datasetID string) (*common.Dataset, error)
}

// Client computes graphs and comparisons over datasets served by a
// DatasetReader.
//
// A Client should be created using NewClient. It is safe for concurrent use.
type Client struct {
	reader                  DatasetReader
	showStats               bool
	normalise               bool
	resetOnSequenceBoundary bool

	rndMu sync.Mutex
	rnd   *rand.Rand
}

// NewClientParams defines the configuration for a new Client.
//
// ShowStats and Normalise apply to single graphs; comparisons never carry
// stats and are never normalised. Rand seeds the placeholder node positions
// and defaults to a randomly seeded source.
type NewClientParams struct {
	Reader                  DatasetReader
	ShowStats               bool
	Normalise               bool
	ResetOnSequenceBoundary bool
	Rand                    *rand.Rand
}

// NewClient creates a Client from params.
func NewClient(params NewClientParams) *Client {
	rnd := params.Rand
	if rnd == nil {
		rnd = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	return &Client{
		reader:                  params.Reader,
		showStats:               params.ShowStats,
		normalise:               params.Normalise,
		resetOnSequenceBoundary: params.ResetOnSequenceBoundary,
		rnd:                     rnd,
	}
}

// GraphRequest selects a single graph.
type GraphRequest struct {
	Dataset string
	Mode
	Selection
}

// ComparisonRequest selects two slices of one dataset to diff. The result
// holds B minus A.
type ComparisonRequest struct {
	Dataset string
	Mode
	A Selection
	B Selection
}

// Result is a renderer-ready graph.
type Result struct {
	ID          string          `json:"id"`
	Dataset     string          `json:"dataset"`
	Mode        Mode            `json:"mode"`
	Selection   Selection       `json:"selection"`
	Compare     *Selection      `json:"compare,omitempty"`
	Nodes       []NodeElement   `json:"nodes"`
	Edges       []EdgeElement   `json:"edges"`
	StyleRules  []StyleRule     `json:"style_rules"`
	Legend      []LegendElement `json:"legend"`
	LegendStyle []StyleRule     `json:"legend_style"`
	WeightRange *Range          `json:"weight_range,omitempty"`
	// WeightBinLabels are slider tick labels only.
	WeightBinLabels []string `json:"weight_bin_labels,omitempty"`
	Leader          string   `json:"leader,omitempty"`
	// Normalised is set when frequency weights are percentages rather than
	// log2 counts.
	Normalised bool `json:"normalised,omitempty"`
}

// Empty reports whether the result has no nodes.
func (r Result) Empty() bool {
	return len(r.Nodes) == 0
}

// Comparison reports whether the result is a diff of two selections.
func (r Result) Comparison() bool {
	return r.Compare != nil
}

// ComputeGraph extracts, styles and assembles the graph of one selection.
func (c *Client) ComputeGraph(ctx context.Context, req GraphRequest) (Result, error) {
	if !IsValidSelection(req.NodeKind, req.ColorMode, req.Team) {
		return Result{}, fmt.Errorf("%w: %s nodes coloured by %s for team %q",
			ErrInvalidSelection, req.NodeKind, req.ColorMode, req.Team)
	}

	ds, err := c.reader.Read(ctx, req.Dataset)
	if err != nil {
		return Result{}, err
	}

	opts := Options{
		Mode:                    req.Mode,
		ShowStats:               c.showStats,
		Normalise:               c.normalise,
		ResetOnSequenceBoundary: c.resetOnSequenceBoundary,
	}
	nodes, edges := extract(ds, req.Selection, opts)

	res, err := c.assemble(ds, req.Mode, nodes, edges, false)
	if err != nil {
		return Result{}, err
	}
	res.Dataset = req.Dataset
	res.Selection = req.Selection
	res.Leader = nodes.Leader

	logger.Debug("[Graph] Computed graph",
		"dataset", req.Dataset,
		"team", req.Team,
		"meeting", req.Meeting,
		"nodes", len(res.Nodes),
		"edges", len(res.Edges),
	)

	return res, nil
}

// ComputeComparison extracts both selections independently and assembles
// the difference B - A.
func (c *Client) ComputeComparison(ctx context.Context, req ComparisonRequest) (Result, error) {
	for _, sel := range []Selection{req.A, req.B} {
		if !IsValidSelection(req.NodeKind, req.ColorMode, sel.Team) {
			return Result{}, fmt.Errorf("%w: %s nodes coloured by %s for team %q",
				ErrInvalidSelection, req.NodeKind, req.ColorMode, sel.Team)
		}
	}

	ds, err := c.reader.Read(ctx, req.Dataset)
	if err != nil {
		return Result{}, err
	}

	opts := Options{
		Mode:                    req.Mode,
		ResetOnSequenceBoundary: c.resetOnSequenceBoundary,
	}
	nodesA, edgesA := extract(ds, req.A, opts)
	nodesB, edgesB := extract(ds, req.B, opts)

	nodes := DiffNodes(nodesA, nodesB)
	edges := DiffEdges(edgesA, edgesB, req.EdgeMode)

	res, err := c.assemble(ds, req.Mode, nodes, edges, true)
	if err != nil {
		return Result{}, err
	}
	res.Dataset = req.Dataset
	res.Selection = req.A
	compare := req.B
	res.Compare = &compare

	logger.Debug("[Graph] Computed comparison",
		"dataset", req.Dataset,
		"a", req.A.Team+"/"+req.A.Meeting,
		"b", req.B.Team+"/"+req.B.Meeting,
		"nodes", len(res.Nodes),
		"edges", len(res.Edges),
	)

	return res, nil
}

func (c *Client) assemble(ds *common.Dataset, mode Mode, nodes NodeSet, edges EdgeSet, comparison bool) (Result, error) {
	id, err := gonanoid.New()
	if err != nil {
		return Result{}, fmt.Errorf("failed to generate result id: %w", err)
	}

	keys := ColorKeys(ds, nodes, mode.ColorMode)
	colors := AssignColors(keys)
	rules := StyleRules(keys, colors, nodes.SizeMap, edges.SizeMap, comparison)

	c.rndMu.Lock()
	nodeElements := AssembleNodes(nodes, mode, c.rnd)
	c.rndMu.Unlock()

	var nodeRules []StyleRule
	for _, r := range rules {
		if strings.HasPrefix(r.Selector, ".node") {
			nodeRules = append(nodeRules, r)
		}
	}

	return Result{
		ID:              id,
		Mode:            mode,
		Nodes:           nodeElements,
		Edges:           AssembleEdges(edges, mode),
		StyleRules:      append(rules, BaseStylesheet()...),
		Legend:          Legend(keys),
		LegendStyle:     append(nodeRules, LegendStylesheet()...),
		WeightRange:     edges.WeightRange,
		WeightBinLabels: edges.WeightBins,
		Normalised:      edges.Normalised,
	}, nil
}

// ListTeams returns the teams of a dataset with All first.
func (c *Client) ListTeams(ctx context.Context, datasetID string) ([]string, error) {
	ds, err := c.reader.Read(ctx, datasetID)
	if err != nil {
		return nil, err
	}
	return ds.Teams, nil
}

// ListGroups returns the team group names of a dataset per grouping
// variable, sorted.
func (c *Client) ListGroups(ctx context.Context, datasetID string) (map[string][]string, error) {
	ds, err := c.reader.Read(ctx, datasetID)
	if err != nil {
		return nil, err
	}
	groups := make(map[string][]string, len(ds.Groups))
	for variable, named := range ds.Groups {
		names := make([]string, 0, len(named))
		for name := range named {
			names = append(names, name)
		}
		sort.Strings(names)
		groups[variable] = names
	}
	return groups, nil
}

// ListMeetingsForTeam returns the meetings of a team with All first.
func (c *Client) ListMeetingsForTeam(ctx context.Context, datasetID, team string) ([]string, error) {
	ds, err := c.reader.Read(ctx, datasetID)
	if err != nil {
		return nil, err
	}
	return eventlog.MeetingsForTeam(ds, team), nil
}
