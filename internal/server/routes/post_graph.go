package routes

import (
	"context"
	"net/http"
	"time"

	"teamgraph/internal/server/middleware"
	"teamgraph/pkg/graph"

	"github.com/labstack/echo/v4"
)

type modeBody struct {
	NodeKind    string `json:"node_kind" validate:"required,oneof=Behaviours Participants"`
	EdgeMode    string `json:"edge_mode" validate:"required,oneof=Frequency Probability"`
	ColorMode   string `json:"color_mode" validate:"required,oneof=Behaviours Participants"`
	ColorSource string `json:"color_source" validate:"omitempty,oneof=Source Target"`
}

func (b modeBody) mode() (graph.Mode, error) {
	var (
		m   graph.Mode
		err error
	)
	if m.NodeKind, err = graph.ParseNodeKind(b.NodeKind); err != nil {
		return m, err
	}
	if m.EdgeMode, err = graph.ParseEdgeMode(b.EdgeMode); err != nil {
		return m, err
	}
	if m.ColorMode, err = graph.ParseColorMode(b.ColorMode); err != nil {
		return m, err
	}
	if b.ColorSource != "" {
		if m.ColorSource, err = graph.ParseColorSource(b.ColorSource); err != nil {
			return m, err
		}
	}
	return m, nil
}

type selectionBody struct {
	Team    string `json:"team" validate:"required"`
	Meeting string `json:"meeting" validate:"required"`
}

func (b selectionBody) selection() graph.Selection {
	return graph.Selection{Team: b.Team, Meeting: b.Meeting}
}

// graphResponse carries the session graph after an update. Updated is false
// when the request was rejected and the previous graph was kept.
type graphResponse struct {
	Updated bool          `json:"updated"`
	Reason  string        `json:"reason,omitempty"`
	Graph   *graph.Result `json:"graph"`
}

// PostGraphHandler recomputes the graph of one selection and makes it the
// session graph.
func PostGraphHandler(c echo.Context) error {
	type postGraphBody struct {
		Dataset string `json:"dataset" validate:"required"`
		modeBody
		selectionBody
	}

	data := new(postGraphBody)
	if err := c.Bind(data); err != nil {
		return badRequest(c)
	}
	if err := c.Validate(data); err != nil {
		return badRequest(c)
	}
	mode, err := data.mode()
	if err != nil {
		return badRequest(c)
	}

	req := graph.GraphRequest{Dataset: data.Dataset, Mode: mode, Selection: data.selection()}
	return update(c, "graph", func(ctx context.Context, s *graph.Session) (graph.Result, error) {
		return s.Update(ctx, req)
	})
}

// PostComparisonHandler diffs two selections (B minus A) and makes the
// difference the session graph.
func PostComparisonHandler(c echo.Context) error {
	type postComparisonBody struct {
		Dataset string `json:"dataset" validate:"required"`
		modeBody
		A selectionBody `json:"a"`
		B selectionBody `json:"b"`
	}

	data := new(postComparisonBody)
	if err := c.Bind(data); err != nil {
		return badRequest(c)
	}
	if err := c.Validate(data); err != nil {
		return badRequest(c)
	}
	mode, err := data.mode()
	if err != nil {
		return badRequest(c)
	}

	req := graph.ComparisonRequest{
		Dataset: data.Dataset,
		Mode:    mode,
		A:       data.A.selection(),
		B:       data.B.selection(),
	}
	return update(c, "comparison", func(ctx context.Context, s *graph.Session) (graph.Result, error) {
		return s.Compare(ctx, req)
	})
}

func update(c echo.Context, kind string, run func(context.Context, *graph.Session) (graph.Result, error)) error {
	app := c.(*middleware.AppContext).App

	start := time.Now()
	res, err := run(c.Request().Context(), app.Session)
	if app.Metrics != nil {
		app.Metrics.RecordComputation(kind, outcomeOf(err), time.Since(start), len(res.Nodes), len(res.Edges))
	}

	if err == nil {
		return c.JSON(http.StatusOK, graphResponse{Updated: true, Graph: &res})
	}
	if !retained(err) {
		return loadError(c, err)
	}

	resp := graphResponse{Reason: err.Error()}
	if current, ok := app.Session.Current(); ok {
		resp.Graph = &current
	}
	return c.JSON(http.StatusOK, resp)
}
