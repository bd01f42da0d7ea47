package routes

import (
	"net/http"

	"teamgraph/internal/server/middleware"
	"teamgraph/pkg/graph"

	"github.com/labstack/echo/v4"
)

func GetCurrentGraphHandler(c echo.Context) error {
	session := c.(*middleware.AppContext).App.Session
	current, ok := session.Current()
	if !ok {
		return c.JSON(http.StatusNotFound, errorResponse{Error: "No graph computed yet"})
	}
	return c.JSON(http.StatusOK, current)
}

// FilterCurrentGraphHandler narrows the edges of the session graph to a
// weight range and to the edges of the selected nodes. Frequency graphs take
// the bounds as transition counts.
func FilterCurrentGraphHandler(c echo.Context) error {
	type filterBody struct {
		MinWeight *float64 `json:"min_weight"`
		MaxWeight *float64 `json:"max_weight"`
		Nodes     []string `json:"nodes" validate:"dive,required"`
	}

	data := new(filterBody)
	if err := c.Bind(data); err != nil {
		return badRequest(c)
	}
	if err := c.Validate(data); err != nil {
		return badRequest(c)
	}
	if data.MinWeight != nil && data.MaxWeight != nil && *data.MinWeight > *data.MaxWeight {
		return badRequest(c)
	}

	session := c.(*middleware.AppContext).App.Session
	current, ok := session.Current()
	if !ok {
		return c.JSON(http.StatusNotFound, errorResponse{Error: "No graph computed yet"})
	}

	view := current.Filter(graph.ViewFilter{
		MinWeight: data.MinWeight,
		MaxWeight: data.MaxWeight,
		Nodes:     data.Nodes,
	})
	return c.JSON(http.StatusOK, view)
}
