package routes

import (
	"net/http"

	"teamgraph/pkg/graph"

	"github.com/labstack/echo/v4"
)

// ValidateSelectionHandler reports whether a node kind, colour mode and team
// can be combined, so the dashboard can disable invalid choices.
func ValidateSelectionHandler(c echo.Context) error {
	type validateSelectionBody struct {
		NodeKind  string `json:"node_kind" validate:"required,oneof=Behaviours Participants"`
		ColorMode string `json:"color_mode" validate:"required,oneof=Behaviours Participants"`
		Team      string `json:"team" validate:"required"`
	}
	type validateSelectionResponse struct {
		Valid bool `json:"valid"`
	}

	data := new(validateSelectionBody)
	if err := c.Bind(data); err != nil {
		return badRequest(c)
	}
	if err := c.Validate(data); err != nil {
		return badRequest(c)
	}

	kind, err := graph.ParseNodeKind(data.NodeKind)
	if err != nil {
		return badRequest(c)
	}
	colorMode, err := graph.ParseColorMode(data.ColorMode)
	if err != nil {
		return badRequest(c)
	}

	return c.JSON(http.StatusOK, validateSelectionResponse{
		Valid: graph.IsValidSelection(kind, colorMode, data.Team),
	})
}
