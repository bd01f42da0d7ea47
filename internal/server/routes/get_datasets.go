package routes

import (
	"net/http"

	"teamgraph/internal/server/middleware"

	"github.com/labstack/echo/v4"
)

type datasetParams struct {
	Dataset string `param:"dataset" validate:"required"`
}

// GetDatasetsHandler lists the datasets offered to the dashboard.
func GetDatasetsHandler(c echo.Context) error {
	app := c.(*middleware.AppContext).App
	return c.JSON(http.StatusOK, app.Catalog)
}

func GetTeamsHandler(c echo.Context) error {
	type getTeamsResponse struct {
		Teams []string `json:"teams"`
	}

	params := new(datasetParams)
	if err := c.Bind(params); err != nil {
		return badRequest(c)
	}
	if err := c.Validate(params); err != nil {
		return badRequest(c)
	}

	client := c.(*middleware.AppContext).App.Client
	teams, err := client.ListTeams(c.Request().Context(), params.Dataset)
	if err != nil {
		return loadError(c, err)
	}

	return c.JSON(http.StatusOK, getTeamsResponse{Teams: teams})
}

func GetGroupsHandler(c echo.Context) error {
	type getGroupsResponse struct {
		Groups map[string][]string `json:"groups"`
	}

	params := new(datasetParams)
	if err := c.Bind(params); err != nil {
		return badRequest(c)
	}
	if err := c.Validate(params); err != nil {
		return badRequest(c)
	}

	client := c.(*middleware.AppContext).App.Client
	groups, err := client.ListGroups(c.Request().Context(), params.Dataset)
	if err != nil {
		return loadError(c, err)
	}

	return c.JSON(http.StatusOK, getGroupsResponse{Groups: groups})
}

// GetMeetingsHandler lists the meetings of the team given in the query, with
// "All" first. Team groups are addressed as "variable/group".
func GetMeetingsHandler(c echo.Context) error {
	type getMeetingsParams struct {
		Dataset string `param:"dataset" validate:"required"`
		Team    string `query:"team"`
	}
	type getMeetingsResponse struct {
		Meetings []string `json:"meetings"`
	}

	params := new(getMeetingsParams)
	if err := c.Bind(params); err != nil {
		return badRequest(c)
	}
	if err := c.Validate(params); err != nil {
		return badRequest(c)
	}

	client := c.(*middleware.AppContext).App.Client
	meetings, err := client.ListMeetingsForTeam(c.Request().Context(), params.Dataset, params.Team)
	if err != nil {
		return loadError(c, err)
	}

	return c.JSON(http.StatusOK, getMeetingsResponse{Meetings: meetings})
}
