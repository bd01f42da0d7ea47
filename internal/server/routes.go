package server

import (
	"net/http"

	"teamgraph/internal/server/middleware"
	"teamgraph/internal/server/routes"

	"github.com/labstack/echo/v4"
)

func RegisterRoutes(e *echo.Echo, app *middleware.App) {
	// Health check route
	e.GET("/health", func(c echo.Context) error {
		return c.String(http.StatusOK, "OK")
	})
	if app.Metrics != nil {
		e.GET("/metrics", echo.WrapHandler(app.Metrics.Handler()))
	}

	apiRoutes := e.Group("/api", middleware.AppContextMiddleware(app))

	// Dataset routes
	apiRoutes.GET("/datasets", routes.GetDatasetsHandler)
	apiRoutes.GET("/datasets/:dataset/teams", routes.GetTeamsHandler)
	apiRoutes.GET("/datasets/:dataset/groups", routes.GetGroupsHandler)
	apiRoutes.GET("/datasets/:dataset/meetings", routes.GetMeetingsHandler)

	// Graph routes
	apiRoutes.POST("/selection/validate", routes.ValidateSelectionHandler)
	apiRoutes.POST("/graph", routes.PostGraphHandler)
	apiRoutes.POST("/comparison", routes.PostComparisonHandler)
	apiRoutes.GET("/graph/current", routes.GetCurrentGraphHandler)
	apiRoutes.POST("/graph/current/filter", routes.FilterCurrentGraphHandler)
}
