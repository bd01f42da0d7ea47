package middleware

import (
	"teamgraph/internal/timing"
	"teamgraph/pkg/eventlog"
	"teamgraph/pkg/graph"

	"github.com/labstack/echo/v4"
)

// App carries the shared services of the dashboard API. Session holds the
// one analyst graph the dashboard works on.
type App struct {
	Client  *graph.Client
	Session *graph.Session
	Catalog eventlog.Catalog
	Metrics *timing.Registry
}

type AppContext struct {
	echo.Context
	App *App
}

func AppContextMiddleware(app *App) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			cc := &AppContext{c, app}
			return next(cc)
		}
	}
}
