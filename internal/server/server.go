package server

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	mid "teamgraph/internal/server/middleware"
	"teamgraph/internal/storage"
	"teamgraph/internal/timing"
	"teamgraph/internal/util"
	"teamgraph/pkg/eventlog"
	"teamgraph/pkg/graph"
	"teamgraph/pkg/logger"

	"github.com/go-playground/validator"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
)

type CustomValidator struct {
	validator *validator.Validate
}

func (cv *CustomValidator) Validate(i any) error {
	if err := cv.validator.Struct(i); err != nil {
		return err
	}
	return nil
}

// requestLogger logs every request through the package logger and records
// it on reg under its route template.
func requestLogger(reg *timing.Registry) echo.MiddlewareFunc {
	return middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogMethod:    true,
		LogURI:       true,
		LogRoutePath: true,
		LogStatus:    true,
		LogLatency:   true,
		LogError:     true,
		HandleError:  true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			if reg != nil {
				reg.RecordHTTPRequest(v.Method, v.RoutePath, strconv.Itoa(v.Status), v.Latency)
			}
			if v.Error != nil {
				logger.Error("[HTTP] Request failed", "method", v.Method, "uri", v.URI, "status", v.Status, "err", v.Error)
				return nil
			}
			logger.Debug("[HTTP] Request", "method", v.Method, "uri", v.URI, "status", v.Status, "latency", v.Latency)
			return nil
		},
	})
}

// New builds the echo instance serving app.
func New(app *mid.App) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = &CustomValidator{validator: validator.New()}

	e.Use(requestLogger(app.Metrics))
	e.Use(middleware.Recover())
	e.Use(middleware.CORS())
	e.Use(middleware.BodyLimit("1M"))

	RegisterRoutes(e, app)

	return e
}

// NewApp wires the analysis services from the environment.
func NewApp(ctx context.Context) (*mid.App, error) {
	src, err := storage.Open(ctx, storage.ConfigFromEnv())
	if err != nil {
		return nil, err
	}

	catalog, err := eventlog.LoadCatalog(util.GetEnv("DATASET_CATALOG"))
	if err != nil {
		return nil, err
	}
	if util.GetEnvBool("DATASET_DISCOVERY", false) {
		ids, err := src.Datasets(ctx)
		if err != nil {
			logger.Warn("Failed to discover datasets", "err", err)
		} else {
			catalog = catalog.Merge(ids...)
		}
	}

	client := graph.NewClient(graph.NewClientParams{
		Reader:                  eventlog.NewReader(src.Loader),
		ShowStats:               util.GetEnvBool("SHOW_STATS", true),
		Normalise:               util.GetEnvBool("NORMALISE", false),
		ResetOnSequenceBoundary: util.GetEnvBool("RESET_ON_SEQUENCE_BOUNDARY", false),
	})

	return &mid.App{
		Client:  client,
		Session: graph.NewSession(client),
		Catalog: catalog,
		Metrics: timing.DefaultRegistry(),
	}, nil
}

func Init() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	app, err := NewApp(ctx)
	if err != nil {
		logger.Fatal("Failed to set up services", "err", err)
	}
	e := New(app)

	go func() {
		port := util.GetEnvString("PORT", "8080")
		logger.Info("Starting server", "port", port, "datasets", len(app.Catalog.Datasets))
		if err := e.Start(":" + port); err != nil && err != http.ErrServerClosed {
			logger.Fatal("Failed shutting down server", "err", err)
		}
	}()

	<-ctx.Done()
	ctx, cancel := context.WithTimeout(context.Background(), util.GetEnvDuration("SHUTDOWN_TIMEOUT", 10*time.Second))
	defer cancel()
	if err := e.Shutdown(ctx); err != nil {
		logger.Error("Failed to shutdown server", "err", err)
	}
}
