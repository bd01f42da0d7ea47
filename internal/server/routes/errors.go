package routes

import (
	"errors"
	"net/http"

	"teamgraph/internal/timing"
	"teamgraph/pkg/eventlog"
	"teamgraph/pkg/graph"
	"teamgraph/pkg/logger"

	"github.com/labstack/echo/v4"
)

type errorResponse struct {
	Error string `json:"error"`
}

// badRequest answers bind and validation failures.
func badRequest(c echo.Context) error {
	return c.JSON(http.StatusBadRequest, errorResponse{Error: "Invalid request body"})
}

// loadError maps dataset loading failures onto status codes.
func loadError(c echo.Context, err error) error {
	var schemaErr *eventlog.SchemaError
	switch {
	case errors.Is(err, eventlog.ErrDatasetNotFound):
		return c.JSON(http.StatusNotFound, errorResponse{Error: err.Error()})
	case errors.As(err, &schemaErr):
		return c.JSON(http.StatusUnprocessableEntity, errorResponse{Error: schemaErr.Error()})
	default:
		logger.Error("[Routes] Failed to load dataset", "err", err)
		return c.JSON(http.StatusInternalServerError, errorResponse{Error: "Internal server error"})
	}
}

// outcomeOf classifies a computation error for metrics.
func outcomeOf(err error) string {
	switch {
	case err == nil:
		return timing.OutcomeSuccess
	case errors.Is(err, graph.ErrInvalidSelection):
		return timing.OutcomeRejected
	case errors.Is(err, graph.ErrEmptyResult):
		return timing.OutcomeEmpty
	default:
		return timing.OutcomeError
	}
}

// retained reports whether err leaves the session graph in place without
// being a request failure.
func retained(err error) bool {
	return errors.Is(err, graph.ErrInvalidSelection) || errors.Is(err, graph.ErrEmptyResult)
}
