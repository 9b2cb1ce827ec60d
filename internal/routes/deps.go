package routes

import (
	"net/http"

	"github.com/dukerupert/addressdata/internal/handler"
)

// AddressDeps contains dependencies for the address API routes
type AddressDeps struct {
	Handler *handler.AddressHandler
}

// OpsDeps contains dependencies for operational endpoints
type OpsDeps struct {
	// MetricsHandler serves Prometheus metrics. Nil disables /metrics.
	MetricsHandler http.Handler
}
