package routes

import (
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/dukerupert/addressdata/internal/address"
	"github.com/dukerupert/addressdata/internal/handler"
	"github.com/dukerupert/addressdata/internal/router"
	"github.com/stretchr/testify/assert"
)

func TestRegisterOpsRoutes_Health(t *testing.T) {
	r := router.New()
	RegisterOpsRoutes(r, OpsDeps{})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "OK", w.Body.String())
}

func TestRegisterOpsRoutes_MetricsDisabled(t *testing.T) {
	r := router.New()
	RegisterOpsRoutes(r, OpsDeps{})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestRegisterAddressRoutes_RejectsBadID(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	h := handler.NewAddressHandler(nil, address.NewMockValidator(), nil, logger)

	r := router.New()
	RegisterAddressRoutes(r, AddressDeps{Handler: h})

	for _, tc := range []struct{ method, path string }{
		{http.MethodGet, "/addresses/nope"},
		{http.MethodDelete, "/addresses/nope"},
		{http.MethodPost, "/addresses/nope/validate"},
		{http.MethodGet, "/addresses/nope/fields/locality"},
	} {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(tc.method, tc.path, nil))
		assert.Equal(t, http.StatusBadRequest, w.Code, tc.method+" "+tc.path)
	}
}
