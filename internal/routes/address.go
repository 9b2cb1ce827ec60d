package routes

import (
	"github.com/dukerupert/addressdata/internal/router"
)

// RegisterAddressRoutes registers the address record API.
func RegisterAddressRoutes(r *router.Router, deps AddressDeps) {
	h := deps.Handler

	r.Get("/addresses/{id}", h.Get)
	r.Put("/addresses/{id}", h.Put)
	r.Delete("/addresses/{id}", h.Delete)
	r.Post("/addresses/{id}/validate", h.Validate)

	// Single-field access, dispatched on the field's storage kind
	r.Get("/addresses/{id}/fields/{field}", h.GetField)
	r.Put("/addresses/{id}/fields/{field}", h.PutField)
}
