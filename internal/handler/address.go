package handler

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"reflect"
	"strings"

	"github.com/dukerupert/addressdata/internal/address"
	"github.com/dukerupert/addressdata/internal/postgres"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

// AddressRepository is the storage used by AddressHandler.
// *postgres.AddressStore implements it.
type AddressRepository interface {
	Get(ctx context.Context, id uuid.UUID) (address.Address, error)
	Save(ctx context.Context, id uuid.UUID, addr address.Address) error
	// SaveField writes field f of addr without touching the other fields.
	SaveField(ctx context.Context, id uuid.UUID, addr address.Address, f address.Field) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// FieldObserver records single-field reads and writes.
type FieldObserver interface {
	ObserveFieldAccess(op, field, kind string)
}

// AddressHandler serves the /addresses JSON API.
type AddressHandler struct {
	repo      AddressRepository
	validator address.Validator
	observer  FieldObserver
	validate  *validator.Validate
	logger    *slog.Logger
}

// NewAddressHandler creates a new address handler
func NewAddressHandler(repo AddressRepository, v address.Validator, observer FieldObserver, logger *slog.Logger) *AddressHandler {
	validate := validator.New(validator.WithRequiredStructEnabled())
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	return &AddressHandler{
		repo:      repo,
		validator: v,
		observer:  observer,
		validate:  validate,
		logger:    logger,
	}
}

// addressRequest is the body of PUT /addresses/{id}.
type addressRequest struct {
	RegionCode         string   `json:"region_code" validate:"max=8"`
	AdministrativeArea string   `json:"admin_area" validate:"max=256"`
	Locality           string   `json:"locality" validate:"max=256"`
	DependentLocality  string   `json:"dependent_locality" validate:"max=256"`
	SortingCode        string   `json:"sorting_code" validate:"max=64"`
	PostalCode         string   `json:"postal_code" validate:"max=64"`
	AddressLines       []string `json:"address_lines" validate:"max=16,dive,max=256"`
	Recipient          string   `json:"recipient" validate:"max=256"`
}

func (r addressRequest) toAddress() address.Address {
	a := address.Address{
		RegionCode:         r.RegionCode,
		AdministrativeArea: r.AdministrativeArea,
		Locality:           r.Locality,
		DependentLocality:  r.DependentLocality,
		SortingCode:        r.SortingCode,
		PostalCode:         r.PostalCode,
		Recipient:          r.Recipient,
	}
	a.SetAddressLines(r.AddressLines...)
	return a
}

// fieldRequest is the body of PUT /addresses/{id}/fields/{field}.
// Value is used for scalar fields, Lines for the street address.
type fieldRequest struct {
	Value *string  `json:"value" validate:"omitempty,max=256"`
	Lines []string `json:"lines" validate:"omitempty,max=16,dive,max=256"`
}

type addressResponse struct {
	ID string `json:"id"`
	address.Address
	EmptyFields []string `json:"empty_fields"`
}

type fieldResponse struct {
	Field string    `json:"field"`
	Kind  string    `json:"kind"`
	Value *string   `json:"value,omitempty"`
	Lines *[]string `json:"lines,omitempty"`
	Empty bool      `json:"empty"`
}

func newAddressResponse(id uuid.UUID, a address.Address) addressResponse {
	a = a.Clone()
	if a.AddressLines == nil {
		a.AddressLines = []string{}
	}
	empty := []string{}
	for _, f := range a.EmptyFields() {
		empty = append(empty, f.String())
	}
	return addressResponse{ID: id.String(), Address: a, EmptyFields: empty}
}

func newFieldResponse(a address.Address, f address.Field) fieldResponse {
	resp := fieldResponse{
		Field: f.String(),
		Kind:  address.KindOf(f).String(),
		Empty: a.IsFieldEmpty(f),
	}
	if address.IsRepeated(f) {
		lines := a.RepeatedValue(f)
		if lines == nil {
			lines = []string{}
		}
		resp.Lines = &lines
	} else {
		value := a.Value(f)
		resp.Value = &value
	}
	return resp
}

// Get handles GET /addresses/{id}
func (h *AddressHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := h.parseID(w, r)
	if !ok {
		return
	}

	addr, ok := h.load(w, r, id, "address.get")
	if !ok {
		return
	}

	writeJSON(w, http.StatusOK, newAddressResponse(id, addr))
}

// Put handles PUT /addresses/{id}
func (h *AddressHandler) Put(w http.ResponseWriter, r *http.Request) {
	id, ok := h.parseID(w, r)
	if !ok {
		return
	}

	var req addressRequest
	if !h.decode(w, r, &req) {
		return
	}

	addr := req.toAddress()
	if err := h.repo.Save(r.Context(), id, addr); err != nil {
		writeInternalError(w, r, h.logger, "address.put", err)
		return
	}

	h.logger.DebugContext(r.Context(), "address saved", "id", id, "empty_fields", len(addr.EmptyFields()))
	writeJSON(w, http.StatusOK, newAddressResponse(id, addr))
}

// Delete handles DELETE /addresses/{id}
func (h *AddressHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := h.parseID(w, r)
	if !ok {
		return
	}

	if err := h.repo.Delete(r.Context(), id); err != nil {
		if errors.Is(err, postgres.ErrAddressNotFound) {
			writeError(w, ENOTFOUND, "Address not found")
			return
		}
		writeInternalError(w, r, h.logger, "address.delete", err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// GetField handles GET /addresses/{id}/fields/{field}
func (h *AddressHandler) GetField(w http.ResponseWriter, r *http.Request) {
	id, ok := h.parseID(w, r)
	if !ok {
		return
	}
	field, ok := h.parseField(w, r)
	if !ok {
		return
	}

	addr, ok := h.load(w, r, id, "address.get_field")
	if !ok {
		return
	}

	h.observe("get", field)
	writeJSON(w, http.StatusOK, newFieldResponse(addr, field))
}

// PutField handles PUT /addresses/{id}/fields/{field}
func (h *AddressHandler) PutField(w http.ResponseWriter, r *http.Request) {
	id, ok := h.parseID(w, r)
	if !ok {
		return
	}
	field, ok := h.parseField(w, r)
	if !ok {
		return
	}

	var req fieldRequest
	if !h.decode(w, r, &req) {
		return
	}

	// Only the target field is populated and written. The rest of the stored
	// record is never read here, so concurrent writes to other fields survive.
	var addr address.Address
	if address.IsRepeated(field) {
		if req.Lines == nil || req.Value != nil {
			writeError(w, EINVALID, fmt.Sprintf("Field %s takes \"lines\"", field))
			return
		}
		addr.SetAddressLines(req.Lines...)
	} else {
		if req.Value == nil || req.Lines != nil {
			writeError(w, EINVALID, fmt.Sprintf("Field %s takes \"value\"", field))
			return
		}
		addr.SetValue(field, *req.Value)
	}

	if err := h.repo.SaveField(r.Context(), id, addr, field); err != nil {
		if errors.Is(err, postgres.ErrAddressNotFound) {
			writeError(w, ENOTFOUND, "Address not found")
			return
		}
		writeInternalError(w, r, h.logger, "address.put_field", err)
		return
	}

	h.observe("set", field)
	writeJSON(w, http.StatusOK, newFieldResponse(addr, field))
}

// Validate handles POST /addresses/{id}/validate
func (h *AddressHandler) Validate(w http.ResponseWriter, r *http.Request) {
	id, ok := h.parseID(w, r)
	if !ok {
		return
	}

	addr, ok := h.load(w, r, id, "address.validate")
	if !ok {
		return
	}

	result, err := h.validator.Validate(r.Context(), addr)
	if err != nil {
		writeInternalError(w, r, h.logger, "address.validate", err)
		return
	}

	writeJSON(w, http.StatusOK, result)
}

// =============================================================================
// Helper Functions
// =============================================================================

func (h *AddressHandler) parseID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		writeError(w, EINVALID, "Invalid address ID")
		return uuid.Nil, false
	}
	return id, true
}

func (h *AddressHandler) parseField(w http.ResponseWriter, r *http.Request) (address.Field, bool) {
	field, err := address.ParseField(r.PathValue("field"))
	if err != nil {
		writeCodedError(w, err)
		return 0, false
	}
	return field, true
}

func (h *AddressHandler) load(w http.ResponseWriter, r *http.Request, id uuid.UUID, op string) (address.Address, bool) {
	addr, err := h.repo.Get(r.Context(), id)
	if err != nil {
		if errors.Is(err, postgres.ErrAddressNotFound) {
			writeError(w, ENOTFOUND, "Address not found")
			return address.Address{}, false
		}
		writeInternalError(w, r, h.logger, op, err)
		return address.Address{}, false
	}
	return addr, true
}

// decode reads a JSON body into dst and runs struct validation on it.
func (h *AddressHandler) decode(w http.ResponseWriter, r *http.Request, dst any) bool {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		writeError(w, EINVALID, "Invalid JSON body")
		return false
	}

	if err := h.validate.StructCtx(r.Context(), dst); err != nil {
		var verrs validator.ValidationErrors
		if !errors.As(err, &verrs) {
			writeInternalError(w, r, h.logger, "address.decode", err)
			return false
		}
		fields := make(map[string]string, len(verrs))
		for _, fe := range verrs {
			fields[fe.Field()] = fmt.Sprintf("failed %s=%s", fe.Tag(), fe.Param())
		}
		writeJSON(w, http.StatusBadRequest, ErrorResponse{
			Error:   EINVALID,
			Message: "Request validation failed",
			Fields:  fields,
		})
		return false
	}
	return true
}

func (h *AddressHandler) observe(op string, f address.Field) {
	if h.observer != nil {
		h.observer.ObserveFieldAccess(op, f.String(), address.KindOf(f).String())
	}
}
