package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/dukerupert/addressdata/internal/address"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestErrorCodeToHTTPStatus(t *testing.T) {
	tests := []struct {
		code     string
		expected int
	}{
		{EINVALID, http.StatusBadRequest},
		{ENOTFOUND, http.StatusNotFound},
		{EINTERNAL, http.StatusInternalServerError},
		{"unknown_code", http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.code, func(t *testing.T) {
			assert.Equal(t, tt.expected, ErrorCodeToHTTPStatus(tt.code))
		})
	}
}

func TestWriteError_JSON(t *testing.T) {
	w := httptest.NewRecorder()

	writeError(w, ENOTFOUND, "Address not found")

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "application/json", w.Header().Get("Content-Type"))

	var body ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, ENOTFOUND, body.Error)
	assert.Equal(t, "Address not found", body.Message)
	assert.Nil(t, body.Fields)
}

func TestWriteCodedError(t *testing.T) {
	tests := []struct {
		name           string
		err            error
		expectedStatus int
		expectedBody   ErrorResponse
	}{
		{
			name:           "unknown field name",
			err:            fmt.Errorf("%w: %q", address.ErrUnknownField, "country"),
			expectedStatus: http.StatusBadRequest,
			expectedBody:   ErrorResponse{Error: EINVALID, Message: "Unknown address field"},
		},
		{
			name:           "internal coded error is hidden",
			err:            address.ErrWrongStorageKind,
			expectedStatus: http.StatusInternalServerError,
			expectedBody:   ErrorResponse{Error: EINTERNAL, Message: internalMessage},
		},
		{
			name:           "plain error is hidden",
			err:            errors.New("pq: relation does not exist"),
			expectedStatus: http.StatusInternalServerError,
			expectedBody:   ErrorResponse{Error: EINTERNAL, Message: internalMessage},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()

			writeCodedError(w, tt.err)

			assert.Equal(t, tt.expectedStatus, w.Code)
			var body ErrorResponse
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
			assert.Equal(t, tt.expectedBody, body)
		})
	}
}
