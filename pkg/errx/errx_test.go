package errx

import (
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistryRoundTrip(t *testing.T) {
	reg := NewRegistry("WIDGET")
	code := reg.Register("NOT_FOUND", TypeNotFound, http.StatusNotFound, "Widget not found")

	err := reg.New(code)
	assert.Equal(t, "WIDGET_NOT_FOUND", err.Code.String())
	assert.Equal(t, TypeNotFound, err.Type)
	assert.Equal(t, http.StatusNotFound, err.HTTPStatus)
	assert.Equal(t, "[WIDGET_NOT_FOUND] Widget not found", err.Error())
}

func TestNewWithCauseUnwraps(t *testing.T) {
	reg := NewRegistry("WIDGET")
	code := reg.Register("STORE_FAILED", TypeInternal, http.StatusInternalServerError, "Store failed")

	cause := errors.New("connection refused")
	err := reg.NewWithCause(code, cause)

	require.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), "connection refused")
}

func TestDetailsAndHTTPResponse(t *testing.T) {
	reg := NewRegistry("WIDGET")
	code := reg.Register("INVALID", TypeValidation, http.StatusBadRequest, "Invalid widget")

	err := reg.New(code).
		WithDetail("field", "name").
		WithDetails(map[string]any{"length": 0})

	resp := err.ToHTTPResponse()
	assert.Equal(t, "WIDGET_INVALID", resp.Code)
	assert.Equal(t, TypeValidation, resp.Type)
	assert.Equal(t, "name", resp.Details["field"])
	assert.Equal(t, 0, resp.Details["length"])
}
