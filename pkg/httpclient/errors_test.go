package httpclient

import (
	"errors"
	"io"
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/jengamart/storefront/pkg/errors"
)

func fakeResponse(status int, body string) *http.Response {
	return &http.Response{
		StatusCode: status,
		Body:       io.NopCloser(strings.NewReader(body)),
	}
}

func TestParseResponseError_NotFound(t *testing.T) {
	resp := fakeResponse(http.StatusNotFound,
		`{"error":{"code":"NOT_FOUND","message":"cart not found"}}`)

	err := ParseResponseError(resp, "backend")

	require.Error(t, err)
	assert.True(t, errors.Is(err, apperrors.ErrNotFound))
}

func TestParseResponseError_MappedStatuses(t *testing.T) {
	tests := []struct {
		status   int
		code     string
		sentinel error
	}{
		{http.StatusBadRequest, "INVALID_INPUT", apperrors.ErrInvalidInput},
		{http.StatusUnauthorized, "UNAUTHORIZED", apperrors.ErrUnauthorized},
		{http.StatusForbidden, "FORBIDDEN", apperrors.ErrForbidden},
		{http.StatusConflict, "CONFLICT", apperrors.ErrConflict},
		{http.StatusGone, "GONE", apperrors.ErrGone},
		{http.StatusServiceUnavailable, "SERVICE_UNAVAILABLE", apperrors.ErrServiceUnavail},
	}

	for _, tt := range tests {
		t.Run(tt.code, func(t *testing.T) {
			resp := fakeResponse(tt.status,
				`{"error":{"code":"`+tt.code+`","message":"remote failure"}}`)

			err := ParseResponseError(resp, "backend")

			require.Error(t, err)
			assert.True(t, errors.Is(err, tt.sentinel), "expected %v sentinel", tt.sentinel)
		})
	}
}

func TestParseResponseError_PreservesRemoteMessage(t *testing.T) {
	resp := fakeResponse(http.StatusBadRequest,
		`{"error":{"code":"INVALID_INPUT","message":"insufficient stock for product prod-1"}}`)

	err := ParseResponseError(resp, "backend")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "insufficient stock for product prod-1")
	assert.Contains(t, err.Error(), "backend")
}

func TestParseResponseError_ServerError(t *testing.T) {
	resp := fakeResponse(http.StatusInternalServerError,
		`{"error":{"code":"INTERNAL_ERROR","message":"boom"}}`)

	err := ParseResponseError(resp, "backend")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "500")
	assert.Contains(t, err.Error(), "boom")
}

func TestParseResponseError_UnstructuredBody(t *testing.T) {
	resp := fakeResponse(http.StatusBadGateway, "upstream timed out")

	err := ParseResponseError(resp, "backend")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "502")
	assert.Contains(t, err.Error(), "upstream timed out")
}
