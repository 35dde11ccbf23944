package errors

import (
	"context"
	stderrs "errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWrap_PreservesInnerAppError(t *testing.T) {
	inner := NotFound("Region", "mars-1")
	wrapped := Wrap(fmt.Errorf("outer: %w", inner), CodePlatformAPIError, "listing regions")

	require.NotNil(t, wrapped)
	assert.Equal(t, CodeResourceNotFound, wrapped.Code)
	assert.True(t, Is(wrapped, CodeResourceNotFound))
}

func TestWrap_Nil(t *testing.T) {
	assert.Nil(t, Wrap(nil, CodeInternal, "nothing"))
	assert.Nil(t, WrapUserFacing(nil, CodeInternal, "nothing", ""))
}

func TestWrap_PlainError(t *testing.T) {
	base := stderrs.New("connection reset")
	wrapped := Wrap(base, CodePlatformAPIError, "describe instances")

	assert.Equal(t, CodePlatformAPIError, GetCode(wrapped))
	assert.ErrorIs(t, wrapped, base)
	assert.Equal(t, "[PLATFORM_API_ERROR] describe instances: connection reset", wrapped.Error())
}

func TestGetCode_Unknown(t *testing.T) {
	assert.Equal(t, CodeUnknown, GetCode(context.Canceled))
}

func TestInvalidInput_Fields(t *testing.T) {
	err := InvalidInput("validation failed", map[string]string{"name": "required"})
	assert.Equal(t, CodeInvalidInput, err.Code)
	assert.Equal(t, "required", err.Fields["name"])
	assert.True(t, err.IsUserFacing)
}

func TestGetUserFacingMessage(t *testing.T) {
	uf := NewUserFacing(CodeConfigValidation, "bad config", "fix it")
	msg, suggestion, ok := GetUserFacingMessage(uf)
	assert.True(t, ok)
	assert.Equal(t, "bad config", msg)
	assert.Equal(t, "fix it", suggestion)

	_, _, ok = GetUserFacingMessage(stderrs.New("plain"))
	assert.False(t, ok)
}

func TestHTTPStatus(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"nil", nil, http.StatusOK},
		{"not found", NotFound("Zone", "z"), http.StatusNotFound},
		{"forbidden", PermissionDenied("no"), http.StatusForbidden},
		{"invalid input", InvalidInput("bad", nil), http.StatusBadRequest},
		{"method", New(CodeMethodNotAllowed, "nope"), http.StatusMethodNotAllowed},
		{"platform api", New(CodePlatformAPIError, "boom"), http.StatusBadGateway},
		{"platform auth", New(CodePlatformAuthError, "creds"), http.StatusBadGateway},
		{"timeout", New(CodeTimeout, "slow"), http.StatusGatewayTimeout},
		{"internal", New(CodeInternal, "bug"), http.StatusInternalServerError},
		{"plain", stderrs.New("plain"), http.StatusInternalServerError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, HTTPStatus(tt.err))
		})
	}
}

func TestConflict_IsUserFacing(t *testing.T) {
	err := Conflict("volume %s is attached to %s", "vol-1", "i-1")
	assert.Equal(t, CodeResourceConflict, err.Code)
	assert.Equal(t, http.StatusConflict, HTTPStatus(err))

	msg, _, ok := GetUserFacingMessage(fmt.Errorf("delete: %w", err))
	assert.True(t, ok)
	assert.Equal(t, "volume vol-1 is attached to i-1", msg)
}

func TestWrapUserFacing_KeepsInnerDetails(t *testing.T) {
	inner := New(CodePlatformAPIError, "throttled")
	outer := WrapUserFacing(inner, CodePlatformAPIError, "could not list regions", "retry later")

	assert.Equal(t, inner.Error(), outer.InternalDetails)
	assert.Equal(t, inner.StackTrace, outer.StackTrace)
	assert.ErrorIs(t, outer, inner)
}
