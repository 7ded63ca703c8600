package common

import (
	"context"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"google.golang.org/grpc/codes"
)

func TestCodeOf(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want codes.Code
	}{
		{"nil", nil, codes.OK},
		{"app error wrapping invalid input", NewAppError("EMPTY_TEXT", "no text", ErrInvalidInput), codes.InvalidArgument},
		{"validation", fmt.Errorf("request: %w", ErrValidation), codes.InvalidArgument},
		{"not found", WrapError(ErrNotFound, "load part"), codes.NotFound},
		{"grpc status", NotFoundError("missing"), codes.NotFound},
		{"deadline", fmt.Errorf("import: %w", context.DeadlineExceeded), codes.DeadlineExceeded},
		{"database", NewAppError("DB", "insert failed", ErrDatabase), codes.Internal},
		{"plain", fmt.Errorf("boom"), codes.Internal},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, CodeOf(tc.err))
		})
	}
}

func TestHTTPStatus(t *testing.T) {
	assert.Equal(t, http.StatusBadRequest, HTTPStatus(InvalidArgumentErrorf("bad %s", "limit")))
	assert.Equal(t, http.StatusNotFound, HTTPStatus(ErrNotFound))
	assert.Equal(t, http.StatusInternalServerError, HTTPStatus(ErrInternal))
	assert.Equal(t, http.StatusGatewayTimeout, HTTPStatus(context.DeadlineExceeded))
}

func TestAppErrorMessage(t *testing.T) {
	err := NewAppError("CONFIG_ERROR", "DB_URL is required", ErrInvalidInput)
	assert.Equal(t, "CONFIG_ERROR: DB_URL is required: invalid input", err.Error())
	assert.Equal(t, "X: y", NewAppError("X", "y", nil).Error())
	assert.NoError(t, WrapError(nil, "ignored"))
}
