package models

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAppError_ErrorAndUnwrap(t *testing.T) {
	cause := errors.New("boom")
	err := NewInternalError(cause)

	assert.Equal(t, "Internal server error: boom", err.Error())
	assert.ErrorIs(t, err, cause)
	assert.Equal(t, "unknown platform", NewValidationError("unknown platform").Error())
}

func TestNewValidationError_WithCause(t *testing.T) {
	cause := errors.New("days must be between 1 and 30")
	err := NewValidationError("invalid filter", cause)
	assert.Equal(t, "VALIDATION_ERROR", err.Code)
	assert.ErrorIs(t, err, cause)
}

func TestRespondWithError(t *testing.T) {
	tests := []struct {
		name     string
		status   int
		err      error
		expected ErrorResponse
	}{
		{
			name:     "app error with cause",
			status:   fiber.StatusInternalServerError,
			err:      NewInternalError(errors.New("enrich failed")),
			expected: ErrorResponse{Error: "Internal server error", Code: "INTERNAL_ERROR", Details: "enrich failed"},
		},
		{
			name:     "wrapped app error",
			status:   fiber.StatusNotFound,
			err:      fmt.Errorf("lookup: %w", NewNotFoundError("platform", "MySpace")),
			expected: ErrorResponse{Error: "platform MySpace not found", Code: "NOT_FOUND"},
		},
		{
			name:     "rate limited",
			status:   fiber.StatusTooManyRequests,
			err:      NewRateLimitError("rate limit exceeded"),
			expected: ErrorResponse{Error: "rate limit exceeded", Code: "RATE_LIMITED"},
		},
		{
			name:     "plain error",
			status:   fiber.StatusBadRequest,
			err:      errors.New("bad"),
			expected: ErrorResponse{Error: "bad"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app := fiber.New()
			app.Get("/", func(c *fiber.Ctx) error {
				return RespondWithError(c, tt.status, tt.err)
			})

			resp, err := app.Test(httptest.NewRequest("GET", "/", nil))
			require.NoError(t, err)
			defer func() { _ = resp.Body.Close() }()
			assert.Equal(t, tt.status, resp.StatusCode)

			body, err := io.ReadAll(resp.Body)
			require.NoError(t, err)
			var got ErrorResponse
			require.NoError(t, json.Unmarshal(body, &got))
			assert.Equal(t, tt.expected, got)
		})
	}
}
