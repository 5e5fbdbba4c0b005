package api

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"

	"github.com/rtomilin/pennywise/internal/service"
	"github.com/rtomilin/pennywise/internal/storage"
	"github.com/rtomilin/pennywise/internal/util"
)

func TestClassify(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantReason string
	}{
		{
			name:       "invalid credentials",
			err:        service.ErrInvalidCredentials,
			wantStatus: http.StatusUnauthorized,
			wantReason: "invalid email or password",
		},
		{
			name:       "refresh token expired",
			err:        service.ErrRefreshTokenExpired,
			wantStatus: http.StatusUnauthorized,
			wantReason: "refresh token expired",
		},
		{
			name:       "duplicate email",
			err:        service.ErrEmailAlreadyRegistered,
			wantStatus: http.StatusConflict,
			wantReason: "email already registered",
		},
		{
			name:       "goal not found",
			err:        storage.ErrGoalNotFound,
			wantStatus: http.StatusNotFound,
			wantReason: "savings goal not found",
		},
		{
			name:       "wrapped sentinel keeps only the sentinel message",
			err:        fmt.Errorf("reload user: pq: connection reset: %w", service.ErrRefreshTokenInvalid),
			wantStatus: http.StatusUnauthorized,
			wantReason: "invalid refresh token",
		},
		{
			name:       "validation error passes through",
			err:        util.NewResponseError(http.StatusBadRequest, "missing required fields: email"),
			wantStatus: http.StatusBadRequest,
			wantReason: "missing required fields: email",
		},
		{
			name:       "echo http error",
			err:        echo.NewHTTPError(http.StatusUnauthorized, "missing bearer token"),
			wantStatus: http.StatusUnauthorized,
			wantReason: "missing bearer token",
		},
		{
			name:       "unknown errors collapse to a generic 500",
			err:        fmt.Errorf("pq: relation users does not exist"),
			wantStatus: http.StatusInternalServerError,
			wantReason: "internal server error",
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			status, reason := classify(tt.err)
			assert.Equal(t, tt.wantStatus, status)
			assert.Equal(t, tt.wantReason, reason)
		})
	}
}
