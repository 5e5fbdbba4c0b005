package api

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/rtomilin/pennywise/internal/service"
	"github.com/rtomilin/pennywise/internal/storage"
	"github.com/rtomilin/pennywise/internal/util"
)

type errorResponse struct {
	Reason string `json:"reason"`
}

// sentinelStatuses maps each client-visible service error to its status. The
// sentinel's own message is what reaches the client, so wrapped collaborator
// detail never leaks.
var sentinelStatuses = []struct {
	err    error
	status int
}{
	{service.ErrInvalidCredentials, http.StatusUnauthorized},
	{service.ErrRefreshTokenInvalid, http.StatusUnauthorized},
	{service.ErrRefreshTokenExpired, http.StatusUnauthorized},
	{service.ErrAccessTokenInvalid, http.StatusUnauthorized},
	{service.ErrEmailAlreadyRegistered, http.StatusConflict},
	{storage.ErrTransactionNotFound, http.StatusNotFound},
	{storage.ErrGoalNotFound, http.StatusNotFound},
}

// ErrorHandler classifies service errors into the response taxonomy. Anything
// unrecognized is logged in full and surfaced as a generic 500; internals
// never reach the client.
func ErrorHandler(log *zap.SugaredLogger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		status, reason := classify(err)
		if status == http.StatusInternalServerError {
			log.Errorw("internal error", "error", err, "uri", c.Request().RequestURI)
		}

		if err := c.JSON(status, errorResponse{Reason: reason}); err != nil {
			log.Errorw("failed to write json response", "error", err)
		}
	}
}

func classify(err error) (int, string) {
	var responseErr util.ResponseError
	if errors.As(err, &responseErr) {
		return responseErr.Status, responseErr.Msg
	}

	for _, s := range sentinelStatuses {
		if errors.Is(err, s.err) {
			return s.status, s.err.Error()
		}
	}

	var httpErr *echo.HTTPError
	if errors.As(err, &httpErr) {
		if msg, ok := httpErr.Message.(string); ok {
			return httpErr.Code, msg
		}
		return httpErr.Code, http.StatusText(httpErr.Code)
	}

	return http.StatusInternalServerError, "internal server error"
}
