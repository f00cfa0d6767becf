package http

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"foodorder/internal/core/application/usecases/commands"
	"foodorder/internal/core/domain/model/order"
	"foodorder/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

// RetryAfterSeconds is sent with 503 responses for capacity rejections.
// It matches the shortest timed transition, the earliest a slot can free up.
const RetryAfterSeconds = 10

// Error is the body of every non-2xx response.
type Error struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// errorToStatus maps domain and application errors to HTTP status codes.
var errorToStatus = []struct {
	target error
	status int
}{
	{commands.ErrCapacityExceeded, http.StatusServiceUnavailable},
	{order.ErrAccessDenied, http.StatusForbidden},
	{order.ErrOrderCannotBeCanceled, http.StatusConflict},
	{errs.ErrObjectNotFound, http.StatusNotFound},
	{order.ErrScheduleTimeNotInFuture, http.StatusBadRequest},
	{errs.ErrValueIsInvalid, http.StatusBadRequest},
	{errs.ErrValueIsRequired, http.StatusBadRequest},
	{errs.ErrValueIsOutOfRange, http.StatusBadRequest},
}

func httpStatus(err error) int {
	for _, m := range errorToStatus {
		if errors.Is(err, m.target) {
			return m.status
		}
	}
	return http.StatusInternalServerError
}

// errorHandler renders every error returned by handlers and middleware as
// an Error body. Unexpected errors are logged and hidden from the client.
func errorHandler(logger *slog.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}
		writeError(logger, err, c)
	}
}

func writeError(logger *slog.Logger, err error, c echo.Context) {
	ctx := c.Request().Context()

	var status int
	message := http.StatusText(http.StatusInternalServerError)

	var httpErr *echo.HTTPError
	if errors.As(err, &httpErr) {
		status = httpErr.Code
		if msg, ok := httpErr.Message.(string); ok {
			message = msg
		} else {
			message = http.StatusText(status)
		}
	} else {
		status = httpStatus(err)
		if status != http.StatusInternalServerError {
			message = err.Error()
		} else {
			logger.ErrorContext(ctx, "Request failed", "method", c.Request().Method, "path", c.Path(), "error", err)
		}
	}

	if status == http.StatusServiceUnavailable {
		c.Response().Header().Set("Retry-After", strconv.Itoa(RetryAfterSeconds))
	}

	var writeErr error
	if c.Request().Method == http.MethodHead {
		writeErr = c.NoContent(status)
	} else {
		writeErr = c.JSON(status, Error{Code: status, Message: message})
	}
	if writeErr != nil {
		logger.WarnContext(ctx, "Failed to write error response", "error", writeErr)
	}
}
