package v1

import (
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/hrygo/parentcopilot/plugin/ai"
	"github.com/hrygo/parentcopilot/plugin/ai/advice"
	apperrors "github.com/hrygo/parentcopilot/server/internal/errors"
	"github.com/hrygo/parentcopilot/server/internal/observability"
)

// ErrorResponse is the body of every failed API call.
type ErrorResponse struct {
	Code    apperrors.ErrorCode    `json:"code"`
	Message string                 `json:"message"`
	Details map[string]interface{} `json:"details,omitempty"`
}

// HTTPErrorHandler renders errors returned by handlers and middleware.
func HTTPErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	appErr := toAppError(err)
	status := appErr.HTTPStatus()
	if status >= http.StatusInternalServerError {
		observability.FromContextOrNew(c.Request().Context(), c.Path()).
			Error("request failed", err, slog.String(observability.LogFieldErrorCode, string(appErr.Code)))
	}

	body := ErrorResponse{Code: appErr.Code, Message: appErr.Message, Details: appErr.Context}
	var writeErr error
	if c.Request().Method == http.MethodHead {
		writeErr = c.NoContent(status)
	} else {
		writeErr = c.JSON(status, body)
	}
	if writeErr != nil {
		slog.Warn("failed to write error response", "error", writeErr)
	}
}

func toAppError(err error) *apperrors.AppError {
	if appErr, ok := apperrors.As(err); ok {
		return appErr
	}

	var httpErr *echo.HTTPError
	if errors.As(err, &httpErr) {
		msg := http.StatusText(httpErr.Code)
		if s, ok := httpErr.Message.(string); ok {
			msg = s
		}
		switch httpErr.Code {
		case http.StatusNotFound:
			return apperrors.NotFound(msg)
		case http.StatusMethodNotAllowed:
			return apperrors.FailedPrecondition(msg)
		case http.StatusTooManyRequests:
			return apperrors.RateLimitExceeded(msg)
		}
		if httpErr.Code < http.StatusInternalServerError {
			return apperrors.InvalidArgument(msg)
		}
		return apperrors.Wrap(err, apperrors.ErrCodeInternal, msg)
	}

	switch {
	case errors.Is(err, advice.ErrEmptyDescription):
		return apperrors.InvalidField("description", err.Error())
	case errors.Is(err, ai.ErrTranscriptionUnavailable):
		return apperrors.ServiceUnavailable("speech-to-text is not available, please type instead", err)
	}
	return apperrors.Wrap(err, apperrors.ErrCodeInternal, "internal error")
}

// bind decodes the request body into v and reports malformed JSON as
// INVALID_ARGUMENT.
func bind(c echo.Context, v interface{}) error {
	if err := c.Bind(v); err != nil {
		return apperrors.Wrap(err, apperrors.ErrCodeInvalidArgument, "malformed request body")
	}
	return nil
}
