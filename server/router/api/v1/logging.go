package v1

import (
	"log/slog"

	"github.com/labstack/echo/v4"

	"github.com/hrygo/parentcopilot/server/internal/observability"
)

// RequestLogging attaches a RequestContext to every request and logs its
// outcome. Successful requests are logged at DEBUG unless verbose is set.
func RequestLogging(verbose bool) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			req := c.Request()
			reqCtx := observability.NewRequestContext(slog.Default(), req.Method+" "+c.Path(), "")
			c.SetRequest(req.WithContext(observability.WithRequestContext(req.Context(), reqCtx)))
			c.Response().Header().Set(echo.HeaderXRequestID, reqCtx.RequestID)

			err := next(c)

			attrs := []slog.Attr{
				slog.Int64(observability.LogFieldDuration, reqCtx.DurationMs()),
			}
			switch {
			case err != nil:
				code := string(toAppError(err).Code)
				reqCtx.Warn("request failed", append(attrs,
					slog.String(observability.LogFieldErrorCode, code),
					slog.String("error", err.Error()))...)
			case verbose:
				reqCtx.Info("request completed", append(attrs, slog.Int("status", c.Response().Status))...)
			default:
				reqCtx.Debug("request completed", attrs...)
			}
			return err
		}
	}
}
