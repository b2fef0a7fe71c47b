package middleware

import (
	"log/slog"

	deliverycontext "helpmate/internal/delivery/context"

	"github.com/labstack/echo/v4"
)

// RequestScope installs a request ID and a request-scoped logger into the
// request context so usecases can log with correlation attributes.
type RequestScope struct {
	logger *slog.Logger
}

// NewRequestScope creates the request scope middleware.
func NewRequestScope(logger *slog.Logger) *RequestScope {
	return &RequestScope{logger: logger}
}

// Handle assigns the request ID (honoring an inbound X-Request-Id header) and
// derives the scoped logger.
func (m *RequestScope) Handle(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		requestID := c.Request().Header.Get(deliverycontext.HeaderXRequestID)
		if requestID == "" {
			requestID = deliverycontext.GetRequestID(c)
		}
		deliverycontext.SetRequestID(c, requestID)
		c.Response().Header().Set(deliverycontext.HeaderXRequestID, requestID)

		requestLogger := m.logger.With(slog.String("requestID", requestID))

		ctx := deliverycontext.WithRequestID(c.Request().Context(), requestID)
		ctx = deliverycontext.WithLogger(ctx, requestLogger)
		c.SetRequest(c.Request().WithContext(ctx))

		return next(c)
	}
}
