// Package handler contains the HTTP handlers for the application.
package handler

import (
	"net/http"

	deliverycontext "helpmate/internal/delivery/context"
	"helpmate/internal/delivery/http/response"
	domainerrors "helpmate/internal/domain/errors"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

// sessionUserID extracts the authenticated user from the request context.
// The auth middleware guarantees it on protected routes.
func sessionUserID(c echo.Context) (uuid.UUID, error) {
	session, ok := deliverycontext.SessionFrom(c.Request().Context())
	if !ok {
		return uuid.Nil, domainerrors.ErrUnauthorized
	}

	return session.UserID, nil
}

// pathID parses the :id path parameter.
func pathID(c echo.Context) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return uuid.Nil, domainerrors.ErrValidationFailed.WithDetails("invalid id format")
	}

	return id, nil
}

// HealthCheck is a simple handler to check if the service is up.
func HealthCheck(c echo.Context) error {
	return response.Success(c, http.StatusOK, map[string]string{"status": "ok"}, "Service is healthy")
}
