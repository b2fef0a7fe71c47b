package handler

import (
	"io"
	"log/slog"
	"net/http"

	"helpmate/internal/delivery/http/response"
	"helpmate/internal/domain/entity"
	domainerrors "helpmate/internal/domain/errors"
	"helpmate/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// AlertHandler holds dependencies for alert handlers.
type AlertHandler struct {
	uc     usecase.AlertUsecase
	logger *slog.Logger
}

// NewAlertHandler is the constructor for AlertHandler, injected by Fx.
func NewAlertHandler(uc usecase.AlertUsecase, logger *slog.Logger) *AlertHandler {
	return &AlertHandler{uc: uc, logger: logger}
}

// CreateEmergency raises a new alert and fans out contact notifications.
func (h *AlertHandler) CreateEmergency(c echo.Context) error {
	userID, err := sessionUserID(c)
	if err != nil {
		return errors.WithStack(err)
	}

	var input usecase.CreateAlertInput
	if err := c.Bind(&input); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid alert input")
	}
	if err := c.Validate(&input); err != nil {
		return errors.WithStack(err)
	}

	alert, err := h.uc.CreateAlert(c.Request().Context(), userID, &input)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusCreated, alert, "Emergency alert created")
}

// List returns the caller's alerts, newest first. The status query parameter
// filters by lifecycle state; "all" or absence means no filter.
func (h *AlertHandler) List(c echo.Context) error {
	userID, err := sessionUserID(c)
	if err != nil {
		return errors.WithStack(err)
	}

	var status *entity.AlertStatus
	if raw := c.QueryParam("status"); raw != "" && raw != "all" {
		parsed := entity.AlertStatus(raw)
		if !parsed.Valid() {
			return errors.WithStack(domainerrors.ErrValidationFailed.WithDetails("unknown status filter"))
		}
		status = &parsed
	}

	alerts, err := h.uc.ListAlerts(c.Request().Context(), userID, status)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, alerts, "Alerts retrieved successfully")
}

// Get returns one alert owned by the caller.
func (h *AlertHandler) Get(c echo.Context) error {
	userID, err := sessionUserID(c)
	if err != nil {
		return errors.WithStack(err)
	}

	alertID, err := pathID(c)
	if err != nil {
		return errors.WithStack(err)
	}

	alert, err := h.uc.GetAlert(c.Request().Context(), userID, alertID)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, alert, "Alert retrieved successfully")
}

// Resolve closes an active alert. The body may name the resolver kind;
// without one the resolver defaults to the user.
func (h *AlertHandler) Resolve(c echo.Context) error {
	userID, err := sessionUserID(c)
	if err != nil {
		return errors.WithStack(err)
	}

	alertID, err := pathID(c)
	if err != nil {
		return errors.WithStack(err)
	}

	// An empty body is fine; chunked requests report no ContentLength, so
	// binding has to run and tolerate EOF rather than gate on the header.
	input := usecase.ResolveAlertInput{ResolvedBy: entity.ResolverUser}
	if err := c.Bind(&input); err != nil && !errors.Is(err, io.EOF) {
		return response.BindingError(c, "INVALID_INPUT", "Invalid resolve input")
	}
	if input.ResolvedBy == "" {
		input.ResolvedBy = entity.ResolverUser
	}
	if err := c.Validate(&input); err != nil {
		return errors.WithStack(err)
	}

	alert, err := h.uc.ResolveAlert(c.Request().Context(), userID, alertID, &input)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, alert, "Alert resolved successfully")
}

// Cancel marks all of the caller's active alerts cancelled.
func (h *AlertHandler) Cancel(c echo.Context) error {
	userID, err := sessionUserID(c)
	if err != nil {
		return errors.WithStack(err)
	}

	output, err := h.uc.CancelActiveAlerts(c.Request().Context(), userID)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, output, "Active alerts cancelled")
}

// Delete removes one alert regardless of its status.
func (h *AlertHandler) Delete(c echo.Context) error {
	userID, err := sessionUserID(c)
	if err != nil {
		return errors.WithStack(err)
	}

	alertID, err := pathID(c)
	if err != nil {
		return errors.WithStack(err)
	}

	if err := h.uc.DeleteAlert(c.Request().Context(), userID, alertID); err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, nil, "Alert deleted successfully")
}
