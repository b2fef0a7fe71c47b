package handler

import (
	"log/slog"
	"net/http"

	"helpmate/internal/delivery/http/response"
	"helpmate/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// ContactHandler holds dependencies for emergency contact handlers.
type ContactHandler struct {
	uc     usecase.ContactUsecase
	logger *slog.Logger
}

// NewContactHandler is the constructor for ContactHandler, injected by Fx.
func NewContactHandler(uc usecase.ContactUsecase, logger *slog.Logger) *ContactHandler {
	return &ContactHandler{uc: uc, logger: logger}
}

// List returns the caller's contacts in priority order.
func (h *ContactHandler) List(c echo.Context) error {
	userID, err := sessionUserID(c)
	if err != nil {
		return errors.WithStack(err)
	}

	contacts, err := h.uc.ListContacts(c.Request().Context(), userID)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, contacts, "Contacts retrieved successfully")
}

// Create adds a new emergency contact.
func (h *ContactHandler) Create(c echo.Context) error {
	userID, err := sessionUserID(c)
	if err != nil {
		return errors.WithStack(err)
	}

	var input usecase.ContactInput
	if err := c.Bind(&input); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid contact input")
	}
	if err := c.Validate(&input); err != nil {
		return errors.WithStack(err)
	}

	contact, err := h.uc.CreateContact(c.Request().Context(), userID, &input)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusCreated, contact, "Contact created successfully")
}

// Update replaces the editable fields of a contact.
func (h *ContactHandler) Update(c echo.Context) error {
	userID, err := sessionUserID(c)
	if err != nil {
		return errors.WithStack(err)
	}

	contactID, err := pathID(c)
	if err != nil {
		return errors.WithStack(err)
	}

	var input usecase.ContactInput
	if err := c.Bind(&input); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid contact input")
	}
	if err := c.Validate(&input); err != nil {
		return errors.WithStack(err)
	}

	contact, err := h.uc.UpdateContact(c.Request().Context(), userID, contactID, &input)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, contact, "Contact updated successfully")
}

// Delete removes a contact.
func (h *ContactHandler) Delete(c echo.Context) error {
	userID, err := sessionUserID(c)
	if err != nil {
		return errors.WithStack(err)
	}

	contactID, err := pathID(c)
	if err != nil {
		return errors.WithStack(err)
	}

	if err := h.uc.DeleteContact(c.Request().Context(), userID, contactID); err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, nil, "Contact deleted successfully")
}

// Toggle flips a contact's active flag.
func (h *ContactHandler) Toggle(c echo.Context) error {
	userID, err := sessionUserID(c)
	if err != nil {
		return errors.WithStack(err)
	}

	contactID, err := pathID(c)
	if err != nil {
		return errors.WithStack(err)
	}

	contact, err := h.uc.ToggleContact(c.Request().Context(), userID, contactID)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, contact, "Contact toggled successfully")
}

// Test sends a test notification to every active contact.
func (h *ContactHandler) Test(c echo.Context) error {
	userID, err := sessionUserID(c)
	if err != nil {
		return errors.WithStack(err)
	}

	results, err := h.uc.TestContacts(c.Request().Context(), userID)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, results, "Test notifications sent")
}
