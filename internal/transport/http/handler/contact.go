package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/ErlanBelekov/contact-manager/internal/domain"
	"github.com/ErlanBelekov/contact-manager/internal/usecase"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// contactUsecaser is the subset of ContactUsecase the handler needs.
type contactUsecaser interface {
	CreateContact(ctx context.Context, userID string, input usecase.CreateContactInput) (usecase.ContactView, error)
	UpdateContact(ctx context.Context, userID, contactID string, input usecase.UpdateContactInput) (usecase.ContactView, error)
	DeleteContact(ctx context.Context, userID, contactID string) error
	GetContact(ctx context.Context, userID, contactID string) (usecase.ContactView, error)
	SearchContacts(ctx context.Context, userID string) ([]usecase.ContactView, error)
	CreateAddress(ctx context.Context, userID, contactID string, input usecase.CreateAddressInput) (usecase.AddressView, error)
	UpdateAddress(ctx context.Context, userID, contactID, addressID string, input usecase.UpdateAddressInput) (usecase.AddressView, error)
	DeleteAddress(ctx context.Context, userID, contactID, addressID string) error
}

type ContactHandler struct {
	contacts contactUsecaser
	logger   *slog.Logger
}

func NewContactHandler(contacts contactUsecaser, logger *slog.Logger) *ContactHandler {
	return &ContactHandler{contacts: contacts, logger: logger.With("component", "contact_handler")}
}

// POST /contacts
func (h *ContactHandler) Create(c *gin.Context) {
	var req usecase.CreateContactInput
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": errInvalidBody})
		return
	}

	contact, err := h.contacts.CreateContact(c.Request.Context(), c.GetString("userID"), req)
	if err != nil {
		h.fail(c, "create contact", err)
		return
	}

	c.JSON(http.StatusCreated, contact)
}

// GET /contacts
func (h *ContactHandler) List(c *gin.Context) {
	contacts, err := h.contacts.SearchContacts(c.Request.Context(), c.GetString("userID"))
	if err != nil {
		h.fail(c, "search contacts", err)
		return
	}

	c.JSON(http.StatusOK, contacts)
}

// GET /contacts/:id
func (h *ContactHandler) Get(c *gin.Context) {
	contactID, ok := pathID(c, "id", errContactNotFound)
	if !ok {
		return
	}

	contact, err := h.contacts.GetContact(c.Request.Context(), c.GetString("userID"), contactID)
	if err != nil {
		h.fail(c, "get contact", err, "contact_id", contactID)
		return
	}

	c.JSON(http.StatusOK, contact)
}

// PUT /contacts/:id
func (h *ContactHandler) Update(c *gin.Context) {
	contactID, ok := pathID(c, "id", errContactNotFound)
	if !ok {
		return
	}

	var req usecase.UpdateContactInput
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": errInvalidBody})
		return
	}

	contact, err := h.contacts.UpdateContact(c.Request.Context(), c.GetString("userID"), contactID, req)
	if err != nil {
		h.fail(c, "update contact", err, "contact_id", contactID)
		return
	}

	c.JSON(http.StatusOK, contact)
}

// DELETE /contacts/:id
func (h *ContactHandler) Delete(c *gin.Context) {
	contactID, ok := pathID(c, "id", errContactNotFound)
	if !ok {
		return
	}

	if err := h.contacts.DeleteContact(c.Request.Context(), c.GetString("userID"), contactID); err != nil {
		h.fail(c, "delete contact", err, "contact_id", contactID)
		return
	}

	c.Status(http.StatusNoContent)
}

// POST /contacts/:id/addresses
func (h *ContactHandler) CreateAddress(c *gin.Context) {
	contactID, ok := pathID(c, "id", errContactNotFound)
	if !ok {
		return
	}

	var req usecase.CreateAddressInput
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": errInvalidBody})
		return
	}

	address, err := h.contacts.CreateAddress(c.Request.Context(), c.GetString("userID"), contactID, req)
	if err != nil {
		h.fail(c, "create address", err, "contact_id", contactID)
		return
	}

	c.JSON(http.StatusCreated, address)
}

// PUT /contacts/:id/addresses/:address_id
func (h *ContactHandler) UpdateAddress(c *gin.Context) {
	contactID, ok := pathID(c, "id", errContactNotFound)
	if !ok {
		return
	}
	addressID, ok := pathID(c, "address_id", errAddressNotFound)
	if !ok {
		return
	}

	var req usecase.UpdateAddressInput
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": errInvalidBody})
		return
	}

	address, err := h.contacts.UpdateAddress(c.Request.Context(), c.GetString("userID"), contactID, addressID, req)
	if err != nil {
		h.fail(c, "update address", err, "contact_id", contactID, "address_id", addressID)
		return
	}

	c.JSON(http.StatusOK, address)
}

// DELETE /contacts/:id/addresses/:address_id
func (h *ContactHandler) DeleteAddress(c *gin.Context) {
	contactID, ok := pathID(c, "id", errContactNotFound)
	if !ok {
		return
	}
	addressID, ok := pathID(c, "address_id", errAddressNotFound)
	if !ok {
		return
	}

	if err := h.contacts.DeleteAddress(c.Request.Context(), c.GetString("userID"), contactID, addressID); err != nil {
		h.fail(c, "delete address", err, "contact_id", contactID, "address_id", addressID)
		return
	}

	c.Status(http.StatusNoContent)
}

// fail maps a use-case error onto a response. Another user's contact is
// reported exactly like a missing one so ids cannot be probed.
func (h *ContactHandler) fail(c *gin.Context, op string, err error, attrs ...any) {
	if writeValidation(c, err) {
		return
	}

	switch {
	case errors.Is(err, domain.ErrUnauthorized):
		h.logger.InfoContext(c.Request.Context(), op+": not owner",
			append(attrs, "user_id", c.GetString("userID"))...)
		c.JSON(http.StatusNotFound, gin.H{"error": errContactNotFound})
	case errors.Is(err, domain.ErrContactNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": errContactNotFound})
	case errors.Is(err, domain.ErrAddressNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": errAddressNotFound})
	default:
		h.logger.ErrorContext(c.Request.Context(), op, append(attrs, "error", err)...)
		c.JSON(http.StatusInternalServerError, gin.H{"error": errInternalServer})
	}
}

// pathID returns the named path parameter if it is a uuid; anything else
// cannot name a stored record and is answered with 404.
func pathID(c *gin.Context, name, notFound string) (string, bool) {
	id := c.Param(name)
	if uuid.Validate(id) != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": notFound})
		return "", false
	}
	return id, true
}
