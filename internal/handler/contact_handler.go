package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/teamsite/internal/service"
)

// ListContacts returns every contact message for the admin inbox.
func (a *API) ListContacts(c *gin.Context) {
	messages, err := a.contacts.ListAll()
	if err != nil {
		logError("contact", "list", err)
		respondError(c, http.StatusInternalServerError, "Failed to fetch contacts")
		return
	}

	c.JSON(http.StatusOK, messages)
}

// CreateContact accepts a public contact form submission, multipart or JSON,
// with an optional attachment. The attachment URL is echoed back but never
// stored on the message.
func (a *API) CreateContact(c *gin.Context) {
	sub, err := decodeSubmission(c, "file")
	if err != nil {
		respondError(c, http.StatusBadRequest, "Invalid request payload")
		return
	}

	input := service.ContactInput{
		Name:    sub.field("name"),
		Email:   sub.field("email"),
		Subject: sub.field("subject"),
		Message: sub.field("message"),
	}

	msg, attachmentURL, err := a.contacts.Create(c.Request.Context(), input, sub.upload)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrContactFieldsRequired):
			respondError(c, http.StatusBadRequest, "Name, email and message are required")
		case errors.Is(err, service.ErrContactEmailInvalid):
			respondError(c, http.StatusBadRequest, "Invalid email address")
		default:
			logError("contact", "create", err)
			respondError(c, http.StatusInternalServerError, "Failed to create contact")
		}
		return
	}

	response := gin.H{"message": "Contact created successfully", "id": msg.ID}
	if attachmentURL != "" {
		response["attachment"] = attachmentURL
	}
	c.JSON(http.StatusOK, response)
}

// MarkContactRead flags a message as read.
func (a *API) MarkContactRead(c *gin.Context) {
	id, err := parseUintParam(c, "id")
	if err != nil {
		respondError(c, http.StatusBadRequest, "Invalid contact ID")
		return
	}

	if err := a.contacts.MarkRead(id); err != nil {
		if errors.Is(err, service.ErrContactNotFound) {
			respondError(c, http.StatusNotFound, "Contact not found")
			return
		}
		logError("contact", "mark_read", err)
		respondError(c, http.StatusInternalServerError, "Failed to mark contact as read")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Contact marked as read"})
}

// DeleteContact removes a message by the id in the JSON body.
func (a *API) DeleteContact(c *gin.Context) {
	var payload idPayload
	if !bindJSON(c, &payload, "Contact ID is required") {
		return
	}
	if payload.ID == 0 {
		respondError(c, http.StatusBadRequest, "Contact ID is required")
		return
	}

	a.deleteContactByID(c, payload.ID)
}

// DeleteContactByID removes a message by the id in the URL.
func (a *API) DeleteContactByID(c *gin.Context) {
	id, err := parseUintParam(c, "id")
	if err != nil {
		respondError(c, http.StatusBadRequest, "Invalid contact id")
		return
	}

	a.deleteContactByID(c, id)
}

func (a *API) deleteContactByID(c *gin.Context, id uint) {
	if err := a.contacts.Delete(id); err != nil {
		if errors.Is(err, service.ErrContactNotFound) {
			respondError(c, http.StatusNotFound, "Contact not found")
			return
		}
		logError("contact", "delete", err)
		respondError(c, http.StatusInternalServerError, "Failed to delete contact")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Contact deleted successfully"})
}
