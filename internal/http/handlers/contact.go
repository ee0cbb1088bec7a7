package handlers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yungbote/contactdesk/internal/export"
	"github.com/yungbote/contactdesk/internal/http/flash"
	"github.com/yungbote/contactdesk/internal/http/response"
	"github.com/yungbote/contactdesk/internal/platform/apierr"
	"github.com/yungbote/contactdesk/internal/platform/logger"
	"github.com/yungbote/contactdesk/internal/services"
	"github.com/yungbote/contactdesk/internal/validation"
)

type ContactHandler struct {
	log      *logger.Logger
	contacts services.ContactService
	flash    *flash.Codec
}

func NewContactHandler(log *logger.Logger, contacts services.ContactService, codec *flash.Codec) *ContactHandler {
	return &ContactHandler{
		log:      log.With("handler", "ContactHandler"),
		contacts: contacts,
		flash:    codec,
	}
}

// POST /submit
func (h *ContactHandler) Submit(c *gin.Context) {
	form := validation.ContactForm{
		FirstName: c.PostForm("first_name"),
		LastName:  c.PostForm("last_name"),
		Email:     c.PostForm("email"),
		Phone:     c.PostForm("phone"),
	}.Normalize()

	_, err := h.contacts.Submit(c.Request.Context(), form)
	if err != nil {
		var msgs flash.Messages
		status := http.StatusUnprocessableEntity
		if ve, ok := apierr.AsValidation(err); ok {
			msgs.Errors(ve.Messages)
		} else {
			status = http.StatusInternalServerError
			msgs.Error("Error saving data: " + causeText(err))
		}
		response.Page(c, status, "index.html", gin.H{"Form": form}, msgs)
		return
	}

	var msgs flash.Messages
	msgs.Success("Data saved successfully!")
	redirect(c, h.flash, h.log, "/success", msgs)
}

// GET /view
func (h *ContactHandler) View(c *gin.Context) {
	contacts, err := h.contacts.List(c.Request.Context())
	var msgs flash.Messages
	if err != nil {
		msgs.Error("Error loading contacts: " + causeText(err))
	}
	response.Page(c, http.StatusOK, "view.html", gin.H{"Title": "Contacts", "Contacts": contacts}, msgs)
}

// POST /delete/:contact_id
func (h *ContactHandler) Delete(c *gin.Context) {
	var msgs flash.Messages
	id, ok := parseID(c.Param("contact_id"))
	if !ok {
		msgs.Error("Contact not found")
		redirect(c, h.flash, h.log, "/view", msgs)
		return
	}
	deleted, err := h.contacts.Delete(c.Request.Context(), id)
	switch {
	case apierr.IsNotFound(err):
		msgs.Error("Contact not found")
	case err != nil:
		msgs.Error("Error deleting contact: " + causeText(err))
	default:
		msgs.Success(fmt.Sprintf(`Contact "%s" has been deleted successfully`, deleted.FullName()))
	}
	redirect(c, h.flash, h.log, "/view", msgs)
}

// GET /export_csv
func (h *ContactHandler) ExportCSV(c *gin.Context) {
	filename, body, err := h.contacts.ExportCSV(c.Request.Context())
	if err != nil {
		h.log.Error("CSV export failed", "error", err)
		var msgs flash.Messages
		msgs.Error("Error exporting data: " + causeText(err))
		redirect(c, h.flash, h.log, "/view", msgs)
		return
	}
	c.Header("Content-Disposition", "attachment; filename="+filename)
	c.Data(http.StatusOK, export.ContentType, []byte(body))
}
