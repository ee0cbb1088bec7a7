package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yungbote/contactdesk/internal/http/response"
	"github.com/yungbote/contactdesk/internal/platform/logger"
	"github.com/yungbote/contactdesk/internal/services"
	"github.com/yungbote/contactdesk/internal/validation"
)

// APIHandler serves the JSON surface. Unlike the browser pages, a missing
// contact or note is reported as 404 rather than a redirect.
type APIHandler struct {
	log      *logger.Logger
	contacts services.ContactService
	notes    services.NoteService
}

func NewAPIHandler(log *logger.Logger, contacts services.ContactService, notes services.NoteService) *APIHandler {
	return &APIHandler{
		log:      log.With("handler", "APIHandler"),
		contacts: contacts,
		notes:    notes,
	}
}

type noteBody struct {
	NoteText string `json:"note_text"`
}

var errInvalidID = errors.New("invalid id")

func (h *APIHandler) idParam(c *gin.Context, name string) (uint, bool) {
	id, ok := parseID(c.Param(name))
	if !ok {
		response.RespondError(c, http.StatusBadRequest, "invalid_id", errInvalidID)
	}
	return id, ok
}

// GET /api/contacts
func (h *APIHandler) ListContacts(c *gin.Context) {
	contacts, err := h.contacts.List(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.RespondOK(c, gin.H{"contacts": contacts})
}

// POST /api/contacts
func (h *APIHandler) CreateContact(c *gin.Context) {
	var form validation.ContactForm
	if err := c.ShouldBindJSON(&form); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_body", err)
		return
	}
	contact, err := h.contacts.Submit(c.Request.Context(), form)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.RespondCreated(c, gin.H{"contact": contact})
}

// GET /api/contacts/:id
func (h *APIHandler) GetContact(c *gin.Context) {
	id, ok := h.idParam(c, "id")
	if !ok {
		return
	}
	contact, err := h.contacts.Get(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.RespondOK(c, gin.H{"contact": contact})
}

// DELETE /api/contacts/:id
func (h *APIHandler) DeleteContact(c *gin.Context) {
	id, ok := h.idParam(c, "id")
	if !ok {
		return
	}
	contact, err := h.contacts.Delete(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.RespondOK(c, gin.H{"deleted": contact})
}

// GET /api/contacts/:id/notes
func (h *APIHandler) ListNotes(c *gin.Context) {
	id, ok := h.idParam(c, "id")
	if !ok {
		return
	}
	contact, notes, err := h.notes.ListForContact(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.RespondOK(c, gin.H{"contact": contact, "notes": notes})
}

// POST /api/contacts/:id/notes
func (h *APIHandler) CreateNote(c *gin.Context) {
	id, ok := h.idParam(c, "id")
	if !ok {
		return
	}
	var body noteBody
	if err := c.ShouldBindJSON(&body); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_body", err)
		return
	}
	_, note, err := h.notes.Add(c.Request.Context(), id, body.NoteText)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.RespondCreated(c, gin.H{"note": note})
}

// PUT /api/contacts/:id/notes/:note_id
func (h *APIHandler) UpdateNote(c *gin.Context) {
	id, ok := h.idParam(c, "id")
	if !ok {
		return
	}
	noteID, ok := h.idParam(c, "note_id")
	if !ok {
		return
	}
	var body noteBody
	if err := c.ShouldBindJSON(&body); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_body", err)
		return
	}
	_, note, err := h.notes.Edit(c.Request.Context(), id, noteID, body.NoteText)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.RespondOK(c, gin.H{"note": note})
}

// DELETE /api/contacts/:id/notes/:note_id
func (h *APIHandler) DeleteNote(c *gin.Context) {
	id, ok := h.idParam(c, "id")
	if !ok {
		return
	}
	noteID, ok := h.idParam(c, "note_id")
	if !ok {
		return
	}
	if err := h.notes.Delete(c.Request.Context(), id, noteID); err != nil {
		response.Error(c, err)
		return
	}
	response.RespondOK(c, gin.H{"deleted": true})
}
