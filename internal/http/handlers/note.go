package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yungbote/contactdesk/internal/http/flash"
	"github.com/yungbote/contactdesk/internal/http/response"
	"github.com/yungbote/contactdesk/internal/platform/apierr"
	"github.com/yungbote/contactdesk/internal/platform/logger"
	"github.com/yungbote/contactdesk/internal/services"
)

type NoteHandler struct {
	log   *logger.Logger
	notes services.NoteService
	flash *flash.Codec
}

func NewNoteHandler(log *logger.Logger, notes services.NoteService, codec *flash.Codec) *NoteHandler {
	return &NoteHandler{
		log:   log.With("handler", "NoteHandler"),
		notes: notes,
		flash: codec,
	}
}

func (h *NoteHandler) toContacts(c *gin.Context, text string) {
	var msgs flash.Messages
	msgs.Error(text)
	redirect(c, h.flash, h.log, "/view", msgs)
}

// GET /contact/:id/notes
func (h *NoteHandler) List(c *gin.Context) {
	contactID, ok := parseID(c.Param("id"))
	if !ok {
		h.toContacts(c, "Contact not found")
		return
	}
	contact, notes, err := h.notes.ListForContact(c.Request.Context(), contactID)
	if apierr.IsNotFound(err) {
		h.toContacts(c, "Contact not found")
		return
	}
	if err != nil {
		h.toContacts(c, "Error loading notes: "+causeText(err))
		return
	}
	response.Page(c, http.StatusOK, "notes.html", gin.H{
		"Title":   "Notes",
		"Contact": contact,
		"Notes":   notes,
	}, nil)
}

// GET /contact/:id/notes/add
func (h *NoteHandler) AddForm(c *gin.Context) {
	contactID, ok := parseID(c.Param("id"))
	if !ok {
		h.toContacts(c, "Contact not found")
		return
	}
	contact, _, err := h.notes.ListForContact(c.Request.Context(), contactID)
	if apierr.IsNotFound(err) {
		h.toContacts(c, "Contact not found")
		return
	}
	if err != nil {
		h.toContacts(c, "Error loading contact: "+causeText(err))
		return
	}
	response.Page(c, http.StatusOK, "note_form.html", gin.H{"Title": "Add note", "Contact": contact}, nil)
}

// POST /contact/:id/notes/add
func (h *NoteHandler) Add(c *gin.Context) {
	contactID, ok := parseID(c.Param("id"))
	if !ok {
		h.toContacts(c, "Contact not found")
		return
	}
	text := c.PostForm("note_text")
	contact, _, err := h.notes.Add(c.Request.Context(), contactID, text)
	if err != nil {
		if apierr.IsNotFound(err) || contact == nil {
			msg := "Contact not found"
			if !apierr.IsNotFound(err) {
				msg = "Error adding note: " + causeText(err)
			}
			h.toContacts(c, msg)
			return
		}
		var msgs flash.Messages
		status := http.StatusUnprocessableEntity
		if ve, ok := apierr.AsValidation(err); ok {
			msgs.Errors(ve.Messages)
		} else {
			status = http.StatusInternalServerError
			msgs.Error("Error adding note: " + causeText(err))
		}
		response.Page(c, status, "note_form.html", gin.H{
			"Title":    "Add note",
			"Contact":  contact,
			"NoteText": text,
		}, msgs)
		return
	}
	var msgs flash.Messages
	msgs.Success("Note added successfully!")
	redirect(c, h.flash, h.log, notesPath(contactID), msgs)
}

// GET /contact/:id/notes/:note_id/edit
func (h *NoteHandler) EditForm(c *gin.Context) {
	contactID, ok1 := parseID(c.Param("id"))
	noteID, ok2 := parseID(c.Param("note_id"))
	if !ok1 || !ok2 {
		h.toContacts(c, "Contact or note not found")
		return
	}
	contact, note, err := h.notes.Load(c.Request.Context(), contactID, noteID)
	if apierr.IsNotFound(err) {
		h.toContacts(c, "Contact or note not found")
		return
	}
	if err != nil {
		h.toContacts(c, "Error loading note: "+causeText(err))
		return
	}
	response.Page(c, http.StatusOK, "note_form.html", gin.H{
		"Title":    "Edit note",
		"Contact":  contact,
		"Note":     note,
		"NoteText": note.NoteText,
	}, nil)
}

// POST /contact/:id/notes/:note_id/edit
func (h *NoteHandler) Edit(c *gin.Context) {
	contactID, ok1 := parseID(c.Param("id"))
	noteID, ok2 := parseID(c.Param("note_id"))
	if !ok1 || !ok2 {
		h.toContacts(c, "Contact or note not found")
		return
	}
	text := c.PostForm("note_text")
	contact, note, err := h.notes.Edit(c.Request.Context(), contactID, noteID, text)
	if err != nil {
		if apierr.IsNotFound(err) {
			h.toContacts(c, "Contact or note not found")
			return
		}
		if contact == nil || note == nil {
			h.toContacts(c, "Error updating note: "+causeText(err))
			return
		}
		var msgs flash.Messages
		status := http.StatusUnprocessableEntity
		if ve, ok := apierr.AsValidation(err); ok {
			msgs.Errors(ve.Messages)
		} else {
			status = http.StatusInternalServerError
			msgs.Error("Error updating note: " + causeText(err))
		}
		response.Page(c, status, "note_form.html", gin.H{
			"Title":    "Edit note",
			"Contact":  contact,
			"Note":     note,
			"NoteText": text,
		}, msgs)
		return
	}
	var msgs flash.Messages
	msgs.Success("Note updated successfully!")
	redirect(c, h.flash, h.log, notesPath(contactID), msgs)
}

// POST /contact/:id/notes/:note_id/delete
func (h *NoteHandler) Delete(c *gin.Context) {
	contactID, ok := parseID(c.Param("id"))
	if !ok {
		h.toContacts(c, "Contact not found")
		return
	}
	var msgs flash.Messages
	noteID, ok := parseID(c.Param("note_id"))
	if !ok {
		msgs.Error("Note not found")
		redirect(c, h.flash, h.log, notesPath(contactID), msgs)
		return
	}
	err := h.notes.Delete(c.Request.Context(), contactID, noteID)
	switch {
	case apierr.IsNotFound(err):
		msgs.Error("Note not found")
	case err != nil:
		msgs.Error("Error deleting note: " + causeText(err))
	default:
		msgs.Success("Note deleted successfully")
	}
	redirect(c, h.flash, h.log, notesPath(contactID), msgs)
}
