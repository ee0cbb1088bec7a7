package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yungbote/contactdesk/internal/http/response"
	"github.com/yungbote/contactdesk/internal/validation"
)

type PageHandler struct{}

func NewPageHandler() *PageHandler { return &PageHandler{} }

// GET /
func (h *PageHandler) Index(c *gin.Context) {
	response.Page(c, http.StatusOK, "index.html", gin.H{"Form": validation.ContactForm{}}, nil)
}

// GET /success
func (h *PageHandler) Success(c *gin.Context) {
	response.Page(c, http.StatusOK, "success.html", gin.H{"Title": "Saved"}, nil)
}

// GET /help
func (h *PageHandler) Help(c *gin.Context) {
	response.Page(c, http.StatusOK, "help.html", gin.H{"Title": "Help"}, nil)
}
