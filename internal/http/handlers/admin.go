package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yungbote/contactdesk/internal/http/flash"
	"github.com/yungbote/contactdesk/internal/http/response"
	"github.com/yungbote/contactdesk/internal/platform/logger"
	"github.com/yungbote/contactdesk/internal/services"
)

type AdminHandler struct {
	log   *logger.Logger
	admin services.AdminService
}

func NewAdminHandler(log *logger.Logger, admin services.AdminService) *AdminHandler {
	return &AdminHandler{log: log.With("handler", "AdminHandler"), admin: admin}
}

// GET /admin
func (h *AdminHandler) Show(c *gin.Context) {
	snap, err := h.admin.Snapshot(c.Request.Context())
	if err != nil {
		var msgs flash.Messages
		msgs.Error("Error reading database: " + causeText(err))
		response.Page(c, http.StatusInternalServerError, "admin.html", gin.H{
			"Title":    "Admin",
			"Snapshot": &services.AdminSnapshot{},
		}, msgs)
		return
	}
	response.Page(c, http.StatusOK, "admin.html", gin.H{"Title": "Admin", "Snapshot": snap}, nil)
}
