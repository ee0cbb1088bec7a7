package handlers

import (
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/yungbote/contactdesk/internal/http/flash"
	"github.com/yungbote/contactdesk/internal/platform/apierr"
	"github.com/yungbote/contactdesk/internal/platform/logger"
)

// parseID accepts only positive decimal ids.
func parseID(raw string) (uint, bool) {
	n, err := strconv.ParseUint(strings.TrimSpace(raw), 10, 64)
	if err != nil || n == 0 {
		return 0, false
	}
	return uint(n), true
}

// causeText is the engine message shown to the user after a failed write.
func causeText(err error) string {
	if se, ok := apierr.AsStorage(err); ok {
		return se.Cause()
	}
	if err == nil {
		return "unknown error"
	}
	return err.Error()
}

func redirect(c *gin.Context, codec *flash.Codec, log *logger.Logger, location string, msgs flash.Messages) {
	if err := codec.Redirect(c, location, msgs); err != nil {
		log.Warn("Flash cookie not set", "location", location, "error", err)
	}
}

func notesPath(contactID uint) string {
	return "/contact/" + strconv.FormatUint(uint64(contactID), 10) + "/notes"
}
