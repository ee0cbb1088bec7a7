package middleware

import (
	"github.com/gin-gonic/gin"

	"github.com/yungbote/contactdesk/internal/http/flash"
	"github.com/yungbote/contactdesk/internal/platform/logger"
)

// AttachRequestContext loads flash messages left by the previous redirect and
// clears the cookie so they are shown exactly once.
func AttachRequestContext(codec *flash.Codec, log *logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		raw, err := c.Cookie(flash.CookieName)
		if err != nil || raw == "" {
			c.Next()
			return
		}
		msgs, err := codec.Decode(raw)
		if err != nil && log != nil {
			log.Debug("Discarding flash cookie", "error", err)
		}
		flash.SetPending(c, msgs)
		flash.Clear(c)
		c.Next()
	}
}
