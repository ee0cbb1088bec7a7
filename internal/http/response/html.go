package response

import (
	"github.com/gin-gonic/gin"

	"github.com/yungbote/contactdesk/internal/http/flash"
)

// Page renders an HTML template. Messages carried by the previous redirect are
// shown first, followed by the ones produced by this request.
func Page(c *gin.Context, status int, name string, data gin.H, msgs flash.Messages) {
	if data == nil {
		data = gin.H{}
	}
	all := append(flash.Messages{}, flash.Pending(c)...)
	all = append(all, msgs...)
	data["Messages"] = all
	c.HTML(status, name, data)
}
