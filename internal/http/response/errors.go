package response

import (
	"github.com/gin-gonic/gin"

	"github.com/yungbote/contactdesk/internal/platform/apierr"
)

// Error maps err onto the JSON error envelope. Validation failures carry every
// message in Details.
func Error(c *gin.Context, err error) {
	ae := apierr.FromError(err)
	if ae == nil {
		return
	}
	body := APIError{Message: ae.Error(), Code: ae.Code}
	if ve, ok := apierr.AsValidation(err); ok {
		body.Message = "validation failed"
		body.Details = ve.Messages
	}
	if ae.Status >= 500 {
		_ = c.Error(err)
	}
	c.JSON(ae.Status, ErrorEnvelope{Error: body})
}
