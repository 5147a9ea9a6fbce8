package response

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// ErrorItem is one entry of the validation-error envelope.
type ErrorItem struct {
	Msg string `json:"msg"`
}

// JSON sends a success payload as-is.
func JSON(c *gin.Context, code int, data interface{}) {
	c.JSON(code, data)
}

// Msg sends the single-message client-error envelope {"msg": ...}.
func Msg(c *gin.Context, code int, msg string) {
	c.JSON(code, gin.H{"msg": msg})
}

// ValidationErrors sends the structured list envelope {"errors":[{"msg":...}]}.
func ValidationErrors(c *gin.Context, msgs ...string) {
	items := make([]ErrorItem, 0, len(msgs))
	for _, m := range msgs {
		items = append(items, ErrorItem{Msg: m})
	}
	c.JSON(http.StatusBadRequest, gin.H{"errors": items})
}

// ServerError sends the plain-text 500 body. Details never reach the client.
func ServerError(c *gin.Context) {
	c.String(http.StatusInternalServerError, "Server Error")
}
