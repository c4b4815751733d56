package response

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// ErrorBody is the failure envelope. Errors carries field-level messages for
// validation failures and is omitted otherwise.
type ErrorBody struct {
	Message string              `json:"message"`
	Errors  map[string][]string `json:"errors,omitempty"`
}

func Error(c *gin.Context, status int, message string, errs map[string][]string) {
	c.JSON(status, ErrorBody{Message: message, Errors: errs})
}

// BadRequest writes the field-level validation envelope.
func BadRequest(c *gin.Context, errs map[string][]string) {
	Error(c, http.StatusBadRequest, "Bad Request", errs)
}

func Unauthorized(c *gin.Context) {
	Error(c, http.StatusUnauthorized, "Unauthorized", nil)
}

func AbortUnauthorized(c *gin.Context) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, ErrorBody{Message: "Unauthorized"})
}

func NotFound(c *gin.Context, message string) {
	if message == "" {
		message = "Not Found"
	}
	Error(c, http.StatusNotFound, message, nil)
}
