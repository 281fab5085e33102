package response

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// ErrorBody is the JSON envelope for request-level errors.
type ErrorBody struct {
	Error     string `json:"error"`
	RequestID string `json:"request_id,omitempty"`
}

// OK writes v as a 200 response.
func OK(c *gin.Context, v interface{}) {
	c.JSON(http.StatusOK, v)
}

// BadRequest writes a 400 error response.
func BadRequest(c *gin.Context, msg string) {
	abort(c, http.StatusBadRequest, msg)
}

// InternalError writes a 500 error response without leaking details.
func InternalError(c *gin.Context) {
	abort(c, http.StatusInternalServerError, "internal server error")
}

func abort(c *gin.Context, status int, msg string) {
	c.AbortWithStatusJSON(status, ErrorBody{
		Error:     msg,
		RequestID: c.GetString(RequestIDKey),
	})
}

// RequestIDKey is the gin context key holding the request id.
const RequestIDKey = "request_id"
