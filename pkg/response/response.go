package response

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Envelope keys shared by every endpoint.
const (
	KeySuccess = "success"
	KeyError   = "error"
	KeyDetails = "details"
)

// ErrorBody is the failure envelope.
type ErrorBody struct {
	Success bool        `json:"success"`
	Error   string      `json:"error"`
	Details interface{} `json:"details,omitempty"`
}

// Success writes {"success": true} merged with payload.
func Success(ctx *gin.Context, status int, payload gin.H) {
	if status == 0 {
		status = http.StatusOK
	}
	body := gin.H{KeySuccess: true}
	for k, v := range payload {
		if k == KeySuccess {
			continue
		}
		body[k] = v
	}
	ctx.JSON(status, body)
}

// Error writes {"success": false, "error": message, "details": details}.
func Error(ctx *gin.Context, status int, message string, details interface{}) {
	if status == 0 {
		status = http.StatusBadRequest
	}
	ctx.JSON(status, newErrorBody(message, details))
}

// Abort writes the failure envelope and stops the handler chain.
func Abort(ctx *gin.Context, status int, message string, details interface{}) {
	ctx.AbortWithStatusJSON(status, newErrorBody(message, details))
}

func newErrorBody(message string, details interface{}) ErrorBody {
	if m, ok := details.(map[string]string); ok && len(m) == 0 {
		details = nil
	}
	return ErrorBody{Success: false, Error: message, Details: details}
}
