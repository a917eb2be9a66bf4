package response

import "github.com/gin-gonic/gin"

const (
	StatusSuccess = "success"
	StatusError   = "error"
)

// Envelope is the body shape every /api/v1 handler writes.
type Envelope struct {
	Status     string      `json:"status"`
	StatusCode int         `json:"status_code"`
	Message    string      `json:"message"`
	Data       interface{} `json:"data,omitempty"`
	Errors     interface{} `json:"errors,omitempty"`
}

func RespondJSON(c *gin.Context, status string, code int, message string, data interface{}, errors interface{}) {
	c.JSON(code, Envelope{
		Status:     status,
		StatusCode: code,
		Message:    message,
		Data:       data,
		Errors:     errors,
	})
}

// Abort writes an error envelope and stops the handler chain.
func Abort(c *gin.Context, code int, message string, errors interface{}) {
	c.AbortWithStatusJSON(code, Envelope{
		Status:     StatusError,
		StatusCode: code,
		Message:    message,
		Errors:     errors,
	})
}
