package response

import (
	"net/http"

	"github.com/gin-gonic/gin"

	appErrors "github.com/noah-isme/campus-events-api/pkg/errors"
)

// ErrorBody is the academic error contract.
type ErrorBody struct {
	Message string              `json:"message"`
	Errors  map[string][]string `json:"errors,omitempty"`
}

// Envelope is the event subsystem contract.
type Envelope struct {
	Success bool                `json:"success"`
	Data    interface{}         `json:"data,omitempty"`
	Message string              `json:"message,omitempty"`
	Errors  map[string][]string `json:"errors,omitempty"`
}

func noStore(c *gin.Context) {
	c.Header("Cache-Control", "no-store")
	c.Header("Pragma", "no-cache")
}

// JSON sends the payload as-is.
func JSON(c *gin.Context, status int, data interface{}) {
	noStore(c)
	c.JSON(status, data)
}

// Created responds with HTTP 201 Created.
func Created(c *gin.Context, data interface{}) {
	JSON(c, http.StatusCreated, data)
}

// NoContent sends a 204 response.
func NoContent(c *gin.Context) {
	c.Status(http.StatusNoContent)
}

// Error renders err using the academic contract: field errors at 422, an
// empty body at 404 and a bare message otherwise.
func Error(c *gin.Context, err error) {
	appErr := appErrors.FromError(err)
	noStore(c)
	if appErr.Status == http.StatusNotFound {
		c.AbortWithStatus(http.StatusNotFound)
		return
	}
	c.AbortWithStatusJSON(appErr.Status, ErrorBody{Message: appErr.Message, Errors: appErr.Fields})
}

// Success wraps data in the event envelope.
func Success(c *gin.Context, status int, data interface{}, message string) {
	noStore(c)
	c.JSON(status, Envelope{Success: true, Data: data, Message: message})
}

// Message sends a success envelope that carries only a message.
func Message(c *gin.Context, message string) {
	Success(c, http.StatusOK, nil, message)
}

// Fail renders err inside the event envelope. Field errors are sent without
// a message.
func Fail(c *gin.Context, err error) {
	appErr := appErrors.FromError(err)
	noStore(c)
	if len(appErr.Fields) > 0 {
		c.AbortWithStatusJSON(appErr.Status, Envelope{Success: false, Errors: appErr.Fields})
		return
	}
	c.AbortWithStatusJSON(appErr.Status, Envelope{Success: false, Message: appErr.Message})
}
