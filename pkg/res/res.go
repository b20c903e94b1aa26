package res

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Response is the JSON envelope returned by every endpoint.
type Response struct {
	Message string `json:"message"`
	Data    any    `json:"data,omitempty"`
}

// OK sends a 200 response with the given message and data.
func OK(c *gin.Context, message string, data any) {
	c.JSON(http.StatusOK, Response{Message: message, Data: data})
}

// Created sends a 201 response with the given message and data.
func Created(c *gin.Context, message string, data any) {
	c.JSON(http.StatusCreated, Response{Message: message, Data: data})
}

// BadRequest sends a 400 response with the given message.
func BadRequest(c *gin.Context, message string) {
	c.JSON(http.StatusBadRequest, Response{Message: message})
}

// Conflict sends a 409 response with the given message.
func Conflict(c *gin.Context, message string) {
	c.JSON(http.StatusConflict, Response{Message: message})
}

// InternalError sends a generic 500 response. The underlying error is
// never included in the body; callers are expected to log it.
func InternalError(c *gin.Context, message string) {
	c.JSON(http.StatusInternalServerError, Response{Message: message})
}
