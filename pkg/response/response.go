package response

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/coaching-center-api/internal/models"
	appErrors "github.com/noah-isme/coaching-center-api/pkg/errors"
)

// Envelope represents the common response contract.
type Envelope struct {
	Success    bool               `json:"success"`
	Count      *int               `json:"count,omitempty"`
	Data       interface{}        `json:"data,omitempty"`
	Pagination *models.Pagination `json:"pagination,omitempty"`
	Message    string             `json:"message,omitempty"`
	Error      *ErrorBody         `json:"error,omitempty"`
}

// ErrorBody is the error member of a failed response. Debug carries the
// wrapped cause and is only populated in gin debug mode.
type ErrorBody struct {
	Code    string   `json:"code"`
	Message string   `json:"message"`
	Status  int      `json:"status"`
	Details []string `json:"details,omitempty"`
	Debug   string   `json:"debug,omitempty"`
}

// JSON sends a success response.
func JSON(c *gin.Context, status int, data interface{}) {
	noStore(c)
	c.JSON(status, Envelope{Success: true, Data: data})
}

// List sends a collection with its item count and optional pagination.
func List(c *gin.Context, data interface{}, count int, pagination *models.Pagination) {
	noStore(c)
	c.JSON(http.StatusOK, Envelope{Success: true, Count: &count, Data: data, Pagination: pagination})
}

// Created responds with HTTP 201 Created.
func Created(c *gin.Context, data interface{}) {
	JSON(c, http.StatusCreated, data)
}

// Message sends a success response without data.
func Message(c *gin.Context, status int, message string) {
	noStore(c)
	c.JSON(status, Envelope{Success: true, Message: message})
}

// Error sends an error response converting the error to the common structure.
// The cause is attached to the gin context so the request logger can report it.
func Error(c *gin.Context, err error) {
	appErr := appErrors.FromError(err)
	_ = c.Error(err)

	body := &ErrorBody{
		Code:    appErr.Code,
		Message: appErr.Message,
		Status:  appErr.Status,
		Details: appErr.Details,
	}
	if gin.Mode() == gin.DebugMode && appErr.Err != nil {
		body.Debug = appErr.Err.Error()
	}
	noStore(c)
	c.JSON(appErr.Status, Envelope{Success: false, Error: body})
}

// NoContent sends a 204 response.
func NoContent(c *gin.Context) {
	c.Status(http.StatusNoContent)
}

func noStore(c *gin.Context) {
	c.Header("Cache-Control", "no-store")
	c.Header("Pragma", "no-cache")
}
