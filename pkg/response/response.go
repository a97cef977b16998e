package response

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/quizcomp/backend/internal/apperr"
)

// Body is the standard API response envelope.
type Body struct {
	Success bool       `json:"success"`
	Data    any        `json:"data,omitempty"`
	Error   *ErrorBody `json:"error,omitempty"`
}

// ErrorBody carries a machine-readable code alongside the human message.
type ErrorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// OK sends a 200 JSON response with data.
func OK(c *gin.Context, data any) {
	c.JSON(http.StatusOK, Body{Success: true, Data: data})
}

// Created sends a 201 JSON response with data.
func Created(c *gin.Context, data any) {
	c.JSON(http.StatusCreated, Body{Success: true, Data: data})
}

// NoContent sends 204.
func NoContent(c *gin.Context) {
	c.Status(http.StatusNoContent)
}

// Error sends an error mapped through the apperr taxonomy. Unknown errors
// become 500 internal.
func Error(c *gin.Context, err error) {
	e := apperr.Convert(err)
	c.JSON(e.HTTPStatusCode(), Body{Success: false, Error: &ErrorBody{
		Code:    e.Code.String(),
		Message: e.Message,
	}})
}

// BadRequest sends 400 with error message.
func BadRequest(c *gin.Context, msg string) {
	fail(c, http.StatusBadRequest, apperr.CodeInvalidArgument, msg)
}

// Unauthorized sends 401.
func Unauthorized(c *gin.Context, msg string) {
	fail(c, http.StatusUnauthorized, apperr.CodeUnauthenticated, msg)
}

// Forbidden sends 403.
func Forbidden(c *gin.Context, msg string) {
	fail(c, http.StatusForbidden, apperr.CodePermissionDenied, msg)
}

// NotFound sends 404.
func NotFound(c *gin.Context, msg string) {
	fail(c, http.StatusNotFound, apperr.CodeNotFound, msg)
}

// Conflict sends 409.
func Conflict(c *gin.Context, msg string) {
	fail(c, http.StatusConflict, apperr.CodeAlreadyExists, msg)
}

// Unavailable sends 503 for store/network failures the client may retry.
func Unavailable(c *gin.Context, msg string) {
	fail(c, http.StatusServiceUnavailable, apperr.CodeUnavailable, msg)
}

// Internal sends 500.
func Internal(c *gin.Context, msg string) {
	fail(c, http.StatusInternalServerError, apperr.CodeInternal, msg)
}

func fail(c *gin.Context, status int, code apperr.Code, msg string) {
	c.JSON(status, Body{Success: false, Error: &ErrorBody{Code: code.String(), Message: msg}})
}
