package response

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/PawMart-Adoption/service-listing/internal/domain"
)

// ErrorBody is the error half of the JSON envelope.
type ErrorBody struct {
	Kind    domain.ErrorKind `json:"kind"`
	Message string           `json:"message"`
	Fields  []string         `json:"fields,omitempty"`
}

// Envelope is the uniform JSON response shape.
type Envelope struct {
	Success    bool        `json:"success"`
	Data       interface{} `json:"data,omitempty"`
	Error      *ErrorBody  `json:"error,omitempty"`
	Pagination *PageMeta   `json:"pagination,omitempty"`
}

// PageMeta carries paging metadata for list responses.
type PageMeta struct {
	Total int64 `json:"total"`
	Page  int   `json:"page"`
	Limit int   `json:"limit"`
}

// statusFor is the single place an ErrorKind becomes an HTTP status code.
var statusFor = map[domain.ErrorKind]int{
	domain.KindValidation:   http.StatusBadRequest,
	domain.KindUnauthorized: http.StatusUnauthorized,
	domain.KindForbidden:    http.StatusForbidden,
	domain.KindNotFound:     http.StatusNotFound,
	domain.KindConflict:     http.StatusConflict,
	domain.KindPersistence:  http.StatusBadGateway,
	domain.KindInternal:     http.StatusInternalServerError,
}

// Success writes a 200 envelope with data.
func Success(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, Envelope{Success: true, Data: data})
}

// Created writes a 201 envelope with data.
func Created(c *gin.Context, data interface{}) {
	c.JSON(http.StatusCreated, Envelope{Success: true, Data: data})
}

// Paginated writes a 200 envelope with items and paging metadata.
func Paginated(c *gin.Context, items interface{}, total int64, page, limit int) {
	c.JSON(http.StatusOK, Envelope{
		Success:    true,
		Data:       items,
		Pagination: &PageMeta{Total: total, Page: page, Limit: limit},
	})
}

// BadRequest writes a 400 validation envelope.
func BadRequest(c *gin.Context, message string) {
	Error(c, domain.NewValidationError(message))
}

// Unauthorized writes a 401 envelope.
func Unauthorized(c *gin.Context, message string) {
	Error(c, domain.NewUnauthorizedError(message))
}

// Error maps err to its status code and writes the error envelope. Unknown
// errors are reported as internal without leaking their message.
func Error(c *gin.Context, err error) {
	var de *domain.Error
	if !errors.As(err, &de) {
		de = &domain.Error{Kind: domain.KindInternal, Message: "internal server error"}
	}

	status, ok := statusFor[de.Kind]
	if !ok {
		status = http.StatusInternalServerError
	}

	c.JSON(status, Envelope{
		Success: false,
		Error:   &ErrorBody{Kind: de.Kind, Message: de.Message, Fields: de.Fields},
	})
}
