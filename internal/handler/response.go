package handler

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"billscan/internal/domain"
)

// APIResponse is the standard envelope for all API responses.
type APIResponse struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   *APIError   `json:"error,omitempty"`
	Meta    *PagMeta    `json:"meta,omitempty"`
}

// APIError holds error details in the response.
type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// PagMeta holds pagination metadata.
type PagMeta struct {
	Total  int `json:"total"`
	Offset int `json:"offset"`
	Limit  int `json:"limit"`
}

// RespondOK sends a 200 success response.
func RespondOK(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, APIResponse{Success: true, Data: data})
}

// RespondPaginated sends a 200 success response with pagination metadata.
func RespondPaginated(c *gin.Context, data interface{}, meta PagMeta) {
	c.JSON(http.StatusOK, APIResponse{Success: true, Data: data, Meta: &meta})
}

// RespondError sends an error response with the given status code.
func RespondError(c *gin.Context, status int, code, msg string) {
	c.JSON(status, APIResponse{
		Success: false,
		Error:   &APIError{Code: code, Message: msg},
	})
}

// MapDomainError translates domain errors to HTTP status codes and error codes.
func MapDomainError(err error) (status int, code, msg string) {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		return http.StatusNotFound, "NOT_FOUND", "resource not found"
	case errors.Is(err, domain.ErrEmptyInput):
		return http.StatusBadRequest, "EMPTY_INPUT", "input text is empty"
	case errors.Is(err, domain.ErrNotABillDocument):
		return http.StatusUnprocessableEntity, "NOT_A_BILL", "text does not look like a bill"
	case errors.Is(err, domain.ErrMissingRequiredField):
		return http.StatusUnprocessableEntity, "MISSING_AMOUNT", "no amount could be extracted"
	case errors.Is(err, domain.ErrUnparsableAmount):
		return http.StatusUnprocessableEntity, "UNPARSABLE_AMOUNT", "amount value could not be parsed"
	case errors.Is(err, domain.ErrUnparsableDate):
		return http.StatusUnprocessableEntity, "UNPARSABLE_DATE", "date value could not be parsed"
	case errors.Is(err, domain.ErrNoMatchingStrategy):
		return http.StatusUnprocessableEntity, "NO_MATCHING_STRATEGY", "all extraction strategies failed"
	case errors.Is(err, domain.ErrArchiveFailed):
		return http.StatusInternalServerError, "ARCHIVE_FAILED", "source text archive to storage failed"
	default:
		return http.StatusInternalServerError, "INTERNAL_ERROR", "an internal error occurred"
	}
}

// HandleError maps a domain error and sends the appropriate error response.
func HandleError(c *gin.Context, err error) {
	status, code, msg := MapDomainError(err)
	if status >= 500 {
		requestID, _ := c.Get("request_id")
		log.Printf("[%s] internal error: %v", requestID, err)
	}
	RespondError(c, status, code, msg)
}
