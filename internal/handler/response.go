package handler

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"postboard/internal/domain"
)

const genericFailure = "Something went wrong"

// APIResponse is the standard envelope for all API responses.
type APIResponse struct {
	Success bool        `json:"success"`
	Message string      `json:"message"`
	Code    string      `json:"code,omitempty"`
	Data    interface{} `json:"data,omitempty"`
}

// RespondOK sends a 200 success response.
func RespondOK(c *gin.Context, msg string, data interface{}) {
	c.JSON(http.StatusOK, APIResponse{Success: true, Message: msg, Data: data})
}

// RespondCreated sends a 201 success response.
func RespondCreated(c *gin.Context, msg string, data interface{}) {
	c.JSON(http.StatusCreated, APIResponse{Success: true, Message: msg, Data: data})
}

// RespondError sends an error response with the given status code.
func RespondError(c *gin.Context, status int, code, msg string) {
	c.JSON(status, APIResponse{Success: false, Code: code, Message: msg})
}

// MapDomainError translates domain errors to HTTP status codes and error codes.
// Backend failures collapse to a generic message so that bucket names,
// credentials and driver errors never reach the client.
func MapDomainError(err error) (status int, code, msg string) {
	switch {
	case errors.Is(err, domain.ErrValidation):
		return http.StatusBadRequest, "VALIDATION_ERROR", detailOr(err, "invalid request")
	case errors.Is(err, domain.ErrNotFound):
		return http.StatusNotFound, "NOT_FOUND", "post not found"
	case errors.Is(err, domain.ErrUnsupportedFileType):
		return http.StatusBadRequest, "UNSUPPORTED_FILE_TYPE", "unsupported file type; allowed: jpg, png, gif, webp, bmp"
	case errors.Is(err, domain.ErrFileTooLarge):
		return http.StatusRequestEntityTooLarge, "FILE_TOO_LARGE", "file exceeds maximum allowed size"
	case errors.Is(err, domain.ErrImageTransform):
		return http.StatusBadRequest, "INVALID_IMAGE", detailOr(err, "image could not be processed")
	case errors.Is(err, domain.ErrStorage):
		return http.StatusInternalServerError, "STORAGE_ERROR", genericFailure
	case errors.Is(err, domain.ErrCDN):
		return http.StatusInternalServerError, "CDN_ERROR", genericFailure
	case errors.Is(err, domain.ErrRepository):
		return http.StatusInternalServerError, "REPOSITORY_ERROR", genericFailure
	default:
		return http.StatusInternalServerError, "INTERNAL_ERROR", genericFailure
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

func detailOr(err error, fallback string) string {
	if d := domain.SafeDetail(err); d != "" {
		return d
	}
	return fallback
}
