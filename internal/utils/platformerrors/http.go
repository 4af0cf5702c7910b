package platformerrors

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

// HTTPErrorResponse represents the standard error response format.
type HTTPErrorResponse struct {
	Error *HTTPErrorDetail `json:"error"`
}

// HTTPErrorDetail contains error details for HTTP responses.
type HTTPErrorDetail struct {
	Message   string `json:"message"`
	Type      string `json:"type"`
	Code      string `json:"code,omitempty"`
	RequestID string `json:"request_id,omitempty"`
}

// Detail renders the error as a response body detail.
func (e *PlatformError) Detail() *HTTPErrorDetail {
	return &HTTPErrorDetail{
		Message:   e.Message,
		Type:      errorTypeToString(e.Type),
		Code:      e.UUID,
		RequestID: e.RequestID,
	}
}

// WriteHTTPError logs err and writes it as the aborting HTTP response.
func WriteHTTPError(c *gin.Context, err *PlatformError, log zerolog.Logger) {
	if err == nil {
		WriteInternalError(c, "unknown error")
		return
	}

	LogError(log, err)
	detail := err.Detail()
	if detail.RequestID == "" {
		detail.RequestID = RequestIDFromContext(c.Request.Context())
	}
	c.AbortWithStatusJSON(ErrorTypeToHTTPStatus(err.Type), HTTPErrorResponse{Error: detail})
}

// WriteUnauthorized writes a 401 Unauthorized response.
func WriteUnauthorized(c *gin.Context, message string) {
	writeSimple(c, http.StatusUnauthorized, message, "unauthorized_error")
}

// WriteForbidden writes a 403 Forbidden response.
func WriteForbidden(c *gin.Context, message string) {
	writeSimple(c, http.StatusForbidden, message, "forbidden_error")
}

// WriteInternalError writes a 500 Internal Server Error response.
func WriteInternalError(c *gin.Context, message string) {
	writeSimple(c, http.StatusInternalServerError, message, "internal_error")
}

func writeSimple(c *gin.Context, status int, message, errType string) {
	c.AbortWithStatusJSON(status, HTTPErrorResponse{
		Error: &HTTPErrorDetail{
			Message:   message,
			Type:      errType,
			RequestID: RequestIDFromContext(c.Request.Context()),
		},
	})
}

// errorTypeToString converts an ErrorType to a snake_case string for API responses.
func errorTypeToString(t ErrorType) string {
	switch t {
	case ErrorTypeNotFound:
		return "not_found_error"
	case ErrorTypeValidation:
		return "validation_error"
	case ErrorTypeConflict:
		return "conflict_error"
	case ErrorTypeTooLarge:
		return "file_too_large_error"
	case ErrorTypeDatabaseError:
		return "database_error"
	default:
		return "internal_error"
	}
}
