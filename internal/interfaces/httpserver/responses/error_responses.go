package responses

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/emerginginv/media-api/internal/domain/media"
	"github.com/emerginginv/media-api/internal/utils/platformerrors"
)

// ErrorResponse is the error body of every endpoint.
type ErrorResponse = platformerrors.HTTPErrorResponse

// StatusForCode maps a media error code onto an HTTP status.
func StatusForCode(code media.ErrorCode) int {
	switch code {
	case media.CodeUnsupportedType, media.CodeFileTooLarge, media.CodeInvalidRequest:
		return http.StatusBadRequest
	case media.CodeNotFound:
		return http.StatusNotFound
	case media.CodeStorageWrite, media.CodeStorageDelete, media.CodeStorageRead:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

// ErrorDetail renders an error as the body detail, without writing it.
func ErrorDetail(c *gin.Context, err error) (int, *platformerrors.HTTPErrorDetail) {
	requestID := platformerrors.RequestIDFromContext(c.Request.Context())

	var mErr *media.Error
	if errors.As(err, &mErr) {
		return StatusForCode(mErr.Code), &platformerrors.HTTPErrorDetail{
			Message:   mErr.Message,
			Type:      string(mErr.Code),
			Code:      string(mErr.Code),
			RequestID: requestID,
		}
	}

	if pErr := platformerrors.GetPlatformError(err); pErr != nil {
		detail := pErr.Detail()
		if detail.RequestID == "" {
			detail.RequestID = requestID
		}
		return platformerrors.ErrorTypeToHTTPStatus(pErr.Type), detail
	}

	return http.StatusInternalServerError, &platformerrors.HTTPErrorDetail{
		Message:   "internal error",
		Type:      "internal_error",
		RequestID: requestID,
	}
}

// HandleError writes err as a JSON error response and aborts the chain.
// Platform errors in the chain are logged with their fields through the
// request logger.
func HandleError(c *gin.Context, err error) {
	_ = c.Error(err)
	log := *zerolog.Ctx(c.Request.Context())

	var mErr *media.Error
	if !errors.As(err, &mErr) {
		if pErr := platformerrors.GetPlatformError(err); pErr != nil {
			platformerrors.WriteHTTPError(c, pErr, log)
			return
		}
	}

	if pErr := platformerrors.GetPlatformError(err); pErr != nil {
		platformerrors.LogError(log, pErr)
	}
	status, detail := ErrorDetail(c, err)
	c.AbortWithStatusJSON(status, ErrorResponse{Error: detail})
}

// HandleNewError writes a validation style error built at the route layer.
func HandleNewError(c *gin.Context, errorType platformerrors.ErrorType, message string, uuid string) {
	err := platformerrors.NewError(c.Request.Context(), platformerrors.LayerRoute, errorType, message, nil, uuid)
	HandleError(c, err)
}
