package handlers

import (
	"io"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	domain "github.com/emerginginv/media-api/internal/domain/media"
	"github.com/emerginginv/media-api/internal/interfaces/httpserver/requests"
	"github.com/emerginginv/media-api/internal/interfaces/httpserver/responses"
	"github.com/emerginginv/media-api/internal/utils/platformerrors"
)

// MediaHandler serves the public read endpoints used by the site pages.
type MediaHandler struct {
	service *domain.Service
	log     zerolog.Logger
}

func NewMediaHandler(service *domain.Service, log zerolog.Logger) *MediaHandler {
	return &MediaHandler{
		service: service,
		log:     log.With().Str("component", "media-handler").Logger(),
	}
}

// List godoc
// @Summary      List media
// @Description  Returns assets newest first, optionally restricted to one category.
// @Tags         media
// @Produce      json
// @Param        category  query     string  false  "Category"
// @Param        limit     query     int     false  "Maximum number of assets (default 50, max 200)"
// @Success      200       {object}  responses.ListResponse
// @Failure      400       {object}  responses.ErrorResponse
// @Failure      500       {object}  responses.ErrorResponse
// @Router       /v1/media [get]
func (h *MediaHandler) List(c *gin.Context) {
	var query requests.ListQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		responses.HandleNewError(c, platformerrors.ErrorTypeValidation, "invalid query: "+err.Error(), "2f8c4b1e-7a90-4d36-b5e2-91c0d7a3f468")
		return
	}

	assets, err := h.service.ListByCategory(c.Request.Context(), query.Category, query.Limit)
	if err != nil {
		responses.HandleError(c, err)
		return
	}
	c.JSON(http.StatusOK, responses.BuildListResponse(assets))
}

// Featured godoc
// @Summary      List featured media
// @Description  Returns featured assets newest first.
// @Tags         media
// @Produce      json
// @Param        limit  query     int  false  "Maximum number of assets (default 10, max 200)"
// @Success      200    {object}  responses.ListResponse
// @Failure      400    {object}  responses.ErrorResponse
// @Failure      500    {object}  responses.ErrorResponse
// @Router       /v1/media/featured [get]
func (h *MediaHandler) Featured(c *gin.Context) {
	var query requests.ListQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		responses.HandleNewError(c, platformerrors.ErrorTypeValidation, "invalid query: "+err.Error(), "6d3a9e2f-1b74-4c85-a0f6-3e8b2d5c9a17")
		return
	}

	assets, err := h.service.ListFeatured(c.Request.Context(), query.Limit)
	if err != nil {
		responses.HandleError(c, err)
		return
	}
	c.JSON(http.StatusOK, responses.BuildListResponse(assets))
}

// ServeFile godoc
// @Summary      Stream a stored object
// @Description  Streams an object from backends without their own public endpoint (local, memory).
// @Tags         media
// @Produce      octet-stream
// @Param        bucket  path  string  true  "Bucket"
// @Param        key     path  string  true  "Object key"
// @Success      200     "binary data"
// @Failure      404     {object}  responses.ErrorResponse
// @Router       /v1/files/{bucket}/{key} [get]
func (h *MediaHandler) ServeFile(c *gin.Context) {
	reader, info, err := h.service.Open(c.Request.Context(), c.Param("bucket"), c.Param("key"))
	if err != nil {
		responses.HandleError(c, err)
		return
	}
	defer reader.Close()

	contentType := info.ContentType
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	c.Header("Content-Type", contentType)
	if info.Size > 0 {
		c.Header("Content-Length", strconv.FormatInt(info.Size, 10))
	}
	if cacheControl := h.service.Policy().CacheControl; cacheControl != "" {
		c.Header("Cache-Control", cacheControl)
	}
	c.Status(http.StatusOK)
	if _, err := io.Copy(c.Writer, reader); err != nil {
		h.log.Error().Err(err).Str("bucket", c.Param("bucket")).Str("key", c.Param("key")).Msg("stream error")
	}
}
