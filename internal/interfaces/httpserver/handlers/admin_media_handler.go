package handlers

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/emerginginv/media-api/internal/config"
	domain "github.com/emerginginv/media-api/internal/domain/media"
	"github.com/emerginginv/media-api/internal/interfaces/httpserver/requests"
	"github.com/emerginginv/media-api/internal/interfaces/httpserver/responses"
	"github.com/emerginginv/media-api/internal/utils/platformerrors"
)

// multipartMemory is the part of a form kept in memory before spilling to disk.
const multipartMemory = 32 << 20

// AdminMediaHandler serves the media manager endpoints.
type AdminMediaHandler struct {
	cfg     *config.Config
	service *domain.Service
	log     zerolog.Logger
}

func NewAdminMediaHandler(cfg *config.Config, service *domain.Service, log zerolog.Logger) *AdminMediaHandler {
	return &AdminMediaHandler{
		cfg:     cfg,
		service: service,
		log:     log.With().Str("component", "admin-media-handler").Logger(),
	}
}

// Upload godoc
// @Summary      Upload media
// @Description  Uploads one or more files. A single file returns the asset with 201; several files return per-file results with 200.
// @Tags         admin
// @Accept       multipart/form-data
// @Produce      json
// @Param        files        formData  file    true   "Files to upload (repeatable)"
// @Param        category     formData  string  false  "Category (default general)"
// @Param        title        formData  string  false  "Title (default original file name)"
// @Param        alt_text     formData  string  false  "Alternative text"
// @Param        description  formData  string  false  "Description"
// @Param        is_featured  formData  bool    false  "Feature on the site"
// @Success      201          {object}  responses.UploadedAssetResponse
// @Success      200          {object}  responses.UploadManyResponse
// @Failure      400          {object}  responses.ErrorResponse
// @Failure      401          {object}  responses.ErrorResponse
// @Failure      413          {object}  responses.ErrorResponse
// @Failure      502          {object}  responses.ErrorResponse
// @Security     AdminKeyAuth
// @Security     BearerAuth
// @Router       /v1/admin/media [post]
func (h *AdminMediaHandler) Upload(c *gin.Context) {
	if err := c.Request.ParseMultipartForm(multipartMemory); err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			responses.HandleNewError(c, platformerrors.ErrorTypeTooLarge, "request body exceeds the upload limit", "b81e3d7c-5a29-4f60-9c4d-2e7a1f8b6d35")
			return
		}
		responses.HandleNewError(c, platformerrors.ErrorTypeValidation, "multipart form is required", "4c7f2a9d-8e31-4b56-a1d0-6f3e9b2c7a84")
		return
	}
	defer func() {
		if c.Request.MultipartForm != nil {
			_ = c.Request.MultipartForm.RemoveAll()
		}
	}()

	var form requests.UploadForm
	if err := c.ShouldBind(&form); err != nil {
		responses.HandleNewError(c, platformerrors.ErrorTypeValidation, "invalid form: "+err.Error(), "e93b6c1a-2d58-4f07-8b4e-1a6d9c3f5e20")
		return
	}

	headers := requests.FileHeaders(c.Request.MultipartForm)
	if len(headers) == 0 {
		responses.HandleNewError(c, platformerrors.ErrorTypeValidation, "at least one file is required in the \"files\" field", "7a2d5f8e-3c61-4e94-b0a7-5d1c8e2f9b46")
		return
	}

	files := make([]domain.File, 0, len(headers))
	closers := make([]io.Closer, 0, len(headers))
	defer func() {
		for _, closer := range closers {
			_ = closer.Close()
		}
	}()
	for _, header := range headers {
		file, closer, err := requests.OpenFile(header)
		if err != nil {
			h.log.Error().Err(err).Str("filename", header.Filename).Msg("open multipart file")
			responses.HandleNewError(c, platformerrors.ErrorTypeValidation, "could not read uploaded file "+header.Filename, "0d6e9a3b-7f12-4c85-9e3a-8b4f1d7c2a69")
			return
		}
		files = append(files, file)
		closers = append(closers, closer)
	}

	opts := form.ToOptions()
	ctx := c.Request.Context()

	if len(files) == 1 {
		asset, err := h.service.Upload(ctx, files[0], opts)
		if err != nil {
			responses.HandleError(c, err)
			return
		}
		c.JSON(http.StatusCreated, responses.BuildUploadedAssetResponse(*asset))
		return
	}

	results := h.service.UploadMany(ctx, files, opts)
	resp := responses.BuildUploadManyResponse(c, results)
	h.log.Info().Int("succeeded", resp.Succeeded).Int("failed", resp.Failed).Msg("batch upload finished")
	c.JSON(http.StatusOK, resp)
}

// List godoc
// @Summary      List media (admin)
// @Description  Returns assets newest first for the media manager.
// @Tags         admin
// @Produce      json
// @Param        category  query     string  false  "Category"
// @Param        limit     query     int     false  "Maximum number of assets (default 50, max 200)"
// @Success      200       {object}  responses.ListResponse
// @Failure      401       {object}  responses.ErrorResponse
// @Security     AdminKeyAuth
// @Security     BearerAuth
// @Router       /v1/admin/media [get]
func (h *AdminMediaHandler) List(c *gin.Context) {
	var query requests.ListQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		responses.HandleNewError(c, platformerrors.ErrorTypeValidation, "invalid query: "+err.Error(), "a5c8e1f3-9b27-4d60-8e4a-7f2b5d9c1e38")
		return
	}
	assets, err := h.service.ListByCategory(c.Request.Context(), query.Category, query.Limit)
	if err != nil {
		responses.HandleError(c, err)
		return
	}
	c.JSON(http.StatusOK, responses.BuildListResponse(assets))
}

// Recent godoc
// @Summary      Recent uploads
// @Description  Returns the latest uploads handled by this instance, newest first.
// @Tags         admin
// @Produce      json
// @Param        limit  query     int  false  "Maximum number of items"
// @Success      200    {object}  responses.RecentResponse
// @Security     AdminKeyAuth
// @Security     BearerAuth
// @Router       /v1/admin/media/recent [get]
func (h *AdminMediaHandler) Recent(c *gin.Context) {
	var query requests.ListQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		responses.HandleNewError(c, platformerrors.ErrorTypeValidation, "invalid query: "+err.Error(), "3e9d1b5a-6c48-4f27-a3e0-9d5b2c8f4a71")
		return
	}
	c.JSON(http.StatusOK, responses.BuildRecentResponse(h.service.Recent(query.Limit)))
}

// Categories godoc
// @Summary      Media categories
// @Description  Suggested categories plus any category in use, with asset counts.
// @Tags         admin
// @Produce      json
// @Success      200  {object}  responses.CategoriesResponse
// @Security     AdminKeyAuth
// @Security     BearerAuth
// @Router       /v1/admin/media/categories [get]
func (h *AdminMediaHandler) Categories(c *gin.Context) {
	categories, err := h.service.Categories(c.Request.Context())
	if err != nil {
		responses.HandleError(c, err)
		return
	}
	c.JSON(http.StatusOK, responses.CategoriesResponse{Data: categories})
}

// Get godoc
// @Summary      Get media
// @Tags         admin
// @Produce      json
// @Param        id   path      string  true  "Media ID (med_xxx)"
// @Success      200  {object}  responses.AssetResponse
// @Failure      404  {object}  responses.ErrorResponse
// @Security     AdminKeyAuth
// @Security     BearerAuth
// @Router       /v1/admin/media/{id} [get]
func (h *AdminMediaHandler) Get(c *gin.Context) {
	asset, err := h.service.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		responses.HandleError(c, err)
		return
	}
	c.JSON(http.StatusOK, responses.BuildAssetResponse(*asset))
}

// Delete godoc
// @Summary      Delete media
// @Description  Removes the stored object and then its catalog entry.
// @Tags         admin
// @Produce      json
// @Param        id   path      string  true  "Media ID (med_xxx)"
// @Success      200  {object}  responses.DeleteResponse
// @Failure      404  {object}  responses.ErrorResponse
// @Failure      502  {object}  responses.ErrorResponse
// @Security     AdminKeyAuth
// @Security     BearerAuth
// @Router       /v1/admin/media/{id} [delete]
func (h *AdminMediaHandler) Delete(c *gin.Context) {
	id := c.Param("id")
	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		responses.HandleError(c, err)
		return
	}
	c.JSON(http.StatusOK, responses.DeleteResponse{ID: id, Deleted: true})
}
