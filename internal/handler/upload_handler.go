package handler

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/it-institute-cms/internal/dto"
	"github.com/noah-isme/it-institute-cms/internal/service"
	appErrors "github.com/noah-isme/it-institute-cms/pkg/errors"
	"github.com/noah-isme/it-institute-cms/pkg/response"
)

// multipartOverhead is the slack allowed on top of the file limit for the
// multipart envelope and other form fields.
const multipartOverhead = 1 << 20

type imageSaver interface {
	SaveImage(ctx context.Context, in service.UploadInput) (string, error)
	MaxBytes() int64
}

type uploadObserver interface {
	ObserveUpload(result string)
}

// UploadHandler accepts image uploads for CMS content.
type UploadHandler struct {
	uploads imageSaver
	metrics uploadObserver
}

// NewUploadHandler constructs an upload handler. metrics may be nil.
func NewUploadHandler(uploads imageSaver, metrics uploadObserver) *UploadHandler {
	return &UploadHandler{uploads: uploads, metrics: metrics}
}

// Upload godoc
// @Summary Upload image
// @Description Stores a jpg, png or webp image and returns its public URL
// @Tags Uploads
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param file formData file true "Image"
// @Success 200 {object} dto.UploadResponse
// @Failure 400 {object} response.ErrorBody
// @Failure 413 {object} response.ErrorBody
// @Router /admin/cms/upload [post]
func (h *UploadHandler) Upload(c *gin.Context) {
	in, err := readUpload(c, "file", h.uploads.MaxBytes())
	if err == nil && in == nil {
		err = appErrors.Clone(appErrors.ErrValidation, "file is required")
	}
	if err != nil {
		h.observe("rejected")
		response.Error(c, err)
		return
	}
	defer closeBody(in)

	url, err := h.uploads.SaveImage(c.Request.Context(), *in)
	if err != nil {
		h.observe("rejected")
		response.Error(c, err)
		return
	}
	h.observe("ok")
	response.OK(c, dto.UploadResponse{URL: url})
}

func (h *UploadHandler) observe(result string) {
	if h.metrics != nil {
		h.metrics.ObserveUpload(result)
	}
}

// readUpload opens the named multipart file. A missing file yields (nil, nil).
// The request body is capped at maxBytes plus envelope slack.
func readUpload(c *gin.Context, field string, maxBytes int64) (*service.UploadInput, error) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxBytes+multipartOverhead)

	header, err := c.FormFile(field)
	if err != nil {
		var tooLarge *http.MaxBytesError
		switch {
		case errors.As(err, &tooLarge):
			return nil, appErrors.Clone(appErrors.ErrPayloadTooLarge, "file is too large")
		case errors.Is(err, http.ErrMissingFile):
			return nil, nil
		default:
			return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid multipart form")
		}
	}

	file, err := header.Open()
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "could not read uploaded file")
	}
	return &service.UploadInput{
		Filename:    header.Filename,
		ContentType: header.Header.Get("Content-Type"),
		Size:        header.Size,
		Body:        file,
	}, nil
}

func closeBody(in *service.UploadInput) {
	if in == nil {
		return
	}
	if closer, ok := in.Body.(interface{ Close() error }); ok {
		_ = closer.Close()
	}
}
