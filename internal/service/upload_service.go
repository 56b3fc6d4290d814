package service

import (
	"context"
	"errors"
	"io"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	appErrors "github.com/noah-isme/it-institute-cms/pkg/errors"
	"github.com/noah-isme/it-institute-cms/pkg/storage"
)

// DefaultMaxUploadBytes caps uploads when no limit is configured.
const DefaultMaxUploadBytes int64 = 10 << 20

var allowedImageTypes = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/webp": ".webp",
}

var allowedImageExtensions = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".webp": true,
}

var errUploadTooLarge = errors.New("upload exceeds size limit")

// UploadInput describes one incoming file.
type UploadInput struct {
	Filename    string
	ContentType string
	Size        int64
	Body        io.Reader
}

type mediaRemover interface {
	Remove(name string) error
}

// UploadService validates images and hands them to the media backend.
type UploadService struct {
	backend  storage.Backend
	maxBytes int64
	logger   *zap.Logger
	janitor  mediaRemover
}

// NewUploadService constructs an UploadService.
func NewUploadService(backend storage.Backend, maxBytes int64, logger *zap.Logger) *UploadService {
	if maxBytes <= 0 {
		maxBytes = DefaultMaxUploadBytes
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &UploadService{backend: backend, maxBytes: maxBytes, logger: logger}
}

// MaxBytes reports the configured upload limit.
func (s *UploadService) MaxBytes() int64 {
	return s.maxBytes
}

// UseJanitor routes Discard through a background remover.
func (s *UploadService) UseJanitor(janitor mediaRemover) {
	s.janitor = janitor
}

// SaveImage stores an allowed image under a fresh random name and returns its
// public URL.
func (s *UploadService) SaveImage(ctx context.Context, in UploadInput) (string, error) {
	contentType := normalizeContentType(in.ContentType)
	fallbackExt, ok := allowedImageTypes[contentType]
	if !ok {
		return "", appErrors.Clone(appErrors.ErrValidation, "only images are allowed (jpg, png, webp)")
	}
	if in.Size > s.maxBytes {
		return "", appErrors.Clone(appErrors.ErrPayloadTooLarge, "file is too large")
	}

	name := uuid.NewString() + imageExtension(in.Filename, fallbackExt)
	body := &limitedReader{r: in.Body, remaining: s.maxBytes}
	url, err := s.backend.Put(ctx, name, contentType, body)
	if err != nil {
		if errors.Is(err, errUploadTooLarge) {
			return "", appErrors.Clone(appErrors.ErrPayloadTooLarge, "file is too large")
		}
		s.logger.Error("failed to store upload", zap.String("name", name), zap.Error(err))
		return "", appErrors.Wrap(err, appErrors.ErrStorage.Code, appErrors.ErrStorage.Status, "could not save file")
	}
	s.logger.Info("image uploaded", zap.String("name", name), zap.String("content_type", contentType))
	return url, nil
}

// Discard removes a stored object by its public URL. URLs that were not
// produced by SaveImage are left alone, so seeded or external images survive.
func (s *UploadService) Discard(ctx context.Context, url string) {
	name, ok := uploadedName(url)
	if !ok {
		s.logger.Debug("skipping discard of foreign media", zap.String("url", url))
		return
	}
	if s.janitor != nil {
		if err := s.janitor.Remove(name); err == nil {
			return
		}
	}
	if err := s.backend.Delete(ctx, name); err != nil {
		s.logger.Warn("failed to discard upload", zap.String("name", name), zap.Error(err))
	}
}

// uploadedName extracts the object name from url when it has the
// <uuid><image ext> shape SaveImage generates.
func uploadedName(url string) (string, bool) {
	name := url[strings.LastIndex(url, "/")+1:]
	ext := strings.ToLower(filepath.Ext(name))
	if !allowedImageExtensions[ext] {
		return "", false
	}
	if _, err := uuid.Parse(strings.TrimSuffix(name, filepath.Ext(name))); err != nil {
		return "", false
	}
	return name, true
}

func normalizeContentType(contentType string) string {
	if i := strings.IndexByte(contentType, ';'); i >= 0 {
		contentType = contentType[:i]
	}
	return strings.ToLower(strings.TrimSpace(contentType))
}

// imageExtension keeps the original lower-cased extension when it is an image
// one and otherwise uses the extension implied by the content type.
func imageExtension(filename, fallback string) string {
	ext := strings.ToLower(filepath.Ext(filepath.Base(filename)))
	if !allowedImageExtensions[ext] {
		return fallback
	}
	return ext
}

// limitedReader fails once more than remaining bytes have been read.
type limitedReader struct {
	r         io.Reader
	remaining int64
}

func (l *limitedReader) Read(p []byte) (int, error) {
	if l.remaining < 0 {
		return 0, errUploadTooLarge
	}
	if int64(len(p)) > l.remaining+1 {
		p = p[:l.remaining+1]
	}
	n, err := l.r.Read(p)
	l.remaining -= int64(n)
	if l.remaining < 0 {
		return n, errUploadTooLarge
	}
	return n, err
}
