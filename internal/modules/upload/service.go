package upload

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"net/http"

	"github.com/kovidbehl97/vroomtest/internal/domain"
	"github.com/kovidbehl97/vroomtest/internal/pkg/apperr"
	"github.com/kovidbehl97/vroomtest/internal/pkg/imagestore"
	"go.uber.org/zap"
)

const MaxImageSize = 10 << 20

var (
	ErrFileRequired = apperr.New(apperr.ErrMissingField, "no image file uploaded")
	ErrNotAnImage   = apperr.New(apperr.ErrInvalidInput, "file must be a jpeg, png, gif or webp image")
	ErrTooLarge     = apperr.New(apperr.ErrInvalidInput, "image must be 10 MB or smaller")
)

var allowedTypes = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
	"image/gif":  true,
	"image/webp": true,
}

type Service struct {
	store imagestore.Store
	log   *zap.Logger
}

func NewService(store imagestore.Store, log *zap.Logger) *Service {
	if log == nil {
		log = zap.NewNop()
	}
	return &Service{store: store, log: log}
}

// UploadImage sniffs the content type from the first bytes instead of
// trusting the client header, then hands the stream to the store.
func (s *Service) UploadImage(ctx context.Context, p *domain.Principal, r io.Reader, size int64) (string, error) {
	if err := domain.Authorize(p, domain.RoleAdmin); err != nil {
		return "", err
	}
	if r == nil {
		return "", ErrFileRequired
	}
	if size > MaxImageSize {
		return "", ErrTooLarge
	}

	br := bufio.NewReaderSize(r, 512)
	head, err := br.Peek(512)
	if err != nil && err != io.EOF && err != bufio.ErrBufferFull {
		return "", fmt.Errorf("read upload: %w", err)
	}
	if len(head) == 0 {
		return "", ErrFileRequired
	}
	contentType := http.DetectContentType(head)
	if !allowedTypes[contentType] {
		return "", ErrNotAnImage
	}

	url, err := s.store.Save(ctx, contentType, io.LimitReader(br, MaxImageSize))
	if err != nil {
		s.log.Error("image upload failed", zap.Error(err))
		return "", apperr.Wrap(apperr.ErrUpstream, "failed to upload image", err)
	}
	s.log.Info("image uploaded", zap.String("url", url), zap.String("by", p.UserID))
	return url, nil
}
