package service

import (
	"bytes"
	"context"
	"encoding/hex"
	"fmt"
	"io"
	"path"
	"strings"

	"github.com/google/uuid"

	"github.com/99minutos/catalog-api/internal/core/domain"
	"github.com/99minutos/catalog-api/internal/core/ports"
)

// DefaultMaxImageBytes is the upload size limit when none is configured.
const DefaultMaxImageBytes int64 = 2 << 20

// uploadExtensions is narrower than the raw filename rule of the Service
// schema, which also accepts gif.
var uploadExtensions = map[string]struct{}{"png": {}, "jpg": {}, "jpeg": {}}

// ImageUploader validates service images and stores them under generated names.
type ImageUploader struct {
	store    ports.ImageStore
	maxBytes int64
}

func NewImageUploader(store ports.ImageStore, maxBytes int64) *ImageUploader {
	if maxBytes <= 0 {
		maxBytes = DefaultMaxImageBytes
	}
	return &ImageUploader{store: store, maxBytes: maxBytes}
}

func (u *ImageUploader) MaxBytes() int64 { return u.maxBytes }

// Store checks the extension and size of up before writing anything and
// returns the generated name. The client filename is never used for storage.
func (u *ImageUploader) Store(ctx context.Context, up *ports.ImageUpload) (string, error) {
	ext, err := u.extension(up.Filename)
	if err != nil {
		return "", err
	}
	if up.Size > u.maxBytes {
		return "", u.tooLarge()
	}

	// The declared size may lie; buffer at most one byte past the limit.
	content, err := io.ReadAll(io.LimitReader(up.Content, u.maxBytes+1))
	if err != nil {
		return "", fmt.Errorf("read image: %w", err)
	}
	if int64(len(content)) > u.maxBytes {
		return "", u.tooLarge()
	}

	name := GenerateImageName(ext)
	if err := u.store.Save(ctx, name, bytes.NewReader(content)); err != nil {
		return "", fmt.Errorf("save image: %w", err)
	}
	return name, nil
}

func (u *ImageUploader) extension(filename string) (string, error) {
	ext := strings.TrimPrefix(strings.ToLower(path.Ext(filename)), ".")
	if _, ok := uploadExtensions[ext]; !ok {
		return "", &domain.UploadError{Reason: domain.ErrImageExtension, Message: "Invalid image format"}
	}
	return ext, nil
}

func (u *ImageUploader) tooLarge() error {
	return &domain.UploadError{
		Reason:  domain.ErrImageTooLarge,
		Message: fmt.Sprintf("Max %dMB allowed", u.maxBytes>>20),
	}
}

// GenerateImageName returns a random 128-bit hex name with ext appended.
func GenerateImageName(ext string) string {
	id := uuid.New()
	return hex.EncodeToString(id[:]) + "." + ext
}
