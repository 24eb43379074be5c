package images

import (
	"encoding/base64"
	"io"
	"strings"

	"github.com/pkg/errors"
)

// MaxImageSize is the upload limit enforced before storage.
const MaxImageSize = 5 * 1024 * 1024

var allowedContentTypes = []string{
	"image/jpeg", "image/jpg", "image/png", "image/gif", "image/webp",
}

var (
	// ErrInvalidImage indicates the upload failed size or content-type checks.
	ErrInvalidImage = errors.New("invalid image")

	// ErrImageRead indicates the upload bytes could not be read.
	ErrImageRead = errors.New("failed to process image file")
)

// Validate checks the declared size and content type of an uploaded image.
func Validate(size int64, contentType string) error {
	if size <= 0 {
		return errors.Wrap(ErrInvalidImage, "image file is required")
	}
	if size > MaxImageSize {
		return errors.Wrap(ErrInvalidImage, "image size exceeds maximum allowed size of 5MB")
	}
	if !isAllowedContentType(contentType) {
		return errors.Wrap(ErrInvalidImage, "invalid image format, allowed formats: JPEG, PNG, GIF, WEBP")
	}
	return nil
}

// EncodeBase64 reads the image stream once and returns a base64 string for
// inline storage on the product row.
func EncodeBase64(r io.Reader) (string, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return "", errors.Wrap(ErrImageRead, err.Error())
	}
	return base64.StdEncoding.EncodeToString(raw), nil
}

func isAllowedContentType(contentType string) bool {
	for _, allowed := range allowedContentTypes {
		if strings.EqualFold(allowed, contentType) {
			return true
		}
	}
	return false
}
