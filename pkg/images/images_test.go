package images

import (
	"bytes"
	"encoding/base64"
	"strings"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidate(t *testing.T) {
	tests := []struct {
		name        string
		size        int64
		contentType string
		wantErr     bool
	}{
		{"jpeg ok", 1024, "image/jpeg", false},
		{"png ok", 1024, "image/png", false},
		{"case insensitive", 1024, "IMAGE/PNG", false},
		{"webp ok", MaxImageSize, "image/webp", false},
		{"empty file", 0, "image/png", true},
		{"too large", MaxImageSize + 1, "image/png", true},
		{"bad type", 1024, "application/pdf", true},
		{"blank type", 1024, "", true},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := Validate(tc.size, tc.contentType)
			if tc.wantErr {
				assert.ErrorIs(t, err, ErrInvalidImage)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestEncodeBase64RoundTrip(t *testing.T) {
	raw := []byte{0x89, 0x50, 0x4e, 0x47, 0x00, 0x01, 0x02, 0xff}

	encoded, err := EncodeBase64(bytes.NewReader(raw))
	require.NoError(t, err)

	decoded, err := base64.StdEncoding.DecodeString(encoded)
	require.NoError(t, err)
	assert.Equal(t, raw, decoded)
}

func TestEncodeBase64ReadFailure(t *testing.T) {
	_, err := EncodeBase64(failingReader{})
	assert.ErrorIs(t, err, ErrImageRead)
}

func TestEncodeBase64Empty(t *testing.T) {
	encoded, err := EncodeBase64(strings.NewReader(""))
	require.NoError(t, err)
	assert.Empty(t, encoded)
}

type failingReader struct{}

func (failingReader) Read([]byte) (int, error) {
	return 0, errors.New("broken stream")
}
