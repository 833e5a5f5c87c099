package gh

import (
	"github.com/robby/mosaic/internal/domain"
)

var (
	// ErrUnsupportedEncoding is returned when a content body is not base64.
	ErrUnsupportedEncoding = domain.ErrUnsupportedEncoding
	// ErrMalformedContent is returned when a base64 content body cannot be decoded.
	ErrMalformedContent = domain.ErrMalformedContent
)

// DecodeContent decodes the inline body of a content entry. See
// (*domain.Content).Decoded.
func DecodeContent(c *domain.Content) (text string, ok bool, err error) {
	return c.Decoded()
}
