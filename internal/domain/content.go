package domain

import (
	"encoding/base64"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"
)

var (
	// ErrUnsupportedEncoding is returned when a content body is not base64.
	ErrUnsupportedEncoding = errors.New("unsupported content encoding")
	// ErrMalformedContent is returned when a base64 content body cannot be decoded.
	ErrMalformedContent = errors.New("malformed content")
)

// Decoded returns the inline body of c as text.
// ok is false when the entry carries no body (directories, large files), which
// is not an error. GitHub wraps base64 bodies in line breaks; all ASCII
// whitespace is removed before decoding. Invalid UTF-8 is replaced with
// U+FFFD.
func (c *Content) Decoded() (text string, ok bool, err error) {
	if c == nil || c.Content == nil {
		return "", false, nil
	}
	if c.Encoding != EncodingBase64 {
		return "", false, fmt.Errorf("%w: %q", ErrUnsupportedEncoding, c.Encoding)
	}

	raw, err := base64.StdEncoding.DecodeString(stripWhitespace(*c.Content))
	if err != nil {
		return "", false, fmt.Errorf("%w: %s: %w", ErrMalformedContent, c.Path, err)
	}

	if utf8.Valid(raw) {
		return string(raw), true, nil
	}
	return strings.ToValidUTF8(string(raw), string(utf8.RuneError)), true, nil
}

func stripWhitespace(s string) string {
	return strings.Map(func(r rune) rune {
		switch r {
		case ' ', '\n', '\t', '\r', '\v', '\f':
			return -1
		}
		return r
	}, s)
}
