package gh

import (
	"encoding/base64"
	"strings"
	"testing"

	"github.com/robby/mosaic/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func base64Content(body string) *domain.Content {
	return &domain.Content{
		Path:     "mosaic.toml",
		Type:     domain.ContentTypeFile,
		Content:  &body,
		Encoding: domain.EncodingBase64,
	}
}

// sprinkle inserts ws after every n characters of s, the way GitHub wraps
// base64 bodies.
func sprinkle(s string, n int, ws string) string {
	var b strings.Builder
	for i, r := range s {
		if i > 0 && i%n == 0 {
			b.WriteString(ws)
		}
		b.WriteRune(r)
	}
	b.WriteString(ws)
	return b.String()
}

func TestDecodeContent_RoundTrip(t *testing.T) {
	inputs := []string{
		"",
		"hello world\n",
		"[project]\nname = \"mosaic\"\ndescription = \"Façade für Übersicht ✓\"\n",
		strings.Repeat("0123456789abcdef", 64),
	}
	separators := []string{"\n", "\r\n", " ", "\t", "\v", "\f", " \n\t\r\v\f"}

	for _, in := range inputs {
		encoded := base64.StdEncoding.EncodeToString([]byte(in))
		for _, ws := range separators {
			for _, n := range []int{1, 4, 60} {
				text, ok, err := DecodeContent(base64Content(sprinkle(encoded, n, ws)))

				require.NoError(t, err)
				assert.True(t, ok)
				assert.Equal(t, in, text)
			}
		}
	}
}

func TestDecodeContent_Absent(t *testing.T) {
	dir := &domain.Content{Path: "docs", Type: domain.ContentTypeDir}

	text, ok, err := DecodeContent(dir)
	assert.NoError(t, err)
	assert.False(t, ok)
	assert.Empty(t, text)

	_, ok, err = DecodeContent(nil)
	assert.NoError(t, err)
	assert.False(t, ok)
}

func TestDecodeContent_MalformedBase64(t *testing.T) {
	_, ok, err := DecodeContent(base64Content("aGVsbG8*d29ybGQ="))

	assert.False(t, ok)
	assert.ErrorIs(t, err, ErrMalformedContent)
}

func TestDecodeContent_TruncatedBase64(t *testing.T) {
	_, _, err := DecodeContent(base64Content("aGVsbG8gd29ybG"))

	assert.ErrorIs(t, err, ErrMalformedContent)
}

func TestDecodeContent_UnsupportedEncoding(t *testing.T) {
	c := base64Content("hello")
	c.Encoding = "utf-8"

	_, _, err := DecodeContent(c)

	assert.ErrorIs(t, err, ErrUnsupportedEncoding)
}

func TestDecodeContent_InvalidUTF8(t *testing.T) {
	encoded := base64.StdEncoding.EncodeToString([]byte{'o', 'k', 0xff, 0xfe, '!'})

	text, ok, err := DecodeContent(base64Content(encoded))

	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "ok�!", text)
}
