package gh

import (
	"errors"
	"fmt"
	"strings"
	"testing"
	"testing/iotest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseErrorBody_Structured(t *testing.T) {
	body := `{
		"message": "Validation Failed",
		"documentation_url": "https://docs.github.com/rest",
		"errors": [
			{"resource": "Issue", "field": "title", "code": "missing_field"},
			{"resource": "Issue", "field": "body", "code": "invalid"}
		]
	}`

	got := ParseErrorBody(body)

	assert.Equal(t, "Validation Failed", got.Message)
	assert.Equal(t, "https://docs.github.com/rest", got.DocumentationURL)
	require.Len(t, got.Errors, 2)
	assert.JSONEq(t, `{"resource": "Issue", "field": "title", "code": "missing_field"}`, string(got.Errors[0]))
	assert.JSONEq(t, `{"resource": "Issue", "field": "body", "code": "invalid"}`, string(got.Errors[1]))
}

func TestParseErrorBody_MessageOnly(t *testing.T) {
	got := ParseErrorBody(`{"message":"Bad credentials"}`)

	assert.Equal(t, "Bad credentials", got.Message)
	assert.Empty(t, got.DocumentationURL)
	assert.Nil(t, got.Errors)
}

func TestParseErrorBody_Fallback(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"plain text", "internal error"},
		{"html", "<html><body>502 Bad Gateway</body></html>"},
		{"truncated json", `{"message": "Not Fo`},
		{"json without message", `{"documentation_url":"https://docs.github.com"}`},
		// An empty message counts as unstructured, so the other fields are
		// dropped along with it.
		{"json with empty message", `{"message":"","documentation_url":"https://docs.example/x","errors":[{"code":"x"}]}`},
		{"json null", "null"},
		{"json array", `[{"message":"x"}]`},
		{"empty", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ParseErrorBody(tt.body)

			assert.Equal(t, tt.body, got.Message)
			assert.Empty(t, got.DocumentationURL)
			assert.Nil(t, got.Errors)
		})
	}
}

func TestStatusErrorBody(t *testing.T) {
	t.Run("plain text keeps status and body", func(t *testing.T) {
		got := statusErrorBody("500 Internal Server Error", "internal error")

		assert.Equal(t, "GitHub API error: status = 500 Internal Server Error, message = internal error", got.Message)
		assert.Nil(t, got.Errors)
	})

	t.Run("structured body is kept", func(t *testing.T) {
		got := statusErrorBody("404 Not Found", `{"message":"Not Found","documentation_url":"https://docs.example/x"}`)

		assert.Equal(t, "Not Found", got.Message)
		assert.Equal(t, "https://docs.example/x", got.DocumentationURL)
	})

	t.Run("empty message falls back to status and body", func(t *testing.T) {
		body := `{"message":"","documentation_url":"https://docs.example/x"}`

		got := statusErrorBody("403 Forbidden", body)

		assert.Equal(t, "GitHub API error: status = 403 Forbidden, message = "+body, got.Message)
		assert.Empty(t, got.DocumentationURL)
	})
}

func TestReadErrorBody(t *testing.T) {
	assert.Equal(t, "boom", readErrorBody(strings.NewReader("boom")))
	assert.Equal(t, "Unknown error", readErrorBody(iotest.ErrReader(errors.New("connection reset"))))
}

func TestError_IsAndKindOf(t *testing.T) {
	err := fmt.Errorf("loading repo: %w", &Error{Kind: KindNotFound, Body: ErrorBody{Message: "Repository not found"}})

	assert.ErrorIs(t, err, ErrNotFound)
	assert.NotErrorIs(t, err, ErrUpstream)
	assert.Equal(t, KindNotFound, KindOf(err))
	assert.Equal(t, Kind(0), KindOf(errors.New("other")))
}

func TestError_Unwrap(t *testing.T) {
	cause := errors.New("dial tcp: connection refused")
	err := transportError(cause)

	assert.ErrorIs(t, err, cause)
	assert.ErrorIs(t, err, ErrTransport)
	assert.Contains(t, err.Error(), "connection refused")
}

func TestError_Message(t *testing.T) {
	err := &Error{Kind: KindUpstream, Status: 404, Body: ErrorBody{Message: "Not Found"}}

	assert.Equal(t, "github upstream: Not Found (status 404)", err.Error())
}
