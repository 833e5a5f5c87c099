package gh

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
)

// Kind classifies a failure returned by the client.
type Kind int

const (
	// KindTransport means the request could not be sent or the response could not be read.
	KindTransport Kind = iota + 1
	// KindUpstream means GitHub answered but reported an error.
	KindUpstream
	// KindNotFound means GitHub answered successfully but the requested object does not exist.
	KindNotFound
	// KindDecode means a successful response did not match the expected shape.
	KindDecode
	// KindConfigParse means a content lookup response could not be parsed.
	KindConfigParse
)

// Sentinels for errors.Is. A *Error matches the sentinel of its Kind.
var (
	ErrTransport   = errors.New("github transport failure")
	ErrUpstream    = errors.New("github reported an error")
	ErrNotFound    = errors.New("github object not found")
	ErrDecode      = errors.New("could not decode github response")
	ErrConfigParse = errors.New("could not parse configuration")
)

func (k Kind) sentinel() error {
	switch k {
	case KindTransport:
		return ErrTransport
	case KindUpstream:
		return ErrUpstream
	case KindNotFound:
		return ErrNotFound
	case KindDecode:
		return ErrDecode
	case KindConfigParse:
		return ErrConfigParse
	}
	return nil
}

func (k Kind) String() string {
	switch k {
	case KindTransport:
		return "transport"
	case KindUpstream:
		return "upstream"
	case KindNotFound:
		return "not_found"
	case KindDecode:
		return "decode"
	case KindConfigParse:
		return "config_parse"
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// unknownErrorBody stands in for an error body that could not be read.
const unknownErrorBody = "Unknown error"

// ErrorBody is the normalized shape of every upstream failure.
// Message is always set; DocumentationURL and Errors are only present when
// GitHub supplied structured detail.
type ErrorBody struct {
	DocumentationURL string            `json:"documentation_url,omitempty"`
	Errors           []json.RawMessage `json:"errors,omitempty"`
	Message          string            `json:"message"`
}

// Error is returned by every Client operation.
type Error struct {
	Kind   Kind
	Status int // HTTP status, 0 when no response was received
	Body   ErrorBody
	Err    error // Underlying cause, if any
}

// Error implements the error interface.
func (e *Error) Error() string {
	msg := e.Body.Message
	if e.Status != 0 {
		msg = fmt.Sprintf("%s (status %d)", msg, e.Status)
	}
	if e.Err != nil {
		return fmt.Sprintf("github %s: %s: %v", e.Kind, msg, e.Err)
	}
	return fmt.Sprintf("github %s: %s", e.Kind, msg)
}

// Unwrap returns the underlying cause.
func (e *Error) Unwrap() error {
	return e.Err
}

// Is reports whether target is the sentinel for e's Kind.
func (e *Error) Is(target error) bool {
	s := e.Kind.sentinel()
	return s != nil && target == s
}

// KindOf returns the Kind of the first *Error in err's chain, or 0.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return 0
}

// ParseErrorBody normalizes a GitHub error body. It never fails: if body is
// not a structured GitHub error the whole text becomes the message. A body
// with an empty message counts as unstructured.
func ParseErrorBody(body string) ErrorBody {
	var parsed ErrorBody
	if err := json.Unmarshal([]byte(body), &parsed); err != nil || parsed.Message == "" {
		return ErrorBody{Message: body}
	}
	return parsed
}

// readErrorBody reads a failed response body, falling back to a placeholder.
func readErrorBody(r io.Reader) string {
	data, err := io.ReadAll(r)
	if err != nil {
		return unknownErrorBody
	}
	return string(data)
}

// statusErrorBody normalizes a REST failure that carries no guarantee of a
// structured body. Structured bodies are kept; anything else is reported
// together with the HTTP status.
func statusErrorBody(status string, body string) ErrorBody {
	var parsed ErrorBody
	if err := json.Unmarshal([]byte(body), &parsed); err == nil && parsed.Message != "" {
		return parsed
	}
	return ErrorBody{
		Message: fmt.Sprintf("GitHub API error: status = %s, message = %s", status, body),
	}
}

func transportError(err error) *Error {
	return &Error{
		Kind: KindTransport,
		Body: ErrorBody{Message: "request to GitHub failed"},
		Err:  err,
	}
}

func upstreamError(resp *http.Response, body ErrorBody) *Error {
	return &Error{
		Kind:   KindUpstream,
		Status: resp.StatusCode,
		Body:   body,
	}
}
