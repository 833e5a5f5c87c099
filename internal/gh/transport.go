package gh

import (
	"bytes"
	"context"
	"io"
	"net/http"
)

// headerTransport sets a fixed header set on every outgoing request.
type headerTransport struct {
	headers http.Header
	wrapped http.RoundTripper
}

func (t *headerTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	// RoundTrippers must not modify the caller's request.
	req2 := req.Clone(req.Context())
	for key, values := range t.headers {
		req2.Header.Del(key)
		for _, v := range values {
			req2.Header.Add(key, v)
		}
	}
	return t.wrapped.RoundTrip(req2)
}

// recording holds the raw HTTP exchange of a single GraphQL call.
// machinebox/graphql only surfaces the first GraphQL error and hides the
// status code, so the full envelope is captured here instead.
type recording struct {
	status int
	body   []byte
}

func (r *recording) ok() bool {
	return r.status >= 200 && r.status < 300
}

type recordingKey struct{}

// withRecording attaches a fresh recording to ctx. Each call gets its own,
// so concurrent calls on one Client never share state.
func withRecording(ctx context.Context) (context.Context, *recording) {
	rec := &recording{}
	return context.WithValue(ctx, recordingKey{}, rec), rec
}

// recordingTransport copies the response status and body into the recording
// found in the request context, then hands an identical body downstream.
type recordingTransport struct {
	wrapped http.RoundTripper
}

func (t *recordingTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	resp, err := t.wrapped.RoundTrip(req)
	if err != nil {
		return nil, err
	}

	rec, ok := req.Context().Value(recordingKey{}).(*recording)
	if !ok {
		return resp, nil
	}

	body, err := io.ReadAll(resp.Body)
	resp.Body.Close()
	if err != nil {
		return nil, err
	}
	rec.status = resp.StatusCode
	rec.body = body
	resp.Body = io.NopCloser(bytes.NewReader(body))
	return resp, nil
}
