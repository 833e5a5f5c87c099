package main

import (
	"context"
	"errors"
	"io"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/robby/mosaic/internal/gh"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRetryApp(t *testing.T, retries int) *app {
	t.Helper()
	prev := retryInterval
	retryInterval = time.Millisecond
	t.Cleanup(func() { retryInterval = prev })
	return &app{retries: retries, logger: log.New(io.Discard)}
}

func transportFailure() error {
	return &gh.Error{Kind: gh.KindTransport, Body: gh.ErrorBody{Message: "request to GitHub failed"}, Err: errors.New("connection reset")}
}

func TestWithRetry_RecoversFromTransportFailure(t *testing.T) {
	a := newRetryApp(t, 3)
	calls := 0

	got, err := withRetry(context.Background(), a, func() (string, error) {
		calls++
		if calls < 3 {
			return "", transportFailure()
		}
		return "ok", nil
	})

	require.NoError(t, err)
	assert.Equal(t, "ok", got)
	assert.Equal(t, 3, calls)
}

func TestWithRetry_GivesUp(t *testing.T) {
	a := newRetryApp(t, 2)
	calls := 0

	_, err := withRetry(context.Background(), a, func() (int, error) {
		calls++
		return 0, transportFailure()
	})

	assert.ErrorIs(t, err, gh.ErrTransport)
	assert.Equal(t, 3, calls)
}

func TestWithRetry_UpstreamIsFinal(t *testing.T) {
	a := newRetryApp(t, 5)
	calls := 0
	upstream := &gh.Error{Kind: gh.KindUpstream, Status: 404, Body: gh.ErrorBody{Message: "Not Found"}}

	_, err := withRetry(context.Background(), a, func() (int, error) {
		calls++
		return 0, upstream
	})

	assert.Same(t, upstream, err)
	assert.Equal(t, 1, calls)
}

func TestWithRetry_Disabled(t *testing.T) {
	a := newRetryApp(t, 0)
	calls := 0

	_, err := withRetry(context.Background(), a, func() (int, error) {
		calls++
		return 0, transportFailure()
	})

	assert.ErrorIs(t, err, gh.ErrTransport)
	assert.Equal(t, 1, calls)
}
