package gh

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/robby/mosaic/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testToken = "ghp_test_token_123"

// newTestClient starts server with handler and returns a client pointed at it
// for both REST and GraphQL calls.
func newTestClient(t *testing.T, handler http.Handler) *Client {
	t.Helper()

	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	cfg := config.Default().GitHub
	cfg.APIURL = srv.URL
	cfg.GraphQLURL = srv.URL + "/graphql"

	c, err := New(testToken, WithConfig(cfg), WithLogger(log.New(io.Discard)))
	require.NoError(t, err)
	return c
}

func writeJSON(w http.ResponseWriter, status int, body string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = io.WriteString(w, body)
}

func TestNew_InvalidToken(t *testing.T) {
	c, err := New("bad\ntoken")

	assert.Error(t, err)
	assert.Nil(t, c)
	assert.Contains(t, err.Error(), "Authorization")
}

func TestNew_InvalidConfiguredHeader(t *testing.T) {
	cfg := config.Default().GitHub
	cfg.Headers = map[string]string{"Bad Header": "x"}

	_, err := New(testToken, WithConfig(cfg))

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "Bad Header")
}

func TestClient_SendsIdentityHeaders(t *testing.T) {
	var got http.Header
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = r.Header.Clone()
		writeJSON(w, http.StatusOK, `[]`)
	}))
	defer srv.Close()

	cfg := config.Default().GitHub
	cfg.APIURL = srv.URL
	cfg.UserAgent = "mosaic-test"
	cfg.Headers = map[string]string{"X-GitHub-Api-Version": "2022-11-28"}

	c, err := New(testToken, WithConfig(cfg), WithLogger(log.New(io.Discard)))
	require.NoError(t, err)

	_, err = c.GetUserEvents(context.Background(), "octocat")
	require.NoError(t, err)

	assert.Equal(t, "token "+testToken, got.Get("Authorization"))
	assert.Equal(t, "mosaic-test", got.Get("User-Agent"))
	assert.Equal(t, "2022-11-28", got.Get("X-GitHub-Api-Version"))
}

func TestClient_GraphQLSendsIdentityHeaders(t *testing.T) {
	var got http.Header
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = r.Header.Clone()
		writeJSON(w, http.StatusOK, `{"data":{"viewer":{"login":"octocat"}}}`)
	}))

	_, err := c.GetUserProfile(context.Background())
	require.NoError(t, err)

	assert.Equal(t, "token "+testToken, got.Get("Authorization"))
	assert.Equal(t, "mosaic", got.Get("User-Agent"))
}

func TestClient_ConcurrentCalls(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/graphql" {
			var body struct {
				Variables map[string]any `json:"variables"`
			}
			_ = json.NewDecoder(r.Body).Decode(&body)
			if body.Variables["name"] == "missing" {
				writeJSON(w, http.StatusOK, `{"data":{"repository":null}}`)
				return
			}
			writeJSON(w, http.StatusOK, `{"data":{"repository":{"name":"hello-world"}}}`)
			return
		}
		writeJSON(w, http.StatusOK, `{"Go":100}`)
	}))

	var wg sync.WaitGroup
	errs := make([]error, 20)
	for i := range errs {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			switch i % 3 {
			case 0:
				_, errs[i] = c.GetRepository(context.Background(), "octocat", "hello-world")
			case 1:
				_, errs[i] = c.GetRepository(context.Background(), "octocat", "missing")
			default:
				_, errs[i] = c.GetLanguages(context.Background(), "octocat", "hello-world")
			}
		}(i)
	}
	wg.Wait()

	for i, err := range errs {
		if i%3 == 1 {
			assert.ErrorIs(t, err, ErrNotFound, "call %d", i)
		} else {
			assert.NoError(t, err, "call %d", i)
		}
	}
}
