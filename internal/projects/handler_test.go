package projects

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// mockConfigs implements ConfigGetter over a map, with an optional forced error.
type mockConfigs struct {
	configs map[uuid.UUID]*Config
	err     error
}

func (m *mockConfigs) Get(ctx context.Context, id uuid.UUID) (*Config, error) {
	if m.err != nil {
		return nil, m.err
	}
	cfg, ok := m.configs[id]
	if !ok {
		return nil, ErrNotFound
	}
	return cfg, nil
}

func serve(t *testing.T, configs ConfigGetter, path string) *httptest.ResponseRecorder {
	t.Helper()
	router := NewRouter(NewHandler(configs, log.New(io.Discard)))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
	return rec
}

func TestHandler_GetConfig(t *testing.T) {
	id := uuid.New()
	configs := &mockConfigs{configs: map[uuid.UUID]*Config{id: createTestConfig()}}

	rec := serve(t, configs, "/api/v1/projects/"+id.String()+"/config")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var got Config
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(t, createTestConfig(), &got)
}

func TestHandler_GetConfig_Errors(t *testing.T) {
	tests := []struct {
		name       string
		path       string
		err        error
		wantStatus int
		wantError  string
	}{
		{
			name:       "invalid id",
			path:       "/api/v1/projects/not-a-uuid/config",
			wantStatus: http.StatusBadRequest,
			wantError:  "invalid project id",
		},
		{
			name:       "not found",
			path:       "/api/v1/projects/" + uuid.NewString() + "/config",
			wantStatus: http.StatusNotFound,
			wantError:  "project not found",
		},
		{
			name:       "parse failure",
			path:       "/api/v1/projects/" + uuid.NewString() + "/config",
			err:        fmt.Errorf("%w: unexpected end of JSON input", ErrParse),
			wantStatus: http.StatusInternalServerError,
			wantError:  "could not parse project config",
		},
		{
			name:       "storage failure",
			path:       "/api/v1/projects/" + uuid.NewString() + "/config",
			err:        errors.New("connection refused"),
			wantStatus: http.StatusInternalServerError,
			wantError:  "internal server error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := serve(t, &mockConfigs{err: tt.err}, tt.path)

			assert.Equal(t, tt.wantStatus, rec.Code)
			var body errorResponse
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
			assert.Equal(t, tt.wantError, body.Error)
		})
	}
}

func TestHandler_UnknownRoute(t *testing.T) {
	rec := serve(t, &mockConfigs{}, "/api/v1/projects")

	assert.Equal(t, http.StatusNotFound, rec.Code)
}
