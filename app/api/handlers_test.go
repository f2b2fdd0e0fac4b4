package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/lysyi3m/notiongram/app/cfg"
	"github.com/lysyi3m/notiongram/app/feed"
	"github.com/lysyi3m/notiongram/app/notion"
	"github.com/lysyi3m/notiongram/app/view"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubFeed struct {
	items []feed.Item
	err   error
	calls int
}

func (s *stubFeed) Run(ctx context.Context) ([]feed.Item, error) {
	s.calls++
	return s.items, s.err
}

func (s *stubFeed) Fetch(ctx context.Context) ([]feed.Item, error) {
	s.calls++
	if s.err != nil {
		return nil, s.err
	}
	items := append([]feed.Item(nil), s.items...)
	feed.SortByDate(items)
	return items, nil
}

func strRef(s string) *string {
	return &s
}

func setupTestServer(t *testing.T, stub *stubFeed, schemas *feed.SchemaCache, apiKey string) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	_, err := cfg.LoadArgs([]string{"--port", "8080", "--base-url", "https://feed.example.com", "--timezone", "UTC"})
	require.NoError(t, err)

	renderer, err := view.NewRenderer("pt-BR")
	require.NoError(t, err)

	if schemas == nil {
		schemas = feed.NewSchemaCache("")
	}

	handler := NewHandler(stub, stub, renderer, schemas, "notion")
	return NewServer(handler, apiKey)
}

func doRequest(r http.Handler, method, path string, headers map[string]string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, nil)
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestGetNotionFeed(t *testing.T) {
	stub := &stubFeed{items: []feed.Item{
		{ID: "1", Name: strRef("Hello"), Date: strRef("15/03/2024"), Media: []string{"https://a/1.jpg"}},
		{ID: "2", Media: []string{}},
	}}
	r := setupTestServer(t, stub, nil, "")

	w := doRequest(r, http.MethodGet, "/api/notion", nil)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 1, stub.calls)
	assert.JSONEq(t, `[
		{"id":"1","name":"Hello","date":"15/03/2024","description":null,"media":["https://a/1.jpg"]},
		{"id":"2","name":null,"date":null,"description":null,"media":[]}
	]`, w.Body.String())
}

func TestGetNotionFeedEmpty(t *testing.T) {
	r := setupTestServer(t, &stubFeed{items: []feed.Item{}}, nil, "")

	w := doRequest(r, http.MethodGet, "/api/notion", nil)

	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `[]`, w.Body.String())
}

func TestGetNotionFeedErrors(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected string
	}{
		{
			name:     "missing database id",
			err:      feed.ErrMissingDatabaseID,
			expected: "NOTION_DATABASE_ID is not configured",
		},
		{
			name:     "notion api error",
			err:      fmt.Errorf("notion query failed: %w", &notion.APIError{Status: 404, Code: "object_not_found", Message: "Could not find database"}),
			expected: "Could not find database",
		},
		{
			name:     "transport error",
			err:      fmt.Errorf("notion query failed: %w", errors.New("connection refused")),
			expected: "notion query failed: connection refused",
		},
		{
			name:     "error without message",
			err:      fmt.Errorf("notion query failed: %w", errors.New("")),
			expected: "Failed to fetch data from Notion",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := setupTestServer(t, &stubFeed{err: tt.err}, nil, "")

			w := doRequest(r, http.MethodGet, "/api/notion", nil)

			require.Equal(t, http.StatusInternalServerError, w.Code)
			var body map[string]string
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
			assert.Equal(t, tt.expected, body["error"])
		})
	}
}

func TestGetPageLayouts(t *testing.T) {
	stub := &stubFeed{items: []feed.Item{
		{ID: "old", Name: strRef("Older post"), Date: strRef("01/01/2023"), Media: []string{}},
		{ID: "new", Name: strRef("Newer post"), Date: strRef("01/01/2024"), Media: []string{"https://a/1.jpg", "https://a/2.jpg"}},
	}}
	r := setupTestServer(t, stub, nil, "")

	feedPage := doRequest(r, http.MethodGet, "/", nil)
	require.Equal(t, http.StatusOK, feedPage.Code)
	assert.Contains(t, feedPage.Header().Get("Content-Type"), "text/html")
	assert.Contains(t, feedPage.Body.String(), `class="layout-feed"`)
	assert.Less(t, strings.Index(feedPage.Body.String(), "Newer post"), strings.Index(feedPage.Body.String(), "Older post"))

	gallery := doRequest(r, http.MethodGet, "/gallery?c.new=1", nil)
	require.Equal(t, http.StatusOK, gallery.Code)
	assert.Contains(t, gallery.Body.String(), `class="layout-grid"`)
	assert.Contains(t, gallery.Body.String(), `src="https://a/2.jpg"`)
}

func TestGetPageError(t *testing.T) {
	r := setupTestServer(t, &stubFeed{err: errors.New("Bad Gateway")}, nil, "")

	w := doRequest(r, http.MethodGet, "/", map[string]string{"Accept-Language": "en"})

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Failed to load the feed: Bad Gateway")
	assert.Contains(t, w.Body.String(), `lang="en"`)
}

func TestGetRSS(t *testing.T) {
	stub := &stubFeed{items: []feed.Item{
		{ID: "1", Name: strRef("Hello"), Date: strRef("15/03/2024"), Media: []string{"https://a/1.jpg"}},
	}}
	r := setupTestServer(t, stub, nil, "")

	w := doRequest(r, http.MethodGet, "/feed.xml", nil)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Content-Type"), "application/xml")
	assert.Equal(t, "1", w.Header().Get("X-Feed-Items"))
	assert.Contains(t, w.Body.String(), "<title>Hello</title>")
}

func TestGetHealth(t *testing.T) {
	r := setupTestServer(t, &stubFeed{}, nil, "")

	w := doRequest(r, http.MethodGet, "/health", nil)

	require.Equal(t, http.StatusOK, w.Code)
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "notion", body["source"])
	assert.NotEmpty(t, body["timestamp"])
}

func TestRequestID(t *testing.T) {
	r := setupTestServer(t, &stubFeed{}, nil, "")

	w := doRequest(r, http.MethodGet, "/health", nil)
	assert.NotEmpty(t, w.Header().Get(RequestIDHeader))

	w = doRequest(r, http.MethodGet, "/health", map[string]string{RequestIDHeader: "abc-123"})
	assert.Equal(t, "abc-123", w.Header().Get(RequestIDHeader))
}

func TestMetricsEndpoint(t *testing.T) {
	r := setupTestServer(t, &stubFeed{}, nil, "")

	doRequest(r, http.MethodGet, "/health", nil)
	w := doRequest(r, http.MethodGet, "/metrics", nil)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "notiongram_http_requests_total")
}

func TestSchemaAPIAuth(t *testing.T) {
	r := setupTestServer(t, &stubFeed{}, nil, "secret")

	tests := []struct {
		name     string
		headers  map[string]string
		expected int
	}{
		{"missing key", nil, http.StatusUnauthorized},
		{"wrong key", map[string]string{"X-API-Key": "nope"}, http.StatusUnauthorized},
		{"header key", map[string]string{"X-API-Key": "secret"}, http.StatusOK},
		{"bearer key", map[string]string{"Authorization": "Bearer secret"}, http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := doRequest(r, http.MethodGet, "/api/schema", tt.headers)
			assert.Equal(t, tt.expected, w.Code)
		})
	}
}

func TestSchemaAPIDisabledWithoutKey(t *testing.T) {
	r := setupTestServer(t, &stubFeed{}, nil, "")

	w := doRequest(r, http.MethodGet, "/api/schema", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestAPIReloadSchema(t *testing.T) {
	schemaFile := filepath.Join(t.TempDir(), "schema.yml")
	require.NoError(t, os.WriteFile(schemaFile, []byte("properties:\n  title: Title\n"), 0644))

	schemas := feed.NewSchemaCache(schemaFile)
	require.NoError(t, schemas.Run())
	r := setupTestServer(t, &stubFeed{}, schemas, "secret")
	auth := map[string]string{"X-API-Key": "secret"}

	require.NoError(t, os.WriteFile(schemaFile, []byte("properties:\n  title: Headline\n"), 0644))
	w := doRequest(r, http.MethodPost, "/api/schema/reload", auth)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Headline", schemas.GetSchema().Properties.Title)

	require.NoError(t, os.WriteFile(schemaFile, []byte("filters:\n  - field: media\n    includes: [x]\n"), 0644))
	w = doRequest(r, http.MethodPost, "/api/schema/reload", auth)
	require.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, "Headline", schemas.GetSchema().Properties.Title)
}
