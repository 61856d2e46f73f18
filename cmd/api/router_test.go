package main

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"library-catalog/internal/config"
	bookInstanceHandler "library-catalog/internal/domains/bookinstance/handler"
	bookInstanceService "library-catalog/internal/domains/bookinstance/service"
	genreHandler "library-catalog/internal/domains/genre/handler"
	genreService "library-catalog/internal/domains/genre/service"
	"library-catalog/internal/shared/middleware"
	"library-catalog/internal/testutil"
	"library-catalog/pkg/container"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// testContainer wires the real handlers to in-memory repositories; DB stays nil
func testContainer(store *testutil.Store, mc *testutil.MemoryCache) *container.Container {
	c := &container.Container{
		Config: &config.Config{App: config.AppConfig{Version: "test"}},
		Cache:  mc,
	}
	c.BookInstanceService = bookInstanceService.NewBookInstanceService(store.Instances(), store.Books(), mc, time.Minute)
	c.GenreService = genreService.NewGenreService(store.Genres(), store.Books(), mc, time.Minute)
	c.BookInstanceHandler = bookInstanceHandler.NewBookInstanceHandler(c.BookInstanceService)
	c.GenreHandler = genreHandler.NewGenreHandler(c.GenreService)
	return c
}

func get(r http.Handler, path string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
	return rec
}

func TestSetupRouter_IndexRedirects(t *testing.T) {
	r := SetupRouter(testContainer(testutil.NewStore(), testutil.NewMemoryCache()))

	for _, path := range []string{"/", "/catalog"} {
		rec := get(r, path)
		assert.Equal(t, http.StatusFound, rec.Code, path)
		assert.Equal(t, "/catalog/genres", rec.Header().Get("Location"), path)
	}
}

func TestSetupRouter_CatalogRoutes(t *testing.T) {
	store := testutil.NewStore()
	genre := store.AddGenre("Poetry")
	r := SetupRouter(testContainer(store, testutil.NewMemoryCache()))

	tests := []struct {
		path string
		want int
	}{
		{"/catalog/genres", http.StatusOK},
		{"/catalog/genre/create", http.StatusOK},
		{genre.URL(), http.StatusOK},
		{genre.URL() + "/update", http.StatusOK},
		{"/catalog/bookinstances", http.StatusOK},
		{"/catalog/bookinstance/create", http.StatusOK},
		{"/catalog/bookinstance/" + genre.ID.String(), http.StatusNotFound},
		{"/catalog/unknown", http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			rec := get(r, tt.path)
			assert.Equal(t, tt.want, rec.Code)
			assert.NotEmpty(t, rec.Header().Get(middleware.RequestIDHeader))
		})
	}
}

func TestHealthCheck_ReportsMissingDatabase(t *testing.T) {
	r := SetupRouter(testContainer(testutil.NewStore(), testutil.NewMemoryCache()))

	rec := get(r, "/health")
	require.Equal(t, http.StatusServiceUnavailable, rec.Code)

	var body struct {
		Status   string            `json:"status"`
		Version  string            `json:"version"`
		Services map[string]string `json:"services"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "degraded", body.Status)
	assert.Equal(t, "test", body.Version)
	assert.Equal(t, "disconnected", body.Services["database"])
	assert.Equal(t, "ok", body.Services["redis"])
}
