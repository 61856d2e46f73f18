package handler

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"library-catalog/internal/domains/genre/service"
	"library-catalog/internal/testutil"
	"library-catalog/web"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newRouter(store *testutil.Store) *gin.Engine {
	h := NewGenreHandler(service.NewGenreService(store.Genres(), store.Books(), nil, time.Minute))

	r := gin.New()
	r.SetHTMLTemplate(web.MustTemplates())
	r.GET("/catalog/genres", h.List)
	r.GET("/catalog/genre/create", h.CreateForm)
	r.POST("/catalog/genre/create", h.Create)
	r.GET("/catalog/genre/:id", h.Detail)
	r.GET("/catalog/genre/:id/delete", h.DeleteForm)
	r.POST("/catalog/genre/:id/delete", h.Delete)
	r.GET("/catalog/genre/:id/update", h.UpdateForm)
	r.POST("/catalog/genre/:id/update", h.Update)
	return r
}

func do(r http.Handler, method, path string, form url.Values) *httptest.ResponseRecorder {
	var req *http.Request
	if form != nil {
		req = httptest.NewRequest(method, path, strings.NewReader(form.Encode()))
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func TestList_SortedByName(t *testing.T) {
	store := testutil.NewStore()
	store.AddGenre("Sci-Fi")
	store.AddGenre("Adventure")

	rec := do(newRouter(store), http.MethodGet, "/catalog/genres", nil)

	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, "<title>Genre List</title>")
	assert.Less(t, strings.Index(body, "Adventure"), strings.Index(body, "Sci-Fi"))
}

func TestList_RepositoryFailureRendersErrorPage(t *testing.T) {
	store := testutil.NewStore()
	store.Fail("genres.List", testutil.ErrInjected)

	rec := do(newRouter(store), http.MethodGet, "/catalog/genres", nil)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Contains(t, rec.Body.String(), "Failed to list genres")
}

func TestDetail(t *testing.T) {
	store := testutil.NewStore()
	genre := store.AddGenre("Fantasy")
	book := store.AddBook("The Hobbit", "There and back again")
	store.Tag(book.ID, genre.ID)
	r := newRouter(store)

	t.Run("found", func(t *testing.T) {
		rec := do(r, http.MethodGet, genre.URL(), nil)

		require.Equal(t, http.StatusOK, rec.Code)
		body := rec.Body.String()
		assert.Contains(t, body, "Genre Detail")
		assert.Contains(t, body, "Fantasy")
		assert.Contains(t, body, book.URL())
		assert.Contains(t, body, "There and back again")
	})

	t.Run("unknown id", func(t *testing.T) {
		rec := do(r, http.MethodGet, "/catalog/genre/"+uuid.NewString(), nil)

		assert.Equal(t, http.StatusNotFound, rec.Code)
		assert.Contains(t, rec.Body.String(), "Genre not found")
	})

	t.Run("malformed id", func(t *testing.T) {
		rec := do(r, http.MethodGet, "/catalog/genre/not-an-id", nil)
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})
}

func TestCreate(t *testing.T) {
	t.Run("form page", func(t *testing.T) {
		rec := do(newRouter(testutil.NewStore()), http.MethodGet, "/catalog/genre/create", nil)

		require.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), "Create Genre")
		assert.Contains(t, rec.Body.String(), `name="name"`)
	})

	t.Run("blank name re-renders with error", func(t *testing.T) {
		store := testutil.NewStore()

		rec := do(newRouter(store), http.MethodPost, "/catalog/genre/create", url.Values{"name": {"   "}})

		require.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), "Genre name required")
		assert.Zero(t, store.GenreCount())
	})

	t.Run("new genre redirects to its page", func(t *testing.T) {
		store := testutil.NewStore()

		rec := do(newRouter(store), http.MethodPost, "/catalog/genre/create", url.Values{"name": {"Poetry"}})

		require.Equal(t, http.StatusFound, rec.Code)
		location := rec.Header().Get("Location")
		assert.True(t, strings.HasPrefix(location, "/catalog/genre/"), location)
		id := uuid.MustParse(strings.TrimPrefix(location, "/catalog/genre/"))
		saved, ok := store.Genre(id)
		require.True(t, ok)
		assert.Equal(t, "Poetry", saved.Name)
	})

	t.Run("duplicate name redirects to the existing genre", func(t *testing.T) {
		store := testutil.NewStore()
		fiction := store.AddGenre("Fiction")

		rec := do(newRouter(store), http.MethodPost, "/catalog/genre/create", url.Values{"name": {"Fiction"}})

		require.Equal(t, http.StatusFound, rec.Code)
		assert.Equal(t, fiction.URL(), rec.Header().Get("Location"))
		assert.Equal(t, 1, store.GenreCount())
	})

	t.Run("special characters are encoded once on every page", func(t *testing.T) {
		store := testutil.NewStore()
		r := newRouter(store)

		rec := do(r, http.MethodPost, "/catalog/genre/create", url.Values{"name": {"Sci-Fi & Fantasy"}})
		require.Equal(t, http.StatusFound, rec.Code)
		location := rec.Header().Get("Location")

		for _, path := range []string{location, "/catalog/genres", location + "/delete"} {
			rec = do(r, http.MethodGet, path, nil)
			require.Equal(t, http.StatusOK, rec.Code, path)
			assert.Contains(t, rec.Body.String(), "Sci-Fi &amp; Fantasy", path)
			assert.NotContains(t, rec.Body.String(), "&amp;amp;", path)
		}

		// same name again resolves to the stored genre instead of a second row
		rec = do(r, http.MethodPost, "/catalog/genre/create", url.Values{"name": {"Sci-Fi & Fantasy"}})
		require.Equal(t, http.StatusFound, rec.Code)
		assert.Equal(t, location, rec.Header().Get("Location"))
		assert.Equal(t, 1, store.GenreCount())
	})

	t.Run("name too long once escaped re-renders the input", func(t *testing.T) {
		store := testutil.NewStore()
		name := strings.Repeat("Sci-Fi & Horror/", 6) + "Misc"

		rec := do(newRouter(store), http.MethodPost, "/catalog/genre/create", url.Values{"name": {name}})

		require.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), "Genre name is too long")
		assert.Contains(t, rec.Body.String(), `value="Sci-Fi &amp; Horror/Sci-Fi`)
		assert.Zero(t, store.GenreCount())
	})
}

func TestDeleteForm(t *testing.T) {
	store := testutil.NewStore()
	genre := store.AddGenre("Western")
	r := newRouter(store)

	rec := do(r, http.MethodGet, genre.URL()+"/delete", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Delete Genre")
	assert.Contains(t, rec.Body.String(), `value="`+genre.ID.String()+`"`)

	rec = do(r, http.MethodGet, "/catalog/genre/"+uuid.NewString()+"/delete", nil)
	assert.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, ListURL, rec.Header().Get("Location"))
}

func TestDelete(t *testing.T) {
	t.Run("blocked while books reference it", func(t *testing.T) {
		store := testutil.NewStore()
		genre := store.AddGenre("Fantasy")
		book := store.AddBook("The Hobbit", "")
		store.Tag(book.ID, genre.ID)

		rec := do(newRouter(store), http.MethodPost, genre.URL()+"/delete", url.Values{"genreid": {genre.ID.String()}})

		require.Equal(t, http.StatusOK, rec.Code)
		body := rec.Body.String()
		assert.Contains(t, body, "Delete Genre")
		assert.Contains(t, body, "The Hobbit")
		_, exists := store.Genre(genre.ID)
		assert.True(t, exists)
	})

	t.Run("removes and redirects to the list", func(t *testing.T) {
		store := testutil.NewStore()
		genre := store.AddGenre("Western")

		rec := do(newRouter(store), http.MethodPost, genre.URL()+"/delete", url.Values{"genreid": {genre.ID.String()}})

		require.Equal(t, http.StatusFound, rec.Code)
		assert.Equal(t, ListURL, rec.Header().Get("Location"))
		_, exists := store.Genre(genre.ID)
		assert.False(t, exists)
	})

	t.Run("falls back to the path id", func(t *testing.T) {
		store := testutil.NewStore()
		genre := store.AddGenre("Western")

		rec := do(newRouter(store), http.MethodPost, genre.URL()+"/delete", url.Values{})

		require.Equal(t, http.StatusFound, rec.Code)
		assert.Zero(t, store.GenreCount())
	})
}

func TestUpdateNotImplemented(t *testing.T) {
	r := newRouter(testutil.NewStore())
	path := "/catalog/genre/" + uuid.NewString() + "/update"

	rec := do(r, http.MethodGet, path, nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "NOT IMPLEMENTED: Genre update GET", rec.Body.String())

	rec = do(r, http.MethodPost, path, url.Values{})
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "NOT IMPLEMENTED: Genre update POST", rec.Body.String())
}
