package web

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTemplates_DefinesEveryPage(t *testing.T) {
	tmpl, err := Templates()
	require.NoError(t, err)

	for _, name := range []string{
		"header", "footer", "form_errors", "error",
		"genre_list", "genre_detail", "genre_form", "genre_delete",
		"bookinstance_list", "bookinstance_detail", "bookinstance_form", "bookinstance_delete",
	} {
		assert.NotNil(t, tmpl.Lookup(name), name)
	}
}

func TestTemplates_ErrorPageHidesMissingDetails(t *testing.T) {
	var buf bytes.Buffer
	err := MustTemplates().ExecuteTemplate(&buf, "error", map[string]interface{}{
		"title":   "Genre not found",
		"message": "Genre not found",
		"status":  404,
		"code":    "GENRE_NOT_FOUND",
	})
	require.NoError(t, err)

	assert.Contains(t, buf.String(), "<title>Genre not found</title>")
	assert.Contains(t, buf.String(), "404 (GENRE_NOT_FOUND)")
	assert.NotContains(t, buf.String(), "<pre>")
}

func TestTemplates_EscapesStoredText(t *testing.T) {
	var buf bytes.Buffer
	err := MustTemplates().ExecuteTemplate(&buf, "genre_form", map[string]interface{}{
		"title":  "Create Genre",
		"errors": []map[string]string{{"Param": "name", "Msg": "<b>bad</b>"}},
	})
	require.NoError(t, err)

	assert.Contains(t, buf.String(), "&lt;b&gt;bad&lt;/b&gt;")
}

func TestTemplates_StoredValuesRenderEncodedOnce(t *testing.T) {
	var buf bytes.Buffer
	err := MustTemplates().ExecuteTemplate(&buf, "genre_form", map[string]interface{}{
		"title": "Create Genre",
		"genre": map[string]string{"Name": "Sci-Fi &amp; Fantasy&#x2F;Horror"},
	})
	require.NoError(t, err)

	assert.Contains(t, buf.String(), `value="Sci-Fi &amp; Fantasy/Horror"`)
	assert.NotContains(t, buf.String(), "&amp;amp;")
}
