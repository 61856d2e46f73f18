// Package web embeds the server-rendered page templates.
package web

import (
	"embed"
	"html/template"

	"library-catalog/internal/shared/utils"
)

//go:embed templates/*.html
var templateFS embed.FS

// Functions available to every template. Genre names and imprints are
// stored escaped, so pages pass them through unescape before output.
var funcs = template.FuncMap{
	"unescape": utils.Unescape,
}

// Templates parses every page template. Each file defines one named page
// plus the shared "header" and "footer" partials in layout.html.
func Templates() (*template.Template, error) {
	return template.New("catalog").Funcs(funcs).ParseFS(templateFS, "templates/*.html")
}

// MustTemplates panics on a template syntax error; used at startup and in tests.
func MustTemplates() *template.Template {
	return template.Must(Templates())
}
