package response

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// ErrorTemplate is rendered for every failed page request
const ErrorTemplate = "error"

// ========================================
// HTML RESPONSES
// ========================================

// Render executes a named template with the page data
func Render(c *gin.Context, statusCode int, name string, data gin.H) {
	c.HTML(statusCode, name, data)
}

// Redirect issues a 302 after a mutation or a missing record on a delete page.
// Callers must return right after.
func Redirect(c *gin.Context, location string) {
	c.Redirect(http.StatusFound, location)
	c.Abort()
}

// RenderError renders the shared error page. The underlying error is only
// exposed outside release mode.
func RenderError(c *gin.Context, statusCode int, code, message string, err error) {
	data := gin.H{
		"title":   message,
		"message": message,
		"status":  statusCode,
		"code":    code,
	}
	if err != nil && gin.Mode() != gin.ReleaseMode {
		data["error"] = err.Error()
	}
	c.HTML(statusCode, ErrorTemplate, data)
	c.Abort()
}

// NotImplemented answers placeholder routes with plain text and status 200
func NotImplemented(c *gin.Context, what string) {
	c.String(http.StatusOK, "NOT IMPLEMENTED: "+what)
}
