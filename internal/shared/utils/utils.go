package utils

import (
	"strings"

	"github.com/google/uuid"
)

func ParseStringToUUID(s string) uuid.UUID {
	uid, err := uuid.Parse(strings.TrimSpace(s))
	if err != nil || s == "" {
		return uuid.Nil
	}
	return uid
}

// htmlEscaper mirrors the usual form sanitizer: & < > " ' / \ and ` become entities.
var htmlEscaper = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
	`"`, "&quot;",
	"'", "&#x27;",
	"/", "&#x2F;",
	`\`, "&#x5C;",
	"`", "&#96;",
)

// Escape sanitizes a submitted form value before it is stored
func Escape(s string) string {
	return htmlEscaper.Replace(s)
}

var htmlUnescaper = strings.NewReplacer(
	"&amp;", "&",
	"&lt;", "<",
	"&gt;", ">",
	"&quot;", `"`,
	"&#x27;", "'",
	"&#x2F;", "/",
	"&#x5C;", `\`,
	"&#96;", "`",
)

// Unescape reverses Escape in a single pass, so Unescape(Escape(s)) == s.
// Stored values are unescaped before rendering; html/template escapes them again on output.
func Unescape(s string) string {
	return htmlUnescaper.Replace(s)
}
