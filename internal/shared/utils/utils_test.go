package utils

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestEscape(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"plain", "Penguin Classics", "Penguin Classics"},
		{"ampersand", "Faber & Faber", "Faber &amp; Faber"},
		{"markup", `<b>"x"</b>`, "&lt;b&gt;&quot;x&quot;&lt;&#x2F;b&gt;"},
		{"apostrophe", "O'Reilly", "O&#x27;Reilly"},
		{"backslash and backtick", "a\\b`c", "a&#x5C;b&#96;c"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Escape(tt.in))
		})
	}
}

func TestUnescape_ReversesEscape(t *testing.T) {
	for _, in := range []string{
		"Penguin Classics",
		"O'Reilly & Sons",
		`<b>"x"</b> a\b`+"`c",
		"&amp; already encoded",
		"Sci-Fi & Horror/",
	} {
		t.Run(in, func(t *testing.T) {
			assert.Equal(t, in, Unescape(Escape(in)))
		})
	}

	// single pass: an encoded entity decodes one level only
	assert.Equal(t, "&amp;", Unescape("&amp;amp;"))
	assert.Equal(t, "Faber & Faber", Unescape("Faber &amp; Faber"))
}

func TestParseStringToUUID(t *testing.T) {
	id := uuid.New()

	assert.Equal(t, id, ParseStringToUUID(id.String()))
	assert.Equal(t, id, ParseStringToUUID(" "+id.String()+" "))
	assert.Equal(t, uuid.Nil, ParseStringToUUID(""))
	assert.Equal(t, uuid.Nil, ParseStringToUUID("not-a-uuid"))
}
