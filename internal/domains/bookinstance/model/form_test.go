package model

import (
	"errors"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBookInstanceForm_Bind(t *testing.T) {
	bookID := uuid.New()

	tests := []struct {
		name       string
		form       BookInstanceForm
		wantParams []string
		wantMsgs   []string
		check      func(t *testing.T, bi *BookInstance)
	}{
		{
			name:       "empty form reports book then imprint",
			form:       BookInstanceForm{},
			wantParams: []string{"book", "imprint"},
			wantMsgs:   []string{"Book must be specified", "Imprint must be specified"},
			check: func(t *testing.T, bi *BookInstance) {
				assert.Equal(t, StatusMaintenance, bi.Status)
				assert.Equal(t, uuid.Nil, bi.BookID)
			},
		},
		{
			name:       "whitespace only counts as missing",
			form:       BookInstanceForm{Book: "   ", Imprint: " \t "},
			wantParams: []string{"book", "imprint"},
			wantMsgs:   []string{"Book must be specified", "Imprint must be specified"},
		},
		{
			name:       "book that is not an id",
			form:       BookInstanceForm{Book: "moby-dick", Imprint: "Penguin"},
			wantParams: []string{"book"},
			wantMsgs:   []string{"Book must be specified"},
		},
		{
			name:       "unknown status",
			form:       BookInstanceForm{Book: bookID.String(), Imprint: "Penguin", Status: "Lost"},
			wantParams: []string{"status"},
			wantMsgs:   []string{"Invalid status"},
		},
		{
			name:       "bad date keeps the submitted value",
			form:       BookInstanceForm{Book: bookID.String(), Imprint: "Penguin", DueBack: "31/12/2024"},
			wantParams: []string{"due_back"},
			wantMsgs:   []string{"Invalid date"},
			check: func(t *testing.T, bi *BookInstance) {
				assert.Nil(t, bi.DueBack)
				assert.Equal(t, bookID, bi.BookID)
			},
		},
		{
			name: "valid submission is trimmed escaped and coerced",
			form: BookInstanceForm{
				Book:    " " + bookID.String() + " ",
				Imprint: "  Faber & Faber, 2011 ",
				Status:  "Loaned",
				DueBack: "2024-06-01",
			},
			check: func(t *testing.T, bi *BookInstance) {
				assert.Equal(t, bookID, bi.BookID)
				assert.Equal(t, "Faber &amp; Faber, 2011", bi.Imprint)
				assert.Equal(t, StatusLoaned, bi.Status)
				require.NotNil(t, bi.DueBack)
				assert.Equal(t, time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC), *bi.DueBack)
			},
		},
		{
			name: "empty status defaults to maintenance",
			form: BookInstanceForm{Book: bookID.String(), Imprint: "Penguin"},
			check: func(t *testing.T, bi *BookInstance) {
				assert.Equal(t, DefaultStatus, bi.Status)
				assert.Nil(t, bi.DueBack)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			form := tt.form
			bi, fieldErrs, err := form.Bind()
			require.NoError(t, err)
			require.NotNil(t, bi)

			var params, msgs []string
			for _, fe := range fieldErrs {
				params = append(params, fe.Param)
				msgs = append(msgs, fe.Msg)
			}
			assert.Equal(t, tt.wantParams, params)
			assert.Equal(t, tt.wantMsgs, msgs)

			if tt.check != nil {
				tt.check(t, bi)
			}
		})
	}
}

func TestBookInstanceForm_ImprintLengthCountsEscapedForm(t *testing.T) {
	bookID := uuid.NewString()

	fits := BookInstanceForm{Book: bookID, Imprint: strings.Repeat("a", ImprintMaxLength)}
	bi, fieldErrs, err := fits.Bind()
	require.NoError(t, err)
	assert.Empty(t, fieldErrs)
	assert.Len(t, bi.Imprint, ImprintMaxLength)

	// 255 runes typed, 259 stored
	over := BookInstanceForm{Book: bookID, Imprint: strings.Repeat("a", ImprintMaxLength-4) + " & x"}
	_, fieldErrs, err = over.Bind()
	require.NoError(t, err)
	require.Len(t, fieldErrs, 1)
	assert.Equal(t, "imprint", fieldErrs[0].Param)
	assert.Equal(t, "Imprint is too long", fieldErrs[0].Msg)
}

func TestBookInstanceForm_BindEchoesDateValue(t *testing.T) {
	form := BookInstanceForm{Book: uuid.NewString(), Imprint: "Penguin", DueBack: "someday"}

	_, fieldErrs, err := form.Bind()
	require.NoError(t, err)
	require.Len(t, fieldErrs, 1)
	assert.Equal(t, "someday", fieldErrs[0].Value)
}

func TestStatus_IsValid(t *testing.T) {
	for _, s := range Statuses {
		assert.True(t, s.IsValid(), s)
	}
	assert.False(t, Status("Lost").IsValid())
	assert.False(t, Status("").IsValid())
}

func TestBookInstance_DueBackFormatting(t *testing.T) {
	due := time.Date(2025, 3, 5, 0, 0, 0, 0, time.UTC)
	bi := &BookInstance{DueBack: &due}

	assert.Equal(t, "Mar 5, 2025", bi.DueBackFormatted())
	assert.Equal(t, "2025-03-05", bi.DueBackISO())

	empty := &BookInstance{}
	assert.Empty(t, empty.DueBackFormatted())
	assert.Empty(t, empty.DueBackISO())
}

func TestMapErrorToHTTP(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantMsg    string
		wantCode   string
	}{
		{"not found keeps its message", NewBookInstanceNotFound("Ebook copy not found"), http.StatusNotFound, "Ebook copy not found", CodeNotFound},
		{"invalid book", NewInvalidBookReference(errors.New("fk")), http.StatusUnprocessableEntity, "Book must reference an existing book", CodeInvalidBook},
		{"repository failure", NewListBookInstanceError(errors.New("conn reset")), http.StatusInternalServerError, "Failed to list book instances", CodeListFailed},
		{"unknown error", errors.New("boom"), http.StatusInternalServerError, "Internal server error", "INTERNAL_ERROR"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, msg, code := MapErrorToHTTP(tt.err)
			assert.Equal(t, tt.wantStatus, status)
			assert.Equal(t, tt.wantMsg, msg)
			assert.Equal(t, tt.wantCode, code)
		})
	}
}

func TestErrorHelpers_SeeThroughWrapping(t *testing.T) {
	wrapped := errors.Join(errors.New("context"), NewBookInstanceNotFound("No book instance found"))

	assert.True(t, IsNotFound(wrapped))
	assert.False(t, IsInvalidBookReference(wrapped))
	assert.Equal(t, "UNKNOWN_ERROR", GetErrorCode(errors.New("plain")))
}
