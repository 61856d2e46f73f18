package model

import (
	"time"

	"github.com/google/uuid"

	bookModel "library-catalog/internal/domains/book/model"
	"library-catalog/internal/shared/validation"
)

// Status is the lending state of a copy
type Status string

const (
	StatusAvailable   Status = "Available"
	StatusMaintenance Status = "Maintenance"
	StatusLoaned      Status = "Loaned"
	StatusReserved    Status = "Reserved"

	// DefaultStatus is applied when the form leaves status empty
	DefaultStatus = StatusMaintenance
)

// Statuses lists every status in the order the form shows them
var Statuses = []Status{StatusMaintenance, StatusAvailable, StatusLoaned, StatusReserved}

func (s Status) IsValid() bool {
	switch s {
	case StatusAvailable, StatusMaintenance, StatusLoaned, StatusReserved:
		return true
	}
	return false
}

func (s Status) String() string {
	return string(s)
}

// BookInstance is one physical/lending copy of a Book
type BookInstance struct {
	ID        uuid.UUID  `json:"id" db:"id"`
	BookID    uuid.UUID  `json:"book_id" db:"book_id"`
	BookTitle string     `json:"book_title" db:"book_title"`
	Imprint   string     `json:"imprint" db:"imprint"`
	Status    Status     `json:"status" db:"status"`
	DueBack   *time.Time `json:"due_back,omitempty" db:"due_back"`
	CreatedAt time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt time.Time  `json:"updated_at" db:"updated_at"`
}

// URL is the detail page of the copy
func (bi *BookInstance) URL() string {
	return "/catalog/bookinstance/" + bi.ID.String()
}

// BookURL links to the copy's book
func (bi *BookInstance) BookURL() string {
	return "/catalog/book/" + bi.BookID.String()
}

// DueBackFormatted renders the due date for pages, e.g. "Mar 5, 2025"
func (bi *BookInstance) DueBackFormatted() string {
	if bi.DueBack == nil {
		return ""
	}
	return bi.DueBack.Format("Jan 2, 2006")
}

// DueBackISO pre-fills the date input of the form
func (bi *BookInstance) DueBackISO() string {
	if bi.DueBack == nil {
		return ""
	}
	return bi.DueBack.Format("2006-01-02")
}

// FormResult is what a create/update submission produces: either a saved
// instance, or field errors plus everything needed to re-render the form.
type FormResult struct {
	BookInstance *BookInstance
	Errors       []validation.FieldError
	BookOptions  []bookModel.BookOption
}

func (r *FormResult) HasErrors() bool {
	return len(r.Errors) > 0
}

// UpdateFormData pre-fills the update form
type UpdateFormData struct {
	BookInstance *BookInstance
	BookOptions  []bookModel.BookOption
}
