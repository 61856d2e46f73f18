package model

import (
	"time"

	"github.com/google/uuid"

	bookModel "library-catalog/internal/domains/book/model"
	"library-catalog/internal/shared/validation"
)

// Genre is a book category
type Genre struct {
	ID        uuid.UUID `json:"id" db:"id"`
	Name      string    `json:"name" db:"name"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

// URL is the genre detail page
func (g *Genre) URL() string {
	return "/catalog/genre/" + g.ID.String()
}

// GenreDetail is a genre with the books tagged with it
type GenreDetail struct {
	Genre *Genre
	Books []bookModel.Book
}

// CreateResult carries either field errors or the genre to redirect to.
// Existing is true when a genre with the same name was already stored.
type CreateResult struct {
	Genre    *Genre
	Errors   []validation.FieldError
	Existing bool
}

func (r *CreateResult) HasErrors() bool {
	return len(r.Errors) > 0
}

// DeleteResult reports whether the genre was removed. When books still
// reference it, Books lists them and Deleted is false.
type DeleteResult struct {
	Deleted bool
	Genre   *Genre
	Books   []bookModel.Book
}
