package model

import (
	"github.com/google/uuid"
)

// Book is owned by the catalog's book module; bookinstance and genre
// pages only read its id, title and summary.
type Book struct {
	ID         uuid.UUID `json:"id" db:"id"`
	Title      string    `json:"title" db:"title"`
	Summary    string    `json:"summary" db:"summary"`
	ISBN       string    `json:"isbn" db:"isbn"`
	AuthorName string    `json:"author_name" db:"author_name"`
}

// URL is the book detail page
func (b *Book) URL() string {
	return "/catalog/book/" + b.ID.String()
}

// BookOption is the projection used by select lists
type BookOption struct {
	ID    uuid.UUID `json:"id"`
	Title string    `json:"title"`
}

func (b *Book) ToOption() BookOption {
	return BookOption{ID: b.ID, Title: b.Title}
}
