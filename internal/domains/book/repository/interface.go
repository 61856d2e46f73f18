package repository

import (
	"context"

	"github.com/google/uuid"

	"library-catalog/internal/domains/book/model"
)

// RepositoryInterface - read-only access to books
type RepositoryInterface interface {
	// ListOptions returns id + title of every book ordered by title
	ListOptions(ctx context.Context) ([]model.BookOption, error)

	// ListByGenre returns books tagged with the genre ordered by title
	ListByGenre(ctx context.Context, genreID uuid.UUID) ([]model.Book, error)
}
