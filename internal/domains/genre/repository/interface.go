package repository

import (
	"context"

	"github.com/google/uuid"

	"library-catalog/internal/domains/genre/model"
)

// RepositoryInterface defines data access for genres
type RepositoryInterface interface {
	// List returns all genres in ascending name order
	List(ctx context.Context) ([]*model.Genre, error)

	// GetByID returns nil, nil if not found
	GetByID(ctx context.Context, id uuid.UUID) (*model.Genre, error)

	// FindByName matches the exact stored name. Returns nil, nil if not found.
	FindByName(ctx context.Context, name string) (*model.Genre, error)

	// Create fails with a GENRE_NAME_EXISTS error when the name is taken
	Create(ctx context.Context, genre *model.Genre) (*model.Genre, error)

	// Delete removes the genre unless books reference it (GENRE_HAS_BOOKS).
	// Deleting a missing genre is not an error.
	Delete(ctx context.Context, id uuid.UUID) error
}
