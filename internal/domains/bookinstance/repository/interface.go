package repository

import (
	"context"

	"github.com/google/uuid"

	"library-catalog/internal/domains/bookinstance/model"
)

// RepositoryInterface defines data access for book instances
type RepositoryInterface interface {
	// List returns every instance with its book title resolved
	List(ctx context.Context) ([]*model.BookInstance, error)

	// GetByID returns nil, nil if not found
	GetByID(ctx context.Context, id uuid.UUID) (*model.BookInstance, error)

	// Create inserts and returns the stored instance with generated ID
	Create(ctx context.Context, instance *model.BookInstance) (*model.BookInstance, error)

	// Update replaces book, imprint, status and due_back. Returns nil, nil if not found.
	Update(ctx context.Context, id uuid.UUID, instance *model.BookInstance) (*model.BookInstance, error)

	// Delete removes by id; deleting a missing id is not an error
	Delete(ctx context.Context, id uuid.UUID) error
}
