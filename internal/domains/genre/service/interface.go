package service

import (
	"context"

	"github.com/google/uuid"

	"library-catalog/internal/domains/genre/model"
)

// ServiceInterface defines genre use cases
type ServiceInterface interface {
	// ListGenres returns genres in ascending name order
	ListGenres(ctx context.Context) ([]*model.Genre, error)

	// GetGenreDetail fetches the genre and its books concurrently.
	// Returns a NotFound error ("Genre not found") if the genre is absent.
	GetGenreDetail(ctx context.Context, id uuid.UUID) (*model.GenreDetail, error)

	// CreateGenre validates the form, then reuses a genre with the same name
	// or inserts a new one
	CreateGenre(ctx context.Context, form *model.GenreForm) (*model.CreateResult, error)

	// DeleteGenre removes the genre unless books still reference it
	DeleteGenre(ctx context.Context, id uuid.UUID) (*model.DeleteResult, error)
}
