package service

import (
	"context"

	"github.com/google/uuid"

	bookModel "library-catalog/internal/domains/book/model"
	"library-catalog/internal/domains/bookinstance/model"
)

// ServiceInterface defines book instance use cases
type ServiceInterface interface {
	ListBookInstances(ctx context.Context) ([]*model.BookInstance, error)

	// GetBookInstance returns a NotFound error ("Ebook copy not found") if absent
	GetBookInstance(ctx context.Context, id uuid.UUID) (*model.BookInstance, error)

	// GetBookOptions lists books for the form's select
	GetBookOptions(ctx context.Context) ([]bookModel.BookOption, error)

	// CreateBookInstance validates and persists. Validation failures come back
	// in FormResult.Errors, never as error.
	CreateBookInstance(ctx context.Context, form *model.BookInstanceForm) (*model.FormResult, error)

	// GetBookInstanceForUpdate fetches the instance and book options concurrently
	GetBookInstanceForUpdate(ctx context.Context, id uuid.UUID) (*model.UpdateFormData, error)

	UpdateBookInstance(ctx context.Context, id uuid.UUID, form *model.BookInstanceForm) (*model.FormResult, error)

	DeleteBookInstance(ctx context.Context, id uuid.UUID) error
}
