package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	bookModel "library-catalog/internal/domains/book/model"
	bookRepo "library-catalog/internal/domains/book/repository"
	"library-catalog/internal/domains/bookinstance/model"
	"library-catalog/internal/domains/bookinstance/repository"
	"library-catalog/internal/shared/validation"
	"library-catalog/pkg/cache"
)

const (
	msgDetailNotFound = "Ebook copy not found"
	msgUpdateNotFound = "No book instance found"
)

type bookInstanceService struct {
	repo       repository.RepositoryInterface
	bookRepo   bookRepo.RepositoryInterface
	cache      cache.Cache
	optionsTTL time.Duration
}

// NewBookInstanceService wires the service. cache may be nil to disable caching.
func NewBookInstanceService(
	repo repository.RepositoryInterface,
	books bookRepo.RepositoryInterface,
	c cache.Cache,
	optionsTTL time.Duration,
) ServiceInterface {
	return &bookInstanceService{
		repo:       repo,
		bookRepo:   books,
		cache:      c,
		optionsTTL: optionsTTL,
	}
}

func (s *bookInstanceService) ListBookInstances(ctx context.Context) ([]*model.BookInstance, error) {
	instances, err := s.repo.List(ctx)
	if err != nil {
		return nil, model.NewListBookInstanceError(err)
	}
	return instances, nil
}

func (s *bookInstanceService) GetBookInstance(ctx context.Context, id uuid.UUID) (*model.BookInstance, error) {
	return s.get(ctx, id, msgDetailNotFound)
}

func (s *bookInstanceService) get(ctx context.Context, id uuid.UUID, notFoundMsg string) (*model.BookInstance, error) {
	if id == uuid.Nil {
		return nil, model.NewBookInstanceNotFound(notFoundMsg)
	}

	instance, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, model.NewGetBookInstanceError(err)
	}
	if instance == nil {
		return nil, model.NewBookInstanceNotFound(notFoundMsg)
	}
	return instance, nil
}

// GetBookOptions reads through the cache; cache failures only cost a query
func (s *bookInstanceService) GetBookOptions(ctx context.Context) ([]bookModel.BookOption, error) {
	if s.cache != nil {
		var cached []bookModel.BookOption
		found, err := s.cache.Get(ctx, cache.KeyBookOptions, &cached)
		if err != nil {
			log.Warn().Err(err).Str("key", cache.KeyBookOptions).Msg("cache read failed")
		} else if found {
			return cached, nil
		}
	}

	options, err := s.bookRepo.ListOptions(ctx)
	if err != nil {
		return nil, model.NewListBooksError(err)
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, cache.KeyBookOptions, options, s.optionsTTL); err != nil {
			log.Warn().Err(err).Str("key", cache.KeyBookOptions).Msg("cache write failed")
		}
	}
	return options, nil
}

func (s *bookInstanceService) CreateBookInstance(ctx context.Context, form *model.BookInstanceForm) (*model.FormResult, error) {
	instance, fieldErrs, err := form.Bind()
	if err != nil {
		return nil, model.NewValidationError(err)
	}

	if len(fieldErrs) > 0 {
		return s.rejected(ctx, instance, fieldErrs)
	}

	created, err := s.repo.Create(ctx, instance)
	if err != nil {
		if model.IsInvalidBookReference(err) {
			return s.rejected(ctx, instance, bookReferenceError(form.Book))
		}
		return nil, model.NewCreateBookInstanceError(err)
	}

	log.Info().Str("book_instance_id", created.ID.String()).Msg("book instance created")
	return &model.FormResult{BookInstance: created}, nil
}

func (s *bookInstanceService) GetBookInstanceForUpdate(ctx context.Context, id uuid.UUID) (*model.UpdateFormData, error) {
	var (
		instance *model.BookInstance
		options  []bookModel.BookOption
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		instance, err = s.get(gctx, id, msgUpdateNotFound)
		return err
	})
	g.Go(func() error {
		var err error
		options, err = s.GetBookOptions(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return &model.UpdateFormData{BookInstance: instance, BookOptions: options}, nil
}

func (s *bookInstanceService) UpdateBookInstance(ctx context.Context, id uuid.UUID, form *model.BookInstanceForm) (*model.FormResult, error) {
	if id == uuid.Nil {
		return nil, model.NewBookInstanceNotFound(msgUpdateNotFound)
	}

	instance, fieldErrs, err := form.Bind()
	if err != nil {
		return nil, model.NewValidationError(err)
	}
	instance.ID = id

	if len(fieldErrs) > 0 {
		return s.rejected(ctx, instance, fieldErrs)
	}

	updated, err := s.repo.Update(ctx, id, instance)
	if err != nil {
		if model.IsInvalidBookReference(err) {
			return s.rejected(ctx, instance, bookReferenceError(form.Book))
		}
		return nil, model.NewUpdateBookInstanceError(err)
	}
	if updated == nil {
		return nil, model.NewBookInstanceNotFound(msgUpdateNotFound)
	}

	log.Info().Str("book_instance_id", id.String()).Msg("book instance updated")
	return &model.FormResult{BookInstance: updated}, nil
}

func (s *bookInstanceService) DeleteBookInstance(ctx context.Context, id uuid.UUID) error {
	if id == uuid.Nil {
		return nil
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return model.NewDeleteBookInstanceError(err)
	}

	log.Info().Str("book_instance_id", id.String()).Msg("book instance deleted")
	return nil
}

// rejected re-supplies the book list so create and update re-render the same way
func (s *bookInstanceService) rejected(ctx context.Context, instance *model.BookInstance, fieldErrs []validation.FieldError) (*model.FormResult, error) {
	options, err := s.GetBookOptions(ctx)
	if err != nil {
		return nil, err
	}
	return &model.FormResult{
		BookInstance: instance,
		Errors:       fieldErrs,
		BookOptions:  options,
	}, nil
}

func bookReferenceError(value string) []validation.FieldError {
	return []validation.FieldError{{
		Param: "book",
		Msg:   "Book must reference an existing book",
		Value: value,
	}}
}
