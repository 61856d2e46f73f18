package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	bookModel "library-catalog/internal/domains/book/model"
	bookRepo "library-catalog/internal/domains/book/repository"
	"library-catalog/internal/domains/genre/model"
	"library-catalog/internal/domains/genre/repository"
	"library-catalog/pkg/cache"
)

type genreService struct {
	repo     repository.RepositoryInterface
	bookRepo bookRepo.RepositoryInterface
	cache    cache.Cache
	cacheTTL time.Duration
}

// NewGenreService wires the service. cache may be nil to disable caching.
func NewGenreService(
	repo repository.RepositoryInterface,
	books bookRepo.RepositoryInterface,
	c cache.Cache,
	cacheTTL time.Duration,
) ServiceInterface {
	return &genreService{
		repo:     repo,
		bookRepo: books,
		cache:    c,
		cacheTTL: cacheTTL,
	}
}

func (s *genreService) ListGenres(ctx context.Context) ([]*model.Genre, error) {
	if s.cache != nil {
		var cached []*model.Genre
		found, err := s.cache.Get(ctx, cache.KeyGenreList, &cached)
		if err != nil {
			log.Warn().Err(err).Str("key", cache.KeyGenreList).Msg("cache read failed")
		} else if found {
			return cached, nil
		}
	}

	genres, err := s.repo.List(ctx)
	if err != nil {
		return nil, model.NewListGenreError(err)
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, cache.KeyGenreList, genres, s.cacheTTL); err != nil {
			log.Warn().Err(err).Str("key", cache.KeyGenreList).Msg("cache write failed")
		}
	}
	return genres, nil
}

func (s *genreService) GetGenreDetail(ctx context.Context, id uuid.UUID) (*model.GenreDetail, error) {
	if id == uuid.Nil {
		return nil, model.NewGenreNotFound()
	}

	detail, err := s.fetchWithBooks(ctx, id)
	if err != nil {
		return nil, err
	}
	if detail.Genre == nil {
		return nil, model.NewGenreNotFound()
	}
	return detail, nil
}

// fetchWithBooks loads the genre and its books concurrently; the first error cancels the other query
func (s *genreService) fetchWithBooks(ctx context.Context, id uuid.UUID) (*model.GenreDetail, error) {
	var (
		genre *model.Genre
		books []bookModel.Book
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		genre, err = s.repo.GetByID(gctx, id)
		if err != nil {
			return model.NewGetGenreError(err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		books, err = s.bookRepo.ListByGenre(gctx, id)
		if err != nil {
			return model.NewListGenreBooksError(err)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return &model.GenreDetail{Genre: genre, Books: books}, nil
}

func (s *genreService) CreateGenre(ctx context.Context, form *model.GenreForm) (*model.CreateResult, error) {
	genre, fieldErrs, err := form.Bind()
	if err != nil {
		return nil, model.NewValidationError(err)
	}
	if len(fieldErrs) > 0 {
		return &model.CreateResult{Genre: genre, Errors: fieldErrs}, nil
	}

	existing, err := s.repo.FindByName(ctx, genre.Name)
	if err != nil {
		return nil, model.NewGetGenreError(err)
	}
	if existing != nil {
		return &model.CreateResult{Genre: existing, Existing: true}, nil
	}

	created, err := s.repo.Create(ctx, genre)
	if err != nil {
		if !model.IsNameExists(err) {
			return nil, model.NewCreateGenreError(err)
		}
		// Another request inserted the same name after our lookup.
		winner, findErr := s.repo.FindByName(ctx, genre.Name)
		if findErr != nil {
			return nil, model.NewGetGenreError(findErr)
		}
		if winner == nil {
			return nil, model.NewCreateGenreError(err)
		}
		return &model.CreateResult{Genre: winner, Existing: true}, nil
	}

	s.invalidate(ctx)
	log.Info().Str("genre_id", created.ID.String()).Str("name", created.Name).Msg("genre created")
	return &model.CreateResult{Genre: created}, nil
}

func (s *genreService) DeleteGenre(ctx context.Context, id uuid.UUID) (*model.DeleteResult, error) {
	if id == uuid.Nil {
		return &model.DeleteResult{Deleted: true}, nil
	}

	detail, err := s.fetchWithBooks(ctx, id)
	if err != nil {
		return nil, err
	}
	if len(detail.Books) > 0 {
		return &model.DeleteResult{Genre: detail.Genre, Books: detail.Books}, nil
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		if !model.IsHasBooks(err) {
			return nil, model.NewDeleteGenreError(err)
		}
		// A book was tagged between the check and the delete.
		books, listErr := s.bookRepo.ListByGenre(ctx, id)
		if listErr != nil {
			return nil, model.NewListGenreBooksError(listErr)
		}
		return &model.DeleteResult{Genre: detail.Genre, Books: books}, nil
	}

	s.invalidate(ctx)
	log.Info().Str("genre_id", id.String()).Msg("genre deleted")
	return &model.DeleteResult{Deleted: true, Genre: detail.Genre}, nil
}

func (s *genreService) invalidate(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Delete(ctx, cache.KeyGenreList); err != nil {
		log.Warn().Err(err).Str("key", cache.KeyGenreList).Msg("cache invalidation failed")
	}
}
