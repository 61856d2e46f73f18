package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"library-catalog/internal/domains/genre/model"
	"library-catalog/internal/infrastructure/database"
	txutil "library-catalog/pkg/database"
)

// postgresRepository implements RepositoryInterface
type postgresRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresRepository creates a new genre repository
func NewPostgresRepository(pool *pgxpool.Pool) RepositoryInterface {
	return &postgresRepository{
		pool: pool,
	}
}

func scanGenre(row pgx.Row) (*model.Genre, error) {
	var g model.Genre
	if err := row.Scan(&g.ID, &g.Name, &g.CreatedAt, &g.UpdatedAt); err != nil {
		return nil, err
	}
	return &g, nil
}

func (r *postgresRepository) List(ctx context.Context) ([]*model.Genre, error) {
	query := `
    SELECT id, name, created_at, updated_at
    FROM genres
    ORDER BY name ASC
  `
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list genres: %w", err)
	}
	defer rows.Close()

	genres := make([]*model.Genre, 0)
	for rows.Next() {
		g, err := scanGenre(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan genre row: %w", err)
		}
		genres = append(genres, g)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating genre rows: %w", err)
	}
	return genres, nil
}

func (r *postgresRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Genre, error) {
	query := `SELECT id, name, created_at, updated_at FROM genres WHERE id = $1`

	g, err := scanGenre(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get genre by id: %w", err)
	}
	return g, nil
}

func (r *postgresRepository) FindByName(ctx context.Context, name string) (*model.Genre, error) {
	query := `SELECT id, name, created_at, updated_at FROM genres WHERE name = $1`

	g, err := scanGenre(r.pool.QueryRow(ctx, query, name))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get genre by name: %w", err)
	}
	return g, nil
}

func (r *postgresRepository) Create(ctx context.Context, genre *model.Genre) (*model.Genre, error) {
	query := `
    INSERT INTO genres (name)
    VALUES ($1)
    RETURNING id, name, created_at, updated_at
  `
	g, err := scanGenre(r.pool.QueryRow(ctx, query, genre.Name))
	if err != nil {
		if database.IsUniqueViolation(err) {
			return nil, model.NewGenreNameExists(genre.Name, err)
		}
		return nil, fmt.Errorf("failed to insert genre: %w", err)
	}
	return g, nil
}

// Delete locks the genre row so no book can be tagged between the check and the delete
func (r *postgresRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return txutil.WithTransaction(ctx, r.pool, func(tx pgx.Tx) error {
		var locked uuid.UUID
		err := tx.QueryRow(ctx, `SELECT id FROM genres WHERE id = $1 FOR UPDATE`, id).Scan(&locked)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return nil
			}
			return fmt.Errorf("failed to lock genre: %w", err)
		}

		var references int
		err = tx.QueryRow(ctx, `SELECT COUNT(*) FROM book_genres WHERE genre_id = $1`, id).Scan(&references)
		if err != nil {
			return fmt.Errorf("failed to count genre books: %w", err)
		}
		if references > 0 {
			return model.NewGenreHasBooks()
		}

		if _, err := tx.Exec(ctx, `DELETE FROM genres WHERE id = $1`, id); err != nil {
			if database.IsForeignKeyViolation(err) {
				return model.NewGenreHasBooks()
			}
			return fmt.Errorf("failed to delete genre: %w", err)
		}
		return nil
	})
}
