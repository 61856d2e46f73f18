package repository

import (
	"context"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"library-catalog/internal/domains/book/model"
)

// psql builds queries with $n placeholders for pgx
var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

// postgresRepository implements RepositoryInterface
type postgresRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresRepository creates a new book repository instance
func NewPostgresRepository(pool *pgxpool.Pool) RepositoryInterface {
	return &postgresRepository{
		pool: pool,
	}
}

// find runs a predicate query with optional sort and column projection
func (r *postgresRepository) find(ctx context.Context, q sq.SelectBuilder) (pgx.Rows, error) {
	query, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build book query: %w", err)
	}

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query books: %w", err)
	}
	return rows, nil
}

func (r *postgresRepository) ListOptions(ctx context.Context) ([]model.BookOption, error) {
	rows, err := r.find(ctx, psql.
		Select("id", "title").
		From("books").
		OrderBy("title ASC", "id ASC"))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	options := make([]model.BookOption, 0)
	for rows.Next() {
		var opt model.BookOption
		if err := rows.Scan(&opt.ID, &opt.Title); err != nil {
			return nil, fmt.Errorf("failed to scan book option: %w", err)
		}
		options = append(options, opt)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating book rows: %w", err)
	}
	return options, nil
}

func (r *postgresRepository) ListByGenre(ctx context.Context, genreID uuid.UUID) ([]model.Book, error) {
	// uuid.UUID is an array type; squirrel would expand it into an IN list, so bind the string form.
	rows, err := r.find(ctx, psql.
		Select(
			"b.id",
			"b.title",
			"COALESCE(b.summary, '')",
			"COALESCE(b.isbn, '')",
			"COALESCE(b.author_name, '')",
		).
		From("books b").
		Join("book_genres bg ON bg.book_id = b.id").
		Where(sq.Eq{"bg.genre_id": genreID.String()}).
		OrderBy("b.title ASC"))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	books := make([]model.Book, 0)
	for rows.Next() {
		var b model.Book
		if err := rows.Scan(&b.ID, &b.Title, &b.Summary, &b.ISBN, &b.AuthorName); err != nil {
			return nil, fmt.Errorf("failed to scan book row: %w", err)
		}
		books = append(books, b)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating book rows: %w", err)
	}
	return books, nil
}
