package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"library-catalog/internal/domains/bookinstance/model"
	"library-catalog/internal/infrastructure/database"
)

// postgresRepository implements RepositoryInterface
type postgresRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresRepository creates a new book instance repository
func NewPostgresRepository(pool *pgxpool.Pool) RepositoryInterface {
	return &postgresRepository{
		pool: pool,
	}
}

const selectInstance = `
    SELECT bi.id, bi.book_id, b.title, bi.imprint, bi.status, bi.due_back,
           bi.created_at, bi.updated_at
    FROM book_instances bi
    JOIN books b ON b.id = bi.book_id
`

func scanInstance(row pgx.Row) (*model.BookInstance, error) {
	var bi model.BookInstance
	var status string
	err := row.Scan(
		&bi.ID,
		&bi.BookID,
		&bi.BookTitle,
		&bi.Imprint,
		&status,
		&bi.DueBack,
		&bi.CreatedAt,
		&bi.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	bi.Status = model.Status(status)
	return &bi, nil
}

func (r *postgresRepository) List(ctx context.Context) ([]*model.BookInstance, error) {
	rows, err := r.pool.Query(ctx, selectInstance+` ORDER BY b.title ASC, bi.imprint ASC, bi.id ASC`)
	if err != nil {
		return nil, fmt.Errorf("failed to list book instances: %w", err)
	}
	defer rows.Close()

	instances := make([]*model.BookInstance, 0)
	for rows.Next() {
		bi, err := scanInstance(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan book instance row: %w", err)
		}
		instances = append(instances, bi)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating book instance rows: %w", err)
	}
	return instances, nil
}

func (r *postgresRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.BookInstance, error) {
	bi, err := scanInstance(r.pool.QueryRow(ctx, selectInstance+` WHERE bi.id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get book instance by id: %w", err)
	}
	return bi, nil
}

func (r *postgresRepository) Create(ctx context.Context, instance *model.BookInstance) (*model.BookInstance, error) {
	query := `
    INSERT INTO book_instances (book_id, imprint, status, due_back)
    VALUES ($1, $2, $3, $4)
    RETURNING id, created_at, updated_at
  `
	created := *instance
	err := r.pool.QueryRow(ctx, query,
		instance.BookID, instance.Imprint, string(instance.Status), instance.DueBack,
	).Scan(&created.ID, &created.CreatedAt, &created.UpdatedAt)
	if err != nil {
		if database.IsForeignKeyViolation(err) {
			return nil, model.NewInvalidBookReference(err)
		}
		return nil, fmt.Errorf("failed to insert book instance: %w", err)
	}
	return &created, nil
}

func (r *postgresRepository) Update(ctx context.Context, id uuid.UUID, instance *model.BookInstance) (*model.BookInstance, error) {
	query := `
    UPDATE book_instances
    SET book_id = $2, imprint = $3, status = $4, due_back = $5, updated_at = NOW()
    WHERE id = $1
    RETURNING id, created_at, updated_at
  `
	updated := *instance
	err := r.pool.QueryRow(ctx, query,
		id, instance.BookID, instance.Imprint, string(instance.Status), instance.DueBack,
	).Scan(&updated.ID, &updated.CreatedAt, &updated.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		if database.IsForeignKeyViolation(err) {
			return nil, model.NewInvalidBookReference(err)
		}
		return nil, fmt.Errorf("failed to update book instance: %w", err)
	}
	return &updated, nil
}

func (r *postgresRepository) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := r.pool.Exec(ctx, `DELETE FROM book_instances WHERE id = $1`, id); err != nil {
		return fmt.Errorf("failed to delete book instance: %w", err)
	}
	return nil
}
