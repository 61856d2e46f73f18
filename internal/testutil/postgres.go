//go:build integration

package testutil

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	_ "github.com/lib/pq"
	"github.com/pressly/goose/v3"
	"github.com/stretchr/testify/require"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"

	"library-catalog/internal/infrastructure/database"
	"library-catalog/migrations"
)

const postgresImage = "postgres:16-alpine"

// StartPostgres runs a throwaway PostgreSQL container, applies the embedded
// migrations and returns a pool connected the way the server connects.
// The container is terminated when the test finishes.
func StartPostgres(t *testing.T) *pgxpool.Pool {
	t.Helper()
	ctx := context.Background()

	ctr, err := tcpostgres.Run(ctx, postgresImage,
		tcpostgres.WithDatabase("library_test"),
		tcpostgres.WithUsername("library"),
		tcpostgres.WithPassword("library"),
		tcpostgres.BasicWaitStrategies(),
	)
	require.NoError(t, err, "Failed to start PostgreSQL container")
	t.Cleanup(func() {
		_ = ctr.Terminate(context.Background())
	})

	host, err := ctr.Host(ctx)
	require.NoError(t, err)
	port, err := ctr.MappedPort(ctx, "5432/tcp")
	require.NoError(t, err)

	cfg := &database.DBConfig{
		Host:           host,
		Port:           port.Int(),
		Username:       "library",
		Password:       "library",
		DBName:         "library_test",
		SSLMode:        "disable",
		MaxConns:       4,
		MaxRetries:     3,
		RetryDelay:     500 * time.Millisecond,
		ConnectTimeout: 10 * time.Second,
	}

	migrate(t, cfg.DSN())

	db := database.NewPostgresDB(cfg)
	require.NoError(t, db.Connect(ctx), "Failed to connect to PostgreSQL")
	t.Cleanup(func() {
		_ = db.Close()
	})

	return db.Pool
}

func migrate(t *testing.T, dsn string) {
	t.Helper()

	sqlDB, err := sql.Open("postgres", dsn)
	require.NoError(t, err)
	defer sqlDB.Close()

	goose.SetBaseFS(migrations.FS)
	require.NoError(t, goose.SetDialect("postgres"))
	require.NoError(t, goose.Up(sqlDB, "."), "Failed to run migrations")
}

// ResetPostgres empties every catalog table
func ResetPostgres(t *testing.T, pool *pgxpool.Pool) {
	t.Helper()
	_, err := pool.Exec(context.Background(),
		"TRUNCATE book_instances, book_genres, genres, books")
	require.NoError(t, err)
}

// InsertBook adds a book row directly; books have no write path in the server
func InsertBook(t *testing.T, pool *pgxpool.Pool, title string) uuid.UUID {
	t.Helper()
	var id uuid.UUID
	err := pool.QueryRow(context.Background(),
		"INSERT INTO books (title, summary, isbn, author_name) VALUES ($1, $2, $3, $4) RETURNING id",
		title, "Summary of "+title, "978-0000000000", "Anon",
	).Scan(&id)
	require.NoError(t, err)
	return id
}

// InsertBookGenre tags a book with a genre
func InsertBookGenre(t *testing.T, pool *pgxpool.Pool, bookID, genreID uuid.UUID) {
	t.Helper()
	_, err := pool.Exec(context.Background(),
		"INSERT INTO book_genres (book_id, genre_id) VALUES ($1, $2)",
		bookID.String(), genreID.String())
	require.NoError(t, err)
}

// InsertGenre adds a genre row without going through the genre repository
func InsertGenre(t *testing.T, pool *pgxpool.Pool, name string) uuid.UUID {
	t.Helper()
	var id uuid.UUID
	err := pool.QueryRow(context.Background(),
		"INSERT INTO genres (name) VALUES ($1) RETURNING id", name,
	).Scan(&id)
	require.NoError(t, err)
	return id
}
