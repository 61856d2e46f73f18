// Package testutil holds in-memory doubles for the catalog repositories and
// the cache, shared by service and handler tests.
package testutil

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/samber/lo"

	bookModel "library-catalog/internal/domains/book/model"
	bookRepo "library-catalog/internal/domains/book/repository"
	bookInstanceModel "library-catalog/internal/domains/bookinstance/model"
	bookInstanceRepo "library-catalog/internal/domains/bookinstance/repository"
	genreModel "library-catalog/internal/domains/genre/model"
	genreRepo "library-catalog/internal/domains/genre/repository"
)

// ErrInjected is a convenient failure for Store.Fail
var ErrInjected = errors.New("injected failure")

// Store is an in-memory catalog with the same constraints as the schema:
// unique genre names, book_instances.book_id and book_genres.genre_id FKs.
type Store struct {
	mu        sync.Mutex
	books     map[uuid.UUID]bookModel.Book
	genres    map[uuid.UUID]genreModel.Genre
	instances map[uuid.UUID]bookInstanceModel.BookInstance
	tags      map[uuid.UUID][]uuid.UUID // genre id -> book ids
	failures  map[string]error

	// BeforeGenreCreate runs outside the lock, right before an insert.
	// Tests use it to simulate a concurrent insert of the same name.
	BeforeGenreCreate func(name string)

	// Calls counts repository calls by operation name, e.g. "genres.List"
	Calls map[string]int
}

func NewStore() *Store {
	return &Store{
		books:     make(map[uuid.UUID]bookModel.Book),
		genres:    make(map[uuid.UUID]genreModel.Genre),
		instances: make(map[uuid.UUID]bookInstanceModel.BookInstance),
		tags:      make(map[uuid.UUID][]uuid.UUID),
		failures:  make(map[string]error),
		Calls:     make(map[string]int),
	}
}

// Fail makes the named operation return err until cleared with a nil err
func (s *Store) Fail(op string, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err == nil {
		delete(s.failures, op)
		return
	}
	s.failures[op] = err
}

// CallCount is safe to use while requests are in flight
func (s *Store) CallCount(op string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.Calls[op]
}

// call records the operation and returns its injected error; caller holds the lock
func (s *Store) call(op string) error {
	s.Calls[op]++
	return s.failures[op]
}

// ========================================
// SEEDING
// ========================================

func (s *Store) AddBook(title, summary string) bookModel.Book {
	s.mu.Lock()
	defer s.mu.Unlock()

	b := bookModel.Book{ID: uuid.New(), Title: title, Summary: summary}
	s.books[b.ID] = b
	return b
}

func (s *Store) AddGenre(name string) genreModel.Genre {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now()
	g := genreModel.Genre{ID: uuid.New(), Name: name, CreatedAt: now, UpdatedAt: now}
	s.genres[g.ID] = g
	return g
}

// Tag links a book to a genre
func (s *Store) Tag(bookID, genreID uuid.UUID) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tags[genreID] = append(s.tags[genreID], bookID)
}

func (s *Store) AddInstance(bookID uuid.UUID, imprint string, status bookInstanceModel.Status, dueBack *time.Time) bookInstanceModel.BookInstance {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now()
	bi := bookInstanceModel.BookInstance{
		ID:        uuid.New(),
		BookID:    bookID,
		Imprint:   imprint,
		Status:    status,
		DueBack:   dueBack,
		CreatedAt: now,
		UpdatedAt: now,
	}
	s.instances[bi.ID] = bi
	return bi
}

func (s *Store) Genre(id uuid.UUID) (genreModel.Genre, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	g, ok := s.genres[id]
	return g, ok
}

func (s *Store) GenreCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.genres)
}

func (s *Store) Instance(id uuid.UUID) (bookInstanceModel.BookInstance, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	bi, ok := s.instances[id]
	return bi, ok
}

func (s *Store) InstanceCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.instances)
}

// ========================================
// REPOSITORY VIEWS
// ========================================

func (s *Store) Books() bookRepo.RepositoryInterface {
	return &bookView{s}
}

func (s *Store) Instances() bookInstanceRepo.RepositoryInterface {
	return &instanceView{s}
}

func (s *Store) Genres() genreRepo.RepositoryInterface {
	return &genreView{s}
}

// ---------- books ----------

type bookView struct{ s *Store }

func (v *bookView) ListOptions(ctx context.Context) ([]bookModel.BookOption, error) {
	v.s.mu.Lock()
	defer v.s.mu.Unlock()
	if err := v.s.call("books.ListOptions"); err != nil {
		return nil, err
	}

	books := lo.Values(v.s.books)
	sort.Slice(books, func(i, j int) bool { return books[i].Title < books[j].Title })
	return lo.Map(books, func(b bookModel.Book, _ int) bookModel.BookOption { return b.ToOption() }), nil
}

func (v *bookView) ListByGenre(ctx context.Context, genreID uuid.UUID) ([]bookModel.Book, error) {
	v.s.mu.Lock()
	defer v.s.mu.Unlock()
	if err := v.s.call("books.ListByGenre"); err != nil {
		return nil, err
	}

	books := lo.FilterMap(v.s.tags[genreID], func(id uuid.UUID, _ int) (bookModel.Book, bool) {
		b, ok := v.s.books[id]
		return b, ok
	})
	sort.Slice(books, func(i, j int) bool { return books[i].Title < books[j].Title })
	return books, nil
}

// ---------- book instances ----------

type instanceView struct{ s *Store }

// resolve fills BookTitle the way the JOIN does; caller holds the lock
func (v *instanceView) resolve(bi bookInstanceModel.BookInstance) *bookInstanceModel.BookInstance {
	bi.BookTitle = v.s.books[bi.BookID].Title
	return &bi
}

func (v *instanceView) List(ctx context.Context) ([]*bookInstanceModel.BookInstance, error) {
	v.s.mu.Lock()
	defer v.s.mu.Unlock()
	if err := v.s.call("instances.List"); err != nil {
		return nil, err
	}

	out := lo.Map(lo.Values(v.s.instances), func(bi bookInstanceModel.BookInstance, _ int) *bookInstanceModel.BookInstance {
		return v.resolve(bi)
	})
	sort.Slice(out, func(i, j int) bool {
		if out[i].BookTitle != out[j].BookTitle {
			return out[i].BookTitle < out[j].BookTitle
		}
		return out[i].Imprint < out[j].Imprint
	})
	return out, nil
}

func (v *instanceView) GetByID(ctx context.Context, id uuid.UUID) (*bookInstanceModel.BookInstance, error) {
	v.s.mu.Lock()
	defer v.s.mu.Unlock()
	if err := v.s.call("instances.GetByID"); err != nil {
		return nil, err
	}

	bi, ok := v.s.instances[id]
	if !ok {
		return nil, nil
	}
	return v.resolve(bi), nil
}

func (v *instanceView) Create(ctx context.Context, instance *bookInstanceModel.BookInstance) (*bookInstanceModel.BookInstance, error) {
	v.s.mu.Lock()
	defer v.s.mu.Unlock()
	if err := v.s.call("instances.Create"); err != nil {
		return nil, err
	}
	if _, ok := v.s.books[instance.BookID]; !ok {
		return nil, bookInstanceModel.NewInvalidBookReference(errors.New("book_instances_book_id_fkey"))
	}

	now := time.Now()
	bi := *instance
	bi.ID = uuid.New()
	bi.CreatedAt, bi.UpdatedAt = now, now
	v.s.instances[bi.ID] = bi
	return v.resolve(bi), nil
}

func (v *instanceView) Update(ctx context.Context, id uuid.UUID, instance *bookInstanceModel.BookInstance) (*bookInstanceModel.BookInstance, error) {
	v.s.mu.Lock()
	defer v.s.mu.Unlock()
	if err := v.s.call("instances.Update"); err != nil {
		return nil, err
	}

	current, ok := v.s.instances[id]
	if !ok {
		return nil, nil
	}
	if _, ok := v.s.books[instance.BookID]; !ok {
		return nil, bookInstanceModel.NewInvalidBookReference(errors.New("book_instances_book_id_fkey"))
	}

	current.BookID = instance.BookID
	current.Imprint = instance.Imprint
	current.Status = instance.Status
	current.DueBack = instance.DueBack
	current.UpdatedAt = time.Now()
	v.s.instances[id] = current
	return v.resolve(current), nil
}

func (v *instanceView) Delete(ctx context.Context, id uuid.UUID) error {
	v.s.mu.Lock()
	defer v.s.mu.Unlock()
	if err := v.s.call("instances.Delete"); err != nil {
		return err
	}

	delete(v.s.instances, id)
	return nil
}

// ---------- genres ----------

type genreView struct{ s *Store }

func (v *genreView) List(ctx context.Context) ([]*genreModel.Genre, error) {
	v.s.mu.Lock()
	defer v.s.mu.Unlock()
	if err := v.s.call("genres.List"); err != nil {
		return nil, err
	}

	out := lo.Map(lo.Values(v.s.genres), func(g genreModel.Genre, _ int) *genreModel.Genre { return &g })
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (v *genreView) GetByID(ctx context.Context, id uuid.UUID) (*genreModel.Genre, error) {
	v.s.mu.Lock()
	defer v.s.mu.Unlock()
	if err := v.s.call("genres.GetByID"); err != nil {
		return nil, err
	}

	g, ok := v.s.genres[id]
	if !ok {
		return nil, nil
	}
	return &g, nil
}

func (v *genreView) FindByName(ctx context.Context, name string) (*genreModel.Genre, error) {
	v.s.mu.Lock()
	defer v.s.mu.Unlock()
	if err := v.s.call("genres.FindByName"); err != nil {
		return nil, err
	}
	return v.byName(name), nil
}

// byName is an exact match; caller holds the lock
func (v *genreView) byName(name string) *genreModel.Genre {
	g, ok := lo.Find(lo.Values(v.s.genres), func(g genreModel.Genre) bool { return g.Name == name })
	if !ok {
		return nil
	}
	return &g
}

func (v *genreView) Create(ctx context.Context, genre *genreModel.Genre) (*genreModel.Genre, error) {
	if hook := v.s.BeforeGenreCreate; hook != nil {
		hook(genre.Name)
	}

	v.s.mu.Lock()
	defer v.s.mu.Unlock()
	if err := v.s.call("genres.Create"); err != nil {
		return nil, err
	}
	if v.byName(genre.Name) != nil {
		return nil, genreModel.NewGenreNameExists(genre.Name, errors.New("uq_genres_name"))
	}

	now := time.Now()
	g := *genre
	g.ID = uuid.New()
	g.CreatedAt, g.UpdatedAt = now, now
	v.s.genres[g.ID] = g
	return &g, nil
}

func (v *genreView) Delete(ctx context.Context, id uuid.UUID) error {
	v.s.mu.Lock()
	defer v.s.mu.Unlock()
	if err := v.s.call("genres.Delete"); err != nil {
		return err
	}
	if len(v.s.tags[id]) > 0 {
		return genreModel.NewGenreHasBooks()
	}

	delete(v.s.genres, id)
	return nil
}
