// Package memory holds the in-process book store used by default.
package memory

import (
	"context"
	"sync"

	"bookshelf-api/internal/models"
	"bookshelf-api/internal/repositories"

	"github.com/sirupsen/logrus"
)

// BookRepository keeps books in a map guarded by a RWMutex, with a separate
// slice that records insertion order.
type BookRepository struct {
	mu     sync.RWMutex
	books  map[int64]*models.Book
	order  []int64
	nextID int64
	closed bool
	logger *logrus.Logger
}

// NewBookRepository creates a store seeded with the given books.
// The id counter starts after the largest seeded id and never goes back.
func NewBookRepository(seed []*models.Book, logger *logrus.Logger) *BookRepository {
	if logger == nil {
		logger = logrus.New()
	}

	r := &BookRepository{
		books:  make(map[int64]*models.Book, len(seed)),
		nextID: 1,
		logger: logger,
	}

	for _, book := range seed {
		r.books[book.ID] = book.Clone()
		r.order = append(r.order, book.ID)
		if book.ID >= r.nextID {
			r.nextID = book.ID + 1
		}
	}

	return r
}

// List returns every book in insertion order
func (r *BookRepository) List(ctx context.Context) ([]*models.Book, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if r.closed {
		return nil, repositories.NewRepositoryError("list", "book", 0, repositories.ErrClosed)
	}

	books := make([]*models.Book, 0, len(r.order))
	for _, id := range r.order {
		books = append(books, r.books[id].Clone())
	}

	return books, nil
}

// GetByID retrieves a book by ID
func (r *BookRepository) GetByID(ctx context.Context, id int64) (*models.Book, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if r.closed {
		return nil, repositories.NewRepositoryError("get_by_id", "book", id, repositories.ErrClosed)
	}

	book, ok := r.books[id]
	if !ok {
		return nil, repositories.NotFoundError("book", id)
	}

	return book.Clone(), nil
}

// Create assigns the next ID and stores the book
func (r *BookRepository) Create(ctx context.Context, book *models.Book) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.closed {
		return repositories.NewRepositoryError("create", "book", 0, repositories.ErrClosed)
	}

	book.ID = r.nextID
	if err := book.Validate(); err != nil {
		book.ID = 0
		return repositories.ValidationError("book", 0, err)
	}

	r.nextID++
	r.books[book.ID] = book.Clone()
	r.order = append(r.order, book.ID)

	r.logger.WithField("book_id", book.ID).Debug("Book created")
	return nil
}

// Update replaces an existing book in place
func (r *BookRepository) Update(ctx context.Context, book *models.Book) error {
	if err := book.Validate(); err != nil {
		return repositories.ValidationError("book", book.ID, err)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if r.closed {
		return repositories.NewRepositoryError("update", "book", book.ID, repositories.ErrClosed)
	}

	if _, ok := r.books[book.ID]; !ok {
		return repositories.NotFoundError("book", book.ID)
	}

	r.books[book.ID] = book.Clone()

	r.logger.WithField("book_id", book.ID).Debug("Book updated")
	return nil
}

// Delete removes a book and returns its last known state
func (r *BookRepository) Delete(ctx context.Context, id int64) (*models.Book, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.closed {
		return nil, repositories.NewRepositoryError("delete", "book", id, repositories.ErrClosed)
	}

	book, ok := r.books[id]
	if !ok {
		return nil, repositories.NotFoundError("book", id)
	}

	delete(r.books, id)
	for i, existing := range r.order {
		if existing == id {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}

	r.logger.WithField("book_id", id).Debug("Book deleted")
	return book, nil
}

// Count returns the number of stored books
func (r *BookRepository) Count(ctx context.Context) (int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if r.closed {
		return 0, repositories.NewRepositoryError("count", "book", 0, repositories.ErrClosed)
	}

	return int64(len(r.books)), nil
}

// Close marks the store closed; later calls fail with ErrClosed
func (r *BookRepository) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.closed = true
	return nil
}

var _ repositories.BookRepository = (*BookRepository)(nil)
