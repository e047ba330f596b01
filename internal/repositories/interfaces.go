package repositories

import (
	"context"

	"bookshelf-api/internal/models"
)

// BookRepository is the explicitly owned store behind the books endpoint.
// Implementations are safe for concurrent use and return copies, so callers
// can not mutate stored records without going through Update.
type BookRepository interface {
	// List returns every book in insertion order
	List(ctx context.Context) ([]*models.Book, error)

	// GetByID retrieves a book by its ID
	GetByID(ctx context.Context, id int64) (*models.Book, error)

	// Create assigns the next ID to the book and stores it
	Create(ctx context.Context, book *models.Book) error

	// Update replaces an existing book, keeping its position
	Update(ctx context.Context, book *models.Book) error

	// Delete removes a book and returns its last known state
	Delete(ctx context.Context, id int64) (*models.Book, error)

	// Count returns the number of stored books
	Count(ctx context.Context) (int64, error)

	// Close releases any resources held by the store
	Close() error
}

// Storage drivers selectable through configuration
const (
	DriverMemory = "memory"
	DriverSQLite = "sqlite"
)
