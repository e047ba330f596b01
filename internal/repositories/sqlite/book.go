package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"bookshelf-api/internal/models"
	"bookshelf-api/internal/repositories"

	"github.com/sirupsen/logrus"
)

const bookColumns = `id, title, author, extra, created_at, updated_at`

// BookRepository implements repositories.BookRepository on SQLite.
// AUTOINCREMENT keeps ids monotonic, so a deleted id is never handed out again.
type BookRepository struct {
	*baseRepository
}

// NewBookRepository creates a new SQLite book repository
func NewBookRepository(db *sql.DB, logger *logrus.Logger) *BookRepository {
	return &BookRepository{
		baseRepository: newBaseRepository(db, "books", logger),
	}
}

// List retrieves all books ordered by id, which is insertion order
func (r *BookRepository) List(ctx context.Context) ([]*models.Book, error) {
	rows, err := r.executeQuery(ctx, "list", `SELECT `+bookColumns+` FROM books ORDER BY id ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	books := make([]*models.Book, 0)
	for rows.Next() {
		book, err := scanBook(rows)
		if err != nil {
			return nil, repositories.NewRepositoryError("list", "book", 0, err)
		}
		books = append(books, book)
	}

	if err := rows.Err(); err != nil {
		return nil, repositories.NewRepositoryError("list", "book", 0, err)
	}

	return books, nil
}

// GetByID retrieves a book by ID
func (r *BookRepository) GetByID(ctx context.Context, id int64) (*models.Book, error) {
	row := r.executeQueryRow(ctx, "get_by_id", `SELECT `+bookColumns+` FROM books WHERE id = ?`, id)

	book, err := scanBook(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repositories.NotFoundError("book", id)
		}
		return nil, repositories.NewRepositoryError("get_by_id", "book", id, err)
	}

	return book, nil
}

// Create inserts a book and sets its assigned ID
func (r *BookRepository) Create(ctx context.Context, book *models.Book) error {
	if strings.TrimSpace(book.Title) == "" || strings.TrimSpace(book.Author) == "" {
		return repositories.ValidationError("book", 0, errors.New("title and author are required"))
	}

	extra, err := encodeExtra(book.Extra)
	if err != nil {
		return repositories.ValidationError("book", 0, err)
	}

	now := time.Now().UTC()
	result, err := r.executeExec(ctx, "create",
		`INSERT INTO books (title, author, extra, created_at, updated_at) VALUES (?, ?, ?, ?, ?)`,
		book.Title, book.Author, extra, now, now,
	)
	if err != nil {
		return err
	}

	id, err := result.LastInsertId()
	if err != nil {
		return repositories.NewRepositoryError("create", "book", 0, err)
	}

	book.ID = id
	book.CreatedAt = now
	book.UpdatedAt = now
	return nil
}

// Update updates an existing book
func (r *BookRepository) Update(ctx context.Context, book *models.Book) error {
	if err := book.Validate(); err != nil {
		return repositories.ValidationError("book", book.ID, err)
	}

	extra, err := encodeExtra(book.Extra)
	if err != nil {
		return repositories.ValidationError("book", book.ID, err)
	}

	book.UpdatedAt = time.Now().UTC()
	result, err := r.executeExec(ctx, "update",
		`UPDATE books SET title = ?, author = ?, extra = ?, updated_at = ? WHERE id = ?`,
		book.Title, book.Author, extra, book.UpdatedAt, book.ID,
	)
	if err != nil {
		return err
	}

	return r.checkRowsAffected(result, "update", book.ID)
}

// Delete removes a book and returns the row as it was before removal
func (r *BookRepository) Delete(ctx context.Context, id int64) (*models.Book, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, repositories.NewRepositoryError("delete", "book", id, err)
	}
	defer tx.Rollback()

	book, err := scanBook(tx.QueryRowContext(ctx, `SELECT `+bookColumns+` FROM books WHERE id = ?`, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repositories.NotFoundError("book", id)
		}
		return nil, repositories.NewRepositoryError("delete", "book", id, err)
	}

	start := time.Now()
	query := `DELETE FROM books WHERE id = ?`
	_, err = tx.ExecContext(ctx, query, id)
	r.logQuery("delete", query, []interface{}{id}, time.Since(start), err)
	if err != nil {
		return nil, repositories.NewRepositoryError("delete", "book", id, err)
	}

	if err := tx.Commit(); err != nil {
		return nil, repositories.NewRepositoryError("delete", "book", id, err)
	}

	return book, nil
}

// Count returns the number of stored books
func (r *BookRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := r.executeQueryRow(ctx, "count", `SELECT COUNT(*) FROM books`).Scan(&count); err != nil {
		return 0, repositories.NewRepositoryError("count", "book", 0, err)
	}
	return count, nil
}

// Close is a no-op; the connection belongs to the database.ConnectionManager
func (r *BookRepository) Close() error {
	return nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanBook(row rowScanner) (*models.Book, error) {
	book := &models.Book{}
	var extra string

	if err := row.Scan(&book.ID, &book.Title, &book.Author, &extra, &book.CreatedAt, &book.UpdatedAt); err != nil {
		return nil, err
	}

	fields, err := models.DecodeFields([]byte(extra))
	if err != nil {
		return nil, err
	}
	book.Extra = fields

	return book, nil
}

func encodeExtra(extra map[string]any) (string, error) {
	if len(extra) == 0 {
		return "{}", nil
	}
	data, err := json.Marshal(extra)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

var _ repositories.BookRepository = (*BookRepository)(nil)
