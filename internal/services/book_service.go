package services

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/sirupsen/logrus"

	"bookshelf-api/internal/models"
	"bookshelf-api/internal/repositories"
)

// bookService implements the BookService interface
type bookService struct {
	bookRepo  repositories.BookRepository
	validator *validator.Validate
	logger    *logrus.Logger
}

// NewBookService creates a new book service instance
func NewBookService(bookRepo repositories.BookRepository, logger *logrus.Logger) BookService {
	if logger == nil {
		logger = logrus.New()
	}
	return &bookService{
		bookRepo:  bookRepo,
		validator: validator.New(),
		logger:    logger,
	}
}

// ParseBookID parses a path id. Any numeral that denotes a whole number is
// accepted, so "2" and "2.0" both resolve to 2. Whole numbers outside the
// int64 range cannot name a stored book and are reported as not found.
func ParseBookID(raw string) (int64, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, ErrInvalidID()
	}

	if id, err := strconv.ParseInt(raw, 10, 64); err == nil {
		return id, nil
	}

	f, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) || f != math.Trunc(f) {
		return 0, ErrInvalidID()
	}
	if f < math.MinInt64 || f >= math.MaxInt64 {
		return 0, errBookNotFound(strconv.FormatFloat(f, 'f', -1, 64))
	}

	return int64(f), nil
}

// ListBooks returns every book in insertion order
func (s *bookService) ListBooks(ctx context.Context) ([]*models.Book, error) {
	books, err := s.bookRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list books: %w", err)
	}
	return books, nil
}

// GetBook retrieves a book by its raw path id
func (s *bookService) GetBook(ctx context.Context, rawID string) (*models.Book, error) {
	id, err := ParseBookID(rawID)
	if err != nil {
		return nil, err
	}

	book, err := s.bookRepo.GetByID(ctx, id)
	if err != nil {
		return nil, s.mapRepositoryError(err, id, "get")
	}

	return book, nil
}

// CreateBook adds a book built from the decoded request body.
// Fields other than title and author are stored verbatim and any client id
// is ignored.
func (s *bookService) CreateBook(ctx context.Context, fields map[string]any) (*models.Book, error) {
	req := &CreateBookRequest{}
	req.Title, _ = fields[models.FieldTitle].(string)
	req.Author, _ = fields[models.FieldAuthor].(string)

	if err := s.validator.Struct(req); err != nil {
		return nil, ErrRequiredFields()
	}

	book := models.NewBook(req.Title, req.Author)
	for key, value := range fields {
		switch key {
		case models.FieldID, models.FieldTitle, models.FieldAuthor:
			continue
		default:
			book.Extra[key] = value
		}
	}

	if err := s.bookRepo.Create(ctx, book); err != nil {
		return nil, s.mapRepositoryError(err, 0, "create")
	}

	s.logger.WithFields(logrus.Fields{
		"book_id": book.ID,
		"title":   book.Title,
	}).Debug("Book created")

	return book, nil
}

// EditBook shallow-merges the body over an existing book
func (s *bookService) EditBook(ctx context.Context, rawID string, fields map[string]any) (*models.Book, error) {
	id, err := ParseBookID(rawID)
	if err != nil {
		return nil, err
	}

	existing, err := s.bookRepo.GetByID(ctx, id)
	if err != nil {
		return nil, s.mapRepositoryError(err, id, "edit")
	}

	merged, err := existing.Merge(fields)
	switch {
	case errors.Is(err, models.ErrInvalidTitle):
		return nil, ErrInvalidInput(MessageInvalidTitle)
	case errors.Is(err, models.ErrInvalidAuthor):
		return nil, ErrInvalidInput(MessageInvalidAuthor)
	case err != nil:
		return nil, fmt.Errorf("failed to merge book: %w", err)
	}

	if err := s.bookRepo.Update(ctx, merged); err != nil {
		return nil, s.mapRepositoryError(err, id, "edit")
	}

	return merged, nil
}

// DeleteBook removes a book and returns it as it was
func (s *bookService) DeleteBook(ctx context.Context, rawID string) (*models.Book, error) {
	id, err := ParseBookID(rawID)
	if err != nil {
		return nil, err
	}

	book, err := s.bookRepo.Delete(ctx, id)
	if err != nil {
		return nil, s.mapRepositoryError(err, id, "delete")
	}

	s.logger.WithField("book_id", id).Debug("Book deleted")

	return book, nil
}

// mapRepositoryError converts expected repository failures into domain
// errors and wraps everything else as an unexpected fault
func (s *bookService) mapRepositoryError(err error, id int64, op string) error {
	switch {
	case repositories.IsNotFound(err):
		return ErrBookNotFound(id)
	case repositories.IsValidation(err):
		return ErrRequiredFields()
	default:
		return fmt.Errorf("failed to %s book: %w", op, err)
	}
}
