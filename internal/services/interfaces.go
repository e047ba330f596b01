package services

import (
	"context"

	"bookshelf-api/internal/models"
)

// BookService defines the book collection operations.
// Raw ids are passed as received from the path so that id parsing errors
// surface as KindInvalidID.
type BookService interface {
	ListBooks(ctx context.Context) ([]*models.Book, error)
	GetBook(ctx context.Context, rawID string) (*models.Book, error)
	CreateBook(ctx context.Context, fields map[string]any) (*models.Book, error)
	EditBook(ctx context.Context, rawID string, fields map[string]any) (*models.Book, error)
	DeleteBook(ctx context.Context, rawID string) (*models.Book, error)
}

// MessageService resolves the name echoed back by the message endpoint
type MessageService interface {
	Echo(ctx context.Context, req *EchoRequest) *models.Message
}

// EchoRequest carries the inputs of the message endpoint
type EchoRequest struct {
	QueryName   string
	Body        []byte
	ContentType string
}

// CreateBookRequest holds the required fields of a new book
type CreateBookRequest struct {
	Title  string `json:"title" validate:"required"`
	Author string `json:"author" validate:"required"`
}
