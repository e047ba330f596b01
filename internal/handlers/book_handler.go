package handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"bookshelf-api/internal/middleware"
	"bookshelf-api/internal/models"
	"bookshelf-api/internal/services"
	"bookshelf-api/pkg/lambda"
)

// BookRequest is a books request stripped of its transport
type BookRequest struct {
	Method    string
	Path      string
	ID        string
	HasID     bool
	Body      []byte
	RequestID string
}

// BookHandler handles book collection requests for both gin and Lambda
type BookHandler struct {
	bookService services.BookService
	logger      *logrus.Logger
}

// NewBookHandler creates a new book handler
func NewBookHandler(bookService services.BookService, logger *logrus.Logger) *BookHandler {
	if logger == nil {
		logger = logrus.New()
	}
	return &BookHandler{
		bookService: bookService,
		logger:      logger,
	}
}

// Dispatch routes a request to its operation and maps the outcome to a
// status code and body
func (h *BookHandler) Dispatch(ctx context.Context, req *BookRequest) *Result {
	kind := ClassifyRequest(req.Method, req.HasID)

	result, err := h.dispatch(ctx, kind, req)
	if err != nil {
		return errorResult(h.logger, err, logrus.Fields{
			"request_id": req.RequestID,
			"method":     req.Method,
			"path":       req.Path,
			"operation":  kind.String(),
		})
	}

	return result
}

func (h *BookHandler) dispatch(ctx context.Context, kind RequestKind, req *BookRequest) (*Result, error) {
	switch kind {
	case KindList:
		books, err := h.bookService.ListBooks(ctx)
		if err != nil {
			return nil, err
		}
		return &Result{StatusCode: http.StatusOK, Body: books}, nil

	case KindGet:
		book, err := h.bookService.GetBook(ctx, req.ID)
		if err != nil {
			return nil, err
		}
		return &Result{StatusCode: http.StatusOK, Body: book}, nil

	case KindCreate:
		fields, err := models.DecodeFields(req.Body)
		if errors.Is(err, models.ErrNotObject) {
			return nil, services.ErrRequiredFields()
		}
		if err != nil {
			return nil, err
		}
		book, err := h.bookService.CreateBook(ctx, fields)
		if err != nil {
			return nil, err
		}
		return &Result{StatusCode: http.StatusCreated, Body: book}, nil

	case KindEdit:
		// The record is looked up before the body is read, so an unknown id
		// wins over a malformed body.
		if _, err := h.bookService.GetBook(ctx, req.ID); err != nil {
			return nil, err
		}
		fields, err := models.DecodeFields(req.Body)
		if errors.Is(err, models.ErrNotObject) {
			// A non-object carries no fields to merge
			fields, err = map[string]any{}, nil
		}
		if err != nil {
			return nil, err
		}
		book, err := h.bookService.EditBook(ctx, req.ID, fields)
		if err != nil {
			return nil, err
		}
		return &Result{StatusCode: http.StatusOK, Body: book}, nil

	case KindDelete:
		book, err := h.bookService.DeleteBook(ctx, req.ID)
		if err != nil {
			return nil, err
		}
		return &Result{StatusCode: http.StatusOK, Body: book}, nil

	default:
		return nil, services.ErrUnknownRoute()
	}
}

// @Summary Book collection
// @Description GET lists books or fetches one by id, POST creates, PUT merges fields into a book, DELETE removes it
// @Tags books
// @Accept json
// @Produce json
// @Param id path int false "Book ID"
// @Param book body object false "Book fields"
// @Success 200 {object} models.Book
// @Success 201 {object} models.Book
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /books/{id} [get]
// @Router /books/{id} [put]
// @Router /books/{id} [delete]
// @Router /books [get]
// @Router /books [post]
func (h *BookHandler) Handle(c *gin.Context) {
	req := &BookRequest{
		Method:    c.Request.Method,
		Path:      c.Request.URL.Path,
		ID:        c.Param("id"),
		RequestID: c.GetString(middleware.RequestIDKey),
	}
	req.HasID = req.ID != ""

	if req.Method == http.MethodPost || req.Method == http.MethodPut {
		body, failed := readBody(c, h.logger, logrus.Fields{
			"request_id": req.RequestID,
			"method":     req.Method,
			"path":       req.Path,
		})
		if failed != nil {
			c.JSON(failed.StatusCode, failed.Body)
			return
		}
		req.Body = body
	}

	result := h.Dispatch(c.Request.Context(), req)
	c.JSON(result.StatusCode, result.Body)
}

// HandleRequest serves a books request arriving through API Gateway
func (h *BookHandler) HandleRequest(ctx context.Context, req *lambda.Request) (*lambda.Response, error) {
	id := req.PathParams["id"]

	result := h.Dispatch(ctx, &BookRequest{
		Method:    req.Method,
		Path:      req.Path,
		ID:        id,
		HasID:     id != "",
		Body:      req.Body,
		RequestID: req.RequestID,
	})

	return lambda.JSONResponse(result.StatusCode, result.Body)
}
