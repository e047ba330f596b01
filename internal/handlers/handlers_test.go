package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bookshelf-api/internal/models"
	"bookshelf-api/internal/repositories/memory"
	"bookshelf-api/internal/services"
)

var fixedNow = time.Date(2024, 5, 1, 12, 30, 0, 0, time.UTC)

type testServer struct {
	router *gin.Engine
	hook   *test.Hook
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	gin.SetMode(gin.TestMode)

	logger, hook := test.NewNullLogger()
	logger.SetLevel(logrus.DebugLevel)

	repo := memory.NewBookRepository(models.DefaultBooks(), logger)
	router := gin.New()
	SetupRoutes(router, &RouterConfig{
		BookService:    services.NewBookService(repo, logger),
		MessageService: services.NewMessageService(func() time.Time { return fixedNow }),
		Logger:         logger,
	})

	return &testServer{router: router, hook: hook}
}

func (s *testServer) do(method, path, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}

	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

func (s *testServer) errorEntries() int {
	count := 0
	for _, entry := range s.hook.AllEntries() {
		if entry.Level == logrus.ErrorLevel {
			count++
		}
	}
	return count
}

func decodeObject(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	return out
}

func TestListBooks(t *testing.T) {
	s := newTestServer(t)

	w := s.do(http.MethodGet, "/books", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `[
		{"id":1,"title":"The Enormous Crocodile","author":"Roald Dahl"},
		{"id":2,"title":"Harry Potter","author":"J.K. Rowling"}
	]`, w.Body.String())
}

func TestGetBook(t *testing.T) {
	s := newTestServer(t)

	w := s.do(http.MethodGet, "/books/1", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"id":1,"title":"The Enormous Crocodile","author":"Roald Dahl"}`, w.Body.String())

	w = s.do(http.MethodGet, "/books/999", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.JSONEq(t, `{"message":"Book 999 not found"}`, w.Body.String())

	w = s.do(http.MethodGet, "/books/abc", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.JSONEq(t, `{"message":"Book id must be an integer"}`, w.Body.String())

	assert.Zero(t, s.errorEntries())
}

func TestCreateBook(t *testing.T) {
	s := newTestServer(t)

	w := s.do(http.MethodPost, "/books", `{"title":"X"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.JSONEq(t, `{"message":"Title and Author are required fields"}`, w.Body.String())

	w = s.do(http.MethodPost, "/books", `{"title":"X","author":"Y","pages":120,"id":1}`)
	require.Equal(t, http.StatusCreated, w.Code)
	created := decodeObject(t, w)
	assert.Equal(t, float64(3), created["id"])
	assert.Equal(t, float64(120), created["pages"])

	w = s.do(http.MethodGet, "/books/3", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"id":3,"title":"X","author":"Y","pages":120}`, w.Body.String())

	w = s.do(http.MethodGet, "/books/1", "")
	assert.JSONEq(t, `{"id":1,"title":"The Enormous Crocodile","author":"Roald Dahl"}`, w.Body.String())
}

func TestCreateBookIgnoresPathID(t *testing.T) {
	s := newTestServer(t)

	w := s.do(http.MethodPost, "/books/50", `{"title":"X","author":"Y"}`)
	require.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, float64(3), decodeObject(t, w)["id"])
}

func TestEditBook(t *testing.T) {
	s := newTestServer(t)

	w := s.do(http.MethodPut, "/books/1", `{"id":999,"author":"New Author"}`)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"id":1,"title":"The Enormous Crocodile","author":"New Author"}`, w.Body.String())

	w = s.do(http.MethodGet, "/books/1", "")
	assert.JSONEq(t, `{"id":1,"title":"The Enormous Crocodile","author":"New Author"}`, w.Body.String())

	w = s.do(http.MethodPut, "/books/999", `{"title":"T"}`)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = s.do(http.MethodPut, "/books/abc", `not json`)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = s.do(http.MethodPut, "/books", `{"title":"T"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.JSONEq(t, `{"message":"Book id must be an integer"}`, w.Body.String())
}

func TestDeleteBook(t *testing.T) {
	s := newTestServer(t)

	w := s.do(http.MethodDelete, "/books/2", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"id":2,"title":"Harry Potter","author":"J.K. Rowling"}`, w.Body.String())

	w = s.do(http.MethodGet, "/books/2", "")
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = s.do(http.MethodDelete, "/books", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = s.do(http.MethodPost, "/books", `{"title":"New","author":"Writer"}`)
	require.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, float64(3), decodeObject(t, w)["id"])

	w = s.do(http.MethodGet, "/books", "")
	var books []map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &books))
	require.Len(t, books, 2)
	assert.Equal(t, float64(1), books[0]["id"])
	assert.Equal(t, float64(3), books[1]["id"])
}

func TestUnknownMethod(t *testing.T) {
	s := newTestServer(t)

	w := s.do(http.MethodPatch, "/books/1", `{"title":"T"}`)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.JSONEq(t, `{"message":"Not Found"}`, w.Body.String())

	w = s.do(http.MethodGet, "/nowhere", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.JSONEq(t, `{"message":"Not Found"}`, w.Body.String())

	assert.Zero(t, s.errorEntries())
}

func TestMalformedBodyIsUnexpected(t *testing.T) {
	s := newTestServer(t)

	for _, body := range []string{`{"title":`, `null`} {
		w := s.do(http.MethodPost, "/books", body)
		assert.Equal(t, http.StatusInternalServerError, w.Code, body)
		assert.JSONEq(t, `{"message":"Internal Server Error"}`, w.Body.String())
	}

	w := s.do(http.MethodPost, "/books", "")
	assert.Equal(t, http.StatusInternalServerError, w.Code)

	assert.Equal(t, 3, s.errorEntries())
}

func TestNonObjectBody(t *testing.T) {
	s := newTestServer(t)

	for _, body := range []string{`[]`, `[1,2]`, `"x"`, `42`, `true`} {
		w := s.do(http.MethodPost, "/books", body)
		assert.Equal(t, http.StatusBadRequest, w.Code, body)
		assert.JSONEq(t, `{"message":"Title and Author are required fields"}`, w.Body.String())

		w = s.do(http.MethodPut, "/books/1", body)
		assert.Equal(t, http.StatusOK, w.Code, body)
		assert.JSONEq(t, `{"id":1,"title":"The Enormous Crocodile","author":"Roald Dahl"}`, w.Body.String())
	}

	w := s.do(http.MethodGet, "/books", "")
	var books []map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &books))
	assert.Len(t, books, 2)

	assert.Zero(t, s.errorEntries())
}

func TestBodyOverLimitWithoutContentLength(t *testing.T) {
	gin.SetMode(gin.TestMode)
	logger, hook := test.NewNullLogger()

	repo := memory.NewBookRepository(models.DefaultBooks(), logger)
	router := gin.New()
	SetupMiddleware(router, &MiddlewareConfig{
		Logger:            logger,
		RequestsPerSecond: 100,
		Burst:             100,
		MaxBodyBytes:      16,
	})
	SetupRoutes(router, &RouterConfig{
		BookService:    services.NewBookService(repo, logger),
		MessageService: services.NewMessageService(nil),
		Logger:         logger,
	})

	for _, path := range []string{"/books", "/message"} {
		req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(`{"title":"A very long title","author":"Someone"}`))
		req.ContentLength = -1
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusRequestEntityTooLarge, w.Code, path)
		assert.Contains(t, decodeObject(t, w)["message"], "16 bytes")
	}

	for _, entry := range hook.AllEntries() {
		assert.NotEqual(t, logrus.ErrorLevel, entry.Level, entry.Message)
	}
}

func TestMessage(t *testing.T) {
	s := newTestServer(t)

	w := s.do(http.MethodGet, "/message?name=Ada", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"name":"Ada","timestamp":"2024-05-01T12:30:00.000Z"}`, w.Body.String())

	req := httptest.NewRequest(http.MethodPost, "/message", strings.NewReader("Bob"))
	req.Header.Set("Content-Type", "text/plain")
	w = httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Bob", decodeObject(t, w)["name"])

	w = s.do(http.MethodGet, "/message", "")
	assert.Equal(t, "Unknown", decodeObject(t, w)["name"])

	found := false
	for _, entry := range s.hook.AllEntries() {
		if entry.Message == "Function processed for GET /message?name=Ada" {
			found = true
		}
	}
	assert.True(t, found)
}

func TestHealth(t *testing.T) {
	gin.SetMode(gin.TestMode)
	logger, _ := test.NewNullLogger()

	healthy := true
	router := gin.New()
	SetupRoutes(router, &RouterConfig{
		BookService:    services.NewBookService(memory.NewBookRepository(nil, logger), logger),
		MessageService: services.NewMessageService(nil),
		Logger:         logger,
		HealthCheck: func(ctx context.Context) error {
			if healthy {
				return nil
			}
			return errors.New("store closed")
		},
	})

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusOK, w.Code)

	healthy = false
	w = httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}

func TestEmptyCollectionListsAsArray(t *testing.T) {
	gin.SetMode(gin.TestMode)
	logger, _ := test.NewNullLogger()

	router := gin.New()
	SetupRoutes(router, &RouterConfig{
		BookService:    services.NewBookService(memory.NewBookRepository(nil, logger), logger),
		MessageService: services.NewMessageService(nil),
		Logger:         logger,
	})

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/books", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `[]`, w.Body.String())
}
