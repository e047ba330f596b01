package handlers

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bookshelf-api/internal/models"
	"bookshelf-api/internal/repositories/memory"
	"bookshelf-api/internal/services"
	"bookshelf-api/pkg/lambda"
)

func TestClassifyRequest(t *testing.T) {
	tests := []struct {
		method string
		hasID  bool
		want   RequestKind
	}{
		{"GET", false, KindList},
		{"GET", true, KindGet},
		{"get", true, KindGet},
		{"POST", false, KindCreate},
		{"POST", true, KindCreate},
		{"PUT", true, KindEdit},
		{"PUT", false, KindEdit},
		{"DELETE", true, KindDelete},
		{"PATCH", true, KindUnknown},
		{"HEAD", false, KindUnknown},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, ClassifyRequest(tt.method, tt.hasID), "%s hasID=%v", tt.method, tt.hasID)
	}
}

func TestBookHandler_HandleRequest(t *testing.T) {
	logger, hook := test.NewNullLogger()
	handler := NewBookHandler(services.NewBookService(memory.NewBookRepository(models.DefaultBooks(), logger), logger), logger)
	ctx := context.Background()

	resp, err := handler.HandleRequest(ctx, &lambda.Request{Method: "GET", Path: "/books"})
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/json", resp.Headers["Content-Type"])

	resp, err = handler.HandleRequest(ctx, &lambda.Request{
		Method:     "POST",
		Path:       "/books",
		Body:       []byte(`{"title":"Dune","author":"Frank Herbert"}`),
		PathParams: map[string]string{},
	})
	require.NoError(t, err)
	assert.Equal(t, http.StatusCreated, resp.StatusCode)
	assert.JSONEq(t, `{"id":3,"title":"Dune","author":"Frank Herbert"}`, string(resp.Body))

	resp, err = handler.HandleRequest(ctx, &lambda.Request{
		Method:     "GET",
		Path:       "/books/abc",
		PathParams: map[string]string{"id": "abc"},
	})
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp, err = handler.HandleRequest(ctx, &lambda.Request{
		Method:     "POST",
		Path:       "/books",
		Body:       []byte(`{broken`),
		RequestID:  "req-42",
		PathParams: map[string]string{},
	})
	require.NoError(t, err)
	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
	assert.JSONEq(t, `{"message":"Internal Server Error"}`, string(resp.Body))

	entry := hook.LastEntry()
	require.NotNil(t, entry)
	assert.Equal(t, "req-42", entry.Data["request_id"])
	assert.Equal(t, "create", entry.Data["operation"])
}

func TestMessageHandler_HandleRequest(t *testing.T) {
	logger, _ := test.NewNullLogger()
	now := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)
	handler := NewMessageHandler(services.NewMessageService(func() time.Time { return now }), logger)
	ctx := context.Background()

	resp, err := handler.HandleRequest(ctx, &lambda.Request{
		Method:  "POST",
		Path:    "/message",
		Headers: map[string]string{"content-type": "application/json"},
		Body:    []byte(`{"name":"Grace"}`),
	})
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.JSONEq(t, `{"name":"Grace","timestamp":"2024-01-02T03:04:05.000Z"}`, string(resp.Body))

	resp, err = handler.HandleRequest(ctx, &lambda.Request{Method: "DELETE", Path: "/message"})
	require.NoError(t, err)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}
