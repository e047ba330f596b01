package handlers

import (
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"bookshelf-api/internal/services"
)

// ErrorResponse represents a standard error response
type ErrorResponse struct {
	Message string `json:"message"`
}

// Result is a framework-neutral response: a status code and a JSON body
type Result struct {
	StatusCode int
	Body       any
}

// errorResult maps an error to its response. Expected domain errors keep
// their status and message and are not logged. Anything else is logged once
// and hidden behind a generic 500.
func errorResult(logger *logrus.Logger, err error, fields logrus.Fields) *Result {
	if domainErr, ok := services.AsError(err); ok {
		return &Result{
			StatusCode: domainErr.StatusCode(),
			Body:       ErrorResponse{Message: domainErr.Message},
		}
	}

	logger.WithFields(fields).WithError(err).Error("Unexpected error while handling request")

	return internalErrorResult()
}

func internalErrorResult() *Result {
	return &Result{
		StatusCode: http.StatusInternalServerError,
		Body:       ErrorResponse{Message: services.MessageInternal},
	}
}

// readBody reads the request body. A body cut off by the size limit answers
// 413 like an oversized Content-Length does; other read failures are faults.
func readBody(c *gin.Context, logger *logrus.Logger, fields logrus.Fields) ([]byte, *Result) {
	if c.Request.Body == nil {
		return nil, nil
	}

	body, err := io.ReadAll(c.Request.Body)
	if err == nil {
		return body, nil
	}

	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		return nil, &Result{
			StatusCode: http.StatusRequestEntityTooLarge,
			Body:       ErrorResponse{Message: fmt.Sprintf("Request body exceeds maximum allowed size (%d bytes)", tooLarge.Limit)},
		}
	}

	return nil, errorResult(logger, err, fields)
}
