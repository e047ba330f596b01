package services

import (
	"context"
	"strings"
	"time"

	"bookshelf-api/internal/models"
)

// Clock returns the current time
type Clock func() time.Time

// messageService implements the MessageService interface
type messageService struct {
	now Clock
}

// NewMessageService creates a message service. A nil clock uses time.Now.
func NewMessageService(now Clock) MessageService {
	if now == nil {
		now = time.Now
	}
	return &messageService{now: now}
}

// Echo resolves the caller name from the query string, then a JSON body
// with a string "name", then the raw body text, falling back to Unknown.
func (s *messageService) Echo(ctx context.Context, req *EchoRequest) *models.Message {
	return models.NewMessage(resolveName(req), s.now())
}

func resolveName(req *EchoRequest) string {
	if req == nil {
		return models.UnknownName
	}

	if name := strings.TrimSpace(req.QueryName); name != "" {
		return name
	}

	body := strings.TrimSpace(string(req.Body))
	if body == "" {
		return models.UnknownName
	}

	if looksLikeJSON(req.ContentType, body) {
		fields, err := models.DecodeFields([]byte(body))
		if err == nil {
			if name, ok := fields["name"].(string); ok && strings.TrimSpace(name) != "" {
				return strings.TrimSpace(name)
			}
			return models.UnknownName
		}
	}

	return body
}

func looksLikeJSON(contentType, body string) bool {
	return strings.Contains(strings.ToLower(contentType), "json") || strings.HasPrefix(body, "{")
}
