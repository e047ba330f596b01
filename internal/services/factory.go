package services

import (
	"fmt"

	"github.com/sirupsen/logrus"

	"bookshelf-api/internal/repositories"
)

// ServiceContainer holds all service instances
type ServiceContainer struct {
	BookService    BookService
	MessageService MessageService
}

// ServiceConfig holds configuration for services
type ServiceConfig struct {
	Clock  Clock
	Logger *logrus.Logger
}

// NewServiceContainer creates a new service container with all services
func NewServiceContainer(bookRepo repositories.BookRepository, config *ServiceConfig) (*ServiceContainer, error) {
	if bookRepo == nil {
		return nil, fmt.Errorf("book repository cannot be nil")
	}

	if config == nil {
		config = &ServiceConfig{}
	}

	return &ServiceContainer{
		BookService:    NewBookService(bookRepo, config.Logger),
		MessageService: NewMessageService(config.Clock),
	}, nil
}

// Validate validates that all services are properly initialized
func (sc *ServiceContainer) Validate() error {
	if sc.BookService == nil {
		return fmt.Errorf("book service is nil")
	}
	if sc.MessageService == nil {
		return fmt.Errorf("message service is nil")
	}

	return nil
}
