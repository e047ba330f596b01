package server

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"

	"bookshelf-api/internal/config"
	"bookshelf-api/internal/database"
	"bookshelf-api/internal/logging"
	"bookshelf-api/internal/models"
	"bookshelf-api/internal/repositories"
	"bookshelf-api/internal/repositories/memory"
	"bookshelf-api/internal/repositories/sqlite"
	"bookshelf-api/internal/services"
)

// Container holds all application dependencies
type Container struct {
	Config         *config.Config
	Logger         *logrus.Logger
	BookRepository repositories.BookRepository
	BookService    services.BookService
	MessageService services.MessageService

	db *database.ConnectionManager
}

// NewContainer creates a new dependency injection container
func NewContainer(cfg *config.Config) (*Container, error) {
	logger, err := logging.New(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create logger: %w", err)
	}

	return NewContainerWithLogger(cfg, logger)
}

// NewContainerWithLogger creates a container that logs through logger
func NewContainerWithLogger(cfg *config.Config, logger *logrus.Logger) (*Container, error) {
	container := &Container{
		Config: cfg,
		Logger: logger,
	}

	switch cfg.Storage.Driver {
	case repositories.DriverSQLite:
		cm := database.NewConnectionManager(cfg.Database.ToConnectionConfig(logger))
		if err := cm.Connect(context.Background()); err != nil {
			return nil, fmt.Errorf("failed to connect to database: %w", err)
		}
		container.db = cm
		container.BookRepository = sqlite.NewBookRepository(cm.GetDB(), logger)
	case repositories.DriverMemory, "":
		container.BookRepository = memory.NewBookRepository(models.DefaultBooks(), logger)
	default:
		return nil, fmt.Errorf("unsupported storage driver: %s", cfg.Storage.Driver)
	}

	serviceContainer, err := services.NewServiceContainer(container.BookRepository, &services.ServiceConfig{
		Logger: logger,
	})
	if err == nil {
		err = serviceContainer.Validate()
	}
	if err != nil {
		container.Close()
		return nil, fmt.Errorf("failed to create service container: %w", err)
	}

	container.BookService = serviceContainer.BookService
	container.MessageService = serviceContainer.MessageService

	fields := logrus.Fields{
		"storage_driver":  cfg.Storage.Driver,
		"deployment_mode": config.GetDeploymentMode(),
	}
	if serverless := config.GetServerlessConfig(); serverless.IsLambda {
		fields["function_name"] = serverless.FunctionName
		fields["region"] = serverless.Region
		fields["stage"] = serverless.Stage
	}
	logger.WithFields(fields).Info("Container initialized")

	return container, nil
}

// HealthCheck reports whether the book store is reachable
func (c *Container) HealthCheck(ctx context.Context) error {
	if c.db != nil {
		return c.db.HealthCheck(ctx)
	}
	_, err := c.BookRepository.Count(ctx)
	return err
}

// Close cleans up all resources
func (c *Container) Close() error {
	if c.BookRepository != nil {
		if err := c.BookRepository.Close(); err != nil {
			return fmt.Errorf("failed to close book repository: %w", err)
		}
	}

	if c.db != nil {
		if err := c.db.Close(); err != nil {
			return fmt.Errorf("failed to close database: %w", err)
		}
	}

	return nil
}
