package lambda

import (
	"context"
	"fmt"
	"sync"
	"time"

	"bookshelf-api/internal/config"
	"bookshelf-api/pkg/server"
)

// ContainerFactory builds a container from configuration
type ContainerFactory func(cfg *config.Config) (*server.Container, error)

// ConnectionManager keeps one container per warm Lambda instance so the book
// store survives between invocations
type ConnectionManager struct {
	mu        sync.Mutex
	container *server.Container
	lastUsed  time.Time
	config    *config.Config
	factory   ContainerFactory
}

var (
	globalConnectionManager *ConnectionManager
	connectionManagerOnce   sync.Once
)

// GetConnectionManager returns the global connection manager instance
func GetConnectionManager() *ConnectionManager {
	connectionManagerOnce.Do(func() {
		globalConnectionManager = NewConnectionManager(nil, nil)
	})
	return globalConnectionManager
}

// NewConnectionManager creates a manager. A nil config is loaded with
// config.GetOptimizedConfig on first use; a nil factory uses server.NewContainer.
func NewConnectionManager(cfg *config.Config, factory ContainerFactory) *ConnectionManager {
	if factory == nil {
		factory = server.NewContainer
	}
	return &ConnectionManager{
		config:  cfg,
		factory: factory,
	}
}

// GetContainer returns the container, building it on first use. A failed
// build is retried on the next call.
func (cm *ConnectionManager) GetContainer(ctx context.Context) (*server.Container, error) {
	cm.mu.Lock()
	defer cm.mu.Unlock()

	if cm.container != nil {
		cm.lastUsed = time.Now()
		return cm.container, nil
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if cm.config == nil {
		cfg, err := config.GetOptimizedConfig()
		if err != nil {
			return nil, fmt.Errorf("failed to load configuration: %w", err)
		}
		cm.config = cfg
	}

	container, err := cm.factory(cm.config)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize container: %w", err)
	}

	cm.container = container
	cm.lastUsed = time.Now()
	return container, nil
}

// IsHealthy reports whether a container is live and was used recently
func (cm *ConnectionManager) IsHealthy() bool {
	cm.mu.Lock()
	defer cm.mu.Unlock()

	if cm.container == nil {
		return false
	}

	return time.Since(cm.lastUsed) < 5*time.Minute
}

// Cleanup closes the container; the next GetContainer builds a new one
func (cm *ConnectionManager) Cleanup() error {
	cm.mu.Lock()
	defer cm.mu.Unlock()

	if cm.container == nil {
		return nil
	}

	err := cm.container.Close()
	cm.container = nil
	return err
}
