package database

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
)

func newTestConfig(t *testing.T) *ConnectionConfig {
	t.Helper()

	logger := logrus.New()
	logger.SetLevel(logrus.WarnLevel)

	return &ConnectionConfig{
		DatabasePath:    filepath.Join(t.TempDir(), "nested", "books.db"),
		MaxOpenConns:    1,
		MaxIdleConns:    1,
		ConnMaxLifetime: time.Hour,
		AutoMigrate:     true,
		Logger:          logger,
	}
}

func TestConnectionManager_ConnectMigratesAndSeeds(t *testing.T) {
	cm := NewConnectionManager(newTestConfig(t))
	ctx := context.Background()

	if err := cm.Connect(ctx); err != nil {
		t.Fatalf("Connect() failed: %v", err)
	}
	defer cm.Close()

	if err := cm.HealthCheck(ctx); err != nil {
		t.Errorf("HealthCheck() failed: %v", err)
	}

	var count int
	if err := cm.GetDB().QueryRow("SELECT COUNT(*) FROM books").Scan(&count); err != nil {
		t.Fatalf("Failed to count books: %v", err)
	}
	if count != 2 {
		t.Errorf("Expected 2 seeded books, got %d", count)
	}

	// Double connect should fail
	if err := cm.Connect(ctx); err == nil {
		t.Error("Connect() should fail when already connected")
	}
}

func TestMigrationManager_StatusAndRollback(t *testing.T) {
	config := newTestConfig(t)
	cm := NewConnectionManager(config)
	if err := cm.Connect(context.Background()); err != nil {
		t.Fatalf("Connect() failed: %v", err)
	}
	dbPath := cm.Path()
	cm.Close()

	manager := NewMigrationManager(dbPath, config.Logger)

	status, err := manager.GetMigrationStatus()
	if err != nil {
		t.Fatalf("GetMigrationStatus() failed: %v", err)
	}
	if status.Version != 2 || status.Dirty || !status.Applied {
		t.Errorf("Unexpected status: %+v", status)
	}

	if err := manager.RollbackMigration(); err != nil {
		t.Fatalf("RollbackMigration() failed: %v", err)
	}

	status, err = manager.GetMigrationStatus()
	if err != nil {
		t.Fatalf("GetMigrationStatus() failed: %v", err)
	}
	if status.Version != 1 {
		t.Errorf("Expected version 1 after rollback, got %d", status.Version)
	}

	// Running again is idempotent and brings the seed back
	if err := manager.RunMigrations(); err != nil {
		t.Fatalf("RunMigrations() failed: %v", err)
	}
	if err := manager.RunMigrations(); err != nil {
		t.Fatalf("Second RunMigrations() failed: %v", err)
	}
}

func TestConnectionManager_CloseWithoutConnect(t *testing.T) {
	cm := NewConnectionManager(newTestConfig(t))
	if err := cm.Close(); err != nil {
		t.Errorf("Close() without Connect() should be a no-op, got %v", err)
	}
	if err := cm.HealthCheck(context.Background()); err == nil {
		t.Error("HealthCheck() should fail when not connected")
	}
}
