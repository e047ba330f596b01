// Package main provides the bookshelf migration CLI for the sqlite store.
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"bookshelf-api/internal/config"
	"bookshelf-api/internal/database"
)

var (
	flagDBPath  string
	flagVerbose bool

	logger = logrus.New()
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:           "migrate",
	Short:         "Manage the bookshelf sqlite schema",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if flagVerbose {
			logger.SetLevel(logrus.DebugLevel)
		}

		if flagDBPath == "" {
			flagDBPath = config.GetEnv("DB_PATH", "./data/books.db")
		}

		absPath, err := filepath.Abs(flagDBPath)
		if err != nil {
			return fmt.Errorf("failed to get absolute database path: %w", err)
		}
		if err := os.MkdirAll(filepath.Dir(absPath), 0755); err != nil {
			return fmt.Errorf("failed to create database directory: %w", err)
		}
		flagDBPath = absPath

		logger.WithFields(logrus.Fields{
			"db_path": flagDBPath,
			"action":  cmd.Name(),
		}).Debug("Starting migration tool")
		return nil
	},
}

var upCmd = &cobra.Command{
	Use:   "up",
	Short: "Apply all pending migrations",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := database.NewMigrationManager(flagDBPath, logger).RunMigrations(); err != nil {
			return fmt.Errorf("migration up failed: %w", err)
		}
		return printStatus(cmd)
	},
}

var downCmd = &cobra.Command{
	Use:   "down",
	Short: "Roll back the most recent migration",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := database.NewMigrationManager(flagDBPath, logger).RollbackMigration(); err != nil {
			return fmt.Errorf("migration down failed: %w", err)
		}
		return printStatus(cmd)
	},
}

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show the current schema version",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return printStatus(cmd)
	},
}

func printStatus(cmd *cobra.Command) error {
	status, err := database.NewMigrationManager(flagDBPath, logger).GetMigrationStatus()
	if err != nil {
		return fmt.Errorf("failed to get migration status: %w", err)
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Migration Status:\n")
	fmt.Fprintf(out, "  Database: %s\n", flagDBPath)
	fmt.Fprintf(out, "  Version: %d\n", status.Version)
	fmt.Fprintf(out, "  Applied: %t\n", status.Applied)
	fmt.Fprintf(out, "  Dirty: %t\n", status.Dirty)
	return nil
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "", "database file path (default: $DB_PATH or ./data/books.db)")
	rootCmd.PersistentFlags().BoolVar(&flagVerbose, "verbose", false, "enable verbose logging")

	rootCmd.AddCommand(upCmd)
	rootCmd.AddCommand(downCmd)
	rootCmd.AddCommand(statusCmd)
}
