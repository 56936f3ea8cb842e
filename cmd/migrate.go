package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/podseek/search-api/internal/database"
	"github.com/podseek/search-api/internal/models"
	"github.com/podseek/search-api/pkg/config"
)

// migrateCmd represents the migrate command
var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Run database migrations",
	Long: `Manage the library database schema.

Available subcommands:
  up      - Apply the schema for all models
  status  - Show which tables exist`,
}

// migrateUpCmd applies the schema
var migrateUpCmd = &cobra.Command{
	Use:   "up",
	Short: "Apply the schema for all models",
	RunE:  runMigrateUp,
}

// migrateStatusCmd shows which model tables exist
var migrateStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show migration status",
	RunE:  runMigrateStatus,
}

func init() {
	rootCmd.AddCommand(migrateCmd)
	migrateCmd.AddCommand(migrateUpCmd)
	migrateCmd.AddCommand(migrateStatusCmd)
}

func openLibraryDB() (*database.DB, error) {
	cfg, err := config.GetConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	db, err := database.Open(cfg.Database.Path, cfg.Database.Verbose)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	return db, nil
}

func runMigrateUp(cmd *cobra.Command, args []string) error {
	db, err := openLibraryDB()
	if err != nil {
		return err
	}
	defer db.Close()

	if err := db.AutoMigrate(&models.Podcast{}, &models.Episode{}); err != nil {
		return err
	}

	fmt.Println("Schema is up to date")
	return nil
}

func runMigrateStatus(cmd *cobra.Command, args []string) error {
	db, err := openLibraryDB()
	if err != nil {
		return err
	}
	defer db.Close()

	migrator := db.DB.Migrator()
	for _, model := range []any{&models.Podcast{}, &models.Episode{}} {
		state := "missing"
		if migrator.HasTable(model) {
			state = "present"
		}
		fmt.Printf("%-20T %s\n", model, state)
	}
	return nil
}
