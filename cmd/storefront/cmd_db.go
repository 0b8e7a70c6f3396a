package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"gorm.io/gorm"

	"github.com/shashiranjanraj/storefront/database/seeders"
	"github.com/shashiranjanraj/storefront/pkg/database"
	"github.com/shashiranjanraj/storefront/pkg/logger"
	"github.com/shashiranjanraj/storefront/pkg/migration"
	"github.com/shashiranjanraj/storefront/pkg/storage"
)

// withDB opens the database for the duration of fn.
func withDB(fn func(db *gorm.DB) error) error {
	db, err := database.Connect(cfg.Database, logger.L)
	if err != nil {
		return err
	}
	defer database.Close(db)
	return fn(db)
}

// storefront migrate
var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Run all pending database migrations",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withDB(func(db *gorm.DB) error {
			fmt.Fprintln(cmd.OutOrStdout(), "Running migrations…")
			_, err := migration.New(db, cmd.OutOrStdout()).Run()
			return err
		})
	},
}

// storefront migrate:rollback
var migrateRollbackCmd = &cobra.Command{
	Use:   "migrate:rollback",
	Short: "Rollback the last batch of migrations",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withDB(func(db *gorm.DB) error {
			fmt.Fprintln(cmd.OutOrStdout(), "Rolling back last batch…")
			_, err := migration.New(db, cmd.OutOrStdout()).Rollback()
			return err
		})
	},
}

// storefront migrate:status
var migrateStatusCmd = &cobra.Command{
	Use:   "migrate:status",
	Short: "Show the status of each migration",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withDB(func(db *gorm.DB) error {
			_, err := migration.New(db, cmd.OutOrStdout()).Status()
			return err
		})
	},
}

var seedOnlyFlag []string

// storefront seed [--only catalog,customers]
var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Run all database seeders",
	RunE: func(cmd *cobra.Command, args []string) error {
		disk, err := storage.New(cmd.Context(), cfg.Storage)
		if err != nil {
			return err
		}
		return withDB(func(db *gorm.DB) error {
			fmt.Fprintln(cmd.OutOrStdout(), "Running seeders…")
			return seeders.Run(cmd.Context(), db, disk, cmd.OutOrStdout(), seedOnlyFlag...)
		})
	},
}

func init() {
	seedCmd.Flags().StringSliceVar(&seedOnlyFlag, "only", nil, "Run only these seeders")
}
