package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/shashiranjanraj/storefront/config"
	"github.com/shashiranjanraj/storefront/pkg/logger"

	// Import migrations and seeders so their init() funcs run and register themselves.
	_ "github.com/shashiranjanraj/storefront/database/migrations"
	_ "github.com/shashiranjanraj/storefront/database/seeders"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var (
	envFileFlag  string
	jsonFileFlag string

	// cfg is loaded once before any command runs.
	cfg      *config.Config
	closeLog = func() {}
)

var rootCmd = &cobra.Command{
	Use:           "storefront",
	Short:         "Storefront API server and maintenance CLI",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		loaded, err := config.Load(config.Options{EnvFile: envFileFlag, JSONFile: jsonFileFlag})
		if err != nil {
			return err
		}
		cfg = loaded

		closeFn, err := logger.Setup(cfg.Log, cfg.App)
		if err != nil {
			return err
		}
		closeLog = closeFn
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		closeLog()
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&envFileFlag, "env-file", config.DefaultEnvFile, "dotenv file to load")
	rootCmd.PersistentFlags().StringVar(&jsonFileFlag, "config", config.DefaultJSONFile, "JSON defaults file")

	// Server
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(routeListCmd)

	// Database
	rootCmd.AddCommand(migrateCmd)
	rootCmd.AddCommand(migrateRollbackCmd)
	rootCmd.AddCommand(migrateStatusCmd)
	rootCmd.AddCommand(seedCmd)

	// Workers
	rootCmd.AddCommand(queueWorkCmd)
	rootCmd.AddCommand(queueFailedCmd)
}
