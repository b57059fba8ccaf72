package commands

import (
	"fmt"
	"os"

	"github.com/ikkim/storefront/config"
	"github.com/ikkim/storefront/internal/app/repository"
	"github.com/ikkim/storefront/internal/app/service"
	"github.com/ikkim/storefront/internal/app/workflow"
	"github.com/ikkim/storefront/internal/console"
	"github.com/ikkim/storefront/internal/db"
	"github.com/ikkim/storefront/pkg/logger"
	"github.com/spf13/cobra"
)

var (
	// Global flags
	dbURL    string
	logLevel string
)

// rootCmd runs the interactive console
var rootCmd = &cobra.Command{
	Use:   "storefront",
	Short: "Storefront - retail ordering console",
	Long: `Storefront is a terminal console for a small retail chain.

Customers find stores near them and place orders. Managers update products,
review popular items and customers, and request supplies from warehouses.
Admins edit user accounts and any store's products.

Connection settings come from DB_HOST, DB_PORT, DB_USER, DB_PASSWORD, DB_NAME
and DB_SSLMODE (or DATABASE_URL), and --db overrides them all.`,
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runConsole()
	},
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&dbURL, "db", "", "Database connection URL (overrides DB_* environment variables)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Log level: debug, info, warn, error, disabled")
}

// bootstrap loads configuration, sets up logging and connects to storage.
func bootstrap() (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}
	if dbURL != "" {
		cfg.Database.URL = dbURL
	}
	if logLevel != "" {
		cfg.Log.Level = logLevel
	}

	logger.Initialize(logger.Config{
		Level:       cfg.Log.Level,
		Format:      cfg.Log.Format,
		Output:      os.Stderr,
		EnableColor: true,
	})

	if err := db.Initialize(&cfg.Database); err != nil {
		logger.Error("Failed to initialize database", err)
		return nil, err
	}
	return cfg, nil
}

func closeDB() {
	if err := db.Close(); err != nil {
		logger.Error("Failed to close database connection", err)
	}
}

func runConsole() error {
	if _, err := bootstrap(); err != nil {
		return err
	}
	defer closeDB()

	if err := db.Migrate(); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	services := service.New(repository.NewRepositories(db.GetDB()))
	port := console.New(os.Stdin, os.Stdout)

	logger.Info("Console started")
	if err := workflow.NewMenu(services).Run(port); err != nil {
		return err
	}

	port.Printf("Disconnecting from database...")
	port.Println("Done")
	return nil
}
