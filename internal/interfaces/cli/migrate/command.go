package migrate

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/nippo-inc/nippo/internal/infrastructure/config"
	"github.com/nippo-inc/nippo/internal/infrastructure/database"
	"github.com/nippo-inc/nippo/internal/infrastructure/persistence/migrations"
	"github.com/nippo-inc/nippo/internal/shared/logger"
)

var env string

func NewCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Database migration tools",
		Long:  `Manage database migrations: apply pending migrations, roll back, and inspect status.`,
	}

	cmd.PersistentFlags().StringVarP(&env, "env", "e", "development", "Environment (development, test, production)")

	cmd.AddCommand(
		newUpCommand(),
		newDownCommand(),
		newStatusCommand(),
	)

	return cmd
}

func newUpCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "up",
		Short: "Run all pending migrations",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withDatabase(func() error {
				if err := migrations.Up(database.Get()); err != nil {
					return err
				}
				version, err := migrations.Version(database.Get())
				if err != nil {
					return err
				}
				logger.Info("migrations applied", "version", version)
				return nil
			})
		},
	}
}

func newDownCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "down",
		Short: "Roll back the most recent migration",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withDatabase(func() error {
				if err := migrations.Down(database.Get()); err != nil {
					return err
				}
				version, err := migrations.Version(database.Get())
				if err != nil {
					return err
				}
				logger.Info("migration rolled back", "version", version)
				return nil
			})
		},
	}
}

func newStatusCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show migration status",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withDatabase(func() error {
				return migrations.Status(database.Get())
			})
		},
	}
}

func withDatabase(fn func() error) error {
	cfg, err := config.Load(env)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	if err := logger.Init(&cfg.Logger); err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}

	if err := database.Init(&cfg.Database); err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	defer database.Close()

	return fn()
}
