// Package migrations manages the database schema. Development environments
// use GORM AutoMigrate; everything else runs the embedded goose SQL scripts.
package migrations

import (
	"embed"
	"fmt"

	"github.com/pressly/goose/v3"
	"gorm.io/gorm"

	"github.com/nippo-inc/nippo/internal/infrastructure/persistence/models"
)

//go:embed scripts/*.sql
var embedMigrations embed.FS

const scriptsDir = "scripts"

// AutoMigrate creates or updates the schema from the persistence models.
// The join table must be registered first so report_tags keeps its
// composite primary key instead of GORM's generated join model.
func AutoMigrate(db *gorm.DB) error {
	if err := db.SetupJoinTable(&models.ReportModel{}, "Tags", &models.ReportTagModel{}); err != nil {
		return fmt.Errorf("failed to set up report_tags join table: %w", err)
	}

	if err := db.AutoMigrate(
		&models.UserModel{},
		&models.CategoryModel{},
		&models.TagModel{},
		&models.ReportModel{},
		&models.ReportTagModel{},
		&models.CommentModel{},
	); err != nil {
		return fmt.Errorf("auto-migration failed: %w", err)
	}

	return nil
}

// Up applies all pending goose migrations from the embedded scripts.
func Up(db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}

	goose.SetBaseFS(embedMigrations)
	if err := goose.SetDialect("mysql"); err != nil {
		return fmt.Errorf("failed to set goose dialect: %w", err)
	}

	if err := goose.Up(sqlDB, scriptsDir); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	return nil
}

// Down rolls back the most recent goose migration.
func Down(db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}

	goose.SetBaseFS(embedMigrations)
	if err := goose.SetDialect("mysql"); err != nil {
		return fmt.Errorf("failed to set goose dialect: %w", err)
	}

	if err := goose.Down(sqlDB, scriptsDir); err != nil {
		return fmt.Errorf("failed to roll back migration: %w", err)
	}

	return nil
}

// Version returns the currently applied goose migration version.
func Version(db *gorm.DB) (int64, error) {
	sqlDB, err := db.DB()
	if err != nil {
		return 0, fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}

	goose.SetBaseFS(embedMigrations)
	if err := goose.SetDialect("mysql"); err != nil {
		return 0, fmt.Errorf("failed to set goose dialect: %w", err)
	}

	return goose.GetDBVersion(sqlDB)
}

// Status prints the goose migration status to stdout.
func Status(db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}

	goose.SetBaseFS(embedMigrations)
	if err := goose.SetDialect("mysql"); err != nil {
		return fmt.Errorf("failed to set goose dialect: %w", err)
	}

	return goose.Status(sqlDB, scriptsDir)
}
