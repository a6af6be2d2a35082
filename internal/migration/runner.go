// Package migration brings the cache schema up to date: gorm auto-migration
// first, then the embedded SQL files in name order, each applied once.
package migration

import (
	"embed"
	"fmt"
	"io/fs"
	"sort"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/Ayash-Bera/propsearch/internal/database"
)

//go:embed sql/*.sql
var embedded embed.FS

// SchemaMigration records one applied SQL file.
type SchemaMigration struct {
	Name      string    `gorm:"primaryKey;size:255"`
	AppliedAt time.Time `gorm:"not null"`
}

func (SchemaMigration) TableName() string {
	return "schema_migrations"
}

type Runner struct {
	dbManager *database.Manager
	files     fs.FS
	logger    *logrus.Logger
}

func NewRunner(dbManager *database.Manager, logger *logrus.Logger) *Runner {
	sub, _ := fs.Sub(embedded, "sql")
	return &Runner{dbManager: dbManager, files: sub, logger: logger}
}

// RunMigrations executes all pending migrations and returns the names of the
// SQL files applied in this run.
func (r *Runner) RunMigrations() ([]string, error) {
	r.logger.Info("Starting database migrations...")

	if err := r.dbManager.Migrate(); err != nil {
		return nil, fmt.Errorf("GORM auto-migration failed: %w", err)
	}

	db := r.dbManager.DB
	if err := db.AutoMigrate(&SchemaMigration{}); err != nil {
		return nil, fmt.Errorf("failed to create migrations table: %w", err)
	}

	applied, err := r.runSQLMigrations(db)
	if err != nil {
		return applied, fmt.Errorf("SQL migrations failed: %w", err)
	}

	r.logger.WithField("applied", len(applied)).Info("Database migrations completed successfully")
	return applied, nil
}

func (r *Runner) runSQLMigrations(db *gorm.DB) ([]string, error) {
	entries, err := fs.ReadDir(r.files, ".")
	if err != nil {
		return nil, fmt.Errorf("failed to read migrations: %w", err)
	}

	var sqlFiles []string
	for _, e := range entries {
		if strings.HasSuffix(e.Name(), ".sql") {
			sqlFiles = append(sqlFiles, e.Name())
		}
	}
	sort.Strings(sqlFiles)

	var done []SchemaMigration
	if err := db.Find(&done).Error; err != nil {
		return nil, fmt.Errorf("failed to list applied migrations: %w", err)
	}
	seen := make(map[string]bool, len(done))
	for _, m := range done {
		seen[m.Name] = true
	}

	var applied []string
	for _, name := range sqlFiles {
		if seen[name] {
			continue
		}
		if err := r.runSQLFile(db, name); err != nil {
			return applied, fmt.Errorf("failed to run migration %s: %w", name, err)
		}
		applied = append(applied, name)
		r.logger.WithField("file", name).Info("Migration executed successfully")
	}
	return applied, nil
}

func (r *Runner) runSQLFile(db *gorm.DB, name string) error {
	content, err := fs.ReadFile(r.files, name)
	if err != nil {
		return err
	}

	return db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Exec(string(content)).Error; err != nil {
			return err
		}
		return tx.Create(&SchemaMigration{Name: name, AppliedAt: time.Now()}).Error
	})
}
