package application

import (
	"context"
	"embed"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
	"github.com/sirupsen/logrus"
)

// MigrationManager collects the goose schemas modules embed and applies them
// at startup. Each module tracks its own version table so schemas stay
// independently orderable.
type MigrationManager interface {
	RegisterSchema(module string, fs *embed.FS, dir string)
	Apply(ctx context.Context, pool *pgxpool.Pool, logger *logrus.Logger) error
}

func NewMigrationManager() MigrationManager {
	return &migrationManager{}
}

type migrationManager struct {
	schemas []Schema
}

func (m *migrationManager) RegisterSchema(module string, fs *embed.FS, dir string) {
	m.schemas = append(m.schemas, Schema{Module: module, FS: fs, Dir: dir})
}

func (m *migrationManager) Apply(ctx context.Context, pool *pgxpool.Pool, logger *logrus.Logger) error {
	if len(m.schemas) == 0 {
		return nil
	}

	db := stdlib.OpenDBFromPool(pool)
	defer func() { _ = db.Close() }()

	if err := goose.SetDialect("postgres"); err != nil {
		return fmt.Errorf("set goose dialect: %w", err)
	}
	goose.SetLogger(goose.NopLogger())

	for _, schema := range m.schemas {
		goose.SetBaseFS(schema.FS)
		goose.SetTableName(fmt.Sprintf("goose_db_version_%s", schema.Module))
		if err := goose.UpContext(ctx, db, schema.Dir); err != nil {
			return fmt.Errorf("migrate module %s: %w", schema.Module, err)
		}
		if logger != nil {
			logger.WithField("module", schema.Module).Info("schema up to date")
		}
	}
	goose.SetBaseFS(nil)
	return nil
}
