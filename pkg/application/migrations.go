package application

import (
	"context"
	"fmt"
	"io/fs"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
	"github.com/sirupsen/logrus"
)

type schemaSource struct {
	fsys fs.FS
	dir  string
}

// MigrationManager collects embedded schema directories from modules and
// applies them with goose. Version numbers must be globally unique across
// modules, so each module claims its own numeric range.
type MigrationManager struct {
	pool    *pgxpool.Pool
	log     *logrus.Logger
	sources []schemaSource
}

func NewMigrationManager(pool *pgxpool.Pool, log *logrus.Logger) *MigrationManager {
	return &MigrationManager{pool: pool, log: log}
}

func (m *MigrationManager) RegisterSchema(fsys fs.FS, dir string) {
	m.sources = append(m.sources, schemaSource{fsys: fsys, dir: dir})
}

func (m *MigrationManager) Apply(ctx context.Context) error {
	if m.pool == nil || len(m.sources) == 0 {
		return nil
	}
	db := stdlib.OpenDBFromPool(m.pool)
	defer func() { _ = db.Close() }()

	if err := goose.SetDialect("postgres"); err != nil {
		return fmt.Errorf("set migration dialect: %w", err)
	}
	goose.SetLogger(gooseLogger{m.log})

	for _, src := range m.sources {
		goose.SetBaseFS(src.fsys)
		if err := goose.UpContext(ctx, db, src.dir, goose.WithAllowMissing()); err != nil {
			return fmt.Errorf("apply migrations from %s: %w", src.dir, err)
		}
	}
	goose.SetBaseFS(nil)
	return nil
}

type gooseLogger struct {
	log *logrus.Logger
}

func (g gooseLogger) Fatalf(format string, v ...interface{}) { g.log.Fatalf(format, v...) }
func (g gooseLogger) Printf(format string, v ...interface{}) { g.log.Infof(format, v...) }
