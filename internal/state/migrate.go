package state

import (
	"embed"
	"fmt"
	"log/slog"

	"github.com/pressly/goose/v3"
)

//go:embed migrations/*.sql
var migrations embed.FS

// gooseLogger routes goose output to slog so migrations stay off stdout.
type gooseLogger struct {
	logger *slog.Logger
}

func (l gooseLogger) Printf(format string, v ...interface{}) {
	l.logger.Debug(fmt.Sprintf(format, v...))
}

func (l gooseLogger) Fatalf(format string, v ...interface{}) {
	l.logger.Error(fmt.Sprintf(format, v...))
}

func (s *SQLiteStore) configureGoose() error {
	goose.SetBaseFS(migrations)
	goose.SetLogger(gooseLogger{logger: s.logger})
	if err := goose.SetDialect("sqlite"); err != nil {
		return fmt.Errorf("failed to set dialect: %w", err)
	}
	return nil
}

// Migrate runs all pending database migrations.
func (s *SQLiteStore) Migrate() error {
	if err := s.checkOpen(); err != nil {
		return err
	}
	if err := s.configureGoose(); err != nil {
		return err
	}
	if err := goose.Up(s.db, "migrations"); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}
	return nil
}

// MigrationVersion returns the current migration version.
func (s *SQLiteStore) MigrationVersion() (int64, error) {
	if err := s.checkOpen(); err != nil {
		return 0, err
	}
	if err := s.configureGoose(); err != nil {
		return 0, err
	}
	return goose.GetDBVersion(s.db)
}
