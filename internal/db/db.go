package db

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"minitwit/internal/models"

	"github.com/rs/zerolog"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	// registers the pure-Go "sqlite" database/sql driver
	_ "modernc.org/sqlite"
)

var (
	ErrNotFound         = errors.New("record not found")
	ErrCompanyNameTaken = errors.New("company name already taken")
)

// Options configures Open.
type Options struct {
	URL          string
	MaxOpenConns int
	Logger       zerolog.Logger
}

// Store wraps the gorm handle. Every call takes the caller's context; nothing
// request-scoped is kept here.
type Store struct {
	gdb *gorm.DB
	log zerolog.Logger
}

// Open connects to the database named by opts.URL and creates missing tables.
// postgres:// and postgresql:// URLs select PostgreSQL; anything else is a
// SQLite file path.
func Open(ctx context.Context, opts Options) (*Store, error) {
	dialector, err := dialectorFor(opts.URL)
	if err != nil {
		return nil, err
	}

	gdb, err := gorm.Open(dialector, &gorm.Config{
		SkipDefaultTransaction: true,
		TranslateError:         true,
		Logger:                 newGormLogger(opts.Logger),
	})
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	sqlDB, err := gdb.DB()
	if err != nil {
		return nil, fmt.Errorf("database handle: %w", err)
	}
	if opts.MaxOpenConns > 0 {
		sqlDB.SetMaxOpenConns(opts.MaxOpenConns)
		sqlDB.SetMaxIdleConns(opts.MaxOpenConns)
	}
	sqlDB.SetConnMaxIdleTime(5 * time.Minute)

	s := &Store{gdb: gdb, log: opts.Logger}
	if err := s.Ping(ctx); err != nil {
		_ = sqlDB.Close()
		return nil, err
	}
	if err := s.migrate(ctx); err != nil {
		_ = sqlDB.Close()
		return nil, err
	}
	opts.Logger.Info().Str("dialect", gdb.Dialector.Name()).Msg("database ready")
	return s, nil
}

// New wraps an already opened gorm handle without migrating it.
func New(gdb *gorm.DB, log zerolog.Logger) *Store {
	return &Store{gdb: gdb, log: log}
}

func dialectorFor(url string) (gorm.Dialector, error) {
	url = strings.TrimSpace(url)
	if url == "" {
		return nil, errors.New("database url is required")
	}
	if strings.HasPrefix(url, "postgres://") || strings.HasPrefix(url, "postgresql://") {
		return postgres.Open(url), nil
	}

	path := filepath.Clean(url)
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create database directory: %w", err)
		}
	}
	return sqlite.New(sqlite.Config{
		DriverName: "sqlite",
		DSN:        path + "?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)",
	}), nil
}

// migrate creates the company, message and comments tables if missing.
func (s *Store) migrate(ctx context.Context) error {
	err := s.gdb.WithContext(ctx).AutoMigrate(
		&models.Company{},
		&models.Message{},
		&models.Comment{},
	)
	if err != nil {
		return fmt.Errorf("migrate schema: %w", err)
	}
	return nil
}

func (s *Store) Ping(ctx context.Context) error {
	sqlDB, err := s.gdb.DB()
	if err != nil {
		return fmt.Errorf("database handle: %w", err)
	}
	if err := sqlDB.PingContext(ctx); err != nil {
		return fmt.Errorf("ping database: %w", err)
	}
	return nil
}

func (s *Store) Close() error {
	sqlDB, err := s.gdb.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

func newGormLogger(log zerolog.Logger) logger.Interface {
	// statements are traced only when the app itself runs at debug level
	cfg := logger.Config{
		SlowThreshold:             200 * time.Millisecond,
		LogLevel:                  logger.Warn,
		IgnoreRecordNotFoundError: true,
	}
	w := &zerologWriter{log: log, level: zerolog.WarnLevel}
	if log.GetLevel() <= zerolog.DebugLevel {
		cfg.LogLevel = logger.Info
		w.level = zerolog.DebugLevel
	}
	return logger.New(w, cfg)
}

// zerologWriter adapts gorm's printf-style logger to zerolog.
type zerologWriter struct {
	log   zerolog.Logger
	level zerolog.Level
}

func (w *zerologWriter) Printf(format string, args ...interface{}) {
	w.log.WithLevel(w.level).Str("component", "gorm").Msgf(format, args...)
}
