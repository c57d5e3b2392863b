package database

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jmoiron/sqlx"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/frahmantamala/smartexpense/internal"
	budgetDatamodel "github.com/frahmantamala/smartexpense/internal/core/datamodel/budget"
	expenseDatamodel "github.com/frahmantamala/smartexpense/internal/core/datamodel/expense"
	userDatamodel "github.com/frahmantamala/smartexpense/internal/core/datamodel/user"
)

const pgUniqueViolation = "23505"

// Open connects gorm to the configured driver and applies the pool settings.
func Open(cfg internal.DatabaseConfig, lg *slog.Logger) (*gorm.DB, error) {
	var dialector gorm.Dialector
	switch cfg.Driver {
	case "postgres":
		dialector = postgres.Open(cfg.Source)
	case "sqlite":
		dialector = sqlite.Open(sqliteDSN(cfg.Source))
	default:
		return nil, fmt.Errorf("unsupported database driver %q", cfg.Driver)
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger:         newGormLogger(lg),
		TranslateError: true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get sql.DB: %w", err)
	}
	if cfg.MaxOpenConns > 0 {
		sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
	}
	if cfg.MaxIdleConns > 0 {
		sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
	}
	sqlDB.SetConnMaxLifetime(cfg.ConnMaxLifetime)
	sqlDB.SetConnMaxIdleTime(cfg.ConnMaxIdleTime)

	ctx, cancel := internal.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := sqlDB.PingContext(ctx); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return db, nil
}

// Close releases the connection pool behind db.
func Close(db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// AutoMigrate creates the users, expenses and budgets tables when absent.
// Users go first so the cascading foreign keys have a target.
func AutoMigrate(db *gorm.DB) error {
	if err := db.AutoMigrate(&userDatamodel.User{}); err != nil {
		return fmt.Errorf("migrate users: %w", err)
	}
	if err := db.AutoMigrate(&expenseDatamodel.Expense{}, &budgetDatamodel.Budget{}); err != nil {
		return fmt.Errorf("migrate expenses/budgets: %w", err)
	}
	return nil
}

// NewSQLX wraps the gorm connection pool for hand written read queries.
func NewSQLX(db *gorm.DB) (*sqlx.DB, error) {
	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	return sqlx.NewDb(sqlDB, sqlxDriverName(db.Dialector.Name())), nil
}

// sqlxDriverName maps a gorm dialect to a driver name sqlx knows the bind
// style of.
func sqlxDriverName(dialect string) string {
	switch dialect {
	case "postgres":
		return "pgx"
	case "sqlite":
		return "sqlite3"
	default:
		return dialect
	}
}

// IsUniqueViolation reports whether err comes from a unique constraint,
// whatever driver produced it.
func IsUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == pgUniqueViolation
	}
	msg := err.Error()
	return strings.Contains(msg, "UNIQUE constraint failed") ||
		strings.Contains(msg, "duplicate key value")
}

func sqliteDSN(source string) string {
	if strings.Contains(source, "_foreign_keys") || strings.Contains(source, "_fk") {
		return source
	}
	if strings.Contains(source, "?") {
		return source + "&_foreign_keys=on"
	}
	return source + "?_foreign_keys=on"
}

func newGormLogger(lg *slog.Logger) gormlogger.Interface {
	if lg == nil {
		lg = slog.Default()
	}
	return gormlogger.New(
		slog.NewLogLogger(lg.Handler(), slog.LevelWarn),
		gormlogger.Config{
			SlowThreshold:             200 * time.Millisecond,
			LogLevel:                  gormlogger.Warn,
			IgnoreRecordNotFoundError: true,
		},
	)
}
