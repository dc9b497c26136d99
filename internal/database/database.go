package database

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/frahmantamala/employee-management/internal"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/stdlib"
	"github.com/jmoiron/sqlx"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

const driverName = "pgx"

// pgUniqueViolation is the SQLSTATE postgres reports for unique constraint failures.
const pgUniqueViolation = "23505"

// Connect opens the pgx-backed connection pool shared by gorm, seeding and
// health checks. Sessions run in UTC so date columns compare against UTC
// midnights.
func Connect(cfg internal.DatabaseConfig) (*sqlx.DB, error) {
	connConfig, err := pgx.ParseConfig(cfg.GetDSN())
	if err != nil {
		return nil, fmt.Errorf("failed to parse database source: %w", err)
	}
	if connConfig.RuntimeParams == nil {
		connConfig.RuntimeParams = map[string]string{}
	}
	connConfig.RuntimeParams["timezone"] = "UTC"

	dbConn := sqlx.NewDb(stdlib.OpenDB(*connConfig), driverName)

	dbConn.SetMaxIdleConns(cfg.MaxIdleConns)
	dbConn.SetMaxOpenConns(cfg.MaxOpenConns)
	if cfg.ConnMaxLifetime > 0 {
		dbConn.SetConnMaxLifetime(cfg.ConnMaxLifetime)
	}
	if cfg.ConnMaxIdleTime > 0 {
		dbConn.SetConnMaxIdleTime(cfg.ConnMaxIdleTime)
	}

	if err := dbConn.Ping(); err != nil {
		_ = dbConn.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return dbConn, nil
}

// OpenGorm layers gorm over an already opened pool so both share connections.
func OpenGorm(db *sqlx.DB, cfg internal.DatabaseConfig, lg *slog.Logger) (*gorm.DB, error) {
	gdb, err := gorm.Open(postgres.New(postgres.Config{Conn: db.DB}), GormConfig(cfg.LogQueries, lg))
	if err != nil {
		return nil, fmt.Errorf("failed to open gorm: %w", err)
	}
	return gdb, nil
}

// GormConfig returns the gorm settings shared by the server and the tests.
func GormConfig(logQueries bool, lg *slog.Logger) *gorm.Config {
	level := gormlogger.Silent
	if logQueries {
		level = gormlogger.Info
	}
	cfg := &gorm.Config{
		TranslateError: true,
		NowFunc:        func() time.Time { return time.Now().UTC() },
		Logger:         gormlogger.Default.LogMode(level),
	}
	if lg != nil && logQueries {
		cfg.Logger = gormlogger.New(slog.NewLogLogger(lg.Handler(), slog.LevelDebug), gormlogger.Config{
			SlowThreshold:             200 * time.Millisecond,
			LogLevel:                  level,
			IgnoreRecordNotFoundError: true,
		})
	}
	return cfg
}

// IsUniqueViolation reports whether err came from a unique constraint, whichever
// driver produced it.
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
	return strings.Contains(err.Error(), "UNIQUE constraint failed")
}
