package store

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	sq "github.com/Masterminds/squirrel"

	"github.com/MKhiriev/vault-keeper/internal/config"
	"github.com/MKhiriev/vault-keeper/internal/logger"
	"github.com/MKhiriev/vault-keeper/migrations"
)

// Dialect names the SQL engine behind a [DB].
type Dialect string

const (
	DialectPostgres Dialect = "postgres"
	DialectSQLite   Dialect = "sqlite"
)

// DB wraps a *sql.DB together with the dialect-specific pieces the
// repositories need: the error classifier and the squirrel placeholder
// format.
type DB struct {
	*sql.DB
	dialect            Dialect
	errorClassificator ErrorClassificator
	logger             *logger.Logger
}

// NewConnectDB opens the user registry selected by cfg.DSN. A DSN that looks
// like a PostgreSQL connection string goes to pgx, anything else is treated
// as a SQLite database file.
func NewConnectDB(ctx context.Context, cfg config.DB, log *logger.Logger) (*DB, error) {
	switch DialectFromDSN(cfg.DSN) {
	case DialectPostgres:
		return NewConnectPostgres(ctx, cfg, log)
	case DialectSQLite:
		return NewConnectSQLite(ctx, cfg, log)
	}

	return nil, fmt.Errorf("%w: %q", ErrUnsupportedDSN, cfg.DSN)
}

// DialectFromDSN guesses the SQL dialect from a connection string.
func DialectFromDSN(dsn string) Dialect {
	dsn = strings.TrimSpace(dsn)
	switch {
	case dsn == "":
		return ""
	case strings.HasPrefix(dsn, "postgres://"),
		strings.HasPrefix(dsn, "postgresql://"),
		strings.Contains(dsn, "host=") && strings.Contains(dsn, "dbname="):
		return DialectPostgres
	default:
		return DialectSQLite
	}
}

// Dialect reports which SQL engine db talks to.
func (db *DB) Dialect() Dialect {
	return db.dialect
}

// Migrate brings the schema up to date with the embedded migrations of the
// connection's dialect.
func (db *DB) Migrate() error {
	return migrations.Migrate(db.DB, string(db.dialect))
}

func (db *DB) placeholder() sq.PlaceholderFormat {
	if db.dialect == DialectPostgres {
		return sq.Dollar
	}
	return sq.Question
}

func (db *DB) classify(err error) ErrorClassification {
	if db.errorClassificator == nil {
		return NonRetryable
	}
	return db.errorClassificator.Classify(err)
}
