package sqlite

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"github.com/Masterminds/squirrel"
	_ "github.com/mattn/go-sqlite3"
	"github.com/pkg/errors"

	"github.com/Rana718/orgseed/internal/database/common"
)

type Adapter struct {
	db *sql.DB
	qb squirrel.StatementBuilderType
}

func New() *Adapter {
	return &Adapter{
		qb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Question),
	}
}

func (s *Adapter) Connect(ctx context.Context, url string) error {
	dsn := buildDSN(url)

	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return errors.Wrap(err, "failed to open SQLite connection")
	}

	// A single connection so that every statement sees the same database,
	// including ":memory:" ones.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)
	db.SetConnMaxIdleTime(5 * time.Minute)

	s.db = db
	return nil
}

// buildDSN strips the sqlite:// scheme and turns foreign key enforcement on.
func buildDSN(url string) string {
	dsn := strings.TrimPrefix(url, "sqlite://")
	if strings.Contains(dsn, "_foreign_keys=") || strings.Contains(dsn, "_fk=") {
		return dsn
	}
	if strings.Contains(dsn, "?") {
		return dsn + "&_foreign_keys=on"
	}
	return dsn + "?_foreign_keys=on"
}

func (s *Adapter) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

func (s *Adapter) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

func (s *Adapter) StatementBuilder() squirrel.StatementBuilderType {
	return s.qb
}

func (s *Adapter) Exec(ctx context.Context, query squirrel.Sqlizer) error {
	sql, args, err := query.ToSql()
	if err != nil {
		return errors.Wrap(err, "failed to build statement")
	}
	if _, err := s.db.ExecContext(ctx, sql, args...); err != nil {
		return errors.Wrapf(err, "failed to execute %q", sql)
	}
	return nil
}

// InsertReturningID runs query and reads last_insert_rowid() from the result.
func (s *Adapter) InsertReturningID(ctx context.Context, query squirrel.InsertBuilder, pkColumn string) (int64, error) {
	if err := common.ValidateIdentifier(pkColumn); err != nil {
		return 0, err
	}

	sql, args, err := query.ToSql()
	if err != nil {
		return 0, errors.Wrap(err, "failed to build insert")
	}

	result, err := s.db.ExecContext(ctx, sql, args...)
	if err != nil {
		return 0, errors.Wrapf(err, "failed to execute %q", sql)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, errors.Wrap(err, "failed to read generated id")
	}
	return id, nil
}
