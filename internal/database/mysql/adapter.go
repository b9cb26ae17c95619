package mysql

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/go-sql-driver/mysql"
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

// NewWithDB wraps an open handle, e.g. a sqlmock connection in tests.
func NewWithDB(db *sql.DB) *Adapter {
	a := New()
	a.db = db
	return a
}

func (m *Adapter) Connect(ctx context.Context, url string) error {
	dsn, err := normalizeDSN(url)
	if err != nil {
		return err
	}

	db, err := sql.Open("mysql", dsn)
	if err != nil {
		return errors.Wrap(err, "failed to open MySQL connection")
	}
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(15 * time.Minute)
	db.SetConnMaxIdleTime(3 * time.Minute)

	m.db = db
	return nil
}

// normalizeDSN accepts either a go-sql-driver DSN or a mysql:// URL and
// returns a driver DSN.
func normalizeDSN(url string) (string, error) {
	dsn := url
	if strings.HasPrefix(url, "mysql://") {
		dsn = strings.TrimPrefix(url, "mysql://")

		atIndex := strings.LastIndex(dsn, "@")
		if atIndex > 0 {
			credentials := dsn[:atIndex]
			remainder := dsn[atIndex+1:]

			slashIndex := strings.Index(remainder, "/")
			if slashIndex > 0 {
				hostPort := remainder[:slashIndex]
				dbAndParams := remainder[slashIndex+1:]

				dbAndParams = strings.ReplaceAll(dbAndParams, "ssl-mode=REQUIRED", "tls=skip-verify")
				dbAndParams = strings.ReplaceAll(dbAndParams, "ssl-mode=DISABLED", "tls=false")
				dbAndParams = strings.ReplaceAll(dbAndParams, "sslmode=require", "tls=skip-verify")
				dbAndParams = strings.ReplaceAll(dbAndParams, "sslmode=disable", "tls=false")

				dsn = credentials + "@tcp(" + hostPort + ")/" + dbAndParams
			}
		}
	}

	cfg, err := mysql.ParseDSN(dsn)
	if err != nil {
		return "", errors.Wrap(err, "failed to parse MySQL DSN")
	}
	return cfg.FormatDSN(), nil
}

func (m *Adapter) Close() error {
	if m.db != nil {
		return m.db.Close()
	}
	return nil
}

func (m *Adapter) Ping(ctx context.Context) error {
	return m.db.PingContext(ctx)
}

func (m *Adapter) StatementBuilder() squirrel.StatementBuilderType {
	return m.qb
}

func (m *Adapter) Exec(ctx context.Context, query squirrel.Sqlizer) error {
	sql, args, err := query.ToSql()
	if err != nil {
		return errors.Wrap(err, "failed to build statement")
	}
	if _, err := m.db.ExecContext(ctx, sql, args...); err != nil {
		return errors.Wrapf(err, "failed to execute %q", sql)
	}
	return nil
}

// InsertReturningID runs query and reads LAST_INSERT_ID() from the result.
func (m *Adapter) InsertReturningID(ctx context.Context, query squirrel.InsertBuilder, pkColumn string) (int64, error) {
	if err := common.ValidateIdentifier(pkColumn); err != nil {
		return 0, err
	}

	sql, args, err := query.ToSql()
	if err != nil {
		return 0, errors.Wrap(err, "failed to build insert")
	}

	result, err := m.db.ExecContext(ctx, sql, args...)
	if err != nil {
		return 0, errors.Wrapf(err, "failed to execute %q", sql)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, errors.Wrap(err, "failed to read generated id")
	}
	return id, nil
}
