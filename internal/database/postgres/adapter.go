package postgres

import (
	"context"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/lib/pq"
	"github.com/pkg/errors"

	"github.com/Rana718/orgseed/internal/database/common"
)

// pgxPool is the subset of *pgxpool.Pool the adapter uses.
type pgxPool interface {
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Ping(ctx context.Context) error
	Close()
}

type Adapter struct {
	pool pgxPool
	qb   squirrel.StatementBuilderType
}

func New() *Adapter {
	return &Adapter{
		qb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

// NewWithPool wraps an existing pool, e.g. a pgxmock pool in tests.
func NewWithPool(pool pgxPool) *Adapter {
	a := New()
	a.pool = pool
	return a
}

func (p *Adapter) Connect(ctx context.Context, url string) error {
	config, err := pgxpool.ParseConfig(url)
	if err != nil {
		return errors.Wrap(err, "failed to parse connection URL")
	}

	config.ConnConfig.DefaultQueryExecMode = pgx.QueryExecModeExec

	// Seeding is strictly sequential; one connection keeps every statement on
	// the same session.
	config.MaxConns = 1
	config.MinConns = 0
	config.MaxConnLifetime = 15 * time.Minute
	config.MaxConnIdleTime = 3 * time.Minute
	config.HealthCheckPeriod = 30 * time.Second

	pool, err := pgxpool.NewWithConfig(ctx, config)
	if err != nil {
		return errors.Wrap(err, "failed to create connection pool")
	}

	p.pool = pool
	return nil
}

func (p *Adapter) Close() error {
	if p.pool != nil {
		p.pool.Close()
	}
	return nil
}

func (p *Adapter) Ping(ctx context.Context) error {
	return p.pool.Ping(ctx)
}

func (p *Adapter) StatementBuilder() squirrel.StatementBuilderType {
	return p.qb
}

func (p *Adapter) Exec(ctx context.Context, query squirrel.Sqlizer) error {
	sql, args, err := query.ToSql()
	if err != nil {
		return errors.Wrap(err, "failed to build statement")
	}
	if _, err := p.pool.Exec(ctx, sql, args...); err != nil {
		return errors.Wrapf(err, "failed to execute %q", sql)
	}
	return nil
}

// InsertReturningID runs query with a RETURNING clause and scans the generated key.
func (p *Adapter) InsertReturningID(ctx context.Context, query squirrel.InsertBuilder, pkColumn string) (int64, error) {
	if err := common.ValidateIdentifier(pkColumn); err != nil {
		return 0, err
	}

	sql, args, err := query.Suffix("RETURNING " + pq.QuoteIdentifier(pkColumn)).ToSql()
	if err != nil {
		return 0, errors.Wrap(err, "failed to build insert")
	}

	var id int64
	if err := p.pool.QueryRow(ctx, sql, args...).Scan(&id); err != nil {
		return 0, errors.Wrapf(err, "failed to execute %q", sql)
	}
	return id, nil
}
