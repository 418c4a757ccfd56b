package db

import (
	"context"
	"fmt"

	"transfer-admin/internal/config"
	"transfer-admin/internal/mylogger"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Querier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

type DB struct {
	pool  *pgxpool.Pool
	mylog mylogger.Logger
}

func Start(ctx context.Context, dbCfg *config.DBconfig, mylog mylogger.Logger) (*DB, error) {
	pool, err := pgxpool.New(ctx, fmt.Sprintf(
		"postgres://%v:%v@%v:%v/%v?sslmode=disable",
		dbCfg.User,
		dbCfg.Password,
		dbCfg.Host,
		dbCfg.Port,
		dbCfg.Database,
	))
	if err != nil {
		return nil, fmt.Errorf("failed to create pool: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	d := &DB{pool: pool, mylog: mylog}
	if err := d.migrate(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to apply schema: %w", err)
	}

	return d, nil
}

func (d *DB) Pool() Querier {
	return d.pool
}

func (d *DB) IsAlive(ctx context.Context) error {
	return d.pool.Ping(ctx)
}

func (d *DB) Close() error {
	d.pool.Close()
	return nil
}

const schema = `
CREATE TABLE IF NOT EXISTS users (
	user_id       UUID PRIMARY KEY DEFAULT gen_random_uuid(),
	username      TEXT NOT NULL UNIQUE,
	email         TEXT NOT NULL UNIQUE,
	password_hash BYTEA NOT NULL,
	role          TEXT NOT NULL,
	status        TEXT NOT NULL DEFAULT 'ACTIVE',
	created_at    TIMESTAMPTZ NOT NULL DEFAULT now(),
	updated_at    TIMESTAMPTZ NOT NULL DEFAULT now()
);
`

func (d *DB) migrate(ctx context.Context) error {
	_, err := d.pool.Exec(ctx, schema)
	return err
}
