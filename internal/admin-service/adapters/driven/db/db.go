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

// Querier is the slice of pgxpool.Pool the repositories need. pgxmock's pool
// satisfies it too, so repositories are unit-testable without a database.
type Querier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

type DB struct {
	pool  *pgxpool.Pool
	mylog mylogger.Logger
}

// Start opens the pool, verifies connectivity and applies the idempotent schema.
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
CREATE TABLE IF NOT EXISTS vehicle_base_prices (
	id                UUID PRIMARY KEY DEFAULT gen_random_uuid(),
	vehicle_type      TEXT NOT NULL UNIQUE,
	base_price_per_km NUMERIC(10,2) NOT NULL CHECK (base_price_per_km >= 0),
	created_at        TIMESTAMPTZ NOT NULL DEFAULT now(),
	updated_at        TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE TABLE IF NOT EXISTS zone_multipliers (
	id         UUID PRIMARY KEY DEFAULT gen_random_uuid(),
	zone_id    UUID NOT NULL UNIQUE,
	multiplier NUMERIC(6,3) NOT NULL CHECK (multiplier > 0),
	created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
	updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE TABLE IF NOT EXISTS fixed_routes (
	id               UUID PRIMARY KEY DEFAULT gen_random_uuid(),
	origin_name      TEXT NOT NULL,
	destination_name TEXT NOT NULL,
	vehicle_type     TEXT NOT NULL,
	fixed_price      NUMERIC(10,2) NOT NULL CHECK (fixed_price >= 0),
	created_at       TIMESTAMPTZ NOT NULL DEFAULT now(),
	updated_at       TIMESTAMPTZ NOT NULL DEFAULT now(),
	UNIQUE (origin_name, destination_name, vehicle_type)
);

CREATE TABLE IF NOT EXISTS pricing_change_logs (
	id             UUID PRIMARY KEY DEFAULT gen_random_uuid(),
	changed_by     UUID NOT NULL,
	change_type    TEXT NOT NULL,
	previous_value JSONB NOT NULL,
	new_value      JSONB NOT NULL,
	notes          TEXT NOT NULL DEFAULT '',
	created_at     TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE TABLE IF NOT EXISTS activity_logs (
	id          UUID PRIMARY KEY DEFAULT gen_random_uuid(),
	entity_type TEXT NOT NULL,
	entity_id   UUID NOT NULL,
	actor_id    UUID NOT NULL,
	action      TEXT NOT NULL,
	details     JSONB NOT NULL DEFAULT '{}',
	created_at  TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE TABLE IF NOT EXISTS bookings (
	id               UUID PRIMARY KEY DEFAULT gen_random_uuid(),
	booking_number   TEXT NOT NULL UNIQUE,
	customer_id      UUID NOT NULL,
	driver_id        UUID,
	origin_name      TEXT NOT NULL,
	destination_name TEXT NOT NULL,
	vehicle_type     TEXT NOT NULL,
	status           TEXT NOT NULL DEFAULT 'REQUESTED',
	created_at       TIMESTAMPTZ NOT NULL DEFAULT now(),
	updated_at       TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE TABLE IF NOT EXISTS drivers (
	id                  UUID PRIMARY KEY DEFAULT gen_random_uuid(),
	full_name           TEXT NOT NULL,
	email               TEXT NOT NULL UNIQUE,
	phone               TEXT NOT NULL DEFAULT '',
	vehicle_type        TEXT NOT NULL,
	verification_status TEXT NOT NULL DEFAULT 'PENDING',
	created_at          TIMESTAMPTZ NOT NULL DEFAULT now(),
	updated_at          TIMESTAMPTZ NOT NULL DEFAULT now()
);
`

func (d *DB) migrate(ctx context.Context) error {
	_, err := d.pool.Exec(ctx, schema)
	return err
}
