package db

import (
	"context"
	"errors"
	"fmt"

	"transfer-admin/internal/admin-service/core/domain/model"
	"transfer-admin/internal/admin-service/core/myerrors"
	"transfer-admin/internal/admin-service/core/ports"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
)

type PricingRepo struct {
	db Querier
}

func NewPricingRepo(db Querier) ports.IPricingRepo {
	return &PricingRepo{db: db}
}

func (pr *PricingRepo) GetFixedRoute(ctx context.Context, origin, destination, vehicleType string) (model.FixedRoute, error) {
	q := `
	SELECT
		id, origin_name, destination_name, vehicle_type, fixed_price::text, created_at, updated_at
	FROM
		fixed_routes
	WHERE
		origin_name = $1 AND destination_name = $2 AND vehicle_type = $3
	`
	return scanFixedRoute(pr.db.QueryRow(ctx, q, origin, destination, vehicleType))
}

func (pr *PricingRepo) GetVehicleBasePrice(ctx context.Context, vehicleType string) (model.VehicleBasePrice, error) {
	q := `
	SELECT
		id, vehicle_type, base_price_per_km::text, created_at, updated_at
	FROM
		vehicle_base_prices
	WHERE
		vehicle_type = $1
	`
	return scanVehicleBasePrice(pr.db.QueryRow(ctx, q, vehicleType))
}

func (pr *PricingRepo) GetVehicleBasePriceByID(ctx context.Context, id uuid.UUID) (model.VehicleBasePrice, error) {
	q := `
	SELECT
		id, vehicle_type, base_price_per_km::text, created_at, updated_at
	FROM
		vehicle_base_prices
	WHERE
		id = $1
	`
	return scanVehicleBasePrice(pr.db.QueryRow(ctx, q, id))
}

func (pr *PricingRepo) GetZoneMultiplierByID(ctx context.Context, id uuid.UUID) (model.ZoneMultiplier, error) {
	q := `
	SELECT
		id, zone_id, multiplier::text, created_at, updated_at
	FROM
		zone_multipliers
	WHERE
		id = $1
	`
	return scanZoneMultiplier(pr.db.QueryRow(ctx, q, id))
}

func (pr *PricingRepo) GetFixedRouteByID(ctx context.Context, id uuid.UUID) (model.FixedRoute, error) {
	q := `
	SELECT
		id, origin_name, destination_name, vehicle_type, fixed_price::text, created_at, updated_at
	FROM
		fixed_routes
	WHERE
		id = $1
	`
	return scanFixedRoute(pr.db.QueryRow(ctx, q, id))
}

func (pr *PricingRepo) InsertVehicleBasePrice(ctx context.Context, m model.VehicleBasePrice) (uuid.UUID, error) {
	q := `INSERT INTO vehicle_base_prices (vehicle_type, base_price_per_km) VALUES ($1, $2) RETURNING id`

	var id uuid.UUID
	if err := pr.db.QueryRow(ctx, q, m.VehicleType, m.BasePricePerKm.String()).Scan(&id); err != nil {
		return uuid.Nil, fmt.Errorf("insert vehicle base price: %w", err)
	}
	return id, nil
}

func (pr *PricingRepo) InsertZoneMultiplier(ctx context.Context, m model.ZoneMultiplier) (uuid.UUID, error) {
	q := `INSERT INTO zone_multipliers (zone_id, multiplier) VALUES ($1, $2) RETURNING id`

	var id uuid.UUID
	if err := pr.db.QueryRow(ctx, q, m.ZoneID, m.Multiplier.String()).Scan(&id); err != nil {
		return uuid.Nil, fmt.Errorf("insert zone multiplier: %w", err)
	}
	return id, nil
}

func (pr *PricingRepo) InsertFixedRoute(ctx context.Context, m model.FixedRoute) (uuid.UUID, error) {
	q := `
	INSERT INTO fixed_routes (origin_name, destination_name, vehicle_type, fixed_price)
	VALUES ($1, $2, $3, $4) RETURNING id
	`

	var id uuid.UUID
	if err := pr.db.QueryRow(ctx, q, m.OriginName, m.DestinationName, m.VehicleType, m.FixedPrice.String()).Scan(&id); err != nil {
		return uuid.Nil, fmt.Errorf("insert fixed route: %w", err)
	}
	return id, nil
}

func (pr *PricingRepo) UpdateVehicleBasePrice(ctx context.Context, m model.VehicleBasePrice) error {
	q := `UPDATE vehicle_base_prices SET vehicle_type = $1, base_price_per_km = $2, updated_at = now() WHERE id = $3`

	tag, err := pr.db.Exec(ctx, q, m.VehicleType, m.BasePricePerKm.String(), m.ID)
	if err != nil {
		return fmt.Errorf("update vehicle base price: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return myerrors.ErrNotFound
	}
	return nil
}

func (pr *PricingRepo) UpdateZoneMultiplier(ctx context.Context, m model.ZoneMultiplier) error {
	q := `UPDATE zone_multipliers SET zone_id = $1, multiplier = $2, updated_at = now() WHERE id = $3`

	tag, err := pr.db.Exec(ctx, q, m.ZoneID, m.Multiplier.String(), m.ID)
	if err != nil {
		return fmt.Errorf("update zone multiplier: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return myerrors.ErrNotFound
	}
	return nil
}

func (pr *PricingRepo) UpdateFixedRoute(ctx context.Context, m model.FixedRoute) error {
	q := `
	UPDATE fixed_routes
	SET origin_name = $1, destination_name = $2, vehicle_type = $3, fixed_price = $4, updated_at = now()
	WHERE id = $5
	`

	tag, err := pr.db.Exec(ctx, q, m.OriginName, m.DestinationName, m.VehicleType, m.FixedPrice.String(), m.ID)
	if err != nil {
		return fmt.Errorf("update fixed route: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return myerrors.ErrNotFound
	}
	return nil
}

func (pr *PricingRepo) ListVehicleBasePrices(ctx context.Context) ([]model.VehicleBasePrice, error) {
	q := `
	SELECT
		id, vehicle_type, base_price_per_km::text, created_at, updated_at
	FROM
		vehicle_base_prices
	ORDER BY
		vehicle_type
	`
	rows, err := pr.db.Query(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("list vehicle base prices: %w", err)
	}
	defer rows.Close()

	var out []model.VehicleBasePrice
	for rows.Next() {
		m, err := scanVehicleBasePrice(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	return out, rows.Err()
}

func (pr *PricingRepo) ListZoneMultipliers(ctx context.Context) ([]model.ZoneMultiplier, error) {
	q := `
	SELECT
		id, zone_id, multiplier::text, created_at, updated_at
	FROM
		zone_multipliers
	ORDER BY
		created_at
	`
	rows, err := pr.db.Query(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("list zone multipliers: %w", err)
	}
	defer rows.Close()

	var out []model.ZoneMultiplier
	for rows.Next() {
		m, err := scanZoneMultiplier(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	return out, rows.Err()
}

func (pr *PricingRepo) ListFixedRoutes(ctx context.Context) ([]model.FixedRoute, error) {
	q := `
	SELECT
		id, origin_name, destination_name, vehicle_type, fixed_price::text, created_at, updated_at
	FROM
		fixed_routes
	ORDER BY
		origin_name, destination_name
	`
	rows, err := pr.db.Query(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("list fixed routes: %w", err)
	}
	defer rows.Close()

	var out []model.FixedRoute
	for rows.Next() {
		m, err := scanFixedRoute(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	return out, rows.Err()
}

func scanVehicleBasePrice(row pgx.Row) (model.VehicleBasePrice, error) {
	var (
		m    model.VehicleBasePrice
		rate string
	)
	if err := row.Scan(&m.ID, &m.VehicleType, &rate, &m.CreatedAt, &m.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.VehicleBasePrice{}, myerrors.ErrNotFound
		}
		return model.VehicleBasePrice{}, fmt.Errorf("scan vehicle base price: %w", err)
	}

	var err error
	m.BasePricePerKm, err = decimal.NewFromString(rate)
	if err != nil {
		return model.VehicleBasePrice{}, fmt.Errorf("parse base_price_per_km %q: %w", rate, err)
	}
	return m, nil
}

func scanZoneMultiplier(row pgx.Row) (model.ZoneMultiplier, error) {
	var (
		m          model.ZoneMultiplier
		multiplier string
	)
	if err := row.Scan(&m.ID, &m.ZoneID, &multiplier, &m.CreatedAt, &m.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.ZoneMultiplier{}, myerrors.ErrNotFound
		}
		return model.ZoneMultiplier{}, fmt.Errorf("scan zone multiplier: %w", err)
	}

	var err error
	m.Multiplier, err = decimal.NewFromString(multiplier)
	if err != nil {
		return model.ZoneMultiplier{}, fmt.Errorf("parse multiplier %q: %w", multiplier, err)
	}
	return m, nil
}

func scanFixedRoute(row pgx.Row) (model.FixedRoute, error) {
	var (
		m     model.FixedRoute
		price string
	)
	if err := row.Scan(&m.ID, &m.OriginName, &m.DestinationName, &m.VehicleType, &price, &m.CreatedAt, &m.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.FixedRoute{}, myerrors.ErrNotFound
		}
		return model.FixedRoute{}, fmt.Errorf("scan fixed route: %w", err)
	}

	var err error
	m.FixedPrice, err = decimal.NewFromString(price)
	if err != nil {
		return model.FixedRoute{}, fmt.Errorf("parse fixed_price %q: %w", price, err)
	}
	return m, nil
}
