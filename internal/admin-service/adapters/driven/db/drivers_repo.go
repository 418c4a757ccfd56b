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
)

type DriversRepo struct {
	db Querier
}

func NewDriversRepo(db Querier) ports.IDriversRepo {
	return &DriversRepo{db: db}
}

func (dr *DriversRepo) List(ctx context.Context, limit int) ([]model.Driver, error) {
	q := `
	SELECT
		id, full_name, email, phone, vehicle_type, verification_status, created_at, updated_at
	FROM
		drivers
	ORDER BY
		created_at DESC
	LIMIT $1
	`
	rows, err := dr.db.Query(ctx, q, limit)
	if err != nil {
		return nil, fmt.Errorf("list drivers: %w", err)
	}
	defer rows.Close()

	var out []model.Driver
	for rows.Next() {
		d, err := scanDriver(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	return out, rows.Err()
}

func (dr *DriversRepo) GetByID(ctx context.Context, id uuid.UUID) (model.Driver, error) {
	q := `
	SELECT
		id, full_name, email, phone, vehicle_type, verification_status, created_at, updated_at
	FROM
		drivers
	WHERE
		id = $1
	`
	return scanDriver(dr.db.QueryRow(ctx, q, id))
}

func (dr *DriversRepo) UpdateVerification(ctx context.Context, id uuid.UUID, status string) error {
	q := `UPDATE drivers SET verification_status = $1, updated_at = now() WHERE id = $2`

	tag, err := dr.db.Exec(ctx, q, status, id)
	if err != nil {
		return fmt.Errorf("update driver verification: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return myerrors.ErrNotFound
	}
	return nil
}

func scanDriver(row pgx.Row) (model.Driver, error) {
	var d model.Driver
	err := row.Scan(&d.ID, &d.FullName, &d.Email, &d.Phone, &d.VehicleType,
		&d.VerificationStatus, &d.CreatedAt, &d.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.Driver{}, myerrors.ErrNotFound
		}
		return model.Driver{}, fmt.Errorf("scan driver: %w", err)
	}
	return d, nil
}
