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

type BookingsRepo struct {
	db Querier
}

func NewBookingsRepo(db Querier) ports.IBookingsRepo {
	return &BookingsRepo{db: db}
}

func (br *BookingsRepo) List(ctx context.Context, limit int) ([]model.Booking, error) {
	q := `
	SELECT
		id, booking_number, customer_id, driver_id, origin_name, destination_name, vehicle_type, status, created_at, updated_at
	FROM
		bookings
	ORDER BY
		created_at DESC
	LIMIT $1
	`
	rows, err := br.db.Query(ctx, q, limit)
	if err != nil {
		return nil, fmt.Errorf("list bookings: %w", err)
	}
	defer rows.Close()

	var out []model.Booking
	for rows.Next() {
		b, err := scanBooking(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, b)
	}
	return out, rows.Err()
}

func (br *BookingsRepo) GetByID(ctx context.Context, id uuid.UUID) (model.Booking, error) {
	q := `
	SELECT
		id, booking_number, customer_id, driver_id, origin_name, destination_name, vehicle_type, status, created_at, updated_at
	FROM
		bookings
	WHERE
		id = $1
	`
	return scanBooking(br.db.QueryRow(ctx, q, id))
}

func (br *BookingsRepo) UpdateStatus(ctx context.Context, id uuid.UUID, status string) error {
	q := `UPDATE bookings SET status = $1, updated_at = now() WHERE id = $2`

	tag, err := br.db.Exec(ctx, q, status, id)
	if err != nil {
		return fmt.Errorf("update booking status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return myerrors.ErrNotFound
	}
	return nil
}

func scanBooking(row pgx.Row) (model.Booking, error) {
	var b model.Booking
	err := row.Scan(&b.ID, &b.BookingNumber, &b.CustomerID, &b.DriverID, &b.OriginName,
		&b.Destination, &b.VehicleType, &b.Status, &b.CreatedAt, &b.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.Booking{}, myerrors.ErrNotFound
		}
		return model.Booking{}, fmt.Errorf("scan booking: %w", err)
	}
	return b, nil
}
