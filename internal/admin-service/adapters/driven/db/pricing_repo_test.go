package db

import (
	"context"
	"testing"
	"time"

	"transfer-admin/internal/admin-service/core/domain/model"
	"transfer-admin/internal/admin-service/core/myerrors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newPricingMock(t *testing.T) (pgxmock.PgxPoolIface, *PricingRepo) {
	t.Helper()
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	t.Cleanup(mock.Close)
	return mock, NewPricingRepo(mock).(*PricingRepo)
}

func TestGetFixedRoute_Found(t *testing.T) {
	mock, repo := newPricingMock(t)

	id := uuid.New()
	now := time.Now()
	mock.ExpectQuery("SELECT(.+)FROM(.+)fixed_routes(.+)origin_name = \\$1").
		WithArgs("Airport", "City Center", "SEDAN").
		WillReturnRows(pgxmock.NewRows([]string{
			"id", "origin_name", "destination_name", "vehicle_type", "fixed_price", "created_at", "updated_at",
		}).AddRow(id, "Airport", "City Center", "SEDAN", "35.00", now, now))

	got, err := repo.GetFixedRoute(context.Background(), "Airport", "City Center", "SEDAN")
	require.NoError(t, err)
	assert.Equal(t, id, got.ID)
	assert.True(t, got.FixedPrice.Equal(decimal.RequireFromString("35")))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetFixedRoute_Missing(t *testing.T) {
	mock, repo := newPricingMock(t)

	mock.ExpectQuery("SELECT(.+)FROM(.+)fixed_routes").
		WithArgs("Nowhere", "City Center", "SEDAN").
		WillReturnError(pgx.ErrNoRows)

	_, err := repo.GetFixedRoute(context.Background(), "Nowhere", "City Center", "SEDAN")
	assert.ErrorIs(t, err, myerrors.ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetVehicleBasePrice_DecimalScan(t *testing.T) {
	mock, repo := newPricingMock(t)

	id := uuid.New()
	now := time.Now()
	mock.ExpectQuery("SELECT(.+)FROM(.+)vehicle_base_prices(.+)vehicle_type = \\$1").
		WithArgs("VAN").
		WillReturnRows(pgxmock.NewRows([]string{
			"id", "vehicle_type", "base_price_per_km", "created_at", "updated_at",
		}).AddRow(id, "VAN", "2.50", now, now))

	got, err := repo.GetVehicleBasePrice(context.Background(), "VAN")
	require.NoError(t, err)
	assert.True(t, got.BasePricePerKm.Equal(decimal.RequireFromString("2.5")))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestInsertVehicleBasePrice_ReturnsID(t *testing.T) {
	mock, repo := newPricingMock(t)

	id := uuid.New()
	mock.ExpectQuery("INSERT INTO vehicle_base_prices").
		WithArgs("SEDAN", "2").
		WillReturnRows(pgxmock.NewRows([]string{"id"}).AddRow(id))

	got, err := repo.InsertVehicleBasePrice(context.Background(), model.VehicleBasePrice{
		VehicleType:    "SEDAN",
		BasePricePerKm: decimal.NewFromInt(2),
	})
	require.NoError(t, err)
	assert.Equal(t, id, got)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateZoneMultiplier_MissingRow(t *testing.T) {
	mock, repo := newPricingMock(t)

	rowID := uuid.New()
	zoneID := uuid.New()
	mock.ExpectExec("UPDATE zone_multipliers").
		WithArgs(zoneID, "1.2", rowID).
		WillReturnResult(pgxmock.NewResult("UPDATE", 0))

	err := repo.UpdateZoneMultiplier(context.Background(), model.ZoneMultiplier{
		ID:         rowID,
		ZoneID:     zoneID,
		Multiplier: decimal.RequireFromString("1.2"),
	})
	assert.ErrorIs(t, err, myerrors.ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestListFixedRoutes(t *testing.T) {
	mock, repo := newPricingMock(t)

	now := time.Now()
	mock.ExpectQuery("SELECT(.+)FROM(.+)fixed_routes(.+)ORDER BY").
		WillReturnRows(pgxmock.NewRows([]string{
			"id", "origin_name", "destination_name", "vehicle_type", "fixed_price", "created_at", "updated_at",
		}).
			AddRow(uuid.New(), "Airport", "City Center", "SEDAN", "35.00", now, now).
			AddRow(uuid.New(), "Airport", "Harbor", "VAN", "50.00", now, now))

	got, err := repo.ListFixedRoutes(context.Background())
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "Harbor", got[1].DestinationName)
	assert.NoError(t, mock.ExpectationsWereMet())
}
