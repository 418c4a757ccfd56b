package ports

import (
	"context"

	"transfer-admin/internal/admin-service/core/domain/model"

	"github.com/google/uuid"
)

type IPricingRepo interface {
	// GetFixedRoute matches the logical composite key exactly; myerrors.ErrNotFound when absent.
	GetFixedRoute(ctx context.Context, origin, destination, vehicleType string) (model.FixedRoute, error)
	GetVehicleBasePrice(ctx context.Context, vehicleType string) (model.VehicleBasePrice, error)

	GetVehicleBasePriceByID(ctx context.Context, id uuid.UUID) (model.VehicleBasePrice, error)
	GetZoneMultiplierByID(ctx context.Context, id uuid.UUID) (model.ZoneMultiplier, error)
	GetFixedRouteByID(ctx context.Context, id uuid.UUID) (model.FixedRoute, error)

	InsertVehicleBasePrice(ctx context.Context, m model.VehicleBasePrice) (uuid.UUID, error)
	InsertZoneMultiplier(ctx context.Context, m model.ZoneMultiplier) (uuid.UUID, error)
	InsertFixedRoute(ctx context.Context, m model.FixedRoute) (uuid.UUID, error)

	UpdateVehicleBasePrice(ctx context.Context, m model.VehicleBasePrice) error
	UpdateZoneMultiplier(ctx context.Context, m model.ZoneMultiplier) error
	UpdateFixedRoute(ctx context.Context, m model.FixedRoute) error

	ListVehicleBasePrices(ctx context.Context) ([]model.VehicleBasePrice, error)
	ListZoneMultipliers(ctx context.Context) ([]model.ZoneMultiplier, error)
	ListFixedRoutes(ctx context.Context) ([]model.FixedRoute, error)
}

type IChangeLogRepo interface {
	Append(ctx context.Context, entry model.PricingChangeLog) error
	ListRecent(ctx context.Context, limit int) ([]model.PricingChangeLog, error)
}

type IActivityRepo interface {
	Append(ctx context.Context, rec model.ActivityLog) error
	ListRecent(ctx context.Context, limit int) ([]model.ActivityLog, error)
}

type IBookingsRepo interface {
	List(ctx context.Context, limit int) ([]model.Booking, error)
	GetByID(ctx context.Context, id uuid.UUID) (model.Booking, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status string) error
}

type IDriversRepo interface {
	List(ctx context.Context, limit int) ([]model.Driver, error)
	GetByID(ctx context.Context, id uuid.UUID) (model.Driver, error)
	UpdateVerification(ctx context.Context, id uuid.UUID, status string) error
}
