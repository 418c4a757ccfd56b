package ports

import (
	"context"

	"transfer-admin/internal/admin-service/core/domain/dto"
	"transfer-admin/internal/admin-service/core/domain/model"

	"github.com/google/uuid"
)

type IPricingService interface {
	Quote(ctx context.Context, origin, destination, vehicleType string) (dto.PriceQuoteDto, error)
	ApplyUpdate(ctx context.Context, actor uuid.UUID, req dto.PricingUpdateRequestDto) (dto.PricingUpdateResponseDto, error)
	Tables(ctx context.Context) (dto.PricingTablesDto, error)
	RecentChanges(ctx context.Context, limit int) ([]model.PricingChangeLog, error)
}

// IActivityService records state transitions. Record is best-effort: it must
// never fail the operation that triggered it.
type IActivityService interface {
	Record(ctx context.Context, entityType model.EntityType, entityID, actorID uuid.UUID, action string, details map[string]any)
	Recent(ctx context.Context, limit int) ([]model.ActivityLog, error)
}

type IBookingsService interface {
	List(ctx context.Context, limit int) ([]model.Booking, error)
	UpdateStatus(ctx context.Context, id, actor uuid.UUID, req dto.BookingStatusUpdateDto) (model.Booking, error)
}

type IDriversService interface {
	List(ctx context.Context, limit int) ([]model.Driver, error)
	SetVerification(ctx context.Context, id, actor uuid.UUID, req dto.DriverVerificationDto) (model.Driver, error)
}
