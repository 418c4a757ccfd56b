package services

import (
	"context"
	"errors"
	"fmt"
	"slices"

	"transfer-admin/internal/admin-service/core/domain/dto"
	"transfer-admin/internal/admin-service/core/domain/model"
	"transfer-admin/internal/admin-service/core/myerrors"
	"transfer-admin/internal/admin-service/core/ports"
	"transfer-admin/internal/mylogger"

	"github.com/google/uuid"
)

type BookingsService struct {
	mylog    mylogger.Logger
	repo     ports.IBookingsRepo
	activity ports.IActivityService
}

func NewBookingsService(log mylogger.Logger, repo ports.IBookingsRepo, activity ports.IActivityService) ports.IBookingsService {
	return &BookingsService{
		mylog:    log,
		repo:     repo,
		activity: activity,
	}
}

func (bs *BookingsService) List(ctx context.Context, limit int) ([]model.Booking, error) {
	return bs.repo.List(ctx, limit)
}

// UpdateStatus applies one validated transition and records it. The activity
// record is best-effort; the transition itself is the operation.
func (bs *BookingsService) UpdateStatus(ctx context.Context, id, actor uuid.UUID, req dto.BookingStatusUpdateDto) (model.Booking, error) {
	log := bs.mylog.Action("UpdateBookingStatus")

	if req.Status == "" {
		return model.Booking{}, fmt.Errorf("status is required: %w", myerrors.ErrValidation)
	}

	booking, err := bs.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, myerrors.ErrNotFound) {
			return model.Booking{}, fmt.Errorf("booking %s: %w", id, myerrors.ErrNotFound)
		}
		log.Error("fetch booking failed", err, "booking_id", id.String())
		return model.Booking{}, err
	}

	allowed := model.BookingTransitions[booking.Status]
	if !slices.Contains(allowed, req.Status) {
		return model.Booking{}, fmt.Errorf("cannot move booking from %s to %s: %w", booking.Status, req.Status, myerrors.ErrValidation)
	}

	previous := booking.Status
	if err := bs.repo.UpdateStatus(ctx, id, req.Status); err != nil {
		log.Error("update booking status failed", err, "booking_id", id.String())
		return model.Booking{}, err
	}
	booking.Status = req.Status

	bs.activity.Record(ctx, model.EntityBooking, id, actor, "status_changed", map[string]any{
		"from":   previous,
		"to":     req.Status,
		"reason": req.Reason,
	})

	return booking, nil
}
