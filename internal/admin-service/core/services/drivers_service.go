package services

import (
	"context"
	"errors"
	"fmt"

	"transfer-admin/internal/admin-service/core/domain/dto"
	"transfer-admin/internal/admin-service/core/domain/model"
	"transfer-admin/internal/admin-service/core/myerrors"
	"transfer-admin/internal/admin-service/core/ports"
	"transfer-admin/internal/mylogger"

	"github.com/google/uuid"
)

type DriversService struct {
	mylog    mylogger.Logger
	repo     ports.IDriversRepo
	activity ports.IActivityService
}

func NewDriversService(log mylogger.Logger, repo ports.IDriversRepo, activity ports.IActivityService) ports.IDriversService {
	return &DriversService{
		mylog:    log,
		repo:     repo,
		activity: activity,
	}
}

func (ds *DriversService) List(ctx context.Context, limit int) ([]model.Driver, error) {
	return ds.repo.List(ctx, limit)
}

// SetVerification resolves a pending driver application. Only PENDING drivers
// can be moved, and only to APPROVED or REJECTED.
func (ds *DriversService) SetVerification(ctx context.Context, id, actor uuid.UUID, req dto.DriverVerificationDto) (model.Driver, error) {
	log := ds.mylog.Action("SetDriverVerification")

	if req.Status != model.VerificationApproved && req.Status != model.VerificationRejected {
		return model.Driver{}, fmt.Errorf("verification status must be %s or %s: %w",
			model.VerificationApproved, model.VerificationRejected, myerrors.ErrValidation)
	}

	driver, err := ds.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, myerrors.ErrNotFound) {
			return model.Driver{}, fmt.Errorf("driver %s: %w", id, myerrors.ErrNotFound)
		}
		log.Error("fetch driver failed", err, "driver_id", id.String())
		return model.Driver{}, err
	}

	if driver.VerificationStatus != model.VerificationPending {
		return model.Driver{}, fmt.Errorf("driver %s already resolved to %s: %w", id, driver.VerificationStatus, myerrors.ErrValidation)
	}

	if err := ds.repo.UpdateVerification(ctx, id, req.Status); err != nil {
		log.Error("update driver verification failed", err, "driver_id", id.String())
		return model.Driver{}, err
	}
	driver.VerificationStatus = req.Status

	ds.activity.Record(ctx, model.EntityDriver, id, actor, "verification_resolved", map[string]any{
		"from":  model.VerificationPending,
		"to":    req.Status,
		"notes": req.Notes,
	})

	return driver, nil
}
