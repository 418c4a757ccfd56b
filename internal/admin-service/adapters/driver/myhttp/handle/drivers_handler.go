package handle

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"transfer-admin/internal/admin-service/core/domain/dto"
	"transfer-admin/internal/admin-service/core/ports"
	"transfer-admin/internal/mylogger"

	"github.com/google/uuid"
)

type DriversHandler struct {
	driversService ports.IDriversService
	log            mylogger.Logger
}

func NewDriversHandler(ds ports.IDriversService, log mylogger.Logger) *DriversHandler {
	return &DriversHandler{
		driversService: ds,
		log:            log,
	}
}

func (dh *DriversHandler) List() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), WaitTime*time.Second)
		defer cancel()

		res, err := dh.driversService.List(ctx, queryLimit(r, defaultListLimit))
		if err != nil {
			serviceError(w, err)
			return
		}

		jsonResponse(w, http.StatusOK, res)
	}
}

func (dh *DriversHandler) SetVerification() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		actor, err := actorID(r)
		if err != nil {
			JsonError(w, http.StatusUnauthorized, err)
			return
		}

		driverID, err := uuid.Parse(r.PathValue("driver_id"))
		if err != nil {
			JsonError(w, http.StatusBadRequest, fmt.Errorf("malformed driver id: %w", err))
			return
		}

		req := dto.DriverVerificationDto{}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			JsonError(w, http.StatusBadRequest, err)
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), WaitTime*time.Second)
		defer cancel()

		res, err := dh.driversService.SetVerification(ctx, driverID, actor, req)
		if err != nil {
			serviceError(w, err)
			return
		}

		jsonResponse(w, http.StatusOK, res)
	}
}
