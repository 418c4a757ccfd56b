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

const defaultListLimit = 100

type BookingsHandler struct {
	bookingsService ports.IBookingsService
	log             mylogger.Logger
}

func NewBookingsHandler(bs ports.IBookingsService, log mylogger.Logger) *BookingsHandler {
	return &BookingsHandler{
		bookingsService: bs,
		log:             log,
	}
}

func (bh *BookingsHandler) List() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), WaitTime*time.Second)
		defer cancel()

		res, err := bh.bookingsService.List(ctx, queryLimit(r, defaultListLimit))
		if err != nil {
			serviceError(w, err)
			return
		}

		jsonResponse(w, http.StatusOK, res)
	}
}

func (bh *BookingsHandler) UpdateStatus() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		actor, err := actorID(r)
		if err != nil {
			JsonError(w, http.StatusUnauthorized, err)
			return
		}

		bookingID, err := uuid.Parse(r.PathValue("booking_id"))
		if err != nil {
			JsonError(w, http.StatusBadRequest, fmt.Errorf("malformed booking id: %w", err))
			return
		}

		req := dto.BookingStatusUpdateDto{}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			JsonError(w, http.StatusBadRequest, err)
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), WaitTime*time.Second)
		defer cancel()

		res, err := bh.bookingsService.UpdateStatus(ctx, bookingID, actor, req)
		if err != nil {
			serviceError(w, err)
			return
		}

		jsonResponse(w, http.StatusOK, res)
	}
}
