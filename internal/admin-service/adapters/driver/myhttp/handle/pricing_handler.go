package handle

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"transfer-admin/internal/admin-service/core/domain/dto"
	"transfer-admin/internal/admin-service/core/ports"
	"transfer-admin/internal/mylogger"

	"github.com/google/uuid"
)

const defaultChangesLimit = 50

type PricingHandler struct {
	pricingService ports.IPricingService
	log            mylogger.Logger
}

func NewPricingHandler(ps ports.IPricingService, log mylogger.Logger) *PricingHandler {
	return &PricingHandler{
		pricingService: ps,
		log:            log,
	}
}

func (ph *PricingHandler) Quote() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		req := dto.QuoteRequestDto{}

		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			JsonError(w, http.StatusBadRequest, err)
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), WaitTime*time.Second)
		defer cancel()

		res, err := ph.pricingService.Quote(ctx, req.Origin, req.Destination, req.VehicleType)
		if err != nil {
			serviceError(w, err)
			return
		}

		jsonResponse(w, http.StatusOK, res)
	}
}

func (ph *PricingHandler) Update() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		actor, err := actorID(r)
		if err != nil {
			JsonError(w, http.StatusUnauthorized, err)
			return
		}

		req := dto.PricingUpdateRequestDto{}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			JsonError(w, http.StatusBadRequest, err)
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), WaitTime*time.Second)
		defer cancel()

		res, err := ph.pricingService.ApplyUpdate(ctx, actor, req)
		if err != nil {
			serviceError(w, err)
			return
		}

		jsonResponse(w, http.StatusOK, res)
	}
}

func (ph *PricingHandler) Tables() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), WaitTime*time.Second)
		defer cancel()

		res, err := ph.pricingService.Tables(ctx)
		if err != nil {
			serviceError(w, err)
			return
		}

		jsonResponse(w, http.StatusOK, res)
	}
}

func (ph *PricingHandler) Changes() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		limit := queryLimit(r, defaultChangesLimit)

		ctx, cancel := context.WithTimeout(r.Context(), WaitTime*time.Second)
		defer cancel()

		res, err := ph.pricingService.RecentChanges(ctx, limit)
		if err != nil {
			serviceError(w, err)
			return
		}

		jsonResponse(w, http.StatusOK, res)
	}
}

// actorID reads the authenticated user id the middleware stamped on the request.
func actorID(r *http.Request) (uuid.UUID, error) {
	raw := r.Header.Get("X-UserId")
	if raw == "" {
		return uuid.Nil, fmt.Errorf("missing authenticated user id")
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, fmt.Errorf("malformed user id: %w", err)
	}
	return id, nil
}

func queryLimit(r *http.Request, def int) int {
	raw := r.URL.Query().Get("limit")
	if raw == "" {
		return def
	}
	limit, err := strconv.Atoi(raw)
	if err != nil || limit <= 0 || limit > 500 {
		return def
	}
	return limit
}
