package handle

import (
	"context"
	"net/http"
	"time"

	"transfer-admin/internal/admin-service/core/ports"
	"transfer-admin/internal/mylogger"
)

type ActivityHandler struct {
	activityService ports.IActivityService
	log             mylogger.Logger
}

func NewActivityHandler(as ports.IActivityService, log mylogger.Logger) *ActivityHandler {
	return &ActivityHandler{
		activityService: as,
		log:             log,
	}
}

func (ah *ActivityHandler) Recent() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), WaitTime*time.Second)
		defer cancel()

		res, err := ah.activityService.Recent(ctx, queryLimit(r, defaultListLimit))
		if err != nil {
			serviceError(w, err)
			return
		}

		jsonResponse(w, http.StatusOK, res)
	}
}
