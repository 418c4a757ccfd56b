package handle

import (
	"net/http"

	"transfer-admin/internal/admin-service/adapters/driven/db"
	"transfer-admin/internal/admin-service/core/ports"
)

type HealthHandler struct {
	db *db.DB
	mb ports.IEventsBroker
}

func NewHealthHandler(database *db.DB, mb ports.IEventsBroker) *HealthHandler {
	return &HealthHandler{db: database, mb: mb}
}

func (hh *HealthHandler) Health() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		status := "ok"
		code := http.StatusOK

		dbAlive := hh.db.IsAlive(r.Context()) == nil
		mbAlive := hh.mb.IsAlive()
		if !dbAlive || !mbAlive {
			status = "degraded"
			code = http.StatusServiceUnavailable
		}

		jsonResponse(w, code, map[string]interface{}{
			"status":   status,
			"database": dbAlive,
			"broker":   mbAlive,
		})
	}
}
