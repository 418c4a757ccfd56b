package handle

import (
	"encoding/json"
	"errors"
	"net/http"

	"transfer-admin/internal/admin-service/core/myerrors"
)

// WaitTime bounds every store call made on behalf of a request, in seconds.
const WaitTime = 10

// jsonResponse writes the given data as a JSON-encoded HTTP response with status code 200 OK.
func jsonResponse(w http.ResponseWriter, code int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if data == nil {
		return
	}
	_ = json.NewEncoder(w).Encode(data)
}

// JsonError writes an error response as JSON with the specified HTTP status code.
func JsonError(w http.ResponseWriter, code int, err error) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if err == nil {
		return
	}
	_ = json.NewEncoder(w).Encode(map[string]interface{}{
		"error": err.Error(),
		"code":  code,
	})
}

// serviceError maps core errors to HTTP statuses. Unrecognized errors come
// back as a generic 500 so internals never leak to the caller.
func serviceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, myerrors.ErrValidation):
		JsonError(w, http.StatusBadRequest, err)
	case errors.Is(err, myerrors.ErrUnauthorized):
		JsonError(w, http.StatusUnauthorized, err)
	case errors.Is(err, myerrors.ErrForbidden):
		JsonError(w, http.StatusForbidden, err)
	case errors.Is(err, myerrors.ErrNotFound):
		JsonError(w, http.StatusNotFound, err)
	default:
		JsonError(w, http.StatusInternalServerError, errors.New("internal server error"))
	}
}
