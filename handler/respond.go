package handler

import (
	"encoding/json"
	"net/http"

	"github.com/HoneyKnight/foodgram-project-react/apperr"
	"github.com/HoneyKnight/foodgram-project-react/logger"

	"go.uber.org/zap"
)

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if v != nil {
		if err := json.NewEncoder(w).Encode(v); err != nil {
			logger.Error("encoding response", zap.Error(err))
		}
	}
}

// writeError maps the error taxonomy onto status codes. Conflicts come
// back as 400 like validation failures; the taxonomy stays distinct in
// the services, the wire folds them together.
func writeError(w http.ResponseWriter, err error) {
	switch {
	case apperr.IsValidation(err), apperr.IsConflict(err):
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
	case apperr.IsNotFound(err):
		writeJSON(w, http.StatusNotFound, map[string]string{"error": err.Error()})
	case apperr.IsAuthorization(err):
		writeJSON(w, http.StatusForbidden, map[string]string{"error": err.Error()})
	default:
		logger.Error("internal error", zap.Error(err))
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal server error"})
	}
}
