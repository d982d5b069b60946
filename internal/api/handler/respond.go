package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/Priiiyaa/Gratify/internal/platform/metrics"
	"github.com/Priiiyaa/Gratify/internal/usecase"
	"go.uber.org/zap"
)

func respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if payload != nil {
		json.NewEncoder(w).Encode(payload)
	}
}

func respondMessage(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{"message": message})
}

// handleError maps the use case error taxonomy onto HTTP statuses and records
// the failure. Internal errors are logged with their cause but never leak it
// to the client.
func handleError(w http.ResponseWriter, logger *zap.Logger, mm *metrics.MetricsManager, handlerName string, err error) {
	var status int
	var errType string
	switch {
	case errors.Is(err, usecase.ErrValidation):
		status = http.StatusBadRequest
		errType = "validation"
	case errors.Is(err, usecase.ErrNotFound):
		status = http.StatusNotFound
		errType = "not_found"
	default:
		status = http.StatusInternalServerError
		errType = "internal"
	}

	if mm != nil {
		mm.APIErrorsTotal.WithLabelValues(handlerName, errType).Inc()
	}
	if status == http.StatusInternalServerError {
		logger.Error("Request failed", zap.String("handler", handlerName), zap.Error(err))
		respondMessage(w, status, "Internal server error")
		return
	}
	respondMessage(w, status, err.Error())
}

func decodeBody(w http.ResponseWriter, r *http.Request, dst interface{}) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		respondMessage(w, http.StatusBadRequest, "Invalid request body")
		return false
	}
	return true
}
