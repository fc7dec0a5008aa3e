package handler

import (
	"encoding/json"
	"net/http"

	"go.uber.org/zap"
)

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		zap.L().Warn("failed to encode JSON response", zap.Error(err))
	}
}

func writeInternalError(w http.ResponseWriter, logger *zap.Logger, msg string, err error, fields ...zap.Field) {
	logger.Error(msg, append(fields, zap.Error(err))...)
	writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal server error"})
}
