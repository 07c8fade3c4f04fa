package handlers

import (
	"encoding/json"
	"net/http"

	"go.uber.org/zap"
)

// BaseHandler provides the JSON responders shared by all handlers
type BaseHandler struct {
	Logger *zap.Logger
}

// RespondJSON sends data as a JSON response. The body is marshalled
// before the status line is written, so an encoding failure produces a
// clean 500 instead of a truncated success response.
func (h *BaseHandler) RespondJSON(w http.ResponseWriter, status int, data any) {
	body, err := json.Marshal(data)
	if err != nil {
		h.Logger.Error("failed to encode JSON response", zap.Error(err))
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte(`{"error":"internal server error"}`))
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if _, err := w.Write(body); err != nil {
		h.Logger.Error("failed to write JSON response", zap.Error(err))
	}
}

// RespondError sends an error message in the standard error body shape
func (h *BaseHandler) RespondError(w http.ResponseWriter, status int, message string) {
	h.RespondJSON(w, status, map[string]string{"error": message})
}
