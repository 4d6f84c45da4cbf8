package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	"github.com/hairizuanbinnoorazman/script-tracker/logger"
)

// Response is the envelope every API reply uses.
type Response struct {
	Success       bool        `json:"success"`
	Data          interface{} `json:"data,omitempty"`
	Error         string      `json:"error,omitempty"`
	Message       string      `json:"message,omitempty"`
	Count         *int        `json:"count,omitempty"`
	ImportedCount *int        `json:"imported_count,omitempty"`
	Errors        []string    `json:"errors,omitempty"`
	ExportedAt    string      `json:"exported_at,omitempty"`
}

func intPtr(v int) *int {
	return &v
}

// respondJSON writes a JSON response with the given status code.
func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

// respondData writes a successful envelope carrying data.
func respondData(w http.ResponseWriter, status int, data interface{}, message string) {
	respondJSON(w, status, Response{Success: true, Data: data, Message: message})
}

// respondError writes a failed envelope with the given status code.
func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, Response{Success: false, Error: message})
}

// parseJSON parses JSON from the request body into the given destination.
func parseJSON(r *http.Request, dest interface{}, log logger.Logger) error {
	if err := json.NewDecoder(r.Body).Decode(dest); err != nil {
		log.Warn(r.Context(), "failed to parse JSON", map[string]interface{}{
			"error": err.Error(),
			"path":  r.URL.Path,
		})
		return err
	}
	return nil
}

// parseIDOrRespond parses the numeric id path parameter. On failure the
// error response has already been sent.
func parseIDOrRespond(w http.ResponseWriter, r *http.Request) (uint, bool) {
	id, err := strconv.ParseUint(mux.Vars(r)["id"], 10, 64)
	if err != nil || id == 0 {
		respondError(w, http.StatusBadRequest, "ID de script inválido")
		return 0, false
	}
	return uint(id), true
}
