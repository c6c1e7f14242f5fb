package api

import (
	"encoding/json"
	"log"
	"net/http"

	"bukutamu/internal/apperr"
)

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// writeError menerjemahkan jenis error bisnis ke kode HTTP. Detail error
// internal hanya masuk log, tidak pernah bocor ke klien.
func writeError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	switch apperr.KindOf(err) {
	case apperr.KindInvalidInput:
		status = http.StatusBadRequest
	case apperr.KindNotFound:
		status = http.StatusNotFound
	case apperr.KindUnauthorized:
		status = http.StatusUnauthorized
	case apperr.KindForbidden:
		status = http.StatusForbidden
	case apperr.KindConflict:
		status = http.StatusConflict
	case apperr.KindInternal:
		log.Printf("❌ Error internal: %v", err)
	}

	message := err.Error()
	if status == http.StatusInternalServerError {
		message = "terjadi kesalahan internal"
	}

	writeJSON(w, status, map[string]string{"error": message})
}

func decodeBody(r *http.Request, v interface{}) error {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return apperr.InvalidInput("body request tidak valid")
	}
	return nil
}
