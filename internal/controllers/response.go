package controllers

import (
	"errors"
	"net/http"

	json "github.com/goccy/go-json"

	"fitscore/internal/providers"
	"fitscore/internal/services"
)

const maxRequestBodySize = 1 << 20 // 1 MB

// decodeBody reads a JSON payload into dst. It answers 400 itself and
// reports false when the body is unusable.
func decodeBody(w http.ResponseWriter, r *http.Request, dst any) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxRequestBodySize)
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		http.Error(w, "Bad Request", http.StatusBadRequest)
		return false
	}
	return true
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	gson, err := json.Marshal(v)
	if err != nil {
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(gson)
}

// writeError maps invalid input to 400. Anything else is logged and hidden
// behind a 500.
func writeError(w http.ResponseWriter, r *http.Request, logger providers.Logger, err error) {
	if errors.Is(err, services.ErrInvalidInput) {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	logger.Errorf(providers.GetLogTypeByRequestType(r.Method), "%s %s: %s", r.Method, r.URL.Path, err)
	http.Error(w, "Internal Server Error", http.StatusInternalServerError)
}
