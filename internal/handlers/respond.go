// Package handlers implements the JSON API surface: authentication,
// posts, and categories. Every response uses the same envelope —
// {"success":true,...} on success, {"success":false,"error":...} or a
// field-error list on failure.
package handlers

import (
	"encoding/json"
	"log/slog"
	"net/http"
)

// writeJSON serializes v with the given status. Encoding failures are
// logged; at that point the status line is already out.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("response encode failed", "error", err)
	}
}

// respondOK writes a success envelope merged with the given fields.
func respondOK(w http.ResponseWriter, status int, fields map[string]any) {
	payload := map[string]any{"success": true}
	for k, v := range fields {
		payload[k] = v
	}
	writeJSON(w, status, payload)
}

// respondData writes {"success":true,"data":...}.
func respondData(w http.ResponseWriter, status int, data any) {
	respondOK(w, status, map[string]any{"data": data})
}

// respondError writes {"success":false,"error":msg}.
func respondError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]any{"success": false, "error": msg})
}

// respondFieldErrors writes the validation failure envelope.
func respondFieldErrors(w http.ResponseWriter, errs []FieldError) {
	writeJSON(w, http.StatusBadRequest, map[string]any{"success": false, "errors": errs})
}

// respondInternal logs the underlying error and returns a generic
// message so no internal detail leaks to the caller.
func respondInternal(w http.ResponseWriter, context string, err error) {
	slog.Error(context, "error", err)
	respondError(w, http.StatusInternalServerError, "Server error")
}

// decodeJSON reads the request body into dst, rejecting bodies that are
// not valid JSON.
func decodeJSON(r *http.Request, dst any) error {
	return json.NewDecoder(r.Body).Decode(dst)
}
