// Package handlers provides the HTTP handlers for the operator web API.
// Each resource gets a handler struct with a constructor; session state
// lives in session.go and store.go.
package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/tkadlec/rollcall/internal/letterbox"
	"github.com/tkadlec/rollcall/internal/roster"
)

// sanitizeForLog removes newlines and carriage returns to prevent log injection.
func sanitizeForLog(s string) string {
	return strings.NewReplacer("\n", "", "\r", "").Replace(s)
}

// respondJSON sends a JSON response.
func respondJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data != nil {
		json.NewEncoder(w).Encode(data)
	}
}

// respondError sends an error response.
func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{"error": message})
}

// sessionFromRequest resolves the {sessionID} URL parameter against the
// store, answering 404 itself when the session is gone. Callers must return
// immediately when it yields nil.
func sessionFromRequest(w http.ResponseWriter, r *http.Request, store *SessionStore) *Session {
	id := chi.URLParam(r, "sessionID")
	s := store.Get(id)
	if s == nil {
		respondError(w, http.StatusNotFound, "session not found")
	}
	return s
}

// statusForError maps engine errors to HTTP status codes. The engine keeps
// its state intact on every one of these, so they are all retryable from
// the operator's point of view.
func statusForError(err error) int {
	switch {
	case errors.Is(err, roster.ErrSchema), errors.Is(err, roster.ErrFormat):
		return http.StatusUnprocessableEntity
	case errors.Is(err, roster.ErrStale), errors.Is(err, ErrNoRegion):
		return http.StatusNotFound
	case errors.Is(err, ErrNoRoster), errors.Is(err, ErrNoPhoto), errors.Is(err, ErrNoBatch):
		return http.StatusConflict
	case errors.Is(err, letterbox.ErrNotReady):
		return http.StatusPreconditionFailed
	default:
		return http.StatusInternalServerError
	}
}

// HealthCheck returns a handler for the health check endpoint, reporting
// liveness and the number of live operator sessions.
func HealthCheck(store *SessionStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		respondJSON(w, http.StatusOK, map[string]any{
			"status":   "ok",
			"sessions": store.Count(),
		})
	}
}
