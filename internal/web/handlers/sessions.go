package handlers

import (
	"net/http"
	"time"
)

// SessionsHandler manages operator session lifecycle.
type SessionsHandler struct {
	store *SessionStore
}

// NewSessionsHandler creates a new sessions handler.
func NewSessionsHandler(store *SessionStore) *SessionsHandler {
	return &SessionsHandler{store: store}
}

// SessionResponse describes a session to the client.
type SessionResponse struct {
	SessionID string    `json:"session_id"`
	CreatedAt time.Time `json:"created_at"`
	ExpiresAt time.Time `json:"expires_at"`
}

// Create starts a new operator session.
func (h *SessionsHandler) Create(w http.ResponseWriter, r *http.Request) {
	s := h.store.Create()
	respondJSON(w, http.StatusCreated, SessionResponse{
		SessionID: s.ID,
		CreatedAt: s.CreatedAt,
		ExpiresAt: s.ExpiresAt,
	})
}

// Get returns session metadata.
func (h *SessionsHandler) Get(w http.ResponseWriter, r *http.Request) {
	s := sessionFromRequest(w, r, h.store)
	if s == nil {
		return
	}
	respondJSON(w, http.StatusOK, SessionResponse{
		SessionID: s.ID,
		CreatedAt: s.CreatedAt,
		ExpiresAt: s.ExpiresAt,
	})
}

// Delete discards a session and everything it holds.
func (h *SessionsHandler) Delete(w http.ResponseWriter, r *http.Request) {
	s := sessionFromRequest(w, r, h.store)
	if s == nil {
		return
	}
	h.store.Delete(s.ID)
	respondJSON(w, http.StatusOK, map[string]bool{"deleted": true})
}
