package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/tkadlec/rollcall/internal/region"
)

// AssignHandler binds regions to roster entries and reports the present set.
type AssignHandler struct {
	store *SessionStore
}

// NewAssignHandler creates a new assignment handler.
func NewAssignHandler(store *SessionStore) *AssignHandler {
	return &AssignHandler{store: store}
}

// AssignRequest binds one region to one roster entry. Confirm must be set
// to repeat an entry that is already bound to another region.
type AssignRequest struct {
	RegionID int  `json:"region_id"`
	Entry    int  `json:"entry"`
	Confirm  bool `json:"confirm,omitempty"`
}

// duplicateResponse tells the client which region already holds the entry,
// so it can ask the operator before retrying with confirm set.
type duplicateResponse struct {
	Error             string `json:"error"`
	DuplicateOfRegion int    `json:"duplicate_of_region"`
	Entry             int    `json:"entry"`
}

// Assign handles the binding. A duplicate without confirmation answers 409
// and changes nothing; the client retries with confirm once the operator
// approves.
func (h *AssignHandler) Assign(w http.ResponseWriter, r *http.Request) {
	s := sessionFromRequest(w, r, h.store)
	if s == nil {
		return
	}

	var req AssignRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	err := s.Assign(req.RegionID, req.Entry, req.Confirm)
	var dup *region.DuplicateError
	if errors.As(err, &dup) {
		respondJSON(w, http.StatusConflict, duplicateResponse{
			Error:             dup.Error(),
			DuplicateOfRegion: dup.Region.ID,
			Entry:             dup.Entry,
		})
		return
	}
	if err != nil {
		respondError(w, statusForError(err), err.Error())
		return
	}
	respondJSON(w, http.StatusOK, map[string]bool{"assigned": true})
}

// UnassignRequest clears the binding on one region.
type UnassignRequest struct {
	RegionID int `json:"region_id"`
}

// Unassign clears a binding. Clearing an unassigned region succeeds.
func (h *AssignHandler) Unassign(w http.ResponseWriter, r *http.Request) {
	s := sessionFromRequest(w, r, h.store)
	if s == nil {
		return
	}

	var req UnassignRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := s.Unassign(req.RegionID); err != nil {
		respondError(w, statusForError(err), err.Error())
		return
	}
	respondJSON(w, http.StatusOK, map[string]bool{"assigned": false})
}

// presentEntry is one row of the present list shown next to the photo.
type presentEntry struct {
	Index    int    `json:"index"`
	Display  string `json:"display"`
	RegionID int    `json:"region_id"` // first region bound to this entry
}

// Present returns the deduplicated present set with display strings, plus
// the first bound region per entry so the client can jump from the list
// back to a box for reassignment.
func (h *AssignHandler) Present(w http.ResponseWriter, r *http.Request) {
	s := sessionFromRequest(w, r, h.store)
	if s == nil {
		return
	}

	present, err := s.Present()
	if err != nil {
		respondError(w, statusForError(err), err.Error())
		return
	}
	respondJSON(w, http.StatusOK, map[string]any{"present": present})
}
