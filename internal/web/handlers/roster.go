package handlers

import (
	"log"
	"net/http"

	"github.com/tkadlec/rollcall/internal/config"
)

// RosterHandler serves roster upload and search.
type RosterHandler struct {
	config *config.Config
	store  *SessionStore
}

// NewRosterHandler creates a new roster handler.
func NewRosterHandler(cfg *config.Config, store *SessionStore) *RosterHandler {
	return &RosterHandler{config: cfg, store: store}
}

// rosterEntryResponse is one search result: the stable entry index plus the
// fields needed to render a pick list. The index is the primary key the
// client sends back on assignment; display text is never parsed back.
type rosterEntryResponse struct {
	Index       int    `json:"index"`
	AdmissionNo string `json:"admission_no"`
	Name        string `json:"name"`
	Section     string `json:"section"`
	Display     string `json:"display"`
}

// Upload replaces the session roster with the uploaded CSV. The file comes
// either as a multipart "file" field or as the raw request body.
func (h *RosterHandler) Upload(w http.ResponseWriter, r *http.Request) {
	s := sessionFromRequest(w, r, h.store)
	if s == nil {
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, h.config.Web.MaxUploadBytes)

	var count int
	var err error
	if file, _, ferr := r.FormFile("file"); ferr == nil {
		defer file.Close()
		count, err = s.LoadRoster(file)
	} else {
		count, err = s.LoadRoster(r.Body)
	}
	if err != nil {
		respondError(w, statusForError(err), err.Error())
		return
	}

	log.Printf("session %s: roster loaded with %d entries", sanitizeForLog(s.ID), count)
	respondJSON(w, http.StatusOK, map[string]int{"count": count})
}

// Search returns roster entries matching the q parameter. An empty query
// returns the whole roster in load order.
func (h *RosterHandler) Search(w http.ResponseWriter, r *http.Request) {
	s := sessionFromRequest(w, r, h.store)
	if s == nil {
		return
	}

	ro, err := s.Roster()
	if err != nil {
		respondError(w, statusForError(err), err.Error())
		return
	}

	query := r.URL.Query().Get("q")
	indices := ro.Search(query)

	results := make([]rosterEntryResponse, 0, len(indices))
	for _, idx := range indices {
		entry, err := ro.Entry(idx)
		if err != nil {
			respondError(w, statusForError(err), err.Error())
			return
		}
		display, _ := ro.Display(idx)
		results = append(results, rosterEntryResponse{
			Index:       idx,
			AdmissionNo: entry.AdmissionNo,
			Name:        entry.Name,
			Section:     entry.Section,
			Display:     display,
		})
	}
	respondJSON(w, http.StatusOK, map[string]any{"entries": results})
}
