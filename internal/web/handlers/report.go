package handlers

import (
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/tkadlec/rollcall/internal/attendance"
	"github.com/tkadlec/rollcall/internal/config"
)

// ReportHandler reconciles attendance and serves the report.
type ReportHandler struct {
	config *config.Config
	store  *SessionStore
}

// NewReportHandler creates a new report handler.
func NewReportHandler(cfg *config.Config, store *SessionStore) *ReportHandler {
	return &ReportHandler{config: cfg, store: store}
}

// Get returns the report as JSON.
func (h *ReportHandler) Get(w http.ResponseWriter, r *http.Request) {
	s := sessionFromRequest(w, r, h.store)
	if s == nil {
		return
	}

	records, err := s.BuildReport()
	if err != nil {
		respondError(w, reportStatus(err), err.Error())
		return
	}
	respondJSON(w, http.StatusOK, map[string]any{"records": records})
}

// Download streams the report as a CSV attachment.
func (h *ReportHandler) Download(w http.ResponseWriter, r *http.Request) {
	s := sessionFromRequest(w, r, h.store)
	if s == nil {
		return
	}

	records, err := s.BuildReport()
	if err != nil {
		respondError(w, reportStatus(err), err.Error())
		return
	}

	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", "attachment; filename="+attendance.Filename(time.Now()))
	if err := attendance.WriteCSV(w, records); err != nil {
		log.Printf("session %s: report download failed: %v", sanitizeForLog(s.ID), err)
	}
}

// Save writes the report to the configured output directory on the server
// and returns the path of the written file.
func (h *ReportHandler) Save(w http.ResponseWriter, r *http.Request) {
	s := sessionFromRequest(w, r, h.store)
	if s == nil {
		return
	}

	records, err := s.BuildReport()
	if err != nil {
		respondError(w, reportStatus(err), err.Error())
		return
	}

	path, err := attendance.Save(h.config.Output.Dir, records)
	if err != nil {
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}

	log.Printf("session %s: report saved to %s", sanitizeForLog(s.ID), path)
	respondJSON(w, http.StatusOK, map[string]string{"path": path})
}

// reportStatus maps reconciliation errors onto HTTP statuses; an empty
// roster is a client-state problem, not a server fault.
func reportStatus(err error) int {
	if errors.Is(err, attendance.ErrEmptyRoster) {
		return http.StatusConflict
	}
	return statusForError(err)
}
