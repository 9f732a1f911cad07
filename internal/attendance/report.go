// Package attendance derives the final present/absent report from a roster
// and the current region assignment state.
package attendance

import (
	"errors"
	"time"

	"github.com/tkadlec/rollcall/internal/region"
	"github.com/tkadlec/rollcall/internal/roster"
)

// ErrEmptyRoster is returned when a report is requested with no roster
// loaded. A zero-row report is meaningless, not merely empty.
var ErrEmptyRoster = errors.New("attendance: empty roster")

// Status marks a roster entry as seen in the photo or not.
type Status string

const (
	Present Status = "Present"
	Absent  Status = "Absent"
)

// Record is one row of the final report.
type Record struct {
	AdmissionNo string    `json:"admission_no"`
	Name        string    `json:"name"`
	Section     string    `json:"section"`
	Status      Status    `json:"status"`
	Photo       string    `json:"photo"`
	SavedAt     time.Time `json:"saved_at"`
}

// BuildReport folds the batch assignment state against the full roster.
// Every roster entry yields exactly one record, in roster order; an entry is
// Present iff at least one region is bound to it. The timestamp is sampled
// once, so all records of one report carry the same SavedAt. A nil batch is
// treated as a batch with no assignments: everyone absent.
func BuildReport(ro *roster.Roster, batch *region.Batch, photoRef string) ([]Record, error) {
	if ro == nil || ro.Len() == 0 {
		return nil, ErrEmptyRoster
	}

	savedAt := time.Now()
	present := map[int]struct{}{}
	if batch != nil {
		present = batch.PresentEntries()
	}

	records := make([]Record, 0, ro.Len())
	for i, e := range ro.Entries() {
		status := Absent
		if _, ok := present[i]; ok {
			status = Present
		}
		records = append(records, Record{
			AdmissionNo: e.AdmissionNo,
			Name:        e.Name,
			Section:     e.Section,
			Status:      status,
			Photo:       photoRef,
			SavedAt:     savedAt,
		})
	}
	return records, nil
}
