// Package roster holds the authoritative list of students for one attendance
// session and provides search over it. A roster is immutable once built;
// reloading produces a new value and makes every index taken from the old
// one stale.
package roster

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrSchema is returned when a roster source is missing a required column.
	ErrSchema = errors.New("roster: missing required column")
	// ErrFormat is returned when a roster source cannot be parsed at all.
	ErrFormat = errors.New("roster: unparsable input")
	// ErrStale is returned when an entry index does not exist in the current
	// roster, usually because the roster was reloaded after the index was taken.
	ErrStale = errors.New("roster: stale entry index")
)

// Entry is one immutable roster row. Section may be empty.
type Entry struct {
	AdmissionNo string
	Name        string
	Section     string
}

// Roster is an ordered list of entries plus a derived name index. Entries
// are addressed by their position in load order; duplicate names are legal
// and map to multiple positions.
type Roster struct {
	entries []Entry
	byName  map[string][]int
}

// New builds a roster from entries, preserving their order.
func New(entries []Entry) *Roster {
	r := &Roster{
		entries: make([]Entry, len(entries)),
		byName:  make(map[string][]int),
	}
	copy(r.entries, entries)
	for i, e := range r.entries {
		key := Normalize(e.Name)
		r.byName[key] = append(r.byName[key], i)
	}
	return r
}

// Len returns the number of entries.
func (r *Roster) Len() int {
	return len(r.entries)
}

// Entry returns the entry at index. Indices from a previous roster load are
// rejected with ErrStale.
func (r *Roster) Entry(index int) (Entry, error) {
	if index < 0 || index >= len(r.entries) {
		return Entry{}, fmt.Errorf("%w: %d", ErrStale, index)
	}
	return r.entries[index], nil
}

// Entries returns a copy of all entries in load order.
func (r *Roster) Entries() []Entry {
	out := make([]Entry, len(r.entries))
	copy(out, r.entries)
	return out
}

// Search returns the indices of entries whose name or admission number
// contains the query, case-insensitively and ignoring diacritics. An empty
// or whitespace-only query returns every index. Results keep load order.
func (r *Roster) Search(query string) []int {
	q := Normalize(strings.TrimSpace(query))
	matches := make([]int, 0, len(r.entries))
	for i, e := range r.entries {
		if q == "" || strings.Contains(Normalize(e.Name), q) || strings.Contains(Normalize(e.AdmissionNo), q) {
			matches = append(matches, i)
		}
	}
	return matches
}

// FindByAdmission returns the index of the entry with the exact admission
// number, or false if no entry carries it.
func (r *Roster) FindByAdmission(admissionNo string) (int, bool) {
	for i, e := range r.entries {
		if e.AdmissionNo == admissionNo {
			return i, true
		}
	}
	return 0, false
}

// IndicesByName returns the indices of all entries sharing the given name,
// ignoring case and diacritics. Duplicate names are a supported case.
func (r *Roster) IndicesByName(name string) []int {
	idxs := r.byName[Normalize(name)]
	out := make([]int, len(idxs))
	copy(out, idxs)
	return out
}

// Display renders the entry at index as a single line for pick lists,
// e.g. "Ann Novak (B) - A001".
func (r *Roster) Display(index int) (string, error) {
	e, err := r.Entry(index)
	if err != nil {
		return "", err
	}
	if e.Section != "" {
		return fmt.Sprintf("%s (%s) - %s", e.Name, e.Section, e.AdmissionNo), nil
	}
	return fmt.Sprintf("%s - %s", e.Name, e.AdmissionNo), nil
}
