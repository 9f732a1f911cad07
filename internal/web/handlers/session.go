package handlers

import (
	"errors"
	"image"
	"io"
	"sync"
	"time"

	"github.com/tkadlec/rollcall/internal/attendance"
	"github.com/tkadlec/rollcall/internal/letterbox"
	"github.com/tkadlec/rollcall/internal/region"
	"github.com/tkadlec/rollcall/internal/roster"
)

var (
	// ErrNoRoster is returned when an operation needs a roster and none was uploaded.
	ErrNoRoster = errors.New("no roster loaded")
	// ErrNoPhoto is returned when an operation needs a photo and none was uploaded.
	ErrNoPhoto = errors.New("no photo loaded")
	// ErrNoBatch is returned when an operation needs detected regions and none exist.
	ErrNoBatch = errors.New("no faces detected yet")
	// ErrNoRegion is returned for an unknown region id.
	ErrNoRegion = errors.New("unknown region id")
)

// Session holds the working state of one operator: the loaded roster, the
// current photo, the detected region batch and the viewport fit. The
// attendance engine itself takes no locks, so every mutating call funnels
// through the session mutex here.
type Session struct {
	ID        string
	CreatedAt time.Time
	ExpiresAt time.Time

	mu        sync.Mutex
	roster    *roster.Roster
	photo     image.Image
	photoName string
	batch     *region.Batch
	fit       letterbox.Fit
	hasFit    bool
}

// LoadRoster parses and replaces the session roster. Detected regions keep
// their ids but lose their bindings: indices into the old roster are stale,
// so the batch is reset to all-unassigned.
func (s *Session) LoadRoster(r io.Reader) (int, error) {
	ro, err := roster.LoadCSV(r)
	if err != nil {
		return 0, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.roster = ro
	if s.batch != nil {
		for _, reg := range s.batch.Regions() {
			s.batch.Unassign(reg)
		}
	}
	return ro.Len(), nil
}

// Roster returns the current roster.
func (s *Session) Roster() (*roster.Roster, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.roster == nil {
		return nil, ErrNoRoster
	}
	return s.roster, nil
}

// SetPhoto replaces the current photo and destroys the region batch: the
// old regions belong to the old pixels.
func (s *Session) SetPhoto(img image.Image, name string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.photo = img
	s.photoName = name
	s.batch = nil
	s.hasFit = false
}

// Photo returns the current photo and its file name.
func (s *Session) Photo() (image.Image, string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.photo == nil {
		return nil, "", ErrNoPhoto
	}
	return s.photo, s.photoName, nil
}

// SetBatch replaces the region batch wholesale after a detection pass.
func (s *Session) SetBatch(b *region.Batch) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.batch = b
}

// Regions returns value copies of the current batch's regions, taken under
// the session lock. Handing out the live regions would let handlers read
// binding state while a concurrent Assign writes it.
func (s *Session) Regions() ([]region.Region, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.batch == nil {
		return nil, ErrNoBatch
	}
	return s.batch.Snapshot(), nil
}

// SetViewport recomputes the letterbox fit for the given viewport size.
// The fit must track every viewport change or display-space clicks land on
// the wrong pixels.
func (s *Session) SetViewport(viewW, viewH int) (letterbox.Fit, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.photo == nil {
		return letterbox.Fit{}, ErrNoPhoto
	}

	bounds := s.photo.Bounds()
	fit, err := letterbox.Compute(bounds.Dx(), bounds.Dy(), viewW, viewH)
	if err != nil {
		return letterbox.Fit{}, err
	}
	s.fit = fit
	s.hasFit = true
	return fit, nil
}

// Fit returns the current letterbox fit, or ErrNotReady before the first
// viewport update.
func (s *Session) Fit() (letterbox.Fit, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.hasFit {
		return letterbox.Fit{}, letterbox.ErrNotReady
	}
	return s.fit, nil
}

// HitImage resolves an image-space click to a region, topmost box first.
// A copy is returned so the caller never reads the live region outside the
// session lock; the second result is false on a miss.
func (s *Session) HitImage(px, py int) (region.Region, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.batch == nil {
		return region.Region{}, false, ErrNoBatch
	}
	hit := s.batch.HitTest(px, py)
	if hit == nil {
		return region.Region{}, false, nil
	}
	return *hit, true, nil
}

// HitDisplay resolves a display-space click to a region by mapping it
// through the letterbox fit first.
func (s *Session) HitDisplay(sx, sy int) (region.Region, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.batch == nil {
		return region.Region{}, false, ErrNoBatch
	}
	if !s.hasFit {
		return region.Region{}, false, letterbox.ErrNotReady
	}
	px, py := s.fit.ToImage(sx, sy)
	hit := s.batch.HitTest(px, py)
	if hit == nil {
		return region.Region{}, false, nil
	}
	return *hit, true, nil
}

// Assign binds a region to a roster entry, enforcing the duplicate gate.
func (s *Session) Assign(regionID, entry int, confirm bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.batch == nil {
		return ErrNoBatch
	}
	if s.roster == nil {
		return ErrNoRoster
	}
	if _, err := s.roster.Entry(entry); err != nil {
		return err
	}
	reg := s.batch.ByID(regionID)
	if reg == nil {
		return ErrNoRegion
	}
	return s.batch.Assign(reg, entry, confirm)
}

// Unassign clears the binding on a region.
func (s *Session) Unassign(regionID int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.batch == nil {
		return ErrNoBatch
	}
	reg := s.batch.ByID(regionID)
	if reg == nil {
		return ErrNoRegion
	}
	s.batch.Unassign(reg)
	return nil
}

// Present returns the deduplicated present list in region creation order:
// each bound entry once, with its display string and the first region bound
// to it. The whole list is built under the session lock so a concurrent
// assignment cannot tear it.
func (s *Session) Present() ([]presentEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.roster == nil {
		return nil, ErrNoRoster
	}
	if s.batch == nil {
		return nil, ErrNoBatch
	}

	seen := make(map[int]struct{})
	present := make([]presentEntry, 0, s.batch.Len())
	for _, reg := range s.batch.Regions() {
		entry, ok := reg.Assigned()
		if !ok {
			continue
		}
		if _, dup := seen[entry]; dup {
			continue
		}
		seen[entry] = struct{}{}

		display, err := s.roster.Display(entry)
		if err != nil {
			return nil, err
		}
		present = append(present, presentEntry{
			Index:    entry,
			Display:  display,
			RegionID: s.batch.BoundRegionFor(entry).ID,
		})
	}
	return present, nil
}

// BuildReport reconciles the roster with the current assignment state.
func (s *Session) BuildReport() ([]attendance.Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.roster == nil {
		return nil, ErrNoRoster
	}
	return attendance.BuildReport(s.roster, s.batch, s.photoName)
}
