package region

import "fmt"

// DuplicateError reports an attempt to bind a roster entry that is already
// bound to another region in the same batch. Nothing was changed; the caller
// may retry with confirm set once the operator approves the duplicate.
type DuplicateError struct {
	Entry  int     // the roster entry index being bound
	Region *Region // the region that already holds the binding
}

func (e *DuplicateError) Error() string {
	return fmt.Sprintf("entry %d is already assigned to region #%d", e.Entry, e.Region.ID)
}

// Assign binds r to the roster entry index. Binding an entry that another
// region already holds is legal (the same head can appear twice in one
// photo) but never silent: without confirm the call changes nothing and
// returns a *DuplicateError naming the existing binding.
func (b *Batch) Assign(r *Region, entry int, confirm bool) error {
	if r == nil {
		return fmt.Errorf("region: assign to nil region")
	}
	if entry < 0 {
		return fmt.Errorf("region: invalid entry index %d", entry)
	}
	if !confirm {
		for _, other := range b.regions {
			if other != r && other.entry == entry {
				return &DuplicateError{Entry: entry, Region: other}
			}
		}
	}
	r.entry = entry
	return nil
}

// Unassign clears the binding on r. Unassigning an already-unassigned
// region is a no-op.
func (b *Batch) Unassign(r *Region) {
	if r != nil {
		r.entry = Unassigned
	}
}

// PresentEntries returns the deduplicated set of roster entry indices bound
// to at least one region in the batch.
func (b *Batch) PresentEntries() map[int]struct{} {
	present := make(map[int]struct{})
	for _, r := range b.regions {
		if r.entry != Unassigned {
			present[r.entry] = struct{}{}
		}
	}
	return present
}

// BoundRegionFor returns the first region in creation order bound to the
// given entry, or nil. It backs reassignment started from the roster side,
// where the operator picks a name instead of a box.
func (b *Batch) BoundRegionFor(entry int) *Region {
	for _, r := range b.regions {
		if r.entry == entry {
			return r
		}
	}
	return nil
}
