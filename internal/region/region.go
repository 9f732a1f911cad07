// Package region models the face boxes produced by one detection pass over
// one photo, and the operator-confirmed bindings from boxes to roster
// entries. A new detection pass or a new photo replaces the whole batch.
package region

import "image"

// Unassigned marks a region with no roster binding.
const Unassigned = -1

// Region is one detected face box in raw image pixel coordinates together
// with its assignment state. IDs are 1-based and stable for one detection
// pass; they restart at 1 when the batch is replaced.
type Region struct {
	ID int `json:"id"`
	X  int `json:"x"`
	Y  int `json:"y"`
	W  int `json:"w"`
	H  int `json:"h"`

	entry int // bound roster entry index, Unassigned when free
}

// Assigned returns the bound roster entry index, and whether one is bound.
func (r *Region) Assigned() (int, bool) {
	return r.entry, r.entry != Unassigned
}

// Contains reports whether the image-space point lies inside the box.
// Points exactly on an edge count as inside.
func (r *Region) Contains(px, py int) bool {
	return px >= r.X && px <= r.X+r.W && py >= r.Y && py <= r.Y+r.H
}

// Batch is the set of regions from one detection pass.
type Batch struct {
	regions []*Region
}

// NewBatch wraps detector rectangles as regions, assigning ids 1..N in the
// order received. Detector output order is stable within one call but not
// spatially sorted; ids follow it as-is.
func NewBatch(rects []image.Rectangle) *Batch {
	b := &Batch{regions: make([]*Region, 0, len(rects))}
	for i, rect := range rects {
		b.regions = append(b.regions, &Region{
			ID:    i + 1,
			X:     rect.Min.X,
			Y:     rect.Min.Y,
			W:     rect.Dx(),
			H:     rect.Dy(),
			entry: Unassigned,
		})
	}
	return b
}

// Len returns the number of regions in the batch.
func (b *Batch) Len() int {
	return len(b.regions)
}

// Regions returns the regions in creation order. The slice is shared; the
// caller must not reorder it.
func (b *Batch) Regions() []*Region {
	return b.regions
}

// Snapshot returns value copies of the regions in creation order. The copies
// carry the binding state at the time of the call and are decoupled from
// later assignments, so callers can read them without holding whatever lock
// guards the batch.
func (b *Batch) Snapshot() []Region {
	out := make([]Region, len(b.regions))
	for i, r := range b.regions {
		out[i] = *r
	}
	return out
}

// ByID returns the region with the given id, or nil.
func (b *Batch) ByID(id int) *Region {
	if id < 1 || id > len(b.regions) {
		return nil
	}
	return b.regions[id-1]
}

// HitTest returns the region whose box contains the image-space point, or
// nil. When boxes overlap, the last region in creation order wins: later
// regions are drawn on top, so the topmost box takes the click.
func (b *Batch) HitTest(px, py int) *Region {
	for i := len(b.regions) - 1; i >= 0; i-- {
		if b.regions[i].Contains(px, py) {
			return b.regions[i]
		}
	}
	return nil
}
