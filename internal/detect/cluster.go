package detect

import "image"

// IoU calculates Intersection over Union between two face boxes.
func IoU(a, b image.Rectangle) float64 {
	inter := a.Intersect(b)
	if inter.Empty() {
		return 0
	}

	interArea := float64(inter.Dx() * inter.Dy())
	union := float64(a.Dx()*a.Dy()) + float64(b.Dx()*b.Dy()) - interArea
	if union <= 0 {
		return 0
	}
	return interArea / union
}

// Cluster merges rectangles whose overlap exceeds the IoU threshold,
// keeping the larger box of each overlapping pair. The relative order of
// surviving rectangles is preserved, so detector output stays stable
// within one call. The input slice is left untouched.
func Cluster(rects []image.Rectangle, threshold float64) []image.Rectangle {
	if threshold <= 0 || len(rects) < 2 {
		return rects
	}

	merged := make([]image.Rectangle, len(rects))
	copy(merged, rects)

	dropped := make([]bool, len(merged))
	for i := 0; i < len(merged); i++ {
		if dropped[i] {
			continue
		}
		for j := i + 1; j < len(merged); j++ {
			if dropped[j] {
				continue
			}
			if IoU(merged[i], merged[j]) < threshold {
				continue
			}
			// Keep the larger box to cover the whole face.
			if area(merged[j]) > area(merged[i]) {
				merged[i] = merged[j]
			}
			dropped[j] = true
		}
	}

	out := make([]image.Rectangle, 0, len(merged))
	for i, r := range merged {
		if !dropped[i] {
			out = append(out, r)
		}
	}
	return out
}

func area(r image.Rectangle) int {
	return r.Dx() * r.Dy()
}
