// Package letterbox converts between raw image pixel coordinates and
// on-screen display coordinates when an image is scaled to fit a viewport
// while keeping its aspect ratio, centered with bars on the short axis.
//
// The forward transform truncates fractional pixels, so mapping a point to
// display space and back may be off by up to one display pixel, which is
// 1/scale image pixels. Callers treat that as acceptable quantization, not
// as an error.
package letterbox

import (
	"errors"
	"fmt"
	"math"
)

// ErrNotReady is returned while the viewport has no real size yet, which
// happens before the first layout pass of the hosting UI.
var ErrNotReady = errors.New("letterbox: viewport not laid out")

// Fit describes how an image is scaled and centered inside a viewport.
// A Fit is only valid for the image and viewport dimensions it was computed
// from; it must be recomputed whenever either changes, otherwise hit-testing
// through it is wrong, not just cosmetically off.
type Fit struct {
	Scale   float64 `json:"scale"`
	OffsetX int     `json:"offset_x"`
	OffsetY int     `json:"offset_y"`
}

// Compute returns the aspect-preserving fit of an imageW x imageH image
// inside a viewW x viewH viewport. The scale is the smaller of the two
// axis ratios and the scaled image is centered, with offsets floored to
// whole pixels.
func Compute(imageW, imageH, viewW, viewH int) (Fit, error) {
	if viewW <= 1 || viewH <= 1 {
		return Fit{}, ErrNotReady
	}
	if imageW <= 0 || imageH <= 0 {
		return Fit{}, fmt.Errorf("letterbox: invalid image size %dx%d", imageW, imageH)
	}

	scale := math.Min(float64(viewW)/float64(imageW), float64(viewH)/float64(imageH))
	scaledW := int(float64(imageW) * scale)
	scaledH := int(float64(imageH) * scale)

	return Fit{
		Scale:   scale,
		OffsetX: (viewW - scaledW) / 2,
		OffsetY: (viewH - scaledH) / 2,
	}, nil
}

// ToDisplay maps an image-space pixel to display space.
func (f Fit) ToDisplay(px, py int) (sx, sy int) {
	sx = int(float64(px)*f.Scale) + f.OffsetX
	sy = int(float64(py)*f.Scale) + f.OffsetY
	return sx, sy
}

// ToImage maps a display-space point back to image space. It is the inverse
// of ToDisplay up to the one-pixel quantization documented above.
func (f Fit) ToImage(sx, sy int) (px, py int) {
	px = int(float64(sx-f.OffsetX) / f.Scale)
	py = int(float64(sy-f.OffsetY) / f.Scale)
	return px, py
}
