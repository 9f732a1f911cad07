// Package detect provides the face detection collaborators. The attendance
// engine treats a detector as a black box: given a photo it returns
// axis-aligned rectangles in image pixel space, possibly empty, possibly
// overlapping, in an order that is stable within one call.
package detect

import (
	"context"
	"fmt"
	"image"

	"github.com/tkadlec/rollcall/internal/config"
)

// Detector finds face-like regions in a photo.
type Detector interface {
	// Detect returns face rectangles found in img. No spatial ordering is
	// guaranteed beyond stability within one call.
	Detect(ctx context.Context, img image.Image) ([]image.Rectangle, error)

	// Name identifies the backend for logs and diagnostics.
	Name() string
}

// New creates a detector based on the configured backend.
func New(cfg *config.Config) (Detector, error) {
	switch cfg.Detector.Backend {
	case "", "pigo":
		d, err := NewPigo(cfg.Detector.CascadePath, cfg.Tuning.Detector)
		if err != nil {
			return nil, err
		}
		return d, nil
	case "remote":
		if cfg.Detector.RemoteURL == "" {
			return nil, fmt.Errorf("detect: remote backend selected but DETECTOR_URL is not set")
		}
		return NewRemote(cfg.Detector.RemoteURL, cfg.Tuning.Detector), nil
	default:
		return nil, fmt.Errorf("detect: unknown backend %q", cfg.Detector.Backend)
	}
}
