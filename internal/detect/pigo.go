package detect

import (
	"context"
	"fmt"
	"image"
	"os"

	pigo "github.com/esimov/pigo/core"

	"github.com/tkadlec/rollcall/internal/config"
	"github.com/tkadlec/rollcall/internal/imaging"
)

// PigoDetector runs the pure-Go pigo cascade over a grayscale copy of the
// photo. The cascade file is the standard "facefinder" binary shipped with
// pigo; it is loaded once per detector.
type PigoDetector struct {
	classifier *pigo.Pigo
	tuning     config.DetectorTuning
}

// NewPigo loads the cascade file and prepares a detector.
func NewPigo(cascadePath string, tuning config.DetectorTuning) (*PigoDetector, error) {
	data, err := os.ReadFile(cascadePath)
	if err != nil {
		return nil, fmt.Errorf("could not read cascade file %s: %w", cascadePath, err)
	}

	classifier, err := pigo.NewPigo().Unpack(data)
	if err != nil {
		return nil, fmt.Errorf("could not unpack cascade file %s: %w", cascadePath, err)
	}

	return &PigoDetector{classifier: classifier, tuning: tuning}, nil
}

func (d *PigoDetector) Name() string {
	return "pigo"
}

// Detect runs the cascade sweep and returns the clustered face boxes. Pigo
// reports detections as center/scale; they are converted to corner
// rectangles here so the rest of the system never sees the pigo format.
func (d *PigoDetector) Detect(ctx context.Context, img image.Image) ([]image.Rectangle, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	bounds := img.Bounds()
	rows := bounds.Dy()
	cols := bounds.Dx()
	gray := imaging.Grayscale(img)

	maxSize := d.tuning.MaxSize
	if maxSize > rows {
		maxSize = rows
	}
	if maxSize > cols {
		maxSize = cols
	}

	params := pigo.CascadeParams{
		MinSize:     d.tuning.MinSize,
		MaxSize:     maxSize,
		ShiftFactor: d.tuning.ShiftFactor,
		ScaleFactor: d.tuning.ScaleFactor,
		ImageParams: pigo.ImageParams{
			Pixels: gray.Pix,
			Rows:   rows,
			Cols:   cols,
			Dim:    gray.Stride,
		},
	}

	dets := d.classifier.RunCascade(params, 0.0)
	dets = d.classifier.ClusterDetections(dets, d.tuning.OverlapIoU)

	rects := make([]image.Rectangle, 0, len(dets))
	for _, det := range dets {
		if float64(det.Q) < d.tuning.QualityThreshold {
			continue
		}
		half := det.Scale / 2
		x := det.Col - half
		y := det.Row - half
		rects = append(rects, image.Rect(x, y, x+det.Scale, y+det.Scale))
	}
	return rects, nil
}
