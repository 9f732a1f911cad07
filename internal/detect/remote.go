package detect

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"image"
	"io"
	"net/http"
	"strings"

	"github.com/tkadlec/rollcall/internal/config"
	"github.com/tkadlec/rollcall/internal/imaging"
)

// RemoteDetector calls a detection service over HTTP. The service accepts a
// JPEG body on POST /detect and answers with the face boxes it found.
type RemoteDetector struct {
	baseURL string
	tuning  config.DetectorTuning
	client  *http.Client
}

// NewRemote creates a detector talking to the given base URL.
func NewRemote(baseURL string, tuning config.DetectorTuning) *RemoteDetector {
	return &RemoteDetector{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		tuning:  tuning,
		client:  &http.Client{},
	}
}

func (d *RemoteDetector) Name() string {
	return "remote"
}

// detectResponse is the service's answer: one box per detected face, in
// image pixel coordinates.
type detectResponse struct {
	Faces []struct {
		X int `json:"x"`
		Y int `json:"y"`
		W int `json:"w"`
		H int `json:"h"`
	} `json:"faces"`
}

// Detect uploads the photo and converts the response to rectangles. Unlike
// the local cascade the service does not merge overlapping candidates, so
// the boxes are clustered here with the same IoU threshold.
func (d *RemoteDetector) Detect(ctx context.Context, img image.Image) ([]image.Rectangle, error) {
	var buf bytes.Buffer
	if err := imaging.EncodeJPEG(&buf, img); err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, d.baseURL+"/detect", &buf)
	if err != nil {
		return nil, fmt.Errorf("could not create request: %w", err)
	}
	req.Header.Set("Content-Type", "image/jpeg")

	resp, err := d.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("could not send request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return nil, fmt.Errorf("detector service returned status %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}

	var result detectResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("could not unmarshal response: %w", err)
	}

	rects := make([]image.Rectangle, 0, len(result.Faces))
	for _, f := range result.Faces {
		if f.W < d.tuning.MinSize || f.H < d.tuning.MinSize {
			continue
		}
		rects = append(rects, image.Rect(f.X, f.Y, f.X+f.W, f.Y+f.H))
	}
	return Cluster(rects, d.tuning.OverlapIoU), nil
}
