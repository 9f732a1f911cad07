package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"image"
	"image/color"
	"image/png"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"

	"github.com/tkadlec/rollcall/internal/config"
	"github.com/tkadlec/rollcall/internal/region"
)

const sampleRosterCSV = "Admission_No,Name,Section\n" +
	"A001,Ann Novak,B\n" +
	"A002,Bob Marek,\n" +
	"A003,Jiří Dvořák,A\n"

// testConfig creates a minimal config for testing
func testConfig() *config.Config {
	return &config.Config{
		Web:    config.WebConfig{MaxUploadBytes: 8 << 20},
		Output: config.OutputConfig{Dir: "."},
	}
}

// newTestStore creates a session store and stops its janitor on cleanup
func newTestStore(t *testing.T) *SessionStore {
	t.Helper()
	store := NewSessionStore()
	t.Cleanup(store.Stop)
	return store
}

// requestWithSession creates a request carrying the session id as a chi URL parameter
func requestWithSession(method, path string, body *bytes.Buffer, sessionID string) *http.Request {
	var req *http.Request
	if body == nil {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, body)
	}
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add("sessionID", sessionID)
	return req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rctx))
}

// requestWithChiParams creates a request with arbitrary chi URL parameters
func requestWithChiParams(r *http.Request, params map[string]string) *http.Request {
	rctx := chi.NewRouteContext()
	for key, value := range params {
		rctx.URLParams.Add(key, value)
	}
	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
}

// jsonBody encodes a request payload
func jsonBody(t *testing.T, payload any) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(payload); err != nil {
		t.Fatalf("failed to encode request body: %v", err)
	}
	return &buf
}

// multipartFile builds a multipart body with a single "file" field
func multipartFile(t *testing.T, filename string, content []byte) (*bytes.Buffer, string) {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	part, err := mw.CreateFormFile("file", filename)
	if err != nil {
		t.Fatalf("failed to create form file: %v", err)
	}
	if _, err := part.Write(content); err != nil {
		t.Fatalf("failed to write form file: %v", err)
	}
	if err := mw.Close(); err != nil {
		t.Fatalf("failed to close multipart writer: %v", err)
	}
	return &buf, mw.FormDataContentType()
}

// testPhoto generates a decodable PNG of the given size
func testPhoto(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, color.RGBA{R: uint8(x), G: uint8(y), B: 128, A: 255})
		}
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("failed to encode test photo: %v", err)
	}
	return buf.Bytes()
}

// loadSampleRoster puts the three-entry sample roster into a session
func loadSampleRoster(t *testing.T, s *Session) {
	t.Helper()
	if _, err := s.LoadRoster(strings.NewReader(sampleRosterCSV)); err != nil {
		t.Fatalf("failed to load sample roster: %v", err)
	}
}

// setSamplePhoto puts an 800x600 photo into a session
func setSamplePhoto(s *Session) {
	s.SetPhoto(image.NewRGBA(image.Rect(0, 0, 800, 600)), "class.png")
}

// setSampleBatch installs two detected regions: id 1 at (100,100)+200x200,
// id 2 at (500,100)+150x150
func setSampleBatch(s *Session) *region.Batch {
	batch := region.NewBatch([]image.Rectangle{
		image.Rect(100, 100, 300, 300),
		image.Rect(500, 100, 650, 250),
	})
	s.SetBatch(batch)
	return batch
}

// stubDetector returns a fixed set of boxes without looking at the image
type stubDetector struct {
	rects []image.Rectangle
	err   error
}

func (d *stubDetector) Detect(ctx context.Context, img image.Image) ([]image.Rectangle, error) {
	return d.rects, d.err
}

func (d *stubDetector) Name() string { return "stub" }

// parseJSONResponse parses a JSON response body into the target type
func parseJSONResponse(t *testing.T, recorder *httptest.ResponseRecorder, target any) {
	t.Helper()
	if err := json.Unmarshal(recorder.Body.Bytes(), target); err != nil {
		t.Fatalf("failed to parse JSON response: %v\nBody: %s", err, recorder.Body.String())
	}
}

// assertStatusCode checks if the response has the expected status code
func assertStatusCode(t *testing.T, recorder *httptest.ResponseRecorder, expected int) {
	t.Helper()
	if recorder.Code != expected {
		t.Errorf("expected status %d, got %d\nBody: %s", expected, recorder.Code, recorder.Body.String())
	}
}

// assertContentType checks if the response has the expected content type
func assertContentType(t *testing.T, recorder *httptest.ResponseRecorder, expected string) {
	t.Helper()
	ct := recorder.Header().Get("Content-Type")
	if ct != expected {
		t.Errorf("expected Content-Type '%s', got '%s'", expected, ct)
	}
}
