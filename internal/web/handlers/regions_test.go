package handlers

import (
	"image"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestRegionsHandler_Detect(t *testing.T) {
	store := newTestStore(t)
	detector := &stubDetector{rects: []image.Rectangle{
		image.Rect(10, 10, 60, 60),
		image.Rect(100, 20, 180, 100),
	}}
	handler := NewRegionsHandler(store, detector)
	s := store.Create()
	setSamplePhoto(s)

	req := requestWithSession("POST", "/detect", nil, s.ID)
	recorder := httptest.NewRecorder()
	handler.Detect(recorder, req)

	assertStatusCode(t, recorder, http.StatusOK)

	var resp struct {
		Regions []regionResponse `json:"regions"`
	}
	parseJSONResponse(t, recorder, &resp)
	if len(resp.Regions) != 2 {
		t.Fatalf("expected 2 regions, got %d", len(resp.Regions))
	}
	if resp.Regions[0].ID != 1 || resp.Regions[1].ID != 2 {
		t.Errorf("expected ids 1 and 2, got %d and %d", resp.Regions[0].ID, resp.Regions[1].ID)
	}
	if resp.Regions[0].X != 10 || resp.Regions[0].W != 50 {
		t.Errorf("unexpected region geometry %+v", resp.Regions[0])
	}
}

func TestRegionsHandler_Detect_ReplacesPreviousBatch(t *testing.T) {
	store := newTestStore(t)
	detector := &stubDetector{rects: []image.Rectangle{image.Rect(0, 0, 40, 40)}}
	handler := NewRegionsHandler(store, detector)
	s := store.Create()
	loadSampleRoster(t, s)
	setSamplePhoto(s)
	setSampleBatch(s)
	if err := s.Assign(1, 0, false); err != nil {
		t.Fatalf("setup assignment failed: %v", err)
	}

	req := requestWithSession("POST", "/detect", nil, s.ID)
	recorder := httptest.NewRecorder()
	handler.Detect(recorder, req)

	assertStatusCode(t, recorder, http.StatusOK)
	regions, err := s.Regions()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(regions) != 1 {
		t.Errorf("expected fresh batch of 1, got %d", len(regions))
	}
	for _, reg := range regions {
		if _, ok := reg.Assigned(); ok {
			t.Error("expected previous assignments gone after re-detection")
		}
	}
}

func TestRegionsHandler_Detect_NoDetector(t *testing.T) {
	store := newTestStore(t)
	handler := NewRegionsHandler(store, nil)
	s := store.Create()
	setSamplePhoto(s)

	req := requestWithSession("POST", "/detect", nil, s.ID)
	recorder := httptest.NewRecorder()
	handler.Detect(recorder, req)

	assertStatusCode(t, recorder, http.StatusServiceUnavailable)
}

func TestRegionsHandler_Detect_NoPhoto(t *testing.T) {
	store := newTestStore(t)
	handler := NewRegionsHandler(store, &stubDetector{})
	s := store.Create()

	req := requestWithSession("POST", "/detect", nil, s.ID)
	recorder := httptest.NewRecorder()
	handler.Detect(recorder, req)

	assertStatusCode(t, recorder, http.StatusConflict)
}

func TestRegionsHandler_List_NoBatch(t *testing.T) {
	store := newTestStore(t)
	handler := NewRegionsHandler(store, nil)
	s := store.Create()

	req := requestWithSession("GET", "/regions", nil, s.ID)
	recorder := httptest.NewRecorder()
	handler.List(recorder, req)

	assertStatusCode(t, recorder, http.StatusConflict)
}

func TestRegionsHandler_SetViewport(t *testing.T) {
	store := newTestStore(t)
	handler := NewRegionsHandler(store, nil)
	s := store.Create()
	setSamplePhoto(s) // 800x600

	req := requestWithSession("POST", "/viewport", jsonBody(t, ViewportRequest{Width: 400, Height: 400}), s.ID)
	recorder := httptest.NewRecorder()
	handler.SetViewport(recorder, req)

	assertStatusCode(t, recorder, http.StatusOK)

	var fit struct {
		Scale   float64 `json:"scale"`
		OffsetX int     `json:"offset_x"`
		OffsetY int     `json:"offset_y"`
	}
	parseJSONResponse(t, recorder, &fit)
	if fit.Scale != 0.5 {
		t.Errorf("expected scale 0.5, got %f", fit.Scale)
	}
	if fit.OffsetX != 0 || fit.OffsetY != 50 {
		t.Errorf("expected offsets (0,50), got (%d,%d)", fit.OffsetX, fit.OffsetY)
	}
}

func TestRegionsHandler_SetViewport_NoPhoto(t *testing.T) {
	store := newTestStore(t)
	handler := NewRegionsHandler(store, nil)
	s := store.Create()

	req := requestWithSession("POST", "/viewport", jsonBody(t, ViewportRequest{Width: 400, Height: 400}), s.ID)
	recorder := httptest.NewRecorder()
	handler.SetViewport(recorder, req)

	assertStatusCode(t, recorder, http.StatusConflict)
}

func TestRegionsHandler_List_IncludesDisplayCoords(t *testing.T) {
	store := newTestStore(t)
	handler := NewRegionsHandler(store, nil)
	s := store.Create()
	setSamplePhoto(s)
	setSampleBatch(s)
	if _, err := s.SetViewport(400, 400); err != nil {
		t.Fatalf("setup viewport failed: %v", err)
	}

	req := requestWithSession("GET", "/regions", nil, s.ID)
	recorder := httptest.NewRecorder()
	handler.List(recorder, req)

	assertStatusCode(t, recorder, http.StatusOK)

	var resp struct {
		Regions []regionResponse `json:"regions"`
	}
	parseJSONResponse(t, recorder, &resp)
	first := resp.Regions[0]
	if first.DisplayX == nil || first.DisplayY == nil {
		t.Fatal("expected display coordinates once a viewport fit exists")
	}
	// image (100,100) at scale 0.5 with offsets (0,50)
	if *first.DisplayX != 50 || *first.DisplayY != 100 {
		t.Errorf("expected display origin (50,100), got (%d,%d)", *first.DisplayX, *first.DisplayY)
	}
	if *first.DisplayW != 100 || *first.DisplayH != 100 {
		t.Errorf("expected display size 100x100, got %dx%d", *first.DisplayW, *first.DisplayH)
	}
}

func TestRegionsHandler_Click_DisplaySpace(t *testing.T) {
	store := newTestStore(t)
	handler := NewRegionsHandler(store, nil)
	s := store.Create()
	setSamplePhoto(s)
	setSampleBatch(s)
	if _, err := s.SetViewport(400, 400); err != nil {
		t.Fatalf("setup viewport failed: %v", err)
	}

	// display (100,150) maps to image (200,200), inside region 1
	req := requestWithSession("POST", "/click", jsonBody(t, ClickRequest{X: 100, Y: 150}), s.ID)
	recorder := httptest.NewRecorder()
	handler.Click(recorder, req)

	assertStatusCode(t, recorder, http.StatusOK)

	var resp struct {
		Hit    bool           `json:"hit"`
		Region regionResponse `json:"region"`
	}
	parseJSONResponse(t, recorder, &resp)
	if !resp.Hit {
		t.Fatal("expected a hit")
	}
	if resp.Region.ID != 1 {
		t.Errorf("expected region 1, got %d", resp.Region.ID)
	}
}

func TestRegionsHandler_Click_ImageSpace(t *testing.T) {
	store := newTestStore(t)
	handler := NewRegionsHandler(store, nil)
	s := store.Create()
	setSamplePhoto(s)
	setSampleBatch(s)

	req := requestWithSession("POST", "/click", jsonBody(t, ClickRequest{X: 550, Y: 150, Space: "image"}), s.ID)
	recorder := httptest.NewRecorder()
	handler.Click(recorder, req)

	assertStatusCode(t, recorder, http.StatusOK)

	var resp struct {
		Hit    bool           `json:"hit"`
		Region regionResponse `json:"region"`
	}
	parseJSONResponse(t, recorder, &resp)
	if !resp.Hit || resp.Region.ID != 2 {
		t.Errorf("expected hit on region 2, got %+v", resp)
	}
}

func TestRegionsHandler_Click_Miss(t *testing.T) {
	store := newTestStore(t)
	handler := NewRegionsHandler(store, nil)
	s := store.Create()
	setSamplePhoto(s)
	setSampleBatch(s)

	req := requestWithSession("POST", "/click", jsonBody(t, ClickRequest{X: 5, Y: 5, Space: "image"}), s.ID)
	recorder := httptest.NewRecorder()
	handler.Click(recorder, req)

	assertStatusCode(t, recorder, http.StatusOK)

	var resp map[string]any
	parseJSONResponse(t, recorder, &resp)
	if resp["hit"] != false {
		t.Errorf("expected a miss, got %v", resp)
	}
}

func TestRegionsHandler_Click_DisplayBeforeViewport(t *testing.T) {
	store := newTestStore(t)
	handler := NewRegionsHandler(store, nil)
	s := store.Create()
	setSamplePhoto(s)
	setSampleBatch(s)

	req := requestWithSession("POST", "/click", jsonBody(t, ClickRequest{X: 100, Y: 150}), s.ID)
	recorder := httptest.NewRecorder()
	handler.Click(recorder, req)

	assertStatusCode(t, recorder, http.StatusPreconditionFailed)
}

func TestRegionsHandler_Click_BadSpace(t *testing.T) {
	store := newTestStore(t)
	handler := NewRegionsHandler(store, nil)
	s := store.Create()
	setSamplePhoto(s)
	setSampleBatch(s)

	req := requestWithSession("POST", "/click", jsonBody(t, ClickRequest{X: 1, Y: 1, Space: "screen"}), s.ID)
	recorder := httptest.NewRecorder()
	handler.Click(recorder, req)

	assertStatusCode(t, recorder, http.StatusBadRequest)
}
