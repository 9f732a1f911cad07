package handlers

import (
	"encoding/json"
	"log"
	"net/http"

	"github.com/tkadlec/rollcall/internal/detect"
	"github.com/tkadlec/rollcall/internal/letterbox"
	"github.com/tkadlec/rollcall/internal/region"
)

// RegionsHandler runs detection and serves region queries, including the
// viewport fit and click resolution.
type RegionsHandler struct {
	store    *SessionStore
	detector detect.Detector
}

// NewRegionsHandler creates a new regions handler. The detector may be nil
// when no backend could be configured; detection then answers 503 while the
// rest of the API keeps working.
func NewRegionsHandler(store *SessionStore, detector detect.Detector) *RegionsHandler {
	return &RegionsHandler{store: store, detector: detector}
}

// regionResponse describes one region to the client. Display coordinates
// are included once a viewport fit exists; they are derived values the
// client uses to draw boxes, rebuilt on every fit change.
type regionResponse struct {
	ID       int  `json:"id"`
	X        int  `json:"x"`
	Y        int  `json:"y"`
	W        int  `json:"w"`
	H        int  `json:"h"`
	Assigned *int `json:"assigned,omitempty"`

	DisplayX *int `json:"display_x,omitempty"`
	DisplayY *int `json:"display_y,omitempty"`
	DisplayW *int `json:"display_w,omitempty"`
	DisplayH *int `json:"display_h,omitempty"`
}

func describeRegion(r region.Region, fit *letterbox.Fit) regionResponse {
	resp := regionResponse{ID: r.ID, X: r.X, Y: r.Y, W: r.W, H: r.H}
	if entry, ok := r.Assigned(); ok {
		resp.Assigned = &entry
	}
	if fit != nil {
		x, y := fit.ToDisplay(r.X, r.Y)
		x2, y2 := fit.ToDisplay(r.X+r.W, r.Y+r.H)
		w := x2 - x
		h := y2 - y
		resp.DisplayX, resp.DisplayY = &x, &y
		resp.DisplayW, resp.DisplayH = &w, &h
	}
	return resp
}

// Detect runs the face detector over the session photo and replaces the
// region batch wholesale. Previous regions and their assignments are gone
// after this call, which is exactly the re-detect semantics the operator
// expects.
func (h *RegionsHandler) Detect(w http.ResponseWriter, r *http.Request) {
	s := sessionFromRequest(w, r, h.store)
	if s == nil {
		return
	}
	if h.detector == nil {
		respondError(w, http.StatusServiceUnavailable, "no face detector configured")
		return
	}

	img, _, err := s.Photo()
	if err != nil {
		respondError(w, statusForError(err), err.Error())
		return
	}

	rects, err := h.detector.Detect(r.Context(), img)
	if err != nil {
		respondError(w, http.StatusBadGateway, err.Error())
		return
	}

	batch := region.NewBatch(rects)
	s.SetBatch(batch)

	log.Printf("session %s: %s detector found %d faces", sanitizeForLog(s.ID), h.detector.Name(), batch.Len())
	h.respondRegions(w, s)
}

// List returns the current batch.
func (h *RegionsHandler) List(w http.ResponseWriter, r *http.Request) {
	s := sessionFromRequest(w, r, h.store)
	if s == nil {
		return
	}
	h.respondRegions(w, s)
}

// ViewportRequest carries the on-screen size of the photo viewer.
type ViewportRequest struct {
	Width  int `json:"width"`
	Height int `json:"height"`
}

// SetViewport recomputes the letterbox fit after the client viewport
// changed. Clients must call this on every resize; a stale fit breaks
// display-space hit-testing.
func (h *RegionsHandler) SetViewport(w http.ResponseWriter, r *http.Request) {
	s := sessionFromRequest(w, r, h.store)
	if s == nil {
		return
	}

	var req ViewportRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	fit, err := s.SetViewport(req.Width, req.Height)
	if err != nil {
		respondError(w, statusForError(err), err.Error())
		return
	}
	respondJSON(w, http.StatusOK, fit)
}

// ClickRequest is a click either in display space (the default, as reported
// by the browser) or directly in image space.
type ClickRequest struct {
	X     int    `json:"x"`
	Y     int    `json:"y"`
	Space string `json:"space,omitempty"` // "display" (default) or "image"
}

// Click resolves a click to the region under it. Overlapping boxes resolve
// to the last-created region, the one drawn on top. A miss is a normal
// answer, not an error.
func (h *RegionsHandler) Click(w http.ResponseWriter, r *http.Request) {
	s := sessionFromRequest(w, r, h.store)
	if s == nil {
		return
	}

	var req ClickRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	var hit region.Region
	var ok bool
	var err error
	switch req.Space {
	case "", "display":
		hit, ok, err = s.HitDisplay(req.X, req.Y)
	case "image":
		hit, ok, err = s.HitImage(req.X, req.Y)
	default:
		respondError(w, http.StatusBadRequest, "space must be \"display\" or \"image\"")
		return
	}
	if err != nil {
		respondError(w, statusForError(err), err.Error())
		return
	}

	if !ok {
		respondJSON(w, http.StatusOK, map[string]any{"hit": false})
		return
	}

	var fitPtr *letterbox.Fit
	if fit, err := s.Fit(); err == nil {
		fitPtr = &fit
	}
	respondJSON(w, http.StatusOK, map[string]any{
		"hit":    true,
		"region": describeRegion(hit, fitPtr),
	})
}

func (h *RegionsHandler) respondRegions(w http.ResponseWriter, s *Session) {
	snapshot, err := s.Regions()
	if err != nil {
		respondError(w, statusForError(err), err.Error())
		return
	}

	var fitPtr *letterbox.Fit
	if fit, err := s.Fit(); err == nil {
		fitPtr = &fit
	}

	regions := make([]regionResponse, 0, len(snapshot))
	for _, reg := range snapshot {
		regions = append(regions, describeRegion(reg, fitPtr))
	}
	respondJSON(w, http.StatusOK, map[string]any{"regions": regions})
}
