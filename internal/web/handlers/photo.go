package handlers

import (
	"log"
	"net/http"
	"path/filepath"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/tkadlec/rollcall/internal/config"
	"github.com/tkadlec/rollcall/internal/imaging"
)

// PhotoHandler serves photo upload and preview thumbnails.
type PhotoHandler struct {
	config *config.Config
	store  *SessionStore
}

// NewPhotoHandler creates a new photo handler.
func NewPhotoHandler(cfg *config.Config, store *SessionStore) *PhotoHandler {
	return &PhotoHandler{config: cfg, store: store}
}

// Upload replaces the session photo. Any previously detected regions are
// destroyed with it; the client must run detection again.
func (h *PhotoHandler) Upload(w http.ResponseWriter, r *http.Request) {
	s := sessionFromRequest(w, r, h.store)
	if s == nil {
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, h.config.Web.MaxUploadBytes)

	file, header, err := r.FormFile("file")
	if err != nil {
		respondError(w, http.StatusBadRequest, "missing file field")
		return
	}
	defer file.Close()

	img, err := imaging.Decode(file)
	if err != nil {
		respondError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}

	name := filepath.Base(header.Filename)
	s.SetPhoto(img, name)

	bounds := img.Bounds()
	log.Printf("session %s: photo %s loaded (%dx%d)", sanitizeForLog(s.ID), sanitizeForLog(name), bounds.Dx(), bounds.Dy())
	respondJSON(w, http.StatusOK, map[string]any{
		"name":   name,
		"width":  bounds.Dx(),
		"height": bounds.Dy(),
	})
}

// Thumbnail returns a JPEG preview scaled to fit the requested size.
func (h *PhotoHandler) Thumbnail(w http.ResponseWriter, r *http.Request) {
	s := sessionFromRequest(w, r, h.store)
	if s == nil {
		return
	}

	img, _, err := s.Photo()
	if err != nil {
		respondError(w, statusForError(err), err.Error())
		return
	}

	size, err := strconv.Atoi(chi.URLParam(r, "size"))
	if err != nil || size < 1 || size > 4096 {
		respondError(w, http.StatusBadRequest, "invalid thumbnail size")
		return
	}

	w.Header().Set("Content-Type", "image/jpeg")
	if err := imaging.EncodeJPEG(w, imaging.Thumbnail(img, size)); err != nil {
		log.Printf("session %s: thumbnail encode failed: %v", sanitizeForLog(s.ID), err)
	}
}
