package httpapi

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/akshitagupta/varnmala/internal/catalog"
)

// handleListLevels returns the difficulty tiers in order.
func (r *Router) handleListLevels(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"levels": catalog.Levels()})
}

// handleCatalog returns the full item list for one level.
func (r *Router) handleCatalog(w http.ResponseWriter, req *http.Request) {
	level, err := catalog.ParseLevel(req.PathValue("level"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid level")
		return
	}
	items, err := catalog.Items(level)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid level")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"level": level,
		"items": items,
	})
}

// handleGetPrompt picks one random item for the requested level. The caller
// holds the expected item; nothing is remembered between this call and a
// later verify.
func (r *Router) handleGetPrompt(w http.ResponseWriter, req *http.Request) {
	level, err := catalog.ParseLevel(req.URL.Query().Get("level"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid level")
		return
	}
	item, err := catalog.Pick(level)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid level")
		return
	}
	writeJSON(w, http.StatusOK, item)
}

// handlePronounce speaks the given text through the playback coordinator.
// Playback failure is part of the payload, never a transport error.
func (r *Router) handlePronounce(w http.ResponseWriter, req *http.Request) {
	var body struct {
		Text string `json:"text"`
	}
	if err := json.NewDecoder(req.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if strings.TrimSpace(body.Text) == "" {
		writeError(w, http.StatusBadRequest, "text is required")
		return
	}

	success := r.speaker.Speak(req.Context(), body.Text)
	if !success {
		r.logger.Printf("pronounce: playback failed for %q", body.Text)
	}
	writeJSON(w, http.StatusOK, map[string]bool{"success": success})
}
