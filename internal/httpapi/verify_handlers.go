package httpapi

import (
	"encoding/base64"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/akshitagupta/varnmala/internal/catalog"
	"github.com/akshitagupta/varnmala/internal/stt"
	"github.com/akshitagupta/varnmala/internal/verify"
)

type verifyRequest struct {
	Level    string `json:"level"`
	Expected string `json:"expected"`
	// Exactly one of Text and Audio must be present.
	Text  *string `json:"text,omitempty"`
	Audio *string `json:"audio,omitempty"` // base64-encoded recorded clip
	// ContentType describes the clip, e.g. "audio/wav". Optional.
	ContentType string `json:"content_type,omitempty"`
	// Mode selects the sentence strategy: "exact" or "fuzzy". Defaults to
	// exact for typed text and fuzzy for audio, matching how learners use
	// each input. Ignored for non-sentence levels.
	Mode string `json:"mode,omitempty"`
}

// handleVerify checks a learner response against the expected item.
// Input validation happens before any collaborator call.
func (r *Router) handleVerify(w http.ResponseWriter, req *http.Request) {
	req.Body = http.MaxBytesReader(w, req.Body, r.cfg.MaxAudioBytes*2)

	var body verifyRequest
	if err := json.NewDecoder(req.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	level, err := catalog.ParseLevel(body.Level)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid level")
		return
	}
	if body.Expected == "" {
		writeError(w, http.StatusBadRequest, "expected is required")
		return
	}
	if (body.Text == nil) == (body.Audio == nil) {
		writeError(w, http.StatusBadRequest, "exactly one of text or audio is required")
		return
	}

	mode := verify.Mode(body.Mode)
	switch mode {
	case verify.ModeExact, verify.ModeFuzzy:
	case "":
		if body.Audio != nil {
			mode = verify.ModeFuzzy
		} else {
			mode = verify.ModeExact
		}
	default:
		writeError(w, http.StatusBadRequest, "invalid mode")
		return
	}

	var response string
	if body.Text != nil {
		response = *body.Text
	} else {
		clip, err := base64.StdEncoding.DecodeString(*body.Audio)
		if err != nil {
			writeError(w, http.StatusBadRequest, "audio is not valid base64")
			return
		}
		if int64(len(clip)) > r.cfg.MaxAudioBytes {
			writeError(w, http.StatusBadRequest, "audio clip too large")
			return
		}

		response, err = r.transcriber.Transcribe(req.Context(), clip, body.ContentType)
		if errors.Is(err, stt.ErrUnrecognized) {
			// A legitimate outcome, not an error: nothing understood.
			writeJSON(w, http.StatusOK, verify.Result{
				RecognizedText: "",
				Correct:        false,
				Message:        "Could not understand the audio",
			})
			return
		}
		if err != nil {
			r.logger.Printf("verify: transcription failed: %v", err)
			captureError(req, err, "transcription failed")
			writeError(w, http.StatusBadGateway, "speech service unavailable")
			return
		}
	}

	writeJSON(w, http.StatusOK, r.evaluator.Evaluate(level, mode, body.Expected, response))
}
