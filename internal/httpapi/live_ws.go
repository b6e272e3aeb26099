package httpapi

import (
	"net/http"
	"time"

	"github.com/akshitagupta/varnmala/internal/catalog"
	"github.com/akshitagupta/varnmala/internal/stt"
	"github.com/akshitagupta/varnmala/internal/verify"
	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

const liveSessionMaxDuration = 2 * time.Minute

// liveServerMessage is what the server pushes over the practice socket:
// interim transcripts while the learner speaks, one final result, or an
// error that ends the session.
type liveServerMessage struct {
	Type   string         `json:"type"` // "transcript", "result", "error"
	Text   string         `json:"text,omitempty"`
	Final  bool           `json:"final,omitempty"`
	Result *verify.Result `json:"result,omitempty"`
	Error  string         `json:"error,omitempty"`
}

// handleLivePractice streams microphone audio from the browser to the
// transcription provider and pushes transcripts back as they arrive. When
// the provider signals the end of the utterance, the accumulated transcript
// is evaluated against the expected item and a final verdict is sent.
//
// Query parameters: level (required), expected (required), mode (optional,
// sentence levels only). The client sends binary frames of audio and may
// send a text frame "stop" to flush early.
func (r *Router) handleLivePractice(w http.ResponseWriter, req *http.Request) {
	level, err := catalog.ParseLevel(req.URL.Query().Get("level"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid level")
		return
	}
	expected := req.URL.Query().Get("expected")
	if expected == "" {
		writeError(w, http.StatusBadRequest, "expected is required")
		return
	}
	mode := verify.Mode(req.URL.Query().Get("mode"))
	if mode == "" {
		mode = verify.ModeFuzzy
	}

	if !r.live.Add() {
		writeError(w, http.StatusServiceUnavailable, "shutting down")
		return
	}
	defer r.live.Done()

	conn, err := upgrader.Upgrade(w, req, nil)
	if err != nil {
		r.logger.Printf("live: upgrade failed: %v", err)
		return
	}
	defer conn.Close()

	session, err := stt.NewLiveClient(req.Context(), stt.LiveConfig{
		APIKey:   r.cfg.DeepgramAPIKey,
		Language: r.cfg.STTLanguage,
		Model:    r.cfg.STTModel,
	})
	if err != nil {
		r.logger.Printf("live: open stt session: %v", err)
		captureError(req, err, "live stt session failed")
		_ = conn.WriteJSON(liveServerMessage{Type: "error", Error: "speech service unavailable"})
		return
	}
	defer session.Close()

	// Reader: forward browser audio frames into the STT session.
	go func() {
		for {
			msgType, data, err := conn.ReadMessage()
			if err != nil {
				_ = session.Close()
				return
			}
			switch msgType {
			case websocket.BinaryMessage:
				if err := session.Send(data); err != nil {
					return
				}
			case websocket.TextMessage:
				if string(data) == "stop" {
					_ = session.Finish()
				}
			}
		}
	}()

	deadline := time.NewTimer(liveSessionMaxDuration)
	defer deadline.Stop()

	// A learner utterance can arrive split across several final segments;
	// collect them until the provider marks the speech finished.
	var transcript string
	for {
		select {
		case res, ok := <-session.Results():
			if !ok {
				return
			}
			if res.Final && res.Text != "" {
				if transcript != "" {
					transcript += " "
				}
				transcript += res.Text
			}
			if !res.SpeechFinal {
				_ = conn.WriteJSON(liveServerMessage{Type: "transcript", Text: res.Text, Final: res.Final})
				continue
			}

			result := r.evaluator.Evaluate(level, mode, expected, transcript)
			_ = conn.WriteJSON(liveServerMessage{Type: "result", Result: &result})
			return

		case err, ok := <-session.Errors():
			if !ok {
				return
			}
			r.logger.Printf("live: stt session error: %v", err)
			_ = conn.WriteJSON(liveServerMessage{Type: "error", Error: "speech service unavailable"})
			return

		case <-deadline.C:
			_ = conn.WriteJSON(liveServerMessage{Type: "error", Error: "session timed out"})
			return

		case <-req.Context().Done():
			return
		}
	}
}
