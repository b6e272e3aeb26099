package stt

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"sync"

	"github.com/gorilla/websocket"
)

const defaultDeepgramWSURL = "wss://api.deepgram.com/v1/listen"

// LiveResult is one transcription update from a streaming session.
type LiveResult struct {
	Text        string
	Confidence  float64
	Final       bool // this segment will not be revised further
	SpeechFinal bool // the speaker has finished the utterance
}

// LiveConfig holds configuration for a streaming transcription session.
type LiveConfig struct {
	APIKey   string
	BaseURL  string // websocket endpoint override, mainly for tests
	Language string // e.g. "hi"
	Model    string // e.g. "nova-2"
	// Encoding, SampleRate and Channels describe raw audio streams. Leave
	// them zero for containerized formats the provider detects itself
	// (webm/opus from browser recorders).
	Encoding   string
	SampleRate int
	Channels   int
}

// LiveClient is a streaming transcription session over a websocket.
// Audio chunks go in through Send; interim and final results come out of
// Results. Close is safe to call more than once.
type LiveClient struct {
	conn      *websocket.Conn
	results   chan LiveResult
	errs      chan error
	done      chan struct{}
	closeOnce sync.Once
	writeMu   sync.Mutex
	wg        sync.WaitGroup
}

// NewLiveClient opens a streaming session with the provider.
func NewLiveClient(ctx context.Context, cfg LiveConfig) (*LiveClient, error) {
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = defaultDeepgramWSURL
	}
	language := cfg.Language
	if language == "" {
		language = "hi"
	}
	model := cfg.Model
	if model == "" {
		model = "nova-2"
	}

	q := url.Values{}
	q.Set("model", model)
	q.Set("language", language)
	q.Set("interim_results", "true")
	if cfg.Encoding != "" {
		q.Set("encoding", cfg.Encoding)
		q.Set("sample_rate", fmt.Sprint(cfg.SampleRate))
		q.Set("channels", fmt.Sprint(cfg.Channels))
	}

	headers := http.Header{}
	headers.Set("Authorization", "Token "+cfg.APIKey)

	conn, _, err := websocket.DefaultDialer.DialContext(ctx, baseURL+"?"+q.Encode(), headers)
	if err != nil {
		return nil, fmt.Errorf("%w: dial: %v", ErrUnavailable, err)
	}

	c := &LiveClient{
		conn:    conn,
		results: make(chan LiveResult, 16),
		errs:    make(chan error, 1),
		done:    make(chan struct{}),
	}
	c.wg.Add(1)
	go c.readLoop()
	return c, nil
}

// Send forwards one audio chunk to the provider.
func (c *LiveClient) Send(audio []byte) error {
	select {
	case <-c.done:
		return fmt.Errorf("session closed")
	default:
	}
	c.writeMu.Lock()
	defer c.writeMu.Unlock()
	return c.conn.WriteMessage(websocket.BinaryMessage, audio)
}

// Finish tells the provider no more audio is coming, so it flushes any
// pending final result.
func (c *LiveClient) Finish() error {
	c.writeMu.Lock()
	defer c.writeMu.Unlock()
	return c.conn.WriteMessage(websocket.TextMessage, []byte(`{"type":"CloseStream"}`))
}

// Results returns the channel of transcription updates. It is closed when
// the session ends.
func (c *LiveClient) Results() <-chan LiveResult { return c.results }

// Errors returns the channel of session errors.
func (c *LiveClient) Errors() <-chan error { return c.errs }

// Close tears down the session and waits for the reader to stop.
func (c *LiveClient) Close() error {
	var err error
	c.closeOnce.Do(func() {
		close(c.done)
		c.writeMu.Lock()
		_ = c.conn.WriteMessage(websocket.TextMessage, []byte(`{"type":"CloseStream"}`))
		c.writeMu.Unlock()
		err = c.conn.Close()
		c.wg.Wait()
		close(c.results)
		close(c.errs)
	})
	return err
}

// liveResponse mirrors the provider's streaming result message.
type liveResponse struct {
	Type    string `json:"type"`
	Channel struct {
		Alternatives []struct {
			Transcript string  `json:"transcript"`
			Confidence float64 `json:"confidence"`
		} `json:"alternatives"`
	} `json:"channel"`
	IsFinal     bool `json:"is_final"`
	SpeechFinal bool `json:"speech_final"`
}

func (c *LiveClient) readLoop() {
	defer c.wg.Done()

	for {
		select {
		case <-c.done:
			return
		default:
		}

		_, msg, err := c.conn.ReadMessage()
		if err != nil {
			select {
			case <-c.done:
			case c.errs <- fmt.Errorf("%w: read: %v", ErrUnavailable, err):
			default:
			}
			return
		}

		var resp liveResponse
		if err := json.Unmarshal(msg, &resp); err != nil {
			continue
		}
		if resp.Type != "Results" {
			continue
		}

		r := LiveResult{Final: resp.IsFinal, SpeechFinal: resp.SpeechFinal}
		if len(resp.Channel.Alternatives) > 0 {
			r.Text = resp.Channel.Alternatives[0].Transcript
			r.Confidence = resp.Channel.Alternatives[0].Confidence
		}
		// Empty interim updates carry no information; boundary markers do.
		if r.Text == "" && !r.Final && !r.SpeechFinal {
			continue
		}

		select {
		case <-c.done:
			return
		case c.results <- r:
		}
	}
}
