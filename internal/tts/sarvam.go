package tts

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
)

const defaultSarvamURL = "https://api.magicapi.dev/api/v1/sarvam/ai-models/text-to-speech"

// SarvamClient implements the Client interface using Sarvam's bulbul TTS
// model, which handles Devanagari text well.
type SarvamClient struct {
	apiKey     string
	baseURL    string
	language   string
	speaker    string
	pace       float64
	sampleRate int
	httpClient *http.Client
}

// SarvamConfig holds configuration for the Sarvam client.
type SarvamConfig struct {
	APIKey     string
	BaseURL    string       // endpoint override, mainly for tests
	Language   string       // target language code, e.g. "hi-IN"
	Speaker    string       // voice name, e.g. "meera"
	Pace       float64      // speaking rate, 1.0 = normal
	SampleRate int          // output sample rate in Hz
	HTTPClient *http.Client // shared pooled client; a default is used when nil
}

// NewSarvamClient creates a new Sarvam TTS client.
func NewSarvamClient(cfg SarvamConfig) *SarvamClient {
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = defaultSarvamURL
	}
	language := cfg.Language
	if language == "" {
		language = "hi-IN"
	}
	speaker := cfg.Speaker
	if speaker == "" {
		speaker = "meera"
	}
	pace := cfg.Pace
	if pace <= 0 {
		pace = 1.0
	}
	sampleRate := cfg.SampleRate
	if sampleRate <= 0 {
		sampleRate = 16000
	}
	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{}
	}
	return &SarvamClient{
		apiKey:     cfg.APIKey,
		baseURL:    baseURL,
		language:   language,
		speaker:    speaker,
		pace:       pace,
		sampleRate: sampleRate,
		httpClient: httpClient,
	}
}

// synthesisRequest represents a Sarvam TTS request.
type synthesisRequest struct {
	Inputs              []string `json:"inputs"`
	TargetLanguageCode  string   `json:"target_language_code"`
	Speaker             string   `json:"speaker"`
	Pitch               int      `json:"pitch"`
	Pace                float64  `json:"pace"`
	Loudness            float64  `json:"loudness"`
	SpeechSampleRate    int      `json:"speech_sample_rate"`
	EnablePreprocessing bool     `json:"enable_preprocessing"`
	Model               string   `json:"model"`
}

// synthesisResponse carries the synthesized clips, base64-encoded, one per input.
type synthesisResponse struct {
	Audios []string `json:"audios"`
}

// Synthesize converts text to speech and returns WAV audio bytes.
func (c *SarvamClient) Synthesize(ctx context.Context, text string) ([]byte, error) {
	req := synthesisRequest{
		Inputs:              []string{text},
		TargetLanguageCode:  c.language,
		Speaker:             c.speaker,
		Pace:                c.pace,
		Loudness:            1,
		SpeechSampleRate:    c.sampleRate,
		EnablePreprocessing: true,
		Model:               "bulbul:v1",
	}

	body, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, "POST", c.baseURL, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Accept", "application/json")
	httpReq.Header.Set("x-magicapi-key", c.apiKey)

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		respBody, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("Sarvam API error: %s - %s", resp.Status, string(respBody))
	}

	var out synthesisResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}
	if len(out.Audios) == 0 {
		return nil, fmt.Errorf("Sarvam API returned no audio")
	}

	audio, err := base64.StdEncoding.DecodeString(out.Audios[0])
	if err != nil {
		return nil, fmt.Errorf("failed to decode audio payload: %w", err)
	}
	return audio, nil
}
