package stt

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
)

const defaultDeepgramURL = "https://api.deepgram.com/v1/listen"

// DeepgramClient implements the Client interface using Deepgram's
// pre-recorded transcription API.
type DeepgramClient struct {
	apiKey     string
	baseURL    string
	language   string
	model      string
	httpClient *http.Client
}

// DeepgramConfig holds configuration for the Deepgram client.
type DeepgramConfig struct {
	APIKey     string
	BaseURL    string       // endpoint override, mainly for tests
	Language   string       // e.g. "hi" for Hindi
	Model      string       // e.g. "nova-2"
	HTTPClient *http.Client // shared pooled client; a default is used when nil
}

// NewDeepgramClient creates a new Deepgram pre-recorded STT client.
func NewDeepgramClient(cfg DeepgramConfig) *DeepgramClient {
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = defaultDeepgramURL
	}
	language := cfg.Language
	if language == "" {
		language = "hi"
	}
	model := cfg.Model
	if model == "" {
		model = "nova-2"
	}
	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{}
	}
	return &DeepgramClient{
		apiKey:     cfg.APIKey,
		baseURL:    baseURL,
		language:   language,
		model:      model,
		httpClient: httpClient,
	}
}

// listenResponse represents a Deepgram pre-recorded API response.
type listenResponse struct {
	Results struct {
		Channels []struct {
			Alternatives []struct {
				Transcript string  `json:"transcript"`
				Confidence float64 `json:"confidence"`
			} `json:"alternatives"`
		} `json:"channels"`
	} `json:"results"`
}

// Transcribe sends a recorded clip and returns its transcript. An empty
// transcript from the provider maps to ErrUnrecognized; any transport or
// API failure maps to ErrUnavailable with the cause attached.
func (c *DeepgramClient) Transcribe(ctx context.Context, audio []byte, contentType string) (string, error) {
	q := url.Values{}
	q.Set("model", c.model)
	q.Set("language", c.language)
	q.Set("punctuate", "false")

	req, err := http.NewRequestWithContext(ctx, "POST", c.baseURL+"?"+q.Encode(), bytes.NewReader(audio))
	if err != nil {
		return "", fmt.Errorf("%w: create request: %v", ErrUnavailable, err)
	}
	if contentType == "" {
		contentType = "audio/wav"
	}
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("Authorization", "Token "+c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return "", fmt.Errorf("%w: %s - %s", ErrUnavailable, resp.Status, string(body))
	}

	var out listenResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", fmt.Errorf("%w: decode response: %v", ErrUnavailable, err)
	}

	var transcript string
	if len(out.Results.Channels) > 0 && len(out.Results.Channels[0].Alternatives) > 0 {
		transcript = out.Results.Channels[0].Alternatives[0].Transcript
	}
	if strings.TrimSpace(transcript) == "" {
		return "", ErrUnrecognized
	}
	return transcript, nil
}
