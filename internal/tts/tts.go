package tts

import "context"

// Client defines the interface for text-to-speech providers.
type Client interface {
	// Synthesize converts text to spoken audio and returns the raw audio
	// bytes in the provider's configured output format.
	Synthesize(ctx context.Context, text string) ([]byte, error)
}
