package stt

import (
	"context"
	"errors"
)

// ErrUnrecognized means the provider processed the audio but produced no
// confident transcript. This is a legitimate "silence or mumble" outcome,
// not a service failure, and callers must fold it into a normal
// incorrect-answer result.
var ErrUnrecognized = errors.New("speech not recognized")

// ErrUnavailable means the call to the provider itself failed (network,
// auth, quota). Callers should surface this as a server-side failure.
var ErrUnavailable = errors.New("speech service unavailable")

// Client defines the interface for speech-to-text providers that transcribe
// a complete recorded clip in one call. Implementations must translate
// provider-specific failures into ErrUnrecognized or ErrUnavailable; raw
// provider errors never cross this boundary.
type Client interface {
	Transcribe(ctx context.Context, audio []byte, contentType string) (string, error)
}
