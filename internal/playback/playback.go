// Package playback speaks prompt text through the local audio device.
// Synthesized audio lands in a single shared temp-file slot that is reused
// across calls, so the whole synthesize-play-release sequence is serialized.
package playback

import (
	"context"
	"log"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/akshitagupta/varnmala/internal/tts"
)

// Device is the port to a local audio player. Start begins playback of the
// file at path and returns once the player is running; Playing reports
// whether audio is still being produced; Err reports how the last playback
// ended, non-nil when the player failed rather than finishing; Stop aborts
// playback and releases the player's hold on the file. Stop must be safe to
// call after playback has already finished.
type Device interface {
	Start(path string) error
	Playing() bool
	Err() error
	Stop()
}

const (
	defaultPollInterval = 100 * time.Millisecond
	defaultMaxWait      = 30 * time.Second
)

// Config holds tunables for the Coordinator.
type Config struct {
	TempPath     string        // shared temp audio slot; one file reused across calls
	PollInterval time.Duration // how often to check whether playback finished
	MaxWait      time.Duration // upper bound on a single playback; expiry is a failure
}

// Coordinator turns text into audible speech. All Speak calls are serialized
// process-wide: the temp slot and the audio device are one shared resource,
// and overlapping playback would corrupt both.
type Coordinator struct {
	mu           sync.Mutex
	synth        tts.Client
	dev          Device
	logger       *log.Logger
	tempPath     string
	pollInterval time.Duration
	maxWait      time.Duration
}

// NewCoordinator creates a Coordinator around a synthesis client and a device.
func NewCoordinator(synth tts.Client, dev Device, cfg Config, logger *log.Logger) *Coordinator {
	tempPath := cfg.TempPath
	if tempPath == "" {
		tempPath = filepath.Join(os.TempDir(), "varnmala_prompt_audio.wav")
	}
	pollInterval := cfg.PollInterval
	if pollInterval <= 0 {
		pollInterval = defaultPollInterval
	}
	maxWait := cfg.MaxWait
	if maxWait <= 0 {
		maxWait = defaultMaxWait
	}
	return &Coordinator{
		synth:        synth,
		dev:          dev,
		logger:       logger,
		tempPath:     tempPath,
		pollInterval: pollInterval,
		maxWait:      maxWait,
	}
}

// Speak synthesizes text and plays it, blocking until playback finishes or
// fails. It reports success; every failure is logged and recoverable, never
// fatal. On return no playback is in progress and the temp slot is released.
func (c *Coordinator) Speak(ctx context.Context, text string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	audio, err := c.synth.Synthesize(ctx, text)
	if err != nil {
		c.logger.Printf("playback: synthesis failed: %v", err)
		return false
	}

	if err := os.WriteFile(c.tempPath, audio, 0o644); err != nil {
		c.logger.Printf("playback: write temp audio: %v", err)
		return false
	}

	if err := c.dev.Start(c.tempPath); err != nil {
		c.logger.Printf("playback: start player: %v", err)
		return false
	}
	// Always release the device's hold on the temp slot, even on timeout
	// or cancellation, so the next call can overwrite it.
	defer c.dev.Stop()

	deadline := time.Now().Add(c.maxWait)
	ticker := time.NewTicker(c.pollInterval)
	defer ticker.Stop()

	for c.dev.Playing() {
		if time.Now().After(deadline) {
			c.logger.Printf("playback: still playing after %s, aborting", c.maxWait)
			return false
		}
		select {
		case <-ctx.Done():
			c.logger.Printf("playback: canceled: %v", ctx.Err())
			return false
		case <-ticker.C:
		}
	}

	// A player that died is indistinguishable from one that finished by
	// Playing alone; an abnormal exit means nothing was played.
	if err := c.dev.Err(); err != nil {
		c.logger.Printf("playback: player failed: %v", err)
		return false
	}
	return true
}
