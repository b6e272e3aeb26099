package app

import (
	"os"
	"strconv"
	"time"
)

type Config struct {
	HTTPAddr    string
	DatabaseURL string // optional; auth endpoints are disabled when empty
	SentryDSN   string
	LogLevel    string

	// Speech-to-text provider
	DeepgramAPIKey string
	STTLanguage    string
	STTModel       string

	// Text-to-speech provider
	SarvamAPIKey  string
	SarvamTTSURL  string
	TTSLanguage   string
	TTSSpeaker    string
	TTSPace       float64
	TTSSampleRate int

	// Local playback. PlayerCommand must decode the format the TTS
	// provider returns (WAV); the default player does.
	PlayerCommand     string
	PlaybackTempFile  string
	PlaybackPollMs    int
	PlaybackMaxWaitMs int

	// Matching
	MatchThreshold int // fuzzy sentence similarity cutoff, 0-100

	// JWT Authentication
	JWTSecret string
	JWTExpiry time.Duration
}

func LoadConfigFromEnv() Config {
	jwtExpiry, err := time.ParseDuration(getenv("JWT_EXPIRY", "24h"))
	if err != nil {
		jwtExpiry = 24 * time.Hour
	}

	return Config{
		HTTPAddr:    getenv("HTTP_ADDR", ":8080"),
		DatabaseURL: getenv("DATABASE_URL", ""),
		SentryDSN:   getenv("SENTRY_DSN", ""),
		LogLevel:    getenv("LOG_LEVEL", "info"),

		// Speech-to-text provider
		DeepgramAPIKey: getenv("DEEPGRAM_API_KEY", ""),
		STTLanguage:    getenv("STT_LANGUAGE", "hi"),
		STTModel:       getenv("STT_MODEL", "nova-2"),

		// Text-to-speech provider
		SarvamAPIKey:  os.Getenv("SARVAM_API_KEY"), // secret, no fallback
		SarvamTTSURL:  getenv("SARVAM_TTS_URL", ""),
		TTSLanguage:   getenv("TTS_LANGUAGE", "hi-IN"),
		TTSSpeaker:    getenv("TTS_SPEAKER", "meera"),
		TTSPace:       getenvFloatClamped("TTS_PACE", 1.0, 0.3, 2.0),
		TTSSampleRate: getenvIntClamped("TTS_SAMPLE_RATE", 16000, 8000, 48000),

		// Local playback
		PlayerCommand:     getenv("PLAYER_COMMAND", ""),
		PlaybackTempFile:  getenv("PLAYBACK_TEMP_FILE", ""),
		PlaybackPollMs:    getenvIntClamped("PLAYBACK_POLL_MS", 100, 10, 1000),
		PlaybackMaxWaitMs: getenvIntClamped("PLAYBACK_MAX_WAIT_MS", 30000, 1000, 300000),

		// Matching
		MatchThreshold: getenvIntClamped("MATCH_THRESHOLD", 75, 0, 100),

		// JWT Authentication
		JWTSecret: os.Getenv("JWT_SECRET"), // Required for auth - no fallback for security
		JWTExpiry: jwtExpiry,
	}
}

func getenv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

func getenvIntClamped(k string, def, min, max int) int {
	v := os.Getenv(k)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	if n < min {
		return min
	}
	if n > max {
		return max
	}
	return n
}

func getenvFloatClamped(k string, def, min, max float64) float64 {
	v := os.Getenv(k)
	if v == "" {
		return def
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return def
	}
	if f < min {
		return min
	}
	if f > max {
		return max
	}
	return f
}
