package app

import (
	"os"
	"testing"
	"time"
)

func TestGetenv(t *testing.T) {
	tests := []struct {
		name     string
		envKey   string
		envValue string
		defValue string
		want     string
	}{
		{
			name:     "env set",
			envKey:   "TEST_ENV_VAR",
			envValue: "custom_value",
			defValue: "default",
			want:     "custom_value",
		},
		{
			name:     "env not set",
			envKey:   "TEST_ENV_VAR_NOTSET",
			envValue: "",
			defValue: "default",
			want:     "default",
		},
		{
			name:     "empty default",
			envKey:   "TEST_ENV_VAR_EMPTY",
			envValue: "",
			defValue: "",
			want:     "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.envValue != "" {
				os.Setenv(tt.envKey, tt.envValue)
				defer os.Unsetenv(tt.envKey)
			}

			got := getenv(tt.envKey, tt.defValue)
			if got != tt.want {
				t.Errorf("getenv(%q, %q) = %q, want %q", tt.envKey, tt.defValue, got, tt.want)
			}
		})
	}
}

func TestGetenvIntClamped(t *testing.T) {
	tests := []struct {
		name     string
		envKey   string
		envValue string
		def      int
		min      int
		max      int
		want     int
	}{
		{
			name:     "value within range",
			envKey:   "TEST_INT_NORMAL",
			envValue: "80",
			def:      75,
			min:      0,
			max:      100,
			want:     80,
		},
		{
			name:     "value below min - clamp to min",
			envKey:   "TEST_INT_LOW",
			envValue: "-5",
			def:      75,
			min:      0,
			max:      100,
			want:     0,
		},
		{
			name:     "value above max - clamp to max",
			envKey:   "TEST_INT_HIGH",
			envValue: "200",
			def:      75,
			min:      0,
			max:      100,
			want:     100,
		},
		{
			name:     "env not set - use default",
			envKey:   "TEST_INT_NOTSET",
			envValue: "",
			def:      75,
			min:      0,
			max:      100,
			want:     75,
		},
		{
			name:     "invalid value - use default",
			envKey:   "TEST_INT_INVALID",
			envValue: "not_a_number",
			def:      75,
			min:      0,
			max:      100,
			want:     75,
		},
		{
			name:     "boundary: exactly min",
			envKey:   "TEST_INT_MIN",
			envValue: "0",
			def:      75,
			min:      0,
			max:      100,
			want:     0,
		},
		{
			name:     "boundary: exactly max",
			envKey:   "TEST_INT_MAX",
			envValue: "100",
			def:      75,
			min:      0,
			max:      100,
			want:     100,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.envValue != "" {
				os.Setenv(tt.envKey, tt.envValue)
				defer os.Unsetenv(tt.envKey)
			}

			got := getenvIntClamped(tt.envKey, tt.def, tt.min, tt.max)
			if got != tt.want {
				t.Errorf("getenvIntClamped(%q, %d, %d, %d) = %d, want %d",
					tt.envKey, tt.def, tt.min, tt.max, got, tt.want)
			}
		})
	}
}

func TestGetenvFloatClamped(t *testing.T) {
	tests := []struct {
		name     string
		envKey   string
		envValue string
		def      float64
		min      float64
		max      float64
		want     float64
	}{
		{
			name:     "value within range",
			envKey:   "TEST_FLOAT_NORMAL",
			envValue: "1.2",
			def:      1.0,
			min:      0.3,
			max:      2.0,
			want:     1.2,
		},
		{
			name:     "value below min - clamp to min",
			envKey:   "TEST_FLOAT_LOW",
			envValue: "0.1",
			def:      1.0,
			min:      0.3,
			max:      2.0,
			want:     0.3,
		},
		{
			name:     "value above max - clamp to max",
			envKey:   "TEST_FLOAT_HIGH",
			envValue: "3.5",
			def:      1.0,
			min:      0.3,
			max:      2.0,
			want:     2.0,
		},
		{
			name:     "env not set - use default",
			envKey:   "TEST_FLOAT_NOTSET",
			envValue: "",
			def:      1.0,
			min:      0.3,
			max:      2.0,
			want:     1.0,
		},
		{
			name:     "invalid value - use default",
			envKey:   "TEST_FLOAT_INVALID",
			envValue: "fast",
			def:      1.0,
			min:      0.3,
			max:      2.0,
			want:     1.0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.envValue != "" {
				os.Setenv(tt.envKey, tt.envValue)
				defer os.Unsetenv(tt.envKey)
			}

			got := getenvFloatClamped(tt.envKey, tt.def, tt.min, tt.max)
			if got != tt.want {
				t.Errorf("getenvFloatClamped(%q, %f, %f, %f) = %f, want %f",
					tt.envKey, tt.def, tt.min, tt.max, got, tt.want)
			}
		})
	}
}

func TestLoadConfigFromEnvDefaults(t *testing.T) {
	keysToClean := []string{
		"HTTP_ADDR", "DATABASE_URL", "LOG_LEVEL",
		"STT_LANGUAGE", "STT_MODEL", "TTS_LANGUAGE", "TTS_SPEAKER",
		"TTS_PACE", "TTS_SAMPLE_RATE", "MATCH_THRESHOLD",
		"PLAYBACK_POLL_MS", "PLAYBACK_MAX_WAIT_MS", "JWT_EXPIRY",
	}
	for _, key := range keysToClean {
		os.Unsetenv(key)
	}

	cfg := LoadConfigFromEnv()

	if cfg.HTTPAddr != ":8080" {
		t.Errorf("HTTPAddr = %q, want %q", cfg.HTTPAddr, ":8080")
	}
	if cfg.STTLanguage != "hi" {
		t.Errorf("STTLanguage = %q, want %q", cfg.STTLanguage, "hi")
	}
	if cfg.STTModel != "nova-2" {
		t.Errorf("STTModel = %q, want %q", cfg.STTModel, "nova-2")
	}
	if cfg.TTSLanguage != "hi-IN" {
		t.Errorf("TTSLanguage = %q, want %q", cfg.TTSLanguage, "hi-IN")
	}
	if cfg.TTSSpeaker != "meera" {
		t.Errorf("TTSSpeaker = %q, want %q", cfg.TTSSpeaker, "meera")
	}
	if cfg.TTSPace != 1.0 {
		t.Errorf("TTSPace = %f, want %f", cfg.TTSPace, 1.0)
	}
	if cfg.MatchThreshold != 75 {
		t.Errorf("MatchThreshold = %d, want 75", cfg.MatchThreshold)
	}
	if cfg.PlaybackPollMs != 100 {
		t.Errorf("PlaybackPollMs = %d, want 100", cfg.PlaybackPollMs)
	}
	if cfg.PlaybackMaxWaitMs != 30000 {
		t.Errorf("PlaybackMaxWaitMs = %d, want 30000", cfg.PlaybackMaxWaitMs)
	}
	if cfg.JWTExpiry != 24*time.Hour {
		t.Errorf("JWTExpiry = %v, want 24h", cfg.JWTExpiry)
	}
}

func TestLoadConfigFromEnvCustomValues(t *testing.T) {
	os.Setenv("HTTP_ADDR", ":9090")
	os.Setenv("STT_LANGUAGE", "en")
	os.Setenv("MATCH_THRESHOLD", "60")
	os.Setenv("TTS_PACE", "0.8")
	os.Setenv("JWT_EXPIRY", "1h")

	defer func() {
		os.Unsetenv("HTTP_ADDR")
		os.Unsetenv("STT_LANGUAGE")
		os.Unsetenv("MATCH_THRESHOLD")
		os.Unsetenv("TTS_PACE")
		os.Unsetenv("JWT_EXPIRY")
	}()

	cfg := LoadConfigFromEnv()

	if cfg.HTTPAddr != ":9090" {
		t.Errorf("HTTPAddr = %q, want %q", cfg.HTTPAddr, ":9090")
	}
	if cfg.STTLanguage != "en" {
		t.Errorf("STTLanguage = %q, want %q", cfg.STTLanguage, "en")
	}
	if cfg.MatchThreshold != 60 {
		t.Errorf("MatchThreshold = %d, want 60", cfg.MatchThreshold)
	}
	if cfg.TTSPace != 0.8 {
		t.Errorf("TTSPace = %f, want %f", cfg.TTSPace, 0.8)
	}
	if cfg.JWTExpiry != time.Hour {
		t.Errorf("JWTExpiry = %v, want 1h", cfg.JWTExpiry)
	}
}
