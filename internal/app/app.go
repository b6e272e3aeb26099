package app

import (
	"context"
	"log"
	"net"
	"net/http"
	"time"

	"github.com/akshitagupta/varnmala/internal/httpapi"
	"github.com/akshitagupta/varnmala/internal/playback"
	"github.com/akshitagupta/varnmala/internal/store"
	"github.com/akshitagupta/varnmala/internal/stt"
	"github.com/akshitagupta/varnmala/internal/tts"
	"github.com/jackc/pgx/v5/pgxpool"
)

type App struct {
	cfg        Config
	logger     *log.Logger
	db         *pgxpool.Pool // nil when DATABASE_URL is unset
	store      *store.Store  // nil when DATABASE_URL is unset
	speaker    *playback.Coordinator
	live       *httpapi.LiveRegistry
	httpClient *http.Client // shared pooled client for the TTS/STT collaborators
}

func New(cfg Config, logger *log.Logger) (*App, error) {
	a := &App{cfg: cfg, logger: logger}

	// The database only backs learner accounts. Practice content is static
	// and verification results are never persisted, so the server runs
	// without one; auth endpoints then answer 503.
	if cfg.DatabaseURL != "" {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		db, err := pgxpool.New(ctx, cfg.DatabaseURL)
		if err != nil {
			return nil, err
		}
		if err := db.Ping(ctx); err != nil {
			db.Close()
			return nil, err
		}
		a.db = db
		a.store = store.New(db)
	} else {
		logger.Printf("no DATABASE_URL configured, auth endpoints disabled")
	}

	// Shared HTTP client with connection pooling. Keeps TCP connections
	// alive to reduce latency for repeated synthesis and transcription calls.
	a.httpClient = &http.Client{
		Timeout: 30 * time.Second,
		Transport: &http.Transport{
			DialContext: (&net.Dialer{
				Timeout:   5 * time.Second,
				KeepAlive: 30 * time.Second,
			}).DialContext,
			MaxIdleConns:          100,
			MaxIdleConnsPerHost:   10,
			IdleConnTimeout:       90 * time.Second,
			TLSHandshakeTimeout:   5 * time.Second,
			ExpectContinueTimeout: 1 * time.Second,
		},
	}

	synth := tts.NewSarvamClient(tts.SarvamConfig{
		APIKey:     cfg.SarvamAPIKey,
		BaseURL:    cfg.SarvamTTSURL,
		Language:   cfg.TTSLanguage,
		Speaker:    cfg.TTSSpeaker,
		Pace:       cfg.TTSPace,
		SampleRate: cfg.TTSSampleRate,
		HTTPClient: a.httpClient,
	})

	device := playback.NewProcessDevice(cfg.PlayerCommand)
	a.speaker = playback.NewCoordinator(synth, device, playback.Config{
		TempPath:     cfg.PlaybackTempFile,
		PollInterval: time.Duration(cfg.PlaybackPollMs) * time.Millisecond,
		MaxWait:      time.Duration(cfg.PlaybackMaxWaitMs) * time.Millisecond,
	}, logger)

	a.live = httpapi.NewLiveRegistry()

	return a, nil
}

func (a *App) Router() http.Handler {
	transcriber := stt.NewDeepgramClient(stt.DeepgramConfig{
		APIKey:     a.cfg.DeepgramAPIKey,
		Language:   a.cfg.STTLanguage,
		Model:      a.cfg.STTModel,
		HTTPClient: a.httpClient,
	})

	routerCfg := httpapi.RouterConfig{
		MatchThreshold: a.cfg.MatchThreshold,
		DeepgramAPIKey: a.cfg.DeepgramAPIKey,
		STTLanguage:    a.cfg.STTLanguage,
		STTModel:       a.cfg.STTModel,
		JWTSecret:      a.cfg.JWTSecret,
		JWTExpiry:      a.cfg.JWTExpiry,
	}
	return httpapi.NewRouter(routerCfg, a.logger, a.speaker, transcriber, a.store, a.live)
}

// Drain refuses new live-practice sessions and blocks until the open ones
// finish. Call after the HTTP listener has stopped accepting requests.
func (a *App) Drain() {
	a.live.StartDraining()
	a.live.Wait()
}

func (a *App) Close() error {
	if a.db != nil {
		a.db.Close()
	}
	return nil
}
