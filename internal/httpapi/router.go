package httpapi

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"time"

	"github.com/akshitagupta/varnmala/internal/store"
	"github.com/akshitagupta/varnmala/internal/stt"
	"github.com/akshitagupta/varnmala/internal/verify"
	"github.com/getsentry/sentry-go"
)

type RouterConfig struct {
	// Matching
	MatchThreshold int // fuzzy sentence similarity cutoff, 0-100

	// Speech-to-text (streaming sessions are opened per live request)
	DeepgramAPIKey string
	STTLanguage    string
	STTModel       string

	// Request limits
	MaxAudioBytes int64 // cap on a submitted clip after base64 decoding

	// JWT Authentication
	JWTSecret string
	JWTExpiry time.Duration
}

// Speaker pronounces prompt text out loud, blocking until playback ends.
type Speaker interface {
	Speak(ctx context.Context, text string) bool
}

type Router struct {
	cfg         RouterConfig
	logger      *log.Logger
	speaker     Speaker
	transcriber stt.Client
	evaluator   *verify.Evaluator
	store       *store.Store // nil when no database is configured
	live        *LiveRegistry
	mux         *http.ServeMux
}

// NewRouter wires the HTTP surface. store may be nil; the auth endpoints
// then answer 503.
func NewRouter(cfg RouterConfig, logger *log.Logger, speaker Speaker, transcriber stt.Client, s *store.Store, live *LiveRegistry) http.Handler {
	if cfg.MaxAudioBytes <= 0 {
		cfg.MaxAudioBytes = 10 << 20 // short practice clips; 10MB is generous
	}
	if live == nil {
		live = NewLiveRegistry()
	}
	r := &Router{
		cfg:         cfg,
		logger:      logger,
		speaker:     speaker,
		transcriber: transcriber,
		evaluator:   verify.New(cfg.MatchThreshold),
		store:       s,
		live:        live,
		mux:         http.NewServeMux(),
	}
	r.routes()
	return withSentryRecovery(withCORS(r.mux))
}

func (r *Router) routes() {
	// Health check
	r.mux.HandleFunc("GET /healthz", r.handleHealthz)

	// Practice content (public)
	r.mux.HandleFunc("GET /api/levels", r.handleListLevels)
	r.mux.HandleFunc("GET /api/catalog/{level}", r.handleCatalog)
	r.mux.HandleFunc("GET /api/prompt", r.handleGetPrompt)

	// Pronunciation and verification (public)
	r.mux.HandleFunc("POST /api/pronounce", r.handlePronounce)
	r.mux.HandleFunc("POST /api/verify", r.handleVerify)
	r.mux.HandleFunc("GET /api/practice/live", r.handleLivePractice)

	// Accounts
	r.mux.HandleFunc("POST /auth/signup", r.handleSignup)
	r.mux.HandleFunc("POST /auth/signin", r.handleSignin)
	r.mux.HandleFunc("GET /api/me", r.withAuth(r.handleGetMe))
}

func (r *Router) handleHealthz(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

func withSentryRecovery(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		defer func() {
			if err := recover(); err != nil {
				hub := sentry.CurrentHub().Clone()
				hub.Scope().SetRequest(req)
				hub.RecoverWithContext(req.Context(), err)
				hub.Flush(2 * time.Second)
				http.Error(w, `{"error": "internal server error"}`, http.StatusInternalServerError)
			}
		}()
		next.ServeHTTP(w, req)
	})
}

func withCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET,POST,OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type,Authorization")
		if req.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, req)
	})
}

// captureError sends an error to Sentry with request context
func captureError(req *http.Request, err error, msg string) {
	sentry.WithScope(func(scope *sentry.Scope) {
		scope.SetRequest(req)
		scope.SetExtra("message", msg)
		sentry.CaptureException(err)
	})
}
