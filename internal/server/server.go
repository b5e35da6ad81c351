package server

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/sessions"
	"github.com/rs/zerolog"

	"github.com/kvega/kayfabe/internal/quiz"
)

const sessionCookie = "kayfabe_session"

// Server exposes quiz generation over HTTP. Question state is kept per
// client session, keyed by a cookie, so two browsers never share a
// recent-questions window.
type Server struct {
	cfg      *Config
	logger   zerolog.Logger
	generate quiz.GenerateFunc
	cookies  *sessions.CookieStore

	mu   sync.Mutex
	byID map[string]*quiz.Session
}

// New wires the server. generate is the question source, usually
// quizgen.Generator.Generate.
func New(cfg *Config, logger zerolog.Logger, generate quiz.GenerateFunc) *Server {
	secret := cfg.SessionSecret
	if secret == "" {
		// Ephemeral secret: cookies won't survive a restart, which is
		// acceptable for a quiz with no account state.
		secret = uuid.New().String()
	}
	return &Server{
		cfg:      cfg,
		logger:   logger,
		generate: generate,
		cookies:  sessions.NewCookieStore([]byte(secret)),
		byID:     make(map[string]*quiz.Session),
	}
}

// Handler builds the route table wrapped in request logging.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /question", s.handleQuestion)
	mux.HandleFunc("POST /answer", s.handleAnswer)
	mux.HandleFunc("GET /healthz", s.handleHealthz)
	return s.logRequests(mux)
}

// Run serves until SIGINT/SIGTERM, then drains with the configured
// shutdown timeout.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:    s.cfg.Addr,
		Handler: s.Handler(),
	}

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info().Str("addr", s.cfg.Addr).Msg("http server listening")
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	s.logger.Info().Msg("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), s.cfg.ShutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

// session returns the quiz session for the request's cookie, creating
// both on first contact.
func (s *Server) session(w http.ResponseWriter, r *http.Request) *quiz.Session {
	cookie, _ := s.cookies.Get(r, sessionCookie)

	sid, _ := cookie.Values["sid"].(string)
	if sid == "" {
		sid = uuid.New().String()
		cookie.Values["sid"] = sid
		if err := cookie.Save(r, w); err != nil {
			s.logger.Warn().Err(err).Msg("session cookie save failed")
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	sess, ok := s.byID[sid]
	if !ok {
		sess = quiz.NewSession()
		sess.ID = sid
		s.byID[sid] = sess
	}
	return sess
}

func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)
		s.logger.Info().
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("status", rec.status).
			Dur("latency", time.Since(start)).
			Msg("request")
	})
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}
