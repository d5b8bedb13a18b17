// Package server exposes the quiz engine over HTTP: session lifecycle,
// round generation, answer evaluation, photo serving, and car facts.
package server

import (
	"net/http"
	"os"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"go.uber.org/zap"

	"github.com/carpick/carpick/internal/config"
	"github.com/carpick/carpick/internal/facts"
	"github.com/carpick/carpick/internal/store"
	"github.com/carpick/carpick/internal/thumbs"
)

// Options carries the server's dependencies. Facts and Events are
// optional; endpoints depending on them degrade when absent.
type Options struct {
	Config  config.Config
	Library *Library
	Facts   *facts.Service
	Events  store.EventRepo
	Logger  *zap.Logger

	// AdminToken guards POST /admin/rebuild when non-empty.
	AdminToken string
}

// Server handles the carpick HTTP API.
type Server struct {
	cfg        config.Config
	log        *zap.Logger
	library    *Library
	sessions   *SessionRegistry
	thumbs     *thumbs.Cache
	facts      *facts.Service
	events     store.EventRepo
	adminToken string
	docsOn     bool
}

// New assembles a Server from Options.
func New(opts Options) *Server {
	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}
	return &Server{
		cfg:        opts.Config,
		log:        log,
		library:    opts.Library,
		sessions:   NewSessionRegistry(),
		thumbs:     thumbs.NewCache(opts.Config.Paths.ThumbsDir(), opts.Config.Images.ThumbnailWidth),
		facts:      opts.Facts,
		events:     opts.Events,
		adminToken: opts.AdminToken,
	}
}

// Router builds the chi router with the full middleware stack.
func (s *Server) Router() chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.RequestID, middleware.RealIP, middleware.Logger, middleware.Recoverer)
	r.Use(middleware.Timeout(30 * time.Second))
	r.Use(middleware.Compress(5))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: s.cfg.Server.CORSOrigins,
		AllowedMethods: []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Authorization", "Content-Type"},
		ExposedHeaders: []string{"Content-Length"},
		MaxAge:         300,
	}))

	r.Get("/healthz", s.handleHealth)

	r.Route("/api", func(api chi.Router) {
		api.Post("/sessions", s.handleCreateSession)
		api.Route("/sessions/{sessionID}", func(sr chi.Router) {
			sr.Get("/", s.handleGetSession)
			sr.Delete("/", s.handleEndSession)
			sr.Post("/rounds", s.handleNewRound)
			sr.Post("/answer", s.handleAnswer)
			sr.Post("/fact", s.handleFact)
		})
		api.Get("/rounds/{roundID}/image", s.handleRoundImage)
	})

	r.Post("/admin/rebuild", s.handleRebuild)

	s.mountDocs(r)
	return r
}

// ListenAndServe runs the server until the listener fails.
func (s *Server) ListenAndServe() error {
	srv := &http.Server{
		Addr:              s.cfg.Server.Addr,
		Handler:           s.Router(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	s.log.Info("http server listening", zap.String("addr", s.cfg.Server.Addr))
	return srv.ListenAndServe()
}

// docsAvailable reports whether the static docs bundle is present.
func (s *Server) docsAvailable() bool {
	fi, err := os.Stat(s.cfg.Paths.DocsDir)
	return err == nil && fi.IsDir()
}
