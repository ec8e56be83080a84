// Package server serves one live board over HTTP: the board as SVG, JSON,
// DOT and PNG, a print sheet, gesture endpoints, and a websocket feed of
// controller frames for the browser page.
package server

import (
	"context"
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"

	"github.com/matzehuels/nameplate/pkg/arrange"
	"github.com/matzehuels/nameplate/pkg/cache"
	"github.com/matzehuels/nameplate/pkg/fonts"
	"github.com/matzehuels/nameplate/pkg/render/styles"
)

// DefaultCacheTTL is how long rendered artifacts stay cached.
const DefaultCacheTTL = 24 * time.Hour

const shutdownTimeout = 5 * time.Second

// Options configures a Server. Zero values select defaults.
type Options struct {
	Style      styles.Style
	FontFamily string
	Font       *fonts.Font
	Columns    int
	Cache      cache.Cache
	CacheTTL   time.Duration
	Logger     *log.Logger
}

// Server is the HTTP view of one controller.
type Server struct {
	ctrl    *arrange.Controller
	opts    Options
	boardID string
	keys    cache.Keyer
	hub     *Hub
	logger  *log.Logger
}

// New returns a server for ctrl. The controller's frames are pushed to
// websocket clients once Run is called.
func New(ctrl *arrange.Controller, opts Options) *Server {
	if opts.Style == nil {
		opts.Style = styles.Paper{FontFamily: opts.FontFamily}
	}
	if opts.Columns <= 0 {
		opts.Columns = 2
	}
	if opts.Cache == nil {
		opts.Cache = cache.NewNullCache()
	}
	if opts.CacheTTL <= 0 {
		opts.CacheTTL = DefaultCacheTTL
	}
	if opts.Logger == nil {
		opts.Logger = log.New(io.Discard)
	}

	id := uuid.NewString()
	s := &Server{
		ctrl:    ctrl,
		opts:    opts,
		boardID: id,
		keys:    cache.NewScopedKeyer(cache.NewDefaultKeyer(), "board:"+id+":"),
		logger:  opts.Logger.With("board", id[:8]),
	}
	s.hub = NewHub(id, ctrl.Current, s.logger)
	return s
}

// BoardID returns the id stamped on feed messages.
func (s *Server) BoardID() string { return s.boardID }

// Hub returns the websocket hub.
func (s *Server) Hub() *Hub { return s.hub }

// Handler returns the router.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(requestLogger(s.logger))

	r.Get("/", s.handleIndex)
	r.Get("/board.svg", s.handleSVG)
	r.Get("/board.json", s.handleJSON)
	r.Get("/board.dot", s.handleDOT)
	r.Get("/board.png", s.handlePNG)
	r.Get("/board.pdf", s.handlePDF)
	r.Get("/print", s.handlePrint)
	r.Get("/ws", s.hub.ServeWS)

	r.Post("/refresh", s.handleRefresh)
	r.Post("/resize", s.handleResize)
	r.Route("/cards/{id}", func(r chi.Router) {
		r.Post("/drag", s.handleDrag)
		r.Post("/select", s.handleSelect)
	})
	r.Post("/edit", s.handleEdit)
	r.Post("/done", s.handleDone)
	r.Post("/cancel", s.handleCancel)
	return r
}

// Run serves on addr until ctx is done. It also runs the controller timer
// and the websocket hub, and shuts everything down together.
func (s *Server) Run(ctx context.Context, addr string) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	unsubscribe := s.ctrl.Subscribe(s.hub.Publish)
	defer unsubscribe()
	go s.hub.Run(ctx)
	go s.ctrl.Run(ctx)

	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	errCh := make(chan error, 1)
	go func() { errCh <- srv.ListenAndServe() }()
	s.logger.Info("Serving board", "addr", addr)

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		shutdownCtx, stop := context.WithTimeout(context.Background(), shutdownTimeout)
		defer stop()
		if err := srv.Shutdown(shutdownCtx); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return ctx.Err()
	}
}
