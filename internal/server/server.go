package server

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log"
	"net/http"
	"time"

	"boardquest/internal/content"
	"boardquest/internal/engine"
)

// Options configure every session the server hosts.
type Options struct {
	Port    int
	Static  fs.FS // browser client; nil serves only the API
	Content *content.Content
	Game    engine.GameConfig // Board is taken from Content
	Seed    int64
	Bots    int // bots in a new lobby
}

// Server ties together HTTP serving and WebSocket handling.
type Server struct {
	handlers *Handlers
	opts     Options
}

func New(opts Options) (*Server, error) {
	if opts.Content == nil {
		c, err := content.Default()
		if err != nil {
			return nil, fmt.Errorf("default content: %w", err)
		}
		opts.Content = c
	}
	if opts.Game.MaxStorage == 0 {
		opts.Game = engine.DefaultConfig()
	}
	s := &Server{opts: opts}
	s.handlers = NewHandlers(&s.opts)
	return s, nil
}

// Handler returns the HTTP routes.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	if s.opts.Static != nil {
		mux.Handle("/", http.FileServer(http.FS(s.opts.Static)))
	}

	mux.HandleFunc("/api/create", s.handlers.HandleCreateGame)
	mux.HandleFunc("/api/qr", s.handlers.HandleQR)
	mux.HandleFunc("/api/player-id", s.handlers.HandlePlayerID)
	mux.HandleFunc("/ws", s.handlers.HandleWS)
	return mux
}

// Start serves until ctx is done, then shuts down and stops every session.
func (s *Server) Start(ctx context.Context) error {
	addr := fmt.Sprintf(":%d", s.opts.Port)
	srv := &http.Server{Addr: addr, Handler: s.Handler()}

	errc := make(chan error, 1)
	go func() {
		log.Printf("boardquest server starting on http://localhost%s", addr)
		log.Printf("Open http://localhost%s/api/create to create a new game", addr)
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		s.handlers.Close()
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	err := srv.Shutdown(shutdownCtx)
	s.handlers.Close()
	if err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
