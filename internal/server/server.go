package server

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"net/http"
	"time"

	"github.com/arl/statsviz"
	"github.com/gin-gonic/gin"

	"governor/internal/config"
	"governor/internal/log"
)

// Server ties together HTTP serving and WebSocket handling.
type Server struct {
	handlers *Handlers
	cfg      *config.Config
	static   fs.FS
}

// New builds a server. static holds the web client, rooted at its index.html.
func New(cfg *config.Config, static fs.FS) *Server {
	if cfg.Server.Mode != "" {
		gin.SetMode(cfg.Server.Mode)
	}
	return &Server{
		handlers: NewHandlers(cfg),
		cfg:      cfg,
		static:   static,
	}
}

// Router returns the HTTP routes.
func (s *Server) Router() *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), requestLogger())

	api := r.Group("/api")
	api.GET("/create", s.handlers.HandleCreateGame)
	api.POST("/games", s.handlers.HandleNewGame)
	api.GET("/games", s.handlers.HandleListGames)
	api.GET("/games/:id/log", s.handlers.HandleGameLog)
	api.GET("/games/:id/state", s.handlers.HandleGameState)
	api.DELETE("/games/:id", s.handlers.HandleCloseGame)
	api.GET("/qr", s.handlers.HandleQR)
	api.GET("/player-id", s.handlers.HandlePlayerID)
	r.GET("/ws", s.handlers.HandleWS)

	if s.static != nil {
		r.NoRoute(gin.WrapH(http.FileServer(http.FS(s.static))))
	}
	return r
}

// Run serves until ctx is cancelled.
func (s *Server) Run(ctx context.Context) error {
	if s.cfg.Server.MetricsPort > 0 {
		go func() {
			addr := fmt.Sprintf("0.0.0.0:%d", s.cfg.Server.MetricsPort)
			log.Info("metrics on http://localhost:%d/debug/statsviz/", s.cfg.Server.MetricsPort)
			if err := serveMetrics(addr); err != nil {
				log.Error("metrics server: %v", err)
			}
		}()
	}

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", s.cfg.Server.Port),
		Handler:           s.Router(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	errc := make(chan error, 1)
	go func() {
		log.Info("governor server starting on http://localhost%s", srv.Addr)
		log.Info("open http://localhost%s/api/create to create a new game", srv.Addr)
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}
	log.Info("shutting down")
	s.handlers.Close()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func serveMetrics(addr string) error {
	mux := http.NewServeMux()
	if err := statsviz.Register(mux); err != nil {
		return err
	}
	return http.ListenAndServe(addr, mux)
}

func requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		log.Debug("%s %s %d %s", c.Request.Method, c.Request.URL.Path, c.Writer.Status(), time.Since(start))
	}
}

// Close stops all game rooms.
func (s *Server) Close() {
	s.handlers.Close()
}
