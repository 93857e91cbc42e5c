package httpserver

import (
	"context"
	"io"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// Server is the storefront API listener.
type Server struct {
	httpServer *http.Server
	logger     *log.Logger
}

// New builds a Server with every storefront route mounted.
func New(addr string, logger *log.Logger, deps Deps) (*Server, error) {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	router, err := buildRouter(logger, deps)
	if err != nil {
		return nil, err
	}

	// No WriteTimeout: the cart event stream is long lived.
	return &Server{
		httpServer: &http.Server{
			Addr:              addr,
			Handler:           router,
			ReadHeaderTimeout: 5 * time.Second,
			IdleTimeout:       2 * time.Minute,
			ErrorLog:          logger,
		},
		logger: logger,
	}, nil
}

func (s *Server) ListenAndServe() error {
	return s.httpServer.ListenAndServe()
}

// Shutdown stops accepting requests and waits for in-flight ones, including
// order placements sleeping through their delay.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}

func healthHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// readyHandler reports whether the visitor local store answers.
func readyHandler(store pinger) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), time.Second)
		defer cancel()
		if err := store.Ping(ctx); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable", "reason": "local store not reachable"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ready"})
	}
}
