// Package server exposes the triage engine over HTTP.
package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Options configures the HTTP listener.
type Options struct {
	Port         int
	MaxUploadMiB int
}

// Server wraps the router and its http.Server.
type Server struct {
	http *http.Server
	log  *zap.Logger
}

// New builds the router, middleware chain and listener around a Handler.
func New(opts Options, h *Handler, logger *zap.Logger) *Server {
	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.MaxMultipartMemory = int64(opts.MaxUploadMiB) << 20
	router.Use(gin.Recovery())
	router.Use(RequestID())
	router.Use(RequestLogger(logger))
	router.Use(Requests(h.metrics))
	router.Use(CORS())

	router.POST("/chat", h.Chat)
	router.POST("/predict_image", h.PredictImage)
	router.GET("/health", h.Health)
	router.GET("/metrics", gin.WrapH(h.metrics.Handler()))

	return &Server{
		http: &http.Server{
			Addr:              fmt.Sprintf(":%d", opts.Port),
			Handler:           router,
			ReadHeaderTimeout: 10 * time.Second,
			WriteTimeout:      30 * time.Second,
		},
		log: logger,
	}
}

// Run serves until the listener fails or Shutdown is called.
func (s *Server) Run() error {
	s.log.Info("listening", zap.String("addr", s.http.Addr))
	if err := s.http.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Shutdown drains in-flight requests until ctx expires.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.http.Shutdown(ctx)
}
