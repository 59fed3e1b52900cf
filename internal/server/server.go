// Package server exposes one upload session over HTTP so a browser front end
// can drive the same flow as the terminal dashboard.
package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"golang.org/x/sync/errgroup"

	"github.com/yildizm/scrollmark/internal/config"
	"github.com/yildizm/scrollmark/internal/logger"
	"github.com/yildizm/scrollmark/internal/session"
	"github.com/yildizm/scrollmark/internal/virality"
)

const shutdownTimeout = 5 * time.Second

// Predictor scores draft posts for the virality endpoint
type Predictor interface {
	Predict(ctx context.Context, content string) (virality.Prediction, error)
}

// Server serves a single session.Controller
type Server struct {
	addr      string
	uploadDir string
	endpoint  string

	ctrl      *session.Controller
	predictor Predictor
	hub       *Hub
	router    *gin.Engine
	log       *logger.Logger

	// attempts started over HTTP outlive their request
	baseCtx context.Context
}

// New wires the routes. Call Run to listen.
func New(cfg *config.Config, ctrl *session.Controller, predictor Predictor, log *logger.Logger) *Server {
	if log == nil {
		log = logger.Nop()
	}
	log = log.WithComponent("server")

	s := &Server{
		addr:      cfg.Server.Addr,
		uploadDir: cfg.UploadDir(),
		endpoint:  cfg.Backend.Endpoint,
		ctrl:      ctrl,
		predictor: predictor,
		log:       log,
		baseCtx:   context.Background(),
	}
	s.hub = NewHub(ctrl, cfg.Server.AllowedOrigins, s.snapshot, log)
	s.router = s.routes(cfg.Server.AllowedOrigins)
	return s
}

// Handler returns the HTTP handler, mainly for tests
func (s *Server) Handler() http.Handler {
	return s.router
}

func (s *Server) routes(origins []string) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), s.requestLogger())
	r.Use(corsMiddleware(origins))

	api := r.Group("/api")
	api.GET("/health", s.handleHealth)

	sess := api.Group("/session")
	sess.GET("", s.handleGetSession)
	sess.DELETE("", s.handleReset)
	sess.POST("/file", s.handleUpload)
	sess.POST("/analyze", s.handleAnalyze)
	sess.GET("/result", s.handleResult)
	sess.GET("/result/:domain", s.handleDomainResult)
	sess.GET("/events", s.hub.ServeWS)

	api.POST("/virality/predict", s.handlePredict)
	return r
}

func corsMiddleware(origins []string) gin.HandlerFunc {
	return cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowMethods:     []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept"},
		ExposeHeaders:    []string{"Content-Type"},
		AllowCredentials: false,
		MaxAge:           12 * time.Hour,
	})
}

func (s *Server) requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		s.log.DebugWithFields("request", []logger.Field{
			logger.F("method", c.Request.Method),
			logger.F("path", c.FullPath()),
			logger.F("status", c.Writer.Status()),
			logger.Duration(time.Since(start)),
		})
	}
}

// Run listens on the configured address until ctx is cancelled, then shuts
// down and waits for any attempt still in flight.
func (s *Server) Run(ctx context.Context) error {
	s.baseCtx = ctx

	srv := &http.Server{
		Addr:              s.addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		s.hub.Run(gctx)
		return nil
	})

	g.Go(func() error {
		s.log.Info("listening on http://%s", s.addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server failed: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		s.log.Info("shutting down")
		return srv.Shutdown(shutdownCtx)
	})

	err := g.Wait()
	s.ctrl.Wait()
	return err
}
