// Package server exposes the HTTP API and the embedded single page UI.
package server

import (
	"context"
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"instagist/internal/ratelimiter"
)

const readHeaderTimeout = 10 * time.Second

//go:embed static
var staticFS embed.FS

type Server struct {
	engine  *gin.Engine
	http    *http.Server
	limiter *ratelimiter.RateLimiter
	log     *slog.Logger
}

func New(
	handler *Handler,
	limiter *ratelimiter.RateLimiter,
	listenAddr string,
	frontendURL string,
	maxUploadBytes int64,
	log *slog.Logger,
) (*Server, error) {
	engine := gin.New()
	engine.Use(gin.Recovery())

	s := &Server{
		engine:  engine,
		limiter: limiter,
		log:     log,
	}

	engine.Use(s.requestLog())

	allowedOrigins := []string{"http://localhost:3000"}
	if frontendURL = strings.TrimSpace(frontendURL); frontendURL != "" {
		allowedOrigins = append(allowedOrigins, frontendURL)
	}

	engine.Use(cors.New(cors.Config{
		AllowOrigins: allowedOrigins,
		AllowMethods: []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowHeaders: []string{"Origin", "Content-Type"},
	}))

	if maxUploadBytes > 0 {
		engine.MaxMultipartMemory = maxUploadBytes
	}

	indexHTML, err := staticFS.ReadFile("static/index.html")
	if err != nil {
		return nil, fmt.Errorf("read index page: %w", err)
	}

	static, err := fs.Sub(staticFS, "static")
	if err != nil {
		return nil, fmt.Errorf("mount static files: %w", err)
	}

	engine.GET("/", func(c *gin.Context) {
		c.Data(http.StatusOK, "text/html; charset=utf-8", indexHTML)
	})
	engine.StaticFS("/static", http.FS(static))

	api := engine.Group("/api")
	api.POST("/summarize", s.rateLimit(), handler.PostSummarize)
	api.GET("/summaries", handler.GetSummaries)
	api.GET("/summaries/:id", handler.GetSummary)
	api.GET("/summaries/:id/download", handler.DownloadSummary)
	api.DELETE("/summaries/:id", handler.DeleteSummary)

	engine.GET("/health", handler.GetHealth)

	s.http = &http.Server{
		Addr:              listenAddr,
		Handler:           engine,
		ReadHeaderTimeout: readHeaderTimeout,
	}

	return s, nil
}

// Start blocks serving requests until Shutdown is called.
func (s *Server) Start() error {
	if err := s.http.ListenAndServe(); err != nil &&
		!errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("listen and serve: %w", err)
	}

	return nil
}

func (s *Server) Shutdown(ctx context.Context) error {
	if err := s.http.Shutdown(ctx); err != nil {
		return fmt.Errorf("shutdown server: %w", err)
	}

	return nil
}

func (s *Server) rateLimit() gin.HandlerFunc {
	return func(c *gin.Context) {
		retryAfter, ok := s.limiter.Allow(c.ClientIP())
		if ok {
			c.Next()

			return
		}

		seconds := int64((retryAfter + time.Second - 1) / time.Second)
		if seconds < 1 {
			seconds = 1
		}

		c.Header("Retry-After", strconv.FormatInt(seconds, 10))
		c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
			"error": "Too many requests, slow down",
		})
	}
}

func (s *Server) requestLog() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		if strings.HasPrefix(c.Request.URL.Path, "/static/") {
			return
		}

		s.log.InfoContext(c.Request.Context(), "HTTP request",
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"durationMs", time.Since(start).Milliseconds(),
			"clientIP", c.ClientIP())
	}
}
