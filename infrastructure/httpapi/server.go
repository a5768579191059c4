// Package httpapi exposes the trim service over HTTP: health, video-info and
// trim-video endpoints with JSON errors in a {"detail": ...} body.
package httpapi

import (
	"context"
	"net/http"
	"time"

	appvideo "video-trim-service/application/video"
	"video-trim-service/domain/video"

	"github.com/rs/cors"
	"golang.org/x/exp/slog"
)

// InfoProvider fetches metadata for a video URL
type InfoProvider interface {
	Fetch(ctx context.Context, url string) (video.Info, error)
}

// TrimProvider runs the download-and-trim workflow
type TrimProvider interface {
	Trim(ctx context.Context, input appvideo.TrimInput, outputPath string) (*appvideo.TrimResult, error)
}

// Pruner removes stale files from the output directory
type Pruner interface {
	Prune() int
}

// Server routes the API endpoints and applies CORS and request logging
type Server struct {
	info      InfoProvider
	trim      TrimProvider
	retention Pruner
	outputDir string
	logger    *slog.Logger
	handler   http.Handler
}

// NewServer creates a Server with all middleware wired. Browser clients are
// served from any origin, with any method and headers, but without
// credentials.
func NewServer(info InfoProvider, trim TrimProvider, retention Pruner, outputDir string, logger *slog.Logger) *Server {
	s := &Server{
		info:      info,
		trim:      trim,
		retention: retention,
		outputDir: outputDir,
		logger:    logger,
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/api/health", s.handleHealth)
	mux.HandleFunc("/api/video-info", s.handleVideoInfo)
	mux.HandleFunc("/api/trim-video", s.handleTrimVideo)

	corsMiddleware := cors.New(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete, http.MethodHead, http.MethodOptions},
		AllowedHeaders:   []string{"*"},
		AllowCredentials: false,
	})

	s.handler = corsMiddleware.Handler(s.logRequests(mux))

	return s
}

// ServeHTTP implements http.Handler
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.handler.ServeHTTP(w, r)
}

// statusRecorder captures the status code written by a handler
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		started := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}

		next.ServeHTTP(rec, r)

		s.logger.Info("request served",
			slog.String("method", r.Method),
			slog.String("path", r.URL.Path),
			slog.Int("status", rec.status),
			slog.Duration("elapsed", time.Since(started)))
	})
}
