package httpapi

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"time"

	appvideo "video-trim-service/application/video"
	"video-trim-service/domain/video"

	"github.com/google/uuid"
	"golang.org/x/exp/slog"
)

// trimRequestBody is the JSON body of POST /api/trim-video
type trimRequestBody struct {
	URL       string `json:"url"`
	StartTime string `json:"start_time"`
	EndTime   string `json:"end_time"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeDetail(w, http.StatusMethodNotAllowed, fmt.Errorf("method %s not allowed", r.Method))
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{
		"status":    "healthy",
		"timestamp": time.Now().Format(time.RFC3339),
	})
}

func (s *Server) handleVideoInfo(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeDetail(w, http.StatusMethodNotAllowed, fmt.Errorf("method %s not allowed", r.Method))
		return
	}

	info, err := s.info.Fetch(r.Context(), r.URL.Query().Get("url"))
	if err != nil {
		s.logger.Error("video info failed", err, slog.String("url", r.URL.Query().Get("url")))
		writeDetail(w, statusFor(err), err)
		return
	}

	writeJSON(w, http.StatusOK, info)
}

func (s *Server) handleTrimVideo(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeDetail(w, http.StatusMethodNotAllowed, fmt.Errorf("method %s not allowed", r.Method))
		return
	}

	var body trimRequestBody
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeDetail(w, http.StatusBadRequest, fmt.Errorf("invalid request body: %v", err))
		return
	}

	if err := os.MkdirAll(s.outputDir, 0755); err != nil {
		s.logger.Error("failed to create output directory", err, slog.String("dir", s.outputDir))
		writeDetail(w, http.StatusInternalServerError, fmt.Errorf("could not prepare output directory"))
		return
	}

	filename := outputFilename(time.Now())
	outputPath := filepath.Join(s.outputDir, filename)

	result, err := s.trim.Trim(r.Context(), appvideo.TrimInput{
		URL:       body.URL,
		StartTime: body.StartTime,
		EndTime:   body.EndTime,
	}, outputPath)
	if err != nil {
		s.logger.Error("trim failed", err, slog.String("url", body.URL))
		writeDetail(w, statusFor(err), err)
		return
	}

	s.retention.Prune()

	w.Header().Set("Content-Type", "video/mp4")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	http.ServeFile(w, r, result.OutputPath)
}

// outputFilename derives a unique name from the timestamp plus a short random
// suffix, so concurrent requests in the same second never collide
func outputFilename(now time.Time) string {
	return fmt.Sprintf("trimmed_video_%s_%s.mp4", now.Format("20060102_150405"), uuid.NewString()[:8])
}

// statusFor classifies an error as a client input problem or a downstream
// tool failure
func statusFor(err error) int {
	switch {
	case errors.Is(err, video.ErrInvalidTimeFormat),
		errors.Is(err, video.ErrInvalidURL),
		errors.Is(err, video.ErrInvalidRange),
		errors.Is(err, video.ErrDurationExceeded),
		errors.Is(err, video.ErrVideoInfo):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		fmt.Fprintf(w, `{"detail": %q}`, err.Error())
	}
}

func writeDetail(w http.ResponseWriter, status int, err error) {
	writeJSON(w, status, map[string]string{"detail": err.Error()})
}
