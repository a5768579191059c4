package httpapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"

	appvideo "video-trim-service/application/video"
	"video-trim-service/domain/video"

	"golang.org/x/exp/slog"
)

// --- Mock implementations for testing ---

type mockInfoProvider struct {
	info video.Info
	err  error
}

func (m *mockInfoProvider) Fetch(ctx context.Context, url string) (video.Info, error) {
	if m.err != nil {
		return video.Info{}, m.err
	}
	return m.info, nil
}

type mockTrimProvider struct {
	err     error
	content []byte
	input   appvideo.TrimInput
	calls   int
}

func (m *mockTrimProvider) Trim(ctx context.Context, input appvideo.TrimInput, outputPath string) (*appvideo.TrimResult, error) {
	m.calls++
	m.input = input
	if m.err != nil {
		return nil, m.err
	}
	if err := os.WriteFile(outputPath, m.content, 0644); err != nil {
		return nil, err
	}
	return &appvideo.TrimResult{OutputPath: outputPath}, nil
}

type mockPruner struct {
	calls int
}

func (m *mockPruner) Prune() int {
	m.calls++
	return 0
}

func newTestServer(t *testing.T, info *mockInfoProvider, trim *mockTrimProvider, pruner *mockPruner) *Server {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard))
	return NewServer(info, trim, pruner, t.TempDir(), logger)
}

func decodeDetail(t *testing.T, body io.Reader) string {
	t.Helper()
	var resp map[string]string
	if err := json.NewDecoder(body).Decode(&resp); err != nil {
		t.Fatalf("failed to decode error body: %v", err)
	}
	return resp["detail"]
}

func TestHandleHealth(t *testing.T) {
	srv := newTestServer(t, &mockInfoProvider{}, &mockTrimProvider{}, &mockPruner{})

	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/health", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	var resp map[string]string
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatal(err)
	}
	if resp["status"] != "healthy" {
		t.Errorf("status field = %q, want healthy", resp["status"])
	}
	if resp["timestamp"] == "" {
		t.Error("expected a timestamp")
	}
}

func TestHandleHealth_MethodNotAllowed(t *testing.T) {
	srv := newTestServer(t, &mockInfoProvider{}, &mockTrimProvider{}, &mockPruner{})

	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/health", nil))

	if rec.Code != http.StatusMethodNotAllowed {
		t.Errorf("status = %d, want 405", rec.Code)
	}
}

func TestHandleVideoInfo(t *testing.T) {
	info := &mockInfoProvider{info: video.Info{Title: "A Video", Duration: 120, Thumbnail: "https://i.example.com/t.jpg"}}
	srv := newTestServer(t, info, &mockTrimProvider{}, &mockPruner{})

	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/video-info?url=https://example.com/v", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200, body %s", rec.Code, rec.Body.String())
	}
	var resp video.Info
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatal(err)
	}
	if resp != info.info {
		t.Errorf("body = %+v, want %+v", resp, info.info)
	}
}

func TestHandleVideoInfo_ProbeFailure(t *testing.T) {
	info := &mockInfoProvider{err: fmt.Errorf("%w: ERROR: Video unavailable", video.ErrVideoInfo)}
	srv := newTestServer(t, info, &mockTrimProvider{}, &mockPruner{})

	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/video-info?url=https://example.com/v", nil))

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
	if detail := decodeDetail(t, rec.Body); !strings.Contains(detail, "Video unavailable") {
		t.Errorf("detail = %q, want tool output included", detail)
	}
}

func trimBody(t *testing.T, url, start, end string) *bytes.Buffer {
	t.Helper()
	body, err := json.Marshal(map[string]string{"url": url, "start_time": start, "end_time": end})
	if err != nil {
		t.Fatal(err)
	}
	return bytes.NewBuffer(body)
}

func TestHandleTrimVideo(t *testing.T) {
	trim := &mockTrimProvider{content: []byte("trimmed video bytes")}
	pruner := &mockPruner{}
	srv := newTestServer(t, &mockInfoProvider{}, trim, pruner)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/trim-video", trimBody(t, "https://example.com/v", "00:01:00", "00:02:00"))
	srv.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200, body %s", rec.Code, rec.Body.String())
	}
	if got := rec.Header().Get("Content-Type"); got != "video/mp4" {
		t.Errorf("Content-Type = %q, want video/mp4", got)
	}
	disposition := rec.Header().Get("Content-Disposition")
	if !strings.HasPrefix(disposition, "attachment; filename=") || !strings.Contains(disposition, "trimmed_video_") {
		t.Errorf("Content-Disposition = %q", disposition)
	}
	if rec.Body.String() != "trimmed video bytes" {
		t.Errorf("body = %q, want the trimmed file contents", rec.Body.String())
	}
	if trim.input.URL != "https://example.com/v" || trim.input.StartTime != "00:01:00" || trim.input.EndTime != "00:02:00" {
		t.Errorf("trim input = %+v", trim.input)
	}
	if pruner.calls != 1 {
		t.Errorf("pruner called %d times, want 1", pruner.calls)
	}
}

func TestHandleTrimVideo_InvalidBody(t *testing.T) {
	trim := &mockTrimProvider{}
	srv := newTestServer(t, &mockInfoProvider{}, trim, &mockPruner{})

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/trim-video", strings.NewReader("{not json"))
	srv.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
	if trim.calls != 0 {
		t.Errorf("expected no trim for malformed body")
	}
}

func TestHandleTrimVideo_ErrorMapping(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
	}{
		{
			name:       "invalid time format",
			err:        fmt.Errorf("invalid start time: %w", video.ErrInvalidTimeFormat),
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "invalid range",
			err:        fmt.Errorf("%w: start 00:02:00, end 00:01:00", video.ErrInvalidRange),
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "duration exceeded",
			err:        fmt.Errorf("%w (300 seconds)", video.ErrDurationExceeded),
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "probe failure",
			err:        fmt.Errorf("%w: no video found", video.ErrVideoInfo),
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "download missing",
			err:        video.ErrDownloadedFileMissing,
			wantStatus: http.StatusInternalServerError,
		},
		{
			name:       "processing failure",
			err:        fmt.Errorf("%w: ffmpeg exited 1", video.ErrProcessing),
			wantStatus: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			trim := &mockTrimProvider{err: tt.err}
			pruner := &mockPruner{}
			srv := newTestServer(t, &mockInfoProvider{}, trim, pruner)

			rec := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodPost, "/api/trim-video", trimBody(t, "https://example.com/v", "00:01:00", "00:02:00"))
			srv.ServeHTTP(rec, req)

			if rec.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d", rec.Code, tt.wantStatus)
			}
			if detail := decodeDetail(t, rec.Body); detail == "" {
				t.Error("expected a detail message")
			}
			if pruner.calls != 0 {
				t.Errorf("expected no prune after a failed trim")
			}
		})
	}
}

func TestCORS(t *testing.T) {
	srv := newTestServer(t, &mockInfoProvider{}, &mockTrimProvider{}, &mockPruner{})

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodOptions, "/api/trim-video", nil)
	req.Header.Set("Origin", "https://app.example.com")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	srv.ServeHTTP(rec, req)

	if got := rec.Header().Get("Access-Control-Allow-Origin"); got != "*" {
		t.Errorf("Access-Control-Allow-Origin = %q, want *", got)
	}
	if got := rec.Header().Get("Access-Control-Allow-Credentials"); got != "" {
		t.Errorf("credentials must not be allowed, got %q", got)
	}
}
