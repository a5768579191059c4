package ytdlp

import (
	"context"
	"errors"
	"path/filepath"
	"strings"
	"testing"
)

func TestDownloader_Download(t *testing.T) {
	runner := &fakeRunner{}
	downloader := NewDownloader(WithDownloaderCommandRunner(runner))

	err := downloader.Download(context.Background(), "https://youtube.com/watch?v=x", "/tmp/work")
	if err != nil {
		t.Fatalf("Download() unexpected error: %v", err)
	}

	if runner.name != "yt-dlp" {
		t.Errorf("executable = %q, want yt-dlp", runner.name)
	}

	wantPairs := map[string]string{
		"--output":               filepath.Join("/tmp/work", "video.%(ext)s"),
		"--merge-output-format":  "mp4",
		"--remux-video":          "mp4",
		"--postprocessor-args":   "ffmpeg:-c:v copy -c:a copy",
		"--retries":              "3",
		"--fragment-retries":     "3",
		"--concurrent-fragments": "3",
		"--throttled-rate":       "100K",
		"--socket-timeout":       "30",
	}
	for flag, value := range wantPairs {
		if !hasArgPair(runner.args, flag, value) {
			t.Errorf("expected %s %s in args %v", flag, value, runner.args)
		}
	}
	for _, flag := range []string{
		"--skip-unavailable-fragments",
		"--no-write-thumbnail",
		"--no-write-subs",
		"--no-write-auto-subs",
		"--no-playlist",
	} {
		if !hasArg(runner.args, flag) {
			t.Errorf("expected flag %s in args", flag)
		}
	}
	if runner.args[len(runner.args)-1] != "https://youtube.com/watch?v=x" {
		t.Errorf("expected url as final arg, got %q", runner.args[len(runner.args)-1])
	}
}

func TestDownloader_Download_Failure(t *testing.T) {
	runner := &fakeRunner{runErr: errors.New("exit status 1: ERROR: unable to download video data")}
	downloader := NewDownloader(WithDownloaderCommandRunner(runner))

	err := downloader.Download(context.Background(), "https://youtube.com/watch?v=x", t.TempDir())
	if err == nil {
		t.Fatal("Download() expected error, got nil")
	}
	if !strings.Contains(err.Error(), "unable to download video data") {
		t.Errorf("error should carry tool output, got %v", err)
	}
}

func TestDownloader_SettingsOverride(t *testing.T) {
	runner := &fakeRunner{}
	downloader := NewDownloader(
		WithDownloaderCommandRunner(runner),
		WithDownloaderSettings(Settings{Retries: 5, ThrottledRate: "500K"}),
	)

	if err := downloader.Download(context.Background(), "https://example.com/v", "/w"); err != nil {
		t.Fatalf("Download() unexpected error: %v", err)
	}
	if !hasArgPair(runner.args, "--retries", "5") || !hasArgPair(runner.args, "--fragment-retries", "5") {
		t.Error("expected overridden retry budget")
	}
	if !hasArgPair(runner.args, "--throttled-rate", "500K") {
		t.Error("expected overridden throttled rate")
	}
	if !hasArgPair(runner.args, "--concurrent-fragments", "3") {
		t.Error("expected default concurrent fragments")
	}
}
