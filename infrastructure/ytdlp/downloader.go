package ytdlp

import (
	"context"
	"fmt"
	"path/filepath"
	"strconv"

	"video-trim-service/domain/video"
)

// Downloader implements video.Downloader by running yt-dlp against a scoped
// workspace directory. The result is remuxed into an mp4 container with both
// streams copied, never transcoded.
type Downloader struct {
	ytdlpPath string
	settings  Settings
	runner    CommandRunner
}

// DownloaderOption is a functional option for configuring Downloader
type DownloaderOption func(*Downloader)

// WithDownloaderPath sets a custom yt-dlp executable path
func WithDownloaderPath(path string) DownloaderOption {
	return func(d *Downloader) {
		if path != "" {
			d.ytdlpPath = path
		}
	}
}

// WithDownloaderSettings overrides the default yt-dlp settings
func WithDownloaderSettings(settings Settings) DownloaderOption {
	return func(d *Downloader) {
		d.settings = settings.withDefaults()
	}
}

// WithDownloaderCommandRunner sets a custom command runner (for testing)
func WithDownloaderCommandRunner(runner CommandRunner) DownloaderOption {
	return func(d *Downloader) {
		d.runner = runner
	}
}

// NewDownloader creates a new yt-dlp-based downloader
func NewDownloader(opts ...DownloaderOption) *Downloader {
	d := &Downloader{
		ytdlpPath: "yt-dlp",
		settings:  DefaultSettings(),
		runner:    &ExecCommandRunner{},
	}

	for _, opt := range opts {
		opt(d)
	}

	return d
}

// Download implements video.Downloader. Transient network and fragment
// failures are retried by yt-dlp itself up to the configured budget; fragments
// that stay unavailable are skipped rather than failing the whole download.
func (d *Downloader) Download(ctx context.Context, url, dir string) error {
	retries := strconv.Itoa(d.settings.Retries)
	args := append(d.settings.commonArgs(),
		"--output", filepath.Join(dir, video.DownloadBaseName+".%(ext)s"),
		"--merge-output-format", "mp4",
		"--remux-video", "mp4",
		"--postprocessor-args", "ffmpeg:-c:v copy -c:a copy",
		"--retries", retries,
		"--fragment-retries", retries,
		"--skip-unavailable-fragments",
		"--concurrent-fragments", strconv.Itoa(d.settings.ConcurrentFragments),
		"--throttled-rate", d.settings.ThrottledRate,
		"--no-write-thumbnail",
		"--no-write-subs",
		"--no-write-auto-subs",
		"--no-keep-video",
		"--no-playlist",
		url,
	)

	if err := d.runner.Run(ctx, d.ytdlpPath, args...); err != nil {
		return fmt.Errorf("yt-dlp download failed: %w", err)
	}

	return nil
}

// VerifyInstalled checks that yt-dlp is available
func (d *Downloader) VerifyInstalled(ctx context.Context) error {
	if _, err := d.runner.Output(ctx, d.ytdlpPath, "--version"); err != nil {
		return fmt.Errorf("yt-dlp not found or not executable: %w", err)
	}
	return nil
}

// Ensure Downloader implements video.Downloader
var _ video.Downloader = (*Downloader)(nil)
