package ytdlp

import (
	"context"
	"encoding/json"
	"fmt"

	"video-trim-service/domain/video"
)

// InfoFetcher implements video.InfoFetcher by running yt-dlp in
// metadata-only mode: no bytes of the video are downloaded.
type InfoFetcher struct {
	ytdlpPath string
	settings  Settings
	runner    CommandRunner
}

// InfoFetcherOption is a functional option for configuring InfoFetcher
type InfoFetcherOption func(*InfoFetcher)

// WithFetcherPath sets a custom yt-dlp executable path
func WithFetcherPath(path string) InfoFetcherOption {
	return func(f *InfoFetcher) {
		if path != "" {
			f.ytdlpPath = path
		}
	}
}

// WithFetcherSettings overrides the default yt-dlp settings
func WithFetcherSettings(settings Settings) InfoFetcherOption {
	return func(f *InfoFetcher) {
		f.settings = settings.withDefaults()
	}
}

// WithFetcherCommandRunner sets a custom command runner (for testing)
func WithFetcherCommandRunner(runner CommandRunner) InfoFetcherOption {
	return func(f *InfoFetcher) {
		f.runner = runner
	}
}

// NewInfoFetcher creates a new yt-dlp-based metadata fetcher
func NewInfoFetcher(opts ...InfoFetcherOption) *InfoFetcher {
	f := &InfoFetcher{
		ytdlpPath: "yt-dlp",
		settings:  DefaultSettings(),
		runner:    &ExecCommandRunner{},
	}

	for _, opt := range opts {
		opt(f)
	}

	return f
}

// rawInfo is the subset of yt-dlp's JSON dump this service cares about
type rawInfo struct {
	Title     string  `json:"title"`
	Duration  float64 `json:"duration"`
	Thumbnail string  `json:"thumbnail"`
}

// FetchInfo implements video.InfoFetcher
func (f *InfoFetcher) FetchInfo(ctx context.Context, url string) (video.Info, error) {
	args := append(f.settings.commonArgs(),
		"--dump-single-json",
		"--skip-download",
		"--flat-playlist",
		"--no-warnings",
		url,
	)

	out, err := f.runner.Output(ctx, f.ytdlpPath, args...)
	if err != nil {
		return video.Info{}, fmt.Errorf("%w: %v", video.ErrVideoInfo, err)
	}

	var raw rawInfo
	if err := json.Unmarshal(out, &raw); err != nil {
		return video.Info{}, fmt.Errorf("%w: unexpected yt-dlp output: %v", video.ErrVideoInfo, err)
	}

	info := video.Info{
		Title:     raw.Title,
		Duration:  int(raw.Duration),
		Thumbnail: raw.Thumbnail,
	}
	if info.Title == "" {
		info.Title = "Unknown Title"
	}

	return info, nil
}

// VerifyInstalled checks that yt-dlp is available
func (f *InfoFetcher) VerifyInstalled(ctx context.Context) error {
	if _, err := f.runner.Output(ctx, f.ytdlpPath, "--version"); err != nil {
		return fmt.Errorf("yt-dlp not found or not executable: %w", err)
	}
	return nil
}

// Ensure InfoFetcher implements video.InfoFetcher
var _ video.InfoFetcher = (*InfoFetcher)(nil)
