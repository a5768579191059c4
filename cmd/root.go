package cmd

import (
	"fmt"
	"os"

	appvideo "video-trim-service/application/video"
	"video-trim-service/infrastructure/config"
	"video-trim-service/infrastructure/ffmpeg"
	"video-trim-service/infrastructure/filesystem"
	"video-trim-service/infrastructure/ytdlp"

	"github.com/spf13/cobra"
	"golang.org/x/exp/slog"
)

var (
	cfgFile string
	cfg     *config.Config
)

var rootCmd = &cobra.Command{
	Use:   "video-trim-service",
	Short: "Download and trim remote videos via yt-dlp and ffmpeg",
	Long: `video-trim-service downloads a remote video at a bounded resolution and
cuts a requested time window out of it using stream copy (no re-encoding).

It can run as an HTTP API or as a one-shot command:

  video-trim-service serve
  video-trim-service trim --url "https://..." --start 00:01:30 --end 00:02:45 --output clip.mp4
  video-trim-service info --url "https://..."`,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ./config/config.yaml)")
}

func initConfig() {
	if cfgFile == "" {
		cfgFile = "config/config.yaml"
	}

	loaded, err := config.Load(cfgFile)
	if err != nil {
		// The config file is optional; every value has a default.
		cfg = config.Default()
		return
	}
	cfg = loaded
}

// GetConfig returns the loaded configuration
func GetConfig() *config.Config {
	return cfg
}

func newLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stderr))
}

func downloadSettings(cfg *config.Config) ytdlp.Settings {
	return ytdlp.Settings{
		FormatSelector:       cfg.Download.FormatSelector,
		SocketTimeoutSeconds: cfg.Download.SocketTimeoutSeconds,
		Retries:              cfg.Download.Retries,
		ConcurrentFragments:  cfg.Download.ConcurrentFragments,
		ThrottledRate:        cfg.Download.ThrottledRate,
	}
}

// newTrimService builds the production download-and-trim pipeline
func newTrimService(cfg *config.Config, logger *slog.Logger) *appvideo.TrimService {
	settings := downloadSettings(cfg)
	fetcher := ytdlp.NewInfoFetcher(
		ytdlp.WithFetcherPath(cfg.Tools.YtDlpPath),
		ytdlp.WithFetcherSettings(settings),
	)
	downloader := ytdlp.NewDownloader(
		ytdlp.WithDownloaderPath(cfg.Tools.YtDlpPath),
		ytdlp.WithDownloaderSettings(settings),
	)
	trimmer := ffmpeg.NewTrimmer(ffmpeg.WithFFmpegPath(cfg.Tools.FFmpegPath))

	return appvideo.NewTrimService(fetcher, downloader, trimmer, filesystem.NewChecker(), logger)
}

func newInfoService(cfg *config.Config) *appvideo.InfoService {
	fetcher := ytdlp.NewInfoFetcher(
		ytdlp.WithFetcherPath(cfg.Tools.YtDlpPath),
		ytdlp.WithFetcherSettings(downloadSettings(cfg)),
	)
	return appvideo.NewInfoService(fetcher)
}
