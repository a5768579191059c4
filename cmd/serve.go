package cmd

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	appvideo "video-trim-service/application/video"
	"video-trim-service/infrastructure/config"
	"video-trim-service/infrastructure/ffmpeg"
	"video-trim-service/infrastructure/filesystem"
	"video-trim-service/infrastructure/httpapi"
	"video-trim-service/infrastructure/ytdlp"

	"github.com/spf13/cobra"
	"golang.org/x/exp/slog"
)

var servePort int

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP trim API",
	Long: `Start the HTTP API exposing health, video-info and trim-video endpoints.

The output directory holds at most the configured number of trimmed files;
older ones are pruned after each successful trim.`,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().IntVar(&servePort, "port", 0, "Listen port (overrides config)")
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg := GetConfig()
	logger := newLogger()

	port := cfg.Server.Port
	if servePort != 0 {
		port = servePort
	}

	checker := filesystem.NewChecker()
	if err := checker.EnsureDir(cfg.Paths.OutputDirectory); err != nil {
		return fmt.Errorf("failed to create output directory %s: %w", cfg.Paths.OutputDirectory, err)
	}

	// Missing tools are reported at startup instead of on the first request.
	verifyTools(cmd.Context(), cfg, logger)

	trimService := newTrimService(cfg, logger)
	infoService := newInfoService(cfg)
	retention := appvideo.NewRetentionService(cfg.Paths.OutputDirectory, cfg.Retention.MaxFiles, logger)

	server := &http.Server{
		Addr:    fmt.Sprintf("%s:%d", cfg.Server.Host, port),
		Handler: httpapi.NewServer(infoService, trimService, retention, cfg.Paths.OutputDirectory, logger),
	}

	go func() {
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("http server failed", err)
			os.Exit(1)
		}
	}()
	logger.Info("http server started",
		slog.String("addr", server.Addr),
		slog.String("output_dir", cfg.Paths.OutputDirectory))

	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGTERM)
	<-done

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		return fmt.Errorf("shutdown failed: %w", err)
	}

	logger.Info("service stopped")
	return nil
}

func verifyTools(ctx context.Context, cfg *config.Config, logger *slog.Logger) {
	fetcher := ytdlp.NewInfoFetcher(ytdlp.WithFetcherPath(cfg.Tools.YtDlpPath))
	if err := fetcher.VerifyInstalled(ctx); err != nil {
		logger.Error("yt-dlp is not available, downloads will fail", err)
	}

	trimmer := ffmpeg.NewTrimmer(ffmpeg.WithFFmpegPath(cfg.Tools.FFmpegPath))
	if err := trimmer.VerifyInstalled(ctx); err != nil {
		logger.Error("ffmpeg is not available, trims will fail", err)
	}
}
