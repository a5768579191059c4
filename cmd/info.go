package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	appvideo "video-trim-service/application/video"

	"github.com/spf13/cobra"
)

var infoURL string

var infoCmd = &cobra.Command{
	Use:   "info",
	Short: "Show metadata for a remote video",
	Long: `Probe a video URL without downloading it and print its title,
duration and thumbnail URL.

Example:
  video-trim-service info --url "https://www.youtube.com/watch?v=..."`,
	RunE: runInfo,
}

func init() {
	rootCmd.AddCommand(infoCmd)
	infoCmd.Flags().StringVar(&infoURL, "url", "", "Video URL (required)")
	infoCmd.MarkFlagRequired("url")
}

func runInfo(cmd *cobra.Command, args []string) error {
	cfg := GetConfig()
	infoService := newInfoService(cfg)

	return RunInfoWithDependencies(cmd.Context(), infoService, infoURL, os.Stdout)
}

// RunInfoWithDependencies runs the info command with an injected service
// (for testing)
func RunInfoWithDependencies(
	ctx context.Context,
	infoService *appvideo.InfoService,
	url string,
	output io.Writer,
) error {
	info, err := infoService.Fetch(ctx, url)
	if err != nil {
		return err
	}

	duration := time.Duration(info.Duration) * time.Second
	fmt.Fprintf(output, "Title:     %s\n", info.Title)
	fmt.Fprintf(output, "Duration:  %s (%d seconds)\n", duration, info.Duration)
	if info.Thumbnail != "" {
		fmt.Fprintf(output, "Thumbnail: %s\n", info.Thumbnail)
	}
	return nil
}
