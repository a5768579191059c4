package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	appvideo "video-trim-service/application/video"

	"github.com/spf13/cobra"
)

var (
	trimURL       string
	trimStartTime string
	trimEndTime   string
	trimOutput    string
)

var trimCmd = &cobra.Command{
	Use:   "trim",
	Short: "Download a video and trim it to the given time window",
	Long: `Download a remote video at a bounded resolution and cut the requested
time window into a local mp4 file using stream copy.

Example:
  video-trim-service trim --url "https://www.youtube.com/watch?v=..." --start 00:01:30 --end 00:02:45 --output clip.mp4`,
	RunE: runTrim,
}

func init() {
	rootCmd.AddCommand(trimCmd)
	trimCmd.Flags().StringVar(&trimURL, "url", "", "Video URL (required)")
	trimCmd.Flags().StringVar(&trimStartTime, "start", "", "Start timestamp in HH:MM:SS format (required)")
	trimCmd.Flags().StringVar(&trimEndTime, "end", "", "End timestamp in HH:MM:SS format (required)")
	trimCmd.Flags().StringVar(&trimOutput, "output", "", "Output file path (default: trimmed_video_<timestamp>.mp4)")
	trimCmd.MarkFlagRequired("url")
	trimCmd.MarkFlagRequired("start")
	trimCmd.MarkFlagRequired("end")
}

func runTrim(cmd *cobra.Command, args []string) error {
	cfg := GetConfig()
	trimService := newTrimService(cfg, newLogger())

	return RunTrimWithDependencies(
		cmd.Context(),
		trimService,
		trimURL,
		trimStartTime,
		trimEndTime,
		trimOutput,
		os.Stdout,
	)
}

// RunTrimWithDependencies runs the trim command with an injected service
// (for testing)
func RunTrimWithDependencies(
	ctx context.Context,
	trimService *appvideo.TrimService,
	url, startTime, endTime, outputPath string,
	output io.Writer,
) error {
	if outputPath == "" {
		outputPath = fmt.Sprintf("trimmed_video_%s.mp4", time.Now().Format("20060102_150405"))
	}
	absPath, err := filepath.Abs(outputPath)
	if err != nil {
		return fmt.Errorf("failed to resolve output path: %w", err)
	}

	fmt.Fprintf(output, "Trimming %s [%s - %s]...\n", url, startTime, endTime)

	result, err := trimService.Trim(ctx, appvideo.TrimInput{
		URL:       url,
		StartTime: startTime,
		EndTime:   endTime,
	}, absPath)
	if err != nil {
		return err
	}

	fmt.Fprintf(output, "Title:   %s\n", result.Info.Title)
	fmt.Fprintf(output, "Created: %s\n", result.OutputPath)
	return nil
}
