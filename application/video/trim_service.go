package video

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"video-trim-service/domain/video"

	"golang.org/x/exp/slog"
)

// TrimService coordinates the download-and-trim workflow for one request:
// validate, probe, download into a scoped workspace, locate the file, trim
// into the output path, and remove the workspace on every exit path.
type TrimService struct {
	fetcher     video.InfoFetcher
	downloader  video.Downloader
	trimmer     video.Trimmer
	fileChecker video.FileChecker
	logger      *slog.Logger
}

// NewTrimService creates a new TrimService
func NewTrimService(
	fetcher video.InfoFetcher,
	downloader video.Downloader,
	trimmer video.Trimmer,
	fileChecker video.FileChecker,
	logger *slog.Logger,
) *TrimService {
	return &TrimService{
		fetcher:     fetcher,
		downloader:  downloader,
		trimmer:     trimmer,
		fileChecker: fileChecker,
		logger:      logger,
	}
}

// TrimInput represents the raw input for a trim operation
type TrimInput struct {
	URL       string
	StartTime string
	EndTime   string
}

// TrimResult contains the result of a successful trim
type TrimResult struct {
	OutputPath string
	Info       video.Info
}

// Trim validates the input, then downloads and trims the video into
// outputPath. Validation runs before any download: malformed timestamps
// first, then the URL, then the probed duration, then the range.
func (s *TrimService) Trim(ctx context.Context, input TrimInput, outputPath string) (*TrimResult, error) {
	start, err := video.ParseTimestamp(input.StartTime)
	if err != nil {
		return nil, fmt.Errorf("invalid start time: %w", err)
	}
	end, err := video.ParseTimestamp(input.EndTime)
	if err != nil {
		return nil, fmt.Errorf("invalid end time: %w", err)
	}

	req, err := video.NewTrimRequest(input.URL, start, end)
	if err != nil {
		return nil, err
	}

	info, err := s.fetcher.FetchInfo(ctx, req.URL)
	if err != nil {
		return nil, err
	}
	if err := req.ValidateDuration(info); err != nil {
		return nil, err
	}
	if err := req.ValidateRange(); err != nil {
		return nil, err
	}

	if err := s.downloadAndTrim(ctx, req, outputPath); err != nil {
		return nil, err
	}

	s.logger.Info("trimmed video",
		slog.String("url", req.URL),
		slog.String("output", outputPath),
		slog.Int("seconds", req.ClipSeconds()))

	return &TrimResult{OutputPath: outputPath, Info: info}, nil
}

func (s *TrimService) downloadAndTrim(ctx context.Context, req *video.TrimRequest, outputPath string) error {
	workDir, err := os.MkdirTemp("", "video-trim-*")
	if err != nil {
		return fmt.Errorf("%w: failed to create download workspace: %v", video.ErrProcessing, err)
	}
	defer func() {
		if err := os.RemoveAll(workDir); err != nil {
			s.logger.Error("failed to remove download workspace", err, slog.String("dir", workDir))
		}
	}()

	if err := s.downloader.Download(ctx, req.URL, workDir); err != nil {
		return fmt.Errorf("%w: %v", video.ErrProcessing, err)
	}

	inputPath, err := locateDownload(workDir)
	if err != nil {
		return err
	}

	if err := s.trimmer.Trim(ctx, inputPath, req.Start.TotalSeconds(), req.ClipSeconds(), outputPath); err != nil {
		// A failed trim must never leave a partial file at the destination.
		if removeErr := os.Remove(outputPath); removeErr != nil && !os.IsNotExist(removeErr) {
			s.logger.Error("failed to remove partial output", removeErr, slog.String("path", outputPath))
		}
		return fmt.Errorf("%w: %v", video.ErrProcessing, err)
	}

	if !s.fileChecker.Exists(outputPath) {
		return fmt.Errorf("%w: trim produced no output at %s", video.ErrProcessing, outputPath)
	}

	return nil
}

// locateDownload finds the downloaded file by the fixed base name prefix.
// Zero matches means the tool's naming assumption broke; more than one match
// is just as suspicious, so both fail instead of picking a file arbitrarily.
func locateDownload(dir string) (string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return "", fmt.Errorf("%w: failed to read download workspace: %v", video.ErrProcessing, err)
	}

	prefix := video.DownloadBaseName + "."
	var matches []string
	for _, entry := range entries {
		if !entry.IsDir() && strings.HasPrefix(entry.Name(), prefix) {
			matches = append(matches, entry.Name())
		}
	}

	switch len(matches) {
	case 1:
		return filepath.Join(dir, matches[0]), nil
	case 0:
		return "", video.ErrDownloadedFileMissing
	default:
		return "", fmt.Errorf("%w: %d files match prefix %q", video.ErrDownloadedFileMissing, len(matches), prefix)
	}
}
