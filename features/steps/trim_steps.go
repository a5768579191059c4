//go:build integration

package steps

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	appvideo "video-trim-service/application/video"
	"video-trim-service/cmd"
	"video-trim-service/domain/video"
	"video-trim-service/infrastructure/filesystem"

	"github.com/cucumber/godog"
	"golang.org/x/exp/slog"
)

// mockInfoFetcher serves canned metadata for the scenario's video
type mockInfoFetcher struct {
	info       video.Info
	shouldFail bool
}

func (m *mockInfoFetcher) FetchInfo(ctx context.Context, url string) (video.Info, error) {
	if m.shouldFail {
		return video.Info{}, fmt.Errorf("%w: probe refused", video.ErrVideoInfo)
	}
	return m.info, nil
}

// mockDownloader writes a placeholder download into the workspace
type mockDownloader struct {
	lastDir    string
	shouldFail bool
}

func (m *mockDownloader) Download(ctx context.Context, url, dir string) error {
	if m.shouldFail {
		return fmt.Errorf("download refused")
	}
	m.lastDir = dir
	name := filepath.Join(dir, video.DownloadBaseName+".mp4")
	return os.WriteFile(name, []byte("downloaded"), 0644)
}

// mockTrimmer records calls to Trim and materializes the output file
type mockTrimmer struct {
	calls []trimCall
}

type trimCall struct {
	inputPath    string
	startSeconds int
	clipSeconds  int
	outputPath   string
}

func (m *mockTrimmer) Trim(ctx context.Context, inputPath string, startSeconds, clipSeconds int, outputPath string) error {
	m.calls = append(m.calls, trimCall{
		inputPath:    inputPath,
		startSeconds: startSeconds,
		clipSeconds:  clipSeconds,
		outputPath:   outputPath,
	})
	return os.WriteFile(outputPath, []byte("trimmed"), 0644)
}

// trimContext holds test state for trim scenarios
type trimContext struct {
	tempDir    string
	url        string
	fetcher    *mockInfoFetcher
	downloader *mockDownloader
	trimmer    *mockTrimmer
	output     *bytes.Buffer
	err        error
	resultPath string
}

// SharedTrimContext is reset before each scenario via Before hook
var SharedTrimContext *trimContext

func getTrimContext() *trimContext {
	return SharedTrimContext
}

func newTrimService(t *trimContext) *appvideo.TrimService {
	logger := slog.New(slog.NewTextHandler(io.Discard))
	return appvideo.NewTrimService(t.fetcher, t.downloader, t.trimmer, filesystem.NewChecker(), logger)
}

func InitializeTrimScenario(ctx *godog.ScenarioContext) {
	ctx.Before(func(c context.Context, sc *godog.Scenario) (context.Context, error) {
		tempDir, err := os.MkdirTemp("", "trim-feature-*")
		if err != nil {
			return c, err
		}
		SharedTrimContext = &trimContext{
			tempDir:    tempDir,
			fetcher:    &mockInfoFetcher{},
			downloader: &mockDownloader{},
			trimmer:    &mockTrimmer{},
			output:     &bytes.Buffer{},
		}
		return c, nil
	})

	ctx.After(func(c context.Context, sc *godog.Scenario, err error) (context.Context, error) {
		if SharedTrimContext != nil && SharedTrimContext.tempDir != "" {
			os.RemoveAll(SharedTrimContext.tempDir)
		}
		SharedTrimContext = nil
		return c, nil
	})

	ctx.Step(`^a remote video at "([^"]*)" lasting (\d+) seconds$`, aRemoteVideoAtLastingSeconds)
	ctx.Step(`^the metadata probe fails$`, theMetadataProbeFails)
	ctx.Step(`^the download fails$`, theDownloadFails)
	ctx.Step(`^I trim the video from "([^"]*)" to "([^"]*)"$`, iTrimTheVideoFromTo)
	ctx.Step(`^I attempt to trim from "([^"]*)" to "([^"]*)"$`, iAttemptToTrimFromTo)
	ctx.Step(`^the trimmed file should exist$`, theTrimmedFileShouldExist)
	ctx.Step(`^the cut should start at (\d+) seconds and last (\d+) seconds$`, theCutShouldStartAtSecondsAndLastSeconds)
	ctx.Step(`^the download workspace should be removed$`, theDownloadWorkspaceShouldBeRemoved)
	ctx.Step(`^I should receive an error about invalid time format$`, iShouldReceiveAnErrorAboutInvalidTimeFormat)
	ctx.Step(`^I should receive an error about the time range$`, iShouldReceiveAnErrorAboutTheTimeRange)
	ctx.Step(`^I should receive an error about the video duration$`, iShouldReceiveAnErrorAboutTheVideoDuration)
	ctx.Step(`^I should receive an error about fetching video info$`, iShouldReceiveAnErrorAboutFetchingVideoInfo)
	ctx.Step(`^I should receive an error about processing the video$`, iShouldReceiveAnErrorAboutProcessingTheVideo)
	ctx.Step(`^no download should have been started$`, noDownloadShouldHaveBeenStarted)
}

func aRemoteVideoAtLastingSeconds(url string, duration int) error {
	t := getTrimContext()
	t.url = url
	t.fetcher.info = video.Info{
		Title:    "Scenario Video",
		Duration: duration,
	}
	return nil
}

func theMetadataProbeFails() error {
	t := getTrimContext()
	t.fetcher.shouldFail = true
	return nil
}

func theDownloadFails() error {
	t := getTrimContext()
	t.downloader.shouldFail = true
	return nil
}

func runTrim(t *trimContext, start, end string) {
	outputPath := filepath.Join(t.tempDir, "trimmed.mp4")
	t.err = cmd.RunTrimWithDependencies(
		context.Background(),
		newTrimService(t),
		t.url,
		start,
		end,
		outputPath,
		t.output,
	)
	if t.err == nil {
		t.resultPath = outputPath
	}
}

func iTrimTheVideoFromTo(start, end string) error {
	t := getTrimContext()
	runTrim(t, start, end)
	if t.err != nil {
		return fmt.Errorf("unexpected error: %v", t.err)
	}
	return nil
}

func iAttemptToTrimFromTo(start, end string) error {
	t := getTrimContext()
	runTrim(t, start, end)
	return nil
}

func theTrimmedFileShouldExist() error {
	t := getTrimContext()
	if t.resultPath == "" {
		return fmt.Errorf("no trimmed file was produced")
	}
	if _, err := os.Stat(t.resultPath); err != nil {
		return fmt.Errorf("trimmed file missing at %s: %v", t.resultPath, err)
	}
	return nil
}

func theCutShouldStartAtSecondsAndLastSeconds(start, clip int) error {
	t := getTrimContext()
	if len(t.trimmer.calls) == 0 {
		return fmt.Errorf("ffmpeg was not called")
	}
	call := t.trimmer.calls[0]
	if call.startSeconds != start {
		return fmt.Errorf("expected cut start %d, got %d", start, call.startSeconds)
	}
	if call.clipSeconds != clip {
		return fmt.Errorf("expected cut length %d, got %d", clip, call.clipSeconds)
	}
	return nil
}

func theDownloadWorkspaceShouldBeRemoved() error {
	t := getTrimContext()
	if t.downloader.lastDir == "" {
		return fmt.Errorf("no download workspace was created")
	}
	if _, err := os.Stat(t.downloader.lastDir); !os.IsNotExist(err) {
		return fmt.Errorf("download workspace %s still exists", t.downloader.lastDir)
	}
	return nil
}

func expectError(sentinel error, name string) error {
	t := getTrimContext()
	if t.err == nil {
		return fmt.Errorf("expected an error but got none")
	}
	if !errors.Is(t.err, sentinel) {
		return fmt.Errorf("expected error about %s, got: %v", name, t.err)
	}
	return nil
}

func iShouldReceiveAnErrorAboutInvalidTimeFormat() error {
	return expectError(video.ErrInvalidTimeFormat, "invalid time format")
}

func iShouldReceiveAnErrorAboutTheTimeRange() error {
	return expectError(video.ErrInvalidRange, "the time range")
}

func iShouldReceiveAnErrorAboutTheVideoDuration() error {
	return expectError(video.ErrDurationExceeded, "the video duration")
}

func iShouldReceiveAnErrorAboutFetchingVideoInfo() error {
	return expectError(video.ErrVideoInfo, "fetching video info")
}

func iShouldReceiveAnErrorAboutProcessingTheVideo() error {
	return expectError(video.ErrProcessing, "processing the video")
}

func noDownloadShouldHaveBeenStarted() error {
	t := getTrimContext()
	if t.downloader.lastDir != "" {
		return fmt.Errorf("download was started in %s", t.downloader.lastDir)
	}
	return nil
}
