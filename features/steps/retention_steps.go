//go:build integration

package steps

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	appvideo "video-trim-service/application/video"

	"github.com/cucumber/godog"
	"golang.org/x/exp/slog"
)

type retentionContext struct {
	outputDir string
	removed   int
}

// SharedRetentionContext is reset before each scenario via the hooks
var SharedRetentionContext = &retentionContext{}

func InitializeRetentionScenario(ctx *godog.ScenarioContext) {
	testCtx := SharedRetentionContext

	ctx.Before(func(c context.Context, sc *godog.Scenario) (context.Context, error) {
		outputDir, err := os.MkdirTemp("", "retention-feature-*")
		if err != nil {
			return c, err
		}
		testCtx.outputDir = outputDir
		testCtx.removed = 0
		return c, nil
	})

	ctx.After(func(c context.Context, sc *godog.Scenario, err error) (context.Context, error) {
		if testCtx.outputDir != "" {
			os.RemoveAll(testCtx.outputDir)
		}
		*testCtx = retentionContext{}
		return c, nil
	})

	ctx.Step(`^(\d+) trimmed files exist in the output directory$`, testCtx.trimmedFilesExistInTheOutputDirectory)
	ctx.Step(`^I prune the output directory keeping (\d+) files$`, testCtx.iPruneTheOutputDirectoryKeepingFiles)
	ctx.Step(`^(\d+) files should have been removed$`, testCtx.filesShouldHaveBeenRemoved)
	ctx.Step(`^the newest (\d+) files should remain$`, testCtx.theNewestFilesShouldRemain)
}

// file index n is the nth oldest, aged one minute apart
func (r *retentionContext) trimmedFilesExistInTheOutputDirectory(count int) error {
	base := time.Now().Add(-time.Duration(count) * time.Minute)
	for i := 0; i < count; i++ {
		path := filepath.Join(r.outputDir, fmt.Sprintf("trimmed_video_%03d.mp4", i))
		if err := os.WriteFile(path, []byte("clip"), 0644); err != nil {
			return err
		}
		modTime := base.Add(time.Duration(i) * time.Minute)
		if err := os.Chtimes(path, modTime, modTime); err != nil {
			return err
		}
	}
	return nil
}

func (r *retentionContext) iPruneTheOutputDirectoryKeepingFiles(max int) error {
	logger := slog.New(slog.NewTextHandler(io.Discard))
	retention := appvideo.NewRetentionService(r.outputDir, max, logger)
	r.removed = retention.Prune()
	return nil
}

func (r *retentionContext) filesShouldHaveBeenRemoved(expected int) error {
	if r.removed != expected {
		return fmt.Errorf("expected %d files removed, got %d", expected, r.removed)
	}
	return nil
}

func (r *retentionContext) theNewestFilesShouldRemain(count int) error {
	entries, err := os.ReadDir(r.outputDir)
	if err != nil {
		return err
	}
	if len(entries) != count {
		return fmt.Errorf("expected %d files to remain, got %d", count, len(entries))
	}

	remaining := make(map[string]bool, len(entries))
	for _, entry := range entries {
		remaining[entry.Name()] = true
	}

	// The pruner keeps the most recently modified files, which are the
	// highest-numbered ones written by the setup step
	total := count + r.removed
	for i := total - count; i < total; i++ {
		name := fmt.Sprintf("trimmed_video_%03d.mp4", i)
		if !remaining[name] {
			return fmt.Errorf("expected %s to remain, remaining files: %v", name, remaining)
		}
	}
	return nil
}
