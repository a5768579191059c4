//go:build integration

package steps

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"video-trim-service/infrastructure/config"

	"github.com/cucumber/godog"
)

type configContext struct {
	tempDir    string
	configPath string
	cfg        *config.Config
	loadErr    error
}

// SharedConfigContext is reset before each scenario via the hooks
var SharedConfigContext = &configContext{}

func InitializeConfigScenario(ctx *godog.ScenarioContext) {
	testCtx := SharedConfigContext

	ctx.Before(func(c context.Context, sc *godog.Scenario) (context.Context, error) {
		tempDir, err := os.MkdirTemp("", "config-feature-*")
		if err != nil {
			return c, err
		}
		testCtx.tempDir = tempDir
		testCtx.configPath = filepath.Join(tempDir, "config.yaml")
		testCtx.cfg = nil
		testCtx.loadErr = nil
		return c, nil
	})

	ctx.After(func(c context.Context, sc *godog.Scenario, err error) (context.Context, error) {
		if testCtx.tempDir != "" {
			os.RemoveAll(testCtx.tempDir)
		}
		*testCtx = configContext{}
		return c, nil
	})

	ctx.Step(`^a configuration file containing:$`, testCtx.aConfigurationFileContaining)
	ctx.Step(`^I load the configuration$`, testCtx.iLoadTheConfiguration)
	ctx.Step(`^I attempt to load a missing configuration file$`, testCtx.iAttemptToLoadAMissingConfigurationFile)
	ctx.Step(`^the server port should be (\d+)$`, testCtx.theServerPortShouldBe)
	ctx.Step(`^the output directory should be "([^"]*)"$`, testCtx.theOutputDirectoryShouldBe)
	ctx.Step(`^the retention limit should be (\d+)$`, testCtx.theRetentionLimitShouldBe)
	ctx.Step(`^the yt-dlp path should be "([^"]*)"$`, testCtx.theYtDlpPathShouldBe)
	ctx.Step(`^loading should fail$`, testCtx.loadingShouldFail)
}

func (c *configContext) aConfigurationFileContaining(content *godog.DocString) error {
	return os.WriteFile(c.configPath, []byte(content.Content), 0644)
}

func (c *configContext) iLoadTheConfiguration() error {
	c.cfg, c.loadErr = config.Load(c.configPath)
	if c.loadErr != nil {
		return fmt.Errorf("failed to load config: %w", c.loadErr)
	}
	return nil
}

func (c *configContext) iAttemptToLoadAMissingConfigurationFile() error {
	c.cfg, c.loadErr = config.Load(filepath.Join(c.tempDir, "nope.yaml"))
	return nil
}

func (c *configContext) theServerPortShouldBe(port int) error {
	if c.cfg.Server.Port != port {
		return fmt.Errorf("expected port %d, got %d", port, c.cfg.Server.Port)
	}
	return nil
}

func (c *configContext) theOutputDirectoryShouldBe(dir string) error {
	if c.cfg.Paths.OutputDirectory != dir {
		return fmt.Errorf("expected output directory %q, got %q", dir, c.cfg.Paths.OutputDirectory)
	}
	return nil
}

func (c *configContext) theRetentionLimitShouldBe(max int) error {
	if c.cfg.Retention.MaxFiles != max {
		return fmt.Errorf("expected retention limit %d, got %d", max, c.cfg.Retention.MaxFiles)
	}
	return nil
}

func (c *configContext) theYtDlpPathShouldBe(path string) error {
	if c.cfg.Tools.YtDlpPath != path {
		return fmt.Errorf("expected yt-dlp path %q, got %q", path, c.cfg.Tools.YtDlpPath)
	}
	return nil
}

func (c *configContext) loadingShouldFail() error {
	if c.loadErr == nil {
		return fmt.Errorf("expected loading to fail")
	}
	return nil
}
