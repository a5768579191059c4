// Package ytdlp adapts the yt-dlp command-line tool to the domain ports for
// probing and downloading remote videos. The tool is treated as a black box
// with a documented option surface; its failures surface as opaque text.
package ytdlp

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"strconv"
)

// DefaultFormatSelector targets video heights in [360, 480] with an
// mp4-preferring preference chain, falling back to any container in range.
const DefaultFormatSelector = "bv*[height<=480][height>=360][ext=mp4]+ba[ext=m4a]/b[height<=480][height>=360][ext=mp4]/b[height<=480][height>=360]"

// userAgent is a fixed desktop Chrome identity. Sent together with the
// browser-like headers below to reduce the chance of the remote site
// rejecting the request as automated.
const userAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/122.0.0.0 Safari/537.36"

// Settings holds the tunable yt-dlp knobs shared by probe and download
type Settings struct {
	FormatSelector       string
	SocketTimeoutSeconds int
	Retries              int
	ConcurrentFragments  int
	ThrottledRate        string
}

// DefaultSettings returns the production defaults
func DefaultSettings() Settings {
	return Settings{
		FormatSelector:       DefaultFormatSelector,
		SocketTimeoutSeconds: 30,
		Retries:              3,
		ConcurrentFragments:  3,
		ThrottledRate:        "100K",
	}
}

// withDefaults fills any zero-valued field from DefaultSettings
func (s Settings) withDefaults() Settings {
	def := DefaultSettings()
	if s.FormatSelector == "" {
		s.FormatSelector = def.FormatSelector
	}
	if s.SocketTimeoutSeconds == 0 {
		s.SocketTimeoutSeconds = def.SocketTimeoutSeconds
	}
	if s.Retries == 0 {
		s.Retries = def.Retries
	}
	if s.ConcurrentFragments == 0 {
		s.ConcurrentFragments = def.ConcurrentFragments
	}
	if s.ThrottledRate == "" {
		s.ThrottledRate = def.ThrottledRate
	}
	return s
}

// commonArgs returns the flags shared by the probe and download invocations:
// the format selector, the browser identity, and the lenient extraction
// options (certificate checks and geo restrictions bypassed, sub-resource
// extraction errors ignored rather than aborting the whole call).
func (s Settings) commonArgs() []string {
	return []string{
		"--format", s.FormatSelector,
		"--no-check-certificates",
		"--ignore-errors",
		"--no-colors",
		"--geo-bypass",
		"--extractor-args", "youtube:player_client=web;player_skip=configs",
		"--user-agent", userAgent,
		"--add-headers", "Accept:text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8",
		"--add-headers", "Accept-Language:en-us,en;q=0.5",
		"--add-headers", "Sec-Fetch-Mode:navigate",
		"--socket-timeout", strconv.Itoa(s.SocketTimeoutSeconds),
		"--extractor-retries", strconv.Itoa(s.Retries),
	}
}

// CommandRunner defines the interface for running the yt-dlp executable
// This allows mocking exec.Command in tests
type CommandRunner interface {
	Run(ctx context.Context, name string, args ...string) error
	Output(ctx context.Context, name string, args ...string) ([]byte, error)
}

// ExecCommandRunner is the production implementation using os/exec
type ExecCommandRunner struct{}

// Run executes a command, folding captured output into any error
func (r *ExecCommandRunner) Run(ctx context.Context, name string, args ...string) error {
	cmd := exec.CommandContext(ctx, name, args...)
	var out bytes.Buffer
	cmd.Stdout = &out
	cmd.Stderr = &out
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("%v: %s", err, out.String())
	}
	return nil
}

// Output executes a command and returns its stdout; on failure stderr is
// folded into the error
func (r *ExecCommandRunner) Output(ctx context.Context, name string, args ...string) ([]byte, error) {
	cmd := exec.CommandContext(ctx, name, args...)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		return stdout.Bytes(), fmt.Errorf("%v: %s", err, stderr.String())
	}
	return stdout.Bytes(), nil
}
