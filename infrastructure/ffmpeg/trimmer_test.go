package ffmpeg

import (
	"context"
	"errors"
	"reflect"
	"strings"
	"testing"
)

// fakeRunner records invocations and returns configured results
type fakeRunner struct {
	runErr    error
	outputErr error
	name      string
	args      []string
}

func (f *fakeRunner) Run(ctx context.Context, name string, args ...string) error {
	f.name = name
	f.args = args
	return f.runErr
}

func (f *fakeRunner) Output(ctx context.Context, name string, args ...string) ([]byte, error) {
	f.name = name
	f.args = args
	return nil, f.outputErr
}

func TestTrimmer_Trim(t *testing.T) {
	runner := &fakeRunner{}
	trimmer := NewTrimmer(WithCommandRunner(runner))

	err := trimmer.Trim(context.Background(), "/tmp/work/video.mp4", 90, 45, "/out/clip.mp4")
	if err != nil {
		t.Fatalf("Trim() unexpected error: %v", err)
	}

	if runner.name != "ffmpeg" {
		t.Errorf("executable = %q, want ffmpeg", runner.name)
	}
	want := []string{
		"-i", "/tmp/work/video.mp4",
		"-ss", "90",
		"-t", "45",
		"-c:v", "copy",
		"-c:a", "copy",
		"-y",
		"/out/clip.mp4",
	}
	if !reflect.DeepEqual(runner.args, want) {
		t.Errorf("args = %v, want %v", runner.args, want)
	}
}

func TestTrimmer_Trim_Failure(t *testing.T) {
	runner := &fakeRunner{runErr: errors.New("exit status 1: moov atom not found")}
	trimmer := NewTrimmer(WithCommandRunner(runner))

	err := trimmer.Trim(context.Background(), "in.mp4", 0, 10, "out.mp4")
	if err == nil {
		t.Fatal("Trim() expected error, got nil")
	}
	if !strings.Contains(err.Error(), "moov atom not found") {
		t.Errorf("error should carry tool output, got %v", err)
	}
}

func TestTrimmer_WithFFmpegPath(t *testing.T) {
	runner := &fakeRunner{}
	trimmer := NewTrimmer(WithFFmpegPath("/opt/ffmpeg/bin/ffmpeg"), WithCommandRunner(runner))

	if err := trimmer.VerifyInstalled(context.Background()); err != nil {
		t.Fatalf("VerifyInstalled() unexpected error: %v", err)
	}
	if runner.name != "/opt/ffmpeg/bin/ffmpeg" {
		t.Errorf("executable = %q, want custom path", runner.name)
	}
}

func TestTrimmer_VerifyInstalled_Missing(t *testing.T) {
	runner := &fakeRunner{outputErr: errors.New("executable file not found in $PATH")}
	trimmer := NewTrimmer(WithCommandRunner(runner))

	if err := trimmer.VerifyInstalled(context.Background()); err == nil {
		t.Error("VerifyInstalled() expected error, got nil")
	}
}
