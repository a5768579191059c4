package video

import (
	"os"
	"path/filepath"
	"sort"
	"time"

	"golang.org/x/exp/slog"
)

// RetentionService prunes old trimmed files from the output directory,
// keeping only the most recently created maxFiles entries. Pruning is
// best-effort by contract: it runs after a request has already succeeded
// and must never fail that request, so every error is logged and swallowed.
type RetentionService struct {
	outputDir string
	maxFiles  int
	logger    *slog.Logger
}

// NewRetentionService creates a new RetentionService for the given directory
func NewRetentionService(outputDir string, maxFiles int, logger *slog.Logger) *RetentionService {
	return &RetentionService{
		outputDir: outputDir,
		maxFiles:  maxFiles,
		logger:    logger,
	}
}

// Prune deletes all but the maxFiles most recently modified files in the
// output directory. It returns the number of files removed.
func (s *RetentionService) Prune() int {
	entries, err := os.ReadDir(s.outputDir)
	if err != nil {
		s.logger.Error("failed to list output directory", err, slog.String("dir", s.outputDir))
		return 0
	}

	type staleCandidate struct {
		name    string
		modTime time.Time
	}
	var files []staleCandidate
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		fi, err := entry.Info()
		if err != nil {
			s.logger.Error("failed to stat output file", err, slog.String("file", entry.Name()))
			continue
		}
		files = append(files, staleCandidate{name: entry.Name(), modTime: fi.ModTime()})
	}

	if len(files) <= s.maxFiles {
		return 0
	}

	sort.Slice(files, func(i, j int) bool {
		return files[i].modTime.Before(files[j].modTime)
	})

	removed := 0
	for _, f := range files[:len(files)-s.maxFiles] {
		if err := os.Remove(filepath.Join(s.outputDir, f.name)); err != nil {
			s.logger.Error("failed to remove stale file", err, slog.String("file", f.name))
			continue
		}
		removed++
		s.logger.Info("removed stale file", slog.String("file", f.name))
	}

	return removed
}
