package video

import "context"

// DownloadBaseName is the fixed base name the downloader writes into its
// workspace ("video.mp4", "video.webm", ...). The orchestrator locates the
// downloaded file by this prefix, so both sides share the constant instead of
// relying on an implicit naming convention.
const DownloadBaseName = "video"

// InfoFetcher probes a remote video for metadata without downloading any bytes
// This is a port that can be implemented by different infrastructure adapters
type InfoFetcher interface {
	FetchInfo(ctx context.Context, url string) (Info, error)
}

// Downloader fetches a remote video into dir, writing a single file named
// DownloadBaseName with a tool-chosen extension
type Downloader interface {
	Download(ctx context.Context, url, dir string) error
}

// Trimmer cuts clipSeconds of video starting at startSeconds out of inputPath
// into outputPath using stream copy
type Trimmer interface {
	Trim(ctx context.Context, inputPath string, startSeconds, clipSeconds int, outputPath string) error
}

// FileChecker defines the interface for checking file existence
type FileChecker interface {
	// Exists returns true if the file exists
	Exists(path string) bool
}
