package video

import "errors"

var (
	// ErrInvalidTimeFormat is returned when a timestamp does not parse as HH:MM:SS
	ErrInvalidTimeFormat = errors.New("invalid time format, expected HH:MM:SS")

	// ErrInvalidURL is returned when the video URL is missing or malformed
	ErrInvalidURL = errors.New("invalid video url")

	// ErrInvalidRange is returned when the start time is not before the end time
	ErrInvalidRange = errors.New("start time must be before end time")

	// ErrDurationExceeded is returned when the end time lies past the source video's duration
	ErrDurationExceeded = errors.New("end time exceeds video duration")

	// ErrVideoInfo is returned when the metadata probe fails
	ErrVideoInfo = errors.New("error fetching video info")

	// ErrDownloadedFileMissing is returned when the download tool reported success
	// but no file matches the expected base name in the workspace
	ErrDownloadedFileMissing = errors.New("video file not found after download")

	// ErrProcessing is returned when the download or trim tool fails
	ErrProcessing = errors.New("error processing video")
)
