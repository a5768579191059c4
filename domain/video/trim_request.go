package video

import (
	"fmt"
	"net/url"
)

// TrimRequest represents a request to download a remote video and cut the
// [Start, End) window out of it
type TrimRequest struct {
	URL   string
	Start Timestamp
	End   Timestamp
}

// NewTrimRequest creates a TrimRequest, validating the video URL. The time
// range checks are separate methods because they run in a fixed order against
// the probed source metadata.
func NewTrimRequest(rawURL string, start, end Timestamp) (*TrimRequest, error) {
	if rawURL == "" {
		return nil, fmt.Errorf("%w: url is required", ErrInvalidURL)
	}

	u, err := url.Parse(rawURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("%w: %q", ErrInvalidURL, rawURL)
	}

	return &TrimRequest{
		URL:   rawURL,
		Start: start,
		End:   end,
	}, nil
}

// ValidateDuration checks that the end time does not lie past the source
// video's reported duration
func (r *TrimRequest) ValidateDuration(info Info) error {
	if r.End.TotalSeconds() > info.Duration {
		return fmt.Errorf("%w (%d seconds)", ErrDurationExceeded, info.Duration)
	}
	return nil
}

// ValidateRange checks that the start time is strictly before the end time
func (r *TrimRequest) ValidateRange() error {
	if !r.Start.Before(r.End) {
		return fmt.Errorf("%w: start %s, end %s", ErrInvalidRange, r.Start, r.End)
	}
	return nil
}

// ClipSeconds returns the length of the requested window in whole seconds
func (r *TrimRequest) ClipSeconds() int {
	return r.End.TotalSeconds() - r.Start.TotalSeconds()
}
