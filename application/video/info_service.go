package video

import (
	"context"
	"fmt"
	"net/url"

	"video-trim-service/domain/video"
)

// InfoService fetches metadata for a remote video
type InfoService struct {
	fetcher video.InfoFetcher
}

// NewInfoService creates a new InfoService
func NewInfoService(fetcher video.InfoFetcher) *InfoService {
	return &InfoService{fetcher: fetcher}
}

// Fetch validates the URL and probes the video for metadata
func (s *InfoService) Fetch(ctx context.Context, rawURL string) (video.Info, error) {
	if rawURL == "" {
		return video.Info{}, fmt.Errorf("%w: url is required", video.ErrInvalidURL)
	}
	u, err := url.Parse(rawURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return video.Info{}, fmt.Errorf("%w: %q", video.ErrInvalidURL, rawURL)
	}

	return s.fetcher.FetchInfo(ctx, rawURL)
}
