package video

// Info holds metadata about a source video. It is fetched fresh for every
// request and never cached.
type Info struct {
	Title     string `json:"title"`
	Duration  int    `json:"duration"`
	Thumbnail string `json:"thumbnail"`
}
