package clients

const (
	ANALYZE_COMMENTS_PATH = "/analyze"
	ANALYZE_YOUTUBE_PATH  = "/analyze-youtube-comments"
	USER_AGENT            = "datatalks-web/1.0 (+https://github.com/spacesedan/datatalks)"
)
