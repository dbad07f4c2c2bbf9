package video

import "regexp"

var youtubeIDRegex = regexp.MustCompile(`(?:youtube\.com/watch\?v=|youtu\.be/|youtube\.com/embed/)([^&\n?#]+)`)

// YouTubeID extracts the video id from a watch, short or embed YouTube URL.
func YouTubeID(url string) (string, bool) {
	m := youtubeIDRegex.FindStringSubmatch(url)
	if m == nil {
		return "", false
	}
	return m[1], true
}

func ThumbnailURL(id string) string {
	return "https://img.youtube.com/vi/" + id + "/maxresdefault.jpg"
}
