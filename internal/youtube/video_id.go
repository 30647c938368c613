package youtube

import (
	"regexp"
	"strings"
)

var videoURLPrefix = regexp.MustCompile(`(?:https?://)?(?:www\.)?(?:youtube\.com/watch\?v=|youtu\.be/|youtube\.com/embed/)`)

// ExtractVideoID returns whatever follows the first watch, share or embed URL
// prefix in input. Input without such a prefix is taken as a bare id. An empty
// result means there is no usable id.
func ExtractVideoID(input string) string {
	input = strings.TrimSpace(input)

	loc := videoURLPrefix.FindStringIndex(input)
	if loc == nil {
		return input
	}
	return input[loc[1]:]
}
