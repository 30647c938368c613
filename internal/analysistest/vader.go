package analysistest

import (
	"regexp"
	"strings"

	"github.com/jonreiter/govader"
	"github.com/russross/blackfriday/v2"
)

var (
	analyzer    = govader.NewSentimentIntensityAnalyzer()
	linkPattern = regexp.MustCompile(`\[(.*?)\]\((https?:\/\/[^\s\)]+)\)`)
	urlPattern  = regexp.MustCompile(`https?://\S+|www\.\S+`)
	tagPattern  = regexp.MustCompile(`<[^>]*>`)
)

func removeLinks(input string) string {
	input = linkPattern.ReplaceAllString(input, "$1")
	return urlPattern.ReplaceAllString(input, "")
}

// plainText renders comment markdown and drops the markup again so VADER
// only sees words.
func plainText(input string) string {
	output := blackfriday.Run([]byte(removeLinks(input)), blackfriday.WithNoExtensions())
	output = tagPattern.ReplaceAll(output, []byte(" "))
	return strings.Join(strings.Fields(string(output)), " ")
}

// Label scores text with VADER using the same +-0.20 compound thresholds as
// the production pipeline.
func Label(text string) (float64, string) {
	score := analyzer.PolarityScores(plainText(text)).Compound

	switch {
	case score >= 0.20:
		return score, "positive"
	case score <= -0.20:
		return score, "negative"
	default:
		return score, "neutral"
	}
}
