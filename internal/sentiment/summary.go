package sentiment

import "github.com/spacesedan/datatalks/internal/models"

type Count struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

type Summary []Count

var summaryOrder = [...]Label{Positive, Negative, Neutral}

// Summarize always returns Positive, Negative, Neutral in that order, zero
// counts included.
func Summarize(results []models.AnalysisResult) Summary {
	counts := make(map[Label]int, len(summaryOrder))
	for _, res := range results {
		counts[ParseLabel(res.Sentiment).Bucket()]++
	}

	summary := make(Summary, 0, len(summaryOrder))
	for _, label := range summaryOrder {
		summary = append(summary, Count{Name: label.String(), Count: counts[label]})
	}
	return summary
}

func (s Summary) Max() int {
	highest := 0
	for _, c := range s {
		if c.Count > highest {
			highest = c.Count
		}
	}
	return highest
}

func (s Summary) Total() int {
	total := 0
	for _, c := range s {
		total += c.Count
	}
	return total
}
