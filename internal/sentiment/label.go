package sentiment

import (
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Label is the closed set of sentiment classes the interface knows about.
// Anything the service sends outside of it parses to Other.
type Label int

const (
	Other Label = iota
	Positive
	Negative
	Neutral
)

type Color string

const (
	Green  Color = "green"
	Red    Color = "red"
	Yellow Color = "yellow"
	Gray   Color = "gray"
)

func ParseLabel(raw string) Label {
	switch raw {
	case "positive":
		return Positive
	case "negative":
		return Negative
	case "neutral":
		return Neutral
	default:
		return Other
	}
}

func (l Label) String() string {
	switch l {
	case Positive:
		return "Positive"
	case Negative:
		return "Negative"
	case Neutral:
		return "Neutral"
	default:
		return "Other"
	}
}

// Bucket is the chart column a label is counted in.
func (l Label) Bucket() Label {
	if l == Other {
		return Neutral
	}
	return l
}

func (l Label) Color() Color {
	switch l {
	case Positive:
		return Green
	case Negative:
		return Red
	case Neutral:
		return Yellow
	default:
		return Gray
	}
}

// Hex values match the palette the list is styled with.
func (c Color) Hex() string {
	switch c {
	case Green:
		return "#16a34a"
	case Red:
		return "#dc2626"
	case Yellow:
		return "#ca8a04"
	default:
		return "#4b5563"
	}
}

// DisplayLabel upper-cases the raw label and nothing else, so what is shown
// is exactly what ParseLabel classified. Casers hold state, hence one per call.
func DisplayLabel(raw string) string {
	return cases.Upper(language.Und).String(raw)
}
