package web

import "github.com/spacesedan/datatalks/internal/sentiment"

const (
	chartWidth        = 600
	chartHeight       = 300
	chartMarginTop    = 10
	chartMarginRight  = 30
	chartMarginBottom = 30
	chartMarginLeft   = 40
	chartBarFill      = "#3182ce"
	chartMaxTicks     = 4
)

// Chart is the geometry of the sentiment bar chart, ready for the SVG
// template. The y axis only carries whole numbers.
type Chart struct {
	Width, Height int
	Left, Right   float64
	Top, Bottom   float64
	Fill          string
	Bars          []ChartBar
	Ticks         []ChartTick
}

type ChartBar struct {
	Name    string
	Count   int
	X, Y    float64
	Width   float64
	Height  float64
	CenterX float64
}

type ChartTick struct {
	Value int
	Y     float64
}

func newChart(summary sentiment.Summary) Chart {
	c := Chart{
		Width:  chartWidth,
		Height: chartHeight,
		Left:   chartMarginLeft,
		Right:  chartWidth - chartMarginRight,
		Top:    chartMarginTop,
		Bottom: chartHeight - chartMarginBottom,
		Fill:   chartBarFill,
	}

	step, yMax := yScale(summary.Max())
	plotHeight := c.Bottom - c.Top

	for v := 0; v <= yMax; v += step {
		c.Ticks = append(c.Ticks, ChartTick{
			Value: v,
			Y:     c.Bottom - plotHeight*float64(v)/float64(yMax),
		})
	}

	if len(summary) == 0 {
		return c
	}

	band := (c.Right - c.Left) / float64(len(summary))
	barWidth := band * 0.6
	for i, count := range summary {
		height := plotHeight * float64(count.Count) / float64(yMax)
		x := c.Left + band*float64(i) + (band-barWidth)/2
		c.Bars = append(c.Bars, ChartBar{
			Name:    count.Name,
			Count:   count.Count,
			X:       x,
			Y:       c.Bottom - height,
			Width:   barWidth,
			Height:  height,
			CenterX: x + barWidth/2,
		})
	}
	return c
}

// yScale picks an integer tick step and an axis maximum that is a multiple of
// it and at least max.
func yScale(max int) (step, yMax int) {
	if max < 1 {
		max = 1
	}
	step = (max + chartMaxTicks - 1) / chartMaxTicks
	yMax = step * ((max + step - 1) / step)
	return step, yMax
}
