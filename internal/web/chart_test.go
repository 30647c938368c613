package web

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spacesedan/datatalks/internal/sentiment"
)

func TestYScale(t *testing.T) {
	tests := []struct {
		max, step, yMax int
	}{
		{0, 1, 1},
		{1, 1, 1},
		{2, 1, 2},
		{4, 1, 4},
		{5, 2, 6},
		{10, 3, 12},
		{100, 25, 100},
	}
	for _, tt := range tests {
		step, yMax := yScale(tt.max)
		assert.Equal(t, tt.step, step, "step for %d", tt.max)
		assert.Equal(t, tt.yMax, yMax, "yMax for %d", tt.max)
	}
}

func TestNewChartGeometry(t *testing.T) {
	c := newChart(sentiment.Summary{
		{Name: "Positive", Count: 2},
		{Name: "Negative", Count: 1},
		{Name: "Neutral", Count: 0},
	})

	require.Len(t, c.Bars, 3)
	plotHeight := c.Bottom - c.Top

	assert.Equal(t, "Positive", c.Bars[0].Name)
	assert.InDelta(t, plotHeight, c.Bars[0].Height, 1e-9)
	assert.InDelta(t, c.Top, c.Bars[0].Y, 1e-9)
	assert.InDelta(t, plotHeight/2, c.Bars[1].Height, 1e-9)
	assert.InDelta(t, 0, c.Bars[2].Height, 1e-9)
	assert.InDelta(t, c.Bottom, c.Bars[2].Y, 1e-9)

	assert.Less(t, c.Bars[0].X, c.Bars[1].X)
	assert.Less(t, c.Bars[1].X, c.Bars[2].X)
	assert.LessOrEqual(t, c.Bars[2].X+c.Bars[2].Width, c.Right)

	require.Len(t, c.Ticks, 3)
	assert.Equal(t, []int{0, 1, 2}, []int{c.Ticks[0].Value, c.Ticks[1].Value, c.Ticks[2].Value})
	assert.InDelta(t, c.Bottom, c.Ticks[0].Y, 1e-9)
	assert.InDelta(t, c.Top, c.Ticks[2].Y, 1e-9)
}
