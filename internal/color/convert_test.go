package color

import (
	"testing"

	"github.com/mazznoer/csscolorparser"
	"github.com/stretchr/testify/assert"
)

func TestPresentations(t *testing.T) {
	tests := []struct {
		name  string
		color csscolorparser.Color
		want  []string
	}{
		{
			name:  "red",
			color: csscolorparser.Color{R: 1, G: 0, B: 0, A: 1},
			want:  []string{"#ff0000", "rgb(255, 0, 0)", "hsl(0, 100%, 50%)"},
		},
		{
			name:  "gray",
			color: csscolorparser.Color{R: 0.5, G: 0.5, B: 0.5, A: 1},
			want:  []string{"#808080", "rgb(128, 128, 128)", "hsl(0, 0%, 50%)"},
		},
		{
			name:  "translucent blue",
			color: csscolorparser.Color{R: 0, G: 0, B: 1, A: 0.5},
			want:  []string{"#0000ff80", "rgba(0, 0, 255, 0.5)", "hsla(240, 100%, 50%, 0.5)"},
		},
		{
			name:  "green",
			color: csscolorparser.Color{R: 0, G: 0.5, B: 0, A: 1},
			want:  []string{"#008000", "rgb(0, 128, 0)", "hsl(120, 100%, 25%)"},
		},
		{
			name:  "out of gamut channels are clamped",
			color: csscolorparser.Color{R: 1.2, G: -0.1, B: 0, A: 1},
			want:  []string{"#ff0000", "rgb(255, 0, 0)", "hsl(0, 100%, 50%)"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Presentations(tt.color))
		})
	}
}

func TestHSLHue(t *testing.T) {
	tests := []struct {
		color csscolorparser.Color
		want  float64
	}{
		{csscolorparser.Color{R: 1, G: 1, B: 0}, 60},
		{csscolorparser.Color{R: 0, G: 1, B: 1}, 180},
		{csscolorparser.Color{R: 1, G: 0, B: 1}, 300},
	}
	for _, tt := range tests {
		h, _, _ := hsl(tt.color.R, tt.color.G, tt.color.B)
		assert.InDelta(t, tt.want, h, 0.001)
	}
}

func TestNumber(t *testing.T) {
	assert.Equal(t, "33.3", number(33.333, 1))
	assert.Equal(t, "0.5", number(0.5, 3))
	assert.Equal(t, "100", number(100.0, 1))
}
