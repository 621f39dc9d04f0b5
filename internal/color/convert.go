// Package color spells picked colors the ways a stylesheet can write them.
package color

import (
	"fmt"
	"math"
	"strconv"

	"github.com/mazznoer/csscolorparser"
)

// Presentations returns the hex, rgb() and hsl() spellings of c
func Presentations(c csscolorparser.Color) []string {
	return []string{ToHex(c), ToRGB(c), ToHSL(c)}
}

// ToHex converts c to #rrggbb, or #rrggbbaa when it is translucent
func ToHex(c csscolorparser.Color) string {
	r, g, b := to255(c.R), to255(c.G), to255(c.B)
	if opaque(c) {
		return fmt.Sprintf("#%02x%02x%02x", r, g, b)
	}
	return fmt.Sprintf("#%02x%02x%02x%02x", r, g, b, to255(c.A))
}

// ToRGB converts c to rgb(), or rgba() when it is translucent
func ToRGB(c csscolorparser.Color) string {
	r, g, b := to255(c.R), to255(c.G), to255(c.B)
	if opaque(c) {
		return fmt.Sprintf("rgb(%d, %d, %d)", r, g, b)
	}
	return fmt.Sprintf("rgba(%d, %d, %d, %s)", r, g, b, number(c.A, 3))
}

// ToHSL converts c to hsl(), or hsla() when it is translucent
func ToHSL(c csscolorparser.Color) string {
	h, s, l := hsl(clamp(c.R), clamp(c.G), clamp(c.B))
	if opaque(c) {
		return fmt.Sprintf("hsl(%s, %s%%, %s%%)", number(h, 1), number(s*100, 1), number(l*100, 1))
	}
	return fmt.Sprintf("hsla(%s, %s%%, %s%%, %s)", number(h, 1), number(s*100, 1), number(l*100, 1), number(c.A, 3))
}

// hsl converts sRGB channels in [0, 1] to hue in degrees, saturation and
// lightness in [0, 1]
func hsl(r, g, b float64) (h, s, l float64) {
	maxC := math.Max(r, math.Max(g, b))
	minC := math.Min(r, math.Min(g, b))
	l = (maxC + minC) / 2
	if maxC == minC {
		return 0, 0, l
	}

	d := maxC - minC
	if l > 0.5 {
		s = d / (2 - maxC - minC)
	} else {
		s = d / (maxC + minC)
	}

	switch maxC {
	case r:
		h = (g - b) / d
		if g < b {
			h += 6
		}
	case g:
		h = (b-r)/d + 2
	default:
		h = (r-g)/d + 4
	}
	return h * 60, s, l
}

func opaque(c csscolorparser.Color) bool {
	return c.A >= 0.999
}

func clamp(v float64) float64 {
	return math.Max(0, math.Min(1, v))
}

// to255 converts a 0-1 channel to 0-255
func to255(v float64) int {
	return int(math.Round(clamp(v) * 255))
}

// number formats v with at most prec decimals and no trailing zeros
func number(v float64, prec int) string {
	scale := math.Pow(10, float64(prec))
	return strconv.FormatFloat(math.Round(v*scale)/scale, 'f', -1, 64)
}
