package composer

import (
	"image"
	"image/color"
	"math"
)

// Alpha stops for the readability overlay, top to bottom. Dark bands at both
// edges keep headline and CTA text legible over busy photography while the
// middle stays close to transparent.
var gradientStops = []struct {
	pos   float64
	alpha float64
}{
	{0.00, 0.55},
	{0.35, 0.08},
	{0.70, 0.08},
	{1.00, 0.55},
}

func readabilityGradient(w, h int) *image.NRGBA {
	grad := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		t := 0.0
		if h > 1 {
			t = float64(y) / float64(h-1)
		}
		a := uint8(math.Round(gradientAlphaAt(t) * 255))
		c := color.NRGBA{A: a}
		for x := 0; x < w; x++ {
			grad.SetNRGBA(x, y, c)
		}
	}
	return grad
}

// gradientAlphaAt interpolates linearly between the two stops surrounding t.
func gradientAlphaAt(t float64) float64 {
	if t <= gradientStops[0].pos {
		return gradientStops[0].alpha
	}
	for i := 1; i < len(gradientStops); i++ {
		prev, next := gradientStops[i-1], gradientStops[i]
		if t <= next.pos {
			span := next.pos - prev.pos
			frac := (t - prev.pos) / span
			return prev.alpha + (next.alpha-prev.alpha)*frac
		}
	}
	return gradientStops[len(gradientStops)-1].alpha
}
