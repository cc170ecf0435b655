package raster

import (
	"math"

	"github.com/hupe1980/hvec"
)

// ColorFromVec maps the logical components of a unit direction from [-1, 1]
// to [0, 255], the usual normal-map encoding. Out-of-range inputs are clamped.
func ColorFromVec(v hvec.Vec[float64]) Color {
	return Color{R: channel(v.X()), G: channel(v.Y()), B: channel(v.Z())}
}

func channel(f float64) uint8 {
	if math.IsNaN(f) {
		return 0
	}
	f = (f + 1) / 2
	if f <= 0 {
		return 0
	}
	if f >= 1 {
		return 255
	}
	return uint8(math.Round(f * 255))
}

// ShadeGradient fills img with the normalized interpolation between the
// directions a and b across the x axis. Every row is identical.
func ShadeGradient(img *Image, a, b hvec.Vec[float64]) {
	w, h := img.Bounds()
	row := make([]byte, w*BytesPerPixel)
	for x := range w {
		t := 0.0
		if w > 1 {
			t = float64(x) / float64(w-1)
		}
		c := ColorFromVec(hvec.Normalize(hvec.Lerp(a, b, t)))
		row[x*BytesPerPixel], row[x*BytesPerPixel+1], row[x*BytesPerPixel+2] = c.R, c.G, c.B
	}
	for y := range h {
		copy(img.Row(y), row)
	}
}
