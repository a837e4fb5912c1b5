package pping

import (
	"time"

	"github.com/fatih/color"
	colorful "github.com/lucasb-eyer/go-colorful"
)

// PaintRTT renders a round-trip time in milliseconds with a color sliding
// from green at 0ms to red at and beyond 100ms. Values below one
// millisecond keep their fractional part.
func PaintRTT(rtt time.Duration) string {
	micros := rtt.Microseconds()

	// hue 100° (green) at 0ms down to 0° (red) at 100ms
	hue := 100 - float64(micros)/(1000.0*100.0)*100
	if hue < 0 {
		hue = 0
	}
	r, g, b := colorful.Hsl(hue, 1, 0.5).RGB255()
	c := color.RGB(int(r), int(g), int(b))

	if micros < 1000 {
		return c.Sprintf("%.3f", float64(micros)/1000.0)
	}
	return c.Sprintf("%d", micros/1000)
}
