package phplot

import (
	"fmt"
	"image/color"
	"math"
	"sort"

	"gonum.org/v1/plot"
)

//DefaultAxisLimits fills in unset axis limits (NaN) from the range of the
//data. On a linear scale the minimum/maximum are rounded down/up to "order
//of magnitude" values; on a log scale the smallest 1 % of the values are
//dropped first (spurious near-zero values would otherwise stretch the axis
//over many decades) and the limits rounded to powers of ten.
func DefaultAxisLimits(axMin, axMax float64, data []float64, logScale bool) (float64, float64) {
	if !math.IsNaN(axMin) && !math.IsNaN(axMax) {
		return axMin, axMax
	}
	if len(data) == 0 {
		return axMin, axMax
	}
	if logScale {
		sorted := make([]float64, len(data))
		copy(sorted, data)
		sort.Float64s(sorted)
		sorted = sorted[len(sorted)/100:]
		if math.IsNaN(axMin) {
			axMin = math.Pow(10, math.Floor(math.Log10(sorted[0])))
		}
		if math.IsNaN(axMax) {
			axMax = math.Pow(10, math.Ceil(math.Log10(sorted[len(sorted)-1])))
		}
		return axMin, axMax
	}
	lo, hi := data[0], data[0]
	for _, v := range data {
		lo = math.Min(lo, v)
		hi = math.Max(hi, v)
	}
	div := math.Pow(10, math.Floor(math.Log10(hi)))
	if math.IsNaN(axMin) {
		axMin = div * math.Floor(lo/div)
	}
	if math.IsNaN(axMax) {
		axMax = div * math.Ceil(hi/div)
	}
	return axMin, axMax
}

//HSBToRGB converts a colour from the HSB system (hue in degrees, saturation
//and brightness in [0, 1]) to RGB components in [0, 1].
func HSBToRGB(h, s, b float64) (float64, float64, float64) {
	h = math.Mod(h, 360.0)
	if h < 0 {
		h += 360.0
	}
	c := s * b
	min := b - c
	hp := h / 60.0
	x := c * (1.0 - math.Abs(math.Mod(hp, 2.0)-1.0))

	var r, g, bb float64
	switch {
	case hp < 1:
		r, g, bb = c, x, 0
	case hp < 2:
		r, g, bb = x, c, 0
	case hp < 3:
		r, g, bb = 0, c, x
	case hp < 4:
		r, g, bb = 0, x, c
	case hp < 5:
		r, g, bb = x, 0, c
	default:
		r, g, bb = c, 0, x
	}
	return r + min, g + min, bb + min
}

//RampColor returns the i-th of n colours on a blue-to-red hue ramp, for
//colouring multi-series plots.
func RampColor(i, n int) color.Color {
	if n < 1 {
		n = 1
	}
	//240 (blue) down to 0 (red).
	h := 240.0 * (1.0 - float64(i)/math.Max(float64(n-1), 1.0))
	r, g, b := HSBToRGB(h, 0.9, 0.9)
	return color.RGBA{
		R: uint8(255 * r),
		G: uint8(255 * g),
		B: uint8(255 * b),
		A: 255,
	}
}

//FormatMinDP formats val with the minimum number of decimal places needed
//to represent it exactly, up to maxDP.
func FormatMinDP(val float64, maxDP int) string {
	dp := 0
	for ; dp < maxDP; dp++ {
		scaled := val * math.Pow(10, float64(dp))
		if scaled == math.Trunc(scaled) {
			break
		}
	}
	return fmt.Sprintf("%.*f", dp, val)
}

//FixedTicks is a plot.Ticker that relabels the default ticks with a fixed
//number of decimal places.
type FixedTicks struct {
	DP int
}

func (t FixedTicks) Ticks(min, max float64) []plot.Tick {
	ticks := plot.DefaultTicks{}.Ticks(min, max)
	for i := range ticks {
		if ticks[i].Label != "" {
			ticks[i].Label = fmt.Sprintf("%.*f", t.DP, ticks[i].Value)
		}
	}
	return ticks
}

//PowTicks is a plot.Ticker for log-scale axes that labels the decades as
//powers of ten.
type PowTicks struct{}

func (PowTicks) Ticks(min, max float64) []plot.Tick {
	ticks := plot.LogTicks{}.Ticks(min, max)
	for i := range ticks {
		if ticks[i].Label != "" {
			ticks[i].Label = fmt.Sprintf("10^%.0f", math.Log10(ticks[i].Value))
		}
	}
	return ticks
}
