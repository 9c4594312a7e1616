package phplot

import (
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeStyle(Te *testing.T, path, content string) {
	Te.Helper()
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		Te.Fatal(err)
	}
}

func TestDefaultAxisLimitsLinear(Te *testing.T) {
	data := []float64{12.0, 47.0, 83.0}
	lo, hi := DefaultAxisLimits(math.NaN(), math.NaN(), data, false)
	assert.Equal(Te, 10.0, lo)
	assert.Equal(Te, 90.0, hi)

	//a set limit must survive untouched
	lo, hi = DefaultAxisLimits(0.0, math.NaN(), data, false)
	assert.Equal(Te, 0.0, lo)
	assert.Equal(Te, 90.0, hi)
	lo, hi = DefaultAxisLimits(5.0, 100.0, data, false)
	assert.Equal(Te, 5.0, lo)
	assert.Equal(Te, 100.0, hi)
}

func TestDefaultAxisLimitsLog(Te *testing.T) {
	//200 values in [1, 100] plus two tiny outliers that fall inside the
	//bottom 1 % and must not drag the lower limit down.
	data := make([]float64, 0, 202)
	data = append(data, 1e-12, 1e-9)
	for i := 0; i < 200; i++ {
		data = append(data, 1.0+99.0*float64(i)/199.0)
	}
	lo, hi := DefaultAxisLimits(math.NaN(), math.NaN(), data, true)
	assert.Equal(Te, 1.0, lo)
	assert.Equal(Te, 100.0, hi)
}

func TestHSBToRGB(Te *testing.T) {
	cases := []struct {
		h, s, b string
		in      [3]float64
		want    [3]float64
	}{
		{"red", "", "", [3]float64{0, 1, 1}, [3]float64{1, 0, 0}},
		{"green", "", "", [3]float64{120, 1, 1}, [3]float64{0, 1, 0}},
		{"blue", "", "", [3]float64{240, 1, 1}, [3]float64{0, 0, 1}},
		{"grey", "", "", [3]float64{0, 0, 0.5}, [3]float64{0.5, 0.5, 0.5}},
	}
	for _, c := range cases {
		r, g, b := HSBToRGB(c.in[0], c.in[1], c.in[2])
		assert.InDelta(Te, c.want[0], r, 1e-12, c.h)
		assert.InDelta(Te, c.want[1], g, 1e-12, c.h)
		assert.InDelta(Te, c.want[2], b, 1e-12, c.h)
	}
	//hue wraps around
	r1, g1, b1 := HSBToRGB(390, 0.7, 0.8)
	r2, g2, b2 := HSBToRGB(30, 0.7, 0.8)
	assert.InDelta(Te, r2, r1, 1e-12)
	assert.InDelta(Te, g2, g1, 1e-12)
	assert.InDelta(Te, b2, b1, 1e-12)
}

func TestFormatMinDP(Te *testing.T) {
	assert.Equal(Te, "300", FormatMinDP(300.0, 6))
	assert.Equal(Te, "300.5", FormatMinDP(300.5, 6))
	assert.Equal(Te, "0.25", FormatMinDP(0.25, 6))
}

func TestTickers(Te *testing.T) {
	ticks := FixedTicks{DP: 1}.Ticks(0, 4)
	labelled := 0
	for _, t := range ticks {
		if t.Label == "" {
			continue
		}
		labelled++
		assert.Regexp(Te, `^\d+\.\d$`, t.Label)
	}
	assert.Greater(Te, labelled, 0)

	pticks := PowTicks{}.Ticks(1, 1000)
	found := false
	for _, t := range pticks {
		if t.Label == "10^2" {
			found = true
		}
	}
	assert.True(Te, found, "decade label missing: %v", pticks)
}

func TestLoadStyle(Te *testing.T) {
	dir := Te.TempDir()
	path := filepath.Join(dir, "style.yaml")
	writeStyle(Te, path, "font_size: 10\nwidth: 12.0\n")
	s, err := LoadStyle(path)
	require.NoError(Te, err)
	assert.Equal(Te, 10.0, s.FontSize)
	assert.Equal(Te, 12.0, s.Width)
	//unset keys keep their defaults
	assert.Equal(Te, DefaultStyle().Height, s.Height)

	writeStyle(Te, path, "line_width: -1\n")
	_, err = LoadStyle(path)
	assert.Error(Te, err)

	_, err = LoadStyle(filepath.Join(dir, "nonexistent.yaml"))
	assert.Error(Te, err)
}

func TestLinesAndScatterSave(Te *testing.T) {
	dir := Te.TempDir()
	st := DefaultStyle()
	series := []Series{
		{Label: "a", X: []float64{100, 200, 300}, Y: []float64{4.0, 2.0, 1.0}},
		{Label: "b", X: []float64{100, 200, 300}, Y: []float64{8.0, 4.0, 2.0}},
	}
	err := Lines(&st, series, "T [K]", "k [W/m.K]", FreeAxes(), filepath.Join(dir, "kappa.png"))
	require.NoError(Te, err)

	ax := FreeAxes()
	ax.LogY = true
	scatter := []Series{{X: []float64{1, 2, 3}, Y: []float64{0.0, 10.0, 100.0}}}
	err = Scatter(&st, scatter, "Frequency [THz]", "Lifetime [ps]", ax, filepath.Join(dir, "tau.pdf"))
	require.NoError(Te, err)
}
