/*Package phplot builds publication-style plots of phonon and thermal
transport quantities on top of gonum/plot: conductivity-versus-temperature
curves, per-mode scatter plots and cumulative conductivity curves. A small
house style (serif fonts, thin lines) is applied to every plot and can be
overridden from a YAML file.
*/
package phplot

import (
	"fmt"
	"os"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/font"
	"gonum.org/v1/plot/vg"
	"gopkg.in/yaml.v3"
)

//Style collects the appearance parameters shared by all plots. Lengths are
//in printer's points, plot sizes in centimetres.
type Style struct {
	FontSize  float64 `yaml:"font_size"`
	LineWidth float64 `yaml:"line_width"`
	Width     float64 `yaml:"width"`
	Height    float64 `yaml:"height"`
	Serif     bool    `yaml:"serif"`
}

//DefaultStyle returns the house style: 8 pt serif type, hairline strokes,
//single-column figure size.
func DefaultStyle() Style {
	return Style{
		FontSize:  8,
		LineWidth: 0.5,
		Width:     8.6,
		Height:    6.5,
		Serif:     true,
	}
}

//LoadStyle reads a YAML style file and overlays it on the defaults, so a
//file only needs to name the parameters it changes.
func LoadStyle(path string) (Style, error) {
	s := DefaultStyle()
	raw, err := os.ReadFile(path)
	if err != nil {
		return s, fmt.Errorf("phplot: %w", err)
	}
	if err := yaml.Unmarshal(raw, &s); err != nil {
		return s, fmt.Errorf("phplot: %s: %w", path, err)
	}
	if s.FontSize <= 0 || s.LineWidth <= 0 || s.Width <= 0 || s.Height <= 0 {
		return s, fmt.Errorf("phplot: %s: style parameters must be positive", path)
	}
	return s, nil
}

//apply sets the style on a freshly created plot.
func (s Style) apply(p *plot.Plot) {
	if s.Serif {
		serif := font.Font{Typeface: "Liberation", Variant: "Serif"}
		p.Title.TextStyle.Font.Typeface = serif.Typeface
		p.Title.TextStyle.Font.Variant = serif.Variant
		p.X.Label.TextStyle.Font.Typeface = serif.Typeface
		p.X.Label.TextStyle.Font.Variant = serif.Variant
		p.Y.Label.TextStyle.Font.Typeface = serif.Typeface
		p.Y.Label.TextStyle.Font.Variant = serif.Variant
		p.X.Tick.Label.Font.Typeface = serif.Typeface
		p.X.Tick.Label.Font.Variant = serif.Variant
		p.Y.Tick.Label.Font.Typeface = serif.Typeface
		p.Y.Tick.Label.Font.Variant = serif.Variant
		p.Legend.TextStyle.Font.Typeface = serif.Typeface
		p.Legend.TextStyle.Font.Variant = serif.Variant
	}
	size := font.Length(vg.Points(s.FontSize))
	p.Title.TextStyle.Font.Size = size
	p.X.Label.TextStyle.Font.Size = size
	p.Y.Label.TextStyle.Font.Size = size
	p.X.Tick.Label.Font.Size = size
	p.Y.Tick.Label.Font.Size = size
	p.Legend.TextStyle.Font.Size = size

	lw := vg.Points(s.LineWidth)
	p.X.LineStyle.Width = lw
	p.Y.LineStyle.Width = lw
	p.X.Tick.LineStyle.Width = lw
	p.Y.Tick.LineStyle.Width = lw
	//Inward-pointing ticks.
	p.X.Tick.Length = -vg.Points(3)
	p.Y.Tick.Length = -vg.Points(3)
}

//size returns the canvas size of the plot.
func (s Style) size() (w, h vg.Length) {
	return vg.Length(s.Width) * vg.Centimeter, vg.Length(s.Height) * vg.Centimeter
}

func (s Style) lineWidth() vg.Length {
	return vg.Points(s.LineWidth)
}
