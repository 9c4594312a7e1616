package phplot

import (
	"fmt"
	"math"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg/draw"
)

//Series is one named curve or point set on a plot.
type Series struct {
	Label string
	X, Y  []float64
}

func (s *Series) xys() plotter.XYs {
	pts := make(plotter.XYs, 0, len(s.X))
	for i := range s.X {
		if math.IsNaN(s.Y[i]) || math.IsInf(s.Y[i], 0) {
			continue
		}
		pts = append(pts, plotter.XY{X: s.X[i], Y: s.Y[i]})
	}
	return pts
}

//Axes carries the optional axis limits of a plot. NaN fields are filled in
//from the data by DefaultAxisLimits.
type Axes struct {
	XMin, XMax float64
	YMin, YMax float64
	LogY       bool
}

//FreeAxes returns an Axes with every limit unset.
func FreeAxes() Axes {
	n := math.NaN()
	return Axes{XMin: n, XMax: n, YMin: n, YMax: n}
}

func newPlot(st *Style, xlabel, ylabel string) *plot.Plot {
	p := plot.New()
	st.apply(p)
	p.X.Label.Text = xlabel
	p.Y.Label.Text = ylabel
	return p
}

func setAxes(p *plot.Plot, ax Axes, ydata []float64) {
	if ax.LogY {
		p.Y.Scale = plot.LogScale{}
		p.Y.Tick.Marker = PowTicks{}
	}
	p.Y.Min, p.Y.Max = DefaultAxisLimits(ax.YMin, ax.YMax, ydata, ax.LogY)
	if !math.IsNaN(ax.XMin) {
		p.X.Min = ax.XMin
	}
	if !math.IsNaN(ax.XMax) {
		p.X.Max = ax.XMax
	}
}

func gatherY(series []Series, logY bool) []float64 {
	var ys []float64
	for _, s := range series {
		for _, y := range s.Y {
			if math.IsNaN(y) || math.IsInf(y, 0) {
				continue
			}
			if logY && y <= 0 {
				continue
			}
			ys = append(ys, y)
		}
	}
	return ys
}

//Lines draws one line per series and saves the plot to filename. The output
//format follows the file extension (.png, .pdf, .svg, among others).
func Lines(st *Style, series []Series, xlabel, ylabel string, ax Axes, filename string) error {
	p := newPlot(st, xlabel, ylabel)
	for i, s := range series {
		ln, err := plotter.NewLine(s.xys())
		if err != nil {
			return fmt.Errorf("phplot.Lines: %w", err)
		}
		ln.LineStyle.Width = st.lineWidth()
		ln.LineStyle.Color = RampColor(i, len(series))
		p.Add(ln)
		if s.Label != "" {
			p.Legend.Add(s.Label, ln)
		}
	}
	setAxes(p, ax, gatherY(series, ax.LogY))
	w, h := st.size()
	if err := p.Save(w, h, filename); err != nil {
		return fmt.Errorf("phplot.Lines: %s: %w", filename, err)
	}
	return nil
}

//Scatter draws one point cloud per series and saves the plot to filename.
//Points with non-positive y are dropped when the y axis is logarithmic.
func Scatter(st *Style, series []Series, xlabel, ylabel string, ax Axes, filename string) error {
	p := newPlot(st, xlabel, ylabel)
	for i, s := range series {
		pts := s.xys()
		if ax.LogY {
			kept := pts[:0]
			for _, xy := range pts {
				if xy.Y > 0 {
					kept = append(kept, xy)
				}
			}
			pts = kept
		}
		sc, err := plotter.NewScatter(pts)
		if err != nil {
			return fmt.Errorf("phplot.Scatter: %w", err)
		}
		sc.GlyphStyle.Radius = st.lineWidth() * 2
		sc.GlyphStyle.Shape = draw.CircleGlyph{}
		sc.GlyphStyle.Color = RampColor(i, len(series))
		p.Add(sc)
		if s.Label != "" {
			p.Legend.Add(s.Label, sc)
		}
	}
	setAxes(p, ax, gatherY(series, ax.LogY))
	w, h := st.size()
	if err := p.Save(w, h, filename); err != nil {
		return fmt.Errorf("phplot.Scatter: %s: %w", filename, err)
	}
	return nil
}
