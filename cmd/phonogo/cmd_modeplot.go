package main

import (
	"fmt"
	"math"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/dtlloyd/phonogo/kappa"
	"github.com/dtlloyd/phonogo/phplot"
)

var (
	plotProp       string
	plotTemp       float64
	plotLogY       bool
	plotXRange     []float64
	plotYRange     []float64
	plotCumulative bool
	plotOut        string
	plotStyleFile  string
)

// modePlotCmd plots per-mode properties against frequency
var modePlotCmd = &cobra.Command{
	Use:   "mode-plot kappa-m*.hdf5",
	Short: "Plot a per-mode property against frequency",
	Long: `Reads a Phono3py kappa-m*.hdf5 file and plots the chosen per-mode
property against mode frequency, one point per phonon mode.

Properties:
  kappa   mode contribution to the average conductivity [W/m.K]
  cv      modal heat capacity [eV/K]
  gv      group-velocity norm [m/s]
  gamma   linewidth [THz]
  tau     lifetime [ps]
  mfp     mean free path [nm]
  pp      averaged ph-ph interaction strength [eV^2]

Temperature-dependent properties are taken at --temp, which must be one of
the temperatures in the file. --cumulative also writes a companion plot of
the cumulative average conductivity against frequency.`,
	Args: cobra.ExactArgs(1),
	RunE: runModePlot,
}

func init() {
	modePlotCmd.Flags().StringVar(&plotProp, "prop", "kappa", "Property to plot: kappa|cv|gv|gamma|tau|mfp|pp")
	modePlotCmd.Flags().Float64Var(&plotTemp, "temp", 300.0, "Temperature in K for T-dependent properties")
	modePlotCmd.Flags().BoolVar(&plotLogY, "log-y", false, "Logarithmic y axis")
	modePlotCmd.Flags().Float64SliceVar(&plotXRange, "x-range", nil, "x-axis limits min,max")
	modePlotCmd.Flags().Float64SliceVar(&plotYRange, "y-range", nil, "y-axis limits min,max")
	modePlotCmd.Flags().BoolVar(&plotCumulative, "cumulative", false, "Also plot the cumulative average conductivity")
	modePlotCmd.Flags().StringVarP(&plotOut, "output", "o", "", "Output file (default <stem>-<prop>.png)")
	modePlotCmd.Flags().StringVar(&plotStyleFile, "style", "", "YAML style file overriding the plot defaults")
}

// modeProperty reads the y data and axis label for one --prop value.
func modeProperty(K *kappa.File, prop string, temp float64) (kappa.ModeArray, string, error) {
	switch prop {
	case "kappa":
		m, err := K.ModeKappaAve(temp, kappa.Solver{})
		return m, "k_ave [W/m.K]", err
	case "cv":
		m, err := K.ModeCV(temp)
		return m, "C_V [eV/K]", err
	case "gv":
		m, err := K.ModeGroupVelocityNorm()
		return m, "|v| [m/s]", err
	case "gamma":
		m, err := K.ModeGamma(temp)
		return m, "Linewidth [THz]", err
	case "tau":
		m, err := K.ModeLifetime(temp)
		return m, "Lifetime [ps]", err
	case "mfp":
		m, err := K.ModeMFPNorm(temp)
		return m, "Mean free path [nm]", err
	case "pp":
		m, err := K.ModePPStrength()
		return m, "P_qj [eV^2]", err
	}
	return kappa.ModeArray{}, "", fmt.Errorf("mode-plot: unknown property %q", prop)
}

func axisRange(vals []float64, flag string) (lo, hi float64, err error) {
	switch len(vals) {
	case 0:
		return math.NaN(), math.NaN(), nil
	case 2:
		return vals[0], vals[1], nil
	}
	return 0, 0, fmt.Errorf("mode-plot: --%s wants two values min,max", flag)
}

func runModePlot(cmd *cobra.Command, args []string) error {
	st := phplot.DefaultStyle()
	if plotStyleFile != "" {
		var err error
		if st, err = phplot.LoadStyle(plotStyleFile); err != nil {
			return err
		}
	}

	K, err := kappa.Open(args[0])
	if err != nil {
		return err
	}
	defer K.Close()

	freqs, err := K.ModeFrequencies()
	if err != nil {
		return err
	}
	prop, ylabel, err := modeProperty(K, plotProp, plotTemp)
	if err != nil {
		return err
	}

	ax := phplot.FreeAxes()
	ax.LogY = plotLogY
	if ax.XMin, ax.XMax, err = axisRange(plotXRange, "x-range"); err != nil {
		return err
	}
	if ax.YMin, ax.YMax, err = axisRange(plotYRange, "y-range"); err != nil {
		return err
	}

	out := plotOut
	if out == "" {
		out = fmt.Sprintf("%s-%s.png", stem(args[0]), plotProp)
	}
	series := []phplot.Series{{X: freqs.Data, Y: prop.Data}}
	if err := phplot.Scatter(&st, series, "Frequency [THz]", ylabel, ax, out); err != nil {
		return err
	}
	logger.Info("wrote mode plot", zap.String("prop", plotProp), zap.String("output", out))

	if !plotCumulative {
		return nil
	}
	cx, cy, err := K.CumulativeKappaAve(plotTemp, kappa.Solver{})
	if err != nil {
		return err
	}
	ext := filepath.Ext(out)
	cumOut := strings.TrimSuffix(out, ext) + "-cumulative" + ext
	cum := []phplot.Series{{X: cx, Y: cy}}
	cumAx := phplot.FreeAxes()
	if cumAx.XMin, cumAx.XMax, err = axisRange(plotXRange, "x-range"); err != nil {
		return err
	}
	if err := phplot.Lines(&st, cum, "Frequency [THz]", "Cumulative k_ave [W/m.K]", cumAx, cumOut); err != nil {
		return err
	}
	logger.Info("wrote cumulative plot", zap.String("output", cumOut))
	return nil
}
