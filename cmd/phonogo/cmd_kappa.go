package main

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/dtlloyd/phonogo/kappa"
)

var (
	kappaRTA    bool
	kappaWigner bool
	kappaOut    string
)

// getKappaCmd extracts thermal-conductivity tensors to CSV
var getKappaCmd = &cobra.Command{
	Use:   "get-kappa kappa-m*.hdf5 [...]",
	Short: "Extract thermal-conductivity tensors from Phono3py kappa files",
	Long: `Reads one or more Phono3py kappa-m*.hdf5 files and writes each tensor
to a CSV file with one row per temperature, in the order

  T [K], k_xx, k_yy, k_zz, k_yz, k_xz, k_xy, k_ave [W/m.K]

For calculations run with --lbte, the exact solution is read unless --rta
asks for the RTA dataset. --wigner reads the Wigner-corrected totals
written by recent Phono3py versions.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runGetKappa,
}

func init() {
	getKappaCmd.Flags().BoolVar(&kappaRTA, "rta", false, "Read the RTA conductivity from LBTE calculations")
	getKappaCmd.Flags().BoolVar(&kappaWigner, "wigner", false, "Read the Wigner-corrected total conductivity")
	getKappaCmd.Flags().StringVarP(&kappaOut, "output", "o", "", "Output file (single input only; default <stem>-kappa.csv)")
}

func runGetKappa(cmd *cobra.Command, args []string) error {
	if kappaOut != "" && len(args) > 1 {
		return fmt.Errorf("get-kappa: -o cannot be used with multiple input files")
	}
	solver := kappa.Solver{RTA: kappaRTA, Wigner: kappaWigner}
	for _, path := range args {
		out := kappaOut
		if out == "" {
			out = stem(path) + "-kappa.csv"
		}
		if err := writeKappaCSV(path, out, solver); err != nil {
			return err
		}
		logger.Info("wrote conductivity table",
			zap.String("input", path), zap.String("output", out))
	}
	return nil
}

func writeKappaCSV(path, out string, solver kappa.Solver) error {
	K, err := kappa.Open(path)
	if err != nil {
		return err
	}
	defer K.Close()

	temps := K.Temperatures()
	tensor, err := K.Kappa(solver)
	if err != nil {
		return err
	}
	ave, err := K.KappaAve(solver)
	if err != nil {
		return err
	}

	records := [][]string{
		{"T [K]", "k_xx", "k_yy", "k_zz", "k_yz", "k_xz", "k_xy", "k_ave [W/m.K]"},
	}
	for i, t := range temps {
		row := make([]string, 0, 8)
		row = append(row, strconv.FormatFloat(t, 'f', -1, 64))
		for _, k := range tensor[i] {
			row = append(row, strconv.FormatFloat(k, 'f', 6, 64))
		}
		row = append(row, strconv.FormatFloat(ave[i], 'f', 6, 64))
		records = append(records, row)
	}

	f, err := os.Create(out)
	if err != nil {
		return fmt.Errorf("get-kappa: %w", err)
	}
	defer f.Close()
	w := csv.NewWriter(f)
	if err := w.WriteAll(records); err != nil {
		return fmt.Errorf("get-kappa: %s: %w", out, err)
	}
	return nil
}
