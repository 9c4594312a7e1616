// Package main implements the phonogo command-line tools: small utilities
// for preparing and post-processing lattice-dynamics calculations.
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	// Global flags
	verbose bool

	// Logger
	logger *zap.Logger
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "phonogo",
	Short: "phonogo - power tools for phonon calculations",
	Long: `phonogo collects independent utilities for working with Phonopy,
Phono3py and CASTEP lattice-dynamics calculations:

  get-kappa      extract thermal-conductivity tensors from kappa-m*.hdf5
  isotopes       isotopic mass statistics for phonon linewidth calculations
  mode-plot      plot per-mode properties from kappa-m*.hdf5
  import-castep  convert a CASTEP .phonon file to Phonopy input files
  poscar         convert POSCAR files between fractional and Cartesian`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		config := zap.NewProductionConfig()
		if verbose {
			config.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
		}
		var err error
		logger, err = config.Build()
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose logging")

	rootCmd.AddCommand(getKappaCmd)
	rootCmd.AddCommand(isotopesCmd)
	rootCmd.AddCommand(modePlotCmd)
	rootCmd.AddCommand(importCastepCmd)
	rootCmd.AddCommand(poscarCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// stem strips the directory and extension from a path, for deriving output
// file names from input ones.
func stem(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}
