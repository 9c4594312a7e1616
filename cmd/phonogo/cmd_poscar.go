package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dtlloyd/phonogo/phonopy"
)

var (
	poscarToCart bool
	poscarToFrac bool
	poscarOut    string
)

// poscarCmd converts POSCAR files between coordinate conventions
var poscarCmd = &cobra.Command{
	Use:   "poscar POSCAR",
	Short: "Convert a POSCAR between fractional and Cartesian coordinates",
	Long: `Reads a VASP POSCAR file, validates the structure, and rewrites it
with the atomic positions in the requested coordinate convention. Without
-o the file is rewritten in place.`,
	Args: cobra.ExactArgs(1),
	RunE: runPoscar,
}

func init() {
	poscarCmd.Flags().BoolVar(&poscarToCart, "to-cart", false, "Write Cartesian coordinates")
	poscarCmd.Flags().BoolVar(&poscarToFrac, "to-frac", false, "Write fractional coordinates")
	poscarCmd.Flags().StringVarP(&poscarOut, "output", "o", "", "Output file (default: rewrite input in place)")
}

func runPoscar(cmd *cobra.Command, args []string) error {
	if poscarToCart == poscarToFrac {
		return fmt.Errorf("poscar: exactly one of --to-cart and --to-frac must be given")
	}
	cell, err := phonopy.ReadPOSCAR(args[0])
	if err != nil {
		return err
	}
	out := poscarOut
	if out == "" {
		out = args[0]
	}
	if poscarToCart {
		return phonopy.WritePOSCARCartesian(cell, out)
	}
	return phonopy.WritePOSCAR(cell, out)
}
