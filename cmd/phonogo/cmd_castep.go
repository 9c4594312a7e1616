package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/dtlloyd/phonogo/castep"
	"github.com/dtlloyd/phonogo/dynmat"
	"github.com/dtlloyd/phonogo/phonopy"
)

var (
	castepDim       []int
	castepFreqUnits string
)

// importCastepCmd converts a CASTEP .phonon file to Phonopy input files
var importCastepCmd = &cobra.Command{
	Use:   "import-castep seed.phonon",
	Short: "Convert a CASTEP .phonon file to Phonopy input files",
	Long: `Reads a CASTEP .phonon file and writes the structure as POSCAR.vasp.

With --dim, the frequencies and eigenvectors at the q-points commensurate
with the na x nb x nc supercell are additionally inverted to a Phonopy
FORCE_CONSTANTS file, so the calculation can be post-processed with the
Phonopy tool chain. The .phonon file must contain every commensurate
q-point (a CASTEP calculation with a suitable phonon_kpoint_mp_grid).

The frequency unit is read from the .phonon header; --freq-units overrides
it when the header is missing or wrong.`,
	Args: cobra.ExactArgs(1),
	RunE: runImportCastep,
}

func init() {
	importCastepCmd.Flags().IntSliceVar(&castepDim, "dim", nil, "Supercell dimension na,nb,nc for FORCE_CONSTANTS output")
	importCastepCmd.Flags().StringVar(&castepFreqUnits, "freq-units", "", "Frequency unit of the .phonon file: thz|inv_cm (default from header)")
}

// phononFreqUnit resolves the unit the .phonon frequencies are given in,
// either from the override flag or from the file header.
func phononFreqUnit(P *castep.Phonon, override string) (dynmat.FreqUnit, error) {
	switch override {
	case "":
	case string(dynmat.THz):
		return dynmat.THz, nil
	case string(dynmat.InvCm):
		return dynmat.InvCm, nil
	default:
		return "", fmt.Errorf("import-castep: unknown --freq-units %q", override)
	}
	switch strings.ToLower(P.FreqUnits) {
	case "cm-1":
		return dynmat.InvCm, nil
	case "thz":
		return dynmat.THz, nil
	}
	return "", fmt.Errorf("import-castep: cannot handle frequency units %q, use --freq-units", P.FreqUnits)
}

func runImportCastep(cmd *cobra.Command, args []string) error {
	P, err := castep.ReadPhonon(args[0])
	if err != nil {
		return err
	}
	logger.Debug("parsed phonon file",
		zap.Int("atoms", P.Cell.NumAtoms()), zap.Int("qpoints", len(P.QPoints)))

	if err := phonopy.WritePOSCAR(P.Cell, "POSCAR.vasp"); err != nil {
		return err
	}
	logger.Info("wrote structure", zap.String("output", "POSCAR.vasp"))

	if castepDim == nil {
		return nil
	}
	if len(castepDim) != 3 {
		return fmt.Errorf("import-castep: --dim wants three values na,nb,nc")
	}
	dim := [3]int{castepDim[0], castepDim[1], castepDim[2]}

	unit, err := phononFreqUnit(P, castepFreqUnits)
	if err != nil {
		return err
	}
	qpts := make([][3]float64, len(P.QPoints))
	freqs := make([][]float64, len(P.QPoints))
	eigs := make([][][][3]complex128, len(P.QPoints))
	for i, qp := range P.QPoints {
		qpts[i] = qp.Q
		freqs[i] = qp.Freqs
		eigs[i] = qp.Eigenvectors
	}

	F, err := dynmat.Build(P.Cell, dim, qpts, freqs, eigs, unit)
	if err != nil {
		return err
	}
	if err := dynmat.WriteForceConstants(F, "FORCE_CONSTANTS"); err != nil {
		return err
	}
	logger.Info("wrote force constants",
		zap.String("output", "FORCE_CONSTANTS"),
		zap.Int("atoms", F.NumAtoms()))
	return nil
}
