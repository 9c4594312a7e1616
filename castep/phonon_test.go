package castep

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const phononText = ` BEGIN header
 Number of ions         2
 Number of branches     6
 Number of wavevectors  1
 Frequencies in         cm-1
 IR intensities in      (D/A)**2/amu
 Raman activities in    A**4 amu**(-1)
 Unit cell vectors (A)
    2.8400000000    0.0000000000    0.0000000000
    0.0000000000    2.8400000000    0.0000000000
    0.0000000000    0.0000000000    2.8400000000
 Fractional Co-ordinates
     1     0.000000000000    0.000000000000    0.000000000000   Ga        68.9255730000
     2     0.250000000000    0.250000000000    0.250000000000   As        74.9215950000
 END header
     q-pt=    1    0.000000  0.000000  0.000000      1.0000000000
       1     -0.026588              0.0000000
       2     -0.026588              0.0000000
       3     -0.026588              0.0000000
       4    267.342847              0.4250075
       5    267.342847              0.4250075
       6    267.342847              0.4250075
                        Phonon Eigenvectors
Mode Ion                X                                   Y                                   Z
   1   1 -0.688291929422  0.000000000000  0.000000000000  0.000000000000  0.000000000000  0.000000000000
   1   2 -0.725434514844  0.000000000000  0.000000000000  0.000000000000  0.000000000000  0.000000000000
   2   1  0.000000000000  0.000000000000 -0.688291929422  0.000000000000  0.000000000000  0.000000000000
   2   2  0.000000000000  0.000000000000 -0.725434514844  0.000000000000  0.000000000000  0.000000000000
   3   1  0.000000000000  0.000000000000  0.000000000000  0.000000000000 -0.688291929422  0.000000000000
   3   2  0.000000000000  0.000000000000  0.000000000000  0.000000000000 -0.725434514844  0.000000000000
   4   1 -0.725434514844  0.000000000000  0.000000000000  0.000000000000  0.000000000000  0.000000000000
   4   2  0.688291929422  0.000000000000  0.000000000000  0.000000000000  0.000000000000  0.000000000000
   5   1  0.000000000000  0.000000000000 -0.725434514844  0.000000000000  0.000000000000  0.000000000000
   5   2  0.000000000000  0.000000000000  0.688291929422  0.000000000000  0.000000000000  0.000000000000
   6   1  0.000000000000  0.000000000000  0.000000000000  0.000000000000 -0.725434514844  0.000000000000
   6   2  0.000000000000  0.000000000000  0.000000000000  0.000000000000  0.688291929422  0.000000000000
`

func TestReadPhonon(Te *testing.T) {
	path := filepath.Join(Te.TempDir(), "GaAs.phonon")
	require.NoError(Te, os.WriteFile(path, []byte(phononText), 0o644))

	P, err := ReadPhonon(path)
	require.NoError(Te, err)

	assert.Equal(Te, "cm-1", P.FreqUnits)
	require.NotNil(Te, P.Cell)
	assert.Equal(Te, []string{"Ga", "As"}, P.Cell.Symbols)
	require.Len(Te, P.Cell.Masses, 2)
	assert.InDelta(Te, 68.925573, P.Cell.Masses[0], 1e-9)
	assert.InDelta(Te, 2.84, P.Cell.Lattice.At(1, 1), 1e-12)

	require.Len(Te, P.QPoints, 1)
	qp := P.QPoints[0]
	assert.Equal(Te, 1.0, qp.Weight)
	require.Len(Te, qp.Freqs, 6)
	assert.InDelta(Te, 267.342847, qp.Freqs[3], 1e-9)
	require.Len(Te, qp.Eigenvectors, 6)
	require.Len(Te, qp.Eigenvectors[0], 2)
	assert.InDelta(Te, -0.725434514844, real(qp.Eigenvectors[0][1][0]), 1e-12)
	assert.Equal(Te, 0.0, imag(qp.Eigenvectors[0][1][0]))

	thz, err := P.FrequenciesTHz(0)
	require.NoError(Te, err)
	assert.InDelta(Te, 267.342847*CmToTHz, thz[3], 1e-9)
}

func TestReadPhononBadHeader(Te *testing.T) {
	path := filepath.Join(Te.TempDir(), "bad.phonon")
	require.NoError(Te, os.WriteFile(path, []byte("not a phonon file\n"), 0o644))
	_, err := ReadPhonon(path)
	require.Error(Te, err)
	assert.Contains(Te, err.Error(), "BEGIN header")
}

func TestFrequenciesUnknownUnits(Te *testing.T) {
	P := &Phonon{FreqUnits: "eV", QPoints: []QPoint{{Freqs: []float64{1}}}}
	_, err := P.FrequenciesTHz(0)
	require.Error(Te, err)
}
