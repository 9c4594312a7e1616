package dynmat

import (
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"

	"github.com/dtlloyd/phonogo/phonopy"
)

func TestCommensuratePoints(Te *testing.T) {
	pts := CommensuratePoints([3]int{2, 1, 2})
	require.Len(Te, pts, 4)
	assert.Equal(Te, [3]float64{0, 0, 0}, pts[0])
	assert.Equal(Te, [3]float64{0.5, 0, 0}, pts[1])
	assert.Equal(Te, [3]float64{0, 0, 0.5}, pts[2])
	assert.Equal(Te, [3]float64{0.5, 0, 0.5}, pts[3])
}

func TestMapCommensurate(Te *testing.T) {
	comm := CommensuratePoints([3]int{2, 1, 1})
	//-0.5 is equivalent to 0.5 modulo the lattice.
	idx, err := MapCommensurate(comm, [][3]float64{{-0.5, 0, 0}, {0, 0, 0}})
	require.NoError(Te, err)
	assert.Equal(Te, []int{1, 0}, idx)

	_, err = MapCommensurate(comm, [][3]float64{{0, 0, 0}, {0.25, 0, 0}})
	require.Error(Te, err)
	assert.Contains(Te, err.Error(), "0.500")
}

//diatomicChain builds the Gamma-point modes of two masses joined by a
//spring of constant k along x, in internal frequency units: the acoustic
//mode at zero and the optic mode at lambda = k*(1/m1 + 1/m2), with the
//textbook mass-weighted eigenvectors. The four transverse modes are set to
//zero frequency so they drop out of the spectral sum.
func diatomicChain(k, m1, m2 float64) (freqs []float64, eigs [][][3]complex128) {
	lambda := k * (1/m1 + 1/m2)
	s := math.Sqrt(m1 + m2)
	v0 := [2]float64{math.Sqrt(m1) / s, math.Sqrt(m2) / s}
	v1 := [2]float64{math.Sqrt(m2) / s, -math.Sqrt(m1) / s}

	freqs = []float64{0, 0, 0, 0, 0, VaspToTHz * math.Sqrt(lambda)}
	eigs = make([][][3]complex128, 6)
	//Acoustic x mode.
	eigs[0] = [][3]complex128{{complex(v0[0], 0), 0, 0}, {complex(v0[1], 0), 0, 0}}
	//Transverse filler modes (zero frequency, so their shape is irrelevant).
	eigs[1] = [][3]complex128{{0, 1, 0}, {0, 0, 0}}
	eigs[2] = [][3]complex128{{0, 0, 0}, {0, 1, 0}}
	eigs[3] = [][3]complex128{{0, 0, 1}, {0, 0, 0}}
	eigs[4] = [][3]complex128{{0, 0, 0}, {0, 0, 1}}
	//Optic x mode.
	eigs[5] = [][3]complex128{{complex(v1[0], 0), 0, 0}, {complex(v1[1], 0), 0, 0}}
	return freqs, eigs
}

func chainCell(m1, m2 float64) *phonopy.Cell {
	return &phonopy.Cell{
		Lattice:   mat.NewDense(3, 3, []float64{4, 0, 0, 0, 4, 0, 0, 0, 4}),
		Symbols:   []string{"Ga", "As"},
		Positions: [][3]float64{{0, 0, 0}, {0.5, 0, 0}},
		Masses:    []float64{m1, m2},
	}
}

func TestBuildGammaPoint(Te *testing.T) {
	const k, m1, m2 = 5.0, 2.0, 3.0
	freqs, eigs := diatomicChain(k, m1, m2)

	F, err := Build(chainCell(m1, m2), [3]int{1, 1, 1},
		[][3]float64{{0, 0, 0}}, [][]float64{freqs}, [][][][3]complex128{eigs}, THz)
	require.NoError(Te, err)

	assert.Equal(Te, 2, F.NumAtoms())
	//The reconstructed xx block must be the spring matrix [[k, -k], [-k, k]].
	assert.InDelta(Te, k, F.At(0, 0, 0, 0), 1e-9)
	assert.InDelta(Te, -k, F.At(0, 1, 0, 0), 1e-9)
	assert.InDelta(Te, -k, F.At(1, 0, 0, 0), 1e-9)
	assert.InDelta(Te, k, F.At(1, 1, 0, 0), 1e-9)
	//Nothing couples to y or z.
	assert.InDelta(Te, 0.0, F.At(0, 0, 1, 1), 1e-9)
	assert.InDelta(Te, 0.0, F.At(0, 1, 0, 1), 1e-9)
}

func TestBuildUnitEquivalence(Te *testing.T) {
	const k, m1, m2 = 5.0, 2.0, 3.0
	freqs, eigs := diatomicChain(k, m1, m2)

	//The same modes expressed in cm^-1 must reconstruct the same constants.
	cmFreqs := make([]float64, len(freqs))
	for i, f := range freqs {
		cmFreqs[i] = f / VaspToTHz * VaspToCm
	}
	F1, err := Build(chainCell(m1, m2), [3]int{1, 1, 1},
		[][3]float64{{0, 0, 0}}, [][]float64{freqs}, [][][][3]complex128{eigs}, THz)
	require.NoError(Te, err)
	F2, err := Build(chainCell(m1, m2), [3]int{1, 1, 1},
		[][3]float64{{0, 0, 0}}, [][]float64{cmFreqs}, [][][][3]complex128{eigs}, InvCm)
	require.NoError(Te, err)
	assert.InDelta(Te, F1.At(0, 0, 0, 0), F2.At(0, 0, 0, 0), 1e-9)
	assert.InDelta(Te, F1.At(0, 1, 0, 0), F2.At(0, 1, 0, 0), 1e-9)
}

func TestBuildRejectsBadInput(Te *testing.T) {
	freqs, eigs := diatomicChain(5, 2, 3)

	_, err := Build(chainCell(2, 3), [3]int{1, 1, 1},
		[][3]float64{{0, 0, 0}}, [][]float64{freqs}, [][][][3]complex128{eigs}, FreqUnit("ev"))
	require.Error(Te, err, "unknown frequency unit")

	_, err = Build(chainCell(2, 3), [3]int{1, 1, 1},
		[][3]float64{{0.25, 0, 0}}, [][]float64{freqs}, [][][][3]complex128{eigs}, THz)
	require.Error(Te, err, "q-point not commensurate")

	_, err = Build(chainCell(2, 3), [3]int{1, 1, 1},
		[][3]float64{{0, 0, 0}}, [][]float64{freqs[:5]}, [][][][3]complex128{eigs[:5]}, THz)
	require.Error(Te, err, "wrong band count")
}

func TestWriteForceConstants(Te *testing.T) {
	freqs, eigs := diatomicChain(5, 2, 3)
	F, err := Build(chainCell(2, 3), [3]int{1, 1, 1},
		[][3]float64{{0, 0, 0}}, [][]float64{freqs}, [][][][3]complex128{eigs}, THz)
	require.NoError(Te, err)

	path := filepath.Join(Te.TempDir(), "FORCE_CONSTANTS")
	require.NoError(Te, WriteForceConstants(F, path))

	raw, err := os.ReadFile(path)
	require.NoError(Te, err)
	lines := strings.Split(strings.TrimSpace(string(raw)), "\n")
	assert.Equal(Te, []string{"2", "2"}, strings.Fields(lines[0]))
	//Header plus 4 blocks of 4 lines each.
	assert.Len(Te, lines, 1+4*4)
	assert.Equal(Te, []string{"1", "1"}, strings.Fields(lines[1]))
}
