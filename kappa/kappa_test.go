package kappa

import (
	"path/filepath"
	"testing"

	"github.com/scigolib/hdf5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

//writeTestFile writes a small synthetic kappa file: 2 temperatures,
//2 q-points (weights 1 and 3), 2 bands. If newNorm is true the per-mode
//conductivities are stored multiplied by the number of grid points, as
//newer versions of Phono3py do; if lbte is true an RTA copy of the
//conductivity is included, which marks the file as an LBTE calculation.
func writeTestFile(Te *testing.T, path string, newNorm, lbte bool) {
	f, err := hdf5.Create(path)
	require.NoError(Te, err)
	defer f.Close()

	write := func(name string, data []float64) {
		require.NoError(Te, f.WriteDataset(name, data))
	}

	write("/temperature", []float64{300, 400})
	write("/weight", []float64{1, 3})
	write("/frequency", []float64{1, 2, 3, 4})

	//Isotropic averages 4.0 at 300 K and 2.0 at 400 K.
	write("/kappa", []float64{
		4, 4, 4, 0, 0, 0,
		2, 2, 2, 0, 0, 0,
	})
	if lbte {
		write("/kappa_RTA", []float64{
			3, 3, 3, 0, 0, 0,
			1.5, 1.5, 1.5, 0, 0, 0,
		})
	}

	//Per-mode values whose isotropic averages sum to the totals above:
	//(0.4, 0.6, 1.0, 2.0) at 300 K and (0.2, 0.3, 0.5, 1.0) at 400 K.
	modeAves := [][]float64{
		{0.4, 0.6, 1.0, 2.0},
		{0.2, 0.3, 0.5, 1.0},
	}
	norm := 1.0
	if newNorm {
		norm = 4.0 //sum of the q-point weights
	}
	var modeKappa []float64
	for _, row := range modeAves {
		for _, a := range row {
			modeKappa = append(modeKappa, a*norm, a*norm, a*norm, 0, 0, 0)
		}
	}
	write("/mode_kappa", modeKappa)
	if lbte {
		rta := make([]float64, len(modeKappa))
		for i, v := range modeKappa {
			rta[i] = 0.75 * v
		}
		write("/mode_kappa_RTA", rta)
	}

	write("/gamma", []float64{
		0.5, 0.0, 1.0, 2.0,
		0.25, 0.0, 0.5, 1.0,
	})
	write("/heat_capacity", []float64{
		1, 1, 1, 1,
		2, 2, 2, 2,
	})
	write("/group_velocity", []float64{
		3, 4, 0,
		0, 0, 5,
		1, 0, 0,
		0, 2, 0,
	})
	write("/ave_pp", []float64{1, 2, 3, 4})
}

func TestOpenAndTotals(Te *testing.T) {
	path := filepath.Join(Te.TempDir(), "kappa-m111.hdf5")
	writeTestFile(Te, path, false, false)

	K, err := Open(path)
	require.NoError(Te, err)
	defer K.Close()

	assert.False(Te, K.IsLBTE())
	assert.False(Te, K.HasWigner())
	assert.Equal(Te, []float64{300, 400}, K.Temperatures())
	assert.Equal(Te, 2, K.NumQPoints())
	nb, err := K.NumBands()
	require.NoError(Te, err)
	assert.Equal(Te, 2, nb)

	kave, err := K.KappaAve(Solver{})
	require.NoError(Te, err)
	assert.InDeltaSlice(Te, []float64{4, 2}, kave, 1e-12)

	kxx, err := K.KappaXX(Solver{})
	require.NoError(Te, err)
	assert.InDeltaSlice(Te, []float64{4, 2}, kxx, 1e-12)

	_, err = K.ModeCV(350)
	require.Error(Te, err, "350 K is not on the temperature grid")
}

func TestModeQuantities(Te *testing.T) {
	path := filepath.Join(Te.TempDir(), "kappa-m111.hdf5")
	writeTestFile(Te, path, false, false)

	K, err := Open(path)
	require.NoError(Te, err)
	defer K.Close()

	gv, err := K.ModeGroupVelocityNorm()
	require.NoError(Te, err)
	assert.InDelta(Te, 500.0, gv.At(0, 0), 1e-9) //|(3,4,0)| = 5, x100 m/s

	tau, err := K.ModeLifetime(300)
	require.NoError(Te, err)
	assert.Equal(Te, 0.0, tau.At(0, 1), "zero linewidth must give zero lifetime")
	assert.InDelta(Te, 1.0/(4.0*3.14159265358979), tau.At(1, 0), 1e-9)

	mfp, err := K.ModeMFPNorm(300)
	require.NoError(Te, err)
	assert.InDelta(Te, 1.0e-3*gv.At(1, 0)*tau.At(1, 0), mfp.At(1, 0), 1e-12)

	cv, err := K.ModeCV(400)
	require.NoError(Te, err)
	assert.Equal(Te, 2.0, cv.At(0, 0))

	pp, err := K.ModePPStrength()
	require.NoError(Te, err)
	assert.Equal(Te, 4.0, pp.At(1, 1))
}

func TestModeKappaNormalisation(Te *testing.T) {
	for _, newNorm := range []bool{false, true} {
		path := filepath.Join(Te.TempDir(), "kappa-m111.hdf5")
		writeTestFile(Te, path, newNorm, false)

		K, err := Open(path)
		require.NoError(Te, err)

		mk, err := K.ModeKappaAve(300, Solver{})
		require.NoError(Te, err)
		sum := 0.0
		for _, v := range mk.Data {
			sum += v
		}
		assert.InDelta(Te, 4.0, sum, 1e-9, "newNorm=%v: modal conductivities must sum to the total", newNorm)
		K.Close()
	}
}

func TestCumulativeKappa(Te *testing.T) {
	path := filepath.Join(Te.TempDir(), "kappa-m111.hdf5")
	writeTestFile(Te, path, true, false)

	K, err := Open(path)
	require.NoError(Te, err)
	defer K.Close()

	freqs, cum, err := K.CumulativeKappaAve(400, Solver{})
	require.NoError(Te, err)
	require.Len(Te, freqs, 4)
	assert.True(Te, sortedAscending(freqs))
	assert.InDelta(Te, 2.0, cum[len(cum)-1], 1e-9, "cumulative curve must end at k_ave")
}

func TestLBTEDispatch(Te *testing.T) {
	path := filepath.Join(Te.TempDir(), "kappa-m111.hdf5")
	writeTestFile(Te, path, false, true)

	K, err := Open(path)
	require.NoError(Te, err)
	defer K.Close()

	assert.True(Te, K.IsLBTE())
	assert.Equal(Te, "kappa", Solver{}.Key(true))
	assert.Equal(Te, "kappa_RTA", Solver{RTA: true}.Key(true))
	assert.Equal(Te, "kappa_TOT_exact", Solver{Wigner: true}.Key(true))
	assert.Equal(Te, "kappa_TOT_RTA", Solver{RTA: true, Wigner: true}.Key(true))
	assert.Equal(Te, "kappa", Solver{RTA: true}.Key(false), "plain RTA files only have 'kappa'")

	exact, err := K.KappaAve(Solver{})
	require.NoError(Te, err)
	rta, err := K.KappaAve(Solver{RTA: true})
	require.NoError(Te, err)
	assert.InDelta(Te, 4.0, exact[0], 1e-12)
	assert.InDelta(Te, 3.0, rta[0], 1e-12)
}

func TestIsKappaFile(Te *testing.T) {
	path := filepath.Join(Te.TempDir(), "kappa-m111.hdf5")
	writeTestFile(Te, path, false, false)
	assert.True(Te, IsKappaFile(path))
	assert.False(Te, IsKappaFile(filepath.Join(Te.TempDir(), "nonexistent.hdf5")))
}

func sortedAscending(x []float64) bool {
	for i := 1; i < len(x); i++ {
		if x[i] < x[i-1] {
			return false
		}
	}
	return true
}
