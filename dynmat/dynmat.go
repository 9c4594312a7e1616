/*Package dynmat rebuilds interatomic force constants from phonon
frequencies and eigenvectors.

The reconstruction is the closed-form inverse of the usual lattice-dynamics
eigenproblem: at each commensurate wavevector q of the chosen supercell the
mass-weighted dynamical matrix is reassembled from its spectral
decomposition, D(q) = E diag(lambda) E^H with lambda_k the signed squares of
the mode frequencies, and the force constants follow by an inverse Fourier
sum over the commensurate set,

	Phi(0 k, l k') = sqrt(m_k m_k') / Nq * sum_q D_kk'(q) exp(-2 pi i q.l).

Imaginary (soft) modes are handled by carrying the frequency sign through
to lambda.
*/
package dynmat

import (
	"fmt"
	"log"
	"math"
	"math/cmplx"

	"gonum.org/v1/gonum/mat"

	"github.com/dtlloyd/phonogo"
	"github.com/dtlloyd/phonogo/phonopy"
)

//SymPrec is the tolerance for matching q-point coordinates.
const SymPrec = 1e-5

//Conversion factors from phonon frequencies to the internal (VASP-derived)
//frequency unit, as used by Phonopy.
const (
	VaspToTHz = 15.633302
	VaspToCm  = 521.47083
)

//FreqUnit names the unit the input frequencies are given in.
type FreqUnit string

const (
	THz   FreqUnit = "thz"
	InvCm FreqUnit = "inv_cm"
)

//factor returns the conversion factor to internal units.
func (u FreqUnit) factor() (float64, error) {
	switch u {
	case THz:
		return VaspToTHz, nil
	case InvCm:
		return VaspToCm, nil
	}
	return 0, fmt.Errorf("dynmat: unknown frequency unit %q", string(u))
}

//CommensuratePoints returns the wavevectors commensurate with a diagonal
//na x nb x nc supercell, in fractional coordinates: q = (i/na, j/nb, k/nc).
func CommensuratePoints(dim [3]int) [][3]float64 {
	ret := make([][3]float64, 0, dim[0]*dim[1]*dim[2])
	for k := 0; k < dim[2]; k++ {
		for j := 0; j < dim[1]; j++ {
			for i := 0; i < dim[0]; i++ {
				ret = append(ret, [3]float64{
					float64(i) / float64(dim[0]),
					float64(j) / float64(dim[1]),
					float64(k) / float64(dim[2]),
				})
			}
		}
	}
	return ret
}

//wrapDiff returns the distance between two fractional coordinates modulo
//the lattice, so 0.75 and -0.25 compare equal.
func wrapDiff(a, b float64) float64 {
	d := a - b
	return math.Abs(d - math.Round(d))
}

//MapCommensurate matches each commensurate point to an entry of qpts within
//SymPrec. An unmatched point is an error naming its coordinates; matching
//the same input point twice is one as well.
func MapCommensurate(comm, qpts [][3]float64) ([]int, error) {
	used := make(map[int]bool, len(comm))
	ret := make([]int, 0, len(comm))
	for _, c := range comm {
		found := -1
		for i, q := range qpts {
			if wrapDiff(q[0], c[0]) < SymPrec && wrapDiff(q[1], c[1]) < SymPrec && wrapDiff(q[2], c[2]) < SymPrec {
				found = i
				break
			}
		}
		if found < 0 {
			return nil, fmt.Errorf("dynmat: expected q = (%6.3f, %6.3f, %6.3f) in the q-point list", c[0], c[1], c[2])
		}
		if used[found] {
			return nil, fmt.Errorf("dynmat: q-point %d matches more than one commensurate point", found)
		}
		used[found] = true
		ret = append(ret, found)
	}
	return ret, nil
}

//masses returns the per-atom masses of the cell, falling back to the
//internal element database when the cell carries none.
func masses(cell *phonopy.Cell) ([]float64, error) {
	if cell.Masses != nil {
		return cell.Masses, nil
	}
	ret := make([]float64, len(cell.Symbols))
	for i, s := range cell.Symbols {
		m, err := phonogo.AtomicMass(s)
		if err != nil {
			return nil, phonogo.ErrDecorate(err, "masses")
		}
		ret[i] = m
	}
	return ret, nil
}

//dynamicalMatrix reassembles the 3N x 3N mass-weighted dynamical matrix at
//one wavevector from its modes: D = E diag(lambda) E^H, with E holding one
//eigenvector per column in (atom, cartesian) row order and lambda the
//signed squared frequencies in internal units.
func dynamicalMatrix(freqs []float64, eigs [][][3]complex128, conv float64) (*mat.CDense, error) {
	nb := len(freqs)
	if len(eigs) != nb {
		return nil, fmt.Errorf("dynmat: %d eigenvectors for %d bands", len(eigs), nb)
	}
	nat := nb / 3
	if nat*3 != nb {
		return nil, fmt.Errorf("dynmat: %d bands is not a multiple of 3", nb)
	}
	E := mat.NewCDense(nb, nb, nil)
	lambda := make([]complex128, nb)
	for k, f := range freqs {
		v := f / conv
		lambda[k] = complex(math.Copysign(v*v, f), 0)
		if len(eigs[k]) != nat {
			return nil, fmt.Errorf("dynmat: eigenvector %d covers %d atoms, want %d", k+1, len(eigs[k]), nat)
		}
		for i := 0; i < nat; i++ {
			for c := 0; c < 3; c++ {
				E.Set(3*i+c, k, eigs[k][i][c])
			}
		}
	}
	//D = E diag(lambda) E^H.
	EL := mat.NewCDense(nb, nb, nil)
	for k := 0; k < nb; k++ {
		for r := 0; r < nb; r++ {
			EL.Set(r, k, E.At(r, k)*lambda[k])
		}
	}
	D := mat.NewCDense(nb, nb, nil)
	D.Mul(EL, E.H())
	return D, nil
}

//Build reconstructs the supercell force constants for a diagonal
//na x nb x nc supercell of cell from per-q-point frequencies (freqs[iq][band])
//and eigenvectors (eigs[iq][band][atom][xyz]). The q-points must include
//every point commensurate with the supercell; extra points are ignored with
//a warning since codes that do not use crystal symmetry may output more.
func Build(cell *phonopy.Cell, dim [3]int, qpts [][3]float64, freqs [][]float64, eigs [][][][3]complex128, unit FreqUnit) (*ForceConstants, error) {
	if err := cell.Check(); err != nil {
		return nil, err
	}
	if dim[0] < 1 || dim[1] < 1 || dim[2] < 1 {
		return nil, fmt.Errorf("dynmat: bad supercell dimension %v", dim)
	}
	conv, err := unit.factor()
	if err != nil {
		return nil, err
	}
	ms, err := masses(cell)
	if err != nil {
		return nil, err
	}
	if len(qpts) != len(freqs) || len(qpts) != len(eigs) {
		return nil, fmt.Errorf("dynmat: %d q-points with %d frequency sets and %d eigenvector sets", len(qpts), len(freqs), len(eigs))
	}

	comm := CommensuratePoints(dim)
	if len(qpts) != len(comm) {
		log.Printf("dynmat: %d q-points supplied, %d commensurate points expected for %dx%dx%d", len(qpts), len(comm), dim[0], dim[1], dim[2])
	}
	idx, err := MapCommensurate(comm, qpts)
	if err != nil {
		return nil, err
	}

	nat := cell.NumAtoms()
	nb := 3 * nat
	Ds := make([]*mat.CDense, len(comm))
	for i, j := range idx {
		if len(freqs[j]) != nb {
			return nil, fmt.Errorf("dynmat: q-point %d has %d bands, want %d", j, len(freqs[j]), nb)
		}
		D, err := dynamicalMatrix(freqs[j], eigs[j], conv)
		if err != nil {
			return nil, err
		}
		Ds[i] = D
	}

	//Inverse Fourier sum over the commensurate set for each lattice point l
	//of the supercell, then removal of the mass weighting.
	nl := dim[0] * dim[1] * dim[2]
	F := newForceConstants(nat, dim)
	maxImag := 0.0
	for li, l := range latticePoints(dim) {
		for i := 0; i < nat; i++ {
			for j := 0; j < nat; j++ {
				w := math.Sqrt(ms[i] * ms[j])
				for a := 0; a < 3; a++ {
					for b := 0; b < 3; b++ {
						sum := complex(0, 0)
						for qi, q := range comm {
							phase := -2.0 * math.Pi * (q[0]*float64(l[0]) + q[1]*float64(l[1]) + q[2]*float64(l[2]))
							sum += Ds[qi].At(3*i+a, 3*j+b) * cmplx.Exp(complex(0, phase))
						}
						sum *= complex(w/float64(nl), 0)
						if im := math.Abs(imag(sum)); im > maxImag {
							maxImag = im
						}
						F.set0(i, li, j, a, b, real(sum))
					}
				}
			}
		}
	}
	if maxImag > 1e-6 {
		log.Printf("dynmat: force constants have imaginary parts up to %g; input data may be inconsistent", maxImag)
	}
	return F, nil
}

//latticePoints enumerates the lattice points of the supercell in the same
//order CommensuratePoints uses for wavevectors.
func latticePoints(dim [3]int) [][3]int {
	ret := make([][3]int, 0, dim[0]*dim[1]*dim[2])
	for k := 0; k < dim[2]; k++ {
		for j := 0; j < dim[1]; j++ {
			for i := 0; i < dim[0]; i++ {
				ret = append(ret, [3]int{i, j, k})
			}
		}
	}
	return ret
}
