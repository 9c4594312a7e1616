package dynmat

import (
	"bufio"
	"fmt"
	"os"
)

//ForceConstants holds the second-order force constants of a supercell built
//as a diagonal expansion of a primitive cell. Internally only the
//inequivalent block Phi(0 k, l k') is stored; the full supercell matrix
//follows from translation invariance. Supercell atoms are ordered primitive
//atom first, lattice point second: s = k*Nl + l.
type ForceConstants struct {
	nat  int //primitive atoms
	dim  [3]int
	nl   int //lattice points in the supercell
	data []float64
}

func newForceConstants(nat int, dim [3]int) *ForceConstants {
	nl := dim[0] * dim[1] * dim[2]
	return &ForceConstants{
		nat:  nat,
		dim:  dim,
		nl:   nl,
		data: make([]float64, nat*nl*nat*9),
	}
}

func (F *ForceConstants) idx0(i, li, j, a, b int) int {
	return ((i*F.nl+li)*F.nat+j)*9 + a*3 + b
}

//set0 sets the force constant between primitive atom i in the home cell and
//primitive atom j in the cell at lattice point index li.
func (F *ForceConstants) set0(i, li, j, a, b int, v float64) {
	F.data[F.idx0(i, li, j, a, b)] = v
}

//NumAtoms returns the number of atoms in the supercell.
func (F *ForceConstants) NumAtoms() int { return F.nat * F.nl }

//lIndex maps a lattice point (modulo the supercell) to its index in the
//latticePoints order.
func (F *ForceConstants) lIndex(l [3]int) int {
	x := ((l[0] % F.dim[0]) + F.dim[0]) % F.dim[0]
	y := ((l[1] % F.dim[1]) + F.dim[1]) % F.dim[1]
	z := ((l[2] % F.dim[2]) + F.dim[2]) % F.dim[2]
	return x + F.dim[0]*(y+F.dim[1]*z)
}

//At returns the (a, b) component of the force constant between supercell
//atoms s and t.
func (F *ForceConstants) At(s, t, a, b int) float64 {
	i, li := s/F.nl, s%F.nl
	j, lj := t/F.nl, t%F.nl
	pts := latticePoints(F.dim)
	dl := [3]int{
		pts[lj][0] - pts[li][0],
		pts[lj][1] - pts[li][1],
		pts[lj][2] - pts[li][2],
	}
	return F.data[F.idx0(i, F.lIndex(dl), j, a, b)]
}

//WriteForceConstants writes F to path in the Phonopy FORCE_CONSTANTS text
//format: a header with the matrix dimensions, then one 3x3 block per atom
//pair with one-based indices.
func WriteForceConstants(F *ForceConstants, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("dynmat: %w", err)
	}
	defer f.Close()
	w := bufio.NewWriter(f)

	n := F.NumAtoms()
	fmt.Fprintf(w, "%4d %4d\n", n, n)
	for s := 0; s < n; s++ {
		for t := 0; t < n; t++ {
			fmt.Fprintf(w, "%4d%4d\n", s+1, t+1)
			for a := 0; a < 3; a++ {
				fmt.Fprintf(w, " %21.15f %21.15f %21.15f\n",
					F.At(s, t, a, 0), F.At(s, t, a, 1), F.At(s, t, a, 2))
			}
		}
	}
	if err := w.Flush(); err != nil {
		return fmt.Errorf("dynmat: %w", err)
	}
	return nil
}
