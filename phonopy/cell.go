package phonopy

import (
	"fmt"
	"log"
	"math"

	"gonum.org/v1/gonum/mat"
)

//Cell is a crystal structure: a 3x3 lattice matrix whose rows are the
//lattice vectors, atomic symbols, and atomic positions in fractional
//coordinates. Masses are optional; when present there must be one per atom.
type Cell struct {
	Name      string
	Lattice   *mat.Dense
	Symbols   []string
	Positions [][3]float64
	Masses    []float64
}

//Check validates the structure: a 3x3 lattice, at least one atom, matching
//symbol/position/mass lengths. Positions outside [-1, 1] usually mean
//Cartesian coordinates were passed by mistake, which only deserves a
//warning since supercell builders legitimately produce them.
func (C *Cell) Check() error {
	if C.Lattice == nil {
		return Error{BadStructure + ": nil lattice", "", nil, true}
	}
	r, c := C.Lattice.Dims()
	if r != 3 || c != 3 {
		return Error{fmt.Sprintf("%s: lattice is %dx%d, want 3x3", BadStructure, r, c), "", nil, true}
	}
	if len(C.Symbols) == 0 {
		return Error{BadStructure + ": no atoms", "", nil, true}
	}
	if len(C.Positions) != len(C.Symbols) {
		return Error{fmt.Sprintf("%s: %d positions for %d atoms", BadStructure, len(C.Positions), len(C.Symbols)), "", nil, true}
	}
	if C.Masses != nil && len(C.Masses) != len(C.Symbols) {
		return Error{fmt.Sprintf("%s: %d masses for %d atoms", BadStructure, len(C.Masses), len(C.Symbols)), "", nil, true}
	}
	for _, p := range C.Positions {
		if math.Abs(p[0]) > 1 || math.Abs(p[1]) > 1 || math.Abs(p[2]) > 1 {
			log.Printf("phonopy: atom positions are assumed to be in fractional coordinates")
			break
		}
	}
	return nil
}

//NumAtoms returns the number of atoms in the cell.
func (C *Cell) NumAtoms() int { return len(C.Symbols) }

//Volume returns the cell volume.
func (C *Cell) Volume() float64 {
	return math.Abs(mat.Det(C.Lattice))
}

//FracToCart converts a position from fractional to Cartesian coordinates:
//r = sum_i f_i * a_i with a_i the lattice vectors (rows of the lattice
//matrix).
func (C *Cell) FracToCart(f [3]float64) [3]float64 {
	var r [3]float64
	for j := 0; j < 3; j++ {
		r[j] = f[0]*C.Lattice.At(0, j) + f[1]*C.Lattice.At(1, j) + f[2]*C.Lattice.At(2, j)
	}
	return r
}

//CartToFrac converts a position from Cartesian to fractional coordinates by
//solving L^T f = r.
func (C *Cell) CartToFrac(r [3]float64) ([3]float64, error) {
	b := mat.NewVecDense(3, []float64{r[0], r[1], r[2]})
	var f mat.VecDense
	if err := f.SolveVec(C.Lattice.T(), b); err != nil {
		return [3]float64{}, Error{SingularLattice + ": " + err.Error(), "", []string{"CartToFrac"}, true}
	}
	return [3]float64{f.AtVec(0), f.AtVec(1), f.AtVec(2)}, nil
}
