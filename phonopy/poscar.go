package phonopy

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"gonum.org/v1/gonum/mat"
)

//symbolCount is a (symbol, count) pair in a POSCAR species line.
type symbolCount struct {
	symbol string
	count  int
}

//groupSymbols run-length encodes the atom symbols into the (type, count)
//pairs the POSCAR format requires.
func groupSymbols(symbols []string) []symbolCount {
	var groups []symbolCount
	cur, n := symbols[0], 1
	for _, s := range symbols[1:] {
		if s == cur {
			n++
			continue
		}
		groups = append(groups, symbolCount{cur, n})
		cur, n = s, 1
	}
	return append(groups, symbolCount{cur, n})
}

//WritePOSCAR writes the cell to a VASP POSCAR file at path, in fractional
//("Direct") coordinates. If the cell has no name, one is derived from the
//file name.
func WritePOSCAR(C *Cell, path string) error {
	return writePOSCAR(C, path, false)
}

//WritePOSCARCartesian is WritePOSCAR with the positions converted to
//Cartesian coordinates.
func WritePOSCARCartesian(C *Cell, path string) error {
	return writePOSCAR(C, path, true)
}

func writePOSCAR(C *Cell, path string, cartesian bool) error {
	if err := C.Check(); err != nil {
		return errDecorate(err, "WritePOSCAR")
	}
	name := C.Name
	if name == "" {
		base := filepath.Base(path)
		name = strings.TrimSuffix(base, filepath.Ext(base))
	}
	f, err := os.Create(path)
	if err != nil {
		return Error{UnableToOpen + ": " + err.Error(), path, []string{"WritePOSCAR"}, true}
	}
	defer f.Close()
	w := bufio.NewWriter(f)

	fmt.Fprintf(w, "%s\n", name)
	fmt.Fprintf(w, "  %19.16f\n", 1.0)
	for i := 0; i < 3; i++ {
		fmt.Fprintf(w, "  %21.16f  %21.16f  %21.16f\n",
			C.Lattice.At(i, 0), C.Lattice.At(i, 1), C.Lattice.At(i, 2))
	}
	groups := groupSymbols(C.Symbols)
	for _, g := range groups {
		fmt.Fprintf(w, "  %3s", g.symbol)
	}
	fmt.Fprint(w, "\n")
	for _, g := range groups {
		fmt.Fprintf(w, "  %3d", g.count)
	}
	fmt.Fprint(w, "\n")
	if cartesian {
		fmt.Fprint(w, "Cartesian\n")
	} else {
		fmt.Fprint(w, "Direct\n")
	}
	for _, p := range C.Positions {
		if cartesian {
			p = C.FracToCart(p)
		}
		fmt.Fprintf(w, "  %21.16f  %21.16f  %21.16f\n", p[0], p[1], p[2])
	}
	if err := w.Flush(); err != nil {
		return Error{err.Error(), path, []string{"WritePOSCAR"}, true}
	}
	return nil
}

//ReadPOSCAR reads a VASP POSCAR (or CONTCAR) file. Both "Direct" and
//"Cartesian" coordinate blocks are accepted; Cartesian positions are
//converted to fractional on the way in. A "Selective dynamics" line is
//skipped; the per-atom flags after the coordinates are ignored.
func ReadPOSCAR(path string) (*Cell, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, Error{UnableToOpen + ": " + err.Error(), path, []string{"ReadPOSCAR"}, true}
	}
	defer f.Close()
	scanner := bufio.NewScanner(f)
	next := func() (string, error) {
		if !scanner.Scan() {
			return "", Error{WrongFormat + ": unexpected end of file", path, []string{"ReadPOSCAR"}, true}
		}
		return scanner.Text(), nil
	}

	name, err := next()
	if err != nil {
		return nil, err
	}
	C := &Cell{Name: strings.TrimSpace(name)}

	line, err := next()
	if err != nil {
		return nil, err
	}
	scale, err2 := strconv.ParseFloat(strings.TrimSpace(line), 64)
	if err2 != nil {
		return nil, Error{WrongFormat + ": bad scale factor " + strconv.Quote(line), path, []string{"ReadPOSCAR"}, true}
	}

	lat := make([]float64, 0, 9)
	for i := 0; i < 3; i++ {
		line, err = next()
		if err != nil {
			return nil, err
		}
		v, err2 := parse3(line)
		if err2 != nil {
			return nil, Error{WrongFormat + ": " + err2.Error(), path, []string{"ReadPOSCAR"}, true}
		}
		lat = append(lat, scale*v[0], scale*v[1], scale*v[2])
	}
	C.Lattice = mat.NewDense(3, 3, lat)

	line, err = next()
	if err != nil {
		return nil, err
	}
	symbols := strings.Fields(line)
	if len(symbols) == 0 {
		return nil, Error{WrongFormat + ": empty species line", path, []string{"ReadPOSCAR"}, true}
	}
	line, err = next()
	if err != nil {
		return nil, err
	}
	counts := strings.Fields(line)
	if len(counts) != len(symbols) {
		return nil, Error{fmt.Sprintf("%s: %d species but %d counts", WrongFormat, len(symbols), len(counts)), path, []string{"ReadPOSCAR"}, true}
	}
	total := 0
	for i, c := range counts {
		n, err2 := strconv.Atoi(c)
		if err2 != nil || n < 1 {
			return nil, Error{WrongFormat + ": bad species count " + strconv.Quote(c), path, []string{"ReadPOSCAR"}, true}
		}
		for j := 0; j < n; j++ {
			C.Symbols = append(C.Symbols, symbols[i])
		}
		total += n
	}

	line, err = next()
	if err != nil {
		return nil, err
	}
	mode := strings.ToLower(strings.TrimSpace(line))
	if strings.HasPrefix(mode, "s") { //Selective dynamics
		line, err = next()
		if err != nil {
			return nil, err
		}
		mode = strings.ToLower(strings.TrimSpace(line))
	}
	cartesian := strings.HasPrefix(mode, "c") || strings.HasPrefix(mode, "k")
	if !cartesian && !strings.HasPrefix(mode, "d") {
		return nil, Error{WrongFormat + ": bad coordinate mode " + strconv.Quote(line), path, []string{"ReadPOSCAR"}, true}
	}

	for i := 0; i < total; i++ {
		line, err = next()
		if err != nil {
			return nil, err
		}
		p, err2 := parse3(line)
		if err2 != nil {
			return nil, Error{WrongFormat + ": " + err2.Error(), path, []string{"ReadPOSCAR"}, true}
		}
		if cartesian {
			p[0] *= scale
			p[1] *= scale
			p[2] *= scale
			if p, err = C.CartToFrac(p); err != nil {
				return nil, errDecorate(err, "ReadPOSCAR")
			}
		}
		C.Positions = append(C.Positions, p)
	}
	if err := C.Check(); err != nil {
		return nil, errDecorate(err, "ReadPOSCAR")
	}
	return C, nil
}
