/*Package castep reads output files from the CASTEP plane-wave DFT code.
Only the .phonon file, carrying phonon frequencies and eigenvectors on a set
of wavevectors, is supported at present.
*/
package castep

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"

	"gonum.org/v1/gonum/mat"

	"github.com/dtlloyd/phonogo/phonopy"
)

//CmToTHz converts wavenumbers (cm^-1) to frequencies (THz).
const CmToTHz = 0.0299792458

//QPoint is the data calculated at a single wavevector: coordinates, weight,
//per-band frequencies and IR intensities, and the eigenvector block, indexed
//as [band][ion].
type QPoint struct {
	Q             [3]float64
	Weight        float64
	Freqs         []float64
	IRIntensities []float64
	Eigenvectors  [][][3]complex128
}

//Phonon is the parsed contents of a CASTEP .phonon file.
type Phonon struct {
	FreqUnits  string
	IRUnits    string
	RamanUnits string
	Cell       *phonopy.Cell
	QPoints    []QPoint
}

//FrequenciesTHz returns the frequencies of q-point i converted to THz.
//CASTEP writes cm-1 by default.
func (P *Phonon) FrequenciesTHz(i int) ([]float64, error) {
	var factor float64
	switch strings.ToLower(P.FreqUnits) {
	case "cm-1":
		factor = CmToTHz
	case "thz":
		factor = 1.0
	default:
		return nil, Error{fmt.Sprintf("unknown frequency units %q", P.FreqUnits), "", []string{"FrequenciesTHz"}, true}
	}
	ret := make([]float64, len(P.QPoints[i].Freqs))
	for j, f := range P.QPoints[i].Freqs {
		ret[j] = factor * f
	}
	return ret, nil
}

//ReadPhonon parses the CASTEP .phonon file at path. The layout is rigid, so
//any deviation from the expected structure is an error naming the offending
//line.
func ReadPhonon(path string) (*Phonon, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, Error{UnableToOpen + ": " + err.Error(), path, []string{"ReadPhonon"}, true}
	}
	defer f.Close()
	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 1024*1024), 1024*1024)
	next := func() (string, error) {
		if !scanner.Scan() {
			if err := scanner.Err(); err != nil {
				return "", Error{err.Error(), path, []string{"ReadPhonon"}, true}
			}
			return "", Error{WrongFormat + ": unexpected end of file", path, []string{"ReadPhonon"}, true}
		}
		return strings.TrimSpace(scanner.Text()), nil
	}
	expect := func(want string) error {
		line, err := next()
		if err != nil {
			return err
		}
		if line != want {
			return Error{fmt.Sprintf("%s: got %q, want %q", WrongFormat, line, want), path, []string{"ReadPhonon"}, true}
		}
		return nil
	}

	if err := expect("BEGIN header"); err != nil {
		return nil, err
	}

	//Header parameters, in fixed order.
	P := &Phonon{}
	var numAtoms, numBands, numQPts int
	capture := []struct {
		prefix string
		intDst *int
		strDst *string
	}{
		{"Number of ions", &numAtoms, nil},
		{"Number of branches", &numBands, nil},
		{"Number of wavevectors", &numQPts, nil},
		{"Frequencies in", nil, &P.FreqUnits},
		{"IR intensities in", nil, &P.IRUnits},
		{"Raman activities in", nil, &P.RamanUnits},
	}
	for _, c := range capture {
		line, err := next()
		if err != nil {
			return nil, err
		}
		if !strings.HasPrefix(line, c.prefix) {
			return nil, Error{fmt.Sprintf("%s: got %q, want a %q line", WrongFormat, line, c.prefix), path, []string{"ReadPhonon"}, true}
		}
		val := strings.TrimSpace(strings.TrimPrefix(line, c.prefix))
		if c.intDst != nil {
			n, err2 := strconv.Atoi(val)
			if err2 != nil {
				return nil, Error{fmt.Sprintf("%s: bad integer in %q", WrongFormat, line), path, []string{"ReadPhonon"}, true}
			}
			*c.intDst = n
		} else {
			*c.strDst = val
		}
	}

	if err := expect("Unit cell vectors (A)"); err != nil {
		return nil, err
	}
	lat := make([]float64, 0, 9)
	for i := 0; i < 3; i++ {
		line, err := next()
		if err != nil {
			return nil, err
		}
		v, err2 := parse3(line)
		if err2 != nil {
			return nil, Error{WrongFormat + ": " + err2.Error(), path, []string{"ReadPhonon"}, true}
		}
		lat = append(lat, v[0], v[1], v[2])
	}

	if err := expect("Fractional Co-ordinates"); err != nil {
		return nil, err
	}
	cell := &phonopy.Cell{Lattice: mat.NewDense(3, 3, lat)}
	for i := 0; i < numAtoms; i++ {
		line, err := next()
		if err != nil {
			return nil, err
		}
		fields := strings.Fields(line)
		if len(fields) < 6 {
			return nil, Error{WrongFormat + ": bad atom line " + strconv.Quote(line), path, []string{"ReadPhonon"}, true}
		}
		if n, err2 := strconv.Atoi(fields[0]); err2 != nil || n != i+1 {
			return nil, Error{WrongFormat + ": bad atom index in " + strconv.Quote(line), path, []string{"ReadPhonon"}, true}
		}
		var pos [3]float64
		for j := 0; j < 3; j++ {
			x, err2 := strconv.ParseFloat(fields[1+j], 64)
			if err2 != nil {
				return nil, Error{WrongFormat + ": " + err2.Error(), path, []string{"ReadPhonon"}, true}
			}
			pos[j] = x
		}
		m, err2 := strconv.ParseFloat(fields[5], 64)
		if err2 != nil {
			return nil, Error{WrongFormat + ": " + err2.Error(), path, []string{"ReadPhonon"}, true}
		}
		cell.Positions = append(cell.Positions, pos)
		cell.Symbols = append(cell.Symbols, fields[4])
		cell.Masses = append(cell.Masses, m)
	}
	if err := cell.Check(); err != nil {
		return nil, errDecorate(err, "ReadPhonon")
	}
	P.Cell = cell

	if err := expect("END header"); err != nil {
		return nil, err
	}

	//Frequencies and eigenvectors for each calculated wavevector.
	for i := 0; i < numQPts; i++ {
		line, err := next()
		if err != nil {
			return nil, err
		}
		fields := strings.Fields(line)
		if len(fields) < 6 || fields[0] != "q-pt=" {
			return nil, Error{WrongFormat + ": bad q-pt line " + strconv.Quote(line), path, []string{"ReadPhonon"}, true}
		}
		if n, err2 := strconv.Atoi(fields[1]); err2 != nil || n != i+1 {
			return nil, Error{WrongFormat + ": bad q-pt index in " + strconv.Quote(line), path, []string{"ReadPhonon"}, true}
		}
		var qp QPoint
		for j := 0; j < 3; j++ {
			x, err2 := strconv.ParseFloat(fields[2+j], 64)
			if err2 != nil {
				return nil, Error{WrongFormat + ": " + err2.Error(), path, []string{"ReadPhonon"}, true}
			}
			qp.Q[j] = x
		}
		w, err2 := strconv.ParseFloat(fields[5], 64)
		if err2 != nil {
			return nil, Error{WrongFormat + ": " + err2.Error(), path, []string{"ReadPhonon"}, true}
		}
		qp.Weight = w

		for j := 0; j < numBands; j++ {
			line, err = next()
			if err != nil {
				return nil, err
			}
			fields = strings.Fields(line)
			if len(fields) < 3 {
				return nil, Error{WrongFormat + ": bad frequency line " + strconv.Quote(line), path, []string{"ReadPhonon"}, true}
			}
			if n, err2 := strconv.Atoi(fields[0]); err2 != nil || n != j+1 {
				return nil, Error{WrongFormat + ": bad band index in " + strconv.Quote(line), path, []string{"ReadPhonon"}, true}
			}
			freq, err2 := strconv.ParseFloat(fields[1], 64)
			if err2 != nil {
				return nil, Error{WrongFormat + ": " + err2.Error(), path, []string{"ReadPhonon"}, true}
			}
			ir, err2 := strconv.ParseFloat(fields[2], 64)
			if err2 != nil {
				return nil, Error{WrongFormat + ": " + err2.Error(), path, []string{"ReadPhonon"}, true}
			}
			qp.Freqs = append(qp.Freqs, freq)
			qp.IRIntensities = append(qp.IRIntensities, ir)
		}

		if err := expect("Phonon Eigenvectors"); err != nil {
			return nil, err
		}
		line, err = next()
		if err != nil {
			return nil, err
		}
		headers := strings.Fields(line)
		for j, want := range []string{"Mode", "Ion", "X", "Y", "Z"} {
			if j >= len(headers) || headers[j] != want {
				return nil, Error{WrongFormat + ": bad eigenvector header " + strconv.Quote(line), path, []string{"ReadPhonon"}, true}
			}
		}
		for j := 0; j < numBands; j++ {
			eig := make([][3]complex128, numAtoms)
			for k := 0; k < numAtoms; k++ {
				line, err = next()
				if err != nil {
					return nil, err
				}
				fields = strings.Fields(line)
				if len(fields) < 8 {
					return nil, Error{WrongFormat + ": bad eigenvector line " + strconv.Quote(line), path, []string{"ReadPhonon"}, true}
				}
				if n, err2 := strconv.Atoi(fields[0]); err2 != nil || n != j+1 {
					return nil, Error{WrongFormat + ": bad mode index in " + strconv.Quote(line), path, []string{"ReadPhonon"}, true}
				}
				if n, err2 := strconv.Atoi(fields[1]); err2 != nil || n != k+1 {
					return nil, Error{WrongFormat + ": bad ion index in " + strconv.Quote(line), path, []string{"ReadPhonon"}, true}
				}
				for c := 0; c < 3; c++ {
					re, err2 := strconv.ParseFloat(fields[2+2*c], 64)
					if err2 != nil {
						return nil, Error{WrongFormat + ": " + err2.Error(), path, []string{"ReadPhonon"}, true}
					}
					im, err2 := strconv.ParseFloat(fields[3+2*c], 64)
					if err2 != nil {
						return nil, Error{WrongFormat + ": " + err2.Error(), path, []string{"ReadPhonon"}, true}
					}
					eig[k][c] = complex(re, im)
				}
			}
			qp.Eigenvectors = append(qp.Eigenvectors, eig)
		}
		P.QPoints = append(P.QPoints, qp)
	}
	return P, nil
}

//parse3 parses three whitespace-separated floats.
func parse3(line string) ([3]float64, error) {
	fields := strings.Fields(line)
	if len(fields) < 3 {
		return [3]float64{}, fmt.Errorf("want 3 values, got %q", line)
	}
	var v [3]float64
	for i := 0; i < 3; i++ {
		x, err := strconv.ParseFloat(fields[i], 64)
		if err != nil {
			return [3]float64{}, err
		}
		v[i] = x
	}
	return v, nil
}

//Errors

//errDecorate asserts that err implements phonogo.Decorator and decorates it
//with the caller's name before returning it.
func errDecorate(err error, caller string) error {
	err2 := err.(interface{ Decorate(string) []string })
	err2.Decorate(caller)
	return err2.(error)
}

//Error is the general structure for CASTEP file errors. It fulfills
//phonogo.Decorator and phonogo.FileError.
type Error struct {
	message  string
	filename string
	deco     []string
	critical bool
}

func (err Error) Error() string {
	return fmt.Sprintf("castep file %s error: %s", err.filename, err.message)
}

//Decorate adds new information to the error
func (E Error) Decorate(deco string) []string {
	//E.deco is a slice, hence a pointer, so the value receiver still works.
	if deco != "" {
		E.deco = append(E.deco, deco)
	}
	return E.deco
}

//FileName returns the file associated to the error.
func (err Error) FileName() string { return err.filename }

//Critical returns true if the error is critical, false otherwise
func (err Error) Critical() bool { return err.critical }

const (
	UnableToOpen = "Unable to open file"
	WrongFormat  = "Wrong format"
)
