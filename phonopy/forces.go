package phonopy

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/klauspost/compress/gzip"
)

//Displacement is a single atomic displacement in a force calculation.
type Displacement struct {
	Atom   int //one-based index of the displaced atom, as in the file
	Vector [3]float64
}

//ForceSet is one displaced configuration: the displacements that define it
//and the resulting forces on every atom of the supercell. FORCE_SETS
//configurations have exactly one displacement; FORCES_FC3 ones have one or
//more.
type ForceSet struct {
	Disps  []Displacement
	Forces [][3]float64
}

//openReader opens path for reading, transparently decompressing gzip files
//by extension. Force files from large supercells are commonly stored
//compressed.
func openReader(path string) (io.ReadCloser, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, Error{UnableToOpen + ": " + err.Error(), path, []string{"openReader"}, true}
	}
	if !strings.HasSuffix(path, ".gz") {
		return f, nil
	}
	gz, err := gzip.NewReader(f)
	if err != nil {
		f.Close()
		return nil, Error{UnableToOpen + ": " + err.Error(), path, []string{"openReader"}, true}
	}
	return &gzReadCloser{gz, f}, nil
}

type gzReadCloser struct {
	*gzip.Reader
	f *os.File
}

func (g *gzReadCloser) Close() error {
	err := g.Reader.Close()
	if err2 := g.f.Close(); err == nil {
		err = err2
	}
	return err
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

//IsForceSets peeks at path and returns true if it appears to be a Phonopy
//FORCE_SETS file: two integer lines followed by a blank one.
func IsForceSets(path string) bool {
	r, err := openReader(path)
	if err != nil {
		return false
	}
	defer r.Close()
	scanner := bufio.NewScanner(r)
	lines := make([]string, 0, 3)
	for len(lines) < 3 && scanner.Scan() {
		lines = append(lines, strings.TrimSpace(scanner.Text()))
	}
	if len(lines) < 3 {
		return false
	}
	for _, l := range lines[:2] {
		if _, err := strconv.Atoi(l); err != nil {
			return false
		}
	}
	return lines[2] == ""
}

//ReadForceSets reads the displaced configurations from a Phonopy FORCE_SETS
//file. All configurations are checked to have the same number of atoms.
func ReadForceSets(path string) ([]ForceSet, error) {
	r, err := openReader(path)
	if err != nil {
		return nil, errDecorate(err, "ReadForceSets")
	}
	defer r.Close()
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 1024*1024), 1024*1024)

	next := func() (string, error) {
		if !scanner.Scan() {
			if err := scanner.Err(); err != nil {
				return "", Error{err.Error(), path, []string{"ReadForceSets"}, true}
			}
			return "", Error{WrongFormat + ": unexpected end of file", path, []string{"ReadForceSets"}, true}
		}
		return strings.TrimSpace(scanner.Text()), nil
	}

	line, err := next()
	if err != nil {
		return nil, err
	}
	numAtoms, err2 := strconv.Atoi(line)
	if err2 != nil {
		return nil, Error{WrongFormat + ": bad atom count " + strconv.Quote(line), path, []string{"ReadForceSets"}, true}
	}
	line, err = next()
	if err != nil {
		return nil, err
	}
	numConfigs, err2 := strconv.Atoi(line)
	if err2 != nil {
		return nil, Error{WrongFormat + ": bad configuration count " + strconv.Quote(line), path, []string{"ReadForceSets"}, true}
	}

	sets := make([]ForceSet, 0, numConfigs)
	for i := 0; i < numConfigs; i++ {
		//Blank separator line.
		if _, err = next(); err != nil {
			return nil, err
		}
		line, err = next()
		if err != nil {
			return nil, err
		}
		atom, err2 := strconv.Atoi(line)
		if err2 != nil {
			return nil, Error{WrongFormat + ": bad atom index " + strconv.Quote(line), path, []string{"ReadForceSets"}, true}
		}
		line, err = next()
		if err != nil {
			return nil, err
		}
		disp, err2 := parse3(line)
		if err2 != nil {
			return nil, Error{WrongFormat + ": " + err2.Error(), path, []string{"ReadForceSets"}, true}
		}
		set := ForceSet{
			Disps:  []Displacement{{Atom: atom, Vector: disp}},
			Forces: make([][3]float64, 0, numAtoms),
		}
		for j := 0; j < numAtoms; j++ {
			line, err = next()
			if err != nil {
				return nil, err
			}
			f, err2 := parse3(line)
			if err2 != nil {
				return nil, Error{WrongFormat + ": " + err2.Error(), path, []string{"ReadForceSets"}, true}
			}
			set.Forces = append(set.Forces, f)
		}
		sets = append(sets, set)
	}
	if err := checkSets(sets, path); err != nil {
		return nil, errDecorate(err, "ReadForceSets")
	}
	return sets, nil
}

//IsForcesFC3 peeks at path and returns true if it appears to be a Phono3py
//FORCES_FC3 file.
func IsForcesFC3(path string) bool {
	r, err := openReader(path)
	if err != nil {
		return false
	}
	defer r.Close()
	scanner := bufio.NewScanner(r)
	if !scanner.Scan() {
		return false
	}
	return strings.TrimSpace(scanner.Text()) == "# File: 1"
}

//ReadForcesFC3 reads the displaced configurations from a Phono3py
//FORCES_FC3 file. Configurations start with a "# File: N" marker whose
//number must be incremental; the displacements of the configuration follow
//as "#"-prefixed lines, then the forces on the atoms. Reading stops at a
//blank line or at the end of the file.
func ReadForcesFC3(path string) ([]ForceSet, error) {
	r, err := openReader(path)
	if err != nil {
		return nil, errDecorate(err, "ReadForcesFC3")
	}
	defer r.Close()
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 1024*1024), 1024*1024)

	var sets []ForceSet
	var cur *ForceSet
	capture := func() {
		if cur != nil && len(cur.Disps) > 0 && len(cur.Forces) > 0 {
			sets = append(sets, *cur)
		}
		cur = &ForceSet{}
	}
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			break
		}
		switch {
		case strings.HasPrefix(line, "# File:"):
			capture()
			n, err2 := strconv.Atoi(strings.TrimSpace(strings.TrimPrefix(line, "# File:")))
			if err2 != nil {
				return nil, Error{WrongFormat + ": bad file marker " + strconv.Quote(line), path, []string{"ReadForcesFC3"}, true}
			}
			//The file numbers are incremental; a mismatch means a corrupt
			//or truncated file.
			if n != len(sets)+1 {
				return nil, Error{fmt.Sprintf("%s: file marker %d out of order (want %d)", WrongFormat, n, len(sets)+1), path, []string{"ReadForcesFC3"}, true}
			}
		case strings.HasPrefix(line, "#"):
			fields := strings.Fields(line[1:])
			if len(fields) < 4 {
				return nil, Error{WrongFormat + ": bad displacement line " + strconv.Quote(line), path, []string{"ReadForcesFC3"}, true}
			}
			atom, err2 := strconv.Atoi(fields[0])
			if err2 != nil {
				return nil, Error{WrongFormat + ": " + err2.Error(), path, []string{"ReadForcesFC3"}, true}
			}
			disp, err2 := parse3(strings.Join(fields[1:4], " "))
			if err2 != nil {
				return nil, Error{WrongFormat + ": " + err2.Error(), path, []string{"ReadForcesFC3"}, true}
			}
			if cur == nil {
				cur = &ForceSet{}
			}
			cur.Disps = append(cur.Disps, Displacement{Atom: atom, Vector: disp})
		default:
			f, err2 := parse3(line)
			if err2 != nil {
				return nil, Error{WrongFormat + ": " + err2.Error(), path, []string{"ReadForcesFC3"}, true}
			}
			if cur == nil {
				cur = &ForceSet{}
			}
			cur.Forces = append(cur.Forces, f)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, Error{err.Error(), path, []string{"ReadForcesFC3"}, true}
	}
	capture()
	if err := checkSets(sets, path); err != nil {
		return nil, errDecorate(err, "ReadForcesFC3")
	}
	return sets, nil
}

//checkSets runs the sanity checks shared by the two force readers: at least
//one set, and the same supercell size in every set.
func checkSets(sets []ForceSet, path string) error {
	if len(sets) == 0 {
		return Error{NoForceSets, path, nil, true}
	}
	n := len(sets[0].Forces)
	for _, s := range sets[1:] {
		if len(s.Forces) != n {
			return Error{fmt.Sprintf("%s (%d vs %d)", InconsistentSet, len(s.Forces), n), path, nil, true}
		}
	}
	return nil
}
