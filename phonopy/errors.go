package phonopy

import "fmt"

//errDecorate asserts that err implements phonogo.Decorator and decorates it
//with the caller's name before returning it.
func errDecorate(err error, caller string) error {
	err2 := err.(interface{ Decorate(string) []string })
	err2.Decorate(caller)
	return err2.(error)
}

//Error is the general structure for Phonopy file errors. It fulfills
//phonogo.Decorator and phonogo.FileError.
type Error struct {
	message  string
	filename string //the input file that has problems, or empty string if none.
	deco     []string
	critical bool
}

func (err Error) Error() string {
	return fmt.Sprintf("phonopy file %s error: %s", err.filename, err.message)
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
	UnableToOpen    = "Unable to open file"
	WrongFormat     = "Wrong format"
	NoForceSets     = "No force sets in file"
	InconsistentSet = "Force sets have different numbers of atoms"
	BadStructure    = "Ill-formed structure"
	SingularLattice = "Singular lattice matrix"
)
