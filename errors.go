/*
 * errors.go, part of phonogo.
 *
 * Copyright 2024 Daniel T. Lloyd <dtlloyd{at}posteoDOTnet>
 *
 * This program is free software; you can redistribute it and/or modify
 * it under the terms of the GNU Lesser General Public License as
 * published by the Free Software Foundation; either version 2.1 of the
 * License, or (at your option) any later version.
 *
 * This program is distributed in the hope that it will be useful,
 * but WITHOUT ANY WARRANTY; without even the implied warranty of
 * MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
 * GNU General Public License for more details.
 *
 * You should have received a copy of the GNU Lesser General
 * Public License along with this program.  If not, see
 * <http://www.gnu.org/licenses/>.
 *
 */

package phonogo

import "fmt"

//Decorator is the interface for errors that can accumulate information as
//they are passed up the calling stack. Each call to Decorate adds the
//caller's name (plus, optionally, extra information in the format
//"FunctionName: Extra info") and returns the accumulated decoration slice.
//If passed an empty string it just returns the current value.
type Decorator interface {
	Error() string
	Decorate(string) []string
}

//FileError is the interface for errors associated to a specific input file.
type FileError interface {
	Decorator
	Critical() bool
	FileName() string
}

//Error is the general error structure for the phonogo root package.
//It fulfills the Decorator and FileError interfaces.
type Error struct {
	message  string
	filename string //the input file that has problems, or empty string if none.
	deco     []string
	critical bool
}

func (err Error) Error() string {
	if err.filename == "" {
		return fmt.Sprintf("phonogo: %s", err.message)
	}
	return fmt.Sprintf("phonogo: file %s: %s", err.filename, err.message)
}

//Decorate adds new information to the error
func (err Error) Decorate(deco string) []string {
	//Even though this method does not use a pointer as a receiver, and tries to alter the receiver,
	//it should work, since err.deco is a slice, and hence a pointer itself.
	if deco != "" {
		err.deco = append(err.deco, deco)
	}
	return err.deco
}

//FileName returns the file associated to the error, or an empty string.
func (err Error) FileName() string { return err.filename }

//Critical returns true if the error is critical, false otherwise
func (err Error) Critical() bool { return err.critical }

//Messages for the errors returned by the root package.
const (
	NoMassData       = "No atomic mass data for element"
	NoIsotopeData    = "No isotope data for element"
	EmptyDistro      = "Empty isotope distribution"
	NegativeWeight   = "Negative abundance or occupation fraction"
	UnnormalisedSum  = "Abundances or occupation fractions do not sum to one"
	MalformedSite    = "Malformed site specification"
	MalformedIsotope = "Malformed abundance:mass pair"
)

//ErrDecorate asserts that err implements Decorator, decorates it with the
//caller's name and returns it. Used with a non-Decorator error, it will
//cause a panic.
func ErrDecorate(err error, caller string) error {
	err2 := err.(Decorator)
	err2.Decorate(caller)
	return err2
}
