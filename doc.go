/*
 * doc.go, part of phonogo.
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

/*Package phonogo is the main package of the phonogo library, a set of
post-processing utilities for the Phonopy and Phono3py lattice-dynamics codes.


	**phonogo capabilities**

    Computes average masses and mass-variance parameters for isotope
	distributions, site mixtures and explicit (abundance, mass) lists,
	following the Tamura (1983) formulation used by Phono3py's isotope
	scattering model.

    Reads kappa-m*.hdf5 thermal-conductivity files written by Phono3py,
	for the RTA and LBTE solvers, with and without the Wigner correction
	(subpackage kappa).

    Reads Phonopy FORCE_SETS and Phono3py FORCES_FC3 files, plain or
	gzip-compressed, and reads/writes VASP POSCAR structures (subpackage
	phonopy).

    Imports CASTEP .phonon files (subpackage castep) and rebuilds
	Gamma-point force constants from frequencies and eigenvectors
	(subpackage dynmat).

    Produces publication-style plots of modal quantities with gonum/plot
	(subpackage phplot).

The command-line front ends to all of the above live under cmd/phonogo.

The root package holds the isotope statistics, the element data tables and
the error types shared by the subpackages.
*/
package phonogo
