/*Package kappa reads the kappa-m*.hdf5 thermal-conductivity files written by
Phono3py.

A kappa file holds the lattice thermal conductivity tensor as a function of
temperature plus a set of per-mode quantities on the q-point sampling mesh
(frequencies, heat capacities, group velocities, linewidths, averaged
phonon-phonon interaction strengths). Which conductivity array is read
depends on the solver variant: the relaxation-time approximation (RTA)
and the direct solution of the linearised Boltzmann transport equation
(LBTE) both write their result to "kappa", LBTE files additionally carry
the RTA result as "kappa_RTA", and calculations with the Wigner transport
correction write the corrected totals to "kappa_TOT_exact" and
"kappa_TOT_RTA". The Solver type selects among the four.

Tensors are stored in Voigt order: xx, yy, zz, yz, xz, xy.
*/
package kappa
