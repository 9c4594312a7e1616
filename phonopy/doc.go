/*Package phonopy reads and writes the text formats shared by Phonopy and
Phono3py: FORCE_SETS and FORCES_FC3 force files (plain or gzip-compressed),
VASP POSCAR structures, and FORCE_CONSTANTS matrices. It also provides the
Cell structure type with fractional/Cartesian basis transforms.
*/
package phonopy
