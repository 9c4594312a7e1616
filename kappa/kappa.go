package kappa

import (
	"fmt"
	"log"
	"math"
	"sort"

	"github.com/scigolib/hdf5"
	"gonum.org/v1/gonum/floats"
)

//ZeroTol is the tolerance used when checking the normalisation of the
//per-mode conductivities against the total.
const ZeroTol = 1e-5

//Solver selects which of the pre-computed conductivity arrays is read.
//The zero value reads the file's main result ("kappa"), which is the RTA
//result for RTA files and the exact solution for LBTE files.
type Solver struct {
	RTA    bool //in an LBTE file, read the RTA result instead of the exact one
	Wigner bool //read the Wigner-corrected total conductivity
}

//The four solver variants only differ in which array they read.
var kappaKey = map[Solver]string{
	{false, false}: "kappa",
	{true, false}:  "kappa_RTA",
	{false, true}:  "kappa_TOT_exact",
	{true, true}:   "kappa_TOT_RTA",
}

//Key returns the name of the conductivity dataset the solver reads from a
//file with the given LBTE status. Asking for the LBTE-RTA or Wigner-exact
//arrays of a plain RTA file falls back to the datasets such a file has.
func (s Solver) Key(lbte bool) string {
	if !lbte {
		//RTA files carry no exact solution and only the RTA flavour of the
		//Wigner totals.
		if s.Wigner {
			return "kappa_TOT_RTA"
		}
		return "kappa"
	}
	return kappaKey[s]
}

//File encapsulates a Phono3py kappa-m*.hdf5 file. The underlying datasets
//stay open until Close is called.
type File struct {
	path  string
	f     *hdf5.File
	sets  map[string]*hdf5.Dataset
	temps []float64 //cached 'temperature' array
	wts   []float64 //cached 'weight' array
}

//Open opens the kappa file at path and reads its index arrays.
func Open(path string) (*File, error) {
	f, sets, err := openDatasets(path)
	if err != nil {
		return nil, err
	}
	K := &File{path: path, f: f, sets: sets}
	for _, name := range []string{"temperature", "kappa"} {
		if _, ok := sets[name]; !ok {
			K.Close()
			return nil, Error{NotAKappaFile + " (missing " + name + ")", path, []string{"Open"}, true}
		}
	}
	if K.temps, err = K.readFloats("temperature"); err != nil {
		K.Close()
		return nil, errDecorate(err, "Open")
	}
	if K.wts, err = K.readFloats("weight"); err != nil {
		K.Close()
		return nil, errDecorate(err, "Open")
	}
	return K, nil
}

//IsKappaFile returns true if the file at path can be opened as a Phono3py
//kappa file.
func IsKappaFile(path string) bool {
	K, err := Open(path)
	if err != nil {
		return false
	}
	K.Close()
	return true
}

//Close closes the underlying HDF5 file. Further reads will fail.
func (K *File) Close() error {
	if K.f == nil {
		return nil
	}
	err := K.f.Close()
	K.f = nil
	return err
}

//Has returns true if the file contains a dataset with the given name.
func (K *File) Has(name string) bool {
	_, ok := K.sets[name]
	return ok
}

//IsLBTE returns true if the file comes from an LBTE calculation, which is
//flagged by the presence of the 'kappa_RTA' dataset.
func (K *File) IsLBTE() bool { return K.Has("kappa_RTA") }

//HasWigner returns true if the file carries the Wigner-corrected totals.
func (K *File) HasWigner() bool {
	return K.Has("kappa_TOT_RTA") || K.Has("kappa_TOT_exact")
}

//Temperatures returns the temperature grid (K). The returned slice is
//shared, do not modify.
func (K *File) Temperatures() []float64 { return K.temps }

//NumQPoints returns the number of unique q-points in the sampling mesh.
func (K *File) NumQPoints() int { return len(K.wts) }

//QPointWeights returns the q-point multiplicities. The returned slice is
//shared, do not modify.
func (K *File) QPointWeights() []float64 { return K.wts }

//NumBands returns the number of phonon bands per q-point.
func (K *File) NumBands() (int, error) {
	freqs, err := K.readFloats("frequency")
	if err != nil {
		return 0, errDecorate(err, "NumBands")
	}
	if len(K.wts) == 0 || len(freqs)%len(K.wts) != 0 {
		return 0, Error{fmt.Sprintf("%d frequencies do not divide evenly over %d q-points", len(freqs), len(K.wts)), K.path, []string{"NumBands"}, true}
	}
	return len(freqs) / len(K.wts), nil
}

//tIndex returns the index of temp in the temperature grid. An exact grid
//point must be requested; the error lists the grid on a mismatch.
func (K *File) tIndex(temp float64) (int, error) {
	for i, t := range K.temps {
		if math.Abs(t-temp) < 1e-8 {
			return i, nil
		}
	}
	return 0, Error{fmt.Sprintf("T = %g K not in the 'temperature' array %v", temp, K.temps), K.path, []string{"tIndex"}, true}
}

//Kappa returns the conductivity tensor selected by s, one row of six Voigt
//components (xx, yy, zz, yz, xz, xy) per temperature.
func (K *File) Kappa(s Solver) ([][]float64, error) {
	key := s.Key(K.IsLBTE())
	flat, err := K.readFloats(key)
	if err != nil {
		return nil, errDecorate(err, "Kappa")
	}
	nT := len(K.temps)
	if len(flat) != nT*6 {
		return nil, Error{fmt.Sprintf("dataset %s has %d values, want %d", key, len(flat), nT*6), K.path, []string{"Kappa"}, true}
	}
	rows := make([][]float64, nT)
	for i := range rows {
		rows[i] = flat[i*6 : (i+1)*6]
	}
	return rows, nil
}

//component returns a single Voigt component of the conductivity tensor as a
//function of temperature.
func (K *File) component(s Solver, c int) ([]float64, error) {
	rows, err := K.Kappa(s)
	if err != nil {
		return nil, err
	}
	ret := make([]float64, len(rows))
	for i, row := range rows {
		ret[i] = row[c]
	}
	return ret, nil
}

//KappaXX returns k_xx as a function of temperature.
func (K *File) KappaXX(s Solver) ([]float64, error) { return K.component(s, 0) }

//KappaYY returns k_yy as a function of temperature.
func (K *File) KappaYY(s Solver) ([]float64, error) { return K.component(s, 1) }

//KappaZZ returns k_zz as a function of temperature.
func (K *File) KappaZZ(s Solver) ([]float64, error) { return K.component(s, 2) }

//KappaAve returns the isotropic average k_ave = (k_xx + k_yy + k_zz)/3 as a
//function of temperature.
func (K *File) KappaAve(s Solver) ([]float64, error) {
	rows, err := K.Kappa(s)
	if err != nil {
		return nil, err
	}
	ret := make([]float64, len(rows))
	for i, row := range rows {
		ret[i] = floats.Sum(row[:3]) / 3.0
	}
	return ret, nil
}

//ModeArray is a per-mode quantity on the sampling mesh, stored row-major
//over (q-point, band).
type ModeArray struct {
	NQ, NB int
	Data   []float64
}

//At returns the value for band b at q-point q.
func (m ModeArray) At(q, b int) float64 { return m.Data[q*m.NB+b] }

//modeArray reads an (n_qpts, n_bnds) dataset.
func (K *File) modeArray(name string) (ModeArray, error) {
	flat, err := K.readFloats(name)
	if err != nil {
		return ModeArray{}, errDecorate(err, "modeArray")
	}
	nq := len(K.wts)
	if nq == 0 || len(flat)%nq != 0 {
		return ModeArray{}, Error{fmt.Sprintf("dataset %s has %d values over %d q-points", name, len(flat), nq), K.path, []string{"modeArray"}, true}
	}
	return ModeArray{NQ: nq, NB: len(flat) / nq, Data: flat}, nil
}

//ModeFrequencies returns the mode frequencies (THz).
func (K *File) ModeFrequencies() (ModeArray, error) {
	return K.modeArray("frequency")
}

//ModePPStrength returns the averaged phonon-phonon interaction strengths
//P_qj.
func (K *File) ModePPStrength() (ModeArray, error) {
	return K.modeArray("ave_pp")
}

//ModeCV returns the modal heat capacities at T = temp.
func (K *File) ModeCV(temp float64) (ModeArray, error) {
	ti, err := K.tIndex(temp)
	if err != nil {
		return ModeArray{}, errDecorate(err, "ModeCV")
	}
	return K.modeSliceAtT("heat_capacity", ti)
}

//ModeGamma returns the modal linewidths Gamma at T = temp (THz).
func (K *File) ModeGamma(temp float64) (ModeArray, error) {
	ti, err := K.tIndex(temp)
	if err != nil {
		return ModeArray{}, errDecorate(err, "ModeGamma")
	}
	return K.modeSliceAtT("gamma", ti)
}

//modeSliceAtT reads an (n_tmps, n_qpts, n_bnds) dataset and returns the
//slice at temperature index ti.
func (K *File) modeSliceAtT(name string, ti int) (ModeArray, error) {
	flat, err := K.readFloats(name)
	if err != nil {
		return ModeArray{}, errDecorate(err, "modeSliceAtT")
	}
	nT := len(K.temps)
	nq := len(K.wts)
	if nT == 0 || nq == 0 || len(flat)%(nT*nq) != 0 {
		return ModeArray{}, Error{fmt.Sprintf("dataset %s has %d values over %d temperatures and %d q-points", name, len(flat), nT, nq), K.path, []string{"modeSliceAtT"}, true}
	}
	nb := len(flat) / (nT * nq)
	block := nq * nb
	data := make([]float64, block)
	copy(data, flat[ti*block:(ti+1)*block])
	return ModeArray{NQ: nq, NB: nb, Data: data}, nil
}

//ModeLifetime returns the modal lifetimes tau = 1/(2*2*pi*Gamma) at
//T = temp (ps). Modes with non-positive linewidths get a zero lifetime.
func (K *File) ModeLifetime(temp float64) (ModeArray, error) {
	gamma, err := K.ModeGamma(temp)
	if err != nil {
		return ModeArray{}, errDecorate(err, "ModeLifetime")
	}
	tau := ModeArray{NQ: gamma.NQ, NB: gamma.NB, Data: make([]float64, len(gamma.Data))}
	for i, g := range gamma.Data {
		if g > 0 {
			tau.Data[i] = 1.0 / (2.0 * 2.0 * math.Pi * g)
		}
	}
	return tau, nil
}

//ModeGroupVelocityNorm returns the modal group-velocity norms |v_g| (m/s).
func (K *File) ModeGroupVelocityNorm() (ModeArray, error) {
	flat, err := K.readFloats("group_velocity")
	if err != nil {
		return ModeArray{}, errDecorate(err, "ModeGroupVelocityNorm")
	}
	nq := len(K.wts)
	if nq == 0 || len(flat)%(nq*3) != 0 {
		return ModeArray{}, Error{fmt.Sprintf("group_velocity has %d values over %d q-points", len(flat), nq), K.path, []string{"ModeGroupVelocityNorm"}, true}
	}
	nb := len(flat) / (nq * 3)
	ret := ModeArray{NQ: nq, NB: nb, Data: make([]float64, nq*nb)}
	for i := 0; i < nq*nb; i++ {
		vx, vy, vz := flat[i*3], flat[i*3+1], flat[i*3+2]
		//The file stores 100 m/s units.
		ret.Data[i] = 1.0e2 * math.Sqrt(vx*vx+vy*vy+vz*vz)
	}
	return ret, nil
}

//ModeMFPNorm returns the modal mean-free-path norms |Lambda| at T = temp
//(nm).
func (K *File) ModeMFPNorm(temp float64) (ModeArray, error) {
	gv, err := K.ModeGroupVelocityNorm()
	if err != nil {
		return ModeArray{}, errDecorate(err, "ModeMFPNorm")
	}
	tau, err := K.ModeLifetime(temp)
	if err != nil {
		return ModeArray{}, errDecorate(err, "ModeMFPNorm")
	}
	mfp := ModeArray{NQ: gv.NQ, NB: gv.NB, Data: make([]float64, len(gv.Data))}
	for i := range mfp.Data {
		//m/s * ps -> nm is a factor 1e-3.
		mfp.Data[i] = 1.0e-3 * gv.Data[i] * tau.Data[i]
	}
	return mfp, nil
}

//ModeKappaAve returns the modal isotropic-average conductivities at
//T = temp, normalised so that they sum to KappaAve at the same temperature.
//Newer versions of Phono3py store per-mode values that must be divided by
//the number of grid points; the normalisation is verified against the total
//and the division applied when needed. If neither convention matches, the
//values are returned as read, with a warning.
func (K *File) ModeKappaAve(temp float64, s Solver) (ModeArray, error) {
	key := "mode_kappa"
	if K.IsLBTE() && s.RTA {
		key = "mode_kappa_RTA"
	}
	ti, err := K.tIndex(temp)
	if err != nil {
		return ModeArray{}, errDecorate(err, "ModeKappaAve")
	}
	flat, err := K.readFloats(key)
	if err != nil {
		return ModeArray{}, errDecorate(err, "ModeKappaAve")
	}
	nT := len(K.temps)
	nq := len(K.wts)
	if nT == 0 || nq == 0 || len(flat)%(nT*nq*6) != 0 {
		return ModeArray{}, Error{fmt.Sprintf("dataset %s has %d values over %d temperatures and %d q-points", key, len(flat), nT, nq), K.path, []string{"ModeKappaAve"}, true}
	}
	nb := len(flat) / (nT * nq * 6)
	ave := ModeArray{NQ: nq, NB: nb, Data: make([]float64, nq*nb)}
	base := ti * nq * nb * 6
	for i := 0; i < nq*nb; i++ {
		row := flat[base+i*6 : base+i*6+6]
		ave.Data[i] = floats.Sum(row[:3]) / 3.0
	}
	kave, err := K.KappaAve(Solver{RTA: s.RTA})
	if err != nil {
		return ModeArray{}, errDecorate(err, "ModeKappaAve")
	}
	ref := kave[ti]
	if math.Abs(floats.Sum(ave.Data)-ref) > ZeroTol {
		norm := floats.Sum(K.wts)
		total := 0.0
		for _, v := range ave.Data {
			total += v / norm
		}
		if math.Abs(total-ref) < ZeroTol {
			floats.Scale(1.0/norm, ave.Data)
		} else {
			log.Printf("kappa: %s: failed to normalise modal k_ave - values returned as read", K.path)
		}
	}
	return ave, nil
}

//CumulativeKappaAve returns the cumulative isotropic-average conductivity
//as a function of frequency: the modal contributions sorted by frequency
//with a running sum, so the last cumulative value equals KappaAve at the
//requested temperature.
func (K *File) CumulativeKappaAve(temp float64, s Solver) (freqs, cum []float64, err error) {
	mf, err := K.ModeFrequencies()
	if err != nil {
		return nil, nil, errDecorate(err, "CumulativeKappaAve")
	}
	mk, err := K.ModeKappaAve(temp, s)
	if err != nil {
		return nil, nil, errDecorate(err, "CumulativeKappaAve")
	}
	if len(mf.Data) != len(mk.Data) {
		return nil, nil, Error{fmt.Sprintf("frequency and mode_kappa sizes disagree (%d vs %d)", len(mf.Data), len(mk.Data)), K.path, []string{"CumulativeKappaAve"}, true}
	}
	idx := make([]int, len(mf.Data))
	for i := range idx {
		idx[i] = i
	}
	sort.Slice(idx, func(a, b int) bool { return mf.Data[idx[a]] < mf.Data[idx[b]] })
	freqs = make([]float64, len(idx))
	cum = make([]float64, len(idx))
	running := 0.0
	for i, j := range idx {
		freqs[i] = mf.Data[j]
		running += mk.Data[j]
		cum[i] = running
	}
	return freqs, cum, nil
}

//Errors

//errDecorate asserts that err implements phonogo.Decorator and decorates it
//with the caller's name before returning it.
func errDecorate(err error, caller string) error {
	err2 := err.(interface{ Decorate(string) []string })
	err2.Decorate(caller)
	return err2.(error)
}

//Error is the general structure for kappa-file errors. It fulfills
//phonogo.Decorator and phonogo.FileError.
type Error struct {
	message  string
	filename string
	deco     []string
	critical bool
}

func (err Error) Error() string {
	return fmt.Sprintf("kappa file %s error: %s", err.filename, err.message)
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
	UnableToOpen   = "Unable to open file"
	NotAKappaFile  = "Not a Phono3py kappa file"
	MissingDataset = "Missing dataset"
	ReadFailed     = "Error reading dataset"
	WrongType      = "Unsupported dataset type"
)
