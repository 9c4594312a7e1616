package kappa

import (
	"strings"

	"github.com/scigolib/hdf5"
)

//All contact with the HDF5 library is confined to this file.

//openDatasets opens the file at path and indexes its datasets by name
//(without the leading group path; kappa files are flat).
func openDatasets(path string) (*hdf5.File, map[string]*hdf5.Dataset, error) {
	f, err := hdf5.Open(path)
	if err != nil {
		return nil, nil, Error{UnableToOpen + ": " + err.Error(), path, []string{"openDatasets"}, true}
	}
	sets := make(map[string]*hdf5.Dataset)
	f.Walk(func(p string, obj hdf5.Object) {
		if ds, ok := obj.(*hdf5.Dataset); ok {
			sets[strings.TrimPrefix(p, "/")] = ds
		}
	})
	return f, sets, nil
}

//readFloats reads a dataset as a flat float64 slice, converting from the
//numeric type stored in the file. Shapes are recovered by the callers from
//the lengths of the index arrays (temperature, weight), so the on-disk
//layout (row-major) is all that matters here.
func (K *File) readFloats(name string) ([]float64, error) {
	ds, ok := K.sets[name]
	if !ok {
		return nil, Error{MissingDataset + ": " + name, K.path, []string{"readFloats"}, true}
	}
	raw, err := ds.Read()
	if err != nil {
		return nil, Error{ReadFailed + " " + name + ": " + err.Error(), K.path, []string{"readFloats"}, true}
	}
	switch v := raw.(type) {
	case []float64:
		return v, nil
	case []float32:
		ret := make([]float64, len(v))
		for i, x := range v {
			ret[i] = float64(x)
		}
		return ret, nil
	case []int32:
		ret := make([]float64, len(v))
		for i, x := range v {
			ret[i] = float64(x)
		}
		return ret, nil
	case []int64:
		ret := make([]float64, len(v))
		for i, x := range v {
			ret[i] = float64(x)
		}
		return ret, nil
	}
	return nil, Error{WrongType + ": " + name, K.path, []string{"readFloats"}, true}
}
