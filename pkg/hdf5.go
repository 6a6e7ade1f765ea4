package noise

import (
	"fmt"
	"strings"

	"github.com/jmbenlloch/go-hdf5"
)

// HDF5Source reads noise files where tables are HDF5 groups and fields are
// datasets.
type HDF5Source struct {
	file     *hdf5.File
	filename string
}

func OpenHDF5(filename string) (Source, error) {
	f, err := hdf5.OpenFile(filename, hdf5.F_ACC_RDONLY)
	if err != nil {
		return nil, &ErrOpenFile{Filename: filename, Err: err}
	}
	return &HDF5Source{file: f, filename: filename}, nil
}

func (s *HDF5Source) Name() string {
	return s.filename
}

func (s *HDF5Source) Has(path string) bool {
	// H5Lexists fails when an intermediate group is missing, check level by level
	parts := strings.Split(strings.Trim(path, "/"), "/")
	for i := range parts {
		if !s.file.LinkExists(strings.Join(parts[:i+1], "/")) {
			return false
		}
	}
	return true
}

func (s *HDF5Source) openDataset(path string) (*hdf5.Dataset, error) {
	if !s.Has(path) {
		return nil, &FieldNotFoundError{File: s.filename, Path: path}
	}
	dset, err := s.file.OpenDataset(path)
	if err != nil {
		return nil, fmt.Errorf("error opening dataset %q: %w", path, err)
	}
	return dset, nil
}

func (s *HDF5Source) Shape(path string) ([]int, error) {
	dset, err := s.openDataset(path)
	if err != nil {
		return nil, err
	}
	defer dset.Close()

	space := dset.Space()
	defer space.Close()
	dims, _, err := space.SimpleExtentDims()
	if err != nil {
		return nil, fmt.Errorf("error reading dimensions of %q: %w", path, err)
	}
	return toInts(dims), nil
}

func (s *HDF5Source) ReadRows(path string, start, stop int) (Array, error) {
	dset, err := s.openDataset(path)
	if err != nil {
		return Array{}, err
	}
	defer dset.Close()

	filespace := dset.Space()
	defer filespace.Close()
	dims, _, err := filespace.SimpleExtentDims()
	if err != nil {
		return Array{}, fmt.Errorf("error reading dimensions of %q: %w", path, err)
	}
	if len(dims) == 0 || start < 0 || start > stop || stop > int(dims[0]) {
		return Array{}, fmt.Errorf("rows %d-%d out of range for %q with shape %v", start, stop, path, dims)
	}

	offset := make([]uint, len(dims))
	offset[0] = uint(start)
	count := make([]uint, len(dims))
	copy(count, dims)
	count[0] = uint(stop - start)
	if start == stop {
		return zeroArray(toInts(count)), nil
	}

	err = filespace.SelectHyperslab(offset, nil, count, nil)
	if err != nil {
		return Array{}, fmt.Errorf("error selecting rows %d-%d of %q: %w", start, stop, path, err)
	}
	memspace, err := hdf5.CreateSimpleDataspace(count, nil)
	if err != nil {
		return Array{}, err
	}
	defer memspace.Close()

	nValues := 1
	for _, d := range count {
		nValues *= int(d)
	}
	data, err := readSubset(dset, memspace, filespace, nValues)
	if err != nil {
		return Array{}, fmt.Errorf("error reading %q: %w", path, err)
	}
	return Array{shape: toInts(count), data: data}, nil
}

func (s *HDF5Source) Close() error {
	return s.file.Close()
}

// The dataset file type is used as memory type, so the buffer must match it
// before converting to float64.
func readSubset(dset *hdf5.Dataset, memspace, filespace *hdf5.Dataspace, n int) ([]float64, error) {
	dtype, err := dset.Datatype()
	if err != nil {
		return nil, err
	}
	defer dtype.Close()

	switch {
	case dtype.Equal(hdf5.T_NATIVE_INT8):
		return readTyped[int8](dset, memspace, filespace, n)
	case dtype.Equal(hdf5.T_NATIVE_UINT8):
		return readTyped[uint8](dset, memspace, filespace, n)
	case dtype.Equal(hdf5.T_NATIVE_INT16):
		return readTyped[int16](dset, memspace, filespace, n)
	case dtype.Equal(hdf5.T_NATIVE_UINT16):
		return readTyped[uint16](dset, memspace, filespace, n)
	case dtype.Equal(hdf5.T_NATIVE_INT32):
		return readTyped[int32](dset, memspace, filespace, n)
	case dtype.Equal(hdf5.T_NATIVE_UINT32):
		return readTyped[uint32](dset, memspace, filespace, n)
	case dtype.Equal(hdf5.T_NATIVE_INT64):
		return readTyped[int64](dset, memspace, filespace, n)
	case dtype.Equal(hdf5.T_NATIVE_UINT64):
		return readTyped[uint64](dset, memspace, filespace, n)
	case dtype.Equal(hdf5.T_NATIVE_FLOAT):
		return readTyped[float32](dset, memspace, filespace, n)
	case dtype.Equal(hdf5.T_NATIVE_DOUBLE):
		return readTyped[float64](dset, memspace, filespace, n)
	}
	return nil, fmt.Errorf("unsupported datatype of size %d", dtype.Size())
}

func readTyped[T Number](dset *hdf5.Dataset, memspace, filespace *hdf5.Dataspace, n int) ([]float64, error) {
	buffer := make([]T, n)
	err := dset.ReadSubset(&buffer, memspace, filespace)
	if err != nil {
		return nil, err
	}
	data := make([]float64, n)
	for i, v := range buffer {
		data[i] = float64(v)
	}
	return data, nil
}

func toInts(dims []uint) []int {
	result := make([]int, len(dims))
	for i, d := range dims {
		result[i] = int(d)
	}
	return result
}
