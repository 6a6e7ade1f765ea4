package noise

import (
	"fmt"

	"golang.org/x/exp/constraints"
	"golang.org/x/exp/slices"
)

type Number interface {
	constraints.Integer | constraints.Float
}

// Array is a dense row-major numeric array. The first dimension indexes rows
// (events), the remaining ones make up the row.
type Array struct {
	shape []int
	data  []float64
}

func NewArray[T Number](data []T, shape ...int) (Array, error) {
	if len(shape) == 0 {
		shape = []int{len(data)}
	}
	size := 1
	for _, d := range shape {
		if d < 0 {
			return Array{}, fmt.Errorf("negative dimension in shape %v", shape)
		}
		size *= d
	}
	if size != len(data) {
		return Array{}, fmt.Errorf("shape %v needs %d values, got %d", shape, size, len(data))
	}

	converted := make([]float64, len(data))
	for i, v := range data {
		converted[i] = float64(v)
	}
	return Array{shape: slices.Clone(shape), data: converted}, nil
}

func zeroArray(shape []int) Array {
	size := 1
	for _, d := range shape {
		size *= d
	}
	return Array{shape: slices.Clone(shape), data: make([]float64, size)}
}

func (a Array) Shape() []int {
	return slices.Clone(a.shape)
}

func (a Array) Rows() int {
	if len(a.shape) == 0 {
		return 0
	}
	return a.shape[0]
}

func (a Array) rowShape() []int {
	if len(a.shape) < 2 {
		return nil
	}
	return a.shape[1:]
}

// RowWidth is the number of values in a single row.
func (a Array) RowWidth() int {
	width := 1
	for _, d := range a.rowShape() {
		width *= d
	}
	return width
}

// Row returns a view of row i.
func (a Array) Row(i int) []float64 {
	width := a.RowWidth()
	return a.data[i*width : (i+1)*width : (i+1)*width]
}

// Column returns a copy of the j-th value of every row.
func (a Array) Column(j int) ([]float64, error) {
	width := a.RowWidth()
	if j < 0 || j >= width {
		return nil, fmt.Errorf("column %d out of range for rows of width %d", j, width)
	}
	column := make([]float64, a.Rows())
	for i := range column {
		column[i] = a.data[i*width+j]
	}
	return column, nil
}

func (a Array) Values() []float64 {
	return slices.Clone(a.data)
}

func (a Array) Equal(b Array) bool {
	return slices.Equal(a.shape, b.shape) && slices.Equal(a.data, b.data)
}

// Concatenate joins arrays along the row dimension. All arrays must share the
// shape of their rows.
func Concatenate(arrays ...Array) (Array, error) {
	if len(arrays) == 0 {
		return Array{}, nil
	}
	rowShape := arrays[0].rowShape()
	rows := 0
	for _, a := range arrays {
		if !slices.Equal(a.rowShape(), rowShape) {
			return Array{}, fmt.Errorf("cannot concatenate rows of shape %v with rows of shape %v", a.rowShape(), rowShape)
		}
		rows += a.Rows()
	}

	shape := append([]int{rows}, rowShape...)
	result := zeroArray(shape)
	offset := 0
	for _, a := range arrays {
		offset += copy(result.data[offset:], a.data)
	}
	return result, nil
}
