package noise

import (
	"fmt"
)

const DefaultBatchSize = 1000

type RowRange struct {
	Start int
	Stop  int
}

func (r RowRange) Len() int {
	return r.Stop - r.Start
}

// RowBatches yields consecutive row ranges covering [0, total). A batch size
// of zero or less, or one not smaller than total, yields a single range.
type RowBatches struct {
	total int
	size  int
	next  int
}

func NewRowBatches(total int, batchSize int) *RowBatches {
	if batchSize <= 0 || batchSize > total {
		batchSize = total
	}
	return &RowBatches{total: total, size: batchSize}
}

func (b *RowBatches) Next() (RowRange, bool) {
	if b.next >= b.total {
		return RowRange{}, false
	}
	r := RowRange{Start: b.next, Stop: min(b.next+b.size, b.total)}
	b.next = r.Stop
	return r, true
}

// Count is the total number of ranges the iterator produces.
func (b *RowBatches) Count() int {
	if b.size == 0 {
		return 0
	}
	return (b.total + b.size - 1) / b.size
}

// ReadField reads the whole field at path in batches of batchSize rows and
// multiplies every value by scale. Only one batch is held besides the result.
func ReadField(src Source, path string, batchSize int, scale float64) (Array, error) {
	shape, err := src.Shape(path)
	if err != nil {
		return Array{}, err
	}
	if len(shape) == 0 {
		return Array{}, &ShapeMismatchError{File: src.Name(), Path: path, Want: []int{-1}, Got: shape}
	}

	result := zeroArray(shape)
	width := result.RowWidth()
	batches := NewRowBatches(shape[0], batchSize)
	nBatches := batches.Count()

	for i := 1; ; i++ {
		r, ok := batches.Next()
		if !ok {
			break
		}
		if nBatches > 1 {
			message := fmt.Sprintf("reading %s batch %d of %d", path, i, nBatches)
			logger.Info(message, "reader")
		}

		chunk, err := src.ReadRows(path, r.Start, r.Stop)
		if err != nil {
			return Array{}, fmt.Errorf("error reading rows %d-%d of %q: %w", r.Start, r.Stop, path, err)
		}
		if chunk.Rows() != r.Len() || chunk.RowWidth() != width {
			want := append([]int{r.Len()}, shape[1:]...)
			return Array{}, &ShapeMismatchError{File: src.Name(), Path: path, Want: want, Got: chunk.Shape()}
		}

		dst := result.data[r.Start*width : r.Stop*width]
		for k, v := range chunk.data {
			dst[k] = v * scale
		}
	}
	return result, nil
}
