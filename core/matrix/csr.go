package matrix

import (
	"sort"

	"gonum.org/v1/gonum/mat"

	"github.com/YuminosukeSato/weaklearn/pkg/errors"
)

// CSR is a sparse DesignMatrix in compressed sparse row form. Row i stores
// its non-zero entries in indices[indptr[i]:indptr[i+1]] (strictly
// increasing column indices) with values in the same range of data.
type CSR struct {
	rows, cols int
	indptr     []int
	indices    []int
	data       []float64
}

// NewCSR validates and wraps the given compressed-row arrays without copying.
func NewCSR(rows, cols int, indptr, indices []int, data []float64) (*CSR, error) {
	if rows <= 0 || cols <= 0 {
		return nil, errors.NewValueError("NewCSR", "matrix must have at least one row and one column")
	}
	if len(indptr) != rows+1 {
		return nil, errors.NewDimensionError("NewCSR", rows+1, len(indptr), 0)
	}
	if len(indices) != len(data) {
		return nil, errors.NewDimensionError("NewCSR", len(indices), len(data), 1)
	}
	if indptr[0] != 0 || indptr[rows] != len(data) {
		return nil, errors.NewValueError("NewCSR", "indptr must start at 0 and end at the number of stored entries")
	}
	for i := 0; i < rows; i++ {
		if indptr[i+1] < indptr[i] {
			return nil, errors.NewValueError("NewCSR", "indptr must be non-decreasing")
		}
	}
	for i := 0; i < rows; i++ {
		prev := -1
		for _, j := range indices[indptr[i]:indptr[i+1]] {
			if j <= prev || j >= cols {
				return nil, errors.Newf("NewCSR: row %d has unsorted or out-of-range column index %d", i, j)
			}
			prev = j
		}
	}
	return &CSR{rows: rows, cols: cols, indptr: indptr, indices: indices, data: data}, nil
}

// NewCSRFromDense builds a CSR holding the non-zero entries of m.
func NewCSRFromDense(m mat.Matrix) *CSR {
	r, c := m.Dims()
	b := NewCSRBuilder(c)
	var idx []int
	var val []float64
	for i := 0; i < r; i++ {
		idx, val = idx[:0], val[:0]
		for j := 0; j < c; j++ {
			if v := m.At(i, j); v != 0 {
				idx = append(idx, j)
				val = append(val, v)
			}
		}
		b.AppendRow(idx, val)
	}
	return b.Build()
}

// Dims implements mat.Matrix.
func (s *CSR) Dims() (r, c int) { return s.rows, s.cols }

// At implements mat.Matrix.
func (s *CSR) At(i, j int) float64 {
	if uint(i) >= uint(s.rows) {
		panic(mat.ErrRowAccess)
	}
	if uint(j) >= uint(s.cols) {
		panic(mat.ErrColAccess)
	}
	lo, hi := s.indptr[i], s.indptr[i+1]
	row := s.indices[lo:hi]
	k := sort.SearchInts(row, j)
	if k < len(row) && row[k] == j {
		return s.data[lo+k]
	}
	return 0
}

// T implements mat.Matrix.
func (s *CSR) T() mat.Matrix { return mat.Transpose{Matrix: s} }

// NNZ returns the number of stored entries.
func (s *CSR) NNZ() int { return len(s.data) }

// ToDense materializes the matrix.
func (s *CSR) ToDense() *mat.Dense {
	out := mat.NewDense(s.rows, s.cols, nil)
	for i := 0; i < s.rows; i++ {
		for k := s.indptr[i]; k < s.indptr[i+1]; k++ {
			out.Set(i, s.indices[k], s.data[k])
		}
	}
	return out
}

func (s *CSR) rowDot(i int, w []float64) float64 {
	var sum float64
	for k := s.indptr[i]; k < s.indptr[i+1]; k++ {
		sum += s.data[k] * w[s.indices[k]]
	}
	return sum
}

func (s *CSR) addScaledRow(dst []float64, alpha float64, i int) {
	for k := s.indptr[i]; k < s.indptr[i+1]; k++ {
		dst[s.indices[k]] += alpha * s.data[k]
	}
}

// MulVecTo implements DesignMatrix.
func (s *CSR) MulVecTo(dst, w []float64, rows []int) {
	if rows == nil {
		for i := 0; i < s.rows; i++ {
			dst[i] = s.rowDot(i, w)
		}
		return
	}
	for k, i := range rows {
		dst[k] = s.rowDot(i, w)
	}
}

// MulTransVecTo implements DesignMatrix.
func (s *CSR) MulTransVecTo(dst, v []float64, rows []int) {
	for j := range dst {
		dst[j] = 0
	}
	if rows == nil {
		for i := 0; i < s.rows; i++ {
			if v[i] != 0 {
				s.addScaledRow(dst, v[i], i)
			}
		}
		return
	}
	for k, i := range rows {
		if v[k] != 0 {
			s.addScaledRow(dst, v[k], i)
		}
	}
}

// RowSubset implements DesignMatrix.
func (s *CSR) RowSubset(rows []int) DesignMatrix {
	b := NewCSRBuilder(s.cols)
	for _, i := range rows {
		lo, hi := s.indptr[i], s.indptr[i+1]
		b.AppendRow(s.indices[lo:hi], s.data[lo:hi])
	}
	return b.Build()
}

// CSRBuilder assembles a CSR one row at a time.
type CSRBuilder struct {
	cols    int
	indptr  []int
	indices []int
	data    []float64
}

// NewCSRBuilder starts an empty matrix with the given column count.
func NewCSRBuilder(cols int) *CSRBuilder {
	return &CSRBuilder{cols: cols, indptr: []int{0}}
}

// AppendRow appends a row given its column indices (strictly increasing) and
// values. Zero values are dropped. The slices are copied.
func (b *CSRBuilder) AppendRow(indices []int, values []float64) {
	for k, j := range indices {
		if values[k] == 0 {
			continue
		}
		b.indices = append(b.indices, j)
		b.data = append(b.data, values[k])
	}
	b.indptr = append(b.indptr, len(b.data))
}

// Rows returns the number of rows appended so far.
func (b *CSRBuilder) Rows() int { return len(b.indptr) - 1 }

// Build returns the assembled matrix. The builder must not be reused.
func (b *CSRBuilder) Build() *CSR {
	return &CSR{
		rows:    len(b.indptr) - 1,
		cols:    b.cols,
		indptr:  b.indptr,
		indices: b.indices,
		data:    b.data,
	}
}
