package matrix

import (
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

// Dense is a DesignMatrix backed by a row-major *mat.Dense.
type Dense struct {
	m *mat.Dense
}

// NewDense creates a Dense design matrix; data is used as backing storage
// the same way mat.NewDense does.
func NewDense(r, c int, data []float64) *Dense {
	return &Dense{m: mat.NewDense(r, c, data)}
}

// DenseOf wraps m without copying.
func DenseOf(m *mat.Dense) *Dense {
	return &Dense{m: m}
}

// Dims implements mat.Matrix.
func (d *Dense) Dims() (r, c int) { return d.m.Dims() }

// At implements mat.Matrix.
func (d *Dense) At(i, j int) float64 { return d.m.At(i, j) }

// T implements mat.Matrix.
func (d *Dense) T() mat.Matrix { return mat.Transpose{Matrix: d} }

// Raw returns the wrapped *mat.Dense.
func (d *Dense) Raw() *mat.Dense { return d.m }

// MulVecTo implements DesignMatrix.
func (d *Dense) MulVecTo(dst, w []float64, rows []int) {
	if rows == nil {
		r, c := d.m.Dims()
		out := mat.NewVecDense(r, dst)
		out.MulVec(d.m, mat.NewVecDense(c, w))
		return
	}
	for k, i := range rows {
		dst[k] = floats.Dot(d.m.RawRowView(i), w)
	}
}

// MulTransVecTo implements DesignMatrix.
func (d *Dense) MulTransVecTo(dst, v []float64, rows []int) {
	if rows == nil {
		r, c := d.m.Dims()
		out := mat.NewVecDense(c, dst)
		out.MulVec(d.m.T(), mat.NewVecDense(r, v))
		return
	}
	for j := range dst {
		dst[j] = 0
	}
	for k, i := range rows {
		if v[k] != 0 {
			floats.AddScaled(dst, v[k], d.m.RawRowView(i))
		}
	}
}

// RowSubset implements DesignMatrix.
func (d *Dense) RowSubset(rows []int) DesignMatrix {
	_, c := d.m.Dims()
	out := mat.NewDense(len(rows), c, nil)
	for k, i := range rows {
		out.SetRow(k, d.m.RawRowView(i))
	}
	return &Dense{m: out}
}
