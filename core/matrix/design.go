// Package matrix provides the design-matrix capability consumed by the
// elastic-net solver: a single interface over dense and sparse storage that
// exposes row-batched products, so solver logic is written once.
package matrix

import (
	"gonum.org/v1/gonum/mat"
)

// DesignMatrix is an n×p matrix of labeling signals (rows are instances,
// columns are signals). Implementations are read-only; the solver never
// mutates them.
type DesignMatrix interface {
	mat.Matrix

	// MulVecTo sets dst[k] = X[rows[k]]·w. When rows is nil every row is
	// used and dst has length n; otherwise len(dst) == len(rows).
	MulVecTo(dst, w []float64, rows []int)

	// MulTransVecTo sets dst = Σ_k v[k]·X[rows[k]] (a length-p vector).
	// When rows is nil, dst = Xᵀv over all n rows.
	MulTransVecTo(dst, v []float64, rows []int)

	// RowSubset returns a new matrix holding the given rows in order.
	RowSubset(rows []int) DesignMatrix
}

// AsDesignMatrix returns m itself when it already is a DesignMatrix, wraps a
// *mat.Dense without copying, and copies any other mat.Matrix into a Dense.
func AsDesignMatrix(m mat.Matrix) DesignMatrix {
	switch v := m.(type) {
	case DesignMatrix:
		return v
	case *mat.Dense:
		return DenseOf(v)
	default:
		return DenseOf(mat.DenseCopyOf(m))
	}
}
