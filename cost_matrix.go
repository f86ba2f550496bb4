package pointmetric

import (
	"gonum.org/v1/gonum/mat"
)

// CostMatrix holds pairwise distances between a predicted set (rows) and a
// ground-truth set (columns). It satisfies mat.Matrix.
//
// Unlike mat.Dense it can represent zero-sized shapes such as (N, 0); in that
// case no backing storage is allocated.
type CostMatrix struct {
	rows, cols int
	dense      *mat.Dense
}

var _ mat.Matrix = (*CostMatrix)(nil)

// Dims returns the number of predicted and ground-truth points.
func (cm *CostMatrix) Dims() (r, c int) { return cm.rows, cm.cols }

// At returns the distance between predicted point i and ground-truth point j.
// It panics with mat.ErrIndexOutOfRange when i or j is out of bounds.
func (cm *CostMatrix) At(i, j int) float64 {
	if i < 0 || i >= cm.rows || j < 0 || j >= cm.cols {
		panic(mat.ErrIndexOutOfRange)
	}
	return cm.dense.At(i, j)
}

// T returns the implicit transpose.
func (cm *CostMatrix) T() mat.Matrix { return mat.Transpose{Matrix: cm} }

// Dense returns the backing matrix, or nil when either dimension is zero.
// The returned value aliases the cost matrix storage.
func (cm *CostMatrix) Dense() *mat.Dense { return cm.dense }

// Rows returns the matrix as nested slices, one row per predicted point.
func (cm *CostMatrix) Rows() [][]float64 {
	out := make([][]float64, cm.rows)
	for i := range out {
		out[i] = make([]float64, cm.cols)
		if cm.dense != nil {
			mat.Row(out[i], i, cm.dense)
		}
	}
	return out
}

// CalculateCostMatrix returns the N×M matrix whose (i, j) entry is
// Distance(pred[i], gt[j]).
//
// Both sets must be rectangular with finite coordinates, and their dimensions
// must match unless one of them is empty.
func CalculateCostMatrix(pred, gt PointSet) (*CostMatrix, error) {
	if err := checkCompatible(pred, gt); err != nil {
		return nil, err
	}

	cm := &CostMatrix{rows: len(pred), cols: len(gt)}
	if cm.rows == 0 || cm.cols == 0 {
		return cm, nil
	}

	data := make([]float64, cm.rows*cm.cols)
	for i, p := range pred {
		row := data[i*cm.cols : (i+1)*cm.cols]
		for j, q := range gt {
			d, err := Distance(p, q)
			if err != nil {
				return nil, err
			}
			row[j] = d
		}
	}
	cm.dense = mat.NewDense(cm.rows, cm.cols, data)
	return cm, nil
}
