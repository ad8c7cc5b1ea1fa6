package power

import (
	"context"
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"
)

// Iterations derives the fixed iteration budget
//
//	i = ceil( ln(m^beta / epsilon) / epsilon )
//
// for a matrix with m columns. The budget comes from the convergence theorem
// and is never shortened by a runtime convergence check; callers validate
// epsilon > 0 and beta beforehand.
func Iterations(epsilon, beta float64, m int) int {
	return int(math.Ceil((beta*math.Log(float64(m)) - math.Log(epsilon)) / epsilon))
}

// Iterate applies iters steps of x <- normalize(A * (A^T * x)) and returns
// the final unit vector. A*A^T is never formed; each step is two mat-vec
// products of cost O(nm). The input vector is not mutated, and iters = 0
// returns a copy of x as-is.
//
// Returns an error if a step maps x into the null space of A*A^T (the next
// vector would have zero norm) or if ctx is canceled between steps.
func Iterate(ctx context.Context, a mat.Matrix, x *mat.VecDense, iters int) (*mat.VecDense, error) {
	n, m := a.Dims()
	cur := mat.VecDenseCopyOf(x)
	tmp := mat.NewVecDense(m, nil)
	next := mat.NewVecDense(n, nil)
	for range iters {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		tmp.MulVec(a.T(), cur)
		next.MulVec(a, tmp)
		norm := next.Norm(2)
		if norm == 0 {
			return nil, fmt.Errorf("vector fell into the null space of A*A^T")
		}
		next.ScaleVec(1/norm, next)
		cur, next = next, cur
	}
	return cur, nil
}
