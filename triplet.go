package lowrank

import (
	"fmt"

	"gonum.org/v1/gonum/mat"
)

type (
	// Triplet is one (left vector, singular value, right vector) component of
	// a singular value decomposition. U always has unit Euclidean length; V
	// has unit length whenever Sigma > 0.
	Triplet struct {
		U     *mat.VecDense
		Sigma float64
		V     *mat.VecDense
	}

	// Bound is the theoretical guarantee implied by the estimator parameters
	// alone; it carries no randomness and is not derived from a computed
	// triplet.
	Bound struct {
		// OrthogonalDistance bounds the component of the estimated left
		// vector orthogonal to the true dominant subspace.
		OrthogonalDistance float64
		// Probability is the chance the distance bound holds. It can be
		// non-positive for poorly chosen parameters (vacuous guarantee).
		Probability float64
	}
)

// RankK rebuilds the best rank-k approximation
//
//	A_k = sum_{l<k} sigma_l * u_l * v_l^T
//
// from triplets sorted by descending singular value, as an n x m matrix in
// the orientation of the original input. Terms accumulate in ascending l so
// rounding is reproducible across calls.
//
// Returns ErrInvalidRank unless 1 <= k <= len(triplets), and
// ErrInvalidDimension if the triplets disagree on vector lengths.
func RankK(triplets []Triplet, k int) (*mat.Dense, error) {
	if k < 1 || k > len(triplets) {
		return nil, fmt.Errorf("%w: k=%d with %d triplets", ErrInvalidRank, k, len(triplets))
	}
	n, m := triplets[0].U.Len(), triplets[0].V.Len()
	ak := mat.NewDense(n, m, nil)
	for l, t := range triplets[:k] {
		if t.U.Len() != n || t.V.Len() != m {
			return nil, fmt.Errorf("%w: triplet %d is %dx%d, want %dx%d",
				ErrInvalidDimension, l, t.U.Len(), t.V.Len(), n, m)
		}
		ak.RankOne(ak, t.Sigma, t.U, t.V)
	}
	return ak, nil
}
