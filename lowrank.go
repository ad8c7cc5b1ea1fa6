package lowrank

import (
	"context"
	"errors"
	"fmt"
	"math"

	"github.com/yyyoichi/lowrank/internal/power"
	"github.com/yyyoichi/lowrank/internal/unitvec"
	"gonum.org/v1/gonum/mat"
)

var (
	ErrInvalidDimension = errors.New("dimension is not positive")
	ErrInvalidParameter = errors.New("parameter out of range")
	ErrDegenerateVector = errors.New("vector with zero or non-finite norm")
	ErrInvalidRank      = errors.New("rank out of range")
)

var (
	DefaultSeed int64 = 1234567890
)

// DominantTriplet estimates the dominant singular triplet of a with the
// specified options.
// This is a convenience function that creates an Estimator instance and calls
// its DominantTriplet method.
func DominantTriplet(ctx context.Context, a mat.Matrix, opts ...Option) (Triplet, Bound, error) {
	e, err := New(opts...)
	if err != nil {
		return Triplet{}, Bound{}, err
	}
	return e.DominantTriplet(ctx, a)
}

type Estimator struct {
	epsilon, alpha, beta float64
	seed                 int64
}

// New initializes a singular-triplet estimator.
// The accuracy parameters epsilon, alpha, beta and the random seed can be
// optionally specified. For default values, refer to the init function.
func New(opts ...Option) (*Estimator, error) {
	e := new(Estimator)
	if err := e.init(opts...); err != nil {
		return nil, err
	}
	return e, nil
}

// DominantTriplet estimates the dominant singular triplet of a.
//
// Process:
//  1. Draws a reproducible unit start vector from the configured seed.
//  2. Derives the fixed iteration budget from (epsilon, beta) and the
//     column count of a.
//  3. Runs the power iteration x <- normalize(A*A^T*x) for the full budget.
//  4. Extracts the singular value as |A^T*u| and the right vector as
//     A^T*u / sigma.
//
// The budget comes from the underlying theorem; there is no adaptive
// convergence exit. The returned Bound is the theoretical guarantee implied
// by the parameters, not a measurement of the actual result. a is only read
// and may be shared across concurrent calls with different seeds.
//
// Returns ErrDegenerateVector if sigma is zero (the right vector is then
// undefined; expected for a zero matrix) or if any returned value is
// non-finite.
func (e *Estimator) DominantTriplet(ctx context.Context, a mat.Matrix) (Triplet, Bound, error) {
	n, m := a.Dims()
	if n < 1 || m < 1 {
		return Triplet{}, Bound{}, fmt.Errorf("%w: %dx%d matrix", ErrInvalidDimension, n, m)
	}
	x0, err := unitvec.New(n, e.seed)
	if err != nil {
		return Triplet{}, Bound{}, fmt.Errorf("%w: %w", ErrDegenerateVector, err)
	}
	u, err := power.Iterate(ctx, a, x0, power.Iterations(e.epsilon, e.beta, m))
	if err != nil {
		if ctx.Err() != nil {
			return Triplet{}, Bound{}, err
		}
		return Triplet{}, Bound{}, fmt.Errorf("%w: %w", ErrDegenerateVector, err)
	}

	v := mat.NewVecDense(m, nil)
	v.MulVec(a.T(), u)
	sigma := v.Norm(2)
	if sigma == 0 {
		return Triplet{}, Bound{}, fmt.Errorf("%w: singular value is zero", ErrDegenerateVector)
	}
	v.ScaleVec(1/sigma, v)

	t := Triplet{U: u, Sigma: sigma, V: v}
	if !finite(sigma) || !finiteVec(u) || !finiteVec(v) {
		return Triplet{}, Bound{}, fmt.Errorf("%w: non-finite value in result", ErrDegenerateVector)
	}
	return t, e.Bound(m), nil
}

// Bound reports the theoretical error bounds implied by the configured
// parameters for a matrix with m columns:
//
//	OrthogonalDistance = epsilon / (alpha * m^beta)
//	Probability        = 1 - 2*alpha*sqrt(2m-1)
//
// Probability can be non-positive for poorly chosen alpha and m; the
// guarantee is then vacuous. It is returned as-is, not clamped.
func (e *Estimator) Bound(m int) Bound {
	mf := float64(m)
	return Bound{
		OrthogonalDistance: e.epsilon / (e.alpha * math.Pow(mf, e.beta)),
		Probability:        1 - 2*e.alpha*math.Sqrt(2*mf-1),
	}
}

// Deflate extracts up to k singular triplets of a in descending order by
// repeatedly estimating the dominant triplet of the residual
// a - sum(sigma*u*v^T) of the triplets found so far.
//
// Deflate stops early, without error, when the residual becomes numerically
// rank deficient before k triplets are found; callers decide how to treat a
// short result. The collected triplets feed RankK directly.
func (e *Estimator) Deflate(ctx context.Context, a mat.Matrix, k int) ([]Triplet, error) {
	if k < 1 {
		return nil, fmt.Errorf("%w: k=%d", ErrInvalidRank, k)
	}
	residual := mat.DenseCopyOf(a)
	triplets := make([]Triplet, 0, k)
	for range k {
		t, _, err := e.DominantTriplet(ctx, residual)
		if errors.Is(err, ErrDegenerateVector) {
			break
		}
		if err != nil {
			return nil, err
		}
		triplets = append(triplets, t)
		residual.RankOne(residual, -t.Sigma, t.U, t.V)
	}
	return triplets, nil
}

func (e *Estimator) init(opts ...Option) error {
	e.epsilon = 0.05
	e.alpha = 0.01
	e.beta = 1.0
	e.seed = DefaultSeed
	for _, opt := range opts {
		if err := opt(e); err != nil {
			return err
		}
	}
	return nil
}

func finite(x float64) bool {
	return !math.IsNaN(x) && !math.IsInf(x, 0)
}

func finiteVec(v *mat.VecDense) bool {
	for i := range v.Len() {
		if !finite(v.AtVec(i)) {
			return false
		}
	}
	return true
}
