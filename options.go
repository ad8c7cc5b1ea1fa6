package lowrank

import "fmt"

type Option func(*Estimator) error

// WithEpsilon specifies the accuracy parameter epsilon in (0, 1].
// Smaller values tighten the orthogonal distance bound but raise the fixed
// iteration count roughly as ln(1/epsilon)/epsilon.
//
// epsilon = 0 is rejected: the iteration count derived from it is unbounded.
func WithEpsilon(epsilon float64) Option {
	return func(e *Estimator) error {
		if !(epsilon > 0 && epsilon <= 1) {
			return fmt.Errorf("%w: epsilon %v not in (0,1]", ErrInvalidParameter, epsilon)
		}
		e.epsilon = epsilon
		return nil
	}
}

// WithAlpha specifies the failure-probability parameter alpha in (0, 1].
// Smaller values tighten the orthogonal distance bound and raise the success
// probability 1 - 2*alpha*sqrt(2m-1) without affecting the iteration count.
//
// alpha = 0 is rejected: it drives the distance bound to +Inf.
func WithAlpha(alpha float64) Option {
	return func(e *Estimator) error {
		if !(alpha > 0 && alpha <= 1) {
			return fmt.Errorf("%w: alpha %v not in (0,1]", ErrInvalidParameter, alpha)
		}
		e.alpha = alpha
		return nil
	}
}

// WithBeta specifies the exponent beta >= 0.5 applied to the column count in
// the iteration budget and the distance bound. Larger values buy accuracy
// with more iterations.
func WithBeta(beta float64) Option {
	return func(e *Estimator) error {
		if !(beta >= 0.5) {
			return fmt.Errorf("%w: beta %v below 0.5", ErrInvalidParameter, beta)
		}
		e.beta = beta
		return nil
	}
}

// WithSeed specifies the seed for the random start vector. Identical
// (matrix, parameters, seed) inputs reproduce identical results.
func WithSeed(seed int64) Option {
	return func(e *Estimator) error {
		e.seed = seed
		return nil
	}
}
