package test

import (
	"context"
	_ "embed"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	lowrank "github.com/yyyoichi/lowrank"
	"gonum.org/v1/gonum/mat"
)

//go:embed triplet_test_cases.json
var tripletTestCasesJSON []byte

func TestDominantTriplet_Cases(t *testing.T) {
	type testcase struct {
		Name  string `json:"name"`
		Input struct {
			Rows int       `json:"rows"`
			Cols int       `json:"cols"`
			Data []float64 `json:"data"`
		} `json:"input"`
		Expected struct {
			Sigma float64 `json:"sigma"`
			// Rank1 is sigma_1 * u_1 * v_1^T, which is invariant under the
			// simultaneous sign flip of u and v the estimator is free to pick.
			Rank1 []float64 `json:"rank1"`
		} `json:"expected"`
	}
	var test []testcase
	err := json.Unmarshal(tripletTestCasesJSON, &test)
	require.NoError(t, err)

	ctx := context.Background()
	for _, tt := range test {
		t.Run(tt.Name, func(t *testing.T) {
			a := mat.NewDense(tt.Input.Rows, tt.Input.Cols, tt.Input.Data)
			triplet, _, err := lowrank.DominantTriplet(ctx, a)
			require.NoError(t, err)

			assert.InDelta(t, tt.Expected.Sigma, triplet.Sigma, 1e-8, "Sigma")
			assert.InDelta(t, 1.0, triplet.U.Norm(2), 1e-9, "left vector norm")
			assert.InDelta(t, 1.0, triplet.V.Norm(2), 1e-9, "right vector norm")

			rank1, err := lowrank.RankK([]lowrank.Triplet{triplet}, 1)
			require.NoError(t, err)
			for i, want := range tt.Expected.Rank1 {
				got := rank1.At(i/tt.Input.Cols, i%tt.Input.Cols)
				assert.InDelta(t, want, got, 1e-8, "Rank1[%d]", i)
			}
		})
	}
}

func TestDominantTriplet_AgainstFullSVD(t *testing.T) {
	// The library SVD is the comparison oracle only; the estimator itself
	// never factorizes.
	testCases := []struct {
		name string
		rows int
		cols int
		data []float64
	}{
		{
			name: "3x3_asymmetric",
			rows: 3, cols: 3,
			data: []float64{4, 2, 1, 3, 5, 6, 7, 8, 9},
		},
		{
			name: "3x2_rectangular",
			rows: 3, cols: 2,
			data: []float64{1, 2, 3, 4, 5, 6},
		},
		{
			name: "2x3_rectangular",
			rows: 2, cols: 3,
			data: []float64{1, 2, 3, 4, 5, 6},
		},
	}

	ctx := context.Background()
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			a := mat.NewDense(tc.rows, tc.cols, tc.data)

			var svd mat.SVD
			require.True(t, svd.Factorize(a, mat.SVDThin))
			want := svd.Values(nil)[0]

			triplet, _, err := lowrank.DominantTriplet(ctx, a)
			require.NoError(t, err)
			assert.InEpsilon(t, want, triplet.Sigma, 1e-8)
		})
	}
}

func TestDominantTriplet_Properties(t *testing.T) {
	ctx := context.Background()

	t.Run("sigma_non_negative", func(t *testing.T) {
		a := mat.NewDense(2, 2, []float64{-4, 0, 0, -3})
		triplet, _, err := lowrank.DominantTriplet(ctx, a)
		require.NoError(t, err)
		assert.GreaterOrEqual(t, triplet.Sigma, 0.0)
		assert.InDelta(t, 4.0, triplet.Sigma, 1e-8)
	})

	t.Run("deterministic_across_invocations", func(t *testing.T) {
		a := mat.NewDense(3, 3, []float64{4, 2, 1, 3, 5, 6, 7, 8, 9})
		first, firstBound, err := lowrank.DominantTriplet(ctx, a, lowrank.WithSeed(99))
		require.NoError(t, err)
		second, secondBound, err := lowrank.DominantTriplet(ctx, a, lowrank.WithSeed(99))
		require.NoError(t, err)
		assert.Equal(t, first.Sigma, second.Sigma)
		assert.True(t, mat.Equal(first.U, second.U))
		assert.True(t, mat.Equal(first.V, second.V))
		assert.Equal(t, firstBound, secondBound)
	})

	t.Run("shared_matrix_different_seeds", func(t *testing.T) {
		// The input is read-only for the whole computation, so concurrent
		// estimates over the same matrix are safe.
		a := mat.NewDense(2, 2, []float64{4, 0, 0, 3})
		results := make([]float64, 4)
		done := make(chan struct{})
		for i := range results {
			go func(i int) {
				defer func() { done <- struct{}{} }()
				triplet, _, err := lowrank.DominantTriplet(ctx, a, lowrank.WithSeed(int64(i+1)))
				if err != nil {
					return
				}
				results[i] = triplet.Sigma
			}(i)
		}
		for range results {
			<-done
		}
		for i, sigma := range results {
			assert.InDelta(t, 4.0, sigma, 1e-6, "seed %d", i+1)
		}
	})
}
