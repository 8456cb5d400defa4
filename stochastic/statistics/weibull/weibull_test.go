// Copyright 2025 Sonic Labs
// This file is part of Aida Testing Infrastructure for Sonic
//
// Aida is free software: you can redistribute it and/or modify
// it under the terms of the GNU Lesser General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// Aida is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE. See the
// GNU Lesser General Public License for more details.
//
// You should have received a copy of the GNU Lesser General Public License
// along with Aida. If not, see <http://www.gnu.org/licenses/>.


package weibull

import (
	"math"
	"testing"

	"github.com/0xsoniclabs/montecarlo/stochastic"
	"github.com/0xsoniclabs/montecarlo/stochastic/random"
	"github.com/0xsoniclabs/montecarlo/stochastic/statistics/continuous"
	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/stat/distuv"
)

func TestWeibull_MatchesReference(t *testing.T) {
	params := [][2]float64{{1, 2}, {2, 0.5}, {0.5, 3}}
	for _, p := range params {
		lambda, k := p[0], p[1]
		ref := distuv.Weibull{Lambda: lambda, K: k}
		for i := 1; i < 100; i++ {
			u := float64(i) / 100
			x := Quantile(lambda, k, u)
			assert.InDelta(t, ref.Quantile(u), x, 1e-9)
			assert.InDelta(t, u, CDF(lambda, k, x), 1e-12)
		}
		assert.InDelta(t, ref.Mean(), Mean(lambda, k), 1e-12)
	}
	assert.Equal(t, 0.0, CDF(1, 2, -1))
	assert.Equal(t, 0.0, Quantile(1, 2, 0))
}

func TestWeibull_Check(t *testing.T) {
	assert.NoError(t, Check(1, 2))
	assert.True(t, errors.Is(Check(0, 2), stochastic.ErrInvalidArgument))
	assert.True(t, errors.Is(Check(1, -2), stochastic.ErrInvalidArgument))
	assert.True(t, errors.Is(Check(math.NaN(), 2), stochastic.ErrInvalidArgument))
}

// TestWeibull_SampleMean checks the sample mean for scale 1 and shape 2 against Gamma(1.5).
func TestWeibull_SampleMean(t *testing.T) {
	const n = 100000
	src := random.New(12)
	sample := make([]float64, n)
	total := 0.0
	for i := range sample {
		sample[i] = Sample(src, 1, 2)
		total += sample[i]
	}
	assert.InDelta(t, math.Gamma(1.5), total/n, 0.01)
	ks := continuous.KolmogorovSmirnov(sample, func(x float64) float64 { return CDF(1, 2, x) })
	assert.Less(t, ks, 1.63/math.Sqrt(n))
}

func TestTruncated_CDFAndQuantileAreInverse(t *testing.T) {
	for _, p := range [][2]float64{{1, 2}, {5, 0.5}, {0.3, 1}} {
		lambda, k := p[0], p[1]
		for i := 1; i < 100; i++ {
			u := float64(i) / 100
			assert.InDelta(t, u, TruncatedCDF(lambda, k, TruncatedQuantile(lambda, k, u)), 1e-9)
		}
		f := TruncatedECDF(lambda, k, 100)
		require.NoError(t, continuous.Check(f))
	}
	assert.Equal(t, 0.0, TruncatedQuantile(1, 2, 0))
	assert.Equal(t, 1.0, TruncatedQuantile(1, 2, 1))
	assert.Equal(t, 1.0, TruncatedCDF(1, 2, 2))
}
