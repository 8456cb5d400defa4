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


package experiments

import (
	"math"
	"testing"

	"github.com/0xsoniclabs/montecarlo/stochastic"
	"github.com/0xsoniclabs/montecarlo/stochastic/estimation"
	"github.com/0xsoniclabs/montecarlo/stochastic/random"
	"github.com/0xsoniclabs/montecarlo/stochastic/statistics/rejection"
	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func TestNames_AreSortedAndComplete(t *testing.T) {
	names := Names()
	assert.Equal(t, []string{
		"absolute-normal",
		"bivariate",
		"box-muller",
		"discrete",
		"exponential",
		"mixture",
		"mixture-grid",
		"unit-ball",
		"unit-disk",
		"weibull",
	}, names)
}

func TestLookup_UnknownExperiment(t *testing.T) {
	_, err := Lookup("no-such-experiment")
	assert.True(t, errors.Is(err, stochastic.ErrInvalidArgument))
}

func TestLookup_RejectionOptions(t *testing.T) {
	_, err := Lookup("unit-ball", rejection.WithMaxAttempts(0))
	assert.True(t, errors.Is(err, stochastic.ErrInvalidArgument), "got %v", err)

	e, err := Lookup("unit-disk", rejection.WithMaxAttempts(1))
	require.NoError(t, err)

	// a corner of the bounding square is outside the disk
	ctrl := gomock.NewController(t)
	src := random.NewMockSource(ctrl)
	src.EXPECT().Float64().Return(0.999).Times(2)
	_, err = e.Draw(src)
	assert.True(t, errors.Is(err, stochastic.ErrNonConvergentSearch), "got %v", err)

	// options are ignored by experiments without rejection
	_, err = Lookup("exponential", rejection.WithMaxAttempts(1))
	assert.NoError(t, err)
}

// TestExperiments_ConvergeToExpectation runs every experiment and compares the
// estimate with the known expectation in units of the theoretical standard error.
func TestExperiments_ConvergeToExpectation(t *testing.T) {
	for _, name := range Names() {
		t.Run(name, func(t *testing.T) {
			e, err := Lookup(name)
			require.NoError(t, err)
			assert.Equal(t, name, e.Name)
			assert.NotEmpty(t, e.Description)
			require.Greater(t, e.Variance, 0.0)

			src := random.New(20250101)
			x, err := e.Draw(src)
			require.NoError(t, err)
			assert.Len(t, x, e.Dimension)

			r, err := e.Run(src, 20000, stochastic.DefaultConfidence)
			require.NoError(t, err)
			assert.Less(t, math.Abs(r.Standardize(e.Expected, e.Variance)), 4.0,
				"estimate %v, expected %v", r.Mean, e.Expected)
			assert.InEpsilon(t, e.Variance, r.Variance, 0.1)
		})
	}
}

func TestExperiments_AreReproducible(t *testing.T) {
	e, err := Lookup("absolute-normal")
	require.NoError(t, err)
	a, err := e.Run(random.New(5), 1000, 0.95)
	require.NoError(t, err)
	b, err := e.Run(random.New(5), 1000, 0.95)
	require.NoError(t, err)
	assert.Equal(t, a, b)
}

func TestExperiment_CurveAndSearch(t *testing.T) {
	e, err := Lookup("unit-disk")
	require.NoError(t, err)

	results, err := e.Curve(random.New(8), []int{250, 1000, 4000, 16000}, 0.95)
	require.NoError(t, err)
	slope, err := estimation.LogLogSlope(results)
	require.NoError(t, err)
	assert.InDelta(t, -0.5, slope, 0.1)

	r, err := e.Search(random.New(8), 0.005, estimation.DefaultSearchConfig())
	require.NoError(t, err)
	assert.LessOrEqual(t, r.HalfWidth, 0.005)
	assert.InDelta(t, 0.5, r.Mean, 0.01)
}

func TestMixtureCDF_MatchesPieces(t *testing.T) {
	assert.Equal(t, 0.0, mixtureCDF(-1))
	assert.InDelta(t, 0.2, mixtureCDF(1), 1e-12)
	assert.InDelta(t, 0.7, mixtureCDF(2), 1e-12)
	assert.InDelta(t, 1.0, mixtureCDF(4), 1e-12)
	assert.Equal(t, 1.0, mixtureCDF(5))
}
