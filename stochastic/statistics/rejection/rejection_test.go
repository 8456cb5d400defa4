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


package rejection

import (
	"math"
	"testing"

	"github.com/0xsoniclabs/montecarlo/stochastic"
	"github.com/0xsoniclabs/montecarlo/stochastic/random"
	"github.com/0xsoniclabs/montecarlo/stochastic/statistics/exponential"
	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

// absoluteNormal is the density of |Z| for a standard normal Z.
func absoluteNormal(x float64) float64 {
	if x < 0 {
		return 0
	}
	return math.Sqrt(2/math.Pi) * math.Exp(-x*x/2)
}

var exponentialProposal = Proposal{
	Sample: func(src random.Source) float64 { return exponential.Sample(src, 1) },
	Density: func(x float64) float64 {
		if x < 0 {
			return 0
		}
		return math.Exp(-x)
	},
}

var uniformProposal = Proposal{
	Sample:  func(src random.Source) float64 { return src.Float64() },
	Density: func(float64) float64 { return 1 },
}

func TestSampler_AcceptanceDecision(t *testing.T) {
	ctrl := gomock.NewController(t)
	src := random.NewMockSource(ctrl)
	// target 2x on [0,1] against the uniform density with c=2 accepts x with probability x
	s, err := New(func(x float64) float64 { return 2 * x }, uniformProposal, 2)
	require.NoError(t, err)

	gomock.InOrder(
		src.EXPECT().Float64().Return(0.5), // proposal
		src.EXPECT().Float64().Return(0.9), // rejected
		src.EXPECT().Float64().Return(0.5), // proposal
		src.EXPECT().Float64().Return(0.5), // accepted at the boundary
	)
	x, attempts, err := s.Sample(src)
	require.NoError(t, err)
	assert.Equal(t, 0.5, x)
	assert.Equal(t, 2, attempts)
}

// TestSampler_AbsoluteNormal checks the acceptance rate 1/c and the mean sqrt(2/pi).
func TestSampler_AbsoluteNormal(t *testing.T) {
	c := math.Sqrt(2 * math.E / math.Pi)
	s, err := New(absoluteNormal, exponentialProposal, c, WithDominationCheck())
	require.NoError(t, err)
	assert.Equal(t, c, s.ExpectedAttempts())

	sample, stats, err := s.SampleN(random.New(2718), 10000)
	require.NoError(t, err)
	require.Len(t, sample, 10000)
	assert.Equal(t, 10000, stats.Accepted)
	assert.InEpsilon(t, 1/c, stats.AcceptanceRate(), 0.02)

	total := 0.0
	for _, x := range sample {
		require.GreaterOrEqual(t, x, 0.0)
		total += x
	}
	assert.InDelta(t, math.Sqrt(2/math.Pi), total/10000, 0.02)
}

func TestSampler_DominationViolated(t *testing.T) {
	s, err := New(func(float64) float64 { return 2 }, uniformProposal, 1, WithDominationCheck())
	require.NoError(t, err)
	_, attempts, err := s.Sample(random.New(1))
	assert.True(t, errors.Is(err, stochastic.ErrDominationViolated), "got %v", err)
	assert.Equal(t, 1, attempts)

	// without the check the violation goes unnoticed
	s, err = New(func(float64) float64 { return 2 }, uniformProposal, 1)
	require.NoError(t, err)
	_, _, err = s.Sample(random.New(1))
	assert.NoError(t, err)
}

func TestSampler_ExhaustsAttempts(t *testing.T) {
	s, err := New(func(float64) float64 { return 0 }, uniformProposal, 1, WithMaxAttempts(25))
	require.NoError(t, err)
	_, attempts, err := s.Sample(random.New(1))
	assert.True(t, errors.Is(err, stochastic.ErrNonConvergentSearch))
	assert.Equal(t, 25, attempts)

	sample, stats, err := s.SampleN(random.New(1), 3)
	assert.True(t, errors.Is(err, stochastic.ErrNonConvergentSearch))
	assert.Nil(t, sample)
	assert.Equal(t, 25, stats.Attempts)
}

func TestNew_Errors(t *testing.T) {
	_, err := New(nil, uniformProposal, 1)
	assert.True(t, errors.Is(err, stochastic.ErrInvalidDistribution))
	_, err = New(absoluteNormal, Proposal{}, 1)
	assert.True(t, errors.Is(err, stochastic.ErrInvalidDistribution))
	for _, c := range []float64{0, -1, math.NaN(), math.Inf(1)} {
		_, err = New(absoluteNormal, exponentialProposal, c)
		assert.True(t, errors.Is(err, stochastic.ErrInvalidArgument), "c=%v", c)
	}
	_, err = New(absoluteNormal, exponentialProposal, 2, WithMaxAttempts(0))
	assert.True(t, errors.Is(err, stochastic.ErrInvalidArgument))

	s, err := New(absoluteNormal, exponentialProposal, 2)
	require.NoError(t, err)
	_, _, err = s.SampleN(random.New(1), -1)
	assert.True(t, errors.Is(err, stochastic.ErrInvalidSampleSize))
}

func TestSample_EntryPoint(t *testing.T) {
	c := math.Sqrt(2 * math.E / math.Pi)
	a, err := Sample(absoluteNormal, exponentialProposal, c, 100, random.New(5))
	require.NoError(t, err)
	b, err := Sample(absoluteNormal, exponentialProposal, c, 100, random.New(5))
	require.NoError(t, err)
	assert.Equal(t, a, b)

	_, err = Sample(absoluteNormal, exponentialProposal, -1, 100, random.New(5))
	assert.True(t, errors.Is(err, stochastic.ErrInvalidArgument))
}

func TestStats_AcceptanceRate(t *testing.T) {
	assert.Equal(t, 0.0, Stats{}.AcceptanceRate())
	assert.Equal(t, 0.25, Stats{Accepted: 1, Attempts: 4}.AcceptanceRate())
}
