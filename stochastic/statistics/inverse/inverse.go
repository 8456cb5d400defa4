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


// Package inverse draws values of continuous random variables by applying a
// quantile function (inverse CDF) to uniform values.
package inverse

import (
	"math"

	"github.com/0xsoniclabs/montecarlo/stochastic"
	"github.com/0xsoniclabs/montecarlo/stochastic/random"
	"github.com/0xsoniclabs/montecarlo/stochastic/statistics/discrete"
	"github.com/cockroachdb/errors"
)

// QuantileFunc maps a probability in [0,1) to a value of the random variable.
// It must be non-decreasing.
type QuantileFunc func(u float64) float64

// Sample draws one value using a single uniform value of src.
func Sample(q QuantileFunc, src random.Source) float64 {
	return q(src.Float64())
}

// SampleN draws n values in draw order.
func SampleN(q QuantileFunc, n int, src random.Source) ([]float64, error) {
	if q == nil {
		return nil, errors.Wrap(stochastic.ErrInvalidDistribution, "missing quantile function")
	}
	if n < 0 {
		return nil, errors.Wrapf(stochastic.ErrInvalidSampleSize, "negative sample size (%d)", n)
	}
	sample := make([]float64, n)
	for i := range sample {
		sample[i] = q(src.Float64())
	}
	return sample, nil
}

// Uniform returns the quantile function of the uniform distribution on [a,b).
func Uniform(a, b float64) QuantileFunc {
	return func(u float64) float64 {
		return a + (b-a)*u
	}
}

// Piece is one sub-density of a mixture. Quantile is the renormalised local
// quantile of the piece, i.e., it maps [0,1) onto the piece's own interval.
type Piece struct {
	Weight   float64
	Quantile QuantileFunc
}

// Mixture is a density made of pieces on disjoint intervals. The pieces must
// be ordered by their intervals for Quantile to be the inverse of the CDF.
type Mixture struct {
	pieces  []Piece
	weights []float64
	lower   []float64 // cumulative weight below each piece
}

// NewMixture validates the weights of the pieces as a probability mass function.
func NewMixture(pieces []Piece) (*Mixture, error) {
	weights := make([]float64, len(pieces))
	for i, p := range pieces {
		if p.Quantile == nil {
			return nil, errors.Wrapf(stochastic.ErrInvalidDistribution, "piece %d has no quantile function", i)
		}
		weights[i] = p.Weight
	}
	if err := discrete.Check(weights); err != nil {
		return nil, errors.Wrap(err, "invalid mixture weights")
	}
	lower := make([]float64, len(weights))
	for i := 1; i < len(weights); i++ {
		lower[i] = lower[i-1] + weights[i-1]
	}
	return &Mixture{
		pieces:  append([]Piece(nil), pieces...),
		weights: weights,
		lower:   lower,
	}, nil
}

// Quantile selects the piece i that contains u in the cumulative weights and
// inverts it locally with (u - F_{i-1}) / w_i. A draw needs a single uniform value.
func (m *Mixture) Quantile(u float64) float64 {
	i := discrete.Quantile(m.weights, u)
	local := (u - m.lower[i]) / m.weights[i]
	// rounding of the cumulative weights must not leave the local interval
	local = math.Min(math.Max(local, 0), math.Nextafter(1, 0))
	return m.pieces[i].Quantile(local)
}

// Sample draws one value of the mixture.
func (m *Mixture) Sample(src random.Source) float64 {
	return m.Quantile(src.Float64())
}

// Len returns the number of pieces.
func (m *Mixture) Len() int {
	return len(m.pieces)
}
