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

package discrete

import (
	"math"

	"github.com/0xsoniclabs/montecarlo/stochastic"
	"github.com/0xsoniclabs/montecarlo/stochastic/random"
	"github.com/cockroachdb/errors"
)

// Check checks if the given probability mass function (pmf) of a
// discrete finite random variable is valid. A valid pmf is not empty,
// has all probabilities in the range [0,1], and the sum of all
// probabilities is one.
func Check(f []float64) error {
	if len(f) == 0 {
		return errors.Wrap(stochastic.ErrInvalidDistribution, "pmf is empty")
	}
	total := 0.0
	for i, x := range f {
		if x < 0.0 || x > 1.0 || math.IsNaN(x) {
			return errors.Wrapf(stochastic.ErrInvalidDistribution, "invalid probability (%v) at position %d", x, i)
		}
		total += x
	}
	if math.Abs(total-1.0) > stochastic.ProbabilityEps {
		return errors.Wrapf(stochastic.ErrInvalidDistribution, "total is not one (%v)", total)
	}
	return nil
}

// Quantile computes the quantile (inverse CDF) for a discrete finite random variable
// given by its pmf. It walks the cumulative partition in the given order and returns
// the first outcome with positive probability whose cumulative upper bound is at
// least u. Breakpoints are upper-bound inclusive: u equal to the cumulative
// probability up to and including i selects i. If rounding leaves u above the
// total, the last outcome with positive probability is returned. If all
// probabilities are zero, it returns 0.
func Quantile(f []float64, u float64) int {
	sum := 0.0 // Kahan's summation algorithm for probability sum
	c := 0.0   // compensation term of Kahan's algorithm
	lastPositive := -1
	for i, p := range f {
		y := p - c
		t := sum + y
		c = (t - sum) - y
		sum = t
		if p <= 0.0 {
			continue
		}
		if u <= sum {
			return i
		}
		lastPositive = i
	}
	if lastPositive != -1 {
		return lastPositive
	}
	return 0
}

// Outcome is a value of a discrete random variable with its probability.
type Outcome[T any] struct {
	Value T
	P     float64
}

// Distribution is a validated discrete finite distribution.
type Distribution[T any] struct {
	values []T
	pmf    []float64
}

// New creates a distribution from an ordered list of outcomes. The order
// determines the cumulative partition used for sampling.
func New[T any](outcomes []Outcome[T]) (*Distribution[T], error) {
	values := make([]T, len(outcomes))
	pmf := make([]float64, len(outcomes))
	for i, o := range outcomes {
		values[i] = o.Value
		pmf[i] = o.P
	}
	if err := Check(pmf); err != nil {
		return nil, err
	}
	return &Distribution[T]{values: values, pmf: pmf}, nil
}

// Sample draws one outcome using a single uniform value of src.
func (d *Distribution[T]) Sample(src random.Source) T {
	return d.values[Quantile(d.pmf, src.Float64())]
}

// SampleN draws n outcomes in draw order.
func (d *Distribution[T]) SampleN(src random.Source, n int) ([]T, error) {
	if n < 0 {
		return nil, errors.Wrapf(stochastic.ErrInvalidSampleSize, "negative sample size (%d)", n)
	}
	sample := make([]T, n)
	for i := range n {
		sample[i] = d.Sample(src)
	}
	return sample, nil
}

// Expectation returns the exact expected value of f(X).
func (d *Distribution[T]) Expectation(f func(T) float64) float64 {
	total := 0.0
	for i, v := range d.values {
		total += d.pmf[i] * f(v)
	}
	return total
}

// Values returns a copy of the outcome values in partition order.
func (d *Distribution[T]) Values() []T {
	return append([]T(nil), d.values...)
}

// Probabilities returns a copy of the pmf in partition order.
func (d *Distribution[T]) Probabilities() []float64 {
	return append([]float64(nil), d.pmf...)
}

// Sample draws n outcomes from the distribution given by the outcome list.
func Sample[T any](outcomes []Outcome[T], n int, src random.Source) ([]T, error) {
	d, err := New(outcomes)
	if err != nil {
		return nil, err
	}
	return d.SampleN(src, n)
}
