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


// Package exponential provides the exponential distribution with rate lambda
// and its one-sided truncation to the interval [0,1].
package exponential

import (
	"math"

	"github.com/0xsoniclabs/montecarlo/stochastic"
	"github.com/0xsoniclabs/montecarlo/stochastic/random"
	"github.com/0xsoniclabs/montecarlo/stochastic/statistics/continuous"
	"github.com/cockroachdb/errors"
)

const (
	newtonError      = 1e-9  // epsilon for Newton's convergences criteria
	newtonMaxStep    = 10000 // maximum number of iteration in the Newtonian
	newtonInitLambda = 1.0   // initial parameter in Newtonion's search
)

// Check validates the rate of an exponential distribution.
func Check(lambda float64) error {
	if !(lambda > 0) || math.IsInf(lambda, 1) {
		return errors.Wrapf(stochastic.ErrInvalidArgument, "rate must be positive and finite (%v)", lambda)
	}
	return nil
}

// CDF is the cumulative distribution function of the exponential distribution.
func CDF(lambda float64, x float64) float64 {
	if x <= 0 {
		return 0
	}
	return -math.Expm1(-lambda * x)
}

// Quantile is the inverse cumulative distribution function, -ln(1-p)/lambda.
func Quantile(lambda float64, p float64) float64 {
	return -math.Log1p(-p) / lambda
}

// Sample draws an exponentially distributed value using a single uniform value of src.
func Sample(src random.Source, lambda float64) float64 {
	return Quantile(lambda, src.Float64())
}

// SampleN draws n exponentially distributed values.
func SampleN(src random.Source, lambda float64, n int) ([]float64, error) {
	if err := Check(lambda); err != nil {
		return nil, err
	}
	if n < 0 {
		return nil, errors.Wrapf(stochastic.ErrInvalidSampleSize, "negative sample size (%d)", n)
	}
	sample := make([]float64, n)
	for i := range sample {
		sample[i] = Sample(src, lambda)
	}
	return sample, nil
}

// Mean returns the expected value 1/lambda.
func Mean(lambda float64) float64 {
	return 1 / lambda
}

// TruncatedCDF is the cumulative distribution function for the truncated exponential distribution with a bound of 1.
func TruncatedCDF(lambda float64, x float64) float64 {
	switch {
	case x <= 0:
		return 0
	case x >= 1:
		return 1
	}
	return math.Expm1(-lambda*x) / math.Expm1(-lambda)
}

// TruncatedQuantile is the inverse of TruncatedCDF.
func TruncatedQuantile(lambda float64, p float64) float64 {
	return math.Log1p(p*math.Expm1(-lambda)) / -lambda
}

// TruncatedSample draws a value in [0,1] of the truncated exponential distribution.
func TruncatedSample(src random.Source, lambda float64) float64 {
	return TruncatedQuantile(lambda, src.Float64())
}

// TruncatedMean is the expected value of the truncated exponential distribution.
func TruncatedMean(lambda float64) float64 {
	return 1/lambda - 1/math.Expm1(lambda)
}

// TruncatedECDF is a piecewise linear representation of the truncated
// cumulative distribution function with n equidistant segments.
func TruncatedECDF(lambda float64, n int) [][2]float64 {
	fn := make([][2]float64, 0, n+1)
	for i := 0; i <= n; i++ {
		x := float64(i) / float64(n)
		fn = append(fn, [2]float64{x, TruncatedCDF(lambda, x)})
	}
	return fn
}

// mle is the Maximum Likelihood Estimation function for finding a suitable lambda.
func mle(lambda float64, mean float64) (float64, error) {
	if math.IsNaN(lambda) || math.IsNaN(mean) {
		return 0, errors.Wrap(stochastic.ErrInvalidArgument, "lambda or mean values are not a number")
	}
	t := 1 / math.Expm1(lambda)
	// ensure that exponent calculation is stable
	if math.IsNaN(t) {
		// If numerical limits are reached, replace with symbolic limits.
		if lambda >= 1.0 {
			t = 0
		} else {
			// assuming that for very small values of lambda, a NaN is produced.
			t = 1.0
		}
	}
	return 1/lambda - t - mean, nil
}

// dMLE computes the derivative of the Maximum Likelihood Estimation function.
func dMLE(lambda float64) (float64, error) {
	if math.IsNaN(lambda) {
		return 0, errors.Wrap(stochastic.ErrInvalidArgument, "lambda is not a number")
	}
	t := math.Exp(lambda) / math.Pow(math.Expm1(lambda), 2)
	// ensure that exponent calculation is stable
	if math.IsNaN(t) {
		// If numerical limits are reached, replace by symbolic limits.
		t = 1.0
	}
	return t - 1/(lambda*lambda), nil
}

// ApproximateLambda performs a classical Newtonian to determine the lambda
// of a truncated exponential distribution whose mean matches the mean of the
// given piecewise linear CDF. The MLE function is transcendental and has no
// closed form. The function returns either lambda if it is in the epsilon
// environment (newtonError) or an error if the maximal number of steps for
// the convergence criteria is exceeded.
func ApproximateLambda(points [][2]float64) (float64, error) {
	if err := continuous.Check(points); err != nil {
		return 0, err
	}
	m := continuous.Mean(points)
	l := newtonInitLambda
	for range newtonMaxStep {
		mleValue, err := mle(l, m)
		if err != nil {
			return 0, err
		}

		dMleValue, err := dMLE(l)
		if err != nil {
			return 0, err
		}

		l = l - mleValue/dMleValue
		if math.Abs(mleValue) < newtonError {
			return l, nil
		}
	}
	return 0.0, errors.Wrapf(stochastic.ErrNonConvergentSearch, "failed to converge after %v steps", newtonMaxStep)
}
