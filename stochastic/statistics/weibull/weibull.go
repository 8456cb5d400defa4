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


// Package weibull provides the Weibull distribution with scale lambda and
// shape k, and its truncation to the interval [0,1].
package weibull

import (
	"math"

	"github.com/0xsoniclabs/montecarlo/stochastic"
	"github.com/0xsoniclabs/montecarlo/stochastic/random"
	"github.com/cockroachdb/errors"
)

// Check validates scale and shape.
func Check(lambda, k float64) error {
	if !(lambda > 0) || math.IsInf(lambda, 1) {
		return errors.Wrapf(stochastic.ErrInvalidArgument, "scale must be positive and finite (%v)", lambda)
	}
	if !(k > 0) || math.IsInf(k, 1) {
		return errors.Wrapf(stochastic.ErrInvalidArgument, "shape must be positive and finite (%v)", k)
	}
	return nil
}

// CDF returns 1-exp(-(x/lambda)^k).
func CDF(lambda, k, x float64) float64 {
	if x <= 0 {
		return 0
	}
	return -math.Expm1(-math.Pow(x/lambda, k))
}

// Quantile returns lambda*(-ln(1-p))^(1/k).
func Quantile(lambda, k, p float64) float64 {
	if p <= 0 {
		return 0
	}
	return lambda * math.Pow(-math.Log1p(-p), 1/k)
}

// Sample draws a value using a single uniform value of src.
func Sample(src random.Source, lambda, k float64) float64 {
	return Quantile(lambda, k, src.Float64())
}

// Mean returns lambda*Gamma(1+1/k).
func Mean(lambda, k float64) float64 {
	return lambda * math.Gamma(1+1/k)
}

// TruncatedCDF is the CDF of a Weibull variable with rate lambda conditioned on [0,1].
func TruncatedCDF(lambda, k, x float64) float64 {
	if x <= 0 {
		return 0
	}
	if x >= 1 {
		return 1
	}
	return math.Expm1(-lambda*math.Pow(x, k)) / math.Expm1(-lambda)
}

// TruncatedQuantile is the inverse of TruncatedCDF.
func TruncatedQuantile(lambda, k, p float64) float64 {
	if p <= 0 {
		return 0
	}
	if p >= 1 {
		return 1
	}
	v := -math.Log1p(p*math.Expm1(-lambda)) / lambda
	if v <= 0 {
		return 0
	}
	return math.Pow(v, 1.0/k)
}

// TruncatedECDF returns TruncatedCDF as a piecewise linear function with n segments.
func TruncatedECDF(lambda, k float64, n int) [][2]float64 {
	fn := make([][2]float64, 0, n+1)
	for i := 0; i <= n; i++ {
		x := float64(i) / float64(n)
		fn = append(fn, [2]float64{x, TruncatedCDF(lambda, k, x)})
	}
	return fn
}
