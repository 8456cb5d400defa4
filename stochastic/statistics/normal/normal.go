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


// Package normal draws standard normal variates with the Box-Muller transform
// and correlated bivariate normal variates by a linear transform of them.
package normal

import (
	"math"

	"github.com/0xsoniclabs/montecarlo/stochastic"
	"github.com/0xsoniclabs/montecarlo/stochastic/random"
	"github.com/0xsoniclabs/montecarlo/stochastic/statistics/exponential"
	"github.com/0xsoniclabs/montecarlo/stochastic/statistics/rejection"
	"github.com/cockroachdb/errors"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat/distmv"
)

// BoxMuller returns two independent standard normal variates drawn from two
// uniform values of src. The squared radius is exponential with rate 1/2 and
// the angle is uniform in [0, 2*pi).
func BoxMuller(src random.Source) (float64, float64) {
	r := exponential.Quantile(0.5, src.Float64())
	theta := 2 * math.Pi * src.Float64()
	s := math.Sqrt(r)
	return s * math.Cos(theta), s * math.Sin(theta)
}

// SampleN draws n pairs of independent standard normal variates.
func SampleN(src random.Source, n int) ([][2]float64, error) {
	if n < 0 {
		return nil, errors.Wrapf(stochastic.ErrInvalidSampleSize, "negative sample size (%d)", n)
	}
	pairs := make([][2]float64, n)
	for i := range pairs {
		pairs[i][0], pairs[i][1] = BoxMuller(src)
	}
	return pairs, nil
}

// Proposal returns a normal distribution with mean mu and standard deviation
// sigma as a proposal for accept-reject sampling. Each draw uses the first
// variate of a Box-Muller pair.
func Proposal(mu, sigma float64) (rejection.Proposal, error) {
	if !(sigma > 0) || math.IsInf(sigma, 1) {
		return rejection.Proposal{}, errors.Wrapf(stochastic.ErrInvalidArgument, "standard deviation must be positive and finite (%v)", sigma)
	}
	return rejection.Proposal{
		Sample: func(src random.Source) float64 {
			z, _ := BoxMuller(src)
			return mu + sigma*z
		},
		Density: func(x float64) float64 {
			z := (x - mu) / sigma
			return math.Exp(-z*z/2) / (sigma * math.Sqrt(2*math.Pi))
		},
	}, nil
}

// Bivariate is the distribution of mean + A*z for a pair z of independent
// standard normal variates and a 2x2 mixing matrix A.
type Bivariate struct {
	mean   *mat.VecDense
	mixing *mat.Dense
}

// NewBivariate creates a bivariate normal distribution. The mixing matrix is
// used as given; MixingMatrix derives one from standard deviations and a correlation.
func NewBivariate(mean [2]float64, mixing mat.Matrix) (*Bivariate, error) {
	if mixing == nil {
		return nil, errors.Wrap(stochastic.ErrInvalidArgument, "missing mixing matrix")
	}
	if r, c := mixing.Dims(); r != 2 || c != 2 {
		return nil, errors.Wrapf(stochastic.ErrInvalidArgument, "mixing matrix must be 2x2, but is %dx%d", r, c)
	}
	return &Bivariate{
		mean:   mat.NewVecDense(2, []float64{mean[0], mean[1]}),
		mixing: mat.DenseCopyOf(mixing),
	}, nil
}

// Sample draws one pair using a single Box-Muller pair.
func (b *Bivariate) Sample(src random.Source) [2]float64 {
	z1, z2 := BoxMuller(src)
	z := mat.NewVecDense(2, []float64{z1, z2})
	var x mat.VecDense
	x.MulVec(b.mixing, z)
	x.AddVec(&x, b.mean)
	return [2]float64{x.AtVec(0), x.AtVec(1)}
}

// SampleN draws n pairs.
func (b *Bivariate) SampleN(src random.Source, n int) ([][2]float64, error) {
	if n < 0 {
		return nil, errors.Wrapf(stochastic.ErrInvalidSampleSize, "negative sample size (%d)", n)
	}
	pairs := make([][2]float64, n)
	for i := range pairs {
		pairs[i] = b.Sample(src)
	}
	return pairs, nil
}

// Mean returns the mean vector.
func (b *Bivariate) Mean() [2]float64 {
	return [2]float64{b.mean.AtVec(0), b.mean.AtVec(1)}
}

// Covariance returns A*A^T.
func (b *Bivariate) Covariance() *mat.SymDense {
	var cov mat.SymDense
	cov.SymOuterK(1, b.mixing)
	return &cov
}

func checkParameters(sigma1, sigma2, rho float64) error {
	if !(sigma1 > 0) || !(sigma2 > 0) || math.IsInf(sigma1, 1) || math.IsInf(sigma2, 1) {
		return errors.Wrapf(stochastic.ErrInvalidArgument, "standard deviations must be positive and finite (%v, %v)", sigma1, sigma2)
	}
	if !(rho >= -1 && rho <= 1) {
		return errors.Wrapf(stochastic.ErrInvalidArgument, "correlation must be in [-1,1] (%v)", rho)
	}
	return nil
}

// MixingMatrix returns the lower triangular matrix
//
//	[ sigma1                 0                      ]
//	[ rho*sigma2             sigma2*sqrt(1-rho^2)    ]
//
// which maps independent standard normals to a pair with standard deviations
// sigma1, sigma2 and correlation rho.
func MixingMatrix(sigma1, sigma2, rho float64) (*mat.Dense, error) {
	if err := checkParameters(sigma1, sigma2, rho); err != nil {
		return nil, err
	}
	return mat.NewDense(2, 2, []float64{
		sigma1, 0,
		rho * sigma2, sigma2 * math.Sqrt(1-rho*rho),
	}), nil
}

// Density returns the density of the bivariate normal distribution with the
// given mean, standard deviations and correlation. The correlation must be in (-1,1).
func Density(mean [2]float64, sigma1, sigma2, rho float64) (func(x, y float64) float64, error) {
	if err := checkParameters(sigma1, sigma2, rho); err != nil {
		return nil, err
	}
	cov := mat.NewSymDense(2, []float64{
		sigma1 * sigma1, rho * sigma1 * sigma2,
		rho * sigma1 * sigma2, sigma2 * sigma2,
	})
	dist, ok := distmv.NewNormal([]float64{mean[0], mean[1]}, cov, nil)
	if !ok {
		return nil, errors.Wrapf(stochastic.ErrInvalidArgument, "covariance is not positive definite (rho=%v)", rho)
	}
	return func(x, y float64) float64 {
		return dist.Prob([]float64{x, y})
	}, nil
}
