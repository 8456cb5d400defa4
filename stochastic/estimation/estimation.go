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


// Package estimation computes Monte Carlo estimates of expectations E[phi(X)]
// with normal-approximation confidence intervals. Every call draws its own
// sample and keeps no state between calls.
package estimation

import (
	"math"

	"github.com/0xsoniclabs/montecarlo/stochastic"
	"github.com/0xsoniclabs/montecarlo/stochastic/random"
	"github.com/0xsoniclabs/montecarlo/utils/analytics"
	"github.com/cockroachdb/errors"
	"gonum.org/v1/gonum/stat"
	"gonum.org/v1/gonum/stat/distuv"
)

// Draw produces one value of a random variable from a uniform source.
type Draw[T any] func(src random.Source) (T, error)

// Result is a Monte Carlo estimate with its confidence interval.
type Result struct {
	N          int     `json:"n"`
	Mean       float64 `json:"mean"`
	Variance   float64 `json:"variance"`
	StdDev     float64 `json:"stddev"`
	HalfWidth  float64 `json:"halfWidth"`
	Confidence float64 `json:"confidence"`
	Z          float64 `json:"z"`
}

// Interval returns the bounds of the confidence interval.
func (r Result) Interval() (float64, float64) {
	return r.Mean - r.HalfWidth, r.Mean + r.HalfWidth
}

// Covers reports whether v lies in the confidence interval.
func (r Result) Covers(v float64) bool {
	lo, hi := r.Interval()
	return lo <= v && v <= hi
}

// Standardize returns the deviation of the estimate from a theoretical mean in
// units of the theoretical standard error sqrt(variance/N).
func (r Result) Standardize(mean, variance float64) float64 {
	return (r.Mean - mean) / math.Sqrt(variance/float64(r.N))
}

// ZScore returns the two-sided z-value for a confidence level. The common
// levels use their tabulated values, 0.95 gives exactly 1.96.
func ZScore(confidence float64) (float64, error) {
	if !(confidence > 0 && confidence < 1) {
		return 0, errors.Wrapf(stochastic.ErrInvalidConfidence, "confidence level must be in (0,1) (%v)", confidence)
	}
	switch confidence {
	case 0.90:
		return 1.645, nil
	case stochastic.DefaultConfidence:
		return stochastic.Z95, nil
	case 0.99:
		return 2.576, nil
	}
	return distuv.UnitNormal.Quantile(1 - (1-confidence)/2), nil
}

// Estimate draws n values, applies phi, and returns the sample mean, the
// sample standard deviation (n-1 denominator), and the half-width
// z*sigma/sqrt(n) of the confidence interval. A failing draw aborts the
// estimate without a result.
func Estimate[T any](src random.Source, draw Draw[T], phi func(T) float64, n int, confidence float64) (Result, error) {
	if n < 2 {
		return Result{}, errors.Wrapf(stochastic.ErrInvalidSampleSize, "at least two draws are needed for a variance (%d)", n)
	}
	z, err := ZScore(confidence)
	if err != nil {
		return Result{}, err
	}
	if draw == nil || phi == nil {
		return Result{}, errors.Wrap(stochastic.ErrInvalidArgument, "missing sampler or test function")
	}
	stats := analytics.NewIncrementalStats()
	for i := range n {
		x, err := draw(src)
		if err != nil {
			return Result{}, errors.Wrapf(err, "draw %d failed", i)
		}
		stats.Add(phi(x))
	}
	sigma := stats.StdDev()
	return Result{
		N:          n,
		Mean:       stats.Mean(),
		Variance:   stats.Variance(),
		StdDev:     sigma,
		HalfWidth:  z * sigma / math.Sqrt(float64(n)),
		Confidence: confidence,
		Z:          z,
	}, nil
}

// MonteCarloEstimate returns the estimated mean of phi and the half-width of its confidence interval.
func MonteCarloEstimate[T any](draw Draw[T], phi func(T) float64, n int, confidence float64, src random.Source) (float64, float64, error) {
	r, err := Estimate(src, draw, phi, n, confidence)
	if err != nil {
		return 0, 0, err
	}
	return r.Mean, r.HalfWidth, nil
}

// Curve runs one independent estimate per sample size.
func Curve[T any](src random.Source, draw Draw[T], phi func(T) float64, sizes []int, confidence float64) ([]Result, error) {
	results := make([]Result, 0, len(sizes))
	for _, n := range sizes {
		r, err := Estimate(src, draw, phi, n, confidence)
		if err != nil {
			return nil, errors.Wrapf(err, "estimate for n=%d", n)
		}
		results = append(results, r)
	}
	return results, nil
}

// LogLogSlope regresses log(half-width) on log(n). For Monte Carlo estimates
// the slope is close to -1/2.
func LogLogSlope(results []Result) (float64, error) {
	if len(results) < 2 {
		return 0, errors.Wrapf(stochastic.ErrInvalidSampleSize, "regression needs at least two estimates (%d)", len(results))
	}
	xs := make([]float64, len(results))
	ys := make([]float64, len(results))
	for i, r := range results {
		if !(r.HalfWidth > 0) || r.N < 1 {
			return 0, errors.Wrapf(stochastic.ErrInvalidArgument, "estimate %d has no positive half-width (%v)", i, r.HalfWidth)
		}
		xs[i] = math.Log(float64(r.N))
		ys[i] = math.Log(r.HalfWidth)
	}
	if stat.Variance(xs, nil) == 0 {
		return 0, errors.Wrap(stochastic.ErrInvalidSampleSize, "regression needs distinct sample sizes")
	}
	_, slope := stat.LinearRegression(xs, ys, nil, false)
	return slope, nil
}

// SearchConfig controls the sample-size search.
type SearchConfig struct {
	Start         int     // first sample size
	Growth        float64 // factor between consecutive sample sizes
	MaxIterations int     // cap on the number of estimates
	Confidence    float64
}

// DefaultSearchConfig doubles the sample size from 100 for at most 20 rounds.
func DefaultSearchConfig() SearchConfig {
	return SearchConfig{
		Start:         100,
		Growth:        2,
		MaxIterations: 20,
		Confidence:    stochastic.DefaultConfidence,
	}
}

// Search grows the sample size geometrically until the half-width of the
// confidence interval drops to target. The empirical variance fluctuates with
// n, so the search is capped at MaxIterations estimates.
func Search[T any](src random.Source, draw Draw[T], phi func(T) float64, target float64, cfg SearchConfig) (Result, error) {
	if !(target > 0) {
		return Result{}, errors.Wrapf(stochastic.ErrInvalidArgument, "target half-width must be positive (%v)", target)
	}
	if cfg.Start < 2 {
		return Result{}, errors.Wrapf(stochastic.ErrInvalidSampleSize, "start sample size too small (%d)", cfg.Start)
	}
	if !(cfg.Growth > 1) || math.IsInf(cfg.Growth, 1) {
		return Result{}, errors.Wrapf(stochastic.ErrInvalidArgument, "growth factor must be greater than one (%v)", cfg.Growth)
	}
	if cfg.MaxIterations < 1 {
		return Result{}, errors.Wrapf(stochastic.ErrInvalidArgument, "maximum number of iterations must be positive (%d)", cfg.MaxIterations)
	}
	n := cfg.Start
	var last Result
	for range cfg.MaxIterations {
		r, err := Estimate(src, draw, phi, n, cfg.Confidence)
		if err != nil {
			return Result{}, err
		}
		if r.HalfWidth <= target {
			return r, nil
		}
		last = r
		n = max(n+1, int(math.Ceil(float64(n)*cfg.Growth)))
	}
	return Result{}, errors.Wrapf(stochastic.ErrNonConvergentSearch, "half-width %v at n=%d still above %v after %d iterations", last.HalfWidth, last.N, target, cfg.MaxIterations)
}
