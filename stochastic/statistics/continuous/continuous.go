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


// Package continuous handles cumulative distribution functions of continuous
// random variables that are only known numerically: piecewise-linear CDFs,
// tabulated CDFs inverted on a grid, and empirical CDFs of samples.
package continuous

import (
	"math"
	"slices"
	"sort"

	"github.com/0xsoniclabs/montecarlo/stochastic"
	"github.com/0xsoniclabs/montecarlo/stochastic/random"
	"github.com/cockroachdb/errors"
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/simplify"
)

// CDF computes the Cumulative Distribution Function of parameter x
// for a given piecewise linear function. The piecewise linear function
// is given as a list of points (x_i, y_i) with strictly increasing x_i and
// non-decreasing y_i. The first point has y=0 and the last point has y=1.
// Left of the first point the CDF is zero, right of the last point it is one.
func CDF(f [][2]float64, x float64) float64 {
	n := len(f)
	if n == 0 || x <= f[0][0] {
		return 0.0
	}
	if x >= f[n-1][0] {
		return 1.0
	}
	// first point whose abscissa is not smaller than x
	i := sort.Search(n, func(j int) bool { return f[j][0] >= x })
	scale := (x - f[i-1][0]) / (f[i][0] - f[i-1][0])
	return f[i-1][1] + scale*(f[i][1]-f[i-1][1])
}

// Quantile computes the inverse Cumulative Distribution Function of parameter u
// for a cdf given as a piecewise linear function.
func Quantile(f [][2]float64, u float64) float64 {
	n := len(f)
	if n == 0 {
		return 0.0
	}
	if u <= 0 {
		return f[0][0]
	}
	if u >= 1 {
		return f[n-1][0]
	}
	i := sort.Search(n, func(j int) bool { return f[j][1] >= u })
	if i == n {
		return f[n-1][0]
	}
	scale := (u - f[i-1][1]) / (f[i][1] - f[i-1][1])
	return f[i-1][0] + scale*(f[i][0]-f[i-1][0])
}

// Sample draws a value from a piecewise linear CDF using inverse transform sampling.
func Sample(src random.Source, f [][2]float64) float64 {
	return Quantile(f, src.Float64())
}

// Check whether the piecewise linear function is valid as a CDF.
// The function must start at probability zero and end at probability one.
// The abscissas must be strictly increasing and the probabilities must not decrease.
func Check(f [][2]float64) error {
	if len(f) < 2 {
		return errors.Wrap(stochastic.ErrInvalidDistribution, "CDF must have at least start and end point")
	}
	if f[0][1] != 0.0 {
		return errors.Wrapf(stochastic.ErrInvalidDistribution, "CDF must start with probability zero, but starts at (%v,%v)", f[0][0], f[0][1])
	}
	last := len(f) - 1
	if f[last][1] != 1.0 {
		return errors.Wrapf(stochastic.ErrInvalidDistribution, "CDF must end with probability one, but ends at (%v,%v)", f[last][0], f[last][1])
	}
	for i := range len(f) - 1 {
		if math.IsNaN(f[i][0]) || math.IsNaN(f[i][1]) {
			return errors.Wrapf(stochastic.ErrInvalidDistribution, "CDF point %v is not a number", i)
		}
		if f[i][0] >= f[i+1][0] || f[i][1] > f[i+1][1] {
			return errors.Wrapf(stochastic.ErrInvalidDistribution, "CDF points must be monotonically increasing, but point %v (%v,%v) is not smaller than point %v (%v,%v)", i, f[i][0], f[i][1], i+1, f[i+1][0], f[i+1][1])
		}
	}
	return nil
}

// Mean computes the expected value of a piecewise linear CDF.
// On each segment the density is constant, so the segment contributes its
// probability mass times its midpoint.
func Mean(f [][2]float64) float64 {
	mean := 0.0
	for i := range len(f) - 1 {
		mean += (f[i+1][1] - f[i][1]) * (f[i][0] + f[i+1][0]) / 2
	}
	return mean
}

// GridTolerance is the largest gap between one and the last tabulated CDF value of a grid.
const GridTolerance = 1e-6

// Grid inverts a CDF numerically. The CDF is tabulated once on an
// equidistant grid and the quantile of u is the first grid abscissa whose
// CDF value exceeds u. The resolution of the grid bounds the error of the
// quantile to (hi-lo)/(points-1).
type Grid struct {
	xs []float64
	ys []float64
}

// NewGrid tabulates cdf on points equidistant abscissas in [lo,hi].
func NewGrid(cdf func(float64) float64, lo, hi float64, points int) (*Grid, error) {
	if points < 2 {
		return nil, errors.Wrapf(stochastic.ErrInvalidArgument, "grid needs at least two points (%d)", points)
	}
	if !(lo < hi) || math.IsInf(lo, 0) || math.IsInf(hi, 0) {
		return nil, errors.Wrapf(stochastic.ErrInvalidArgument, "invalid grid range [%v,%v]", lo, hi)
	}
	g := &Grid{
		xs: make([]float64, points),
		ys: make([]float64, points),
	}
	step := (hi - lo) / float64(points-1)
	for i := range points {
		x := lo + float64(i)*step
		if i == points-1 {
			x = hi
		}
		y := cdf(x)
		if math.IsNaN(y) || y < 0 || y > 1+GridTolerance {
			return nil, errors.Wrapf(stochastic.ErrInvalidDistribution, "CDF value %v at %v is not a probability", y, x)
		}
		if i > 0 && y < g.ys[i-1] {
			return nil, errors.Wrapf(stochastic.ErrInvalidDistribution, "CDF decreases between %v and %v", g.xs[i-1], x)
		}
		g.xs[i] = x
		g.ys[i] = y
	}
	if g.ys[points-1] < 1-GridTolerance {
		return nil, errors.Wrapf(stochastic.ErrNonConvergentSearch, "CDF reaches only %v at the grid end %v", g.ys[points-1], hi)
	}
	return g, nil
}

// Quantile returns the first grid abscissa whose CDF value exceeds u.
func (g *Grid) Quantile(u float64) float64 {
	i := sort.Search(len(g.ys), func(j int) bool { return g.ys[j] > u })
	if i == len(g.ys) {
		return g.xs[len(g.xs)-1]
	}
	return g.xs[i]
}

// Sample draws a value using a single uniform value of src.
func (g *Grid) Sample(src random.Source) float64 {
	return g.Quantile(src.Float64())
}

// Len returns the number of grid points.
func (g *Grid) Len() int {
	return len(g.xs)
}

// ToECDF computes the empirical cumulative distribution function (ECDF) of a
// sample as a piecewise linear function. The ECDF starts at the smallest value
// with probability zero and passes through (v, F_n(v)) for every further
// distinct value v. It is compressed with the Visvalingam-Whyatt algorithm to
// at most the given number of points. See:
// https://en.wikipedia.org/wiki/Visvalingam-Whyatt_algorithm
func ToECDF(samples []float64, points int) ([][2]float64, error) {
	if points < 2 {
		return nil, errors.Wrapf(stochastic.ErrInvalidArgument, "ECDF needs at least two points (%d)", points)
	}
	sorted := slices.Clone(samples)
	slices.Sort(sorted)
	n := len(sorted)
	if n == 0 || sorted[0] == sorted[n-1] {
		return nil, errors.Wrap(stochastic.ErrInvalidSampleSize, "ECDF needs at least two distinct values")
	}
	if math.IsNaN(sorted[0]) {
		return nil, errors.Wrap(stochastic.ErrInvalidArgument, "sample contains NaN")
	}
	ls := orb.LineString{{sorted[0], 0.0}}
	for i := range n {
		if sorted[i] == sorted[0] {
			continue
		}
		if i+1 < n && sorted[i+1] == sorted[i] {
			continue
		}
		ls = append(ls, orb.Point{sorted[i], float64(i+1) / float64(n)})
	}
	ls[len(ls)-1][1] = 1.0
	compressed := simplify.VisvalingamKeep(points).Simplify(ls).(orb.LineString)
	ecdf := make([][2]float64, len(compressed))
	for i := range compressed {
		ecdf[i] = [2]float64(compressed[i])
	}
	if err := Check(ecdf); err != nil {
		return nil, errors.Wrap(err, "cannot create valid ECDF from sample")
	}
	return ecdf, nil
}

// MaxDistance returns the largest deviation between a piecewise linear CDF and
// a theoretical CDF over the vertices of the piecewise linear function.
func MaxDistance(f [][2]float64, cdf func(float64) float64) float64 {
	d := 0.0
	for _, p := range f {
		d = math.Max(d, math.Abs(p[1]-cdf(p[0])))
	}
	return d
}

// KolmogorovSmirnov computes the Kolmogorov-Smirnov statistic of a sample
// against a theoretical CDF, i.e., the supremum distance between the step
// ECDF of the sample and the CDF.
func KolmogorovSmirnov(samples []float64, cdf func(float64) float64) float64 {
	sorted := slices.Clone(samples)
	slices.Sort(sorted)
	n := float64(len(sorted))
	d := 0.0
	for i, x := range sorted {
		y := cdf(x)
		d = math.Max(d, math.Max(float64(i+1)/n-y, y-float64(i)/n))
	}
	return d
}
