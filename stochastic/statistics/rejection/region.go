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

	"github.com/0xsoniclabs/montecarlo/stochastic"
	"github.com/0xsoniclabs/montecarlo/stochastic/random"
	"github.com/cockroachdb/errors"
)

// Region is the membership test of a bounded region.
type Region func(p []float64) bool

// RegionSampler draws points uniformly distributed over a region by drawing
// candidates uniformly over a bounding box and rejecting those outside.
type RegionSampler struct {
	lo, hi []float64
	inside Region
	cfg    config
}

// NewRegion creates a sampler for the region inside with the bounding box [lo,hi).
func NewRegion(lo, hi []float64, inside Region, opts ...Option) (*RegionSampler, error) {
	if inside == nil {
		return nil, errors.Wrap(stochastic.ErrInvalidDistribution, "missing region")
	}
	if len(lo) == 0 || len(lo) != len(hi) {
		return nil, errors.Wrapf(stochastic.ErrInvalidArgument, "bounding box dimensions do not match (%d, %d)", len(lo), len(hi))
	}
	for i := range lo {
		if !(lo[i] < hi[i]) || math.IsInf(lo[i], 0) || math.IsInf(hi[i], 0) {
			return nil, errors.Wrapf(stochastic.ErrInvalidArgument, "invalid bounds [%v,%v] in dimension %d", lo[i], hi[i], i)
		}
	}
	cfg, err := newConfig(opts)
	if err != nil {
		return nil, err
	}
	return &RegionSampler{
		lo:     append([]float64(nil), lo...),
		hi:     append([]float64(nil), hi...),
		inside: inside,
		cfg:    cfg,
	}, nil
}

// NewUnitBall creates a sampler for the unit ball of the given dimension,
// e.g., the unit disk for two dimensions.
func NewUnitBall(dim int, opts ...Option) (*RegionSampler, error) {
	if dim < 1 {
		return nil, errors.Wrapf(stochastic.ErrInvalidArgument, "invalid dimension (%d)", dim)
	}
	lo := make([]float64, dim)
	hi := make([]float64, dim)
	for i := range dim {
		lo[i], hi[i] = -1, 1
	}
	opts = append([]Option{WithRegionVolume(UnitBallVolume(dim))}, opts...)
	return NewRegion(lo, hi, InUnitBall, opts...)
}

// InUnitBall reports whether the Euclidean norm of p is at most one.
func InUnitBall(p []float64) bool {
	sq := 0.0
	for _, x := range p {
		sq += x * x
	}
	return sq <= 1
}

// UnitBallVolume is pi^(d/2) / Gamma(d/2+1).
func UnitBallVolume(dim int) float64 {
	d := float64(dim)
	return math.Pow(math.Pi, d/2) / math.Gamma(d/2+1)
}

// Dimension returns the dimension of the bounding box.
func (r *RegionSampler) Dimension() int {
	return len(r.lo)
}

// ExpectedAttempts returns the volume of the bounding box divided by the
// volume of the region. It reports false if the region volume is unknown.
func (r *RegionSampler) ExpectedAttempts() (float64, bool) {
	if r.cfg.regionVolume == 0 {
		return 0, false
	}
	box := 1.0
	for i := range r.lo {
		box *= r.hi[i] - r.lo[i]
	}
	return box / r.cfg.regionVolume, true
}

// Sample draws one point and returns it with the number of trials used.
// A trial draws one uniform value per dimension in coordinate order.
func (r *RegionSampler) Sample(src random.Source) ([]float64, int, error) {
	p := make([]float64, len(r.lo))
	for attempt := 1; attempt <= r.cfg.maxAttempts; attempt++ {
		for i := range p {
			p[i] = random.Uniform(src, r.lo[i], r.hi[i])
		}
		if r.inside(p) {
			return p, attempt, nil
		}
	}
	return nil, r.cfg.maxAttempts, errors.Wrapf(stochastic.ErrNonConvergentSearch, "no point inside the region after %d attempts", r.cfg.maxAttempts)
}

// SampleN draws n points.
func (r *RegionSampler) SampleN(src random.Source, n int) ([][]float64, Stats, error) {
	var stats Stats
	if n < 0 {
		return nil, stats, errors.Wrapf(stochastic.ErrInvalidSampleSize, "negative sample size (%d)", n)
	}
	points := make([][]float64, n)
	for i := range points {
		p, attempts, err := r.Sample(src)
		stats.Attempts += attempts
		if err != nil {
			return nil, stats, err
		}
		points[i] = p
		stats.Accepted++
	}
	return points, stats, nil
}
