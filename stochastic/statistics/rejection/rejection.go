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


// Package rejection implements accept-reject sampling: a value drawn from a
// proposal density is accepted with probability f(x)/(c*g(x)), and uniform
// sampling over bounded regions by rejecting candidates from a bounding box.
// Every draw is bounded by a maximum number of trials.
package rejection

import (
	"math"

	"github.com/0xsoniclabs/montecarlo/stochastic"
	"github.com/0xsoniclabs/montecarlo/stochastic/random"
	"github.com/cockroachdb/errors"
)

// dominationTolerance is the relative slack of the domination check so that
// densities touching c*g at a point are not reported due to rounding.
const dominationTolerance = 1e-12

// Density is a probability density function.
type Density func(x float64) float64

// Proposal is a density together with a sampler for it.
type Proposal struct {
	Sample  func(src random.Source) float64
	Density Density
}

// Stats counts accepted values and trials.
type Stats struct {
	Accepted int
	Attempts int
}

// AcceptanceRate is the fraction of accepted trials.
func (s Stats) AcceptanceRate() float64 {
	if s.Attempts == 0 {
		return 0
	}
	return float64(s.Accepted) / float64(s.Attempts)
}

type config struct {
	maxAttempts     int
	checkDomination bool
	regionVolume    float64
}

// Option configures a sampler.
type Option func(*config)

// WithMaxAttempts sets the maximum number of trials for a single draw.
func WithMaxAttempts(n int) Option {
	return func(c *config) {
		c.maxAttempts = n
	}
}

// WithDominationCheck makes a sampler fail with ErrDominationViolated if a
// trial observes f(x) > c*g(x).
func WithDominationCheck() Option {
	return func(c *config) {
		c.checkDomination = true
	}
}

// WithRegionVolume declares the volume of the region of a region sampler.
func WithRegionVolume(v float64) Option {
	return func(c *config) {
		c.regionVolume = v
	}
}

func newConfig(opts []Option) (config, error) {
	cfg := config{maxAttempts: stochastic.DefaultMaxAttempts}
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.maxAttempts < 1 {
		return cfg, errors.Wrapf(stochastic.ErrInvalidArgument, "maximum number of attempts must be positive (%d)", cfg.maxAttempts)
	}
	if cfg.regionVolume < 0 || math.IsNaN(cfg.regionVolume) {
		return cfg, errors.Wrapf(stochastic.ErrInvalidArgument, "invalid region volume (%v)", cfg.regionVolume)
	}
	return cfg, nil
}

// Sampler draws values of a target density by accept-reject.
type Sampler struct {
	target   Density
	proposal Proposal
	c        float64
	cfg      config
}

// New creates an accept-reject sampler. The caller must make sure that
// target(x) <= c*proposal(x) holds over the support of the target.
func New(target Density, proposal Proposal, c float64, opts ...Option) (*Sampler, error) {
	if target == nil || proposal.Sample == nil || proposal.Density == nil {
		return nil, errors.Wrap(stochastic.ErrInvalidDistribution, "target density and proposal must be given")
	}
	if !(c > 0) || math.IsInf(c, 1) {
		return nil, errors.Wrapf(stochastic.ErrInvalidArgument, "dominating constant must be positive and finite (%v)", c)
	}
	cfg, err := newConfig(opts)
	if err != nil {
		return nil, err
	}
	return &Sampler{
		target:   target,
		proposal: proposal,
		c:        c,
		cfg:      cfg,
	}, nil
}

// Sample draws one value and returns it with the number of trials used.
// Each trial draws a fresh proposal value and a fresh uniform value.
func (s *Sampler) Sample(src random.Source) (float64, int, error) {
	for attempt := 1; attempt <= s.cfg.maxAttempts; attempt++ {
		x := s.proposal.Sample(src)
		f := s.target(x)
		bound := s.c * s.proposal.Density(x)
		if s.cfg.checkDomination && f > bound*(1+dominationTolerance) {
			return 0, attempt, errors.Wrapf(stochastic.ErrDominationViolated, "f(%v)=%v exceeds c*g(%v)=%v", x, f, x, bound)
		}
		u := src.Float64()
		if bound > 0 && u <= f/bound {
			return x, attempt, nil
		}
	}
	return 0, s.cfg.maxAttempts, errors.Wrapf(stochastic.ErrNonConvergentSearch, "no value accepted after %d attempts", s.cfg.maxAttempts)
}

// SampleN draws n values.
func (s *Sampler) SampleN(src random.Source, n int) ([]float64, Stats, error) {
	var stats Stats
	if n < 0 {
		return nil, stats, errors.Wrapf(stochastic.ErrInvalidSampleSize, "negative sample size (%d)", n)
	}
	sample := make([]float64, n)
	for i := range sample {
		x, attempts, err := s.Sample(src)
		stats.Attempts += attempts
		if err != nil {
			return nil, stats, err
		}
		sample[i] = x
		stats.Accepted++
	}
	return sample, stats, nil
}

// ExpectedAttempts returns the expected number of trials per accepted value, c.
func (s *Sampler) ExpectedAttempts() float64 {
	return s.c
}

// Sample draws n values of target by accept-reject with the given proposal
// and dominating constant.
func Sample(target Density, proposal Proposal, c float64, n int, src random.Source) ([]float64, error) {
	s, err := New(target, proposal, c)
	if err != nil {
		return nil, err
	}
	sample, _, err := s.SampleN(src, n)
	return sample, err
}
