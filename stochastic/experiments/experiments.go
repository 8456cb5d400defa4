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


// Package experiments is a catalogue of ready-to-run Monte Carlo experiments
// whose expectations are known in closed form.
package experiments

import (
	"math"
	"slices"

	"github.com/0xsoniclabs/montecarlo/stochastic"
	"github.com/0xsoniclabs/montecarlo/stochastic/estimation"
	"github.com/0xsoniclabs/montecarlo/stochastic/random"
	"github.com/0xsoniclabs/montecarlo/stochastic/statistics/continuous"
	"github.com/0xsoniclabs/montecarlo/stochastic/statistics/discrete"
	"github.com/0xsoniclabs/montecarlo/stochastic/statistics/exponential"
	"github.com/0xsoniclabs/montecarlo/stochastic/statistics/inverse"
	"github.com/0xsoniclabs/montecarlo/stochastic/statistics/normal"
	"github.com/0xsoniclabs/montecarlo/stochastic/statistics/rejection"
	"github.com/0xsoniclabs/montecarlo/stochastic/statistics/weibull"
	"github.com/cockroachdb/errors"
)

// mixtureGridPoints is the resolution of the numerically inverted mixture;
// it bounds the quantile error to 1e-4.
const mixtureGridPoints = 40001

// Experiment estimates E[Phi(X)] for a sampler Draw whose expectation is known.
type Experiment struct {
	Name        string
	Description string
	Dimension   int // length of a drawn value
	Draw        estimation.Draw[[]float64]
	Phi         func([]float64) float64
	Expected    float64 // E[Phi(X)]
	Variance    float64 // Var[Phi(X)]
}

// Run estimates the expectation with n draws.
func (e *Experiment) Run(src random.Source, n int, confidence float64) (estimation.Result, error) {
	return estimation.Estimate(src, e.Draw, e.Phi, n, confidence)
}

// Curve runs one estimate per sample size.
func (e *Experiment) Curve(src random.Source, sizes []int, confidence float64) ([]estimation.Result, error) {
	return estimation.Curve(src, e.Draw, e.Phi, sizes, confidence)
}

// Search grows the sample size until the half-width drops to target.
func (e *Experiment) Search(src random.Source, target float64, cfg estimation.SearchConfig) (estimation.Result, error) {
	return estimation.Search(src, e.Draw, e.Phi, target, cfg)
}

type constructor func(opts []rejection.Option) (*Experiment, error)

// plain adapts a constructor that draws without rejection.
func plain(create func() (*Experiment, error)) constructor {
	return func([]rejection.Option) (*Experiment, error) { return create() }
}

var catalogue = map[string]constructor{
	"discrete":        plain(newDiscrete),
	"absolute-normal": newAbsoluteNormal,
	"unit-disk":       func(opts []rejection.Option) (*Experiment, error) { return newUnitBall(2, opts) },
	"unit-ball":       func(opts []rejection.Option) (*Experiment, error) { return newUnitBall(3, opts) },
	"box-muller":      plain(newBoxMuller),
	"exponential":     plain(newExponential),
	"weibull":         plain(newWeibull),
	"mixture":         plain(newMixture),
	"mixture-grid":    plain(newMixtureGrid),
	"bivariate":       plain(newBivariate),
}

// Names returns the names of all experiments in lexical order.
func Names() []string {
	names := make([]string, 0, len(catalogue))
	for name := range catalogue {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// Lookup creates the experiment with the given name. The options configure
// the rejection samplers of experiments drawing by accept-reject.
func Lookup(name string, opts ...rejection.Option) (*Experiment, error) {
	create, ok := catalogue[name]
	if !ok {
		return nil, errors.Wrapf(stochastic.ErrInvalidArgument, "unknown experiment %q", name)
	}
	e, err := create(opts)
	if err != nil {
		return nil, errors.Wrapf(err, "cannot create experiment %q", name)
	}
	return e, nil
}

func first(x []float64) float64 {
	return x[0]
}

func squaredNorm(x []float64) float64 {
	sq := 0.0
	for _, v := range x {
		sq += v * v
	}
	return sq
}

func scalar(sample func(random.Source) float64) estimation.Draw[[]float64] {
	return func(src random.Source) ([]float64, error) {
		return []float64{sample(src)}, nil
	}
}

func newDiscrete() (*Experiment, error) {
	d, err := discrete.New([]discrete.Outcome[float64]{
		{Value: -1, P: 1.0 / 3},
		{Value: 0, P: 1.0 / 6},
		{Value: 1, P: 1.0 / 2},
	})
	if err != nil {
		return nil, err
	}
	return &Experiment{
		Name:        "discrete",
		Description: "X in {-1,0,1} with probabilities 1/3, 1/6, 1/2; E[X] = 1/6",
		Dimension:   1,
		Draw:        scalar(d.Sample),
		Phi:         first,
		Expected:    1.0 / 6,
		Variance:    29.0 / 36,
	}, nil
}

func newAbsoluteNormal(opts []rejection.Option) (*Experiment, error) {
	target := func(x float64) float64 {
		if x < 0 {
			return 0
		}
		return math.Sqrt(2/math.Pi) * math.Exp(-x*x/2)
	}
	proposal := rejection.Proposal{
		Sample: func(src random.Source) float64 { return exponential.Sample(src, 1) },
		Density: func(x float64) float64 {
			if x < 0 {
				return 0
			}
			return math.Exp(-x)
		},
	}
	s, err := rejection.New(target, proposal, math.Sqrt(2*math.E/math.Pi), append([]rejection.Option{rejection.WithDominationCheck()}, opts...)...)
	if err != nil {
		return nil, err
	}
	return &Experiment{
		Name:        "absolute-normal",
		Description: "|Z| by accept-reject from an exponential proposal, c = sqrt(2e/pi); E|Z| = sqrt(2/pi)",
		Dimension:   1,
		Draw: func(src random.Source) ([]float64, error) {
			x, _, err := s.Sample(src)
			if err != nil {
				return nil, err
			}
			return []float64{x}, nil
		},
		Phi:      first,
		Expected: math.Sqrt(2 / math.Pi),
		Variance: 1 - 2/math.Pi,
	}, nil
}

func newUnitBall(dim int, opts []rejection.Option) (*Experiment, error) {
	s, err := rejection.NewUnitBall(dim, opts...)
	if err != nil {
		return nil, err
	}
	d := float64(dim)
	e := &Experiment{
		Dimension: dim,
		Draw: func(src random.Source) ([]float64, error) {
			p, _, err := s.Sample(src)
			return p, err
		},
		Phi: squaredNorm,
		// |P|^2 of a uniform point in the d-ball has E = d/(d+2) and E[|P|^4] = d/(d+4)
		Expected: d / (d + 2),
		Variance: d/(d+4) - (d/(d+2))*(d/(d+2)),
	}
	if dim == 2 {
		e.Name = "unit-disk"
		e.Description = "uniform point in the unit disk by box rejection; E|P|^2 = 1/2"
	} else {
		e.Name = "unit-ball"
		e.Description = "uniform point in the unit ball by box rejection; E|P|^2 = 3/5"
	}
	return e, nil
}

func newBoxMuller() (*Experiment, error) {
	return &Experiment{
		Name:        "box-muller",
		Description: "pair of standard normals by the Box-Muller transform; E[Z1^2] = 1",
		Dimension:   2,
		Draw: func(src random.Source) ([]float64, error) {
			z1, z2 := normal.BoxMuller(src)
			return []float64{z1, z2}, nil
		},
		Phi:      func(z []float64) float64 { return z[0] * z[0] },
		Expected: 1,
		Variance: 2,
	}, nil
}

func newExponential() (*Experiment, error) {
	const rate = 2.0
	if err := exponential.Check(rate); err != nil {
		return nil, err
	}
	return &Experiment{
		Name:        "exponential",
		Description: "exponential with rate 2 by inverse CDF; E[X] = 1/2",
		Dimension:   1,
		Draw:        scalar(func(src random.Source) float64 { return exponential.Sample(src, rate) }),
		Phi:         first,
		Expected:    exponential.Mean(rate),
		Variance:    1 / (rate * rate),
	}, nil
}

func newWeibull() (*Experiment, error) {
	const lambda, k = 1.0, 2.0
	if err := weibull.Check(lambda, k); err != nil {
		return nil, err
	}
	mean := weibull.Mean(lambda, k)
	return &Experiment{
		Name:        "weibull",
		Description: "Weibull with scale 1 and shape 2 by inverse CDF; E[X] = Gamma(3/2)",
		Dimension:   1,
		Draw:        scalar(func(src random.Source) float64 { return weibull.Sample(src, lambda, k) }),
		Phi:         first,
		Expected:    mean,
		Variance:    lambda*lambda*math.Gamma(1+2/k) - mean*mean,
	}, nil
}

// mixturePieces is uniform on [0,1] with weight 0.2, the density 2(x-1) on
// [1,2] with weight 0.5, and uniform on [2,4] with weight 0.3.
func mixturePieces() []inverse.Piece {
	return []inverse.Piece{
		{Weight: 0.2, Quantile: inverse.Uniform(0, 1)},
		{Weight: 0.5, Quantile: func(u float64) float64 { return 1 + math.Sqrt(u) }},
		{Weight: 0.3, Quantile: inverse.Uniform(2, 4)},
	}
}

// mixtureCDF is the CDF of mixturePieces.
func mixtureCDF(x float64) float64 {
	switch {
	case x <= 0:
		return 0
	case x <= 1:
		return 0.2 * x
	case x <= 2:
		return 0.2 + 0.5*(x-1)*(x-1)
	case x <= 4:
		return 0.7 + 0.15*(x-2)
	}
	return 1
}

const (
	mixtureMean     = 11.0 / 6
	mixtureVariance = 83.0 / 90
)

func newMixture() (*Experiment, error) {
	m, err := inverse.NewMixture(mixturePieces())
	if err != nil {
		return nil, err
	}
	return &Experiment{
		Name:        "mixture",
		Description: "three pieces on [0,1], [1,2], [2,4] inverted piece by piece; E[X] = 11/6",
		Dimension:   1,
		Draw:        scalar(m.Sample),
		Phi:         first,
		Expected:    mixtureMean,
		Variance:    mixtureVariance,
	}, nil
}

func newMixtureGrid() (*Experiment, error) {
	g, err := continuous.NewGrid(mixtureCDF, 0, 4, mixtureGridPoints)
	if err != nil {
		return nil, err
	}
	return &Experiment{
		Name:        "mixture-grid",
		Description: "the three-piece mixture inverted numerically on a grid of 40001 points; E[X] = 11/6",
		Dimension:   1,
		Draw:        scalar(g.Sample),
		Phi:         first,
		Expected:    mixtureMean,
		Variance:    mixtureVariance,
	}, nil
}

func newBivariate() (*Experiment, error) {
	const rho = 0.6
	a, err := normal.MixingMatrix(1, 1, rho)
	if err != nil {
		return nil, err
	}
	b, err := normal.NewBivariate([2]float64{0, 0}, a)
	if err != nil {
		return nil, err
	}
	return &Experiment{
		Name:        "bivariate",
		Description: "standard bivariate normal with correlation 0.6 by a mixing matrix; E[XY] = 0.6",
		Dimension:   2,
		Draw: func(src random.Source) ([]float64, error) {
			p := b.Sample(src)
			return p[:], nil
		},
		Phi:      func(p []float64) float64 { return p[0] * p[1] },
		Expected: rho,
		Variance: 1 + rho*rho,
	}, nil
}
