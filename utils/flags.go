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


package utils

import (
	"github.com/0xsoniclabs/montecarlo/stochastic"
	"github.com/urfave/cli/v2"
)

var (
	SeedFlag = cli.Uint64Flag{
		Name:  "seed",
		Usage: "seed of the pseudo-random source; equal seeds reproduce equal runs",
		Value: 1,
	}
	KeyFlag = cli.StringFlag{
		Name:  "key",
		Usage: "64 hex digits selecting a keyed Salsa20 source instead of the seeded generator",
	}
	SamplesFlag = cli.IntFlag{
		Name:    "samples",
		Aliases: []string{"n"},
		Usage:   "number of samples drawn for a single estimate",
		Value:   10_000,
	}
	ConfidenceFlag = cli.Float64Flag{
		Name:  "confidence",
		Usage: "confidence level of the reported interval, in (0,1)",
		Value: stochastic.DefaultConfidence,
	}
	MaxAttemptsFlag = cli.IntFlag{
		Name:  "max-attempts",
		Usage: "maximum number of rejection trials for a single accepted sample",
		Value: stochastic.DefaultMaxAttempts,
	}
	TargetFlag = cli.Float64Flag{
		Name:  "target",
		Usage: "target half-width of the confidence interval",
		Value: 0.01,
	}
	MaxIterationsFlag = cli.IntFlag{
		Name:  "max-iterations",
		Usage: "maximum number of sample-size increases during a search",
		Value: 20,
	}
	GrowthFlag = cli.Float64Flag{
		Name:  "growth",
		Usage: "factor by which the sample size grows between search iterations",
		Value: 2,
	}
	StartFlag = cli.IntFlag{
		Name:  "start",
		Usage: "initial sample size of a search",
		Value: 100,
	}
	SizesFlag = cli.IntSliceFlag{
		Name:  "sizes",
		Usage: "sample sizes of a convergence curve",
		Value: cli.NewIntSlice(100, 1_000, 10_000, 100_000),
	}
	StepsFlag = cli.IntFlag{
		Name:  "steps",
		Usage: "number of transitions of a simulated Markov walk",
		Value: 100_000,
	}
	OutputFlag = cli.PathFlag{
		Name:    "output",
		Aliases: []string{"o"},
		Usage:   "output path of the JSON report",
	}
)
