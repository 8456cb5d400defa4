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

package stochastic

import "github.com/cockroachdb/errors"

// Errors reported by the samplers and estimators. Call sites wrap these with
// context, so callers should match them with errors.Is.
var (
	// ErrInvalidDistribution is returned for malformed probabilities or CDF tables.
	ErrInvalidDistribution = errors.New("invalid distribution")

	// ErrInvalidSampleSize is returned if a sample size is too small for the requested statistic.
	ErrInvalidSampleSize = errors.New("invalid sample size")

	// ErrDominationViolated is returned if a rejection sampler observes f(x) > c*g(x).
	ErrDominationViolated = errors.New("domination violated")

	// ErrNonConvergentSearch is returned if a bounded search or retry loop exceeds its cap.
	ErrNonConvergentSearch = errors.New("non-convergent search")

	// ErrInvalidConfidence is returned for confidence levels outside of (0,1).
	ErrInvalidConfidence = errors.New("invalid confidence level")

	// ErrInvalidArgument is returned for malformed distribution parameters.
	ErrInvalidArgument = errors.New("invalid argument")
)
