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

// ProbabilityEps is the tolerance for a probability mass function to sum to one.
const ProbabilityEps = 1e-9

// DefaultMaxAttempts caps the number of trials of a rejection sampler for a single draw.
// With an acceptance rate of 1% the chance to exhaust the cap is below 1e-43.
const DefaultMaxAttempts = 10000

// DefaultConfidence is the confidence level used for Monte Carlo intervals.
const DefaultConfidence = 0.95

// Z95 is the two-sided z-value for a 95% confidence level.
const Z95 = 1.96

// NumECDFPoints sets the number of points in a compressed empirical cumulative distribution function.
const NumECDFPoints = 300
