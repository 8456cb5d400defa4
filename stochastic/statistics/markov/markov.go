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


package markov

import (
	"math"

	"github.com/0xsoniclabs/montecarlo/stochastic"
	"github.com/0xsoniclabs/montecarlo/stochastic/random"
	"github.com/0xsoniclabs/montecarlo/stochastic/statistics/discrete"
	"github.com/cockroachdb/errors"
	"gonum.org/v1/gonum/mat"
)

const (
	estimationEps = 1e-9 // epsilon for stationary distribution
)

// Chain is a finite Markov chain with labelled states.
type Chain struct {
	n int         // number of states
	a [][]float64 // stochastic matrix
	l []string    // labels of states
}

// New creates a new MarkovChain from a stochastic matrix and a list of labels.
// The matrix must be square and the number of labels must match the number of rows/columns.
// Each row must be a valid probability mass function.
// Each label must be unique.
func New(a [][]float64, labels []string) (*Chain, error) {
	// check uniqueness of labels
	n := len(labels)
	if n == 0 {
		return nil, errors.Wrap(stochastic.ErrInvalidDistribution, "chain has no states")
	}
	seen := map[string]bool{}
	for _, label := range labels {
		if seen[label] {
			return nil, errors.Wrapf(stochastic.ErrInvalidDistribution, "the state (%v) occurs more than once", label)
		}
		seen[label] = true
	}

	// check markov property of matrix: (1) nxn matrix, (2) each row is a pmf.
	if len(a) != n {
		return nil, errors.Wrapf(stochastic.ErrInvalidDistribution, "number of labels (%v) mismatches number of rows (%v)", n, len(a))
	}
	rows := make([][]float64, n)
	for i := range n {
		if len(a[i]) != n {
			return nil, errors.Wrapf(stochastic.ErrInvalidDistribution, "number of columns (%v) in row (%v) is not equal to the number of labels (%v)", len(a[i]), i, n)
		}
		if err := discrete.Check(a[i]); err != nil {
			return nil, errors.Wrapf(err, "row %v", i)
		}
		rows[i] = append([]float64(nil), a[i]...)
	}
	return &Chain{a: rows, l: append([]string(nil), labels...), n: n}, nil
}

// N returns the number of states.
func (mc *Chain) N() int {
	return mc.n
}

// Sample the next state in a markov chain for a given state i.
func (mc *Chain) Sample(i int, u float64) (int, error) {
	if u < 0 || u >= 1.0 {
		return 0, errors.Wrapf(stochastic.ErrInvalidArgument, "probabilistic argument (%v) is not in interval [0,1)", u)
	}
	if i < 0 || i >= mc.n {
		return 0, errors.Wrapf(stochastic.ErrInvalidArgument, "state index (%v) out of range", i)
	}
	return discrete.Quantile(mc.a[i], u), nil
}

// Walk runs the chain for the given number of steps from state start and
// returns the visited states excluding the start.
func (mc *Chain) Walk(src random.Source, start int, steps int) ([]int, error) {
	if steps < 0 {
		return nil, errors.Wrapf(stochastic.ErrInvalidSampleSize, "negative number of steps (%d)", steps)
	}
	if start < 0 || start >= mc.n {
		return nil, errors.Wrapf(stochastic.ErrInvalidArgument, "state index (%v) out of range", start)
	}
	path := make([]int, steps)
	state := start
	for i := range path {
		state = discrete.Quantile(mc.a[state], src.Float64())
		path[i] = state
	}
	return path, nil
}

// Occupancy returns the relative frequency of each state in a path.
func (mc *Chain) Occupancy(path []int) []float64 {
	freq := make([]float64, mc.n)
	if len(path) == 0 {
		return freq
	}
	for _, s := range path {
		if s >= 0 && s < mc.n {
			freq[s]++
		}
	}
	for i := range freq {
		freq[i] /= float64(len(path))
	}
	return freq
}

// Stationary computes the stationary distribution of a Markov Chain as the
// normalised left eigenvector for the eigenvalue one.
func (mc *Chain) Stationary() ([]float64, error) {
	// flatten matrix for gonum package
	elements := make([]float64, 0, mc.n*mc.n)
	for i := range mc.n {
		elements = append(elements, mc.a[i]...)
	}
	a := mat.NewDense(mc.n, mc.n, elements)

	// perform eigenvalue decomposition
	var eig mat.Eigen
	if ok := eig.Factorize(a, mat.EigenLeft); !ok {
		return nil, errors.Wrap(stochastic.ErrNonConvergentSearch, "eigen-value decomposition failed")
	}

	// find index for eigenvalue of one
	// (note that it is not necessarily the first index)
	v := eig.Values(nil)
	k := -1
	for i, eigenValue := range v {
		if math.Abs(real(eigenValue)-1.0) < estimationEps && math.Abs(imag(eigenValue)) < estimationEps {
			k = i
		}
	}
	if k == -1 {
		return nil, errors.Wrap(stochastic.ErrInvalidDistribution, "eigen-decomposition failed; no eigenvalue of one found")
	}

	var ev mat.CDense
	eig.LeftVectorsTo(&ev)

	// compute total for eigenvector with eigenvalue of one.
	total := complex128(0)
	for i := range mc.n {
		total += ev.At(i, k)
	}
	if math.Abs(imag(total)) > estimationEps {
		return nil, errors.Wrap(stochastic.ErrInvalidDistribution, "eigen-decomposition failed; eigen-vector is a complex number")
	}

	// normalize eigenvector by total
	stationary := make([]float64, mc.n)
	for i := range mc.n {
		stationary[i] = math.Abs(real(ev.At(i, k)) / real(total))
	}
	return stationary, nil
}

// Label returns the label of state i.
func (mc *Chain) Label(i int) (string, error) {
	if i < 0 || i >= mc.n {
		return "", errors.Wrapf(stochastic.ErrInvalidArgument, "state is out of range (%v)", i)
	}
	return mc.l[i], nil
}

// Labels returns a copy of all state labels.
func (mc *Chain) Labels() []string {
	return append([]string(nil), mc.l...)
}

// Find the state index for a given label. It returns -1 if there is no such state.
func (mc *Chain) Find(label string) int {
	for i := range mc.l {
		if mc.l[i] == label {
			return i
		}
	}
	return -1
}
