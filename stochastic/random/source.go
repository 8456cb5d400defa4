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

// Package random provides the uniform sources consumed by all samplers.
// No sampler touches another randomness primitive; a source handle is
// passed explicitly into every sampling call.
package random

import (
	"iter"
	"sync"

	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/mathext/prng"
)

// Source produces independent values uniformly distributed in [0,1).
//
//go:generate mockgen -source source.go -destination source_mock.go -package random
type Source interface {
	Float64() float64
}

// Generator is a seedable and restartable uniform source based on a
// Mersenne Twister (MT19937).
type Generator struct {
	seed uint64
	rg   *rand.Rand
}

// New creates a generator for the given seed.
func New(seed uint64) *Generator {
	src := prng.NewMT19937()
	src.Seed(seed)
	return &Generator{
		seed: seed,
		rg:   rand.New(src),
	}
}

// Float64 returns the next uniform value in [0,1).
func (g *Generator) Float64() float64 {
	return g.rg.Float64()
}

// Seed returns the seed the generator was created with.
func (g *Generator) Seed() uint64 {
	return g.seed
}

// Restart rewinds the generator so that it replays its sequence from the start.
func (g *Generator) Restart() {
	g.rg.Seed(g.seed)
}

// Streams partitions a seed into k generators with disjoint, well-mixed seeds
// so that each worker of a parallel experiment owns its own stream.
func Streams(seed uint64, k int) []*Generator {
	mixer := prng.NewSplitMix64(seed)
	streams := make([]*Generator, k)
	for i := range k {
		streams[i] = New(mixer.Uint64())
	}
	return streams
}

// Locked serialises access to a shared source.
type Locked struct {
	mu  sync.Mutex
	src Source
}

// NewLocked wraps src with a mutex.
func NewLocked(src Source) *Locked {
	return &Locked{src: src}
}

// Float64 draws from the wrapped source under the lock.
func (l *Locked) Float64() float64 {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.src.Float64()
}

// Values returns the source as an infinite lazy sequence.
func Values(src Source) iter.Seq[float64] {
	return func(yield func(float64) bool) {
		for {
			if !yield(src.Float64()) {
				return
			}
		}
	}
}

// Take draws n values from the source in order.
func Take(src Source, n int) []float64 {
	if n <= 0 {
		return []float64{}
	}
	values := make([]float64, 0, n)
	for u := range Values(src) {
		values = append(values, u)
		if len(values) == n {
			break
		}
	}
	return values
}

// Uniform maps a draw of src to the interval [a,b).
func Uniform(src Source, a, b float64) float64 {
	return a + (b-a)*src.Float64()
}
