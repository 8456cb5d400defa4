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

package random

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/stat/distuv"
)

func TestGenerator_IsReproducible(t *testing.T) {
	a := Take(New(42), 100)
	b := Take(New(42), 100)
	assert.Equal(t, a, b)

	c := Take(New(43), 100)
	assert.NotEqual(t, a, c)
}

func TestGenerator_RestartReplaysSequence(t *testing.T) {
	g := New(7)
	first := Take(g, 50)
	g.Restart()
	second := Take(g, 50)
	assert.Equal(t, first, second)
	assert.Equal(t, uint64(7), g.Seed())
}

func TestGenerator_ValuesAreInUnitInterval(t *testing.T) {
	g := New(1)
	for range 100000 {
		u := g.Float64()
		if u < 0 || u >= 1 {
			t.Fatalf("value out of [0,1): %v", u)
		}
	}
}

// testUniformity buckets draws of src and runs a chi-squared test with an alpha of 0.01.
func testUniformity(t *testing.T, src Source) {
	t.Helper()
	const numBuckets = 20
	const numSteps = 100000
	counts := make([]float64, numBuckets)
	for range numSteps {
		counts[int(src.Float64()*numBuckets)]++
	}
	expected := float64(numSteps) / numBuckets
	chi2 := 0.0
	for _, c := range counts {
		d := c - expected
		chi2 += d * d / expected
	}
	critical := distuv.ChiSquared{K: numBuckets - 1}.Quantile(0.99)
	assert.Less(t, chi2, critical, "uniform source is biased")
}

func TestGenerator_IsUniform(t *testing.T) {
	testUniformity(t, New(2024))
}

func TestKeyed_IsUniform(t *testing.T) {
	var key [32]byte
	for i := range key {
		key[i] = byte(i)
	}
	testUniformity(t, NewKeyed(&key))
}

func TestKeyed_IsDeterministicAndRestartable(t *testing.T) {
	var key [32]byte
	key[0] = 1
	k := NewKeyed(&key)
	first := Take(k, 40) // spans several keystream blocks
	k.Restart()
	assert.Equal(t, first, Take(k, 40))
	assert.Equal(t, first, Take(NewKeyed(&key), 40))

	key[0] = 2
	assert.NotEqual(t, first, Take(NewKeyed(&key), 40))
}

func TestKeyed_KeyIsCopied(t *testing.T) {
	var key [32]byte
	k := NewKeyed(&key)
	want := Take(NewKeyed(&key), 10)
	key[5] = 99
	assert.Equal(t, want, Take(k, 10))
}

func TestStreams_AreDisjoint(t *testing.T) {
	streams := Streams(99, 4)
	require.Len(t, streams, 4)
	seen := map[uint64]bool{}
	for _, s := range streams {
		assert.False(t, seen[s.Seed()], "duplicated stream seed %v", s.Seed())
		seen[s.Seed()] = true
	}
	assert.NotEqual(t, Take(streams[0], 10), Take(streams[1], 10))

	again := Streams(99, 4)
	for i := range streams {
		assert.Equal(t, streams[i].Seed(), again[i].Seed())
	}
}

func TestLocked_SharedAcrossGoroutines(t *testing.T) {
	src := NewLocked(New(5))
	const workers = 8
	const draws = 1000
	var wg sync.WaitGroup
	results := make([][]float64, workers)
	for w := range workers {
		wg.Add(1)
		go func(w int) {
			defer wg.Done()
			results[w] = Take(src, draws)
		}(w)
	}
	wg.Wait()

	// every value of the underlying sequence is handed out exactly once
	all := map[float64]int{}
	for _, r := range results {
		for _, u := range r {
			all[u]++
		}
	}
	for _, u := range Take(New(5), workers*draws) {
		assert.Equal(t, 1, all[u])
	}
}

func TestTake_NonPositive(t *testing.T) {
	assert.Empty(t, Take(New(1), 0))
	assert.Empty(t, Take(New(1), -3))
}

func TestValues_StopsWhenConsumerStops(t *testing.T) {
	g := New(3)
	count := 0
	for range Values(g) {
		count++
		if count == 5 {
			break
		}
	}
	assert.Equal(t, 5, count)
	g.Restart()
	want := Take(g, 6)
	g.Restart()
	_ = Take(g, 5)
	assert.Equal(t, want[5], g.Float64())
}

func TestUniform_MapsToInterval(t *testing.T) {
	g := New(11)
	for range 1000 {
		x := Uniform(g, -2, 3)
		if x < -2 || x >= 3 {
			t.Fatalf("value out of [-2,3): %v", x)
		}
	}
}
