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
	"encoding/binary"

	"golang.org/x/crypto/salsa20"
)

const keyedBlockSize = 64

// Keyed is a deterministic uniform source derived from a 32-byte key.
// Block i of the stream is the Salsa20 keystream for nonce i.
type Keyed struct {
	key   [32]byte
	block uint64
	buf   [keyedBlockSize]byte
	pos   int
}

// NewKeyed creates a keyed source. The key is copied.
func NewKeyed(key *[32]byte) *Keyed {
	k := &Keyed{key: *key}
	k.Restart()
	return k
}

// Restart rewinds the stream to its first value.
func (k *Keyed) Restart() {
	k.block = 0
	k.pos = keyedBlockSize
}

// Uint64 returns the next 64 bits of the keystream.
func (k *Keyed) Uint64() uint64 {
	if k.pos+8 > keyedBlockSize {
		k.refill()
	}
	v := binary.LittleEndian.Uint64(k.buf[k.pos : k.pos+8])
	k.pos += 8
	return v
}

// Float64 returns the next uniform value in [0,1) using the top 53 bits.
func (k *Keyed) Float64() float64 {
	return float64(k.Uint64()>>11) / (1 << 53)
}

func (k *Keyed) refill() {
	var nonce [8]byte
	var zeros [keyedBlockSize]byte
	binary.LittleEndian.PutUint64(nonce[:], k.block)
	salsa20.XORKeyStream(k.buf[:], zeros[:], nonce[:], &k.key)
	k.block++
	k.pos = 0
}
