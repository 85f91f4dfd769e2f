/*
 * Copyright (c) 2016, Shinya Yagyu
 * All rights reserved.
 * Redistribution and use in source and binary forms, with or without
 * modification, are permitted provided that the following conditions are met:
 *
 * 1. Redistributions of source code must retain the above copyright notice,
 *    this list of conditions and the following disclaimer.
 * 2. Redistributions in binary form must reproduce the above copyright notice,
 *    this list of conditions and the following disclaimer in the documentation
 *    and/or other materials provided with the distribution.
 * 3. Neither the name of the copyright holder nor the names of its
 *    contributors may be used to endorse or promote products derived from this
 *    software without specific prior written permission.
 *
 * THIS SOFTWARE IS PROVIDED BY THE COPYRIGHT HOLDERS AND CONTRIBUTORS "AS IS"
 * AND ANY EXPRESS OR IMPLIED WARRANTIES, INCLUDING, BUT NOT LIMITED TO, THE
 * IMPLIED WARRANTIES OF MERCHANTABILITY AND FITNESS FOR A PARTICULAR PURPOSE
 * ARE DISCLAIMED. IN NO EVENT SHALL THE COPYRIGHT HOLDER OR CONTRIBUTORS BE
 * LIABLE FOR ANY DIRECT, INDIRECT, INCIDENTAL, SPECIAL, EXEMPLARY, OR
 * CONSEQUENTIAL DAMAGES (INCLUDING, BUT NOT LIMITED TO, PROCUREMENT OF
 * SUBSTITUTE GOODS OR SERVICES; LOSS OF USE, DATA, OR PROFITS; OR BUSINESS
 * INTERRUPTION) HOWEVER CAUSED AND ON ANY THEORY OF LIABILITY, WHETHER IN
 * CONTRACT, STRICT LIABILITY, OR TORT (INCLUDING NEGLIGENCE OR OTHERWISE)
 * ARISING IN ANY WAY OUT OF THE USE OF THIS SOFTWARE, EVEN IF ADVISED OF THE
 * POSSIBILITY OF SUCH DAMAGE.
 */

//from https://github.com/input-output-hk/scrypto/blob/master/src/main/java/fr/cryptohash/
//under Public Domain CC0 license
//https://github.com/input-output-hk/scrypto/blob/master/COPYING
// Rewritten from github.com/bitgoin/lyra2rev2 for streaming input.

// Package cubehash implements CubeHash16/32-256, the CubeHash parameter set
// used by the Lyra2REv2 and Lyra2REv3 chains.
package cubehash

import (
	"encoding/binary"
	"hash"
	"math/bits"
)

const (
	// Size is the size of a CubeHash-256 checksum in bytes.
	Size = 32

	// BlockSize is the number of message bytes absorbed per block.
	BlockSize = 32

	rounds      = 16
	finalRounds = 10 * rounds
)

// iv is the state after initialisation with h=256, b=32, r=16.
var iv = [32]uint32{
	0xEA2BD4B4, 0xCCD6F29F, 0x63117E71, 0x35481EAE,
	0x22512D5B, 0xE5D94E63, 0x7E624131, 0xF4CC12BE,
	0xC2D0B696, 0x42AF2070, 0xD0720C35, 0x3361DA8C,
	0x28CCECA4, 0x8EF8AD83, 0x4680AC00, 0x40E5FBAB,
	0xD89041C3, 0x6107FBD5, 0x6C859D41, 0xF0B26679,
	0x09392549, 0x5FA25603, 0x65C892FD, 0x93CB6285,
	0x2AF2B5AE, 0x9E4B4E60, 0x774ABFDD, 0x85254725,
	0x15815AEB, 0x4AB6AAD6, 0x9CDAF8AF, 0xD6032C0A,
}

type digest struct {
	x   [32]uint32
	buf [BlockSize]byte
	nx  int
}

// New returns a new hash.Hash computing CubeHash-256.
func New() hash.Hash {
	d := new(digest)
	d.Reset()
	return d
}

// Sum256 returns the CubeHash-256 checksum of data.
func Sum256(data []byte) [Size]byte {
	var d digest
	d.Reset()
	d.Write(data)
	return d.checkSum()
}

func (d *digest) Reset() {
	d.x = iv
	d.nx = 0
}

func (d *digest) Size() int { return Size }

func (d *digest) BlockSize() int { return BlockSize }

func (d *digest) Write(p []byte) (int, error) {
	n := len(p)
	if d.nx > 0 {
		c := copy(d.buf[d.nx:], p)
		d.nx += c
		p = p[c:]
		if d.nx < BlockSize {
			return n, nil
		}
		d.block(d.buf[:])
		d.nx = 0
	}
	for len(p) >= BlockSize {
		d.block(p[:BlockSize])
		p = p[BlockSize:]
	}
	d.nx = copy(d.buf[:], p)
	return n, nil
}

// Sum appends the checksum to in without changing the running state.
func (d *digest) Sum(in []byte) []byte {
	d0 := *d
	sum := d0.checkSum()
	return append(in, sum[:]...)
}

func (d *digest) checkSum() [Size]byte {
	var pad [BlockSize]byte
	copy(pad[:], d.buf[:d.nx])
	pad[d.nx] = 0x80
	d.block(pad[:])

	d.x[31] ^= 1
	d.permute(finalRounds)

	var out [Size]byte
	for i := 0; i < Size/4; i++ {
		binary.LittleEndian.PutUint32(out[i*4:], d.x[i])
	}
	return out
}

func (d *digest) block(p []byte) {
	for i := 0; i < BlockSize/4; i++ {
		d.x[i] ^= binary.LittleEndian.Uint32(p[i*4:])
	}
	d.permute(rounds)
}

// permute runs n CubeHash rounds.  Indices follow the reference notation:
// x[0jklm] is x[i] for i < 16 and x[1jklm] is x[16+i].
func (d *digest) permute(n int) {
	x := &d.x
	for r := 0; r < n; r++ {
		for i := 0; i < 16; i++ {
			x[i+16] += x[i]
			x[i] = bits.RotateLeft32(x[i], 7)
		}
		for i := 0; i < 8; i++ {
			x[i], x[i+8] = x[i+8], x[i]
		}
		for i := 0; i < 16; i++ {
			x[i] ^= x[i+16]
		}
		for i := 16; i < 32; i++ {
			if i&2 == 0 {
				x[i], x[i+2] = x[i+2], x[i]
			}
		}
		for i := 0; i < 16; i++ {
			x[i+16] += x[i]
			x[i] = bits.RotateLeft32(x[i], 11)
		}
		for i := 0; i < 16; i++ {
			if i&4 == 0 {
				x[i], x[i+4] = x[i+4], x[i]
			}
		}
		for i := 0; i < 16; i++ {
			x[i] ^= x[i+16]
		}
		for i := 16; i < 32; i++ {
			if i&1 == 0 {
				x[i], x[i+1] = x[i+1], x[i]
			}
		}
	}
}
