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

// Package bmw implements Blue Midnight Wish 256 (BMW-256), the final step of
// the Lyra2REv2 and Lyra2REv3 chains.
package bmw

import (
	"encoding/binary"
	"hash"
	"math/bits"
)

const (
	// Size is the size of a BMW-256 checksum in bytes.
	Size = 32

	// BlockSize is the block size of BMW-256 in bytes.
	BlockSize = 64
)

var initVal = [16]uint32{
	0x40414243, 0x44454647, 0x48494A4B, 0x4C4D4E4F,
	0x50515253, 0x54555657, 0x58595A5B, 0x5C5D5E5F,
	0x60616263, 0x64656667, 0x68696A6B, 0x6C6D6E6F,
	0x70717273, 0x74757677, 0x78797A7B, 0x7C7D7E7F,
}

var final = [16]uint32{
	0xaaaaaaa0, 0xaaaaaaa1, 0xaaaaaaa2, 0xaaaaaaa3,
	0xaaaaaaa4, 0xaaaaaaa5, 0xaaaaaaa6, 0xaaaaaaa7,
	0xaaaaaaa8, 0xaaaaaaa9, 0xaaaaaaaa, 0xaaaaaaab,
	0xaaaaaaac, 0xaaaaaaad, 0xaaaaaaae, 0xaaaaaaaf,
}

type digest struct {
	h   [16]uint32
	buf [BlockSize]byte
	nx  int
	len uint64
}

// New returns a new hash.Hash computing BMW-256.
func New() hash.Hash {
	d := new(digest)
	d.Reset()
	return d
}

// Sum256 returns the BMW-256 checksum of data.
func Sum256(data []byte) [Size]byte {
	var d digest
	d.Reset()
	d.Write(data)
	return d.checkSum()
}

func (d *digest) Reset() {
	d.h = initVal
	d.nx = 0
	d.len = 0
}

func (d *digest) Size() int { return Size }

func (d *digest) BlockSize() int { return BlockSize }

func (d *digest) Write(p []byte) (int, error) {
	n := len(p)
	d.len += uint64(n)
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
	bitLen := d.len << 3

	var tmp [BlockSize]byte
	copy(tmp[:], d.buf[:d.nx])
	tmp[d.nx] = 0x80
	if d.nx+1 > BlockSize-8 {
		d.block(tmp[:])
		tmp = [BlockSize]byte{}
	}
	binary.LittleEndian.PutUint64(tmp[BlockSize-8:], bitLen)
	d.block(tmp[:])

	// Final compression: the chaining value becomes the message.
	m := d.h
	d.h = final
	compress(&d.h, &m)

	var out [Size]byte
	for i := 0; i < Size/4; i++ {
		binary.LittleEndian.PutUint32(out[i*4:], d.h[16-Size/4+i])
	}
	return out
}

func (d *digest) block(p []byte) {
	var m [16]uint32
	for i := range m {
		m[i] = binary.LittleEndian.Uint32(p[i*4:])
	}
	compress(&d.h, &m)
}

func s0(x uint32) uint32 {
	return x>>1 ^ x<<3 ^ bits.RotateLeft32(x, 4) ^ bits.RotateLeft32(x, 19)
}

func s1(x uint32) uint32 {
	return x>>1 ^ x<<2 ^ bits.RotateLeft32(x, 8) ^ bits.RotateLeft32(x, 23)
}

func s2(x uint32) uint32 {
	return x>>2 ^ x<<1 ^ bits.RotateLeft32(x, 12) ^ bits.RotateLeft32(x, 25)
}

func s3(x uint32) uint32 {
	return x>>2 ^ x<<2 ^ bits.RotateLeft32(x, 15) ^ bits.RotateLeft32(x, 29)
}

func s4(x uint32) uint32 { return x>>1 ^ x }

func s5(x uint32) uint32 { return x>>2 ^ x }

var sBox = [5]func(uint32) uint32{s0, s1, s2, s3, s4}

// expand1Fn is the s-function applied to q[j-16+i] in the first expansion.
var expand1Fn = [4]func(uint32) uint32{s1, s2, s3, s0}

// expand2Rot is the rotation applied to the odd terms of the second
// expansion.
var expand2Rot = [7]int{3, 7, 13, 16, 19, 23, 27}

// addElement mixes message words into expanded word j (16 <= j < 32).
func addElement(h, m *[16]uint32, j int) uint32 {
	a, b, c := (j-16)%16, (j-13)%16, (j-6)%16
	return (bits.RotateLeft32(m[a], a+1) + bits.RotateLeft32(m[b], b+1) -
		bits.RotateLeft32(m[c], c+1) + uint32(j)*0x05555555) ^ h[(j-16+7)%16]
}

// compress is the BMW-256 compression function.  h is updated in place.
func compress(h, m *[16]uint32) {
	var x [16]uint32
	for i := range x {
		x[i] = m[i] ^ h[i]
	}

	w := [16]uint32{
		x[5] - x[7] + x[10] + x[13] + x[14],
		x[6] - x[8] + x[11] + x[14] - x[15],
		x[0] + x[7] + x[9] - x[12] + x[15],
		x[0] - x[1] + x[8] - x[10] + x[13],
		x[1] + x[2] + x[9] - x[11] - x[14],
		x[3] - x[2] + x[10] - x[12] + x[15],
		x[4] - x[0] - x[3] - x[11] + x[13],
		x[1] - x[4] - x[5] - x[12] - x[14],
		x[2] - x[5] - x[6] + x[13] - x[15],
		x[0] - x[3] + x[6] - x[7] + x[14],
		x[8] - x[1] - x[4] - x[7] + x[15],
		x[8] - x[0] - x[2] - x[5] + x[9],
		x[1] + x[3] - x[6] - x[9] + x[10],
		x[2] + x[4] + x[7] + x[10] + x[11],
		x[3] - x[5] + x[8] - x[11] - x[12],
		x[12] - x[4] - x[6] - x[9] + x[13],
	}

	var q [32]uint32
	for i := 0; i < 16; i++ {
		q[i] = sBox[i%5](w[i]) + h[(i+1)%16]
	}
	for j := 16; j < 18; j++ {
		var sum uint32
		for i := 0; i < 16; i++ {
			sum += expand1Fn[i%4](q[j-16+i])
		}
		q[j] = sum + addElement(h, m, j)
	}
	for j := 18; j < 32; j++ {
		var sum uint32
		for i := 0; i < 14; i++ {
			v := q[j-16+i]
			if i%2 == 1 {
				v = bits.RotateLeft32(v, expand2Rot[i/2])
			}
			sum += v
		}
		sum += s4(q[j-2]) + s5(q[j-1])
		q[j] = sum + addElement(h, m, j)
	}

	xl := q[16] ^ q[17] ^ q[18] ^ q[19] ^ q[20] ^ q[21] ^ q[22] ^ q[23]
	xh := xl ^ q[24] ^ q[25] ^ q[26] ^ q[27] ^ q[28] ^ q[29] ^ q[30] ^ q[31]

	h[0] = (xh<<5 ^ q[16]>>5 ^ m[0]) + (xl ^ q[24] ^ q[0])
	h[1] = (xh>>7 ^ q[17]<<8 ^ m[1]) + (xl ^ q[25] ^ q[1])
	h[2] = (xh>>5 ^ q[18]<<5 ^ m[2]) + (xl ^ q[26] ^ q[2])
	h[3] = (xh>>1 ^ q[19]<<5 ^ m[3]) + (xl ^ q[27] ^ q[3])
	h[4] = (xh>>3 ^ q[20] ^ m[4]) + (xl ^ q[28] ^ q[4])
	h[5] = (xh<<6 ^ q[21]>>6 ^ m[5]) + (xl ^ q[29] ^ q[5])
	h[6] = (xh>>4 ^ q[22]<<6 ^ m[6]) + (xl ^ q[30] ^ q[6])
	h[7] = (xh>>11 ^ q[23]<<2 ^ m[7]) + (xl ^ q[31] ^ q[7])
	h[8] = bits.RotateLeft32(h[4], 9) + (xh ^ q[24] ^ m[8]) + (xl<<8 ^ q[23] ^ q[8])
	h[9] = bits.RotateLeft32(h[5], 10) + (xh ^ q[25] ^ m[9]) + (xl>>6 ^ q[16] ^ q[9])
	h[10] = bits.RotateLeft32(h[6], 11) + (xh ^ q[26] ^ m[10]) + (xl<<6 ^ q[17] ^ q[10])
	h[11] = bits.RotateLeft32(h[7], 12) + (xh ^ q[27] ^ m[11]) + (xl<<4 ^ q[18] ^ q[11])
	h[12] = bits.RotateLeft32(h[0], 13) + (xh ^ q[28] ^ m[12]) + (xl>>3 ^ q[19] ^ q[12])
	h[13] = bits.RotateLeft32(h[1], 14) + (xh ^ q[29] ^ m[13]) + (xl>>4 ^ q[20] ^ q[13])
	h[14] = bits.RotateLeft32(h[2], 15) + (xh ^ q[30] ^ m[14]) + (xl>>7 ^ q[21] ^ q[14])
	h[15] = bits.RotateLeft32(h[3], 16) + (xh ^ q[31] ^ m[15]) + (xl>>2 ^ q[22] ^ q[15])
}
