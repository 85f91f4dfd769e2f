package lyra2

import (
	"encoding/binary"
	"math/bits"
)

const (
	// BlockLenInt64 is the sponge rate in words: 768 bits.
	BlockLenInt64 = 12
	// BlockLenBytes is the sponge rate in bytes.
	BlockLenBytes = BlockLenInt64 * 8

	// blockLenBlake2SafeInt64 is the block size used only while absorbing
	// the padded password, salt and parameters: 512 bits.
	blockLenBlake2SafeInt64 = 8
	blockLenBlake2SafeBytes = blockLenBlake2SafeInt64 * 8

	stateLenInt64 = 16

	fullRounds    = 12
	reducedRounds = 1
)

var blake2bIV = [8]uint64{
	0x6a09e667f3bcc908, 0xbb67ae8584caa73b,
	0x3c6ef372fe94f82b, 0xa54ff53a5f1d36f1,
	0x510e527fade682d1, 0x9b05688c2b3e6c1f,
	0x1f83d9abfb41bd6b, 0x5be0cd19137e2179,
}

// sponge is the duplex state: the first BlockLenInt64 words are the rate,
// the remaining four are capacity.
type sponge [stateLenInt64]uint64

// newSponge returns a state whose low half is zero and whose high half holds
// the Blake2b IV.  An all-zero state is a fixed point of G, so the IV cannot
// be left out.
func newSponge() *sponge {
	s := new(sponge)
	copy(s[8:], blake2bIV[:])
	return s
}

// g is Blake2b's G function without the message words.
func g(a, b, c, d uint64) (uint64, uint64, uint64, uint64) {
	a += b
	d = bits.RotateLeft64(d^a, -32)
	c += d
	b = bits.RotateLeft64(b^c, -24)
	a += b
	d = bits.RotateLeft64(d^a, -16)
	c += d
	b = bits.RotateLeft64(b^c, -63)
	return a, b, c, d
}

// round is one round of Blake2b's compression function over the whole state.
func (s *sponge) round() {
	s[0], s[4], s[8], s[12] = g(s[0], s[4], s[8], s[12])
	s[1], s[5], s[9], s[13] = g(s[1], s[5], s[9], s[13])
	s[2], s[6], s[10], s[14] = g(s[2], s[6], s[10], s[14])
	s[3], s[7], s[11], s[15] = g(s[3], s[7], s[11], s[15])
	s[0], s[5], s[10], s[15] = g(s[0], s[5], s[10], s[15])
	s[1], s[6], s[11], s[12] = g(s[1], s[6], s[11], s[12])
	s[2], s[7], s[8], s[13] = g(s[2], s[7], s[8], s[13])
	s[3], s[4], s[9], s[14] = g(s[3], s[4], s[9], s[14])
}

// permute applies the round function the given number of times.
func (s *sponge) permute(rounds int) {
	for i := 0; i < rounds; i++ {
		s.round()
	}
}

// absorbBlock XORs a full rate block into the state and permutes.
func (s *sponge) absorbBlock(in []uint64) {
	for i := 0; i < BlockLenInt64; i++ {
		s[i] ^= in[i]
	}
	s.permute(fullRounds)
}

// absorbBlockBlake2Safe XORs a 512-bit block into the state and permutes.
func (s *sponge) absorbBlockBlake2Safe(in []uint64) {
	for i := 0; i < blockLenBlake2SafeInt64; i++ {
		s[i] ^= in[i]
	}
	s.permute(fullRounds)
}

// squeeze fills out from the rate, little-endian, permuting after every
// full rate block.
func (s *sponge) squeeze(out []byte) {
	var buf [BlockLenBytes]byte
	for len(out) > 0 {
		for i := 0; i < BlockLenInt64; i++ {
			binary.LittleEndian.PutUint64(buf[i*8:], s[i])
		}
		n := copy(out, buf[:])
		out = out[n:]
		s.permute(fullRounds)
	}
}

// reducedSqueezeRow0 fills row 0 from the highest column to the lowest,
// one reduced permutation per column.
func (s *sponge) reducedSqueezeRow0(rowOut []uint64, nCols int) {
	ptr := (nCols - 1) * BlockLenInt64
	for i := 0; i < nCols; i++ {
		copy(rowOut[ptr:ptr+BlockLenInt64], s[:BlockLenInt64])
		ptr -= BlockLenInt64
		s.permute(reducedRounds)
	}
}

// reducedDuplexRow1 absorbs rowIn column by column and writes
// rowIn[col] XOR rand into rowOut in reverse column order.
func (s *sponge) reducedDuplexRow1(rowIn, rowOut []uint64, nCols int) {
	ptrIn := 0
	ptrOut := (nCols - 1) * BlockLenInt64
	for i := 0; i < nCols; i++ {
		in := rowIn[ptrIn : ptrIn+BlockLenInt64]
		out := rowOut[ptrOut : ptrOut+BlockLenInt64]
		for j := 0; j < BlockLenInt64; j++ {
			s[j] ^= in[j]
		}
		s.permute(reducedRounds)
		for j := 0; j < BlockLenInt64; j++ {
			out[j] = in[j] ^ s[j]
		}
		ptrIn += BlockLenInt64
		ptrOut -= BlockLenInt64
	}
}

// reducedDuplexRowSetup absorbs M[rowIn] + M[rowInOut] (wordwise, no carry
// between words), then sets M[rowOut][C-1-col] = M[rowIn][col] XOR rand and
// M[rowInOut][col] ^= rotW(rand).
func (s *sponge) reducedDuplexRowSetup(rowIn, rowInOut, rowOut []uint64, nCols int) {
	ptrIn := 0
	ptrOut := (nCols - 1) * BlockLenInt64
	for i := 0; i < nCols; i++ {
		in := rowIn[ptrIn : ptrIn+BlockLenInt64]
		inOut := rowInOut[ptrIn : ptrIn+BlockLenInt64]
		out := rowOut[ptrOut : ptrOut+BlockLenInt64]
		for j := 0; j < BlockLenInt64; j++ {
			s[j] ^= in[j] + inOut[j]
		}
		s.permute(reducedRounds)
		for j := 0; j < BlockLenInt64; j++ {
			out[j] = in[j] ^ s[j]
		}
		s.xorRotW(inOut)
		ptrIn += BlockLenInt64
		ptrOut -= BlockLenInt64
	}
}

// reducedDuplexRow absorbs M[rowIn] + M[rowInOut], then sets
// M[rowOut][col] ^= rand and M[rowInOut][col] ^= rotW(rand).  The rows may
// be the same row; each column is fully read before it is written.
func (s *sponge) reducedDuplexRow(rowIn, rowInOut, rowOut []uint64, nCols int) {
	ptr := 0
	for i := 0; i < nCols; i++ {
		in := rowIn[ptr : ptr+BlockLenInt64]
		inOut := rowInOut[ptr : ptr+BlockLenInt64]
		out := rowOut[ptr : ptr+BlockLenInt64]
		for j := 0; j < BlockLenInt64; j++ {
			s[j] ^= in[j] + inOut[j]
		}
		s.permute(reducedRounds)
		for j := 0; j < BlockLenInt64; j++ {
			out[j] ^= s[j]
		}
		s.xorRotW(inOut)
		ptr += BlockLenInt64
	}
}

// xorRotW XORs the rate, rotated by one word, into block.
func (s *sponge) xorRotW(block []uint64) {
	block[0] ^= s[BlockLenInt64-1]
	for j := 1; j < BlockLenInt64; j++ {
		block[j] ^= s[j-1]
	}
}
