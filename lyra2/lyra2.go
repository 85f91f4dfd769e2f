// Package lyra2 implements the Lyra2 memory-hard function with a Blake2b
// based sponge, in the three flavours used by the Lyra2RE proof-of-work
// chains.
//
// Every call allocates its own sponge and memory matrix and drops both
// before returning, so concurrent calls never share state.
package lyra2

import (
	"encoding/binary"
	"fmt"
	"strings"
)

// Version selects the index rules used during the setup and wandering
// phases.
type Version uint8

const (
	// V1 is the original Lyra2RE function.  Its bootstrap steps through the
	// padded input 64 words at a time instead of 8.
	V1 Version = iota + 1

	// V2 is the Lyra2REv2 function with corrected bootstrap indices.
	V2

	// V3 is the Lyra2REv3 function: V2 setup, but the wandering phase
	// selects row* through a selector word carried between iterations.
	V3
)

// variant holds everything that differs between versions.
type variant struct {
	name string

	// inputStride is the distance in words between consecutive input
	// blocks absorbed during bootstrap.
	inputStride int

	// pickRow returns row* for one wandering iteration.  instance is
	// per-call state owned by the caller.
	pickRow func(s *sponge, instance *uint64, nRows uint64) uint64
}

func pickRowFirstWord(s *sponge, _ *uint64, nRows uint64) uint64 {
	return s[0] % nRows
}

func pickRowChained(s *sponge, instance *uint64, nRows uint64) uint64 {
	*instance = s[*instance&0xf]
	return s[*instance&0xf] % nRows
}

var variants = map[Version]variant{
	V1: {name: "v1", inputStride: blockLenBlake2SafeBytes, pickRow: pickRowFirstWord},
	V2: {name: "v2", inputStride: blockLenBlake2SafeInt64, pickRow: pickRowFirstWord},
	V3: {name: "v3", inputStride: blockLenBlake2SafeInt64, pickRow: pickRowChained},
}

// String returns the short name of the version.
func (v Version) String() string {
	if vr, ok := variants[v]; ok {
		return vr.name
	}
	return fmt.Sprintf("Version(%d)", uint8(v))
}

// ParseVersion parses "v1", "v2" or "v3" (the leading v is optional).
func ParseVersion(s string) (Version, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	if !strings.HasPrefix(name, "v") {
		name = "v" + name
	}
	for v, vr := range variants {
		if vr.name == name {
			return v, nil
		}
	}
	return 0, makeError(ErrInvalidArgument,
		fmt.Sprintf("unknown lyra2 version %q", s))
}

// Sum runs Lyra2 and returns a new kLen byte key.
func (v Version) Sum(kLen int, pwd, salt []byte, timeCost, nRows,
	nCols uint64) ([]byte, error) {

	if kLen <= 0 {
		return nil, makeError(ErrInvalidArgument,
			fmt.Sprintf("output length %d is not positive", kLen))
	}
	k := make([]byte, kLen)
	if err := v.Calculate(k, pwd, salt, timeCost, nRows, nCols); err != nil {
		return nil, err
	}
	return k, nil
}

// Calculate fills k with the Lyra2 key derived from pwd and salt.  The
// "basil" absorbed with them is kLen || pwdlen || saltlen || timeCost ||
// nRows || nCols, each a little-endian uint64.
//
// k, nRows and nCols must be non-zero, otherwise ErrInvalidArgument is
// returned and k is left untouched.  Any password or salt, including empty
// ones, is accepted.
func (v Version) Calculate(k, pwd, salt []byte, timeCost, nRows,
	nCols uint64) error {

	vr, ok := variants[v]
	switch {
	case !ok:
		return makeError(ErrInvalidArgument,
			fmt.Sprintf("unknown lyra2 version %d", uint8(v)))
	case len(k) == 0:
		return makeError(ErrInvalidArgument, "output length is zero")
	case nRows == 0:
		return makeError(ErrInvalidArgument, "row count is zero")
	case nCols == 0:
		return makeError(ErrInvalidArgument, "column count is zero")
	}

	m, err := newMatrix(nRows, nCols)
	if err != nil {
		return err
	}
	s := newSponge()

	// Setup: bootstrap the sponge, then fill every row.
	input, nBlocks := paddedInput(vr, len(k), pwd, salt, timeCost, nRows, nCols)
	for i := 0; i < nBlocks; i++ {
		off := i * vr.inputStride
		s.absorbBlockBlake2Safe(input[off : off+blockLenBlake2SafeInt64])
	}
	rowa := setup(s, m)

	// Wandering: revisit rows in a data-dependent order.
	rowa = wander(s, m, vr, timeCost, nRows, rowa)

	// Wrap-up: absorb the first block of the last row* and squeeze.
	s.absorbBlock(m.row(rowa)[:BlockLenInt64])
	s.squeeze(k)
	return nil
}

// paddedInput returns pad(pwd || salt || basil) as words, with 10*1
// padding to a 512-bit boundary, and the number of blocks to absorb.  The
// slice is zero extended so that every block at a multiple of the variant's
// stride can be read.
func paddedInput(vr variant, kLen int, pwd, salt []byte, timeCost, nRows,
	nCols uint64) ([]uint64, int) {

	inLen := len(pwd) + len(salt) + 6*8
	nBlocks := inLen/blockLenBlake2SafeBytes + 1

	buf := make([]byte, nBlocks*blockLenBlake2SafeBytes)
	n := copy(buf, pwd)
	n += copy(buf[n:], salt)
	basil := [6]uint64{
		uint64(kLen), uint64(len(pwd)), uint64(len(salt)),
		timeCost, nRows, nCols,
	}
	for _, b := range basil {
		binary.LittleEndian.PutUint64(buf[n:], b)
		n += 8
	}
	buf[n] = 0x80
	buf[len(buf)-1] ^= 0x01

	nWords := nBlocks * blockLenBlake2SafeInt64
	if need := (nBlocks-1)*vr.inputStride + blockLenBlake2SafeInt64; need > nWords {
		nWords = need
	}
	words := make([]uint64, nWords)
	for i := 0; i < nBlocks*blockLenBlake2SafeInt64; i++ {
		words[i] = binary.LittleEndian.Uint64(buf[i*8:])
	}
	return words, nBlocks
}

// setup fills the matrix.  Rows 0 and 1 come straight from the sponge; each
// later row also folds in a previously written row picked by a window that
// doubles every time it has been fully revisited.  It returns the final
// row*.
func setup(s *sponge, m *matrix) uint64 {
	nCols := m.nCols
	nRows := m.numRows()

	s.reducedSqueezeRow0(m.row(0), nCols)
	s.reducedDuplexRow1(m.row(0), m.row(1), nCols)

	var (
		row    uint64 = 2
		prev   uint64 = 1
		rowa   uint64
		step   uint64 = 1
		window uint64 = 2
		gap    int64  = 1
	)
	for row < nRows {
		s.reducedDuplexRowSetup(m.row(prev), m.row(rowa), m.row(row), nCols)

		rowa = (rowa + step) & (window - 1)
		prev = row
		row++

		if rowa == 0 {
			step = uint64(int64(window) + gap)
			window *= 2
			gap = -gap
		}
	}
	return rowa
}

// wander runs timeCost passes over the first nRows rows.  Odd passes stride
// by about half the matrix, even passes walk backwards; row* is
// pseudorandom.  nRows is the caller's row count, which can be below the
// number of rows setup wrote.  It returns the last row*.
func wander(s *sponge, m *matrix, vr variant, timeCost, nRows,
	rowa uint64) uint64 {

	nCols := m.nCols

	var (
		row      uint64
		prev     = m.numRows() - 1 // last row written by setup
		instance uint64
	)
	for tau := uint64(1); tau <= timeCost; tau++ {
		step := int64(nRows/2) - 1
		if tau%2 == 0 {
			step = -1
		}
		for {
			rowa = vr.pickRow(s, &instance, nRows)
			s.reducedDuplexRow(m.row(prev), m.row(rowa), m.row(row), nCols)
			prev = row
			row = advance(row, step, nRows)
			if row == 0 {
				break
			}
		}
	}
	return rowa
}

// advance moves row by step, wrapping into [0, nRows).
func advance(row uint64, step int64, nRows uint64) uint64 {
	r := (int64(row) + step) % int64(nRows)
	if r < 0 {
		r += int64(nRows)
	}
	return uint64(r)
}
