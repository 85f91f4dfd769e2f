package coinparam

import (
	"encoding/binary"
	"fmt"
	"math/big"

	"github.com/decred/dcrd/blockchain/standalone/v2"
)

// HeaderBits returns the compact target carried by a serialized header.
func HeaderBits(header []byte) (uint32, error) {
	if len(header) != HeaderSize {
		return 0, fmt.Errorf("%w: got %d bytes, want %d", ErrHeaderSize,
			len(header), HeaderSize)
	}
	return binary.LittleEndian.Uint32(header[bitsOffset:]), nil
}

// Difficulty returns how many times harder the compact target bits is than
// the easiest target the network allows.  A zero or negative target gives 0.
func (p *Params) Difficulty(bits uint32) float64 {
	target := standalone.CompactToBig(bits)
	if target.Sign() <= 0 {
		return 0
	}
	// calculation of the ratio between the two 32-byte targets
	easiest := standalone.CompactToBig(p.PowLimitBits)
	diff, _ := new(big.Rat).SetFrac(easiest, target).Float64()
	return diff
}
