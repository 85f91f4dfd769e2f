package coinparam

import (
	"crypto/sha256"
	"sort"

	"github.com/decred/dcrd/blockchain/standalone/v2"
	"github.com/decred/dcrd/chaincfg/chainhash"
	"github.com/mit-dci/lyra2/hashchain"
	"github.com/mit-dci/lyra2/logging"
)

const (
	// HeaderSize is the size of a serialized block header.
	HeaderSize = 80

	// bitsOffset is where the compact target sits in a header.
	bitsOffset = 72
)

// PoWRecipe returns the chain used for proof of work at height.  Heights
// below the first epoch use the first epoch's chain.  It returns nil for
// parameters without a schedule.
func (p *Params) PoWRecipe(height int32) *hashchain.Recipe {
	if len(p.PoWSchedule) == 0 {
		return nil
	}
	i := sort.Search(len(p.PoWSchedule), func(i int) bool {
		return p.PoWSchedule[i].StartHeight > height
	})
	if i > 0 {
		i--
	}
	r := p.PoWSchedule[i].Recipe
	logging.Debugf("%s height %d uses %s", p.Name, height, r.Name)
	return r
}

// PoWFunction calculates the proof of work hash of a serialized header at
// height.
func (p *Params) PoWFunction(header []byte, height int32) (chainhash.Hash, error) {
	var h chainhash.Hash
	r := p.PoWRecipe(height)
	if r == nil {
		return h, ErrNoSchedule
	}
	sum, err := r.Sum(header)
	if err != nil {
		return h, err
	}
	if err := h.SetBytes(sum); err != nil {
		return h, err
	}
	return h, nil
}

// CheckProofOfWork hashes an 80 byte header with the chain for height and
// checks the result against the target encoded in the header.  Target and
// hash failures are returned as standalone.RuleError values.
func (p *Params) CheckProofOfWork(header []byte, height int32) error {
	_, err := p.CheckHeader(header, height)
	return err
}

// CheckHeader is CheckProofOfWork that also returns the proof of work hash.
// The hash is only meaningful when the header has the right size and the
// chain succeeded, even if the target check failed.
func (p *Params) CheckHeader(header []byte, height int32) (chainhash.Hash, error) {
	bits, err := HeaderBits(header)
	if err != nil {
		return chainhash.Hash{}, err
	}

	hash, err := p.PoWFunction(header, height)
	if err != nil {
		return hash, err
	}
	if err := standalone.CheckProofOfWork(&hash, bits, p.PowLimit); err != nil {
		logging.Warnf("%s height %d: %v", p.Name, height, err)
		return hash, err
	}
	return hash, nil
}

// BlockHash returns the double SHA-256 identity hash of a header, which is
// unrelated to its proof of work hash after the scrypt era.
func BlockHash(header []byte) chainhash.Hash {
	first := sha256.Sum256(header)
	return chainhash.Hash(sha256.Sum256(first[:]))
}
