package coinparam

import (
	"encoding/hex"
	"errors"
	"math/big"
	"sort"

	"github.com/decred/dcrd/chaincfg/chainhash"
	"github.com/mit-dci/lyra2/hashchain"
)

// Params defines a network by the parameters needed to check its proof of
// work.
type Params struct {
	// Name defines a human-readable identifier for the network.
	Name string

	// PowLimit defines the highest allowed proof of work value for a block
	// as a uint256.
	PowLimit *big.Int

	// PowLimitBits defines the highest allowed proof of work value for a
	// block in compact form.
	PowLimitBits uint32

	// PoWSchedule lists the hash chains used for proof of work, ordered by
	// the height at which each one takes effect.  The first entry covers
	// every height below the second.
	PoWSchedule []PoWEpoch

	// GenesisHeader is the serialized header of the first block.
	GenesisHeader [HeaderSize]byte

	// GenesisHash is the double SHA-256 of GenesisHeader.
	GenesisHash *chainhash.Hash
}

// PoWEpoch is a height range with a single proof of work chain.
type PoWEpoch struct {
	StartHeight int32
	Recipe      *hashchain.Recipe
}

// These variables are the chain proof-of-work limit parameters for each default
// network.
var (
	// bigOne is 1 represented as a big.Int.  It is defined here to avoid
	// the overhead of creating it multiple times.
	bigOne = big.NewInt(1)

	// vertcoinPowLimit is the highest proof of work value a Vertcoin block
	// can have on the main and test networks.  It is the value 2^236 - 1.
	vertcoinPowLimit = new(big.Int).Sub(new(big.Int).Lsh(bigOne, 236), bigOne)

	// regressionPowLimit is the highest proof of work value a block can
	// have for the regression test network.  It is the value 2^255 - 1.
	regressionPowLimit = new(big.Int).Sub(new(big.Int).Lsh(bigOne, 255), bigOne)
)

func init() {
	// Register all default networks when the package is initialized.
	mustRegister(&VertcoinParams)
	mustRegister(&VertcoinTestNetParams)
	mustRegister(&VertcoinRegTestParams)
}

// mustRegister performs the same function as Register except it panics if there
// is an error.  This should only be called from package init functions.
func mustRegister(params *Params) {
	if err := Register(params); err != nil {
		panic("failed to register network: " + err.Error())
	}
}

// Register registers the network parameters under their name.  This may
// error with ErrDuplicateNet if the name is already taken, or ErrNoSchedule
// if the parameters carry no proof of work chain.
func Register(params *Params) error {
	if _, ok := registeredNets[params.Name]; ok {
		return ErrDuplicateNet
	}
	if len(params.PoWSchedule) == 0 {
		return ErrNoSchedule
	}
	if !sort.SliceIsSorted(params.PoWSchedule, func(i, j int) bool {
		return params.PoWSchedule[i].StartHeight < params.PoWSchedule[j].StartHeight
	}) {
		return ErrUnsortedSchedule
	}
	registeredNets[params.Name] = params
	return nil
}

var (
	// ErrDuplicateNet describes an error where the parameters for a
	// network could not be set due to the network already being a standard
	// network or previously-registered into this package.
	ErrDuplicateNet = errors.New("duplicate network")

	// ErrUnknownNet describes a lookup of a network name that was never
	// registered.
	ErrUnknownNet = errors.New("unknown network")

	// ErrNoSchedule describes parameters without any proof of work chain.
	ErrNoSchedule = errors.New("network has no proof of work schedule")

	// ErrUnsortedSchedule describes a schedule whose epochs are not in
	// ascending height order.
	ErrUnsortedSchedule = errors.New("proof of work schedule is not sorted by height")

	// ErrHeaderSize describes a block header that is not exactly
	// HeaderSize bytes long.
	ErrHeaderSize = errors.New("block header has the wrong size")
)

var registeredNets = make(map[string]*Params)

// ByName returns the registered parameters for name.
func ByName(name string) (*Params, error) {
	p, ok := registeredNets[name]
	if !ok {
		return nil, ErrUnknownNet
	}
	return p, nil
}

// NetNames returns the names of all registered networks, sorted.
func NetNames() []string {
	names := make([]string, 0, len(registeredNets))
	for name := range registeredNets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// newHashFromStr converts the passed big-endian hex string into a
// chainhash.Hash.  It only differs from the one available in chainhash in that
// it panics on an error since it will only (and must only) be called with
// hard-coded, and therefore known good, hashes.
func newHashFromStr(hexStr string) *chainhash.Hash {
	hash, err := chainhash.NewHashFromStr(hexStr)
	if err != nil {
		panic(err)
	}
	return hash
}

// Convert a hex-encoded header into an 80 byte array.
func newHeaderFromStr(hexStr string) [HeaderSize]byte {
	if len(hexStr) != HeaderSize*2 {
		panic("hard-coded header has the wrong length")
	}

	hdrSlice, err := hex.DecodeString(hexStr)
	if err != nil {
		panic(err)
	}

	var headerArr [HeaderSize]byte
	copy(headerArr[:], hdrSlice)
	return headerArr
}
