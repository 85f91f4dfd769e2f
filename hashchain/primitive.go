package hashchain

import (
	"sort"

	"github.com/aead/skein"
	"github.com/decred/dcrd/crypto/blake256"
	"github.com/deedlefake/crypto/groestl256"
	"github.com/mit-dci/lyra2/crypto/bmw"
	"github.com/mit-dci/lyra2/crypto/cubehash"
	"golang.org/x/crypto/scrypt"
	"golang.org/x/crypto/sha3"
)

// Primitive hashes data into a fresh digest.  The input is never modified or
// retained.
type Primitive func(data []byte) ([]byte, error)

// Names of the primitives recipes can refer to.
const (
	Blake256    = "blake256"
	Keccak256   = "keccak256"
	Skein256    = "skein256"
	Groestl256  = "groestl256"
	CubeHash256 = "cubehash256"
	BMW256      = "bmw256"
	ScryptN     = "scryptn"
)

// scrypt-N parameters used by Vertcoin before the Lyra2RE fork.
const (
	scryptCost   = 2048
	scryptR      = 1
	scryptP      = 1
	scryptKeyLen = 32
)

var primitives = map[string]Primitive{
	Blake256: func(data []byte) ([]byte, error) {
		sum := blake256.Sum256(data)
		return sum[:], nil
	},
	Keccak256: func(data []byte) ([]byte, error) {
		h := sha3.NewLegacyKeccak256()
		if _, err := h.Write(data); err != nil {
			return nil, err
		}
		return h.Sum(nil), nil
	},
	// Skein-512 with a 256 bit output.
	Skein256: func(data []byte) ([]byte, error) {
		var sum [32]byte
		skein.Sum256(&sum, data, nil)
		return sum[:], nil
	},
	Groestl256: func(data []byte) ([]byte, error) {
		sum := groestl256.Sum(data)
		return sum[:], nil
	},
	CubeHash256: func(data []byte) ([]byte, error) {
		sum := cubehash.Sum256(data)
		return sum[:], nil
	},
	BMW256: func(data []byte) ([]byte, error) {
		sum := bmw.Sum256(data)
		return sum[:], nil
	},
	// Password and salt are both the input, as in Litecoin style scrypt
	// proof of work.
	ScryptN: func(data []byte) ([]byte, error) {
		return scrypt.Key(data, data, scryptCost, scryptR, scryptP, scryptKeyLen)
	},
}

// LookupPrimitive returns the primitive registered under name.
func LookupPrimitive(name string) (Primitive, error) {
	p, ok := primitives[name]
	if !ok {
		return nil, unknownPrimitive(name)
	}
	return p, nil
}

// PrimitiveNames returns the registered primitive names in sorted order.
func PrimitiveNames() []string {
	names := make([]string, 0, len(primitives))
	for name := range primitives {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
