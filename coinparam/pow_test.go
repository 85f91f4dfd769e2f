package coinparam

import (
	"encoding/binary"
	"encoding/hex"
	"errors"
	"math"
	"testing"

	"github.com/davecgh/go-spew/spew"
	"github.com/decred/dcrd/blockchain/standalone/v2"
	"github.com/mit-dci/lyra2/hashchain"
)

func TestPoWRecipe(t *testing.T) {
	tests := []struct {
		height int32
		want   *hashchain.Recipe
	}{
		{-1, hashchain.ScryptNRecipe},
		{0, hashchain.ScryptNRecipe},
		{VertcoinLyra2REHeight - 1, hashchain.ScryptNRecipe},
		{VertcoinLyra2REHeight, hashchain.Lyra2RERecipe},
		{VertcoinLyra2REv2Height - 1, hashchain.Lyra2RERecipe},
		{VertcoinLyra2REv2Height, hashchain.Lyra2REv2Recipe},
		{VertcoinLyra2REv3Height - 1, hashchain.Lyra2REv2Recipe},
		{VertcoinLyra2REv3Height, hashchain.Lyra2REv3Recipe},
		{2000000, hashchain.Lyra2REv3Recipe},
	}

	for _, test := range tests {
		if got := VertcoinParams.PoWRecipe(test.height); got != test.want {
			t.Fatalf("height %d: got %s want %s", test.height, got.Name,
				test.want.Name)
		}
	}
	if got := VertcoinTestNetParams.PoWRecipe(0); got != hashchain.Lyra2REv2Recipe {
		t.Fatalf("testnet got %s", got.Name)
	}
}

func TestGenesisProofOfWork(t *testing.T) {
	for _, p := range []*Params{&VertcoinParams, &VertcoinRegTestParams} {
		if got := BlockHash(p.GenesisHeader[:]); got != *p.GenesisHash {
			t.Fatalf("%s: genesis hash %v want %v", p.Name, got,
				p.GenesisHash)
		}
		if err := p.CheckProofOfWork(p.GenesisHeader[:], 0); err != nil {
			t.Fatalf("%s: %v\n%s", p.Name, err, spew.Sdump(p.PoWSchedule))
		}
	}

	hash, err := VertcoinParams.CheckHeader(VertcoinParams.GenesisHeader[:], 0)
	if err != nil {
		t.Fatal(err)
	}
	want := "000005cc425e3c06dd1416866440a70dc9eb4710b2e9c71653c8e197493cbbb9"
	if hash.String() != want {
		t.Fatalf("got %v want %s", hash, want)
	}
}

func TestCheckProofOfWorkFailures(t *testing.T) {
	header := VertcoinRegTestParams.GenesisHeader

	// nonce 0 misses the regtest target under scrypt
	binary.LittleEndian.PutUint32(header[76:], 0)
	err := VertcoinRegTestParams.CheckProofOfWork(header[:], 0)
	if !errors.Is(err, standalone.ErrHighHash) {
		t.Fatalf("got %v want ErrHighHash", err)
	}
	var rerr standalone.RuleError
	if !errors.As(err, &rerr) {
		t.Fatalf("%v is not a RuleError", err)
	}

	// a target above the network limit
	header = VertcoinParams.GenesisHeader
	binary.LittleEndian.PutUint32(header[72:], 0x207fffff)
	err = VertcoinParams.CheckProofOfWork(header[:], 0)
	if !errors.Is(err, standalone.ErrUnexpectedDifficulty) {
		t.Fatalf("got %v want ErrUnexpectedDifficulty", err)
	}

	for _, n := range []int{0, 79, 81} {
		err := VertcoinParams.CheckProofOfWork(make([]byte, n), 0)
		if !errors.Is(err, ErrHeaderSize) {
			t.Fatalf("%d bytes: got %v want ErrHeaderSize", n, err)
		}
	}

	// A Lyra2REv2 era header whose hash is far above its target.
	raw, _ := hex.DecodeString("700000005d385ba114d079971b29a9418fd0549e" +
		"7d68a95c7f168621a314201000000000578586d149fd07b22f3a8a347c516de7" +
		"052f034d2b76ff68e0d6ecff9b77a45489e3fd511732011df0731000")
	for _, height := range []int32{VertcoinLyra2REHeight,
		VertcoinLyra2REv2Height, VertcoinLyra2REv3Height} {

		err := VertcoinParams.CheckProofOfWork(raw, height)
		if !errors.Is(err, standalone.ErrHighHash) {
			t.Fatalf("height %d: got %v want ErrHighHash", height, err)
		}
	}
}

// Mining on regtest: some nonce below 64 meets the 2^255 target.
func TestRegtestMining(t *testing.T) {
	p := &VertcoinRegTestParams
	header := p.GenesisHeader
	for _, height := range []int32{0, VertcoinLyra2REv2Height,
		VertcoinLyra2REv3Height} {

		found := false
		for nonce := uint32(0); nonce < 64; nonce++ {
			binary.LittleEndian.PutUint32(header[76:], nonce)
			if p.CheckProofOfWork(header[:], height) == nil {
				found = true
				break
			}
		}
		if !found {
			t.Fatalf("height %d: no nonce found", height)
		}
	}
}

// Parameters built by hand can skip Register and its schedule check.
func TestUnregisteredEmptySchedule(t *testing.T) {
	p := &Params{Name: "bare", PowLimit: regressionPowLimit}
	if r := p.PoWRecipe(0); r != nil {
		t.Fatalf("got recipe %s", r.Name)
	}
	if _, err := p.PoWFunction(VertcoinRegTestParams.GenesisHeader[:], 0); !errors.Is(err, ErrNoSchedule) {
		t.Fatalf("got %v want ErrNoSchedule", err)
	}
	err := p.CheckProofOfWork(VertcoinRegTestParams.GenesisHeader[:], 0)
	if !errors.Is(err, ErrNoSchedule) {
		t.Fatalf("got %v want ErrNoSchedule", err)
	}
}

func TestRegister(t *testing.T) {
	if err := Register(&Params{Name: "vtc",
		PoWSchedule: vertcoinSchedule}); !errors.Is(err, ErrDuplicateNet) {
		t.Fatalf("got %v want ErrDuplicateNet", err)
	}
	if err := Register(&Params{Name: "empty"}); !errors.Is(err, ErrNoSchedule) {
		t.Fatalf("got %v want ErrNoSchedule", err)
	}
	unsorted := []PoWEpoch{
		{StartHeight: 10, Recipe: hashchain.Lyra2REv3Recipe},
		{StartHeight: 0, Recipe: hashchain.ScryptNRecipe},
	}
	if err := Register(&Params{Name: "unsorted",
		PoWSchedule: unsorted}); !errors.Is(err, ErrUnsortedSchedule) {
		t.Fatalf("got %v want ErrUnsortedSchedule", err)
	}

	p, err := ByName("vtcreg")
	if err != nil || p != &VertcoinRegTestParams {
		t.Fatalf("got %v, %v", p, err)
	}
	if _, err := ByName("btc"); !errors.Is(err, ErrUnknownNet) {
		t.Fatalf("got %v want ErrUnknownNet", err)
	}

	names := NetNames()
	if len(names) != 3 || names[0] != "vtc" || names[2] != "vtctest" {
		t.Fatalf("got %v", names)
	}
}

func TestDifficulty(t *testing.T) {
	tests := []struct {
		p    *Params
		bits uint32
		want float64
	}{
		{&VertcoinParams, 0x1e0fffff, 1},
		{&VertcoinParams, 0x1d013217, 3425.709873786036},
		{&VertcoinParams, 0x207fffff, 1.9073470411965822e-06},
		{&VertcoinRegTestParams, 0x207fffff, 1},
		{&VertcoinParams, 0, 0},
		{&VertcoinParams, 0x1d813217, 0}, // negative
	}
	for _, test := range tests {
		got := test.p.Difficulty(test.bits)
		if math.Abs(got-test.want) > test.want*1e-12 {
			t.Fatalf("%s bits %08x: got %v want %v", test.p.Name, test.bits,
				got, test.want)
		}
	}

	bits, err := HeaderBits(VertcoinParams.GenesisHeader[:])
	if err != nil || bits != 0x1e0ffff0 {
		t.Fatalf("got %08x, %v", bits, err)
	}
	if _, err := HeaderBits(make([]byte, 79)); !errors.Is(err, ErrHeaderSize) {
		t.Fatalf("got %v want ErrHeaderSize", err)
	}
}
