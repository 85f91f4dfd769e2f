package hashchain

import (
	"bytes"
	"context"
	"encoding/hex"
	"errors"
	"math/rand"
	"reflect"
	"testing"

	"github.com/bitgoin/lyra2rev2"
	"github.com/davecgh/go-spew/spew"
	"github.com/decred/dcrd/crypto/blake256"
	"github.com/mit-dci/lyra2/crypto/bmw"
	"github.com/mit-dci/lyra2/crypto/cubehash"
	"github.com/mit-dci/lyra2/lyra2"
	"github.com/vertcoin/lyra2re"
)

// blockHeader is a Vertcoin block header.
var blockHeader, _ = hex.DecodeString("700000005d385ba114d079971b29a9418fd0549e" +
	"7d68a95c7f168621a314201000000000578586d149fd07b22f3a8a347c516de7" +
	"052f034d2b76ff68e0d6ecff9b77a45489e3fd511732011df0731000")

func TestRecipeVectors(t *testing.T) {
	tests := []struct {
		sum  func([]byte) ([]byte, error)
		r    *Recipe
		want string
	}{
		{Lyra2RE, Lyra2RERecipe,
			"5e207f8828344cbcd58dcfb55b42d94f109d3c6fa74d9aafb67744a303741464"},
		{Lyra2REv2, Lyra2REv2Recipe,
			"df3ccd797f3c039d2a586a795829a40ea8532a62c9ae9f7cd74f8f8f506577f5"},
		{Lyra2REv3, Lyra2REv3Recipe,
			"5d7b298258e78881c7831ba1e46751b089efdf1fdb9eb01edd03b8d7ed39eafb"},
		{ScryptNSum, ScryptNRecipe,
			"46e916cd312c8b86a2bab3d09e18691db694c3d3e56d5ad022fd51e7d67605e3"},
	}

	for _, test := range tests {
		got, err := test.sum(blockHeader)
		if err != nil {
			t.Fatalf("%s: %v", test.r.Name, err)
		}
		if hex.EncodeToString(got) != test.want {
			t.Fatalf("%s: got %x want %s\n%s", test.r.Name, got, test.want,
				spew.Sdump(test.r))
		}
	}
}

// The interpreter must agree with the chain written out by hand.
func TestRecipeMatchesHandChain(t *testing.T) {
	rng := rand.New(rand.NewSource(3))
	for i := 0; i < 8; i++ {
		data := make([]byte, rng.Intn(200))
		rng.Read(data)

		b := blake256.Sum256(data)
		k1, err := lyra2.V3.Sum(32, b[:], b[:], 1, 4, 4)
		if err != nil {
			t.Fatal(err)
		}
		c := cubehash.Sum256(k1)
		k2, err := lyra2.V3.Sum(32, c[:], c[:], 1, 4, 4)
		if err != nil {
			t.Fatal(err)
		}
		want := bmw.Sum256(k2)

		got, err := Lyra2REv3(data)
		if err != nil {
			t.Fatal(err)
		}
		if !bytes.Equal(got, want[:]) {
			t.Fatalf("input %x: got %x want %x", data, got, want)
		}
	}
}

// Lyra2REv2 is cross-checked against an independent implementation.
func TestLyra2REv2Differential(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	inputs := [][]byte{blockHeader, {}, make([]byte, 80)}
	for i := 0; i < 16; i++ {
		data := make([]byte, 1+rng.Intn(160))
		rng.Read(data)
		inputs = append(inputs, data)
	}

	for _, data := range inputs {
		want, err := lyra2rev2.Sum(data)
		if err != nil {
			t.Fatal(err)
		}
		got, err := Lyra2REv2(data)
		if err != nil {
			t.Fatal(err)
		}
		if !bytes.Equal(got, want) {
			t.Fatalf("input %x: got %x want %x", data, got, want)
		}
	}
}

// Lyra2RE, and with it the v1 Lyra2 path, is cross-checked the same way.
func TestLyra2REDifferential(t *testing.T) {
	rng := rand.New(rand.NewSource(5))
	inputs := [][]byte{blockHeader}
	for i := 0; i < 16; i++ {
		data := make([]byte, 80)
		rng.Read(data)
		inputs = append(inputs, data)
	}

	for _, data := range inputs {
		want, err := lyra2re.Sum(data)
		if err != nil {
			t.Fatal(err)
		}
		got, err := Lyra2RE(data)
		if err != nil {
			t.Fatal(err)
		}
		if !bytes.Equal(got, want) {
			t.Fatalf("input %x: got %x want %x", data, got, want)
		}
	}
}

func TestDigestLength(t *testing.T) {
	for _, name := range Names() {
		r, err := Lookup(name)
		if err != nil {
			t.Fatal(err)
		}
		for _, n := range []int{0, 1, 80, 200} {
			sum, err := r.Sum(make([]byte, n))
			if err != nil {
				t.Fatalf("%s over %d bytes: %v", name, n, err)
			}
			if len(sum) != 32 {
				t.Fatalf("%s over %d bytes: %d byte digest", name, n,
					len(sum))
			}
		}
	}
}

func TestLookup(t *testing.T) {
	want := []string{"lyra2re", "lyra2rev2", "lyra2rev3", "scryptn"}
	if got := Names(); !reflect.DeepEqual(got, want) {
		t.Fatalf("Names() = %v want %v", got, want)
	}

	r, err := Lookup(" Lyra2REv3")
	if err != nil || r != Lyra2REv3Recipe {
		t.Fatalf("got %v, %v", r, err)
	}
	if _, err := Lookup("x11"); !errors.Is(err, ErrUnknownRecipe) {
		t.Fatalf("got %v want ErrUnknownRecipe", err)
	}

	if err := register(&Recipe{Name: "LYRA2RE"}); !errors.Is(err, ErrDuplicateRecipe) {
		t.Fatalf("got %v want ErrDuplicateRecipe", err)
	}
	bad := &Recipe{Name: "bad", Steps: []Step{PrimitiveStep("sha1")}}
	if err := register(bad); !errors.Is(err, ErrUnknownPrimitive) {
		t.Fatalf("got %v want ErrUnknownPrimitive", err)
	}
	if _, err := Lookup("bad"); err == nil {
		t.Fatal("rejected recipe was registered")
	}

	names := PrimitiveNames()
	for _, name := range names {
		if _, err := LookupPrimitive(name); err != nil {
			t.Fatal(err)
		}
	}
	if len(names) != 7 {
		t.Fatalf("got primitives %v", names)
	}
	if _, err := LookupPrimitive("md5"); !errors.Is(err, ErrUnknownPrimitive) {
		t.Fatalf("got %v", err)
	}
}

func TestStepErrors(t *testing.T) {
	r := &Recipe{
		Name: "broken",
		Steps: []Step{
			PrimitiveStep(Blake256),
			Lyra2Step(lyra2.V2, 0, 4, 1, 32),
		},
	}
	if _, err := r.Sum(blockHeader); !errors.Is(err, lyra2.ErrInvalidArgument) {
		t.Fatalf("got %v want ErrInvalidArgument\n%s", err, spew.Sdump(r))
	}

	r = &Recipe{Name: "missing", Steps: []Step{PrimitiveStep("sha1")}}
	if _, err := r.Sum(blockHeader); !errors.Is(err, ErrUnknownPrimitive) {
		t.Fatalf("got %v want ErrUnknownPrimitive", err)
	}

	// An empty recipe returns a copy of its input.
	empty := &Recipe{Name: "identity"}
	in := []byte{1, 2, 3}
	out, err := empty.Sum(in)
	if err != nil || !bytes.Equal(out, in) {
		t.Fatalf("got %x, %v", out, err)
	}
	out[0] = 9
	if in[0] != 1 {
		t.Fatal("empty recipe aliased its input")
	}
}

func TestRecipeString(t *testing.T) {
	want := "lyra2rev3: blake256 -> lyra2(v3, rows=4, cols=4, t=1, k=32) -> " +
		"cubehash256 -> lyra2(v3, rows=4, cols=4, t=1, k=32) -> bmw256"
	if got := Lyra2REv3Recipe.String(); got != want {
		t.Fatalf("got %q", got)
	}
}

func TestSumAll(t *testing.T) {
	rng := rand.New(rand.NewSource(11))
	inputs := make([][]byte, 64)
	for i := range inputs {
		inputs[i] = make([]byte, 80)
		rng.Read(inputs[i])
	}

	for _, r := range []*Recipe{Lyra2REv2Recipe, Lyra2REv3Recipe} {
		got, err := r.SumAll(context.Background(), inputs, 8)
		if err != nil {
			t.Fatal(err)
		}
		for i, in := range inputs {
			want, err := r.Sum(in)
			if err != nil {
				t.Fatal(err)
			}
			if !bytes.Equal(got[i], want) {
				t.Fatalf("%s input %d: got %x want %x", r.Name, i,
					got[i], want)
			}
		}
	}

	broken := &Recipe{Name: "broken", Steps: []Step{
		Lyra2Step(lyra2.V1, 4, 0, 1, 32),
	}}
	if _, err := broken.SumAll(context.Background(), inputs, 0); !errors.Is(err, lyra2.ErrInvalidArgument) {
		t.Fatalf("got %v want ErrInvalidArgument", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := Lyra2REv3Recipe.SumAll(ctx, inputs, 2); !errors.Is(err, context.Canceled) {
		t.Fatalf("got %v want context.Canceled", err)
	}

	none, err := Lyra2REv3Recipe.SumAll(context.Background(), nil, 4)
	if err != nil || len(none) != 0 {
		t.Fatalf("got %v, %v", none, err)
	}
}

func BenchmarkLyra2REv3(b *testing.B) {
	for i := 0; i < b.N; i++ {
		Lyra2REv3(blockHeader)
	}
}
