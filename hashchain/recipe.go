// Package hashchain runs the fixed Lyra2RE family of proof-of-work chains.
//
// A chain is a Recipe: an ordered list of steps, each either a named 256-bit
// hash primitive or a Lyra2 call that uses the running value as both
// password and salt.  One interpreter executes every recipe, so a new chain
// is a new table entry rather than new code.
package hashchain

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/mit-dci/lyra2/logging"
	"github.com/mit-dci/lyra2/lyra2"
)

var (
	// ErrUnknownRecipe describes a lookup of a chain that is not in the
	// recipe table.
	ErrUnknownRecipe = errors.New("unknown hash recipe")

	// ErrUnknownPrimitive describes a step naming a primitive that is not
	// registered.
	ErrUnknownPrimitive = errors.New("unknown hash primitive")

	// ErrDuplicateRecipe describes two recipes registered under one name.
	ErrDuplicateRecipe = errors.New("duplicate hash recipe")
)

func unknownPrimitive(name string) error {
	return fmt.Errorf("%w %q", ErrUnknownPrimitive, name)
}

// Lyra2Params are the arguments of a Lyra2 step.
type Lyra2Params struct {
	Version  lyra2.Version
	Rows     uint64
	Cols     uint64
	TimeCost uint64
	KLen     int
}

// Step is one stage of a recipe.  Exactly one of Primitive and Lyra2 is set.
type Step struct {
	Primitive string
	Lyra2     *Lyra2Params
}

// PrimitiveStep returns a step that applies the named primitive.
func PrimitiveStep(name string) Step {
	return Step{Primitive: name}
}

// Lyra2Step returns a step that runs Lyra2 over the running value.
func Lyra2Step(v lyra2.Version, rows, cols, timeCost uint64, kLen int) Step {
	return Step{Lyra2: &Lyra2Params{
		Version:  v,
		Rows:     rows,
		Cols:     cols,
		TimeCost: timeCost,
		KLen:     kLen,
	}}
}

func (s Step) String() string {
	if s.Lyra2 != nil {
		p := s.Lyra2
		return fmt.Sprintf("lyra2(%v, rows=%d, cols=%d, t=%d, k=%d)",
			p.Version, p.Rows, p.Cols, p.TimeCost, p.KLen)
	}
	return s.Primitive
}

// apply runs the step on in.
func (s Step) apply(in []byte) ([]byte, error) {
	if p := s.Lyra2; p != nil {
		return p.Version.Sum(p.KLen, in, in, p.TimeCost, p.Rows, p.Cols)
	}
	prim, ok := primitives[s.Primitive]
	if !ok {
		return nil, unknownPrimitive(s.Primitive)
	}
	return prim(in)
}

// Recipe is a named, immutable sequence of steps.
type Recipe struct {
	Name  string
	Steps []Step
}

func (r *Recipe) String() string {
	parts := make([]string, len(r.Steps))
	for i, s := range r.Steps {
		parts[i] = s.String()
	}
	return r.Name + ": " + strings.Join(parts, " -> ")
}

// Sum feeds data through every step in order and returns the last output.
// A failing step is reported with its position; the underlying error stays
// reachable through errors.Is.
func (r *Recipe) Sum(data []byte) ([]byte, error) {
	cur := data
	for i, step := range r.Steps {
		out, err := step.apply(cur)
		if err != nil {
			return nil, fmt.Errorf("%s step %d (%v): %w", r.Name, i, step,
				err)
		}
		if logging.DebugEnabled() {
			logging.Debugf("%s step %d %v: %x", r.Name, i, step, out)
		}
		cur = out
	}
	if len(r.Steps) == 0 {
		cur = append([]byte(nil), data...)
	}
	return cur, nil
}

// The Lyra2RE family.  Every Lyra2 step produces 32 bytes.
var (
	Lyra2RERecipe = &Recipe{
		Name: "lyra2re",
		Steps: []Step{
			PrimitiveStep(Blake256),
			PrimitiveStep(Keccak256),
			Lyra2Step(lyra2.V1, 8, 8, 1, 32),
			PrimitiveStep(Skein256),
			PrimitiveStep(Groestl256),
		},
	}

	Lyra2REv2Recipe = &Recipe{
		Name: "lyra2rev2",
		Steps: []Step{
			PrimitiveStep(Blake256),
			PrimitiveStep(Keccak256),
			PrimitiveStep(CubeHash256),
			Lyra2Step(lyra2.V2, 4, 4, 1, 32),
			PrimitiveStep(Skein256),
			PrimitiveStep(CubeHash256),
			PrimitiveStep(BMW256),
		},
	}

	Lyra2REv3Recipe = &Recipe{
		Name: "lyra2rev3",
		Steps: []Step{
			PrimitiveStep(Blake256),
			Lyra2Step(lyra2.V3, 4, 4, 1, 32),
			PrimitiveStep(CubeHash256),
			Lyra2Step(lyra2.V3, 4, 4, 1, 32),
			PrimitiveStep(BMW256),
		},
	}

	// ScryptNRecipe is the pre-Lyra2RE Vertcoin proof of work.
	ScryptNRecipe = &Recipe{
		Name:  "scryptn",
		Steps: []Step{PrimitiveStep(ScryptN)},
	}
)

var recipes = make(map[string]*Recipe)

func init() {
	mustRegister(Lyra2RERecipe)
	mustRegister(Lyra2REv2Recipe)
	mustRegister(Lyra2REv3Recipe)
	mustRegister(ScryptNRecipe)
}

func mustRegister(r *Recipe) {
	if err := register(r); err != nil {
		panic("failed to register recipe: " + err.Error())
	}
}

// register adds r to the recipe table after checking that every primitive
// it names exists.
func register(r *Recipe) error {
	name := strings.ToLower(r.Name)
	if _, ok := recipes[name]; ok {
		return fmt.Errorf("%w %q", ErrDuplicateRecipe, r.Name)
	}
	for _, s := range r.Steps {
		if s.Lyra2 != nil {
			continue
		}
		if _, ok := primitives[s.Primitive]; !ok {
			return unknownPrimitive(s.Primitive)
		}
	}
	recipes[name] = r
	return nil
}

// Lookup returns the recipe with the given name, ignoring case.
func Lookup(name string) (*Recipe, error) {
	r, ok := recipes[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return nil, fmt.Errorf("%w %q", ErrUnknownRecipe, name)
	}
	return r, nil
}

// Names returns the registered recipe names in sorted order.
func Names() []string {
	names := make([]string, 0, len(recipes))
	for name := range recipes {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Lyra2RE hashes data with the original Lyra2RE chain.
func Lyra2RE(data []byte) ([]byte, error) {
	return Lyra2RERecipe.Sum(data)
}

// Lyra2REv2 hashes data with the Lyra2REv2 chain.
func Lyra2REv2(data []byte) ([]byte, error) {
	return Lyra2REv2Recipe.Sum(data)
}

// Lyra2REv3 hashes data with the Lyra2REv3 chain.
func Lyra2REv3(data []byte) ([]byte, error) {
	return Lyra2REv3Recipe.Sum(data)
}

// ScryptNSum hashes data with scrypt (N=2048, r=1, p=1).
func ScryptNSum(data []byte) ([]byte, error) {
	return ScryptNRecipe.Sum(data)
}
