package chip8

import (
	"math/rand/v2"

	"github.com/retroenv/retrogolib/log"
)

// Option configures a VM at construction.
type Option func(*VM)

// RandomSource provides the random numbers for the CXNN instruction.
type RandomSource interface {
	Uint32() uint32
}

// Quirks selects between interpreter variants for ambiguous instructions.
// The zero value reproduces the reference interpreter.
type Quirks struct {
	// SubnWritesVx stores the result of 8XY7 in VX instead of VY.
	SubnWritesVx bool

	// ShiftUsesVy shifts VY into VX for 8XY6 and 8XYE instead of shifting VX in place.
	ShiftUsesVy bool
}

// WithLogger enables instruction tracing at debug level.
func WithLogger(logger *log.Logger) Option {
	return func(vm *VM) {
		vm.logger = logger
	}
}

// WithRandom sets the random number source.
func WithRandom(random RandomSource) Option {
	return func(vm *VM) {
		vm.random = random
	}
}

// WithQuirks sets the interpreter variant.
func WithQuirks(quirks Quirks) Option {
	return func(vm *VM) {
		vm.quirks = quirks
	}
}

// NewSeededRandom returns a deterministic random source for the given seed.
func NewSeededRandom(seed uint64) RandomSource {
	return rand.New(rand.NewPCG(seed, seed^0x9E3779B97F4A7C15))
}

// runtimeRandom uses the randomly seeded global generator.
type runtimeRandom struct{}

func (runtimeRandom) Uint32() uint32 {
	return rand.Uint32()
}
