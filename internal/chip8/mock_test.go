package chip8

import (
	"testing"

	"github.com/retroenv/retrogolib/assert"
)

// fakeKeys is a key state provider with manually controlled keys.
type fakeKeys struct {
	pressed [KeyCount]bool
	queries int
}

func (f *fakeKeys) IsPressed(key uint8) bool {
	f.queries++
	return f.pressed[key]
}

// fixedRandom always returns the same value.
type fixedRandom uint32

func (f fixedRandom) Uint32() uint32 {
	return uint32(f)
}

// newTestVM returns a machine with the given instruction words loaded as program.
func newTestVM(t *testing.T, keys KeyState, program ...uint16) *VM {
	t.Helper()

	vm := New(keys, WithRandom(fixedRandom(0xA5)))
	image := make([]byte, 0, len(program)*2)
	for _, word := range program {
		image = append(image, byte(word>>8), byte(word))
	}
	assert.NoError(t, vm.LoadProgram(image))
	return vm
}

// step executes the given number of instructions and fails on any error.
func step(t *testing.T, vm *VM, count int) {
	t.Helper()

	for range count {
		assert.NoError(t, vm.Step())
	}
}
