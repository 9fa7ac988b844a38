// Package keypad provides the hex keypad state for the CHIP-8 machine.
//
// Terminals report key presses but no key releases, a pressed key is therefore
// considered held for a configurable duration after its last press event.
// Keyboard auto-repeat keeps a key held for as long as it is physically down.
package keypad

import (
	"sync"
	"time"

	"github.com/retroenv/retrochip8/internal/chip8"
	"github.com/retroenv/retrogolib/set"
)

// Compile-time check to ensure Keypad implements chip8.KeyState.
var _ chip8.KeyState = (*Keypad)(nil)

// Keypad tracks the state of the 16 keys. It is safe for concurrent use, the
// frontend reports key events while the emulator goroutine polls the state.
type Keypad struct {
	mu      sync.Mutex
	hold    time.Duration
	now     func() time.Time
	expires [chip8.KeyCount]time.Time
}

// New returns a keypad that keeps a key pressed for the given hold duration
// after each press event.
func New(hold time.Duration) *Keypad {
	return &Keypad{
		hold: hold,
		now:  time.Now,
	}
}

// Press marks the key as pressed. Keys outside of 0-F are ignored.
func (k *Keypad) Press(key uint8) {
	if key >= chip8.KeyCount {
		return
	}

	k.mu.Lock()
	k.expires[key] = k.now().Add(k.hold)
	k.mu.Unlock()
}

// Release marks the key as released.
func (k *Keypad) Release(key uint8) {
	if key >= chip8.KeyCount {
		return
	}

	k.mu.Lock()
	k.expires[key] = time.Time{}
	k.mu.Unlock()
}

// ReleaseAll marks all keys as released.
func (k *Keypad) ReleaseAll() {
	k.mu.Lock()
	k.expires = [chip8.KeyCount]time.Time{}
	k.mu.Unlock()
}

// IsPressed returns whether the key is currently held.
func (k *Keypad) IsPressed(key uint8) bool {
	if key >= chip8.KeyCount {
		return false
	}

	k.mu.Lock()
	defer k.mu.Unlock()
	return k.now().Before(k.expires[key])
}

// Held returns the set of currently held keys.
func (k *Keypad) Held() set.Set[uint8] {
	held := set.New[uint8]()

	k.mu.Lock()
	defer k.mu.Unlock()

	now := k.now()
	for key, expires := range k.expires {
		if now.Before(expires) {
			held.Add(uint8(key))
		}
	}
	return held
}
