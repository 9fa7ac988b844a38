package chip8

// KeyState answers whether a key of the hex keypad is currently pressed.
// The machine polls it synchronously while executing key dependent
// instructions and while the key-wait latch is pending.
type KeyState interface {
	IsPressed(key uint8) bool
}

// noKeys is used when no key state provider is given.
type noKeys struct{}

func (noKeys) IsPressed(uint8) bool {
	return false
}

// keyWait is the key-wait latch. The zero value is inactive.
type keyWait struct {
	pending  bool
	register uint8 // register receiving the key index once a key is pressed
}

// pressedKey returns the lowest pressed key of the keypad.
func (vm *VM) pressedKey() (uint8, bool) {
	for key := range uint8(KeyCount) {
		if vm.keys.IsPressed(key) {
			return key, true
		}
	}
	return 0, false
}

// resolveKeyWait completes a pending key-wait when a key is pressed and returns
// whether the latch is still pending.
func (vm *VM) resolveKeyWait() bool {
	key, ok := vm.pressedKey()
	if !ok {
		return true
	}

	vm.v[vm.keyWait.register] = key
	vm.keyWait = keyWait{}
	return false
}

// keyPressed returns whether the key stored in register x is pressed.
func (vm *VM) keyPressed(x uint8) (bool, error) {
	key := vm.v[x]
	if key >= KeyCount {
		return false, ErrKeyIndexOutOfRange
	}
	return vm.keys.IsPressed(key), nil
}
