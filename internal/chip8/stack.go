package chip8

// Push stores a return address on the stack, high byte first.
func (vm *VM) Push(address uint16) error {
	if int(vm.sp)+2 > StackSize {
		return ErrStackOverflow
	}

	vm.stack[vm.sp] = byte(address >> 8)
	vm.stack[vm.sp+1] = byte(address)
	vm.sp += 2
	return nil
}

// Pop removes the most recently pushed return address from the stack.
func (vm *VM) Pop() (uint16, error) {
	if vm.sp < 2 {
		return 0, ErrStackUnderflow
	}

	vm.sp -= 2
	address := uint16(vm.stack[vm.sp])<<8 | uint16(vm.stack[vm.sp+1])
	return address, nil
}
