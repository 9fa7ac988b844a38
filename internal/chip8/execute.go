package chip8

import "fmt"

// execute applies a decoded instruction to the machine state. The program
// counter already points to the next instruction. Memory ranges are validated
// before any state is modified.
func (vm *VM) execute(ins Instruction) error {
	x, y := ins.X, ins.Y

	switch ins.Op {
	case OpClear:
		vm.frame.clear()

	case OpReturn:
		address, err := vm.Pop()
		if err != nil {
			return err
		}
		vm.pc = address

	case OpJump:
		vm.pc = ins.NNN

	case OpCall:
		if err := vm.Push(vm.pc); err != nil {
			return err
		}
		vm.pc = ins.NNN

	case OpSkipEqualByte:
		vm.skipIf(vm.v[x] == ins.NN)

	case OpSkipNotEqualByte:
		vm.skipIf(vm.v[x] != ins.NN)

	case OpSkipEqualReg:
		vm.skipIf(vm.v[x] == vm.v[y])

	case OpSkipNotEqualReg:
		vm.skipIf(vm.v[x] != vm.v[y])

	case OpLoadByte:
		vm.v[x] = ins.NN

	case OpAddByte:
		vm.v[x] += ins.NN

	case OpLoadReg, OpOr, OpAnd, OpXor, OpAddReg, OpSub, OpShiftRight, OpSubReverse, OpShiftLeft:
		vm.executeArithmetic(ins.Op, x, y)

	case OpLoadIndex:
		vm.i = ins.NNN

	case OpJumpOffset:
		vm.pc = ins.NNN + uint16(vm.v[0])

	case OpRandom:
		vm.v[x] = uint8(vm.random.Uint32()) & ins.NN

	case OpDraw:
		return vm.draw(x, y, ins.N)

	case OpSkipKey, OpSkipNotKey:
		pressed, err := vm.keyPressed(x)
		if err != nil {
			return fmt.Errorf("%w: V%X holds %d", err, x, vm.v[x])
		}
		vm.skipIf(pressed == (ins.Op == OpSkipKey))

	case OpLoadDelay:
		vm.v[x] = vm.delayTimer

	case OpWaitKey:
		vm.keyWait = keyWait{pending: true, register: x}

	case OpSetDelay:
		vm.delayTimer = vm.v[x]

	case OpSetSound:
		vm.soundTimer = vm.v[x]

	case OpAddIndex:
		vm.i += uint16(vm.v[x])

	case OpLoadGlyph:
		vm.i = uint16(vm.v[x]) * glyphSize

	case OpStoreBCD:
		if err := vm.checkRange(vm.i, 3); err != nil {
			return err
		}
		value := vm.v[x]
		vm.memory[vm.i] = value / 100
		vm.memory[vm.i+1] = (value / 10) % 10
		vm.memory[vm.i+2] = value % 10

	case OpStoreRegisters:
		count := int(x) + 1
		if err := vm.checkRange(vm.i, count); err != nil {
			return err
		}
		copy(vm.memory[vm.i:], vm.v[:count])
		vm.i += uint16(count)

	case OpLoadRegisters:
		count := int(x) + 1
		if err := vm.checkRange(vm.i, count); err != nil {
			return err
		}
		copy(vm.v[:count], vm.memory[vm.i:])
		vm.i += uint16(count)

	default:
		return fmt.Errorf("%w: %04X", ErrInvalidOpcode, ins.Word)
	}

	return nil
}

// executeArithmetic executes the 8XYN register operations. Add and subtract
// write the result before the flag, so VF holds the flag when it is also the
// destination. Shifts write the flag first.
func (vm *VM) executeArithmetic(op Operation, x, y uint8) {
	vx, vy := vm.v[x], vm.v[y]

	switch op {
	case OpLoadReg:
		vm.v[x] = vy

	case OpOr:
		vm.v[x] = vx | vy

	case OpAnd:
		vm.v[x] = vx & vy

	case OpXor:
		vm.v[x] = vx ^ vy

	case OpAddReg:
		sum := uint16(vx) + uint16(vy)
		vm.v[x] = uint8(sum)
		vm.v[FlagRegister] = boolToFlag(sum > 0xFF)

	case OpSub:
		// VF set means no borrow occurred, equal operands count as borrow
		vm.v[x] = vx - vy
		vm.v[FlagRegister] = boolToFlag(vx > vy)

	case OpSubReverse:
		if vm.quirks.SubnWritesVx {
			vm.v[x] = vy - vx
		} else {
			vm.v[y] = vy - vx
		}
		vm.v[FlagRegister] = boolToFlag(vy > vx)

	// shifts store the flag first and then shift the current register value,
	// for X=F the shifted flag ends up in VF
	case OpShiftRight:
		vm.v[FlagRegister] = vm.shiftSource(x, y) & 1
		vm.v[x] = vm.shiftSource(x, y) >> 1

	case OpShiftLeft:
		vm.v[FlagRegister] = vm.shiftSource(x, y) >> 7
		vm.v[x] = vm.shiftSource(x, y) << 1
	}
}

// shiftSource returns the register a shift reads from.
func (vm *VM) shiftSource(x, y uint8) uint8 {
	if vm.quirks.ShiftUsesVy {
		return vm.v[y]
	}
	return vm.v[x]
}

// draw XORs an n byte sprite read from memory at I into the frame buffer at
// position (Vx, Vy). VF is set if any lit pixel was turned off.
func (vm *VM) draw(x, y, n uint8) error {
	if err := vm.checkRange(vm.i, int(n)); err != nil {
		return err
	}

	posX := int(vm.v[x])
	posY := int(vm.v[y])

	collision := false
	for row := range int(n) {
		sprite := vm.memory[int(vm.i)+row]
		if vm.frame.drawRow(posX, posY+row, sprite) {
			collision = true
		}
	}

	vm.v[FlagRegister] = boolToFlag(collision)
	vm.frame.dirty = true
	return nil
}

// skipIf advances the program counter past the next instruction if the
// condition is met.
func (vm *VM) skipIf(condition bool) {
	if condition {
		vm.pc += instructionSize
	}
}

// checkRange validates that size bytes starting at address are inside memory.
func (vm *VM) checkRange(address uint16, size int) error {
	if int(address)+size > MemorySize {
		return outOfRange(address, size)
	}
	return nil
}

func boolToFlag(b bool) uint8 {
	if b {
		return 1
	}
	return 0
}
