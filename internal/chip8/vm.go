package chip8

import (
	"fmt"

	"github.com/retroenv/retrogolib/log"
)

// VM is a CHIP-8 virtual machine. It is not safe for concurrent use, a single
// driver goroutine owns it.
type VM struct {
	memory [MemorySize]byte
	v      [RegisterCount]uint8
	i      uint16 // index register
	pc     uint16 // program counter
	sp     uint8  // stack pointer, counts bytes used
	stack  [StackSize]byte

	delayTimer uint8
	soundTimer uint8

	keyWait keyWait
	frame   FrameBuffer

	keys   KeyState
	random RandomSource
	quirks Quirks
	logger *log.Logger // instruction tracing, disabled if nil

	halted error // fault that stopped the machine
}

// New returns a new machine in reset state that reads the keypad from the
// given key state provider.
func New(keys KeyState, options ...Option) *VM {
	if keys == nil {
		keys = noKeys{}
	}

	vm := &VM{
		keys:   keys,
		random: runtimeRandom{},
	}
	for _, option := range options {
		option(vm)
	}

	vm.Reset()
	return vm
}

// Reset zeroes memory, registers, stack and timers, loads the digit font,
// clears the frame buffer and deactivates the key-wait latch.
// The program counter points to ProgramStart.
func (vm *VM) Reset() {
	vm.memory = [MemorySize]byte{}
	copy(vm.memory[:], font[:])

	vm.v = [RegisterCount]uint8{}
	vm.i = 0
	vm.pc = ProgramStart
	vm.sp = 0
	vm.stack = [StackSize]byte{}

	vm.delayTimer = 0
	vm.soundTimer = 0

	vm.keyWait = keyWait{}
	vm.frame.clear()
	vm.halted = nil
}

// LoadProgram resets the machine and copies the program image to ProgramStart.
// Images larger than MaxProgramSize are rejected with ErrOutOfMemory without
// modifying the machine state.
func (vm *VM) LoadProgram(image []byte) error {
	if len(image) > MaxProgramSize {
		return fmt.Errorf("%w: program image of %d bytes exceeds the available %d bytes",
			ErrOutOfMemory, len(image), MaxProgramSize)
	}

	vm.Reset()
	copy(vm.memory[ProgramStart:], image)
	vm.pc = ProgramStart
	return nil
}

// TickTimers decrements the delay and sound timers by one, stopping at zero.
// It has to be called at 60 Hz independent of the instruction rate.
func (vm *VM) TickTimers() {
	if vm.delayTimer > 0 {
		vm.delayTimer--
	}
	if vm.soundTimer > 0 {
		vm.soundTimer--
	}
}

// Step executes a single instruction. While the key-wait latch is pending and no
// key is pressed it returns without any effect.
func (vm *VM) Step() error {
	if vm.halted != nil {
		return fmt.Errorf("%w: %w", ErrHalted, vm.halted)
	}

	if vm.keyWait.pending && vm.resolveKeyWait() {
		return nil
	}

	address := vm.pc
	word, err := vm.fetch(address)
	if err != nil {
		return vm.fail(address, 0, err)
	}
	vm.pc += instructionSize

	ins, err := Decode(word)
	if err != nil {
		return vm.fail(address, word, err)
	}

	vm.trace(address, ins)

	if err := vm.execute(ins); err != nil {
		return vm.fail(address, word, err)
	}
	return nil
}

// fetch reads the big-endian instruction word at the given address.
func (vm *VM) fetch(address uint16) (uint16, error) {
	if int(address)+instructionSize > MemorySize {
		return 0, outOfRange(address, instructionSize)
	}
	return uint16(vm.memory[address])<<8 | uint16(vm.memory[address+1]), nil
}

// fail wraps an error with the instruction context and halts the machine for
// errors that leave the state untrustworthy.
func (vm *VM) fail(address, word uint16, err error) error {
	execErr := &ExecutionError{
		Address: address,
		Opcode:  word,
		Err:     err,
	}
	if !IsRecoverable(err) {
		vm.halted = execErr
	}
	return execErr
}

// Halted returns the fault that halted the machine, or nil if it is running.
func (vm *VM) Halted() error {
	return vm.halted
}

// FrameBuffer returns the frame buffer of the machine. The consumer has to
// clear the dirty flag after rendering a frame.
func (vm *VM) FrameBuffer() *FrameBuffer {
	return &vm.frame
}

// V returns the value of register Vx, x is masked to 0-F.
func (vm *VM) V(x uint8) uint8 {
	return vm.v[x&0xF]
}

// I returns the index register.
func (vm *VM) I() uint16 {
	return vm.i
}

// PC returns the program counter.
func (vm *VM) PC() uint16 {
	return vm.pc
}

// SP returns the stack pointer in bytes.
func (vm *VM) SP() uint8 {
	return vm.sp
}

// DelayTimer returns the current delay timer value.
func (vm *VM) DelayTimer() uint8 {
	return vm.delayTimer
}

// SoundTimer returns the current sound timer value. A value above zero means
// the buzzer is active.
func (vm *VM) SoundTimer() uint8 {
	return vm.soundTimer
}

// Memory returns the byte at the given address.
func (vm *VM) Memory(address uint16) (byte, error) {
	if int(address) >= MemorySize {
		return 0, outOfRange(address, 1)
	}
	return vm.memory[address], nil
}

// WaitingForKey returns the register that receives the next key press if the
// key-wait latch is pending.
func (vm *VM) WaitingForKey() (uint8, bool) {
	return vm.keyWait.register, vm.keyWait.pending
}

// Snapshot is a copy of the visible CPU state.
type Snapshot struct {
	V          [RegisterCount]uint8
	I          uint16
	PC         uint16
	SP         uint8
	DelayTimer uint8
	SoundTimer uint8

	WaitingForKey bool
	KeyRegister   uint8
}

// Snapshot returns a copy of the registers, timers and key-wait state.
func (vm *VM) Snapshot() Snapshot {
	return Snapshot{
		V:             vm.v,
		I:             vm.i,
		PC:            vm.pc,
		SP:            vm.sp,
		DelayTimer:    vm.delayTimer,
		SoundTimer:    vm.soundTimer,
		WaitingForKey: vm.keyWait.pending,
		KeyRegister:   vm.keyWait.register,
	}
}
