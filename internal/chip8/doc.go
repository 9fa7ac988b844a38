// Package chip8 implements the CHIP-8 interpreter core.
//
// # Machine Overview
//
// The virtual machine owns all of its state exclusively:
//   - 4KB of byte addressable memory (0x000-0xFFF)
//   - 16 general-purpose 8-bit registers (V0-VF), VF doubles as the flag register
//   - a 16-bit index register I and a 16-bit program counter
//   - a call stack of 16 big-endian return addresses addressed by a byte stack pointer
//   - two 8-bit countdown timers (delay and sound)
//   - a 64x32 monochrome frame buffer with a dirty flag
//   - a key-wait latch that suspends execution until a key is pressed
//
// # Memory Layout
//
//   - 0x000-0x1FF: interpreter area, holds the built-in hex digit font at 0x000
//   - ProgramStart-0xFFF: program image and data
//
// # Execution Model
//
// The core has no clock of its own. A driver calls Step to execute one instruction at a
// rate of its choosing and TickTimers at a fixed 60 Hz. While the key-wait latch is
// pending, Step returns without effect until the injected KeyState reports a pressed key.
//
// # Errors
//
// Step reports problems as *ExecutionError values wrapping one of the sentinel errors.
// ErrInvalidOpcode and ErrKeyIndexOutOfRange are recoverable: the offending instruction
// is skipped and stepping may continue. Stack and memory faults halt the machine until
// Reset or LoadProgram is called; further steps return ErrHalted.
//
// # Variant Choices
//
// The zero value Quirks reproduces the reference interpreter literally:
//   - 8XY7 writes its result into VY instead of VX. This deviates from the common
//     CHIP-8 opcode table, most programs expect VX = VY - VX. Quirks.SubnWritesVx
//     selects the common behavior.
//   - 8XY6 and 8XYE shift VX in place and ignore VY, like the later CHIP-48 and
//     SUPER-CHIP interpreters. Quirks.ShiftUsesVy selects the COSMAC VIP behavior
//     of shifting VY into VX.
//
// # Usage Example
//
//	vm := chip8.New(keys, chip8.WithQuirks(chip8.Quirks{}))
//	if err := vm.LoadProgram(image); err != nil {
//		return fmt.Errorf("loading program: %w", err)
//	}
//	for {
//		if err := vm.Step(); err != nil && !chip8.IsRecoverable(err) {
//			return err
//		}
//	}
package chip8
