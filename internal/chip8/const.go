package chip8

// CHIP-8 memory layout constants.
const (
	// MemorySize is the size of the addressable memory in bytes.
	MemorySize = 0x1000

	// ProgramStart is the address where program images are loaded and execution begins.
	ProgramStart = 0x200

	// MaxProgramSize is the largest program image that fits into memory.
	MaxProgramSize = MemorySize - ProgramStart
)

// Register and stack constants.
const (
	// RegisterCount is the number of general-purpose registers V0-VF.
	RegisterCount = 16

	// FlagRegister is the index of VF, the implicit flag output of arithmetic,
	// shift and draw instructions.
	FlagRegister = 0xF

	// StackDepth is the maximum number of nested subroutine calls.
	StackDepth = 16

	// StackSize is the size of the stack buffer in bytes, each frame holds a
	// big-endian 16-bit return address.
	StackSize = StackDepth * 2
)

// Display and input constants.
const (
	// ScreenWidth is the width of the frame buffer in pixels.
	ScreenWidth = 64

	// ScreenHeight is the height of the frame buffer in pixels.
	ScreenHeight = 32

	// KeyCount is the number of keys on the hex keypad.
	KeyCount = 16
)

// instructionSize is the size of every CHIP-8 instruction in bytes.
const instructionSize = 2
