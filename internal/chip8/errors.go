package chip8

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidOpcode is returned for instruction words that do not decode to a
	// known operation. The instruction is skipped.
	ErrInvalidOpcode = errors.New("invalid opcode")

	// ErrStackOverflow is returned when a call exceeds the stack depth.
	ErrStackOverflow = errors.New("stack overflow")

	// ErrStackUnderflow is returned when a return is executed on an empty stack.
	ErrStackUnderflow = errors.New("stack underflow")

	// ErrOutOfMemory is returned when a program image does not fit into memory or
	// an instruction addresses memory outside of the allocated range.
	ErrOutOfMemory = errors.New("out of memory")

	// ErrKeyIndexOutOfRange is returned when a register value used as key index
	// is not a valid key 0-F.
	ErrKeyIndexOutOfRange = errors.New("key index out of range")

	// ErrHalted is returned by Step after a non-recoverable error, until the
	// machine is reset or a new program is loaded.
	ErrHalted = errors.New("machine halted")
)

// ExecutionError describes a failure while fetching, decoding or executing the
// instruction at Address.
type ExecutionError struct {
	Address uint16 // address the instruction was fetched from
	Opcode  uint16 // instruction word, 0 if the fetch itself failed
	Err     error
}

func (e *ExecutionError) Error() string {
	return fmt.Sprintf("opcode %04X at address %03X: %v", e.Opcode, e.Address, e.Err)
}

func (e *ExecutionError) Unwrap() error {
	return e.Err
}

// IsRecoverable returns whether stepping can continue after the given error.
// Decode errors and invalid key indexes only affect the offending instruction,
// stack and memory faults leave the machine state untrustworthy.
func IsRecoverable(err error) bool {
	if err == nil {
		return true
	}
	if errors.Is(err, ErrHalted) {
		return false
	}
	return errors.Is(err, ErrInvalidOpcode) || errors.Is(err, ErrKeyIndexOutOfRange)
}

// outOfRange returns an out of memory error for an access of size bytes at address.
func outOfRange(address uint16, size int) error {
	return fmt.Errorf("%w: accessing %d bytes at address %04X", ErrOutOfMemory, size, address)
}
