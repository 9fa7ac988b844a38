package chip8

import "fmt"

// Operation identifies a decoded CHIP-8 instruction.
type Operation uint8

// All operations of the instruction set. OpInvalid marks words that do not
// decode to any of them.
const (
	OpInvalid          Operation = iota
	OpClear                      // 00E0
	OpReturn                     // 00EE
	OpJump                       // 1NNN
	OpCall                       // 2NNN
	OpSkipEqualByte              // 3XNN
	OpSkipNotEqualByte           // 4XNN
	OpSkipEqualReg               // 5XY0
	OpLoadByte                   // 6XNN
	OpAddByte                    // 7XNN
	OpLoadReg                    // 8XY0
	OpOr                         // 8XY1
	OpAnd                        // 8XY2
	OpXor                        // 8XY3
	OpAddReg                     // 8XY4
	OpSub                        // 8XY5
	OpShiftRight                 // 8XY6
	OpSubReverse                 // 8XY7
	OpShiftLeft                  // 8XYE
	OpSkipNotEqualReg            // 9XY0
	OpLoadIndex                  // ANNN
	OpJumpOffset                 // BNNN
	OpRandom                     // CXNN
	OpDraw                       // DXYN
	OpSkipKey                    // EX9E
	OpSkipNotKey                 // EXA1
	OpLoadDelay                  // FX07
	OpWaitKey                    // FX0A
	OpSetDelay                   // FX15
	OpSetSound                   // FX18
	OpAddIndex                   // FX1E
	OpLoadGlyph                  // FX29
	OpStoreBCD                   // FX33
	OpStoreRegisters             // FX55
	OpLoadRegisters              // FX65
)

var operationNames = [...]string{
	OpInvalid:          "invalid",
	OpClear:            "clear",
	OpReturn:           "return",
	OpJump:             "jump",
	OpCall:             "call",
	OpSkipEqualByte:    "skip_eq_byte",
	OpSkipNotEqualByte: "skip_ne_byte",
	OpSkipEqualReg:     "skip_eq_reg",
	OpLoadByte:         "load_byte",
	OpAddByte:          "add_byte",
	OpLoadReg:          "load_reg",
	OpOr:               "or",
	OpAnd:              "and",
	OpXor:              "xor",
	OpAddReg:           "add_reg",
	OpSub:              "sub",
	OpShiftRight:       "shr",
	OpSubReverse:       "subn",
	OpShiftLeft:        "shl",
	OpSkipNotEqualReg:  "skip_ne_reg",
	OpLoadIndex:        "load_index",
	OpJumpOffset:       "jump_offset",
	OpRandom:           "random",
	OpDraw:             "draw",
	OpSkipKey:          "skip_key",
	OpSkipNotKey:       "skip_not_key",
	OpLoadDelay:        "load_delay",
	OpWaitKey:          "wait_key",
	OpSetDelay:         "set_delay",
	OpSetSound:         "set_sound",
	OpAddIndex:         "add_index",
	OpLoadGlyph:        "load_glyph",
	OpStoreBCD:         "store_bcd",
	OpStoreRegisters:   "store_registers",
	OpLoadRegisters:    "load_registers",
}

func (o Operation) String() string {
	if int(o) < len(operationNames) {
		return operationNames[o]
	}
	return fmt.Sprintf("Operation(%d)", uint8(o))
}

// Instruction is a decoded instruction word with all operand fields extracted.
// Operations only use the fields their encoding defines.
type Instruction struct {
	Op   Operation
	Word uint16

	X   uint8  // bits 8-11
	Y   uint8  // bits 4-7
	N   uint8  // bits 0-3
	NN  uint8  // bits 0-7
	NNN uint16 // bits 0-11
}

// Decode splits an instruction word into its operand fields and identifies the
// operation. Words that are not part of the instruction set return an
// instruction with OpInvalid and an error wrapping ErrInvalidOpcode.
func Decode(word uint16) (Instruction, error) {
	ins := Instruction{
		Word: word,
		X:    uint8((word & 0x0F00) >> 8),
		Y:    uint8((word & 0x00F0) >> 4),
		N:    uint8(word & 0x000F),
		NN:   uint8(word & 0x00FF),
		NNN:  word & 0x0FFF,
	}

	ins.Op = decodeOperation(word, ins.N, ins.NN)
	if ins.Op == OpInvalid {
		return ins, fmt.Errorf("%w: %04X", ErrInvalidOpcode, word)
	}
	return ins, nil
}

// decodeOperation maps the opcode family and its sub-fields to an operation.
func decodeOperation(word uint16, n, nn uint8) Operation {
	switch word >> 12 {
	case 0x0:
		switch word {
		case 0x00E0:
			return OpClear
		case 0x00EE:
			return OpReturn
		}
	case 0x1:
		return OpJump
	case 0x2:
		return OpCall
	case 0x3:
		return OpSkipEqualByte
	case 0x4:
		return OpSkipNotEqualByte
	case 0x5:
		if n == 0 {
			return OpSkipEqualReg
		}
	case 0x6:
		return OpLoadByte
	case 0x7:
		return OpAddByte
	case 0x8:
		return decodeArithmetic(n)
	case 0x9:
		if n == 0 {
			return OpSkipNotEqualReg
		}
	case 0xA:
		return OpLoadIndex
	case 0xB:
		return OpJumpOffset
	case 0xC:
		return OpRandom
	case 0xD:
		return OpDraw
	case 0xE:
		switch nn {
		case 0x9E:
			return OpSkipKey
		case 0xA1:
			return OpSkipNotKey
		}
	case 0xF:
		return decodeMisc(nn)
	}
	return OpInvalid
}

// decodeArithmetic decodes the 8XYN register to register operations.
func decodeArithmetic(n uint8) Operation {
	switch n {
	case 0x0:
		return OpLoadReg
	case 0x1:
		return OpOr
	case 0x2:
		return OpAnd
	case 0x3:
		return OpXor
	case 0x4:
		return OpAddReg
	case 0x5:
		return OpSub
	case 0x6:
		return OpShiftRight
	case 0x7:
		return OpSubReverse
	case 0xE:
		return OpShiftLeft
	default:
		return OpInvalid
	}
}

// decodeMisc decodes the FXNN timer, input and memory operations.
func decodeMisc(nn uint8) Operation {
	switch nn {
	case 0x07:
		return OpLoadDelay
	case 0x0A:
		return OpWaitKey
	case 0x15:
		return OpSetDelay
	case 0x18:
		return OpSetSound
	case 0x1E:
		return OpAddIndex
	case 0x29:
		return OpLoadGlyph
	case 0x33:
		return OpStoreBCD
	case 0x55:
		return OpStoreRegisters
	case 0x65:
		return OpLoadRegisters
	default:
		return OpInvalid
	}
}
