package chip8

import (
	chip8cpu "github.com/retroenv/retrogolib/arch/cpu/chip8"
	"github.com/retroenv/retrogolib/log"
)

// trace logs an instruction before it is executed.
func (vm *VM) trace(address uint16, ins Instruction) {
	if vm.logger == nil {
		return
	}

	vm.logger.Debug("Executing instruction",
		log.Hex("address", address),
		log.Hex("opcode", ins.Word),
		log.String("mnemonic", Mnemonic(ins.Word)),
		log.Stringer("operation", ins.Op),
		log.Hex("index", vm.i))
}

// Mnemonic returns the assembler mnemonic of an instruction word, or "???" for
// words that are not part of the instruction set.
func Mnemonic(word uint16) string {
	firstNibble := (word & 0xF000) >> 12
	opcodes := chip8cpu.Opcodes[int(firstNibble)]
	for _, op := range opcodes {
		if op.Info.Mask&word == op.Info.Value && op.Instruction != nil {
			return op.Instruction.Name
		}
	}
	return "???"
}
