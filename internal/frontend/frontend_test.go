package frontend

import (
	"errors"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/retroenv/retrochip8/internal/chip8"
	"github.com/retroenv/retrochip8/internal/emulator"
	"github.com/retroenv/retrogolib/assert"
)

func TestLines(t *testing.T) {
	var pixels [chip8.ScreenWidth * chip8.ScreenHeight]bool
	pixels[0] = true                       // x 0, y 0
	pixels[chip8.ScreenWidth+1] = true     // x 1, y 1
	pixels[2] = true                       // x 2, y 0
	pixels[chip8.ScreenWidth+2] = true     // x 2, y 1
	pixels[31*chip8.ScreenWidth+63] = true // x 63, y 31

	lines := Lines(&pixels)
	assert.Len(t, lines, TextHeight)
	for _, line := range lines {
		assert.Equal(t, chip8.ScreenWidth, utf8.RuneCountInString(line))
	}

	first := []rune(lines[0])
	assert.Equal(t, '▀', first[0])
	assert.Equal(t, '▄', first[1])
	assert.Equal(t, '█', first[2])
	assert.Equal(t, ' ', first[3])

	last := []rune(lines[TextHeight-1])
	assert.Equal(t, '▄', last[chip8.ScreenWidth-1])
}

func TestRegisters(t *testing.T) {
	state := chip8.Snapshot{
		I:             0x123,
		PC:            0x200,
		SP:            2,
		DelayTimer:    0x10,
		SoundTimer:    0x20,
		WaitingForKey: true,
		KeyRegister:   0xA,
	}
	state.V[0x3] = 0xAB
	state.V[0xB] = 0xCD

	lines := Registers(state)
	assert.Equal(t, "V3 AB   VB CD", lines[3])
	assert.Equal(t, "I  0123", lines[8])
	assert.Equal(t, "PC 0200", lines[9])
	assert.Equal(t, "SP 02", lines[10])
	assert.Equal(t, "DT 10   ST 20", lines[11])
	assert.Equal(t, "wait key -> VA", lines[12])
}

func TestStatus(t *testing.T) {
	frame := emulator.Frame{
		Steps:   42,
		Skipped: 1,
		Sound:   true,
		Err:     errors.New("invalid opcode"),
	}

	status := Status(frame, "1 F")
	assert.Equal(t, "steps 42 | skipped 1 | keys 1 F | beep | last error: invalid opcode", status)
	assert.False(t, strings.Contains(Status(emulator.Frame{}, ""), "beep"))
}
