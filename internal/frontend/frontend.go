// Package frontend contains the text rendering shared by the terminal based
// frontends.
package frontend

import (
	"fmt"
	"strings"

	"github.com/retroenv/retrochip8/internal/chip8"
	"github.com/retroenv/retrochip8/internal/emulator"
)

// TextHeight is the number of text lines used to render the screen, two pixel
// rows share one line.
const TextHeight = chip8.ScreenHeight / 2

// Lines renders the pixels as text using half-block characters.
func Lines(pixels *[chip8.ScreenWidth * chip8.ScreenHeight]bool) []string {
	lines := make([]string, 0, TextHeight)
	var sb strings.Builder

	for y := 0; y < chip8.ScreenHeight; y += 2 {
		sb.Reset()
		for x := range chip8.ScreenWidth {
			top := pixels[y*chip8.ScreenWidth+x]
			bottom := pixels[(y+1)*chip8.ScreenWidth+x]
			sb.WriteRune(halfBlock(top, bottom))
		}
		lines = append(lines, sb.String())
	}
	return lines
}

func halfBlock(top, bottom bool) rune {
	switch {
	case top && bottom:
		return '█'
	case top:
		return '▀'
	case bottom:
		return '▄'
	default:
		return ' '
	}
}

// Registers renders the register file, index register, program counter,
// stack pointer and timers, one entry per line.
func Registers(state chip8.Snapshot) []string {
	lines := make([]string, 0, 14)
	for i := range 8 {
		lines = append(lines, fmt.Sprintf("V%X %02X   V%X %02X", i, state.V[i], i+8, state.V[i+8]))
	}

	lines = append(lines,
		fmt.Sprintf("I  %04X", state.I),
		fmt.Sprintf("PC %04X", state.PC),
		fmt.Sprintf("SP %02X", state.SP),
		fmt.Sprintf("DT %02X   ST %02X", state.DelayTimer, state.SoundTimer),
	)

	if state.WaitingForKey {
		lines = append(lines, fmt.Sprintf("wait key -> V%X", state.KeyRegister))
	}
	return lines
}

// Status renders a single status line for a frame and the currently held keys.
func Status(frame emulator.Frame, heldKeys string) string {
	parts := []string{
		fmt.Sprintf("steps %d", frame.Steps),
		fmt.Sprintf("skipped %d", frame.Skipped),
		"keys " + heldKeys,
	}
	if frame.Sound {
		parts = append(parts, "beep")
	}
	if frame.Err != nil {
		parts = append(parts, "last error: "+frame.Err.Error())
	}
	return strings.Join(parts, " | ")
}
