package detector

import (
	"errors"
	"testing"

	"github.com/retroenv/retrogolib/arch"
	"github.com/retroenv/retrogolib/assert"
	"github.com/retroenv/retrogolib/log"
)

func TestDetect(t *testing.T) {
	logger := log.NewTestLogger(t)
	d := New(logger)

	program := []byte{0x00, 0xE0, 0x12, 0x00}
	cartridge := []byte{'N', 'E', 'S', 0x1A, 0x01}

	tests := []struct {
		name       string
		filename   string
		image      []byte
		wantSystem arch.System
	}{
		{
			name:       "cartridge header wins over extension",
			filename:   "game.ch8",
			image:      cartridge,
			wantSystem: arch.NES,
		},
		{
			name:       "program with .ch8 extension",
			filename:   "pong.ch8",
			image:      program,
			wantSystem: arch.CHIP8System,
		},
		{
			name:       "program with .nes extension",
			filename:   "game.nes",
			image:      program,
			wantSystem: arch.NES,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := d.Detect(tt.filename, tt.image)
			assert.Equal(t, tt.wantSystem, got)
		})
	}
}

func TestDetectFromFile(t *testing.T) {
	logger := log.NewTestLogger(t)
	d := New(logger)

	tests := []struct {
		name       string
		filename   string
		wantSystem arch.System
	}{
		{
			name:       ".nes extension",
			filename:   "super_mario.nes",
			wantSystem: arch.NES,
		},
		{
			name:       ".NES extension (uppercase)",
			filename:   "ZELDA.NES",
			wantSystem: arch.NES,
		},
		{
			name:       ".ch8 extension",
			filename:   "pong.ch8",
			wantSystem: arch.CHIP8System,
		},
		{
			name:       ".rom extension",
			filename:   "game.rom",
			wantSystem: arch.CHIP8System,
		},
		{
			name:       "no extension",
			filename:   "game",
			wantSystem: arch.CHIP8System,
		},
		{
			name:       "unknown extension",
			filename:   "game.txt",
			wantSystem: arch.CHIP8System,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := d.detectFromFile(tt.filename)
			assert.Equal(t, tt.wantSystem, got)
		})
	}
}

func TestVerify(t *testing.T) {
	d := New(log.NewTestLogger(t))

	assert.NoError(t, d.Verify("pong.ch8", []byte{0x00, 0xE0}))

	err := d.Verify("mario.nes", []byte{'N', 'E', 'S', 0x1A})
	assert.Error(t, err)
	assert.True(t, errors.Is(err, ErrUnsupportedSystem))
}
