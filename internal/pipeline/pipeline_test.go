package pipeline

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/retroenv/retrochip8/internal/chip8"
	"github.com/retroenv/retrochip8/internal/config"
	"github.com/retroenv/retrochip8/internal/detector"
	"github.com/retroenv/retrochip8/internal/keypad"
	"github.com/retroenv/retrochip8/internal/options"
	"github.com/retroenv/retrogolib/assert"
	"github.com/retroenv/retrogolib/log"
)

func TestNew(t *testing.T) {
	logger := log.NewTestLogger(t)
	p := New(logger, &bytes.Buffer{})

	assert.NotNil(t, p)
	assert.NotNil(t, p.logger)
	assert.NotNil(t, p.detector)
	assert.NotNil(t, p.loader)
}

func headlessOptions(input string, steps int) options.Program {
	return options.Program{
		Parameters: options.Parameters{Input: input},
		Flags: options.Flags{
			Rate:  config.DefaultInstructionRate,
			UI:    config.UITerminal,
			Hold:  config.DefaultKeyHold,
			Steps: steps,
			Seed:  1,
			Quiet: true,
		},
	}
}

func TestExecute_Headless(t *testing.T) {
	// ld V0, 5; ld F, V0; drw V0, V0, 5; jp 0x206
	program := []byte{0x60, 0x05, 0xF0, 0x29, 0xD0, 0x05, 0x12, 0x06}
	tmpFile := createTempFile(t, "digit.ch8", program)

	var output bytes.Buffer
	p := New(log.NewTestLogger(t), &output)

	err := p.Execute(context.Background(), headlessOptions(tmpFile, 10))
	assert.NoError(t, err)

	screen := output.String()
	assert.Contains(t, screen, "     ▄▄▄▄\n")
	assert.Contains(t, screen, "     █▄▄▄\n")
	assert.Contains(t, screen, "V0 05")
	assert.Contains(t, screen, "PC 0206")
	assert.Contains(t, screen, "steps 10 | skipped 0")
}

func TestExecute_HeadlessHalts(t *testing.T) {
	// ret with an empty stack
	tmpFile := createTempFile(t, "halt.ch8", []byte{0x00, 0xEE})

	var output bytes.Buffer
	p := New(log.NewTestLogger(t), &output)

	err := p.Execute(context.Background(), headlessOptions(tmpFile, 10))
	assert.Error(t, err)
	assert.True(t, errors.Is(err, chip8.ErrStackUnderflow))
	assert.Contains(t, output.String(), "steps 1")
}

func TestExecute_HeadlessSkipsInvalid(t *testing.T) {
	// invalid word followed by ld V1, 7
	tmpFile := createTempFile(t, "skip.ch8", []byte{0xFF, 0xFF, 0x61, 0x07})

	var output bytes.Buffer
	p := New(log.NewTestLogger(t), &output)

	err := p.Execute(context.Background(), headlessOptions(tmpFile, 2))
	assert.NoError(t, err)
	assert.Contains(t, output.String(), "V1 07")
	assert.Contains(t, output.String(), "skipped 1")
}

func TestExecute_Errors(t *testing.T) {
	p := New(log.NewTestLogger(t), &bytes.Buffer{})

	t.Run("missing file", func(t *testing.T) {
		err := p.Execute(context.Background(), headlessOptions("/nonexistent/file.ch8", 1))
		assert.True(t, errors.Is(err, os.ErrNotExist))
	})

	t.Run("cartridge image", func(t *testing.T) {
		tmpFile := createTempFile(t, "game.nes", []byte{'N', 'E', 'S', 0x1A, 0x01})
		err := p.Execute(context.Background(), headlessOptions(tmpFile, 1))
		assert.True(t, errors.Is(err, detector.ErrUnsupportedSystem))
	})
}

func TestCreateMachine(t *testing.T) {
	p := New(log.NewTestLogger(t), &bytes.Buffer{})
	keys := keypad.New(time.Minute)

	opts := headlessOptions("test.ch8", 1)
	opts.SubnWritesVx = true

	// ld V0, 1; ld V1, 3; subn V0, V1
	vm, err := p.createMachine(opts, keys, []byte{0x60, 0x01, 0x61, 0x03, 0x80, 0x17})
	assert.NoError(t, err)

	for range 3 {
		assert.NoError(t, vm.Step())
	}
	assert.Equal(t, uint8(2), vm.V(0))
	assert.Equal(t, uint8(3), vm.V(1))
	assert.Equal(t, uint8(1), vm.V(chip8.FlagRegister))
}

func TestIgnoreQuit(t *testing.T) {
	assert.NoError(t, ignoreQuit(context.Background(), context.Canceled))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.True(t, errors.Is(ignoreQuit(ctx, context.Canceled), context.Canceled))

	other := errors.New("halted")
	assert.Equal(t, other, ignoreQuit(context.Background(), other))
}

func createTempFile(t *testing.T, name string, data []byte) string {
	t.Helper()
	tmpFile := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(tmpFile, data, 0600); err != nil {
		t.Fatalf("Failed to create temp file: %v", err)
	}
	return tmpFile
}
