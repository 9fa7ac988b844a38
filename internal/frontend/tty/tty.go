// Package tty implements a lightweight frontend that puts the controlling
// terminal into raw mode and redraws the screen with ANSI escape sequences.
package tty

import (
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/retroenv/retrochip8/internal/emulator"
	"github.com/retroenv/retrochip8/internal/frontend"
	"github.com/retroenv/retrochip8/internal/keypad"
)

const (
	keyCtrlC = 0x03
	keyEsc   = 0x1b

	clearScreen = "\x1b[2J"
	cursorHome  = "\x1b[H"
	clearLine   = "\x1b[K"
	hideCursor  = "\x1b[?25l"
	showCursor  = "\x1b[?25h"
)

var _ emulator.Frontend = (*TTY)(nil)

// TTY is a raw mode terminal frontend. Key presses read from the input file
// descriptor are forwarded to the keypad.
type TTY struct {
	fd     int
	out    io.Writer
	keys   *keypad.Keypad
	onQuit func()

	mu      sync.Mutex // serializes output
	restore func() error
	stop    chan struct{}
	done    chan struct{}
}

// New returns a new frontend reading from the terminal file descriptor and
// writing to out. onQuit is called when the user presses Esc or Ctrl+C.
func New(fd int, out io.Writer, keys *keypad.Keypad, onQuit func()) *TTY {
	return &TTY{
		fd:     fd,
		out:    out,
		keys:   keys,
		onQuit: onQuit,
	}
}

// Open switches the terminal to raw mode and starts reading input.
func (t *TTY) Open() error {
	restore, err := makeRaw(t.fd)
	if err != nil {
		return fmt.Errorf("entering raw terminal mode: %w", err)
	}
	t.restore = restore
	t.stop = make(chan struct{})
	t.done = make(chan struct{})

	if err := t.write(clearScreen + hideCursor); err != nil {
		_ = restore()
		return err
	}

	go t.readLoop()
	return nil
}

// Close stops reading input and restores the terminal state.
func (t *TTY) Close() error {
	if t.restore == nil {
		return nil
	}

	close(t.stop)
	<-t.done

	writeErr := t.write(showCursor + "\n")
	if err := t.restore(); err != nil {
		return fmt.Errorf("restoring terminal: %w", err)
	}
	t.restore = nil
	return writeErr
}

// Render redraws the screen with the registers to the right of it, followed
// by a status line.
func (t *TTY) Render(frame emulator.Frame) error {
	screen := frontend.Lines(&frame.Pixels)
	registers := frontend.Registers(frame.State)

	var sb strings.Builder
	sb.WriteString(cursorHome)
	for i, line := range screen {
		sb.WriteString(line)
		if i < len(registers) {
			sb.WriteString("  ")
			sb.WriteString(registers[i])
		}
		sb.WriteString(clearLine + "\n")
	}
	sb.WriteString(frontend.Status(frame, keypad.Describe(t.keys)))
	sb.WriteString(clearLine)

	return t.write(sb.String())
}

func (t *TTY) write(s string) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if _, err := io.WriteString(t.out, s); err != nil {
		return fmt.Errorf("writing to terminal: %w", err)
	}
	return nil
}

func (t *TTY) readLoop() {
	defer close(t.done)

	buf := make([]byte, 16)
	for {
		select {
		case <-t.stop:
			return
		default:
		}

		n, err := readInput(t.fd, buf)
		if err != nil {
			t.onQuit()
			return
		}
		if n > 0 {
			t.handleInput(buf[:n])
		}
	}
}

// handleInput forwards mapped keys to the keypad. A single Esc byte or Ctrl+C
// quits, escape sequences like cursor keys are ignored.
func (t *TTY) handleInput(data []byte) {
	for i, b := range data {
		switch b {
		case keyCtrlC:
			t.onQuit()
			return

		case keyEsc:
			if i == len(data)-1 {
				t.onQuit()
			}
			return
		}

		if key, ok := keypad.Map(rune(b)); ok {
			t.keys.Press(key)
		}
	}
}
