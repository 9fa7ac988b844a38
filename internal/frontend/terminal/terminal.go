// Package terminal implements an interactive frontend based on gocui that
// renders the screen, the registers and a status line in separate views.
package terminal

import (
	"errors"
	"fmt"
	"sync"
	"unicode"

	"github.com/jroimartin/gocui"
	"github.com/retroenv/retrochip8/internal/chip8"
	"github.com/retroenv/retrochip8/internal/emulator"
	"github.com/retroenv/retrochip8/internal/frontend"
	"github.com/retroenv/retrochip8/internal/keypad"
)

const (
	screenView    = "screen"
	registersView = "registers"
	statusView    = "status"

	registersWidth = 20
)

var _ emulator.Frontend = (*Terminal)(nil)

// Terminal is a gocui based frontend. Render can be called from any goroutine,
// drawing happens in the gocui main loop.
type Terminal struct {
	gui   *gocui.Gui
	keys  *keypad.Keypad
	title string

	mu    sync.Mutex
	frame emulator.Frame
}

// New initializes the terminal and binds the keypad layout. Close has to be
// called to restore the terminal.
func New(keys *keypad.Keypad, title string) (*Terminal, error) {
	gui, err := gocui.NewGui(gocui.OutputNormal)
	if err != nil {
		return nil, fmt.Errorf("initializing terminal: %w", err)
	}
	gui.InputEsc = true

	t := &Terminal{
		gui:   gui,
		keys:  keys,
		title: title,
	}
	gui.SetManagerFunc(t.layout)

	if err := t.bindKeys(); err != nil {
		gui.Close()
		return nil, err
	}
	return t, nil
}

// MainLoop processes terminal events until the user quits or Quit is called.
func (t *Terminal) MainLoop() error {
	err := t.gui.MainLoop()
	if errors.Is(err, gocui.ErrQuit) {
		return nil
	}
	return err
}

// Quit stops the main loop.
func (t *Terminal) Quit() {
	t.gui.Update(func(*gocui.Gui) error {
		return gocui.ErrQuit
	})
}

// Close restores the terminal.
func (t *Terminal) Close() {
	t.gui.Close()
}

// Render stores the frame and schedules a redraw. Updates are not ordered,
// every redraw uses the most recent frame.
func (t *Terminal) Render(frame emulator.Frame) error {
	t.mu.Lock()
	t.frame = frame
	t.mu.Unlock()

	t.gui.Update(t.draw)
	return nil
}

func (t *Terminal) bindKeys() error {
	for _, r := range keypad.Runes() {
		key, _ := keypad.Map(r)
		handler := t.pressHandler(key)

		if err := t.gui.SetKeybinding("", r, gocui.ModNone, handler); err != nil {
			return fmt.Errorf("binding key '%c': %w", r, err)
		}
		if upper := unicode.ToUpper(r); upper != r {
			if err := t.gui.SetKeybinding("", upper, gocui.ModNone, handler); err != nil {
				return fmt.Errorf("binding key '%c': %w", upper, err)
			}
		}
	}

	for _, key := range []gocui.Key{gocui.KeyCtrlC, gocui.KeyEsc} {
		if err := t.gui.SetKeybinding("", key, gocui.ModNone, quit); err != nil {
			return fmt.Errorf("binding quit key: %w", err)
		}
	}
	return nil
}

func (t *Terminal) pressHandler(key uint8) func(*gocui.Gui, *gocui.View) error {
	return func(*gocui.Gui, *gocui.View) error {
		t.keys.Press(key)
		return nil
	}
}

func quit(*gocui.Gui, *gocui.View) error {
	return gocui.ErrQuit
}

// layout creates the views, the screen view has an inner size of 64x16 cells.
func (t *Terminal) layout(g *gocui.Gui) error {
	screenRight := chip8.ScreenWidth + 1
	screenBottom := frontend.TextHeight + 1

	v, err := g.SetView(screenView, 0, 0, screenRight, screenBottom)
	if err != nil {
		if !errors.Is(err, gocui.ErrUnknownView) {
			return err
		}
		v.Title = t.title
	}

	v, err = g.SetView(registersView, screenRight+1, 0, screenRight+registersWidth, screenBottom)
	if err != nil {
		if !errors.Is(err, gocui.ErrUnknownView) {
			return err
		}
		v.Title = "Registers"
	}

	v, err = g.SetView(statusView, 0, screenBottom+1, screenRight+registersWidth, screenBottom+3)
	if err != nil {
		if !errors.Is(err, gocui.ErrUnknownView) {
			return err
		}
		v.Title = "Status"
	}
	return nil
}

func (t *Terminal) draw(g *gocui.Gui) error {
	t.mu.Lock()
	frame := t.frame
	t.mu.Unlock()

	views := []struct {
		name  string
		lines []string
	}{
		{screenView, frontend.Lines(&frame.Pixels)},
		{registersView, frontend.Registers(frame.State)},
		{statusView, []string{frontend.Status(frame, keypad.Describe(t.keys))}},
	}

	for _, view := range views {
		v, err := g.View(view.name)
		if err != nil {
			return fmt.Errorf("getting view '%s': %w", view.name, err)
		}
		v.Clear()
		for _, line := range view.lines {
			if _, err := fmt.Fprintln(v, line); err != nil {
				return fmt.Errorf("writing view '%s': %w", view.name, err)
			}
		}
	}
	return nil
}
