// Package emulator implements the driver loop that paces a CHIP-8 machine
// against wall-clock time and connects it to a frontend.
package emulator

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/retroenv/retrochip8/internal/chip8"
	"github.com/retroenv/retrogolib/log"
)

// TimerRate is the fixed frequency of the delay and sound timers in Hz.
const TimerRate = 60

// MaxRate is the highest supported instruction rate in Hz, one instruction
// per microsecond.
const MaxRate = 1_000_000

// statusInterval is the number of timer ticks after which a frame is rendered
// even if the screen did not change, to refresh register and status displays.
const statusInterval = 6

// Frame is a rendered snapshot of the machine passed to a frontend.
type Frame struct {
	Pixels [chip8.ScreenWidth * chip8.ScreenHeight]bool
	Sound  bool // sound timer is active
	State  chip8.Snapshot

	Steps   uint64 // executed steps
	Skipped int    // instructions skipped due to recoverable errors
	Err     error  // last error reported by the machine
}

// Frontend consumes frames produced by the emulator.
type Frontend interface {
	Render(frame Frame) error
}

// Emulator drives a machine at a configurable instruction rate and ticks its
// timers at TimerRate.
type Emulator struct {
	logger   *log.Logger
	vm       *chip8.VM
	frontend Frontend
	rate     int

	steps     uint64
	skipped   int
	lastErr   error
	lastSound bool
}

// New returns a new emulator for the given machine. The frontend can be nil
// for headless runs.
func New(logger *log.Logger, vm *chip8.VM, frontend Frontend, rate int) (*Emulator, error) {
	if rate < TimerRate {
		return nil, fmt.Errorf("instruction rate %d is below the timer rate of %d Hz", rate, TimerRate)
	}
	if rate > MaxRate {
		return nil, fmt.Errorf("instruction rate %d exceeds the maximum of %d Hz", rate, MaxRate)
	}

	return &Emulator{
		logger:   logger,
		vm:       vm,
		frontend: frontend,
		rate:     rate,
	}, nil
}

// Run executes instructions until the context is cancelled or the machine
// reports a non-recoverable error. The last frame stays on the frontend.
func (e *Emulator) Run(ctx context.Context) error {
	instructions := time.NewTicker(time.Second / time.Duration(e.rate))
	defer instructions.Stop()
	timers := time.NewTicker(time.Second / TimerRate)
	defer timers.Stop()

	e.logger.Debug("Starting emulation",
		log.Int("rate", e.rate),
		log.Stringer("instruction_period", time.Second/time.Duration(e.rate)))

	if err := e.render(true); err != nil {
		return err
	}

	ticks := 0
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case <-instructions.C:
			if err := e.step(); err != nil {
				if renderErr := e.render(true); renderErr != nil {
					return errors.Join(err, renderErr)
				}
				return err
			}

		case <-timers.C:
			e.vm.TickTimers()
			ticks++
			if err := e.render(ticks%statusInterval == 0); err != nil {
				return err
			}
		}
	}
}

// RunFor executes the given number of steps without wall-clock pacing, the
// timers are ticked every rate/TimerRate steps.
func (e *Emulator) RunFor(steps int) error {
	stepsPerTick := e.rate / TimerRate

	for i := 1; i <= steps; i++ {
		if err := e.step(); err != nil {
			return err
		}
		if i%stepsPerTick == 0 {
			e.vm.TickTimers()
		}
	}
	return nil
}

// Frame returns a snapshot of the current machine state.
func (e *Emulator) Frame() Frame {
	return Frame{
		Pixels:  e.vm.FrameBuffer().Pixels(),
		Sound:   e.vm.SoundTimer() > 0,
		State:   e.vm.Snapshot(),
		Steps:   e.steps,
		Skipped: e.skipped,
		Err:     e.lastErr,
	}
}

// Skipped returns the number of instructions skipped due to recoverable errors.
func (e *Emulator) Skipped() int {
	return e.skipped
}

// step executes a single instruction and applies the error policy.
func (e *Emulator) step() error {
	err := e.vm.Step()
	e.steps++
	if err == nil {
		return nil
	}

	e.lastErr = err
	if chip8.IsRecoverable(err) {
		e.skipped++
		e.logger.Debug("Skipping instruction", log.Err(err))
		return nil
	}

	return fmt.Errorf("executing program: %w", err)
}

// render passes a frame to the frontend if the screen or the sound state
// changed, or if forced. The dirty flag of the frame buffer is cleared.
func (e *Emulator) render(force bool) error {
	if e.frontend == nil {
		return nil
	}

	fb := e.vm.FrameBuffer()
	sound := e.vm.SoundTimer() > 0
	if !force && !fb.Dirty() && sound == e.lastSound {
		return nil
	}

	frame := e.Frame()
	fb.ClearDirty()
	e.lastSound = sound

	if err := e.frontend.Render(frame); err != nil {
		return fmt.Errorf("rendering frame: %w", err)
	}
	return nil
}
