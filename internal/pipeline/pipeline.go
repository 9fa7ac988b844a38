// Package pipeline orchestrates loading a program and running it on the
// selected frontend.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/retroenv/retrochip8/internal/chip8"
	"github.com/retroenv/retrochip8/internal/config"
	"github.com/retroenv/retrochip8/internal/detector"
	"github.com/retroenv/retrochip8/internal/emulator"
	"github.com/retroenv/retrochip8/internal/frontend"
	"github.com/retroenv/retrochip8/internal/frontend/terminal"
	"github.com/retroenv/retrochip8/internal/frontend/tty"
	"github.com/retroenv/retrochip8/internal/keypad"
	"github.com/retroenv/retrochip8/internal/loader"
	"github.com/retroenv/retrochip8/internal/options"
	"github.com/retroenv/retrogolib/log"
)

// Pipeline orchestrates the complete emulation workflow.
type Pipeline struct {
	logger   *log.Logger
	detector *detector.Detector
	loader   *loader.Loader
	output   io.Writer // receives the final screen of headless runs
}

// New creates a new emulation pipeline.
func New(logger *log.Logger, output io.Writer) *Pipeline {
	return &Pipeline{
		logger:   logger,
		detector: detector.New(logger),
		loader:   loader.New(),
		output:   output,
	}
}

// Execute loads the program and runs it until the user quits, the context is
// cancelled or the machine halts.
func (p *Pipeline) Execute(ctx context.Context, opts options.Program) error {
	image, err := p.loader.Load(opts.Input)
	if err != nil {
		return fmt.Errorf("loading program: %w", err)
	}
	if err := p.detector.Verify(opts.Input, image); err != nil {
		return err
	}

	keys := keypad.New(opts.Hold)
	vm, err := p.createMachine(opts, keys, image)
	if err != nil {
		return err
	}

	p.printInfo(opts, len(image))

	if opts.Headless() {
		return p.runHeadless(vm, keys, opts)
	}

	switch opts.UI {
	case config.UITerminal:
		return p.runTerminal(ctx, vm, keys, opts)
	case config.UITTY:
		return p.runTTY(ctx, vm, keys, opts)
	default:
		return fmt.Errorf("unsupported frontend '%s'", opts.UI)
	}
}

// createMachine creates the machine configured by the options and loads the
// program image into it.
func (p *Pipeline) createMachine(opts options.Program, keys chip8.KeyState, image []byte) (*chip8.VM, error) {
	vmOptions := []chip8.Option{
		chip8.WithQuirks(chip8.Quirks{
			SubnWritesVx: opts.SubnWritesVx,
			ShiftUsesVy:  opts.ShiftUsesVy,
		}),
	}
	if opts.Seed != 0 {
		vmOptions = append(vmOptions, chip8.WithRandom(chip8.NewSeededRandom(opts.Seed)))
	}
	if opts.Trace {
		vmOptions = append(vmOptions, chip8.WithLogger(p.logger))
	}

	vm := chip8.New(keys, vmOptions...)
	if err := vm.LoadProgram(image); err != nil {
		return nil, fmt.Errorf("loading program into memory: %w", err)
	}
	return vm, nil
}

// runHeadless executes a fixed number of steps without pacing and prints the
// final screen.
func (p *Pipeline) runHeadless(vm *chip8.VM, keys *keypad.Keypad, opts options.Program) error {
	emu, err := emulator.New(p.logger, vm, nil, opts.Rate)
	if err != nil {
		return fmt.Errorf("creating emulator: %w", err)
	}

	runErr := emu.RunFor(opts.Steps)
	p.reportSkipped(emu)

	if err := p.printFrame(emu.Frame(), keys); err != nil {
		return errors.Join(runErr, err)
	}
	return runErr
}

// runTerminal runs the emulator in the background while the gocui main loop
// owns the terminal. A halted machine stays on screen until the user quits.
func (p *Pipeline) runTerminal(ctx context.Context, vm *chip8.VM, keys *keypad.Keypad, opts options.Program) error {
	term, err := terminal.New(keys, filepath.Base(opts.Input))
	if err != nil {
		return err
	}
	defer term.Close()

	emu, err := emulator.New(p.logger, vm, term, opts.Rate)
	if err != nil {
		return fmt.Errorf("creating emulator: %w", err)
	}

	runCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	runErr := make(chan error, 1)
	go func() {
		runErr <- emu.Run(runCtx)
	}()
	go func() {
		<-runCtx.Done()
		term.Quit()
	}()

	loopErr := term.MainLoop()
	cancel()
	err = ignoreQuit(ctx, <-runErr)
	p.reportSkipped(emu)

	return errors.Join(loopErr, err)
}

// runTTY runs the emulator on the raw terminal. Esc or Ctrl+C cancel the run.
func (p *Pipeline) runTTY(ctx context.Context, vm *chip8.VM, keys *keypad.Keypad, opts options.Program) error {
	runCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	term := tty.New(int(os.Stdin.Fd()), os.Stdout, keys, cancel)
	emu, err := emulator.New(p.logger, vm, term, opts.Rate)
	if err != nil {
		return fmt.Errorf("creating emulator: %w", err)
	}

	if err := term.Open(); err != nil {
		return err
	}

	err = ignoreQuit(ctx, emu.Run(runCtx))
	closeErr := term.Close()
	p.reportSkipped(emu)

	return errors.Join(err, closeErr)
}

// ignoreQuit drops the cancellation error caused by the user quitting the
// frontend, a cancelled parent context is still reported.
func ignoreQuit(parent context.Context, err error) error {
	if errors.Is(err, context.Canceled) && parent.Err() == nil {
		return nil
	}
	return err
}

// printInfo prints information about the program being run.
func (p *Pipeline) printInfo(opts options.Program, size int) {
	if opts.Quiet {
		return
	}

	p.logger.Info("Running CHIP-8 program",
		log.String("file", opts.Input),
		log.Int("size", size),
		log.Int("rate", opts.Rate),
	)
	if opts.SubnWritesVx || opts.ShiftUsesVy {
		p.logger.Info("Interpreter quirks enabled",
			log.String("subn_writes_vx", fmt.Sprint(opts.SubnWritesVx)),
			log.String("shift_uses_vy", fmt.Sprint(opts.ShiftUsesVy)),
		)
	}
}

// reportSkipped logs a summary of instructions skipped due to recoverable errors.
func (p *Pipeline) reportSkipped(emu *emulator.Emulator) {
	skipped := emu.Skipped()
	if skipped == 0 {
		return
	}

	frame := emu.Frame()
	p.logger.Warn("Skipped invalid instructions",
		log.Int("count", skipped),
		log.Err(frame.Err))
}

// printFrame writes the screen, registers and status of a frame as text.
func (p *Pipeline) printFrame(frame emulator.Frame, keys *keypad.Keypad) error {
	var sb strings.Builder
	for _, line := range frontend.Lines(&frame.Pixels) {
		sb.WriteString(strings.TrimRight(line, " "))
		sb.WriteByte('\n')
	}
	for _, line := range frontend.Registers(frame.State) {
		sb.WriteString(line)
		sb.WriteByte('\n')
	}
	sb.WriteString(frontend.Status(frame, keypad.Describe(keys)))
	sb.WriteByte('\n')

	if _, err := io.WriteString(p.output, sb.String()); err != nil {
		return fmt.Errorf("writing screen: %w", err)
	}
	return nil
}
