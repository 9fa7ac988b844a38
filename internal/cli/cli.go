// Package cli handles command line interface logic
package cli

import (
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/retroenv/retrochip8/internal/config"
	"github.com/retroenv/retrochip8/internal/emulator"
	"github.com/retroenv/retrochip8/internal/options"
)

// ParseFlags parses command line flags and returns the program options
func ParseFlags() (options.Program, error) {
	flags := flag.NewFlagSet(os.Args[0], flag.ExitOnError)
	var opts options.Program
	readOptionFlags(flags, &opts)

	err := flags.Parse(os.Args[1:])
	if opts.Version {
		return opts, nil
	}

	args := flags.Args()
	if err != nil || (len(args) == 0 && opts.Input == "") {
		return opts, &UsageError{flags: flags}
	}

	if err := validateArgs(args); err != nil {
		err.flags = flags
		return opts, err
	}

	if err := normalizeOptions(&opts); err != nil {
		return opts, err
	}

	if opts.Input == "" {
		opts.Input = args[0]
	}
	return opts, nil
}

// UsageError represents an error that should show usage information
type UsageError struct {
	flags *flag.FlagSet
	msg   string
}

func (e *UsageError) Error() string {
	return e.msg
}

func (e *UsageError) ShowUsage() {
	if e.msg != "" {
		fmt.Printf("%s\n\n", e.msg)
	}
	fmt.Printf("usage: retrochip8 [options] <program file>\n\n")
	if e.flags != nil {
		e.flags.PrintDefaults()
	}
	fmt.Println()
}

// validateArgs checks if arguments are in correct order
func validateArgs(args []string) *UsageError {
	for i, arg := range args {
		if i > 0 && len(arg) > 0 && arg[0] == '-' {
			return &UsageError{
				msg: fmt.Sprintf("Potential argument %s found after program file, please pass the program file as last argument", arg),
			}
		}
	}
	return nil
}

// normalizeOptions normalizes and validates option values
func normalizeOptions(opts *options.Program) error {
	if opts.Rate < emulator.TimerRate || opts.Rate > emulator.MaxRate {
		return fmt.Errorf("instruction rate %d is outside of the supported range %d-%d",
			opts.Rate, emulator.TimerRate, emulator.MaxRate)
	}
	if opts.Hold <= 0 {
		return fmt.Errorf("key hold duration %s must be positive", opts.Hold)
	}
	if opts.Steps < 0 {
		return fmt.Errorf("step count %d must not be negative", opts.Steps)
	}

	opts.UI = strings.ToLower(opts.UI)
	validFrontends := []string{config.UITerminal, config.UITTY}
	for _, valid := range validFrontends {
		if opts.UI == valid {
			return nil
		}
	}

	return fmt.Errorf("unsupported frontend: %s. Valid options: %s",
		opts.UI, strings.Join(validFrontends, ", "))
}

func readOptionFlags(flags *flag.FlagSet, opts *options.Program) {
	flags.StringVar(&opts.Input, "i", "", "name of the CHIP-8 program file")
	flags.IntVar(&opts.Rate, "rate", config.DefaultInstructionRate, "number of executed instructions per second")
	flags.StringVar(&opts.UI, "ui", config.UITerminal, "frontend to use (terminal/tty)")
	flags.Uint64Var(&opts.Seed, "seed", 0, "seed for the random number generator, 0 uses a random seed")
	flags.DurationVar(&opts.Hold, "hold", config.DefaultKeyHold, "duration that a pressed key stays held")
	flags.IntVar(&opts.Steps, "steps", 0, "run headless for the given number of steps and print the screen")
	flags.BoolVar(&opts.Trace, "trace", false, "log every executed instruction, redirect stderr when using a frontend")
	flags.BoolVar(&opts.Debug, "debug", false, "enable debugging options for extended logging")
	flags.BoolVar(&opts.Quiet, "q", false, "perform operations quietly")
	flags.BoolVar(&opts.Version, "version", false, "print the version and exit")
	flags.BoolVar(&opts.SubnWritesVx, "quirk-subn-vx", false, "8XY7 stores the result in VX instead of VY")
	flags.BoolVar(&opts.ShiftUsesVy, "quirk-shift-vy", false, "8XY6 and 8XYE shift VY into VX")
}
