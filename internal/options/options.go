// Package options contains the program options.
package options

import "time"

// Parameters contains file path options.
type Parameters struct {
	Input string `flag:"i" usage:"CHIP-8 program file"`
}

// Flags contains behavior options.
type Flags struct {
	Rate    int           `flag:"rate" usage:"instructions per second" default:"700"`
	UI      string        `flag:"ui" usage:"frontend: terminal, tty" default:"terminal"`
	Seed    uint64        `flag:"seed" usage:"random number seed, 0 uses a random seed"`
	Hold    time.Duration `flag:"hold" usage:"duration a pressed key stays held" default:"150ms"`
	Steps   int           `flag:"steps" usage:"run headless for the given number of steps and print the screen"`
	Trace   bool          `flag:"trace" usage:"log every executed instruction"`
	Debug   bool          `flag:"debug" usage:"enable debug logging"`
	Quiet   bool          `flag:"q" usage:"quiet mode"`
	Version bool          `flag:"version" usage:"print version and exit"`
}

// Quirks contains interpreter variant options.
type Quirks struct {
	SubnWritesVx bool `flag:"quirk-subn-vx" usage:"8XY7 stores the result in VX"`
	ShiftUsesVy  bool `flag:"quirk-shift-vy" usage:"8XY6 and 8XYE shift VY into VX"`
}

// Program options of the emulator.
type Program struct {
	Parameters
	Flags
	Quirks
}

// Headless returns whether the program runs without a frontend.
func (p Program) Headless() bool {
	return p.Steps > 0
}
