// Package config handles application configuration and setup
package config

import (
	"time"

	"github.com/retroenv/retrogolib/log"
)

const (
	// DefaultInstructionRate is the default number of executed instructions per second.
	DefaultInstructionRate = 700

	// DefaultKeyHold is the default duration a key stays held after a key press,
	// terminals do not report key releases.
	DefaultKeyHold = 150 * time.Millisecond
)

// Frontend names.
const (
	UITerminal = "terminal"
	UITTY      = "tty"
)

// CreateLogger creates a logger with appropriate settings
func CreateLogger(debug, quiet bool) *log.Logger {
	cfg := log.DefaultConfig()
	if debug {
		cfg.Level = log.DebugLevel
	} else if quiet {
		cfg.Level = log.ErrorLevel
	}
	return log.NewWithConfig(cfg)
}
