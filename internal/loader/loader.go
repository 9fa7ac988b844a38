// Package loader handles program file loading operations.
package loader

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/retroenv/retrochip8/internal/chip8"
)

// Loader handles loading program images from disk.
type Loader struct{}

// New creates a new program loader.
func New() *Loader {
	return &Loader{}
}

// Load reads a raw program image. Images that do not fit into the program
// area of the machine memory are rejected with an error wrapping
// chip8.ErrOutOfMemory.
func (l *Loader) Load(path string) ([]byte, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening file %s: %w", path, err)
	}
	defer func() { _ = file.Close() }()

	return l.LoadFromReader(file)
}

// LoadFromReader reads a raw program image from a reader.
func (l *Loader) LoadFromReader(reader io.Reader) ([]byte, error) {
	// one byte more than allowed to detect oversized images without reading them fully
	image, err := io.ReadAll(io.LimitReader(reader, chip8.MaxProgramSize+1))
	if err != nil {
		return nil, fmt.Errorf("reading program: %w", err)
	}

	if len(image) > chip8.MaxProgramSize {
		return nil, fmt.Errorf("program exceeds %d bytes: %w", chip8.MaxProgramSize, chip8.ErrOutOfMemory)
	}
	if len(image) == 0 {
		return nil, errors.New("program file is empty")
	}
	return image, nil
}
