// Package detector handles system architecture detection.
package detector

import (
	"bytes"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/retroenv/retrogolib/arch"
	"github.com/retroenv/retrogolib/log"
)

// ErrUnsupportedSystem is returned for program images of other systems.
var ErrUnsupportedSystem = errors.New("unsupported system")

// inesMagic starts every iNES cartridge image.
var inesMagic = []byte{'N', 'E', 'S', 0x1A}

// Detector handles system architecture detection from file extensions and
// image content.
type Detector struct {
	logger *log.Logger
}

// New creates a new system detector.
func New(logger *log.Logger) *Detector {
	return &Detector{
		logger: logger,
	}
}

// Detect determines the system architecture of a program image. A cartridge
// header takes precedence over the filename extension, files without a known
// extension are treated as CHIP-8 programs.
func (d *Detector) Detect(filename string, image []byte) arch.System {
	if bytes.HasPrefix(image, inesMagic) {
		return arch.NES
	}

	system := d.detectFromFile(filename)
	d.logger.Debug("Detected system",
		log.Stringer("system", system),
		log.String("file", filename))
	return system
}

// Verify returns an error wrapping ErrUnsupportedSystem if the image does not
// look like a CHIP-8 program.
func (d *Detector) Verify(filename string, image []byte) error {
	system := d.Detect(filename, image)
	if system != arch.CHIP8System {
		return fmt.Errorf("%w: %s looks like a %s image", ErrUnsupportedSystem, filename, system)
	}
	return nil
}

// detectFromFile determines the system type based on file extension.
func (d *Detector) detectFromFile(filename string) arch.System {
	ext := strings.ToLower(filepath.Ext(filename))
	switch ext {
	case ".nes":
		return arch.NES
	case ".ch8", ".c8", ".rom", ".bin", "":
		return arch.CHIP8System
	default:
		d.logger.Debug("Unknown file extension, assuming CHIP-8 program",
			log.String("extension", ext))
		return arch.CHIP8System
	}
}
