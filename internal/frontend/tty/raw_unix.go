//go:build darwin || dragonfly || freebsd || linux || netbsd || openbsd

package tty

import (
	"errors"

	"golang.org/x/sys/unix"
)

// readTimeout is the read timeout in tenths of a second, it bounds how long
// Close waits for the input reader to stop.
const readTimeout = 1

// makeRaw disables line buffering and echo of the terminal and returns a
// function that restores the previous state. Signal generation stays enabled.
func makeRaw(fd int) (func() error, error) {
	termios, err := unix.IoctlGetTermios(fd, ioctlGetTermios)
	if err != nil {
		return nil, err
	}

	original := *termios
	state := *termios

	state.Iflag &^= unix.IGNBRK | unix.BRKINT | unix.INLCR | unix.IXON
	state.Lflag &^= unix.ECHO | unix.ECHONL | unix.ICANON | unix.IEXTEN
	state.Cflag &^= unix.CSIZE | unix.PARENB
	state.Cflag |= unix.CS8

	state.Cc[unix.VMIN] = 0
	state.Cc[unix.VTIME] = readTimeout

	if err := unix.IoctlSetTermios(fd, ioctlSetTermios, &state); err != nil {
		return nil, err
	}

	return func() error {
		return unix.IoctlSetTermios(fd, ioctlSetTermios, &original)
	}, nil
}

// readInput reads available input, it returns 0 bytes after the read timeout.
func readInput(fd int, buf []byte) (int, error) {
	n, err := unix.Read(fd, buf)
	if errors.Is(err, unix.EINTR) || errors.Is(err, unix.EAGAIN) {
		return 0, nil
	}
	return n, err
}
