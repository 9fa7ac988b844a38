//go:build !(darwin || dragonfly || freebsd || linux || netbsd || openbsd)

package tty

import "errors"

func makeRaw(int) (func() error, error) {
	return nil, errors.ErrUnsupported
}

func readInput(int, []byte) (int, error) {
	return 0, errors.ErrUnsupported
}
