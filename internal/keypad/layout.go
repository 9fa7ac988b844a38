package keypad

import (
	"fmt"
	"strings"
)

// layout maps the left side of a QWERTY keyboard to the hex keypad:
//
//	1 2 3 4        1 2 3 C
//	Q W E R   ->   4 5 6 D
//	A S D F        7 8 9 E
//	Z X C V        A 0 B F
var layout = map[rune]uint8{
	'1': 0x1, '2': 0x2, '3': 0x3, '4': 0xC,
	'q': 0x4, 'w': 0x5, 'e': 0x6, 'r': 0xD,
	'a': 0x7, 's': 0x8, 'd': 0x9, 'f': 0xE,
	'z': 0xA, 'x': 0x0, 'c': 0xB, 'v': 0xF,
}

// Map returns the keypad key for a keyboard rune, upper case letters are
// treated like lower case ones.
func Map(r rune) (uint8, bool) {
	if r >= 'A' && r <= 'Z' {
		r += 'a' - 'A'
	}
	key, ok := layout[r]
	return key, ok
}

// Runes returns all keyboard runes that map to a keypad key.
func Runes() []rune {
	runes := make([]rune, 0, len(layout))
	for r := range layout {
		runes = append(runes, r)
	}
	return runes
}

// Describe formats the held keys of the keypad as sorted hex digits, for
// example "1 A F".
func Describe(k *Keypad) string {
	held := k.Held()

	var digits []string
	for key := range uint8(16) {
		if held.Contains(key) {
			digits = append(digits, fmt.Sprintf("%X", key))
		}
	}
	return strings.Join(digits, " ")
}
