package keymap

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/grovetools/dilemma/pkg/keycode"
)

// Matrix dimensions of the Dilemma 3x5_2. Each half scans 4 rows of 5
// columns; the right half occupies rows 4-7.
const (
	Rows = 8
	Cols = 5
)

// KeyCount is the number of physical keys: three rows of ten plus four
// thumb keys.
const KeyCount = 34

// Position addresses a switch in the scan matrix.
type Position struct {
	Row uint8 `json:"row" yaml:"row"`
	Col uint8 `json:"col" yaml:"col"`
}

// Matrix is one layer in scan-matrix order.
type Matrix [Rows][Cols]keycode.Keycode

// Layout is one layer in reading order: rows of ten keys left to right, then
// the four thumb keys.
type Layout [KeyCount]keycode.Keycode

var positions [KeyCount]Position

func init() {
	for i := 0; i < 30; i++ {
		r, c := i/10, i%10
		if c < 5 {
			positions[i] = Position{Row: uint8(r), Col: uint8(c)}
		} else {
			positions[i] = Position{Row: uint8(r + 4), Col: uint8(9 - c)}
		}
	}
	positions[30] = Position{Row: 3, Col: 3}
	positions[31] = Position{Row: 3, Col: 4}
	positions[32] = Position{Row: 7, Col: 4}
	positions[33] = Position{Row: 7, Col: 3}
}

// PositionOf returns the matrix position of the i-th key in reading order.
func PositionOf(i int) Position {
	return positions[i]
}

// IndexOf returns the reading-order index of a matrix position.
func IndexOf(p Position) (int, bool) {
	for i, q := range positions {
		if q == p {
			return i, true
		}
	}
	return 0, false
}

// Name returns the position label used in scripts and reports: L00-L24 and
// R05-R29 for the main rows, L30 L31 R32 R33 for the thumbs.
func Name(i int) string {
	side := "L"
	switch {
	case i >= 30:
		if i >= 32 {
			side = "R"
		}
	case i%10 >= 5:
		side = "R"
	}
	return fmt.Sprintf("%s%02d", side, i)
}

// ParseName is the inverse of Name. The side letter is optional but must
// match when given.
func ParseName(s string) (int, error) {
	v := strings.ToUpper(strings.TrimSpace(s))
	side := byte(0)
	if v != "" && (v[0] == 'L' || v[0] == 'R') {
		side, v = v[0], v[1:]
	}
	i, err := strconv.Atoi(v)
	if err != nil || i < 0 || i >= KeyCount {
		return 0, fmt.Errorf("invalid key position %q", s)
	}
	if side != 0 && Name(i)[0] != side {
		return 0, fmt.Errorf("invalid key position %q: key %d is %s", s, i, Name(i))
	}
	return i, nil
}

// Matrix converts the layout to scan-matrix order. Unused matrix slots are
// KC_NO.
func (l Layout) Matrix() Matrix {
	var m Matrix
	for i, kc := range l {
		p := positions[i]
		m[p.Row][p.Col] = kc
	}
	return m
}

// Layout converts the matrix back to reading order.
func (m Matrix) Layout() Layout {
	var l Layout
	for i, p := range positions {
		l[i] = m[p.Row][p.Col]
	}
	return l
}

// At returns the keycode at p, or KC_NO outside the matrix.
func (m Matrix) At(p Position) keycode.Keycode {
	if int(p.Row) >= Rows || int(p.Col) >= Cols {
		return keycode.No
	}
	return m[p.Row][p.Col]
}

// Row returns the ten keys of main row r (0-2).
func (l Layout) Row(r int) [10]keycode.Keycode {
	var out [10]keycode.Keycode
	copy(out[:], l[r*10:r*10+10])
	return out
}

// Thumbs returns the four thumb keys.
func (l Layout) Thumbs() [4]keycode.Keycode {
	var out [4]keycode.Keycode
	copy(out[:], l[30:])
	return out
}
