package grid

import (
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"
)

// Class is the role a single cell plays in the scan.
type Class uint8

const (
	// ClassNone is returned for positions outside the grid.
	ClassNone Class = iota
	ClassDigit
	ClassBlank
	ClassGear
	// ClassSymbol is every other character.
	ClassSymbol
)

func (c Class) String() string {
	switch c {
	case ClassDigit:
		return "digit"
	case ClassBlank:
		return "blank"
	case ClassGear:
		return "gear"
	case ClassSymbol:
		return "symbol"
	}
	return "none"
}

// IsSymbol reports whether the class counts as a symbol (gears included).
func (c Class) IsSymbol() bool { return c == ClassGear || c == ClassSymbol }

// Alphabet names the two characters with special meaning.
type Alphabet struct {
	Blank rune
	Gear  rune
}

// DefaultAlphabet is '.' for empty cells and '*' for gears.
var DefaultAlphabet = Alphabet{Blank: '.', Gear: '*'}

// ErrBadAlphabet is returned when blank or gear cannot be used.
var ErrBadAlphabet = errors.New("invalid alphabet")

// IsDigit reports whether r is an ASCII decimal digit.
func IsDigit(r rune) bool { return r >= '0' && r <= '9' }

// Validate checks that blank and gear are distinct, printable and not digits.
func (a Alphabet) Validate() error {
	switch {
	case IsDigit(a.Blank):
		return fmt.Errorf("%w: blank %q is a digit", ErrBadAlphabet, a.Blank)
	case IsDigit(a.Gear):
		return fmt.Errorf("%w: gear %q is a digit", ErrBadAlphabet, a.Gear)
	case a.Blank == a.Gear:
		return fmt.Errorf("%w: blank and gear are both %q", ErrBadAlphabet, a.Blank)
	case a.Blank == '\n' || a.Gear == '\n':
		return fmt.Errorf("%w: newline cannot be a cell", ErrBadAlphabet)
	case a.Blank == utf8.RuneError || a.Gear == utf8.RuneError || a.Blank == 0 || a.Gear == 0:
		return fmt.Errorf("%w: blank and gear must be set", ErrBadAlphabet)
	}
	return nil
}

// Classify returns the class of r under this alphabet.
func (a Alphabet) Classify(r rune) Class {
	switch {
	case IsDigit(r):
		return ClassDigit
	case r == a.Blank:
		return ClassBlank
	case r == a.Gear:
		return ClassGear
	default:
		return ClassSymbol
	}
}

// ParseRune converts a one-character config value into a rune.
func ParseRune(s string) (rune, error) {
	if utf8.RuneCountInString(s) != 1 {
		return 0, fmt.Errorf("%w: %q must be exactly one character", ErrBadAlphabet, s)
	}
	r, _ := utf8.DecodeRuneInString(s)
	return r, nil
}

// RaggedPolicy decides what happens to rows whose width differs.
type RaggedPolicy uint8

const (
	// RaggedReject fails the whole grid.
	RaggedReject RaggedPolicy = iota
	// RaggedPad right-pads short rows with the blank character.
	RaggedPad
)

func (p RaggedPolicy) String() string {
	if p == RaggedPad {
		return "pad"
	}
	return "reject"
}

// ParseRaggedPolicy reads "reject" or "pad".
func ParseRaggedPolicy(s string) (RaggedPolicy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "reject":
		return RaggedReject, nil
	case "pad":
		return RaggedPad, nil
	default:
		return RaggedReject, fmt.Errorf("invalid ragged policy %q (expected reject|pad)", s)
	}
}
