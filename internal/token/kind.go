package token

// Kind represents the category of a token produced by the row lexer.
type Kind uint8

const (
	// Invalid marks a digit run that could not be converted (overflow).
	Invalid Kind = iota
	// EOF marks the end of the row.
	EOF
	// Number is a maximal run of digits.
	Number
)

func (k Kind) String() string {
	switch k {
	case Invalid:
		return "Invalid"
	case EOF:
		return "EOF"
	case Number:
		return "Number"
	}
	return "Unknown"
}

// SymbolKind distinguishes gears from every other symbol.
type SymbolKind uint8

const (
	// Other is any non-digit, non-blank character except the gear.
	Other SymbolKind = iota
	// Gear is the gear character ('*' by default).
	Gear
)

func (k SymbolKind) String() string {
	if k == Gear {
		return "Gear"
	}
	return "Other"
}
