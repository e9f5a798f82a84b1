// Package grid holds the immutable two-dimensional character buffer that a
// schematic is scanned from.
//
// A Grid is built once (FromFile or New), validated up front and never
// mutated afterwards, so it can be shared by any number of goroutines.
// All cell access goes through the bounds-checked At / ClassAt accessors;
// positions outside the grid simply report ok=false / ClassNone.
//
// Columns are counted in runes after NFC normalisation (see internal/source),
// not in bytes. Only ASCII '0'..'9' are digits.
package grid
