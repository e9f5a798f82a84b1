// Package adjacency answers the two spatial questions of a scan:
// does a number touch any symbol, and which numbers touch a gear.
//
// Adjacency is Chebyshev distance <= 1 between a cell and a token's
// bounding box. Every lookup is clipped to the grid, so tokens on the first
// or last row/column never read outside it.
package adjacency
