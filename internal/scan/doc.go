// Package scan ties the row lexer and the adjacency engine together and
// reduces a grid to its part-number sum and gear-ratio sum.
//
// Rows are processed in shards on an errgroup. Every shard owns its
// diagnostics bag and partial sums; the shards are merged in row order, so
// the result and the diagnostics do not depend on the number of jobs.
package scan
