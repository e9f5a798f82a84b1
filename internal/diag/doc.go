// Package diag defines the diagnostic model shared by the grid loader, the
// token locator and the scanner.
//
// # Purpose
//
//   - Provide deterministic, serialisable records for findings about a
//     schematic: malformed grids, numeric overflow, and (in explain mode)
//     informational notes about gears and isolated numbers.
//   - Offer light-weight utilities (Reporter, Bag) that let producers emit
//     diagnostics without coupling to storage or formatting.
//
// # Scope
//
// Package diag does not format or print anything. Rendering lives in
// internal/diagfmt; orchestration lives in internal/driver.
//
// # Data model
//
// Diagnostic is the central record:
//
//   - Severity – Info, Warning or Error (severity.go).
//   - Code – numeric identifier with a stable string form (codes.go).
//   - Message – short, actionable text.
//   - Primary – the source.Span the finding is about.
//   - Notes – optional secondary spans (e.g. the neighbours of a gear).
//
// Fatal grid conditions are always reported with SevError; callers decide to
// stop by checking Bag.HasErrors before any sum is produced.
package diag
