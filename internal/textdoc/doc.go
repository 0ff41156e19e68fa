// Package textdoc provides the position, range, and change value types
// shared by the genedit engine, together with conversion between byte
// offsets and host line/column positions.
//
// Positions follow the host editor convention: 0-indexed lines and
// 0-indexed columns measured in UTF-16 code units. Document text itself
// is UTF-8; the [Index] type bridges the two representations.
//
// # Core Types
//
//   - [Position]: a (line, character) location, ordered lexicographically
//   - [Range]: a half-open span between two positions
//   - [ContentChange]: one replaced-region/inserted-text pair
//   - [MutationEvent]: a batch of content changes applied to one document
//   - [Index]: per-document line index for offset/position conversion
//
// All types are immutable values. Operations that adjust coordinates
// return new values rather than mutating in place, so a Range held by one
// subsystem is never changed underneath another.
package textdoc
