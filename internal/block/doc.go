// Package block locates the enclosing brace-delimited block around a
// cursor position using purely lexical scanning.
//
// Given raw document text and a byte offset, [Locate] finds the smallest
// `{...}` pair containing the offset and extends the result upward to
// include the declaration line(s) introducing the block, so that a cursor
// inside a function body yields the whole function including a multi-line
// signature.
//
// The scan is lexical, not syntax-aware: braces inside string or
// character literals and comments are counted like any other brace, which
// can mis-scope such code. That trade-off keeps the locator free of any
// language parser and is acceptable for its use as AI prompt context.
package block
