package textdoc

import (
	"strings"
	"unicode/utf16"
)

// DocumentID is the opaque, stable key identifying an open document.
// It is a canonicalized URI supplied by the host; two ranges are
// comparable only if their document IDs match.
type DocumentID string

// ContentChange describes one replacement applied to a document:
// the exact region removed and the text that took its place.
// An insertion has an empty Range; a deletion has empty Text.
type ContentChange struct {
	Range Range  `json:"range"`
	Text  string `json:"text"`
}

// IsNoop returns true if the change has no effect on the document
// (empty replaced range and empty inserted text).
func (c ContentChange) IsNoop() bool {
	return c.Range.IsEmpty() && c.Text == ""
}

// LineDelta returns the net line-count shift introduced by the change:
// the number of newlines inserted minus the number of lines the replaced
// region spanned.
func (c ContentChange) LineDelta() int {
	return strings.Count(c.Text, "\n") - c.Range.LineSpan()
}

// LastLineLenUTF16 returns the length, in UTF-16 code units, of the text
// following the final newline of the inserted text. For text without a
// newline this is the full text length.
func (c ContentChange) LastLineLenUTF16() int {
	last := c.Text
	if i := strings.LastIndexByte(c.Text, '\n'); i >= 0 {
		last = c.Text[i+1:]
	}
	return UTF16Len(last)
}

// MutationEvent describes one host edit operation on a document.
// Changes are listed in document order; each change was computed against
// the document state produced by the previous one, so consumers must
// apply them strictly in order.
type MutationEvent struct {
	DocID   DocumentID      `json:"docId"`
	Changes []ContentChange `json:"changes"`
}

// UTF16Len returns the length of s in UTF-16 code units.
func UTF16Len(s string) int {
	n := 0
	for _, r := range s {
		n += utf16.RuneLen(r)
	}
	return n
}
