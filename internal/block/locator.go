package block

import "strings"

// Block is the result of a successful locate: the exact substring of the
// document covering the enclosing block plus its declaration line(s), and
// the byte offsets of that substring. Start is inclusive, End exclusive.
type Block struct {
	Text  string
	Start int
	End   int
}

// Locate finds the smallest brace-delimited block containing the byte
// offset, extended upward to include the declaration lines introducing
// it. The returned range spans from the start of the first declaration
// line through the end of the line containing the closing brace.
//
// Locate returns false when the offset is inside no block: text with no
// braces, a cursor outside every pair, or an opening brace that never
// closes (malformed or partial code).
func Locate(text string, offset int) (Block, bool) {
	if offset < 0 {
		offset = 0
	}
	if offset > len(text) {
		offset = len(text)
	}

	open, ok := findOpen(text, offset)
	if !ok {
		return Block{}, false
	}

	closing, ok := findClose(text, open)
	if !ok {
		return Block{}, false
	}

	start := extendToDeclaration(text, lineStartBefore(text, open))
	end := lineEndAfter(text, closing)

	return Block{
		Text:  text[start:end],
		Start: start,
		End:   end,
	}, true
}

// findOpen locates the opening brace of the innermost block containing
// offset. It scans backward keeping a depth counter so that already-closed
// nested pairs are skipped; a `{` seen at depth zero is the block start.
// If the backward scan exhausts the text, a forward scan to the end of the
// current line handles a cursor sitting just before the opening brace on
// the signature line itself.
func findOpen(text string, offset int) (int, bool) {
	depth := 0
	for i := offset - 1; i >= 0; i-- {
		switch text[i] {
		case '}':
			depth++
		case '{':
			if depth == 0 {
				return i, true
			}
			depth--
		}
	}

	for i := offset; i < len(text) && text[i] != '\n'; i++ {
		if text[i] == '{' {
			return i, true
		}
	}

	return 0, false
}

// findClose locates the closing brace matching the opener at open.
// Returns false if the text ends before the pair balances.
func findClose(text string, open int) (int, bool) {
	depth := 1
	for i := open + 1; i < len(text); i++ {
		switch text[i] {
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return i, true
			}
		}
	}
	return 0, false
}

// extendToDeclaration walks upward from the line starting at start,
// absorbing each preceding line that is non-empty and does not end in
// ';', '}', or '{' once trailing whitespace is trimmed. This captures
// multi-line signatures, attributes, and doc lines directly above the
// block. The first line that fails the test is excluded.
func extendToDeclaration(text string, start int) int {
	for start > 0 {
		prevEnd := start - 1 // newline terminating the preceding line
		prevStart := lineStartBefore(text, prevEnd)
		line := strings.TrimRight(text[prevStart:prevEnd], " \t\r")
		if line == "" {
			break
		}
		switch line[len(line)-1] {
		case ';', '}', '{':
			return start
		}
		start = prevStart
	}
	return start
}

// lineStartBefore returns the byte offset of the start of the line
// containing pos.
func lineStartBefore(text string, pos int) int {
	return strings.LastIndexByte(text[:pos], '\n') + 1
}

// lineEndAfter returns the offset just past the last character of the
// line containing pos, excluding the newline itself.
func lineEndAfter(text string, pos int) int {
	if i := strings.IndexByte(text[pos:], '\n'); i >= 0 {
		return pos + i
	}
	return len(text)
}
