package pending

import "github.com/dshills/genedit/internal/textdoc"

// Rebase recomputes a tracked range's coordinates after one content
// change elsewhere in the same document, so the range still denotes the
// same logical text location. The returned range is a new value; the
// input is never mutated.
//
// Four cases, checked in order:
//
//  1. The change begins strictly after the tracked range ends; nothing
//     to do.
//  2. The change ends on an earlier line. The whole tracked range sits
//     on later, shifted lines; translate both endpoints' lines by the
//     change's net line delta.
//  3. The change ends on the tracked range's start line, at or before
//     its start column. Re-anchor the start column to the same logical
//     character boundary after the change; a single-line range shifts
//     its end column by the same amount, a multi-line range only has its
//     end line translated.
//  4. The change overlaps the tracked range: the target text itself was
//     edited concurrently. Best effort: translate both endpoints' lines
//     and leave columns alone. The result is approximate; exact
//     repositioning of a concurrently-edited region is undefined.
func Rebase(r textdoc.Range, c textdoc.ContentChange) textdoc.Range {
	// Entirely after the tracked range: unaffected.
	if c.Range.Start.After(r.End) {
		return r
	}

	lineDelta := c.LineDelta()

	// Entirely on earlier lines: lines shift, columns hold.
	if c.Range.End.Line < r.Start.Line {
		return r.TranslateLines(lineDelta)
	}

	// Ends on the start line at or before the start column: the prefix of
	// that line changed, so the start column must be re-anchored.
	if c.Range.End.Line == r.Start.Line && c.Range.End.Character <= r.Start.Character {
		return rebasePrefix(r, c, lineDelta)
	}

	// Overlap: approximate.
	return r.TranslateLines(lineDelta)
}

// RebaseAll composes a range through a sequence of content changes in
// order. Each change was computed against the document produced by the
// previous one, so composition order is mandatory.
func RebaseAll(r textdoc.Range, changes []textdoc.ContentChange) textdoc.Range {
	for _, c := range changes {
		r = Rebase(r, c)
	}
	return r
}

// rebasePrefix handles a change that ends on the tracked range's start
// line, at or before its start column. The characters between the change
// end and the tracked start are untouched, so the new start column is the
// column where the inserted text ends plus that untouched tail.
func rebasePrefix(r textdoc.Range, c textdoc.ContentChange, lineDelta int) textdoc.Range {
	tail := r.Start.Character - c.Range.End.Character

	var endCol int
	if hasNewline(c.Text) {
		endCol = c.LastLineLenUTF16()
	} else {
		endCol = c.Range.Start.Character + c.LastLineLenUTF16()
	}

	newStartCol := endCol + tail
	colDelta := newStartCol - r.Start.Character

	start := textdoc.Position{Line: r.Start.Line + lineDelta, Character: newStartCol}
	end := r.End
	if r.IsSingleLine() {
		end = textdoc.Position{Line: end.Line + lineDelta, Character: end.Character + colDelta}
	} else {
		end = textdoc.Position{Line: end.Line + lineDelta, Character: end.Character}
	}

	return textdoc.Range{Start: start, End: end}
}

func hasNewline(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] == '\n' {
			return true
		}
	}
	return false
}
