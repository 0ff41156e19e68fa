package textdoc

// Index is a per-document line index supporting conversion between byte
// offsets into UTF-8 text and host (line, UTF-16 character) positions.
// An Index is built for a single document snapshot and must be rebuilt
// after the text changes.
type Index struct {
	content string
	lines   []lineInfo
}

// lineInfo stores information about one line for fast position lookup.
type lineInfo struct {
	byteOffset int // Byte offset of line start
	byteLen    int // Length in bytes, excluding the newline
	utf16Len   int // Length in UTF-16 code units, excluding the newline
}

// NewIndex creates a line index for the given content.
func NewIndex(content string) *Index {
	idx := &Index{content: content}
	idx.build()
	return idx
}

// build scans the content once and records per-line offsets and lengths.
func (idx *Index) build() {
	lineStart := 0
	for i := 0; i < len(idx.content); i++ {
		if idx.content[i] == '\n' {
			idx.lines = append(idx.lines, lineInfo{
				byteOffset: lineStart,
				byteLen:    i - lineStart,
				utf16Len:   UTF16Len(idx.content[lineStart:i]),
			})
			lineStart = i + 1
		}
	}
	// Final line, which may not end with a newline.
	idx.lines = append(idx.lines, lineInfo{
		byteOffset: lineStart,
		byteLen:    len(idx.content) - lineStart,
		utf16Len:   UTF16Len(idx.content[lineStart:]),
	})
}

// LineCount returns the number of lines in the content.
// Content without any newline has one line.
func (idx *Index) LineCount() int {
	return len(idx.lines)
}

// Content returns the indexed text.
func (idx *Index) Content() string {
	return idx.content
}

// PositionFor converts a byte offset to a host position.
// Offsets outside the content are clamped to the nearest valid position.
func (idx *Index) PositionFor(byteOffset int) Position {
	if byteOffset < 0 {
		return Position{}
	}
	if byteOffset > len(idx.content) {
		byteOffset = len(idx.content)
	}

	line := idx.lineContaining(byteOffset)
	info := idx.lines[line]

	col := byteOffset - info.byteOffset
	if col > info.byteLen {
		col = info.byteLen
	}
	return Position{
		Line:      line,
		Character: UTF16Len(idx.content[info.byteOffset : info.byteOffset+col]),
	}
}

// OffsetFor converts a host position to a byte offset.
// Positions beyond the end of a line clamp to the line end; positions
// beyond the last line clamp to the end of the content.
func (idx *Index) OffsetFor(pos Position) int {
	if pos.Line < 0 {
		return 0
	}
	if pos.Line >= len(idx.lines) {
		return len(idx.content)
	}

	info := idx.lines[pos.Line]
	if pos.Character <= 0 {
		return info.byteOffset
	}

	// Walk the line rune by rune until the UTF-16 column is consumed.
	line := idx.content[info.byteOffset : info.byteOffset+info.byteLen]
	remaining := pos.Character
	for i, r := range line {
		if remaining <= 0 {
			return info.byteOffset + i
		}
		if r >= 0x10000 {
			remaining -= 2
		} else {
			remaining--
		}
	}
	return info.byteOffset + info.byteLen
}

// LineRange returns the range covering an entire line, from column zero
// through the end of the line (excluding the newline).
func (idx *Index) LineRange(line int) Range {
	if line < 0 {
		line = 0
	}
	if line >= len(idx.lines) {
		line = len(idx.lines) - 1
	}
	return Range{
		Start: Position{Line: line},
		End:   Position{Line: line, Character: idx.lines[line].utf16Len},
	}
}

// Slice returns the substring of the content covered by the given range.
func (idx *Index) Slice(r Range) string {
	start := idx.OffsetFor(r.Start)
	end := idx.OffsetFor(r.End)
	if start > end {
		start, end = end, start
	}
	return idx.content[start:end]
}

// Splice returns a new content string with the given range replaced by
// text. This is how the host's content changes are mirrored locally.
func (idx *Index) Splice(r Range, text string) string {
	start := idx.OffsetFor(r.Start)
	end := idx.OffsetFor(r.End)
	if start > end {
		start, end = end, start
	}
	return idx.content[:start] + text + idx.content[end:]
}

// lineContaining returns the index of the line holding the byte offset.
func (idx *Index) lineContaining(byteOffset int) int {
	lo, hi := 0, len(idx.lines)-1
	for lo < hi {
		mid := (lo + hi + 1) / 2
		if idx.lines[mid].byteOffset <= byteOffset {
			lo = mid
		} else {
			hi = mid - 1
		}
	}
	return lo
}
