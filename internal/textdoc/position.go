package textdoc

import "fmt"

// Position represents a line and column location in a document.
// Line is 0-indexed. Character is the 0-indexed column measured in
// UTF-16 code units, matching the host editor's convention.
type Position struct {
	Line      int `json:"line"`
	Character int `json:"character"`
}

// String returns a human-readable representation of the position.
func (p Position) String() string {
	return fmt.Sprintf("(%d:%d)", p.Line, p.Character)
}

// Compare returns -1 if p < other, 0 if p == other, 1 if p > other.
// Positions are ordered by line first, then by character.
func (p Position) Compare(other Position) int {
	if p.Line < other.Line {
		return -1
	}
	if p.Line > other.Line {
		return 1
	}
	if p.Character < other.Character {
		return -1
	}
	if p.Character > other.Character {
		return 1
	}
	return 0
}

// Before returns true if p comes before other.
func (p Position) Before(other Position) bool {
	return p.Compare(other) < 0
}

// After returns true if p comes after other.
func (p Position) After(other Position) bool {
	return p.Compare(other) > 0
}

// IsZero returns true if this is the zero position (0:0).
func (p Position) IsZero() bool {
	return p.Line == 0 && p.Character == 0
}

// Translate returns a copy of p shifted by the given line and character
// deltas. The result is clamped at zero on both axes.
func (p Position) Translate(lineDelta, charDelta int) Position {
	line := p.Line + lineDelta
	if line < 0 {
		line = 0
	}
	char := p.Character + charDelta
	if char < 0 {
		char = 0
	}
	return Position{Line: line, Character: char}
}
