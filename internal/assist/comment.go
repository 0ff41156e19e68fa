package assist

import "strings"

// CommentMarker holds the comment syntax for one language: a line-comment
// prefix and an optional block-comment pair.
type CommentMarker struct {
	Line       string
	BlockStart string
	BlockEnd   string
}

// commentMarkers maps host language ids to their comment syntax.
// Languages not listed fall back to the C-style default.
var commentMarkers = map[string]CommentMarker{
	"go":          {Line: "//", BlockStart: "/*", BlockEnd: "*/"},
	"c":           {Line: "//", BlockStart: "/*", BlockEnd: "*/"},
	"cpp":         {Line: "//", BlockStart: "/*", BlockEnd: "*/"},
	"csharp":      {Line: "//", BlockStart: "/*", BlockEnd: "*/"},
	"java":        {Line: "//", BlockStart: "/*", BlockEnd: "*/"},
	"javascript":  {Line: "//", BlockStart: "/*", BlockEnd: "*/"},
	"typescript":  {Line: "//", BlockStart: "/*", BlockEnd: "*/"},
	"rust":        {Line: "//", BlockStart: "/*", BlockEnd: "*/"},
	"swift":       {Line: "//", BlockStart: "/*", BlockEnd: "*/"},
	"kotlin":      {Line: "//", BlockStart: "/*", BlockEnd: "*/"},
	"python":      {Line: "#"},
	"ruby":        {Line: "#"},
	"shellscript": {Line: "#"},
	"perl":        {Line: "#"},
	"yaml":        {Line: "#"},
	"toml":        {Line: "#"},
	"lua":         {Line: "--", BlockStart: "--[[", BlockEnd: "]]"},
	"sql":         {Line: "--"},
	"haskell":     {Line: "--"},
	"html":        {Line: "", BlockStart: "<!--", BlockEnd: "-->"},
	"xml":         {Line: "", BlockStart: "<!--", BlockEnd: "-->"},
	"css":         {Line: "", BlockStart: "/*", BlockEnd: "*/"},
}

// MarkerFor returns the comment marker for a language id, falling back
// to C-style line comments for unknown languages.
func MarkerFor(languageID string) CommentMarker {
	if m, ok := commentMarkers[strings.ToLower(languageID)]; ok {
		return m
	}
	return CommentMarker{Line: "//", BlockStart: "/*", BlockEnd: "*/"}
}

// Wrap renders text as a comment in the marker's language. Multi-line
// text uses the block pair when one exists, otherwise each line gets the
// line prefix.
func (m CommentMarker) Wrap(text string) string {
	multiline := strings.ContainsRune(text, '\n')

	if m.Line == "" || (multiline && m.BlockStart != "") {
		return m.BlockStart + " " + text + " " + m.BlockEnd
	}

	lines := strings.Split(text, "\n")
	for i, line := range lines {
		lines[i] = m.Line + " " + line
	}
	return strings.Join(lines, "\n")
}
