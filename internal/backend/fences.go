package backend

import "strings"

// StripFences removes a single markdown code fence wrapping the text:
// a leading ``` line (with or without a language tag) and a trailing
// ``` line. Text that is not fenced is returned with surrounding
// whitespace trimmed. Fences inside the body are left alone.
func StripFences(text string) string {
	trimmed := strings.TrimSpace(text)
	if !strings.HasPrefix(trimmed, "```") {
		return trimmed
	}

	// Drop the opening fence line, including any language tag.
	rest := trimmed[3:]
	if i := strings.IndexByte(rest, '\n'); i >= 0 {
		rest = rest[i+1:]
	} else {
		// A fence with no content at all.
		return ""
	}

	// Drop the closing fence, which must sit on its own line.
	rest = strings.TrimRight(rest, " \t\n")
	if rest == "```" {
		return ""
	}
	if strings.HasSuffix(rest, "\n```") {
		rest = strings.TrimSuffix(rest, "\n```")
	}

	return rest
}
