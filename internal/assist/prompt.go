package assist

import "strings"

// preamble is prepended to every composed prompt. Responses still pass
// through backend.StripFences before use.
const preamble = "You are a code generation assistant embedded in a text editor. " +
	"Reply with code only. Do not add explanations and do not wrap the code in markdown fences."

// ComposePrompt builds the backend prompt from the user instruction and
// the captured code region. The language id, when known, is stated so
// the backend answers in the right language.
func ComposePrompt(instruction, code, languageID string) string {
	var sb strings.Builder

	sb.WriteString(preamble)
	sb.WriteString("\n\n")

	if languageID != "" {
		sb.WriteString("Language: ")
		sb.WriteString(languageID)
		sb.WriteString("\n\n")
	}

	sb.WriteString("Instruction: ")
	sb.WriteString(strings.TrimSpace(instruction))
	sb.WriteString("\n")

	if code != "" {
		sb.WriteString("\nCode:\n")
		sb.WriteString(code)
		if !strings.HasSuffix(code, "\n") {
			sb.WriteString("\n")
		}
	}

	return sb.String()
}
