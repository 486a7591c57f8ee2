package translator

import (
	"fmt"
	"strings"
)

// Request describes one rewrite. FromLanguage/ToLanguage empty means no
// corresponding line in the prompt. Feedback, when non-blank, carries the
// user's verdict on a previous rewrite ("too long", "too formal", ...).
type Request struct {
	OriginalMessage string
	FromRole        string
	ToRole          string
	FromLanguage    string
	ToLanguage      string
	Feedback        string
}

const preamble = `YakYak rewrites should:
- Adjust tone and language based on the sender's and recipient's roles (e.g., PM to Developer, Developer to Client)
- Preserve the intent of the original message
- Clarify any ambiguous or overly technical language
- Keep the style appropriate for the target audience (e.g., informal for Slack, clear for clients, structured for Jira)
- Translate messages if sender and recipient languages are different
- Respect the tone of the message (friendly, urgent, frustrated, etc.)
- Automatically fix typos, vague expressions, and awkward phrasing
- Keep the rewritten message natural, short, and actionable`

// BuildPrompt produces the single instruction string sent to the model.
// Pure function of its input: same Request, same bytes out.
//
// The original message is embedded verbatim between triple-backtick fences
// with no escaping. A message that itself contains the fence sequence makes
// the boundary ambiguous to the model; known limitation, kept for parity
// with the prompt contract rather than silently re-encoded.
func BuildPrompt(req Request) string {
	fromRole := RoleLabel(req.FromRole)
	toRole := RoleLabel(req.ToRole)

	var b strings.Builder
	b.WriteString(preamble)
	b.WriteString("\n\nOriginal Message:\n```\n")
	b.WriteString(req.OriginalMessage)
	b.WriteString("\n```\n")
	fmt.Fprintf(&b, "From Role: %s\n", fromRole)
	fmt.Fprintf(&b, "To Role: %s\n", toRole)
	if req.FromLanguage != "" {
		fmt.Fprintf(&b, "From Language: %s\n", LanguageLabel(req.FromLanguage))
	}
	if req.ToLanguage != "" {
		fmt.Fprintf(&b, "To Language: %s\n", LanguageLabel(req.ToLanguage))
	}
	if fb := strings.TrimSpace(req.Feedback); fb != "" {
		fmt.Fprintf(&b, "\nFeedback on previous rewrite: The previous rewrite was %s.\nTake this into account when rewriting the message.\n", fb)
	}
	b.WriteString("\nRewritten Message:\n")
	return b.String()
}
