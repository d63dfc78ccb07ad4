package llm

import (
	"strings"

	"github.com/tmorell/tabledict/constants"
)

// BuildSystemPrompt composes the instruction message enumerating the exact
// output contract for a table-extraction call.
func BuildSystemPrompt(sourceName string) string {
	parts := []string{
		"You are extracting tabular data from a PDF page screenshot.",
		"Return JSON that matches the provided schema EXACTLY.",
		"Top-level key: data_records (array).",
		"Each record must have: file_name (string), key (string), item (string), data_type (string), format (string), length (integer), start (integer), end (integer), comments (string).",
		"Extract ALL table rows visible on the page, top-to-bottom.",
		"Do NOT invent rows.",
		"Preserve text exactly as shown (case/punctuation).",
		"IMPORTANT: length/start/end must be integers (no quotes).",
		"If a comments cell is blank, use \"" + constants.BlankCommentSentinel + "\".",
		"file_name must be exactly: " + sourceName,
	}
	return strings.Join(parts, "\n")
}

// BuildUserPrompt returns the short directive that accompanies the page image.
func BuildUserPrompt() string {
	return "Extract every table row from this page."
}
