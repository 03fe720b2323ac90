package askdocs

import (
	"encoding/json"
	"strings"
	"unicode/utf8"
)

// Sentinel tokens the model is instructed to append to replies that are
// casual conversation rather than documentation questions. They are
// stripped from every reply before it reaches the user.
const (
	CasualSentinel      = "<casual>"
	CasualSentinelClose = "</casual>"
)

// MaxContextChars caps the serialized retrieved-information block
// embedded in a prompt.
const MaxContextChars = 20000

const promptTemplate = `User Query: %QUERY%

Retrieved Information: %CONTEXT%

Objective:
1. Generate a reply to the user query using Markdown formatting for a clear and attractive presentation.
2. Check if the user query is relevant to any help or documentation asked by the user. If it's a casual conversation, don't include any retrieved information in your response, just reply casually and briefly.
3. In your response, kindly address the user directly (using 'you') and provide a concise reply to the user query using the retrieved information.
4. Also, please use emojis throughout your reply to enhance the friendly experience!
5. If any content is not relevant to the user query, please do not include it in your response.

Most important note: the last part of the response should be -
<casual> if the user query is unrelated to the documentation.

Example of casual conversation:
User: Hey, how are you?
Assistant: Hey there! I'm doing great. How can I help you today? <casual>

Output:
`

// BuildPrompt composes the generation prompt from the user query and the
// page summaries in retrieval order. Summaries are serialized as JSON
// objects and the combined block is capped at MaxContextChars.
func BuildPrompt(query string, summaries []*ScrapedSummary) string {
	var sb strings.Builder
	for _, s := range summaries {
		if s == nil {
			continue
		}
		b, err := json.Marshal(s)
		if err != nil {
			continue
		}
		sb.Write(b)
	}
	context := Truncate(sb.String(), MaxContextChars)

	prompt := strings.Replace(promptTemplate, "%QUERY%", query, 1)
	return strings.Replace(prompt, "%CONTEXT%", context, 1)
}

// Truncate shortens s to at most max bytes, backing the cut off to the
// nearest rune boundary so the result is always valid UTF-8.
func Truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	for max > 0 && !utf8.RuneStart(s[max]) {
		max--
	}
	return s[:max]
}

// IsCasual reports whether a raw model reply carries the casual
// sentinel.
func IsCasual(reply string) bool {
	return strings.Contains(reply, CasualSentinel)
}

// StripSentinels removes all sentinel tokens from a model reply.
func StripSentinels(reply string) string {
	reply = strings.ReplaceAll(reply, CasualSentinel, "")
	return strings.ReplaceAll(reply, CasualSentinelClose, "")
}
