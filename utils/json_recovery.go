package utils

import (
	"regexp"
	"strings"
)

var fencedBlockRe = regexp.MustCompile("(?s)```(?:json|JSON)?[ \\t]*\\r?\\n?(.*?)\\r?\\n?[ \\t]*```")

// RecoverJSONObject pulls a bare JSON object out of a model reply: the body of
// a fenced code block when there is one, then everything from the first '{'
// to the last '}'. The result is not validated.
func RecoverJSONObject(raw string) string {
	s := strings.TrimSpace(raw)
	if m := fencedBlockRe.FindStringSubmatch(s); m != nil {
		s = strings.TrimSpace(m[1])
	}
	start := strings.IndexByte(s, '{')
	end := strings.LastIndexByte(s, '}')
	if start >= 0 && end > start {
		s = s[start : end+1]
	}
	return s
}
