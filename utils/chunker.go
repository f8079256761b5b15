package utils

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// ChunkText splits text into sentence-aligned chunks of at most maxChunkSize
// runes. A sentence longer than maxChunkSize becomes its own chunk and is
// never cut.
func ChunkText(text string, maxChunkSize int) []string {
	chunks := []string{}
	var current strings.Builder
	currentLen := 0

	for _, sentence := range SplitSentences(text) {
		n := utf8.RuneCountInString(sentence)
		if currentLen+n > maxChunkSize && currentLen > 0 {
			chunks = appendTrimmed(chunks, current.String())
			current.Reset()
			currentLen = 0
		}
		current.WriteString(sentence)
		currentLen += n
	}
	if currentLen > 0 {
		chunks = appendTrimmed(chunks, current.String())
	}
	return chunks
}

// SplitSentences cuts text right after every '.', '!' or '?' that is followed
// by whitespace; the whitespace stays with the preceding sentence. Joining the
// parts gives back text unchanged.
func SplitSentences(text string) []string {
	var parts []string
	start := 0
	for i := 0; i < len(text); i++ {
		switch text[i] {
		case '.', '!', '?':
			r, size := utf8.DecodeRuneInString(text[i+1:])
			if size > 0 && unicode.IsSpace(r) {
				end := i + 1 + size
				parts = append(parts, text[start:end])
				start = end
				i = end - 1
			}
		}
	}
	if start < len(text) {
		parts = append(parts, text[start:])
	}
	return parts
}

// EstimateTokens approximates the model token count as one token per four runes.
func EstimateTokens(text string) int {
	n := utf8.RuneCountInString(text)
	return (n + 3) / 4
}

func appendTrimmed(chunks []string, s string) []string {
	if s = strings.TrimSpace(s); s != "" {
		chunks = append(chunks, s)
	}
	return chunks
}
