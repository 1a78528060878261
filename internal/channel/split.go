package channel

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

const (
	// DefaultShortPostLimit is the conventional hard length limit for
	// the short-form channel. Deployments can override it via
	// configuration.
	DefaultShortPostLimit = 280

	// minSplitLimit is the smallest limit that still leaves room for a
	// numbering prefix like "99/99 " plus at least one body rune.
	minSplitLimit = 8
)

// Split greedily packs whitespace-separated words into chunks of at
// most limit runes. A single word longer than the limit is hard-sliced
// into limit-sized pieces. When more than one chunk results, every
// chunk gets an "i/total " prefix and its body is truncated if needed
// so prefix plus body still fits the limit. Limits too small to hold a
// numbering prefix fall back to the default. Empty or whitespace-only
// input yields no chunks.
func Split(text string, limit int) []string {
	if limit < minSplitLimit {
		limit = DefaultShortPostLimit
	}

	words := strings.Fields(text)
	if len(words) == 0 {
		return nil
	}

	var chunks []string
	var cur strings.Builder
	curLen := 0

	flush := func() {
		if cur.Len() == 0 {
			return
		}

		chunks = append(chunks, cur.String())
		cur.Reset()
		curLen = 0
	}

	for _, word := range words {
		wordLen := utf8.RuneCountInString(word)

		if wordLen > limit {
			flush()
			chunks = append(chunks, sliceWord(word, limit)...)

			continue
		}

		if curLen == 0 {
			cur.WriteString(word)
			curLen = wordLen

			continue
		}

		if curLen+1+wordLen <= limit {
			cur.WriteString(" ")
			cur.WriteString(word)
			curLen += 1 + wordLen

			continue
		}

		flush()
		cur.WriteString(word)
		curLen = wordLen
	}

	flush()

	if len(chunks) <= 1 {
		return chunks
	}

	total := len(chunks)
	for i, chunk := range chunks {
		prefix := fmt.Sprintf("%d/%d ", i+1, total)

		room := limit - utf8.RuneCountInString(prefix)
		if room < 0 {
			room = 0
		}

		runes := []rune(chunk)
		if len(runes) > room {
			chunk = string(runes[:room])
		}

		chunks[i] = prefix + chunk
	}

	return chunks
}

func sliceWord(word string, limit int) []string {
	runes := []rune(word)

	var parts []string
	for len(runes) > limit {
		parts = append(parts, string(runes[:limit]))
		runes = runes[limit:]
	}

	if len(runes) > 0 {
		parts = append(parts, string(runes))
	}

	return parts
}
