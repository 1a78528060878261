package channel

import "strings"

// emojiRanges is a best-effort denylist of emoji-related Unicode
// blocks. Filtering happens per scalar, so multi-code-point sequences
// (ZWJ combinations, skin-tone modifiers) are only partially stripped.
var emojiRanges = [...]struct{ lo, hi rune }{
	{0x1F300, 0x1F5FF}, // miscellaneous symbols and pictographs
	{0x1F600, 0x1F64F}, // emoticons
	{0x1F680, 0x1F6FF}, // transport and map symbols
	{0x1F1E6, 0x1F1FF}, // regional indicators (flags)
	{0x2600, 0x26FF},   // miscellaneous symbols
	{0x2700, 0x27BF},   // dingbats
}

// StripEmoji removes every rune falling into the denylisted emoji
// blocks and leaves all other runes untouched.
func StripEmoji(s string) string {
	var b strings.Builder
	b.Grow(len(s))

	for _, r := range s {
		if isEmoji(r) {
			continue
		}

		b.WriteRune(r)
	}

	return b.String()
}

func isEmoji(r rune) bool {
	for _, rng := range emojiRanges {
		if r >= rng.lo && r <= rng.hi {
			return true
		}
	}

	return false
}
