package channel

import "regexp"

// Non-greedy so adjacent bold phrases resolve separately. Stray or
// unmatched "**" markers never match and survive as literal text.
var boldMarkerRe = regexp.MustCompile(`\*\*(.+?)\*\*`)

type formatFunc func(string) string

var formatters = map[Channel]formatFunc{
	Social:    formatSocial,
	Facebook:  formatSocial,
	Instagram: formatSocial,
	LinkedIn:  formatSocial,
	X:         formatSocial,
	Website:   formatHTML,
	Press:     formatHTML,
}

// Format resolves "**phrase**" bold markers to the channel's native
// emphasis mechanism and applies the channel's emoji policy: social
// channels get Unicode bold and keep emoji, website and press get
// <strong> tags with emoji stripped first.
func Format(text string, c Channel) string {
	f, ok := formatters[c]
	if !ok {
		f = formatSocial
	}

	return f(text)
}

func formatSocial(text string) string {
	return boldMarkerRe.ReplaceAllStringFunc(text, func(m string) string {
		return Bold(m[2 : len(m)-2])
	})
}

func formatHTML(text string) string {
	stripped := StripEmoji(text)

	return boldMarkerRe.ReplaceAllString(stripped, "<strong>$1</strong>")
}
