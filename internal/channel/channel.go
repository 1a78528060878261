// Package channel turns one body of generated text into
// channel-appropriate representations: Unicode-bold emphasis for social
// platforms, HTML emphasis for web and press, emoji policy per channel,
// and length-bounded splitting for short-form posts.
package channel

import (
	"fmt"
	"strings"
)

// Channel is a publishing destination with its own formatting rules.
type Channel int

const (
	Social Channel = iota
	Website
	Press
	Facebook
	Instagram
	LinkedIn
	X
)

var channelNames = map[Channel]string{
	Social:    "social",
	Website:   "website",
	Press:     "press",
	Facebook:  "facebook",
	Instagram: "instagram",
	LinkedIn:  "linkedin",
	X:         "x",
}

var channelsByName = map[string]Channel{
	"social":    Social,
	"website":   Website,
	"press":     Press,
	"facebook":  Facebook,
	"instagram": Instagram,
	"linkedin":  LinkedIn,
	"x":         X,
}

func (c Channel) String() string {
	name, ok := channelNames[c]
	if !ok {
		return fmt.Sprintf("channel(%d)", int(c))
	}

	return name
}

// MarshalText makes channels render as their lowercase names in JSON.
func (c Channel) MarshalText() ([]byte, error) {
	name, ok := channelNames[c]
	if !ok {
		return nil, fmt.Errorf("unknown channel: %d", int(c))
	}

	return []byte(name), nil
}

func (c *Channel) UnmarshalText(text []byte) error {
	parsed, ok := Parse(string(text))
	if !ok {
		return fmt.Errorf("unknown channel: %q", string(text))
	}

	*c = parsed

	return nil
}

// Parse maps a channel name from the closed vocabulary to its variant.
// Matching is case-insensitive; unknown names report ok=false.
func Parse(name string) (Channel, bool) {
	c, ok := channelsByName[strings.ToLower(strings.TrimSpace(name))]

	return c, ok
}

// ParseSet parses a list of channel names, dropping unknown values and
// duplicates while preserving first-seen order. An empty result falls
// back to {Social}.
func ParseSet(names []string) []Channel {
	var channels []Channel
	seen := make(map[Channel]struct{}, len(names))

	for _, name := range names {
		c, ok := Parse(name)
		if !ok {
			continue
		}

		if _, dup := seen[c]; dup {
			continue
		}

		seen[c] = struct{}{}
		channels = append(channels, c)
	}

	if len(channels) == 0 {
		return []Channel{Social}
	}

	return channels
}

// ShortForm reports whether the channel enforces a hard post-length
// limit and should have its output split.
func (c Channel) ShortForm() bool {
	return c == X
}
