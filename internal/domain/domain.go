package domain

import (
	"time"

	"pressdesk/internal/channel"
)

// Profile describes the communicator whose voice drives prompt
// construction and formatting policy.
type Profile struct {
	Name         string            `json:"name"`
	Role         string            `json:"role"`
	Organization string            `json:"organization"`
	Tones        []string          `json:"tones"`
	CustomTone   string            `json:"custom_tone"`
	UseEmoji     bool              `json:"use_emoji"`
	Channels     []channel.Channel `json:"channels"`
	StyleGuide   string            `json:"style_guide"`
}

// ChannelResult is one channel's rendering of a generation. Chunks is
// set only for short-form channels that required splitting.
type ChannelResult struct {
	Text   string   `json:"text"`
	Chunks []string `json:"chunks,omitempty"`
}

// Draft is a snapshot of one generation request and its results.
type Draft struct {
	CreatedAt time.Time                `json:"created_at"`
	Profile   Profile                  `json:"profile"`
	Input     string                   `json:"input"`
	Results   map[string]ChannelResult `json:"results"`
}

// NewsItem is one entry of the monitored-feeds cache.
type NewsItem struct {
	Title     string    `json:"title"`
	Link      string    `json:"link"`
	Source    string    `json:"source"`
	Published time.Time `json:"published"`
}
