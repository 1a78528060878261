package rewrite

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

const (
	fallbackSocialMaxChars = 400
	fallbackShortMaxChars  = 240
)

// fallbackOutcome builds channel content from the source material
// alone with no network calls. Same request, same output.
func fallbackOutcome(req Request, reason string) Outcome {
	title := strings.TrimSpace(req.Topics)
	if title == "" {
		title = firstWords(req.SourceText, 12)
	}
	if title == "" {
		title = "Comunicazione"
	}

	body := strings.TrimSpace(req.SourceText)
	if body == "" {
		body = "Testo in preparazione."
	}

	signature := strings.TrimSpace(req.Profile.Organization)
	if signature == "" {
		signature = strings.TrimSpace(req.Profile.Name)
	}

	press := fmt.Sprintf("**%s**\n\n%s", title, body)
	if signature != "" {
		press += "\n\n" + signature
	}

	website := fmt.Sprintf("**%s**\n\n%s", title, body)

	social := firstChars(body, fallbackSocialMaxChars)
	if req.Hashtags {
		social += "\n\n" + hashtagLine(title)
	}
	if req.CallToAction {
		social += "\nMaggiori informazioni sui nostri canali ufficiali."
	}

	short := firstChars(body, fallbackShortMaxChars)

	return Outcome{
		Sections: map[Section]string{
			SectionPressRelease:   press,
			SectionWebsiteArticle: website,
			SectionSocialFBIG:     social,
			SectionSocialLinkedIn: firstChars(body, fallbackSocialMaxChars),
			SectionSocialX:        short,
		},
		Source: SourceFallback,
		Reason: reason,
	}
}

func firstWords(text string, n int) string {
	words := strings.Fields(text)
	if len(words) > n {
		words = words[:n]
	}

	return strings.Join(words, " ")
}

func firstChars(text string, limit int) string {
	normalized := strings.Join(strings.Fields(text), " ")
	if utf8.RuneCountInString(normalized) <= limit {
		return normalized
	}

	runes := []rune(normalized)
	trimmed := strings.TrimSpace(string(runes[:limit]))

	return trimmed + "..."
}

func hashtagLine(title string) string {
	var tags []string

	for _, word := range strings.Fields(title) {
		cleaned := strings.Map(func(r rune) rune {
			if r >= 'a' && r <= 'z' || r >= 'A' && r <= 'Z' || r >= '0' && r <= '9' {
				return r
			}

			return -1
		}, word)

		if utf8.RuneCountInString(cleaned) < 4 {
			continue
		}

		tags = append(tags, "#"+cleaned)
		if len(tags) == 3 {
			break
		}
	}

	if len(tags) == 0 {
		return "#comunicazione"
	}

	return strings.Join(tags, " ")
}
