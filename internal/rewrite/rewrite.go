// Package rewrite builds channel-specific content from source material
// via a hosted chat-completion model, degrading to a deterministic
// local template whenever the model is unavailable so generation never
// hard-fails.
package rewrite

import (
	"context"
	"log/slog"
	"strings"
	"unicode/utf8"

	"pressdesk/internal/domain"
)

// DefaultMaxContextChars bounds how much extracted source text is
// included in the prompt.
const DefaultMaxContextChars = 60000

// Request carries everything the prompt builder needs for one
// generation.
type Request struct {
	SourceText   string
	Profile      domain.Profile
	Audience     string
	Topics       string
	PhotoURL     string
	Hashtags     bool
	CallToAction bool
}

// Section identifies one tagged block of the model's answer.
type Section string

const (
	SectionPressRelease   Section = "press_release"
	SectionWebsiteArticle Section = "website_article"
	SectionSocialFBIG     Section = "social_fb_ig"
	SectionSocialLinkedIn Section = "social_li"
	SectionSocialX        Section = "social_x"
)

// Source tells callers whether the model answered or the local
// fallback was used, without sentinel text in the output.
type Source string

const (
	SourceModel    Source = "model"
	SourceFallback Source = "fallback"
)

// Outcome is the result of one generation attempt.
type Outcome struct {
	Sections map[Section]string
	Source   Source
	// Reason is set when Source is SourceFallback.
	Reason string
}

// Rewriter produces one raw completion for a request. Implementations
// make a single attempt and never retry.
type Rewriter interface {
	Rewrite(ctx context.Context, req Request) (string, error)
}

// Service wraps a Rewriter with context truncation, section extraction
// and the fallback path. A nil Rewriter is allowed and always degrades.
type Service struct {
	rewriter        Rewriter
	maxContextChars int
	log             *slog.Logger
}

func NewService(rewriter Rewriter, maxContextChars int, log *slog.Logger) *Service {
	if maxContextChars <= 0 {
		maxContextChars = DefaultMaxContextChars
	}

	return &Service{
		rewriter:        rewriter,
		maxContextChars: maxContextChars,
		log:             log,
	}
}

// Generate runs one rewrite attempt and always returns a usable
// outcome.
func (s *Service) Generate(ctx context.Context, req Request) Outcome {
	req.SourceText = truncateContext(req.SourceText, s.maxContextChars)

	if s.rewriter == nil {
		return fallbackOutcome(req, "rewriter is not configured")
	}

	raw, err := s.rewriter.Rewrite(ctx, req)
	if err != nil {
		s.log.WarnContext(ctx, "Rewrite failed, using local fallback",
			"error", err,
			"sourceTextLen", utf8.RuneCountInString(req.SourceText))

		return fallbackOutcome(req, err.Error())
	}

	sections := ExtractSections(raw)
	if empty(sections) {
		s.log.WarnContext(ctx, "Completion had no recognizable sections, using local fallback",
			"completionLen", utf8.RuneCountInString(raw))

		return fallbackOutcome(req, "completion had no recognizable sections")
	}

	return Outcome{Sections: sections, Source: SourceModel}
}

func empty(sections map[Section]string) bool {
	for _, text := range sections {
		if strings.TrimSpace(text) != "" {
			return false
		}
	}

	return true
}

func truncateContext(text string, limit int) string {
	if utf8.RuneCountInString(text) <= limit {
		return text
	}

	runes := []rune(text)

	return string(runes[:limit])
}
