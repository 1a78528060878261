package rewrite

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"strings"
	"testing"
	"unicode/utf8"

	"pressdesk/internal/domain"
)

type stubRewriter struct {
	completion string
	err        error
	lastReq    Request
}

func (s *stubRewriter) Rewrite(_ context.Context, req Request) (string, error) {
	s.lastReq = req

	return s.completion, s.err
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewJSONHandler(io.Discard, nil))
}

const sampleCompletion = `>>>COMUNICATO_STAMPA<<<
Titolo del comunicato.
Corpo del comunicato.
>>>SITO_ISTITUZIONALE<<<
Articolo per il sito.
>>>SOCIAL_FB_IG<<<
Post per Facebook e Instagram.
>>>SOCIAL_LI<<<
Post per LinkedIn.
>>>SOCIAL_X<<<
Post breve.`

func TestExtractSectionsSplitsOnMarkers(t *testing.T) {
	sections := ExtractSections(sampleCompletion)

	if got := sections[SectionPressRelease]; got != "Titolo del comunicato.\nCorpo del comunicato." {
		t.Fatalf("unexpected press release: %q", got)
	}

	if got := sections[SectionSocialX]; got != "Post breve." {
		t.Fatalf("unexpected short post: %q", got)
	}

	if got := sections[SectionWebsiteArticle]; got != "Articolo per il sito." {
		t.Fatalf("unexpected website article: %q", got)
	}
}

func TestExtractSectionsMissingMarkerYieldsEmptySection(t *testing.T) {
	sections := ExtractSections(">>>SOCIAL_X<<<\nSolo il post breve.")

	if got := sections[SectionPressRelease]; got != "" {
		t.Fatalf("expected empty section, got %q", got)
	}

	if got := sections[SectionSocialX]; got != "Solo il post breve." {
		t.Fatalf("unexpected short post: %q", got)
	}
}

func TestGenerateUsesModelWhenItAnswers(t *testing.T) {
	stub := &stubRewriter{completion: sampleCompletion}
	svc := NewService(stub, 0, testLogger())

	outcome := svc.Generate(context.Background(), Request{SourceText: "contesto"})

	if outcome.Source != SourceModel {
		t.Fatalf("expected model source, got %q (reason %q)", outcome.Source, outcome.Reason)
	}

	if outcome.Sections[SectionSocialX] != "Post breve." {
		t.Fatalf("unexpected short post: %q", outcome.Sections[SectionSocialX])
	}
}

func TestGenerateFallsBackOnError(t *testing.T) {
	stub := &stubRewriter{err: errors.New("connection refused")}
	svc := NewService(stub, 0, testLogger())

	outcome := svc.Generate(context.Background(), Request{
		SourceText: "Inaugurazione della nuova biblioteca comunale sabato mattina.",
	})

	if outcome.Source != SourceFallback {
		t.Fatalf("expected fallback source, got %q", outcome.Source)
	}

	if outcome.Reason != "connection refused" {
		t.Fatalf("unexpected reason: %q", outcome.Reason)
	}

	for _, section := range []Section{
		SectionPressRelease,
		SectionWebsiteArticle,
		SectionSocialFBIG,
		SectionSocialLinkedIn,
		SectionSocialX,
	} {
		if strings.TrimSpace(outcome.Sections[section]) == "" {
			t.Fatalf("expected non-empty fallback for %q", section)
		}
	}
}

func TestGenerateFallsBackWithNilRewriter(t *testing.T) {
	svc := NewService(nil, 0, testLogger())

	outcome := svc.Generate(context.Background(), Request{SourceText: "contesto"})

	if outcome.Source != SourceFallback {
		t.Fatalf("expected fallback source, got %q", outcome.Source)
	}
}

func TestGenerateFallsBackWhenCompletionHasNoMarkers(t *testing.T) {
	stub := &stubRewriter{completion: "free-form answer without any markers"}
	svc := NewService(stub, 0, testLogger())

	outcome := svc.Generate(context.Background(), Request{SourceText: "contesto"})

	if outcome.Source != SourceFallback {
		t.Fatalf("expected fallback source, got %q", outcome.Source)
	}
}

func TestGenerateTruncatesContextBeforeRewrite(t *testing.T) {
	stub := &stubRewriter{completion: sampleCompletion}
	svc := NewService(stub, 100, testLogger())

	svc.Generate(context.Background(), Request{SourceText: strings.Repeat("a", 500)})

	if n := utf8.RuneCountInString(stub.lastReq.SourceText); n != 100 {
		t.Fatalf("expected truncated context of 100 runes, got %d", n)
	}
}

func TestFallbackIsDeterministic(t *testing.T) {
	req := Request{
		SourceText: "Lavori di riqualificazione del parco centrale al via lunedì.",
		Topics:     "parco centrale",
		Hashtags:   true,
		Profile:    domain.Profile{Organization: "Comune di Esempio"},
	}

	first := fallbackOutcome(req, "reason")
	second := fallbackOutcome(req, "reason")

	for section, text := range first.Sections {
		if second.Sections[section] != text {
			t.Fatalf("fallback not deterministic for %q", section)
		}
	}
}

func TestBuildPromptContainsProfileAndMarkers(t *testing.T) {
	prompt := BuildPrompt(Request{
		SourceText: "contesto di prova",
		Audience:   "cittadini",
		Topics:     "viabilità",
		Profile: domain.Profile{
			Name:         "Anna Rossi",
			Role:         "Portavoce",
			Organization: "Comune di Esempio",
			Tones:        []string{"istituzionale"},
			StyleGuide:   "Frasi brevi.",
		},
		Hashtags: true,
	})

	for _, want := range []string{
		"Comune di Esempio",
		"Anna Rossi",
		"contesto di prova",
		"viabilità",
		"COMUNICATO_STAMPA",
		"SOCIAL_X",
		"hashtag",
		"Frasi brevi.",
	} {
		if !strings.Contains(prompt, want) {
			t.Fatalf("prompt missing %q:\n%s", want, prompt)
		}
	}
}
