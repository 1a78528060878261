package news

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"pressdesk/internal/domain"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewJSONHandler(io.Discard, nil))
}

func rssFixture(source string, titles ...string) string {
	var items strings.Builder
	for i, title := range titles {
		fmt.Fprintf(&items, `<item>
			<title>%s</title>
			<link>https://example.org/%d</link>
			<pubDate>Mon, 0%d Jun 2026 10:00:00 +0000</pubDate>
		</item>`, title, i, i+1)
	}

	return fmt.Sprintf(`<?xml version="1.0"?>
		<rss version="2.0"><channel><title>%s</title>%s</channel></rss>`,
		source, items.String())
}

func TestRefreshFetchesAndSortsItems(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = io.WriteString(w, rssFixture("Gazzetta", "Prima notizia", "Seconda notizia"))
	}))
	defer srv.Close()

	cachePath := filepath.Join(t.TempDir(), "news.json")
	m := NewMonitor([]string{srv.URL}, cachePath, time.Minute, testLogger())

	if err := m.Refresh(context.Background()); err != nil {
		t.Fatalf("unexpected refresh error: %v", err)
	}

	items := m.Items(context.Background())
	if len(items) != 2 {
		t.Fatalf("expected 2 items, got %d", len(items))
	}

	// Newest first.
	if items[0].Title != "Seconda notizia" {
		t.Fatalf("unexpected first item: %q", items[0].Title)
	}

	if items[0].Source != "Gazzetta" {
		t.Fatalf("unexpected source: %q", items[0].Source)
	}
}

func TestItemsServesFreshCacheWithoutRefetch(t *testing.T) {
	var calls int

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		calls++
		_, _ = io.WriteString(w, rssFixture("Gazzetta", "Notizia"))
	}))
	defer srv.Close()

	m := NewMonitor([]string{srv.URL}, "", time.Minute, testLogger())

	_ = m.Items(context.Background())
	_ = m.Items(context.Background())

	if calls != 1 {
		t.Fatalf("expected a single fetch within the TTL, got %d", calls)
	}
}

func TestRefreshFallsBackToCacheFileWhenAllFetchesFail(t *testing.T) {
	cachePath := filepath.Join(t.TempDir(), "news.json")

	seeded := []domain.NewsItem{{
		Title:     "Notizia dal disco",
		Link:      "https://example.org/cached",
		Source:    "Cache",
		Published: time.Date(2026, 6, 1, 10, 0, 0, 0, time.UTC),
	}}
	if err := saveCache(cachePath, seeded); err != nil {
		t.Fatalf("failed to seed cache: %v", err)
	}

	m := NewMonitor([]string{"http://127.0.0.1:1/feed"}, cachePath, time.Minute, testLogger())

	if err := m.Refresh(context.Background()); err == nil {
		t.Fatalf("expected an aggregate fetch error")
	}

	items := m.Items(context.Background())
	if len(items) != 1 || items[0].Title != "Notizia dal disco" {
		t.Fatalf("expected cache-file fallback, got %v", items)
	}
}

func TestDedupeDropsSameTruncatedTitleAndSource(t *testing.T) {
	long := strings.Repeat("a", dedupTitleMaxLen)

	items := []domain.NewsItem{
		{Title: long + "-first", Source: "s"},
		{Title: long + "-second", Source: "s"},
		{Title: long + "-first", Source: "other"},
	}

	got := dedupe(items)

	if len(got) != 2 {
		t.Fatalf("expected 2 items after dedupe, got %d", len(got))
	}
}

func TestDedupeIsCaseInsensitiveOnTitle(t *testing.T) {
	items := []domain.NewsItem{
		{Title: "Consiglio Comunale", Source: "s"},
		{Title: "consiglio comunale", Source: "s"},
	}

	if got := dedupe(items); len(got) != 1 {
		t.Fatalf("expected 1 item after dedupe, got %d", len(got))
	}
}

func TestDedupeCapsItemCount(t *testing.T) {
	var items []domain.NewsItem
	for i := range maxItems + 20 {
		items = append(items, domain.NewsItem{
			Title:  fmt.Sprintf("notizia %d", i),
			Source: "s",
		})
	}

	if got := dedupe(items); len(got) != maxItems {
		t.Fatalf("expected %d items, got %d", maxItems, len(got))
	}
}

func TestCacheRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "news.json")

	items := []domain.NewsItem{{
		Title:     "Titolo",
		Link:      "https://example.org/x",
		Source:    "Fonte",
		Published: time.Date(2026, 5, 5, 12, 0, 0, 0, time.UTC),
	}}

	if err := saveCache(path, items); err != nil {
		t.Fatalf("unexpected save error: %v", err)
	}

	got, err := loadCache(path)
	if err != nil {
		t.Fatalf("unexpected load error: %v", err)
	}

	if len(got) != 1 || got[0] != items[0] {
		t.Fatalf("round trip mismatch: %v", got)
	}
}
