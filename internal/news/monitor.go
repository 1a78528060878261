// Package news keeps a small cache of recent items from monitored
// RSS/Atom feeds, refreshed on a TTL and persisted to a JSON file used
// as a fallback when every refresh fails.
package news

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"sync"
	"time"
	"unicode/utf8"

	"github.com/mmcdole/gofeed"

	"pressdesk/internal/domain"
)

const (
	// DefaultTTL is how long a refresh result stays fresh.
	DefaultTTL = 15 * time.Minute

	maxItems          = 50
	dedupTitleMaxLen  = 80
	fetchFeedsTimeout = 30 * time.Second
)

type Monitor struct {
	feedURLs  []string
	parser    *gofeed.Parser
	cachePath string
	ttl       time.Duration
	log       *slog.Logger

	mu        sync.Mutex
	items     []domain.NewsItem
	fetchedAt time.Time
}

func NewMonitor(feedURLs []string, cachePath string, ttl time.Duration, log *slog.Logger) *Monitor {
	if ttl <= 0 {
		ttl = DefaultTTL
	}

	return &Monitor{
		feedURLs:  feedURLs,
		parser:    gofeed.NewParser(),
		cachePath: cachePath,
		ttl:       ttl,
		log:       log,
	}
}

// Items returns the cached items, refreshing first when the cache is
// stale. A failed refresh falls back to whatever is already cached,
// in memory or on disk.
func (m *Monitor) Items(ctx context.Context) []domain.NewsItem {
	m.mu.Lock()
	fresh := !m.fetchedAt.IsZero() && time.Since(m.fetchedAt) < m.ttl
	cached := m.items
	m.mu.Unlock()

	if fresh {
		return cached
	}

	if err := m.Refresh(ctx); err != nil {
		m.log.WarnContext(ctx, "Failed to refresh news feeds",
			"error", err,
			"feedCount", len(m.feedURLs))
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	return m.items
}

// Refresh fetches every configured feed, merges and dedupes the items
// and rewrites the JSON cache file. When every fetch fails, the cache
// file is loaded instead.
func (m *Monitor) Refresh(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, fetchFeedsTimeout)
	defer cancel()

	var fetched []domain.NewsItem
	var errs []error

	for _, feedURL := range m.feedURLs {
		items, err := m.fetchFeed(ctx, feedURL)
		if err != nil {
			errs = append(errs, fmt.Errorf("fetch feed %q: %w", feedURL, err))

			continue
		}

		fetched = append(fetched, items...)
	}

	if len(fetched) == 0 && len(errs) > 0 {
		if cached, loadErr := loadCache(m.cachePath); loadErr == nil && len(cached) > 0 {
			m.log.WarnContext(ctx, "All feed fetches failed, serving cache file",
				"cachePath", m.cachePath,
				"itemCount", len(cached))

			m.mu.Lock()
			m.items = cached
			m.fetchedAt = time.Now()
			m.mu.Unlock()

			return errors.Join(errs...)
		}

		return errors.Join(errs...)
	}

	merged := dedupe(fetched)

	m.mu.Lock()
	m.items = merged
	m.fetchedAt = time.Now()
	m.mu.Unlock()

	if err := saveCache(m.cachePath, merged); err != nil {
		m.log.WarnContext(ctx, "Failed to write news cache file",
			"error", err,
			"cachePath", m.cachePath)
	}

	return errors.Join(errs...)
}

func (m *Monitor) fetchFeed(ctx context.Context, feedURL string) ([]domain.NewsItem, error) {
	parsed, err := m.parser.ParseURLWithContext(feedURL, ctx)
	if err != nil {
		return nil, fmt.Errorf("parse feed: %w", err)
	}

	source := strings.TrimSpace(parsed.Title)
	if source == "" {
		source = feedURL
	}

	var items []domain.NewsItem

	for _, item := range parsed.Items {
		title := strings.TrimSpace(item.Title)
		link := strings.TrimSpace(item.Link)
		if title == "" || link == "" {
			continue
		}

		published := time.Time{}
		if item.PublishedParsed != nil {
			published = *item.PublishedParsed
		} else if item.UpdatedParsed != nil {
			published = *item.UpdatedParsed
		}

		items = append(items, domain.NewsItem{
			Title:     title,
			Link:      link,
			Source:    source,
			Published: published,
		})
	}

	return items, nil
}

type dedupKey struct {
	title  string
	source string
}

// dedupe drops duplicates by (truncated title, source), sorts newest
// first and caps the list.
func dedupe(items []domain.NewsItem) []domain.NewsItem {
	seen := make(map[dedupKey]struct{}, len(items))
	var merged []domain.NewsItem

	for _, item := range items {
		key := dedupKey{
			title:  truncateTitle(item.Title),
			source: item.Source,
		}

		if _, ok := seen[key]; ok {
			continue
		}

		seen[key] = struct{}{}
		merged = append(merged, item)
	}

	sort.SliceStable(merged, func(i, j int) bool {
		return merged[i].Published.After(merged[j].Published)
	})

	if len(merged) > maxItems {
		merged = merged[:maxItems]
	}

	return merged
}

func truncateTitle(title string) string {
	title = strings.ToLower(strings.TrimSpace(title))

	if utf8.RuneCountInString(title) <= dedupTitleMaxLen {
		return title
	}

	runes := []rune(title)

	return string(runes[:dedupTitleMaxLen])
}
